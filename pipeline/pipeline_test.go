package pipeline

import (
	"bikeshare/domain/entities/report"
	"bikeshare/domain/entities/selection"
	"bikeshare/domain/entities/trip"
	dataErrors "bikeshare/domain/errors"
	"bikeshare/statistics"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLoader struct {
	table *trip.Table
	err   error
}

func (fl *fakeLoader) Load(_ context.Context, _ selection.FilterSelection) (*trip.Table, error) {
	return fl.table, fl.err
}

type recordingSink struct {
	reports []report.Report
	sendErr error
}

func (rs *recordingSink) Send(_ context.Context, analysisReport report.Report) error {
	if rs.sendErr != nil {
		return rs.sendErr
	}
	rs.reports = append(rs.reports, analysisReport)
	return nil
}

func (rs *recordingSink) Close() error {
	return nil
}

func newTestTable(t *testing.T) *trip.Table {
	start, err := time.Parse("2006-01-02 15:04:05", "2017-03-07 17:10:00")
	require.NoError(t, err)

	table := trip.NewTable([]string{"washington"}, false, false)
	table.Trips = []*trip.TripData{
		trip.NewTripData("washington", "1", start, start.Add(90*time.Second), 90, "A", "B", "Subscriber"),
		trip.NewTripData("washington", "2", start, start.Add(150*time.Second), 150, "A", "B", "Customer"),
		trip.NewTripData("washington", "3", start, start.Add(330*time.Second), 330, "B", "A", "Subscriber"),
	}
	return table
}

func newTestPipeline(loader TableLoader) *Pipeline {
	engine := statistics.New(statistics.Config{Months: []string{"january", "february", "march", "april", "may", "june"}})
	return New(loader, engine)
}

func newTestSelection() selection.FilterSelection {
	return selection.NewFilterSelection(selection.Single("washington"), selection.Single("march"), selection.Single("tuesday"))
}

func TestRunProducesEveryReport(t *testing.T) {
	analysisPipeline := newTestPipeline(&fakeLoader{table: newTestTable(t)})

	result, err := analysisPipeline.Run(context.Background(), newTestSelection())
	require.NoError(t, err)
	require.NotEmpty(t, result.RunID)
	assert.Equal(t, 3, result.Rows)

	reports := result.Reports()
	require.Len(t, reports, 4)
	expectedTypes := []string{report.TimeStatsType, report.StationStatsType, report.DurationStatsType, report.UserStatsType}
	for idx, analysisReport := range reports {
		metadata := analysisReport.GetMetadata()
		assert.Equal(t, expectedTypes[idx], metadata.GetType())
		assert.Equal(t, result.RunID, metadata.GetRunID())
	}

	assert.Equal(t, "March", result.TimeReport.MostCommonMonthName)
	assert.Equal(t, "0d 0h 9m 30s", result.DurationReport.Total.String())
	assert.Equal(t, "3m10s", result.DurationReport.Mean.String())
	assert.False(t, result.UserReport.GenderAvailable)
}

func TestRunGeneratesDifferentRunIDs(t *testing.T) {
	analysisPipeline := newTestPipeline(&fakeLoader{table: newTestTable(t)})

	first, err := analysisPipeline.Run(context.Background(), newTestSelection())
	require.NoError(t, err)
	second, err := analysisPipeline.Run(context.Background(), newTestSelection())
	require.NoError(t, err)
	assert.NotEqual(t, first.RunID, second.RunID)
}

func TestRunFailures(t *testing.T) {
	loadErr := errors.New("dataset not found")
	canceledCtx, cancel := context.WithCancel(context.Background())
	cancel()

	testCases := []struct {
		name          string
		ctx           context.Context
		loader        *fakeLoader
		expectedStage string
		expectedErr   error
	}{
		{
			name:          "load error",
			ctx:           context.Background(),
			loader:        &fakeLoader{err: loadErr},
			expectedStage: LoadStage,
			expectedErr:   loadErr,
		},
		{
			name:          "nothing matches the selection",
			ctx:           context.Background(),
			loader:        &fakeLoader{table: trip.NewTable([]string{"washington"}, false, false)},
			expectedStage: TimeStatsStage,
			expectedErr:   dataErrors.ErrEmptyTable,
		},
		{
			name:          "canceled between stages",
			ctx:           canceledCtx,
			loader:        &fakeLoader{table: newTestTable(t)},
			expectedStage: TimeStatsStage,
			expectedErr:   context.Canceled,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			result, err := newTestPipeline(tc.loader).Run(tc.ctx, newTestSelection())
			assert.Nil(t, result)
			require.Error(t, err)

			var stageErr *dataErrors.StageError
			require.ErrorAs(t, err, &stageErr)
			assert.Equal(t, tc.expectedStage, stageErr.Stage)
			assert.ErrorIs(t, err, tc.expectedErr)
		})
	}
}

func TestEmitSendsReportsInOrder(t *testing.T) {
	analysisPipeline := newTestPipeline(&fakeLoader{table: newTestTable(t)})
	result, err := analysisPipeline.Run(context.Background(), newTestSelection())
	require.NoError(t, err)

	reportSink := &recordingSink{}
	require.NoError(t, analysisPipeline.Emit(context.Background(), result, reportSink))
	assert.Equal(t, result.Reports(), reportSink.reports)
}

func TestEmitStopsOnSinkError(t *testing.T) {
	analysisPipeline := newTestPipeline(&fakeLoader{table: newTestTable(t)})
	result, err := analysisPipeline.Run(context.Background(), newTestSelection())
	require.NoError(t, err)

	sendErr := errors.New("broker unavailable")
	err = analysisPipeline.Emit(context.Background(), result, &recordingSink{sendErr: sendErr})
	assert.ErrorIs(t, err, sendErr)
}
