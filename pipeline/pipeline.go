package pipeline

import (
	"bikeshare/domain/entities/report"
	"bikeshare/domain/entities/selection"
	"bikeshare/domain/entities/trip"
	dataErrors "bikeshare/domain/errors"
	"bikeshare/sink"
	"bikeshare/statistics"
	"context"
	"fmt"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

const (
	pipelineType = "analysis-pipeline"

	LoadStage          = "load"
	TimeStatsStage     = "time-stats"
	StationStatsStage  = "station-stats"
	DurationStatsStage = "duration-stats"
	UserStatsStage     = "user-stats"
)

// TableLoader produces the filtered trip table of a selection
type TableLoader interface {
	Load(ctx context.Context, filterSelection selection.FilterSelection) (*trip.Table, error)
}

// Result reports of a successful run
// + RunID: unique ID of the run
// + Selection: selection the reports were computed for
// + Rows: amount of trips that matched the selection
type Result struct {
	RunID          string
	Selection      selection.FilterSelection
	Rows           int
	TimeReport     *report.TimeReport
	StationReport  *report.StationReport
	DurationReport *report.DurationReport
	UserReport     *report.UserReport
}

// Reports returns the reports in the order they are presented
func (r *Result) Reports() []report.Report {
	return []report.Report{r.TimeReport, r.StationReport, r.DurationReport, r.UserReport}
}

// Pipeline loads the trips of a selection and runs every statistics routine over them.
// A run either produces all four reports or fails with a StageError
type Pipeline struct {
	loader TableLoader
	engine *statistics.Engine
}

func New(loader TableLoader, engine *statistics.Engine) *Pipeline {
	return &Pipeline{
		loader: loader,
		engine: engine,
	}
}

func getLogMessage(method string, message string, err error) string {
	if err != nil {
		return fmt.Sprintf("[component: %s][method: %s][status: ERROR] %s: %s", pipelineType, method, message, err.Error())
	}
	return fmt.Sprintf("[component: %s][method: %s][status: OK] %s", pipelineType, method, message)
}

// Run computes the four reports of the given selection
func (p *Pipeline) Run(ctx context.Context, filterSelection selection.FilterSelection) (*Result, error) {
	runID := uuid.NewString()
	logger := log.WithField("run_id", runID)
	logger.Info(getLogMessage("Run", fmt.Sprintf("starting analysis of %s", filterSelection), nil))

	table, err := p.loader.Load(ctx, filterSelection)
	if err != nil {
		return nil, p.stageFailed(logger, LoadStage, err)
	}

	engine := p.engine.ForRun(runID)
	result := &Result{
		RunID:     runID,
		Selection: filterSelection,
		Rows:      table.Len(),
	}

	stages := []struct {
		name string
		run  func() error
	}{
		{TimeStatsStage, func() (err error) { result.TimeReport, err = engine.TimeStats(table); return }},
		{StationStatsStage, func() (err error) { result.StationReport, err = engine.StationStats(table); return }},
		{DurationStatsStage, func() (err error) { result.DurationReport, err = engine.DurationStats(table); return }},
		{UserStatsStage, func() (err error) { result.UserReport, err = engine.UserStats(table); return }},
	}

	for _, stage := range stages {
		if err := ctx.Err(); err != nil {
			return nil, p.stageFailed(logger, stage.name, err)
		}

		if err := stage.run(); err != nil {
			return nil, p.stageFailed(logger, stage.name, err)
		}
		logger.Debug(getLogMessage("Run", fmt.Sprintf("stage %s finished", stage.name), nil))
	}

	logger.Info(getLogMessage("Run", fmt.Sprintf("analysis finished over %v trips", result.Rows), nil))
	return result, nil
}

// Emit sends every report of the result to the sink, in order
func (p *Pipeline) Emit(ctx context.Context, result *Result, reportSink sink.ReportSink) error {
	logger := log.WithField("run_id", result.RunID)
	for _, analysisReport := range result.Reports() {
		if err := reportSink.Send(ctx, analysisReport); err != nil {
			logger.Error(getLogMessage("Emit", "error sending report", err))
			return fmt.Errorf("error sending %s report: %w", analysisReport.GetMetadata().GetType(), err)
		}
	}
	logger.Debug(getLogMessage("Emit", "reports sent", nil))
	return nil
}

func (p *Pipeline) stageFailed(logger *log.Entry, stage string, err error) error {
	stageErr := dataErrors.NewStageError(stage, err)
	logger.Error(getLogMessage("Run", "analysis aborted", stageErr))
	return stageErr
}
