package statistics

import (
	"bikeshare/domain/entities/report"
	"bikeshare/domain/entities/station"
	"bikeshare/domain/entities/trip"
	dataErrors "bikeshare/domain/errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var canonicalMonths = []string{"january", "february", "march", "april", "may", "june"}

type tripBuilder struct {
	start        string
	duration     float64
	startStation string
	endStation   string
	userType     string
	gender       trip.Optional[string]
	birthYear    trip.Optional[int]
}

func (tb tripBuilder) build() *trip.TripData {
	start := tb.start
	if start == "" {
		start = "2017-01-02 08:00:00"
	}
	startTime, err := time.Parse("2006-01-02 15:04:05", start)
	if err != nil {
		panic(err)
	}
	userType := tb.userType
	if userType == "" {
		userType = "Subscriber"
	}

	tripData := trip.NewTripData("chicago", "", startTime, startTime.Add(time.Duration(tb.duration)*time.Second), tb.duration, tb.startStation, tb.endStation, userType)
	tripData.Gender = tb.gender
	tripData.BirthYear = tb.birthYear
	return tripData
}

func newTestTable(hasGender bool, hasBirthYear bool, builders ...tripBuilder) *trip.Table {
	table := trip.NewTable([]string{"chicago"}, hasGender, hasBirthYear)
	for _, builder := range builders {
		table.Trips = append(table.Trips, builder.build())
	}
	return table
}

func newTestEngine() *Engine {
	return New(Config{Months: canonicalMonths}).ForRun("run-1")
}

func TestTimeStats(t *testing.T) {
	table := newTestTable(false, false,
		tripBuilder{start: "2017-03-06 08:10:00"}, // Monday
		tripBuilder{start: "2017-03-07 17:10:00"}, // Tuesday
		tripBuilder{start: "2017-01-03 17:45:00"}, // Tuesday
		tripBuilder{start: "2017-01-09 08:30:00"}, // Monday
		tripBuilder{start: "2017-03-14 17:00:00"}, // Tuesday
	)

	timeReport, err := newTestEngine().TimeStats(table)
	require.NoError(t, err)
	assert.Equal(t, 3, timeReport.MostCommonMonth)
	assert.Equal(t, "March", timeReport.MostCommonMonthName)
	assert.Equal(t, "Tuesday", timeReport.MostCommonWeekday)
	assert.Equal(t, 17, timeReport.MostCommonStartHour)

	metadata := timeReport.GetMetadata()
	assert.Equal(t, "run-1", metadata.GetRunID())
	assert.Equal(t, report.TimeStatsType, metadata.GetType())
	assert.Equal(t, 5, metadata.Rows)
	assert.Equal(t, []string{"chicago"}, metadata.GetCities())
}

func TestTimeStatsTieUsesTheSmallestValue(t *testing.T) {
	table := newTestTable(false, false,
		tripBuilder{start: "2017-06-05 09:00:00"},
		tripBuilder{start: "2017-02-06 07:00:00"},
	)

	timeReport, err := newTestEngine().TimeStats(table)
	require.NoError(t, err)
	assert.Equal(t, 2, timeReport.MostCommonMonth)
	assert.Equal(t, 7, timeReport.MostCommonStartHour)
	assert.Equal(t, "Monday", timeReport.MostCommonWeekday)
}

func TestEveryStatisticFailsOnAnEmptyTable(t *testing.T) {
	engine := newTestEngine()
	table := newTestTable(true, true)

	_, err := engine.TimeStats(table)
	assert.ErrorIs(t, err, dataErrors.ErrEmptyTable)

	_, err = engine.StationStats(table)
	assert.ErrorIs(t, err, dataErrors.ErrEmptyTable)

	_, err = engine.DurationStats(table)
	assert.ErrorIs(t, err, dataErrors.ErrEmptyTable)

	_, err = engine.UserStats(table)
	assert.ErrorIs(t, err, dataErrors.ErrEmptyTable)

	_, err = engine.TimeStats(nil)
	assert.ErrorIs(t, err, dataErrors.ErrEmptyTable)
}

func TestStationStats(t *testing.T) {
	table := newTestTable(false, false,
		tripBuilder{startStation: "Canal St", endStation: "Clark St"},
		tripBuilder{startStation: "Canal St", endStation: "Lake Shore Dr"},
		tripBuilder{startStation: "Clark St", endStation: "Lake Shore Dr"},
		tripBuilder{startStation: "Canal St", endStation: "Lake Shore Dr"},
	)

	stationReport, err := newTestEngine().StationStats(table)
	require.NoError(t, err)
	assert.Equal(t, "Canal St", stationReport.MostCommonStartStation)
	assert.Equal(t, 3, stationReport.StartStationTrips)
	assert.Equal(t, "Lake Shore Dr", stationReport.MostCommonEndStation)
	assert.Equal(t, 3, stationReport.EndStationTrips)
	assert.Equal(t, "Canal St - Lake Shore Dr", stationReport.MostCommonTrip)
	assert.Equal(t, 2, stationReport.TripCount)
	assert.False(t, stationReport.TripDistanceKm.Valid)
}

func TestStationStatsWithKnownStations(t *testing.T) {
	directory := station.NewDirectory([]station.StationData{
		{Name: "Origin", Latitude: 0, Longitude: 0},
		{Name: "East", Latitude: 0, Longitude: 1},
	})
	engine := New(Config{Months: canonicalMonths, PairSeparator: " -> ", Stations: directory})

	table := newTestTable(false, false, tripBuilder{startStation: "Origin", endStation: "East"})

	stationReport, err := engine.StationStats(table)
	require.NoError(t, err)
	assert.Equal(t, "Origin -> East", stationReport.MostCommonTrip)

	distance, ok := stationReport.TripDistanceKm.Get()
	require.True(t, ok)
	assert.InDelta(t, 111.19, distance, 0.01)
}

func TestDurationStats(t *testing.T) {
	table := newTestTable(false, false,
		tripBuilder{duration: 90},
		tripBuilder{duration: 150},
		tripBuilder{duration: 330},
	)

	durationReport, err := newTestEngine().DurationStats(table)
	require.NoError(t, err)
	assert.Equal(t, 570.0, durationReport.TotalDuration)
	assert.Equal(t, 190.0, durationReport.MeanDuration)
	assert.Equal(t, "0d 0h 9m 30s", durationReport.Total.String())
	assert.Equal(t, "3m10s", durationReport.Mean.String())
}

func TestDurationStatsMeanRoundTrip(t *testing.T) {
	tests := []struct {
		name      string
		durations []float64
	}{
		{name: "integer mean", durations: []float64{60, 120, 180}},
		{name: "fractional mean", durations: []float64{100, 101}},
		{name: "decimal durations", durations: []float64{489.066, 402.549, 1733.258}},
		{name: "long trips", durations: []float64{86400, 90061}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var builders []tripBuilder
			var total float64
			for _, duration := range tt.durations {
				builders = append(builders, tripBuilder{duration: duration})
				total += duration
			}

			durationReport, err := newTestEngine().DurationStats(newTestTable(false, false, builders...))
			require.NoError(t, err)

			mean := total / float64(len(tt.durations))
			assert.InDelta(t, mean, float64(durationReport.Mean.TotalSeconds()), 1)
			assert.Equal(t, int64(total), durationReport.Total.TotalSeconds())
		})
	}
}

func TestDurationStatsRejectsNegativeDurations(t *testing.T) {
	table := newTestTable(false, false, tripBuilder{duration: 90}, tripBuilder{duration: -5})

	_, err := newTestEngine().DurationStats(table)
	assert.ErrorIs(t, err, dataErrors.ErrInvalidDuration)
}

func TestUserStats(t *testing.T) {
	table := newTestTable(true, true,
		tripBuilder{userType: "Subscriber", gender: trip.Some("Male"), birthYear: trip.Some(1992)},
		tripBuilder{userType: "Customer", gender: trip.Some("Female"), birthYear: trip.Some(1960)},
		tripBuilder{userType: "Subscriber", gender: trip.Some("Male"), birthYear: trip.Some(1992)},
		tripBuilder{userType: "Subscriber", gender: trip.None[string](), birthYear: trip.None[int]()},
		tripBuilder{userType: "Customer", gender: trip.Some("Female"), birthYear: trip.Some(2001)},
	)

	userReport, err := newTestEngine().UserStats(table)
	require.NoError(t, err)
	assert.Equal(t, []report.ValueCount{{Value: "Subscriber", Count: 3}, {Value: "Customer", Count: 2}}, userReport.UserTypes)

	assert.True(t, userReport.GenderAvailable)
	assert.Equal(t, []report.ValueCount{{Value: "Female", Count: 2}, {Value: "Male", Count: 2}}, userReport.Genders)

	assert.True(t, userReport.BirthYearAvailable)
	assert.Equal(t, 1960, userReport.EarliestBirthYear)
	assert.Equal(t, 2001, userReport.MostRecentBirthYear)
	assert.Equal(t, 1992, userReport.MostCommonBirthYear)
}

func TestUserStatsWithoutOptionalColumns(t *testing.T) {
	table := newTestTable(false, false,
		tripBuilder{userType: "Subscriber"},
		tripBuilder{userType: "Customer"},
	)

	userReport, err := newTestEngine().UserStats(table)
	require.NoError(t, err)
	assert.False(t, userReport.GenderAvailable)
	assert.Nil(t, userReport.Genders)
	assert.False(t, userReport.BirthYearAvailable)
	assert.Len(t, userReport.UserTypes, 2)
}

func TestUserStatsBirthYearColumnWithoutValues(t *testing.T) {
	table := newTestTable(true, true, tripBuilder{gender: trip.Some("Female")})

	userReport, err := newTestEngine().UserStats(table)
	require.NoError(t, err)
	assert.True(t, userReport.GenderAvailable)
	assert.False(t, userReport.BirthYearAvailable)
}

func TestGenderDistributionSignalsAbsence(t *testing.T) {
	_, err := genderDistribution(newTestTable(false, true, tripBuilder{}))
	assert.ErrorIs(t, err, dataErrors.ErrOptionalColumnAbsent)

	_, err = getBirthYearStats(newTestTable(true, false, tripBuilder{}))
	assert.ErrorIs(t, err, dataErrors.ErrOptionalColumnAbsent)
}

func TestMonthName(t *testing.T) {
	engine := newTestEngine()
	assert.Equal(t, "January", engine.monthName(1))
	assert.Equal(t, "June", engine.monthName(6))
	assert.Equal(t, "September", engine.monthName(9))
	assert.Equal(t, "0", engine.monthName(0))
}

func TestUserStatsGenderColumnWithoutValues(t *testing.T) {
	table := newTestTable(true, true,
		tripBuilder{gender: trip.None[string](), birthYear: trip.Some(1992)},
		tripBuilder{gender: trip.None[string](), birthYear: trip.Some(1985)},
	)

	userReport, err := newTestEngine().UserStats(table)
	require.NoError(t, err)
	assert.False(t, userReport.GenderAvailable)
	assert.Nil(t, userReport.Genders)
	assert.True(t, userReport.BirthYearAvailable)

	_, err = genderDistribution(table)
	assert.ErrorIs(t, err, dataErrors.ErrOptionalColumnAbsent)
}

func TestStatisticsMergeEveryCity(t *testing.T) {
	chicagoTrip := func(builder tripBuilder) *trip.TripData {
		return builder.build()
	}
	washingtonTrip := func(builder tripBuilder) *trip.TripData {
		tripData := builder.build()
		tripData.City = "washington"
		return tripData
	}

	table := trip.NewTable([]string{"chicago", "washington"}, false, false)
	table.Trips = []*trip.TripData{
		chicagoTrip(tripBuilder{start: "2017-01-02 08:00:00", duration: 90, startStation: "A", endStation: "B"}),
		washingtonTrip(tripBuilder{start: "2017-03-07 17:00:00", duration: 150, startStation: "C", endStation: "D"}),
		chicagoTrip(tripBuilder{start: "2017-03-07 17:30:00", duration: 330, startStation: "C", endStation: "D"}),
		washingtonTrip(tripBuilder{start: "2017-03-14 17:45:00", duration: 200, startStation: "C", endStation: "B"}),
	}

	partitions := partitionByCity(table)
	require.Len(t, partitions, 2)
	assert.Equal(t, "chicago", partitions[0].city)
	assert.Len(t, partitions[0].trips, 2)
	assert.Equal(t, "washington", partitions[1].city)
	assert.Len(t, partitions[1].trips, 2)

	engine := newTestEngine()
	timeReport, err := engine.TimeStats(table)
	require.NoError(t, err)
	assert.Equal(t, 3, timeReport.MostCommonMonth)
	assert.Equal(t, "Tuesday", timeReport.MostCommonWeekday)
	assert.Equal(t, 17, timeReport.MostCommonStartHour)

	stationReport, err := engine.StationStats(table)
	require.NoError(t, err)
	assert.Equal(t, "C", stationReport.MostCommonStartStation)
	assert.Equal(t, 3, stationReport.StartStationTrips)
	assert.Equal(t, "C - D", stationReport.MostCommonTrip)
	assert.Equal(t, 2, stationReport.TripCount)

	durationReport, err := engine.DurationStats(table)
	require.NoError(t, err)
	assert.Equal(t, 770.0, durationReport.TotalDuration)
	assert.Equal(t, 192.5, durationReport.MeanDuration)
	assert.Equal(t, 4, durationReport.Metadata.Rows)
}
