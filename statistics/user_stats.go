package statistics

import (
	"bikeshare/domain/business/tripcounter"
	"bikeshare/domain/entities/report"
	"bikeshare/domain/entities/trip"
	dataErrors "bikeshare/domain/errors"
	"errors"
	"fmt"
	log "github.com/sirupsen/logrus"
	"time"
)

// birthYearStats earliest, most recent and most common birth year
type birthYearStats struct {
	earliest   int
	mostRecent int
	mostCommon int
}

// UserStats returns the distribution of user types and, when the table exposes them, the distribution of
// genders and the birth year stats. Missing gender or birth year data is reported as unavailable
func (e *Engine) UserStats(table *trip.Table) (*report.UserReport, error) {
	startTime := time.Now()
	if err := e.checkNotEmpty("UserStats", table); err != nil {
		return nil, err
	}

	userTypeCounter := tripcounter.NewTripCounter[string]()
	for _, tripData := range table.Trips {
		if tripData.UserType != "" {
			userTypeCounter.UpdateCounter(tripData.UserType)
		}
	}

	userReport := &report.UserReport{
		UserTypes: toValueCounts(userTypeCounter),
	}

	genders, err := genderDistribution(table)
	switch {
	case err == nil:
		userReport.GenderAvailable = true
		userReport.Genders = genders
	case errors.Is(err, dataErrors.ErrOptionalColumnAbsent):
		log.Info(e.getLogMessage("UserStats", fmt.Sprintf("there is no gender information for %v", table.Cities), nil))
	default:
		return nil, err
	}

	birthYears, err := getBirthYearStats(table)
	switch {
	case err == nil:
		userReport.BirthYearAvailable = true
		userReport.EarliestBirthYear = birthYears.earliest
		userReport.MostRecentBirthYear = birthYears.mostRecent
		userReport.MostCommonBirthYear = birthYears.mostCommon
	case errors.Is(err, dataErrors.ErrOptionalColumnAbsent):
		log.Info(e.getLogMessage("UserStats", fmt.Sprintf("there is no birth year information for %v", table.Cities), nil))
	default:
		return nil, err
	}

	userReport.Metadata = e.newMetadata(report.UserStatsType, table, startTime)
	return userReport, nil
}

// genderDistribution returns ErrOptionalColumnAbsent if no source of the table exposes the Gender column
// or if no trip has a gender
func genderDistribution(table *trip.Table) ([]report.ValueCount, error) {
	if !table.HasGender {
		return nil, fmt.Errorf("%w: %s", dataErrors.ErrOptionalColumnAbsent, "Gender")
	}

	genderCounter := tripcounter.NewTripCounter[string]()
	for _, tripData := range table.Trips {
		if gender, ok := tripData.Gender.Get(); ok {
			genderCounter.UpdateCounter(gender)
		}
	}

	if genderCounter.IsEmpty() {
		return nil, fmt.Errorf("%w: %s has no values", dataErrors.ErrOptionalColumnAbsent, "Gender")
	}

	return toValueCounts(genderCounter), nil
}

// getBirthYearStats returns ErrOptionalColumnAbsent if no source of the table exposes the Birth Year column
// or if no trip has a birth year
func getBirthYearStats(table *trip.Table) (birthYearStats, error) {
	if !table.HasBirthYear {
		return birthYearStats{}, fmt.Errorf("%w: %s", dataErrors.ErrOptionalColumnAbsent, "Birth Year")
	}

	birthYearCounter := tripcounter.NewTripCounter[int]()
	for _, tripData := range table.Trips {
		if birthYear, ok := tripData.BirthYear.Get(); ok {
			birthYearCounter.UpdateCounter(birthYear)
		}
	}

	if birthYearCounter.IsEmpty() {
		return birthYearStats{}, fmt.Errorf("%w: %s has no values", dataErrors.ErrOptionalColumnAbsent, "Birth Year")
	}

	// the counter has values, so these calls do not fail
	earliest, _ := birthYearCounter.Min()
	mostRecent, _ := birthYearCounter.Max()
	mostCommon, _, _ := birthYearCounter.Mode()

	return birthYearStats{
		earliest:   earliest,
		mostRecent: mostRecent,
		mostCommon: mostCommon,
	}, nil
}

func toValueCounts(counter *tripcounter.TripCounter[string]) []report.ValueCount {
	var valueCounts []report.ValueCount
	for _, valueCounter := range counter.Distribution() {
		valueCounts = append(valueCounts, report.ValueCount{Value: valueCounter.Value, Count: valueCounter.Counter})
	}
	return valueCounts
}
