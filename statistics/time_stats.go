package statistics

import (
	"bikeshare/domain/entities/report"
	"bikeshare/domain/entities/trip"
	log "github.com/sirupsen/logrus"
	"time"
)

// TimeStats returns the most frequent month, weekday and start hour
func (e *Engine) TimeStats(table *trip.Table) (*report.TimeReport, error) {
	startTime := time.Now()
	if err := e.checkNotEmpty("TimeStats", table); err != nil {
		return nil, err
	}

	partitions := partitionByCity(table)
	monthCounter := countPerCity(partitions, func(tripData *trip.TripData) int { return tripData.Month })
	weekdayCounter := countPerCity(partitions, func(tripData *trip.TripData) string { return tripData.Weekday })
	hourCounter := countPerCity(partitions, func(tripData *trip.TripData) int { return tripData.StartHour })

	// counters are not empty at this point
	month, _, _ := monthCounter.Mode()
	weekday, _, _ := weekdayCounter.Mode()
	hour, _, _ := hourCounter.Mode()

	timeReport := &report.TimeReport{
		MostCommonMonth:     month,
		MostCommonMonthName: e.monthName(month),
		MostCommonWeekday:   weekday,
		MostCommonStartHour: hour,
	}
	timeReport.Metadata = e.newMetadata(report.TimeStatsType, table, startTime)

	log.Debug(e.getLogMessage("TimeStats", "most frequent times of travel calculated", nil))
	return timeReport, nil
}
