package statistics

import (
	"bikeshare/domain/business/durationaccumulator"
	"bikeshare/domain/entities/report"
	"bikeshare/domain/entities/trip"
	"fmt"
	log "github.com/sirupsen/logrus"
	"time"
)

// DurationStats returns the total and mean trip duration. The total is split in days, hours, minutes
// and seconds, the mean in minutes and seconds. Both are truncated to whole seconds before splitting
func (e *Engine) DurationStats(table *trip.Table) (*report.DurationReport, error) {
	startTime := time.Now()
	if err := e.checkNotEmpty("DurationStats", table); err != nil {
		return nil, err
	}

	accumulator := durationaccumulator.NewDurationAccumulator()
	for _, partition := range partitionByCity(table) {
		cityAccumulator := durationaccumulator.NewDurationAccumulator()
		for _, tripData := range partition.trips {
			if err := cityAccumulator.UpdateAccumulator(tripData.Duration); err != nil {
				err = fmt.Errorf("[city: %s][trip: %s] %w", tripData.City, tripData.ID, err)
				log.Error(e.getLogMessage("DurationStats", "invalid trip duration", err))
				return nil, err
			}
		}

		cityMean, _ := cityAccumulator.GetAverageDuration()
		log.Debug(e.getLogMessage("DurationStats", fmt.Sprintf("[city: %s] %v trips, mean travel time %s", partition.city, cityAccumulator.Counter, report.NewMeanBreakdown(int64(cityMean))), nil))
		accumulator = accumulator.Merge(cityAccumulator)
	}

	meanDuration, err := accumulator.GetAverageDuration()
	if err != nil {
		return nil, err
	}

	durationReport := &report.DurationReport{
		TotalDuration: accumulator.TotalDuration,
		MeanDuration:  meanDuration,
		Total:         report.NewTotalBreakdown(int64(accumulator.TotalDuration)),
		Mean:          report.NewMeanBreakdown(int64(meanDuration)),
	}
	durationReport.Metadata = e.newMetadata(report.DurationStatsType, table, startTime)

	log.Debug(e.getLogMessage("DurationStats", fmt.Sprintf("total travel time %s, mean travel time %s", durationReport.Total, durationReport.Mean), nil))
	return durationReport, nil
}
