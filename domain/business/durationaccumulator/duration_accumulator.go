package durationaccumulator

import (
	dataErrors "bikeshare/domain/errors"
	"fmt"
	"math"
)

// DurationAccumulator struct that collects data about the duration of trips
// + Counter: counts the amount of data collected
// + TotalDuration: sum of durations in seconds
type DurationAccumulator struct {
	Counter       int     `json:"counter"`
	TotalDuration float64 `json:"total_duration"`
}

func NewDurationAccumulator() *DurationAccumulator {
	return &DurationAccumulator{}
}

// UpdateAccumulator adds a new duration. Negative or non-finite durations are rejected
func (da *DurationAccumulator) UpdateAccumulator(newDuration float64) error {
	if math.IsNaN(newDuration) || math.IsInf(newDuration, 0) || newDuration < 0 {
		return fmt.Errorf("%w: %v", dataErrors.ErrInvalidDuration, newDuration)
	}
	da.Counter += 1
	da.TotalDuration += newDuration
	return nil
}

func (da *DurationAccumulator) Merge(durationAccumulator2 *DurationAccumulator) *DurationAccumulator {
	return &DurationAccumulator{
		Counter:       da.Counter + durationAccumulator2.Counter,
		TotalDuration: da.TotalDuration + durationAccumulator2.TotalDuration,
	}
}

// GetAverageDuration returns the mean duration. ErrEmptyTable if no duration was collected
func (da *DurationAccumulator) GetAverageDuration() (float64, error) {
	if da.Counter == 0 {
		return 0, fmt.Errorf("cannot get average duration: %w", dataErrors.ErrEmptyTable)
	}
	return da.TotalDuration / float64(da.Counter), nil
}
