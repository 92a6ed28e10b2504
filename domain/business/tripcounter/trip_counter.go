package tripcounter

import (
	dataErrors "bikeshare/domain/errors"
	"cmp"
	"slices"
)

// TripCounter counts the amount of trips for each value of a column, e.g. trips per start station
// + counters: map with the following structure: {value: amount of trips}
// + total: amount of trips counted
type TripCounter[K cmp.Ordered] struct {
	counters map[K]int
	total    int
}

// ValueCounter amount of trips of one value
type ValueCounter[K cmp.Ordered] struct {
	Value   K
	Counter int
}

func NewTripCounter[K cmp.Ordered]() *TripCounter[K] {
	return &TripCounter[K]{
		counters: make(map[K]int),
	}
}

func (tc *TripCounter[K]) UpdateCounter(value K) {
	tc.counters[value] += 1
	tc.total += 1
}

func (tc *TripCounter[K]) GetTotal() int {
	return tc.total
}

func (tc *TripCounter[K]) IsEmpty() bool {
	return tc.total == 0
}

// Merge returns a new TripCounter with the counters of both
func (tc *TripCounter[K]) Merge(tripCounter2 *TripCounter[K]) *TripCounter[K] {
	merged := NewTripCounter[K]()
	for value, counter := range tc.counters {
		merged.counters[value] += counter
	}
	for value, counter := range tripCounter2.counters {
		merged.counters[value] += counter
	}
	merged.total = tc.total + tripCounter2.total
	return merged
}

// Mode returns the most frequent value and its counter. Ties are broken by the smallest value.
// If nothing was counted ErrEmptyTable is returned
func (tc *TripCounter[K]) Mode() (K, int, error) {
	var mode K
	if tc.IsEmpty() {
		return mode, 0, dataErrors.ErrEmptyTable
	}

	bestCounter := 0
	for value, counter := range tc.counters {
		if counter > bestCounter || (counter == bestCounter && cmp.Less(value, mode)) {
			mode = value
			bestCounter = counter
		}
	}

	return mode, bestCounter, nil
}

// Distribution returns every value with its counter, most frequent first. Ties are ordered by value
func (tc *TripCounter[K]) Distribution() []ValueCounter[K] {
	distribution := make([]ValueCounter[K], 0, len(tc.counters))
	for value, counter := range tc.counters {
		distribution = append(distribution, ValueCounter[K]{Value: value, Counter: counter})
	}

	slices.SortFunc(distribution, func(a, b ValueCounter[K]) int {
		if a.Counter != b.Counter {
			return cmp.Compare(b.Counter, a.Counter)
		}
		return cmp.Compare(a.Value, b.Value)
	})

	return distribution
}

// Min returns the smallest value counted
func (tc *TripCounter[K]) Min() (K, error) {
	var minValue K
	if tc.IsEmpty() {
		return minValue, dataErrors.ErrEmptyTable
	}

	first := true
	for value := range tc.counters {
		if first || value < minValue {
			minValue = value
			first = false
		}
	}
	return minValue, nil
}

// Max returns the biggest value counted
func (tc *TripCounter[K]) Max() (K, error) {
	var maxValue K
	if tc.IsEmpty() {
		return maxValue, dataErrors.ErrEmptyTable
	}

	first := true
	for value := range tc.counters {
		if first || value > maxValue {
			maxValue = value
			first = false
		}
	}
	return maxValue, nil
}
