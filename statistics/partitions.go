package statistics

import (
	"bikeshare/domain/business/tripcounter"
	"bikeshare/domain/entities/trip"
	"cmp"
)

// cityTrips trips of the table that come from one city
type cityTrips struct {
	city  string
	trips []*trip.TripData
}

// partitionByCity splits the trips of the table by source city. Partitions follow the order in which
// each city first appears
func partitionByCity(table *trip.Table) []cityTrips {
	positions := make(map[string]int)
	var partitions []cityTrips
	for _, tripData := range table.Trips {
		idx, ok := positions[tripData.City]
		if !ok {
			idx = len(partitions)
			positions[tripData.City] = idx
			partitions = append(partitions, cityTrips{city: tripData.City})
		}
		partitions[idx].trips = append(partitions[idx].trips, tripData)
	}
	return partitions
}

// countPerCity counts the value of each trip city by city and merges the partial counters
func countPerCity[K cmp.Ordered](partitions []cityTrips, value func(*trip.TripData) K) *tripcounter.TripCounter[K] {
	merged := tripcounter.NewTripCounter[K]()
	for _, partition := range partitions {
		cityCounter := tripcounter.NewTripCounter[K]()
		for _, tripData := range partition.trips {
			cityCounter.UpdateCounter(value(tripData))
		}
		merged = merged.Merge(cityCounter)
	}
	return merged
}
