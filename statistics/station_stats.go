package statistics

import (
	"bikeshare/domain/entities/report"
	"bikeshare/domain/entities/trip"
	"fmt"
	log "github.com/sirupsen/logrus"
	"github.com/umahmood/haversine"
	"time"
)

// tripKey start and end station of a trip
type tripKey struct {
	startStation string
	endStation   string
}

// StationStats returns the most popular start station, end station and trip. A trip is named
// by joining its start and end station with the configured separator
func (e *Engine) StationStats(table *trip.Table) (*report.StationReport, error) {
	startTime := time.Now()
	if err := e.checkNotEmpty("StationStats", table); err != nil {
		return nil, err
	}

	tripKeys := make(map[string]tripKey)
	tripName := func(tripData *trip.TripData) string {
		name := tripData.StartStation + e.config.PairSeparator + tripData.EndStation
		tripKeys[name] = tripKey{startStation: tripData.StartStation, endStation: tripData.EndStation}
		return name
	}

	partitions := partitionByCity(table)
	startCounter := countPerCity(partitions, func(tripData *trip.TripData) string { return tripData.StartStation })
	endCounter := countPerCity(partitions, func(tripData *trip.TripData) string { return tripData.EndStation })
	tripCounter := countPerCity(partitions, tripName)

	startStation, startTrips, _ := startCounter.Mode()
	endStation, endTrips, _ := endCounter.Mode()
	mostCommonTrip, tripCount, _ := tripCounter.Mode()

	stationReport := &report.StationReport{
		MostCommonStartStation: startStation,
		StartStationTrips:      startTrips,
		MostCommonEndStation:   endStation,
		EndStationTrips:        endTrips,
		MostCommonTrip:         mostCommonTrip,
		TripCount:              tripCount,
		TripDistanceKm:         e.tripDistance(tripKeys[mostCommonTrip]),
	}
	stationReport.Metadata = e.newMetadata(report.StationStatsType, table, startTime)

	log.Debug(e.getLogMessage("StationStats", fmt.Sprintf("most popular trip: %s (%v trips)", mostCommonTrip, tripCount), nil))
	return stationReport, nil
}

// tripDistance returns the distance between both stations of the trip if their location is known
func (e *Engine) tripDistance(key tripKey) trip.Optional[float64] {
	startStation, ok := e.config.Stations.Lookup(key.startStation)
	if !ok {
		return trip.None[float64]()
	}

	endStation, ok := e.config.Stations.Lookup(key.endStation)
	if !ok {
		return trip.None[float64]()
	}

	return trip.Some(calculateDistance(startStation.Latitude, startStation.Longitude, endStation.Latitude, endStation.Longitude))
}

// calculateDistance returns the distance between two stations using haversine formula
func calculateDistance(latStartStation float64, longStartStation float64, latEndStation float64, longEndStation float64) float64 {
	station1 := haversine.Coord{Lat: latStartStation, Lon: longStartStation}
	station2 := haversine.Coord{Lat: latEndStation, Lon: longEndStation}

	_, km := haversine.Distance(station1, station2)
	return km
}
