package loader

import (
	"bikeshare/domain/entities/trip"
	dataErrors "bikeshare/domain/errors"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	indexColumn        = ""
	startTimeColumn    = "Start Time"
	endTimeColumn      = "End Time"
	tripDurationColumn = "Trip Duration"
	startStationColumn = "Start Station"
	endStationColumn   = "End Station"
	userTypeColumn     = "User Type"
	genderColumn       = "Gender"
	birthYearColumn    = "Birth Year"

	byteOrderMark     = "\ufeff"
	cancelCheckPeriod = 10000
)

var requiredColumns = []string{
	startTimeColumn,
	endTimeColumn,
	tripDurationColumn,
	startStationColumn,
	endStationColumn,
	userTypeColumn,
}

// columnIndexes contains the position of each column in a dataset. Optional columns that the dataset
// does not expose have a negative position
type columnIndexes struct {
	index        int
	startTime    int
	endTime      int
	tripDuration int
	startStation int
	endStation   int
	userType     int
	gender       int
	birthYear    int
}

func (ci columnIndexes) hasGender() bool {
	return ci.gender >= 0
}

func (ci columnIndexes) hasBirthYear() bool {
	return ci.birthYear >= 0
}

// getColumnIndexes finds each column by its name in the header
func getColumnIndexes(header []string) (columnIndexes, error) {
	positions := make(map[string]int, len(header))
	for idx, name := range header {
		name = strings.TrimSpace(strings.TrimPrefix(name, byteOrderMark))
		if strings.HasPrefix(name, "Unnamed") {
			name = indexColumn
		}
		if _, ok := positions[name]; !ok {
			positions[name] = idx
		}
	}

	for _, column := range requiredColumns {
		if _, ok := positions[column]; !ok {
			return columnIndexes{}, fmt.Errorf("%w: %s", dataErrors.ErrMissingColumn, column)
		}
	}

	position := func(column string) int {
		if idx, ok := positions[column]; ok {
			return idx
		}
		return -1
	}

	return columnIndexes{
		index:        position(indexColumn),
		startTime:    position(startTimeColumn),
		endTime:      position(endTimeColumn),
		tripDuration: position(tripDurationColumn),
		startStation: position(startStationColumn),
		endStation:   position(endStationColumn),
		userType:     position(userTypeColumn),
		gender:       position(genderColumn),
		birthYear:    position(birthYearColumn),
	}, nil
}

// readCityTrips reads the whole dataset of a city. A single invalid row makes the whole read fail
func (l *Loader) readCityTrips(ctx context.Context, city string, datasetPath string) (*trip.Table, error) {
	dataFile, err := os.Open(datasetPath)
	if err != nil {
		return nil, fmt.Errorf("[city: %s] error opening %s: %w", city, datasetPath, err)
	}
	defer dataFile.Close()

	reader := csv.NewReader(dataFile)
	reader.ReuseRecord = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("[city: %s] %s has no header: %w", city, datasetPath, dataErrors.ErrMissingColumn)
		}
		return nil, fmt.Errorf("[city: %s] error reading header of %s: %w", city, datasetPath, err)
	}

	columns, err := getColumnIndexes(header)
	if err != nil {
		return nil, fmt.Errorf("[city: %s] %s: %w", city, datasetPath, err)
	}

	table := trip.NewTable([]string{city}, columns.hasGender(), columns.hasBirthYear())
	rowNumber := 0
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("[city: %s] error reading %s: %w", city, datasetPath, err)
		}

		rowNumber += 1
		if rowNumber%cancelCheckPeriod == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		tripData, err := l.getTripData(city, columns, record)
		if err != nil {
			return nil, fmt.Errorf("[city: %s][row: %v] %w", city, rowNumber, err)
		}
		table.Trips = append(table.Trips, tripData)
	}

	return table, nil
}

// getTripData builds a trip from a csv record and derives its time columns
func (l *Loader) getTripData(city string, columns columnIndexes, record []string) (*trip.TripData, error) {
	startTime, err := l.parseTimestamp(record[columns.startTime])
	if err != nil {
		return nil, err
	}

	endTime, err := l.parseTimestamp(record[columns.endTime])
	if err != nil {
		return nil, err
	}

	duration, err := parseDuration(record[columns.tripDuration])
	if err != nil {
		return nil, err
	}

	id := ""
	if columns.index >= 0 {
		id = strings.TrimSpace(record[columns.index])
	}

	tripData := trip.NewTripData(
		city,
		id,
		startTime,
		endTime,
		duration,
		strings.TrimSpace(record[columns.startStation]),
		strings.TrimSpace(record[columns.endStation]),
		strings.TrimSpace(record[columns.userType]),
	)

	if columns.hasGender() {
		if gender := strings.TrimSpace(record[columns.gender]); gender != "" {
			tripData.Gender = trip.Some(gender)
		}
	}

	if columns.hasBirthYear() {
		birthYear, err := parseBirthYear(record[columns.birthYear])
		if err != nil {
			return nil, err
		}
		tripData.BirthYear = birthYear
	}

	return tripData, nil
}

func (l *Loader) parseTimestamp(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range l.config.TimeLayouts {
		timestamp, err := time.Parse(layout, value)
		if err == nil {
			return timestamp, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", dataErrors.ErrMalformedTimestamp, value)
}

// parseDuration accepts integer and decimal seconds, e.g. 1039 or 1039.0
func parseDuration(value string) (float64, error) {
	duration, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil || math.IsNaN(duration) || math.IsInf(duration, 0) || duration < 0 {
		return 0, fmt.Errorf("%w: %q", dataErrors.ErrInvalidDuration, value)
	}
	return duration, nil
}

// parseBirthYear returns an absent value for blank cells. Decimal years like 1992.0 are accepted
func parseBirthYear(value string) (trip.Optional[int], error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return trip.None[int](), nil
	}

	year, err := strconv.ParseFloat(value, 64)
	if err != nil || math.IsNaN(year) || math.IsInf(year, 0) {
		return trip.None[int](), fmt.Errorf("%w: %q", dataErrors.ErrMalformedBirthYear, value)
	}
	return trip.Some(int(year)), nil
}
