package trip

import "time"

// Optional holds a value that may be absent. Gender and Birth Year are not exposed by every city
type Optional[T any] struct {
	Value T    `json:"value"`
	Valid bool `json:"valid"`
}

func Some[T any](value T) Optional[T] {
	return Optional[T]{Value: value, Valid: true}
}

func None[T any]() Optional[T] {
	return Optional[T]{}
}

// Get returns the value and whether it is present
func (o Optional[T]) Get() (T, bool) {
	return o.Value, o.Valid
}

// TripData struct that contains the trip data
// + City: city which belongs the trip
// + ID: value of the index column of the source dataset
// + StartTime: date and time in which the trip begins
// + EndTime: date and time in which the trip ends
// + Duration: duration of the trip in seconds
// + StartStation: name of the station in which the trip begins
// + EndStation: name of the station in which the trip ends
// + UserType: type of rider, e.g. Subscriber or Customer
// + Gender: gender of the rider, absent for some cities
// + BirthYear: birth year of the rider, absent for some cities
// + Month, Weekday, StartHour: derived from StartTime once at load time
type TripData struct {
	City         string           `json:"city"`
	ID           string           `json:"id"`
	StartTime    time.Time        `json:"start_time"`
	EndTime      time.Time        `json:"end_time"`
	Duration     float64          `json:"duration"`
	StartStation string           `json:"start_station"`
	EndStation   string           `json:"end_station"`
	UserType     string           `json:"user_type"`
	Gender       Optional[string] `json:"gender"`
	BirthYear    Optional[int]    `json:"birth_year"`
	Month        int              `json:"month"`
	Weekday      string           `json:"weekday"`
	StartHour    int              `json:"start_hour"`
}

// NewTripData builds a trip and computes its derived columns
func NewTripData(city string, id string, startTime time.Time, endTime time.Time, duration float64, startStation string, endStation string, userType string) *TripData {
	return &TripData{
		City:         city,
		ID:           id,
		StartTime:    startTime,
		EndTime:      endTime,
		Duration:     duration,
		StartStation: startStation,
		EndStation:   endStation,
		UserType:     userType,
		Month:        int(startTime.Month()),
		Weekday:      startTime.Weekday().String(),
		StartHour:    startTime.Hour(),
	}
}

// Table is a collection of trips sharing one schema
// + Trips: trips in load order
// + Cities: source cities of the trips
// + HasGender: true if at least one source exposes the Gender column
// + HasBirthYear: true if at least one source exposes the Birth Year column
type Table struct {
	Trips        []*TripData
	Cities       []string
	HasGender    bool
	HasBirthYear bool
}

func NewTable(cities []string, hasGender bool, hasBirthYear bool) *Table {
	return &Table{
		Cities:       cities,
		HasGender:    hasGender,
		HasBirthYear: hasBirthYear,
	}
}

func (t *Table) Len() int {
	return len(t.Trips)
}

func (t *Table) IsEmpty() bool {
	return len(t.Trips) == 0
}

// WithTrips returns a table with the same schema that holds the given trips
func (t *Table) WithTrips(trips []*TripData) *Table {
	return &Table{
		Trips:        trips,
		Cities:       t.Cities,
		HasGender:    t.HasGender,
		HasBirthYear: t.HasBirthYear,
	}
}

// Concat appends the trips of other tables. Optional columns present in any table are present in the result
func Concat(tables ...*Table) *Table {
	result := &Table{}
	for _, table := range tables {
		result.Trips = append(result.Trips, table.Trips...)
		result.Cities = append(result.Cities, table.Cities...)
		result.HasGender = result.HasGender || table.HasGender
		result.HasBirthYear = result.HasBirthYear || table.HasBirthYear
	}
	return result
}
