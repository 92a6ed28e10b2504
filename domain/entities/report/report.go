package report

import (
	"bikeshare/domain/entities"
	"bikeshare/domain/entities/trip"
	"fmt"
)

const (
	TimeStatsType     = "time-stats"
	StationStatsType  = "station-stats"
	DurationStatsType = "duration-stats"
	UserStatsType     = "user-stats"

	secondsPerDay    = 86400
	secondsPerHour   = 3600
	secondsPerMinute = 60
)

// Report is the result of one statistics routine
type Report interface {
	GetMetadata() entities.Metadata
}

// TimeReport most frequent times of travel
type TimeReport struct {
	Metadata            entities.Metadata `json:"metadata"`
	MostCommonMonth     int               `json:"most_common_month"`
	MostCommonMonthName string            `json:"most_common_month_name"`
	MostCommonWeekday   string            `json:"most_common_weekday"`
	MostCommonStartHour int               `json:"most_common_start_hour"`
}

func (r *TimeReport) GetMetadata() entities.Metadata {
	return r.Metadata
}

// StationReport most popular stations and trip
// + TripDistanceKm: distance between the stations of the most common trip, if both stations are known
type StationReport struct {
	Metadata               entities.Metadata      `json:"metadata"`
	MostCommonStartStation string                 `json:"most_common_start_station"`
	StartStationTrips      int                    `json:"start_station_trips"`
	MostCommonEndStation   string                 `json:"most_common_end_station"`
	EndStationTrips        int                    `json:"end_station_trips"`
	MostCommonTrip         string                 `json:"most_common_trip"`
	TripCount              int                    `json:"trip_count"`
	TripDistanceKm         trip.Optional[float64] `json:"trip_distance_km"`
}

func (r *StationReport) GetMetadata() entities.Metadata {
	return r.Metadata
}

// TotalBreakdown total duration split in days, hours, minutes and seconds
type TotalBreakdown struct {
	Days    int64 `json:"days"`
	Hours   int64 `json:"hours"`
	Minutes int64 `json:"minutes"`
	Seconds int64 `json:"seconds"`
}

func NewTotalBreakdown(totalSeconds int64) TotalBreakdown {
	remainder := totalSeconds % secondsPerDay
	return TotalBreakdown{
		Days:    totalSeconds / secondsPerDay,
		Hours:   remainder / secondsPerHour,
		Minutes: (remainder % secondsPerHour) / secondsPerMinute,
		Seconds: (remainder % secondsPerHour) % secondsPerMinute,
	}
}

func (tb TotalBreakdown) TotalSeconds() int64 {
	return tb.Days*secondsPerDay + tb.Hours*secondsPerHour + tb.Minutes*secondsPerMinute + tb.Seconds
}

func (tb TotalBreakdown) String() string {
	return fmt.Sprintf("%dd %dh %dm %ds", tb.Days, tb.Hours, tb.Minutes, tb.Seconds)
}

// MeanBreakdown mean duration split in minutes and seconds
type MeanBreakdown struct {
	Minutes int64 `json:"minutes"`
	Seconds int64 `json:"seconds"`
}

func NewMeanBreakdown(meanSeconds int64) MeanBreakdown {
	return MeanBreakdown{
		Minutes: meanSeconds / secondsPerMinute,
		Seconds: meanSeconds % secondsPerMinute,
	}
}

func (mb MeanBreakdown) TotalSeconds() int64 {
	return mb.Minutes*secondsPerMinute + mb.Seconds
}

func (mb MeanBreakdown) String() string {
	return fmt.Sprintf("%dm%ds", mb.Minutes, mb.Seconds)
}

// DurationReport total and mean trip duration
type DurationReport struct {
	Metadata      entities.Metadata `json:"metadata"`
	TotalDuration float64           `json:"total_duration"`
	MeanDuration  float64           `json:"mean_duration"`
	Total         TotalBreakdown    `json:"total"`
	Mean          MeanBreakdown     `json:"mean"`
}

func (r *DurationReport) GetMetadata() entities.Metadata {
	return r.Metadata
}

// ValueCount amount of trips for a value of a categorical column
type ValueCount struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// UserReport distributions of riders. Gender and birth year are available when the table exposes the
// column and at least one trip carries a value; otherwise their fields are left empty
type UserReport struct {
	Metadata            entities.Metadata `json:"metadata"`
	UserTypes           []ValueCount      `json:"user_types"`
	GenderAvailable     bool              `json:"gender_available"`
	Genders             []ValueCount      `json:"genders,omitempty"`
	BirthYearAvailable  bool              `json:"birth_year_available"`
	EarliestBirthYear   int               `json:"earliest_birth_year,omitempty"`
	MostRecentBirthYear int               `json:"most_recent_birth_year,omitempty"`
	MostCommonBirthYear int               `json:"most_common_birth_year,omitempty"`
}

func (r *UserReport) GetMetadata() entities.Metadata {
	return r.Metadata
}
