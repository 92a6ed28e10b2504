package sink

import (
	"bikeshare/domain/entities/report"
	"context"
	"fmt"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"io"
	"strings"
)

var separator = strings.Repeat("-", 40)

// ConsoleSink writes the reports in a human readable way
type ConsoleSink struct {
	writer io.Writer
}

func NewConsoleSink(writer io.Writer) *ConsoleSink {
	return &ConsoleSink{writer: writer}
}

func (cs *ConsoleSink) Send(_ context.Context, analysisReport report.Report) error {
	var builder strings.Builder
	switch r := analysisReport.(type) {
	case *report.TimeReport:
		writeTimeReport(&builder, r)
	case *report.StationReport:
		writeStationReport(&builder, r)
	case *report.DurationReport:
		writeDurationReport(&builder, r)
	case *report.UserReport:
		writeUserReport(&builder, r)
	default:
		return fmt.Errorf("unknown report type: %T", analysisReport)
	}

	fmt.Fprintf(&builder, "\nThis took %v seconds.\n%s\n", analysisReport.GetMetadata().GetElapsed().Seconds(), separator)
	_, err := io.WriteString(cs.writer, builder.String())
	return err
}

func (cs *ConsoleSink) Close() error {
	return nil
}

func writeTimeReport(builder *strings.Builder, r *report.TimeReport) {
	builder.WriteString("\nCalculating The Most Frequent Times of Travel...\n\n")
	fmt.Fprintf(builder, "The most common month is: %s.\n", r.MostCommonMonthName)
	fmt.Fprintf(builder, "The most common day is: %s.\n", r.MostCommonWeekday)
	fmt.Fprintf(builder, "The most common start hour is: %v.\n", r.MostCommonStartHour)
}

func writeStationReport(builder *strings.Builder, r *report.StationReport) {
	builder.WriteString("\nCalculating The Most Popular Stations and Trip...\n\n")
	fmt.Fprintf(builder, "The most commonly used start station is: %s (%v trips)\n", r.MostCommonStartStation, r.StartStationTrips)
	fmt.Fprintf(builder, "The most commonly used end station is: %s (%v trips)\n", r.MostCommonEndStation, r.EndStationTrips)
	fmt.Fprintf(builder, "The most frequent trip is: %s (%v trips)\n", r.MostCommonTrip, r.TripCount)
	if distance, ok := r.TripDistanceKm.Get(); ok {
		fmt.Fprintf(builder, "The distance between both stations is: %.2f km\n", distance)
	}
}

func writeDurationReport(builder *strings.Builder, r *report.DurationReport) {
	builder.WriteString("\nCalculating Trip Duration...\n\n")
	fmt.Fprintf(builder, "The total travel time is: %s.\n", r.Total)
	fmt.Fprintf(builder, "The mean travel time is: %s.\n", r.Mean)
}

func writeUserReport(builder *strings.Builder, r *report.UserReport) {
	cities := titleCities(r.GetMetadata().GetCities())

	builder.WriteString("\nCalculating User Stats...\n\n")
	builder.WriteString("Distribution for user types:\n")
	writeValueCounts(builder, r.UserTypes)

	if r.GenderAvailable {
		builder.WriteString("\nDistribution for each gender:\n")
		writeValueCounts(builder, r.Genders)
	} else {
		fmt.Fprintf(builder, "\nOops! There is no gender information for %s.\n", cities)
	}

	if r.BirthYearAvailable {
		fmt.Fprintf(builder, "\nThe oldest rider was born in %v\n", r.EarliestBirthYear)
		fmt.Fprintf(builder, "The youngest rider was born in %v\n", r.MostRecentBirthYear)
		fmt.Fprintf(builder, "The most common birth year amongst the riders is %v\n", r.MostCommonBirthYear)
	} else {
		fmt.Fprintf(builder, "\nOops! There is no birth year information for %s.\n", cities)
	}
}

func writeValueCounts(builder *strings.Builder, valueCounts []report.ValueCount) {
	for _, valueCount := range valueCounts {
		fmt.Fprintf(builder, "  %-12s %v\n", valueCount.Value, valueCount.Count)
	}
}

func titleCities(cities []string) string {
	titleCaser := cases.Title(language.English)
	titled := make([]string, 0, len(cities))
	for _, city := range cities {
		titled = append(titled, titleCaser.String(city))
	}
	return strings.Join(titled, ", ")
}
