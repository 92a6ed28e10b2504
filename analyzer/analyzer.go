package main

import (
	"bikeshare/analyzer/config"
	"bikeshare/domain/entities/selection"
	"bikeshare/domain/entities/station"
	"bikeshare/filter"
	"bikeshare/loader"
	"bikeshare/pipeline"
	"bikeshare/registry"
	"bikeshare/sink"
	"bikeshare/statistics"
	"context"
	"errors"
	"fmt"
	log "github.com/sirupsen/logrus"
	"io/fs"
)

const analyzerType = "analyzer"

// Analyzer wires the components needed to answer one filter selection
type Analyzer struct {
	config   *config.AnalyzerConfig
	registry *registry.Registry
	stations *station.Directory
	pipeline *pipeline.Pipeline
	newSink  func(sink.Config) (sink.ReportSink, error)
}

func NewAnalyzer(analyzerConfig *config.AnalyzerConfig) (*Analyzer, error) {
	stations, err := loadStations(analyzerConfig.StationsFile)
	if err != nil {
		return nil, err
	}

	sourceRegistry := registry.New(analyzerConfig.DataDir, analyzerConfig.Cities)
	filterEngine := filter.New(analyzerConfig.Months, analyzerConfig.Weekdays)
	tripsLoader := loader.New(sourceRegistry, filterEngine, loader.Config{
		TimeLayouts:  analyzerConfig.TimeLayouts,
		ParallelLoad: analyzerConfig.ParallelLoad,
	})
	engine := statistics.New(statistics.Config{
		Months:        analyzerConfig.Months,
		PairSeparator: analyzerConfig.PairSeparator,
		Stations:      stations,
	})

	return &Analyzer{
		config:   analyzerConfig,
		registry: sourceRegistry,
		stations: stations,
		pipeline: pipeline.New(tripsLoader, engine),
		newSink:  sink.New,
	}, nil
}

// loadStations reads the station directory. Without it the distance of the most popular trip is not
// reported, so a missing file only logs a warning
func loadStations(stationsFile string) (*station.Directory, error) {
	if stationsFile == "" {
		return nil, nil
	}

	stations, err := station.LoadDirectory(stationsFile)
	if errors.Is(err, fs.ErrNotExist) {
		log.Warnf("[%s] stations file %s not found, trip distances are not reported", analyzerType, stationsFile)
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error loading stations file: %w", err)
	}

	log.Infof("[%s] %v stations loaded from %s", analyzerType, stations.Len(), stationsFile)
	return stations, nil
}

// ParseSelection validates the raw city, month and weekday choices
func (a *Analyzer) ParseSelection(rawCity string, rawMonth string, rawWeekday string) (selection.FilterSelection, error) {
	citySelector, err := selection.ParseSelector(rawCity, a.registry.Cities())
	if err != nil {
		return selection.FilterSelection{}, fmt.Errorf("invalid city: %w", err)
	}

	monthSelector, err := selection.ParseSelector(rawMonth, a.config.Months)
	if err != nil {
		return selection.FilterSelection{}, fmt.Errorf("invalid month: %w", err)
	}

	weekdaySelector, err := selection.ParseSelector(rawWeekday, a.config.Weekdays)
	if err != nil {
		return selection.FilterSelection{}, fmt.Errorf("invalid day: %w", err)
	}

	return selection.NewFilterSelection(citySelector, monthSelector, weekdaySelector), nil
}

// Run computes the reports of the selection and sends them to the configured sink
func (a *Analyzer) Run(ctx context.Context, filterSelection selection.FilterSelection) error {
	result, err := a.pipeline.Run(ctx, filterSelection)
	if err != nil {
		return err
	}

	reportSink, err := a.newSink(a.config.ReportSink)
	if err != nil {
		return fmt.Errorf("error creating report sink: %w", err)
	}
	defer func() {
		if closeErr := reportSink.Close(); closeErr != nil {
			log.Errorf("[%s] error closing report sink: %s", analyzerType, closeErr.Error())
		}
	}()

	return a.pipeline.Emit(ctx, result, reportSink)
}
