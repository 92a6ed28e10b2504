package loader

import (
	"bikeshare/domain/entities/selection"
	"bikeshare/domain/entities/trip"
	dataErrors "bikeshare/domain/errors"
	"bikeshare/filter"
	"bikeshare/registry"
	"context"
	"fmt"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"time"
)

const loaderType = "loader"

// DefaultTimeLayouts layouts used to parse Start Time and End Time when none are configured
var DefaultTimeLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
}

// Config contains the parameters of the Loader
// + TimeLayouts: layouts tried in order to parse timestamps
// + ParallelLoad: read the datasets of different cities concurrently
type Config struct {
	TimeLayouts  []string
	ParallelLoad bool
}

// Loader reads the trips datasets of the selected cities and filters them
type Loader struct {
	registry     *registry.Registry
	filterEngine *filter.Engine
	config       Config
}

func New(sourceRegistry *registry.Registry, filterEngine *filter.Engine, config Config) *Loader {
	if len(config.TimeLayouts) == 0 {
		config.TimeLayouts = DefaultTimeLayouts
	}
	return &Loader{
		registry:     sourceRegistry,
		filterEngine: filterEngine,
		config:       config,
	}
}

func getLogMessage(method string, message string, err error) string {
	if err != nil {
		return fmt.Sprintf("[component: %s][method: %s][status: ERROR] %s: %s", loaderType, method, message, err.Error())
	}
	return fmt.Sprintf("[component: %s][method: %s][status: OK] %s", loaderType, method, message)
}

// Load reads the datasets of the selected cities, derives the time columns and keeps the trips that match
// the month and weekday selectors
func (l *Loader) Load(ctx context.Context, filterSelection selection.FilterSelection) (*trip.Table, error) {
	startTime := time.Now()
	log.Info(getLogMessage("Load", fmt.Sprintf("loading %s", filterSelection), nil))

	table, err := l.LoadCities(ctx, filterSelection.City)
	if err != nil {
		log.Error(getLogMessage("Load", "error loading cities", err))
		return nil, err
	}

	filteredTable, err := l.filterEngine.Apply(table, filterSelection.Month, filterSelection.Weekday)
	if err != nil {
		return nil, err
	}

	log.Info(getLogMessage("Load", fmt.Sprintf("%v trips loaded, %v match the filters. This took %s", table.Len(), filteredTable.Len(), time.Since(startTime)), nil))
	return filteredTable, nil
}

// LoadCities reads the dataset of each selected city and concatenates them in selector order.
// Columns are aligned by name: trips of a city without Gender or Birth Year have those values absent
func (l *Loader) LoadCities(ctx context.Context, citySelector selection.Selector) (*trip.Table, error) {
	if citySelector.IsEmpty() {
		return nil, fmt.Errorf("%w: city", dataErrors.ErrEmptySelector)
	}

	cities := citySelector.Values()
	datasetPaths := make([]string, len(cities))
	for idx, city := range cities {
		datasetPath, err := l.registry.Lookup(city)
		if err != nil {
			return nil, err
		}
		datasetPaths[idx] = datasetPath
	}

	tables := make([]*trip.Table, len(cities))
	if l.config.ParallelLoad && len(cities) > 1 {
		group, groupCtx := errgroup.WithContext(ctx)
		for idx := range cities {
			idx := idx
			group.Go(func() error {
				table, err := l.readCityTrips(groupCtx, cities[idx], datasetPaths[idx])
				if err != nil {
					return err
				}
				tables[idx] = table
				return nil
			})
		}

		if err := group.Wait(); err != nil {
			return nil, err
		}
	} else {
		for idx := range cities {
			if err := ctx.Err(); err != nil {
				return nil, err
			}

			table, err := l.readCityTrips(ctx, cities[idx], datasetPaths[idx])
			if err != nil {
				return nil, err
			}
			tables[idx] = table
		}
	}

	for idx, table := range tables {
		log.Debug(getLogMessage("LoadCities", fmt.Sprintf("[city: %s] %v trips read from %s", cities[idx], table.Len(), datasetPaths[idx]), nil))
	}

	return trip.Concat(tables...), nil
}
