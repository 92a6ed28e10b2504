package statistics

import (
	"bikeshare/domain/entities"
	"bikeshare/domain/entities/station"
	"bikeshare/domain/entities/trip"
	dataErrors "bikeshare/domain/errors"
	"fmt"
	log "github.com/sirupsen/logrus"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"time"
)

const (
	engineType           = "statistics-engine"
	DefaultPairSeparator = " - "
)

// Config contains the parameters of the statistics Engine
// + Months: canonical ordered list of months, used to name the most common month
// + PairSeparator: string placed between start and end station to build a trip name
// + Stations: locations of known stations. It can be nil
type Config struct {
	Months        []string
	PairSeparator string
	Stations      *station.Directory
}

// Engine computes the reports of a filtered trip table. Every routine is a pure function of the table
type Engine struct {
	config Config
	runID  string
}

func New(config Config) *Engine {
	if config.PairSeparator == "" {
		config.PairSeparator = DefaultPairSeparator
	}
	return &Engine{config: config}
}

// ForRun returns a copy of the Engine whose reports carry the given run ID
func (e *Engine) ForRun(runID string) *Engine {
	return &Engine{
		config: e.config,
		runID:  runID,
	}
}

func (e *Engine) getLogMessage(method string, message string, err error) string {
	if err != nil {
		return fmt.Sprintf("[component: %s][runID: %s][method: %s][status: ERROR] %s: %s", engineType, e.runID, method, message, err.Error())
	}
	return fmt.Sprintf("[component: %s][runID: %s][method: %s][status: OK] %s", engineType, e.runID, method, message)
}

func (e *Engine) newMetadata(reportType string, table *trip.Table, startTime time.Time) entities.Metadata {
	metadata := entities.NewMetadata(e.runID, reportType, table.Cities, table.Len())
	metadata.Elapsed = time.Since(startTime)
	return metadata
}

// checkNotEmpty returns ErrEmptyTable if the table has no trips
func (e *Engine) checkNotEmpty(method string, table *trip.Table) error {
	if table == nil || table.IsEmpty() {
		err := fmt.Errorf("%s: %w", method, dataErrors.ErrEmptyTable)
		log.Warn(e.getLogMessage(method, "there are no trips to analyze", err))
		return err
	}
	return nil
}

// monthName returns the name of the month from the canonical list, e.g. 3 -> March
func (e *Engine) monthName(month int) string {
	if month >= 1 && month <= len(e.config.Months) {
		return cases.Title(language.English).String(e.config.Months[month-1])
	}
	if month >= 1 && month <= 12 {
		return time.Month(month).String()
	}
	return fmt.Sprintf("%v", month)
}
