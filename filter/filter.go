package filter

import (
	"bikeshare/domain/entities/selection"
	"bikeshare/domain/entities/trip"
	dataErrors "bikeshare/domain/errors"
	"bikeshare/utils"
	"fmt"
	log "github.com/sirupsen/logrus"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const filterType = "filter-engine"

// Engine keeps the trips that match a month selector and a weekday selector
// + months: canonical ordered list of months, the position of a month in this list + 1 is its number
// + weekdays: canonical list of weekday names
type Engine struct {
	months   []string
	weekdays []string
}

func New(months []string, weekdays []string) *Engine {
	return &Engine{
		months:   append([]string(nil), months...),
		weekdays: append([]string(nil), weekdays...),
	}
}

func getLogMessage(method string, message string, err error) string {
	if err != nil {
		return fmt.Sprintf("[component: %s][method: %s][status: ERROR] %s: %s", filterType, method, message, err.Error())
	}
	return fmt.Sprintf("[component: %s][method: %s][status: OK] %s", filterType, method, message)
}

// Apply returns a table with the trips whose month matches any value of monthSelector and whose weekday
// matches any value of weekdaySelector. Trips keep their order. If no trip matches, the table is empty
func (e *Engine) Apply(table *trip.Table, monthSelector selection.Selector, weekdaySelector selection.Selector) (*trip.Table, error) {
	monthNumbers, err := e.ResolveMonths(monthSelector)
	if err != nil {
		log.Error(getLogMessage("Apply", "error resolving months", err))
		return nil, err
	}

	weekdayNames, err := e.ResolveWeekdays(weekdaySelector)
	if err != nil {
		log.Error(getLogMessage("Apply", "error resolving weekdays", err))
		return nil, err
	}

	var filteredTrips []*trip.TripData
	for _, tripData := range table.Trips {
		if _, ok := monthNumbers[tripData.Month]; !ok {
			continue
		}
		if _, ok := weekdayNames[tripData.Weekday]; !ok {
			continue
		}
		filteredTrips = append(filteredTrips, tripData)
	}

	log.Debug(getLogMessage("Apply", fmt.Sprintf("kept %v of %v trips for months %s and weekdays %s", len(filteredTrips), table.Len(), monthSelector, weekdaySelector), nil))
	return table.WithTrips(filteredTrips), nil
}

// ResolveMonths returns the set of month numbers of the selector. The number of a month is its position in the
// canonical list of months, not in the selector
func (e *Engine) ResolveMonths(monthSelector selection.Selector) (map[int]struct{}, error) {
	if monthSelector.IsEmpty() {
		return nil, fmt.Errorf("%w: month", dataErrors.ErrEmptySelector)
	}

	monthNumbers := make(map[int]struct{})
	for _, month := range monthSelector.Values() {
		idx := utils.IndexOfString(utils.NormalizeValue(month), e.months)
		if idx < 0 {
			return nil, fmt.Errorf("%w: %s", dataErrors.ErrUnknownMonth, month)
		}
		monthNumbers[idx+1] = struct{}{}
	}

	return monthNumbers, nil
}

// ResolveWeekdays returns the set of weekday names of the selector in title case, e.g. Monday
func (e *Engine) ResolveWeekdays(weekdaySelector selection.Selector) (map[string]struct{}, error) {
	if weekdaySelector.IsEmpty() {
		return nil, fmt.Errorf("%w: weekday", dataErrors.ErrEmptySelector)
	}

	titleCaser := cases.Title(language.English)
	weekdayNames := make(map[string]struct{})
	for _, weekday := range weekdaySelector.Values() {
		normalized := utils.NormalizeValue(weekday)
		if utils.IndexOfString(normalized, e.weekdays) < 0 {
			return nil, fmt.Errorf("%w: %s", dataErrors.ErrUnknownWeekday, weekday)
		}
		weekdayNames[titleCaser.String(normalized)] = struct{}{}
	}

	return weekdayNames, nil
}
