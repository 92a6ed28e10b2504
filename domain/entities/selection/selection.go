package selection

import (
	dataErrors "bikeshare/domain/errors"
	"bikeshare/utils"
	"fmt"
	"strings"
)

const (
	allKeyword      = "all"
	valuesDelimiter = ","
)

type selectorKind int

const (
	single selectorKind = iota
	multiple
)

// Selector is either a single value or a set of values. Both cases are consumed through Values,
// a Single selector being a set of one element
type Selector struct {
	kind   selectorKind
	values []string
}

// Single returns a selector with one value
func Single(value string) Selector {
	return Selector{
		kind:   single,
		values: []string{value},
	}
}

// Multiple returns a selector with a set of values. Repeated values are kept once
func Multiple(values ...string) Selector {
	var uniqueValues []string
	for _, value := range values {
		if !utils.ContainsString(value, uniqueValues) {
			uniqueValues = append(uniqueValues, value)
		}
	}
	return Selector{
		kind:   multiple,
		values: uniqueValues,
	}
}

func (s Selector) IsSingle() bool {
	return s.kind == single
}

func (s Selector) IsEmpty() bool {
	return len(s.values) == 0
}

// Values returns a copy of the selected values
func (s Selector) Values() []string {
	values := make([]string, len(s.values))
	copy(values, s.values)
	return values
}

func (s Selector) String() string {
	if s.IsSingle() {
		return s.values[0]
	}
	return "[" + strings.Join(s.values, ", ") + "]"
}

// FilterSelection is the triple of selectors of one analysis run
type FilterSelection struct {
	City    Selector
	Month   Selector
	Weekday Selector
}

func NewFilterSelection(city Selector, month Selector, weekday Selector) FilterSelection {
	return FilterSelection{
		City:    city,
		Month:   month,
		Weekday: weekday,
	}
}

func (fs FilterSelection) String() string {
	return fmt.Sprintf("city: %s, month: %s, weekday: %s", fs.City, fs.Month, fs.Weekday)
}

// ParseSelector turns the raw user input into a Selector validated against the allowed values.
// + "chicago" returns Single("chicago")
// + "chicago, washington" returns Multiple("chicago", "washington")
// + "all" returns Multiple with every allowed value
func ParseSelector(raw string, allowed []string) (Selector, error) {
	choice := utils.NormalizeValue(raw)
	if choice == "" {
		return Selector{}, fmt.Errorf("%w: no value given", dataErrors.ErrInvalidSelection)
	}

	if choice == allKeyword {
		return Multiple(normalizeAll(allowed)...), nil
	}

	if !strings.Contains(choice, valuesDelimiter) {
		if err := validateChoice(choice, allowed); err != nil {
			return Selector{}, err
		}
		return Single(choice), nil
	}

	var choices []string
	for _, value := range strings.Split(choice, valuesDelimiter) {
		value = utils.NormalizeValue(value)
		if value == "" {
			continue
		}
		if err := validateChoice(value, allowed); err != nil {
			return Selector{}, err
		}
		choices = append(choices, value)
	}

	if len(choices) == 0 {
		return Selector{}, fmt.Errorf("%w: no value given", dataErrors.ErrInvalidSelection)
	}

	return Multiple(choices...), nil
}

func validateChoice(choice string, allowed []string) error {
	if utils.IndexOfString(choice, allowed) < 0 {
		return fmt.Errorf("%w: %q is not one of %s", dataErrors.ErrInvalidSelection, choice, strings.Join(allowed, ", "))
	}
	return nil
}

func normalizeAll(values []string) []string {
	normalized := make([]string, 0, len(values))
	for _, value := range values {
		normalized = append(normalized, utils.NormalizeValue(value))
	}
	return normalized
}
