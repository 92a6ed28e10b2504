package errors

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownCity          = errors.New("unknown city")
	ErrMalformedTimestamp   = errors.New("malformed timestamp")
	ErrInvalidDuration      = errors.New("invalid trip duration")
	ErrEmptyTable           = errors.New("empty trip table")
	ErrOptionalColumnAbsent = errors.New("optional column absent")
	ErrMissingColumn        = errors.New("missing required column")
	ErrMalformedBirthYear   = errors.New("malformed birth year")
	ErrUnknownMonth         = errors.New("unknown month")
	ErrUnknownWeekday       = errors.New("unknown weekday")
	ErrEmptySelector        = errors.New("empty selector")
	ErrInvalidSelection     = errors.New("invalid selection")
	ErrInvalidConfig        = errors.New("invalid config")
)

// StageError tells which stage of an analysis run failed
// + Stage: name of the stage, e.g. load, time-stats
// + Err: cause of the failure
type StageError struct {
	Stage string
	Err   error
}

func NewStageError(stage string, err error) *StageError {
	return &StageError{
		Stage: stage,
		Err:   err,
	}
}

func (se *StageError) Error() string {
	return fmt.Sprintf("stage %s failed: %s", se.Stage, se.Err.Error())
}

func (se *StageError) Unwrap() error {
	return se.Err
}
