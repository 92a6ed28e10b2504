package entities

import "time"

// Metadata this struct contains extra information about a report produced by an analysis run
// + RunID: ID of the run that produced the report
// + Type: this field helps us to recognize what type of report it is
// + Cities: cities whose data were analyzed
// + Rows: amount of trips the report was computed from
// + Elapsed: time spent computing the report
type Metadata struct {
	RunID   string        `json:"run_id"`
	Type    string        `json:"type"`
	Cities  []string      `json:"cities"`
	Rows    int           `json:"rows"`
	Elapsed time.Duration `json:"elapsed"`
}

func NewMetadata(runID string, reportType string, cities []string, rows int) Metadata {
	return Metadata{
		RunID:  runID,
		Type:   reportType,
		Cities: cities,
		Rows:   rows,
	}
}

func (m Metadata) GetType() string {
	return m.Type
}

func (m Metadata) GetRunID() string {
	return m.RunID
}

func (m Metadata) GetCities() []string {
	return m.Cities
}

func (m Metadata) GetElapsed() time.Duration {
	return m.Elapsed
}
