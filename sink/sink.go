package sink

import (
	"bikeshare/communication"
	"bikeshare/domain/entities/report"
	"context"
	"fmt"
	"os"
)

const (
	ConsoleSinkType  = "console"
	RabbitMQSinkType = "rabbitmq"
)

// ReportSink receives the reports of an analysis run
type ReportSink interface {
	Send(ctx context.Context, analysisReport report.Report) error
	Close() error
}

// Config contains the parameters to build a ReportSink
// + Type: console or rabbitmq
// + RabbitMQ: used only by the rabbitmq sink
type Config struct {
	Type     string                       `yaml:"type"`
	RabbitMQ communication.RabbitMQConfig `yaml:"rabbitmq"`
}

// New initialize a sink of some type. Possible sink types are: console, rabbitmq
func New(config Config) (ReportSink, error) {
	switch config.Type {
	case ConsoleSinkType, "":
		return NewConsoleSink(os.Stdout), nil
	case RabbitMQSinkType:
		return NewRabbitSink(config.RabbitMQ)
	default:
		return nil, fmt.Errorf("invalid sink type: %s. Must be: %s or %s", config.Type, ConsoleSinkType, RabbitMQSinkType)
	}
}
