package sink

import (
	"bikeshare/communication"
	"bikeshare/domain/entities/report"
	"context"
	"encoding/json"
	"fmt"
	log "github.com/sirupsen/logrus"
)

const rabbitSinkType = "rabbitmq-sink"

// publisher is the part of communication.RabbitMQ used by the RabbitSink
type publisher interface {
	QueueName() string
	PublishReport(ctx context.Context, message communication.ReportMessage) error
	KillBadBunny() error
}

// RabbitSink publishes each report as a JSON message in a RabbitMQ queue
type RabbitSink struct {
	publisher publisher
}

// NewRabbitSink connects to RabbitMQ. The reports queue is declared on connection
func NewRabbitSink(config communication.RabbitMQConfig) (*RabbitSink, error) {
	rabbitMQ, err := communication.NewRabbitMQ(config)
	if err != nil {
		return nil, err
	}

	log.Infof("[sink: %s][queue: %s][status: OK] connected to RabbitMQ", rabbitSinkType, rabbitMQ.QueueName())
	return newRabbitSink(rabbitMQ), nil
}

func newRabbitSink(rabbitPublisher publisher) *RabbitSink {
	return &RabbitSink{publisher: rabbitPublisher}
}

func (rs *RabbitSink) Send(ctx context.Context, analysisReport report.Report) error {
	metadata := analysisReport.GetMetadata()
	reportBytes, err := json.Marshal(analysisReport)
	if err != nil {
		return fmt.Errorf("%w: error marshalling %s report", err, metadata.GetType())
	}

	message := communication.ReportMessage{
		RunID: metadata.GetRunID(),
		Type:  metadata.GetType(),
		Body:  reportBytes,
	}
	if err := rs.publisher.PublishReport(ctx, message); err != nil {
		log.Errorf("[sink: %s][runID: %s][status: ERROR] %s", rabbitSinkType, metadata.GetRunID(), err.Error())
		return err
	}

	log.Debugf("[sink: %s][runID: %s][status: OK] %s report published in %s", rabbitSinkType, metadata.GetRunID(), metadata.GetType(), rs.publisher.QueueName())
	return nil
}

func (rs *RabbitSink) Close() error {
	return rs.publisher.KillBadBunny()
}
