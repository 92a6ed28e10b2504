package communication

import (
	"context"
	"fmt"
	amqp "github.com/rabbitmq/amqp091-go"
	"time"
)

// ReportMessage a serialized report ready to be published
// + RunID: ID of the analysis run, used as correlation ID
// + Type: type of report, e.g. time-stats
// + Body: serialized report
type ReportMessage struct {
	RunID string
	Type  string
	Body  []byte
}

// RabbitMQ publishes reports in the queue set in its config
type RabbitMQ struct {
	connection *amqp.Connection
	channel    *amqp.Channel
	config     RabbitMQConfig
}

// NewRabbitMQ dials the broker and opens the channel used to publish. The reports queue
// is declared before returning
func NewRabbitMQ(config RabbitMQConfig) (*RabbitMQ, error) {
	connection, err := amqp.Dial(config.URL)
	if err != nil {
		return nil, fmt.Errorf("error connecting to RabbitMQ: %w", err)
	}

	channel, err := connection.Channel()
	if err != nil {
		_ = connection.Close()
		return nil, fmt.Errorf("error opening RabbitMQ channel: %w", err)
	}

	rabbitMQ := &RabbitMQ{
		connection: connection,
		channel:    channel,
		config:     config,
	}

	if err := rabbitMQ.declareReportQueue(); err != nil {
		_ = rabbitMQ.KillBadBunny()
		return nil, err
	}

	return rabbitMQ, nil
}

func (r *RabbitMQ) declareReportQueue() error {
	queueConfig := r.config.Queue
	_, err := r.channel.QueueDeclare(
		queueConfig.Name,
		queueConfig.Durable,
		queueConfig.AutoDelete,
		queueConfig.Exclusive,
		false,
		nil,
	)
	if err != nil {
		return fmt.Errorf("error declaring reports queue %s: %w", queueConfig.Name, err)
	}
	return nil
}

// QueueName name of the queue in which reports are published
func (r *RabbitMQ) QueueName() string {
	return r.config.Queue.Name
}

// PublishReport publishes the message through the default exchange, so the routing key is the queue name
func (r *RabbitMQ) PublishReport(ctx context.Context, message ReportMessage) error {
	err := r.channel.PublishWithContext(ctx,
		"",
		r.config.Queue.Name,
		false,
		false,
		amqp.Publishing{
			DeliveryMode:  amqp.Persistent,
			ContentType:   r.config.contentType(),
			CorrelationId: message.RunID,
			Type:          message.Type,
			AppId:         r.config.AppID,
			Timestamp:     time.Now(),
			Body:          message.Body,
		},
	)
	if err != nil {
		return fmt.Errorf("error publishing %s report: %w", message.Type, err)
	}
	return nil
}

// KillBadBunny close RabbitMQ's channel and connection
func (r *RabbitMQ) KillBadBunny() error {
	if err := r.channel.Close(); err != nil {
		_ = r.connection.Close()
		return fmt.Errorf("error closing RabbitMQ channel: %w", err)
	}

	if err := r.connection.Close(); err != nil {
		return fmt.Errorf("error closing RabbitMQ connection: %w", err)
	}
	return nil
}
