package service

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"github.com/iliyamo/print-shop-booking/internal/queue"
)

// AMQPPublisher publishes reservation events to RabbitMQ. Each Publish dials
// its own connection.
type AMQPPublisher struct {
	url     string
	log     *zap.Logger
	timeout time.Duration
}

// NewAMQPPublisher returns a publisher for the broker at url.
func NewAMQPPublisher(url string, log *zap.Logger) *AMQPPublisher {
	if log == nil {
		log = zap.NewNop()
	}
	return &AMQPPublisher{url: url, log: log, timeout: 3 * time.Second}
}

// Publish sends ev to the durable reservation.events queue as a persistent
// JSON message.
func (p *AMQPPublisher) Publish(ctx context.Context, ev queue.ReservationEvent) error {
	conn, err := amqp.DialConfig(p.url, amqp.Config{Dial: amqp.DefaultDial(p.timeout)})
	if err != nil {
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		return err
	}
	defer func() { _ = ch.Close() }()

	if _, err := ch.QueueDeclare(
		queue.QueueName, // name
		true,            // durable
		false,           // autoDelete
		false,           // exclusive
		false,           // noWait
		nil,             // args
	); err != nil {
		return err
	}

	body, err := json.Marshal(ev)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()
	err = ch.PublishWithContext(ctx,
		"",              // default exchange
		queue.QueueName, // routing key = queue name
		false,           // mandatory
		false,           // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			MessageId:    ev.EventID,
			Type:         ev.Type,
			Timestamp:    time.Now().UTC(),
			Body:         body,
		},
	)
	if err == nil {
		p.log.Debug("reservation event published", zap.String("type", ev.Type), zap.String("reservation_id", ev.ReservationID))
	}
	return err
}
