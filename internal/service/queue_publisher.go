// Package service publishes domain events to RabbitMQ. Errors are
// logged and returned so callers can ignore failures without
// interrupting the main request flow.
package service

import (
	"context"
	"encoding/json"
	"log"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	q "github.com/hackhub/hackhub-server/internal/queue"
)

// PublishNotification publishes a NotificationEvent to the durable
// notification.email queue. It never panics; every error is logged and
// returned, and every caller in the request path discards it, because a
// notification must not fail the operation that triggered it. Messages
// are marked persistent so they survive broker restarts.
func PublishNotification(ctx context.Context, event q.NotificationEvent) error {
	if event.EnqueuedAt == "" {
		event.EnqueuedAt = time.Now().UTC().Format(time.RFC3339)
	}

	conn, err := amqp.Dial(q.BrokerURL())
	if err != nil {
		log.Printf("rabbitmq: dial failed: %v", err)
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		log.Printf("rabbitmq: channel open failed: %v", err)
		return err
	}
	defer func() { _ = ch.Close() }()

	// Ensure the queue exists (idempotent). Durable so messages survive broker restarts.
	if _, err := ch.QueueDeclare(q.NotificationQueueName, true, false, false, false, nil); err != nil {
		log.Printf("rabbitmq: queue declare failed: %v", err)
		return err
	}

	body, err := json.Marshal(event)
	if err != nil {
		log.Printf("rabbitmq: marshal event failed: %v", err)
		return err
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}

	if err := ch.PublishWithContext(ctx,
		"",                      // default exchange
		q.NotificationQueueName, // routing key = queue name
		false,                   // mandatory
		false,                   // immediate
		pub,
	); err != nil {
		log.Printf("rabbitmq: publish failed: %v", err)
		return err
	}
	return nil
}
