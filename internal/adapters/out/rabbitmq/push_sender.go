// Package rabbitmq delivers push notifications by publishing them to a
// RabbitMQ topic exchange. Mobile gateway consumers bind per-role queues
// (e.g. notifications.driver) and forward the messages to devices.
package rabbitmq

import (
	"context"
	"encoding/json"

	"yumexpress/internal/core/ports"

	amqp "github.com/rabbitmq/amqp091-go"
)

const channelName = "push"

// pushMessage is the wire format published to the exchange.
type pushMessage struct {
	RecipientID   string `json:"recipient_id"`
	RecipientRole string `json:"recipient_role"`
	Title         string `json:"title"`
	Body          string `json:"body"`
	OrderID       string `json:"order_id"`
	OrderNumber   string `json:"order_number"`
}

// PushSender implements NotificationSender over a RabbitMQ topic exchange.
type PushSender struct {
	channel  *amqp.Channel
	exchange string
}

// NewPushSender opens a channel on the given connection and declares the
// durable topic exchange notifications are published to.
func NewPushSender(conn *amqp.Connection, exchange string) (*PushSender, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, err
	}

	err = ch.ExchangeDeclare(
		exchange,
		"topic",
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return nil, err
	}

	return &PushSender{
		channel:  ch,
		exchange: exchange,
	}, nil
}

// Channel names the delivery channel for logging and metrics.
func (s *PushSender) Channel() string {
	return channelName
}

// Send publishes one notification with the recipient role as routing key
// suffix, so gateways can subscribe to notifications.customer,
// notifications.driver and so on.
func (s *PushSender) Send(ctx context.Context, notification ports.Notification) error {
	msg := pushMessage{
		RecipientID:   notification.RecipientID.String(),
		RecipientRole: notification.RecipientRole.String(),
		Title:         notification.Title,
		Body:          notification.Body,
		OrderID:       notification.OrderID.String(),
		OrderNumber:   notification.OrderNumber,
	}

	body, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	routingKey := "notifications." + notification.RecipientRole.String()

	return s.channel.PublishWithContext(
		ctx,
		s.exchange,
		routingKey,
		false,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
		})
}

// Close releases the AMQP channel.
func (s *PushSender) Close() error {
	return s.channel.Close()
}
