// Package events публикация событий бронирований в RabbitMQ
// Потребители: внешняя аналитика и интеграции. Публикация best-effort,
// ошибка брокера никогда не откатывает бронирование
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	exchangeName = "chilliwili.bookings"
	contentType  = "application/json"
)

// EventType тип события жизненного цикла бронирования
type EventType string

const (
	EventBookingCreated   EventType = "booking.created"
	EventBookingConfirmed EventType = "booking.confirmed"
	EventBookingCancelled EventType = "booking.cancelled"
	EventBookingUpdated   EventType = "booking.updated"
)

// BookingEvent событие, публикуемое в шину
type BookingEvent struct {
	Type       EventType `json:"type"`
	BookingID  int64     `json:"booking_id"`
	CustomerID int64     `json:"customer_id"`
	Date       string    `json:"date"`
	StartTime  string    `json:"start_time"`
	Duration   int       `json:"duration_hours"`
	TotalPrice int64     `json:"total_price"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, args ...interface{})
	Error(format string, args ...interface{})
}

// Publisher издатель событий поверх AMQP соединения
type Publisher struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	log     Logger
}

// NewPublisher подключается к брокеру и объявляет exchange
func NewPublisher(amqpURL string, log Logger) (*Publisher, error) {
	conn, err := amqp.Dial(amqpURL)
	if err != nil {
		return nil, fmt.Errorf("events: failed to connect to broker: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("events: failed to open channel: %w", err)
	}

	err = channel.ExchangeDeclare(
		exchangeName,
		"topic",
		true,  // durable
		false, // auto-delete
		false, // internal
		false, // no-wait
		nil,
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("events: failed to declare exchange: %w", err)
	}

	return &Publisher{
		conn:    conn,
		channel: channel,
		log:     log,
	}, nil
}

// Publish публикует событие с routing key, равным типу события
func (p *Publisher) Publish(ctx context.Context, event BookingEvent) error {
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now()
	}

	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("events: failed to marshal event: %w", err)
	}

	err = p.channel.PublishWithContext(ctx,
		exchangeName,
		string(event.Type),
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  contentType,
			DeliveryMode: amqp.Persistent,
			Timestamp:    event.OccurredAt,
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("events: failed to publish %s: %w", event.Type, err)
	}

	p.log.Info("Published event %s for booking %d", event.Type, event.BookingID)
	return nil
}

// Close закрывает канал и соединение с брокером
func (p *Publisher) Close() error {
	if err := p.channel.Close(); err != nil {
		p.conn.Close()
		return fmt.Errorf("events: failed to close channel: %w", err)
	}
	if err := p.conn.Close(); err != nil {
		return fmt.Errorf("events: failed to close connection: %w", err)
	}
	return nil
}
