package events

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/m04kA/SMC-ProviderBooking/internal/domain"
)

// RabbitMQPublisher публикует события в topic exchange.
// Routing key равен типу события (booking.created, booking.status_changed)
type RabbitMQPublisher struct {
	conn     *amqp.Connection
	channel  amqpChannel
	exchange string
	mu       sync.Mutex
	logger   Logger
}

// NewRabbitMQPublisher подключается к RabbitMQ и объявляет durable topic exchange
func NewRabbitMQPublisher(url, exchange string, logger Logger) (*RabbitMQPublisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("%w: dial: %v", ErrConnect, err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("%w: open channel: %v", ErrConnect, err)
	}

	p, err := newRabbitMQPublisher(ch, exchange, logger)
	if err != nil {
		_ = conn.Close()
		return nil, err
	}
	p.conn = conn

	return p, nil
}

func newRabbitMQPublisher(ch amqpChannel, exchange string, logger Logger) (*RabbitMQPublisher, error) {
	if err := ch.ExchangeDeclare(exchange, amqp.ExchangeTopic, true, false, false, false, nil); err != nil {
		_ = ch.Close()
		return nil, fmt.Errorf("%w: declare exchange %s: %v", ErrConnect, exchange, err)
	}

	return &RabbitMQPublisher{
		channel:  ch,
		exchange: exchange,
		logger:   logger,
	}, nil
}

// Publish отправляет событие как persistent JSON-сообщение
func (p *RabbitMQPublisher) Publish(ctx context.Context, event domain.BookingEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMarshal, err)
	}

	msg := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    event.ID,
		Type:         string(event.Type),
		Timestamp:    event.OccurredAt,
		Body:         body,
	}

	// канал AMQP не рассчитан на конкурентную публикацию
	p.mu.Lock()
	err = p.channel.PublishWithContext(ctx, p.exchange, string(event.Type), false, false, msg)
	p.mu.Unlock()

	if err != nil {
		return fmt.Errorf("%w: rabbitmq %s: %v", ErrPublish, event.Type, err)
	}

	p.logger.Info("RabbitMQPublisher: published %s id=%s booking=%s", event.Type, event.ID, event.BookingCode)
	return nil
}

// Close закрывает канал и соединение
func (p *RabbitMQPublisher) Close() error {
	err := p.channel.Close()
	if p.conn != nil {
		if connErr := p.conn.Close(); connErr != nil && err == nil {
			err = connErr
		}
	}
	return err
}
