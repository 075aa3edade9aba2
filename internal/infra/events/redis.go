package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/m04kA/SMC-ProviderBooking/internal/domain"
)

// RedisPublisher публикует события в Redis Pub/Sub.
// Канал: <prefix>:<тип события>, например bookings:booking.created
type RedisPublisher struct {
	client redisPublisher
	prefix string
	logger Logger
}

// NewRedisPublisher создает паблишер поверх клиента go-redis
func NewRedisPublisher(client redisPublisher, prefix string, logger Logger) *RedisPublisher {
	return &RedisPublisher{client: client, prefix: prefix, logger: logger}
}

// Channel возвращает имя канала для типа события
func (p *RedisPublisher) Channel(eventType domain.EventType) string {
	return fmt.Sprintf("%s:%s", p.prefix, eventType)
}

func (p *RedisPublisher) Publish(ctx context.Context, event domain.BookingEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMarshal, err)
	}

	channel := p.Channel(event.Type)
	receivers, err := p.client.Publish(ctx, channel, body).Result()
	if err != nil {
		return fmt.Errorf("%w: redis %s: %v", ErrPublish, channel, err)
	}

	p.logger.Info("RedisPublisher: published %s id=%s to %s, receivers=%d", event.Type, event.ID, channel, receivers)
	return nil
}

// Close клиент Redis закрывается владельцем
func (p *RedisPublisher) Close() error {
	return nil
}
