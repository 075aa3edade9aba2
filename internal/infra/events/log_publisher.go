package events

import (
	"context"

	"github.com/m04kA/SMC-ProviderBooking/internal/domain"
)

// LogPublisher пишет события в лог. Используется, когда брокер не настроен
type LogPublisher struct {
	logger Logger
}

// NewLogPublisher создает паблишер в лог
func NewLogPublisher(logger Logger) *LogPublisher {
	return &LogPublisher{logger: logger}
}

func (p *LogPublisher) Publish(ctx context.Context, event domain.BookingEvent) error {
	p.logger.Info("Event %s: id=%s, booking=%s, customer=%d, provider=%d, date=%s, slot=%s, status=%s",
		event.Type, event.ID, event.BookingCode, event.CustomerID, event.ProviderID, event.Date, event.Slot, event.Status)
	return nil
}

func (p *LogPublisher) Close() error {
	return nil
}
