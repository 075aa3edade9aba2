package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ProviderBooking/internal/domain"
	"github.com/m04kA/SMC-ProviderBooking/internal/integrations/userservice"
)

// BookingRepository интерфейс репозитория бронирований.
// Create - атомарная условная вставка: ErrSlotTaken, если активное бронирование
// на (исполнитель, дата, слот) уже есть, ErrCodeTaken, если занят код
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
}

// UserServiceClient интерфейс клиента для UserService
type UserServiceClient interface {
	GetUser(ctx context.Context, userID int64) (*userservice.User, error)
}

// CodeGenerator генератор публичных кодов бронирования
type CodeGenerator interface {
	Generate() (string, error)
}

// EventPublisher публикует события жизненного цикла бронирования
type EventPublisher interface {
	Publish(ctx context.Context, event domain.BookingEvent) error
}

// SlotsCache кэш свободных слотов, сбрасывается после создания бронирования
type SlotsCache interface {
	Invalidate(ctx context.Context, providerID int64, date time.Time) error
}

// Metrics бизнес-метрики создания бронирований
type Metrics interface {
	BookingCreated()
	SlotConflict()
	CodeRedraw()
	EventPublishFailed(eventType string)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
