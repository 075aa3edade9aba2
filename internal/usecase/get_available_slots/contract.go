package get_available_slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ProviderBooking/internal/infra/cache/slots"
	"github.com/m04kA/SMC-ProviderBooking/pkg/types"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetActiveSlots(ctx context.Context, providerID int64, date time.Time) ([]types.TimeString, error)
}

// SlotGrid дневная сетка слотов
type SlotGrid interface {
	Available(taken []types.TimeString) []types.TimeString
}

// SlotsCache версионированный кэш свободных слотов (cache-aside)
type SlotsCache interface {
	Get(ctx context.Context, providerID int64, date time.Time) (slots.Snapshot, error)
	Set(ctx context.Context, providerID int64, date time.Time, version int64, available []types.TimeString) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
