package get_available_slots

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-ProviderBooking/internal/domain"
)

// UseCase use case для получения доступных слотов исполнителя
type UseCase struct {
	bookingRepo BookingRepository
	grid        SlotGrid
	cache       SlotsCache
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	grid SlotGrid,
	cache SlotsCache,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo: bookingRepo,
		grid:        grid,
		cache:       cache,
		logger:      logger,
	}
}

// Execute выполняет use case получения доступных слотов.
// Результат - сетка без слотов с активными бронированиями; пустой список не ошибка
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: provider=%d, date=%s", req.ProviderID, req.Date)

	// 1. Валидация входных данных
	date, err := validateRequest(req)
	if err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Кэш. Ошибки кэша не мешают ответу. Версия читается до хранилища,
	// чтобы снимок, устаревший из-за параллельного изменения, не попал в кэш
	snap, cacheErr := uc.cache.Get(ctx, req.ProviderID, date)
	if cacheErr != nil {
		uc.logger.Warn("GetAvailableSlots: cache get failed provider=%d: %v", req.ProviderID, cacheErr)
	}
	if cacheErr == nil && snap.Found {
		return &Response{ProviderID: req.ProviderID, Date: date, Slots: snap.Slots}, nil
	}

	// 3. Занятые слоты из хранилища
	taken, err := uc.bookingRepo.GetActiveSlots(ctx, req.ProviderID, date)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get active slots provider=%d, date=%s: %v",
			req.ProviderID, req.Date, err)
		return nil, fmt.Errorf("%w: failed to get active slots: %v", ErrInternal, err)
	}

	// 4. Сетка минус занятые
	available := uc.grid.Available(taken)

	if cacheErr == nil {
		if err := uc.cache.Set(ctx, req.ProviderID, date, snap.Version, available); err != nil {
			uc.logger.Warn("GetAvailableSlots: cache set failed provider=%d: %v", req.ProviderID, err)
		}
	}

	uc.logger.Info("GetAvailableSlots: provider=%d, date=%s, available=%d, taken=%d",
		req.ProviderID, date.Format(domain.DateFormat), len(available), len(taken))

	return &Response{
		ProviderID: req.ProviderID,
		Date:       date,
		Slots:      available,
	}, nil
}
