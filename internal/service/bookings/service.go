package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ProviderBooking/internal/domain"
	bookingRepo "github.com/m04kA/SMC-ProviderBooking/internal/infra/storage/booking"
	"github.com/m04kA/SMC-ProviderBooking/internal/service/bookings/models"
)

// Service сервис для работы с бронированиями
type Service struct {
	bookingRepo  BookingRepository
	txManager    TransactionManager
	publisher    EventPublisher
	cache        SlotsCache
	metrics      Metrics
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	txManager TransactionManager,
	publisher EventPublisher,
	cache SlotsCache,
	metrics Metrics,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:  bookingRepo,
		txManager:    txManager,
		publisher:    publisher,
		cache:        cache,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// GetByCode получает бронирование по публичному коду.
// Бронирование видно только его клиенту и исполнителю
func (s *Service) GetByCode(ctx context.Context, code string, userID int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByCode: fetching booking code=%s for user=%d", code, userID)

	booking, err := s.bookingRepo.GetByCode(ctx, code)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByCode: booking code=%s not found", code)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByCode: repository error for booking code=%s: %v", code, err)
		return nil, fmt.Errorf("%w: GetByCode - repository error: %v", ErrInternal, err)
	}

	if !booking.IsParty(userID) {
		s.logger.Warn("GetByCode: access denied for user=%d to booking code=%s", userID, code)
		return nil, ErrForbidden
	}

	return models.FromDomainBooking(booking), nil
}

// ListForActor получает бронирования, где пользователь клиент или исполнитель.
// Сортировка: дата, затем слот, от новых к старым
func (s *Service) ListForActor(ctx context.Context, req *models.ListBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("ListForActor: fetching bookings for user=%d, status=%v, role=%v", req.UserID, req.Status, req.Role)

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("ListForActor: invalid filter for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	bookings, err := s.bookingRepo.GetByActor(ctx, filter)
	if err != nil {
		s.logger.Error("ListForActor: repository error for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: ListForActor - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListForActor: successfully fetched %d bookings for user=%d", len(bookings), req.UserID)
	return models.FromDomainBookingList(bookings), nil
}

// UpdateStatus переводит бронирование в новый статус.
// Строка блокируется на время проверки, запись - compare-and-set по прежнему статусу
func (s *Service) UpdateStatus(ctx context.Context, code string, req *models.UpdateStatusRequest) (*models.BookingResponse, error) {
	s.logger.Info("UpdateStatus: updating booking code=%s to status=%s by user=%d", code, req.Status, req.UserID)

	var (
		updated  *domain.Booking
		previous domain.BookingStatus
		target   domain.BookingStatus
	)

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		booking, err := s.bookingRepo.GetByCode(txCtx, code)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			return fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
		}

		// Чужое бронирование - 403 при любом запрошенном статусе, даже нераспознанном
		if !booking.IsParty(req.UserID) {
			return ErrForbidden
		}

		target, err = domain.ParseBookingStatus(req.Status)
		if err != nil {
			return fmt.Errorf("%w: invalid status %q", ErrInvalidInput, req.Status)
		}

		if err := domain.CheckTransition(booking, domain.Actor{ID: req.UserID}, target); err != nil {
			if errors.Is(err, domain.ErrForbidden) {
				return ErrForbidden
			}
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, booking.Status, target)
		}

		previous = booking.Status
		updated, err = s.bookingRepo.UpdateStatus(txCtx, booking.ID, booking.Status, target)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrStatusConflict) {
				return fmt.Errorf("%w: status changed concurrently", ErrInvalidTransition)
			}
			return fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
		}

		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrBookingNotFound):
			s.logger.Warn("UpdateStatus: booking code=%s not found", code)
		case errors.Is(err, ErrForbidden):
			s.logger.Warn("UpdateStatus: access denied for user=%d to booking code=%s", req.UserID, code)
		case errors.Is(err, ErrInvalidInput):
			s.logger.Warn("UpdateStatus: invalid status=%s for booking code=%s", req.Status, code)
		case errors.Is(err, ErrInvalidTransition):
			s.logger.Warn("UpdateStatus: booking code=%s: %v", code, err)
		default:
			s.logger.Error("UpdateStatus: booking code=%s: %v", code, err)
			if !errors.Is(err, ErrInternal) {
				err = fmt.Errorf("%w: UpdateStatus - %v", ErrInternal, err)
			}
		}
		return nil, err
	}

	s.metrics.StatusTransition(string(target))
	s.logger.Info("UpdateStatus: successfully updated booking code=%s %s -> %s", code, previous, target)

	s.afterStatusChange(ctx, updated, previous)

	return models.FromDomainBooking(updated), nil
}

// Cancel отменяет бронирование: UpdateStatus с целевым статусом CANCELLED
func (s *Service) Cancel(ctx context.Context, code string, userID int64) (*models.BookingResponse, error) {
	return s.UpdateStatus(ctx, code, &models.UpdateStatusRequest{
		UserID: userID,
		Status: string(domain.StatusCancelled),
	})
}

// afterStatusChange сбрасывает кэш слотов и публикует событие.
// Изменение уже зафиксировано, ошибки только логируются
func (s *Service) afterStatusChange(ctx context.Context, booking *domain.Booking, previous domain.BookingStatus) {
	if err := s.cache.Invalidate(ctx, booking.ProviderID, booking.Date); err != nil {
		s.logger.Warn("UpdateStatus: failed to invalidate slots cache provider=%d: %v", booking.ProviderID, err)
	}

	event := domain.NewStatusChangedEvent(booking, previous, s.timeProvider.Now())
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.metrics.EventPublishFailed(string(event.Type))
		s.logger.Warn("UpdateStatus: failed to publish %s code=%s: %v", event.Type, booking.Code, err)
	}
}
