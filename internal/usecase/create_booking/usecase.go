package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ProviderBooking/internal/domain"
	userClient "github.com/m04kA/SMC-ProviderBooking/internal/integrations/userservice"
)

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	userClient   UserServiceClient
	codeGen      CodeGenerator
	publisher    EventPublisher
	cache        SlotsCache
	metrics      Metrics
	settings     Settings
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	userClient UserServiceClient,
	codeGen CodeGenerator,
	publisher EventPublisher,
	cache SlotsCache,
	metrics Metrics,
	settings Settings,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		userClient:   userClient,
		codeGen:      codeGen,
		publisher:    publisher,
		cache:        cache,
		metrics:      metrics,
		settings:     settings,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case создания бронирования.
// Конфликт слота решает условная вставка в хранилище, блокировки не нужны
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: customer=%d, provider=%d, date=%s, slot=%s",
		req.CustomerID, req.ProviderID, req.Date, req.Slot)

	// 1. Профиль исполнителя. Неизвестный пользователь - не исполнитель
	provider, err := uc.lookupProvider(ctx, req.ProviderID)
	if err != nil {
		return nil, err
	}

	// 2. Все правила валидации
	parsed, err := validateRequest(req, provider, uc.settings, uc.timeProvider.Now())
	if err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	if provider.Category != nil {
		uc.logger.Info("CreateBooking: provider=%d category=%s", req.ProviderID, *provider.Category)
	}

	// 3. Занимаем слот и код
	created, err := uc.reserve(ctx, &domain.Booking{
		CustomerID: req.CustomerID,
		ProviderID: req.ProviderID,
		Date:       parsed.date,
		Slot:       parsed.slot,
		Status:     domain.StatusPending,
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrSlotTaken):
			uc.logger.Warn("CreateBooking: slot taken provider=%d, date=%s, slot=%s",
				req.ProviderID, req.Date, req.Slot)
		case errors.Is(err, ErrIdentifierExhausted):
			uc.logger.Error("CreateBooking: no free booking code after %d attempts", uc.settings.MaxCodeAttempts)
		default:
			var vErr *ValidationError
			if !errors.As(err, &vErr) {
				uc.logger.Error("CreateBooking: %v", err)
			}
		}
		return nil, err
	}

	uc.metrics.BookingCreated()
	uc.logger.Info("CreateBooking: successfully created booking code=%s", created.Code)

	// 4. Побочные эффекты после фиксации. Ошибки не влияют на результат
	uc.afterCreate(ctx, created)

	return &Response{
		Code:       created.Code,
		CustomerID: created.CustomerID,
		ProviderID: created.ProviderID,
		Date:       created.Date,
		Slot:       created.Slot,
		Status:     string(created.Status),
		CreatedAt:  created.CreatedAt,
		UpdatedAt:  created.UpdatedAt,
	}, nil
}

// lookupProvider возвращает nil без ошибки, если пользователя нет
func (uc *UseCase) lookupProvider(ctx context.Context, providerID int64) (*userClient.User, error) {
	if providerID <= 0 {
		return nil, nil
	}

	user, err := uc.userClient.GetUser(ctx, providerID)
	if err != nil {
		if errors.Is(err, userClient.ErrUserNotFound) {
			uc.logger.Warn("CreateBooking: provider id=%d not found", providerID)
			return nil, nil
		}
		uc.logger.Error("CreateBooking: failed to get provider id=%d: %v", providerID, err)
		return nil, fmt.Errorf("%w: failed to get provider: %v", ErrInternal, err)
	}

	return user, nil
}

func (uc *UseCase) afterCreate(ctx context.Context, booking *domain.Booking) {
	if err := uc.cache.Invalidate(ctx, booking.ProviderID, booking.Date); err != nil {
		uc.logger.Warn("CreateBooking: failed to invalidate slots cache provider=%d: %v", booking.ProviderID, err)
	}

	event := domain.NewBookingCreatedEvent(booking, uc.timeProvider.Now())
	if err := uc.publisher.Publish(ctx, event); err != nil {
		uc.metrics.EventPublishFailed(string(event.Type))
		uc.logger.Warn("CreateBooking: failed to publish %s code=%s: %v", event.Type, booking.Code, err)
	}
}
