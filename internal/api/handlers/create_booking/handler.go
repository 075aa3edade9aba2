package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ProviderBooking/internal/api/handlers"
	"github.com/m04kA/SMC-ProviderBooking/internal/api/middleware"
	createBooking "github.com/m04kA/SMC-ProviderBooking/internal/usecase/create_booking"
)

const (
	msgMissingUserID      = "отсутствует ID пользователя"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgValidationFailed   = "бронирование не прошло проверку"
	msgInvalidDate        = "некорректная дата бронирования, ожидается YYYY-MM-DD не раньше сегодняшнего дня"
	msgInvalidSlot        = "время не входит в сетку слотов"
	msgSelfBooking        = "нельзя забронировать самого себя"
	msgInvalidRole        = "бронировать может только клиент и только у исполнителя"
	msgSlotTaken          = "выбранный временной слот уже занят"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings - Unauthorized request")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(actor))
	if err != nil {
		var vErr *createBooking.ValidationError
		switch {
		case errors.As(err, &vErr):
			h.logger.Warn("POST /bookings - Validation failed: customer_id=%d, provider_id=%d, error=%v",
				actor.ID, req.ProviderID, err)
			handlers.RespondValidationError(w, msgValidationFailed, toFieldErrors(vErr))

		case errors.Is(err, createBooking.ErrSlotTaken):
			h.logger.Warn("POST /bookings - Slot taken: provider_id=%d, date=%s, slot=%s",
				req.ProviderID, req.Date, req.Slot)
			handlers.RespondConflict(w, msgSlotTaken)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: customer_id=%d, provider_id=%d, error=%v",
				actor.ID, req.ProviderID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created successfully: booking_code=%s, customer_id=%d, provider_id=%d",
		result.Code, actor.ID, req.ProviderID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
