package create_booking

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-ProviderBooking/internal/api/handlers"
	"github.com/m04kA/SMC-ProviderBooking/internal/domain"
	createBooking "github.com/m04kA/SMC-ProviderBooking/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	ProviderID int64  `json:"providerId"`
	Date       string `json:"date"` // "2025-06-01"
	Slot       string `json:"slot"` // "10:00"
}

// BookingResponse HTTP response model
type BookingResponse struct {
	BookingCode string    `json:"bookingCode"`
	CustomerID  int64     `json:"customerId"`
	ProviderID  int64     `json:"providerId"`
	Date        string    `json:"date"`
	Slot        string    `json:"slot"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case.
// Дата и слот разбираются в use case, чтобы все нарушения попали в один ответ
func (r *CreateBookingRequest) ToUseCaseRequest(actor domain.Actor) *createBooking.Request {
	return &createBooking.Request{
		CustomerID: actor.ID,
		Role:       string(actor.Role),
		ProviderID: r.ProviderID,
		Date:       r.Date,
		Slot:       r.Slot,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		BookingCode: resp.Code,
		CustomerID:  resp.CustomerID,
		ProviderID:  resp.ProviderID,
		Date:        resp.Date.Format(domain.DateFormat),
		Slot:        resp.Slot.String(),
		Status:      resp.Status,
		CreatedAt:   resp.CreatedAt,
		UpdatedAt:   resp.UpdatedAt,
	}
}

// validationCodes коды нарушений в теле ответа 400
var validationCodes = []struct {
	err     error
	code    string
	message string
}{
	{createBooking.ErrInvalidDate, "INVALID_DATE", msgInvalidDate},
	{createBooking.ErrInvalidSlot, "INVALID_SLOT", msgInvalidSlot},
	{createBooking.ErrSelfBooking, "SELF_BOOKING", msgSelfBooking},
	{createBooking.ErrInvalidRole, "INVALID_ROLE", msgInvalidRole},
}

// toFieldErrors переводит нарушения use case в элементы ответа
func toFieldErrors(vErr *createBooking.ValidationError) []handlers.FieldError {
	out := make([]handlers.FieldError, 0, len(vErr.Errors))
	for _, err := range vErr.Errors {
		for _, vc := range validationCodes {
			if errors.Is(err, vc.err) {
				out = append(out, handlers.FieldError{Code: vc.code, Message: vc.message})
				break
			}
		}
	}
	return out
}
