package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ProviderBooking/internal/domain"
	bookingRepo "github.com/m04kA/SMC-ProviderBooking/internal/infra/storage/booking"
)

// reserve атомарно занимает слот и код бронирования.
// При занятом коде код перегенерируется, не более maxCodeAttempts раз.
// Занятый слот никогда не повторяется
func (uc *UseCase) reserve(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	for attempt := 1; attempt <= uc.settings.MaxCodeAttempts; attempt++ {
		code, err := uc.codeGen.Generate()
		if err != nil {
			return nil, fmt.Errorf("%w: generate booking code: %v", ErrInternal, err)
		}
		booking.Code = code

		created, err := uc.bookingRepo.Create(ctx, booking)
		switch {
		case err == nil:
			return created, nil

		case errors.Is(err, bookingRepo.ErrCodeTaken):
			uc.metrics.CodeRedraw()
			uc.logger.Warn("CreateBooking: booking code collision, attempt=%d/%d",
				attempt, uc.settings.MaxCodeAttempts)

		case errors.Is(err, bookingRepo.ErrSlotTaken):
			uc.metrics.SlotConflict()
			return nil, ErrSlotTaken

		case errors.Is(err, bookingRepo.ErrSelfBooking):
			return nil, &ValidationError{Errors: []error{ErrSelfBooking}}

		default:
			return nil, fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}
	}

	return nil, ErrIdentifierExhausted
}
