package get_available_slots

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-ProviderBooking/internal/domain"
)

// validateRequest валидирует входные данные запроса и возвращает разобранную дату.
// Прошедшие даты допустимы: для них просто показываются незанятые слоты
func validateRequest(req *Request) (time.Time, error) {
	if req.ProviderID <= 0 {
		return time.Time{}, fmt.Errorf("%w: providerID must be positive", ErrInvalidInput)
	}

	date, err := time.Parse(domain.DateFormat, req.Date)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q: %v", ErrInvalidDate, req.Date, err)
	}

	return date, nil
}
