package create_booking

import (
	"time"

	"github.com/m04kA/SMC-ProviderBooking/internal/domain"
	"github.com/m04kA/SMC-ProviderBooking/internal/integrations/userservice"
	"github.com/m04kA/SMC-ProviderBooking/pkg/types"
)

// validated разобранные поля запроса
type validated struct {
	date time.Time
	slot types.TimeString
}

// validateRequest проверяет все правила и собирает нарушения.
// provider - профиль цели из UserService, nil если пользователь не найден
func validateRequest(req *Request, provider *userservice.User, settings Settings, now time.Time) (*validated, error) {
	var (
		errs   []error
		result validated
	)

	// 1. Дата не в прошлом по часовому поясу сервиса
	date, err := time.Parse(domain.DateFormat, req.Date)
	if err != nil || isDateInPast(date, now, settings.Location) {
		errs = append(errs, ErrInvalidDate)
	} else {
		result.date = date
	}

	// 2. Слот из сетки
	slot, err := types.NewTimeStringFromString(req.Slot)
	if err != nil || !settings.Grid.Contains(slot) {
		errs = append(errs, ErrInvalidSlot)
	} else {
		result.slot = slot
	}

	// 3. Нельзя бронировать самого себя
	if req.CustomerID == req.ProviderID {
		errs = append(errs, ErrSelfBooking)
	}

	// 4. Бронирует клиент, цель - исполнитель
	if domain.Role(req.Role) != domain.RoleCustomer || !isProvider(provider) {
		errs = append(errs, ErrInvalidRole)
	}

	if len(errs) > 0 {
		return nil, &ValidationError{Errors: errs}
	}

	return &result, nil
}

// isDateInPast сравнивает календарные даты: сегодняшняя дата допустима
func isDateInPast(date, now time.Time, loc *time.Location) bool {
	if loc == nil {
		loc = time.UTC
	}
	local := now.In(loc)
	today := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.UTC)
	return date.Before(today)
}

func isProvider(user *userservice.User) bool {
	return user != nil && domain.Role(user.Role) == domain.RoleProvider
}
