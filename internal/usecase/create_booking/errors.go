package create_booking

import (
	"errors"
	"strings"
)

var (
	// ErrInvalidDate возвращается, когда дата некорректна или уже прошла
	ErrInvalidDate = errors.New("create_booking: invalid booking date")

	// ErrInvalidSlot возвращается, когда время не входит в сетку слотов
	ErrInvalidSlot = errors.New("create_booking: invalid time slot")

	// ErrSelfBooking возвращается, когда пользователь бронирует сам себя
	ErrSelfBooking = errors.New("create_booking: customer and provider must differ")

	// ErrInvalidRole возвращается, когда бронирует не клиент или цель не исполнитель
	ErrInvalidRole = errors.New("create_booking: invalid role")

	// ErrSlotTaken возвращается, когда слот уже занят активным бронированием
	ErrSlotTaken = errors.New("create_booking: slot already taken")

	// ErrIdentifierExhausted возвращается, когда не удалось подобрать свободный код
	ErrIdentifierExhausted = errors.New("create_booking: booking code attempts exhausted")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)

// ValidationError собранные нарушения правил создания бронирования.
// Каждое нарушение доступно через errors.Is
type ValidationError struct {
	Errors []error
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Errors))
	for _, err := range e.Errors {
		msgs = append(msgs, err.Error())
	}
	return "create_booking: validation failed: " + strings.Join(msgs, "; ")
}

func (e *ValidationError) Unwrap() []error {
	return e.Errors
}
