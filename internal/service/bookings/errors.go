package bookings

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("service.bookings: booking not found")

	// ErrForbidden возвращается, когда пользователь не является стороной бронирования
	// или не вправе выполнить переход
	ErrForbidden = errors.New("service.bookings: access denied")

	// ErrInvalidTransition возвращается, когда переход статуса недопустим
	// (в том числе если статус успели изменить параллельно)
	ErrInvalidTransition = errors.New("service.bookings: invalid status transition")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("service.bookings: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service.bookings: internal error")
)
