package booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking.repository: booking not found")

	// ErrSlotTaken возвращается, когда активное бронирование на (исполнитель, дата, слот) уже есть
	ErrSlotTaken = errors.New("booking.repository: slot already taken")

	// ErrCodeTaken возвращается, когда код бронирования уже используется
	ErrCodeTaken = errors.New("booking.repository: booking code already taken")

	// ErrSelfBooking возвращается, когда клиент и исполнитель совпадают
	ErrSelfBooking = errors.New("booking.repository: customer and provider must differ")

	// ErrStatusConflict возвращается, когда статус бронирования изменился до обновления
	ErrStatusConflict = errors.New("booking.repository: booking status changed concurrently")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("booking.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("booking.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("booking.repository: failed to scan row")
)
