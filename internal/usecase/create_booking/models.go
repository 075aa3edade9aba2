package create_booking

import (
	"time"

	"github.com/m04kA/SMC-ProviderBooking/pkg/types"
)

// Request модель запроса на создание бронирования.
// Дата и слот приходят строками, их разбор - часть валидации
type Request struct {
	CustomerID int64  // ID аутентифицированного пользователя
	Role       string // Роль аутентифицированного пользователя
	ProviderID int64  // ID исполнителя
	Date       string // "2025-06-01"
	Slot       string // "10:00"
}

// Settings параметры создания бронирований из конфигурации
type Settings struct {
	Grid            GridChecker
	Location        *time.Location
	MaxCodeAttempts int
}

// GridChecker проверка принадлежности слота сетке
type GridChecker interface {
	Contains(slot types.TimeString) bool
}

// Response модель ответа с созданным бронированием
type Response struct {
	Code       string           // Публичный код бронирования
	CustomerID int64            // ID клиента
	ProviderID int64            // ID исполнителя
	Date       time.Time        // Дата бронирования
	Slot       types.TimeString // Время начала слота
	Status     string           // Статус бронирования
	CreatedAt  time.Time        // Время создания
	UpdatedAt  time.Time        // Время обновления
}
