package domain

import (
	"time"

	"github.com/m04kA/SMC-ProviderBooking/pkg/types"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending   BookingStatus = "PENDING"
	StatusCompleted BookingStatus = "COMPLETED"
	StatusCancelled BookingStatus = "CANCELLED"
)

// ParseBookingStatus конвертирует строку в BookingStatus с валидацией
func ParseBookingStatus(s string) (BookingStatus, error) {
	switch status := BookingStatus(s); status {
	case StatusPending, StatusCompleted, StatusCancelled:
		return status, nil
	default:
		return "", ErrUnknownStatus
	}
}

// IsActive returns true if the booking occupies its slot
func (s BookingStatus) IsActive() bool {
	return s == StatusPending || s == StatusCompleted
}

// IsTerminal returns true if no transitions are possible from this status
func (s BookingStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// Role роль аутентифицированного пользователя
type Role string

const (
	RoleCustomer Role = "CUSTOMER"
	RoleProvider Role = "PROVIDER"
)

// ParseRole конвертирует строку в Role с валидацией
func ParseRole(s string) (Role, error) {
	switch role := Role(s); role {
	case RoleCustomer, RoleProvider:
		return role, nil
	default:
		return "", ErrUnknownRole
	}
}

// Actor аутентифицированный пользователь, выполняющий операцию
type Actor struct {
	ID   int64
	Role Role
}

// Booking represents a provider appointment
type Booking struct {
	ID         int64  // внутренний идентификатор, наружу не отдается
	Code       string // публичный код из 8 символов [A-Z0-9]
	CustomerID int64
	ProviderID int64
	Date       time.Time
	Slot       types.TimeString
	Status     BookingStatus

	CancelledAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsActive returns true if the booking occupies its slot
func (b *Booking) IsActive() bool {
	return b.Status.IsActive()
}

// IsParty returns true if the user is the customer or the provider of the booking
func (b *Booking) IsParty(userID int64) bool {
	return b.CustomerID == userID || b.ProviderID == userID
}

// PartySide сторона бронирования, с которой пользователь смотрит список
type PartySide string

const (
	SideCustomer PartySide = "customer"
	SideProvider PartySide = "provider"
)

// ParsePartySide конвертирует строку в PartySide с валидацией
func ParsePartySide(s string) (PartySide, error) {
	switch side := PartySide(s); side {
	case SideCustomer, SideProvider:
		return side, nil
	default:
		return "", ErrUnknownSide
	}
}

// ActorBookingsFilter фильтр для получения бронирований пользователя
type ActorBookingsFilter struct {
	UserID int64          // Обязательный параметр
	Side   *PartySide     // nil - и как клиент, и как исполнитель
	Status *BookingStatus // Фильтр по статусу (опционально)
}
