package domain

import (
	"time"

	"github.com/google/uuid"
)

// EventType тип события жизненного цикла бронирования
type EventType string

const (
	EventBookingCreated       EventType = "booking.created"
	EventBookingStatusChanged EventType = "booking.status_changed"
)

// BookingEvent событие для внешних подписчиков (уведомления)
type BookingEvent struct {
	ID             string         `json:"eventId"`
	Type           EventType      `json:"type"`
	BookingCode    string         `json:"bookingCode"`
	CustomerID     int64          `json:"customerId"`
	ProviderID     int64          `json:"providerId"`
	Date           string         `json:"date"`
	Slot           string         `json:"slot"`
	Status         BookingStatus  `json:"status"`
	PreviousStatus *BookingStatus `json:"previousStatus,omitempty"`
	OccurredAt     time.Time      `json:"occurredAt"`
}

// NewBookingCreatedEvent событие о создании бронирования
func NewBookingCreatedEvent(b *Booking, at time.Time) BookingEvent {
	return newEvent(EventBookingCreated, b, nil, at)
}

// NewStatusChangedEvent событие о смене статуса бронирования
func NewStatusChangedEvent(b *Booking, previous BookingStatus, at time.Time) BookingEvent {
	return newEvent(EventBookingStatusChanged, b, &previous, at)
}

func newEvent(eventType EventType, b *Booking, previous *BookingStatus, at time.Time) BookingEvent {
	return BookingEvent{
		ID:             uuid.NewString(),
		Type:           eventType,
		BookingCode:    b.Code,
		CustomerID:     b.CustomerID,
		ProviderID:     b.ProviderID,
		Date:           b.Date.Format(DateFormat),
		Slot:           b.Slot.String(),
		Status:         b.Status,
		PreviousStatus: previous,
		OccurredAt:     at.UTC(),
	}
}
