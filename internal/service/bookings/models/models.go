package models

import (
	"time"

	"github.com/m04kA/SMC-ProviderBooking/internal/domain"
	"github.com/m04kA/SMC-ProviderBooking/pkg/ptr"
)

// Request модели

// UpdateStatusRequest запрос на смену статуса бронирования
type UpdateStatusRequest struct {
	UserID int64  `json:"userId"`
	Status string `json:"status"`
}

// ListBookingsRequest запрос на получение бронирований пользователя
type ListBookingsRequest struct {
	UserID int64   `json:"userId"`
	Status *string `json:"status,omitempty"` // Фильтр по статусу (опционально)
	Role   *string `json:"role,omitempty"`   // customer | provider (опционально)
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListBookingsRequest) ToDomainFilter() (domain.ActorBookingsFilter, error) {
	filter := domain.ActorBookingsFilter{UserID: r.UserID}

	if r.Status != nil {
		status, err := domain.ParseBookingStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	if r.Role != nil {
		side, err := domain.ParsePartySide(*r.Role)
		if err != nil {
			return filter, err
		}
		filter.Side = &side
	}

	return filter, nil
}

// Response модели

// BookingResponse ответ с данными бронирования. Внутренний ID наружу не отдается
type BookingResponse struct {
	BookingCode string    `json:"bookingCode"`
	CustomerID  int64     `json:"customerId"`
	ProviderID  int64     `json:"providerId"`
	Date        string    `json:"date"` // "2025-06-01"
	Slot        string    `json:"slot"` // "10:00"
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
	CancelledAt *string   `json:"cancelledAt,omitempty"` // ISO 8601 format
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		BookingCode: b.Code,
		CustomerID:  b.CustomerID,
		ProviderID:  b.ProviderID,
		Date:        b.Date.Format(domain.DateFormat),
		Slot:        b.Slot.String(),
		Status:      string(b.Status),
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}

	if b.CancelledAt != nil {
		resp.CancelledAt = ptr.Ptr(b.CancelledAt.Format(time.RFC3339))
	}

	return resp
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}

	for _, booking := range bookings {
		if bookingResp := FromDomainBooking(booking); bookingResp != nil {
			resp.Bookings = append(resp.Bookings, *bookingResp)
		}
	}

	return resp
}
