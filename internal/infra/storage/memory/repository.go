// Package memory хранилище бронирований в памяти процесса.
//
// Повторяет контракт postgres-репозитория (те же ошибки из пакета booking),
// атомарность обеспечивается мьютексом. Подходит для одного экземпляра сервиса
// и для тестов.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/m04kA/SMC-ProviderBooking/internal/domain"
	bookingRepo "github.com/m04kA/SMC-ProviderBooking/internal/infra/storage/booking"
	"github.com/m04kA/SMC-ProviderBooking/pkg/types"
)

type slotKey struct {
	providerID int64
	date       string
	slot       types.TimeString
}

// Repository in-memory репозиторий бронирований
type Repository struct {
	mu     sync.RWMutex
	nextID int64
	byID   map[int64]*domain.Booking
	byCode map[string]int64
	active map[slotKey]int64
	now    func() time.Time
}

// NewRepository создает пустое хранилище
func NewRepository() *Repository {
	return &Repository{
		byID:   make(map[int64]*domain.Booking),
		byCode: make(map[string]int64),
		active: make(map[slotKey]int64),
		now:    time.Now,
	}
}

func keyOf(b *domain.Booking) slotKey {
	return slotKey{providerID: b.ProviderID, date: b.Date.Format(domain.DateFormat), slot: b.Slot}
}

// Create атомарно проверяет слот и код и сохраняет бронирование
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if booking.CustomerID == booking.ProviderID {
		return nil, bookingRepo.ErrSelfBooking
	}

	key := keyOf(booking)
	if booking.Status.IsActive() {
		if _, taken := r.active[key]; taken {
			return nil, bookingRepo.ErrSlotTaken
		}
	}
	if _, taken := r.byCode[booking.Code]; taken {
		return nil, bookingRepo.ErrCodeTaken
	}

	r.nextID++
	now := r.now().UTC()

	stored := *booking
	stored.ID = r.nextID
	stored.CreatedAt = now
	stored.UpdatedAt = now

	r.byID[stored.ID] = &stored
	r.byCode[stored.Code] = stored.ID
	if stored.Status.IsActive() {
		r.active[key] = stored.ID
	}

	booking.ID = stored.ID
	booking.CreatedAt = now
	booking.UpdatedAt = now

	return booking, nil
}

// GetByCode получает бронирование по публичному коду
func (r *Repository) GetByCode(ctx context.Context, code string) (*domain.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byCode[code]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}

	out := *r.byID[id]
	return &out, nil
}

// GetByActor получает бронирования пользователя, сортировка как в postgres
func (r *Repository) GetByActor(ctx context.Context, filter domain.ActorBookingsFilter) ([]*domain.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	bookings := make([]*domain.Booking, 0)
	for _, b := range r.byID {
		if !matchesSide(b, filter) {
			continue
		}
		if filter.Status != nil && b.Status != *filter.Status {
			continue
		}
		out := *b
		bookings = append(bookings, &out)
	}

	sort.Slice(bookings, func(i, j int) bool {
		a, b := bookings[i], bookings[j]
		if !a.Date.Equal(b.Date) {
			return a.Date.After(b.Date)
		}
		if a.Slot != b.Slot {
			return a.Slot.IsAfter(b.Slot)
		}
		return a.ID > b.ID
	})

	return bookings, nil
}

func matchesSide(b *domain.Booking, filter domain.ActorBookingsFilter) bool {
	if filter.Side == nil {
		return b.IsParty(filter.UserID)
	}
	if *filter.Side == domain.SideCustomer {
		return b.CustomerID == filter.UserID
	}
	return b.ProviderID == filter.UserID
}

// GetActiveSlots возвращает занятые слоты исполнителя на дату
func (r *Repository) GetActiveSlots(ctx context.Context, providerID int64, date time.Time) ([]types.TimeString, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	day := date.Format(domain.DateFormat)
	slots := make([]types.TimeString, 0)
	for key := range r.active {
		if key.providerID == providerID && key.date == day {
			slots = append(slots, key.slot)
		}
	}

	sort.Slice(slots, func(i, j int) bool { return slots[i].IsBefore(slots[j]) })
	return slots, nil
}

// UpdateStatus compare-and-set смена статуса
func (r *Repository) UpdateStatus(ctx context.Context, id int64, from, to domain.BookingStatus) (*domain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.byID[id]
	if !ok || b.Status != from {
		return nil, bookingRepo.ErrStatusConflict
	}

	key := keyOf(b)
	if !from.IsActive() && to.IsActive() {
		if _, taken := r.active[key]; taken {
			return nil, bookingRepo.ErrSlotTaken
		}
	}

	now := r.now().UTC()
	b.Status = to
	b.UpdatedAt = now
	if to == domain.StatusCancelled {
		b.CancelledAt = &now
	}

	if to.IsActive() {
		r.active[key] = b.ID
	} else if r.active[key] == b.ID {
		delete(r.active, key)
	}

	out := *b
	return &out, nil
}
