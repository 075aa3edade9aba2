package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-ProviderBooking/internal/domain"
	"github.com/m04kA/SMC-ProviderBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-ProviderBooking/pkg/psqlbuilder"
	"github.com/m04kA/SMC-ProviderBooking/pkg/types"
)

var bookingColumns = []string{
	"id",
	"booking_code",
	"customer_id",
	"provider_id",
	"booking_date",
	"slot",
	"status",
	"cancelled_at",
	"created_at",
	"updated_at",
}

// onConflictActiveSlot пропускает вставку, если слот занят активным бронированием.
// Предикат совпадает с частичным индексом bookings_active_slot_uidx
const onConflictActiveSlot = "ON CONFLICT (provider_id, booking_date, slot) WHERE status <> 'CANCELLED' DO NOTHING"

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create атомарно резервирует слот и сохраняет бронирование одним запросом.
//
// Вставка защищена частичным уникальным индексом по (provider_id, booking_date, slot)
// для неотмененных бронирований, поэтому проверка и запись не разделены во времени:
//   - слот занят          -> ErrSlotTaken (строка не вставлена, RETURNING пуст)
//   - код уже используется -> ErrCodeTaken (нарушение bookings_booking_code_key)
//
// Вызывающий код перегенерирует код при ErrCodeTaken и никогда не повторяет
// попытку при ErrSlotTaken.
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"booking_code",
			"customer_id",
			"provider_id",
			"booking_date",
			"slot",
			"status",
		).
		Values(
			booking.Code,
			booking.CustomerID,
			booking.ProviderID,
			booking.Date,
			booking.Slot,
			booking.Status,
		).
		Suffix(onConflictActiveSlot + " RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&booking.ID,
		&createdAt,
		&updatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSlotTaken
	}
	if err != nil {
		if translated := translateConstraint(err); translated != nil {
			return nil, translated
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return booking, nil
}

// GetByCode получает бронирование по публичному коду.
// Внутри транзакции строка блокируется (FOR UPDATE)
func (r *Repository) GetByCode(ctx context.Context, code string) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"booking_code": code})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByCode - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByCode - scan booking: %v", ErrScanRow, err)
	}

	return booking, nil
}

// GetByActor получает бронирования, где пользователь клиент или исполнитель.
// Сортировка: дата DESC, слот DESC, id DESC
func (r *Repository) GetByActor(ctx context.Context, filter domain.ActorBookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings")

	switch {
	case filter.Side == nil:
		selectBuilder = selectBuilder.Where(squirrel.Or{
			squirrel.Eq{"customer_id": filter.UserID},
			squirrel.Eq{"provider_id": filter.UserID},
		})
	case *filter.Side == domain.SideCustomer:
		selectBuilder = selectBuilder.Where(squirrel.Eq{"customer_id": filter.UserID})
	default:
		selectBuilder = selectBuilder.Where(squirrel.Eq{"provider_id": filter.UserID})
	}

	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	}

	query, args, err := selectBuilder.
		OrderBy("booking_date DESC", "slot DESC", "id DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByActor - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByActor - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	bookings := make([]*domain.Booking, 0)
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: GetByActor - scan row: %v", ErrScanRow, err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByActor - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}

// GetActiveSlots возвращает занятые слоты исполнителя на дату (PENDING и COMPLETED)
func (r *Repository) GetActiveSlots(ctx context.Context, providerID int64, date time.Time) ([]types.TimeString, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("slot").
		From("bookings").
		Where(squirrel.Eq{
			"provider_id":  providerID,
			"booking_date": date,
		}).
		Where(squirrel.NotEq{"status": domain.StatusCancelled}).
		OrderBy("slot ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveSlots - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveSlots - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	slots := make([]types.TimeString, 0)
	for rows.Next() {
		var slot types.TimeString
		if err := rows.Scan(&slot); err != nil {
			return nil, fmt.Errorf("%w: GetActiveSlots - scan slot: %v", ErrScanRow, err)
		}
		slots = append(slots, slot)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetActiveSlots - rows error: %v", ErrScanRow, err)
	}

	return slots, nil
}

// UpdateStatus меняет статус по схеме compare-and-set: строка обновляется,
// только если текущий статус равен from. Иначе ErrStatusConflict.
// При переходе в CANCELLED заполняется cancelled_at
func (r *Repository) UpdateStatus(ctx context.Context, id int64, from, to domain.BookingStatus) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	updateBuilder := psqlbuilder.Update("bookings").
		Set("status", to).
		Set("updated_at", squirrel.Expr("NOW()"))

	if to == domain.StatusCancelled {
		updateBuilder = updateBuilder.Set("cancelled_at", squirrel.Expr("NOW()"))
	}

	query, args, err := updateBuilder.
		Where(squirrel.Eq{"id": id, "status": from}).
		Suffix("RETURNING " + strings.Join(bookingColumns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrStatusConflict
	}
	if err != nil {
		return nil, fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrExecQuery, err)
	}

	return booking, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanBooking сканирует строку в порядке bookingColumns
func scanBooking(row rowScanner) (*domain.Booking, error) {
	var (
		booking              domain.Booking
		cancelledAt          sql.NullTime
		createdAt, updatedAt sql.NullTime
	)

	err := row.Scan(
		&booking.ID,
		&booking.Code,
		&booking.CustomerID,
		&booking.ProviderID,
		&booking.Date,
		&booking.Slot,
		&booking.Status,
		&cancelledAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if cancelledAt.Valid {
		t := cancelledAt.Time
		booking.CancelledAt = &t
	}
	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return &booking, nil
}

// translateConstraint переводит нарушения ограничений PostgreSQL в ошибки репозитория
func translateConstraint(err error) error {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return nil
	}

	switch string(pqErr.Code) {
	case pgUniqueViolation:
		switch pqErr.Constraint {
		case constraintBookingCode:
			return ErrCodeTaken
		case constraintActiveSlot:
			return ErrSlotTaken
		}
	case pgCheckViolation:
		if pqErr.Constraint == constraintParties {
			return ErrSelfBooking
		}
	}

	return nil
}
