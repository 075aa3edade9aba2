package booking

import (
	"github.com/m04kA/SMC-ProviderBooking/pkg/dbmetrics"
)

// Переиспользуем интерфейсы из dbmetrics для работы с БД
type DBExecutor = dbmetrics.DBExecutor
type TxExecutor = dbmetrics.TxExecutor

// Имена ограничений из migrations/001_create_bookings.sql
const (
	constraintBookingCode = "bookings_booking_code_key"
	constraintActiveSlot  = "bookings_active_slot_uidx"
	constraintParties     = "bookings_parties_check"
)

// PostgreSQL error codes
const (
	pgUniqueViolation = "23505"
	pgCheckViolation  = "23514"
)
