package domain

// transitions допустимые переходы и стороны, которым они разрешены
var transitions = map[BookingStatus]map[BookingStatus]struct {
	customer bool
	provider bool
}{
	StatusPending: {
		StatusCompleted: {customer: false, provider: true},
		StatusCancelled: {customer: true, provider: true},
	},
}

// CheckTransition проверяет, может ли actor перевести бронирование в статус target.
//
// Сначала проверяются права: пользователь, не являющийся стороной бронирования,
// получает ErrForbidden при любом target. Клиент не может завершить бронирование
// (ErrForbidden). Затем проверяется сам переход: все, что не PENDING -> COMPLETED
// и не PENDING -> CANCELLED, дает ErrInvalidTransition
func CheckTransition(b *Booking, actor Actor, target BookingStatus) error {
	if !b.IsParty(actor.ID) {
		return ErrForbidden
	}

	isProvider := b.ProviderID == actor.ID
	if target == StatusCompleted && !isProvider {
		return ErrForbidden
	}

	allowed, ok := transitions[b.Status][target]
	if !ok {
		return ErrInvalidTransition
	}

	if isProvider && allowed.provider {
		return nil
	}
	if b.CustomerID == actor.ID && allowed.customer {
		return nil
	}

	return ErrForbidden
}
