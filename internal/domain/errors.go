package domain

import "errors"

var (
	// ErrForbidden возвращается, когда пользователь не вправе менять бронирование
	ErrForbidden = errors.New("domain: actor is not allowed to change this booking")

	// ErrInvalidTransition возвращается, когда переход статуса недопустим
	ErrInvalidTransition = errors.New("domain: invalid status transition")

	// ErrUnknownStatus возвращается для неизвестного статуса
	ErrUnknownStatus = errors.New("domain: unknown booking status")

	// ErrUnknownRole возвращается для неизвестной роли
	ErrUnknownRole = errors.New("domain: unknown role")

	// ErrUnknownSide возвращается для неизвестной стороны бронирования
	ErrUnknownSide = errors.New("domain: unknown party side")

	// ErrInvalidGrid возвращается при некорректной сетке слотов
	ErrInvalidGrid = errors.New("domain: invalid slot grid")
)
