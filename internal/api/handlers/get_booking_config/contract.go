package get_booking_config

import "github.com/m04kA/SMC-ProviderBooking/pkg/types"

type SlotGrid interface {
	Slots() []types.TimeString
}

type Logger interface {
	Info(format string, v ...interface{})
}
