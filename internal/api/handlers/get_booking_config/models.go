package get_booking_config

import "github.com/m04kA/SMC-ProviderBooking/pkg/types"

// SlotDurationMinutes длительность одного слота сетки
const SlotDurationMinutes = 60

// ConfigResponse параметры бронирования, общие для всех исполнителей
type ConfigResponse struct {
	Slots               []types.TimeString `json:"slots"`
	SlotDurationMinutes int                `json:"slotDurationMinutes"`
	Timezone            string             `json:"timezone"`
}
