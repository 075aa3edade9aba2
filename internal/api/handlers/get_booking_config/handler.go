package get_booking_config

import (
	"net/http"

	"github.com/m04kA/SMC-ProviderBooking/internal/api/handlers"
)

type Handler struct {
	grid     SlotGrid
	timezone string
	logger   Logger
}

func NewHandler(grid SlotGrid, timezone string, logger Logger) *Handler {
	return &Handler{
		grid:     grid,
		timezone: timezone,
		logger:   logger,
	}
}

// Handle GET /api/v1/bookings/config
// Публичный endpoint - без авторизации
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	resp := &ConfigResponse{
		Slots:               h.grid.Slots(),
		SlotDurationMinutes: SlotDurationMinutes,
		Timezone:            h.timezone,
	}

	h.logger.Info("GET /bookings/config - Config retrieved: slots_count=%d, timezone=%s",
		len(resp.Slots), resp.Timezone)
	handlers.RespondJSON(w, http.StatusOK, resp)
}
