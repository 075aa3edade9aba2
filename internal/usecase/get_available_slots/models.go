package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-ProviderBooking/pkg/types"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	ProviderID int64  // ID исполнителя
	Date       string // Дата "YYYY-MM-DD"
}

// Response модель ответа со списком доступных слотов
type Response struct {
	ProviderID int64              // ID исполнителя
	Date       time.Time          // Дата, на которую запрашивались слоты
	Slots      []types.TimeString // Свободные слоты в порядке сетки
}
