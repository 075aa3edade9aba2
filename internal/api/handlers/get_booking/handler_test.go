package get_booking_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/m04kA/SMC-ProviderBooking/internal/api/handlers/get_booking"
	"github.com/m04kA/SMC-ProviderBooking/internal/api/middleware"
	"github.com/m04kA/SMC-ProviderBooking/internal/service/bookings"
	"github.com/m04kA/SMC-ProviderBooking/internal/service/bookings/models"
	"github.com/m04kA/SMC-ProviderBooking/pkg/logger"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) GetByCode(ctx context.Context, code string, userID int64) (*models.BookingResponse, error) {
	args := m.Called(ctx, code, userID)
	if resp := args.Get(0); resp != nil {
		return resp.(*models.BookingResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

func TestHandler(t *testing.T) {
	tests := []struct {
		name       string
		resp       *models.BookingResponse
		err        error
		wantStatus int
	}{
		{name: "party", resp: &models.BookingResponse{BookingCode: "ABCD1234"}, wantStatus: http.StatusOK},
		{name: "not found", err: bookings.ErrBookingNotFound, wantStatus: http.StatusNotFound},
		{name: "stranger", err: bookings.ErrForbidden, wantStatus: http.StatusForbidden},
		{name: "internal", err: bookings.ErrInternal, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockService)
			svc.On("GetByCode", mock.Anything, "ABCD1234", int64(100)).Return(tt.resp, tt.err)

			router := mux.NewRouter()
			router.Use(middleware.Auth)
			router.HandleFunc("/api/v1/bookings/{bookingCode}", get_booking.NewHandler(svc, logger.NewNop()).Handle)

			r := httptest.NewRequest(http.MethodGet, "/api/v1/bookings/ABCD1234", nil)
			r.Header.Set(middleware.HeaderUserID, "100")
			r.Header.Set(middleware.HeaderUserRole, "CUSTOMER")
			w := httptest.NewRecorder()
			router.ServeHTTP(w, r)

			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}
