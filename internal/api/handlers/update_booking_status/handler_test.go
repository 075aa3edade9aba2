package update_booking_status_test

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/m04kA/SMC-ProviderBooking/internal/api/handlers/update_booking_status"
	"github.com/m04kA/SMC-ProviderBooking/internal/api/middleware"
	"github.com/m04kA/SMC-ProviderBooking/internal/service/bookings"
	"github.com/m04kA/SMC-ProviderBooking/internal/service/bookings/models"
	"github.com/m04kA/SMC-ProviderBooking/pkg/logger"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) UpdateStatus(ctx context.Context, code string, req *models.UpdateStatusRequest) (*models.BookingResponse, error) {
	args := m.Called(ctx, code, req)
	if resp := args.Get(0); resp != nil {
		return resp.(*models.BookingResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

func newRouter(svc *MockService) *mux.Router {
	h := update_booking_status.NewHandler(svc, logger.NewNop())
	r := mux.NewRouter()
	r.Use(middleware.Auth)
	r.HandleFunc("/api/v1/bookings/{bookingCode}/status", h.Handle).Methods(http.MethodPatch)
	return r
}

func patch(router *mux.Router, userID, body string) *httptest.ResponseRecorder {
	r := httptest.NewRequest(http.MethodPatch, "/api/v1/bookings/ABCD1234/status", bytes.NewBufferString(body))
	r.Header.Set(middleware.HeaderUserID, userID)
	r.Header.Set(middleware.HeaderUserRole, "PROVIDER")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)
	return w
}

func TestHandler_OK(t *testing.T) {
	svc := new(MockService)
	svc.On("UpdateStatus", mock.Anything, "ABCD1234", &models.UpdateStatusRequest{UserID: 200, Status: "COMPLETED"}).
		Return(&models.BookingResponse{BookingCode: "ABCD1234", Status: "COMPLETED"}, nil)

	w := patch(newRouter(svc), "200", `{"status":"COMPLETED"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"COMPLETED"`)
	svc.AssertExpectations(t)
}

func TestHandler_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "unknown status", err: bookings.ErrInvalidInput, wantStatus: http.StatusBadRequest},
		{name: "not found", err: bookings.ErrBookingNotFound, wantStatus: http.StatusNotFound},
		{name: "not a party", err: bookings.ErrForbidden, wantStatus: http.StatusForbidden},
		{name: "invalid transition", err: bookings.ErrInvalidTransition, wantStatus: http.StatusConflict},
		{name: "internal", err: errors.New("boom"), wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockService)
			svc.On("UpdateStatus", mock.Anything, mock.Anything, mock.Anything).Return(nil, tt.err)

			w := patch(newRouter(svc), "200", `{"status":"COMPLETED"}`)

			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestHandler_RequestErrors(t *testing.T) {
	svc := new(MockService)
	router := newRouter(svc)

	assert.Equal(t, http.StatusBadRequest, patch(router, "200", `{"status":`).Code)
	assert.Equal(t, http.StatusUnauthorized, patch(router, "", `{"status":"COMPLETED"}`).Code)
	svc.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}
