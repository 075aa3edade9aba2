package list_my_bookings_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/m04kA/SMC-ProviderBooking/internal/api/handlers/list_my_bookings"
	"github.com/m04kA/SMC-ProviderBooking/internal/api/middleware"
	"github.com/m04kA/SMC-ProviderBooking/internal/domain"
	"github.com/m04kA/SMC-ProviderBooking/internal/service/bookings"
	"github.com/m04kA/SMC-ProviderBooking/internal/service/bookings/models"
	"github.com/m04kA/SMC-ProviderBooking/pkg/logger"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) ListForActor(ctx context.Context, req *models.ListBookingsRequest) (*models.BookingListResponse, error) {
	args := m.Called(ctx, req)
	if resp := args.Get(0); resp != nil {
		return resp.(*models.BookingListResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

func request(target string) *http.Request {
	r := httptest.NewRequest(http.MethodGet, target, nil)
	return r.WithContext(middleware.WithActor(r.Context(), domain.Actor{ID: 100, Role: domain.RoleCustomer}))
}

func TestHandler_OK(t *testing.T) {
	svc := new(MockService)
	h := list_my_bookings.NewHandler(svc, logger.NewNop())

	svc.On("ListForActor", mock.Anything, mock.MatchedBy(func(req *models.ListBookingsRequest) bool {
		return req.UserID == 100 && req.Status != nil && *req.Status == "PENDING" && req.Role == nil
	})).Return(&models.BookingListResponse{Bookings: []models.BookingResponse{{BookingCode: "ABCD1234"}}}, nil)

	w := httptest.NewRecorder()
	h.Handle(w, request("/api/v1/bookings/mine?status=PENDING"))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `[{"bookingCode":"ABCD1234"`)
	svc.AssertExpectations(t)
}

func TestHandler_InvalidFilter(t *testing.T) {
	svc := new(MockService)
	h := list_my_bookings.NewHandler(svc, logger.NewNop())
	svc.On("ListForActor", mock.Anything, mock.Anything).
		Return(nil, fmt.Errorf("%w: unknown status", bookings.ErrInvalidInput))

	w := httptest.NewRecorder()
	h.Handle(w, request("/api/v1/bookings/mine?status=ARCHIVED"))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandler_Unauthorized(t *testing.T) {
	svc := new(MockService)
	h := list_my_bookings.NewHandler(svc, logger.NewNop())

	w := httptest.NewRecorder()
	h.Handle(w, httptest.NewRequest(http.MethodGet, "/api/v1/bookings/mine", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
