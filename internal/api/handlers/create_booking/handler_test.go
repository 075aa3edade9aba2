package create_booking_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ProviderBooking/internal/api/handlers"
	handler "github.com/m04kA/SMC-ProviderBooking/internal/api/handlers/create_booking"
	"github.com/m04kA/SMC-ProviderBooking/internal/api/middleware"
	"github.com/m04kA/SMC-ProviderBooking/internal/domain"
	createBooking "github.com/m04kA/SMC-ProviderBooking/internal/usecase/create_booking"
	"github.com/m04kA/SMC-ProviderBooking/pkg/logger"
	"github.com/m04kA/SMC-ProviderBooking/pkg/types"
)

type MockUseCase struct {
	mock.Mock
}

func (m *MockUseCase) Execute(ctx context.Context, req *createBooking.Request) (*createBooking.Response, error) {
	args := m.Called(ctx, req)
	if resp := args.Get(0); resp != nil {
		return resp.(*createBooking.Response), args.Error(1)
	}
	return nil, args.Error(1)
}

var customer = domain.Actor{ID: 100, Role: domain.RoleCustomer}

func newRequest(t *testing.T, body string, actor *domain.Actor) *http.Request {
	t.Helper()
	r := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", bytes.NewBufferString(body))
	if actor != nil {
		r = r.WithContext(middleware.WithActor(r.Context(), *actor))
	}
	return r
}

func TestHandler_Created(t *testing.T) {
	uc := new(MockUseCase)
	h := handler.NewHandler(uc, logger.NewNop())

	created := time.Date(2025, 5, 30, 12, 0, 0, 0, time.UTC)
	uc.On("Execute", mock.Anything, mock.MatchedBy(func(req *createBooking.Request) bool {
		return req.CustomerID == 100 && req.Role == "CUSTOMER" && req.ProviderID == 200 &&
			req.Date == "2025-06-01" && req.Slot == "10:00"
	})).Return(&createBooking.Response{
		Code:       "ABCD1234",
		CustomerID: 100,
		ProviderID: 200,
		Date:       time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		Slot:       types.MustTimeString("10:00"),
		Status:     "PENDING",
		CreatedAt:  created,
		UpdatedAt:  created,
	}, nil)

	w := httptest.NewRecorder()
	h.Handle(w, newRequest(t, `{"providerId":200,"date":"2025-06-01","slot":"10:00"}`, &customer))

	assert.Equal(t, http.StatusCreated, w.Code)
	var body handler.BookingResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "ABCD1234", body.BookingCode)
	assert.Equal(t, "2025-06-01", body.Date)
	assert.Equal(t, "10:00", body.Slot)
	assert.Equal(t, "PENDING", body.Status)
	assert.NotContains(t, w.Body.String(), `"id"`)
	uc.AssertExpectations(t)
}

func TestHandler_ValidationErrors(t *testing.T) {
	uc := new(MockUseCase)
	h := handler.NewHandler(uc, logger.NewNop())

	uc.On("Execute", mock.Anything, mock.Anything).Return(nil, &createBooking.ValidationError{
		Errors: []error{createBooking.ErrInvalidDate, createBooking.ErrSelfBooking},
	})

	w := httptest.NewRecorder()
	h.Handle(w, newRequest(t, `{"providerId":100,"date":"2020-01-01","slot":"10:00"}`, &customer))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var body handlers.ValidationErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Errors, 2)
	assert.Equal(t, "INVALID_DATE", body.Errors[0].Code)
	assert.Equal(t, "SELF_BOOKING", body.Errors[1].Code)
}

func TestHandler_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "slot taken", err: createBooking.ErrSlotTaken, wantStatus: http.StatusConflict},
		{name: "codes exhausted", err: createBooking.ErrIdentifierExhausted, wantStatus: http.StatusInternalServerError},
		{name: "internal", err: errors.New("boom"), wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := new(MockUseCase)
			h := handler.NewHandler(uc, logger.NewNop())
			uc.On("Execute", mock.Anything, mock.Anything).Return(nil, tt.err)

			w := httptest.NewRecorder()
			h.Handle(w, newRequest(t, `{"providerId":200,"date":"2025-06-01","slot":"10:00"}`, &customer))

			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestHandler_BadRequestAndUnauthorized(t *testing.T) {
	uc := new(MockUseCase)
	h := handler.NewHandler(uc, logger.NewNop())

	w := httptest.NewRecorder()
	h.Handle(w, newRequest(t, `not-json`, &customer))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = httptest.NewRecorder()
	h.Handle(w, newRequest(t, `{"providerId":200,"date":"2025-06-01","slot":"10:00"}`, nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	uc.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
}
