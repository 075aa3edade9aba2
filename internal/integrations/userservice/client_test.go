package userservice

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ProviderBooking/pkg/logger"
)

func newTestServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/internal/users/200", r.URL.Path)
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestClient_GetUser(t *testing.T) {
	srv := newTestServer(t, http.StatusOK, `{"id":200,"role":"PROVIDER","category":"plumbing"}`)
	client := NewClient(srv.URL+"/", time.Second, logger.NewNop())

	user, err := client.GetUser(context.Background(), 200)

	require.NoError(t, err)
	assert.Equal(t, int64(200), user.ID)
	assert.Equal(t, "PROVIDER", user.Role)
	require.NotNil(t, user.Category)
	assert.Equal(t, "plumbing", *user.Category)
}

func TestClient_GetUser_Errors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
	}{
		{name: "not found", status: http.StatusNotFound, body: `{"code":404}`, wantErr: ErrUserNotFound},
		{name: "bad request", status: http.StatusBadRequest, body: ``, wantErr: ErrInvalidResponse},
		{name: "server error", status: http.StatusInternalServerError, body: `boom`, wantErr: ErrInvalidResponse},
		{name: "broken json", status: http.StatusOK, body: `{"id":`, wantErr: ErrInvalidResponse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newTestServer(t, tt.status, tt.body)
			client := NewClient(srv.URL, time.Second, logger.NewNop())

			_, err := client.GetUser(context.Background(), 200)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestClient_GetUser_Unreachable(t *testing.T) {
	client := NewClient("http://127.0.0.1:1", 100*time.Millisecond, logger.NewNop())

	_, err := client.GetUser(context.Background(), 200)
	assert.ErrorIs(t, err, ErrInternal)
}
