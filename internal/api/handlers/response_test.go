package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRespondValidationError(t *testing.T) {
	w := httptest.NewRecorder()

	RespondValidationError(w, "ошибка валидации", []FieldError{{Code: "INVALID_DATE", Message: "дата в прошлом"}})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var body ValidationErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "ошибка валидации", body.Error)
	require.Len(t, body.Errors, 1)
	assert.Equal(t, "INVALID_DATE", body.Errors[0].Code)
}

func TestRespondInternalError(t *testing.T) {
	w := httptest.NewRecorder()

	RespondInternalError(w)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"внутренняя ошибка сервера"}`, w.Body.String())
}

func TestDecodeJSON(t *testing.T) {
	type payload struct {
		Slot string `json:"slot"`
	}

	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{name: "valid", body: `{"slot":"10:00"}`},
		{name: "empty", body: ``, wantErr: true},
		{name: "unknown field", body: `{"slot":"10:00","notes":"x"}`, wantErr: true},
		{name: "broken", body: `{"slot":`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			var p payload

			err := DecodeJSON(r, &p)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "10:00", p.Slot)
		})
	}
}
