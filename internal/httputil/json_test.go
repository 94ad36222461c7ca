package httputil

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeJSON(t *testing.T) {
	type payload struct {
		Winner string `json:"winner"`
	}

	testCases := []struct {
		name     string
		body     string
		expected payload
		wantErr  bool
	}{
		{name: "valid", body: `{"winner":"Los Lobos"}`, expected: payload{Winner: "Los Lobos"}},
		{name: "empty body", body: "", expected: payload{}},
		{name: "unknown field", body: `{"loser":"Los Osos"}`, wantErr: true},
		{name: "malformed", body: `{"winner":`, wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tc.body))
			var p payload
			err := DecodeJSON(req, &p)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, p)
		})
	}
}

func TestErrorResponses(t *testing.T) {
	testCases := []struct {
		name           string
		write          func(w http.ResponseWriter)
		expectedStatus int
		expectedError  string
	}{
		{"bad request", func(w http.ResponseWriter) { BadRequest(w, "bad input", nil) }, http.StatusBadRequest, "bad input"},
		{"unauthorized", func(w http.ResponseWriter) { Unauthorized(w, "missing club") }, http.StatusUnauthorized, "missing club"},
		{"not found", func(w http.ResponseWriter) { NotFound(w, "no such match", errors.New("sql: no rows")) }, http.StatusNotFound, "no such match"},
		{"conflict", func(w http.ResponseWriter) { Conflict(w, "already done", nil) }, http.StatusConflict, "already done"},
		{"internal", func(w http.ResponseWriter) { InternalServerError(w, "boom", errors.New("disk")) }, http.StatusInternalServerError, "internal server error"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			tc.write(rec)

			assert.Equal(t, tc.expectedStatus, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

			var body map[string]string
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
			assert.Equal(t, tc.expectedError, body["error"])
		})
	}
}
