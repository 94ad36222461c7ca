package main

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type capturedRequest struct {
	method string
	path   string
	club   string
	body   map[string]any
}

func startServer(t *testing.T) (*httptest.Server, *capturedRequest) {
	t.Helper()

	captured := &capturedRequest{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured.method = r.Method
		captured.path = r.URL.Path
		captured.club = r.Header.Get("X-Club-ID")
		captured.body = nil
		data, _ := io.ReadAll(r.Body)
		if len(data) > 0 {
			_ = json.Unmarshal(data, &captured.body)
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	}))
	t.Cleanup(srv.Close)

	return srv, captured
}

func TestCommands(t *testing.T) {
	srv, captured := startServer(t)

	testCases := []struct {
		name           string
		args           []string
		expectedMethod string
		expectedPath   string
		expectedBody   map[string]any
	}{
		{
			name:           "health",
			args:           []string{"health"},
			expectedMethod: http.MethodGet,
			expectedPath:   "/health",
		},
		{
			name:           "check",
			args:           []string{"check", "t-1"},
			expectedMethod: http.MethodGet,
			expectedPath:   "/tournaments/t-1/brackets/check",
		},
		{
			name:           "generate with filters",
			args:           []string{"generate", "t-1", "--category", "M_OPEN", "--category", "F_OPEN", "--seeding", "random"},
			expectedMethod: http.MethodPost,
			expectedPath:   "/tournaments/t-1/brackets",
			expectedBody:   map[string]any{"categories": []any{"M_OPEN", "F_OPEN"}, "seedingMethod": "random"},
		},
		{
			name:           "result",
			args:           []string{"result", "m-1", "--winner", "Los Lobos", "--score", "6-4 6-4"},
			expectedMethod: http.MethodPost,
			expectedPath:   "/matches/m-1/result",
			expectedBody:   map[string]any{"winner": "Los Lobos", "score": "6-4 6-4"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var out bytes.Buffer
			rootCmd.SetOut(&out)
			rootCmd.SetArgs(append(tc.args, "--host", srv.URL, "--club", "club-7"))

			require.NoError(t, rootCmd.Execute())

			assert.Equal(t, tc.expectedMethod, captured.method)
			assert.Equal(t, tc.expectedPath, captured.path)
			assert.Equal(t, "club-7", captured.club)
			if tc.expectedBody != nil {
				assert.Equal(t, tc.expectedBody, captured.body)
			}
			assert.Contains(t, out.String(), "Status Code: 200")
		})
	}
}

func TestResultRequiresWinner(t *testing.T) {
	srv, _ := startServer(t)

	// flags keep their state between executions of the shared root command
	winner := resultCmd.Flags().Lookup("winner")
	require.NoError(t, winner.Value.Set(""))
	winner.Changed = false

	rootCmd.SetOut(io.Discard)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs([]string{"result", "m-1", "--host", srv.URL})

	assert.Error(t, rootCmd.Execute())
}
