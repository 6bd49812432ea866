package shared

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// captureDefaultLogger swaps the default logger for one writing to the
// returned builder for the duration of the test.
func captureDefaultLogger(t *testing.T) *strings.Builder {
	t.Helper()
	var buf strings.Builder
	old := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { slog.SetDefault(old) })
	return &buf
}

func requestWithTrace(traceID string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/api/classes", nil)
	return req.WithContext(context.WithValue(req.Context(), TraceIDKey, traceID))
}

func TestRespondWithJSON(t *testing.T) {
	w := httptest.NewRecorder()
	RespondWithJSON(w, httptest.NewRequest(http.MethodGet, "/", nil), http.StatusCreated,
		map[string]any{"problems": []string{"1+1"}, "tokens_used": 12})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"problems": ["1+1"], "tokens_used": 12}`, w.Body.String())

	w = httptest.NewRecorder()
	RespondWithJSON(w, httptest.NewRequest(http.MethodGet, "/", nil), http.StatusOK, nil)
	assert.Equal(t, "null\n", w.Body.String())
}

func TestRespondWithJSONEncodingError(t *testing.T) {
	logs := captureDefaultLogger(t)
	w := httptest.NewRecorder()

	RespondWithJSON(w, httptest.NewRequest(http.MethodGet, "/", nil), http.StatusOK, map[string]any{
		"bad": func() {},
	})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, logs.String(), "failed to encode JSON response")
}

func TestRespondWithError(t *testing.T) {
	w := httptest.NewRecorder()
	RespondWithError(w, requestWithTrace("test-trace-id"), http.StatusNotFound, "Class not found")

	assert.Equal(t, http.StatusNotFound, w.Code)
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Class not found", resp.Detail)
	assert.Equal(t, "test-trace-id", resp.TraceID)

	w = httptest.NewRecorder()
	RespondWithError(w, httptest.NewRequest(http.MethodGet, "/", nil), http.StatusUnauthorized, "Unauthorized")
	assert.JSONEq(t, `{"detail": "Unauthorized"}`, w.Body.String())
}

func TestRespondWithMessage(t *testing.T) {
	w := httptest.NewRecorder()
	RespondWithMessage(w, httptest.NewRequest(http.MethodDelete, "/", nil), "Class deleted")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message": "Class deleted"}`, w.Body.String())
}

func TestRespondWithErrorAndLog(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		elevate   bool
		wantLevel string
	}{
		{"server error", http.StatusBadGateway, false, "level=ERROR"},
		{"client error", http.StatusBadRequest, false, "level=DEBUG"},
		{"elevated client error", http.StatusForbidden, true, "level=WARN"},
		{"rate limited", http.StatusTooManyRequests, false, "level=WARN"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			logs := captureDefaultLogger(t)
			w := httptest.NewRecorder()

			var opts []ResponseOption
			if tc.elevate {
				opts = append(opts, WithElevatedLogLevel())
			}
			cause := errors.New("upstream said api_key=sk-live-1234567890abcdef")
			RespondWithErrorAndLog(w, requestWithTrace("trace-1"), tc.status, "Something failed", cause, opts...)

			assert.Equal(t, tc.status, w.Code)
			var resp ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, "Something failed", resp.Detail)
			assert.NotContains(t, w.Body.String(), "upstream")

			out := logs.String()
			assert.Contains(t, out, tc.wantLevel)
			assert.Contains(t, out, "trace_id=trace-1")
			assert.Contains(t, out, "error_type=")
			assert.NotContains(t, out, "sk-live-1234567890abcdef")
		})
	}
}
