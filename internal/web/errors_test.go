package web

import (
	"bytes"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/JonMunkholm/countries/internal/core"
	"github.com/JonMunkholm/countries/internal/logging"
)

func TestRespondError_LogLevel(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	tests := []struct {
		name      string
		err       error
		status    int
		wantLevel string
	}{
		{"unknown language", &core.LookupError{Language: "Klingon"}, http.StatusNotFound, "level=WARN"},
		{"bad parameter", &paramError{name: "min", value: "abc", kind: paramNotNumber}, http.StatusBadRequest, "level=WARN"},
		{"unmapped client error", errors.New("something odd"), http.StatusBadRequest, "level=ERROR"},
		{"server error", &core.LookupError{Language: "Klingon"}, http.StatusInternalServerError, "level=ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			slog.SetDefault(logging.New(&buf, "debug", "text"))

			req := httptest.NewRequest(http.MethodGet, "/api/countries", nil)
			rec := httptest.NewRecorder()
			(&Server{}).respondError(rec, req, tt.err, tt.status)

			if rec.Code != tt.status {
				t.Errorf("status = %d, want %d", rec.Code, tt.status)
			}
			if !strings.Contains(buf.String(), tt.wantLevel) {
				t.Errorf("log = %q, want %s", buf.String(), tt.wantLevel)
			}
		})
	}
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"param", &paramError{name: "continent", kind: paramMissing}, http.StatusBadRequest},
		{"language", &core.LookupError{Language: "Klingon"}, http.StatusNotFound},
		{"view", core.ErrViewNotFound, http.StatusNotFound},
		{"rate", errRateLimited, http.StatusTooManyRequests},
		{"other", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := statusFor(tt.err); got != tt.want {
			t.Errorf("%s: statusFor() = %d, want %d", tt.name, got, tt.want)
		}
	}
}
