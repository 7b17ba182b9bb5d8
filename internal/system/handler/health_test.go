package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"staynest/pkg/logger"

	"github.com/julienschmidt/httprouter"
)

type mockPinger struct {
	pingFunc func(ctx context.Context) error
}

func (m *mockPinger) PingMongo(ctx context.Context) error {
	return m.pingFunc(ctx)
}

func TestHealthHandler(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		pingErr    error
		wantStatus int
		wantBody   string
	}{
		{"health ignores database", "/health", errors.New("down"), http.StatusOK, `"ok"`},
		{"ready with database", "/ready", nil, http.StatusOK, `"ready"`},
		{"ready without database", "/ready", errors.New("down"), http.StatusServiceUnavailable, `"unavailable"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHealthHandler(&mockPinger{
				pingFunc: func(ctx context.Context) error { return tt.pingErr },
			}, logger.Discard())

			router := httprouter.New()
			h.RegisterRoutes(router)

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))

			if rec.Code != tt.wantStatus {
				t.Errorf("expected status %d, got %d", tt.wantStatus, rec.Code)
			}
			if !strings.Contains(rec.Body.String(), tt.wantBody) {
				t.Errorf("expected body to contain %s, got %s", tt.wantBody, rec.Body.String())
			}
		})
	}
}

func TestPingHandler(t *testing.T) {
	router := httprouter.New()
	NewPingHandler(logger.Discard()).RegisterRoutes(router)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/test", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got := strings.TrimSpace(rec.Body.String()); got != `"test ok"` {
		t.Errorf("unexpected body %s", got)
	}
}
