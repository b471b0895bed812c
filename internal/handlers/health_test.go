package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

type fakePinger struct{ err error }

func (p fakePinger) PingContext(context.Context) error { return p.err }

type fakeIndexStatus bool

func (s fakeIndexStatus) Available() bool { return bool(s) }

func TestHealthHandler(t *testing.T) {
	tests := []struct {
		name           string
		pingErr        error
		indexAvailable bool
		method         string
		expectedStatus int
		expectedHealth string
	}{
		{
			name:           "healthy",
			indexAvailable: true,
			method:         http.MethodGet,
			expectedStatus: http.StatusOK,
			expectedHealth: "healthy",
		},
		{
			name:           "index unavailable is degraded",
			indexAvailable: false,
			method:         http.MethodGet,
			expectedStatus: http.StatusOK,
			expectedHealth: "degraded",
		},
		{
			name:           "database down is unhealthy",
			pingErr:        errors.New("database is closed"),
			indexAvailable: true,
			method:         http.MethodGet,
			expectedStatus: http.StatusServiceUnavailable,
			expectedHealth: "unhealthy",
		},
		{
			name:           "method not allowed",
			method:         http.MethodPost,
			expectedStatus: http.StatusMethodNotAllowed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewHealthHandler(fakePinger{err: tt.pingErr}, fakeIndexStatus(tt.indexAvailable))

			w := httptest.NewRecorder()
			handler.ServeHTTP(w, httptest.NewRequest(tt.method, "/api/health", nil))

			if w.Code != tt.expectedStatus {
				t.Fatalf("expected status %d, got %d", tt.expectedStatus, w.Code)
			}
			if tt.expectedHealth == "" {
				return
			}

			var resp HealthResponse
			if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
				t.Fatalf("failed to decode response: %v", err)
			}
			if resp.Status != tt.expectedHealth {
				t.Errorf("expected status %q, got %q", tt.expectedHealth, resp.Status)
			}
			if tt.expectedHealth == "healthy" && len(resp.Issues) != 0 {
				t.Errorf("expected no issues, got %v", resp.Issues)
			}
		})
	}
}
