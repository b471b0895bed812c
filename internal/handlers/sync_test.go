package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/mock/gomock"

	"novelcore/internal/syncer"
	syncer_mocks "novelcore/internal/syncer/mocks"
)

func TestSyncHandler_NotConfigured(t *testing.T) {
	handler := NewSyncHandler(nil)

	for _, serve := range []http.HandlerFunc{handler.Pull, handler.Push} {
		w := httptest.NewRecorder()
		serve(w, httptest.NewRequest(http.MethodPost, "/api/sync/pull", nil))
		if w.Code != http.StatusServiceUnavailable {
			t.Errorf("expected status 503, got %d", w.Code)
		}
	}
}

func TestSyncHandler_Pull(t *testing.T) {
	tests := []struct {
		name           string
		result         *syncer.PullResult
		err            error
		expectedStatus int
	}{
		{
			name:           "pulled",
			result:         &syncer.PullResult{Count: 3, Novels: 1, Chapters: 2, Cursor: 1700000000000},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "remote rejected",
			err:            &syncer.SyncError{Op: "pull", StatusCode: http.StatusInternalServerError, Body: "boom"},
			expectedStatus: http.StatusBadGateway,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			mockSyncer := syncer_mocks.NewMockSyncer(ctrl)
			handler := NewSyncHandler(mockSyncer)

			mockSyncer.EXPECT().Pull(gomock.Any()).Return(tt.result, tt.err)

			w := httptest.NewRecorder()
			handler.Pull(w, httptest.NewRequest(http.MethodPost, "/api/sync/pull", nil))

			if w.Code != tt.expectedStatus {
				t.Fatalf("expected status %d, got %d", tt.expectedStatus, w.Code)
			}
			if tt.err != nil {
				return
			}
			var got syncer.PullResult
			if err := json.NewDecoder(w.Body).Decode(&got); err != nil {
				t.Fatalf("failed to decode response: %v", err)
			}
			if got != *tt.result {
				t.Errorf("expected %+v, got %+v", *tt.result, got)
			}
		})
	}
}

func TestSyncHandler_Push(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockSyncer := syncer_mocks.NewMockSyncer(ctrl)
	handler := NewSyncHandler(mockSyncer)

	mockSyncer.EXPECT().Push(gomock.Any()).Return(&syncer.PushResult{
		Success:  true,
		Count:    2,
		Response: json.RawMessage(`{"accepted":2}`),
	}, nil)

	w := httptest.NewRecorder()
	handler.Push(w, httptest.NewRequest(http.MethodPost, "/api/sync/push", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	var got struct {
		Success  bool            `json:"success"`
		Count    int             `json:"count"`
		Response json.RawMessage `json:"response"`
	}
	if err := json.NewDecoder(w.Body).Decode(&got); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !got.Success || got.Count != 2 || string(got.Response) != `{"accepted":2}` {
		t.Errorf("unexpected body %+v", got)
	}
}
