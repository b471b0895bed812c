package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/mock/gomock"

	"novelcore/internal/indexer"
	indexer_mocks "novelcore/internal/indexer/mocks"
	"novelcore/internal/searchindex"
)

func TestIndexHandler_Stats(t *testing.T) {
	tests := []struct {
		name           string
		stats          indexer.Stats
		err            error
		expectedStatus int
	}{
		{
			name:           "counts",
			stats:          indexer.Stats{Chapters: 12, Ideas: 3},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "index unavailable",
			err:            fmt.Errorf("failed to count entries: %w", searchindex.ErrUnavailable),
			expectedStatus: http.StatusServiceUnavailable,
		},
		{
			name:           "unexpected failure",
			err:            errors.New("database is locked"),
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			mockIndex := indexer_mocks.NewMockMaintainer(ctrl)
			handler := NewIndexHandler(mockIndex)

			mockIndex.EXPECT().GetIndexStats(gomock.Any(), "n1").Return(tt.stats, tt.err)

			req := withURLParams(httptest.NewRequest(http.MethodGet, "/api/novels/n1/index/stats", nil), map[string]string{"novelID": "n1"})
			w := httptest.NewRecorder()
			handler.Stats(w, req)

			if w.Code != tt.expectedStatus {
				t.Fatalf("expected status %d, got %d", tt.expectedStatus, w.Code)
			}
			if tt.err != nil {
				return
			}
			var got indexer.Stats
			if err := json.NewDecoder(w.Body).Decode(&got); err != nil {
				t.Fatalf("failed to decode response: %v", err)
			}
			if got != tt.stats {
				t.Errorf("expected %+v, got %+v", tt.stats, got)
			}
		})
	}
}

func TestIndexHandler_Rebuild(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockIndex := indexer_mocks.NewMockMaintainer(ctrl)
	handler := NewIndexHandler(mockIndex)

	mockIndex.EXPECT().RebuildIndex(gomock.Any(), "n1").Return(indexer.Stats{Chapters: 4, Ideas: 1}, nil)

	req := withURLParams(httptest.NewRequest(http.MethodPost, "/api/novels/n1/index/rebuild", nil), map[string]string{"novelID": "n1"})
	w := httptest.NewRecorder()
	handler.Rebuild(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	var got map[string]int
	if err := json.NewDecoder(w.Body).Decode(&got); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if got["chapters"] != 4 || got["ideas"] != 1 {
		t.Errorf("unexpected body %v", got)
	}
}
