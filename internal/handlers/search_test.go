package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/mock/gomock"

	"novelcore/internal/search"
	search_mocks "novelcore/internal/search/mocks"
	"novelcore/internal/searchindex"
)

func TestSearchHandler_Search(t *testing.T) {
	tests := []struct {
		name           string
		query          string
		expectLimit    int
		expectOffset   int
		expectCall     bool
		expectedStatus int
	}{
		{
			name:           "default paging",
			query:          "q=moon",
			expectLimit:    100,
			expectOffset:   0,
			expectCall:     true,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "explicit paging",
			query:          "q=moon&limit=20&offset=40",
			expectLimit:    20,
			expectOffset:   40,
			expectCall:     true,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "limit clamped to max",
			query:          "q=moon&limit=10000",
			expectLimit:    500,
			expectCall:     true,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "zero limit uses default",
			query:          "q=moon&limit=0",
			expectLimit:    100,
			expectCall:     true,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "non-numeric limit",
			query:          "q=moon&limit=abc",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "negative offset",
			query:          "q=moon&offset=-1",
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			mockSearcher := search_mocks.NewMockSearcher(ctrl)
			handler := NewSearchHandler(mockSearcher, 100, 500)

			results := []search.SearchResult{{
				EntityType: searchindex.EntityChapter,
				EntityID:   "c1",
				ChapterID:  "c1",
				NovelID:    "n1",
				Title:      "Night",
				Snippet:    "the <mark>moon</mark> rose",
				Keyword:    "moon",
				MatchType:  search.MatchContent,
			}}
			if tt.expectCall {
				mockSearcher.EXPECT().
					Search(gomock.Any(), "n1", "moon", tt.expectLimit, tt.expectOffset).
					Return(results)
			}

			req := httptest.NewRequest(http.MethodGet, "/api/novels/n1/search?"+tt.query, nil)
			req = withURLParams(req, map[string]string{"novelID": "n1"})
			w := httptest.NewRecorder()

			handler.Search(w, req)

			if w.Code != tt.expectedStatus {
				t.Fatalf("expected status %d, got %d: %s", tt.expectedStatus, w.Code, w.Body.String())
			}
			if !tt.expectCall {
				return
			}

			var got []search.SearchResult
			if err := json.NewDecoder(w.Body).Decode(&got); err != nil {
				t.Fatalf("failed to decode response: %v", err)
			}
			if len(got) != 1 || got[0].EntityID != "c1" || got[0].MatchType != search.MatchContent {
				t.Errorf("unexpected results: %+v", got)
			}
		})
	}
}

func TestSearchHandler_Search_EmptyIsArray(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockSearcher := search_mocks.NewMockSearcher(ctrl)
	handler := NewSearchHandler(mockSearcher, 100, 500)

	mockSearcher.EXPECT().Search(gomock.Any(), "n1", "", 100, 0).Return([]search.SearchResult{})

	req := withURLParams(httptest.NewRequest(http.MethodGet, "/api/novels/n1/search", nil), map[string]string{"novelID": "n1"})
	w := httptest.NewRecorder()
	handler.Search(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	if body := w.Body.String(); body != "[]\n" {
		t.Errorf("expected empty JSON array, got %q", body)
	}
}

func TestSearchHandler_Appearances(t *testing.T) {
	tests := []struct {
		name           string
		appearances    []search.Appearance
		err            error
		expectedStatus int
	}{
		{
			name: "found",
			appearances: []search.Appearance{
				{ChapterID: "c1", ChapterTitle: "One", Count: 3, Snippet: "...<mark>Lin</mark>..."},
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "scan failure",
			err:            errors.New("disk I/O error"),
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			mockSearcher := search_mocks.NewMockSearcher(ctrl)
			handler := NewSearchHandler(mockSearcher, 100, 500)

			mockSearcher.EXPECT().
				Appearances(gomock.Any(), "n1", "Lin", 10).
				Return(tt.appearances, tt.err)

			req := httptest.NewRequest(http.MethodGet, "/api/novels/n1/appearances?name=Lin&limit=10", nil)
			req = withURLParams(req, map[string]string{"novelID": "n1"})
			w := httptest.NewRecorder()

			handler.Appearances(w, req)

			if w.Code != tt.expectedStatus {
				t.Fatalf("expected status %d, got %d", tt.expectedStatus, w.Code)
			}
			if tt.err != nil {
				var resp ErrorResponse
				if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
					t.Fatalf("failed to decode error response: %v", err)
				}
				if resp.Error != "Failed to scan chapters" {
					t.Errorf("unexpected error message %q", resp.Error)
				}
				return
			}

			var got []search.Appearance
			if err := json.NewDecoder(w.Body).Decode(&got); err != nil {
				t.Fatalf("failed to decode response: %v", err)
			}
			if len(got) != 1 || got[0].Count != 3 {
				t.Errorf("unexpected appearances: %+v", got)
			}
		})
	}
}
