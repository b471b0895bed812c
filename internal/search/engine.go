// Package search answers keyword queries over the search index. Candidate
// rows come from a LIKE filter in SQL; ranking, deduplication and snippets
// are computed here over that bounded set.
package search

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_searcher.go -package=mocks novelcore/internal/search Searcher

import (
	"context"
	"strings"

	"novelcore/internal/contextutil"
	"novelcore/internal/metrics"
	"novelcore/internal/searchindex"
	"novelcore/internal/storage"
)

const (
	// DefaultLimit applies when the caller passes a non-positive limit.
	DefaultLimit = 100
	// maxMatchesPerRow caps content results produced from one row.
	maxMatchesPerRow = 50
	// titlePreviewRunes is the content prefix shown for title and volume matches.
	titlePreviewRunes = 2 * previewRadius
)

// MatchType says which field of an entry matched.
type MatchType string

const (
	MatchVolume  MatchType = "volume"
	MatchTitle   MatchType = "title"
	MatchContent MatchType = "content"
)

// SearchResult is one hit. A single entry can produce several results.
type SearchResult struct {
	EntityType   searchindex.EntityType `json:"entityType"`
	EntityID     string                 `json:"entityId"`
	ChapterID    string                 `json:"chapterId,omitempty"`
	NovelID      string                 `json:"novelId"`
	Title        string                 `json:"title"`
	Snippet      string                 `json:"snippet"`
	Preview      string                 `json:"preview"`
	Keyword      string                 `json:"keyword"`
	MatchType    MatchType              `json:"matchType"`
	MatchIndex   int                    `json:"matchIndex"`
	ChapterOrder *int                   `json:"chapterOrder,omitempty"`
	VolumeOrder  *int                   `json:"volumeOrder,omitempty"`
	VolumeID     string                 `json:"volumeId,omitempty"`
	VolumeTitle  string                 `json:"volumeTitle,omitempty"`
}

// Searcher is the search-facing interface consumed by handlers and the CLI.
type Searcher interface {
	// Search never fails: errors are logged and yield an empty slice.
	Search(ctx context.Context, novelID, keyword string, limit, offset int) []SearchResult
	// Appearances reports the chapters of a novel that mention name.
	Appearances(ctx context.Context, novelID, name string, limit int) ([]Appearance, error)
}

type candidateStore interface {
	Query(ctx context.Context, novelID, pattern string, limit, offset int) ([]searchindex.Entry, error)
}

// Engine implements Searcher.
type Engine struct {
	index    candidateStore
	chapters storage.ChapterStore
	metrics  *metrics.Registry
}

// NewEngine creates a new Engine. reg may be nil.
func NewEngine(index candidateStore, chapters storage.ChapterStore, reg *metrics.Registry) *Engine {
	return &Engine{
		index:    index,
		chapters: chapters,
		metrics:  reg,
	}
}

// Search returns volume, title and content matches for keyword within
// novelID. limit and offset page over index rows, not over results.
func (e *Engine) Search(ctx context.Context, novelID, keyword string, limit, offset int) []SearchResult {
	logger := contextutil.LoggerFromContext(ctx)

	results := []SearchResult{}
	if strings.TrimSpace(keyword) == "" {
		return results
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	if offset < 0 {
		offset = 0
	}

	entries, err := e.index.Query(ctx, novelID, "%"+escapeLike(keyword)+"%", limit, offset)
	if err != nil {
		e.metrics.RecordSearch(metrics.StatusError, 0)
		logger.WarnContext(ctx, "search query failed", "novel_id", novelID, "keyword", keyword, "error", err)
		return results
	}

	seenVolumes := make(map[string]bool)
	for _, entry := range entries {
		results = appendEntryResults(results, entry, keyword, seenVolumes)
	}

	e.metrics.RecordSearch(metrics.StatusOK, len(results))
	logger.DebugContext(ctx, "search completed", "novel_id", novelID, "rows", len(entries), "results", len(results))
	return results
}

// appendEntryResults emits at most one volume match (the first per volume
// title in the batch), one title match and up to maxMatchesPerRow content
// matches for entry.
func appendEntryResults(results []SearchResult, entry searchindex.Entry, keyword string, seenVolumes map[string]bool) []SearchResult {
	base := SearchResult{
		EntityType:   entry.EntityType,
		EntityID:     entry.EntityID,
		ChapterID:    entry.ChapterID,
		NovelID:      entry.NovelID,
		Title:        entry.Title,
		Keyword:      keyword,
		ChapterOrder: entry.ChapterOrder,
		VolumeOrder:  entry.VolumeOrder,
		VolumeID:     entry.VolumeID,
		VolumeTitle:  entry.VolumeTitle,
	}
	if entry.EntityType == searchindex.EntityChapter {
		base.ChapterID = entry.EntityID
	}
	kw := []rune(keyword)

	if entry.EntityType == searchindex.EntityChapter && entry.VolumeTitle != "" && !seenVolumes[entry.VolumeTitle] {
		title := []rune(entry.VolumeTitle)
		if m := findMatches(title, kw, 1); len(m) > 0 {
			seenVolumes[entry.VolumeTitle] = true
			r := base
			r.MatchType = MatchVolume
			r.Snippet = snippet(title, m[0], previewRadius)
			r.Preview = entry.VolumeTitle
			results = append(results, r)
		}
	}

	title := []rune(entry.Title)
	if m := findMatches(title, kw, 1); len(m) > 0 {
		r := base
		r.MatchType = MatchTitle
		r.Snippet = snippet(title, m[0], previewRadius)
		r.Preview = head(entry.Content, titlePreviewRunes)
		results = append(results, r)
	}

	content := []rune(entry.Content)
	for i, m := range findMatches(content, kw, maxMatchesPerRow) {
		r := base
		r.MatchType = MatchContent
		r.MatchIndex = i
		r.Snippet = snippet(content, m, snippetRadius)
		r.Preview = preview(content, m, previewRadius)
		results = append(results, r)
	}
	return results
}
