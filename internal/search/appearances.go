package search

import (
	"context"
	"fmt"
	"strings"

	"novelcore/internal/contextutil"
	"novelcore/internal/richtext"
)

// maxAppearancesPerChapter bounds the occurrence count reported per chapter.
const maxAppearancesPerChapter = 1000

// Appearance is one chapter that mentions a name.
type Appearance struct {
	ChapterID    string `json:"chapterId"`
	ChapterTitle string `json:"chapterTitle"`
	ChapterOrder int    `json:"chapterOrder"`
	VolumeID     string `json:"volumeId"`
	VolumeTitle  string `json:"volumeTitle"`
	VolumeOrder  int    `json:"volumeOrder"`
	Count        int    `json:"count"`
	Snippet      string `json:"snippet"`
}

// Appearances scans the source chapters of novelID in reading order and
// reports every chapter whose text mentions name. It reads the chapter
// table rather than the index, so it is exact even when the index is stale.
// A non-positive limit means no limit.
func (e *Engine) Appearances(ctx context.Context, novelID, name string, limit int) ([]Appearance, error) {
	logger := contextutil.LoggerFromContext(ctx)

	appearances := []Appearance{}
	if strings.TrimSpace(name) == "" {
		return appearances, nil
	}

	details, err := e.chapters.ListDetailsByNovel(ctx, novelID)
	if err != nil {
		return nil, fmt.Errorf("failed to list chapters: %w", err)
	}

	kw := []rune(name)
	for _, d := range details {
		text := []rune(richtext.ExtractPlainText(d.Content))
		matches := findMatches(text, kw, maxAppearancesPerChapter)
		if len(matches) == 0 {
			continue
		}
		appearances = append(appearances, Appearance{
			ChapterID:    d.ID,
			ChapterTitle: d.Title,
			ChapterOrder: d.Order,
			VolumeID:     d.VolumeID,
			VolumeTitle:  d.VolumeTitle,
			VolumeOrder:  d.VolumeOrder,
			Count:        len(matches),
			Snippet:      snippet(text, matches[0], previewRadius),
		})
		if limit > 0 && len(appearances) >= limit {
			break
		}
	}

	logger.DebugContext(ctx, "appearance scan completed", "novel_id", novelID, "chapters", len(details), "matches", len(appearances))
	return appearances, nil
}
