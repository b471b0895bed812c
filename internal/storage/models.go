package storage

import "time"

// Novel is the top-level collection that volumes, chapters and ideas belong to.
type Novel struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	CoverURL    string    `json:"coverUrl"`
	WordCount   int64     `json:"wordCount"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Volume groups the chapters of a novel.
type Volume struct {
	ID        string    `json:"id"`
	NovelID   string    `json:"novelId"`
	Title     string    `json:"title"`
	Order     int       `json:"order"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Chapter holds a serialized rich-text document in Content.
type Chapter struct {
	ID        string    `json:"id"`
	VolumeID  string    `json:"volumeId"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Order     int       `json:"order"`
	WordCount int64     `json:"wordCount"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ChapterDetail is a chapter joined with its containing volume.
type ChapterDetail struct {
	Chapter
	NovelID     string `json:"novelId"`
	VolumeTitle string `json:"volumeTitle"`
	VolumeOrder int    `json:"volumeOrder"`
}

// Idea is a free-form note attached to a novel and optionally to a chapter.
type Idea struct {
	ID        string    `json:"id"`
	NovelID   string    `json:"novelId"`
	ChapterID string    `json:"chapterId,omitempty"` // empty when the idea is not tied to a chapter
	Content   string    `json:"content"`
	Quote     string    `json:"quote"`
	IsStarred bool      `json:"isStarred"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ToMillis converts t to unix milliseconds, the unit used for every
// timestamp column and for the sync cursor.
func ToMillis(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.UnixMilli()
}

// FromMillis converts unix milliseconds back to a UTC time.
func FromMillis(ms int64) time.Time {
	if ms == 0 {
		return time.Time{}
	}
	return time.UnixMilli(ms).UTC()
}
