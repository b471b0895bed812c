package syncer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"time"

	"novelcore/internal/storage"
)

// Int64String is an int64 that is sent as a JSON string so it survives
// transports that read numbers as float64. It accepts either form on input.
type Int64String int64

// MarshalJSON implements json.Marshaler.
func (n Int64String) MarshalJSON() ([]byte, error) {
	return json.Marshal(strconv.FormatInt(int64(n), 10))
}

// UnmarshalJSON implements json.Unmarshaler.
func (n *Int64String) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*n = 0
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		if s == "" {
			*n = 0
			return nil
		}
		v, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid int64 string %q: %w", s, err)
		}
		*n = Int64String(v)
		return nil
	}

	var f json.Number
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	v, err := f.Int64()
	if err != nil {
		fv, ferr := f.Float64()
		if ferr != nil {
			return fmt.Errorf("invalid int64 %s: %w", data, err)
		}
		// MaxInt64 rounds up to 2^63 as a float64.
		if math.IsNaN(fv) || fv < math.MinInt64 || fv >= math.MaxInt64 {
			return fmt.Errorf("int64 out of range: %s", data)
		}
		v = int64(fv)
	}
	*n = Int64String(v)
	return nil
}

// Novel is the wire form of storage.Novel. Dates are ISO-8601.
type Novel struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	CoverURL    string      `json:"coverUrl"`
	WordCount   Int64String `json:"wordCount"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}

// Volume is the wire form of storage.Volume.
type Volume struct {
	ID        string    `json:"id"`
	NovelID   string    `json:"novelId"`
	Title     string    `json:"title"`
	Order     int       `json:"order"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Chapter is the wire form of storage.Chapter.
type Chapter struct {
	ID        string      `json:"id"`
	VolumeID  string      `json:"volumeId"`
	Title     string      `json:"title"`
	Content   string      `json:"content"`
	Order     int         `json:"order"`
	WordCount Int64String `json:"wordCount"`
	CreatedAt time.Time   `json:"createdAt"`
	UpdatedAt time.Time   `json:"updatedAt"`
}

// PullRequest is the body of POST /sync/pull.
type PullRequest struct {
	LastSyncCursor int64 `json:"lastSyncCursor"`
}

// PullData holds the entities changed on the remote since the cursor.
type PullData struct {
	Novels   []Novel   `json:"novels,omitempty"`
	Volumes  []Volume  `json:"volumes,omitempty"`
	Chapters []Chapter `json:"chapters,omitempty"`
}

// PullResponse is the body returned by POST /sync/pull.
type PullResponse struct {
	NewSyncCursor Int64String `json:"newSyncCursor"`
	Data          PullData    `json:"data"`
}

// Changes holds the local entities changed since the cursor.
type Changes struct {
	Novels   []Novel   `json:"novels"`
	Volumes  []Volume  `json:"volumes"`
	Chapters []Chapter `json:"chapters"`
}

// Len is the total number of changed entities.
func (c Changes) Len() int {
	return len(c.Novels) + len(c.Volumes) + len(c.Chapters)
}

// PushRequest is the body of POST /sync/push.
type PushRequest struct {
	LastSyncCursor int64   `json:"lastSyncCursor"`
	Changes        Changes `json:"changes"`
}

// PullResult summarizes a committed pull. Count covers novels and chapters
// only.
type PullResult struct {
	Count    int   `json:"count"`
	Novels   int   `json:"novels"`
	Volumes  int   `json:"volumes"`
	Chapters int   `json:"chapters"`
	Cursor   int64 `json:"cursor"`
}

// PushResult summarizes a push. Response is the remote body, unparsed. A
// JSON body is kept byte for byte; any other body, including an empty one,
// is carried as a JSON string of its text so the result stays valid JSON.
// Encoding a PushResult compacts Response whitespace.
type PushResult struct {
	Success  bool            `json:"success"`
	Count    int             `json:"count"`
	Response json.RawMessage `json:"response,omitempty"`
}

func novelFromWire(n Novel) *storage.Novel {
	return &storage.Novel{
		ID:          n.ID,
		Title:       n.Title,
		Description: n.Description,
		CoverURL:    n.CoverURL,
		WordCount:   int64(n.WordCount),
		CreatedAt:   n.CreatedAt.UTC(),
		UpdatedAt:   n.UpdatedAt.UTC(),
	}
}

func novelToWire(n *storage.Novel) Novel {
	return Novel{
		ID:          n.ID,
		Title:       n.Title,
		Description: n.Description,
		CoverURL:    n.CoverURL,
		WordCount:   Int64String(n.WordCount),
		CreatedAt:   n.CreatedAt,
		UpdatedAt:   n.UpdatedAt,
	}
}

func volumeFromWire(v Volume) *storage.Volume {
	return &storage.Volume{
		ID:        v.ID,
		NovelID:   v.NovelID,
		Title:     v.Title,
		Order:     v.Order,
		CreatedAt: v.CreatedAt.UTC(),
		UpdatedAt: v.UpdatedAt.UTC(),
	}
}

func volumeToWire(v *storage.Volume) Volume {
	return Volume{
		ID:        v.ID,
		NovelID:   v.NovelID,
		Title:     v.Title,
		Order:     v.Order,
		CreatedAt: v.CreatedAt,
		UpdatedAt: v.UpdatedAt,
	}
}

func chapterFromWire(c Chapter) *storage.Chapter {
	return &storage.Chapter{
		ID:        c.ID,
		VolumeID:  c.VolumeID,
		Title:     c.Title,
		Content:   c.Content,
		Order:     c.Order,
		WordCount: int64(c.WordCount),
		CreatedAt: c.CreatedAt.UTC(),
		UpdatedAt: c.UpdatedAt.UTC(),
	}
}

func chapterToWire(c *storage.Chapter) Chapter {
	return Chapter{
		ID:        c.ID,
		VolumeID:  c.VolumeID,
		Title:     c.Title,
		Content:   c.Content,
		Order:     c.Order,
		WordCount: Int64String(c.WordCount),
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
