package syncer

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInt64String_Unmarshal(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Int64String
		wantErr bool
	}{
		{"string", `"9007199254740993"`, 9007199254740993, false},
		{"number", `42`, 42, false},
		{"float number", `1.7e12`, 1_700_000_000_000, false},
		{"null", `null`, 0, false},
		{"empty string", `""`, 0, false},
		{"garbage string", `"abc"`, 0, true},
		{"object", `{}`, 0, true},
		{"float above range", `1e30`, 0, true},
		{"float below range", `-1e30`, 0, true},
		{"float at upper bound", `9.3e18`, 0, true},
		{"negative float number", `-1.5e3`, -1500, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got Int64String
			err := json.Unmarshal([]byte(tt.input), &got)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestInt64String_Marshal(t *testing.T) {
	out, err := json.Marshal(struct {
		N Int64String `json:"n"`
	}{N: 9007199254740993})
	require.NoError(t, err)
	assert.JSONEq(t, `{"n":"9007199254740993"}`, string(out))
}

func TestPullResponse_DecodesISODates(t *testing.T) {
	raw := `{
		"newSyncCursor": 1709290000000,
		"data": {
			"novels": [{"id":"n1","title":"T","wordCount":"12","createdAt":"2024-03-01T10:00:00.000Z","updatedAt":"2024-03-01T11:30:00.250Z"}],
			"chapters": [{"id":"c1","volumeId":"v1","title":"C","content":"{}","order":2,"wordCount":3,"createdAt":"2024-03-01T10:00:00Z","updatedAt":"2024-03-01T10:00:00+02:00"}]
		}
	}`

	var resp PullResponse
	require.NoError(t, json.Unmarshal([]byte(raw), &resp))

	assert.Equal(t, Int64String(1709290000000), resp.NewSyncCursor)
	require.Len(t, resp.Data.Novels, 1)
	assert.Nil(t, resp.Data.Volumes)

	novel := novelFromWire(resp.Data.Novels[0])
	assert.Equal(t, int64(12), novel.WordCount)
	assert.Equal(t, time.Date(2024, 3, 1, 11, 30, 0, 250_000_000, time.UTC), novel.UpdatedAt)

	chapter := chapterFromWire(resp.Data.Chapters[0])
	assert.Equal(t, time.UTC, chapter.UpdatedAt.Location())
	assert.Equal(t, time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC), chapter.UpdatedAt)
	assert.Equal(t, 2, chapter.Order)
}

func TestChanges_Len(t *testing.T) {
	c := Changes{Novels: make([]Novel, 1), Volumes: make([]Volume, 2), Chapters: make([]Chapter, 3)}
	assert.Equal(t, 6, c.Len())
	assert.Zero(t, Changes{}.Len())
}
