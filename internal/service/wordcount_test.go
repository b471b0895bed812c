package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCountWords(t *testing.T) {
	tests := []struct {
		text string
		want int64
	}{
		{"", 0},
		{"one", 1},
		{"One two, three!", 3},
		{"don't stop", 2},
		{"  spaced   out  ", 2},
		{"雨の日", 3},
		{"chapter 12 雨", 3},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			assert.Equal(t, tt.want, CountWords(tt.text))
		})
	}
}
