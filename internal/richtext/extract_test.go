package richtext

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractPlainText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "paragraphs are space separated",
			in:   `{"root":{"type":"root","children":[{"type":"paragraph","children":[{"type":"text","text":"A"}]},{"type":"paragraph","children":[{"type":"text","text":"B"}]}]}}`,
			want: "A B",
		},
		{
			name: "text runs inside one paragraph are joined",
			in:   `{"root":{"type":"root","children":[{"type":"paragraph","children":[{"type":"text","text":"Hel"},{"type":"text","text":"lo"}]}]}}`,
			want: "Hello",
		},
		{
			name: "heading and quote close a block",
			in:   `{"root":{"type":"root","children":[{"type":"heading","tag":"h1","children":[{"type":"text","text":"Title"}]},{"type":"quote","children":[{"type":"text","text":"said"}]},{"type":"paragraph","children":[{"type":"text","text":"end"}]}]}}`,
			want: "Title said end",
		},
		{
			name: "list items do not add separators",
			in:   `{"root":{"type":"root","children":[{"type":"list","children":[{"type":"listitem","children":[{"type":"text","text":"one"}]},{"type":"listitem","children":[{"type":"text","text":"two"}]}]}]}}`,
			want: "onetwo",
		},
		{
			name: "nested paragraphs inside quote",
			in:   `{"root":{"type":"root","children":[{"type":"quote","children":[{"type":"paragraph","children":[{"type":"text","text":"A"}]},{"type":"paragraph","children":[{"type":"text","text":"B"}]}]}]}}`,
			want: "A B",
		},
		{
			name: "malformed json is returned unchanged",
			in:   `{"root": {"children": [`,
			want: `{"root": {"children": [`,
		},
		{
			name: "plain text is returned unchanged",
			in:   "just some words",
			want: "just some words",
		},
		{
			name: "json without root",
			in:   `{"foo":"bar"}`,
			want: "",
		},
		{
			name: "json array",
			in:   `[]`,
			want: "",
		},
		{
			name: "json number",
			in:   `42`,
			want: "",
		},
		{
			name: "json null",
			in:   `null`,
			want: "",
		},
		{
			name: "json string",
			in:   `"words"`,
			want: "",
		},
		{
			name: "root is not an object",
			in:   `{"root":"text"}`,
			want: "",
		},
		{
			name: "empty root",
			in:   `{"root":{"type":"root","children":[]}}`,
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractPlainText(tt.in))
		})
	}
}

func TestExtractPlainText_Deterministic(t *testing.T) {
	doc := `{"root":{"type":"root","children":[{"type":"paragraph","children":[{"type":"text","text":"same"}]}]}}`
	first := ExtractPlainText(doc)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, ExtractPlainText(doc))
	}
}
