// Package richtext flattens the editor's JSON document tree into searchable plain text.
package richtext

import (
	"encoding/json"
	"strings"
)

// node is one element of the serialized editor tree. Only the fields needed
// for text extraction are decoded; everything else (format, style, indent...)
// is ignored.
type node struct {
	Type     string  `json:"type"`
	Text     string  `json:"text"`
	Children []*node `json:"children"`
}

type document struct {
	Root *node `json:"root"`
}

// blockTypes are the nodes that close a visual block. A space is written after
// each of them so words on either side of a block boundary do not merge.
// root, list and listitem are deliberately absent.
var blockTypes = map[string]bool{
	"paragraph": true,
	"heading":   true,
	"quote":     true,
}

// ExtractPlainText returns the concatenated text leaves of a serialized
// document in document order.
//
// Input that is not valid JSON is returned unchanged: it is treated as text
// that is already plain. Any valid JSON value without a root node, including
// arrays, scalars and null, yields "".
func ExtractPlainText(raw string) string {
	if !json.Valid([]byte(raw)) {
		return raw
	}
	var doc document
	if err := json.Unmarshal([]byte(raw), &doc); err != nil || doc.Root == nil {
		return ""
	}

	var b strings.Builder
	writeNode(&b, doc.Root)
	return strings.TrimSpace(b.String())
}

func writeNode(b *strings.Builder, n *node) {
	if n == nil {
		return
	}
	if n.Text != "" {
		b.WriteString(n.Text)
	}
	for _, child := range n.Children {
		writeNode(b, child)
	}
	if blockTypes[n.Type] {
		b.WriteByte(' ')
	}
}
