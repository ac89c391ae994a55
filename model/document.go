package model

import (
	"strings"
	"unicode"
)

// Document represents a complete document: a title, an ordered block
// sequence, and free-form metadata. Pipeline stages treat documents as
// immutable and return new ones.
type Document struct {
	// Title is the document title, rendered as a level-1 heading
	Title string

	// Blocks is the ordered block sequence
	Blocks []Block

	// Metadata carries document-level information such as the source file,
	// detected document type, and classification confidence
	Metadata map[string]any
}

// NewDocument creates an empty document with the given title.
func NewDocument(title string) *Document {
	return &Document{
		Title:    title,
		Blocks:   make([]Block, 0),
		Metadata: make(map[string]any),
	}
}

// AddBlock appends a block to the document.
func (d *Document) AddBlock(block Block) {
	d.Blocks = append(d.Blocks, block)
}

// BlockCount returns the number of blocks.
func (d *Document) BlockCount() int {
	return len(d.Blocks)
}

// Clone returns a new document with a fresh block slice and metadata map.
// Blocks themselves are shared; stages replace blocks rather than mutate
// them.
func (d *Document) Clone() *Document {
	doc := &Document{
		Title:    d.Title,
		Blocks:   make([]Block, len(d.Blocks)),
		Metadata: make(map[string]any, len(d.Metadata)),
	}
	copy(doc.Blocks, d.Blocks)
	for k, v := range d.Metadata {
		doc.Metadata[k] = v
	}
	return doc
}

// ToMarkdown renders the document as Markdown. The title becomes a level-1
// heading followed by a blank line. Each block renders with trailing
// newlines stripped; blocks that render empty are skipped. Every heading
// is followed by exactly one blank line. The final output has trailing
// whitespace stripped.
func (d *Document) ToMarkdown() string {
	var parts []string

	if d.Title != "" {
		parts = append(parts, "# "+d.Title, "")
	}

	for _, block := range d.Blocks {
		content := strings.TrimRight(block.ToMarkdown(), "\n")
		if strings.TrimSpace(content) == "" {
			continue
		}
		parts = append(parts, content)
		if _, isHeading := block.(*Heading); isHeading {
			parts = append(parts, "")
		}
	}

	return strings.TrimRightFunc(strings.Join(parts, "\n"), unicode.IsSpace)
}
