package model

import (
	"strings"
)

// Block is the interface implemented by every document block. The concrete
// types are [Heading], [TextBlock], [Paragraph], [ListBlock], and
// [CodeBlock]; code that needs the specific kind uses a type switch.
type Block interface {
	// ToMarkdown renders the block as a Markdown fragment. The result is
	// either empty or well-formed; callers strip trailing whitespace when
	// assembling a document.
	ToMarkdown() string

	// IsEmpty reports whether the block has no renderable content.
	IsEmpty() bool
}

// Heading represents a document heading at a level from 1 to 6.
type Heading struct {
	// Level is the heading level (1-6)
	Level int

	// Content is the heading text
	Content string

	// FontSize is the font size the heading was rendered at (0 = unknown)
	FontSize float64

	// Bold indicates whether the heading text is bold
	Bold bool
}

// NewHeading creates a heading, validating the level range and that the
// content is not blank.
func NewHeading(level int, content string, fontSize float64, bold bool) (*Heading, error) {
	if level < 1 || level > 6 {
		return nil, newValidationError("level", "level must be between 1 and 6")
	}
	if strings.TrimSpace(content) == "" {
		return nil, newValidationError("content", "content cannot be empty")
	}
	return &Heading{
		Level:    level,
		Content:  content,
		FontSize: fontSize,
		Bold:     bold,
	}, nil
}

// ToMarkdown renders the heading as "# Text" with one hash per level.
func (h *Heading) ToMarkdown() string {
	return strings.Repeat("#", h.Level) + " " + strings.TrimSpace(h.Content)
}

// IsEmpty reports whether the heading has no visible text.
func (h *Heading) IsEmpty() bool {
	return strings.TrimSpace(h.Content) == ""
}

// TextBlock is an undifferentiated run of text with font metadata. The
// extractor emits text blocks; later stages refine them into paragraphs,
// headings, and lists.
type TextBlock struct {
	// Content is the raw text content
	Content string

	// FontSize is the dominant font size in points (0 = unknown)
	FontSize float64
}

// NewTextBlock creates a text block.
func NewTextBlock(content string, fontSize float64) *TextBlock {
	return &TextBlock{Content: content, FontSize: fontSize}
}

// ToMarkdown renders the block as its trimmed text.
func (t *TextBlock) ToMarkdown() string {
	return strings.TrimSpace(t.Content)
}

// IsEmpty reports whether the block has no visible text.
func (t *TextBlock) IsEmpty() bool {
	return strings.TrimSpace(t.Content) == ""
}

// Paragraph represents a paragraph with line structure and flow metadata.
type Paragraph struct {
	// Lines are the lines making up the paragraph, in reading order
	Lines []Line

	// Flow describes the paragraph's visual flow
	Flow *TextFlow

	// FontSize is the dominant font size in points (0 = unknown)
	FontSize float64

	// IsContinuation marks a paragraph that continues the previous one
	IsContinuation bool

	// PreserveLineBreaks keeps the original line structure when rendering
	PreserveLineBreaks bool

	// Span records the extracted lines this paragraph consumed, when the
	// paragraph was built from positioned lines
	Span Span
}

// NewParagraph creates an empty paragraph with a default flow.
func NewParagraph() *Paragraph {
	return &Paragraph{Flow: NewTextFlow()}
}

// AddLine appends a line to the paragraph.
func (p *Paragraph) AddLine(line Line) {
	p.Lines = append(p.Lines, line)
}

// Content returns the paragraph text with lines joined by single spaces.
// Line texts are joined verbatim; callers trim when they need clean text.
func (p *Paragraph) Content() string {
	parts := make([]string, len(p.Lines))
	for i, line := range p.Lines {
		parts[i] = line.Text
	}
	return strings.Join(parts, " ")
}

// ToMarkdown renders the paragraph. With PreserveLineBreaks set, line
// structure is kept using Markdown hard breaks. An indented flow renders
// as an indented block.
func (p *Paragraph) ToMarkdown() string {
	if p.IsEmpty() {
		return ""
	}
	if p.PreserveLineBreaks {
		var texts []string
		for i, line := range p.Lines {
			text := strings.TrimSpace(line.Text)
			if text == "" {
				continue
			}
			if i < len(p.Lines)-1 {
				text += "  "
			}
			texts = append(texts, text)
		}
		return strings.Join(texts, "\n") + "\n"
	}
	content := strings.TrimSpace(p.Content())
	if p.Flow != nil && p.Flow.Indentation > 5.0 {
		return "    " + content + "\n"
	}
	return content + "\n"
}

// IsEmpty reports whether every line is blank.
func (p *Paragraph) IsEmpty() bool {
	for _, line := range p.Lines {
		if strings.TrimSpace(line.Text) != "" {
			return false
		}
	}
	return true
}
