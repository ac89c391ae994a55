package model

import "strings"

// Alignment represents the horizontal alignment of text within a block
type Alignment int

const (
	AlignmentLeft Alignment = iota
	AlignmentCenter
	AlignmentRight
	AlignmentJustified
)

// String returns a string representation of the alignment
func (a Alignment) String() string {
	switch a {
	case AlignmentCenter:
		return "center"
	case AlignmentRight:
		return "right"
	case AlignmentJustified:
		return "justified"
	default:
		return "left"
	}
}

// TextFragment represents a single positioned run of text produced by the
// extractor. Fragments are immutable inputs to the pipeline.
type TextFragment struct {
	// Text is the fragment content
	Text string

	// FontSize is the rendered font size in points (0 = unknown)
	FontSize float64

	// FontName is the PostScript font name (e.g. "Helvetica-Bold")
	FontName string

	// Bold and Italic are derived from the font name by the extractor
	Bold   bool
	Italic bool

	// X and Y position the fragment's baseline origin on the page.
	// Larger Y is higher on the page.
	X float64
	Y float64

	// Width is the advance width of the fragment
	Width float64

	// Page is the 1-based page number
	Page int
}

// FontSegment is a sub-span of a line rendered in a single font. Segments
// let detectors reason about font changes within a line, such as inline
// code in a monospace face, without re-probing fragment geometry.
type FontSegment struct {
	// Text is the segment content
	Text string

	// FontName is the font for this segment
	FontName string

	// Start and End are horizontal coordinates of the segment on the page
	Start float64
	End   float64
}

// Line represents a single assembled line of text with position and font
// metadata. Lines are value types; detectors never mutate a line they
// received.
type Line struct {
	// Text is the assembled line content
	Text string

	// X is the horizontal position of the line start
	X float64

	// Y is the vertical position of the line. Larger Y is higher on the page.
	Y float64

	// Height is the line height
	Height float64

	// FontSize is the dominant font size of the line (0 = unknown)
	FontSize float64

	// FontName is the dominant font of the line
	FontName string

	// Segments are sub-spans with their own fonts, in left-to-right order.
	// Empty when the whole line shares one font.
	Segments []FontSegment

	// Page is the 1-based page number the line belongs to
	Page int
}

// VerticalSpacingTo returns the vertical gap between this line and a line
// below it. The receiver is assumed to be the upper line.
func (l Line) VerticalSpacingTo(other Line) float64 {
	return l.Y - other.Y - other.Height
}

// IsAlignedWith reports whether two lines share a left edge within tolerance.
func (l Line) IsAlignedWith(other Line, tolerance float64) bool {
	return absFloat(l.X-other.X) <= tolerance
}

// IsEmpty reports whether the line has no visible text.
func (l Line) IsEmpty() bool {
	return strings.TrimSpace(l.Text) == ""
}

// Span is a half-open [Start, End) index range into the extracted line
// slice. Blocks built from positioned lines record the span they consumed
// so later stages can splice results back together by position instead of
// by text matching.
type Span struct {
	Start int
	End   int
}

// IsZero reports whether the span carries no positional information.
func (s Span) IsZero() bool {
	return s.Start == 0 && s.End == 0
}

// Len returns the number of lines covered by the span.
func (s Span) Len() int {
	if s.End <= s.Start {
		return 0
	}
	return s.End - s.Start
}

// Contains reports whether line index i falls inside the span.
func (s Span) Contains(i int) bool {
	return i >= s.Start && i < s.End
}

// Overlaps reports whether two spans share at least one line index.
func (s Span) Overlaps(other Span) bool {
	return s.Start < other.End && other.Start < s.End
}

// TextFlow describes the visual flow characteristics of a paragraph:
// alignment, relative line spacing, and indentation.
type TextFlow struct {
	// Alignment is the detected horizontal alignment
	Alignment Alignment

	// LineSpacing is the spacing between lines relative to line height
	LineSpacing float64

	// Indentation is the left indentation in points relative to the margin
	Indentation float64

	// AverageLineHeight is the mean line height in points
	AverageLineHeight float64
}

// NewTextFlow returns a TextFlow with neutral defaults: left alignment,
// single spacing, no indentation, 12 point lines.
func NewTextFlow() *TextFlow {
	return &TextFlow{
		Alignment:         AlignmentLeft,
		LineSpacing:       1.0,
		Indentation:       0.0,
		AverageLineHeight: 12.0,
	}
}

// IsSimilarTo reports whether two flows are visually compatible: same
// alignment and line spacing within the given tolerance. Paragraph merging
// uses this to avoid joining blocks with different visual rhythm.
func (f *TextFlow) IsSimilarTo(other *TextFlow, spacingTolerance float64) bool {
	if f == nil || other == nil {
		return false
	}
	return f.Alignment == other.Alignment &&
		absFloat(f.LineSpacing-other.LineSpacing) <= spacingTolerance
}

func absFloat(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
