package layout

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/tsawler/structura/model"
)

// bulletMarkers are the characters recognized as unordered list markers.
// Each must be followed by at least one space to count as a marker.
var bulletMarkers = []string{
	`•`, `◦`, `▪`, `▫`, `■`, `□`, `○`, `●`,
	`-`, `\*`, `\+`,
}

// romanNumerals matches the roman numerals one through ten, lowercase
// before uppercase. Single letters (i, v, x) are claimed by the alphabetic
// pattern first, so this pattern only decides multi-letter numerals.
const romanNumerals = `i|ii|iii|iv|v|vi|vii|viii|ix|x|I|II|III|IV|V|VI|VII|VIII|IX|X`

// ListConfig holds configuration for list detection
type ListConfig struct {
	// IndentationThreshold is the x-position difference, in points, that
	// marks one level of nesting relative to the list's base position
	// (default: 10)
	IndentationThreshold float64

	// ContinuationIndentThreshold bounds how far a wrapped line's
	// x-position may drift from the expected continuation indent
	// (default: 5)
	ContinuationIndentThreshold float64

	// MaxNestingLevel caps the nesting level assigned to an item
	// (default: 3)
	MaxNestingLevel int
}

// DefaultListConfig returns sensible default configuration
func DefaultListConfig() ListConfig {
	return ListConfig{
		IndentationThreshold:        10.0,
		ContinuationIndentThreshold: 5.0,
		MaxNestingLevel:             model.MaxListNestingLevel,
	}
}

// ListDetector detects list markers in positioned lines and assembles them
// into structured list items and blocks.
type ListDetector struct {
	config          ListConfig
	bulletPatterns  []*regexp.Regexp
	orderedPatterns []*regexp.Regexp
}

// NewListDetector creates a new list detector with default configuration
func NewListDetector() *ListDetector {
	return NewListDetectorWithConfig(DefaultListConfig())
}

// NewListDetectorWithConfig creates a list detector with custom configuration
func NewListDetectorWithConfig(config ListConfig) *ListDetector {
	d := &ListDetector{config: config}

	for _, marker := range bulletMarkers {
		d.bulletPatterns = append(d.bulletPatterns,
			regexp.MustCompile(`^(\s*)(`+marker+`)\s+(.*)$`))
	}

	d.orderedPatterns = []*regexp.Regexp{
		regexp.MustCompile(`^(\s*)(\d+)([.)])\s+(.*)$`),
		regexp.MustCompile(`^(\s*)([a-zA-Z])([.)])\s+(.*)$`),
		regexp.MustCompile(`^(\s*)(` + romanNumerals + `)([.)])\s+(.*)$`),
		regexp.MustCompile(`^(\s*)\((\d+|[a-zA-Z]|` + romanNumerals + `)\)\s+(.*)$`),
	}

	return d
}

// DetectMarker reports the list marker opening the line, or nil when the
// line does not start with one. Bullet markers are tried before ordered
// ones; the first pattern that matches wins.
func (d *ListDetector) DetectMarker(line model.Line) *model.ListMarker {
	text := line.Text
	if strings.TrimSpace(text) == "" {
		return nil
	}

	for _, pattern := range d.bulletPatterns {
		if match := pattern.FindStringSubmatch(text); match != nil {
			return &model.ListMarker{
				Type:   model.ListTypeUnordered,
				Symbol: match[2],
				Suffix: " ",
			}
		}
	}

	for _, pattern := range d.orderedPatterns {
		match := pattern.FindStringSubmatch(text)
		if match == nil {
			continue
		}
		// Four submatches means indent/symbol/punctuation/content; three
		// means the parenthetical form.
		if len(match) == 5 {
			return &model.ListMarker{
				Type:   model.ListTypeOrdered,
				Symbol: match[2],
				Suffix: match[3] + " ",
			}
		}
		return &model.ListMarker{
			Type:   model.ListTypeOrdered,
			Symbol: match[2],
			Prefix: "(",
			Suffix: ") ",
		}
	}

	return nil
}

// IsMarkerLine reports whether the line opens with a list marker.
func (d *ListDetector) IsMarkerLine(line model.Line) bool {
	return d.DetectMarker(line) != nil
}

// DetectItemsFromLines scans lines in order and assembles list items.
// A marker line opens a new item; subsequent lines indented past the
// marker are folded into the open item as continuations; any other line
// closes it. Nesting levels derive from each marker line's x-position
// relative to the first marker seen. Items record which input lines they
// consumed via their Span.
func (d *ListDetector) DetectItemsFromLines(lines []model.Line) []model.ListItem {
	if len(lines) == 0 {
		return nil
	}

	var items []model.ListItem
	var current *model.ListItem
	baseX := 0.0
	haveBase := false

	for i, line := range lines {
		marker := d.DetectMarker(line)

		switch {
		case marker != nil:
			if current != nil {
				items = append(items, *current)
			}

			level := d.nestingLevel(line, baseX, haveBase)
			if !haveBase {
				baseX = line.X
				haveBase = true
			}

			content := d.extractContent(line, marker)
			if strings.TrimSpace(content) == "" {
				content = "[empty]"
			}

			current = &model.ListItem{
				Content: content,
				Level:   minInt(level, d.config.MaxNestingLevel),
				Marker:  *marker,
				Lines:   []model.Line{line},
				Span:    model.Span{Start: i, End: i + 1},
			}

		case current != nil && d.isContinuationLine(line, current):
			continuation := strings.TrimSpace(line.Text)
			if continuation != "" {
				current.Content += " " + continuation
				current.Lines = append(current.Lines, line)
				current.Span.End = i + 1
			}

		case current != nil:
			items = append(items, *current)
			current = nil
		}
	}

	if current != nil {
		items = append(items, *current)
	}

	return items
}

// GroupItemsIntoBlocks groups consecutive items into list blocks. A new
// block starts when the marker type changes or the nesting level jumps by
// more than two; empty blocks are dropped. Each block's Span covers the
// lines its items consumed.
func (d *ListDetector) GroupItemsIntoBlocks(items []model.ListItem) []*model.ListBlock {
	if len(items) == 0 {
		return nil
	}

	var blocks []*model.ListBlock
	var current *model.ListBlock

	for _, item := range items {
		if current == nil || d.shouldStartNewBlock(current, item) {
			if current != nil && !current.IsEmpty() {
				blocks = append(blocks, current)
			}
			current = model.NewListBlock(item.Marker.Type)
		}

		if err := current.AddItem(item); err != nil {
			continue
		}
		if !item.Span.IsZero() {
			if current.Span.IsZero() {
				current.Span = item.Span
			} else if item.Span.End > current.Span.End {
				current.Span.End = item.Span.End
			}
		}
	}

	if current != nil && !current.IsEmpty() {
		blocks = append(blocks, current)
	}

	return blocks
}

// nestingLevel maps a marker line's x-offset from the base position to a
// nesting level. The thresholds widen at deeper levels to absorb the
// uneven indents PDF producers emit.
func (d *ListDetector) nestingLevel(line model.Line, baseX float64, haveBase bool) int {
	if !haveBase {
		return 0
	}

	diff := line.X - baseX
	switch {
	case diff < d.config.IndentationThreshold:
		return 0
	case diff < d.config.IndentationThreshold*2.5:
		return 1
	case diff < d.config.IndentationThreshold*4:
		return 2
	default:
		return 3
	}
}

// extractContent strips the marker from the line's text, leaving the item
// content.
func (d *ListDetector) extractContent(line model.Line, marker *model.ListMarker) string {
	text := strings.TrimSpace(line.Text)
	head := marker.Prefix + marker.Symbol + strings.TrimRight(marker.Suffix, " ")
	if strings.HasPrefix(text, head) {
		return strings.TrimSpace(text[len(head):])
	}
	return text
}

// isContinuationLine reports whether a markerless line continues the open
// item. The line must sit to the right of the item's first line, within
// tolerance of where wrapped text would land after the marker (estimated
// at two points per marker character).
func (d *ListDetector) isContinuationLine(line model.Line, item *model.ListItem) bool {
	if item == nil || len(item.Lines) == 0 {
		return false
	}

	first := item.Lines[0]
	marker := d.DetectMarker(first)
	if marker == nil {
		return false
	}

	markerLen := utf8.RuneCountInString(marker.String())
	expectedX := first.X + float64(markerLen)*2.0
	diff := absFloat64(line.X - expectedX)

	return line.X > first.X && diff <= d.config.ContinuationIndentThreshold*3
}

// shouldStartNewBlock reports whether the item belongs in a fresh block
// rather than the current one.
func (d *ListDetector) shouldStartNewBlock(current *model.ListBlock, item model.ListItem) bool {
	if current == nil || current.IsEmpty() {
		return true
	}

	if current.Type != item.Marker.Type {
		return true
	}

	last := current.Items[len(current.Items)-1]
	if levelGap := item.Level - last.Level; levelGap > 2 || levelGap < -2 {
		return true
	}

	return false
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
