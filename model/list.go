package model

import (
	"fmt"
	"strings"
)

// MaxListNestingLevel is the deepest nesting level a list item may carry.
const MaxListNestingLevel = 3

// ListType represents the type of a list
type ListType int

const (
	ListTypeUnordered ListType = iota
	ListTypeOrdered
)

// String returns a string representation of the list type
func (t ListType) String() string {
	switch t {
	case ListTypeOrdered:
		return "ordered"
	case ListTypeUnordered:
		return "unordered"
	default:
		return "unknown"
	}
}

// ListMarker describes the marker that introduced a list item: its type,
// the symbol as it appeared, and any prefix/suffix decoration. Markers are
// immutable values.
type ListMarker struct {
	// Type is the marker's list type
	Type ListType

	// Symbol is the marker symbol without decoration ("•", "1", "a", "iv")
	Symbol string

	// Prefix precedes the symbol ("(" for parenthetical markers)
	Prefix string

	// Suffix follows the symbol (". ", ") ", or a single space for bullets)
	Suffix string
}

// String returns the marker as it appears in text, e.g. "1. " or "(a) ".
func (m ListMarker) String() string {
	return m.Prefix + m.Symbol + m.Suffix
}

// ListItem represents a single item in a list. Items are immutable once
// constructed.
type ListItem struct {
	// Content is the item text without the marker
	Content string

	// Level is the nesting level (0 = top level)
	Level int

	// Marker is the marker that introduced the item
	Marker ListMarker

	// Lines are the source lines the item was built from, when available
	Lines []Line

	// Span records the extracted lines the item consumed, including
	// continuation lines, when the item was built from positioned lines
	Span Span
}

// NewListItem creates a list item, validating the nesting level and that
// the content is not empty.
func NewListItem(content string, level int, marker ListMarker) (ListItem, error) {
	if content == "" {
		return ListItem{}, newValidationError("content", "content cannot be empty")
	}
	if level < 0 {
		return ListItem{}, newValidationError("level", "level must be non-negative")
	}
	if level > MaxListNestingLevel {
		return ListItem{}, newValidationError("level",
			fmt.Sprintf("level cannot exceed %d", MaxListNestingLevel))
	}
	return ListItem{Content: content, Level: level, Marker: marker}, nil
}

// ListBlock represents a list: a sequence of items of one primary type,
// optionally with nested sub-lists of a different type attached to
// individual items.
type ListBlock struct {
	// Type is the primary list type
	Type ListType

	// Items are the list items in order
	Items []ListItem

	// Nested maps an item index to sub-lists rendered beneath that item.
	// Sub-lists may have a different type than the parent.
	Nested map[int][]*ListBlock

	// Span records the extracted lines this list consumed, when the list
	// was built from positioned lines
	Span Span
}

// NewListBlock creates an empty list of the given type.
func NewListBlock(listType ListType) *ListBlock {
	return &ListBlock{
		Type:   listType,
		Items:  make([]ListItem, 0),
		Nested: make(map[int][]*ListBlock),
	}
}

// AddItem appends an item to the list. A top-level item whose marker type
// does not match the list type is rejected without modifying the list;
// deeper items may carry any marker type.
func (b *ListBlock) AddItem(item ListItem) error {
	if item.Level == 0 && item.Marker.Type != b.Type {
		return newValidationError("marker",
			fmt.Sprintf("marker type mismatch: %s item in %s list", item.Marker.Type, b.Type))
	}
	b.Items = append(b.Items, item)
	return nil
}

// AddNestedList attaches a sub-list beneath the item at parentIndex.
func (b *ListBlock) AddNestedList(sub *ListBlock, parentIndex int) error {
	if parentIndex < 0 || parentIndex >= len(b.Items) {
		return newValidationError("parentIndex",
			fmt.Sprintf("parent index %d out of range", parentIndex))
	}
	if b.Nested == nil {
		b.Nested = make(map[int][]*ListBlock)
	}
	b.Nested[parentIndex] = append(b.Nested[parentIndex], sub)
	return nil
}

// IsEmpty reports whether the list has no items.
func (b *ListBlock) IsEmpty() bool {
	return len(b.Items) == 0
}

// MaxLevel returns the deepest nesting level among the items, or -1 for an
// empty list.
func (b *ListBlock) MaxLevel() int {
	if len(b.Items) == 0 {
		return -1
	}
	maxLevel := 0
	for _, item := range b.Items {
		if item.Level > maxLevel {
			maxLevel = item.Level
		}
	}
	return maxLevel
}

// ToMarkdown renders the list. Ordered items are renumbered sequentially
// per nesting level regardless of their original symbols; unordered items
// use "-". Each nesting level indents by two spaces. Nested sub-lists
// attached via [ListBlock.AddNestedList] render beneath their parent item
// with each line indented by three spaces.
func (b *ListBlock) ToMarkdown() string {
	if b.IsEmpty() {
		return ""
	}

	var sb strings.Builder
	counters := make(map[int]int)

	for i, item := range b.Items {
		indent := strings.Repeat("  ", item.Level)
		if item.Marker.Type == ListTypeOrdered {
			counters[item.Level]++
			fmt.Fprintf(&sb, "%s%d. %s\n", indent, counters[item.Level], item.Content)
		} else {
			fmt.Fprintf(&sb, "%s- %s\n", indent, item.Content)
		}

		for _, sub := range b.Nested[i] {
			subMD := sub.ToMarkdown()
			if subMD == "" {
				continue
			}
			for _, line := range strings.Split(subMD, "\n") {
				sb.WriteString("   ")
				sb.WriteString(line)
				sb.WriteString("\n")
			}
		}
	}

	return strings.TrimRight(sb.String(), "\n")
}
