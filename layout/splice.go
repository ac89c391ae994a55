package layout

import (
	"sort"

	"github.com/tsawler/structura/model"
)

// Splicer integrates detected list and code blocks into a document built
// from the same extracted line slice. Every block involved records the
// half-open range of line indices it consumed; integration is pure
// interval arithmetic over those spans, so a paragraph is only displaced
// by a block that actually consumed its lines, never by one whose text
// happens to contain the same words.
type Splicer struct{}

// NewSplicer creates a new splicer
func NewSplicer() *Splicer {
	return &Splicer{}
}

// Splice returns a new document in which the incoming blocks replace the
// line ranges they consumed. Paragraphs partially covered by a consumed
// range are trimmed to their surviving lines; fully covered blocks are
// dropped. The result orders all span-carrying blocks by span start;
// blocks without spans stay behind the block they followed.
func (s *Splicer) Splice(doc *model.Document, incoming []model.Block) *model.Document {
	if len(incoming) == 0 {
		return doc
	}

	var consumed []model.Span
	for _, block := range incoming {
		if span := blockSpan(block); !span.IsZero() {
			consumed = append(consumed, span)
		}
	}
	consumed = mergeSpans(consumed)

	type entry struct {
		key   int
		seq   int
		block model.Block
	}
	var entries []entry
	seq := 0
	add := func(key int, block model.Block) {
		entries = append(entries, entry{key: key, seq: seq, block: block})
		seq++
	}

	lastKey := -1
	for _, block := range doc.Blocks {
		span := blockSpan(block)

		if span.IsZero() {
			add(lastKey, block)
			continue
		}
		lastKey = span.Start

		if !overlapsAny(span, consumed) {
			add(span.Start, block)
			continue
		}

		paragraph, ok := block.(*model.Paragraph)
		if !ok {
			// Non-paragraph blocks cannot be split; a covered one is
			// absorbed whole.
			continue
		}
		for _, remnant := range subtractSpans(span, consumed) {
			if piece := sliceParagraph(paragraph, remnant); piece != nil {
				add(remnant.Start, piece)
			}
		}
	}

	for _, block := range incoming {
		add(blockSpan(block).Start, block)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].key != entries[j].key {
			return entries[i].key < entries[j].key
		}
		return entries[i].seq < entries[j].seq
	})

	result := model.NewDocument(doc.Title)
	for k, v := range doc.Metadata {
		result.Metadata[k] = v
	}
	for _, e := range entries {
		result.AddBlock(e.block)
	}
	return result
}

// blockSpan returns the source-line span a block consumed, or the zero
// span for blocks that were not built from positioned lines.
func blockSpan(block model.Block) model.Span {
	switch b := block.(type) {
	case *model.Paragraph:
		return b.Span
	case *model.ListBlock:
		return b.Span
	case *model.CodeBlock:
		return b.Span
	default:
		return model.Span{}
	}
}

// sliceParagraph rebuilds a paragraph restricted to a sub-span of its
// original span. Returns nil when the surviving lines are all blank or
// the span does not line up with the paragraph's lines.
func sliceParagraph(p *model.Paragraph, span model.Span) *model.Paragraph {
	lo := span.Start - p.Span.Start
	hi := span.End - p.Span.Start
	if lo < 0 || hi > len(p.Lines) || lo >= hi {
		return nil
	}

	piece := &model.Paragraph{
		Lines:              append([]model.Line(nil), p.Lines[lo:hi]...),
		Flow:               p.Flow,
		FontSize:           p.FontSize,
		IsContinuation:     p.IsContinuation,
		PreserveLineBreaks: p.PreserveLineBreaks,
		Span:               span,
	}
	if piece.IsEmpty() {
		return nil
	}
	return piece
}

// mergeSpans sorts spans by start and coalesces overlapping ones.
func mergeSpans(spans []model.Span) []model.Span {
	if len(spans) == 0 {
		return nil
	}

	sorted := append([]model.Span(nil), spans...)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Start != sorted[j].Start {
			return sorted[i].Start < sorted[j].Start
		}
		return sorted[i].End < sorted[j].End
	})

	merged := []model.Span{sorted[0]}
	for _, span := range sorted[1:] {
		last := &merged[len(merged)-1]
		if span.Start <= last.End {
			if span.End > last.End {
				last.End = span.End
			}
			continue
		}
		merged = append(merged, span)
	}
	return merged
}

// overlapsAny reports whether the span overlaps any of the sorted spans.
func overlapsAny(span model.Span, spans []model.Span) bool {
	for _, other := range spans {
		if span.Overlaps(other) {
			return true
		}
	}
	return false
}

// subtractSpans returns the parts of span not covered by the sorted,
// non-overlapping spans.
func subtractSpans(span model.Span, spans []model.Span) []model.Span {
	var result []model.Span
	cursor := span.Start

	for _, other := range spans {
		if other.End <= cursor || other.Start >= span.End {
			continue
		}
		if other.Start > cursor {
			result = append(result, model.Span{Start: cursor, End: other.Start})
		}
		if other.End > cursor {
			cursor = other.End
		}
		if cursor >= span.End {
			return result
		}
	}

	if cursor < span.End {
		result = append(result, model.Span{Start: cursor, End: span.End})
	}
	return result
}
