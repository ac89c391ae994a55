package layout

import (
	"regexp"
	"strings"

	"github.com/tsawler/structura/model"
)

// defaultMonospaceFonts are the font families recognized as monospace.
var defaultMonospaceFonts = []string{
	"courier", "courier new", "monaco", "menlo",
	"consolas", "inconsolata", "source code pro", "fira code",
	"fira mono", "liberation mono", "dejavu sans mono",
	"ubuntu mono", "roboto mono", "sf mono",
}

// CodeConfig holds configuration for code detection
type CodeConfig struct {
	// MonospaceFonts are the font families treated as monospace. Matching
	// is case-insensitive and tolerates composite names like
	// "Courier-Bold".
	MonospaceFonts []string

	// MaxInlineCodeLength is the longest segment, in characters, still
	// treated as inline code (default: 50)
	MaxInlineCodeLength int

	// MinCodeBlockLines is the minimum number of lines for a code block
	// (default: 1)
	MinCodeBlockLines int

	// MaxHeaderFontSize separates code from monospace headings: lines
	// with a larger font size are never code (default: 14)
	MaxHeaderFontSize float64
}

// DefaultCodeConfig returns sensible default configuration
func DefaultCodeConfig() CodeConfig {
	fonts := make([]string, len(defaultMonospaceFonts))
	copy(fonts, defaultMonospaceFonts)
	return CodeConfig{
		MonospaceFonts:      fonts,
		MaxInlineCodeLength: 50,
		MinCodeBlockLines:   1,
		MaxHeaderFontSize:   14.0,
	}
}

// CodeDetector identifies code blocks and inline code by font analysis:
// runs of monospace lines become blocks, monospace segments inside prose
// lines become inline code.
type CodeDetector struct {
	config       CodeConfig
	fontSet      map[string]bool
	fontPatterns []*regexp.Regexp
}

// NewCodeDetector creates a new code detector with default configuration
func NewCodeDetector() *CodeDetector {
	return NewCodeDetectorWithConfig(DefaultCodeConfig())
}

// NewCodeDetectorWithConfig creates a code detector with custom configuration
func NewCodeDetectorWithConfig(config CodeConfig) *CodeDetector {
	d := &CodeDetector{
		config:  config,
		fontSet: make(map[string]bool, len(config.MonospaceFonts)),
	}

	for _, font := range config.MonospaceFonts {
		name := strings.ToLower(strings.TrimSpace(font))
		if name == "" {
			continue
		}
		d.fontSet[name] = true
		d.fontPatterns = append(d.fontPatterns,
			regexp.MustCompile(`(?i)\b`+regexp.QuoteMeta(name)+`\b`))
	}

	return d
}

// IsMonospaceFont reports whether the font family is monospace. Exact
// names are looked up directly; composite names like "Courier-Bold" fall
// back to word-boundary matching.
func (d *CodeDetector) IsMonospaceFont(fontFamily string) bool {
	if fontFamily == "" {
		return false
	}

	if d.fontSet[strings.ToLower(strings.TrimSpace(fontFamily))] {
		return true
	}

	for _, pattern := range d.fontPatterns {
		if pattern.MatchString(fontFamily) {
			return true
		}
	}
	return false
}

// DetectBlocks scans lines in order and accumulates runs of monospace
// lines in code context into code blocks. A block's style comes from its
// most indented line; its language starts unknown and is filled in by
// language detection later. Blocks record which input lines they consumed
// via their Span.
func (d *CodeDetector) DetectBlocks(lines []model.Line) []*model.CodeBlock {
	if len(lines) == 0 {
		return nil
	}

	var blocks []*model.CodeBlock
	var blockLines []model.Line
	var style *model.CodeStyle
	runStart := 0

	flush := func(end int) {
		if len(blockLines) == 0 {
			return
		}
		block := model.NewCodeBlock(model.CodeLanguageUnknown, style)
		block.Lines = blockLines
		block.Span = model.Span{Start: runStart, End: end}
		if len(block.Lines) >= d.config.MinCodeBlockLines && !block.IsEmpty() {
			blocks = append(blocks, block)
		}
		blockLines = nil
		style = nil
	}

	for i, line := range lines {
		if d.IsMonospaceFont(line.FontName) && d.IsCodeContext(lines, i) {
			if len(blockLines) == 0 {
				runStart = i
			}
			blockLines = append(blockLines, line)

			lineStyle := d.extractStyle(line)
			if style == nil || lineStyle.IndentationLevel > style.IndentationLevel {
				style = lineStyle
			}
			continue
		}
		flush(i)
	}
	flush(len(lines))

	return blocks
}

// IsCodeContext reports whether the line at index i sits in code rather
// than being a lone monospace heading. The line itself must be monospace
// with a font size at or below the header cutoff; at least half of the
// window one line either side must then be monospace too.
func (d *CodeDetector) IsCodeContext(lines []model.Line, i int) bool {
	if len(lines) == 0 || i < 0 || i >= len(lines) {
		return false
	}

	if !d.IsMonospaceFont(lines[i].FontName) {
		return false
	}
	if lines[i].FontSize > d.config.MaxHeaderFontSize {
		return false
	}

	start := i - 1
	if start < 0 {
		start = 0
	}
	end := i + 2
	if end > len(lines) {
		end = len(lines)
	}

	window := lines[start:end]
	if len(window) == 1 {
		return true
	}

	monospace := 0
	for _, line := range window {
		if d.IsMonospaceFont(line.FontName) {
			monospace++
		}
	}
	return float64(monospace)/float64(len(window)) >= 0.5
}

// DetectInlineCode returns the monospace segments of a line that are
// short enough to read as inline code. Lines without segment information
// yield nothing.
func (d *CodeDetector) DetectInlineCode(line model.Line) []model.InlineCode {
	var codes []model.InlineCode

	for _, segment := range line.Segments {
		trimmed := strings.TrimSpace(segment.Text)
		if !d.IsMonospaceFont(segment.FontName) {
			continue
		}
		if len(trimmed) == 0 || len(trimmed) > d.config.MaxInlineCodeLength {
			continue
		}
		codes = append(codes, model.InlineCode{
			Content:    segment.Text,
			FontFamily: segment.FontName,
			Start:      segment.Start,
			End:        segment.End,
		})
	}

	return codes
}

// extractStyle derives a code style from a line's horizontal position.
// Indentation is measured in 4 point units from an assumed 10 point base;
// any meaningful offset counts as at least one level.
func (d *CodeDetector) extractStyle(line model.Line) *model.CodeStyle {
	const (
		baseX           = 10.0
		indentationUnit = 4.0
	)

	level := 0
	if offset := line.X - baseX; offset > 1.0 {
		level = int(offset / indentationUnit)
		if level < 1 {
			level = 1
		}
	}

	return &model.CodeStyle{
		IndentationLevel:   level,
		UsesTabs:           false,
		PreserveWhitespace: true,
		FontFamily:         line.FontName,
	}
}
