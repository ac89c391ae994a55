package model

import (
	"strings"
)

// CodeLanguage represents a detected programming language
type CodeLanguage int

const (
	CodeLanguageUnknown CodeLanguage = iota
	CodeLanguagePython
	CodeLanguageJavaScript
	CodeLanguageJava
	CodeLanguageCPP
	CodeLanguageSQL
	CodeLanguageHTML
	CodeLanguageJSON
)

// String returns the lowercase language tag used in fenced code blocks
func (l CodeLanguage) String() string {
	switch l {
	case CodeLanguagePython:
		return "python"
	case CodeLanguageJavaScript:
		return "javascript"
	case CodeLanguageJava:
		return "java"
	case CodeLanguageCPP:
		return "cpp"
	case CodeLanguageSQL:
		return "sql"
	case CodeLanguageHTML:
		return "html"
	case CodeLanguageJSON:
		return "json"
	default:
		return "unknown"
	}
}

// CodeLanguageFromString parses a language tag, returning
// CodeLanguageUnknown for anything unrecognized.
func CodeLanguageFromString(s string) CodeLanguage {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "python":
		return CodeLanguagePython
	case "javascript":
		return CodeLanguageJavaScript
	case "java":
		return CodeLanguageJava
	case "cpp":
		return CodeLanguageCPP
	case "sql":
		return CodeLanguageSQL
	case "html":
		return CodeLanguageHTML
	case "json":
		return CodeLanguageJSON
	default:
		return CodeLanguageUnknown
	}
}

// CodeStyle describes the visual style of a code block. Styles are
// immutable once constructed.
type CodeStyle struct {
	// IndentationLevel is the block's indentation depth (0 = flush left)
	IndentationLevel int

	// UsesTabs indicates tab-based indentation
	UsesTabs bool

	// PreserveWhitespace keeps interior whitespace verbatim when rendering
	PreserveWhitespace bool

	// FontFamily is the monospace font the block was set in
	FontFamily string
}

// NewCodeStyle creates a code style, rejecting negative indentation.
func NewCodeStyle(indentationLevel int, usesTabs, preserveWhitespace bool, fontFamily string) (*CodeStyle, error) {
	if indentationLevel < 0 {
		return nil, newValidationError("indentationLevel", "indentation level must be non-negative")
	}
	return &CodeStyle{
		IndentationLevel:   indentationLevel,
		UsesTabs:           usesTabs,
		PreserveWhitespace: preserveWhitespace,
		FontFamily:         fontFamily,
	}, nil
}

// DefaultCodeStyle returns the neutral style: no indentation, spaces,
// whitespace preserved.
func DefaultCodeStyle() *CodeStyle {
	return &CodeStyle{
		IndentationLevel:   0,
		UsesTabs:           false,
		PreserveWhitespace: true,
		FontFamily:         "",
	}
}

// InlineCode represents a monospace span within a line of prose. Inline
// code values are immutable once constructed.
type InlineCode struct {
	// Content is the code text
	Content string

	// FontFamily is the monospace font the span was set in
	FontFamily string

	// Start and End are horizontal coordinates of the span on the page
	Start float64
	End   float64
}

// NewInlineCode creates an inline code span, validating the content and
// coordinate order.
func NewInlineCode(content, fontFamily string, start, end float64) (*InlineCode, error) {
	if content == "" {
		return nil, newValidationError("content", "content cannot be empty")
	}
	if start > end {
		return nil, newValidationError("start", "start cannot be greater than end")
	}
	return &InlineCode{
		Content:    content,
		FontFamily: fontFamily,
		Start:      start,
		End:        end,
	}, nil
}

// ToMarkdown renders the span as backtick-delimited code. Literal
// backticks in the content are escaped.
func (c *InlineCode) ToMarkdown() string {
	escaped := strings.ReplaceAll(c.Content, "`", "\\`")
	return "`" + escaped + "`"
}

// CodeBlock represents a block of code with a language tag and style.
type CodeBlock struct {
	// Lines are the code lines in order; whitespace is significant
	Lines []Line

	// Language is the detected language tag
	Language CodeLanguage

	// Style describes the block's visual style
	Style *CodeStyle

	// Span records the extracted lines this block consumed, when the block
	// was built from positioned lines
	Span Span
}

// NewCodeBlock creates an empty code block. A nil style gets the default.
func NewCodeBlock(language CodeLanguage, style *CodeStyle) *CodeBlock {
	if style == nil {
		style = DefaultCodeStyle()
	}
	return &CodeBlock{
		Lines:    make([]Line, 0),
		Language: language,
		Style:    style,
	}
}

// AddLine appends a line to the block.
func (b *CodeBlock) AddLine(line Line) {
	b.Lines = append(b.Lines, line)
}

// Content returns the code text: line texts joined by newlines, with
// interior whitespace preserved verbatim.
func (b *CodeBlock) Content() string {
	texts := make([]string, len(b.Lines))
	for i, line := range b.Lines {
		texts[i] = line.Text
	}
	return strings.Join(texts, "\n")
}

// IsEmpty reports whether every line is blank.
func (b *CodeBlock) IsEmpty() bool {
	for _, line := range b.Lines {
		if strings.TrimSpace(line.Text) != "" {
			return false
		}
	}
	return true
}

// ToMarkdown renders the block fenced with triple backticks and the
// lowercase language tag, or an untagged fence for an unknown language.
func (b *CodeBlock) ToMarkdown() string {
	if b.IsEmpty() {
		return ""
	}
	tag := ""
	if b.Language != CodeLanguageUnknown {
		tag = b.Language.String()
	}
	return "```" + tag + "\n" + b.Content() + "\n```"
}
