package model

import (
	"errors"
	"strings"
	"testing"
)

func TestNewHeading(t *testing.T) {
	h, err := NewHeading(2, "Experience", 18.0, true)
	if err != nil {
		t.Fatalf("NewHeading returned error: %v", err)
	}
	if h.Level != 2 {
		t.Errorf("Expected level 2, got %d", h.Level)
	}
	if h.Content != "Experience" {
		t.Errorf("Expected content %q, got %q", "Experience", h.Content)
	}
	if !h.Bold {
		t.Error("Expected Bold to be true")
	}
}

func TestNewHeading_InvalidLevel(t *testing.T) {
	tests := []struct {
		name  string
		level int
	}{
		{"zero", 0},
		{"seven", 7},
		{"negative", -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewHeading(tt.level, "Title", 12.0, false)
			if err == nil {
				t.Fatalf("Expected error for level %d", tt.level)
			}
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("Expected ValidationError, got %T", err)
			}
			if verr.Field != "level" {
				t.Errorf("Expected field %q, got %q", "level", verr.Field)
			}
		})
	}
}

func TestNewHeading_EmptyContent(t *testing.T) {
	_, err := NewHeading(1, "   ", 12.0, false)
	if err == nil {
		t.Fatal("Expected error for blank content")
	}
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("Expected ValidationError, got %T", err)
	}
	if verr.Field != "content" {
		t.Errorf("Expected field %q, got %q", "content", verr.Field)
	}
}

func TestHeadingToMarkdown(t *testing.T) {
	tests := []struct {
		level    int
		content  string
		expected string
	}{
		{1, "Main Title", "# Main Title"},
		{2, "Section", "## Section"},
		{3, "  Padded  ", "### Padded"},
		{6, "Deep", "###### Deep"},
	}

	for _, tt := range tests {
		h, err := NewHeading(tt.level, tt.content, 12.0, false)
		if err != nil {
			t.Fatalf("NewHeading(%d, %q): %v", tt.level, tt.content, err)
		}
		if got := h.ToMarkdown(); got != tt.expected {
			t.Errorf("Heading(%d, %q).ToMarkdown() = %q, want %q", tt.level, tt.content, got, tt.expected)
		}
	}
}

func TestTextBlock(t *testing.T) {
	tb := NewTextBlock("  some text  ", 12.0)
	if got := tb.ToMarkdown(); got != "some text" {
		t.Errorf("ToMarkdown() = %q, want %q", got, "some text")
	}
	if tb.IsEmpty() {
		t.Error("Expected non-empty block")
	}

	empty := NewTextBlock("   \t  ", 12.0)
	if !empty.IsEmpty() {
		t.Error("Expected whitespace-only block to be empty")
	}
}

func TestParagraphContent(t *testing.T) {
	p := NewParagraph()
	p.AddLine(Line{Text: "First line", Y: 700})
	p.AddLine(Line{Text: "second line", Y: 685})

	if got := p.Content(); got != "First line second line" {
		t.Errorf("Content() = %q, want %q", got, "First line second line")
	}

	// Line texts join verbatim; leading whitespace survives until render.
	indented := NewParagraph()
	indented.AddLine(Line{Text: "First", Y: 700})
	indented.AddLine(Line{Text: "  continued", Y: 685})
	if got := indented.Content(); got != "First   continued" {
		t.Errorf("Content() = %q, want %q", got, "First   continued")
	}
}

func TestParagraphIsEmpty(t *testing.T) {
	p := NewParagraph()
	if !p.IsEmpty() {
		t.Error("Expected empty paragraph with no lines")
	}

	p.AddLine(Line{Text: "   "})
	p.AddLine(Line{Text: "\t"})
	if !p.IsEmpty() {
		t.Error("Expected paragraph with blank lines to be empty")
	}

	p.AddLine(Line{Text: "content"})
	if p.IsEmpty() {
		t.Error("Expected paragraph with content to be non-empty")
	}
}

func TestParagraphToMarkdown_Plain(t *testing.T) {
	p := NewParagraph()
	p.AddLine(Line{Text: "Hello world"})

	if got := p.ToMarkdown(); got != "Hello world\n" {
		t.Errorf("ToMarkdown() = %q, want %q", got, "Hello world\n")
	}
}

func TestParagraphToMarkdown_PreserveLineBreaks(t *testing.T) {
	p := NewParagraph()
	p.PreserveLineBreaks = true
	p.AddLine(Line{Text: "line one"})
	p.AddLine(Line{Text: "line two"})

	expected := "line one  \nline two\n"
	if got := p.ToMarkdown(); got != expected {
		t.Errorf("ToMarkdown() = %q, want %q", got, expected)
	}
}

func TestParagraphToMarkdown_Indented(t *testing.T) {
	p := NewParagraph()
	p.Flow.Indentation = 12.0
	p.AddLine(Line{Text: "indented text"})

	expected := "    indented text\n"
	if got := p.ToMarkdown(); got != expected {
		t.Errorf("ToMarkdown() = %q, want %q", got, expected)
	}
}

func TestListTypeString(t *testing.T) {
	if got := ListTypeOrdered.String(); got != "ordered" {
		t.Errorf("ListTypeOrdered.String() = %q, want %q", got, "ordered")
	}
	if got := ListTypeUnordered.String(); got != "unordered" {
		t.Errorf("ListTypeUnordered.String() = %q, want %q", got, "unordered")
	}
}

func TestListMarkerString(t *testing.T) {
	tests := []struct {
		marker   ListMarker
		expected string
	}{
		{ListMarker{Type: ListTypeOrdered, Symbol: "1", Suffix: ". "}, "1. "},
		{ListMarker{Type: ListTypeOrdered, Symbol: "a", Prefix: "(", Suffix: ") "}, "(a) "},
		{ListMarker{Type: ListTypeUnordered, Symbol: "•", Suffix: " "}, "• "},
	}

	for _, tt := range tests {
		if got := tt.marker.String(); got != tt.expected {
			t.Errorf("Marker.String() = %q, want %q", got, tt.expected)
		}
	}
}

func TestNewListItem(t *testing.T) {
	marker := ListMarker{Type: ListTypeUnordered, Symbol: "•", Suffix: " "}
	item, err := NewListItem("First item", 0, marker)
	if err != nil {
		t.Fatalf("NewListItem returned error: %v", err)
	}
	if item.Content != "First item" {
		t.Errorf("Expected content %q, got %q", "First item", item.Content)
	}
	if item.Level != 0 {
		t.Errorf("Expected level 0, got %d", item.Level)
	}
}

func TestNewListItem_InvalidLevel(t *testing.T) {
	marker := ListMarker{Type: ListTypeUnordered, Symbol: "-", Suffix: " "}

	if _, err := NewListItem("item", -1, marker); err == nil {
		t.Error("Expected error for negative level")
	}
	if _, err := NewListItem("item", 4, marker); err == nil {
		t.Error("Expected error for level above maximum")
	}
	if _, err := NewListItem("item", 3, marker); err != nil {
		t.Errorf("Level 3 should be valid, got error: %v", err)
	}
}

func TestNewListItem_EmptyContent(t *testing.T) {
	marker := ListMarker{Type: ListTypeUnordered, Symbol: "-", Suffix: " "}
	_, err := NewListItem("", 0, marker)
	if err == nil {
		t.Fatal("Expected error for empty content")
	}
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("Expected ValidationError, got %T", err)
	}
}

func TestListBlockAddItem_TypeMismatch(t *testing.T) {
	block := NewListBlock(ListTypeUnordered)
	ordered := ListMarker{Type: ListTypeOrdered, Symbol: "1", Suffix: ". "}

	item, err := NewListItem("numbered item", 0, ordered)
	if err != nil {
		t.Fatalf("NewListItem: %v", err)
	}

	if err := block.AddItem(item); err == nil {
		t.Fatal("Expected error adding ordered item to unordered list")
	}
	if len(block.Items) != 0 {
		t.Errorf("Items should be untouched after rejected add, got %d items", len(block.Items))
	}
}

func TestListBlockAddItem_NestedTypeDiffers(t *testing.T) {
	block := NewListBlock(ListTypeOrdered)
	ordered := ListMarker{Type: ListTypeOrdered, Symbol: "1", Suffix: ". "}
	bullet := ListMarker{Type: ListTypeUnordered, Symbol: "•", Suffix: " "}

	top, _ := NewListItem("top", 0, ordered)
	if err := block.AddItem(top); err != nil {
		t.Fatalf("AddItem top-level: %v", err)
	}

	nested, _ := NewListItem("nested bullet", 1, bullet)
	if err := block.AddItem(nested); err != nil {
		t.Errorf("Nested item with different marker type should be accepted: %v", err)
	}
}

func TestListBlockToMarkdown_Unordered(t *testing.T) {
	block := NewListBlock(ListTypeUnordered)
	marker := ListMarker{Type: ListTypeUnordered, Symbol: "•", Suffix: " "}

	for _, content := range []string{"First item", "Second item"} {
		item, err := NewListItem(content, 0, marker)
		if err != nil {
			t.Fatalf("NewListItem(%q): %v", content, err)
		}
		if err := block.AddItem(item); err != nil {
			t.Fatalf("AddItem(%q): %v", content, err)
		}
	}

	expected := "- First item\n- Second item"
	if got := block.ToMarkdown(); got != expected {
		t.Errorf("ToMarkdown() = %q, want %q", got, expected)
	}
}

func TestListBlockToMarkdown_OrderedRenumbering(t *testing.T) {
	block := NewListBlock(ListTypeOrdered)

	// Original symbols are out of sequence; render renumbers from 1.
	symbols := []string{"3", "7", "12"}
	contents := []string{"First item", "Second item", "Third item"}
	for i := range symbols {
		marker := ListMarker{Type: ListTypeOrdered, Symbol: symbols[i], Suffix: ". "}
		item, err := NewListItem(contents[i], 0, marker)
		if err != nil {
			t.Fatalf("NewListItem: %v", err)
		}
		if err := block.AddItem(item); err != nil {
			t.Fatalf("AddItem: %v", err)
		}
	}

	expected := "1. First item\n2. Second item\n3. Third item"
	if got := block.ToMarkdown(); got != expected {
		t.Errorf("ToMarkdown() = %q, want %q", got, expected)
	}
}

func TestListBlockToMarkdown_NestedLevels(t *testing.T) {
	block := NewListBlock(ListTypeUnordered)
	marker := ListMarker{Type: ListTypeUnordered, Symbol: "•", Suffix: " "}

	levels := []struct {
		content string
		level   int
	}{
		{"Parent item", 0},
		{"Child item", 1},
		{"Grandchild item", 2},
	}
	for _, l := range levels {
		item, err := NewListItem(l.content, l.level, marker)
		if err != nil {
			t.Fatalf("NewListItem(%q, %d): %v", l.content, l.level, err)
		}
		if err := block.AddItem(item); err != nil {
			t.Fatalf("AddItem: %v", err)
		}
	}

	expected := "- Parent item\n  - Child item\n    - Grandchild item"
	if got := block.ToMarkdown(); got != expected {
		t.Errorf("ToMarkdown() = %q, want %q", got, expected)
	}
}

func TestListBlockAddNestedList(t *testing.T) {
	block := NewListBlock(ListTypeOrdered)
	ordered := ListMarker{Type: ListTypeOrdered, Symbol: "1", Suffix: ". "}
	item, _ := NewListItem("First item", 0, ordered)
	if err := block.AddItem(item); err != nil {
		t.Fatalf("AddItem: %v", err)
	}

	sub := NewListBlock(ListTypeUnordered)
	bullet := ListMarker{Type: ListTypeUnordered, Symbol: "-", Suffix: " "}
	subItem, _ := NewListItem("Nested unordered", 0, bullet)
	if err := sub.AddItem(subItem); err != nil {
		t.Fatalf("sub AddItem: %v", err)
	}

	if err := block.AddNestedList(sub, 0); err != nil {
		t.Fatalf("AddNestedList: %v", err)
	}

	expected := "1. First item\n   - Nested unordered"
	if got := block.ToMarkdown(); got != expected {
		t.Errorf("ToMarkdown() = %q, want %q", got, expected)
	}
}

func TestListBlockAddNestedList_InvalidIndex(t *testing.T) {
	block := NewListBlock(ListTypeUnordered)
	sub := NewListBlock(ListTypeOrdered)

	if err := block.AddNestedList(sub, 0); err == nil {
		t.Error("Expected error attaching nested list to empty parent")
	}
	if err := block.AddNestedList(sub, -1); err == nil {
		t.Error("Expected error for negative parent index")
	}
}

func TestListBlockMaxLevel(t *testing.T) {
	block := NewListBlock(ListTypeUnordered)
	if got := block.MaxLevel(); got != -1 {
		t.Errorf("Empty list MaxLevel() = %d, want -1", got)
	}

	marker := ListMarker{Type: ListTypeUnordered, Symbol: "-", Suffix: " "}
	for _, level := range []int{0, 1, 2} {
		item, _ := NewListItem("item", level, marker)
		if err := block.AddItem(item); err != nil {
			t.Fatalf("AddItem: %v", err)
		}
	}
	if got := block.MaxLevel(); got != 2 {
		t.Errorf("MaxLevel() = %d, want 2", got)
	}
}

func TestListBlockIsEmpty(t *testing.T) {
	block := NewListBlock(ListTypeUnordered)
	if !block.IsEmpty() {
		t.Error("Expected new list to be empty")
	}
	if got := block.ToMarkdown(); got != "" {
		t.Errorf("Empty list ToMarkdown() = %q, want empty", got)
	}
}

func TestCodeLanguageString(t *testing.T) {
	tests := []struct {
		lang     CodeLanguage
		expected string
	}{
		{CodeLanguagePython, "python"},
		{CodeLanguageJavaScript, "javascript"},
		{CodeLanguageJava, "java"},
		{CodeLanguageCPP, "cpp"},
		{CodeLanguageSQL, "sql"},
		{CodeLanguageHTML, "html"},
		{CodeLanguageJSON, "json"},
		{CodeLanguageUnknown, "unknown"},
	}

	for _, tt := range tests {
		if got := tt.lang.String(); got != tt.expected {
			t.Errorf("CodeLanguage(%d).String() = %q, want %q", tt.lang, got, tt.expected)
		}
	}
}

func TestCodeLanguageFromString(t *testing.T) {
	if got := CodeLanguageFromString("Python"); got != CodeLanguagePython {
		t.Errorf("FromString(Python) = %v, want python", got)
	}
	if got := CodeLanguageFromString("  sql  "); got != CodeLanguageSQL {
		t.Errorf("FromString('  sql  ') = %v, want sql", got)
	}
	if got := CodeLanguageFromString("cobol"); got != CodeLanguageUnknown {
		t.Errorf("FromString(cobol) = %v, want unknown", got)
	}
}

func TestNewCodeStyle(t *testing.T) {
	style, err := NewCodeStyle(2, true, true, "Courier")
	if err != nil {
		t.Fatalf("NewCodeStyle: %v", err)
	}
	if style.IndentationLevel != 2 {
		t.Errorf("Expected indentation level 2, got %d", style.IndentationLevel)
	}

	if _, err := NewCodeStyle(-1, false, true, ""); err == nil {
		t.Error("Expected error for negative indentation level")
	}
}

func TestDefaultCodeStyle(t *testing.T) {
	style := DefaultCodeStyle()
	if style.IndentationLevel != 0 {
		t.Errorf("Expected indentation 0, got %d", style.IndentationLevel)
	}
	if style.UsesTabs {
		t.Error("Expected UsesTabs false")
	}
	if !style.PreserveWhitespace {
		t.Error("Expected PreserveWhitespace true")
	}
}

func TestNewInlineCode(t *testing.T) {
	code, err := NewInlineCode("fmt.Println", "Courier", 100, 180)
	if err != nil {
		t.Fatalf("NewInlineCode: %v", err)
	}
	if got := code.ToMarkdown(); got != "`fmt.Println`" {
		t.Errorf("ToMarkdown() = %q, want %q", got, "`fmt.Println`")
	}

	if _, err := NewInlineCode("", "Courier", 0, 10); err == nil {
		t.Error("Expected error for empty content")
	}
	if _, err := NewInlineCode("x", "Courier", 20, 10); err == nil {
		t.Error("Expected error when start exceeds end")
	}
}

func TestInlineCodeToMarkdown_EscapesBackticks(t *testing.T) {
	code, err := NewInlineCode("func(`param`)", "Courier", 0, 100)
	if err != nil {
		t.Fatalf("NewInlineCode: %v", err)
	}
	expected := "`func(\\`param\\`)`"
	if got := code.ToMarkdown(); got != expected {
		t.Errorf("ToMarkdown() = %q, want %q", got, expected)
	}
}

func TestCodeBlockContent(t *testing.T) {
	block := NewCodeBlock(CodeLanguagePython, nil)
	block.AddLine(Line{Text: "def f():"})
	block.AddLine(Line{Text: "    return 1"})

	expected := "def f():\n    return 1"
	if got := block.Content(); got != expected {
		t.Errorf("Content() = %q, want %q", got, expected)
	}
}

func TestCodeBlockToMarkdown(t *testing.T) {
	block := NewCodeBlock(CodeLanguagePython, nil)
	block.AddLine(Line{Text: "def f():"})
	block.AddLine(Line{Text: "    return 1"})

	expected := "```python\ndef f():\n    return 1\n```"
	if got := block.ToMarkdown(); got != expected {
		t.Errorf("ToMarkdown() = %q, want %q", got, expected)
	}
}

func TestCodeBlockToMarkdown_UnknownLanguage(t *testing.T) {
	block := NewCodeBlock(CodeLanguageUnknown, nil)
	block.AddLine(Line{Text: "some code"})

	expected := "```\nsome code\n```"
	if got := block.ToMarkdown(); got != expected {
		t.Errorf("ToMarkdown() = %q, want %q", got, expected)
	}
}

func TestCodeBlockIsEmpty(t *testing.T) {
	block := NewCodeBlock(CodeLanguageUnknown, nil)
	if !block.IsEmpty() {
		t.Error("Expected empty block with no lines")
	}

	block.AddLine(Line{Text: "   "})
	block.AddLine(Line{Text: ""})
	if !block.IsEmpty() {
		t.Error("Expected block with only blank lines to be empty")
	}

	block.AddLine(Line{Text: "x = 1"})
	if block.IsEmpty() {
		t.Error("Expected block with content to be non-empty")
	}
}

func TestCodeBlockPreservesInteriorBlankLines(t *testing.T) {
	block := NewCodeBlock(CodeLanguagePython, nil)
	block.AddLine(Line{Text: "def f():"})
	block.AddLine(Line{Text: ""})
	block.AddLine(Line{Text: "    return 1"})

	expected := "```python\ndef f():\n\n    return 1\n```"
	if got := block.ToMarkdown(); got != expected {
		t.Errorf("ToMarkdown() = %q, want %q", got, expected)
	}
}

func TestDocumentToMarkdown_Title(t *testing.T) {
	doc := NewDocument("My Document")
	doc.AddBlock(NewTextBlock("Body text.", 12.0))

	expected := "# My Document\n\nBody text."
	if got := doc.ToMarkdown(); got != expected {
		t.Errorf("ToMarkdown() = %q, want %q", got, expected)
	}
}

func TestDocumentToMarkdown_HeadingSpacing(t *testing.T) {
	doc := NewDocument("")
	h, err := NewHeading(2, "Section", 16.0, false)
	if err != nil {
		t.Fatalf("NewHeading: %v", err)
	}
	doc.AddBlock(h)
	doc.AddBlock(NewTextBlock("Content under the section.", 12.0))

	expected := "## Section\n\nContent under the section."
	if got := doc.ToMarkdown(); got != expected {
		t.Errorf("ToMarkdown() = %q, want %q", got, expected)
	}
}

func TestDocumentToMarkdown_SkipsEmptyBlocks(t *testing.T) {
	doc := NewDocument("")
	doc.AddBlock(NewTextBlock("First.", 12.0))
	doc.AddBlock(NewTextBlock("   ", 12.0))
	doc.AddBlock(NewTextBlock("Second.", 12.0))

	expected := "First.\nSecond."
	if got := doc.ToMarkdown(); got != expected {
		t.Errorf("ToMarkdown() = %q, want %q", got, expected)
	}
}

func TestDocumentToMarkdown_StripsTrailingWhitespace(t *testing.T) {
	doc := NewDocument("")
	h, _ := NewHeading(1, "Only Heading", 24.0, false)
	doc.AddBlock(h)

	got := doc.ToMarkdown()
	if strings.HasSuffix(got, "\n") {
		t.Errorf("Expected no trailing newline, got %q", got)
	}
	if got != "# Only Heading" {
		t.Errorf("ToMarkdown() = %q, want %q", got, "# Only Heading")
	}
}

func TestDocumentToMarkdown_Idempotent(t *testing.T) {
	doc := NewDocument("Title")
	h, _ := NewHeading(2, "Section", 16.0, false)
	doc.AddBlock(h)
	doc.AddBlock(NewTextBlock("Text.", 12.0))

	first := doc.ToMarkdown()
	second := doc.ToMarkdown()
	if first != second {
		t.Errorf("Repeated rendering differs:\nfirst:  %q\nsecond: %q", first, second)
	}
}

func TestDocumentClone(t *testing.T) {
	doc := NewDocument("Original")
	doc.AddBlock(NewTextBlock("text", 12.0))
	doc.Metadata["source"] = "test.pdf"

	clone := doc.Clone()
	clone.AddBlock(NewTextBlock("extra", 12.0))
	clone.Metadata["source"] = "other.pdf"

	if doc.BlockCount() != 1 {
		t.Errorf("Original block count changed to %d", doc.BlockCount())
	}
	if doc.Metadata["source"] != "test.pdf" {
		t.Errorf("Original metadata changed to %v", doc.Metadata["source"])
	}
}

func TestLineVerticalSpacingTo(t *testing.T) {
	upper := Line{Text: "upper", Y: 700, Height: 12}
	lower := Line{Text: "lower", Y: 680, Height: 12}

	if got := upper.VerticalSpacingTo(lower); got != 8.0 {
		t.Errorf("VerticalSpacingTo() = %f, want 8.0", got)
	}
}

func TestLineIsAlignedWith(t *testing.T) {
	a := Line{X: 72.0}
	b := Line{X: 74.5}
	c := Line{X: 90.0}

	if !a.IsAlignedWith(b, 5.0) {
		t.Error("Expected lines within tolerance to be aligned")
	}
	if a.IsAlignedWith(c, 5.0) {
		t.Error("Expected lines outside tolerance to not be aligned")
	}
}

func TestTextFlowIsSimilarTo(t *testing.T) {
	a := &TextFlow{Alignment: AlignmentLeft, LineSpacing: 1.0}
	b := &TextFlow{Alignment: AlignmentLeft, LineSpacing: 1.05}
	c := &TextFlow{Alignment: AlignmentLeft, LineSpacing: 1.5}
	d := &TextFlow{Alignment: AlignmentCenter, LineSpacing: 1.0}

	if !a.IsSimilarTo(b, 0.1) {
		t.Error("Expected flows with close spacing to be similar")
	}
	if a.IsSimilarTo(c, 0.1) {
		t.Error("Expected flows with distant spacing to differ")
	}
	if a.IsSimilarTo(d, 0.1) {
		t.Error("Expected flows with different alignment to differ")
	}
	if a.IsSimilarTo(nil, 0.1) {
		t.Error("Expected nil flow to never be similar")
	}
}

func TestSpan(t *testing.T) {
	s := Span{Start: 2, End: 5}

	if s.Len() != 3 {
		t.Errorf("Len() = %d, want 3", s.Len())
	}
	if !s.Contains(2) || !s.Contains(4) {
		t.Error("Expected span to contain interior indices")
	}
	if s.Contains(5) {
		t.Error("Expected span to exclude End")
	}
	if !s.Overlaps(Span{Start: 4, End: 8}) {
		t.Error("Expected overlapping spans to overlap")
	}
	if s.Overlaps(Span{Start: 5, End: 8}) {
		t.Error("Expected adjacent spans to not overlap")
	}
	if !(Span{}).IsZero() {
		t.Error("Expected zero span to report IsZero")
	}
}

func TestDocumentTypeString(t *testing.T) {
	tests := []struct {
		docType  DocumentType
		expected string
	}{
		{DocumentTypeResume, "resume"},
		{DocumentTypeAcademicPaper, "academic_paper"},
		{DocumentTypeBusinessDocument, "business_document"},
		{DocumentTypeManual, "manual"},
		{DocumentTypeReport, "report"},
		{DocumentTypeUnknown, "unknown"},
	}

	for _, tt := range tests {
		if got := tt.docType.String(); got != tt.expected {
			t.Errorf("DocumentType(%d).String() = %q, want %q", tt.docType, got, tt.expected)
		}
	}
}

func TestDocumentAnalysisIsConfident(t *testing.T) {
	analysis := DocumentAnalysis{Type: DocumentTypeResume, Confidence: 0.75}

	if !analysis.IsConfident(0.7) {
		t.Error("Expected confidence 0.75 to meet threshold 0.7")
	}
	if analysis.IsConfident(0.8) {
		t.Error("Expected confidence 0.75 to miss threshold 0.8")
	}
}

func TestValidationErrorMessage(t *testing.T) {
	err := &ValidationError{Field: "level", Reason: "level must be between 1 and 6"}
	msg := err.Error()
	if !strings.Contains(msg, "level") {
		t.Errorf("Expected message to name the field, got %q", msg)
	}
}
