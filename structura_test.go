package structura

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tsawler/structura/extract"
	"github.com/tsawler/structura/model"
)

// frag builds a positioned fragment on page 1.
func frag(text string, fontSize float64, fontName string, y float64) model.TextFragment {
	return model.TextFragment{
		Text:     text,
		FontSize: fontSize,
		FontName: fontName,
		X:        72,
		Y:        y,
		Page:     1,
	}
}

// resumeFragments is a small single-column resume: a large name, a summary
// paragraph, a section header, and a body paragraph, separated by vertical
// gaps larger than the intra-paragraph line spacing.
func resumeFragments() []model.TextFragment {
	return []model.TextFragment{
		frag("Jane Doe", 24, "Helvetica-Bold", 720),
		frag("Seasoned engineer who ships document tooling.", 12, "Helvetica", 692),
		frag("Based in Halifax and available remotely.", 12, "Helvetica", 677.6),
		frag("Experience", 21.6, "Helvetica-Bold", 644),
		frag("Built document pipelines for large archives.", 12, "Helvetica", 620),
		frag("Maintained extraction services in production.", 12, "Helvetica", 605.6),
	}
}

func hasWarning(warnings []Warning, code WarningCode) bool {
	for _, w := range warnings {
		if w.Code == code {
			return true
		}
	}
	return false
}

func TestConvert_ResumeStructure(t *testing.T) {
	md, warnings, err := FromFragments(resumeFragments()).
		DocumentType(model.DocumentTypeResume).
		Markdown()
	if err != nil {
		t.Fatalf("Markdown() error: %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("unexpected warnings: %s", FormatWarnings(warnings))
	}

	want := "# Jane Doe\n\n" +
		"Seasoned engineer who ships document tooling. Based in Halifax and available remotely.\n" +
		"## Experience\n\n" +
		"Built document pipelines for large archives. Maintained extraction services in production."
	if md != want {
		t.Errorf("markdown mismatch:\ngot:\n%s\nwant:\n%s", md, want)
	}
}

func TestConvert_ResumeBlockTypes(t *testing.T) {
	doc, _, err := FromFragments(resumeFragments()).
		DocumentType(model.DocumentTypeResume).
		Document()
	if err != nil {
		t.Fatalf("Document() error: %v", err)
	}

	if doc.BlockCount() != 4 {
		t.Fatalf("expected 4 blocks, got %d", doc.BlockCount())
	}

	name, ok := doc.Blocks[0].(*model.Heading)
	if !ok || name.Level != 1 {
		t.Errorf("block 0: expected level-1 heading, got %#v", doc.Blocks[0])
	}
	if _, ok := doc.Blocks[1].(*model.Paragraph); !ok {
		t.Errorf("block 1: expected paragraph, got %#v", doc.Blocks[1])
	}
	section, ok := doc.Blocks[2].(*model.Heading)
	if !ok || section.Level != 2 || section.Content != "Experience" {
		t.Errorf("block 2: expected level-2 Experience heading, got %#v", doc.Blocks[2])
	}
	if _, ok := doc.Blocks[3].(*model.Paragraph); !ok {
		t.Errorf("block 3: expected paragraph, got %#v", doc.Blocks[3])
	}

	if doc.Metadata["document_type"] != "resume" {
		t.Errorf("expected resume metadata, got %v", doc.Metadata["document_type"])
	}
}

func TestConvert_OrderedList(t *testing.T) {
	fragments := []model.TextFragment{
		frag("1. First item", 12, "Helvetica", 700),
		frag("2. Second item", 12, "Helvetica", 685.6),
	}

	md, warnings, err := FromFragments(fragments).Markdown()
	if err != nil {
		t.Fatalf("Markdown() error: %v", err)
	}

	want := "1. First item\n2. Second item"
	if md != want {
		t.Errorf("markdown mismatch:\ngot %q\nwant %q", md, want)
	}

	// A two-line document never classifies confidently.
	if !hasWarning(warnings, WarnLowConfidence) {
		t.Errorf("expected low-confidence warning, got: %s", FormatWarnings(warnings))
	}
}

func TestConvert_CodeBlock(t *testing.T) {
	fragments := []model.TextFragment{
		frag("Example", 16, "Helvetica", 700),
		frag("def main():", 10, "Courier", 680),
		frag("    print('hello')", 10, "Courier", 668),
		frag("main()", 10, "Courier", 656),
	}

	doc, _, err := FromFragments(fragments).Document()
	if err != nil {
		t.Fatalf("Document() error: %v", err)
	}
	if doc.BlockCount() != 2 {
		t.Fatalf("expected 2 blocks, got %d", doc.BlockCount())
	}

	code, ok := doc.Blocks[1].(*model.CodeBlock)
	if !ok {
		t.Fatalf("block 1: expected code block, got %#v", doc.Blocks[1])
	}
	if code.Language != model.CodeLanguagePython {
		t.Errorf("expected python, got %s", code.Language)
	}
	if code.Content() != "def main():\n    print('hello')\nmain()" {
		t.Errorf("code content mismatch: %q", code.Content())
	}

	md := doc.ToMarkdown()
	if !strings.Contains(md, "```python\ndef main():\n    print('hello')\nmain()\n```") {
		t.Errorf("fenced block missing from markdown:\n%s", md)
	}
}

// multiPageFragments is a three-page document with distinct body text per
// page and a counting footer at a fixed position.
func multiPageFragments() []model.TextFragment {
	cohorts := []string{"alpha", "beta", "gamma"}
	var fragments []model.TextFragment
	for page := 1; page <= 3; page++ {
		cohort := cohorts[page-1]
		fragments = append(fragments,
			model.TextFragment{Text: "Treatment summary for the " + cohort + " cohort.",
				FontSize: 12, FontName: "Helvetica", X: 72, Y: 700, Page: page},
			model.TextFragment{Text: "Observations from the " + cohort + " cohort follow.",
				FontSize: 12, FontName: "Helvetica", X: 72, Y: 672, Page: page},
			model.TextFragment{Text: fmt.Sprintf("Page %d of 3", page),
				FontSize: 10, FontName: "Helvetica", X: 280, Y: 40, Page: page},
		)
	}
	return fragments
}

func TestConvert_ExcludesRepeatedPageFooters(t *testing.T) {
	fragments := multiPageFragments()

	md, _, err := FromFragments(fragments).Markdown()
	if err != nil {
		t.Fatalf("Markdown() error: %v", err)
	}
	if strings.Contains(md, "Page 1 of 3") {
		t.Errorf("repeated footer survived conversion:\n%s", md)
	}
	if !strings.Contains(md, "alpha cohort") {
		t.Errorf("body content missing from output:\n%s", md)
	}

	kept, _, err := FromFragments(fragments).KeepHeadersFooters().Markdown()
	if err != nil {
		t.Fatalf("Markdown() error: %v", err)
	}
	if !strings.Contains(kept, "Page 1 of 3") {
		t.Errorf("KeepHeadersFooters still dropped the footer:\n%s", kept)
	}
}

func TestConvert_EmptyInput(t *testing.T) {
	md, warnings, err := FromFragments(nil).Markdown()
	if err != nil {
		t.Fatalf("Markdown() error: %v", err)
	}
	if md != "" {
		t.Errorf("expected empty markdown, got %q", md)
	}
	if !hasWarning(warnings, WarnNoText) {
		t.Errorf("expected no-text warning, got: %s", FormatWarnings(warnings))
	}
}

func TestConvert_MissingFile(t *testing.T) {
	_, _, err := Open("nonexistent.pdf").Markdown()
	if err == nil {
		t.Fatal("expected error for non-existent file")
	}

	var procErr *ProcessingError
	if !errors.As(err, &procErr) {
		t.Fatalf("expected ProcessingError, got %T: %v", err, err)
	}
	if procErr.Stage != "extract" {
		t.Errorf("expected extract stage, got %q", procErr.Stage)
	}

	var fileErr *extract.InvalidFileError
	if !errors.As(err, &fileErr) {
		t.Errorf("expected InvalidFileError in chain, got %v", err)
	}
}

func TestConverter_Immutability(t *testing.T) {
	base := FromFragments([]model.TextFragment{
		frag("1. First item", 12, "Helvetica", 700),
		frag("2. Second item", 12, "Helvetica", 685.6),
	})
	decorated := base.Title("Checklist").Frontmatter()

	plain, _, err := base.Markdown()
	if err != nil {
		t.Fatalf("base Markdown() error: %v", err)
	}
	if strings.Contains(plain, "---") || strings.Contains(plain, "# Checklist") {
		t.Errorf("base converter picked up chained options:\n%s", plain)
	}

	full, _, err := decorated.Markdown()
	if err != nil {
		t.Fatalf("decorated Markdown() error: %v", err)
	}
	if !strings.HasPrefix(full, "---\n") {
		t.Errorf("expected frontmatter, got:\n%s", full)
	}
	if !strings.Contains(full, "title: Checklist") {
		t.Errorf("expected title in frontmatter, got:\n%s", full)
	}
	if !strings.Contains(full, "# Checklist") {
		t.Errorf("expected title heading, got:\n%s", full)
	}
}

func TestConverter_Analysis(t *testing.T) {
	analysis, warnings, err := FromFragments(resumeFragments()).
		DocumentType(model.DocumentTypeResume).
		Analysis()
	if err != nil {
		t.Fatalf("Analysis() error: %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("unexpected warnings: %s", FormatWarnings(warnings))
	}
	if analysis.Type != model.DocumentTypeResume {
		t.Errorf("expected resume, got %s", analysis.Type)
	}
	if analysis.Confidence != 1.0 {
		t.Errorf("expected confidence 1.0 for forced type, got %v", analysis.Confidence)
	}
	if analysis.Strategy != "resume_optimized" {
		t.Errorf("expected resume_optimized strategy, got %q", analysis.Strategy)
	}
}

func TestFromDocument_Refinement(t *testing.T) {
	source := model.NewDocument("")
	source.AddBlock(model.NewTextBlock("Technical Skills", 14))
	source.AddBlock(model.NewTextBlock("Go and distributed document processing.", 11))

	doc, _, err := FromDocument(source).Title("Profile").Document()
	if err != nil {
		t.Fatalf("Document() error: %v", err)
	}

	if doc.Title != "Profile" {
		t.Errorf("expected title override, got %q", doc.Title)
	}
	heading, ok := doc.Blocks[0].(*model.Heading)
	if !ok || heading.Level != 2 || heading.Content != "Technical Skills" {
		t.Errorf("block 0: expected level-2 heading, got %#v", doc.Blocks[0])
	}
	if _, ok := doc.Blocks[1].(*model.Paragraph); !ok {
		t.Errorf("block 1: expected paragraph, got %#v", doc.Blocks[1])
	}

	// The input document is untouched.
	if len(source.Blocks) != 2 {
		t.Fatalf("source block count changed: %d", len(source.Blocks))
	}
	if _, ok := source.Blocks[0].(*model.TextBlock); !ok {
		t.Errorf("source block mutated: %#v", source.Blocks[0])
	}
}

func TestFromDocument_Nil(t *testing.T) {
	_, _, err := FromDocument(nil).Document()
	if err == nil {
		t.Fatal("expected error for nil document")
	}
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.md")

	warnings, err := FromFragments(resumeFragments()).
		DocumentType(model.DocumentTypeResume).
		WriteFile(path)
	if err != nil {
		t.Fatalf("WriteFile() error: %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("unexpected warnings: %s", FormatWarnings(warnings))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	content := string(data)
	if !strings.HasPrefix(content, "# Jane Doe\n") {
		t.Errorf("unexpected file content:\n%s", content)
	}
	if !strings.HasSuffix(content, "\n") {
		t.Error("expected trailing newline")
	}
}

func TestFormatWarnings(t *testing.T) {
	warnings := []Warning{
		{Code: WarnPageSkipped, Stage: "extract", Message: "skipped page 3"},
		{Code: WarnLowConfidence, Message: "uncertain classification"},
	}
	got := FormatWarnings(warnings)
	want := "extract: skipped page 3; uncertain classification"
	if got != want {
		t.Errorf("FormatWarnings = %q, want %q", got, want)
	}

	if FormatWarnings(nil) != "" {
		t.Errorf("expected empty string for no warnings")
	}
}

func TestProcessingError_Unwrap(t *testing.T) {
	cause := os.ErrNotExist
	err := stageError("extract", "a.pdf", cause)
	if !errors.Is(err, os.ErrNotExist) {
		t.Error("expected wrapped cause to be visible through errors.Is")
	}
	if err.Error() != "a.pdf: extract: file does not exist" {
		t.Errorf("unexpected message: %q", err.Error())
	}

	if stageError("extract", "", nil) != nil {
		t.Error("expected nil for nil cause")
	}
}
