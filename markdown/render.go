// Package markdown renders structured documents as Markdown text, with
// optional YAML frontmatter describing the conversion.
package markdown

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/tsawler/structura/model"
)

// Markdown dialects. Emission rules are identical across dialects; the
// dialect is recorded in the frontmatter for downstream consumers.
const (
	DialectGFM        = "gfm"
	DialectCommonMark = "commonmark"
	DialectBasic      = "basic"
)

// parserName identifies the converter in generated frontmatter.
const parserName = "structura"

// Config holds configuration options for rendering
type Config struct {
	// IncludeFrontmatter prepends a YAML frontmatter block built from the
	// document title and metadata
	IncludeFrontmatter bool

	// Dialect is the target Markdown dialect: gfm, commonmark, or basic
	Dialect string
}

// DefaultConfig returns sensible defaults for rendering
func DefaultConfig() Config {
	return Config{
		IncludeFrontmatter: false,
		Dialect:            DialectGFM,
	}
}

// Renderer turns a document into Markdown output
type Renderer struct {
	config Config
}

// NewRenderer creates a renderer with default configuration
func NewRenderer() *Renderer {
	return &Renderer{
		config: DefaultConfig(),
	}
}

// NewRendererWithConfig creates a renderer with custom configuration
func NewRendererWithConfig(config Config) *Renderer {
	return &Renderer{
		config: config,
	}
}

// frontmatter is the YAML header describing a conversion. Field order is
// the emission order.
type frontmatter struct {
	Title        string  `yaml:"title,omitempty"`
	Source       string  `yaml:"source,omitempty"`
	Parser       string  `yaml:"parser"`
	Dialect      string  `yaml:"dialect"`
	DocumentType string  `yaml:"document_type,omitempty"`
	Confidence   float64 `yaml:"confidence,omitempty"`
	Generated    string  `yaml:"generated"`
}

// Render produces the Markdown representation of a document. When
// IncludeFrontmatter is set, a YAML frontmatter block precedes the body,
// carrying the title plus the source, document_type, and confidence
// metadata entries when present.
func (r *Renderer) Render(doc *model.Document) (string, error) {
	if doc == nil {
		return "", fmt.Errorf("rendering markdown: nil document")
	}
	if !validDialect(r.config.Dialect) {
		return "", fmt.Errorf("unknown markdown dialect %q", r.config.Dialect)
	}

	body := doc.ToMarkdown()
	if !r.config.IncludeFrontmatter {
		return body, nil
	}

	header, err := r.buildFrontmatter(doc)
	if err != nil {
		return "", err
	}
	return header + body, nil
}

// RenderToFile renders a document and writes it to path as UTF-8. Non-empty
// output gains a trailing newline.
func (r *Renderer) RenderToFile(doc *model.Document, path string) error {
	output, err := r.Render(doc)
	if err != nil {
		return err
	}
	if output != "" {
		output += "\n"
	}
	if err := os.WriteFile(path, []byte(output), 0644); err != nil {
		return fmt.Errorf("writing markdown file %s: %w", path, err)
	}
	return nil
}

// buildFrontmatter encodes the document header between "---" fences.
func (r *Renderer) buildFrontmatter(doc *model.Document) (string, error) {
	header := frontmatter{
		Title:     doc.Title,
		Parser:    parserName,
		Dialect:   r.config.Dialect,
		Generated: time.Now().UTC().Format(time.RFC3339),
	}
	if header.Title == "" {
		// A title recorded in metadata names the document without forcing
		// a level-1 heading into the body.
		if title, ok := doc.Metadata["title"].(string); ok {
			header.Title = title
		}
	}
	if source, ok := doc.Metadata["source"].(string); ok {
		header.Source = source
	}
	if docType, ok := doc.Metadata["document_type"].(string); ok {
		header.DocumentType = docType
	}
	if confidence, ok := doc.Metadata["confidence"].(float64); ok {
		header.Confidence = confidence
	}

	encoded, err := yaml.Marshal(header)
	if err != nil {
		return "", fmt.Errorf("encoding frontmatter: %w", err)
	}
	return "---\n" + string(encoded) + "---\n\n", nil
}

func validDialect(dialect string) bool {
	switch dialect {
	case DialectGFM, DialectCommonMark, DialectBasic:
		return true
	}
	return false
}
