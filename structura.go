// Package structura converts PDF documents into structured Markdown. It
// infers document structure (paragraphs, lists, code blocks, headings)
// from positioned text fragments and renders the result as Markdown.
//
// Basic usage:
//
//	md, warnings, err := structura.Open("document.pdf").Markdown()
//	if err != nil {
//	    // handle error
//	}
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", structura.FormatWarnings(warnings))
//	}
//
// With options:
//
//	md, _, err := structura.Open("cv.pdf").
//	    DocumentType(model.DocumentTypeResume).
//	    Frontmatter().
//	    Markdown()
//
// For advanced use cases, the lower-level extract, layout, and markdown
// packages are also available.
package structura

import (
	"fmt"

	"github.com/tsawler/structura/model"
)

// Open prepares a conversion of the PDF file at path and returns a
// Converter for fluent configuration. The file is not touched until a
// terminal operation runs.
//
// Example:
//
//	doc, warnings, err := structura.Open("document.pdf").Document()
func Open(path string) *Converter {
	return &Converter{
		path:   path,
		config: DefaultConfig(),
	}
}

// OpenBytes prepares a conversion of an in-memory PDF. This is the entry
// point for servers that receive uploads.
//
// Example:
//
//	md, _, err := structura.OpenBytes(body).Markdown()
func OpenBytes(data []byte) *Converter {
	return &Converter{
		data:   data,
		config: DefaultConfig(),
	}
}

// FromFragments prepares a conversion of already-extracted text fragments.
// This is useful for callers with their own PDF decoding, and for tests.
//
// Example:
//
//	md, _, err := structura.FromFragments(fragments).Markdown()
func FromFragments(fragments []model.TextFragment) *Converter {
	return &Converter{
		fragments: append([]model.TextFragment(nil), fragments...),
		config:    DefaultConfig(),
	}
}

// FromDocument prepares a refinement of an existing document: paragraph
// grouping over its text blocks, heading detection, and document-type
// analysis. The input document is not modified.
//
// Example:
//
//	refined, _, err := structura.FromDocument(doc).Document()
func FromDocument(doc *model.Document) *Converter {
	c := &Converter{
		source: doc,
		config: DefaultConfig(),
	}
	if doc == nil {
		c.err = fmt.Errorf("nil document")
	}
	return c
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
//
// Example:
//
//	doc := structura.Must(model.NewHeading(1, "Title", 24, true))
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

// MustConvert is a helper that wraps a terminal operation returning
// (T, []Warning, error) and panics if the error is non-nil. It discards
// warnings and returns just the value.
//
// Example:
//
//	md := structura.MustConvert(structura.Open("document.pdf").Markdown())
func MustConvert[T any](val T, _ []Warning, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
