// Package model provides the intermediate representation (IR) for inferred
// document structure.
//
// This package defines the user-facing data structures that represent the
// semantic structure of a document. All detection stages consume and produce
// these types, making them the primary API for working with converted content.
//
// # Documents and Blocks
//
// The [Document] type represents a complete document with a title, metadata,
// and an ordered sequence of blocks:
//
//	doc := model.NewDocument("Quarterly Report")
//	doc.AddBlock(model.NewTextBlock("Revenue grew in all regions.", 12.0))
//	md := doc.ToMarkdown()
//
// All content implements the [Block] interface. The concrete types are:
//
//   - [Heading] - headings (levels 1-6)
//   - [TextBlock] - raw text with font metadata, the extractor's output
//   - [Paragraph] - text with line structure and flow information
//   - [ListBlock] - ordered or unordered lists with nesting
//   - [CodeBlock] - code with language tag and whitespace preserved
//
// Code that needs to branch on block kind uses a type switch over these
// concrete types; there is no reflection or attribute probing anywhere in
// the pipeline.
//
// # Positioned Text
//
// Detection stages that work from page geometry consume positioned values:
//
//   - [TextFragment] - a single positioned run of text from the extractor
//   - [Line] - an assembled line with position, font, and sub-spans
//   - [FontSegment] - a sub-span of a line with its own font
//   - [Span] - a half-open index range into the extracted line slice
//
// Coordinates follow the PDF convention: larger Y is higher on the page.
//
// # Validation
//
// Constructors that enforce invariants (heading levels, list item nesting,
// code style indentation) return [*ValidationError] describing the field and
// the violated rule. A value that constructs successfully is always safe to
// render.
package model
