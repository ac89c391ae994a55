// Package layout infers document structure from positioned text lines.
//
// The package turns the flat line slice produced by extraction into
// semantic blocks: paragraphs, lists, code blocks, and headings. Each
// detector is a pure transform over the shared line slice, and every
// block it produces records the half-open span of line indices it
// consumed, so later stages can splice blocks together without guessing
// from text content.
//
// # Detectors
//
//   - [LineDetector] - groups positioned fragments into lines in reading order
//   - [HeaderFooterDetector] - finds repeated page headers, footers, and page numbers
//   - [ParagraphDetector] - groups lines into paragraphs by spacing and alignment
//   - [ListDetector] - detects bulleted, numbered, lettered, and roman lists
//   - [CodeDetector] - finds monospace code blocks and inline code spans
//   - [LanguageDetector] - tags code blocks with a programming language
//   - [HeadingDetector] - classifies paragraphs as headings by content and size
//   - [DocumentAnalyzer] - classifies the document type and tunes detection
//   - [Splicer] - integrates detected blocks back into the document by span
//
// # Configuration
//
// Each detector accepts a config struct with canonical defaults:
//
//	config := layout.DefaultListConfig()
//	config.IndentationThreshold = 12.0
//	detector := layout.NewListDetectorWithConfig(config)
//
// # Document Type Analysis
//
// The [DocumentAnalyzer] scores a document against resume, academic,
// business, and manual vocabularies and returns tuning recommendations
// that the pipeline feeds into paragraph and heading detection:
//
//	analyzer := layout.NewDocumentAnalyzer()
//	analysis := analyzer.AnalyzeType(doc)
//	recs := analyzer.Recommendations(analysis)
package layout
