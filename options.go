package structura

import (
	"github.com/tsawler/structura/extract"
	"github.com/tsawler/structura/layout"
	"github.com/tsawler/structura/markdown"
)

// Config aggregates the tuning for every pipeline stage. The zero value is
// not usable; start from DefaultConfig and adjust fields as needed. Each
// chained converter call works on its own clone, so a Config handed to one
// conversion is never mutated by another.
type Config struct {
	// Extract tunes PDF decoding, glyph coalescing, and input validation
	Extract extract.Config

	// Line tunes fragment-to-line grouping
	Line layout.LineConfig

	// Paragraph tunes line-to-paragraph grouping
	Paragraph layout.ParagraphConfig

	// List tunes list-marker detection and item grouping
	List layout.ListConfig

	// Code tunes monospace code-block detection
	Code layout.CodeConfig

	// Heading tunes heading-level classification
	Heading layout.HeadingConfig

	// HeaderFooter tunes repeated header and footer detection
	HeaderFooter layout.HeaderFooterConfig

	// Markdown tunes rendered output
	Markdown markdown.Config

	// AutoTune applies the document analyzer's recommendations to the
	// paragraph and heading stages before detection runs
	AutoTune bool

	// ExcludeHeadersFooters removes repeated page headers, footers, and
	// page numbers from multi-page documents before paragraph grouping
	ExcludeHeadersFooters bool

	// ConfidenceThreshold is the classification confidence below which a
	// conversion carries a low-confidence warning (default: 0.5)
	ConfidenceThreshold float64
}

// DefaultConfig returns the canonical stage tuning.
func DefaultConfig() Config {
	return Config{
		Extract:               extract.DefaultConfig(),
		Line:                  layout.DefaultLineConfig(),
		Paragraph:             layout.DefaultParagraphConfig(),
		List:                  layout.DefaultListConfig(),
		Code:                  layout.DefaultCodeConfig(),
		Heading:               layout.DefaultHeadingConfig(),
		HeaderFooter:          layout.DefaultHeaderFooterConfig(),
		Markdown:              markdown.DefaultConfig(),
		AutoTune:              true,
		ExcludeHeadersFooters: true,
		ConfidenceThreshold:   0.5,
	}
}

// clone creates a deep copy of the Config, including the slice and map
// fields inside component configs.
func (c Config) clone() Config {
	clone := c

	if c.Code.MonospaceFonts != nil {
		clone.Code.MonospaceFonts = make([]string, len(c.Code.MonospaceFonts))
		copy(clone.Code.MonospaceFonts, c.Code.MonospaceFonts)
	}
	if c.Heading.LevelMultipliers != nil {
		clone.Heading.LevelMultipliers = make(map[int]float64, len(c.Heading.LevelMultipliers))
		for level, multiplier := range c.Heading.LevelMultipliers {
			clone.Heading.LevelMultipliers[level] = multiplier
		}
	}

	return clone
}
