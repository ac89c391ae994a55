// Package extract reads PDF files into positioned text fragments. Content
// streams are decoded with rsc.io/pdf, glyph runs are coalesced into
// word-level fragments, text is normalized to NFC, and weight/slant flags
// are derived from font names. File validation lives here too.
package extract

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
	rpdf "rsc.io/pdf"

	"github.com/tsawler/structura/model"
)

// Config holds configuration options for extraction and validation
type Config struct {
	// MaxFileSize is the largest accepted input in bytes (0 = no limit)
	MaxFileSize int64

	// MergeGapRatio is the widest horizontal gap, as a fraction of the font
	// size, across which adjacent glyph runs still coalesce into one
	// fragment. Wider gaps are left for the line assembler to treat as
	// word spacing.
	MergeGapRatio float64

	// BaselineTolerance is the vertical wobble, as a fraction of the font
	// size, within which glyph runs count as sharing a baseline
	BaselineTolerance float64

	// MinBlockLength is the minimum rune count for an assembled text
	// block; shorter blocks are dropped as noise
	MinBlockLength int
}

// DefaultConfig returns sensible defaults for extraction
func DefaultConfig() Config {
	return Config{
		MaxFileSize:       100 << 20,
		MergeGapRatio:     0.1,
		BaselineTolerance: 0.2,
		MinBlockLength:    3,
	}
}

// Result is the outcome of fragment extraction.
type Result struct {
	// Fragments are the extracted text runs in reading order: pages
	// ascending, then top to bottom, then left to right
	Fragments []model.TextFragment

	// Pages is the page count of the document
	Pages int

	// Title is the title from the document information dictionary, when
	// present
	Title string

	// Skipped records pages whose content could not be decoded
	Skipped []PageError
}

// PageError records a page whose content could not be decoded. Extraction
// continues past such pages; callers surface them as warnings.
type PageError struct {
	Page int
	Err  error
}

func (e PageError) Error() string {
	return fmt.Sprintf("page %d: %v", e.Page, e.Err)
}

func (e PageError) Unwrap() error {
	return e.Err
}

// Extractor decodes PDF content into text fragments
type Extractor struct {
	config Config
}

// NewExtractor creates an extractor with default configuration
func NewExtractor() *Extractor {
	return &Extractor{config: DefaultConfig()}
}

// NewExtractorWithConfig creates an extractor with custom configuration
func NewExtractorWithConfig(config Config) *Extractor {
	return &Extractor{config: config}
}

// ExtractFile validates path and extracts its text fragments.
func (e *Extractor) ExtractFile(path string) (*Result, error) {
	if err := NewValidatorWithConfig(e.config).ValidateFile(path); err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to get file info: %w", err)
	}

	result, err := e.ExtractReader(f, info.Size())
	if err != nil {
		return nil, &InvalidFileError{Path: path, Reason: err.Error()}
	}
	return result, nil
}

// ExtractBytes validates an in-memory PDF body and extracts its text
// fragments. The HTTP service feeds request bodies through here.
func (e *Extractor) ExtractBytes(data []byte) (*Result, error) {
	if err := NewValidatorWithConfig(e.config).ValidateBytes(data); err != nil {
		return nil, err
	}
	return e.ExtractReader(bytes.NewReader(data), int64(len(data)))
}

// ExtractReader extracts text fragments from an open PDF covering size
// bytes.
func (e *Extractor) ExtractReader(r io.ReaderAt, size int64) (*Result, error) {
	doc, err := rpdf.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("reading pdf structure: %w", err)
	}
	return e.extract(doc)
}

func (e *Extractor) extract(doc *rpdf.Reader) (*Result, error) {
	result := &Result{
		Pages: doc.NumPage(),
		Title: documentTitle(doc),
	}

	for pageNum := 1; pageNum <= result.Pages; pageNum++ {
		page := doc.Page(pageNum)
		if page.V.IsNull() {
			continue
		}

		fragments, err := e.extractPage(page, pageNum)
		if err != nil {
			result.Skipped = append(result.Skipped, PageError{Page: pageNum, Err: err})
			continue
		}
		result.Fragments = append(result.Fragments, fragments...)
	}

	return result, nil
}

// extractPage decodes one page into coalesced fragments. The pdf package
// panics on some malformed content streams; those become page errors.
func (e *Extractor) extractPage(page rpdf.Page, pageNum int) (fragments []model.TextFragment, err error) {
	defer func() {
		if r := recover(); r != nil {
			fragments = nil
			err = fmt.Errorf("decoding content: %v", r)
		}
	}()

	content := page.Content()
	if len(content.Text) == 0 {
		return nil, nil
	}

	texts := make([]rpdf.Text, len(content.Text))
	copy(texts, content.Text)
	sort.SliceStable(texts, func(i, j int) bool {
		if texts[i].Y != texts[j].Y {
			return texts[i].Y > texts[j].Y
		}
		return texts[i].X < texts[j].X
	})

	return e.coalesce(texts, pageNum), nil
}

// coalesce merges adjacent glyph runs sharing a font, size, and baseline
// into word-level fragments. A gap wider than MergeGapRatio of the font
// size starts a new fragment; the remaining inter-fragment gaps carry the
// word spacing.
func (e *Extractor) coalesce(texts []rpdf.Text, pageNum int) []model.TextFragment {
	fragments := make([]model.TextFragment, 0, len(texts)/4+1)

	var run *glyphRun
	for _, t := range texts {
		if t.S == "" {
			continue
		}
		if run != nil && run.extends(t, e.config) {
			run.absorb(t)
			continue
		}
		if run != nil {
			fragments = append(fragments, run.fragment(pageNum))
		}
		run = newGlyphRun(t)
	}
	if run != nil {
		fragments = append(fragments, run.fragment(pageNum))
	}

	return fragments
}

// TextBlocks groups fragments into one text block per visual line,
// preserving reading order. Blocks shorter than MinBlockLength runes after
// trimming are dropped as noise. This is the container-level view used
// when positioned line analysis is unavailable.
func (e *Extractor) TextBlocks(fragments []model.TextFragment) []*model.TextBlock {
	if len(fragments) == 0 {
		return nil
	}

	ordered := make([]model.TextFragment, len(fragments))
	copy(ordered, fragments)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].Page != ordered[j].Page {
			return ordered[i].Page < ordered[j].Page
		}
		if ordered[i].Y != ordered[j].Y {
			return ordered[i].Y > ordered[j].Y
		}
		return ordered[i].X < ordered[j].X
	})

	var blocks []*model.TextBlock
	group := []model.TextFragment{ordered[0]}
	for _, frag := range ordered[1:] {
		prev := group[len(group)-1]
		if frag.Page == prev.Page && absFloat(frag.Y-prev.Y) <= baselineSlack(prev.FontSize) {
			group = append(group, frag)
			continue
		}
		if block := e.buildBlock(group); block != nil {
			blocks = append(blocks, block)
		}
		group = []model.TextFragment{frag}
	}
	if block := e.buildBlock(group); block != nil {
		blocks = append(blocks, block)
	}

	return blocks
}

// buildBlock assembles one line's fragments into a text block, inserting
// spaces across gaps wider than a tenth of the font size.
func (e *Extractor) buildBlock(group []model.TextFragment) *model.TextBlock {
	var text strings.Builder
	var sizeSum float64
	for i, frag := range group {
		if i > 0 {
			prev := group[i-1]
			if frag.X-(prev.X+prev.Width) > frag.FontSize*0.1 {
				text.WriteString(" ")
			}
		}
		text.WriteString(frag.Text)
		sizeSum += frag.FontSize
	}

	content := strings.TrimSpace(text.String())
	if utf8.RuneCountInString(content) < e.config.MinBlockLength {
		return nil
	}
	return model.NewTextBlock(content, sizeSum/float64(len(group)))
}

// glyphRun accumulates adjacent glyphs into a single pending fragment.
type glyphRun struct {
	text     strings.Builder
	font     string
	fontSize float64
	x, y     float64
	end      float64
}

func newGlyphRun(t rpdf.Text) *glyphRun {
	run := &glyphRun{
		font:     t.Font,
		fontSize: t.FontSize,
		x:        t.X,
		y:        t.Y,
		end:      t.X + t.W,
	}
	run.text.WriteString(t.S)
	return run
}

func (r *glyphRun) extends(t rpdf.Text, config Config) bool {
	if t.Font != r.font || absFloat(t.FontSize-r.fontSize) > 0.1 {
		return false
	}
	if absFloat(t.Y-r.y) > r.fontSize*config.BaselineTolerance {
		return false
	}
	return t.X-r.end <= r.fontSize*config.MergeGapRatio
}

func (r *glyphRun) absorb(t rpdf.Text) {
	r.text.WriteString(t.S)
	if end := t.X + t.W; end > r.end {
		r.end = end
	}
}

func (r *glyphRun) fragment(pageNum int) model.TextFragment {
	name := cleanFontName(r.font)
	width := r.end - r.x
	if width < 0 {
		width = 0
	}
	return model.TextFragment{
		Text:     norm.NFC.String(r.text.String()),
		FontSize: r.fontSize,
		FontName: name,
		Bold:     isBoldFont(name),
		Italic:   isItalicFont(name),
		X:        r.x,
		Y:        r.y,
		Width:    width,
		Page:     pageNum,
	}
}

// subsetPrefix matches the six-letter subset tag on embedded font names
// ("ABCDEF+Times-Bold").
var subsetPrefix = regexp.MustCompile(`^[A-Z]{6}\+`)

// cleanFontName strips any leading slash and subset tag from a base font
// name.
func cleanFontName(name string) string {
	name = strings.TrimPrefix(name, "/")
	return subsetPrefix.ReplaceAllString(name, "")
}

// Font-name indicators for weight and slant, per PostScript naming
// convention.
var (
	boldIndicators   = []string{"bold", "black", "heavy"}
	italicIndicators = []string{"italic", "oblique"}
)

func isBoldFont(name string) bool {
	return containsAny(strings.ToLower(name), boldIndicators)
}

func isItalicFont(name string) bool {
	return containsAny(strings.ToLower(name), italicIndicators)
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// documentTitle reads the information dictionary title. Malformed Info
// dictionaries panic inside the pdf package.
func documentTitle(doc *rpdf.Reader) (title string) {
	defer func() {
		if recover() != nil {
			title = ""
		}
	}()

	info := doc.Trailer().Key("Info")
	if info.IsNull() {
		return ""
	}
	return strings.TrimSpace(info.Key("Title").Text())
}

// baselineSlack is the same-line tolerance used for block grouping.
func baselineSlack(fontSize float64) float64 {
	slack := fontSize * 0.5
	if slack < 2.0 {
		return 2.0
	}
	return slack
}

func absFloat(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
