package layout

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/tsawler/structura/model"
)

// HeaderFooterConfig holds configuration for repeated header and footer
// detection
type HeaderFooterConfig struct {
	// HeaderRegionHeight is the band below the content top considered the
	// header zone, in points (default: 72, one inch)
	HeaderRegionHeight float64

	// FooterRegionHeight is the band above the content bottom considered the
	// footer zone, in points (default: 72)
	FooterRegionHeight float64

	// MinOccurrenceRatio is the minimum fraction of pages a candidate must
	// appear on to qualify as a header or footer (default: 0.5)
	MinOccurrenceRatio float64

	// PositionTolerance is the maximum vertical drift between occurrences of
	// the same candidate, in points (default: 5)
	PositionTolerance float64

	// XPositionTolerance is the maximum horizontal drift between occurrences
	// of the same candidate, in points (default: 10)
	XPositionTolerance float64

	// MinPages is the minimum page count before detection runs (default: 2)
	MinPages int
}

// DefaultHeaderFooterConfig returns sensible default configuration
func DefaultHeaderFooterConfig() HeaderFooterConfig {
	return HeaderFooterConfig{
		HeaderRegionHeight: 72.0,
		FooterRegionHeight: 72.0,
		MinOccurrenceRatio: 0.5,
		PositionTolerance:  5.0,
		XPositionTolerance: 10.0,
		MinPages:           2,
	}
}

// RegionKind distinguishes header regions from footer regions
type RegionKind int

const (
	RegionHeader RegionKind = iota
	RegionFooter
)

// String returns a string representation of the region kind
func (k RegionKind) String() string {
	if k == RegionHeader {
		return "header"
	}
	return "footer"
}

// HeaderFooterRegion is one run of repeated page furniture: the same text
// at a consistent position on enough pages.
type HeaderFooterRegion struct {
	// Kind records whether the region sits at the top or bottom of the page
	Kind RegionKind

	// Text is the representative content, "[page number]" for page counters
	Text string

	// IsPageNumber marks regions whose occurrences count up page by page
	IsPageNumber bool

	// Confidence is the detection confidence (0.0 to 1.0)
	Confidence float64

	// Pages lists the page numbers carrying the region, ascending
	Pages []int
}

// HeaderFooterResult holds the regions detected across a document, sorted
// by confidence
type HeaderFooterResult struct {
	Headers []HeaderFooterRegion
	Footers []HeaderFooterRegion

	config HeaderFooterConfig
}

// HeaderFooterDetector finds text repeated across pages at the page edges:
// running titles, footer lines, and page numbers. Candidates are compared
// after digit normalization, so "Page 1" and "Page 2" count as occurrences
// of the same candidate.
type HeaderFooterDetector struct {
	config HeaderFooterConfig
}

// NewHeaderFooterDetector creates a new detector with default configuration
func NewHeaderFooterDetector() *HeaderFooterDetector {
	return &HeaderFooterDetector{
		config: DefaultHeaderFooterConfig(),
	}
}

// NewHeaderFooterDetectorWithConfig creates a detector with custom configuration
func NewHeaderFooterDetectorWithConfig(config HeaderFooterConfig) *HeaderFooterDetector {
	return &HeaderFooterDetector{
		config: config,
	}
}

// furnitureCandidate is a line that fell inside a header or footer zone
type furnitureCandidate struct {
	text   string
	x      float64
	offset float64
	page   int
}

// Detect groups lines by page and reports text repeated at consistent
// positions inside the header and footer zones. Documents with fewer than
// MinPages pages produce an empty result.
func (d *HeaderFooterDetector) Detect(lines []model.Line) *HeaderFooterResult {
	result := &HeaderFooterResult{config: d.config}

	pages := groupByPage(lines)
	if len(pages) < d.config.MinPages {
		return result
	}

	headerCandidates, footerCandidates := d.collectCandidates(pages)
	result.Headers = d.repeatedRegions(headerCandidates, RegionHeader, len(pages))
	result.Footers = d.repeatedRegions(footerCandidates, RegionFooter, len(pages))
	return result
}

// collectCandidates gathers the lines falling inside each page's header and
// footer zones. Zones are measured from the page's content bounds, so
// varying page sizes and margins do not shift them.
func (d *HeaderFooterDetector) collectCandidates(pages map[int][]model.Line) (headers, footers []furnitureCandidate) {
	for page, pageLines := range pages {
		top, bottom := contentBounds(pageLines)
		for _, line := range pageLines {
			fromTop := top - (line.Y + line.Height)
			fromBottom := line.Y - bottom

			if fromTop < d.config.HeaderRegionHeight {
				headers = append(headers, furnitureCandidate{
					text:   strings.TrimSpace(line.Text),
					x:      line.X,
					offset: fromTop,
					page:   page,
				})
			}
			if fromBottom < d.config.FooterRegionHeight {
				footers = append(footers, furnitureCandidate{
					text:   strings.TrimSpace(line.Text),
					x:      line.X,
					offset: fromBottom,
					page:   page,
				})
			}
		}
	}
	return headers, footers
}

// repeatedRegions groups candidates by digit-normalized text and keeps the
// groups that span enough pages at a consistent position.
func (d *HeaderFooterDetector) repeatedRegions(candidates []furnitureCandidate, kind RegionKind, pageCount int) []HeaderFooterRegion {
	if len(candidates) == 0 {
		return nil
	}

	groups := make(map[string][]furnitureCandidate)
	for _, c := range candidates {
		normalized := normalizeDigits(c.text)
		groups[normalized] = append(groups[normalized], c)
	}

	minOccurrences := int(float64(pageCount) * d.config.MinOccurrenceRatio)
	if minOccurrences < 2 {
		minOccurrences = 2
	}

	var regions []HeaderFooterRegion
	for normalized, group := range groups {
		// Very short non-numeric text is more likely a stray fragment of a
		// larger line than a running header
		if len(normalized) <= 2 && !isPageNumberText(normalized) {
			continue
		}

		pageSet := make(map[int]bool)
		for _, c := range group {
			pageSet[c.page] = true
		}
		if len(pageSet) < minOccurrences {
			continue
		}
		if !d.consistentPosition(group) {
			continue
		}

		isPageNum := isPageNumberText(normalized) || sequentialNumbers(group)
		text := group[0].text
		if isPageNum {
			text = "[page number]"
		}

		pageList := make([]int, 0, len(pageSet))
		for page := range pageSet {
			pageList = append(pageList, page)
		}
		sort.Ints(pageList)

		ratio := float64(len(pageSet)) / float64(pageCount)
		confidence := ratio*0.9 + 0.1
		if confidence > 1.0 {
			confidence = 1.0
		}

		regions = append(regions, HeaderFooterRegion{
			Kind:         kind,
			Text:         text,
			IsPageNumber: isPageNum,
			Confidence:   confidence,
			Pages:        pageList,
		})
	}

	sort.Slice(regions, func(i, j int) bool {
		if regions[i].Confidence != regions[j].Confidence {
			return regions[i].Confidence > regions[j].Confidence
		}
		return regions[i].Text < regions[j].Text
	})
	return regions
}

// consistentPosition reports whether all candidates in the group sit at the
// same position within tolerance. The first occurrence is the reference.
func (d *HeaderFooterDetector) consistentPosition(group []furnitureCandidate) bool {
	if len(group) < 2 {
		return false
	}

	ref := group[0]
	for _, c := range group[1:] {
		if absFloat64(c.offset-ref.offset) > d.config.PositionTolerance {
			return false
		}
		if absFloat64(c.x-ref.x) > d.config.XPositionTolerance {
			return false
		}
	}
	return true
}

// Filter returns the lines minus those matching a detected region on their
// page. Lines on pages outside a region's page list are kept even when
// their text matches.
func (r *HeaderFooterResult) Filter(lines []model.Line) []model.Line {
	if !r.HasDetections() || len(lines) == 0 {
		return lines
	}

	bounds := make(map[int][2]float64)
	for page, pageLines := range groupByPage(lines) {
		top, bottom := contentBounds(pageLines)
		bounds[page] = [2]float64{top, bottom}
	}

	filtered := make([]model.Line, 0, len(lines))
	for _, line := range lines {
		b := bounds[line.Page]
		if r.matchesRegion(line, b[0], b[1]) {
			continue
		}
		filtered = append(filtered, line)
	}
	return filtered
}

// HasDetections reports whether any header or footer region was found
func (r *HeaderFooterResult) HasDetections() bool {
	return r != nil && (len(r.Headers) > 0 || len(r.Footers) > 0)
}

// matchesRegion reports whether the line falls inside a detected region on
// its page and carries the region's text.
func (r *HeaderFooterResult) matchesRegion(line model.Line, top, bottom float64) bool {
	text := strings.TrimSpace(line.Text)

	if top-(line.Y+line.Height) < r.config.HeaderRegionHeight {
		for _, region := range r.Headers {
			if containsPage(region.Pages, line.Page) && furnitureTextMatches(text, region) {
				return true
			}
		}
	}

	if line.Y-bottom < r.config.FooterRegionHeight {
		for _, region := range r.Footers {
			if containsPage(region.Pages, line.Page) && furnitureTextMatches(text, region) {
				return true
			}
		}
	}
	return false
}

// furnitureTextMatches compares a line against a region. Page-number
// regions match any page-number-shaped text; other regions match exactly or
// after digit normalization.
func furnitureTextMatches(text string, region HeaderFooterRegion) bool {
	if region.IsPageNumber {
		return isPageNumberText(normalizeDigits(text))
	}
	if text == region.Text {
		return true
	}
	return normalizeDigits(text) == normalizeDigits(region.Text)
}

// sequentialNumbers reports whether the numbers embedded in the group's
// occurrences mostly count upward, the signature of a page counter.
func sequentialNumbers(group []furnitureCandidate) bool {
	if len(group) < 2 {
		return false
	}

	var numbers []int
	for _, c := range group {
		for _, match := range digitRun.FindAllString(c.text, -1) {
			if n, err := strconv.Atoi(match); err == nil {
				numbers = append(numbers, n)
			}
		}
	}
	if len(numbers) < 2 {
		return false
	}

	sort.Ints(numbers)
	sequential := 0
	for i := 1; i < len(numbers); i++ {
		if numbers[i]-numbers[i-1] == 1 {
			sequential++
		}
	}
	return sequential >= len(numbers)/2
}

// digitRun matches a run of consecutive digits
var digitRun = regexp.MustCompile(`\d+`)

// normalizeDigits replaces digit runs with "#" so occurrences differing
// only in numbers compare equal.
func normalizeDigits(text string) string {
	return digitRun.ReplaceAllString(text, "#")
}

// pageNumberPatterns are the digit-normalized shapes of common page
// counters: "1", "Page 1", "- 1 -", "1 of 10", "1/10", "p. 1"
var pageNumberPatterns = []string{
	"#",
	"page #",
	"- # -",
	"# of #",
	"page # of #",
	"#/#",
	"p. #",
	"p.#",
	"pg #",
	"pg. #",
}

// isPageNumberText reports whether digit-normalized text looks like a page
// counter
func isPageNumberText(normalized string) bool {
	trimmed := strings.TrimSpace(normalized)
	for _, pattern := range pageNumberPatterns {
		if strings.EqualFold(trimmed, pattern) {
			return true
		}
	}
	return false
}

// containsPage reports whether page is in the sorted page list
func containsPage(pages []int, page int) bool {
	for _, p := range pages {
		if p == page {
			return true
		}
	}
	return false
}

// groupByPage partitions lines by their page number
func groupByPage(lines []model.Line) map[int][]model.Line {
	pages := make(map[int][]model.Line)
	for _, line := range lines {
		pages[line.Page] = append(pages[line.Page], line)
	}
	return pages
}

// contentBounds returns the vertical extent of a page's text: top is the
// highest line extent, bottom the lowest baseline.
func contentBounds(lines []model.Line) (top, bottom float64) {
	top = lines[0].Y + lines[0].Height
	bottom = lines[0].Y
	for _, line := range lines[1:] {
		if line.Y+line.Height > top {
			top = line.Y + line.Height
		}
		if line.Y < bottom {
			bottom = line.Y
		}
	}
	return top, bottom
}
