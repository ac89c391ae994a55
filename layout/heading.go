package layout

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/tsawler/structura/model"
)

// HeadingConfig holds configuration for heading detection
type HeadingConfig struct {
	// LevelMultipliers maps heading levels to the minimum font size ratio
	// over the baseline that suggests them. Levels 1 and 2 are claimed by
	// the content rules first, so the map decides levels 3 through 6.
	LevelMultipliers map[int]float64

	// MinSizeDifference is the smallest relative font size difference
	// still considered meaningful: half of it gates the size score
	// contribution, the full value gates level 6 (default: 0.1)
	MinSizeDifference float64

	// BoldWeight and CapsWeight are the style score contributions of bold
	// text and of short ALL-CAPS text (defaults: 0.5 and 1.0)
	BoldWeight float64
	CapsWeight float64

	// MinHeadingLength and MaxHeadingLength bound the content length, in
	// characters, of a heading candidate (defaults: 1 and 300)
	MinHeadingLength int
	MaxHeadingLength int
}

// DefaultHeadingConfig returns sensible default configuration
func DefaultHeadingConfig() HeadingConfig {
	return HeadingConfig{
		LevelMultipliers: map[int]float64{
			1: 1.8,
			2: 1.5,
			3: 1.3,
			4: 1.15,
			5: 1.05,
			6: 1.02,
		},
		MinSizeDifference: 0.1,
		BoldWeight:        0.5,
		CapsWeight:        1.0,
		MinHeadingLength:  1,
		MaxHeadingLength:  300,
	}
}

// HeadingDetector promotes text blocks and paragraphs to headings.
// Classification is content-first: known section headers and name-like
// lines are recognized before font size enters the picture, so documents
// whose headings are styled subtly still structure correctly.
type HeadingDetector struct {
	config HeadingConfig
}

// NewHeadingDetector creates a new heading detector with default configuration
func NewHeadingDetector() *HeadingDetector {
	return NewHeadingDetectorWithConfig(DefaultHeadingConfig())
}

// NewHeadingDetectorWithConfig creates a heading detector with custom configuration
func NewHeadingDetectorWithConfig(config HeadingConfig) *HeadingDetector {
	return &HeadingDetector{config: config}
}

// DetectInDocument returns a new document in which blocks classified as
// headings are replaced by model.Heading values. All other blocks pass
// through unchanged, in order. The baseline font size for the comparison
// comes from the document's own text blocks and paragraphs.
func (d *HeadingDetector) DetectInDocument(doc *model.Document) *model.Document {
	if len(doc.Blocks) == 0 {
		return doc
	}

	sizes := eligibleFontSizes(doc.Blocks)
	if len(sizes) == 0 {
		return doc
	}
	baseline := d.baselineFontSize(sizes)

	result := model.NewDocument(doc.Title)
	for k, v := range doc.Metadata {
		result.Metadata[k] = v
	}

	for _, block := range doc.Blocks {
		content, fontSize, bold, ok := headingCandidate(block)
		if !ok || fontSize == 0 {
			result.AddBlock(block)
			continue
		}

		level := d.determineLevel(content, fontSize, bold, baseline)
		if level == 0 {
			result.AddBlock(block)
			continue
		}

		heading, err := model.NewHeading(level, content, fontSize, bold)
		if err != nil {
			result.AddBlock(block)
			continue
		}
		result.AddBlock(heading)
	}

	return result
}

// headingCandidate extracts the content, font size, and bold flag of a
// block that may become a heading. Only text blocks and paragraphs
// qualify.
func headingCandidate(block model.Block) (string, float64, bool, bool) {
	switch b := block.(type) {
	case *model.TextBlock:
		return b.Content, b.FontSize, false, true
	case *model.Paragraph:
		return b.Content(), b.FontSize, paragraphLooksBold(b), true
	default:
		return "", 0, false, false
	}
}

// paragraphLooksBold reports whether a paragraph reads as bold: at least
// half of its lines carry a bold font name.
func paragraphLooksBold(p *model.Paragraph) bool {
	if len(p.Lines) == 0 {
		return false
	}
	bold := 0
	for _, line := range p.Lines {
		if strings.Contains(strings.ToLower(line.FontName), "bold") {
			bold++
		}
	}
	return bold > 0 && bold*2 >= len(p.Lines)
}

// eligibleFontSizes collects the font sizes of blocks that participate in
// baseline estimation.
func eligibleFontSizes(blocks []model.Block) []float64 {
	var sizes []float64
	for _, block := range blocks {
		switch b := block.(type) {
		case *model.TextBlock:
			if b.FontSize > 0 {
				sizes = append(sizes, b.FontSize)
			}
		case *model.Paragraph:
			if b.FontSize > 0 {
				sizes = append(sizes, b.FontSize)
			}
		}
	}
	return sizes
}

// baselineFontSize estimates the body text font size. Outliers beyond
// 1.5 IQR are trimmed when there are enough samples, then the most
// frequent size wins; with no repeated size the median decides.
func (d *HeadingDetector) baselineFontSize(sizes []float64) float64 {
	if len(sizes) == 0 {
		return 12.0
	}

	sorted := append([]float64(nil), sizes...)
	sort.Float64s(sorted)

	filtered := sizes
	if len(sorted) > 4 {
		q1 := sorted[len(sorted)/4]
		q3 := sorted[3*len(sorted)/4]
		iqr := q3 - q1
		lower := q1 - 1.5*iqr
		upper := q3 + 1.5*iqr

		var kept []float64
		for _, size := range sizes {
			if size >= lower && size <= upper {
				kept = append(kept, size)
			}
		}
		if len(kept) > 0 {
			filtered = kept
		}
	}

	counts := make(map[float64]int, len(filtered))
	mode := filtered[0]
	modeCount := 0
	for _, size := range filtered {
		counts[size]++
		if counts[size] > modeCount {
			mode = size
			modeCount = counts[size]
		}
	}
	if modeCount > 1 {
		return mode
	}

	if len(filtered) > 1 {
		return medianFloat64(filtered)
	}
	return filtered[0]
}

// determineLevel classifies content as a heading level from 1 to 6, or 0
// for body text. Checks run in order: length gate, contact-information
// exclusion, resume section registry, name heuristic, then a composite
// style and size score.
func (d *HeadingDetector) determineLevel(content string, fontSize float64, bold bool, baseline float64) int {
	content = strings.TrimSpace(content)

	length := utf8.RuneCountInString(content)
	if length < d.config.MinHeadingLength || length > d.config.MaxHeadingLength {
		return 0
	}

	if isContactInformation(content) {
		return 0
	}

	if level := resumeSectionLevel(content); level > 0 {
		return level
	}

	if isLikelyNameOrTitle(content) {
		return 1
	}

	sizeRatio := fontSize / baseline

	styleBonus := 0.0
	if bold {
		styleBonus += d.config.BoldWeight
	}
	if isUpperString(content) && len(strings.Fields(content)) <= 4 {
		styleBonus += d.config.CapsWeight
	}

	score := styleBonus
	if sizeRatio > 1.0+d.config.MinSizeDifference/2 {
		contribution := (sizeRatio - 1.0) * 2.0
		if contribution > 1.0 {
			contribution = 1.0
		}
		score += contribution
	}

	switch {
	case score >= 1.5:
		sizeLevel := d.sizeLevel(sizeRatio)
		switch {
		case containsMajorSectionKeyword(content):
			return 2
		case sizeLevel == 3:
			return 3
		case styleBonus >= 1.0:
			return 4
		case sizeLevel > 3:
			return sizeLevel
		default:
			return 5
		}
	case score >= 0.8 && sizeRatio > 1.0+d.config.MinSizeDifference:
		return 6
	}

	return 0
}

// sizeLevel returns the smallest level from 3 through 6 whose configured
// multiplier the size ratio meets, or 0 when none is met. Levels 1 and 2
// are assigned by the content rules, never by size alone.
func (d *HeadingDetector) sizeLevel(ratio float64) int {
	for level := 3; level <= 6; level++ {
		multiplier, ok := d.config.LevelMultipliers[level]
		if !ok {
			continue
		}
		if ratio >= multiplier {
			return level
		}
	}
	return 0
}

// isContactInformation reports whether content reads as contact details
// rather than a heading. Two or more indicators (email, URL, phone
// punctuation, profile links) disqualify the line.
func isContactInformation(content string) bool {
	lower := strings.ToLower(strings.TrimSpace(content))

	count := 0
	for _, indicator := range contactIndicators {
		if strings.Contains(lower, indicator) {
			count++
		}
	}
	return count >= 2
}

// contactIndicators are substrings typical of contact lines.
var contactIndicators = []string{
	"@", "www.", "http", "(", "-", "linkedin", "github", "portfolio",
}

// primarySections are the section header names promoted straight to
// level 2, matched against uppercased content.
var primarySections = []string{
	"PROFESSIONAL SUMMARY", "EXECUTIVE SUMMARY", "SUMMARY", "OBJECTIVE",
	"CAREER OBJECTIVE", "PROFESSIONAL OBJECTIVE",
	"EXPERIENCE", "WORK EXPERIENCE", "PROFESSIONAL EXPERIENCE",
	"CAREER EXPERIENCE", "EMPLOYMENT HISTORY", "WORK HISTORY",
	"EDUCATION", "EDUCATIONAL BACKGROUND", "ACADEMIC BACKGROUND",
	"SKILLS", "TECHNICAL SKILLS", "CORE COMPETENCIES", "KEY SKILLS",
	"CERTIFICATIONS", "CERTIFICATES", "PROFESSIONAL CERTIFICATIONS",
	"AWARDS", "HONORS", "ACHIEVEMENTS", "ACCOMPLISHMENTS",
	"PROJECTS", "KEY PROJECTS", "NOTABLE PROJECTS",
	"PUBLICATIONS", "RESEARCH", "PUBLICATIONS AND RESEARCH",
	"REFERENCES", "PROFESSIONAL REFERENCES",
}

// majorSectionKeywords anchor level-2 classification for styled section
// headers that are not exact registry matches.
var majorSectionKeywords = []string{
	"experience", "education", "skills", "summary", "objective",
	"certifications", "awards", "projects", "publications",
}

// nameSuffixes are honorifics that mark a line as a person's name.
var nameSuffixes = []string{"jr", "sr", "iii", "phd", "md", "pe", "cpa"}

// businessRoleWords disqualify a title-case line from the name heuristic.
var businessRoleWords = []string{
	"company", "corporation", "manager", "director", "engineer",
}

// resumeSectionLevel returns 2 when content matches a known section
// header exactly or as a variant no more than twenty characters longer,
// and 0 otherwise.
func resumeSectionLevel(content string) int {
	clean := strings.ToUpper(strings.TrimSpace(content))

	for _, section := range primarySections {
		if clean == section {
			return 2
		}
	}

	for _, section := range primarySections {
		if strings.Contains(clean, section) &&
			utf8.RuneCountInString(clean) <= utf8.RuneCountInString(section)+20 {
			return 2
		}
	}

	return 0
}

// isLikelyNameOrTitle reports whether content reads as a person's name:
// two to four capitalized words, no digits, no terminal punctuation.
// Honorific suffixes confirm a name; business role words reject one.
func isLikelyNameOrTitle(content string) bool {
	content = strings.TrimSpace(content)
	words := strings.Fields(content)

	if len(words) < 2 || len(words) > 4 {
		return false
	}
	if utf8.RuneCountInString(content) > 50 {
		return false
	}
	for _, word := range words {
		first, _ := utf8.DecodeRuneInString(word)
		if !unicode.IsUpper(first) {
			return false
		}
	}
	for _, r := range content {
		if unicode.IsDigit(r) {
			return false
		}
	}
	if endsWithTerminalPunct(content) {
		return false
	}

	lower := strings.ToLower(content)
	for _, suffix := range nameSuffixes {
		if strings.Contains(lower, suffix) {
			return true
		}
	}
	for _, word := range businessRoleWords {
		if strings.Contains(lower, word) {
			return false
		}
	}

	return len(words) <= 3
}

// containsMajorSectionKeyword reports whether content mentions a major
// section keyword.
func containsMajorSectionKeyword(content string) bool {
	lower := strings.ToLower(content)
	for _, keyword := range majorSectionKeywords {
		if strings.Contains(lower, keyword) {
			return true
		}
	}
	return false
}

func medianFloat64(values []float64) float64 {
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}
