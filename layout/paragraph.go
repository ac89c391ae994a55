package layout

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/tsawler/structura/model"
)

// syntheticBaselineX is the x origin used when synthesizing line coordinates
// from raw text content. Leading whitespace maps to 2 points per character
// relative to this origin, so flow indentation can be recovered from it.
const syntheticBaselineX = 50.0

// ParagraphConfig holds configuration for paragraph detection
type ParagraphConfig struct {
	// SpacingThreshold is the multiplier on the mean vertical gap above
	// which a gap becomes a paragraph break (default: 1.8)
	SpacingThreshold float64

	// MinParagraphLines is the minimum number of lines for a paragraph
	// (default: 1)
	MinParagraphLines int

	// IndentationThreshold is the minimum x-position difference treated as
	// indentation (default: 10 points)
	IndentationThreshold float64

	// AlignmentTolerance is the x-position tolerance for alignment
	// detection (default: 5 points)
	AlignmentTolerance float64

	// ContentAwareMerging enables merging of adjacent paragraphs based on
	// content heuristics (default: true)
	ContentAwareMerging bool

	// MergeAggressive additionally merges whenever the first paragraph
	// ends mid-sentence, for documents with long flowing prose
	// (default: false)
	MergeAggressive bool
}

// DefaultParagraphConfig returns sensible default configuration
func DefaultParagraphConfig() ParagraphConfig {
	return ParagraphConfig{
		SpacingThreshold:     1.8,
		MinParagraphLines:    1,
		IndentationThreshold: 10.0,
		AlignmentTolerance:   5.0,
		ContentAwareMerging:  true,
		MergeAggressive:      false,
	}
}

// ParagraphDetector groups text into paragraphs using vertical spacing and
// text flow analysis, with conservative content-aware merging
type ParagraphDetector struct {
	config ParagraphConfig
}

// NewParagraphDetector creates a new paragraph detector with default configuration
func NewParagraphDetector() *ParagraphDetector {
	return &ParagraphDetector{
		config: DefaultParagraphConfig(),
	}
}

// NewParagraphDetectorWithConfig creates a paragraph detector with custom configuration
func NewParagraphDetectorWithConfig(config ParagraphConfig) *ParagraphDetector {
	return &ParagraphDetector{
		config: config,
	}
}

// DetectInDocument converts runs of consecutive text blocks into paragraphs.
// Non-text blocks pass through untouched and act as ordering barriers.
// Adjacent paragraphs within a run are merged under conservative
// content-aware rules; section headers are never merged.
func (d *ParagraphDetector) DetectInDocument(doc *model.Document) *model.Document {
	if doc == nil || len(doc.Blocks) == 0 {
		return doc
	}

	var newBlocks []model.Block
	var group []*model.TextBlock

	flush := func() {
		if len(group) == 0 {
			return
		}
		for _, p := range d.processTextBlockGroup(group) {
			newBlocks = append(newBlocks, p)
		}
		group = nil
	}

	for _, block := range doc.Blocks {
		if tb, ok := block.(*model.TextBlock); ok {
			group = append(group, tb)
			continue
		}
		flush()
		newBlocks = append(newBlocks, block)
	}
	flush()

	return &model.Document{
		Title:    doc.Title,
		Blocks:   newBlocks,
		Metadata: doc.Metadata,
	}
}

// DetectFromLines groups positioned lines into paragraphs using per-page
// vertical-spacing statistics. A gap larger than the page's mean gap times
// SpacingThreshold starts a new paragraph; a page change always does.
// Paragraphs record the span of input lines they cover.
func (d *ParagraphDetector) DetectFromLines(lines []model.Line) *model.Document {
	doc := model.NewDocument("")
	if len(lines) == 0 {
		return doc
	}

	// Step 1: Partition into page sections, preserving input order
	type section struct {
		start, end int // half-open index range into lines
	}
	var sections []section
	start := 0
	for i := 1; i < len(lines); i++ {
		if lines[i].Page != lines[start].Page {
			sections = append(sections, section{start, i})
			start = i
		}
	}
	sections = append(sections, section{start, len(lines)})

	// Step 2: Split each section at spacing breaks
	for _, sec := range sections {
		pageLines := lines[sec.start:sec.end]
		baseX := minLineX(pageLines)
		breaks := d.spacingBreaks(pageLines)

		runStart := 0
		emit := func(runEnd int) {
			if runStart >= runEnd {
				return
			}
			para := d.buildParagraph(pageLines[runStart:runEnd], baseX)
			para.Span = model.Span{Start: sec.start + runStart, End: sec.start + runEnd}
			if !para.IsEmpty() {
				doc.AddBlock(para)
			}
			runStart = runEnd
		}
		for _, b := range breaks {
			emit(b)
		}
		emit(len(pageLines))
	}

	return doc
}

// spacingBreaks returns the indices of lines that start a new paragraph
// within a page, based on the mean vertical gap.
func (d *ParagraphDetector) spacingBreaks(lines []model.Line) []int {
	if len(lines) < 2 {
		return nil
	}

	gaps := make([]float64, 0, len(lines)-1)
	for i := 0; i < len(lines)-1; i++ {
		gaps = append(gaps, lines[i].VerticalSpacingTo(lines[i+1]))
	}

	threshold := meanFloat64(gaps) * d.config.SpacingThreshold
	var breaks []int
	for i, gap := range gaps {
		if gap > threshold {
			breaks = append(breaks, i+1)
		}
	}
	return breaks
}

// buildParagraph constructs a paragraph with flow metadata from a run of
// lines. The paragraph font size is the average over lines that carry one.
func (d *ParagraphDetector) buildParagraph(lines []model.Line, baseX float64) *model.Paragraph {
	owned := make([]model.Line, len(lines))
	copy(owned, lines)

	total := 0.0
	count := 0
	for _, line := range owned {
		if line.FontSize > 0 {
			total += line.FontSize
			count++
		}
	}
	fontSize := 0.0
	if count > 0 {
		fontSize = total / float64(count)
	}

	return &model.Paragraph{
		Lines:    owned,
		Flow:     d.createTextFlow(owned, baseX),
		FontSize: fontSize,
	}
}

// processTextBlockGroup converts a run of text blocks to paragraphs and
// applies content-aware merging.
func (d *ParagraphDetector) processTextBlockGroup(blocks []*model.TextBlock) []*model.Paragraph {
	var paragraphs []*model.Paragraph
	for _, block := range blocks {
		p := d.convertTextBlock(block)
		if !p.IsEmpty() {
			paragraphs = append(paragraphs, p)
		}
	}
	if len(paragraphs) == 0 {
		return nil
	}

	merged := d.mergeParagraphs(paragraphs)

	result := merged[:0]
	for _, p := range merged {
		if !p.IsEmpty() {
			result = append(result, p)
		}
	}
	return result
}

// convertTextBlock converts a text block into a paragraph, synthesizing
// line coordinates from the raw content. Leading whitespace becomes the
// indentation signal; blank lines are skipped.
func (d *ParagraphDetector) convertTextBlock(block *model.TextBlock) *model.Paragraph {
	if strings.TrimSpace(block.Content) == "" {
		return &model.Paragraph{FontSize: block.FontSize}
	}

	var lines []model.Line
	for i, lineText := range strings.Split(block.Content, "\n") {
		if strings.TrimSpace(lineText) == "" {
			continue
		}
		leading := len(lineText) - len(strings.TrimLeftFunc(lineText, unicode.IsSpace))
		lines = append(lines, model.Line{
			Text:     lineText,
			X:        syntheticBaselineX + float64(leading)*2.0,
			Y:        100.0 - float64(i)*15.0,
			Height:   12.0,
			FontSize: block.FontSize,
		})
	}

	return &model.Paragraph{
		Lines:          lines,
		Flow:           d.createTextFlow(lines, syntheticBaselineX),
		FontSize:       block.FontSize,
		IsContinuation: d.isContinuationText(block.Content),
	}
}

// mergeParagraphs folds adjacent paragraphs together wherever the
// conservative merge rules allow. With merging disabled the input is
// returned unchanged.
func (d *ParagraphDetector) mergeParagraphs(paragraphs []*model.Paragraph) []*model.Paragraph {
	if len(paragraphs) == 0 {
		return nil
	}
	if !d.config.ContentAwareMerging {
		return paragraphs
	}

	var merged []*model.Paragraph
	current := paragraphs[0]

	for _, next := range paragraphs[1:] {
		if d.shouldMerge(current, next) {
			current.Lines = append(current.Lines, next.Lines...)
		} else {
			merged = append(merged, current)
			current = next
		}
	}
	merged = append(merged, current)

	return merged
}

// shouldMerge decides whether two adjacent paragraphs belong together.
// The rules are deliberately conservative: headers are hard boundaries,
// font size deltas signal hierarchy, and only clear continuations merge.
func (d *ParagraphDetector) shouldMerge(p1, p2 *model.Paragraph) bool {
	content1 := strings.TrimSpace(p1.Content())
	content2 := strings.TrimSpace(p2.Content())

	if content1 == "" || content2 == "" {
		return false
	}

	// Section headers are never merged in either direction
	if isResumeSectionHeader(content1) || isResumeSectionHeader(content2) {
		return false
	}
	if isSectionHeader(content1) || isSectionHeader(content2) {
		return false
	}

	// A font size delta signals a hierarchy change
	if p1.FontSize > 0 && p2.FontSize > 0 && absFloat64(p1.FontSize-p2.FontSize) > 0.5 {
		return false
	}

	// List items only merge with list items of the same marker class
	list1 := isListItemText(content1)
	list2 := isListItemText(content2)
	if list1 != list2 {
		return false
	}
	if list1 && list2 {
		return sameListMarkerClass(content1, content2)
	}

	if isExplicitContinuation(content2) {
		return true
	}
	if suggestsSentenceContinuation(content1, content2) {
		return true
	}
	if d.config.MergeAggressive && !endsWithTerminalPunct(content1) {
		return true
	}

	return false
}

// createTextFlow derives flow metadata from a run of lines. Indentation is
// measured relative to baseX.
func (d *ParagraphDetector) createTextFlow(lines []model.Line, baseX float64) *model.TextFlow {
	if len(lines) == 0 {
		return model.NewTextFlow()
	}

	avgHeight := 0.0
	for _, line := range lines {
		avgHeight += line.Height
	}
	avgHeight /= float64(len(lines))

	lineSpacing := 1.0
	if len(lines) > 1 {
		total := 0.0
		for i := 0; i < len(lines)-1; i++ {
			total += lines[i].VerticalSpacingTo(lines[i+1]) / avgHeight
		}
		lineSpacing = total / float64(len(lines)-1)
	}

	minX := lines[0].X
	for _, line := range lines[1:] {
		if line.X < minX {
			minX = line.X
		}
	}
	indentation := minX - baseX
	if indentation < 0 {
		indentation = 0
	}

	return &model.TextFlow{
		Alignment:         d.detectTextAlignment(lines),
		LineSpacing:       lineSpacing,
		Indentation:       indentation,
		AverageLineHeight: avgHeight,
	}
}

// detectTextAlignment classifies a run of lines as left or center aligned.
// Lines whose x positions sit within the tolerance of the first line are
// left aligned; positions spread symmetrically around their mean are
// center aligned; anything else defaults to left.
func (d *ParagraphDetector) detectTextAlignment(lines []model.Line) model.Alignment {
	if len(lines) == 0 {
		return model.AlignmentLeft
	}

	leftAligned := true
	for _, line := range lines {
		if absFloat64(line.X-lines[0].X) > d.config.AlignmentTolerance {
			leftAligned = false
			break
		}
	}
	if leftAligned {
		return model.AlignmentLeft
	}

	mean := 0.0
	for _, line := range lines {
		mean += line.X
	}
	mean /= float64(len(lines))

	variance := 0.0
	for _, line := range lines {
		variance += absFloat64(line.X - mean)
	}
	variance /= float64(len(lines))

	if variance <= d.config.AlignmentTolerance*2 {
		return model.AlignmentCenter
	}

	return model.AlignmentLeft
}

// isContinuationText reports whether raw content looks like the
// continuation of a previous paragraph.
func (d *ParagraphDetector) isContinuationText(text string) bool {
	text = strings.TrimSpace(text)
	if text == "" {
		return false
	}

	runes := []rune(text)
	if unicode.IsLower(runes[0]) &&
		!strings.HasPrefix(text, `"`) &&
		!strings.HasPrefix(text, "'") {
		return true
	}

	fields := strings.Fields(text)
	if len(fields) == 0 {
		return false
	}
	return continuationWords[strings.ToLower(fields[0])]
}

// continuationWords are conjunctions and adverbs that mark a paragraph as
// continuing the previous one.
var continuationWords = map[string]bool{
	"and": true, "but": true, "or": true, "so": true, "for": true,
	"yet": true, "nor": true, "however": true, "therefore": true,
	"moreover": true, "furthermore": true, "nevertheless": true,
	"consequently": true, "thus": true, "hence": true,
}

// continuationStarters extends continuationWords with additional adverbs
// accepted by the merge rules.
var continuationStarters = map[string]bool{
	"and": true, "but": true, "or": true, "so": true, "for": true,
	"yet": true, "nor": true, "however": true, "therefore": true,
	"moreover": true, "furthermore": true, "nevertheless": true,
	"consequently": true, "thus": true, "hence": true,
	"additionally": true, "meanwhile": true, "similarly": true,
}

// isExplicitContinuation reports whether content clearly continues a
// sentence: it starts lowercase (excluding quotes and the words "i"/"a",
// which often open proper sentences) or with a continuation starter.
func isExplicitContinuation(content string) bool {
	content = strings.TrimSpace(content)
	if content == "" {
		return false
	}

	runes := []rune(content)
	first := runes[0]
	if unicode.IsLower(first) &&
		!strings.HasPrefix(content, `"`) &&
		!strings.HasPrefix(content, "'") &&
		first != 'i' && first != 'a' {
		return true
	}

	fields := strings.Fields(strings.ToLower(content))
	if len(fields) == 0 {
		return false
	}
	return continuationStarters[fields[0]]
}

// sectionKeywords are substrings that mark a line as a section header.
var sectionKeywords = []string{
	"education", "experience", "skills", "summary", "objective",
	"background", "qualifications", "achievements", "projects",
	"certifications", "awards", "career", "professional",
	"employment", "work history", "technical skills",
}

// isSectionHeader reports whether content looks like a section header:
// short ALL-CAPS text, a known section keyword, or a short Title-Case line
// without terminal punctuation.
func isSectionHeader(content string) bool {
	content = strings.TrimSpace(content)

	if isUpperString(content) {
		n := len([]rune(content))
		if n >= 3 && n <= 50 {
			return true
		}
	}

	contentLower := strings.ToLower(content)
	for _, keyword := range sectionKeywords {
		if strings.Contains(contentLower, keyword) {
			return true
		}
	}

	if isTitleCaseString(content) && len(strings.Fields(content)) <= 4 &&
		!endsWithTerminalPunct(content) {
		return true
	}

	return false
}

// resumeSections are full section header names recognized on resumes.
var resumeSections = []string{
	"PROFESSIONAL SUMMARY", "EXECUTIVE SUMMARY", "SUMMARY", "OBJECTIVE",
	"EXPERIENCE", "WORK EXPERIENCE", "CAREER EXPERIENCE", "EMPLOYMENT",
	"EDUCATION", "EDUCATIONAL BACKGROUND", "ACADEMIC BACKGROUND",
	"SKILLS", "TECHNICAL SKILLS", "CORE COMPETENCIES", "KEY SKILLS",
	"CERTIFICATIONS", "CERTIFICATES", "AWARDS", "HONORS",
	"PROJECTS", "PUBLICATIONS", "RESEARCH", "REFERENCES",
}

// resumeSingleWords are single-word section headers recognized on resumes.
var resumeSingleWords = map[string]bool{
	"SUMMARY": true, "OBJECTIVE": true, "EXPERIENCE": true,
	"EDUCATION": true, "SKILLS": true, "CERTIFICATIONS": true,
	"AWARDS": true, "PROJECTS": true, "REFERENCES": true,
}

// isResumeSectionHeader reports whether content is a recognized resume
// section header, exactly or as a short-prefixed variant.
func isResumeSectionHeader(content string) bool {
	clean := strings.ToUpper(strings.TrimSpace(content))

	for _, section := range resumeSections {
		if clean == section {
			return true
		}
	}
	if resumeSingleWords[clean] {
		return true
	}

	for _, section := range resumeSections {
		if strings.HasPrefix(clean, section) &&
			len([]rune(clean)) <= len([]rune(section))+10 {
			return true
		}
	}

	return false
}

// bulletPrefixes are characters that open an unordered list item.
var bulletPrefixes = []string{"•", "◦", "▪", "▫", "■", "□", "○", "●", "-", "*"}

// numberedItemPatterns identify ordered list items by their marker shape.
// The pattern source doubles as the marker class identity.
var numberedItemPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^\d+\.`),
	regexp.MustCompile(`^\d+\)`),
	regexp.MustCompile(`^\([\da-z]\)`),
	regexp.MustCompile(`^[a-z]\.`),
	regexp.MustCompile(`^[A-Z]\.`),
}

// isListItemText reports whether content starts with a list marker.
func isListItemText(content string) bool {
	return listMarkerClass(content) != ""
}

// listMarkerClass returns an identity for the marker class opening the
// content: the bullet character itself, or the pattern shape for ordered
// markers. Empty means no marker.
func listMarkerClass(content string) string {
	content = strings.TrimSpace(content)

	for _, bullet := range bulletPrefixes {
		if strings.HasPrefix(content, bullet) {
			return bullet
		}
	}
	for _, pattern := range numberedItemPatterns {
		if pattern.MatchString(content) {
			return pattern.String()
		}
	}
	return ""
}

// sameListMarkerClass reports whether two list items share a marker class.
func sameListMarkerClass(content1, content2 string) bool {
	class1 := listMarkerClass(content1)
	class2 := listMarkerClass(content2)
	return class1 != "" && class2 != "" && class1 == class2
}

// suggestsSentenceContinuation reports whether the boundary between two
// paragraphs looks like a sentence split across blocks.
func suggestsSentenceContinuation(content1, content2 string) bool {
	content1 = strings.TrimSpace(content1)
	content2 = strings.TrimSpace(content2)

	if !endsWithTerminalPunct(content1) {
		if content2 != "" && unicode.IsLower([]rune(content2)[0]) {
			return true
		}
		if isExplicitContinuation(content2) {
			return true
		}
	}

	if strings.HasSuffix(content1, ",") && content2 != "" &&
		!unicode.IsUpper([]rune(content2)[0]) && !isSectionHeader(content2) {
		return true
	}

	return false
}

// endsWithTerminalPunct reports whether content ends a sentence or clause.
func endsWithTerminalPunct(content string) bool {
	for _, suffix := range []string{".", "!", "?", ":", ";"} {
		if strings.HasSuffix(content, suffix) {
			return true
		}
	}
	return false
}

// isUpperString mirrors the uppercase test used for header detection: the
// string must contain at least one cased character and no lowercase ones.
func isUpperString(s string) bool {
	hasCased := false
	for _, r := range s {
		if unicode.IsLower(r) {
			return false
		}
		if unicode.IsUpper(r) || unicode.IsTitle(r) {
			hasCased = true
		}
	}
	return hasCased
}

// isTitleCaseString reports whether every cased run starts uppercase and
// continues lowercase, with at least one cased character.
func isTitleCaseString(s string) bool {
	hasCased := false
	prevCased := false
	for _, r := range s {
		switch {
		case unicode.IsUpper(r) || unicode.IsTitle(r):
			if prevCased {
				return false
			}
			prevCased = true
			hasCased = true
		case unicode.IsLower(r):
			if !prevCased {
				return false
			}
			hasCased = true
		default:
			prevCased = false
		}
	}
	return hasCased
}

// minLineX returns the smallest x position across lines.
func minLineX(lines []model.Line) float64 {
	if len(lines) == 0 {
		return 0
	}
	min := lines[0].X
	for _, line := range lines[1:] {
		if line.X < min {
			min = line.X
		}
	}
	return min
}

// meanFloat64 returns the arithmetic mean of values, 0 for an empty slice.
func meanFloat64(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	total := 0.0
	for _, v := range values {
		total += v
	}
	return total / float64(len(values))
}
