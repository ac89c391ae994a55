package layout

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/tsawler/structura/model"
)

// resumeVocabulary, academicVocabulary, businessVocabulary, and
// manualVocabulary are the keyword sets whose coverage ratios feed
// document-type classification.
var (
	resumeVocabulary = []string{
		"experience", "education", "skills", "summary", "objective",
		"qualifications", "achievements", "certifications", "awards",
		"projects", "career", "professional", "employment", "work",
		"background", "expertise", "accomplishments", "technical",
	}

	academicVocabulary = []string{
		"abstract", "introduction", "methodology", "results", "conclusion",
		"references", "bibliography", "literature", "research", "study",
		"analysis", "findings", "discussion", "hypothesis", "experimental",
	}

	businessVocabulary = []string{
		"executive", "summary", "overview", "proposal", "budget",
		"revenue", "profit", "quarterly", "annual", "strategic",
		"objectives", "goals", "metrics", "performance", "roi",
	}

	manualVocabulary = []string{
		"installation", "configuration", "setup", "troubleshooting",
		"chapter", "section", "procedure", "steps", "instructions",
		"requirements", "specifications", "guidelines", "manual",
	}
)

var wordPattern = regexp.MustCompile(`\b\w+\b`)

// HeadingRecommendation tunes heading detection for a document type.
type HeadingRecommendation struct {
	// FontSizeThreshold is the minimum relative size difference worth
	// treating as a heading signal
	FontSizeThreshold float64

	// PatternWeight scales the influence of known section patterns
	PatternWeight float64

	// CapsWeight scales the influence of ALL-CAPS styling
	CapsWeight float64

	// SemanticDetection enables content-based section recognition
	SemanticDetection bool
}

// ParagraphRecommendation tunes paragraph detection for a document type.
type ParagraphRecommendation struct {
	// MergeAggressive favors joining adjacent paragraphs
	MergeAggressive bool

	// LineSpacingThreshold is the suggested paragraph-break multiplier
	LineSpacingThreshold float64

	// PreserveLists keeps list items out of paragraph merging
	PreserveLists bool
}

// FormattingRecommendation tunes rendering for a document type.
type FormattingRecommendation struct {
	// PreserveIndentation keeps indented flow in the output
	PreserveIndentation bool

	// DetectLists enables list structuring
	DetectLists bool

	// SectionSpacing is "single" or "double" spacing between sections
	SectionSpacing string
}

// Recommendations bundles the suggested stage tuning for a document type.
type Recommendations struct {
	Heading    HeadingRecommendation
	Paragraph  ParagraphRecommendation
	Formatting FormattingRecommendation
}

// DocumentAnalyzer classifies documents by type from keyword coverage,
// block structure, formatting style, and length. The resulting analysis
// carries a confidence and suggests a processing strategy; callers use it
// to tune later pipeline stages.
type DocumentAnalyzer struct{}

// NewDocumentAnalyzer creates a new document analyzer
func NewDocumentAnalyzer() *DocumentAnalyzer {
	return &DocumentAnalyzer{}
}

// AnalyzeType classifies the document. The winning composite score must
// reach 0.3; below that the type is unknown and the best score is still
// reported as the confidence. An empty document is unknown with zero
// confidence.
func (a *DocumentAnalyzer) AnalyzeType(doc *model.Document) model.DocumentAnalysis {
	if len(doc.Blocks) == 0 {
		return model.DocumentAnalysis{
			Type:            model.DocumentTypeUnknown,
			Confidence:      0.0,
			Characteristics: map[string]float64{},
			Strategy:        "default",
		}
	}

	characteristics := make(map[string]float64)

	a.analyzeKeywords(doc, characteristics)
	a.analyzeStructure(doc, characteristics)
	a.analyzeFormatting(doc, characteristics)
	a.analyzeMetrics(doc, characteristics)

	docType, confidence := a.classify(characteristics)

	return model.DocumentAnalysis{
		Type:            docType,
		Confidence:      confidence,
		Characteristics: characteristics,
		Strategy:        ProcessingStrategy(docType),
	}
}

// Recommendations returns the stage tuning suggested for the analyzed
// document type. Types without a dedicated profile get balanced defaults.
func (a *DocumentAnalyzer) Recommendations(analysis model.DocumentAnalysis) Recommendations {
	switch analysis.Type {
	case model.DocumentTypeResume:
		return Recommendations{
			Heading: HeadingRecommendation{
				FontSizeThreshold: 0.05,
				PatternWeight:     2.0,
				CapsWeight:        1.5,
				SemanticDetection: true,
			},
			Paragraph: ParagraphRecommendation{
				MergeAggressive:      false,
				LineSpacingThreshold: 1.3,
				PreserveLists:        true,
			},
			Formatting: FormattingRecommendation{
				PreserveIndentation: true,
				DetectLists:         true,
				SectionSpacing:      "double",
			},
		}
	case model.DocumentTypeAcademicPaper:
		return Recommendations{
			Heading: HeadingRecommendation{
				FontSizeThreshold: 0.2,
				PatternWeight:     1.0,
				CapsWeight:        0.5,
				SemanticDetection: true,
			},
			Paragraph: ParagraphRecommendation{
				MergeAggressive:      true,
				LineSpacingThreshold: 1.8,
				PreserveLists:        false,
			},
			Formatting: FormattingRecommendation{
				PreserveIndentation: false,
				DetectLists:         false,
				SectionSpacing:      "single",
			},
		}
	default:
		return Recommendations{
			Heading: HeadingRecommendation{
				FontSizeThreshold: 0.1,
				PatternWeight:     1.0,
				CapsWeight:        1.0,
				SemanticDetection: true,
			},
			Paragraph: ParagraphRecommendation{
				MergeAggressive:      false,
				LineSpacingThreshold: 1.5,
				PreserveLists:        true,
			},
			Formatting: FormattingRecommendation{
				PreserveIndentation: true,
				DetectLists:         true,
				SectionSpacing:      "single",
			},
		}
	}
}

// blockContent returns the text content of blocks that carry prose.
func blockContent(block model.Block) (string, bool) {
	switch b := block.(type) {
	case *model.TextBlock:
		return b.Content, true
	case *model.Paragraph:
		return b.Content(), true
	case *model.Heading:
		return b.Content, true
	case *model.CodeBlock:
		return b.Content(), true
	default:
		return "", false
	}
}

// analyzeKeywords scores each vocabulary by the share of its words
// present in the document.
func (a *DocumentAnalyzer) analyzeKeywords(doc *model.Document, characteristics map[string]float64) {
	var parts []string
	for _, block := range doc.Blocks {
		if content, ok := blockContent(block); ok && content != "" {
			parts = append(parts, strings.TrimSpace(content))
		}
	}
	text := strings.ToLower(strings.Join(parts, " "))

	words := make(map[string]bool)
	for _, word := range wordPattern.FindAllString(text, -1) {
		words[word] = true
	}

	coverage := func(vocabulary []string) float64 {
		matches := 0
		for _, keyword := range vocabulary {
			if words[keyword] {
				matches++
			}
		}
		return float64(matches) / float64(len(vocabulary))
	}

	characteristics["resume_keyword_score"] = coverage(resumeVocabulary)
	characteristics["academic_keyword_score"] = coverage(academicVocabulary)
	characteristics["business_keyword_score"] = coverage(businessVocabulary)
	characteristics["manual_keyword_score"] = coverage(manualVocabulary)
}

// analyzeStructure buckets blocks by content length and derives the
// structure scores: resumes lean short, academic papers lean long.
func (a *DocumentAnalyzer) analyzeStructure(doc *model.Document, characteristics map[string]float64) {
	total := len(doc.Blocks)
	if total == 0 {
		characteristics["structure_score"] = 0.0
		return
	}

	short, medium, long := 0, 0, 0
	for _, block := range doc.Blocks {
		content, ok := blockContent(block)
		if !ok {
			continue
		}
		length := utf8.RuneCountInString(strings.TrimSpace(content))
		switch {
		case length < 50:
			short++
		case length < 200:
			medium++
		default:
			long++
		}
	}

	shortRatio := float64(short) / float64(total)
	mediumRatio := float64(medium) / float64(total)
	longRatio := float64(long) / float64(total)

	characteristics["short_block_ratio"] = shortRatio
	characteristics["medium_block_ratio"] = mediumRatio
	characteristics["long_block_ratio"] = longRatio
	characteristics["resume_structure_score"] = shortRatio*0.6 + mediumRatio*0.4
	characteristics["academic_structure_score"] = longRatio*0.7 + mediumRatio*0.3
}

// analyzeFormatting measures styling signals: the share of ALL-CAPS
// blocks and of bold blocks.
func (a *DocumentAnalyzer) analyzeFormatting(doc *model.Document, characteristics map[string]float64) {
	total := len(doc.Blocks)
	if total == 0 {
		characteristics["formatting_score"] = 0.0
		return
	}

	caps, bold := 0, 0
	for _, block := range doc.Blocks {
		if content, ok := blockContent(block); ok && content != "" {
			trimmed := strings.TrimSpace(content)
			if isUpperString(trimmed) && utf8.RuneCountInString(trimmed) > 2 {
				caps++
			}
		}
		if heading, ok := block.(*model.Heading); ok && heading.Bold {
			bold++
		}
	}

	capsRatio := float64(caps) / float64(total)
	boldRatio := float64(bold) / float64(total)

	characteristics["caps_ratio"] = capsRatio
	characteristics["bold_ratio"] = boldRatio
	characteristics["resume_format_score"] = capsRatio*0.7 + boldRatio*0.3
}

// analyzeMetrics records document length characteristics as word and
// character totals plus coarse size buckets.
func (a *DocumentAnalyzer) analyzeMetrics(doc *model.Document, characteristics map[string]float64) {
	var parts []string
	totalChars := 0
	for _, block := range doc.Blocks {
		if content, ok := blockContent(block); ok && content != "" {
			parts = append(parts, content)
			totalChars += utf8.RuneCountInString(content)
		}
	}
	totalWords := len(wordPattern.FindAllString(strings.Join(parts, " "), -1))

	characteristics["total_words"] = float64(totalWords)
	characteristics["total_chars"] = float64(totalChars)
	characteristics["is_short_document"] = boolScore(totalWords < 1000)
	characteristics["is_medium_document"] = boolScore(totalWords >= 1000 && totalWords < 5000)
	characteristics["is_long_document"] = boolScore(totalWords >= 5000)
}

// classify combines the characteristics into one composite score per
// document type and picks the best. Ties keep the earlier type in
// evaluation order.
func (a *DocumentAnalyzer) classify(characteristics map[string]float64) (model.DocumentType, float64) {
	resumeScore := characteristics["resume_keyword_score"]*0.3 +
		characteristics["resume_structure_score"]*0.25 +
		characteristics["resume_format_score"]*0.25 +
		characteristics["is_short_document"]*0.2

	academicScore := characteristics["academic_keyword_score"]*0.4 +
		characteristics["academic_structure_score"]*0.3 +
		characteristics["is_long_document"]*0.3

	businessScore := characteristics["business_keyword_score"]*0.5 +
		characteristics["is_medium_document"]*0.3 +
		characteristics["caps_ratio"]*0.2

	manualScore := characteristics["manual_keyword_score"]*0.6 +
		characteristics["is_long_document"]*0.4

	best := model.DocumentTypeResume
	bestScore := resumeScore
	if academicScore > bestScore {
		best = model.DocumentTypeAcademicPaper
		bestScore = academicScore
	}
	if businessScore > bestScore {
		best = model.DocumentTypeBusinessDocument
		bestScore = businessScore
	}
	if manualScore > bestScore {
		best = model.DocumentTypeManual
		bestScore = manualScore
	}

	if bestScore < 0.3 {
		return model.DocumentTypeUnknown, bestScore
	}
	return best, bestScore
}

// ProcessingStrategy names the strategy for a document type. Callers that
// label documents themselves can use it to fill a DocumentAnalysis.
func ProcessingStrategy(docType model.DocumentType) string {
	switch docType {
	case model.DocumentTypeResume:
		return "resume_optimized"
	case model.DocumentTypeAcademicPaper:
		return "academic_optimized"
	case model.DocumentTypeBusinessDocument:
		return "business_optimized"
	case model.DocumentTypeManual:
		return "manual_optimized"
	default:
		return "adaptive_balanced"
	}
}

func boolScore(b bool) float64 {
	if b {
		return 1.0
	}
	return 0.0
}
