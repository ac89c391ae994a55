package structura

import (
	"log/slog"
	"path/filepath"

	"github.com/tsawler/structura/extract"
	"github.com/tsawler/structura/layout"
	"github.com/tsawler/structura/markdown"
	"github.com/tsawler/structura/model"
)

// Converter assembles a conversion: a source (file path, raw fragments, or
// an existing document), stage tuning, and a logger. Each configuration
// method returns a new Converter instance, making chains safe to fork and
// reuse. Terminal operations run the pipeline and return the result
// alongside any warnings accumulated on the way.
type Converter struct {
	// Source (exactly one is set by the package constructors)
	path      string
	data      []byte
	fragments []model.TextFragment
	source    *model.Document

	// Configuration
	config     Config
	logger     *slog.Logger
	title      string
	forcedType model.DocumentType

	// Accumulated error (fail-fast)
	err error
}

// clone creates a copy of the Converter with a deep copy of its config.
// Each chain method returns a new instance.
func (c *Converter) clone() *Converter {
	clone := &Converter{
		path:       c.path,
		data:       c.data,
		source:     c.source,
		config:     c.config.clone(),
		logger:     c.logger,
		title:      c.title,
		forcedType: c.forcedType,
		err:        c.err,
	}
	if c.fragments != nil {
		clone.fragments = append([]model.TextFragment(nil), c.fragments...)
	}
	return clone
}

// ============================================================================
// Configuration Methods (return new Converter instance)
// ============================================================================

// WithConfig replaces the full stage tuning. Start from DefaultConfig and
// adjust the fields you need.
//
// Example:
//
//	cfg := structura.DefaultConfig()
//	cfg.Paragraph.SpacingThreshold = 2.0
//	md, _, err := structura.Open("doc.pdf").WithConfig(cfg).Markdown()
func (c *Converter) WithConfig(config Config) *Converter {
	clone := c.clone()
	clone.config = config.clone()
	return clone
}

// WithLogger sets the logger used for stage-by-stage progress. The default
// logger writes to stderr via slog.Default.
//
// Example:
//
//	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
//	md, _, err := structura.Open("doc.pdf").WithLogger(logger).Markdown()
func (c *Converter) WithLogger(logger *slog.Logger) *Converter {
	clone := c.clone()
	clone.logger = logger
	return clone
}

// Title sets the document title, rendered as a leading level-1 heading.
// Without it the converted body starts at the first detected block and any
// title from the PDF metadata is recorded in the document metadata only.
//
// Example:
//
//	md, _, err := structura.Open("cv.pdf").Title("Jane Doe").Markdown()
func (c *Converter) Title(title string) *Converter {
	clone := c.clone()
	clone.title = title
	return clone
}

// Frontmatter prepends a YAML frontmatter block to rendered Markdown.
//
// Example:
//
//	md, _, err := structura.Open("doc.pdf").Frontmatter().Markdown()
func (c *Converter) Frontmatter() *Converter {
	clone := c.clone()
	clone.config.Markdown.IncludeFrontmatter = true
	return clone
}

// Dialect sets the target Markdown dialect: gfm, commonmark, or basic.
//
// Example:
//
//	md, _, err := structura.Open("doc.pdf").Dialect(markdown.DialectCommonMark).Markdown()
func (c *Converter) Dialect(dialect string) *Converter {
	clone := c.clone()
	clone.config.Markdown.Dialect = dialect
	return clone
}

// DocumentType forces the document-type classification instead of letting
// the analyzer decide. Stage tuning follows the forced type.
//
// Example:
//
//	doc, _, err := structura.Open("cv.pdf").DocumentType(model.DocumentTypeResume).Document()
func (c *Converter) DocumentType(docType model.DocumentType) *Converter {
	clone := c.clone()
	clone.forcedType = docType
	return clone
}

// NoAutoTune keeps the configured paragraph and heading tuning as-is
// instead of applying the analyzer's per-type recommendations.
//
// Example:
//
//	doc, _, err := structura.Open("doc.pdf").NoAutoTune().Document()
func (c *Converter) NoAutoTune() *Converter {
	clone := c.clone()
	clone.config.AutoTune = false
	return clone
}

// KeepHeadersFooters retains repeated page headers, footers, and page
// numbers instead of excluding them from multi-page documents.
//
// Example:
//
//	md, _, err := structura.Open("doc.pdf").KeepHeadersFooters().Markdown()
func (c *Converter) KeepHeadersFooters() *Converter {
	clone := c.clone()
	clone.config.ExcludeHeadersFooters = false
	return clone
}

// ============================================================================
// Terminal Operations
// ============================================================================

// Document runs the pipeline and returns the structured document.
//
// Example:
//
//	doc, warnings, err := structura.Open("report.pdf").Document()
func (c *Converter) Document() (*model.Document, []Warning, error) {
	doc, _, warnings, err := c.convert()
	return doc, warnings, err
}

// Markdown runs the pipeline and renders the document as Markdown.
//
// Example:
//
//	md, warnings, err := structura.Open("report.pdf").Markdown()
func (c *Converter) Markdown() (string, []Warning, error) {
	doc, _, warnings, err := c.convert()
	if err != nil {
		return "", warnings, err
	}
	renderer := markdown.NewRendererWithConfig(c.config.Markdown)
	output, err := renderer.Render(doc)
	if err != nil {
		return "", warnings, stageError("render", c.path, err)
	}
	return output, warnings, nil
}

// Analysis runs the pipeline and returns the document-type analysis.
//
// Example:
//
//	analysis, _, err := structura.Open("report.pdf").Analysis()
//	fmt.Println(analysis.Type, analysis.Confidence)
func (c *Converter) Analysis() (model.DocumentAnalysis, []Warning, error) {
	_, analysis, warnings, err := c.convert()
	return analysis, warnings, err
}

// WriteFile runs the pipeline and writes rendered Markdown to path.
//
// Example:
//
//	warnings, err := structura.Open("report.pdf").Frontmatter().WriteFile("report.md")
func (c *Converter) WriteFile(path string) ([]Warning, error) {
	doc, _, warnings, err := c.convert()
	if err != nil {
		return warnings, err
	}
	renderer := markdown.NewRendererWithConfig(c.config.Markdown)
	if err := renderer.RenderToFile(doc, path); err != nil {
		return warnings, stageError("write", path, err)
	}
	return warnings, nil
}

// convert dispatches to the pipeline for the configured source.
func (c *Converter) convert() (*model.Document, model.DocumentAnalysis, []Warning, error) {
	if c.err != nil {
		return nil, model.DocumentAnalysis{}, nil, c.err
	}

	logger := c.logger
	if logger == nil {
		logger = slog.Default()
	}
	p := &pipeline{
		config:     c.config,
		logger:     logger,
		forcedType: c.forcedType,
		title:      c.title,
	}

	switch {
	case c.source != nil:
		return p.refine(c.source.Clone())

	case c.path != "":
		extractor := extract.NewExtractorWithConfig(c.config.Extract)
		res, err := extractor.ExtractFile(c.path)
		if err != nil {
			return nil, model.DocumentAnalysis{}, nil, stageError("extract", c.path, err)
		}
		return p.run(res, c.path)

	case c.data != nil:
		extractor := extract.NewExtractorWithConfig(c.config.Extract)
		res, err := extractor.ExtractBytes(c.data)
		if err != nil {
			return nil, model.DocumentAnalysis{}, nil, stageError("extract", "", err)
		}
		return p.run(res, "")

	default:
		return p.run(&extract.Result{Fragments: c.fragments}, "")
	}
}

// ============================================================================
// Pipeline
// ============================================================================

// pipeline runs the staged conversion. Stages hand each other immutable
// values: fragments, then positioned lines, then successive documents.
type pipeline struct {
	config     Config
	logger     *slog.Logger
	forcedType model.DocumentType
	title      string
}

// run converts an extraction result into a structured document. The stage
// order is fixed: classification first (its recommendations tune the
// paragraph and heading stages), then paragraphs, lists, code, and
// headings. Degraded inputs downgrade stages to warnings, never errors.
func (p *pipeline) run(res *extract.Result, path string) (*model.Document, model.DocumentAnalysis, []Warning, error) {
	var warnings []Warning
	for _, skip := range res.Skipped {
		warnings = append(warnings, warningf(WarnPageSkipped, "extract", "skipped page %d: %v", skip.Page, skip.Err))
	}
	p.logger.Debug("extracted fragments",
		"count", len(res.Fragments), "pages", res.Pages, "skipped", len(res.Skipped))

	if len(res.Fragments) == 0 {
		warnings = append(warnings, warningf(WarnNoText, "extract", "no text content found"))
		doc := model.NewDocument(p.title)
		p.applyMetadata(doc, res, path, model.DocumentAnalysis{})
		return doc, model.DocumentAnalysis{}, warnings, nil
	}

	// Classification works on a preliminary block view of the raw
	// fragments so its recommendations can tune the stages that follow.
	extractor := extract.NewExtractorWithConfig(p.config.Extract)
	prelim := model.NewDocument("")
	for _, block := range extractor.TextBlocks(res.Fragments) {
		prelim.AddBlock(block)
	}
	analysis, classifyWarnings := p.classify(prelim)
	warnings = append(warnings, classifyWarnings...)

	paragraphConfig, headingConfig := p.tunedConfigs(analysis)

	lines := layout.NewLineDetectorWithConfig(p.config.Line).DetectLines(res.Fragments)
	p.logger.Debug("detected lines", "count", len(lines))

	if p.config.ExcludeHeadersFooters {
		lines = p.excludeHeadersFooters(lines)
	}

	var doc *model.Document
	if len(lines) == 0 {
		warnings = append(warnings, warningf(WarnLineExtractionUnavailable, "layout",
			"positioned lines unavailable; list and code detection skipped"))
		doc = layout.NewParagraphDetectorWithConfig(paragraphConfig).DetectInDocument(prelim)
	} else {
		doc = layout.NewParagraphDetectorWithConfig(paragraphConfig).DetectFromLines(lines)
		doc = p.spliceLists(doc, lines)
		doc = p.spliceCode(doc, lines)
	}
	p.logger.Debug("assembled paragraphs", "blocks", doc.BlockCount())

	doc = layout.NewHeadingDetectorWithConfig(headingConfig).DetectInDocument(doc)

	doc.Title = p.title
	p.applyMetadata(doc, res, path, analysis)

	p.logger.Info("conversion complete",
		"blocks", doc.BlockCount(), "type", analysis.Type.String(), "warnings", len(warnings))
	return doc, analysis, warnings, nil
}

// refine structures an existing document: classification, paragraph
// grouping over its text blocks, and heading detection. List and code
// detection need positioned lines and do not run here.
func (p *pipeline) refine(doc *model.Document) (*model.Document, model.DocumentAnalysis, []Warning, error) {
	analysis, warnings := p.classify(doc)
	paragraphConfig, headingConfig := p.tunedConfigs(analysis)

	refined := layout.NewParagraphDetectorWithConfig(paragraphConfig).DetectInDocument(doc)
	refined = layout.NewHeadingDetectorWithConfig(headingConfig).DetectInDocument(refined)

	if p.title != "" {
		refined.Title = p.title
	}
	refined.Metadata["document_type"] = analysis.Type.String()
	refined.Metadata["confidence"] = analysis.Confidence

	p.logger.Info("refinement complete",
		"blocks", refined.BlockCount(), "type", analysis.Type.String(), "warnings", len(warnings))
	return refined, analysis, warnings, nil
}

// classify runs document-type analysis, honoring a forced type. A result
// below the confidence threshold carries a warning.
func (p *pipeline) classify(doc *model.Document) (model.DocumentAnalysis, []Warning) {
	if p.forcedType != model.DocumentTypeUnknown {
		analysis := model.DocumentAnalysis{
			Type:            p.forcedType,
			Confidence:      1.0,
			Characteristics: map[string]float64{},
			Strategy:        layout.ProcessingStrategy(p.forcedType),
		}
		p.logger.Debug("document type forced", "type", analysis.Type.String())
		return analysis, nil
	}

	analysis := layout.NewDocumentAnalyzer().AnalyzeType(doc)
	p.logger.Info("classified document",
		"type", analysis.Type.String(), "confidence", analysis.Confidence, "strategy", analysis.Strategy)

	var warnings []Warning
	if !analysis.IsConfident(p.config.ConfidenceThreshold) {
		warnings = append(warnings, warningf(WarnLowConfidence, "analyze",
			"document type %s at confidence %.2f", analysis.Type, analysis.Confidence))
	}
	return analysis, warnings
}

// tunedConfigs overlays the analyzer's recommendations for the classified
// type onto the configured paragraph and heading tuning.
func (p *pipeline) tunedConfigs(analysis model.DocumentAnalysis) (layout.ParagraphConfig, layout.HeadingConfig) {
	paragraphConfig := p.config.Paragraph
	headingConfig := p.config.Heading
	if !p.config.AutoTune {
		return paragraphConfig, headingConfig
	}

	recs := layout.NewDocumentAnalyzer().Recommendations(analysis)
	paragraphConfig.SpacingThreshold = recs.Paragraph.LineSpacingThreshold
	paragraphConfig.MergeAggressive = recs.Paragraph.MergeAggressive
	headingConfig.MinSizeDifference = recs.Heading.FontSizeThreshold

	p.logger.Debug("applied stage tuning",
		"spacing_threshold", paragraphConfig.SpacingThreshold,
		"merge_aggressive", paragraphConfig.MergeAggressive,
		"min_size_difference", headingConfig.MinSizeDifference)
	return paragraphConfig, headingConfig
}

// excludeHeadersFooters drops lines belonging to repeated page headers,
// footers, and page numbers. Single-page documents pass through untouched.
func (p *pipeline) excludeHeadersFooters(lines []model.Line) []model.Line {
	result := layout.NewHeaderFooterDetectorWithConfig(p.config.HeaderFooter).Detect(lines)
	if !result.HasDetections() {
		return lines
	}

	filtered := result.Filter(lines)
	p.logger.Debug("excluded repeated headers and footers",
		"headers", len(result.Headers), "footers", len(result.Footers),
		"lines_removed", len(lines)-len(filtered))
	return filtered
}

// spliceLists detects list blocks in the positioned lines and splices them
// into the document in place of the paragraph text they absorb.
func (p *pipeline) spliceLists(doc *model.Document, lines []model.Line) *model.Document {
	detector := layout.NewListDetectorWithConfig(p.config.List)
	items := detector.DetectItemsFromLines(lines)
	if len(items) == 0 {
		return doc
	}

	blocks := detector.GroupItemsIntoBlocks(items)
	incoming := make([]model.Block, len(blocks))
	for i, block := range blocks {
		incoming[i] = block
	}
	p.logger.Debug("detected lists", "blocks", len(blocks), "items", len(items))
	return layout.NewSplicer().Splice(doc, incoming)
}

// spliceCode detects code blocks in the positioned lines, tags their
// language, and splices them into the document.
func (p *pipeline) spliceCode(doc *model.Document, lines []model.Line) *model.Document {
	detector := layout.NewCodeDetectorWithConfig(p.config.Code)
	blocks := detector.DetectBlocks(lines)
	if len(blocks) == 0 {
		return doc
	}

	language := layout.NewLanguageDetector()
	incoming := make([]model.Block, len(blocks))
	for i, block := range blocks {
		incoming[i] = language.AnalyzeCodeBlock(block)
	}
	p.logger.Debug("detected code blocks", "count", len(blocks))
	return layout.NewSplicer().Splice(doc, incoming)
}

// applyMetadata records conversion facts on the document: the source file
// name, any title from the PDF metadata, and the classification outcome.
func (p *pipeline) applyMetadata(doc *model.Document, res *extract.Result, path string, analysis model.DocumentAnalysis) {
	if path != "" {
		doc.Metadata["source"] = filepath.Base(path)
	}
	if res.Title != "" {
		doc.Metadata["title"] = res.Title
	}
	if res.Pages > 0 {
		doc.Metadata["pages"] = res.Pages
	}
	doc.Metadata["document_type"] = analysis.Type.String()
	doc.Metadata["confidence"] = analysis.Confidence
}
