package model

// DocumentType classifies the overall kind of a document. The classifier
// assigns one of these from content heuristics; DocumentTypeReport exists
// for callers that label documents themselves.
type DocumentType int

const (
	DocumentTypeUnknown DocumentType = iota
	DocumentTypeResume
	DocumentTypeAcademicPaper
	DocumentTypeBusinessDocument
	DocumentTypeManual
	DocumentTypeReport
)

// String returns the canonical string value for the document type
func (t DocumentType) String() string {
	switch t {
	case DocumentTypeResume:
		return "resume"
	case DocumentTypeAcademicPaper:
		return "academic_paper"
	case DocumentTypeBusinessDocument:
		return "business_document"
	case DocumentTypeManual:
		return "manual"
	case DocumentTypeReport:
		return "report"
	default:
		return "unknown"
	}
}

// ParseDocumentType maps a string value to a document type. Both canonical
// values ("academic_paper") and short forms ("academic") are accepted. The
// second return value reports whether the input was recognized.
func ParseDocumentType(s string) (DocumentType, bool) {
	switch s {
	case "resume", "cv":
		return DocumentTypeResume, true
	case "academic_paper", "academic":
		return DocumentTypeAcademicPaper, true
	case "business_document", "business":
		return DocumentTypeBusinessDocument, true
	case "manual":
		return DocumentTypeManual, true
	case "report":
		return DocumentTypeReport, true
	case "unknown", "auto", "":
		return DocumentTypeUnknown, true
	default:
		return DocumentTypeUnknown, false
	}
}

// DocumentAnalysis is the outcome of document-type classification:
// the winning type, the classifier's confidence, the raw characteristic
// scores that produced the decision, and the processing strategy suggested
// for downstream tuning. Analyses are immutable.
type DocumentAnalysis struct {
	// Type is the classified document type
	Type DocumentType

	// Confidence is the winning composite score. Values below the decision
	// threshold are reported unclamped alongside DocumentTypeUnknown.
	Confidence float64

	// Characteristics holds the named characteristic scores the classifier
	// computed, for diagnostics
	Characteristics map[string]float64

	// Strategy names the suggested processing strategy
	Strategy string
}

// IsConfident reports whether the classification confidence meets the
// given threshold.
func (a DocumentAnalysis) IsConfident(threshold float64) bool {
	return a.Confidence >= threshold
}
