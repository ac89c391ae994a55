package structura

import (
	"fmt"
	"strings"
)

// WarningCode identifies a class of degraded-but-recoverable outcome.
type WarningCode string

const (
	// WarnPageSkipped marks a page whose content stream could not be
	// decoded. The rest of the document is still converted.
	WarnPageSkipped WarningCode = "page_skipped"

	// WarnNoText marks a document that yielded no text fragments, such as
	// a scanned image without a text layer.
	WarnNoText WarningCode = "no_text"

	// WarnLineExtractionUnavailable marks a document whose positioned
	// lines could not be recovered. Paragraph detection falls back to
	// plain text blocks and the list and code stages are skipped.
	WarnLineExtractionUnavailable WarningCode = "line_extraction_unavailable"

	// WarnLowConfidence marks a document-type classification below the
	// confidence threshold. Conversion proceeds with default tuning.
	WarnLowConfidence WarningCode = "low_confidence"
)

// Warning describes a non-fatal condition encountered during conversion.
// A warning always accompanies a usable result; failures that prevent a
// result are returned as errors instead.
type Warning struct {
	// Code identifies the warning class
	Code WarningCode

	// Stage names the pipeline stage that raised the warning
	Stage string

	// Message is a human-readable description
	Message string
}

// String returns the warning as "stage: message".
func (w Warning) String() string {
	if w.Stage == "" {
		return w.Message
	}
	return fmt.Sprintf("%s: %s", w.Stage, w.Message)
}

// FormatWarnings joins warnings into a single display string.
//
// Example:
//
//	md, warnings, err := structura.Open("report.pdf").Markdown()
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", structura.FormatWarnings(warnings))
//	}
func FormatWarnings(warnings []Warning) string {
	if len(warnings) == 0 {
		return ""
	}
	parts := make([]string, len(warnings))
	for i, w := range warnings {
		parts[i] = w.String()
	}
	return strings.Join(parts, "; ")
}

// warningf builds a warning with a formatted message.
func warningf(code WarningCode, stage, format string, args ...any) Warning {
	return Warning{
		Code:    code,
		Stage:   stage,
		Message: fmt.Sprintf(format, args...),
	}
}
