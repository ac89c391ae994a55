package layout

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/tsawler/structura/model"
)

// languageProfile is the fingerprint used to score one language: keywords
// matched on word boundaries against lowercased content, syntax patterns
// matched against the raw content, and characters whose density is
// distinctive for the language.
type languageProfile struct {
	language         model.CodeLanguage
	keywords         []*regexp.Regexp
	syntaxPatterns   []*regexp.Regexp
	distinctiveChars []string
	weight           float64
}

// LanguageDetector infers the programming language of code content from
// fixed per-language profiles. Scoring blends keyword coverage, syntax
// pattern coverage, and distinctive character density.
type LanguageDetector struct {
	profiles []languageProfile
}

// NewLanguageDetector creates a new language detector with the built-in
// language profiles.
func NewLanguageDetector() *LanguageDetector {
	return &LanguageDetector{profiles: buildLanguageProfiles()}
}

// DetectLanguage returns the language scoring highest on the content, or
// unknown when no language clears the minimum confidence. Ties keep the
// first profile in evaluation order; the order itself carries no meaning.
func (d *LanguageDetector) DetectLanguage(content string) model.CodeLanguage {
	if strings.TrimSpace(content) == "" {
		return model.CodeLanguageUnknown
	}

	best := model.CodeLanguageUnknown
	bestScore := 0.0

	for _, profile := range d.profiles {
		score := d.scoreProfile(content, profile)
		if score > bestScore {
			best = profile.language
			bestScore = score
		}
	}

	if bestScore > 0.1 {
		return best
	}
	return model.CodeLanguageUnknown
}

// ConfidenceScore returns the confidence, between 0 and 1, that the
// content is written in the given language. Unknown and empty content
// score zero.
func (d *LanguageDetector) ConfidenceScore(content string, language model.CodeLanguage) float64 {
	if language == model.CodeLanguageUnknown || strings.TrimSpace(content) == "" {
		return 0.0
	}

	for _, profile := range d.profiles {
		if profile.language == language {
			return d.scoreProfile(content, profile)
		}
	}
	return 0.0
}

// AnalyzeCodeBlock returns a copy of the block with its language set to
// the detected language of its content.
func (d *LanguageDetector) AnalyzeCodeBlock(block *model.CodeBlock) *model.CodeBlock {
	return &model.CodeBlock{
		Lines:    block.Lines,
		Language: d.DetectLanguage(block.Content()),
		Style:    block.Style,
		Span:     block.Span,
	}
}

// scoreProfile blends three signals into one confidence value: the share
// of keywords present, the share of syntax patterns that match, and the
// density of distinctive characters. The final score is the better of the
// strongest single signal (discounted) and the weighted average, scaled
// by the profile weight and capped at 1.
func (d *LanguageDetector) scoreProfile(content string, profile languageProfile) float64 {
	contentLower := strings.ToLower(content)

	keywordConfidence := 0.0
	if len(profile.keywords) > 0 {
		matches := 0
		for _, keyword := range profile.keywords {
			if keyword.MatchString(contentLower) {
				matches++
			}
		}
		keywordConfidence = float64(matches) / float64(len(profile.keywords))
	}

	syntaxConfidence := 0.0
	if len(profile.syntaxPatterns) > 0 {
		matches := 0
		for _, pattern := range profile.syntaxPatterns {
			if pattern.MatchString(content) {
				matches++
			}
		}
		syntaxConfidence = float64(matches) / float64(len(profile.syntaxPatterns))
	}

	charConfidence := 0.0
	if len(profile.distinctiveChars) > 0 {
		count := 0
		for _, ch := range profile.distinctiveChars {
			count += strings.Count(content, ch)
		}
		charConfidence = float64(count) / float64(utf8.RuneCountInString(content))
		if charConfidence > 1.0 {
			charConfidence = 1.0
		}
	}

	bestIndividual := keywordConfidence
	if syntaxConfidence > bestIndividual {
		bestIndividual = syntaxConfidence
	}
	if charConfidence > bestIndividual {
		bestIndividual = charConfidence
	}

	weighted := keywordConfidence*0.5 + syntaxConfidence*0.3 + charConfidence*0.2

	confidence := bestIndividual * 0.7
	if weighted > confidence {
		confidence = weighted
	}
	confidence *= profile.weight

	if confidence > 1.0 {
		return 1.0
	}
	return confidence
}

// keywordPatterns compiles word-boundary patterns for lowercased keywords.
func keywordPatterns(keywords ...string) []*regexp.Regexp {
	patterns := make([]*regexp.Regexp, 0, len(keywords))
	for _, keyword := range keywords {
		patterns = append(patterns,
			regexp.MustCompile(`\b`+regexp.QuoteMeta(strings.ToLower(keyword))+`\b`))
	}
	return patterns
}

// syntaxPatterns compiles syntax patterns case-insensitive and multiline.
func syntaxPatterns(exprs ...string) []*regexp.Regexp {
	patterns := make([]*regexp.Regexp, 0, len(exprs))
	for _, expr := range exprs {
		patterns = append(patterns, regexp.MustCompile(`(?im)`+expr))
	}
	return patterns
}

// buildLanguageProfiles constructs the built-in profiles. Slice order is
// the tie-break order during detection.
func buildLanguageProfiles() []languageProfile {
	return []languageProfile{
		{
			language: model.CodeLanguagePython,
			keywords: keywordPatterns(
				"def", "class", "import", "from", "if", "elif", "else",
				"for", "while", "try", "except", "finally", "with",
				"lambda", "yield", "return", "pass", "break", "continue",
				"and", "or", "not", "in", "is", "True", "False", "None",
				"__init__", "__main__", "self", "print",
			),
			syntaxPatterns: syntaxPatterns(
				`def\s+\w+\s*\(`,
				`class\s+\w+\s*[:\(]`,
				`import\s+\w+`,
				`from\s+\w+\s+import`,
				`if\s+__name__\s*==\s*["']__main__["']`,
				`:\s*\n\s+`,
			),
			distinctiveChars: []string{":", "#"},
			weight:           1.0,
		},
		{
			language: model.CodeLanguageJavaScript,
			keywords: keywordPatterns(
				"function", "var", "let", "const", "if", "else", "for",
				"while", "do", "switch", "case", "default", "break",
				"continue", "return", "try", "catch", "finally", "throw",
				"new", "this", "prototype", "typeof", "instanceof",
				"console.log", "document", "window", "null", "undefined",
				"true", "false",
			),
			syntaxPatterns: syntaxPatterns(
				`function\s+\w*\s*\(`,
				`\w+\s*=>\s*[\{\w]`,
				`(var|let|const)\s+\w+`,
				`console\.log\s*\(`,
				`document\.\w+`,
				`\{\s*[\w\s,:"']+\s*\}`,
			),
			distinctiveChars: []string{"{", "}", ";"},
			weight:           1.0,
		},
		{
			language: model.CodeLanguageJava,
			keywords: keywordPatterns(
				"public", "private", "protected", "static", "final",
				"class", "interface", "extends", "implements", "abstract",
				"void", "int", "String", "boolean", "double", "float",
				"char", "byte", "short", "long", "if", "else", "for",
				"while", "do", "switch", "case", "default", "break",
				"continue", "return", "try", "catch", "finally", "throw",
				"throws", "new", "this", "super", "null", "true", "false",
				"System.out.println",
			),
			syntaxPatterns: syntaxPatterns(
				`public\s+(static\s+)?void\s+main`,
				`public\s+class\s+\w+`,
				`System\.out\.print`,
				`String\[\]\s+\w+`,
				`@\w+`,
			),
			distinctiveChars: []string{"{", "}", ";"},
			weight:           1.0,
		},
		{
			language: model.CodeLanguageCPP,
			keywords: keywordPatterns(
				"include", "namespace", "using", "class", "struct",
				"public", "private", "protected", "virtual", "static",
				"const", "int", "char", "float", "double", "bool",
				"void", "auto", "if", "else", "for", "while",
				"do", "switch", "case", "default", "break", "continue",
				"return", "try", "catch", "throw", "new", "delete",
				"this", "nullptr", "true", "false", "cout", "cin",
				"endl", "std", "vector", "string", "printf",
			),
			syntaxPatterns: syntaxPatterns(
				`#include\s*<[\w\.]+>`,
				`std::\w+`,
				`\w+\s*\*+\s*\w+`,
				`cout\s*<<`,
				`cin\s*>>`,
				`::\w+`,
			),
			distinctiveChars: []string{"*", "&", "<", ">", "#"},
			weight:           1.0,
		},
		{
			language: model.CodeLanguageSQL,
			keywords: keywordPatterns(
				"SELECT", "FROM", "WHERE", "INSERT", "UPDATE", "DELETE",
				"CREATE", "DROP", "ALTER", "TABLE", "INDEX", "VIEW",
				"JOIN", "INNER", "LEFT", "RIGHT", "OUTER", "ON",
				"GROUP", "BY", "ORDER", "HAVING", "UNION", "ALL",
				"DISTINCT", "COUNT", "SUM", "AVG", "MIN", "MAX",
				"AND", "OR", "NOT", "NULL", "IS", "IN", "LIKE",
				"BETWEEN", "EXISTS", "CASE", "WHEN", "THEN", "ELSE", "END",
			),
			syntaxPatterns: syntaxPatterns(
				`SELECT\s+[\w\s,\*]+\s+FROM`,
				`INSERT\s+INTO\s+\w+`,
				`UPDATE\s+\w+\s+SET`,
				`DELETE\s+FROM\s+\w+`,
				`CREATE\s+TABLE\s+\w+`,
				`\w+\s*=\s*['"][^'"]*['"]`,
			),
			distinctiveChars: []string{";"},
			weight:           1.0,
		},
		{
			language: model.CodeLanguageHTML,
			keywords: keywordPatterns(
				"html", "head", "body", "title", "meta", "link",
				"script", "style", "div", "span", "p", "h1", "h2",
				"h3", "h4", "h5", "h6", "a", "img", "ul", "ol",
				"li", "table", "tr", "td", "th", "form", "input",
				"button", "select", "option", "textarea", "DOCTYPE",
			),
			syntaxPatterns: syntaxPatterns(
				`<\s*\w+[^>]*>`,
				`<\s*/\s*\w+\s*>`,
				`<!DOCTYPE\s+html>`,
				`\w+\s*=\s*["'][^"']*["']`,
				`<!--.*?-->`,
			),
			distinctiveChars: []string{"<", ">", "/", "=", `"`, "'"},
			weight:           1.0,
		},
		{
			language: model.CodeLanguageJSON,
			keywords: keywordPatterns(
				"true", "false", "null",
			),
			syntaxPatterns: syntaxPatterns(
				`\{\s*"[\w\s]+"\s*:\s*["\w\[\{]`,
				`"\w+"\s*:\s*\{`,
				`"\w+"\s*:\s*\[`,
				`"\w+"\s*:\s*(true|false|null|\d+)`,
				`\[\s*\{`,
			),
			distinctiveChars: []string{"{", "}", "[", "]", ":", ",", `"`},
			weight:           1.0,
		},
	}
}
