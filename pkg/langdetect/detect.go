// Package langdetect sanity-checks bundle resources. It uses go-enry to
// detect the language of resource content, so the CLI can warn when a
// file listed in a bundle does not look like JavaScript before it gets
// concatenated into one.
package langdetect

import (
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// Language constants for the languages a bundle plausibly contains.
const (
	LangJavaScript = "javascript"
	LangTypeScript = "typescript"
	LangJSON       = "json"
	LangUnknown    = "unknown"
)

// scriptLanguages are enry names accepted as bundleable script content.
var scriptLanguages = map[string]string{
	"JavaScript": LangJavaScript,
	"TypeScript": LangTypeScript,
	"JSX":        LangJavaScript,
	"TSX":        LangTypeScript,
	"JSON":       LangJSON,
}

// Detect returns the detected language for resource content under its
// file name. Returns LangUnknown when detection is inconclusive.
func Detect(filename string, content []byte) string {
	if len(content) == 0 {
		return LangUnknown
	}

	// The filename is the strongest signal when present.
	if filename != "" {
		if lang := enry.GetLanguage(filename, content); lang != "" {
			return normalize(lang)
		}
	}

	// Fall back to the classifier over plausible candidates.
	candidates := []string{"JavaScript", "TypeScript", "JSON", "HTML", "CSS", "Text"}
	if lang, safe := enry.GetLanguageByClassifier(content, candidates); safe && lang != "" {
		return normalize(lang)
	}

	return LangUnknown
}

// IsScript reports whether content under filename looks like bundleable
// script. Inconclusive detection counts as script: the minifier gives a
// precise syntax error later, which beats a false warning here.
func IsScript(filename string, content []byte) bool {
	switch Detect(filename, content) {
	case LangJavaScript, LangTypeScript, LangJSON, LangUnknown:
		return true
	}
	return false
}

func normalize(lang string) string {
	if mapped, ok := scriptLanguages[lang]; ok {
		return mapped
	}
	return strings.ToLower(lang)
}
