package out

import "context"

// LanguageDetector detects the dominant language of a text.
// Implementations may fail; callers fall back to the script heuristic.
type LanguageDetector interface {
	DetectLanguage(ctx context.Context, text string) (string, error)
}

// Translator translates text between languages. A failed translation is
// never fatal; callers pass the original text through unchanged.
type Translator interface {
	Translate(ctx context.Context, text, sourceLang, targetLang string) (string, error)
}
