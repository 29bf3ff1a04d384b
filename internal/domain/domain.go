package domain

import "context"

// Source identifies which knowledge source produced a match.
type Source string

const (
	SourceFAQ       Source = "faq"
	SourceCorpus    Source = "corpus"
	SourceGenerated Source = "generated"
)

// FAQItem is a curated question/answer pair. The question is what gets
// embedded; the answer is what gets returned to the user.
type FAQItem struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// Match is a single answer candidate. For SourceGenerated the Score carries
// no meaning: generated text has no retrieval confidence, and the Source tag
// is what distinguishes it. Never compare a generated score against a
// retrieval score.
type Match struct {
	Text   string
	Score  float64
	Source Source
}

// Bundle is the full per-request result handed to the presentation layer.
// Every Text inside it is in the user's detected language; an all-empty
// bundle is a normal "no answer found" outcome, not an error.
type Bundle struct {
	Lang      string
	PivotText string
	FAQ       []Match
	Corpus    []Match
	Generated []Match
}

// Detector maps raw text to an ISO 639-1 language code. It never fails:
// inconclusive detection yields the pivot language. Supported reports
// whether a code is a known translation target; translation to an
// unsupported code must be skipped rather than left to backend defaults.
type Detector interface {
	Detect(text string) string
	Supported(code string) bool
}

// TranslationBackend translates text between two languages. Codes are
// ISO 639-1 base codes ("en", "ta", ...).
type TranslationBackend interface {
	Translate(ctx context.Context, text, sourceLang, targetLang string) (string, error)
}

// Generator produces a single open-ended continuation for a pivot-language
// prompt. Used only when retrieval confidence is insufficient.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Retriever answers similarity queries against one knowledge source.
// Results are sorted descending by score, contain only entries with
// score >= threshold, and hold at most topK items.
type Retriever interface {
	Query(ctx context.Context, text string, topK int, threshold float64) ([]Match, error)
}
