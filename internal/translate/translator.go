package translate

import (
	"context"
	"time"

	"polybot/internal/domain"
	"polybot/internal/language"
	"polybot/internal/logger"
)

// Translator provides bidirectional translation between a detected language
// and the fixed pivot language. A single pivot keeps the backend down to one
// language pair per direction.
//
// Failure semantics: detection falls back to the pivot code and translation
// falls back to returning the input text unchanged. Neither direction ever
// returns an error to the caller; a bad translation must not fail the whole
// request.
type Translator struct {
	detector domain.Detector
	backend  domain.TranslationBackend // nil disables translation
	pivot    string
	timeout  time.Duration
}

// New creates a Translator. backend may be nil, in which case all text
// passes through untranslated while detection keeps working.
func New(detector domain.Detector, backend domain.TranslationBackend, pivot string, timeout time.Duration) *Translator {
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	return &Translator{
		detector: detector,
		backend:  backend,
		pivot:    language.Normalize(pivot),
		timeout:  timeout,
	}
}

// Pivot returns the pivot language code.
func (t *Translator) Pivot() string { return t.pivot }

// DetectLanguage returns the ISO 639-1 code for text, defaulting to the
// pivot code when detection is inconclusive.
func (t *Translator) DetectLanguage(text string) string {
	return t.detector.Detect(text)
}

// ToPivot detects the source language and translates text into the pivot
// language. Text already in the pivot language passes through without a
// backend call.
func (t *Translator) ToPivot(ctx context.Context, text string) (string, string) {
	lang := t.detector.Detect(text)
	if lang == t.pivot || t.backend == nil {
		return text, lang
	}
	out, err := t.translate(ctx, text, lang, t.pivot)
	if err != nil {
		logger.L().Warnw("pivot translation failed, using raw text", "lang", lang, "err", err)
		return text, lang
	}
	return out, lang
}

// FromPivot translates pivot-language text into the target language. An
// unknown, empty, or pivot-equal target returns the pivot text verbatim;
// unsupported codes never reach the backend.
func (t *Translator) FromPivot(ctx context.Context, pivotText, target string) string {
	target = language.Normalize(target)
	if target == "" || target == t.pivot || t.backend == nil || !t.detector.Supported(target) {
		return pivotText
	}
	out, err := t.translate(ctx, pivotText, t.pivot, target)
	if err != nil {
		logger.L().Warnw("back-translation failed, keeping pivot text", "target", target, "err", err)
		return pivotText
	}
	return out
}

func (t *Translator) translate(ctx context.Context, text, source, target string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()
	return t.backend.Translate(ctx, text, source, target)
}
