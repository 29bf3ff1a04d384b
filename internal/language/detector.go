package language

import (
	"strings"

	"github.com/abadojack/whatlanggo"
)

// Detector classifies raw text into an ISO 639-1 language code. It never
// fails: empty input, unreliable classification, or a language outside the
// supported set all fall back to the pivot code.
type Detector struct {
	pivot     string
	supported map[string]struct{}
}

// NewDetector creates a detector that defaults to the given pivot code.
func NewDetector(pivot string) *Detector {
	return &Detector{pivot: Normalize(pivot), supported: supportedCodes()}
}

// Detect returns the ISO 639-1 code for text, or the pivot code when
// detection is inconclusive.
func (d *Detector) Detect(text string) string {
	if strings.TrimSpace(text) == "" {
		return d.pivot
	}
	info := whatlanggo.Detect(text)
	if !info.IsReliable() {
		return d.pivot
	}
	code := Normalize(whatlanggo.LangToStringShort(info.Lang))
	if code == "" {
		return d.pivot
	}
	if _, ok := d.supported[code]; !ok {
		return d.pivot
	}
	return code
}

// Supported reports whether the given code is a known translation target.
func (d *Detector) Supported(code string) bool {
	_, ok := d.supported[Normalize(code)]
	return ok
}

// Normalize lowercases a language tag and strips any region subtag, so
// "en-US" and "zh_CN" become "en" and "zh".
func Normalize(code string) string {
	code = strings.ToLower(strings.TrimSpace(code))
	if idx := strings.IndexAny(code, "-_"); idx >= 0 {
		code = code[:idx]
	}
	return code
}

// supportedCodes lists the languages the translation backend is expected to
// handle. Anything else degrades to the pivot language.
func supportedCodes() map[string]struct{} {
	codes := []string{
		"af", "ar", "bn", "de", "en", "es", "fr", "gu", "hi", "id", "it",
		"ja", "kn", "ko", "ml", "mr", "ne", "nl", "pa", "pt", "ru", "ta",
		"te", "tr", "ur", "zh",
	}
	m := make(map[string]struct{}, len(codes))
	for _, c := range codes {
		m[c] = struct{}{}
	}
	return m
}
