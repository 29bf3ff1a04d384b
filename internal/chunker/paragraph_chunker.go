package chunker

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// ParagraphChunker splits free text into paragraph chunks on blank-line
// boundaries. Chunks shorter than minChars are dropped as noise and inner
// newlines are collapsed to spaces.
type ParagraphChunker struct {
	minChars int
	splitter *regexp.Regexp
	spaces   *regexp.Regexp
}

// NewParagraphChunker creates a chunker with the given minimum chunk length.
func NewParagraphChunker(minChars int) *ParagraphChunker {
	if minChars < 0 {
		minChars = 0
	}
	return &ParagraphChunker{
		minChars: minChars,
		splitter: regexp.MustCompile(`\n\s*\n`),
		spaces:   regexp.MustCompile(`\s+`),
	}
}

// Chunk returns the cleaned paragraph chunks of text, in document order.
func (c *ParagraphChunker) Chunk(text string) []string {
	var chunks []string
	for _, part := range c.splitter.Split(text, -1) {
		part = strings.TrimSpace(part)
		if utf8.RuneCountInString(part) <= c.minChars {
			continue
		}
		chunks = append(chunks, c.spaces.ReplaceAllString(part, " "))
	}
	return chunks
}
