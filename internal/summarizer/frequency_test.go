package summarizer

import (
	"strings"
	"testing"
)

func TestSummarizeCapsSentences(t *testing.T) {
	text := "GUVI teaches coding. CodeKata has daily coding challenges. WebKata covers front-end work. MicroARC guides beginners. Zen class mentors career switchers."
	s, err := NewFrequencySummarizer().Summarize(text, 2)
	if err != nil {
		t.Fatal(err)
	}
	if n := strings.Count(s, "."); n != 2 {
		t.Errorf("expected 2 sentences, got %d in %q", n, s)
	}
}

func TestSummarizePlainTextWithoutSentences(t *testing.T) {
	s, err := NewFrequencySummarizer().Summarize("no punctuation here", 3)
	if err != nil {
		t.Fatal(err)
	}
	if s != "no punctuation here" {
		t.Errorf("got %q", s)
	}
}

func TestSummarizeKeepsOriginalOrder(t *testing.T) {
	text := "Coding coding coding first. Unrelated filler sentence here. Coding coding coding last."
	s, err := NewFrequencySummarizer().Summarize(text, 2)
	if err != nil {
		t.Fatal(err)
	}
	first := strings.Index(s, "first")
	last := strings.Index(s, "last")
	if first == -1 || last == -1 || first > last {
		t.Errorf("selected sentences out of order: %q", s)
	}
}
