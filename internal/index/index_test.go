package index

import (
	"context"
	"testing"

	"polybot/internal/domain"
	"polybot/internal/embedding/tfidf"
	"polybot/internal/vectorstore/memory"
)

func buildIndex(t *testing.T, source domain.Source, embedTexts, payloads []string) *Index {
	t.Helper()
	enc := tfidf.NewEncoder()
	if len(embedTexts) > 0 {
		if err := enc.Prepare(embedTexts); err != nil {
			t.Fatal(err)
		}
	}
	ix, err := Build(context.Background(), source, embedTexts, payloads, enc, memory.NewStorage(), nil)
	if err != nil {
		t.Fatal(err)
	}
	return ix
}

func TestQueryExactFAQMatch(t *testing.T) {
	ix := buildIndex(t, domain.SourceFAQ,
		[]string{"What is GUVI?", "What is WebKata?"},
		[]string{"GUVI is an ed-tech platform.", "WebKata is a front-end practice arena."})

	matches, err := ix.Query(context.Background(), "What is GUVI?", 3, 0.45)
	if err != nil {
		t.Fatal(err)
	}
	if len(matches) == 0 {
		t.Fatal("expected at least one match")
	}
	if matches[0].Text != "GUVI is an ed-tech platform." {
		t.Errorf("unexpected top answer: %q", matches[0].Text)
	}
	if matches[0].Score < 0.45 {
		t.Errorf("top score %f below threshold", matches[0].Score)
	}
	if matches[0].Source != domain.SourceFAQ {
		t.Errorf("expected faq source, got %s", matches[0].Source)
	}
}

func TestQueryCorpusOverlap(t *testing.T) {
	chunk := "GUVI offers CodeKata practice for students to improve coding skills through daily challenges."
	ix := buildIndex(t, domain.SourceCorpus, []string{chunk}, []string{chunk})

	matches, err := ix.Query(context.Background(), "Does GUVI have coding practice?", 3, 0.40)
	if err != nil {
		t.Fatal(err)
	}
	found := false
	for _, m := range matches {
		if m.Text == chunk {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected chunk in corpus matches, got %v", matches)
	}
}

func TestQueryInvariants(t *testing.T) {
	texts := []string{
		"coding practice with daily challenges",
		"daily coding challenges improve skills",
		"front-end development with html css",
		"data science career guidance sessions",
	}
	ix := buildIndex(t, domain.SourceCorpus, texts, texts)

	const topK = 2
	const threshold = 0.1
	matches, err := ix.Query(context.Background(), "daily coding challenges", topK, threshold)
	if err != nil {
		t.Fatal(err)
	}
	if len(matches) > topK {
		t.Fatalf("result length %d exceeds topK %d", len(matches), topK)
	}
	for i, m := range matches {
		if m.Score < threshold {
			t.Errorf("match %d score %f below threshold", i, m.Score)
		}
		if i > 0 && matches[i-1].Score < m.Score {
			t.Errorf("matches not sorted descending at %d", i)
		}
	}
}

func TestQueryThresholdFiltersAll(t *testing.T) {
	texts := []string{"coding practice with daily challenges"}
	ix := buildIndex(t, domain.SourceCorpus, texts, texts)

	matches, err := ix.Query(context.Background(), "météo demain", 3, 0.4)
	if err != nil {
		t.Fatal(err)
	}
	if len(matches) != 0 {
		t.Fatalf("expected no matches, got %v", matches)
	}
}

func TestEmptyIndexNeverErrors(t *testing.T) {
	ix := buildIndex(t, domain.SourceFAQ, nil, nil)
	for _, threshold := range []float64{0, 0.4, 0.9} {
		matches, err := ix.Query(context.Background(), "anything at all", 3, threshold)
		if err != nil {
			t.Fatalf("threshold %f: %v", threshold, err)
		}
		if len(matches) != 0 {
			t.Fatalf("threshold %f: expected no matches, got %v", threshold, matches)
		}
	}
}

func TestBuildLengthMismatch(t *testing.T) {
	enc := tfidf.NewEncoder()
	_, err := Build(context.Background(), domain.SourceFAQ, []string{"q"}, nil, enc, memory.NewStorage(), nil)
	if err == nil {
		t.Fatal("expected length mismatch error")
	}
}

func TestBuildReportsProgress(t *testing.T) {
	enc := tfidf.NewEncoder()
	texts := []string{"coding practice daily", "front-end development html"}
	if err := enc.Prepare(texts); err != nil {
		t.Fatal(err)
	}
	var calls int
	_, err := Build(context.Background(), domain.SourceCorpus, texts, texts, enc, memory.NewStorage(), func(done, total int) {
		calls++
		if total != len(texts) {
			t.Errorf("total = %d, want %d", total, len(texts))
		}
	})
	if err != nil {
		t.Fatal(err)
	}
	if calls != len(texts) {
		t.Errorf("progress called %d times, want %d", calls, len(texts))
	}
}
