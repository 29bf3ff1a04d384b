package service

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"polybot/internal/config"
)

func writeKnowledge(t *testing.T) *config.AppConfig {
	t.Helper()
	dir := t.TempDir()
	faqPath := filepath.Join(dir, "faq.json")
	corpusPath := filepath.Join(dir, "corpus.txt")

	faqJSON := `[{"question": "What is GUVI?", "answer": "GUVI is an ed-tech platform."}]`
	if err := os.WriteFile(faqPath, []byte(faqJSON), 0o644); err != nil {
		t.Fatal(err)
	}
	corpus := "GUVI offers CodeKata practice for students to improve coding skills through daily challenges.\n\nshort noise\n"
	if err := os.WriteFile(corpusPath, []byte(corpus), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := config.Default()
	cfg.Data.FAQPath = faqPath
	cfg.Data.CorpusPath = corpusPath
	return cfg
}

func TestLoadAndAnswerFAQ(t *testing.T) {
	bot, err := Load(context.Background(), writeKnowledge(t), nil)
	if err != nil {
		t.Fatal(err)
	}
	if bot.FAQCount != 1 || bot.CorpusCount != 1 {
		t.Fatalf("unexpected index sizes: faq=%d corpus=%d", bot.FAQCount, bot.CorpusCount)
	}

	bundle, err := bot.Service.Answer(context.Background(), "What is GUVI?")
	if err != nil {
		t.Fatal(err)
	}
	if len(bundle.FAQ) == 0 {
		t.Fatal("expected an FAQ match")
	}
	if bundle.FAQ[0].Text != "GUVI is an ed-tech platform." {
		t.Errorf("unexpected answer %q", bundle.FAQ[0].Text)
	}
	if bundle.FAQ[0].Score < 0.45 {
		t.Errorf("score %f below FAQ threshold", bundle.FAQ[0].Score)
	}
}

func TestLoadAndAnswerCorpus(t *testing.T) {
	bot, err := Load(context.Background(), writeKnowledge(t), nil)
	if err != nil {
		t.Fatal(err)
	}
	bundle, err := bot.Service.Answer(context.Background(), "Does GUVI have coding practice?")
	if err != nil {
		t.Fatal(err)
	}
	found := false
	for _, m := range bundle.Corpus {
		if m.Text == "GUVI offers CodeKata practice for students to improve coding skills through daily challenges." {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected corpus chunk in matches, got %+v", bundle.Corpus)
	}
}

func TestLoadAndAnswerNothingFound(t *testing.T) {
	bot, err := Load(context.Background(), writeKnowledge(t), nil)
	if err != nil {
		t.Fatal(err)
	}
	bundle, err := bot.Service.Answer(context.Background(), "weather forecast tomorrow")
	if err != nil {
		t.Fatal(err)
	}
	if len(bundle.FAQ)+len(bundle.Corpus)+len(bundle.Generated) != 0 {
		t.Fatalf("expected empty bundle, got %+v", bundle)
	}
	if got := PrimaryAnswer(bundle); got != NoAnswer {
		t.Errorf("PrimaryAnswer = %q", got)
	}
}

func TestLoadWithMissingSources(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Default()
	cfg.Data.FAQPath = filepath.Join(dir, "absent.json")
	cfg.Data.CorpusPath = filepath.Join(dir, "absent.txt")

	bot, err := Load(context.Background(), cfg, nil)
	if err != nil {
		t.Fatalf("missing sources must not fail startup: %v", err)
	}
	bundle, err := bot.Service.Answer(context.Background(), "anything")
	if err != nil {
		t.Fatal(err)
	}
	if len(bundle.FAQ)+len(bundle.Corpus) != 0 {
		t.Fatalf("expected empty matches, got %+v", bundle)
	}
}

func TestSharedInitializesOnce(t *testing.T) {
	cfg := writeKnowledge(t)
	first, err := Shared(context.Background(), cfg, nil)
	if err != nil {
		t.Fatal(err)
	}
	second, err := Shared(context.Background(), cfg, nil)
	if err != nil {
		t.Fatal(err)
	}
	if first != second {
		t.Error("Shared must return the same instance")
	}
}
