package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	chatbackend "polybot/internal/backend/openai"
	"polybot/internal/chunker"
	"polybot/internal/config"
	"polybot/internal/domain"
	"polybot/internal/embedding"
	"polybot/internal/embedding/cache"
	openaienc "polybot/internal/embedding/openai"
	"polybot/internal/embedding/tfidf"
	"polybot/internal/faq"
	"polybot/internal/index"
	"polybot/internal/language"
	"polybot/internal/logger"
	"polybot/internal/summarizer"
	"polybot/internal/translate"
	"polybot/internal/vectorstore"
	"polybot/internal/vectorstore/memory"
	"polybot/internal/vectorstore/qdrant"
)

// Bot bundles the assembled pipeline with the bits of load-time state the
// presentation layer wants to show.
type Bot struct {
	Service     *AnswerService
	Summary     string
	FAQCount    int
	CorpusCount int
}

var (
	sharedOnce sync.Once
	sharedBot  *Bot
	sharedErr  error
)

// Shared returns the process-wide Bot, building it on first call. Loading
// models and embedding the reference corpora is expensive one-time work;
// the once guard ensures concurrent first-use cannot double-initialize.
func Shared(ctx context.Context, cfg *config.AppConfig, progress func(done, total int)) (*Bot, error) {
	sharedOnce.Do(func() {
		sharedBot, sharedErr = Load(ctx, cfg, progress)
	})
	return sharedBot, sharedErr
}

// Load assembles the full pipeline from configuration: knowledge sources,
// encoder, vector stores, indexes, translator and generator. progress, if
// non-nil, is called as reference texts are embedded.
func Load(ctx context.Context, cfg *config.AppConfig, progress func(done, total int)) (*Bot, error) {
	faqItems, err := faq.Load(cfg.Data.FAQPath)
	if err != nil {
		return nil, err
	}
	corpusText, chunks, err := loadCorpus(cfg.Data.CorpusPath, cfg.Data.MinChunkChars)
	if err != nil {
		return nil, err
	}
	logger.L().Infow("knowledge sources loaded", "faq", len(faqItems), "chunks", len(chunks))

	questions := make([]string, len(faqItems))
	answers := make([]string, len(faqItems))
	for i, it := range faqItems {
		questions[i] = it.Question
		answers[i] = it.Answer
	}

	enc, err := buildEncoder(cfg)
	if err != nil {
		return nil, err
	}
	refTexts := append(append([]string{}, questions...), chunks...)
	if len(refTexts) > 0 {
		if err := enc.Prepare(refTexts); err != nil {
			return nil, fmt.Errorf("prepare encoder: %w", err)
		}
	}

	total := len(refTexts)
	done := 0
	tick := func(_, _ int) {
		done++
		if progress != nil {
			progress(done, total)
		}
	}

	faqStore, err := buildStore(cfg, "faq")
	if err != nil {
		return nil, err
	}
	corpusStore, err := buildStore(cfg, "corpus")
	if err != nil {
		return nil, err
	}
	faqIndex, err := index.Build(ctx, domain.SourceFAQ, questions, answers, enc, faqStore, tick)
	if err != nil {
		return nil, err
	}
	corpusIndex, err := index.Build(ctx, domain.SourceCorpus, chunks, chunks, enc, corpusStore, tick)
	if err != nil {
		return nil, err
	}

	var chat *chatbackend.Client
	if cfg.Translator.Enabled || cfg.Generator.Enabled {
		chat, err = chatbackend.NewClient(chatbackend.Config{
			BaseURL:     cfg.OpenAI.BaseURL,
			APIKeyEnv:   cfg.OpenAI.APIKeyEnv,
			Model:       cfg.OpenAI.ChatModel,
			Timeout:     time.Duration(cfg.OpenAI.TimeoutSecs) * time.Second,
			Temperature: cfg.Generator.Temperature,
			MaxTokens:   cfg.Generator.MaxTokens,
		})
		if err != nil {
			return nil, err
		}
	}
	var backend domain.TranslationBackend
	if cfg.Translator.Enabled {
		backend = chat
	}
	var generator domain.Generator
	if cfg.Generator.Enabled {
		generator = chat
	}

	detector := language.NewDetector(cfg.Translator.PivotLang)
	translator := translate.New(detector, backend, cfg.Translator.PivotLang,
		time.Duration(cfg.Translator.TimeoutSecs)*time.Second)

	svc := NewAnswerService(translator, faqIndex, corpusIndex, generator, Options{
		TopK:              cfg.Retrieval.TopK,
		FAQThreshold:      cfg.Retrieval.FAQThreshold,
		CorpusThreshold:   cfg.Retrieval.CorpusThreshold,
		FallbackThreshold: cfg.Retrieval.FallbackThreshold,
	})

	summary := "Ask your first question to get started."
	if corpusText != "" {
		if s, err := summarizer.NewFrequencySummarizer().Summarize(corpusText, 2); err == nil && s != "" {
			summary = s
		}
	}

	return &Bot{
		Service:     svc,
		Summary:     summary,
		FAQCount:    faqIndex.Len(),
		CorpusCount: corpusIndex.Len(),
	}, nil
}

func buildEncoder(cfg *config.AppConfig) (embedding.Encoder, error) {
	var enc embedding.Encoder
	switch cfg.Encoder.Type {
	case "tfidf", "":
		enc = tfidf.NewEncoder()
	case "openai":
		c, err := openaienc.NewEncoder(openaienc.Config{
			BaseURL:   cfg.OpenAI.BaseURL,
			APIKeyEnv: cfg.OpenAI.APIKeyEnv,
			Model:     cfg.OpenAI.EmbedModel,
			Timeout:   time.Duration(cfg.OpenAI.TimeoutSecs) * time.Second,
		})
		if err != nil {
			return nil, err
		}
		enc = c
	default:
		return nil, fmt.Errorf("unknown encoder: %s", cfg.Encoder.Type)
	}
	if cfg.Encoder.CachePath != "" {
		cached, err := cache.Open(cfg.Encoder.CachePath, enc)
		if err != nil {
			return nil, err
		}
		enc = cached
	}
	return enc, nil
}

func buildStore(cfg *config.AppConfig, suffix string) (vectorstore.Storage, error) {
	switch cfg.VectorStore.Type {
	case "memory", "":
		return memory.NewStorage(), nil
	case "qdrant":
		if cfg.VectorStore.Qdrant == nil {
			return nil, errors.New("qdrant config missing")
		}
		return qdrant.NewStorage(qdrant.Config{
			URL:        cfg.VectorStore.Qdrant.URL,
			APIKey:     cfg.VectorStore.Qdrant.APIKey,
			Collection: cfg.VectorStore.Qdrant.Collection + "_" + suffix,
			Timeout:    time.Duration(cfg.VectorStore.Qdrant.TimeoutSecs) * time.Second,
		}), nil
	default:
		return nil, fmt.Errorf("unknown vector store: %s", cfg.VectorStore.Type)
	}
}

// loadCorpus reads the free-text corpus and splits it into paragraph
// chunks. A missing file yields an empty corpus, not an error.
func loadCorpus(path string, minChars int) (string, []string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", nil, nil
		}
		return "", nil, fmt.Errorf("read corpus file: %w", err)
	}
	text := string(data)
	return text, chunker.NewParagraphChunker(minChars).Chunk(text), nil
}
