package service

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"polybot/internal/domain"
	"polybot/internal/logger"
	"polybot/internal/translate"
)

// NoAnswer is the sentinel returned by PrimaryAnswer when every source
// came back empty. "Nothing found" is a normal outcome, not an error.
const NoAnswer = "I couldn't find an answer. Try rephrasing your question."

// Options holds the ranking and fallback thresholds for answering.
type Options struct {
	TopK              int
	FAQThreshold      float64
	CorpusThreshold   float64
	FallbackThreshold float64
}

// AnswerService composes the translator, the two semantic indexes and the
// fallback generator into the end-to-end question-answering pipeline.
// All collaborators are read-only after construction, so one service is
// safely shared across concurrent requests.
type AnswerService struct {
	translator *translate.Translator
	faq        domain.Retriever
	corpus     domain.Retriever
	generator  domain.Generator // nil disables the fallback step
	opts       Options
}

// NewAnswerService builds the orchestrator. generator may be nil, which
// turns the low-confidence fallback off entirely.
func NewAnswerService(translator *translate.Translator, faqIndex, corpusIndex domain.Retriever, generator domain.Generator, opts Options) *AnswerService {
	if opts.TopK <= 0 {
		opts.TopK = 3
	}
	if opts.FallbackThreshold <= 0 {
		opts.FallbackThreshold = 0.5
	}
	return &AnswerService{
		translator: translator,
		faq:        faqIndex,
		corpus:     corpusIndex,
		generator:  generator,
		opts:       opts,
	}
}

// Answer runs the full pipeline for one raw user question:
// translate to the pivot language, query both indexes, optionally invoke
// the fallback generator, and translate every match back to the detected
// language. An empty bundle is a valid result; only infrastructure
// failures (query embedding, store I/O) surface as an error.
func (s *AnswerService) Answer(ctx context.Context, rawText string) (*domain.Bundle, error) {
	start := time.Now()
	pivotText, lang := s.translator.ToPivot(ctx, rawText)

	// The two indexes share no mutable state; query them concurrently.
	var faqMatches, corpusMatches []domain.Match
	g, qctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		faqMatches, err = s.faq.Query(qctx, pivotText, s.opts.TopK, s.opts.FAQThreshold)
		return err
	})
	g.Go(func() error {
		var err error
		corpusMatches, err = s.corpus.Query(qctx, pivotText, s.opts.TopK, s.opts.CorpusThreshold)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	best := bestConfidence(faqMatches, corpusMatches)
	var generated []domain.Match
	if best < s.opts.FallbackThreshold && s.generator != nil {
		if text, err := s.generator.Generate(ctx, pivotText); err != nil {
			// An unavailable generator means fallback disabled, not failure.
			logger.L().Warnw("fallback generation failed", "err", err)
		} else if text != "" {
			// Score carries no meaning here; the Source tag marks the match
			// as generated so it is never ranked against retrieval scores.
			generated = append(generated, domain.Match{Text: text, Source: domain.SourceGenerated})
		}
	}

	bundle := &domain.Bundle{
		Lang:      lang,
		PivotText: pivotText,
		FAQ:       s.translateBack(ctx, faqMatches, lang),
		Corpus:    s.translateBack(ctx, corpusMatches, lang),
		Generated: s.translateBack(ctx, generated, lang),
	}
	logger.L().Debugw("answered",
		"lang", lang,
		"faq", len(bundle.FAQ),
		"corpus", len(bundle.Corpus),
		"generated", len(bundle.Generated),
		"best_confidence", best,
		"took", time.Since(start),
	)
	return bundle, nil
}

// PrimaryAnswer picks one best answer for simple callers: generated first,
// then FAQ, then corpus, then the no-answer sentinel. Callers needing more
// nuance should inspect the full bundle.
func PrimaryAnswer(b *domain.Bundle) string {
	switch {
	case b == nil:
		return NoAnswer
	case len(b.Generated) > 0:
		return b.Generated[0].Text
	case len(b.FAQ) > 0:
		return b.FAQ[0].Text
	case len(b.Corpus) > 0:
		return b.Corpus[0].Text
	default:
		return NoAnswer
	}
}

// translateBack translates each match independently; FromPivot degrades to
// the pivot text on failure, so one bad translation never discards the
// sibling matches. List order is preserved.
func (s *AnswerService) translateBack(ctx context.Context, matches []domain.Match, lang string) []domain.Match {
	if len(matches) == 0 {
		return nil
	}
	out := make([]domain.Match, len(matches))
	for i, m := range matches {
		m.Text = s.translator.FromPivot(ctx, m.Text, lang)
		out[i] = m
	}
	return out
}

func bestConfidence(lists ...[]domain.Match) float64 {
	best := 0.0
	for _, list := range lists {
		if len(list) > 0 && list[0].Score > best {
			best = list[0].Score
		}
	}
	return best
}
