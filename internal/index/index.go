package index

import (
	"context"
	"fmt"

	"polybot/internal/domain"
	"polybot/internal/embedding"
	"polybot/internal/vectorstore"
)

// Index answers similarity queries against a fixed set of reference texts
// whose embeddings are computed once at build time.
type Index struct {
	source domain.Source
	enc    embedding.Encoder
	store  vectorstore.Storage
	size   int
}

// Build embeds every reference text and loads the vectors into the store.
// embedTexts are what gets embedded; payloads are what a matching entry
// returns (for FAQ entries the question is embedded and the answer
// returned). progress, if non-nil, is called after each embedded entry.
// An empty reference set yields a valid index that matches nothing.
func Build(ctx context.Context, source domain.Source, embedTexts, payloads []string, enc embedding.Encoder, store vectorstore.Storage, progress func(done, total int)) (*Index, error) {
	if len(embedTexts) != len(payloads) {
		return nil, fmt.Errorf("index %s: %d texts but %d payloads", source, len(embedTexts), len(payloads))
	}
	ix := &Index{source: source, enc: enc, store: store}
	if len(embedTexts) == 0 {
		return ix, nil
	}

	refs := make([]vectorstore.Reference, len(embedTexts))
	vectors := make([][]float64, len(embedTexts))
	for i, text := range embedTexts {
		vec, err := enc.Embed(ctx, text)
		if err != nil {
			return nil, fmt.Errorf("embed %s reference %d: %w", source, i, err)
		}
		refs[i] = vectorstore.Reference{
			ID:    fmt.Sprintf("%s:%d", source, i),
			Index: i,
			Text:  payloads[i],
		}
		vectors[i] = vec
		if progress != nil {
			progress(i+1, len(embedTexts))
		}
	}

	if err := store.Init(len(vectors[0])); err != nil {
		return nil, fmt.Errorf("init %s store: %w", source, err)
	}
	if err := store.Upsert(refs, vectors); err != nil {
		return nil, fmt.Errorf("load %s store: %w", source, err)
	}
	ix.size = len(refs)
	return ix, nil
}

// Source returns the knowledge source this index serves.
func (ix *Index) Source() domain.Source { return ix.source }

// Len returns the number of indexed references.
func (ix *Index) Len() int { return ix.size }

// Query embeds text, retrieves the topK most similar references, and drops
// entries scoring below threshold. Results are sorted descending by score
// with ties in original reference order. An empty index returns an empty
// list for any query.
func (ix *Index) Query(ctx context.Context, text string, topK int, threshold float64) ([]domain.Match, error) {
	if ix == nil || ix.size == 0 {
		return nil, nil
	}
	vec, err := ix.enc.Embed(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("embed %s query: %w", ix.source, err)
	}
	hits, err := ix.store.Search(vec, topK)
	if err != nil {
		return nil, fmt.Errorf("search %s index: %w", ix.source, err)
	}
	matches := make([]domain.Match, 0, len(hits))
	for _, h := range hits {
		if h.Score < threshold {
			continue
		}
		matches = append(matches, domain.Match{Text: h.Ref.Text, Score: h.Score, Source: ix.source})
	}
	return matches, nil
}
