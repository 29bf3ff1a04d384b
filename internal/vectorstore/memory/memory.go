package memory

import (
	"errors"
	"sort"
	"sync"

	"polybot/internal/vectorstore"
)

// Storage is an in-memory vector store using brute-force cosine similarity.
// Reference corpora are small (hundreds to low thousands of entries), so an
// O(n) scan per query is fine; no ANN structure is warranted at this scale.
// Vectors are assumed L2-normalized, reducing cosine similarity to a dot
// product.
type Storage struct {
	mu        sync.RWMutex
	dimension int
	vectors   [][]float64
	refs      []vectorstore.Reference
}

// NewStorage creates an empty in-memory store.
func NewStorage() *Storage { return &Storage{} }

func (s *Storage) Init(dimension int) error {
	if dimension <= 0 {
		return errors.New("invalid dimension")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dimension = dimension
	s.vectors = nil
	s.refs = nil
	return nil
}

func (s *Storage) Upsert(refs []vectorstore.Reference, vectors [][]float64) error {
	if len(refs) != len(vectors) {
		return errors.New("refs and vectors length mismatch")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, v := range vectors {
		if len(v) != s.dimension {
			return errors.New("vector dimension mismatch")
		}
	}
	s.refs = append(s.refs, refs...)
	s.vectors = append(s.vectors, vectors...)
	return nil
}

func (s *Storage) Search(vector []float64, topK int) ([]vectorstore.Hit, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if topK <= 0 {
		topK = 3
	}
	hits := make([]vectorstore.Hit, len(s.vectors))
	for i := range s.vectors {
		hits[i] = vectorstore.Hit{Ref: s.refs[i], Score: dot(s.vectors[i], vector)}
	}
	// Stable sort keeps insertion order on ties.
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].Score > hits[j].Score })
	if topK > len(hits) {
		topK = len(hits)
	}
	return hits[:topK], nil
}

func (s *Storage) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.refs)
}

func (s *Storage) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.vectors = nil
	s.refs = nil
	return nil
}

func dot(a, b []float64) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	sum := 0.0
	for i := 0; i < n; i++ {
		sum += a[i] * b[i]
	}
	return sum
}
