package vectorstore

// Reference is the payload attached to a stored vector. Text is what gets
// returned to the caller: the answer text for FAQ entries, the paragraph
// itself for corpus entries.
type Reference struct {
	ID    string
	Index int
	Text  string
}

// Hit is a reference with its similarity score against a query vector.
type Hit struct {
	Ref   Reference
	Score float64
}

// Storage persists vectors and supports cosine similarity search.
// Search results are sorted descending by score with ties broken by the
// original insertion order.
type Storage interface {
	Init(dimension int) error
	Upsert(refs []Reference, vectors [][]float64) error
	Search(vector []float64, topK int) ([]Hit, error)
	Len() int
	Clear() error
}
