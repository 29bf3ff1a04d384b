package embedding

import (
	"context"
	"math"
)

// Encoder converts free text into a numeric vector representation.
// Implementations may require a preparation phase over the reference corpus.
// Vectors are L2-normalized so cosine similarity reduces to a dot product.
type Encoder interface {
	Name() string
	Prepare(corpus []string) error
	Dimension() int
	Embed(ctx context.Context, text string) ([]float64, error)
}

// Normalize scales v to unit length in place. Zero vectors are left as-is.
func Normalize(v []float64) {
	sum := 0.0
	for _, x := range v {
		sum += x * x
	}
	if sum == 0 {
		return
	}
	inv := 1.0 / math.Sqrt(sum)
	for i := range v {
		v[i] *= inv
	}
}
