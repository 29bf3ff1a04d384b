package cache

import (
	"context"
	"crypto/sha1"
	"encoding/json"
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"

	"polybot/internal/embedding"
)

var bucketName = []byte("embeddings")

// Encoder wraps another encoder with a bbolt-backed cache so that
// re-embedding the same reference texts across restarts skips the backend.
// Cache keys include the inner encoder's name, so switching models never
// serves stale vectors.
type Encoder struct {
	inner embedding.Encoder
	db    *bolt.DB
}

// Open opens (or creates) the cache file at path around the given encoder.
func Open(path string, inner embedding.Encoder) (*Encoder, error) {
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open embedding cache: %w", err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketName)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init embedding cache: %w", err)
	}
	return &Encoder{inner: inner, db: db}, nil
}

// Close closes the underlying cache file.
func (e *Encoder) Close() error { return e.db.Close() }

// Name returns the identifier of this encoder implementation.
func (e *Encoder) Name() string { return "cached-" + e.inner.Name() }

// Prepare delegates to the wrapped encoder.
func (e *Encoder) Prepare(corpus []string) error { return e.inner.Prepare(corpus) }

// Dimension delegates to the wrapped encoder.
func (e *Encoder) Dimension() int { return e.inner.Dimension() }

// Embed returns the cached vector for text when present, otherwise embeds
// through the wrapped encoder and stores the result.
func (e *Encoder) Embed(ctx context.Context, text string) ([]float64, error) {
	key := e.key(text)

	var cached []float64
	err := e.db.View(func(tx *bolt.Tx) error {
		if data := tx.Bucket(bucketName).Get(key); data != nil {
			return json.Unmarshal(data, &cached)
		}
		return nil
	})
	if err == nil && cached != nil {
		return cached, nil
	}

	vec, err := e.inner.Embed(ctx, text)
	if err != nil {
		return nil, err
	}
	data, err := json.Marshal(vec)
	if err != nil {
		return nil, err
	}
	err = e.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketName).Put(key, data)
	})
	if err != nil {
		return nil, fmt.Errorf("store cached embedding: %w", err)
	}
	return vec, nil
}

func (e *Encoder) key(text string) []byte {
	h := sha1.Sum([]byte(e.inner.Name() + "\x00" + text))
	return h[:]
}
