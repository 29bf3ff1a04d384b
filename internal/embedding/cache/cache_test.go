package cache

import (
	"context"
	"path/filepath"
	"reflect"
	"testing"
)

type countingEncoder struct {
	calls int
}

func (c *countingEncoder) Name() string { return "counting" }

func (c *countingEncoder) Prepare(_ []string) error { return nil }

func (c *countingEncoder) Dimension() int { return 3 }
func (c *countingEncoder) Embed(_ context.Context, text string) ([]float64, error) {
	c.calls++
	return []float64{float64(len(text)), 1, 0}, nil
}

func TestRepeatEmbedHitsCache(t *testing.T) {
	inner := &countingEncoder{}
	enc, err := Open(filepath.Join(t.TempDir(), "cache.db"), inner)
	if err != nil {
		t.Fatal(err)
	}
	defer enc.Close()

	ctx := context.Background()
	first, err := enc.Embed(ctx, "what is guvi")
	if err != nil {
		t.Fatal(err)
	}
	second, err := enc.Embed(ctx, "what is guvi")
	if err != nil {
		t.Fatal(err)
	}
	if inner.calls != 1 {
		t.Fatalf("expected 1 backend call, got %d", inner.calls)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("cached vector differs: %v vs %v", first, second)
	}
}

func TestDistinctTextsMiss(t *testing.T) {
	inner := &countingEncoder{}
	enc, err := Open(filepath.Join(t.TempDir(), "cache.db"), inner)
	if err != nil {
		t.Fatal(err)
	}
	defer enc.Close()

	ctx := context.Background()
	if _, err := enc.Embed(ctx, "first"); err != nil {
		t.Fatal(err)
	}
	if _, err := enc.Embed(ctx, "second"); err != nil {
		t.Fatal(err)
	}
	if inner.calls != 2 {
		t.Fatalf("expected 2 backend calls, got %d", inner.calls)
	}
}

func TestCacheSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.db")
	ctx := context.Background()

	inner := &countingEncoder{}
	enc, err := Open(path, inner)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := enc.Embed(ctx, "persisted"); err != nil {
		t.Fatal(err)
	}
	if err := enc.Close(); err != nil {
		t.Fatal(err)
	}

	reopenedInner := &countingEncoder{}
	reopened, err := Open(path, reopenedInner)
	if err != nil {
		t.Fatal(err)
	}
	defer reopened.Close()
	if _, err := reopened.Embed(ctx, "persisted"); err != nil {
		t.Fatal(err)
	}
	if reopenedInner.calls != 0 {
		t.Fatalf("expected cache hit after reopen, got %d backend calls", reopenedInner.calls)
	}
}
