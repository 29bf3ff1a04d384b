package faq

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"polybot/internal/domain"
)

// Load reads the FAQ JSON file: an array of {"question", "answer"} objects.
// A missing file is not an error; it yields an empty set and the FAQ index
// degrades to returning no matches.
func Load(path string) ([]domain.FAQItem, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read faq file: %w", err)
	}
	var items []domain.FAQItem
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("parse faq file %s: %w", path, err)
	}
	out := items[:0]
	for _, it := range items {
		if it.Question == "" || it.Answer == "" {
			continue
		}
		out = append(out, it)
	}
	return out, nil
}
