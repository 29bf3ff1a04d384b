package faq

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileYieldsEmptySet(t *testing.T) {
	items, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	if err != nil {
		t.Fatalf("missing file must not error: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("expected empty set, got %d items", len(items))
	}
}

func TestLoadParsesPairs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "faq.json")
	data := `[
		{"question": "What is GUVI?", "answer": "GUVI is an ed-tech platform."},
		{"question": "", "answer": "orphan answer"},
		{"question": "What is CodeKata?", "answer": "A coding practice platform."}
	]`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	items, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items (blank question dropped), got %d", len(items))
	}
	if items[0].Answer != "GUVI is an ed-tech platform." {
		t.Errorf("unexpected answer: %q", items[0].Answer)
	}
}

func TestLoadRejectsMalformedJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "faq.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected parse error")
	}
}
