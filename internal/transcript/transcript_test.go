package transcript

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"
)

func TestParse(t *testing.T) {
	payload := `{
  "words": [
    {"word": "the", "start": 0.0, "end": 0.2},
    {"word": "market", "start": 0.2, "end": 0.6},
    {"word": "crashed", "start": 0.6, "end": 1.1},
    {"word": "today", "start": 1.1, "end": 1.4}
  ]
}`
	tl, err := Parse([]byte(payload))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(tl.Words) != 4 {
		t.Fatalf("expected 4 words, got %d", len(tl.Words))
	}
	if tl.Words[1].Text != "market" {
		t.Errorf("word 1 = %q, want market", tl.Words[1].Text)
	}
	if math.Abs(tl.Duration()-1.4) > 1e-9 {
		t.Errorf("duration = %f, want 1.4", tl.Duration())
	}
}

func TestParseEmpty(t *testing.T) {
	_, err := Parse([]byte(`{"words": []}`))
	if !errors.Is(err, ErrEmptyTimeline) {
		t.Fatalf("expected ErrEmptyTimeline, got %v", err)
	}
}

func TestValidateRejectsBadTiming(t *testing.T) {
	tests := []struct {
		name  string
		words []Word
	}{
		{"zero duration", []Word{{Text: "a", Start: 1.0, End: 1.0}}},
		{"inverted", []Word{{Text: "a", Start: 2.0, End: 1.0}}},
		{"regressing starts", []Word{
			{Text: "a", Start: 1.0, End: 1.5},
			{Text: "b", Start: 0.5, End: 2.0},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := (Timeline{Words: tt.words}).Validate(); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "timestamps.json")
	content := `{"words":[{"word":"hello","start":0.1,"end":0.4}],"segments":[{"text":"hello","start":0.1,"end":0.4}]}`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write test file: %v", err)
	}

	tl, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(tl.Segments) != 1 {
		t.Fatalf("expected 1 segment, got %d", len(tl.Segments))
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
