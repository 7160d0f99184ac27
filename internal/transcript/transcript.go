package transcript

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// ErrEmptyTimeline indicates a transcript with zero words. A timeline without
// words cannot be synchronized, so callers must treat this as fatal.
var ErrEmptyTimeline = errors.New("transcript: empty word timeline")

// Word is a single transcribed word with its timing in seconds.
type Word struct {
	Text  string  `json:"word"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// Duration returns the spoken length of the word.
func (w Word) Duration() float64 {
	return w.End - w.Start
}

// Segment is a transcriber-produced utterance grouping. Segments are optional
// in the payload; the synchronizer works from words alone.
type Segment struct {
	Text  string  `json:"text"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Words []Word  `json:"words,omitempty"`
}

// Timeline is the ordered word-level output of a speech-to-text run.
// Words are immutable once loaded and non-decreasing in start time.
type Timeline struct {
	Words    []Word    `json:"words"`
	Segments []Segment `json:"segments,omitempty"`
}

// Duration returns the end timestamp of the last word, or 0 for an empty
// timeline.
func (t Timeline) Duration() float64 {
	if len(t.Words) == 0 {
		return 0
	}
	return t.Words[len(t.Words)-1].End
}

// Validate checks the timeline invariants: at least one word, each word with
// start < end, and starts non-decreasing in transcript order.
func (t Timeline) Validate() error {
	if len(t.Words) == 0 {
		return ErrEmptyTimeline
	}
	var prevStart float64
	for i, w := range t.Words {
		if w.Start >= w.End {
			return fmt.Errorf("transcript: word %d (%q) has start %.3f >= end %.3f", i, w.Text, w.Start, w.End)
		}
		if w.Start < prevStart {
			return fmt.Errorf("transcript: word %d (%q) starts at %.3f before previous word at %.3f", i, w.Text, w.Start, prevStart)
		}
		prevStart = w.Start
	}
	return nil
}

// Parse decodes a transcriber JSON payload and validates it.
func Parse(data []byte) (Timeline, error) {
	var tl Timeline
	if err := json.Unmarshal(data, &tl); err != nil {
		return Timeline{}, fmt.Errorf("parse transcript json: %w", err)
	}
	if err := tl.Validate(); err != nil {
		return Timeline{}, err
	}
	return tl, nil
}

// Load reads and parses a transcript JSON file.
func Load(path string) (Timeline, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Timeline{}, fmt.Errorf("read transcript: %w", err)
	}
	return Parse(data)
}
