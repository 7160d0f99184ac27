package captions

import (
	"newsreel/internal/transcript"
)

// Caption is one on-screen word with its display interval. A caption is
// visible for t in [Start, End): at exactly End it has already yielded to the
// next word, so adjacent captions never overlap on screen.
type Caption struct {
	Text  string  `json:"text"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// Build produces one caption per transcript word. Words with empty text or
// degenerate timing are dropped rather than flashed.
func Build(words []transcript.Word) []Caption {
	captions := make([]Caption, 0, len(words))
	for _, word := range words {
		if word.Text == "" || word.End <= word.Start {
			continue
		}
		captions = append(captions, Caption{
			Text:  word.Text,
			Start: word.Start,
			End:   word.End,
		})
	}
	return captions
}

// ActiveAt returns the caption visible at time t, assuming captions are
// sorted by start time. The half-open interval means a word's end instant
// shows the next word, or nothing during a pause.
func ActiveAt(captions []Caption, t float64) (Caption, bool) {
	lo, hi := 0, len(captions)
	for lo < hi {
		mid := (lo + hi) / 2
		if captions[mid].Start <= t {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	// lo is the first caption starting after t; the candidate is the one
	// before it.
	if lo == 0 {
		return Caption{}, false
	}
	candidate := captions[lo-1]
	if t >= candidate.End {
		return Caption{}, false
	}
	return candidate, true
}
