package timeline

import (
	"newsreel/internal/textutil"
	"newsreel/internal/transcript"
)

// FindSequence searches words[start:] for the first occurrence of phrase's
// normalized tokens as consecutive transcript words. It returns the index of
// the last word of the match. The boolean reports whether a match was found;
// a miss is an expected outcome that drives the caller's fallback chain, not
// an error.
//
// Matching is exact on normalized token text. No stemming, no edit distance.
func FindSequence(words []transcript.Word, phrase string, start int) (int, bool) {
	target := textutil.Tokens(phrase)
	if len(target) == 0 {
		return 0, false
	}
	if start < 0 {
		start = 0
	}

	for i := start; i+len(target) <= len(words); i++ {
		matched := true
		for j, want := range target {
			if textutil.Normalize(words[i+j].Text) != want {
				matched = false
				break
			}
		}
		if matched {
			return i + len(target) - 1, true
		}
	}
	return 0, false
}
