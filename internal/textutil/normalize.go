package textutil

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
)

// foldCaser performs Unicode case folding so that comparisons are stable
// across scripts, not just ASCII.
var foldCaser = cases.Fold()

// dashReplacer converts joining punctuation to spaces before stripping, so
// "cost-cutting" tokenizes as two words the way transcribers emit them.
var dashReplacer = strings.NewReplacer(
	"—", " ", // em dash
	"–", " ", // en dash
	"-", " ",
	"\n", " ",
)

var punctuationRe = regexp.MustCompile(`[^\p{L}\p{N}\s]`)

// Normalize prepares text for token comparison: case-folded, punctuation
// removed, whitespace runs collapsed to single spaces, trimmed.
func Normalize(s string) string {
	s = dashReplacer.Replace(s)
	s = foldCaser.String(s)
	s = punctuationRe.ReplaceAllString(s, "")
	return strings.Join(strings.Fields(s), " ")
}

// Tokens returns the normalized words of s in order. Empty input yields nil.
func Tokens(s string) []string {
	normalized := Normalize(s)
	if normalized == "" {
		return nil
	}
	return strings.Fields(normalized)
}
