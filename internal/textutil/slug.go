package textutil

import "strings"

// Slugify converts a video title into a lowercase directory-safe slug. Runs
// of characters outside [a-z0-9] collapse into a single underscore, so
// "Market Crash: Today!" becomes "market_crash_today". Returns "" when
// nothing survives; callers fall back to a run ID.
func Slugify(title string) string {
	var b strings.Builder
	gap := false
	for _, r := range strings.ToLower(title) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			if gap && b.Len() > 0 {
				b.WriteByte('_')
			}
			gap = false
			b.WriteRune(r)
		default:
			gap = true
		}
	}
	return b.String()
}
