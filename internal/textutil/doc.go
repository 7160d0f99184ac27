// Package textutil provides text normalization and sanitization utilities.
//
// The primary use cases are:
//   - Normalizing script and transcript text so the two can be compared
//     token-for-token (lowercase, punctuation stripped, whitespace collapsed)
//   - Slugifying run titles into directory-safe artifact names
//
// Normalization is deliberately exact-match oriented: no stemming and no
// edit-distance fuzzing. Two words compare equal iff their normalized forms
// are byte-identical.
package textutil
