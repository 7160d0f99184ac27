// Package timeline re-times pre-planned narration segments onto the real
// word-level transcript.
//
// Planned segment boundaries rarely align exactly with what the transcriber
// heard: tokenization differs, words get mis-transcribed, fillers appear. The
// synchronizer re-grounds each segment on its own content instead of a
// timestamp estimate. It searches for a short anchor phrase (the tail of the
// segment's script text) in the word timeline and derives the segment's end
// from the matched word. An internal cursor only ever advances, which makes
// the whole pass linear in the number of words and guarantees consecutive
// segments cover disjoint, gap-free word ranges.
package timeline
