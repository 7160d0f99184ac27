// Package transcript defines the word-level timeline consumed by the
// synchronizer and scene segmenter.
//
// The timeline is produced by an external speech-to-text collaborator and is
// read-only for the rest of the pipeline. The JSON shape matches the
// transcriber output: {"words": [{"word": ..., "start": ..., "end": ...}]}
// with an optional "segments" array.
package transcript
