// Command newsreel composes short-form video timelines: it synchronizes
// narration plans against word-level transcripts, segments scenes, renders
// ticker strips, and emits layer documents for an external renderer.
package main
