// Package scenes derives scene boundaries directly from pauses in the word
// timeline.
//
// This is the plan-free path: when no upstream narration plan exists, natural
// silences in the narration are the best available cut points. The segmenter
// replaces a slower model-driven planner used elsewhere in the production
// system; determinism is a hard requirement here, not an optimization.
package scenes
