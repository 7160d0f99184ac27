package scenes

import (
	"strings"

	"newsreel/internal/transcript"
)

// Default segmentation thresholds. A boundary is placed on any silence longer
// than the pause threshold; a scene is also closed once it outgrows the
// maximum duration, so a run-on narration without pauses still produces
// watchable cuts.
const (
	DefaultPauseThresholdSeconds = 0.5
	DefaultMaxSceneSeconds       = 8.0
)

// Options tunes scene segmentation. Zero values select the defaults.
type Options struct {
	PauseThresholdSeconds float64
	MaxSceneSeconds       float64
}

func (o Options) withDefaults() Options {
	if o.PauseThresholdSeconds <= 0 {
		o.PauseThresholdSeconds = DefaultPauseThresholdSeconds
	}
	if o.MaxSceneSeconds <= 0 {
		o.MaxSceneSeconds = DefaultMaxSceneSeconds
	}
	return o
}

// Scene is a contiguous span of the word timeline grouped by natural pauses.
type Scene struct {
	Number   int               `json:"scene_number"`
	Start    float64           `json:"start"`
	End      float64           `json:"end"`
	Duration float64           `json:"duration"`
	Text     string            `json:"text"`
	Words    []transcript.Word `json:"words"`
}

// Segment derives scenes directly from pauses in the word timeline. It is
// used when no pre-planned narration segments exist. The pass is linear, each
// word lands in exactly one scene, and the result is a pure function of the
// inputs: the same timeline and options always produce the same boundaries.
func Segment(words []transcript.Word, opts Options) ([]Scene, error) {
	if len(words) == 0 {
		return nil, transcript.ErrEmptyTimeline
	}
	opts = opts.withDefaults()

	var scenes []Scene
	sceneStart := words[0].Start
	firstWord := 0

	for i, word := range words {
		shouldBreak := i == len(words)-1

		if !shouldBreak {
			if pause := words[i+1].Start - word.End; pause > opts.PauseThresholdSeconds {
				shouldBreak = true
			}
		}
		if word.End-sceneStart > opts.MaxSceneSeconds {
			shouldBreak = true
		}

		if !shouldBreak {
			continue
		}

		sceneWords := words[firstWord : i+1]
		scenes = append(scenes, Scene{
			Number:   len(scenes) + 1,
			Start:    sceneStart,
			End:      word.End,
			Duration: word.End - sceneStart,
			Text:     joinWords(sceneWords),
			Words:    sceneWords,
		})

		if i < len(words)-1 {
			sceneStart = words[i+1].Start
			firstWord = i + 1
		}
	}

	return scenes, nil
}

func joinWords(words []transcript.Word) string {
	parts := make([]string, len(words))
	for i, w := range words {
		parts[i] = strings.TrimSpace(w.Text)
	}
	return strings.Join(parts, " ")
}
