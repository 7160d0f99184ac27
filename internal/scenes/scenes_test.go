package scenes

import (
	"errors"
	"reflect"
	"testing"

	"newsreel/internal/transcript"
)

func TestSegmentBreaksOnPause(t *testing.T) {
	words := []transcript.Word{
		{Text: "markets", Start: 0.0, End: 0.4},
		{Text: "fell", Start: 0.5, End: 0.9},
		// 0.8s of silence
		{Text: "then", Start: 1.7, End: 2.0},
		{Text: "recovered", Start: 2.0, End: 2.6},
	}

	scenes, err := Segment(words, Options{})
	if err != nil {
		t.Fatalf("Segment: %v", err)
	}
	if len(scenes) != 2 {
		t.Fatalf("expected 2 scenes, got %d", len(scenes))
	}

	first, second := scenes[0], scenes[1]
	if first.Start != 0.0 || first.End != 0.9 {
		t.Errorf("scene 1 span = [%f, %f], want [0.0, 0.9]", first.Start, first.End)
	}
	if first.Text != "markets fell" {
		t.Errorf("scene 1 text = %q", first.Text)
	}
	if second.Start != 1.7 || second.End != 2.6 {
		t.Errorf("scene 2 span = [%f, %f], want [1.7, 2.6]", second.Start, second.End)
	}
	if first.Number != 1 || second.Number != 2 {
		t.Errorf("scene numbers = %d, %d, want 1, 2", first.Number, second.Number)
	}
}

func TestSegmentBreaksOnMaxDuration(t *testing.T) {
	// Continuous speech, no pauses: only the duration cap creates boundaries.
	var words []transcript.Word
	for i := 0; i < 20; i++ {
		words = append(words, transcript.Word{
			Text:  "word",
			Start: float64(i),
			End:   float64(i) + 1.0,
		})
	}

	scenes, err := Segment(words, Options{MaxSceneSeconds: 5.0})
	if err != nil {
		t.Fatalf("Segment: %v", err)
	}
	if len(scenes) < 3 {
		t.Fatalf("expected multiple capped scenes, got %d", len(scenes))
	}
	for _, scene := range scenes[:len(scenes)-1] {
		// Each scene may overshoot only by the closing word itself.
		if scene.Duration > 6.0 {
			t.Errorf("scene %d duration %f exceeds cap plus closing word", scene.Number, scene.Duration)
		}
	}
}

func TestSegmentSingleRunOnWord(t *testing.T) {
	// A single word longer than the cap still yields one valid scene.
	words := []transcript.Word{{Text: "aaaand", Start: 0, End: 12.0}}
	scenes, err := Segment(words, Options{})
	if err != nil {
		t.Fatalf("Segment: %v", err)
	}
	if len(scenes) != 1 || scenes[0].Duration != 12.0 {
		t.Fatalf("unexpected scenes: %+v", scenes)
	}
}

func TestSegmentEveryWordAssignedOnce(t *testing.T) {
	words := []transcript.Word{
		{Text: "a", Start: 0.0, End: 0.2},
		{Text: "b", Start: 0.9, End: 1.1},
		{Text: "c", Start: 1.2, End: 1.4},
		{Text: "d", Start: 2.5, End: 2.8},
	}
	scenes, err := Segment(words, Options{})
	if err != nil {
		t.Fatalf("Segment: %v", err)
	}

	var collected []transcript.Word
	for _, scene := range scenes {
		collected = append(collected, scene.Words...)
	}
	if !reflect.DeepEqual(collected, words) {
		t.Errorf("scenes do not partition the word list: %+v", collected)
	}
}

func TestSegmentDeterministic(t *testing.T) {
	words := []transcript.Word{
		{Text: "a", Start: 0.0, End: 0.3},
		{Text: "b", Start: 1.0, End: 1.3},
		{Text: "c", Start: 1.4, End: 1.8},
	}
	first, err := Segment(words, Options{})
	if err != nil {
		t.Fatalf("Segment: %v", err)
	}
	second, err := Segment(words, Options{})
	if err != nil {
		t.Fatalf("Segment: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Error("repeated runs produced different boundaries")
	}
}

func TestSegmentEmptyTimeline(t *testing.T) {
	if _, err := Segment(nil, Options{}); !errors.Is(err, transcript.ErrEmptyTimeline) {
		t.Fatalf("expected ErrEmptyTimeline, got %v", err)
	}
}
