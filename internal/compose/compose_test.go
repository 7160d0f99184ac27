package compose

import (
	"sort"
	"testing"

	"newsreel/internal/captions"
	"newsreel/internal/scenes"
	"newsreel/internal/timeline"
	"newsreel/internal/visuals"
)

func testSegments() []timeline.SyncedSegment {
	return []timeline.SyncedSegment{
		{NarrationSegment: timeline.NarrationSegment{ID: 1}, Start: 0.0, End: 1.4, Duration: 1.4},
		{NarrationSegment: timeline.NarrationSegment{ID: 2}, Start: 1.4, End: 3.0, Duration: 1.6},
	}
}

func testAssignments() []visuals.Assignment {
	return []visuals.Assignment{
		{Index: 0, Asset: visuals.Asset{ID: "a", FilePath: "/a.png"}, Effect: "zoom_in"},
		{Index: 1, Asset: visuals.Asset{ID: "b", FilePath: "/b.png"}, Effect: "static"},
	}
}

func TestBuildLayerStackOrder(t *testing.T) {
	compositor := New(nil, Options{})
	doc, err := compositor.Build(Input{
		Title:       "market wrap",
		Duration:    3.0,
		Segments:    testSegments(),
		Assignments: testAssignments(),
		Captions: []captions.Caption{
			{Text: "markets", Start: 0.0, End: 0.4},
			{Text: "fell", Start: 0.4, End: 0.8},
		},
		Ticker: &TickerSpec{StripPath: "/strip.png", StripWidth: 20000, CycleWidth: 1000, Height: 60, Speed: 120},
	})
	if err != nil {
		t.Fatalf("Build returned error: %v", err)
	}

	// background, 2 visuals, ticker, 2 captions
	if len(doc.Layers) != 6 {
		t.Fatalf("expected 6 layers, got %d", len(doc.Layers))
	}
	if !sort.SliceIsSorted(doc.Layers, func(i, j int) bool {
		return doc.Layers[i].ZOrder < doc.Layers[j].ZOrder
	}) {
		t.Fatal("layers not sorted by z-order")
	}

	wantKinds := []string{KindBackground, KindVisual, KindVisual, KindTicker, KindCaption, KindCaption}
	for i, layer := range doc.Layers {
		if layer.Kind != wantKinds[i] {
			t.Errorf("layer %d: kind %q, want %q", i, layer.Kind, wantKinds[i])
		}
	}

	background := doc.Layers[0]
	if background.Start != 0 || background.Duration != 3.0 {
		t.Errorf("background does not cover the full duration: %+v", background)
	}
	ticker := doc.Layers[3]
	if ticker.Duration != 3.0 || ticker.Position.Y != DefaultHeight-60 {
		t.Errorf("unexpected ticker layer: %+v", ticker)
	}
}

func TestBuildVisualTimingIsExact(t *testing.T) {
	doc, err := New(nil, Options{}).Build(Input{
		Duration:    3.0,
		Segments:    testSegments(),
		Assignments: testAssignments(),
	})
	if err != nil {
		t.Fatalf("Build returned error: %v", err)
	}

	var got []Layer
	for _, layer := range doc.Layers {
		if layer.Kind == KindVisual {
			got = append(got, layer)
		}
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 visual layers, got %d", len(got))
	}
	if got[0].Start != 0.0 || got[0].Duration != 1.4 || got[0].Effect != "zoom_in" {
		t.Errorf("unexpected first visual: %+v", got[0])
	}
	if got[1].Start != 1.4 || got[1].Duration != 1.6 || got[1].Source != "/b.png" {
		t.Errorf("unexpected second visual: %+v", got[1])
	}

	// Same-kind layers must not overlap.
	if got[0].Start+got[0].Duration > got[1].Start {
		t.Error("visual layers overlap")
	}
}

func TestBuildSkipsMissingAssetKeepsTiming(t *testing.T) {
	assignments := testAssignments()
	assignments[0].Missing = true

	doc, err := New(nil, Options{}).Build(Input{
		Duration:    3.0,
		Segments:    testSegments(),
		Assignments: assignments,
		Captions:    []captions.Caption{{Text: "markets", Start: 0.0, End: 0.4}},
	})
	if err != nil {
		t.Fatalf("Build returned error: %v", err)
	}

	visualCount, captionCount := 0, 0
	for _, layer := range doc.Layers {
		switch layer.Kind {
		case KindVisual:
			visualCount++
		case KindCaption:
			captionCount++
		}
	}
	if visualCount != 1 {
		t.Errorf("expected missing asset to drop exactly one visual layer, got %d", visualCount)
	}
	if captionCount != 1 {
		t.Error("caption layer lost alongside the missing visual")
	}
	if len(doc.Segments) != 2 {
		t.Error("segment timing dropped with the missing visual")
	}
}

func TestBuildClampsDegenerateDurations(t *testing.T) {
	doc, err := New(nil, Options{MinLayerSeconds: 0.1}).Build(Input{
		Duration: 2.0,
		Segments: []timeline.SyncedSegment{
			{NarrationSegment: timeline.NarrationSegment{ID: 1}, Start: 1.0, End: 1.0, Duration: 0},
		},
		Assignments: []visuals.Assignment{{Asset: visuals.Asset{ID: "a", FilePath: "/a.png"}, Effect: "static"}},
		Captions:    []captions.Caption{{Text: "blip", Start: 0.5, End: 0.5}},
	})
	if err != nil {
		t.Fatalf("Build returned error: %v", err)
	}

	for _, layer := range doc.Layers {
		if layer.Duration <= 0 {
			t.Errorf("layer %q has non-positive duration %v", layer.Kind, layer.Duration)
		}
		if (layer.Kind == KindVisual || layer.Kind == KindCaption) && layer.Duration != 0.1 {
			t.Errorf("layer %q duration %v, want clamp to 0.1", layer.Kind, layer.Duration)
		}
	}
}

func TestBuildFromScenes(t *testing.T) {
	doc, err := New(nil, Options{}).Build(Input{
		Duration: 5.0,
		Scenes: []scenes.Scene{
			{Number: 1, Start: 0.0, End: 2.5},
			{Number: 2, Start: 3.0, End: 5.0},
		},
		Assignments: testAssignments(),
	})
	if err != nil {
		t.Fatalf("Build returned error: %v", err)
	}

	var visualsSeen []Layer
	for _, layer := range doc.Layers {
		if layer.Kind == KindVisual {
			visualsSeen = append(visualsSeen, layer)
		}
	}
	if len(visualsSeen) != 2 {
		t.Fatalf("expected 2 visual layers from scenes, got %d", len(visualsSeen))
	}
	if visualsSeen[1].Start != 3.0 || visualsSeen[1].Duration != 2.0 {
		t.Errorf("unexpected scene visual: %+v", visualsSeen[1])
	}
}

func TestBuildRejectsNonPositiveDuration(t *testing.T) {
	if _, err := New(nil, Options{}).Build(Input{Duration: 0}); err == nil {
		t.Fatal("expected error for zero duration")
	}
}

func TestBuildNoTickerNoCaptions(t *testing.T) {
	doc, err := New(nil, Options{}).Build(Input{Duration: 1.0})
	if err != nil {
		t.Fatalf("Build returned error: %v", err)
	}
	if len(doc.Layers) != 1 || doc.Layers[0].Kind != KindBackground {
		t.Fatalf("expected background-only stack, got %+v", doc.Layers)
	}
}
