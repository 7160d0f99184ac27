package visuals

import (
	"errors"
	"reflect"
	"testing"
)

func newTestAssigner(pool []Asset, missing map[string]bool) *Assigner {
	assigner := NewAssigner(pool, nil, nil)
	assigner.statFile = func(path string) error {
		if missing[path] {
			return errors.New("stat: no such file")
		}
		return nil
	}
	return assigner
}

func TestAssignRoundRobin(t *testing.T) {
	pool := []Asset{
		{ID: "a", FilePath: "/a.png"},
		{ID: "b", FilePath: "/b.png"},
	}
	assigner := newTestAssigner(pool, nil)

	assignments := assigner.Assign(5)
	if len(assignments) != 5 {
		t.Fatalf("expected 5 assignments, got %d", len(assignments))
	}

	wantAssets := []string{"a", "b", "a", "b", "a"}
	wantEffects := []string{"zoom_in", "static", "zoom_center", "zoom_in", "static"}
	for i, assignment := range assignments {
		if assignment.Index != i {
			t.Errorf("assignment %d: index %d", i, assignment.Index)
		}
		if assignment.Asset.ID != wantAssets[i] {
			t.Errorf("assignment %d: asset %q, want %q", i, assignment.Asset.ID, wantAssets[i])
		}
		if assignment.Effect != wantEffects[i] {
			t.Errorf("assignment %d: effect %q, want %q", i, assignment.Effect, wantEffects[i])
		}
		if assignment.Missing {
			t.Errorf("assignment %d: unexpectedly flagged missing", i)
		}
	}
}

func TestAssignDeterministic(t *testing.T) {
	pool := []Asset{
		{ID: "a", FilePath: "/a.png"},
		{ID: "b", FilePath: "/b.png"},
		{ID: "c", FilePath: "/c.png"},
	}
	first := newTestAssigner(pool, nil).Assign(7)
	second := newTestAssigner(pool, nil).Assign(7)
	if !reflect.DeepEqual(first, second) {
		t.Fatal("identical inputs produced different assignments")
	}
}

func TestAssignFlagsMissingAsset(t *testing.T) {
	pool := []Asset{
		{ID: "a", FilePath: "/a.png"},
		{ID: "b", FilePath: "/gone.png"},
	}
	assignments := newTestAssigner(pool, map[string]bool{"/gone.png": true}).Assign(2)

	if assignments[0].Missing {
		t.Error("present asset flagged missing")
	}
	if !assignments[1].Missing {
		t.Error("absent asset not flagged missing")
	}
	if assignments[1].Asset.ID != "b" {
		t.Errorf("missing assignment lost its asset identity, got %q", assignments[1].Asset.ID)
	}
}

func TestAssignEmptyPool(t *testing.T) {
	assignments := newTestAssigner(nil, nil).Assign(3)
	if len(assignments) != 3 {
		t.Fatalf("expected 3 assignments, got %d", len(assignments))
	}
	for i, assignment := range assignments {
		if !assignment.Missing {
			t.Errorf("assignment %d: expected missing with empty pool", i)
		}
		if assignment.Effect == "" {
			t.Errorf("assignment %d: effect still cycles with empty pool", i)
		}
	}
}

func TestAssignZeroCount(t *testing.T) {
	if got := newTestAssigner(nil, nil).Assign(0); got != nil {
		t.Fatalf("expected nil for zero count, got %v", got)
	}
}

func TestAssignCustomEffects(t *testing.T) {
	pool := []Asset{{ID: "a", FilePath: "/a.png"}}
	assigner := NewAssigner(pool, []string{"pan"}, nil)
	assigner.statFile = func(string) error { return nil }

	assignments := assigner.Assign(2)
	for i, assignment := range assignments {
		if assignment.Effect != "pan" {
			t.Errorf("assignment %d: effect %q, want pan", i, assignment.Effect)
		}
	}
}
