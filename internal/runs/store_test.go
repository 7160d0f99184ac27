package runs

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := OpenPath(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("OpenPath returned error: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestCreateAndGet(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	created, err := store.Create(ctx, "market wrap", "/in/words.json", "/in/plan.json")
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if created.ID == "" {
		t.Fatal("expected a generated run ID")
	}
	if created.Status != StatusPending {
		t.Fatalf("new run status %q, want pending", created.Status)
	}

	got, err := store.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if got.Title != "market wrap" || got.WordsPath != "/in/words.json" || got.PlanPath != "/in/plan.json" {
		t.Fatalf("round trip lost fields: %+v", got)
	}
}

func TestGetUnknownRun(t *testing.T) {
	store := newTestStore(t)
	if _, err := store.Get(context.Background(), "nope"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestStatusLifecycle(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	run, err := store.Create(ctx, "t", "", "")
	if err != nil {
		t.Fatal(err)
	}

	for _, step := range []struct {
		status Status
		stage  string
	}{
		{StatusSyncing, "synchronizer"},
		{StatusPlanning, "planner"},
		{StatusComposing, "compositor"},
		{StatusCompleted, ""},
	} {
		if err := store.SetStatus(ctx, run.ID, step.status, step.stage); err != nil {
			t.Fatalf("SetStatus(%s): %v", step.status, err)
		}
		got, err := store.Get(ctx, run.ID)
		if err != nil {
			t.Fatal(err)
		}
		if got.Status != step.status || got.Stage != step.stage {
			t.Fatalf("after SetStatus(%s): %+v", step.status, got)
		}
	}
}

func TestSetStatusRejectsUnknown(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	run, err := store.Create(ctx, "t", "", "")
	if err != nil {
		t.Fatal(err)
	}
	if err := store.SetStatus(ctx, run.ID, Status("exploded"), ""); err == nil {
		t.Fatal("expected error for unknown status")
	}
}

func TestSetStatusUnknownRun(t *testing.T) {
	store := newTestStore(t)
	if err := store.SetStatus(context.Background(), "nope", StatusSyncing, "s"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSetFailure(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	run, err := store.Create(ctx, "t", "", "")
	if err != nil {
		t.Fatal(err)
	}

	if err := store.SetFailure(ctx, run.ID, "words file unreadable"); err != nil {
		t.Fatalf("SetFailure returned error: %v", err)
	}
	got, err := store.Get(ctx, run.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Status != StatusFailed || got.ErrorMessage != "words file unreadable" {
		t.Fatalf("unexpected failed run: %+v", got)
	}
	if !got.Status.Terminal() {
		t.Error("failed status not terminal")
	}
}

func TestSetTimelinePath(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	run, err := store.Create(ctx, "t", "", "")
	if err != nil {
		t.Fatal(err)
	}

	if err := store.SetTimelinePath(ctx, run.ID, "/out/timeline.json"); err != nil {
		t.Fatalf("SetTimelinePath returned error: %v", err)
	}
	got, err := store.Get(ctx, run.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.TimelinePath != "/out/timeline.json" {
		t.Fatalf("timeline path %q", got.TimelinePath)
	}
}

func TestListFilterAndOrder(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	first, err := store.Create(ctx, "first", "", "")
	if err != nil {
		t.Fatal(err)
	}
	second, err := store.Create(ctx, "second", "", "")
	if err != nil {
		t.Fatal(err)
	}
	if err := store.SetStatus(ctx, first.ID, StatusCompleted, ""); err != nil {
		t.Fatal(err)
	}

	all, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(all))
	}

	completed, err := store.List(ctx, StatusCompleted)
	if err != nil {
		t.Fatal(err)
	}
	if len(completed) != 1 || completed[0].ID != first.ID {
		t.Fatalf("unexpected filtered list: %+v", completed)
	}

	pending, err := store.List(ctx, StatusPending)
	if err != nil {
		t.Fatal(err)
	}
	if len(pending) != 1 || pending[0].ID != second.ID {
		t.Fatalf("unexpected filtered list: %+v", pending)
	}
}

func TestClearTerminalOnly(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	active, err := store.Create(ctx, "active", "", "")
	if err != nil {
		t.Fatal(err)
	}
	done, err := store.Create(ctx, "done", "", "")
	if err != nil {
		t.Fatal(err)
	}
	if err := store.SetStatus(ctx, done.ID, StatusCompleted, ""); err != nil {
		t.Fatal(err)
	}

	removed, err := store.Clear(ctx, false)
	if err != nil {
		t.Fatalf("Clear returned error: %v", err)
	}
	if removed != 1 {
		t.Fatalf("expected 1 removed, got %d", removed)
	}
	if _, err := store.Get(ctx, active.ID); err != nil {
		t.Errorf("active run was cleared: %v", err)
	}

	removed, err = store.Clear(ctx, true)
	if err != nil {
		t.Fatal(err)
	}
	if removed != 1 {
		t.Fatalf("expected clear --all to remove the remaining run, got %d", removed)
	}
}

func TestReopenKeepsData(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "runs.db")

	store, err := OpenPath(path)
	if err != nil {
		t.Fatal(err)
	}
	run, err := store.Create(context.Background(), "persisted", "", "")
	if err != nil {
		t.Fatal(err)
	}
	if err := store.Close(); err != nil {
		t.Fatal(err)
	}

	reopened, err := OpenPath(path)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer reopened.Close()
	got, err := reopened.Get(context.Background(), run.ID)
	if err != nil {
		t.Fatalf("Get after reopen: %v", err)
	}
	if got.Title != "persisted" {
		t.Fatalf("unexpected run after reopen: %+v", got)
	}
}
