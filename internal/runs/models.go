package runs

import (
	"time"
)

// Status represents the lifecycle of a pipeline run.
type Status string

const (
	StatusPending   Status = "pending"
	StatusSyncing   Status = "syncing"
	StatusPlanning  Status = "planning"
	StatusComposing Status = "composing"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

var allStatuses = []Status{
	StatusPending,
	StatusSyncing,
	StatusPlanning,
	StatusComposing,
	StatusCompleted,
	StatusFailed,
}

var statusSet = func() map[Status]struct{} {
	set := make(map[Status]struct{}, len(allStatuses))
	for _, status := range allStatuses {
		set[status] = struct{}{}
	}
	return set
}()

// Valid reports whether the status is a known lifecycle state.
func (s Status) Valid() bool {
	_, ok := statusSet[s]
	return ok
}

// Terminal reports whether the run has finished, successfully or not.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// Run is one recorded pipeline execution.
type Run struct {
	ID           string
	Title        string
	Status       Status
	Stage        string
	WordsPath    string
	PlanPath     string
	TimelinePath string
	ErrorMessage string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
