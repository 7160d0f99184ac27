package timeline

import (
	"encoding/json"
	"fmt"
	"os"
)

// NarrationSegment is one pre-planned narration unit from the upstream
// script-planning collaborator. It carries no timing; timing is assigned by
// the synchronizer.
type NarrationSegment struct {
	ID         int    `json:"segment_id"`
	ScriptPart string `json:"script_part"`
	Visual     string `json:"visual,omitempty"`
}

// SyncedSegment is a narration segment with timing resolved against the word
// timeline.
type SyncedSegment struct {
	NarrationSegment
	Start    float64 `json:"start"`
	End      float64 `json:"end"`
	Duration float64 `json:"duration"`
}

// Plan is the narration plan document shape: an ordered segment list.
type Plan struct {
	Title    string             `json:"title,omitempty"`
	Segments []NarrationSegment `json:"segments"`
}

// ParsePlan decodes a narration plan payload.
func ParsePlan(data []byte) (Plan, error) {
	var plan Plan
	if err := json.Unmarshal(data, &plan); err != nil {
		return Plan{}, fmt.Errorf("parse narration plan: %w", err)
	}
	if len(plan.Segments) == 0 {
		return Plan{}, fmt.Errorf("narration plan has no segments")
	}
	return plan, nil
}

// LoadPlan reads and parses a narration plan JSON file.
func LoadPlan(path string) (Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Plan{}, fmt.Errorf("read narration plan: %w", err)
	}
	return ParsePlan(data)
}
