package visuals

import (
	"log/slog"
	"os"

	"newsreel/internal/logging"
)

// Effect names cycled across assignments, in order.
var DefaultEffects = []string{"zoom_in", "static", "zoom_center"}

// Assignment pairs a scene or segment index with its chosen asset and
// presentation effect.
type Assignment struct {
	Index  int    `json:"index"`
	Asset  Asset  `json:"asset"`
	Effect string `json:"effect"`
	// Missing is set when the asset's file path did not resolve on disk. The
	// entry still carries timing-relevant identity so the caller can log and
	// skip only the visual layer.
	Missing bool `json:"missing,omitempty"`
}

// Assigner maps available assets onto scenes deterministically. The same
// inputs always produce the same assignment; this replaces a slower
// model-driven selector used elsewhere in the production system, so
// reproducibility is part of the contract.
type Assigner struct {
	pool    []Asset
	effects []string
	logger  *slog.Logger

	// statFile is swappable for tests.
	statFile func(string) error
}

// NewAssigner builds an assigner over the given asset pool. A nil logger
// disables logging; empty effects select the default cycle.
func NewAssigner(pool []Asset, effects []string, logger *slog.Logger) *Assigner {
	if len(effects) == 0 {
		effects = DefaultEffects
	}
	return &Assigner{
		pool:     pool,
		effects:  effects,
		logger:   logging.NewComponentLogger(logger, "visuals"),
		statFile: func(path string) error { _, err := os.Stat(path); return err },
	}
}

// Assign produces one assignment per scene index in [0, count): asset i is
// pool[i mod len(pool)], effect i is effects[i mod len(effects)]. Assets
// whose files are missing are flagged, not dropped, so the scene keeps its
// timing and the compositor can skip just the visual layer.
func (a *Assigner) Assign(count int) []Assignment {
	if count <= 0 {
		return nil
	}

	assignments := make([]Assignment, 0, count)
	for i := 0; i < count; i++ {
		assignment := Assignment{
			Index:  i,
			Effect: a.effects[i%len(a.effects)],
		}
		if len(a.pool) > 0 {
			asset := a.pool[i%len(a.pool)]
			assignment.Asset = asset
			if err := a.statFile(asset.FilePath); err != nil {
				assignment.Missing = true
				a.logger.Warn("visual asset missing, scene keeps timing without illustration",
					slog.String("asset_id", asset.ID),
					slog.String("path", asset.FilePath),
					logging.Alert("missing_asset"))
			}
		} else {
			assignment.Missing = true
		}
		assignments = append(assignments, assignment)
	}
	return assignments
}
