// Package testsupport provides shared helpers for package tests: temp-dir
// seeded configurations and fixture file writers.
package testsupport

import (
	"path/filepath"
	"testing"

	"newsreel/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.WorkspaceDir = filepath.Join(base, "workspace")
	cfg.Paths.OutputDir = filepath.Join(base, "output")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.Paths.AssetDir = filepath.Join(base, "assets")
	cfg.Paths.DatabasePath = filepath.Join(base, "newsreel.db")
	// Small geometry keeps image-producing tests fast.
	cfg.Video.Width = 270
	cfg.Video.Height = 480

	for _, opt := range opts {
		opt(&cfg)
	}
	return &cfg
}

// WithVideoSize overrides the output frame geometry on the test config.
func WithVideoSize(width, height int) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Video.Width = width
		cfg.Video.Height = height
	}
}

// WithFallbackAdvance overrides the synchronizer's bounded fallback advance.
func WithFallbackAdvance(words int) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Timeline.FallbackAdvanceWords = words
	}
}
