package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.normalize(); err != nil {
		t.Fatalf("normalize returned error: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config does not validate: %v", err)
	}
	if cfg.Video.Width != 1080 || cfg.Video.Height != 1920 {
		t.Errorf("unexpected default geometry %dx%d", cfg.Video.Width, cfg.Video.Height)
	}
	if cfg.Timeline.AnchorTokens != 3 || cfg.Timeline.FallbackAdvanceWords != 10 {
		t.Errorf("unexpected timeline defaults: %+v", cfg.Timeline)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	cfg, resolved, exists, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if exists {
		t.Error("expected exists=false for missing file")
	}
	if resolved != path {
		t.Errorf("resolved path %q, want %q", resolved, path)
	}
	if cfg.Scenes.MaxSceneSeconds != 8.0 {
		t.Errorf("defaults not applied: %+v", cfg.Scenes)
	}
}

func TestLoadOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
[paths]
workspace_dir = "` + dir + `/ws"

[timeline]
fallback_advance_words = 25

[ticker]
speed = 90.0

[logging]
format = "json"
level = "debug"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, _, exists, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists {
		t.Fatal("expected exists=true")
	}
	if cfg.Timeline.FallbackAdvanceWords != 25 {
		t.Errorf("override lost: %+v", cfg.Timeline)
	}
	if cfg.Ticker.Speed != 90.0 {
		t.Errorf("override lost: %+v", cfg.Ticker)
	}
	if cfg.Logging.Format != "json" || cfg.Logging.Level != "debug" {
		t.Errorf("override lost: %+v", cfg.Logging)
	}
	// Unset sections keep defaults.
	if cfg.Captions.FontSize != 64.0 {
		t.Errorf("default lost: %+v", cfg.Captions)
	}
	if cfg.Paths.WorkspaceDir != filepath.Join(dir, "ws") {
		t.Errorf("path not expanded: %q", cfg.Paths.WorkspaceDir)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name:    "bad log format",
			content: "[logging]\nformat = \"yaml\"\n",
			wantErr: "logging.format",
		},
		{
			name:    "pause above max scene",
			content: "[scenes]\npause_threshold_seconds = 9.0\nmax_scene_seconds = 8.0\n",
			wantErr: "pause_threshold_seconds",
		},
		{
			name:    "ticker swallows frame",
			content: "[ticker]\nheight = 1000\n",
			wantErr: "ticker.height",
		},
		{
			name:    "malformed toml",
			content: "[paths\n",
			wantErr: "parse config",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			if err := os.WriteFile(path, []byte(tt.content), 0o644); err != nil {
				t.Fatal(err)
			}
			_, _, _, err := Load(path)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestExpandPathTilde(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	got, err := ExpandPath("~/newsreel/out")
	if err != nil {
		t.Fatalf("ExpandPath returned error: %v", err)
	}
	if got != filepath.Join(home, "newsreel", "out") {
		t.Errorf("ExpandPath = %q", got)
	}
}

func TestCreateSample(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := CreateSample(path); err != nil {
		t.Fatalf("CreateSample returned error: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "[timeline]") {
		t.Error("sample config missing [timeline] section")
	}

	// The sample with every override uncommented must load clean.
	cfg, _, _, err := Load(path)
	if err != nil {
		t.Fatalf("sample config does not load: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("sample config does not validate: %v", err)
	}
}

func TestEnsureDirectories(t *testing.T) {
	dir := t.TempDir()
	cfg := Default()
	cfg.Paths.WorkspaceDir = filepath.Join(dir, "ws")
	cfg.Paths.OutputDir = filepath.Join(dir, "out")
	cfg.Paths.LogDir = filepath.Join(dir, "logs")
	cfg.Paths.DatabasePath = filepath.Join(dir, "db", "newsreel.db")

	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories returned error: %v", err)
	}
	for _, p := range []string{cfg.Paths.WorkspaceDir, cfg.Paths.OutputDir, cfg.Paths.LogDir, filepath.Join(dir, "db")} {
		info, err := os.Stat(p)
		if err != nil || !info.IsDir() {
			t.Errorf("directory %q not created", p)
		}
	}
}
