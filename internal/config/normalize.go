package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeTimeline()
	c.normalizeVideo()
	c.normalizeTicker()
	c.normalizeCaptions()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.WorkspaceDir) == "" {
		c.Paths.WorkspaceDir = defaultWorkspaceDir
	}
	if c.Paths.WorkspaceDir, err = expandPath(c.Paths.WorkspaceDir); err != nil {
		return fmt.Errorf("paths.workspace_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.OutputDir) == "" {
		c.Paths.OutputDir = defaultOutputDir
	}
	if c.Paths.OutputDir, err = expandPath(c.Paths.OutputDir); err != nil {
		return fmt.Errorf("paths.output_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.AssetDir) == "" {
		c.Paths.AssetDir = defaultAssetDir
	}
	if c.Paths.AssetDir, err = expandPath(c.Paths.AssetDir); err != nil {
		return fmt.Errorf("paths.asset_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.DatabasePath) == "" {
		c.Paths.DatabasePath = defaultDatabasePath
	}
	if c.Paths.DatabasePath, err = expandPath(c.Paths.DatabasePath); err != nil {
		return fmt.Errorf("paths.database_path: %w", err)
	}
	return nil
}

func (c *Config) normalizeVideo() {
	if c.Video.Width <= 0 {
		c.Video.Width = defaultVideoWidth
	}
	if c.Video.Height <= 0 {
		c.Video.Height = defaultVideoHeight
	}
	if c.Video.FPS <= 0 {
		c.Video.FPS = defaultVideoFPS
	}
	c.Video.Background = strings.TrimSpace(c.Video.Background)
	if c.Video.Background == "" {
		c.Video.Background = defaultVideoBackground
	}
}

func (c *Config) normalizeTimeline() {
	if c.Timeline.AnchorTokens <= 0 {
		c.Timeline.AnchorTokens = defaultAnchorTokens
	}
	if c.Timeline.FallbackAdvanceWords <= 0 {
		c.Timeline.FallbackAdvanceWords = defaultFallbackAdvanceWords
	}
	if c.Timeline.MinSegmentSeconds <= 0 {
		c.Timeline.MinSegmentSeconds = defaultMinSegmentSeconds
	}
	if c.Scenes.PauseThresholdSeconds <= 0 {
		c.Scenes.PauseThresholdSeconds = defaultPauseThresholdSeconds
	}
	if c.Scenes.MaxSceneSeconds <= 0 {
		c.Scenes.MaxSceneSeconds = defaultMaxSceneSeconds
	}
}

func (c *Config) normalizeTicker() {
	if c.Ticker.Height <= 0 {
		c.Ticker.Height = defaultTickerHeight
	}
	if c.Ticker.FontSize <= 0 {
		c.Ticker.FontSize = defaultTickerFontSize
	}
	if c.Ticker.Speed <= 0 {
		c.Ticker.Speed = defaultTickerSpeed
	}
	if c.Ticker.StripMultiple <= 0 {
		c.Ticker.StripMultiple = defaultTickerStripMultiple
	}
}

func (c *Config) normalizeCaptions() {
	if c.Captions.FontSize <= 0 {
		c.Captions.FontSize = defaultCaptionFontSize
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
