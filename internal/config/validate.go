package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateVideo(); err != nil {
		return err
	}
	if err := c.validateTimeline(); err != nil {
		return err
	}
	if err := c.validateTicker(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateVideo() error {
	if c.Video.Width < 16 || c.Video.Height < 16 {
		return fmt.Errorf("video dimensions %dx%d are too small", c.Video.Width, c.Video.Height)
	}
	if c.Video.FPS > 240 {
		return fmt.Errorf("video.fps %v is unreasonably high", c.Video.FPS)
	}
	return nil
}

func (c *Config) validateTimeline() error {
	if c.Timeline.AnchorTokens > 10 {
		return errors.New("timeline.anchor_tokens must be at most 10")
	}
	if c.Timeline.MinSegmentSeconds >= 1.0 {
		return errors.New("timeline.min_segment_seconds must be below 1 second")
	}
	if c.Scenes.PauseThresholdSeconds >= c.Scenes.MaxSceneSeconds {
		return errors.New("scenes.pause_threshold_seconds must be below scenes.max_scene_seconds")
	}
	return nil
}

func (c *Config) validateTicker() error {
	if c.Ticker.Height >= c.Video.Height/2 {
		return errors.New("ticker.height must leave room for the content area")
	}
	if c.Ticker.StripMultiple < 2 {
		return errors.New("ticker.strip_multiple must be at least 2 for seamless looping")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format %q must be console or json", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level %q must be debug, info, warn, or error", c.Logging.Level)
	}
	return nil
}
