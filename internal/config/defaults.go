package config

const (
	defaultWorkspaceDir = "~/.local/share/newsreel/workspace"
	defaultOutputDir    = "~/.local/share/newsreel/output"
	defaultLogDir       = "~/.local/share/newsreel/logs"
	defaultAssetDir     = "~/.local/share/newsreel/assets"
	defaultDatabasePath = "~/.local/share/newsreel/newsreel.db"

	defaultVideoWidth      = 1080
	defaultVideoHeight     = 1920
	defaultVideoFPS        = 30.0
	defaultVideoBackground = "solid_black"

	defaultAnchorTokens         = 3
	defaultFallbackAdvanceWords = 10
	defaultMinSegmentSeconds    = 0.1

	defaultPauseThresholdSeconds = 0.5
	defaultMaxSceneSeconds       = 8.0

	defaultTickerHeight        = 60
	defaultTickerFontSize      = 22.0
	defaultTickerSpeed         = 120.0
	defaultTickerStripMultiple = 18

	defaultCaptionFontSize = 64.0

	defaultLogFormat = "console"
	defaultLogLevel  = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			WorkspaceDir: defaultWorkspaceDir,
			OutputDir:    defaultOutputDir,
			LogDir:       defaultLogDir,
			AssetDir:     defaultAssetDir,
			DatabasePath: defaultDatabasePath,
		},
		Video: Video{
			Width:      defaultVideoWidth,
			Height:     defaultVideoHeight,
			FPS:        defaultVideoFPS,
			Background: defaultVideoBackground,
		},
		Timeline: Timeline{
			AnchorTokens:         defaultAnchorTokens,
			FallbackAdvanceWords: defaultFallbackAdvanceWords,
			MinSegmentSeconds:    defaultMinSegmentSeconds,
		},
		Scenes: Scenes{
			PauseThresholdSeconds: defaultPauseThresholdSeconds,
			MaxSceneSeconds:       defaultMaxSceneSeconds,
		},
		Ticker: Ticker{
			Height:        defaultTickerHeight,
			FontSize:      defaultTickerFontSize,
			Speed:         defaultTickerSpeed,
			StripMultiple: defaultTickerStripMultiple,
		},
		Captions: Captions{
			FontSize: defaultCaptionFontSize,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
