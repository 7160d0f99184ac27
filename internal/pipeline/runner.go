package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"

	"newsreel/internal/captions"
	"newsreel/internal/compose"
	"newsreel/internal/config"
	"newsreel/internal/fileutil"
	"newsreel/internal/logging"
	"newsreel/internal/quotes"
	"newsreel/internal/runs"
	"newsreel/internal/scenes"
	"newsreel/internal/textutil"
	"newsreel/internal/ticker"
	"newsreel/internal/timeline"
	"newsreel/internal/transcript"
	"newsreel/internal/visuals"
)

// Stage names recorded on the run while each step executes.
const (
	StageSync    = "synchronizer"
	StagePlan    = "planner"
	StageCompose = "compositor"
)

// Request describes one end-to-end composition. PlanPath is optional: without
// a narration plan the transcript is scene-segmented instead of synchronized.
// QuotesPath and AssetsPath are optional; absent inputs drop their layers.
type Request struct {
	Title      string
	WordsPath  string
	PlanPath   string
	QuotesPath string
	AssetsPath string
	OutputDir  string
}

// Result reports the artifacts a completed run produced.
type Result struct {
	RunID        string
	TimelinePath string
	StripPath    string
	Document     *compose.Document
}

// Runner drives the full pipeline and records progress in the run store. One
// runner instance serializes composition work through a workspace lock.
type Runner struct {
	cfg    *config.Config
	store  *runs.Store
	logger *slog.Logger
}

func NewRunner(cfg *config.Config, store *runs.Store, logger *slog.Logger) (*Runner, error) {
	if cfg == nil || store == nil {
		return nil, errors.New("runner requires config and run store")
	}
	return &Runner{
		cfg:    cfg,
		store:  store,
		logger: logging.NewComponentLogger(logger, "pipeline"),
	}, nil
}

// Compose runs the whole pipeline for one request. Failures are recorded on
// the run before being returned.
func (r *Runner) Compose(ctx context.Context, req Request) (*Result, error) {
	if err := r.cfg.EnsureDirectories(); err != nil {
		return nil, Wrap(ErrConfiguration, "", "ensure directories", "", err)
	}

	lock := flock.New(filepath.Join(r.cfg.Paths.WorkspaceDir, "newsreel.lock"))
	ok, err := lock.TryLock()
	if err != nil {
		return nil, Wrap(ErrTransient, "", "acquire workspace lock", "", err)
	}
	if !ok {
		return nil, Wrap(ErrTransient, "", "acquire workspace lock", "another composition is already running", nil)
	}
	defer func() {
		if unlockErr := lock.Unlock(); unlockErr != nil {
			r.logger.Warn("failed to release workspace lock", logging.Error(unlockErr))
		}
	}()

	run, err := r.store.Create(ctx, req.Title, req.WordsPath, req.PlanPath)
	if err != nil {
		return nil, Wrap(ErrTransient, "", "record run", "", err)
	}
	runLogger := r.logger.With(slog.String(logging.FieldRunID, run.ID))
	runLogger.Info("composition started", slog.String("title", req.Title))

	result, err := r.compose(ctx, run.ID, runLogger, req)
	if err != nil {
		if failErr := r.store.SetFailure(ctx, run.ID, err.Error()); failErr != nil {
			runLogger.Warn("failed to record run failure", logging.Error(failErr))
		}
		runLogger.Error("composition failed",
			slog.Bool("recoverable", Recoverable(err)),
			logging.Error(err))
		return nil, err
	}

	if err := r.store.SetTimelinePath(ctx, run.ID, result.TimelinePath); err != nil {
		runLogger.Warn("failed to record timeline path", logging.Error(err))
	}
	if err := r.store.SetStatus(ctx, run.ID, runs.StatusCompleted, ""); err != nil {
		runLogger.Warn("failed to mark run completed", logging.Error(err))
	}
	result.RunID = run.ID
	runLogger.Info("composition completed", slog.String("timeline", result.TimelinePath))
	return result, nil
}

func (r *Runner) compose(ctx context.Context, runID string, logger *slog.Logger, req Request) (*Result, error) {
	setStage := func(status runs.Status, stage string) error {
		if err := r.store.SetStatus(ctx, runID, status, stage); err != nil {
			return Wrap(ErrTransient, stage, "record stage", "", err)
		}
		return nil
	}

	// Sync stage: transcript in, timed intervals out.
	if err := setStage(runs.StatusSyncing, StageSync); err != nil {
		return nil, err
	}
	words, err := transcript.Load(req.WordsPath)
	if err != nil {
		return nil, Wrap(classifyInput(err), StageSync, "load transcript", req.WordsPath, err)
	}

	var (
		synced     []timeline.SyncedSegment
		sceneList  []scenes.Scene
		spanCount  int
		planTitle  string
		duration   = words.Duration()
		syncLogger = logger.With(slog.String(logging.FieldStage, StageSync))
	)
	if req.PlanPath != "" {
		plan, err := timeline.LoadPlan(req.PlanPath)
		if err != nil {
			return nil, Wrap(classifyInput(err), StageSync, "load narration plan", req.PlanPath, err)
		}
		planTitle = plan.Title
		synchronizer := timeline.NewSynchronizer(syncLogger, timeline.Options{
			AnchorTokens:         r.cfg.Timeline.AnchorTokens,
			FallbackAdvanceWords: r.cfg.Timeline.FallbackAdvanceWords,
			MinSegmentSeconds:    r.cfg.Timeline.MinSegmentSeconds,
		})
		synced, err = synchronizer.Sync(plan.Segments, words.Words)
		if err != nil {
			return nil, Wrap(ErrValidation, StageSync, "synchronize segments", "", err)
		}
		spanCount = len(synced)
	} else {
		sceneList, err = scenes.Segment(words.Words, scenes.Options{
			PauseThresholdSeconds: r.cfg.Scenes.PauseThresholdSeconds,
			MaxSceneSeconds:       r.cfg.Scenes.MaxSceneSeconds,
		})
		if err != nil {
			return nil, Wrap(ErrValidation, StageSync, "segment scenes", "", err)
		}
		spanCount = len(sceneList)
	}

	// Plan stage: visuals and the ticker strip.
	if err := setStage(runs.StatusPlanning, StagePlan); err != nil {
		return nil, err
	}
	manifest, err := visuals.LoadManifest(req.AssetsPath)
	if err != nil {
		return nil, Wrap(ErrValidation, StagePlan, "load asset manifest", req.AssetsPath, err)
	}
	manifest = manifest.Resolve(r.cfg.Paths.AssetDir)
	assigner := visuals.NewAssigner(manifest.Assets, nil, logger)
	assignments := assigner.Assign(spanCount)

	title := req.Title
	if title == "" {
		title = planTitle
	}
	outDir := req.OutputDir
	if outDir == "" {
		dirName := textutil.Slugify(title)
		if dirName == "" {
			dirName = runID
		}
		outDir = filepath.Join(r.cfg.Paths.OutputDir, dirName)
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, Wrap(ErrConfiguration, StagePlan, "create output dir", outDir, err)
	}

	var (
		strip      *ticker.Strip
		stripPath  string
		tickerSpec *compose.TickerSpec
	)
	if req.QuotesPath != "" {
		feed, err := quotes.Load(req.QuotesPath)
		if err != nil {
			return nil, Wrap(classifyInput(err), StagePlan, "load quote feed", req.QuotesPath, err)
		}
		strip, err = ticker.Render(feed, r.cfg.Video.Width, ticker.Options{
			Height:        r.cfg.Ticker.Height,
			FontSize:      r.cfg.Ticker.FontSize,
			Speed:         r.cfg.Ticker.Speed,
			StripMultiple: r.cfg.Ticker.StripMultiple,
		})
		if err != nil {
			return nil, Wrap(ErrValidation, StagePlan, "render ticker strip", "", err)
		}
		stripPath = filepath.Join(outDir, "ticker_strip.png")
		if err := fileutil.WritePNG(stripPath, strip.Image); err != nil {
			return nil, Wrap(ErrTransient, StagePlan, "write ticker strip", stripPath, err)
		}
		tickerSpec = &compose.TickerSpec{
			StripPath:  stripPath,
			StripWidth: strip.Image.Bounds().Dx(),
			CycleWidth: strip.CycleWidth,
			Height:     strip.Image.Bounds().Dy(),
			Speed:      strip.Speed,
		}
	}

	// Compose stage: the layer document.
	if err := setStage(runs.StatusComposing, StageCompose); err != nil {
		return nil, err
	}
	compositor := compose.New(logger, compose.Options{
		Width:           r.cfg.Video.Width,
		Height:          r.cfg.Video.Height,
		MinLayerSeconds: r.cfg.Timeline.MinSegmentSeconds,
	})
	doc, err := compositor.Build(compose.Input{
		Title:       title,
		Duration:    duration,
		Segments:    synced,
		Scenes:      sceneList,
		Assignments: assignments,
		Captions:    captions.Build(words.Words),
		Ticker:      tickerSpec,
		Background:  r.cfg.Video.Background,
	})
	if err != nil {
		return nil, Wrap(ErrValidation, StageCompose, "build composition", "", err)
	}

	timelinePath := filepath.Join(outDir, "timeline.json")
	if err := fileutil.WriteJSON(timelinePath, doc); err != nil {
		return nil, Wrap(ErrTransient, StageCompose, "write timeline", timelinePath, err)
	}

	return &Result{
		TimelinePath: timelinePath,
		StripPath:    stripPath,
		Document:     doc,
	}, nil
}

func classifyInput(err error) error {
	if errors.Is(err, os.ErrNotExist) {
		return ErrNotFound
	}
	return ErrValidation
}

