package compose

import (
	"fmt"
	"log/slog"
	"sort"

	"newsreel/internal/captions"
	"newsreel/internal/logging"
	"newsreel/internal/scenes"
	"newsreel/internal/timeline"
	"newsreel/internal/visuals"
)

// Layer kinds and their fixed stacking order, bottom to top. Captions sit on
// top so they stay legible over any other content.
const (
	KindBackground = "background"
	KindVisual     = "visual"
	KindTicker     = "ticker"
	KindCaption    = "caption"

	zBackground = 0
	zVisual     = 1
	zTicker     = 2
	zCaption    = 3
)

const (
	DefaultWidth           = 1080
	DefaultHeight          = 1920
	DefaultMinLayerSeconds = 0.1
)

// Position is a layer's top-left anchor in frame coordinates.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Layer is one entry in the composition stack handed to the external
// renderer. Source is an asset path for visuals, a generated-element name
// otherwise. Timing is the compatibility surface; it must be bit-exact
// against the inputs.
type Layer struct {
	ZOrder   int      `json:"z_order"`
	Kind     string   `json:"kind"`
	Start    float64  `json:"start"`
	Duration float64  `json:"duration"`
	Position Position `json:"position"`
	Source   string   `json:"source"`
	Effect   string   `json:"effect,omitempty"`
	Text     string   `json:"text,omitempty"`
}

// TickerSpec carries the scroll geometry the renderer needs to window the
// pre-rendered strip at any query time.
type TickerSpec struct {
	StripPath  string  `json:"strip_path"`
	StripWidth int     `json:"strip_width"`
	CycleWidth int     `json:"cycle_width"`
	Height     int     `json:"height"`
	Speed      float64 `json:"speed"`
}

// Document is the compositor's complete output: the ordered layer stack plus
// the resolved timing entities it was built from.
type Document struct {
	Title    string                   `json:"title,omitempty"`
	Width    int                      `json:"width"`
	Height   int                      `json:"height"`
	Duration float64                  `json:"duration"`
	Layers   []Layer                  `json:"layers"`
	Segments []timeline.SyncedSegment `json:"segments,omitempty"`
	Scenes   []scenes.Scene           `json:"scenes,omitempty"`
	Ticker   *TickerSpec              `json:"ticker,omitempty"`
}

// Input gathers everything the compositor merges. Exactly one of Segments or
// Scenes drives the visual layers; Captions and Ticker are optional.
type Input struct {
	Title       string
	Duration    float64
	Segments    []timeline.SyncedSegment
	Scenes      []scenes.Scene
	Assignments []visuals.Assignment
	Captions    []captions.Caption
	Ticker      *TickerSpec
	Background  string
}

// Options tune frame geometry and the degenerate-duration clamp. Zero values
// select the defaults.
type Options struct {
	Width           int
	Height          int
	MinLayerSeconds float64
}

func (o Options) withDefaults() Options {
	if o.Width <= 0 {
		o.Width = DefaultWidth
	}
	if o.Height <= 0 {
		o.Height = DefaultHeight
	}
	if o.MinLayerSeconds <= 0 {
		o.MinLayerSeconds = DefaultMinLayerSeconds
	}
	return o
}

// Compositor merges background, visual, ticker, and caption layers into one
// ordered stack. It owns no pixels; rendering is external.
type Compositor struct {
	opts   Options
	logger *slog.Logger
}

func New(logger *slog.Logger, opts Options) *Compositor {
	return &Compositor{
		opts:   opts.withDefaults(),
		logger: logging.NewComponentLogger(logger, "compositor"),
	}
}

// Build assembles the full document. Degraded inputs degrade the output
// (skipped visual layers, clamped durations) instead of failing the run; the
// result always covers [0, Duration).
func (c *Compositor) Build(input Input) (*Document, error) {
	if input.Duration <= 0 {
		return nil, fmt.Errorf("composition duration must be positive, got %v", input.Duration)
	}

	doc := &Document{
		Title:    input.Title,
		Width:    c.opts.Width,
		Height:   c.opts.Height,
		Duration: input.Duration,
		Segments: input.Segments,
		Scenes:   input.Scenes,
		Ticker:   input.Ticker,
	}

	background := input.Background
	if background == "" {
		background = "solid_black"
	}
	doc.Layers = append(doc.Layers, Layer{
		ZOrder:   zBackground,
		Kind:     KindBackground,
		Start:    0,
		Duration: input.Duration,
		Source:   background,
	})

	doc.Layers = append(doc.Layers, c.visualLayers(input)...)

	if input.Ticker != nil {
		doc.Layers = append(doc.Layers, Layer{
			ZOrder:   zTicker,
			Kind:     KindTicker,
			Start:    0,
			Duration: input.Duration,
			Position: Position{X: 0, Y: c.opts.Height - input.Ticker.Height},
			Source:   "ticker_strip",
		})
	}

	for _, caption := range input.Captions {
		doc.Layers = append(doc.Layers, Layer{
			ZOrder:   zCaption,
			Kind:     KindCaption,
			Start:    caption.Start,
			Duration: c.clampDuration(caption.End-caption.Start, caption.Text),
			Position: Position{X: c.opts.Width / 2, Y: c.opts.Height * 3 / 4},
			Source:   "caption",
			Text:     caption.Text,
		})
	}

	sort.SliceStable(doc.Layers, func(i, j int) bool {
		if doc.Layers[i].ZOrder != doc.Layers[j].ZOrder {
			return doc.Layers[i].ZOrder < doc.Layers[j].ZOrder
		}
		return doc.Layers[i].Start < doc.Layers[j].Start
	})
	return doc, nil
}

// visualLayers emits one layer per segment or scene. A missing asset drops
// only the visual layer; the interval keeps its timing and its caption and
// ticker coverage.
func (c *Compositor) visualLayers(input Input) []Layer {
	type interval struct {
		start, end float64
		label      string
	}
	var intervals []interval
	for _, segment := range input.Segments {
		intervals = append(intervals, interval{segment.Start, segment.End, fmt.Sprintf("segment_%d", segment.ID)})
	}
	if len(intervals) == 0 {
		for _, scene := range input.Scenes {
			intervals = append(intervals, interval{scene.Start, scene.End, fmt.Sprintf("scene_%d", scene.Number)})
		}
	}

	layers := make([]Layer, 0, len(intervals))
	for i, iv := range intervals {
		if i >= len(input.Assignments) {
			break
		}
		assignment := input.Assignments[i]
		if assignment.Missing {
			c.logger.Warn("skipping visual layer, asset unavailable",
				slog.String("interval", iv.label),
				slog.String("asset_id", assignment.Asset.ID),
				logging.Alert("missing_asset"))
			continue
		}
		layers = append(layers, Layer{
			ZOrder:   zVisual,
			Kind:     KindVisual,
			Start:    iv.start,
			Duration: c.clampDuration(iv.end-iv.start, iv.label),
			Source:   assignment.Asset.FilePath,
			Effect:   assignment.Effect,
		})
	}
	return layers
}

func (c *Compositor) clampDuration(duration float64, label string) float64 {
	if duration >= c.opts.MinLayerSeconds {
		return duration
	}
	c.logger.Warn("clamping degenerate layer duration",
		slog.String("layer", label),
		slog.Float64("duration", duration),
		slog.Float64("min", c.opts.MinLayerSeconds),
		logging.Alert("degenerate_duration"))
	return c.opts.MinLayerSeconds
}
