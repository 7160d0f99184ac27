package preview

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/sync/errgroup"

	"newsreel/internal/assetcache"
	"newsreel/internal/captions"
	"newsreel/internal/compose"
	"newsreel/internal/logging"
	"newsreel/internal/ticker"
)

const DefaultWorkers = 4

// Options tune preview rendering. Zero values select package defaults.
type Options struct {
	CaptionFontSize float64
}

// Renderer rasterizes preview frames from a composition document. It is
// immutable after New, so frames can render in parallel.
type Renderer struct {
	doc    *compose.Document
	cache  *assetcache.Cache
	strip  *ticker.Strip
	tiles  map[string]*image.RGBA
	logger *slog.Logger
}

// New prepares a preview renderer. The ticker strip is optional; caption word
// tiles are rasterized once up front so FrameAt stays read-only.
func New(doc *compose.Document, cache *assetcache.Cache, strip *ticker.Strip, logger *slog.Logger, opts Options) (*Renderer, error) {
	if cache == nil {
		cache = assetcache.New()
	}
	r := &Renderer{
		doc:    doc,
		cache:  cache,
		strip:  strip,
		tiles:  make(map[string]*image.RGBA),
		logger: logging.NewComponentLogger(logger, "preview"),
	}

	var wordRenderer *captions.Renderer
	for _, layer := range doc.Layers {
		if layer.Kind != compose.KindCaption || layer.Text == "" {
			continue
		}
		if _, ok := r.tiles[layer.Text]; ok {
			continue
		}
		if wordRenderer == nil {
			var err error
			wordRenderer, err = captions.NewRenderer(opts.CaptionFontSize)
			if err != nil {
				return nil, err
			}
			defer wordRenderer.Close()
		}
		r.tiles[layer.Text] = wordRenderer.RenderWord(layer.Text)
	}
	return r, nil
}

// FrameAt composites the frame visible at time t: active layers drawn in
// stack order over the document's frame geometry.
func (r *Renderer) FrameAt(t float64) (*image.RGBA, error) {
	frame := image.NewRGBA(image.Rect(0, 0, r.doc.Width, r.doc.Height))

	for _, layer := range r.doc.Layers {
		if t < layer.Start || t >= layer.Start+layer.Duration {
			continue
		}
		switch layer.Kind {
		case compose.KindBackground:
			draw.Draw(frame, frame.Bounds(), image.NewUniform(color.RGBA{A: 255}), image.Point{}, draw.Src)
		case compose.KindVisual:
			if err := r.drawVisual(frame, layer); err != nil {
				r.logger.Warn("visual layer skipped in preview",
					slog.String("source", layer.Source),
					logging.Error(err))
			}
		case compose.KindTicker:
			r.drawTicker(frame, layer, t)
		case compose.KindCaption:
			if tile, ok := r.tiles[layer.Text]; ok {
				captions.Compose(frame, tile, layer.Position.Y)
			}
		}
	}
	return frame, nil
}

// drawVisual scales the asset to fill the frame width and centers it
// vertically above the ticker band.
func (r *Renderer) drawVisual(frame *image.RGBA, layer compose.Layer) error {
	asset, err := r.cache.Get(layer.Source)
	if err != nil {
		return err
	}

	srcBounds := asset.Bounds()
	if srcBounds.Dx() == 0 || srcBounds.Dy() == 0 {
		return fmt.Errorf("asset %s has empty bounds", layer.Source)
	}
	width := r.doc.Width
	height := srcBounds.Dy() * width / srcBounds.Dx()
	y := (r.doc.Height - height) / 2
	dst := image.Rect(0, y, width, y+height)
	xdraw.ApproxBiLinear.Scale(frame, dst, asset, srcBounds, draw.Over, nil)
	return nil
}

func (r *Renderer) drawTicker(frame *image.RGBA, layer compose.Layer, t float64) {
	if r.strip == nil {
		return
	}
	window := r.strip.FrameAt(t, r.doc.Width)
	offset := image.Pt(layer.Position.X, layer.Position.Y)
	draw.Draw(frame, window.Bounds().Add(offset), window, window.Bounds().Min, draw.Over)
}

// RenderSequence writes PNG frames at the given rate into dir, named
// frame_00000.png onward. Frames render concurrently; the shared asset cache
// keeps each visual decoded once.
func (r *Renderer) RenderSequence(ctx context.Context, dir string, fps float64, workers int) (int, error) {
	if fps <= 0 {
		return 0, fmt.Errorf("fps must be positive, got %v", fps)
	}
	if workers <= 0 {
		workers = DefaultWorkers
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return 0, fmt.Errorf("create preview dir: %w", err)
	}

	total := int(r.doc.Duration * fps)
	if total < 1 {
		total = 1
	}

	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(workers)
	for i := 0; i < total; i++ {
		i := i
		group.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			frame, err := r.FrameAt(float64(i) / fps)
			if err != nil {
				return err
			}
			return writePNG(filepath.Join(dir, fmt.Sprintf("frame_%05d.png", i)), frame)
		})
	}
	if err := group.Wait(); err != nil {
		return 0, err
	}
	r.logger.Info("preview sequence rendered",
		slog.Int("frames", total),
		slog.String("dir", dir))
	return total, nil
}

func writePNG(path string, frame image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create frame: %w", err)
	}
	if err := png.Encode(f, frame); err != nil {
		f.Close()
		return fmt.Errorf("encode frame: %w", err)
	}
	return f.Close()
}
