package ticker

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"newsreel/internal/quotes"
)

// Strip geometry and palette defaults. The strip repeats one quote cycle an
// exact integer number of times so the scroll can wrap with no visible seam.
const (
	DefaultHeight        = 60
	DefaultFontSize      = 22.0
	DefaultSpeed         = 120.0
	DefaultStripMultiple = 18

	itemPadding      = 28
	separatorWidth   = 2
	separatorMarginY = 14
)

var (
	backgroundColor = color.RGBA{A: 255}
	symbolColor     = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	priceColor      = color.RGBA{R: 229, G: 231, B: 235, A: 255}
	gainColor       = color.RGBA{R: 34, G: 197, B: 94, A: 255}
	lossColor       = color.RGBA{R: 239, G: 68, B: 68, A: 255}
	separatorColor  = color.RGBA{R: 75, G: 85, B: 99, A: 255}
)

// Strip is a pre-rendered scroll band. Width is always an exact multiple of
// CycleWidth, which makes the modulo scroll in FrameAt seamless.
type Strip struct {
	Image      *image.RGBA
	CycleWidth int
	Speed      float64
}

// Options control strip rendering. Zero values select the defaults above.
type Options struct {
	Height        int
	FontSize      float64
	Speed         float64
	StripMultiple int
}

func (o Options) withDefaults() Options {
	if o.Height <= 0 {
		o.Height = DefaultHeight
	}
	if o.FontSize <= 0 {
		o.FontSize = DefaultFontSize
	}
	if o.Speed <= 0 {
		o.Speed = DefaultSpeed
	}
	if o.StripMultiple <= 0 {
		o.StripMultiple = DefaultStripMultiple
	}
	return o
}

// Render builds the full scroll strip for a quote feed. viewportWidth is the
// on-screen window the strip scrolls through; the strip is tiled to at least
// Options.StripMultiple viewports so a full pass outlasts any plausible video.
func Render(feed []quotes.Quote, viewportWidth int, opts Options) (*Strip, error) {
	if len(feed) == 0 {
		return nil, quotes.ErrNoQuotes
	}
	if viewportWidth <= 0 {
		return nil, fmt.Errorf("ticker viewport width must be positive, got %d", viewportWidth)
	}
	opts = opts.withDefaults()

	face, err := newFace(opts.FontSize)
	if err != nil {
		return nil, err
	}
	defer face.Close()

	cycle, err := renderCycle(feed, face, opts.Height)
	if err != nil {
		return nil, err
	}
	cycleWidth := cycle.Bounds().Dx()

	repeats := (opts.StripMultiple*viewportWidth + cycleWidth - 1) / cycleWidth
	if repeats < 1 {
		repeats = 1
	}
	strip := image.NewRGBA(image.Rect(0, 0, cycleWidth*repeats, opts.Height))
	for i := 0; i < repeats; i++ {
		offset := image.Pt(i*cycleWidth, 0)
		draw.Draw(strip, cycle.Bounds().Add(offset), cycle, cycle.Bounds().Min, draw.Src)
	}

	return &Strip{Image: strip, CycleWidth: cycleWidth, Speed: opts.Speed}, nil
}

// PassSeconds is the time one full strip traversal takes at the strip's
// scroll speed. FrameAt(t) equals FrameAt(t + PassSeconds()·k) for integer k.
func (s *Strip) PassSeconds() float64 {
	return float64(s.Image.Bounds().Dx()) / s.Speed
}

func newFace(size float64) (font.Face, error) {
	parsed, err := opentype.Parse(gobold.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse ticker font: %w", err)
	}
	face, err := opentype.NewFace(parsed, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("build ticker face: %w", err)
	}
	return face, nil
}

// renderCycle draws one full pass over the feed: every quote exactly once,
// each followed by a separator bar. Ending on a separator keeps the tiling
// joint indistinguishable from an interior item boundary.
func renderCycle(feed []quotes.Quote, face font.Face, height int) (*image.RGBA, error) {
	width := 0
	for _, quote := range feed {
		width += itemWidth(quote, face)
	}
	if width <= 0 {
		return nil, fmt.Errorf("quote cycle rendered to zero width")
	}

	cycle := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(cycle, cycle.Bounds(), image.NewUniform(backgroundColor), image.Point{}, draw.Src)

	metrics := face.Metrics()
	baseline := (height + metrics.Ascent.Ceil() - metrics.Descent.Ceil()) / 2

	x := 0
	for _, quote := range feed {
		x = drawItem(cycle, quote, face, x, baseline, height)
	}
	return cycle, nil
}

func itemWidth(quote quotes.Quote, face font.Face) int {
	w := itemPadding
	w += font.MeasureString(face, quote.Symbol).Ceil() + itemPadding/2
	w += font.MeasureString(face, quote.PriceText()).Ceil() + itemPadding/2
	w += font.MeasureString(face, quote.ChangeText()).Ceil() + itemPadding
	w += separatorWidth
	return w
}

func drawItem(dst *image.RGBA, quote quotes.Quote, face font.Face, x, baseline, height int) int {
	changeColor := gainColor
	if !quote.Up() {
		changeColor = lossColor
	}

	x += itemPadding
	x = drawString(dst, face, quote.Symbol, symbolColor, x, baseline) + itemPadding/2
	x = drawString(dst, face, quote.PriceText(), priceColor, x, baseline) + itemPadding/2
	x = drawString(dst, face, quote.ChangeText(), changeColor, x, baseline) + itemPadding

	bar := image.Rect(x, separatorMarginY, x+separatorWidth, height-separatorMarginY)
	draw.Draw(dst, bar, image.NewUniform(separatorColor), image.Point{}, draw.Src)
	return x + separatorWidth
}

func drawString(dst *image.RGBA, face font.Face, s string, c color.Color, x, baseline int) int {
	drawer := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(c),
		Face: face,
		Dot:  fixed.P(x, baseline),
	}
	drawer.DrawString(s)
	return drawer.Dot.X.Ceil()
}
