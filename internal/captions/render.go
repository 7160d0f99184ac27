package captions

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

const (
	DefaultFontSize = 64.0

	textPadding = 16
)

var (
	textColor    = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	outlineColor = color.RGBA{A: 255}
)

// Renderer rasterizes caption words. Faces are stateful in the glyph cache,
// so a Renderer is not safe for concurrent use; create one per goroutine.
type Renderer struct {
	face font.Face
}

// NewRenderer loads the caption face at the given size. A zero size selects
// the default.
func NewRenderer(fontSize float64) (*Renderer, error) {
	if fontSize <= 0 {
		fontSize = DefaultFontSize
	}
	parsed, err := opentype.Parse(gobold.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse caption font: %w", err)
	}
	face, err := opentype.NewFace(parsed, &opentype.FaceOptions{
		Size:    fontSize,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("build caption face: %w", err)
	}
	return &Renderer{face: face}, nil
}

// Close releases the renderer's font face.
func (r *Renderer) Close() error {
	return r.face.Close()
}

// RenderWord rasterizes a single word onto a transparent tile sized to the
// word's ink extent plus padding. The draw origin is offset by the bounding
// box minimum so descenders (g, y, p) land inside the tile instead of being
// clipped at the bottom edge.
func (r *Renderer) RenderWord(text string) *image.RGBA {
	bounds, _ := font.BoundString(r.face, text)
	width := (bounds.Max.X - bounds.Min.X).Ceil() + 2*textPadding
	height := (bounds.Max.Y - bounds.Min.Y).Ceil() + 2*textPadding
	if width <= 2*textPadding || height <= 2*textPadding {
		return image.NewRGBA(image.Rect(0, 0, 1, 1))
	}

	tile := image.NewRGBA(image.Rect(0, 0, width, height))
	origin := fixed.Point26_6{
		X: fixed.I(textPadding) - bounds.Min.X,
		Y: fixed.I(textPadding) - bounds.Min.Y,
	}

	// Cheap outline for legibility over bright visuals: the word in the
	// outline color at one pixel offsets, then the fill on top.
	for _, offset := range []fixed.Point26_6{
		{X: fixed.I(-2)}, {X: fixed.I(2)}, {Y: fixed.I(-2)}, {Y: fixed.I(2)},
	} {
		drawer := &font.Drawer{
			Dst:  tile,
			Src:  image.NewUniform(outlineColor),
			Face: r.face,
			Dot:  origin.Add(offset),
		}
		drawer.DrawString(text)
	}
	drawer := &font.Drawer{
		Dst:  tile,
		Src:  image.NewUniform(textColor),
		Face: r.face,
		Dot:  origin,
	}
	drawer.DrawString(text)
	return tile
}

// Compose draws a rendered word tile centered horizontally at the caption
// band's vertical anchor within dst.
func Compose(dst *image.RGBA, tile *image.RGBA, anchorY int) {
	frame := dst.Bounds()
	x := frame.Min.X + (frame.Dx()-tile.Bounds().Dx())/2
	y := anchorY - tile.Bounds().Dy()/2
	draw.Draw(dst, tile.Bounds().Add(image.Pt(x, y)), tile, tile.Bounds().Min, draw.Over)
}
