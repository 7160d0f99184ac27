package ticker

import (
	"image"
	"image/draw"
	"math"
)

// FrameAt returns the viewport-wide window of the strip visible at time t,
// scrolling right to left. The offset is floor(speed·t) modulo the strip
// width, so the scroll is exactly periodic with period PassSeconds and each
// frame costs one viewport of pixel copies regardless of t.
func (s *Strip) FrameAt(t float64, viewportWidth int) *image.RGBA {
	stripWidth := s.Image.Bounds().Dx()
	height := s.Image.Bounds().Dy()
	frame := image.NewRGBA(image.Rect(0, 0, viewportWidth, height))

	offset := int(math.Floor(s.Speed*t)) % stripWidth
	if offset < 0 {
		offset += stripWidth
	}

	first := stripWidth - offset
	if first > viewportWidth {
		first = viewportWidth
	}
	draw.Draw(frame, image.Rect(0, 0, first, height), s.Image, image.Pt(offset, 0), draw.Src)

	// Wrap: the remainder of the viewport reads from the strip's head. The
	// strip width is a multiple of the cycle width, so the joint lands on an
	// item boundary.
	for x := first; x < viewportWidth; {
		run := viewportWidth - x
		if run > stripWidth {
			run = stripWidth
		}
		draw.Draw(frame, image.Rect(x, 0, x+run, height), s.Image, image.Pt(0, 0), draw.Src)
		x += run
	}
	return frame
}
