// Package surface adapts a raster backend into the drawing target the
// renderer uses.
//
// A [Surface] is a caller-owned pixel buffer with a logical size and a
// device pixel ratio. Each render acquires a fresh [Canvas] from it with
// [Surface.Prepare]; the canvas backing store is sized to the logical size
// times the ratio and carries a matching scale transform, so drawing code
// works in logical units. Nothing about a previous canvas carries over, so
// repeated preparation never compounds the scale.
//
// A render publishes its pixels with [Canvas.Commit]. [Canvas.Release]
// must run on every exit path; releasing an uncommitted canvas discards it,
// which is how failed renders leave the surface untouched:
//
//	c, err := s.Prepare(w, h)
//	if err != nil {
//	    return err
//	}
//	defer c.Release()
//	// ... draw ...
//	c.Commit()
//
// A Surface is not safe for concurrent use. Callers serialize renders per
// surface; distinct surfaces share no state.
package surface

import (
	"image"
	"math"

	"github.com/Reasonofmoon/darlkom-banana/pkg/errors"
)

// Surface is a caller-owned render target.
type Surface struct {
	width, height int
	ratio         float64

	frame  *image.RGBA
	active *Canvas
	closed bool
}

// New returns a surface of the given logical size. A ratio at or below
// zero is treated as 1. Negative dimensions are treated as zero.
func New(width, height int, ratio float64) *Surface {
	if ratio <= 0 || math.IsNaN(ratio) || math.IsInf(ratio, 0) {
		ratio = 1
	}
	return &Surface{width: max(width, 0), height: max(height, 0), ratio: ratio}
}

// Size returns the logical size.
func (s *Surface) Size() (width, height int) {
	return s.width, s.height
}

// Ratio returns the device pixel ratio.
func (s *Surface) Ratio() float64 {
	return s.ratio
}

// DeviceSize returns the backing pixel dimensions for a logical size.
func (s *Surface) DeviceSize(width, height int) (int, int) {
	return deviceDim(width, s.ratio), deviceDim(height, s.ratio)
}

// Frame returns the last committed frame in device pixels, or nil if no
// render has completed.
func (s *Surface) Frame() *image.RGBA {
	if s == nil {
		return nil
	}
	return s.frame
}

// Ready reports whether the surface can accept a render.
func (s *Surface) Ready() bool {
	return s != nil && !s.closed
}

// Prepare releases any canvas still open on the surface and returns a new
// one of the given logical size. The surface adopts that size.
func (s *Surface) Prepare(width, height int) (*Canvas, error) {
	if !s.Ready() {
		return nil, errors.New(errors.ErrCodeInvalidTarget, "surface is missing or closed")
	}
	if s.active != nil {
		s.active.Release()
	}
	s.width, s.height = max(width, 0), max(height, 0)

	c := newCanvas(s, s.width, s.height, s.ratio)
	s.active = c
	return c, nil
}

// Close releases any open canvas. Later calls to Prepare fail with
// INVALID_TARGET. The committed frame stays readable.
func (s *Surface) Close() error {
	if s == nil {
		return nil
	}
	if s.active != nil {
		s.active.Release()
	}
	s.closed = true
	return nil
}

// Fit returns the largest logical size with the given aspect ratio
// (width over height) that fits within the bounds. A non-positive aspect
// returns the bounds unchanged.
func Fit(boundsW, boundsH int, aspect float64) (int, int) {
	if aspect <= 0 || boundsW <= 0 || boundsH <= 0 {
		return max(boundsW, 0), max(boundsH, 0)
	}
	w, h := float64(boundsW), float64(boundsW)/aspect
	if h > float64(boundsH) {
		h = float64(boundsH)
		w = h * aspect
	}
	return int(math.Floor(w)), int(math.Floor(h))
}

func deviceDim(logical int, ratio float64) int {
	if logical <= 0 {
		return 0
	}
	return int(math.Ceil(float64(logical) * ratio))
}
