// Package pattern is the library of procedural drawing programs, one per
// [render.Kind].
//
// Programs are looked up in a table indexed by kind, so adding a kind
// without a program is caught by the tests rather than at render time.
// Every program draws in logical units on the canvas it is given, keeps no
// state between calls, and draws nothing when either dimension is zero.
package pattern

import (
	"math/rand/v2"

	"github.com/Reasonofmoon/darlkom-banana/pkg/dna"
	"github.com/Reasonofmoon/darlkom-banana/pkg/render"
	"github.com/Reasonofmoon/darlkom-banana/pkg/render/surface"
)

// Params is the input to a program.
type Params struct {
	Width, Height float64
	Colors        dna.Colors
	Tier          render.Tier

	// StrokeScale multiplies stroke widths. Zero means 1.
	StrokeScale float64

	// Whitespace is the layout whitespace ratio in [0,1].
	Whitespace float64

	// Rand drives the randomized programs. Nil means unseeded.
	Rand *rand.Rand

	// Opacity scales frame transforms applied outside a layer. Zero
	// means 1.
	Opacity float64
}

// Program draws one pattern.
type Program func(c *surface.Canvas, p Params) error

var programs = [render.KindCount]Program{
	render.KindAbstract: drawAbstract,
	render.KindGrid:     drawGrid,
	render.KindDots:     drawDots,
	render.KindNeon:     drawNeon,
	render.KindNoise:    drawNoise,
	render.KindOrganic:  drawOrganic,
	render.KindMarble:   drawMarble,
	render.KindCentral:  drawCentral,
}

// For returns the program for k. Unknown kinds get the abstract program.
func For(k render.Kind) Program {
	if !k.Valid() {
		return programs[render.KindAbstract]
	}
	return programs[k]
}

// FrameTransform reports whether k perturbs the pixels already on the
// canvas instead of drawing shapes. Such kinds leave a transparent layer
// unchanged, so compositors run them on the frame itself.
func FrameTransform(k render.Kind) bool {
	return k == render.KindNoise
}

// Draw runs the program for k after normalizing p.
func Draw(c *surface.Canvas, k render.Kind, p Params) error {
	if c == nil || c.Empty() || p.Width <= 0 || p.Height <= 0 {
		return nil
	}
	if p.StrokeScale <= 0 {
		p.StrokeScale = 1
	}
	if p.Rand == nil {
		p.Rand = render.NewRand(0)
	}
	p.Whitespace = min(max(p.Whitespace, 0), 1)
	if p.Opacity <= 0 {
		p.Opacity = 1
	}
	p.Opacity = min(p.Opacity, 1)

	c.ClearPath()
	c.SetAlpha(1)
	defer c.SetAlpha(1)
	return For(k)(c, p)
}

// gridStep is the grid line spacing for a tier.
func gridStep(t render.Tier) float64 {
	if t == render.TierThumbnail {
		return 20
	}
	return 40
}

// dotStep is the dot lattice spacing for a tier.
func dotStep(t render.Tier) float64 {
	if t == render.TierThumbnail {
		return 12
	}
	return 24
}

// glowSigma is the blur radius of glowing strokes for a tier.
func glowSigma(t render.Tier) float64 {
	if t == render.TierThumbnail {
		return 2
	}
	return 6
}
