// Package postfx implements the full-frame transforms applied after a
// pattern is drawn.
//
// Effects are chosen from a descriptor's texture tags by [Select]. Both
// are safe to apply repeatedly, though every application re-randomizes or
// re-draws, so output is not idempotent.
package postfx

import (
	"image/color"
	"math/rand/v2"
	"strings"

	"github.com/Reasonofmoon/darlkom-banana/pkg/render/surface"
)

// Effect is a full-frame transform.
type Effect uint8

const (
	EffectGrain Effect = iota
	EffectScanlines
)

func (e Effect) String() string {
	if e == EffectScanlines {
		return "scanlines"
	}
	return "grain"
}

const (
	// GrainAmplitude bounds the per-pixel grain offset.
	GrainAmplitude = 20

	// ScanlinePeriod is the vertical distance between scanlines in
	// logical units.
	ScanlinePeriod = 4

	scanlineAlpha = 50.0 / 255
)

// Select returns the effects named by texture tags, grain first.
// "grain" or "paper" selects grain; "glitch" or "digital" selects scanlines.
func Select(textures []string) []Effect {
	var grain, scan bool
	for _, t := range textures {
		t = strings.ToLower(t)
		grain = grain || strings.Contains(t, "grain") || strings.Contains(t, "paper")
		scan = scan || strings.Contains(t, "glitch") || strings.Contains(t, "digital")
	}
	var out []Effect
	if grain {
		out = append(out, EffectGrain)
	}
	if scan {
		out = append(out, EffectScanlines)
	}
	return out
}

// Apply runs effects in order.
func Apply(c *surface.Canvas, effects []Effect, rng *rand.Rand) error {
	for _, e := range effects {
		switch e {
		case EffectGrain:
			Grain(c, GrainAmplitude, rng)
		case EffectScanlines:
			if err := Scanlines(c); err != nil {
				return err
			}
		}
	}
	return nil
}

// Grain adds one random offset in [-amplitude, amplitude] to the color
// channels of every pixel, clamped to the valid range. Fully transparent
// pixels are left alone.
func Grain(c *surface.Canvas, amplitude int, rng *rand.Rand) {
	pix, _, _ := c.Pixels()
	if len(pix) == 0 || amplitude <= 0 {
		return
	}
	span := 2*amplitude + 1
	for i := 0; i+3 < len(pix); i += 4 {
		if pix[i+3] == 0 {
			continue
		}
		off := rng.IntN(span) - amplitude
		// Channels are stored unpremultiplied, independent of alpha.
		pix[i] = clampChannel(int(pix[i]) + off)
		pix[i+1] = clampChannel(int(pix[i+1]) + off)
		pix[i+2] = clampChannel(int(pix[i+2]) + off)
	}
}

// Scanlines darkens a one-unit band every ScanlinePeriod units down the
// frame.
func Scanlines(c *surface.Canvas) error {
	if c.Empty() {
		return nil
	}
	w, h := c.Width(), c.Height()
	c.SetColor(color.NRGBA{A: 0xff})
	c.SetAlpha(scanlineAlpha)
	defer c.SetAlpha(1)
	for y := 0.0; y < h; y += ScanlinePeriod {
		c.Rect(0, y, w, 1)
	}
	return c.Fill()
}

func clampChannel(v int) uint8 {
	return uint8(min(max(v, 0), 0xff))
}
