package pattern

import (
	"math"

	"github.com/aquilax/go-perlin"

	"github.com/Reasonofmoon/darlkom-banana/pkg/render/postfx"
	"github.com/Reasonofmoon/darlkom-banana/pkg/render/surface"
)

// drawGrid strokes evenly spaced lines in the accent color at low opacity.
// Lines sit on pixel centers so a one-unit stroke covers whole pixels.
func drawGrid(c *surface.Canvas, p Params) error {
	step := gridStep(p.Tier)
	c.SetColor(p.Colors.Accent)
	c.SetAlpha(0.2)
	c.SetLineWidth(p.StrokeScale)
	for x := 0.0; x < p.Width; x += step {
		c.Line(x+0.5, 0, x+0.5, p.Height)
	}
	for y := 0.0; y < p.Height; y += step {
		c.Line(0, y+0.5, p.Width, y+0.5)
	}
	return c.Stroke()
}

// drawDots fills a lattice of small accent circles.
func drawDots(c *surface.Canvas, p Params) error {
	step := dotStep(p.Tier)
	r := 1.5 * p.StrokeScale
	c.SetColor(p.Colors.Accent)
	for y := step / 2; y < p.Height; y += step {
		for x := step / 2; x < p.Width; x += step {
			c.Circle(x, y, r)
		}
	}
	return c.Fill()
}

// neonCurves is the number of bezier strokes in the neon program.
const neonCurves = 5

// drawNeon strokes random beziers alternating secondary and accent, each
// with a blurred halo.
func drawNeon(c *surface.Canvas, p Params) error {
	w, h := p.Width, p.Height
	c.SetLineWidth(2 * p.StrokeScale)
	for i := range neonCurves {
		pts := [8]float64{
			0, p.Rand.Float64() * h,
			p.Rand.Float64() * w, p.Rand.Float64() * h,
			p.Rand.Float64() * w, p.Rand.Float64() * h,
			w, p.Rand.Float64() * h,
		}
		col := p.Colors.Secondary
		if i%2 == 1 {
			col = p.Colors.Accent
		}
		c.SetColor(col)
		err := c.Glow(glowSigma(p.Tier), func(g *surface.Canvas) error {
			g.MoveTo(pts[0], pts[1])
			g.CubicTo(pts[2], pts[3], pts[4], pts[5], pts[6], pts[7])
			return g.Stroke()
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// drawNoise perturbs the already rendered frame with grain whose
// amplitude scales with the opacity.
func drawNoise(c *surface.Canvas, p Params) error {
	amp := max(int(math.Round(postfx.GrainAmplitude*p.Opacity)), 1)
	postfx.Grain(c, amp, p.Rand)
	return nil
}

const (
	organicCurves = 5
	organicStep   = 20
)

// drawOrganic strokes curves whose height follows coherent noise along x,
// then adds low-opacity accent blobs.
func drawOrganic(c *surface.Canvas, p Params) error {
	w, h := p.Width, p.Height
	noise := perlin.NewPerlin(2, 2, 3, p.Rand.Int64())

	c.SetColor(p.Colors.Secondary)
	c.SetLineWidth(2 * p.StrokeScale)
	for i := range organicCurves {
		var pts []point
		for x := 0.0; ; x += organicStep {
			x = math.Min(x, w)
			n := (noise.Noise2D(x*0.005, float64(i)*0.1) + 1) / 2
			n = math.Min(math.Max(n, 0), 1)
			pts = append(pts, point{x, h*0.2 + n*h*0.6})
			if x >= w {
				break
			}
		}
		smoothPath(c, pts)
	}
	if err := c.Stroke(); err != nil {
		return err
	}

	r := 0.22 * math.Min(w, h)
	c.SetColor(p.Colors.Accent)
	c.SetAlpha(0.2)
	c.Circle(w*0.8, h*0.2, r)
	c.Circle(w*0.25, h*0.75, r*0.5)
	return c.Fill()
}

type point struct{ x, y float64 }

// smoothPath adds a Catmull-Rom spline through pts as cubic segments.
func smoothPath(c *surface.Canvas, pts []point) {
	if len(pts) == 0 {
		return
	}
	c.MoveTo(pts[0].x, pts[0].y)
	for i := 0; i+1 < len(pts); i++ {
		p0 := pts[max(i-1, 0)]
		p1, p2 := pts[i], pts[i+1]
		p3 := pts[min(i+2, len(pts)-1)]
		c.CubicTo(
			p1.x+(p2.x-p0.x)/6, p1.y+(p2.y-p0.y)/6,
			p2.x-(p3.x-p1.x)/6, p2.y-(p3.y-p1.y)/6,
			p2.x, p2.y,
		)
	}
}

const marbleStrokes = 7

// drawMarble strokes wavy horizontal veins, each phase shifted.
func drawMarble(c *surface.Canvas, p Params) error {
	w, h := p.Width, p.Height
	amp := h / (marbleStrokes + 1) * 0.6
	freq := 2 * math.Pi / math.Max(w*0.6, 1)
	phase0 := p.Rand.Float64() * 2 * math.Pi
	step := math.Max(w/120, 2)

	c.SetLineWidth(1.5 * p.StrokeScale)
	c.SetAlpha(0.6)
	for i := range marbleStrokes {
		base := h * float64(i+1) / (marbleStrokes + 1)
		phase := phase0 + float64(i)*math.Pi/3
		col := p.Colors.Secondary
		if i%3 == 2 {
			col = p.Colors.Accent
		}
		c.SetColor(col)
		for x := 0.0; ; x += step {
			x = math.Min(x, w)
			y := base + amp*math.Sin(x*freq+phase) + amp/3*math.Sin(x*freq*2.3+phase*1.7)
			if x == 0 {
				c.MoveTo(x, y)
			} else {
				c.LineTo(x, y)
			}
			if x >= w {
				break
			}
		}
		if err := c.Stroke(); err != nil {
			return err
		}
	}
	return nil
}

const centralSteps = 10

// drawCentral strokes a rectangle and a short arc rotated about the center
// in ten steps of pi/5, with a halo.
func drawCentral(c *surface.Canvas, p Params) error {
	w, h := p.Width, p.Height
	r := 0.3 * math.Min(w, h)
	c.SetColor(p.Colors.Accent)
	c.SetLineWidth(2 * p.StrokeScale)
	return c.Glow(glowSigma(p.Tier), func(g *surface.Canvas) error {
		g.Push()
		defer g.Pop()
		g.Translate(w/2, h/2)
		for range centralSteps {
			g.Rotate(math.Pi / 5)
			g.Rect(-w*0.2, -h*0.2, w*0.4, h*0.4)
			g.MoveTo(r, 0)
			g.Arc(0, 0, r, 0, math.Pi/10)
		}
		return g.Stroke()
	})
}

// drawAbstract fills a faint centered circle and strokes an inset border
// whose margin grows with whitespace. It always draws something visible.
func drawAbstract(c *surface.Canvas, p Params) error {
	w, h := p.Width, p.Height
	c.SetColor(p.Colors.Secondary)
	c.SetAlpha(0.1)
	c.Circle(w/2, h/2, w/4)
	if err := c.Fill(); err != nil {
		return err
	}

	inset := (0.05 + 0.1*p.Whitespace) * math.Min(w, h)
	c.SetColor(p.Colors.Accent)
	c.SetAlpha(1)
	c.SetLineWidth(2 * p.StrokeScale)
	c.Rect(inset, inset, w-2*inset, h-2*inset)
	return c.Stroke()
}
