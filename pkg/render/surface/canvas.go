package surface

import (
	"image"
	"image/color"
	"math"

	"github.com/gogpu/gg"

	"github.com/Reasonofmoon/darlkom-banana/pkg/fonts"
)

// BlendMode selects how a layer composites onto what is beneath it.
type BlendMode uint8

const (
	BlendNormal BlendMode = iota
	BlendScreen
)

func (m BlendMode) gg() gg.BlendMode {
	if m == BlendScreen {
		return gg.BlendScreen
	}
	return gg.BlendNormal
}

// Canvas is the drawing context of one render. Coordinates are logical
// units; the backing store is scaled by the surface's pixel ratio.
//
// A canvas with a zero logical dimension is empty: it has no backing store
// and every drawing call is a no-op.
type Canvas struct {
	owner  *Surface
	dc     *gg.Context
	width  float64
	height float64
	ratio  float64

	color     color.NRGBA
	alpha     float64
	lineWidth float64
	layers    int
	released  bool
}

func newCanvas(owner *Surface, width, height int, ratio float64) *Canvas {
	c := &Canvas{
		owner:  owner,
		width:  float64(width),
		height: float64(height),
		ratio:  ratio,
		color:     color.NRGBA{A: 0xff},
		alpha:     1,
		lineWidth: 1,
	}
	dw, dh := deviceDim(width, ratio), deviceDim(height, ratio)
	if dw == 0 || dh == 0 {
		return c
	}
	c.dc = gg.NewContext(dw, dh)
	c.dc.Identity()
	c.dc.Scale(ratio, ratio)
	c.dc.Clear()
	c.applyPaint()
	return c
}

// Width returns the logical width.
func (c *Canvas) Width() float64 { return c.width }

// Height returns the logical height.
func (c *Canvas) Height() float64 { return c.height }

// Ratio returns the device pixel ratio the canvas was prepared with.
func (c *Canvas) Ratio() float64 { return c.ratio }

// Empty reports whether the canvas has no pixels to draw on.
func (c *Canvas) Empty() bool { return c.dc == nil }

// Scale returns the effective horizontal and vertical scale of the current
// transform.
func (c *Canvas) Scale() (sx, sy float64) {
	if c.dc == nil {
		return c.ratio, c.ratio
	}
	m := c.dc.GetTransform()
	return math.Hypot(m.A, m.D), math.Hypot(m.B, m.E)
}

// Clear fills the whole backing store with col, ignoring the transform
// and any global alpha.
func (c *Canvas) Clear(col color.NRGBA) {
	if c.dc == nil {
		return
	}
	c.dc.ClearWithColor(toRGBA(col, 1))
}

// SetColor sets the paint for subsequent strokes and fills.
func (c *Canvas) SetColor(col color.NRGBA) {
	c.color = col
	c.applyPaint()
}

// SetAlpha sets a global opacity multiplied into the paint, in [0,1].
func (c *Canvas) SetAlpha(a float64) {
	c.alpha = math.Max(0, math.Min(1, a))
	c.applyPaint()
}

// SetLineWidth sets the stroke width in logical units.
func (c *Canvas) SetLineWidth(w float64) {
	c.lineWidth = w
	c.applyPaint()
}

// applyPaint pushes the tracked paint and line width into the context.
// Image draws replace the context paint, so anything that draws an image
// calls this afterwards.
func (c *Canvas) applyPaint() {
	if c.dc == nil {
		return
	}
	p := toRGBA(c.color, c.alpha)
	c.dc.SetRGBA(p.R, p.G, p.B, p.A)
	c.dc.SetLineWidth(c.lineWidth)
}

// Push saves the current transform.
func (c *Canvas) Push() {
	if c.dc != nil {
		c.dc.Push()
	}
}

// Pop restores the last saved transform.
func (c *Canvas) Pop() {
	if c.dc != nil {
		c.dc.Pop()
	}
}

// Translate moves the origin.
func (c *Canvas) Translate(x, y float64) {
	if c.dc != nil {
		c.dc.Translate(x, y)
	}
}

// Rotate rotates the coordinate system by angle radians.
func (c *Canvas) Rotate(angle float64) {
	if c.dc != nil {
		c.dc.Rotate(angle)
	}
}

// MoveTo starts a new subpath.
func (c *Canvas) MoveTo(x, y float64) {
	if c.dc != nil {
		c.dc.MoveTo(x, y)
	}
}

// LineTo adds a line segment to the current path.
func (c *Canvas) LineTo(x, y float64) {
	if c.dc != nil {
		c.dc.LineTo(x, y)
	}
}

// CubicTo adds a cubic bezier segment to the current path.
func (c *Canvas) CubicTo(x1, y1, x2, y2, x, y float64) {
	if c.dc != nil {
		c.dc.CubicTo(x1, y1, x2, y2, x, y)
	}
}

// Line adds a separate line segment to the current path.
func (c *Canvas) Line(x1, y1, x2, y2 float64) {
	if c.dc != nil {
		c.dc.MoveTo(x1, y1)
		c.dc.LineTo(x2, y2)
	}
}

// Rect adds a rectangle to the current path.
func (c *Canvas) Rect(x, y, w, h float64) {
	if c.dc != nil {
		c.dc.DrawRectangle(x, y, w, h)
	}
}

// Circle adds a circle to the current path.
func (c *Canvas) Circle(x, y, r float64) {
	if c.dc != nil && r > 0 {
		c.dc.DrawCircle(x, y, r)
	}
}

// Arc adds a circular arc from angle1 to angle2 to the current path.
func (c *Canvas) Arc(x, y, r, angle1, angle2 float64) {
	if c.dc != nil && r > 0 {
		c.dc.DrawArc(x, y, r, angle1, angle2)
	}
}

// ClearPath discards the current path.
func (c *Canvas) ClearPath() {
	if c.dc != nil {
		c.dc.ClearPath()
	}
}

// Stroke strokes and clears the current path.
func (c *Canvas) Stroke() error {
	if c.dc == nil {
		return nil
	}
	return c.dc.Stroke()
}

// Fill fills and clears the current path.
func (c *Canvas) Fill() error {
	if c.dc == nil {
		return nil
	}
	return c.dc.Fill()
}

// FillRect fills a rectangle with the current paint.
func (c *Canvas) FillRect(x, y, w, h float64) error {
	if c.dc == nil || w <= 0 || h <= 0 {
		return nil
	}
	c.dc.DrawRectangle(x, y, w, h)
	return c.dc.Fill()
}

// Text draws s with its baseline at (x, y) using the label font.
func (c *Canvas) Text(s string, x, y, size float64) error {
	if c.dc == nil || s == "" {
		return nil
	}
	face, err := fonts.Face(size * c.ratio)
	if err != nil {
		return err
	}
	c.dc.SetFont(face)
	// Text is rasterized in device space; map the baseline there.
	px, py := c.dc.TransformPoint(x, y)
	c.dc.DrawString(s, px, py)
	return nil
}

// BeginLayer redirects drawing to a transparent layer that EndLayer
// composites with the given mode and opacity.
func (c *Canvas) BeginLayer(mode BlendMode, opacity float64) {
	if c.dc == nil {
		return
	}
	c.dc.PushLayer(mode.gg(), opacity)
	c.layers++
}

// EndLayer composites the innermost open layer.
func (c *Canvas) EndLayer() {
	if c.dc == nil || c.layers == 0 {
		return
	}
	c.dc.PopLayer()
	c.layers--
}

// Pixels returns the backing store of the current drawing target as
// RGBA bytes, four per pixel, row-major, along with its dimensions.
// Writes are visible to subsequent drawing.
func (c *Canvas) Pixels() (pix []uint8, width, height int) {
	if c.dc == nil {
		return nil, 0, 0
	}
	pm := c.dc.ResizeTarget()
	return pm.Data(), pm.Width(), pm.Height()
}

// Snapshot returns a copy of the current pixels.
func (c *Canvas) Snapshot() *image.RGBA {
	if c.dc == nil {
		return image.NewRGBA(image.Rect(0, 0, 0, 0))
	}
	return c.dc.ResizeTarget().ToImage()
}

// Commit closes any open layers and publishes the pixels as the surface's
// frame.
func (c *Canvas) Commit() {
	if c.released || c.owner == nil {
		return
	}
	for c.layers > 0 {
		c.EndLayer()
	}
	c.owner.frame = c.Snapshot()
}

// Release frees the backing store and detaches the canvas from its
// surface. It is safe to call more than once.
func (c *Canvas) Release() {
	if c.released {
		return
	}
	c.released = true
	if c.dc != nil {
		_ = c.dc.Close()
		c.dc = nil
	}
	if c.owner != nil && c.owner.active == c {
		c.owner.active = nil
	}
}

func toRGBA(col color.NRGBA, alpha float64) gg.RGBA {
	return gg.RGBA{
		R: float64(col.R) / 255,
		G: float64(col.G) / 255,
		B: float64(col.B) / 255,
		A: float64(col.A) / 255 * alpha,
	}
}
