package surface

import (
	"github.com/disintegration/imaging"
	"github.com/gogpu/gg"
)

// Glow runs draw twice: once into an offscreen target that is Gaussian
// blurred by sigma logical units and screen-composited as a halo, then
// directly onto the canvas for the crisp core. draw must be repeatable,
// so any randomness belongs outside it.
func (c *Canvas) Glow(sigma float64, draw func(*Canvas) error) error {
	if c.dc == nil {
		return nil
	}
	if sigma > 0 {
		if err := c.halo(sigma, draw); err != nil {
			return err
		}
	}
	return draw(c)
}

func (c *Canvas) halo(sigma float64, draw func(*Canvas) error) error {
	off := gg.NewContext(c.dc.Width(), c.dc.Height())
	defer off.Close()
	off.SetTransform(c.dc.GetTransform())

	scratch := &Canvas{
		dc:        off,
		width:     c.width,
		height:    c.height,
		ratio:     c.ratio,
		color:     c.color,
		alpha:     c.alpha,
		lineWidth: c.lineWidth,
	}
	scratch.applyPaint()
	if err := draw(scratch); err != nil {
		return err
	}

	blurred := imaging.Blur(off.Image(), sigma*c.ratio)

	c.dc.Push()
	c.dc.Identity()
	c.dc.DrawImageEx(gg.ImageBufFromImage(blurred), gg.DrawImageOptions{
		Interpolation: gg.InterpNearest,
		Opacity:       1,
		BlendMode:     gg.BlendScreen,
	})
	c.dc.Pop()
	c.applyPaint()
	return nil
}
