// Package analyze measures finished frames: luminance statistics and a
// small palette of the colors that dominate them.
package analyze

import (
	"image"

	"gonum.org/v1/gonum/stat"
)

// FrameStats summarizes the luminance of a frame.
type FrameStats struct {
	Width, Height int
	// Mean and StdDev are in [0,1].
	Mean, StdDev float64
	// Uniform reports that every pixel has the same color.
	Uniform bool
}

// Stats returns the luminance statistics of img.
func Stats(img *image.RGBA) FrameStats {
	b := img.Bounds()
	st := FrameStats{Width: b.Dx(), Height: b.Dy(), Uniform: true}
	if b.Empty() {
		return st
	}

	lum := make([]float64, 0, b.Dx()*b.Dy())
	first := img.RGBAAt(b.Min.X, b.Min.Y)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := img.RGBAAt(x, y)
			if c != first {
				st.Uniform = false
			}
			lum = append(lum, (0.2126*float64(c.R)+0.7152*float64(c.G)+0.0722*float64(c.B))/255)
		}
	}
	st.Mean, st.StdDev = stat.MeanStdDev(lum, nil)
	if len(lum) < 2 {
		st.StdDev = 0
	}
	return st
}
