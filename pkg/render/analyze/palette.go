package analyze

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"slices"

	"github.com/cenkalti/dominantcolor"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/clusters"
	"github.com/muesli/kmeans"
)

// Method selects the palette extraction algorithm.
type Method int

const (
	MethodDominant Method = iota
	MethodKMeans
)

func (m Method) String() string {
	if m == MethodKMeans {
		return "kmeans"
	}
	return "dominant"
}

// ParseMethod returns the method with the given name.
func ParseMethod(s string) (Method, error) {
	switch s {
	case "", "dominant", "dominantcolor":
		return MethodDominant, nil
	case "kmeans":
		return MethodKMeans, nil
	}
	return MethodDominant, fmt.Errorf("unknown palette method %q", s)
}

// maxSamples caps the pixels fed to k-means.
const maxSamples = 12000

type candidate struct {
	col    colorful.Color
	weight float64
}

// Palette returns up to k colors that dominate img, chosen to be distinct
// from one another and sorted darkest first. A failed k-means run falls
// back to the dominant-color method.
func Palette(img image.Image, k int, m Method) []color.NRGBA {
	if k <= 0 || img.Bounds().Empty() {
		return nil
	}
	var cols []colorful.Color
	if m == MethodKMeans {
		cols = kmeansPalette(img, k)
	}
	if len(cols) == 0 {
		cols = dominantPalette(img, k)
	}
	sortByLuminance(cols)

	out := make([]color.NRGBA, len(cols))
	for i, c := range cols {
		r, g, b := c.Clamped().RGB255()
		out[i] = color.NRGBA{r, g, b, 0xff}
	}
	return out
}

func dominantPalette(img image.Image, k int) []colorful.Color {
	found := dominantcolor.FindWeight(img, max(24, k*8))
	cands := make([]candidate, 0, len(found))
	for _, f := range found {
		col, _ := colorful.MakeColor(f.RGBA)
		cands = append(cands, candidate{col: col, weight: f.Weight})
	}
	return selectDiverse(cands, k)
}

func kmeansPalette(img image.Image, k int) []colorful.Color {
	b := img.Bounds()
	n := b.Dx() * b.Dy()
	step := 1
	if n > maxSamples {
		step = int(math.Sqrt(float64(n)/maxSamples)) + 1
	}

	obs := make(clusters.Observations, 0, min(n, maxSamples))
	for y := b.Min.Y; y < b.Max.Y; y += step {
		for x := b.Min.X; x < b.Max.X; x += step {
			r, g, bl, a := img.At(x, y).RGBA()
			if a == 0 {
				continue
			}
			obs = append(obs, clusters.Coordinates{
				float64(r) / 0xffff,
				float64(g) / 0xffff,
				float64(bl) / 0xffff,
			})
		}
	}
	if len(obs) == 0 {
		return nil
	}

	parts, err := kmeans.New().Partition(obs, min(max(k*4, k+2), len(obs)))
	if err != nil {
		return nil
	}
	cands := make([]candidate, 0, len(parts))
	for _, p := range parts {
		if len(p.Center) < 3 || len(p.Observations) == 0 {
			continue
		}
		cands = append(cands, candidate{
			col:    colorful.Color{R: p.Center[0], G: p.Center[1], B: p.Center[2]},
			weight: float64(len(p.Observations)),
		})
	}
	return selectDiverse(cands, k)
}

// selectDiverse greedily picks k candidates, starting from the heaviest
// and then preferring colors far in Lab from those already picked, with
// weight as a tiebreaker.
func selectDiverse(cands []candidate, k int) []colorful.Color {
	if len(cands) == 0 {
		return nil
	}
	k = min(k, len(cands))

	labs := make([][3]float64, len(cands))
	maxW := 0.0
	for i := range cands {
		cands[i].col = cands[i].col.Clamped()
		cands[i].weight = math.Max(cands[i].weight, 1e-6)
		l, a, b := cands[i].col.Lab()
		labs[i] = [3]float64{l, a, b}
		maxW = math.Max(maxW, cands[i].weight)
	}

	picked := []int{0}
	for i := range cands {
		if cands[i].weight > cands[picked[0]].weight {
			picked[0] = i
		}
	}
	used := make([]bool, len(cands))
	used[picked[0]] = true

	for len(picked) < k {
		best, bestScore := -1, -1.0
		for i := range cands {
			if used[i] {
				continue
			}
			nearest := math.MaxFloat64
			for _, j := range picked {
				nearest = math.Min(nearest, labDist(labs[i], labs[j]))
			}
			score := nearest * (0.55 + 0.45*math.Sqrt(cands[i].weight/maxW))
			if score > bestScore {
				best, bestScore = i, score
			}
		}
		if best < 0 {
			break
		}
		used[best] = true
		picked = append(picked, best)
	}

	out := make([]colorful.Color, len(picked))
	for i, j := range picked {
		out[i] = cands[j].col
	}
	return out
}

func labDist(a, b [3]float64) float64 {
	d0, d1, d2 := a[0]-b[0], a[1]-b[1], a[2]-b[2]
	return math.Sqrt(d0*d0 + d1*d1 + d2*d2)
}

func sortByLuminance(cols []colorful.Color) {
	slices.SortStableFunc(cols, func(a, b colorful.Color) int {
		ya, yb := luminance(a), luminance(b)
		switch {
		case ya < yb:
			return -1
		case ya > yb:
			return 1
		}
		return 0
	})
}

func luminance(c colorful.Color) float64 {
	r, g, b := c.LinearRgb()
	return 0.2126*r + 0.7152*g + 0.0722*b
}
