package dna

import (
	"image/color"
	"math"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"
)

// Default palette entries used for any missing or unparsable slot.
const (
	DefaultPrimary   = "#111111"
	DefaultSecondary = "#ffffff"
	DefaultAccent    = "#ff0000"
)

var (
	defaultPrimary   = color.NRGBA{0x11, 0x11, 0x11, 0xff}
	defaultSecondary = color.NRGBA{0xff, 0xff, 0xff, 0xff}
	defaultAccent    = color.NRGBA{0xff, 0x00, 0x00, 0xff}
)

// Colors is a fully resolved palette. Every slot is a usable color.
type Colors struct {
	Primary   color.NRGBA
	Secondary color.NRGBA
	Accent    color.NRGBA
}

// DefaultColors returns the fallback palette.
func DefaultColors() Colors {
	return Colors{Primary: defaultPrimary, Secondary: defaultSecondary, Accent: defaultAccent}
}

// ResolvePalette parses each slot of p, falling back per slot.
func ResolvePalette(p Palette) Colors {
	return Colors{
		Primary:   ResolveColor(p.Primary, defaultPrimary),
		Secondary: ResolveColor(p.Secondary, defaultSecondary),
		Accent:    ResolveColor(p.Accent, defaultAccent),
	}
}

// ResolveColor parses s and returns fallback when s is empty or invalid.
func ResolveColor(s string, fallback color.NRGBA) color.NRGBA {
	if c, ok := ParseColor(s); ok {
		return c
	}
	return fallback
}

// ParseColor parses a CSS color: #rgb, #rgba, #rrggbb, #rrggbbaa, rgb(),
// rgba(), hsl(), hsla() or a named color.
func ParseColor(s string) (color.NRGBA, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch {
	case s == "":
		return color.NRGBA{}, false
	case strings.HasPrefix(s, "#"):
		return parseHex(s)
	case strings.HasPrefix(s, "rgb"):
		return parseRGBFunc(s)
	case strings.HasPrefix(s, "hsl"):
		return parseHSLFunc(s)
	}
	if s == "transparent" {
		return color.NRGBA{}, true
	}
	if c, ok := colornames.Map[s]; ok {
		return color.NRGBA{c.R, c.G, c.B, c.A}, true
	}
	return color.NRGBA{}, false
}

func parseHex(s string) (color.NRGBA, bool) {
	body := s[1:]
	alpha := uint8(0xff)
	switch len(body) {
	case 4:
		a, err := strconv.ParseUint(strings.Repeat(body[3:], 2), 16, 8)
		if err != nil {
			return color.NRGBA{}, false
		}
		alpha, body = uint8(a), body[:3]
	case 8:
		a, err := strconv.ParseUint(body[6:], 16, 8)
		if err != nil {
			return color.NRGBA{}, false
		}
		alpha, body = uint8(a), body[:6]
	}
	c, err := colorful.Hex("#" + body)
	if err != nil {
		return color.NRGBA{}, false
	}
	r, g, b := c.RGB255()
	return color.NRGBA{r, g, b, alpha}, true
}

// funcArgs splits "name(a, b, c / d)" into its arguments.
func funcArgs(s string) ([]string, bool) {
	open := strings.IndexByte(s, '(')
	if open < 0 || !strings.HasSuffix(s, ")") {
		return nil, false
	}
	inner := s[open+1 : len(s)-1]
	inner = strings.NewReplacer(",", " ", "/", " ").Replace(inner)
	return strings.Fields(inner), true
}

func parseRGBFunc(s string) (color.NRGBA, bool) {
	args, ok := funcArgs(s)
	if !ok || len(args) < 3 || len(args) > 4 {
		return color.NRGBA{}, false
	}
	var ch [3]uint8
	for i := range 3 {
		v, ok := parseChannel(args[i])
		if !ok {
			return color.NRGBA{}, false
		}
		ch[i] = v
	}
	a := 1.0
	if len(args) == 4 {
		if a, ok = parseAlpha(args[3]); !ok {
			return color.NRGBA{}, false
		}
	}
	return color.NRGBA{ch[0], ch[1], ch[2], uint8(math.Round(a * 255))}, true
}

func parseHSLFunc(s string) (color.NRGBA, bool) {
	args, ok := funcArgs(s)
	if !ok || len(args) < 3 || len(args) > 4 {
		return color.NRGBA{}, false
	}
	h, err := strconv.ParseFloat(strings.TrimSuffix(args[0], "deg"), 64)
	if err != nil {
		return color.NRGBA{}, false
	}
	sat, ok1 := parsePercent(args[1])
	lum, ok2 := parsePercent(args[2])
	if !ok1 || !ok2 {
		return color.NRGBA{}, false
	}
	a := 1.0
	if len(args) == 4 {
		if a, ok = parseAlpha(args[3]); !ok {
			return color.NRGBA{}, false
		}
	}
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	r, g, b := colorful.Hsl(h, sat, lum).Clamped().RGB255()
	return color.NRGBA{r, g, b, uint8(math.Round(a * 255))}, true
}

func parseChannel(s string) (uint8, bool) {
	if strings.HasSuffix(s, "%") {
		p, ok := parsePercent(s)
		return uint8(math.Round(p * 255)), ok
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return uint8(math.Round(math.Max(0, math.Min(255, v)))), true
}

func parsePercent(s string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSuffix(s, "%"), 64)
	if err != nil {
		return 0, false
	}
	return clamp01(v / 100), true
}

func parseAlpha(s string) (float64, bool) {
	if strings.HasSuffix(s, "%") {
		return parsePercent(s)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return clamp01(v), true
}

// Mix blends a toward b by t in CIE L*a*b* space. Alpha is interpolated
// linearly. t is clamped to [0,1].
func Mix(a, b color.NRGBA, t float64) color.NRGBA {
	t = clamp01(t)
	ca := colorful.Color{R: float64(a.R) / 255, G: float64(a.G) / 255, B: float64(a.B) / 255}
	cb := colorful.Color{R: float64(b.R) / 255, G: float64(b.G) / 255, B: float64(b.B) / 255}
	r, g, bl := ca.BlendLab(cb, t).Clamped().RGB255()
	alpha := float64(a.A) + (float64(b.A)-float64(a.A))*t
	return color.NRGBA{r, g, bl, uint8(math.Round(alpha))}
}

// Luminance returns the relative luminance of c in [0,1].
func Luminance(c color.NRGBA) float64 {
	cc := colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
	l, _, _ := cc.Lab()
	return clamp01(l)
}
