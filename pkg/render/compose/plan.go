package compose

import (
	"strings"

	"github.com/Reasonofmoon/darlkom-banana/pkg/dna"
	"github.com/Reasonofmoon/darlkom-banana/pkg/errors"
	"github.com/Reasonofmoon/darlkom-banana/pkg/render"
	"github.com/Reasonofmoon/darlkom-banana/pkg/render/classify"
	"github.com/Reasonofmoon/darlkom-banana/pkg/render/postfx"
	"github.com/Reasonofmoon/darlkom-banana/pkg/render/surface"
)

// Layered mode opacities.
const (
	BaseLayerOpacity = 0.3
	TopLayerOpacity  = 0.7
)

// LabelRunes is the number of name characters drawn on a thumbnail.
const LabelRunes = 10

// materialTint is how far a hybrid accent moves toward a distinct
// material descriptor's accent.
const materialTint = 0.25

// Layer is one pattern pass of a plan.
type Layer struct {
	Kind    render.Kind
	Opacity float64
	Blend   surface.BlendMode
}

// Plan is everything a render needs, resolved from descriptors. Plans are
// pure values: equal plans with equal seeds produce equal pixels.
type Plan struct {
	Tier        render.Tier
	Layers      []Layer
	Colors      dna.Colors
	Whitespace  float64
	StrokeScale float64
	Effects     []postfx.Effect
	Label       string
}

// Kinds returns the pattern kind of every layer.
func (p Plan) Kinds() []render.Kind {
	out := make([]render.Kind, len(p.Layers))
	for i, l := range p.Layers {
		out[i] = l.Kind
	}
	return out
}

// KindNames returns the name of every layer's kind.
func (p Plan) KindNames() []string {
	out := make([]string, len(p.Layers))
	for i, l := range p.Layers {
		out[i] = l.Kind.String()
	}
	return out
}

// Layered reports whether the plan composites more than one pattern.
func (p Plan) Layered() bool {
	return len(p.Layers) > 1
}

// Roles assigns descriptors to hybrid roles. Any role may be nil.
type Roles struct {
	Structure *dna.Descriptor
	Palette   *dna.Descriptor
	Material  *dna.Descriptor
}

// Count returns the number of populated roles.
func (r Roles) Count() int {
	n := 0
	for _, d := range []*dna.Descriptor{r.Structure, r.Palette, r.Material} {
		if d != nil {
			n++
		}
	}
	return n
}

// resolved returns the roles with every empty slot filled by the first
// populated role in structure, palette, material order.
func (r Roles) resolved() Roles {
	first := firstOf(r.Structure, r.Palette, r.Material)
	return Roles{
		Structure: firstOf(r.Structure, first),
		Palette:   firstOf(r.Palette, first),
		Material:  firstOf(r.Material, first),
	}
}

// present returns the populated roles in priority order.
func (r Roles) present() []*dna.Descriptor {
	var out []*dna.Descriptor
	for _, d := range []*dna.Descriptor{r.Structure, r.Palette, r.Material} {
		if d != nil {
			out = append(out, d)
		}
	}
	return out
}

func firstOf(ds ...*dna.Descriptor) *dna.Descriptor {
	for _, d := range ds {
		if d != nil {
			return d
		}
	}
	return nil
}

// PlanSingle resolves a full-fidelity render of one descriptor.
func PlanSingle(d dna.Descriptor) Plan {
	return Plan{
		Tier:        render.TierFull,
		Layers:      []Layer{{Kind: classify.Classify(d), Opacity: 1, Blend: surface.BlendNormal}},
		Colors:      d.Colors(),
		Whitespace:  d.WhitespaceRatio(),
		StrokeScale: StrokeScale(d.Emotion),
		Effects:     postfx.Select(d.Material.Texture),
	}
}

// PlanThumbnail resolves a thumbnail: thumbnail steps, a name label and no
// post-processing.
func PlanThumbnail(d dna.Descriptor) Plan {
	p := PlanSingle(d)
	p.Tier = render.TierThumbnail
	p.Effects = nil
	p.Label = truncateRunes(d.Name, LabelRunes)
	return p
}

// PlanHybrid resolves a hybrid render. One or three roles mix structure,
// palette and material from their descriptors; exactly two roles composite
// both descriptors' patterns as layers. No roles is INVALID_HYBRID.
func PlanHybrid(r Roles) (Plan, error) {
	switch r.Count() {
	case 0:
		return Plan{}, errors.New(errors.ErrCodeInvalidHybrid, "hybrid render needs at least one role")
	case 2:
		return planLayered(r), nil
	}
	return planMixed(r), nil
}

func planMixed(r Roles) Plan {
	rr := r.resolved()
	structure, palette, material := *rr.Structure, *rr.Palette, *rr.Material

	colors := palette.Colors()
	if material.ID != palette.ID {
		colors.Accent = dna.Mix(colors.Accent, material.Colors().Accent, materialTint)
	}

	return Plan{
		Tier:        render.TierFull,
		Layers:      []Layer{{Kind: classify.Classify(structure), Opacity: 1, Blend: surface.BlendNormal}},
		Colors:      colors,
		Whitespace:  structure.WhitespaceRatio(),
		StrokeScale: StrokeScale(material.Emotion),
		Effects:     postfx.Select(material.Material.Texture),
	}
}

func planLayered(r Roles) Plan {
	rr := r.resolved()
	ps := r.present()
	a, b := *ps[0], *ps[1]

	return Plan{
		Tier: render.TierFull,
		Layers: []Layer{
			{Kind: classify.Classify(a), Opacity: BaseLayerOpacity, Blend: surface.BlendNormal},
			{Kind: classify.Classify(b), Opacity: TopLayerOpacity, Blend: surface.BlendScreen},
		},
		Colors:      rr.Palette.Colors(),
		Whitespace:  rr.Structure.WhitespaceRatio(),
		StrokeScale: StrokeScale(rr.Material.Emotion),
		Effects:     []postfx.Effect{postfx.EffectScanlines},
	}
}

var (
	energeticHints = []string{"fast", "energetic", "bold", "dynamic", "intense"}
	calmHints      = []string{"slow", "calm", "minimal", "quiet", "serene"}
)

// StrokeScale maps emotional hints to a stroke width multiplier:
// energetic tempos and moods thicken strokes, calm ones thin them.
func StrokeScale(e dna.Emotion) float64 {
	text := strings.ToLower(e.Tempo + " " + e.Weight + " " + strings.Join(e.Mood, " "))
	for _, h := range energeticHints {
		if strings.Contains(text, h) {
			return 1.5
		}
	}
	for _, h := range calmHints {
		if strings.Contains(text, h) {
			return 0.75
		}
	}
	return 1
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
