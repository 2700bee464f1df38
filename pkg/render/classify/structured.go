package classify

import (
	"github.com/Reasonofmoon/darlkom-banana/pkg/dna"
	"github.com/Reasonofmoon/darlkom-banana/pkg/render"
)

// attrs is the normalized attribute view the structured rules test.
type attrs struct {
	composition string
	base        string
	line        string
}

type structuredRule struct {
	kind  render.Kind
	match func(a attrs) bool
}

// structuredRules are evaluated in order; the first match wins.
// Composition keywords take priority over material and line hints.
var structuredRules = []structuredRule{
	{render.KindGrid, func(a attrs) bool { return containsAny(a.composition, "grid") }},
	{render.KindCentral, func(a attrs) bool { return containsAny(a.composition, "central") }},
	{render.KindOrganic, func(a attrs) bool { return containsAny(a.composition, "flow", "organic") }},
	{render.KindDots, func(a attrs) bool { return containsAny(a.composition, "dot") }},
	{render.KindNeon, func(a attrs) bool { return containsAny(a.base, "neon", "glass") }},
	{render.KindMarble, func(a attrs) bool { return containsAny(a.base+" "+a.line, "marble", "ink") }},
}

type structuredResolver struct{}

func (structuredResolver) Resolve(d dna.Descriptor) (render.Kind, bool) {
	a := attrs{
		composition: normalize(d.Layout.Composition),
		base:        normalize(d.Material.Base),
		line:        normalize(d.Line.Style),
	}
	for _, r := range structuredRules {
		if r.match(a) {
			return r.kind, true
		}
	}
	return render.KindAbstract, false
}
