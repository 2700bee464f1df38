package classify

import (
	"strings"

	"github.com/Reasonofmoon/darlkom-banana/pkg/dna"
	"github.com/Reasonofmoon/darlkom-banana/pkg/render"
)

type keywordRule struct {
	kind  render.Kind
	terms []string
}

// keywordRules are matched against case-folded report text in order.
// Grid outranks every later rule in the same text.
var keywordRules = []keywordRule{
	{render.KindGrid, []string{"grid", "그리드", "blueprint", "블루프린트"}},
	{render.KindNeon, []string{"neon", "네온"}},
	{render.KindDots, []string{"dot", "도트"}},
	{render.KindNoise, []string{"noise", "grain", "lofi", "lo-fi", "노이즈"}},
	{render.KindMarble, []string{"marble", "ink", "마블", "잉크"}},
}

type keywordResolver struct{}

func (keywordResolver) Resolve(d dna.Descriptor) (render.Kind, bool) {
	text := normalize(signalText(d))
	if text == "" {
		return render.KindAbstract, false
	}
	for _, r := range keywordRules {
		if containsAny(text, r.terms...) {
			return r.kind, true
		}
	}
	return render.KindAbstract, false
}

// signalText is the report, or for entries without one the name, prompt
// and tone keywords.
func signalText(d dna.Descriptor) string {
	if strings.TrimSpace(d.Report) != "" {
		return d.Report
	}
	parts := append([]string{d.Name, d.Prompt}, d.Tone...)
	return strings.Join(parts, "\n")
}
