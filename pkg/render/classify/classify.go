// Package classify resolves a pattern kind from a design DNA descriptor.
//
// Two signal resolvers exist because library entries come in two schemas.
// [Structured] reads composition, material and line attributes and is used
// whenever a descriptor carries a real composition keyword. [Keyword] scans
// the free-text report against a bilingual keyword table and serves the
// flat legacy entries. [ResolverFor] picks between them.
//
// Classification is total: every descriptor maps to some kind, and
// [render.KindAbstract] is returned when nothing matches.
package classify

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"

	"github.com/Reasonofmoon/darlkom-banana/pkg/dna"
	"github.com/Reasonofmoon/darlkom-banana/pkg/render"
)

// Resolver maps a descriptor to a kind. ok is false when the resolver
// found no signal.
type Resolver interface {
	Resolve(d dna.Descriptor) (kind render.Kind, ok bool)
}

var (
	// Structured is the attribute-based resolver.
	Structured Resolver = structuredResolver{}

	// Keyword is the report-text resolver.
	Keyword Resolver = keywordResolver{}
)

// ResolverFor returns the resolver appropriate to d's schema.
func ResolverFor(d dna.Descriptor) Resolver {
	if d.HasStructure() {
		return Structured
	}
	return Keyword
}

// Classify returns the pattern kind for d.
func Classify(d dna.Descriptor) render.Kind {
	if k, ok := ResolverFor(d).Resolve(d); ok {
		return k
	}
	return render.KindAbstract
}

// normalize prepares text for keyword matching: NFC so composed and
// decomposed Hangul compare equal, then Unicode case folding.
func normalize(s string) string {
	return cases.Fold().String(norm.NFC.String(s))
}

func containsAny(s string, terms ...string) bool {
	for _, t := range terms {
		if strings.Contains(s, t) {
			return true
		}
	}
	return false
}
