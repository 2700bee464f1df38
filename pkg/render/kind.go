package render

import "fmt"

// Kind is a procedural pattern program. The zero value is [KindAbstract],
// the fallback every unclassified descriptor resolves to.
type Kind uint8

const (
	KindAbstract Kind = iota
	KindGrid
	KindDots
	KindNeon
	KindNoise
	KindOrganic
	KindMarble
	KindCentral

	// KindCount is the number of kinds. Lookup tables are sized by it.
	KindCount = iota
)

var kindNames = [KindCount]string{
	KindAbstract: "abstract",
	KindGrid:     "grid",
	KindDots:     "dots",
	KindNeon:     "neon",
	KindNoise:    "noise",
	KindOrganic:  "organic-flow",
	KindMarble:   "marble",
	KindCentral:  "central-glow",
}

// String returns the kind's name.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// Valid reports whether k is one of the defined kinds.
func (k Kind) Valid() bool {
	return int(k) < KindCount
}

// Kinds returns every kind in declaration order.
func Kinds() []Kind {
	out := make([]Kind, KindCount)
	for i := range out {
		out[i] = Kind(i)
	}
	return out
}

// ParseKind returns the kind with the given name.
func ParseKind(name string) (Kind, bool) {
	for i, n := range kindNames {
		if n == name {
			return Kind(i), true
		}
	}
	return KindAbstract, false
}

// Tier is the fidelity of a render.
type Tier uint8

const (
	TierFull Tier = iota
	TierThumbnail
)

func (t Tier) String() string {
	if t == TierThumbnail {
		return "thumbnail"
	}
	return "full"
}
