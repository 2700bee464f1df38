package render

import "math/rand/v2"

// NewRand returns the random source for one render. Seed 0 draws a fresh
// seed, so output differs per render; any other seed is reproducible.
func NewRand(seed uint64) *rand.Rand {
	if seed == 0 {
		return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}
