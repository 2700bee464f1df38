package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// ArtifactKeyOpts are the render options that change an artifact's bytes.
type ArtifactKeyOpts struct {
	Mode   string  `json:"mode"`
	Width  int     `json:"width"`
	Height int     `json:"height"`
	Ratio  float64 `json:"ratio"`
	Format string  `json:"format"`
	Seed   uint64  `json:"seed"`
}

// ArtifactKey returns the cache key for an artifact rendered from the
// descriptors whose raw JSON hashes to inputHash.
func ArtifactKey(inputHash string, opts ArtifactKeyOpts) string {
	data, _ := json.Marshal(struct {
		Input string          `json:"input"`
		Opts  ArtifactKeyOpts `json:"opts"`
	}{inputHash, opts})
	return "artifact:" + Hash(data)
}

// Hash returns the hex SHA-256 of data.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
