package cli

import (
	"strings"
	"testing"

	"github.com/Reasonofmoon/darlkom-banana/pkg/dna"
)

func TestClassifyRow(t *testing.T) {
	tests := []struct {
		name string
		d    dna.Descriptor
		want []string
	}{
		{
			"structured grid with grain",
			dna.Descriptor{
				ID:       "DNA_001",
				Name:     "Blueprint",
				Layout:   dna.Layout{Composition: "modular_grid"},
				Material: dna.Material{Texture: []string{"paper grain"}},
				Emotion:  dna.Emotion{Tempo: "fast"},
			},
			[]string{"DNA_001", "Blueprint", "grid", "structured", "grain", "1.5x"},
		},
		{
			"keyword fallback",
			dna.Descriptor{ID: "DNA_002", Name: "네온 거리", Material: dna.Material{Texture: []string{"glitch"}}},
			[]string{"DNA_002", "네온 거리", "neon", "keyword", "scanlines", "1x"},
		},
		{
			"nothing matches",
			dna.Descriptor{ID: "x"},
			[]string{"x", "", "abstract", "keyword", "-", "1x"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classifyRow(tt.d)
			if strings.Join(got, "|") != strings.Join(tt.want, "|") {
				t.Errorf("classifyRow = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestClassifyAndListCommands(t *testing.T) {
	c, lib := newTestCLI(t)
	for _, args := range [][]string{
		{"classify", "-l", lib},
		{"classify", "DNA_003", "-l", lib},
		{"list", "-l", lib, "--role", "structure"},
		{"list", "-l", lib, "--roles"},
	} {
		if err := execute(t, c, args...); err != nil {
			t.Errorf("%v: %v", args, err)
		}
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 10); got != "short" {
		t.Errorf("truncate = %q", got)
	}
	if got := truncate("블루프린트 그리드 포스터", 5); got != "블루프린…" {
		t.Errorf("truncate = %q", got)
	}
}
