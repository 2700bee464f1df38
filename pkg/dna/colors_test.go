package dna

import (
	"image/color"
	"testing"
)

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want color.NRGBA
		ok   bool
	}{
		{"#111", color.NRGBA{0x11, 0x11, 0x11, 0xff}, true},
		{"#ff0000", color.NRGBA{0xff, 0, 0, 0xff}, true},
		{"#FF000080", color.NRGBA{0xff, 0, 0, 0x80}, true},
		{"#f008", color.NRGBA{0xff, 0, 0, 0x88}, true},
		{"rgb(0, 255, 0)", color.NRGBA{0, 0xff, 0, 0xff}, true},
		{"rgba(0,0,255,0.5)", color.NRGBA{0, 0, 0xff, 0x80}, true},
		{"rgb(100%, 0%, 0%)", color.NRGBA{0xff, 0, 0, 0xff}, true},
		{"rgb(0 0 0 / 50%)", color.NRGBA{0, 0, 0, 0x80}, true},
		{"hsl(120, 100%, 50%)", color.NRGBA{0, 0xff, 0, 0xff}, true},
		{"hsla(0deg, 100%, 50%, 1)", color.NRGBA{0xff, 0, 0, 0xff}, true},
		{"  Navy ", color.NRGBA{0, 0, 0x80, 0xff}, true},
		{"transparent", color.NRGBA{}, true},
		{"", color.NRGBA{}, false},
		{"#12", color.NRGBA{}, false},
		{"#gggggg", color.NRGBA{}, false},
		{"rgb(1,2)", color.NRGBA{}, false},
		{"not-a-color", color.NRGBA{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseColor(tt.in)
			if ok != tt.ok {
				t.Fatalf("ParseColor(%q) ok = %v, want %v", tt.in, ok, tt.ok)
			}
			if ok && got != tt.want {
				t.Errorf("ParseColor(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestResolvePaletteDefaults(t *testing.T) {
	got := ResolvePalette(Palette{Primary: "#00ff00", Accent: "bogus"})
	want := Colors{
		Primary:   color.NRGBA{0, 0xff, 0, 0xff},
		Secondary: defaultSecondary,
		Accent:    defaultAccent,
	}
	if got != want {
		t.Errorf("ResolvePalette = %+v, want %+v", got, want)
	}

	if ResolvePalette(Palette{}) != DefaultColors() {
		t.Error("empty palette should resolve to the defaults")
	}
}

func TestMix(t *testing.T) {
	red := color.NRGBA{0xff, 0, 0, 0xff}
	blue := color.NRGBA{0, 0, 0xff, 0xff}

	if got := Mix(red, blue, 0); got != red {
		t.Errorf("Mix(t=0) = %v, want %v", got, red)
	}
	if got := Mix(red, blue, 1); got != blue {
		t.Errorf("Mix(t=1) = %v, want %v", got, blue)
	}
	if got := Mix(red, blue, 7); got != blue {
		t.Errorf("Mix(t>1) should clamp, got %v", got)
	}
	mid := Mix(red, blue, 0.5)
	if mid == red || mid == blue {
		t.Errorf("Mix(t=0.5) = %v, want a blend", mid)
	}
	if got := Mix(red, red, 0.5); got != red {
		t.Errorf("Mix of equal colors = %v, want %v", got, red)
	}
}

func TestLuminanceOrdering(t *testing.T) {
	black := color.NRGBA{0, 0, 0, 0xff}
	white := color.NRGBA{0xff, 0xff, 0xff, 0xff}
	if Luminance(black) >= Luminance(white) {
		t.Error("black should be darker than white")
	}
}
