package cli

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/disintegration/imaging"

	"github.com/Reasonofmoon/darlkom-banana/pkg/dna"
	"github.com/Reasonofmoon/darlkom-banana/pkg/errors"
)

const testLibrary = `{
  "styles_v2": [
    {
      "module_id": "DNA_001",
      "style_name": "Blueprint Grid",
      "role_bucket": "Structure",
      "design_dna": {
        "color_palette": {"primary": "#111111", "secondary": "#ffffff", "accent": "#ff0000"},
        "layout_rules": {"composition": "modular_grid", "whitespace_ratio": 0.4},
        "materiality": {"base": "paper", "texture": ["grain"]}
      }
    },
    {
      "module_id": "DNA_002",
      "style_name": "Green Field",
      "role_bucket": "Palette",
      "design_dna": {
        "color_palette": {"primary": "#00ff00", "accent": "#004400"}
      }
    },
    {
      "module_id": "DNA_003",
      "style_name": "Organic Flow",
      "role_bucket": "Structure",
      "design_dna": {
        "layout_rules": {"composition": "organic flow"},
        "emotional_profile": {"tempo": "calm"}
      }
    }
  ],
  "styles_001_100": [
    {"id": 7, "title": "Neon Lofi", "palette": {"background": "#000000", "accents": ["#ff00ff"]}}
  ]
}`

// newTestCLI returns a CLI with isolated config and cache directories and
// a library file.
func newTestCLI(t *testing.T) (*CLI, string) {
	t.Helper()
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	lib := writeFile(t, "dna.json", testLibrary)
	return New(io.Discard, LogInfo), lib
}

func execute(t *testing.T, c *CLI, args ...string) error {
	t.Helper()
	root := c.RootCommand()
	root.SetArgs(args)
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	return root.Execute()
}

func decodeSize(t *testing.T, path string) (int, int) {
	t.Helper()
	img, err := imaging.Open(path)
	if err != nil {
		t.Fatalf("open %s: %v", path, err)
	}
	b := img.Bounds()
	return b.Dx(), b.Dy()
}

func TestParseFormats(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty keeps default", "", nil},
		{"single format", "png", []string{"png"}},
		{"multiple formats", "png,jpeg,gif", []string{"png", "jpeg", "gif"}},
		{"jpg alias and case", "JPG, Png", []string{"jpeg", "png"}},
		{"blank entries", "png,,", []string{"png"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := parseFormats(tt.input); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("parseFormats(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestDefaultName(t *testing.T) {
	if got := defaultName("render", "DNA_001"); got != "render_DNA_001" {
		t.Errorf("defaultName = %q", got)
	}
	if got := defaultName("hybrid", "a/b", "c d"); got != "hybrid_a_b-c_d" {
		t.Errorf("defaultName = %q", got)
	}
}

func TestWriteArtifacts(t *testing.T) {
	dir := t.TempDir()
	arts := map[string][]byte{"png": []byte("p"), "jpeg": []byte("j")}

	tests := []struct {
		name    string
		formats []string
		output  string
		want    []string
	}{
		{"single explicit", []string{"png"}, filepath.Join(dir, "a.png"), []string{filepath.Join(dir, "a.png")}},
		{"single fallback", []string{"jpeg"}, "", []string{filepath.Join(dir, "render_x.jpg")}},
		{"multiple from base", []string{"png", "jpeg"}, filepath.Join(dir, "sub", "b.png"),
			[]string{filepath.Join(dir, "sub", "b.png"), filepath.Join(dir, "sub", "b.jpg")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := writeArtifacts(arts, tt.formats, tt.output, filepath.Join(dir, "render_x"))
			if err != nil {
				t.Fatalf("writeArtifacts: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("paths = %v, want %v", got, tt.want)
			}
			for _, p := range got {
				if _, err := os.Stat(p); err != nil {
					t.Errorf("missing %s", p)
				}
			}
		})
	}

	if _, err := writeArtifacts(arts, []string{"gif"}, "", filepath.Join(dir, "x")); !errors.Is(err, errors.ErrCodeInternal) {
		t.Errorf("missing artifact = %v", err)
	}
	if _, err := writeArtifacts(arts, []string{"png"}, dir+"/", ""); !errors.Is(err, errors.ErrCodeInvalidPath) {
		t.Errorf("directory output = %v", err)
	}
}

func TestRenderCommand(t *testing.T) {
	c, lib := newTestCLI(t)
	out := filepath.Join(t.TempDir(), "grid.png")
	err := execute(t, c, "render", "DNA_001", "-l", lib, "-o", out,
		"--width", "40", "--height", "30", "--ratio", "2", "--seed", "3", "--swatches", "2")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if w, h := decodeSize(t, out); w != 80 || h != 60 {
		t.Errorf("size = %dx%d, want 80x60", w, h)
	}
}

func TestRenderCommandFormatFromExtension(t *testing.T) {
	c, lib := newTestCLI(t)
	out := filepath.Join(t.TempDir(), "field.jpg")
	if err := execute(t, c, "render", "DNA_002", "-l", lib, "-o", out, "--width", "32", "--height", "32", "--ratio", "1"); err != nil {
		t.Fatalf("render: %v", err)
	}
	data, _ := os.ReadFile(out)
	if !bytes.HasPrefix(data, []byte{0xff, 0xd8}) {
		t.Error("output is not a jpeg")
	}
}

func TestRenderCommandErrors(t *testing.T) {
	c, lib := newTestCLI(t)
	tests := []struct {
		name string
		args []string
		code errors.Code
	}{
		{"unknown id", []string{"render", "DNA_999", "-l", lib}, errors.ErrCodeNotFound},
		{"missing library", []string{"render", "DNA_001", "-l", lib + ".missing"}, errors.ErrCodeFileNotFound},
		{"bad format", []string{"render", "DNA_001", "-l", lib, "-f", "webp"}, errors.ErrCodeInvalidFormat},
		{"bad aspect", []string{"render", "DNA_001", "-l", lib, "--aspect", "x"}, errors.ErrCodeInvalidInput},
		{"hybrid without roles", []string{"hybrid", "-l", lib}, errors.ErrCodeInvalidHybrid},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := execute(t, c, tt.args...); !errors.Is(err, tt.code) {
				t.Errorf("err = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestThumbnailUsesThumbnailDefaults(t *testing.T) {
	c, lib := newTestCLI(t)
	out := filepath.Join(t.TempDir(), "thumb.png")
	if err := execute(t, c, "thumbnail", "DNA_003", "-l", lib, "-o", out); err != nil {
		t.Fatalf("thumbnail: %v", err)
	}
	if w, h := decodeSize(t, out); w != 160 || h != 90 {
		t.Errorf("size = %dx%d, want 160x90", w, h)
	}
}

func TestHybridCommandLayered(t *testing.T) {
	c, lib := newTestCLI(t)
	out := filepath.Join(t.TempDir(), "hybrid.png")
	err := execute(t, c, "hybrid", "-l", lib, "-o", out,
		"--structure", "DNA_003", "--palette", "DNA_002", "--width", "50", "--height", "50", "--ratio", "1")
	if err != nil {
		t.Fatalf("hybrid: %v", err)
	}
	img, err := imaging.Open(out)
	if err != nil {
		t.Fatal(err)
	}
	r, g, b, _ := img.At(1, 1).RGBA()
	if g>>8 < 0x80 || r>>8 > 0x40 || b>>8 > 0x40 {
		t.Errorf("pixel (1,1) = %d,%d,%d, want green background", r>>8, g>>8, b>>8)
	}
}

func TestConfigFileDefaults(t *testing.T) {
	c, lib := newTestCLI(t)
	cfg := writeFile(t, "config.toml", "[render]\nwidth = 24\nheight = 12\nratio = 1\n")
	out := filepath.Join(t.TempDir(), "cfg.png")
	if err := execute(t, c, "render", "DNA_001", "-l", lib, "--config", cfg, "-o", out); err != nil {
		t.Fatalf("render: %v", err)
	}
	if w, h := decodeSize(t, out); w != 24 || h != 12 {
		t.Errorf("size = %dx%d, want config 24x12", w, h)
	}

	out2 := filepath.Join(t.TempDir(), "flag.png")
	if err := execute(t, c, "render", "DNA_001", "-l", lib, "--config", cfg, "-o", out2, "--width", "30"); err != nil {
		t.Fatalf("render: %v", err)
	}
	if w, h := decodeSize(t, out2); w != 30 || h != 12 {
		t.Errorf("size = %dx%d, want flag width over config 30x12", w, h)
	}
}

func TestMigrateCommand(t *testing.T) {
	c, lib := newTestCLI(t)
	out := filepath.Join(t.TempDir(), "v2.json")
	if err := execute(t, c, "migrate", lib, "-o", out); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	f, err := os.Open(out)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	doc, err := dna.ReadDocument(f)
	if err != nil {
		t.Fatal(err)
	}
	if len(doc.StylesV2) != 1 || doc.StylesV2[0].ModuleID != "DNA_007" {
		t.Errorf("migrated = %+v", doc.StylesV2)
	}

	if err := execute(t, c, "migrate", lib); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("migrate without output = %v", err)
	}
}
