package cli

import (
	"errors"
	"io"
	"io/fs"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"

	"github.com/Reasonofmoon/darlkom-banana/pkg/pipeline"
	derrors "github.com/Reasonofmoon/darlkom-banana/pkg/errors"
)

// Config is the on-disk configuration.
//
//	library = "styles/dna.json"
//
//	[render]
//	width = 1280
//	height = 720
//	ratio = 2
//	format = "png"
//	seed = 42
//
//	[thumbnail]
//	width = 160
//	height = 90
//
//	[cache]
//	disabled = false
type Config struct {
	Library   string      `toml:"library"`
	Render    FrameConfig `toml:"render"`
	Thumbnail FrameConfig `toml:"thumbnail"`
	Cache     CacheConfig `toml:"cache"`
}

// FrameConfig holds per-mode frame settings. Zero fields keep the
// pipeline defaults.
type FrameConfig struct {
	Width    int     `toml:"width"`
	Height   int     `toml:"height"`
	Ratio    float64 `toml:"ratio"`
	Aspect   string  `toml:"aspect"`
	Format   string  `toml:"format"`
	Seed     uint64  `toml:"seed"`
	Swatches int     `toml:"swatches"`
	Palette  string  `toml:"palette_method"`
}

// CacheConfig controls the artifact cache.
type CacheConfig struct {
	Disabled bool `toml:"disabled"`
}

// DefaultConfig returns an empty config; every value falls through to
// the pipeline defaults.
func DefaultConfig() Config {
	return Config{}
}

// LoadConfig decodes the TOML file at path. A missing file is an error
// only when the path was given explicitly. Unknown keys are logged and
// ignored.
func LoadConfig(path string, explicit bool, logger *log.Logger) (Config, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	cfg := DefaultConfig()
	md, err := toml.DecodeFile(path, &cfg)
	if errors.Is(err, fs.ErrNotExist) && !explicit {
		return DefaultConfig(), nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, derrors.Wrap(derrors.ErrCodeFileNotFound, err, "config %s", path)
	}
	if err != nil {
		return cfg, derrors.Wrap(derrors.ErrCodeInvalidInput, err, "config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		logger.Warn("unknown config keys", "path", path, "keys", strings.Join(keys, ", "))
	}
	if _, err := ParseAspect(cfg.Render.Aspect); err != nil {
		return cfg, err
	}
	if _, err := ParseAspect(cfg.Thumbnail.Aspect); err != nil {
		return cfg, err
	}
	logger.Debug("loaded config", "path", path)
	return cfg, nil
}

// Frame returns the frame settings for a pipeline mode.
func (c Config) Frame(mode string) FrameConfig {
	if mode == pipeline.ModeThumbnail {
		return c.Thumbnail
	}
	return c.Render
}

// Apply copies non-zero settings into opts.
func (f FrameConfig) Apply(opts *pipeline.Options) {
	if f.Width != 0 {
		opts.Width = f.Width
	}
	if f.Height != 0 {
		opts.Height = f.Height
	}
	if f.Ratio != 0 {
		opts.Ratio = f.Ratio
	}
	if a, err := ParseAspect(f.Aspect); err == nil && a != 0 {
		opts.Aspect = a
	}
	if f.Format != "" {
		opts.Formats = parseFormats(f.Format)
	}
	if f.Seed != 0 {
		opts.Seed = f.Seed
	}
	if f.Swatches != 0 {
		opts.Swatches = f.Swatches
	}
	if f.Palette != "" {
		opts.PaletteMethod = f.Palette
	}
}

// ParseAspect parses "16:9", "16/9" or a plain number. Empty is zero.
func ParseAspect(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	bad := derrors.New(derrors.ErrCodeInvalidInput, "invalid aspect %q (want W:H or a number)", s)
	if i := strings.IndexAny(s, ":/"); i >= 0 {
		w, err1 := strconv.ParseFloat(strings.TrimSpace(s[:i]), 64)
		h, err2 := strconv.ParseFloat(strings.TrimSpace(s[i+1:]), 64)
		if err1 != nil || err2 != nil || w <= 0 || h <= 0 {
			return 0, bad
		}
		return w / h, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v <= 0 {
		return 0, bad
	}
	return v, nil
}
