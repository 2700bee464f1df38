// Package pipeline provides the render pipeline shared by every darlkom
// entry point.
//
// A run resolves a compose.Plan from descriptors, draws it on a fresh
// surface, measures the finished frame and encodes it in the requested
// formats. Centralizing the defaults here keeps the CLI, config file and
// tests in agreement.
//
// # Usage
//
//	runner := pipeline.NewRunner(nil, logger)
//	res, err := runner.Execute(ctx, pipeline.Input{Descriptor: d}, pipeline.Options{
//	    Mode:    pipeline.ModeRender,
//	    Formats: []string{"png"},
//	})
//	if err != nil {
//	    return err
//	}
//	png := res.Artifacts["png"]
package pipeline

import (
	"fmt"
	"image"
	"image/color"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/Reasonofmoon/darlkom-banana/pkg/dna"
	"github.com/Reasonofmoon/darlkom-banana/pkg/errors"
	"github.com/Reasonofmoon/darlkom-banana/pkg/render/analyze"
	"github.com/Reasonofmoon/darlkom-banana/pkg/render/compose"
	"github.com/Reasonofmoon/darlkom-banana/pkg/render/surface"
)

// =============================================================================
// Default Values
// =============================================================================

const (
	// DefaultWidth and DefaultHeight are the logical size of a full render.
	DefaultWidth  = 800
	DefaultHeight = 450

	// DefaultRatio is the device pixel ratio of a full render.
	DefaultRatio = 2.0

	// DefaultThumbWidth and DefaultThumbHeight are the logical size of a thumbnail.
	DefaultThumbWidth  = 160
	DefaultThumbHeight = 90

	// DefaultThumbRatio keeps gallery thumbnails at one device pixel per unit.
	DefaultThumbRatio = 1.0

	// DefaultFormat is the artifact format when none is requested.
	DefaultFormat = FormatPNG

	// MaxDimension bounds either logical side of a render.
	MaxDimension = 8192
)

// Mode selects what a run draws.
const (
	ModeRender    = "render"
	ModeThumbnail = "thumbnail"
	ModeHybrid    = "hybrid"
)

// ValidModes is the set of supported modes.
var ValidModes = map[string]bool{
	ModeRender:    true,
	ModeThumbnail: true,
	ModeHybrid:    true,
}

// Format constants for artifact formats.
const (
	FormatPNG  = "png"
	FormatJPEG = "jpeg"
	FormatGIF  = "gif"
	FormatTIFF = "tiff"
	FormatBMP  = "bmp"
)

// ValidFormats is the set of supported artifact formats.
var ValidFormats = map[string]bool{
	FormatPNG:  true,
	FormatJPEG: true,
	FormatGIF:  true,
	FormatTIFF: true,
	FormatBMP:  true,
}

// =============================================================================
// Options
// =============================================================================

// Options configures one pipeline run. Zero values take the defaults of
// the selected mode.
type Options struct {
	Mode    string   `toml:"mode" json:"mode,omitempty"`
	Width   int      `toml:"width" json:"width,omitempty"`
	Height  int      `toml:"height" json:"height,omitempty"`
	Ratio   float64  `toml:"ratio" json:"ratio,omitempty"`
	Formats []string `toml:"formats" json:"formats,omitempty"`

	// Aspect, when positive, treats Width and Height as bounds and renders
	// the largest frame of that width-to-height ratio fitting inside them.
	Aspect float64 `toml:"aspect" json:"aspect,omitempty"`

	// Seed makes a run reproducible. Zero draws fresh randomness and
	// disables artifact caching.
	Seed uint64 `toml:"seed" json:"seed,omitempty"`

	// Swatches is how many palette colors to extract from the frame.
	Swatches      int    `toml:"swatches" json:"swatches,omitempty"`
	PaletteMethod string `toml:"palette_method" json:"palette_method,omitempty"`

	// KeepFrame retains the rendered image in the result.
	KeepFrame bool `toml:"-" json:"-"`

	Logger *log.Logger `toml:"-" json:"-"`
}

// Input holds the descriptors a run draws from. Render and thumbnail
// modes read Descriptor; hybrid mode reads Roles.
type Input struct {
	Descriptor *dna.Descriptor
	Roles      compose.Roles
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// ID identifies the run in logs.
	ID string

	Plan compose.Plan

	// Frame is the rendered image. It is nil on a cache hit or when
	// KeepFrame is unset.
	Frame *image.RGBA

	// Artifacts contains encoded outputs keyed by format.
	Artifacts map[string][]byte

	// Swatches are the dominant colors of the frame, darkest first.
	Swatches []color.NRGBA

	Stats Stats

	// CacheHit reports that every artifact came from the cache.
	CacheHit bool
}

// Stats contains run statistics.
type Stats struct {
	Frame      analyze.FrameStats
	RenderTime time.Duration
	EncodeTime time.Duration
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateMode checks that a mode is valid.
func ValidateMode(mode string) error {
	if !ValidModes[mode] {
		return errors.New(errors.ErrCodeInvalidMode, "invalid mode: %q (must be one of: render, thumbnail, hybrid)", mode)
	}
	return nil
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: png, jpeg, gif, tiff, bmp)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// SetDefaults fills zero fields with the defaults of the selected mode.
func (o *Options) SetDefaults() {
	if o.Mode == "" {
		o.Mode = ModeRender
	}
	w, h, r := DefaultWidth, DefaultHeight, DefaultRatio
	if o.Mode == ModeThumbnail {
		w, h, r = DefaultThumbWidth, DefaultThumbHeight, DefaultThumbRatio
	}
	if o.Width == 0 {
		o.Width = w
	}
	if o.Height == 0 {
		o.Height = h
	}
	if o.Ratio == 0 {
		o.Ratio = r
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{DefaultFormat}
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// Validate applies defaults and checks every field.
func (o *Options) Validate() error {
	o.SetDefaults()
	if err := ValidateMode(o.Mode); err != nil {
		return err
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.Width < 0 || o.Height < 0 || o.Width > MaxDimension || o.Height > MaxDimension {
		return errors.New(errors.ErrCodeInvalidInput, "size %dx%d out of range (1..%d)", o.Width, o.Height, MaxDimension)
	}
	if o.Ratio < 0 || o.Ratio > 8 {
		return errors.New(errors.ErrCodeInvalidInput, "pixel ratio %g out of range (0..8]", o.Ratio)
	}
	if o.Aspect < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "aspect cannot be negative")
	}
	if o.Swatches < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "swatch count cannot be negative")
	}
	if _, err := analyze.ParseMethod(o.PaletteMethod); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "palette method")
	}
	return nil
}

// Size returns the logical frame size after aspect fitting.
func (o Options) Size() (width, height int) {
	if o.Aspect > 0 {
		return surface.Fit(o.Width, o.Height, o.Aspect)
	}
	return o.Width, o.Height
}

// String summarizes the options for logs.
func (o Options) String() string {
	w, h := o.Size()
	return fmt.Sprintf("%s %dx%d@%gx %v", o.Mode, w, h, o.Ratio, o.Formats)
}
