// Package dna models design DNA descriptors and the libraries they ship in.
//
// A [Descriptor] is the single in-memory shape for every library schema:
// structured v2 entries, flat legacy entries with a free-text report, and
// entries carrying numeric metrics (which are accepted and ignored).
// Normalization happens once at load time so that the render packages only
// ever see a Descriptor.
//
// Missing attributes never fail. Colors fall back to [DefaultPrimary],
// [DefaultSecondary] and [DefaultAccent]; ratios are clamped to [0,1].
package dna

import "strings"

// PlaceholderComposition is written by the legacy migration in place of a
// real composition keyword. It does not count as a structured signal.
const PlaceholderComposition = "determined_by_role"

// Descriptor is an immutable design DNA record.
type Descriptor struct {
	ID     string
	Name   string
	Role   string
	Tone   []string
	Prompt string

	// Report is free text used by keyword classification when the
	// structured facets are missing.
	Report string

	Palette    Palette
	Layout     Layout
	Material   Material
	Line       LineShape
	Typography Typography
	Emotion    Emotion

	raw []byte
}

// Palette holds the color slots as written in the source, in any CSS form.
type Palette struct {
	Primary   string
	Secondary string
	Accent    string
}

// Layout is the composition facet.
type Layout struct {
	Composition string
	Whitespace  float64
	ReadingFlow string
}

// Material is the surface facet. Texture tags select post-processing.
type Material struct {
	Base    string
	Texture []string
}

// LineShape describes stroke character.
type LineShape struct {
	Style    string
	Variance string
}

// Typography names the type families of a style.
type Typography struct {
	Headline string
	Body     string
}

// Emotion carries the mood and tempo hints.
type Emotion struct {
	Mood   []string
	Tempo  string
	Weight string
}

// HasStructure reports whether the descriptor carries a usable composition
// keyword, as opposed to relying on its report text.
func (d Descriptor) HasStructure() bool {
	c := strings.TrimSpace(strings.ToLower(d.Layout.Composition))
	return c != "" && c != PlaceholderComposition
}

// WhitespaceRatio returns the layout whitespace clamped to [0,1].
func (d Descriptor) WhitespaceRatio() float64 {
	return clamp01(d.Layout.Whitespace)
}

// Colors resolves the palette, substituting defaults for missing slots.
func (d Descriptor) Colors() Colors {
	return ResolvePalette(d.Palette)
}

// Raw returns the source JSON the descriptor was loaded from, if any.
func (d Descriptor) Raw() []byte {
	return d.raw
}
