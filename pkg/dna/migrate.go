package dna

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// Values written into migrated entries for facets the flat schema lacks.
const (
	migratedWhitespace  = 0.5
	migratedReadingFlow = "z-pattern"
	migratedBase        = "digital_screen"
	migratedAccent      = "#00FF00"
)

// MigrateResult summarizes a legacy to v2 migration.
type MigrateResult struct {
	Document *Document
	Added    int
	Skipped  int
}

// Migrate converts the legacy entries of legacy into v2 entries appended
// to current. Entries whose DNA_%03d id already exists in current are
// skipped. current may be nil.
func Migrate(legacy, current *Document) MigrateResult {
	out := &Document{}
	if current != nil {
		out.DeckConsistency = current.DeckConsistency
		out.StylesV2 = append(out.StylesV2, current.StylesV2...)
	}

	existing := make(map[string]bool, len(out.StylesV2))
	for _, e := range out.StylesV2 {
		if e.ModuleID != "" {
			existing[e.ModuleID] = true
		}
	}

	res := MigrateResult{Document: out}
	if legacy == nil {
		return res
	}
	for _, item := range legacy.Legacy {
		e := MigrateEntry(item)
		if existing[e.ModuleID] {
			res.Skipped++
			continue
		}
		existing[e.ModuleID] = true
		out.StylesV2 = append(out.StylesV2, e)
		res.Added++
	}
	return res
}

// MigrateEntry converts one legacy entry, enhancing the placeholder facets
// from keywords in its title and role.
func MigrateEntry(item LegacyEntry) V2Entry {
	role := item.RoleBucket
	if role == "" {
		role = "Structure"
	}
	title := item.Title
	if title == "" {
		title = "Untitled Style"
	}

	primary := orDefault(item.Palette.Background, DefaultPrimary)
	text := orDefault(item.Palette.Text, DefaultSecondary)
	accent := migratedAccent
	if len(item.Palette.Accents) > 0 {
		accent = item.Palette.Accents[0]
	}
	secondary := text
	if len(item.Palette.Accents) > 1 {
		secondary = item.Palette.Accents[1]
	}

	e := V2Entry{
		ModuleID:   migratedID(item),
		StyleName:  title,
		RoleBucket: role,
		DesignDNA: V2DNA{
			ToneKeywords: orEmpty(item.SlideIntent),
			ColorPalette: V2Palette{Primary: primary, Secondary: secondary, Accent: accent},
			LayoutRules: V2Layout{
				Composition:     PlaceholderComposition,
				WhitespaceRatio: migratedWhitespace,
				ReadingFlow:     migratedReadingFlow,
			},
			Materiality: V2Material{Base: migratedBase, Texture: Tags{}},
			LineShape:   V2LineShape{LineStyle: "default", StrokeVariance: "none"},
			Typography: V2Typography{
				Headline:        "sans-serif",
				Body:            "sans-serif",
				LanguageSupport: []string{"en"},
			},
			Emotional: V2Emotional{Mood: Tags{}, Tempo: "moderate", Weight: "balanced"},
		},
		SlideUsage:  SlideUsage{BestFor: []string{}, AvoidFor: []string{}},
		ImagePrompt: item.ImagePrompt,
		Negative:    item.Negative,
	}

	keywords := strings.ToLower(title + " " + role)
	if strings.Contains(keywords, "minimal") {
		e.DesignDNA.LayoutRules.WhitespaceRatio = 0.8
	}
	if strings.Contains(keywords, "grid") {
		e.DesignDNA.LayoutRules.Composition = "modular_grid"
	}
	if strings.Contains(keywords, "neon") {
		e.DesignDNA.Materiality.Base = "dark_glass"
	}
	if strings.Contains(keywords, "paper") {
		e.DesignDNA.Materiality.Base = "paper"
		e.DesignDNA.Materiality.Texture = append(e.DesignDNA.Materiality.Texture, "grain")
	}
	return e
}

func migratedID(item LegacyEntry) string {
	if id := legacyID(item.ID); id != "" {
		return id
	}
	return "DNA_000"
}

// WriteDocument encodes doc as indented JSON without HTML escaping, so
// non-ASCII names survive verbatim.
func WriteDocument(w io.Writer, doc *Document) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode library document: %w", err)
	}
	return nil
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
