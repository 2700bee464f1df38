package dna

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Document is the on-disk shape of a descriptor library.
// Either StylesV2 or Legacy is populated; StylesV2 wins when both are.
type Document struct {
	DeckConsistency json.RawMessage `json:"deck_consistency,omitempty"`
	StylesV2        []V2Entry       `json:"styles_v2,omitempty"`
	Legacy          []LegacyEntry   `json:"styles_001_100,omitempty"`
}

// V2Entry is a library entry in the structured schema.
type V2Entry struct {
	ModuleID    string     `json:"module_id"`
	StyleName   string     `json:"style_name"`
	RoleBucket  string     `json:"role_bucket"`
	DesignDNA   V2DNA      `json:"design_dna"`
	SlideUsage  SlideUsage `json:"slide_usage"`
	ImagePrompt string     `json:"image_prompt_one_line"`
	Negative    string     `json:"negative_prompt,omitempty"`
	Report      string     `json:"report,omitempty"`
}

// V2DNA holds the structured facets of a V2Entry.
type V2DNA struct {
	ToneKeywords []string        `json:"tone_keywords"`
	ColorPalette V2Palette       `json:"color_palette"`
	LayoutRules  V2Layout        `json:"layout_rules"`
	Materiality  V2Material      `json:"materiality"`
	LineShape    V2LineShape     `json:"line_shape"`
	Typography   V2Typography    `json:"typography"`
	Emotional    V2Emotional     `json:"emotional_profile"`
	Metrics      json.RawMessage `json:"metrics,omitempty"`
}

type V2Palette struct {
	Primary   string `json:"primary,omitempty"`
	Secondary string `json:"secondary,omitempty"`
	Accent    string `json:"accent,omitempty"`
}

type V2Layout struct {
	Composition     string `json:"composition,omitempty"`
	WhitespaceRatio Ratio  `json:"whitespace_ratio"`
	ReadingFlow     string `json:"reading_flow,omitempty"`
}

type V2Material struct {
	Base    string `json:"base,omitempty"`
	Texture Tags   `json:"texture"`
}

type V2LineShape struct {
	LineStyle      string `json:"line_style,omitempty"`
	StrokeVariance string `json:"stroke_variance,omitempty"`
}

type V2Typography struct {
	Headline        string   `json:"headline,omitempty"`
	Body            string   `json:"body,omitempty"`
	LanguageSupport []string `json:"language_support,omitempty"`
}

type V2Emotional struct {
	Mood   Tags   `json:"mood"`
	Tempo  string `json:"tempo,omitempty"`
	Weight string `json:"weight,omitempty"`
}

type SlideUsage struct {
	BestFor  []string `json:"best_for"`
	AvoidFor []string `json:"avoid_for"`
}

// LegacyEntry is a library entry in the flat palette/report schema.
type LegacyEntry struct {
	ID          json.RawMessage `json:"id,omitempty"`
	Title       string          `json:"title"`
	RoleBucket  string          `json:"role_bucket"`
	SlideIntent []string        `json:"slide_intent"`
	Palette     LegacyPalette   `json:"palette"`
	Elaboration string          `json:"elaboration"`
	ImagePrompt string          `json:"image_prompt"`
	OneLine     string          `json:"image_prompt_one_line"`
	Prompt      string          `json:"prompt"`
	Negative    string          `json:"negative_prompt"`
	Report      string          `json:"report"`
}

type LegacyPalette struct {
	Background string `json:"background"`
	Text       string `json:"text"`
	Accents    Tags   `json:"accents"`
}

// Ratio is a [0,1] value that decodes from a number, a numeric string or
// a percentage string. Out-of-range and malformed values clamp or zero.
type Ratio float64

func (r *Ratio) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	switch x := v.(type) {
	case float64:
		*r = Ratio(clamp01(x))
	case string:
		s := strings.TrimSpace(x)
		scale := 1.0
		if strings.HasSuffix(s, "%") {
			s = strings.TrimSuffix(s, "%")
			scale = 100
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			*r = 0
			return nil
		}
		*r = Ratio(clamp01(f / scale))
	default:
		*r = 0
	}
	return nil
}

// Tags decodes from either a JSON string or an array of strings.
type Tags []string

func (t *Tags) UnmarshalJSON(b []byte) error {
	var one string
	if err := json.Unmarshal(b, &one); err == nil {
		if one == "" {
			*t = nil
		} else {
			*t = Tags{one}
		}
		return nil
	}
	var many []any
	if err := json.Unmarshal(b, &many); err != nil {
		*t = nil
		return nil
	}
	out := make(Tags, 0, len(many))
	for _, v := range many {
		if s, ok := v.(string); ok && s != "" {
			out = append(out, s)
		}
	}
	*t = out
	return nil
}

func clamp01(v float64) float64 {
	switch {
	case v != v, v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}
