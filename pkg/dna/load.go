package dna

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/Reasonofmoon/darlkom-banana/pkg/errors"
)

// idNamespace scopes generated descriptor ids.
var idNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/Reasonofmoon/darlkom-banana/dna"))

// LoadFile reads a library from a JSON file on disk.
func LoadFile(path string) (*Library, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open library %s", path)
		}
		return nil, fmt.Errorf("open library: %w", err)
	}
	defer f.Close()

	lib, err := Load(f)
	if err != nil {
		return nil, err
	}
	lib.Source = path
	return lib, nil
}

// Load reads a library document: an object with "styles_v2" or
// "styles_001_100", or a bare array of entries in either schema.
func Load(r io.Reader) (*Library, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read library: %w", err)
	}
	entries, err := splitEntries(data)
	if err != nil {
		return nil, err
	}

	lib := &Library{}
	for i, raw := range entries {
		d, err := decodeEntry(raw)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "library entry %d", i)
		}
		lib.add(d)
	}
	return lib, nil
}

// ReadDocument decodes a library document without normalizing it.
func ReadDocument(r io.Reader) (*Document, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode library document")
	}
	return &doc, nil
}

func splitEntries(data []byte) ([]json.RawMessage, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, nil
	}
	if data[0] == '[' {
		var list []json.RawMessage
		if err := json.Unmarshal(data, &list); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode library")
		}
		return list, nil
	}

	var doc struct {
		V2     []json.RawMessage `json:"styles_v2"`
		Legacy []json.RawMessage `json:"styles_001_100"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode library")
	}
	if len(doc.V2) > 0 {
		return doc.V2, nil
	}
	return doc.Legacy, nil
}

// decodeEntry detects the schema of one entry and normalizes it.
func decodeEntry(raw json.RawMessage) (Descriptor, error) {
	var probe struct {
		DesignDNA json.RawMessage `json:"design_dna"`
		ModuleID  string          `json:"module_id"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil {
		return Descriptor{}, err
	}

	var d Descriptor
	if len(probe.DesignDNA) > 0 || probe.ModuleID != "" {
		var e V2Entry
		if err := json.Unmarshal(raw, &e); err != nil {
			return Descriptor{}, err
		}
		d = FromV2(e)
	} else {
		var e LegacyEntry
		if err := json.Unmarshal(raw, &e); err != nil {
			return Descriptor{}, err
		}
		d = FromLegacy(e)
	}
	d.raw = raw
	if d.ID == "" {
		d.ID = generatedID(raw)
	}
	return d, nil
}

// FromV2 normalizes a structured entry.
func FromV2(e V2Entry) Descriptor {
	dna := e.DesignDNA
	return Descriptor{
		ID:     e.ModuleID,
		Name:   e.StyleName,
		Role:   e.RoleBucket,
		Tone:   dna.ToneKeywords,
		Prompt: e.ImagePrompt,
		Report: e.Report,
		Palette: Palette{
			Primary:   dna.ColorPalette.Primary,
			Secondary: dna.ColorPalette.Secondary,
			Accent:    dna.ColorPalette.Accent,
		},
		Layout: Layout{
			Composition: dna.LayoutRules.Composition,
			Whitespace:  float64(dna.LayoutRules.WhitespaceRatio),
			ReadingFlow: dna.LayoutRules.ReadingFlow,
		},
		Material: Material{
			Base:    dna.Materiality.Base,
			Texture: dna.Materiality.Texture,
		},
		Line: LineShape{
			Style:    dna.LineShape.LineStyle,
			Variance: dna.LineShape.StrokeVariance,
		},
		Typography: Typography{
			Headline: dna.Typography.Headline,
			Body:     dna.Typography.Body,
		},
		Emotion: Emotion{
			Mood:   dna.Emotional.Mood,
			Tempo:  dna.Emotional.Tempo,
			Weight: dna.Emotional.Weight,
		},
	}
}

// FromLegacy normalizes a flat entry. background maps to primary, the
// first accent to accent and the second accent (or text) to secondary.
func FromLegacy(e LegacyEntry) Descriptor {
	p := Palette{Primary: e.Palette.Background, Secondary: e.Palette.Text}
	if len(e.Palette.Accents) > 0 {
		p.Accent = e.Palette.Accents[0]
	}
	if len(e.Palette.Accents) > 1 {
		p.Secondary = e.Palette.Accents[1]
	}

	prompt := e.OneLine
	if prompt == "" {
		prompt = e.ImagePrompt
	}
	if prompt == "" {
		prompt = e.Prompt
	}

	report := e.Report
	if report == "" {
		report = joinNonEmpty("\n", e.Title, e.Elaboration, prompt)
	}

	return Descriptor{
		ID:      legacyID(e.ID),
		Name:    e.Title,
		Role:    e.RoleBucket,
		Tone:    e.SlideIntent,
		Prompt:  prompt,
		Report:  report,
		Palette: p,
	}
}

// legacyID formats numeric ids as DNA_%03d and passes strings through.
func legacyID(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		if i, err := strconv.Atoi(n.String()); err == nil {
			return fmt.Sprintf("DNA_%03d", i)
		}
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return strings.TrimSpace(s)
	}
	return ""
}

func generatedID(raw []byte) string {
	return "DNA_" + uuid.NewSHA1(idNamespace, raw).String()[:8]
}

func joinNonEmpty(sep string, parts ...string) string {
	out := parts[:0:0]
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, sep)
}
