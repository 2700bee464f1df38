package dna

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestMigrateEntry(t *testing.T) {
	tests := []struct {
		name     string
		item     LegacyEntry
		wantID   string
		wantComp string
		wantWS   Ratio
		wantBase string
		wantTex  []string
	}{
		{
			name:     "plain",
			item:     LegacyEntry{ID: json.RawMessage("4"), Title: "Quiet Deck"},
			wantID:   "DNA_004",
			wantComp: PlaceholderComposition,
			wantWS:   0.5,
			wantBase: "digital_screen",
		},
		{
			name:     "minimal grid",
			item:     LegacyEntry{ID: json.RawMessage("12"), Title: "Minimal Grid"},
			wantID:   "DNA_012",
			wantComp: "modular_grid",
			wantWS:   0.8,
			wantBase: "digital_screen",
		},
		{
			name:     "neon from role",
			item:     LegacyEntry{ID: json.RawMessage("5"), Title: "Alley", RoleBucket: "Neon Palette"},
			wantID:   "DNA_005",
			wantComp: PlaceholderComposition,
			wantWS:   0.5,
			wantBase: "dark_glass",
		},
		{
			name:     "paper adds grain",
			item:     LegacyEntry{ID: json.RawMessage("6"), Title: "Paper Cut"},
			wantID:   "DNA_006",
			wantComp: PlaceholderComposition,
			wantWS:   0.5,
			wantBase: "paper",
			wantTex:  []string{"grain"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := MigrateEntry(tt.item)
			if e.ModuleID != tt.wantID {
				t.Errorf("id = %q, want %q", e.ModuleID, tt.wantID)
			}
			if got := e.DesignDNA.LayoutRules.Composition; got != tt.wantComp {
				t.Errorf("composition = %q, want %q", got, tt.wantComp)
			}
			if got := e.DesignDNA.LayoutRules.WhitespaceRatio; got != tt.wantWS {
				t.Errorf("whitespace = %v, want %v", got, tt.wantWS)
			}
			if got := e.DesignDNA.Materiality.Base; got != tt.wantBase {
				t.Errorf("base = %q, want %q", got, tt.wantBase)
			}
			if len(e.DesignDNA.Materiality.Texture) != len(tt.wantTex) {
				t.Errorf("texture = %v, want %v", e.DesignDNA.Materiality.Texture, tt.wantTex)
			}
		})
	}
}

func TestMigrateEntryPalette(t *testing.T) {
	e := MigrateEntry(LegacyEntry{
		ID:      json.RawMessage("1"),
		Palette: LegacyPalette{Background: "#000", Text: "#eee", Accents: Tags{"#f0f"}},
	})
	want := V2Palette{Primary: "#000", Secondary: "#eee", Accent: "#f0f"}
	if e.DesignDNA.ColorPalette != want {
		t.Errorf("palette = %+v, want %+v", e.DesignDNA.ColorPalette, want)
	}
	if e.RoleBucket != "Structure" || e.StyleName != "Untitled Style" {
		t.Errorf("defaults = %q/%q", e.RoleBucket, e.StyleName)
	}

	bare := MigrateEntry(LegacyEntry{ID: json.RawMessage("2")})
	if bare.DesignDNA.ColorPalette.Accent != migratedAccent {
		t.Errorf("accent default = %q", bare.DesignDNA.ColorPalette.Accent)
	}
}

func TestMigrateSkipsExisting(t *testing.T) {
	legacy := &Document{Legacy: []LegacyEntry{
		{ID: json.RawMessage("1"), Title: "One"},
		{ID: json.RawMessage("2"), Title: "Two"},
		{ID: json.RawMessage("2"), Title: "Two again"},
	}}
	current := &Document{
		DeckConsistency: json.RawMessage(`{"k":1}`),
		StylesV2:        []V2Entry{{ModuleID: "DNA_001", StyleName: "Kept"}},
	}

	res := Migrate(legacy, current)
	if res.Added != 1 || res.Skipped != 2 {
		t.Errorf("added/skipped = %d/%d, want 1/2", res.Added, res.Skipped)
	}
	if got := len(res.Document.StylesV2); got != 2 {
		t.Fatalf("len = %d, want 2", got)
	}
	if res.Document.StylesV2[0].StyleName != "Kept" {
		t.Error("existing entries should be preserved first")
	}
	if len(current.StylesV2) != 1 {
		t.Error("Migrate must not mutate its inputs")
	}
}

func TestMigratedDocumentLoads(t *testing.T) {
	res := Migrate(&Document{Legacy: []LegacyEntry{
		{ID: json.RawMessage("3"), Title: "Blueprint Grid", Palette: LegacyPalette{Background: "#003"}},
	}}, nil)

	var buf bytes.Buffer
	if err := WriteDocument(&buf, res.Document); err != nil {
		t.Fatalf("WriteDocument: %v", err)
	}
	if strings.Contains(buf.String(), "styles_001_100") {
		t.Error("migrated output should only carry styles_v2")
	}

	lib, err := Load(&buf)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	d, err := lib.Find("DNA_003")
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if d.Layout.Composition != "modular_grid" || !d.HasStructure() {
		t.Errorf("composition = %q", d.Layout.Composition)
	}
}

func TestPlaceholderIsNotStructure(t *testing.T) {
	d := FromV2(MigrateEntry(LegacyEntry{ID: json.RawMessage("8"), Title: "Plain"}))
	if d.HasStructure() {
		t.Error("placeholder composition should not count as structure")
	}
}
