package gestalt

import (
	"strings"
	"testing"

	"github.com/gestalt-tools/adl2gestalt/medm"
)

func TestColorResolver_WellKnownColorsAreHex(t *testing.T) {
	table := []medm.Color{
		{R: 255, G: 255, B: 255},
		{R: 0, G: 0, B: 0},
		{R: 255, G: 0, B: 0},
		{R: 0, G: 255, B: 0},
		{R: 0, G: 0, B: 255},
		{R: 255, G: 255, B: 0},
		{R: 0, G: 255, B: 255},
		{R: 255, G: 0, B: 255},
		{R: 128, G: 128, B: 128},
		{R: 192, G: 192, B: 192},
	}
	r := newColorResolver(table)

	for i := range table {
		tok, ok := r.reference(medm.IndexColor(i))
		if !ok {
			t.Fatalf("index %d: no token", i)
		}
		if !strings.HasPrefix(tok, "$") {
			t.Errorf("index %d: want direct hex token, got %q", i, tok)
		}
	}
	if len(r.aliases) != 0 {
		t.Errorf("well-known colors minted %d aliases, want none", len(r.aliases))
	}
}

func TestColorResolver_CustomColorsGetOneAliasEach(t *testing.T) {
	table := []medm.Color{
		{R: 236, G: 236, B: 236},
		{R: 255, G: 255, B: 255}, // well-known, no alias
		{R: 10, G: 20, B: 30},
	}
	r := newColorResolver(table)

	if len(r.aliases) != 2 {
		t.Fatalf("got %d aliases, want 2", len(r.aliases))
	}
	seen := make(map[string]bool)
	for _, a := range r.aliases {
		if seen[a.name] {
			t.Errorf("alias name %q minted twice", a.name)
		}
		seen[a.name] = true
	}

	tok0, _ := r.reference(medm.IndexColor(0))
	if tok0 != "*medm_color_0" {
		t.Errorf("index 0 token = %q, want *medm_color_0", tok0)
	}
	// Repeated resolution reuses the same alias.
	again, _ := r.reference(medm.IndexColor(0))
	if again != tok0 {
		t.Errorf("repeated resolution %q != %q", again, tok0)
	}
	tok2, _ := r.reference(medm.IndexColor(2))
	if tok2 != "*medm_color_2" {
		t.Errorf("index 2 token = %q, want *medm_color_2", tok2)
	}
}

func TestColorResolver_DirectRGBLookup(t *testing.T) {
	table := []medm.Color{
		{R: 236, G: 236, B: 236},
		{R: 10, G: 20, B: 30},
	}
	r := newColorResolver(table)

	tok, ok := r.reference(medm.DirectColor(medm.Color{R: 10, G: 20, B: 30}))
	if !ok || tok != "*medm_color_1" {
		t.Errorf("direct RGB lookup = %q (%v), want *medm_color_1", tok, ok)
	}
}

func TestColorResolver_FallbackToBlack(t *testing.T) {
	r := newColorResolver([]medm.Color{{R: 1, G: 2, B: 3}})

	// RGB triple not in the table.
	tok, ok := r.reference(medm.DirectColor(medm.Color{R: 9, G: 9, B: 9}))
	if !ok || tok != blackToken {
		t.Errorf("unknown RGB = %q, want %q", tok, blackToken)
	}
	// Index out of range.
	tok, ok = r.reference(medm.IndexColor(42))
	if !ok || tok != blackToken {
		t.Errorf("out-of-range index = %q, want %q", tok, blackToken)
	}
	// Unset color resolves to nothing at all.
	if _, ok := r.reference(medm.UnsetColor()); ok {
		t.Error("unset color should not resolve")
	}
}

func TestColorResolver_FreshStatePerDocument(t *testing.T) {
	first := newColorResolver([]medm.Color{{R: 1, G: 1, B: 1}, {R: 2, G: 2, B: 2}})
	second := newColorResolver([]medm.Color{{R: 9, G: 9, B: 9}})

	if len(first.aliases) != 2 || len(second.aliases) != 1 {
		t.Fatalf("alias counts %d/%d, want 2/1", len(first.aliases), len(second.aliases))
	}
	tok, _ := second.reference(medm.IndexColor(0))
	if tok != "*medm_color_0" {
		t.Errorf("second document index 0 = %q, want its own alias", tok)
	}
	if second.aliases[0].hex != "$090909" {
		t.Errorf("second document alias hex = %q, want $090909", second.aliases[0].hex)
	}
}
