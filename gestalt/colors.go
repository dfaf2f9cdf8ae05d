// Package gestalt lowers parsed MEDM display trees into Gestalt YAML
// documents: palette resolution, coordinate conversion, calc-expression
// translation, per-widget-kind property emission and final assembly.
package gestalt

import (
	"fmt"

	"github.com/gestalt-tools/adl2gestalt/medm"
)

// blackToken is the recovery value for any color reference that cannot
// be resolved against the document's palette.
const blackToken = "$000000"

// wellKnownColors are triples assumed to be defined by the shared
// colors.yml include. They resolve to a direct hex token instead of a
// document-scoped alias.
var wellKnownColors = map[medm.Color]struct{}{
	{R: 255, G: 255, B: 255}: {}, // white
	{R: 0, G: 0, B: 0}:       {}, // black
	{R: 255, G: 0, B: 0}:     {}, // red
	{R: 0, G: 255, B: 0}:     {}, // green
	{R: 0, G: 0, B: 255}:     {}, // blue
	{R: 255, G: 255, B: 0}:   {}, // yellow
	{R: 0, G: 255, B: 255}:   {}, // cyan
	{R: 255, G: 0, B: 255}:   {}, // magenta
	{R: 128, G: 128, B: 128}: {}, // gray
	{R: 192, G: 192, B: 192}: {}, // silver
}

// colorAlias is one document-scoped color definition emitted ahead of
// the Form block.
type colorAlias struct {
	name string
	hex  string
}

// colorResolver maps one document's palette indices to color tokens.
// State is document-scoped: a new resolver must be built for every
// conversion, since an index is only meaningful against its own table.
type colorResolver struct {
	table   []medm.Color
	tokens  map[int]string
	aliases []colorAlias
}

func newColorResolver(table []medm.Color) *colorResolver {
	r := &colorResolver{
		table:  table,
		tokens: make(map[int]string, len(table)),
	}
	for i, c := range table {
		hex := hexToken(c)
		if _, ok := wellKnownColors[c]; ok {
			r.tokens[i] = hex
			continue
		}
		name := fmt.Sprintf("medm_color_%d", i)
		r.aliases = append(r.aliases, colorAlias{name: name, hex: hex})
		r.tokens[i] = "*" + name
	}
	return r
}

func hexToken(c medm.Color) string {
	return fmt.Sprintf("$%02x%02x%02x", c.R, c.G, c.B)
}

// reference resolves a color value to its token. Direct RGB triples are
// looked up by value in the table; anything unresolvable falls back to
// opaque black rather than failing the conversion.
func (r *colorResolver) reference(v medm.ColorValue) (string, bool) {
	if !v.IsSet() {
		return "", false
	}
	idx := v.Index
	if v.RGB != nil {
		idx = -1
		for i, c := range r.table {
			if c == *v.RGB {
				idx = i
				break
			}
		}
	}
	if tok, ok := r.tokens[idx]; ok {
		return tok, true
	}
	return blackToken, true
}
