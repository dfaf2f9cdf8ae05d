package gestalt

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/gestalt-tools/adl2gestalt/medm"
)

// Converter renders parsed MEDM displays as Gestalt documents. The
// Converter itself holds only configuration; all document-scoped state
// (palette resolution, calc-node accumulation) lives on a per-call
// lowerer, so no state ever leaks between documents.
type Converter struct {
	// Log receives skip diagnostics. Defaults to a stderr logger at
	// warn level.
	Log zerolog.Logger

	// IncludeColors and IncludeWidgets name the shared definition
	// files referenced at the top of every document.
	IncludeColors  string
	IncludeWidgets string
}

// NewConverter returns a Converter with the standard include names and
// a stderr diagnostic logger.
func NewConverter() *Converter {
	return &Converter{
		Log:            zerolog.New(os.Stderr).With().Timestamp().Logger().Level(zerolog.WarnLevel),
		IncludeColors:  "colors.yml",
		IncludeWidgets: "widgets.yml",
	}
}

// Convert lowers one display into a complete Gestalt document.
func (c *Converter) Convert(d *medm.Display) string {
	l := &lowerer{
		colors: newColorResolver(d.ColorTable),
		canvas: d.Geometry,
		log:    c.Log.With().Str("source", filepath.Base(d.SourceFile)).Logger(),
	}

	var lines []string

	lines = append(lines, "#include "+c.IncludeColors)
	lines = append(lines, "#include "+c.IncludeWidgets)
	lines = append(lines, "")

	lines = append(lines, "# Gestalt display file generated from MEDM ADL")
	lines = append(lines, "# Source: "+filepath.Base(d.SourceFile))
	lines = append(lines, "# Generator: adl2gestalt")
	lines = append(lines, "")

	if len(l.colors.aliases) > 0 {
		lines = append(lines, "# Custom colors from MEDM color table")
		for _, a := range l.colors.aliases {
			lines = append(lines, fmt.Sprintf("_%s: &%s %s", a.name, a.name, a.hex))
		}
		lines = append(lines, "")
	}

	lines = append(lines, "Form: !Form")
	if d.Title != "" {
		lines = append(lines, prop("title", quote(d.Title)))
	}
	if d.Geometry != nil {
		lines = append(lines, prop("geometry", formatSize(*d.Geometry)))
	}
	lines = append(lines, prop("margins", "10x0x10x10"))
	if fg, ok := l.colors.reference(d.Foreground); ok {
		lines = append(lines, prop("foreground", fg))
	}
	if bg, ok := l.colors.reference(d.Background); ok {
		lines = append(lines, prop("background", bg))
	}
	lines = append(lines, "")

	for i, w := range d.Widgets {
		widgetLines := l.lowerWidget(w, i, w.Geometry)
		if len(widgetLines) == 0 {
			continue
		}
		lines = append(lines, widgetLines...)
		lines = append(lines, "")
	}

	for _, node := range l.calcNodes {
		lines = append(lines, renderCalcNode(node)...)
		lines = append(lines, "")
	}

	return strings.Join(lines, "\n")
}

// renderCalcNode emits one computed-visibility node: its channel
// bindings, the compiled expression and the synthesized output
// channel other widgets reference.
func renderCalcNode(n *calcNode) []string {
	lines := []string{n.name + ": !Calc"}
	for i, ch := range n.channels {
		if ch == "" {
			continue
		}
		lines = append(lines, prop(string(rune('A'+i)), quote(ch)))
	}
	lines = append(lines, prop("calc", quote(n.expr)))
	lines = append(lines, prop("output", quote(n.outputChannel())))
	return lines
}

// ConvertFile parses an ADL file and writes the Gestalt document.
// An empty outPath derives the output next to the input with a .yml
// extension. Returns the path written.
func (c *Converter) ConvertFile(adlPath, outPath string) (string, error) {
	d, err := medm.ParseFile(adlPath)
	if err != nil {
		return "", err
	}

	if outPath == "" {
		outPath = strings.TrimSuffix(adlPath, filepath.Ext(adlPath)) + ".yml"
	} else if info, statErr := os.Stat(outPath); statErr == nil && info.IsDir() {
		base := strings.TrimSuffix(filepath.Base(adlPath), filepath.Ext(adlPath)) + ".yml"
		outPath = filepath.Join(outPath, base)
	}

	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return "", fmt.Errorf("create output directory: %w", err)
	}

	doc := c.Convert(d)
	if err := os.WriteFile(outPath, []byte(doc), 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", outPath, err)
	}
	return outPath, nil
}
