// Package medm models MEDM ADL display files and parses their
// block-structured text into a widget tree.
package medm

// DegreeUnits is the number of integer angle units per degree in ADL
// files. MEDM stores arc angles in 1/64-degree increments.
const DegreeUnits = 64.0

// Geometry is a widget's position and size in pixels. It is a value
// type: Rebase returns a copy and never mutates the receiver, so a
// Geometry shared across tree nodes cannot leak re-based coordinates.
type Geometry struct {
	X      int
	Y      int
	Width  int
	Height int
}

// Rebase returns a new Geometry with the origin moved to (ox, oy).
// Width and height are unchanged. Rebasing by (ox, oy) and then by
// (-ox, -oy) yields the original value.
func (g Geometry) Rebase(ox, oy int) Geometry {
	return Geometry{X: g.X - ox, Y: g.Y - oy, Width: g.Width, Height: g.Height}
}

// Color is one RGB entry of a display's color table.
type Color struct {
	R uint8
	G uint8
	B uint8
}

// ColorValue references a color either by index into the display's
// color table or as a direct RGB triple. A zero ColorValue (Index < 0
// left unset via NewColorValue helpers) means "no color given".
type ColorValue struct {
	Index int
	RGB   *Color
}

// UnsetColor returns a ColorValue meaning "no color given".
func UnsetColor() ColorValue {
	return ColorValue{Index: -1}
}

// IndexColor returns a ColorValue referencing a color table entry.
func IndexColor(i int) ColorValue {
	return ColorValue{Index: i}
}

// DirectColor returns a ColorValue holding an RGB triple.
func DirectColor(c Color) ColorValue {
	return ColorValue{Index: -1, RGB: &c}
}

// IsSet reports whether the value references any color at all.
func (v ColorValue) IsSet() bool {
	return v.Index >= 0 || v.RGB != nil
}

// Point is one vertex of a polyline or polygon, in absolute pixels.
type Point struct {
	X int
	Y int
}

// LinkRecord is one entry of a related-display or shell-command
// widget: a labelled target file or command plus optional macro
// arguments.
type LinkRecord struct {
	Label string
	Name  string
	Args  string
}

// Widget is one node of the display tree. Contents holds the widget's
// type-specific sub-records: section blocks such as "control",
// "monitor", "basic attribute" and "dynamic attribute" appear as
// map[string]string values, scalar attributes as plain strings.
type Widget struct {
	Symbol     string
	Title      string
	Geometry   *Geometry
	Foreground ColorValue
	Background ColorValue
	Contents   map[string]any
	Points     []Point
	Displays   []LinkRecord
	Commands   []LinkRecord
	Widgets    []*Widget
}

// Section returns the named sub-record of Contents, or nil when the
// section is absent or not a block.
func (w *Widget) Section(name string) map[string]string {
	if w.Contents == nil {
		return nil
	}
	sec, _ := w.Contents[name].(map[string]string)
	return sec
}

// Attr returns the named scalar attribute of Contents, or "".
func (w *Widget) Attr(name string) string {
	if w.Contents == nil {
		return ""
	}
	s, _ := w.Contents[name].(string)
	return s
}

// Display is a parsed ADL file: the root container plus the
// document-scoped color table. Color indices are only meaningful
// relative to this table.
type Display struct {
	SourceFile string
	Title      string
	Geometry   *Geometry
	Foreground ColorValue
	Background ColorValue
	ColorTable []Color
	Widgets    []*Widget
}
