package gestalt

import (
	"fmt"

	"github.com/gestalt-tools/adl2gestalt/medm"
)

// formatGeometry renders a widget geometry in the Gestalt positional
// encoding: "x-pos x y-pos x width x height" collapsed to the
// "XxY x WxH" layout.
func formatGeometry(g medm.Geometry) string {
	return fmt.Sprintf("%dx%d x %dx%d", g.X, g.Y, g.Width, g.Height)
}

// formatSize renders only the extent, used for the Form block where
// position is implied.
func formatSize(g medm.Geometry) string {
	return fmt.Sprintf("%dx%d", g.Width, g.Height)
}

// rebase moves a child geometry into the coordinate space of a
// container at (ox, oy). Flattening nested groups composes this one
// level at a time; the input value is never modified.
func rebase(g medm.Geometry, ox, oy int) medm.Geometry {
	return g.Rebase(ox, oy)
}
