package gestalt

import (
	"testing"

	"github.com/gestalt-tools/adl2gestalt/medm"
)

func TestFormatGeometry(t *testing.T) {
	g := medm.Geometry{X: 10, Y: 20, Width: 100, Height: 50}
	if got := formatGeometry(g); got != "10x20 x 100x50" {
		t.Errorf("formatGeometry = %q", got)
	}
	if got := formatSize(g); got != "100x50" {
		t.Errorf("formatSize = %q", got)
	}
}

func TestRebase_AdditiveAndReversible(t *testing.T) {
	g := medm.Geometry{X: 110, Y: 60, Width: 30, Height: 40}

	moved := rebase(g, 100, 50)
	want := medm.Geometry{X: 10, Y: 10, Width: 30, Height: 40}
	if moved != want {
		t.Errorf("rebase = %+v, want %+v", moved, want)
	}

	back := rebase(moved, -100, -50)
	if back != g {
		t.Errorf("round trip = %+v, want original %+v", back, g)
	}

	// The input value is untouched.
	if g.X != 110 || g.Y != 60 {
		t.Errorf("rebase mutated its input: %+v", g)
	}
}

func TestRebase_ComposesOneLevelAtATime(t *testing.T) {
	g := medm.Geometry{X: 120, Y: 80, Width: 10, Height: 10}
	inner := rebase(rebase(g, 100, 50), 10, 10)
	if inner.X != 10 || inner.Y != 20 {
		t.Errorf("nested rebase = %+v, want (10,20)", inner)
	}
}
