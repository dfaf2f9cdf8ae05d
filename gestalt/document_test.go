package gestalt

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/rs/zerolog"

	"github.com/gestalt-tools/adl2gestalt/medm"
)

const sampleADL = `
file {
	name="test.adl"
	version=030109
}
display {
	object {
		x=0
		y=0
		width=400
		height=300
	}
	clr=14
	bclr=4
	cmap=""
}
"color map" {
	ncolors=3
	colors {
		ffffff,
		ececec,
		000000,
	}
}
text {
	object {
		x=10
		y=10
		width=100
		height=20
	}
	"basic attribute" {
		clr=14
	}
	textix="Test Label"
	align="horiz. left"
}
"text update" {
	object {
		x=10
		y=40
		width=100
		height=20
	}
	monitor {
		chan="TEST:DEVICE:VALUE"
		clr=54
		bclr=4
	}
}
`

func parseSample(t *testing.T, adl, name string) *medm.Display {
	t.Helper()
	d, err := medm.Parse(strings.NewReader(adl), name)
	if err != nil {
		t.Fatalf("parse sample: %v", err)
	}
	return d
}

func quietConverter() *Converter {
	c := NewConverter()
	c.Log = zerolog.Nop()
	return c
}

func TestConvert_FullDocument(t *testing.T) {
	d := parseSample(t, sampleADL, "test.adl")
	got := quietConverter().Convert(d)

	want := strings.Join([]string{
		"#include colors.yml",
		"#include widgets.yml",
		"",
		"# Gestalt display file generated from MEDM ADL",
		"# Source: test.adl",
		"# Generator: adl2gestalt",
		"",
		"# Custom colors from MEDM color table",
		"_medm_color_1: &medm_color_1 $ececec",
		"",
		"Form: !Form",
		`    title: "test"`,
		"    geometry: 400x300",
		"    margins: 10x0x10x10",
		"    foreground: $000000",
		"    background: $000000",
		"",
		"Test_Label_0: !Text",
		"    geometry: 10x10 x 100x20",
		"    foreground: $000000",
		`    text: "Test Label"`,
		"    alignment: Left",
		"",
		"text_update_1: !TextMonitor",
		"    geometry: 10x40 x 100x20",
		"    foreground: $000000",
		"    background: $000000",
		`    pv: "TEST:DEVICE:VALUE"`,
		"",
	}, "\n")

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("document mismatch (-want +got):\n%s", diff)
	}
}

func TestConvert_UnmappedWidgetsSkippedWithDiagnostics(t *testing.T) {
	d := parseSample(t, sampleADL, "test.adl")
	meter := &medm.Widget{Symbol: "meter", Geometry: &medm.Geometry{X: 0, Y: 0, Width: 50, Height: 50}}
	meter2 := &medm.Widget{Symbol: "meter", Geometry: &medm.Geometry{X: 60, Y: 0, Width: 50, Height: 50}}
	d.Widgets = append(d.Widgets, meter, meter2)

	var diag bytes.Buffer
	c := NewConverter()
	c.Log = zerolog.New(&diag)

	got := c.Convert(d)

	if strings.Contains(got, "meter") {
		t.Errorf("unmapped widgets leaked into the output:\n%s", got)
	}
	if n := strings.Count(diag.String(), "no Gestalt equivalent"); n != 2 {
		t.Errorf("got %d skip diagnostics, want 2", n)
	}
	// The rest of the document is unaffected.
	if !strings.Contains(got, "Test_Label_0: !Text") || !strings.Contains(got, "text_update_1: !TextMonitor") {
		t.Errorf("mapped siblings missing from output:\n%s", got)
	}
}

func TestConvert_CalcNodesEmittedAtEnd(t *testing.T) {
	d := parseSample(t, sampleADL, "test.adl")
	d.Widgets = append(d.Widgets, &medm.Widget{
		Symbol:   "rectangle",
		Geometry: &medm.Geometry{X: 0, Y: 0, Width: 10, Height: 10},
		Contents: map[string]any{
			"dynamic attribute": map[string]string{
				"vis": "calc", "calc": "A#0", "chan": "SOME:CHAN", "chanB": "OTHER:CHAN",
			},
		},
	})

	got := quietConverter().Convert(d)

	nodeAt := strings.Index(got, "calc_vis_0: !Calc")
	if nodeAt < 0 {
		t.Fatalf("no calc node block in output:\n%s", got)
	}
	widgetAt := strings.Index(got, "rectangle_2: !Rectangle")
	if widgetAt < 0 || nodeAt < widgetAt {
		t.Errorf("calc node must trail the widget blocks")
	}

	block := got[nodeAt:]
	for _, line := range []string{
		`    A: "SOME:CHAN"`,
		`    B: "OTHER:CHAN"`,
		`    calc: "A!=0"`,
		`    output: "loc://calc_vis_0"`,
	} {
		if !strings.Contains(block, line) {
			t.Errorf("calc node block missing %q:\n%s", line, block)
		}
	}
	if !strings.Contains(got, `visibility: "loc://calc_vis_0"`) {
		t.Errorf("widget does not reference the calc node output:\n%s", got)
	}
}

func TestConvert_NoStateLeaksBetweenDocuments(t *testing.T) {
	c := quietConverter()

	first := parseSample(t, sampleADL, "first.adl")
	first.Widgets = append(first.Widgets, &medm.Widget{
		Symbol:   "rectangle",
		Geometry: &medm.Geometry{X: 0, Y: 0, Width: 10, Height: 10},
		Contents: map[string]any{
			"dynamic attribute": map[string]string{"vis": "calc", "calc": "A#0", "chan": "X"},
		},
	})
	if out := c.Convert(first); !strings.Contains(out, "calc_vis_0") {
		t.Fatalf("first conversion missing its calc node")
	}

	second := parseSample(t, sampleADL, "second.adl")
	out := c.Convert(second)
	if strings.Contains(out, "calc_vis") {
		t.Errorf("calc node leaked into the second document:\n%s", out)
	}
	if strings.Count(out, "_medm_color_1:") != 1 {
		t.Errorf("alias definitions not rebuilt per document:\n%s", out)
	}
}
