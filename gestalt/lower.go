package gestalt

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/gestalt-tools/adl2gestalt/medm"
)

// indentUnit is one nesting level of the output format.
const indentUnit = "    "

// calcNode is a synthesized live-calculation node backing a computed
// visibility. Nodes accumulate on the lowerer during widget emission
// and are rendered at the end of the document. Repeated identical
// expressions mint separate nodes; the fan-out is intentional.
type calcNode struct {
	name     string
	expr     string
	channels [4]string // A through D
}

func (n *calcNode) outputChannel() string {
	return "loc://" + n.name
}

// lowerer carries document-scoped lowering state: the palette
// resolver, the canvas bounds used for omission checks, and the
// accumulated calc nodes. One lowerer serves exactly one document.
type lowerer struct {
	colors    *colorResolver
	canvas    *medm.Geometry
	log       zerolog.Logger
	calcNodes []*calcNode
}

// kindHandler emits the type-specific properties for one target kind.
// geom is the widget's effective geometry, already re-based when the
// widget sits inside a flattened group.
type kindHandler func(l *lowerer, w *medm.Widget, geom *medm.Geometry, lines []string) []string

var kindHandlers map[string]kindHandler

func init() {
	kindHandlers = map[string]kindHandler{
		"Text":          lowerText,
		"TextEntry":     lowerTextField,
		"TextMonitor":   lowerTextField,
		"Scale":         lowerScale,
		"Slider":        lowerScale,
		"MessageButton": lowerMessageButton,
		"RelatedDisplay": func(l *lowerer, w *medm.Widget, geom *medm.Geometry, lines []string) []string {
			return lowerLinkList(w, w.Displays, "links", "file", lines)
		},
		"ShellCommand": func(l *lowerer, w *medm.Widget, geom *medm.Geometry, lines []string) []string {
			return lowerLinkList(w, w.Commands, "commands", "command", lines)
		},
		"Polyline":    lowerPoints,
		"Polygon":     lowerPoints,
		"Arc":         lowerArc,
		"ByteMonitor": lowerByteMonitor,
		"Image":       lowerImage,
		"Group":       (*lowerer).lowerGroup,
	}
}

// lowerWidget produces the output lines for one widget, or nil to omit
// it. index feeds name generation; geom is the effective geometry
// (re-based by the caller for children of flattened groups).
func (l *lowerer) lowerWidget(w *medm.Widget, index int, geom *medm.Geometry) []string {
	if geom != nil && l.outsideCanvas(*geom) {
		l.log.Warn().
			Str("widget", w.Symbol).
			Int("x", geom.X).Int("y", geom.Y).
			Msg("widget entirely outside canvas, dropped")
		return nil
	}

	kind, ok := widgetKinds[w.Symbol]
	if !ok || kind == "" {
		l.log.Warn().Str("widget", w.Symbol).Msg("no Gestalt equivalent, dropped")
		return nil
	}

	lines := []string{fmt.Sprintf("%s: !%s", widgetName(w, index), kind)}
	if geom != nil {
		lines = append(lines, prop("geometry", formatGeometry(*geom)))
	}

	lines = l.lowerColors(w, kind, lines)

	if chan0 := channelOf(w); chan0 != "" {
		lines = append(lines, prop("pv", quote(chan0)))
	}

	lines = l.lowerVisibility(w, lines)

	if handler, ok := kindHandlers[kind]; ok {
		lines = handler(l, w, geom, lines)
	}
	return lines
}

// outsideCanvas reports whether a geometry lies entirely off the
// document canvas: right or bottom edge before the origin, or left or
// top edge past the canvas extent.
func (l *lowerer) outsideCanvas(g medm.Geometry) bool {
	if l.canvas == nil {
		return false
	}
	if g.X+g.Width < 0 || g.Y+g.Height < 0 {
		return true
	}
	return g.X > l.canvas.Width || g.Y > l.canvas.Height
}

// widgetName generates the output node name: the sanitized title when
// one exists, else the sanitized source symbol, suffixed with the
// sibling index.
func widgetName(w *medm.Widget, index int) string {
	if w.Title != "" {
		t := w.Title
		if r := []rune(t); len(r) > 20 {
			t = string(r[:20])
		}
		t = strings.NewReplacer(" ", "_", "/", "_", ":", "").Replace(t)
		return fmt.Sprintf("%s_%d", t, index)
	}
	return fmt.Sprintf("%s_%d", strings.ReplaceAll(w.Symbol, " ", "_"), index)
}

// lowerColors emits the widget's color lines. Closed shapes route
// their color into fill + border pairs; line-like shapes only ever get
// a border color.
func (l *lowerer) lowerColors(w *medm.Widget, kind string, lines []string) []string {
	fg, fgOK := l.colors.reference(w.Foreground)
	bg, bgOK := l.colors.reference(w.Background)

	switch {
	case closedShapeKinds[kind]:
		basic := w.Section("basic attribute")
		if fgOK {
			if basic["fill"] == "outline" {
				lines = append(lines, prop("border-color", fg))
			} else {
				lines = append(lines, prop("background", fg))
				lines = append(lines, prop("border-color", fg))
			}
		}
		lines = lowerBorder(basic, lines)
	case kind == "Polyline":
		if fgOK {
			lines = append(lines, prop("border-color", fg))
		}
		lines = lowerBorder(w.Section("basic attribute"), lines)
	default:
		if fgOK {
			lines = append(lines, prop("foreground", fg))
		}
		if bgOK {
			lines = append(lines, prop("background", bg))
		}
	}
	return lines
}

func lowerBorder(basic map[string]string, lines []string) []string {
	if basic == nil {
		return lines
	}
	if v, ok := basic["width"]; ok {
		lines = append(lines, prop("border-width", v))
	}
	if v, ok := basic["style"]; ok {
		style, known := borderStyles[v]
		if !known {
			style = "Solid"
		}
		lines = append(lines, prop("border-style", style))
	}
	return lines
}

// channelOf finds the widget's data binding: the chan field of its
// control or monitor record, emitted verbatim.
func channelOf(w *medm.Widget) string {
	if c := w.Section("control"); c != nil && c["chan"] != "" {
		return c["chan"]
	}
	if m := w.Section("monitor"); m != nil && m["chan"] != "" {
		return m["chan"]
	}
	return ""
}

// lowerVisibility handles the dynamic-attribute visibility modes.
// "if not zero" binds directly to the channel, "if zero" wraps it in a
// negation, "calc" synthesizes a calc node and binds to its output,
// "static" emits nothing. A calc mode with no channel A is dropped
// silently, matching the pass-through rule for missing expressions.
func (l *lowerer) lowerVisibility(w *medm.Widget, lines []string) []string {
	dyn := w.Section("dynamic attribute")
	if dyn == nil {
		return lines
	}
	chanA := dyn["chan"]
	switch dyn["vis"] {
	case "if not zero":
		if chanA != "" {
			lines = append(lines, prop("visibility", quote(chanA)))
		}
	case "if zero":
		if chanA != "" {
			lines = append(lines, prop("visibility", quote("!"+chanA)))
		}
	case "calc":
		if chanA == "" {
			return lines
		}
		node := &calcNode{
			name:     fmt.Sprintf("calc_vis_%d", len(l.calcNodes)),
			expr:     compileCalc(dyn["calc"]),
			channels: [4]string{chanA, dyn["chanB"], dyn["chanC"], dyn["chanD"]},
		}
		l.calcNodes = append(l.calcNodes, node)
		lines = append(lines, prop("visibility", quote(node.outputChannel())))
	}
	return lines
}

func lowerText(l *lowerer, w *medm.Widget, geom *medm.Geometry, lines []string) []string {
	if w.Title != "" {
		lines = append(lines, prop("text", quote(w.Title)))
	}
	if a := w.Attr("align"); a != "" {
		lines = append(lines, prop("alignment", alignmentOr(a)))
	}
	return lines
}

func lowerTextField(l *lowerer, w *medm.Widget, geom *medm.Geometry, lines []string) []string {
	if f := w.Attr("format"); f != "" {
		name, ok := formatNames[f]
		if !ok {
			name = "Decimal"
		}
		lines = append(lines, prop("format", name))
	}
	if a := w.Attr("align"); a != "" {
		lines = append(lines, prop("alignment", alignmentOr(a)))
	}
	return lines
}

func alignmentOr(adl string) string {
	if a, ok := alignmentNames[adl]; ok {
		return a
	}
	return "Left"
}

func lowerScale(l *lowerer, w *medm.Widget, geom *medm.Geometry, lines []string) []string {
	dir := w.Attr("direction")
	horizontal := dir != "up" && dir != "down"
	lines = append(lines, prop("horizontal", strconv.FormatBool(horizontal)))

	if limits := w.Section("limits"); limits != nil {
		if v, ok := limits["loprDefault"]; ok {
			lines = append(lines, prop("minimum", v))
		}
		if v, ok := limits["hoprDefault"]; ok {
			lines = append(lines, prop("maximum", v))
		}
	}
	return lines
}

func lowerMessageButton(l *lowerer, w *medm.Widget, geom *medm.Geometry, lines []string) []string {
	if v := w.Attr("label"); v != "" {
		lines = append(lines, prop("text", quote(v)))
	}
	if v := w.Attr("press_msg"); v != "" {
		lines = append(lines, prop("press-value", quote(v)))
	}
	if v := w.Attr("release_msg"); v != "" {
		lines = append(lines, prop("release-value", quote(v)))
	}
	return lines
}

// lowerLinkList emits the button label and ordered link records shared
// by related-display and shell-command widgets. targetKey names the
// per-record field holding the file or command text. A leading '-' on
// any label is a legacy "hide as folder icon" marker and is stripped.
func lowerLinkList(w *medm.Widget, records []medm.LinkRecord, listKey, targetKey string, lines []string) []string {
	label := w.Attr("label")
	if label == "" && len(records) > 0 {
		label = records[0].Label
		if label == "" {
			label = records[0].Name
		}
	}
	if label = strings.TrimPrefix(label, "-"); label != "" {
		lines = append(lines, prop("text", quote(label)))
	}

	if len(records) == 0 {
		return lines
	}
	lines = append(lines, prop(listKey, ""))
	for _, rec := range records {
		if rec.Name == "" {
			continue
		}
		recLabel := strings.TrimPrefix(rec.Label, "-")
		if recLabel == "" {
			// Unlabelled records fall back to the target file name, or
			// a generic caption for commands.
			if targetKey == "file" {
				recLabel = rec.Name
			} else {
				recLabel = "Command"
			}
		}
		entry := fmt.Sprintf("- { label: %s, %s: %s", quote(recLabel), targetKey, quote(rec.Name))
		if targetKey == "file" {
			entry += fmt.Sprintf(", macros: %s", quote(rec.Args))
		}
		entry += " }"
		lines = append(lines, indentUnit+indentUnit+entry)
	}
	return lines
}

// lowerPoints emits the vertex list of a polyline or polygon with
// coordinates relative to the widget's own (absolute) origin.
func lowerPoints(l *lowerer, w *medm.Widget, geom *medm.Geometry, lines []string) []string {
	if len(w.Points) == 0 {
		return lines
	}
	ox, oy := 0, 0
	if w.Geometry != nil {
		ox, oy = w.Geometry.X, w.Geometry.Y
	}
	parts := make([]string, len(w.Points))
	for i, p := range w.Points {
		parts[i] = fmt.Sprintf("%dx%d", p.X-ox, p.Y-oy)
	}
	return append(lines, prop("points", "[ "+strings.Join(parts, ", ")+" ]"))
}

// lowerArc truncates the 1/64-degree ADL angles to whole degrees.
func lowerArc(l *lowerer, w *medm.Widget, geom *medm.Geometry, lines []string) []string {
	if v := w.Attr("beginAngle"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			lines = append(lines, prop("start-angle", strconv.Itoa(int(f/medm.DegreeUnits))))
		}
	}
	if v := w.Attr("pathAngle"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			lines = append(lines, prop("span", strconv.Itoa(int(f/medm.DegreeUnits))))
		}
	}
	return lines
}

// lowerByteMonitor converts the ADL start/end bit pair into a bit
// count plus displayed start bit, and routes the widget colors into
// the on/off pair.
func lowerByteMonitor(l *lowerer, w *medm.Widget, geom *medm.Geometry, lines []string) []string {
	sbit := atoiAttr(w, "sbit", 15)
	ebit := atoiAttr(w, "ebit", 0)

	bits := sbit - ebit
	if bits < 0 {
		bits = -bits
	}
	start := sbit
	if ebit < sbit {
		start = ebit
	}
	lines = append(lines, prop("bits", strconv.Itoa(bits+1)))
	lines = append(lines, prop("start-bit", strconv.Itoa(start)))

	if on, ok := l.colors.reference(w.Foreground); ok {
		lines = append(lines, prop("on-color", on))
	}
	if off, ok := l.colors.reference(w.Background); ok {
		lines = append(lines, prop("off-color", off))
	}
	return lines
}

func lowerImage(l *lowerer, w *medm.Widget, geom *medm.Geometry, lines []string) []string {
	if v := w.Attr("image name"); v != "" {
		lines = append(lines, prop("file", quote(v)))
	}
	return lines
}

// lowerGroup flattens a composite: every child is lowered with its
// geometry re-based to the group origin and its lines indented one
// level deeper. Re-basing builds a fresh Geometry for the recursive
// call; the shared tree node keeps its absolute coordinates.
func (l *lowerer) lowerGroup(w *medm.Widget, geom *medm.Geometry, lines []string) []string {
	if len(w.Widgets) == 0 {
		return lines
	}
	lines = append(lines, prop("children", ""))
	for i, child := range w.Widgets {
		// Children re-base against the group's absolute origin; the
		// group's own effective geometry may itself be re-based when
		// groups nest.
		cg := child.Geometry
		if cg != nil && w.Geometry != nil {
			rebased := rebase(*cg, w.Geometry.X, w.Geometry.Y)
			cg = &rebased
		}
		for _, line := range l.lowerWidget(child, i, cg) {
			lines = append(lines, indentUnit+indentUnit+line)
		}
	}
	return lines
}

func atoiAttr(w *medm.Widget, key string, fallback int) int {
	v := w.Attr(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func prop(key, value string) string {
	if value == "" {
		return indentUnit + key + ":"
	}
	return indentUnit + key + ": " + value
}

func quote(s string) string {
	return `"` + s + `"`
}
