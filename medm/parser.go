package medm

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Special top-level blocks that describe the document rather than a
// widget.
const (
	blockFile     = "file"
	blockDisplay  = "display"
	blockColorMap = "color map"
)

// block is a raw ADL block before interpretation: a name, key=value
// pairs, nested blocks, and bare list tokens (color table entries,
// polygon points).
type block struct {
	name     string
	keys     map[string]string
	children []*block
	values   []string
}

// ParseFile reads and parses one ADL display file.
func ParseFile(path string) (*Display, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open ADL file: %w", err)
	}
	defer f.Close()

	d, err := Parse(f, path)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return d, nil
}

// Parse parses ADL text from r. sourceName is recorded on the Display
// and used to derive its title.
func Parse(r io.Reader, sourceName string) (*Display, error) {
	blocks, err := parseBlocks(r)
	if err != nil {
		return nil, err
	}

	stem := strings.TrimSuffix(filepath.Base(sourceName), filepath.Ext(sourceName))
	d := &Display{
		SourceFile: sourceName,
		Title:      stem,
		Foreground: UnsetColor(),
		Background: UnsetColor(),
	}

	for _, b := range blocks {
		switch b.name {
		case blockFile:
			// Carries the recorded file name and ADL version;
			// the on-disk name wins for titling.
		case blockDisplay:
			interpretDisplay(b, d)
		case blockColorMap:
			d.ColorTable = interpretColorMap(b)
		default:
			d.Widgets = append(d.Widgets, interpretWidget(b))
		}
	}

	return d, nil
}

// parseBlocks tokenizes the brace-delimited ADL syntax into a block
// tree. ADL is strictly line-oriented: a block opens with `name {` on
// one line and closes with a lone `}`.
func parseBlocks(r io.Reader) ([]*block, error) {
	var roots []*block
	var stack []*block

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineno := 0
	for scanner.Scan() {
		lineno++
		line := strings.TrimSpace(strings.TrimSuffix(scanner.Text(), "\r"))
		if line == "" {
			continue
		}

		switch {
		case strings.HasSuffix(line, "{"):
			name := unquote(strings.TrimSpace(strings.TrimSuffix(line, "{")))
			b := &block{name: name, keys: make(map[string]string)}
			if len(stack) == 0 {
				roots = append(roots, b)
			} else {
				parent := stack[len(stack)-1]
				parent.children = append(parent.children, b)
			}
			stack = append(stack, b)

		case line == "}":
			if len(stack) == 0 {
				return nil, fmt.Errorf("line %d: unexpected closing brace", lineno)
			}
			stack = stack[:len(stack)-1]

		default:
			if len(stack) == 0 {
				// Stray content outside any block; MEDM ignores it.
				continue
			}
			b := stack[len(stack)-1]
			if key, value, ok := splitKeyValue(line); ok {
				b.keys[key] = value
			} else {
				b.values = append(b.values, strings.Fields(line)...)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read ADL text: %w", err)
	}
	if len(stack) != 0 {
		return nil, fmt.Errorf("unbalanced braces: %d block(s) left open", len(stack))
	}
	return roots, nil
}

// splitKeyValue splits a `key=value` line. Keys may be quoted
// ("composite name"="x") and values may be quoted strings containing
// '='. Bare list tokens such as color table entries have no '=' and
// report ok=false.
func splitKeyValue(line string) (key, value string, ok bool) {
	i := strings.Index(line, "=")
	if i < 0 {
		return "", "", false
	}
	key = unquote(strings.TrimSpace(line[:i]))
	if key == "" {
		return "", "", false
	}
	value = unquote(strings.TrimSpace(line[i+1:]))
	return key, value, true
}

func unquote(s string) string {
	if len(s) >= 2 && strings.HasPrefix(s, `"`) && strings.HasSuffix(s, `"`) {
		return s[1 : len(s)-1]
	}
	return s
}

func interpretDisplay(b *block, d *Display) {
	for _, c := range b.children {
		if c.name == "object" {
			d.Geometry = interpretGeometry(c)
		}
	}
	if v, ok := b.keys["clr"]; ok {
		if i, err := strconv.Atoi(v); err == nil {
			d.Foreground = IndexColor(i)
		}
	}
	if v, ok := b.keys["bclr"]; ok {
		if i, err := strconv.Atoi(v); err == nil {
			d.Background = IndexColor(i)
		}
	}
}

// interpretColorMap reads the per-document palette. Modern ADL files
// list bare hex entries inside a `colors` block; pre-2.2 files carry
// one `dl_color` block per entry with r/g/b keys.
func interpretColorMap(b *block) []Color {
	var table []Color
	for _, c := range b.children {
		switch c.name {
		case "colors":
			for _, v := range c.values {
				v = strings.TrimSuffix(strings.TrimSpace(v), ",")
				if col, ok := parseHexColor(v); ok {
					table = append(table, col)
				}
			}
		case "dl_color":
			table = append(table, Color{
				R: uint8(atoiOr(c.keys["r"], 0)),
				G: uint8(atoiOr(c.keys["g"], 0)),
				B: uint8(atoiOr(c.keys["b"], 0)),
			})
		}
	}
	return table
}

func parseHexColor(s string) (Color, bool) {
	if len(s) != 6 {
		return Color{}, false
	}
	n, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return Color{}, false
	}
	return Color{R: uint8(n >> 16), G: uint8(n >> 8), B: uint8(n)}, true
}

func atoiOr(s string, fallback int) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return fallback
	}
	return n
}

// interpretWidget turns a raw block into a Widget. Unknown sections
// and attributes are retained in Contents so the lowering stage can
// decide what to do with them; color keys fold into the widget's
// color fields.
func interpretWidget(b *block) *Widget {
	w := &Widget{
		Symbol:     b.name,
		Foreground: UnsetColor(),
		Background: UnsetColor(),
		Contents:   make(map[string]any),
	}

	for _, c := range b.children {
		switch {
		case c.name == "object":
			w.Geometry = interpretGeometry(c)

		case c.name == "children":
			for _, cc := range c.children {
				w.Widgets = append(w.Widgets, interpretWidget(cc))
			}

		case c.name == "points":
			w.Points = interpretPoints(c)

		case strings.HasPrefix(c.name, "display["):
			w.Displays = append(w.Displays, linkRecord(c))

		case strings.HasPrefix(c.name, "command["):
			w.Commands = append(w.Commands, linkRecord(c))

		default:
			sec := flattenSection(c)
			w.Contents[c.name] = sec
			switch c.name {
			case "basic attribute":
				if i, ok := sectionColorIndex(sec, "clr"); ok {
					w.Foreground = IndexColor(i)
				}
			case "control", "monitor":
				if i, ok := sectionColorIndex(sec, "clr"); ok {
					w.Foreground = IndexColor(i)
				}
				if i, ok := sectionColorIndex(sec, "bclr"); ok {
					w.Background = IndexColor(i)
				}
			}
		}
	}

	for k, v := range b.keys {
		switch k {
		case "textix":
			w.Title = v
		case "clr":
			if i, err := strconv.Atoi(v); err == nil {
				w.Foreground = IndexColor(i)
			}
		case "bclr":
			if i, err := strconv.Atoi(v); err == nil {
				w.Background = IndexColor(i)
			}
		default:
			w.Contents[k] = v
		}
	}

	return w
}

// flattenSection collapses a section block and any nested blocks
// (old ADL versions wrap attributes in an extra `attr` level) into a
// flat key set.
func flattenSection(b *block) map[string]string {
	sec := make(map[string]string, len(b.keys))
	var walk func(*block)
	walk = func(n *block) {
		for k, v := range n.keys {
			sec[k] = v
		}
		for _, c := range n.children {
			walk(c)
		}
	}
	walk(b)
	return sec
}

func sectionColorIndex(sec map[string]string, key string) (int, bool) {
	v, ok := sec[key]
	if !ok {
		return 0, false
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}
	return i, true
}

func interpretGeometry(b *block) *Geometry {
	return &Geometry{
		X:      atoiOr(b.keys["x"], 0),
		Y:      atoiOr(b.keys["y"], 0),
		Width:  atoiOr(b.keys["width"], 0),
		Height: atoiOr(b.keys["height"], 0),
	}
}

// interpretPoints reads `(x,y)` vertex tokens.
func interpretPoints(b *block) []Point {
	var pts []Point
	for _, v := range b.values {
		v = strings.TrimSuffix(strings.TrimPrefix(strings.TrimSpace(v), "("), ")")
		parts := strings.SplitN(v, ",", 2)
		if len(parts) != 2 {
			continue
		}
		x, errX := strconv.Atoi(strings.TrimSpace(parts[0]))
		y, errY := strconv.Atoi(strings.TrimSpace(parts[1]))
		if errX != nil || errY != nil {
			continue
		}
		pts = append(pts, Point{X: x, Y: y})
	}
	return pts
}

func linkRecord(b *block) LinkRecord {
	return LinkRecord{
		Label: b.keys["label"],
		Name:  b.keys["name"],
		Args:  b.keys["args"],
	}
}
