package gestalt

// widgetKinds is the static ADL symbol to Gestalt kind table. An empty
// value records a widget that has no Gestalt equivalent; such widgets
// are dropped with a diagnostic rather than approximated. Symbols
// absent from the table are treated the same way.
var widgetKinds = map[string]string{
	// Graphics objects
	"arc":       "Arc",
	"image":     "Image",
	"line":      "Polyline",
	"oval":      "Ellipse",
	"polygon":   "Polygon",
	"polyline":  "Polyline",
	"rectangle": "Rectangle",
	"text":      "Text",

	// Monitor objects
	"bar":            "Scale",
	"byte":           "ByteMonitor",
	"cartesian plot": "",
	"meter":          "",
	"strip chart":    "",
	"text update":    "TextMonitor",
	"indicator":      "Scale",

	// Controller objects
	"choice button":   "ChoiceButton",
	"menu":            "Menu",
	"message button":  "MessageButton",
	"related display": "RelatedDisplay",
	"shell command":   "ShellCommand",
	"slider":          "Slider",
	"valuator":        "Slider",
	"text entry":      "TextEntry",
	"wheel switch":    "",

	// Special objects
	"composite": "Group",
}

// closedShapeKinds route their color into fill + border pairs instead
// of the plain foreground/background lines.
var closedShapeKinds = map[string]bool{
	"Arc":       true,
	"Ellipse":   true,
	"Rectangle": true,
	"Polygon":   true,
}

// formatNames maps the ADL numeric display format enumeration,
// including both historical spellings of engineering notation. The
// dispatcher defaults to Decimal for anything unrecognized.
var formatNames = map[string]string{
	"decimal":        "Decimal",
	"exponential":    "Exponential",
	"engr. notation": "Engineering",
	"engr_notation":  "Engineering",
	"compact":        "Compact",
	"hexadecimal":    "Hexadecimal",
	"octal":          "Octal",
	"string":         "String",
	"binary":         "Binary",
}

// alignmentNames maps the ADL horizontal alignment spellings; the
// default is Left.
var alignmentNames = map[string]string{
	"horiz. left":     "Left",
	"horiz. centered": "Center",
	"horiz. right":    "Right",
}

// borderStyles maps the ADL edge style enumeration; the default is
// Solid.
var borderStyles = map[string]string{
	"solid": "Solid",
	"dash":  "Dashed",
}
