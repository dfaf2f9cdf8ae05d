package gestalt

import "strings"

// nePlaceholder stands in for the not-equal operator while the bare
// `=` and `!` rewrites run. It must be substituted first and restored
// after those rewrites, or a literal `!=` would be torn apart by them.
const nePlaceholder = "\x00NE\x00"

// calcFunctions maps MEDM calc function names to their target
// spellings. Names that contain another name as a suffix (SINH/SIN,
// ASIN/SIN, LOGE/LOG, ...) are listed first so the longer match wins.
var calcFunctions = []struct{ from, to string }{
	{"ASIN", "math.asin"},
	{"ACOS", "math.acos"},
	{"ATAN", "math.atan"},
	{"SINH", "math.sinh"},
	{"COSH", "math.cosh"},
	{"TANH", "math.tanh"},
	{"LOGE", "math.log"},
	{"FLOOR", "math.floor"},
	{"CEIL", "math.ceil"},
	{"SIN", "math.sin"},
	{"COS", "math.cos"},
	{"TAN", "math.tan"},
	{"LOG", "math.log10"},
	{"SQR", "math.sqrt"},
	{"EXP", "math.exp"},
	{"ABS", "abs"},
	{"MIN", "min"},
	{"MAX", "max"},
}

// compileCalc rewrites a legacy MEDM calc expression (operators #, =,
// &&, ||, ! and uppercase function names) into the target calc syntax
// (!=, ==, and, or, not, qualified functions). The substitutions are
// order-sensitive and must run exactly in this sequence. An empty
// expression passes through unchanged. Input already in target syntax
// is left as-is.
func compileCalc(expr string) string {
	if expr == "" {
		return ""
	}

	// Protect both spellings of not-equal before the bare rewrites.
	s := strings.ReplaceAll(expr, "#", nePlaceholder)
	s = strings.ReplaceAll(s, "!=", nePlaceholder)

	s = widenEquals(s)
	s = strings.ReplaceAll(s, "!", " not ")
	s = strings.ReplaceAll(s, nePlaceholder, "!=")
	s = strings.ReplaceAll(s, "&&", " and ")
	s = strings.ReplaceAll(s, "||", " or ")

	for _, f := range calcFunctions {
		s = strings.ReplaceAll(s, f.from, f.to)
	}
	return s
}

// widenEquals rewrites every bare `=` to `==`, leaving existing `==`,
// `<=` and `>=` untouched.
func widenEquals(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 4)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '=' {
			b.WriteByte(c)
			continue
		}
		if i+1 < len(s) && s[i+1] == '=' {
			b.WriteString("==")
			i++
			continue
		}
		if i > 0 && (s[i-1] == '<' || s[i-1] == '>') {
			b.WriteByte('=')
			continue
		}
		b.WriteString("==")
	}
	return b.String()
}
