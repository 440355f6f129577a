package samples

import (
	"math"
	"strconv"
	"strings"
	"unicode"
)

// repr builds the debug rendering shared by all sample variants:
// Name(key=value, key=value, ..., ). Every pair, including the last,
// is followed by ", ".
type repr struct {
	b strings.Builder
}

func newRepr(name string) *repr {
	r := &repr{}
	r.b.WriteString(name)
	r.b.WriteByte('(')
	return r
}

func (r *repr) field(key, value string) *repr {
	r.b.WriteString(key)
	r.b.WriteByte('=')
	r.b.WriteString(value)
	r.b.WriteString(", ")
	return r
}

func (r *repr) Float(key string, v float64) *repr {
	return r.field(key, formatFloat(v))
}

func (r *repr) Text(key, v string) *repr {
	return r.field(key, quoteText(v))
}

func (r *repr) OptionalText(key string, v *string) *repr {
	if v == nil {
		return r.field(key, "None")
	}
	return r.Text(key, *v)
}

func (r *repr) String() string {
	return r.b.String() + ")"
}

// formatFloat renders v in shortest round-trip form. Integral values keep a
// ".0" suffix and exponent notation is used outside [1e-4, 1e16).
func formatFloat(v float64) string {
	switch {
	case math.IsNaN(v):
		return "nan"
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	}

	e := strconv.FormatFloat(v, 'e', -1, 64)
	if v != 0 {
		exp, _ := strconv.Atoi(e[strings.IndexByte(e, 'e')+1:])
		if exp < -4 || exp >= 16 {
			return e
		}
	}

	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.ContainsRune(s, '.') {
		s += ".0"
	}
	return s
}

// quoteText quotes s with single quotes, switching to double quotes when s
// contains a single quote and no double quote.
func quoteText(s string) string {
	q := byte('\'')
	if strings.ContainsRune(s, '\'') && !strings.ContainsRune(s, '"') {
		q = '"'
	}

	var b strings.Builder
	b.WriteByte(q)
	for _, c := range s {
		switch {
		case c == '\\':
			b.WriteString(`\\`)
		case c == rune(q):
			b.WriteByte('\\')
			b.WriteRune(c)
		case c == '\n':
			b.WriteString(`\n`)
		case c == '\r':
			b.WriteString(`\r`)
		case c == '\t':
			b.WriteString(`\t`)
		case !unicode.IsPrint(c):
			b.WriteString(escapeRune(c))
		default:
			b.WriteRune(c)
		}
	}
	b.WriteByte(q)
	return b.String()
}

func escapeRune(c rune) string {
	hex := strconv.FormatInt(int64(c), 16)
	switch {
	case c < 0x100:
		return `\x` + strings.Repeat("0", 2-len(hex)) + hex
	case c < 0x10000:
		return `\u` + strings.Repeat("0", 4-len(hex)) + hex
	default:
		return `\U` + strings.Repeat("0", 8-len(hex)) + hex
	}
}
