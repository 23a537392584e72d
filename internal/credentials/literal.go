package credentials

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"

	"github.com/tidwall/gjson"
)

// stringify renders a top level value the way it is stored in the secret.
// Strings are stored as their content, everything else as a literal:
// True/False, None, integers as written, floats in shortest repr form
// (100.0, 1.1, 1e+16), and objects and arrays as {'k': v} and [a, b].
func stringify(value gjson.Result) string {
	if value.Type == gjson.String {
		return value.String()
	}
	var b strings.Builder
	writeLiteral(&b, value)
	return b.String()
}

func writeLiteral(b *strings.Builder, value gjson.Result) {
	switch {
	case value.Type == gjson.String:
		writeQuoted(b, value.String())
	case value.Type == gjson.True:
		b.WriteString("True")
	case value.Type == gjson.False:
		b.WriteString("False")
	case value.Type == gjson.Null:
		b.WriteString("None")
	case value.Type == gjson.Number:
		b.WriteString(formatNumber(value.Raw))
	case value.IsArray():
		b.WriteByte('[')
		first := true
		value.ForEach(func(_, elem gjson.Result) bool {
			if !first {
				b.WriteString(", ")
			}
			first = false
			writeLiteral(b, elem)
			return true
		})
		b.WriteByte(']')
	case value.IsObject():
		writeObject(b, value)
	default:
		b.WriteString(value.Raw)
	}
}

// writeObject keeps the first position of a repeated key and its last value
func writeObject(b *strings.Builder, value gjson.Result) {
	var keys []string
	values := map[string]gjson.Result{}
	value.ForEach(func(key, v gjson.Result) bool {
		k := key.String()
		if _, seen := values[k]; !seen {
			keys = append(keys, k)
		}
		values[k] = v
		return true
	})

	b.WriteByte('{')
	for i, k := range keys {
		if i > 0 {
			b.WriteString(", ")
		}
		writeQuoted(b, k)
		b.WriteString(": ")
		writeLiteral(b, values[k])
	}
	b.WriteByte('}')
}

// formatNumber renders a JSON number. Without a fraction or exponent it is an
// integer and keeps its digits, otherwise it is a float64.
func formatNumber(raw string) string {
	if !strings.ContainsAny(raw, ".eE") {
		if strings.Trim(raw, "-0") == "" {
			return "0"
		}
		return raw
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil && !math.IsInf(f, 0) {
		return raw
	}
	return formatFloat(f)
}

// formatFloat uses the shortest round-trip digits, fixed notation for
// exponents -4 to 15 with at least one fractional digit, scientific otherwise.
func formatFloat(f float64) string {
	switch {
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	case math.IsNaN(f):
		return "nan"
	}

	sign := ""
	if math.Signbit(f) {
		sign = "-"
		f = -f
	}

	// d.ddde±XX
	sci := strconv.FormatFloat(f, 'e', -1, 64)
	mantissa, expPart, _ := strings.Cut(sci, "e")
	exp, _ := strconv.Atoi(expPart)
	digits := strings.Replace(mantissa, ".", "", 1)

	if exp < -4 || exp >= 16 {
		out := digits[:1]
		if len(digits) > 1 {
			out += "." + digits[1:]
		}
		expSign := "+"
		if exp < 0 {
			expSign = "-"
			exp = -exp
		}
		return fmt.Sprintf("%s%se%s%02d", sign, out, expSign, exp)
	}

	if exp < 0 {
		return sign + "0." + strings.Repeat("0", -exp-1) + digits
	}
	if len(digits) <= exp+1 {
		return sign + digits + strings.Repeat("0", exp+1-len(digits)) + ".0"
	}
	return sign + digits[:exp+1] + "." + digits[exp+1:]
}

// writeQuoted writes s in single quotes, switching to double quotes when s
// contains a single quote and no double quote. Non printable runes are escaped.
func writeQuoted(b *strings.Builder, s string) {
	quote := byte('\'')
	if strings.ContainsRune(s, '\'') && !strings.ContainsRune(s, '"') {
		quote = '"'
	}

	b.WriteByte(quote)
	for _, r := range s {
		switch {
		case r == rune(quote) || r == '\\':
			b.WriteByte('\\')
			b.WriteRune(r)
		case r == '\n':
			b.WriteString(`\n`)
		case r == '\r':
			b.WriteString(`\r`)
		case r == '\t':
			b.WriteString(`\t`)
		case unicode.IsPrint(r):
			b.WriteRune(r)
		case r < 0x100:
			fmt.Fprintf(b, `\x%02x`, r)
		case r < 0x10000:
			fmt.Fprintf(b, `\u%04x`, r)
		default:
			fmt.Fprintf(b, `\U%08x`, r)
		}
	}
	b.WriteByte(quote)
}
