package payload

import (
	"encoding/json"
	"math"
	"math/big"
	"strconv"
	"strings"
)

// StringOrNull stringifies a scalar and trims it. Null, empty and whitespace-only
// values yield nil.
func StringOrNull(v any) *string {
	var s string
	switch t := v.(type) {
	case nil:
		return nil
	case string:
		s = t
	case bool:
		s = strconv.FormatBool(t)
	case float64:
		s = formatNumber(t)
	case float32:
		s = formatNumber(float64(t))
	case json.Number:
		s = t.String()
	case int:
		s = strconv.Itoa(t)
	case int64:
		s = strconv.FormatInt(t, 10)
	case map[string]any, []any:
		// objects and arrays are not scalars
		return nil
	default:
		return nil
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

// FullName joins first and last name with a single space.
func FullName(first, last any) *string {
	var f, l string
	if p := StringOrNull(first); p != nil {
		f = *p
	}
	if p := StringOrNull(last); p != nil {
		l = *p
	}
	name := strings.TrimSpace(f + " " + l)
	if name == "" {
		return nil
	}
	return &name
}

// Amount coerces a payment amount. Numbers pass through, numeric strings are
// parsed, anything else (booleans included) is nil. Non-finite results are nil.
func Amount(raw any) *float64 {
	var f float64
	switch t := raw.(type) {
	case float64:
		f = t
	case float32:
		f = float64(t)
	case int:
		f = float64(t)
	case int64:
		f = float64(t)
	case json.Number:
		v, err := t.Float64()
		if err != nil {
			return nil
		}
		f = v
	case string:
		s := StringOrNull(t)
		if s == nil {
			return nil
		}
		v, ok := parseNumber(*s)
		if !ok {
			return nil
		}
		f = v
	default:
		return nil
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}

func formatNumber(f float64) string {
	if math.IsInf(f, 1) {
		return "Infinity"
	}
	if math.IsInf(f, -1) {
		return "-Infinity"
	}
	if math.IsNaN(f) {
		return "NaN"
	}
	if f == 0 {
		return "0"
	}
	if abs := math.Abs(f); abs >= 1e21 || abs < 1e-6 {
		// Unpadded exponent: 1.5e-7, not 1.5e-07.
		mant, exp, _ := strings.Cut(strconv.FormatFloat(f, 'e', -1, 64), "e")
		sign, digits := exp[:1], strings.TrimLeft(exp[1:], "0")
		return mant + "e" + sign + digits
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// parseNumber reads a trimmed numeric string. Decimal and exponent forms go
// through ParseFloat; unsigned 0x, 0o and 0b integers are read in their base.
// Hex floats and digit separators are rejected.
func parseNumber(s string) (float64, bool) {
	if len(s) > 2 && s[0] == '0' {
		base := 0
		switch s[1] {
		case 'x', 'X':
			base = 16
		case 'o', 'O':
			base = 8
		case 'b', 'B':
			base = 2
		}
		if base != 0 {
			if s[2] == '+' || s[2] == '-' {
				return 0, false
			}
			n, ok := new(big.Int).SetString(s[2:], base)
			if !ok {
				return 0, false
			}
			f, _ := new(big.Float).SetInt(n).Float64()
			return f, true
		}
	}
	if strings.ContainsAny(s, "xXpP_") {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}
