package normalize

import (
	"math"
	"strconv"
	"strings"
)

// ToNumber coerces v to a float. Strings use ',' as the decimal separator
// and lose every character outside [0-9+-.] before parsing. The second
// return is false when v is absent or cannot be parsed.
func ToNumber(v any) (float64, bool) {
	switch x := v.(type) {
	case nil:
		return 0, false
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return 0, false
		}
		return x, true
	case float32:
		return ToNumber(float64(x))
	case int:
		return float64(x), true
	case int64:
		return float64(x), true
	case int32:
		return float64(x), true
	case uint:
		return float64(x), true
	case uint64:
		return float64(x), true
	case string:
		return parseNumber(x)
	}
	return 0, false
}

func parseNumber(s string) (float64, bool) {
	if IsNull(s) {
		return 0, false
	}
	s = strings.ReplaceAll(s, ",", ".")
	cleaned := strings.Map(func(r rune) rune {
		if (r >= '0' && r <= '9') || r == '+' || r == '-' || r == '.' {
			return r
		}
		return -1
	}, s)
	if cleaned == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// ToInteger truncates ToNumber toward zero.
func ToInteger(v any) (int64, bool) {
	f, ok := ToNumber(v)
	if !ok || f > math.MaxInt64 || f < math.MinInt64 {
		return 0, false
	}
	return int64(f), true
}

// FormatNumber renders a float without a trailing ".0" for integral values,
// so product codes read as numbers keep their text form.
func FormatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
