// Package normalize coerces single spreadsheet cells into the values stored
// in the relational schema.
package normalize

import (
	"math"
	"strings"
)

var nullTokens = map[string]bool{
	"null": true,
	"none": true,
	"nan":  true,
	"na":   true,
	"nat":  true,
}

// IsNull reports whether v is an absent value: nil, a blank string, one of
// the null tokens (case-insensitive) or a NaN float.
func IsNull(v any) bool {
	switch x := v.(type) {
	case nil:
		return true
	case string:
		t := strings.TrimSpace(x)
		return t == "" || nullTokens[strings.ToLower(t)]
	case float64:
		return math.IsNaN(x)
	case float32:
		return math.IsNaN(float64(x))
	}
	return false
}

// NormalizeNull maps absent values to nil and passes everything else through.
func NormalizeNull(v any) any {
	if IsNull(v) {
		return nil
	}
	return v
}
