package normalize

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

const maxTextLength = 990

// VigencyMarker stands in for a contract end date when the contract runs
// until every obligation is fulfilled.
const VigencyMarker = "CUMPLIMIENTO TOTAL DE LAS OBLIGACIONES"

var latinReplacements = map[rune]rune{
	'á': 'a', 'à': 'a', 'ä': 'a', 'â': 'a', 'ã': 'a', 'å': 'a',
	'Á': 'A', 'À': 'A', 'Ä': 'A', 'Â': 'A', 'Ã': 'A', 'Å': 'A',
	'é': 'e', 'è': 'e', 'ë': 'e', 'ê': 'e',
	'É': 'E', 'È': 'E', 'Ë': 'E', 'Ê': 'E',
	'í': 'i', 'ì': 'i', 'ï': 'i', 'î': 'i',
	'Í': 'I', 'Ì': 'I', 'Ï': 'I', 'Î': 'I',
	'ó': 'o', 'ò': 'o', 'ö': 'o', 'ô': 'o', 'õ': 'o',
	'Ó': 'O', 'Ò': 'O', 'Ö': 'O', 'Ô': 'O', 'Õ': 'O',
	'ú': 'u', 'ù': 'u', 'ü': 'u', 'û': 'u',
	'Ú': 'U', 'Ù': 'U', 'Ü': 'U', 'Û': 'U',
	'ñ': 'n', 'Ñ': 'N',
	'ç': 'c', 'Ç': 'C',
	'ý': 'y', 'ÿ': 'y', 'Ý': 'Y',
}

var reservedIdentifiers = map[string]bool{
	"select": true, "from": true, "where": true, "table": true, "order": true,
	"group": true, "user": true, "limit": true, "offset": true, "insert": true,
	"update": true, "delete": true, "create": true, "drop": true, "index": true,
	"primary": true, "key": true, "default": true, "null": true, "and": true,
	"or": true, "not": true, "check": true,
}

var underscoreRuns = regexp.MustCompile(`_+`)

// StripAccents composes s and replaces accented Latin letters by their base letter.
func StripAccents(s string) string {
	return strings.Map(func(r rune) rune {
		if repl, ok := latinReplacements[r]; ok {
			return repl
		}
		return r
	}, norm.NFC.String(s))
}

// SanitizeText renders v as text, drops NUL bytes, doubles single quotes and
// truncates to 990 characters. Absent values stay nil.
func SanitizeText(v any) any {
	if v == nil {
		return nil
	}
	s := Stringify(v)
	s = strings.ReplaceAll(s, "\x00", "")
	s = strings.ReplaceAll(s, "'", "''")
	return Truncate(s, maxTextLength)
}

// Truncate cuts s to at most n characters.
func Truncate(s string, n int) string {
	if n <= 0 || utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n])
}

// Stringify renders a cell value as text. Numbers use their shortest
// decimal form and times the DD/MM/YYYY layout of the loaded tables.
func Stringify(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case float64:
		return FormatNumber(x)
	case float32:
		return FormatNumber(float64(x))
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case time.Time:
		return formatDate(x)
	case []byte:
		return string(x)
	}
	return fmt.Sprint(v)
}

// CleanIdentifier turns an arbitrary label into a safe lowercase SQL identifier.
func CleanIdentifier(name string) string {
	s := StripAccents(name)
	s = strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			return r
		}
		return '_'
	}, s)
	s = underscoreRuns.ReplaceAllString(s, "_")
	s = strings.ToLower(strings.Trim(s, "_"))

	if s == "" {
		return "column"
	}
	if s[0] >= '0' && s[0] <= '9' {
		s = "col_" + s
	}
	if reservedIdentifiers[s] {
		s = "x_" + s
	}
	return s
}

// IsVigencyMarker reports whether s contains the indefinite vigency marker,
// ignoring case, accents and spacing.
func IsVigencyMarker(s string) bool {
	folded := strings.ToLower(strings.Join(strings.Fields(StripAccents(s)), " "))
	return strings.Contains(folded, strings.ToLower(VigencyMarker))
}
