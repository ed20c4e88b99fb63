package normalize

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

const (
	dateLayout     = "02/01/2006"
	dateTimeLayout = "02/01/2006 15:04:05"

	minYear = 1900
	maxYear = 2200

	// Excel serial day numbers between 1954 and 2119.
	minExcelSerial = 20000
	maxExcelSerial = 80000
)

type dateStrategy struct {
	name  string
	parse func(s string) (time.Time, bool)
}

// Tried in order; per column the first strategy that parses anything wins.
var dateStrategies = []dateStrategy{
	{name: "dayfirst", parse: parseDayFirst},
	{name: "dd/mm/yyyy", parse: layoutParser("02/01/2006")},
	{name: "dd-mm-yyyy", parse: layoutParser("02-01-2006")},
	{name: "dd/mm/yyyy hh:mm:ss", parse: layoutParser("02/01/2006 15:04:05")},
	{name: "lenient", parse: parseLenient},
}

var dayFirstLayouts = []string{
	"2/1/2006",
	"2-1-2006",
	"2.1.2006",
	"2/1/2006 15:04:05",
	"2/1/2006 15:04",
	"2-1-2006 15:04:05",
	"2/1/06",
	"2-1-06",
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05.000",
	time.RFC3339,
	"2006/01/02",
	"2-Jan-2006",
	"02 Jan 2006",
}

var (
	dayFirstRe = regexp.MustCompile(`(\d{1,2})[/\-. ](\d{1,2})[/\-. ](\d{4}|\d{2})`)
	isoDateRe  = regexp.MustCompile(`(\d{4})[/\-](\d{1,2})[/\-](\d{1,2})`)
	serialRe   = regexp.MustCompile(`^\d{5}(\.\d+)?$`)
)

// DateReport describes how a date column was resolved.
type DateReport struct {
	Strategy string
	Parsed   int
	Lost     int
	Markers  int
}

func layoutParser(layout string) func(string) (time.Time, bool) {
	return func(s string) (time.Time, bool) {
		t, err := time.Parse(layout, strings.TrimSpace(s))
		if err != nil || !plausible(t) {
			return time.Time{}, false
		}
		return t, true
	}
}

func parseDayFirst(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range dayFirstLayouts {
		if t, err := time.Parse(layout, s); err == nil && plausible(t) {
			return t, true
		}
	}
	return time.Time{}, false
}

func parseLenient(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)

	if m := isoDateRe.FindStringSubmatch(s); m != nil {
		if t, ok := buildDate(m[1], m[2], m[3]); ok {
			return t, true
		}
	}
	if m := dayFirstRe.FindStringSubmatch(s); m != nil {
		year := m[3]
		if len(year) == 2 {
			year = "20" + year
		}
		if t, ok := buildDate(year, m[2], m[1]); ok {
			return t, true
		}
	}
	if serialRe.MatchString(s) {
		f, err := strconv.ParseFloat(s, 64)
		if err == nil && f >= minExcelSerial && f <= maxExcelSerial {
			if t, err := excelize.ExcelDateToTime(f, false); err == nil && plausible(t) {
				return t, true
			}
		}
	}
	return time.Time{}, false
}

func buildDate(y, m, d string) (time.Time, bool) {
	year, err1 := strconv.Atoi(y)
	month, err2 := strconv.Atoi(m)
	day, err3 := strconv.Atoi(d)
	if err1 != nil || err2 != nil || err3 != nil {
		return time.Time{}, false
	}
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, false
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	// reject dates that time.Date normalized, e.g. 31/02
	if t.Day() != day || !plausible(t) {
		return time.Time{}, false
	}
	return t, true
}

func plausible(t time.Time) bool {
	return t.Year() >= minYear && t.Year() <= maxYear
}

func formatDate(t time.Time) string {
	if t.Hour() != 0 || t.Minute() != 0 || t.Second() != 0 {
		return t.Format(dateTimeLayout)
	}
	return t.Format(dateLayout)
}

// ParseDate resolves a single cell. The vigency marker is kept verbatim and
// values no strategy understands are returned unchanged.
func ParseDate(v any) any {
	if IsNull(v) {
		return nil
	}
	if t, ok := v.(time.Time); ok {
		return formatDate(t)
	}
	s := Stringify(v)
	if IsVigencyMarker(s) {
		return v
	}
	for _, strategy := range dateStrategies {
		if t, ok := strategy.parse(s); ok {
			return formatDate(t)
		}
	}
	return v
}

// ParseDateColumn resolves a whole column with a single strategy: the first
// one that parses at least one cell. Cells that fail under the winner become
// nil; marker cells are preserved. When nothing parses, the column is
// returned with only absent values normalized.
func ParseDateColumn(values []any) ([]any, DateReport) {
	out := make([]any, len(values))
	var report DateReport
	var candidates []int

	for i, v := range values {
		switch {
		case IsNull(v):
			out[i] = nil
		case isTime(v):
			out[i] = formatDate(v.(time.Time))
			report.Parsed++
		case IsVigencyMarker(Stringify(v)):
			out[i] = v
			report.Markers++
		default:
			out[i] = v
			candidates = append(candidates, i)
		}
	}

	if len(candidates) == 0 {
		return out, report
	}

	for _, strategy := range dateStrategies {
		parsed := make(map[int]time.Time, len(candidates))
		for _, i := range candidates {
			if t, ok := strategy.parse(Stringify(values[i])); ok {
				parsed[i] = t
			}
		}
		if len(parsed) == 0 {
			continue
		}

		report.Strategy = strategy.name
		for _, i := range candidates {
			if t, ok := parsed[i]; ok {
				out[i] = formatDate(t)
				report.Parsed++
			} else {
				out[i] = nil
				report.Lost++
			}
		}
		return out, report
	}

	return out, report
}

func isTime(v any) bool {
	_, ok := v.(time.Time)
	return ok
}
