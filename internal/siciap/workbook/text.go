package workbook

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/saintfish/chardet"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
)

// minConfidence is the chardet confidence (0-100) required to trust a guess.
const minConfidence = 70

// minSeparators is how often a separator must recur on a line for the
// manual parser to keep that line.
const minSeparators = 3

var separators = []rune{',', ';', '\t', '|'}

var manualEncodings = []struct {
	name string
	enc  encoding.Encoding
}{
	{"utf-8", unicode.UTF8},
	{"latin-1", charmap.ISO8859_1},
	{"cp1252", charmap.Windows1252},
	{"iso-8859-1", charmap.ISO8859_1},
}

var errNoDelimiter = errors.New("no separator produced two or more columns")

// decodeText converts data to UTF-8. Input that is not valid UTF-8 goes
// through charset detection; when the detector is unsure the text is read
// as Windows-1252, the encoding of the procurement system exports.
func decodeText(data []byte) string {
	data = trimBOM(data)
	if utf8.Valid(data) {
		return string(data)
	}
	if res, err := chardet.NewTextDetector().DetectBest(data); err == nil && res.Confidence >= minConfidence {
		if enc, err := htmlindex.Get(res.Charset); err == nil {
			if out, err := enc.NewDecoder().Bytes(data); err == nil {
				return string(out)
			}
		}
	}
	if out, err := charmap.Windows1252.NewDecoder().Bytes(data); err == nil {
		return string(out)
	}
	return strings.ToValidUTF8(string(data), "�")
}

// readDelimited parses the upload as CSV-like text through gota.
func readDelimited(data []byte, _ string) (grid, error) {
	text := decodeText(data)
	if strings.TrimSpace(text) == "" {
		return nil, errNoDelimiter
	}

	for _, sep := range separators {
		df := dataframe.ReadCSV(strings.NewReader(text),
			dataframe.WithDelimiter(sep),
			dataframe.WithLazyQuotes(true),
			dataframe.HasHeader(false),
			dataframe.DetectTypes(false),
			dataframe.DefaultType(series.String),
		)
		if df.Error() != nil || df.Ncol() < 2 {
			continue
		}
		// Records starts with the generated X0..Xn names.
		records := df.Records()
		if len(records) < 2 {
			continue
		}
		return grid(records[1:]), nil
	}
	return nil, errNoDelimiter
}

// readManual is the last resort for ragged text that the CSV reader rejects.
func readManual(data []byte, _ string) (grid, error) {
	for _, e := range manualEncodings {
		decoded, err := e.enc.NewDecoder().Bytes(trimBOM(data))
		if err != nil {
			continue
		}
		lines := candidateLines(string(decoded))
		if len(lines) < 2 {
			continue
		}

		sep := dominantSeparator(lines)
		var g grid
		for _, line := range lines {
			if strings.Count(line, string(sep)) < minSeparators {
				continue
			}
			cells := strings.Split(line, string(sep))
			for i, c := range cells {
				cells[i] = strings.Trim(strings.TrimSpace(c), `"`)
			}
			g = append(g, cells)
		}
		if len(g) >= 2 {
			return g, nil
		}
	}
	return nil, fmt.Errorf("no line holds %d or more separators", minSeparators)
}

func candidateLines(text string) []string {
	var out []string
	for _, line := range strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n") {
		for _, sep := range separators {
			if strings.Count(line, string(sep)) >= minSeparators {
				out = append(out, line)
				break
			}
		}
	}
	return out
}

func dominantSeparator(lines []string) rune {
	best, bestCount := separators[0], -1
	for _, sep := range separators {
		n := 0
		for _, line := range lines {
			n += strings.Count(line, string(sep))
		}
		if n > bestCount {
			best, bestCount = sep, n
		}
	}
	return best
}

func isBlankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func trimBOM(b []byte) []byte {
	return bytes.TrimPrefix(b, []byte("\xef\xbb\xbf"))
}
