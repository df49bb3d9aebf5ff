package tabular

import (
	"bytes"
	"io"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/xerschedule/core/internal/schederr"
	"github.com/xerschedule/core/internal/validation"
)

// MaxInputBytes is the hard ceiling on input size (§4.1).
const MaxInputBytes = 100 * 1024 * 1024

// MaxRows is the hard ceiling on cumulative %R rows across the file (§4.1).
const MaxRows = 1_000_000

const (
	markerHeader     = "ERMHDR"
	markerBeginTable = "%T"
	markerFields     = "%F"
	markerRow        = "%R"
	markerEnd        = "%E"
)

// Parse tokenizes an XER byte buffer into a Document. It enforces the
// size/row ceilings and the Windows-1252-then-UTF-8 decode fallback.
// Two non-fatal anomalies are recorded on the returned
// validation.Result instead of raised as an error: a missing ERMHDR
// line (info) and a %R row before any %F field list (warning). Rows
// shorter than the field list are kept as they are, without a message.
func Parse(data []byte) (*Document, *validation.Result, error) {
	result := validation.NewResult()

	if len(data) == 0 {
		return nil, result, schederr.NewEmptyFile()
	}
	if len(data) > MaxInputBytes {
		return nil, result, schederr.NewFileTooLarge(float64(len(data))/(1024*1024), MaxInputBytes/(1024*1024))
	}

	text, err := decode(data)
	if err != nil {
		return nil, result, schederr.NewEncoding(err)
	}

	doc, sawAnyMarker, _, err := tokenize(text, result)
	if err != nil {
		return nil, result, err
	}
	if !sawAnyMarker {
		return nil, result, schederr.NewInvalidFormat("no recognizable XER markers found")
	}
	if !doc.SawHeader {
		result.AddInfo(validation.CodeMissingHeader, "no ERMHDR line encountered")
	}
	return doc, result, nil
}

// decode implements the Windows-1252-preferred, UTF-8-fallback rule.
// charmap's Windows-1252 decoder maps every byte value to a rune and
// does not report decode errors, so the Windows-1252 attempt succeeds
// for any input and the UTF-8 branch is reached only if the transform
// itself returns an error.
func decode(data []byte) (string, error) {
	decoded, _, err := transform.Bytes(charmap.Windows1252.NewDecoder(), data)
	if err == nil {
		return string(decoded), nil
	}
	if utf8.Valid(data) {
		return string(data), nil
	}
	return "", err
}

func tokenize(text string, result *validation.Result) (*Document, bool, int, error) {
	doc := &Document{Tables: make(map[string]*Table)}

	var current *Table
	sawAnyMarker := false
	rowCount := 0

	for _, line := range splitLines(text) {
		if strings.TrimSpace(line) == "" {
			continue
		}
		fields := strings.Split(line, "\t")
		marker := fields[0]

		switch marker {
		case markerHeader:
			sawAnyMarker = true
			doc.SawHeader = true

		case markerBeginTable:
			sawAnyMarker = true
			if current != nil {
				finalizeTable(doc, current)
			}
			name := ""
			if len(fields) > 1 {
				name = fields[1]
			}
			current = &Table{Name: name}

		case markerFields:
			sawAnyMarker = true
			if current == nil {
				continue
			}
			current.Fields = append([]string{}, fields[1:]...)
			current.indexFields()

		case markerRow:
			sawAnyMarker = true
			if current == nil || current.Fields == nil {
				result.AddWarning(validation.CodeRowBeforeFields, "%R row encountered before any %F field list; row skipped")
				continue
			}
			cells := fields[1:]
			if len(cells) > len(current.Fields) {
				cells = cells[:len(current.Fields)]
			}
			current.Rows = append(current.Rows, Row{Values: append([]string{}, cells...)})
			rowCount++
			if rowCount > MaxRows {
				return nil, sawAnyMarker, rowCount, schederr.NewTooManyRows(rowCount, MaxRows)
			}

		case markerEnd:
			sawAnyMarker = true
			if current != nil {
				finalizeTable(doc, current)
				current = nil
			}

		default:
			// Unrecognized line outside the marker grammar; ignored.
		}
	}

	// EOF without %E: the final open table is emitted only if it has rows.
	if current != nil && len(current.Rows) > 0 {
		finalizeTable(doc, current)
	}

	return doc, sawAnyMarker, rowCount, nil
}

// finalizeTable records a finished table under its uppercase name.
// Duplicate %T for the same name keeps the last occurrence, which a
// plain map assignment gives for free.
func finalizeTable(doc *Document, t *Table) {
	doc.Tables[strings.ToUpper(t.Name)] = t
}

// splitLines frames the byte stream on any of LF, CR, or CRLF.
func splitLines(text string) []string {
	normalized := strings.NewReplacer("\r\n", "\n", "\r", "\n").Replace(text)
	return strings.Split(normalized, "\n")
}

// ReadAll is a convenience wrapper for callers holding an io.Reader
// instead of a byte slice (e.g. an HTTP multipart upload).
func ReadAll(r io.Reader) ([]byte, error) {
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, r); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
