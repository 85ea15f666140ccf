// Package sheets converts diagrams to and from a pair of flat CSV tables
// (nodes.csv, edges.csv) for spreadsheet round trips.
//
// The codec is deliberately bounded: only the fixed columns below survive
// a round trip. Arbitrary node parameters are not exported.
package sheets

import (
	"strings"
)

// Parse splits CSV text into rows of cells. Quoted cells may contain
// commas, line breaks and doubled quotes. Lines end at LF, CR or CRLF.
// Blank lines are skipped.
func Parse(text string) [][]string {
	var rows [][]string
	var row []string
	var cell strings.Builder
	inQuotes := false

	endRow := func() {
		row = append(row, cell.String())
		cell.Reset()
		if len(row) > 1 || row[0] != "" {
			rows = append(rows, row)
		}
		row = nil
	}

	for i := 0; i < len(text); i++ {
		ch := text[i]
		if inQuotes {
			if ch != '"' {
				cell.WriteByte(ch)
				continue
			}
			if i+1 < len(text) && text[i+1] == '"' {
				cell.WriteByte('"')
				i++
				continue
			}
			inQuotes = false
			continue
		}
		switch ch {
		case '"':
			inQuotes = true
		case ',':
			row = append(row, cell.String())
			cell.Reset()
		case '\r', '\n':
			if ch == '\r' && i+1 < len(text) && text[i+1] == '\n' {
				i++
			}
			endRow()
		default:
			cell.WriteByte(ch)
		}
	}
	endRow()
	return rows
}

// Format renders rows as CSV joined by "\n". Cells containing a comma,
// quote or line break are quoted with inner quotes doubled.
func Format(rows [][]string) string {
	var b strings.Builder
	for i, row := range rows {
		if i > 0 {
			b.WriteByte('\n')
		}
		for j, cell := range row {
			if j > 0 {
				b.WriteByte(',')
			}
			b.WriteString(quote(cell))
		}
	}
	return b.String()
}

func quote(s string) string {
	if !strings.ContainsAny(s, "\",\n\r") {
		return s
	}
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

// header maps lower-cased, trimmed column names to their index.
type header map[string]int

func newHeader(row []string) header {
	h := make(header, len(row))
	for i, name := range row {
		key := strings.ToLower(strings.TrimSpace(name))
		if _, dup := h[key]; !dup {
			h[key] = i
		}
	}
	return h
}

// get returns the named cell of row, or "" when the column is absent or
// the row is short.
func (h header) get(row []string, name string) string {
	i, ok := h[name]
	if !ok || i >= len(row) {
		return ""
	}
	return row[i]
}
