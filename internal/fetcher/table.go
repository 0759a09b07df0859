package fetcher

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Table is a fully read sheet. Header may be empty for headerless inputs.
type Table struct {
	Header []string
	Rows   [][]string

	colIdx map[string]int
}

// SetHeader installs the header row and rebuilds the column index.
func (t *Table) SetHeader(header []string) {
	t.Header = header
	t.colIdx = make(map[string]int, len(header))
	for i, col := range header {
		key := NormalizeCol(col)
		if _, dup := t.colIdx[key]; dup {
			continue
		}
		t.colIdx[key] = i
	}
}

// HasCol reports whether the header contains name.
func (t *Table) HasCol(name string) bool {
	_, ok := t.colIdx[NormalizeCol(name)]
	return ok
}

// Col gets a column value by header name; missing columns and short rows yield "".
func (t *Table) Col(record []string, name string) string {
	idx, ok := t.colIdx[NormalizeCol(name)]
	if !ok || idx >= len(record) {
		return ""
	}
	return record[idx]
}

// Cell gets a column value by position; out-of-range yields "".
func Cell(record []string, idx int) string {
	if idx < 0 || idx >= len(record) {
		return ""
	}
	return record[idx]
}

// NormalizeCol trims, NFC-normalizes and lowercases a header name so that
// workbooks saved on different platforms match the same configured column.
func NormalizeCol(s string) string {
	s = strings.TrimPrefix(s, utf8BOM)
	return strings.ToLower(norm.NFC.String(strings.TrimSpace(s)))
}
