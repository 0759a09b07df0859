// Package fetcher reads local CSV and XLSX inputs into in-memory tables.
package fetcher

import (
	"encoding/csv"
	"io"
	"os"
	"strings"

	"github.com/rotisserie/eris"
	"golang.org/x/text/encoding/htmlindex"
)

const utf8BOM = "\ufeff"

// CSVOptions configures the CSV reader.
type CSVOptions struct {
	Charset    string // WHATWG label, e.g. "utf-8", "euc-kr"; empty means utf-8
	Delimiter  rune   // default ','
	HasHeader  bool   // if true, first row becomes Table.Header
	Comment    rune   // comment character (0 = none)
	LazyQuotes bool
	TrimSpace  bool
}

// ReadCSV opens path and reads every row into a Table.
func ReadCSV(path string, opts CSVOptions) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "csv: open %s", path)
	}
	defer f.Close()

	return ReadCSVFrom(f, opts)
}

// ReadCSVFrom reads every row of r into a Table, decoding from opts.Charset.
func ReadCSVFrom(r io.Reader, opts CSVOptions) (*Table, error) {
	decoded, err := decodeCharset(r, opts.Charset)
	if err != nil {
		return nil, err
	}

	reader := csv.NewReader(decoded)
	if opts.Delimiter != 0 {
		reader.Comma = opts.Delimiter
	}
	if opts.Comment != 0 {
		reader.Comment = opts.Comment
	}
	reader.LazyQuotes = opts.LazyQuotes
	reader.FieldsPerRecord = -1 // allow variable fields

	t := &Table{}
	first := true
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, eris.Wrap(err, "csv: read row")
		}

		if first && len(record) > 0 {
			record[0] = strings.TrimPrefix(record[0], utf8BOM)
		}

		if opts.TrimSpace {
			for i, field := range record {
				record[i] = strings.TrimSpace(field)
			}
		}

		if first && opts.HasHeader {
			first = false
			t.SetHeader(record)
			continue
		}
		first = false

		t.Rows = append(t.Rows, record)
	}

	return t, nil
}

// decodeCharset wraps r with a decoder for the named charset.
func decodeCharset(r io.Reader, charset string) (io.Reader, error) {
	charset = strings.TrimSpace(charset)
	if charset == "" || strings.EqualFold(charset, "utf-8") || strings.EqualFold(charset, "utf8") {
		return r, nil
	}
	enc, err := htmlindex.Get(charset)
	if err != nil {
		return nil, eris.Wrapf(err, "csv: unsupported charset %q", charset)
	}
	return enc.NewDecoder().Reader(r), nil
}
