package feed

import (
	"encoding/csv"
	"errors"
	"strings"
)

// ErrEmptyFeed is returned when the content holds no parseable rows.
var ErrEmptyFeed = errors.New("feed contains no rows")

// Row is one CSV record, fields in column order.
type Row []string

// ParsedFeed is a feed split into its header and data rows. Header holds the
// trimmed, lowercased column names used for lookups; Columns keeps them as
// written for display.
type ParsedFeed struct {
	Header  []string
	Columns []string
	Rows    []Row
}

// Parse splits CSV text into rows. Line endings are normalized and blank lines
// skipped; each line is parsed as one record, so quoted fields cannot span
// lines. A line that fails to parse is dropped. The header is not interpreted:
// it is simply the first row returned.
func Parse(text string) []Row {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	var rows []Row
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if row := parseLine(line); len(row) > 0 {
			rows = append(rows, row)
		}
	}
	return rows
}

func parseLine(line string) Row {
	reader := csv.NewReader(strings.NewReader(line))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	record, err := reader.Read()
	if err != nil {
		return nil
	}
	return record
}

// ParseFeed parses text and consumes the first row as the header, trimming
// and lowercasing each column name.
func ParseFeed(text string) (*ParsedFeed, error) {
	rows := Parse(text)
	if len(rows) == 0 {
		return nil, ErrEmptyFeed
	}

	header := make([]string, len(rows[0]))
	columns := make([]string, len(rows[0]))
	for i, name := range rows[0] {
		columns[i] = strings.TrimSpace(name)
		header[i] = strings.ToLower(columns[i])
	}

	return &ParsedFeed{
		Header:  header,
		Columns: columns,
		Rows:    rows[1:],
	}, nil
}

// ColumnIndex finds a column by case-insensitive exact name; the first match
// wins.
func (f *ParsedFeed) ColumnIndex(name string) (int, bool) {
	want := strings.ToLower(strings.TrimSpace(name))
	for i, column := range f.Header {
		if column == want {
			return i, true
		}
	}
	return -1, false
}

// Cell returns the trimmed value at index and whether the row has it.
func (r Row) Cell(index int) (string, bool) {
	if index < 0 || index >= len(r) {
		return "", false
	}
	return strings.TrimSpace(r[index]), true
}
