package ingest

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/etnz/snowball"
)

// column is a required or optional column with its accepted header names.
type column struct {
	name     string
	aliases  []string
	optional bool
}

// table is a CSV file whose columns have been located.
type table struct {
	name    string
	index   map[string]int
	records [][]string
}

// normalize lowers a header and maps separators to '_'.
func normalize(h string) string {
	h = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
	return strings.NewReplacer(" ", "_", "-", "_").Replace(h)
}

// readTable reads a ',' or ';' separated file and locates columns. Missing
// required columns are reported as Structural messages and the returned
// error wraps snowball.ErrMissingColumn: nothing of the file must be used.
func readTable(r io.Reader, name string, columns []column, report *snowball.Report) (*table, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	}
	reader := csv.NewReader(bytes.NewReader(data))
	if header, _, _ := bytes.Cut(data, []byte("\n")); bytes.Count(header, []byte(";")) > bytes.Count(header, []byte(",")) {
		reader.Comma = ';'
	}
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	records, err := reader.ReadAll()
	if err != nil {
		report.Addf(snowball.Structural, "", name, "unreadable csv: %v", err)
		return nil, fmt.Errorf("failed to read csv %s: %w", name, err)
	}
	if len(records) == 0 {
		report.Addf(snowball.Structural, "", name, "empty file, no header")
		return nil, fmt.Errorf("%s: no header: %w", name, snowball.ErrMissingColumn)
	}

	headers := make(map[string]int)
	for i, h := range records[0] {
		headers[normalize(h)] = i
	}
	t := &table{name: name, index: make(map[string]int), records: records[1:]}
	var missing []string
	for _, c := range columns {
		found := false
		for _, alias := range append([]string{c.name}, c.aliases...) {
			if i, ok := headers[alias]; ok {
				t.index[c.name], found = i, true
				break
			}
		}
		if !found && !c.optional {
			missing = append(missing, c.name)
			report.Addf(snowball.Structural, "", name, "missing column %q", c.name)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%s: %w %s", name, snowball.ErrMissingColumn, strings.Join(missing, ", "))
	}
	return t, nil
}

// record is one row of a table.
type record struct {
	t      *table
	fields []string
	line   int
}

// rows iterates over non blank records.
func (t *table) rows(yield func(record) bool) {
	for i, rec := range t.records {
		if len(rec) == 0 || (len(rec) == 1 && strings.TrimSpace(rec[0]) == "") {
			continue
		}
		if !yield(record{t: t, fields: rec, line: i + 2}) {
			return
		}
	}
}

// get returns the value of column c, empty when absent.
func (r record) get(c string) string {
	i, ok := r.t.index[c]
	if !ok || i >= len(r.fields) {
		return ""
	}
	return strings.TrimSpace(r.fields[i])
}

// ref locates the row for report messages.
func (r record) ref() string { return fmt.Sprintf("%s:%d", r.t.name, r.line) }
