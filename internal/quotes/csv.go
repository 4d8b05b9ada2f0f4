package quotes

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"
)

// LoadCSV reads quotes from a CSV file with a header row. The "quote" column
// is required; "author" is optional. Rows with an empty quote are skipped.
func LoadCSV(path string) ([]Quote, error) {
	fp, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer fp.Close()

	r := csv.NewReader(fp)
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	if len(rows) < 1 {
		return nil, fmt.Errorf("csv %s has no header", path)
	}
	cols := map[string]int{}
	for i, h := range rows[0] {
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}
	if _, ok := cols["quote"]; !ok {
		return nil, fmt.Errorf("csv %s has no quote column", path)
	}

	get := func(row []string, name string) string {
		if idx, ok := cols[name]; ok && idx < len(row) {
			return strings.TrimSpace(row[idx])
		}
		return ""
	}

	var out []Quote
	for _, row := range rows[1:] {
		q := Quote{Text: get(row, "quote"), Author: get(row, "author")}
		if q.Text != "" {
			out = append(out, q)
		}
	}
	return out, nil
}
