package catalog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
)

// ReadCSV opens path and parses it with ParseCSV.
func ReadCSV(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening csv: %w", err)
	}
	defer f.Close()

	return ParseCSV(f)
}

// ParseCSV extracts the distinct uppercase values of the "symbol" column
// (matched case-insensitively) and returns them sorted. Blank values and
// rows too short to reach the column are skipped, as are rows the CSV
// reader rejects.
func ParseCSV(r io.Reader) ([]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrEmptyCSV
	}
	if err != nil {
		return nil, fmt.Errorf("reading csv header: %w", err)
	}

	idx := -1
	for i, h := range header {
		h = strings.TrimPrefix(h, "\ufeff")
		if strings.EqualFold(strings.TrimSpace(h), "symbol") {
			idx = i
			break
		}
	}

	rows := 0
	seen := make(map[string]struct{})
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var perr *csv.ParseError
			if errors.As(err, &perr) {
				continue
			}
			return nil, fmt.Errorf("reading csv: %w", err)
		}
		rows++

		if idx < 0 || idx >= len(rec) {
			continue
		}
		if sym := strings.ToUpper(strings.TrimSpace(rec[idx])); sym != "" {
			seen[sym] = struct{}{}
		}
	}

	if rows == 0 {
		return nil, ErrEmptyCSV
	}
	if idx < 0 {
		return nil, ErrNoSymbolColumn
	}

	symbols := make([]string, 0, len(seen))
	for s := range seen {
		symbols = append(symbols, s)
	}
	sort.Strings(symbols)
	return symbols, nil
}
