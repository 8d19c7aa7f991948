package parser

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// LoadOptions controls how a result directory is scanned.
type LoadOptions struct {
	Ext     string // File extension of result tables, DefaultExt when empty
	Lenient bool   // Skip files with a malformed name instead of aborting
}

// ParseKey extracts the integer key embedded in a result file name: the text
// after the last 'x' up to the first '.' that follows it ("20x64.csv" -> 64).
func ParseKey(name string) (int, error) {
	base := filepath.Base(name)
	idx := strings.LastIndex(base, "x")
	if idx < 0 {
		return 0, &MalformedNameError{File: name}
	}
	rest := base[idx+1:]
	if dot := strings.Index(rest, "."); dot >= 0 {
		rest = rest[:dot]
	}
	k, err := strconv.Atoi(rest)
	if err != nil {
		return 0, &MalformedNameError{File: name}
	}
	return k, nil
}

// ParseResultTable reads one result table. The first row is the header; the
// remaining rows are parsed as floats under the required column names.
func ParseResultTable(path string, key int) (*ResultTable, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open result table")
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.TrimLeadingSpace = true

	allRows, err := reader.ReadAll()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read CSV data from %s", path)
	}
	if len(allRows) == 0 {
		return nil, &MalformedTableError{Key: key, File: path, Field: ColSigma, Row: -1, Reason: "missing header row"}
	}

	colIdx := make(map[string]int, len(allRows[0]))
	for i, name := range allRows[0] {
		colIdx[strings.TrimSpace(name)] = i
	}
	for _, name := range RequiredColumns {
		if _, ok := colIdx[name]; !ok {
			return nil, &MalformedTableError{Key: key, File: path, Field: name, Row: -1, Reason: "column missing"}
		}
	}

	table := &ResultTable{Key: key, Path: path, Rows: make([]ResultRow, 0, len(allRows)-1)}
	for rowIdx, row := range allRows[1:] {
		if len(row) == 0 || (len(row) == 1 && strings.TrimSpace(row[0]) == "") {
			continue
		}
		var vals [4]float64
		for i, name := range RequiredColumns {
			cell := strings.TrimSpace(row[colIdx[name]])
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				return nil, &MalformedTableError{Key: key, File: path, Field: name, Row: rowIdx, Reason: fmt.Sprintf("value %q is not a number", cell)}
			}
			vals[i] = v
		}
		table.Rows = append(table.Rows, ResultRow{
			Sigma:     vals[0],
			ErrorRate: vals[1],
			Time:      vals[2],
			SNRdB:     vals[3],
		})
	}
	return table, nil
}

// LoadResultSet scans dir for result tables and loads each of them.
// Files are visited in lexical order; when two names parse to the same key the
// later one wins.
func LoadResultSet(dir string, opts LoadOptions) (*ResultSet, error) {
	ext := opts.Ext
	if ext == "" {
		ext = DefaultExt
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list %s", dir)
	}

	rs := NewResultSet()
	matched := 0
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ext) {
			continue
		}
		matched++

		key, err := ParseKey(name)
		if err != nil {
			if !opts.Lenient {
				return nil, err
			}
			rs.Warnings = append(rs.Warnings, fmt.Sprintf("Warning: skipping %s: %v", name, err))
			continue
		}

		table, err := ParseResultTable(filepath.Join(dir, name), key)
		if err != nil {
			return nil, err
		}
		if prev := rs.Put(table); prev != nil {
			rs.Warnings = append(rs.Warnings, fmt.Sprintf("Warning: %s replaces %s for k=%d", name, filepath.Base(prev.Path), key))
		}
	}

	if matched == 0 || rs.Len() == 0 {
		return nil, ErrNoResultFiles
	}
	return rs, nil
}
