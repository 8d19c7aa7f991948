package parser

import (
	"errors"
	"fmt"
	"sort"
)

// Column names written by the simulator. The header row of every result table
// must carry all four; their order is free.
const (
	ColSNRdB     = "snr_db"
	ColSigma     = "sigma"
	ColErrorRate = "error_rate"
	ColTime      = "time"
)

// DefaultExt is the file extension of result tables.
const DefaultExt = ".csv"

// RequiredColumns lists the columns a result table must expose.
var RequiredColumns = []string{ColSigma, ColErrorRate, ColTime, ColSNRdB}

// ErrNoResultFiles is returned when a directory holds no result tables.
// It is an empty-input outcome, not a failure.
var ErrNoResultFiles = errors.New("no matching files found")

// MalformedNameError reports a file whose name does not embed a key as <prefix>x<k>.<ext>.
type MalformedNameError struct {
	File string
}

func (e *MalformedNameError) Error() string {
	return fmt.Sprintf("malformed result file name %q: expected <prefix>x<k>.<ext>", e.File)
}

// MalformedTableError reports a table that is missing a column, holds a value
// that is not a number, or is too short to align with the reference table.
type MalformedTableError struct {
	Key    int
	File   string
	Field  string
	Row    int // 0-based data row, -1 when the problem is not row specific
	Reason string
}

func (e *MalformedTableError) Error() string {
	if e.Row < 0 {
		return fmt.Sprintf("malformed table k=%d (%s): field %q: %s", e.Key, e.File, e.Field, e.Reason)
	}
	return fmt.Sprintf("malformed table k=%d (%s): field %q, row %d: %s", e.Key, e.File, e.Field, e.Row, e.Reason)
}

// ResultRow is one measurement of a sigma sweep.
type ResultRow struct {
	SNRdB     float64
	Sigma     float64
	ErrorRate float64
	Time      float64
}

// ResultTable holds the rows of one result file, in file order.
// Row i of every table in a run belongs to the same sigma step.
type ResultTable struct {
	Key  int
	Path string
	Rows []ResultRow
}

// Column returns the values of one named column, in row order.
func (t *ResultTable) Column(name string) ([]float64, error) {
	out := make([]float64, len(t.Rows))
	for i, r := range t.Rows {
		switch name {
		case ColSNRdB:
			out[i] = r.SNRdB
		case ColSigma:
			out[i] = r.Sigma
		case ColErrorRate:
			out[i] = r.ErrorRate
		case ColTime:
			out[i] = r.Time
		default:
			return nil, fmt.Errorf("unknown column: %s", name)
		}
	}
	return out, nil
}

// ResultSet maps a key to its table. It is built once per run and only read afterwards.
type ResultSet struct {
	Tables   map[int]*ResultTable
	Warnings []string // Non-fatal problems met while loading
}

// NewResultSet returns an empty ResultSet.
func NewResultSet() *ResultSet {
	return &ResultSet{
		Tables:   make(map[int]*ResultTable),
		Warnings: make([]string, 0),
	}
}

// Put stores a table under its key. An existing table with the same key is replaced.
func (rs *ResultSet) Put(t *ResultTable) (replaced *ResultTable) {
	replaced = rs.Tables[t.Key]
	rs.Tables[t.Key] = t
	return replaced
}

// Len returns the number of tables.
func (rs *ResultSet) Len() int { return len(rs.Tables) }

// SortedKeys returns the keys in ascending order.
func (rs *ResultSet) SortedKeys() []int {
	keys := make([]int, 0, len(rs.Tables))
	for k := range rs.Tables {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}
