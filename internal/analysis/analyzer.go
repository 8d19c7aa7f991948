package analysis

import (
	"fmt"

	"github.com/user/sim_plotter_go/internal/parser"
)

// StyleFor returns the style of the series at position i of the sorted key list.
func StyleFor(i int) LineStyle {
	return LineStyles[i%len(LineStyles)]
}

// KeyLabel is the legend label of a per-key series.
func KeyLabel(k int) string {
	return fmt.Sprintf("%s%d", CodewordPrefix, k)
}

// SigmaLabel is the legend label of a per-sigma series.
func SigmaLabel(sigma float64) string {
	return fmt.Sprintf("Sigma=%.1f", sigma)
}

// perKey builds one series per key in ascending order, picking x and y from each row.
func perKey(rs *parser.ResultSet, x, y func(parser.ResultRow) float64) (*SeriesSet, error) {
	if rs == nil || rs.Len() == 0 {
		return nil, parser.ErrNoResultFiles
	}
	keys := rs.SortedKeys()
	out := &SeriesSet{Keys: keys, Series: make([]Series, 0, len(keys))}
	for i, k := range keys {
		table := rs.Tables[k]
		pts := make([]Point, len(table.Rows))
		for j, row := range table.Rows {
			pts[j] = Point{X: x(row), Y: y(row)}
		}
		out.Series = append(out.Series, Series{
			Key:    k,
			Label:  KeyLabel(k),
			Style:  StyleFor(i),
			Points: pts,
		})
	}
	return out, nil
}

// ErrorRateVsSigma groups error rate against sigma, one series per key.
func ErrorRateVsSigma(rs *parser.ResultSet) (*SeriesSet, error) {
	return perKey(rs,
		func(r parser.ResultRow) float64 { return r.Sigma },
		func(r parser.ResultRow) float64 { return r.ErrorRate })
}

// BERVsSNR groups error rate against SNR in dB, one series per key.
func BERVsSNR(rs *parser.ResultSet) (*SeriesSet, error) {
	return perKey(rs,
		func(r parser.ResultRow) float64 { return r.SNRdB },
		func(r parser.ResultRow) float64 { return r.ErrorRate })
}

// TimeVsK builds one series per sigma step: X is the sorted key list and Y the
// elapsed time at that step in each key's table. The sigma steps and their
// order come from the table of the smallest key. Rows are paired by position,
// not by sigma value, so every table must have as many rows as the reference.
func TimeVsK(rs *parser.ResultSet) (*SeriesSet, error) {
	if rs == nil || rs.Len() == 0 {
		return nil, parser.ErrNoResultFiles
	}
	keys := rs.SortedKeys()
	ref := rs.Tables[keys[0]]

	for _, k := range keys[1:] {
		table := rs.Tables[k]
		if n := len(table.Rows); n != len(ref.Rows) {
			return nil, &parser.MalformedTableError{
				Key:    k,
				File:   table.Path,
				Field:  parser.ColTime,
				Row:    min(n, len(ref.Rows)),
				Reason: fmt.Sprintf("table has %d rows, reference k=%d has %d", n, ref.Key, len(ref.Rows)),
			}
		}
	}

	out := &SeriesSet{Keys: keys, Series: make([]Series, 0, len(ref.Rows))}
	for i, refRow := range ref.Rows {
		pts := make([]Point, len(keys))
		for j, k := range keys {
			pts[j] = Point{X: float64(k), Y: rs.Tables[k].Rows[i].Time}
		}
		out.Series = append(out.Series, Series{
			Key:    i,
			Label:  SigmaLabel(refRow.Sigma),
			Style:  StyleFor(i),
			Points: pts,
		})
	}
	return out, nil
}
