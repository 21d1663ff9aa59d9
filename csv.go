package eda

import (
	"encoding/csv"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/hyp3rd/ewrap"
)

// MissingTokens are the cell values ReadCSV treats as missing.
var MissingTokens = []string{"", "NA", "N/A", "NaN", "nan", "null", "NULL", "None"}

// TimeLayouts are tried in order when ReadCSV or a datetime conversion
// parses a time.
var TimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// IsMissingToken reports whether s denotes a missing value.
func IsMissingToken(s string) bool {
	s = strings.TrimSpace(s)
	for _, t := range MissingTokens {
		if s == t {
			return true
		}
	}
	return false
}

// ParseTime parses s with the first matching layout of TimeLayouts.
func ParseTime(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range TimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// ReadCSV reads a frame from CSV data with a header row. The type of each
// column is inferred from its non-missing cells: Int if all parse as
// integers, Float if all parse as numbers, Time if all parse with one of
// the TimeLayouts, String otherwise.
func ReadCSV(r io.Reader, name string) (*DataFrame, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	records, err := cr.ReadAll()
	if err != nil {
		return nil, ewrap.Wrap(err, "reading csv")
	}
	if len(records) == 0 {
		return nil, ewrap.Wrap(ErrEmptyFrame, "csv without header")
	}

	header, rows := records[0], records[1:]
	df := NewDataFrame(name, nil)
	for c, colName := range header {
		cells := make([]string, len(rows))
		for i, row := range rows {
			cells[i] = row[c]
		}
		if df.Has(colName) {
			return nil, ewrap.Wrap(ErrDuplicateColumn, colName)
		}
		if err := df.Set(colName, parseCells(cells, df.Pool)); err != nil {
			return nil, err
		}
	}
	df.N = len(rows)
	return df, nil
}

func parseCells(cells []string, pool *StringPool) Field {
	n := len(cells)
	present := 0
	for _, cell := range cells {
		if !IsMissingToken(cell) {
			present++
		}
	}
	if present == 0 {
		return NewField(n, Float, pool)
	}

	for _, ft := range []FieldType{Int, Float, Time} {
		field := NewField(n, ft, pool)
		ok := true
		for i, cell := range cells {
			if IsMissingToken(cell) {
				continue
			}
			x, good := ParseValue(cell, ft)
			if !good {
				ok = false
				break
			}
			field.Data[i] = x
		}
		if ok {
			return field
		}
	}

	field := NewField(n, String, pool)
	for i, cell := range cells {
		if IsMissingToken(cell) {
			continue
		}
		field.Data[i] = float64(pool.Add(cell))
	}
	return field
}

// ParseValue parses s as a numeric or time value of type ft.
// It reports false for String fields and unparsable input.
func ParseValue(s string, ft FieldType) (float64, bool) {
	s = strings.TrimSpace(s)
	switch ft {
	case Int:
		i, err := strconv.ParseInt(s, 10, 64)
		return float64(i), err == nil
	case Float:
		x, err := strconv.ParseFloat(s, 64)
		return x, err == nil
	case Time:
		t, ok := ParseTime(s)
		if !ok {
			return math.NaN(), false
		}
		return TimeToUnix(t), true
	}
	return math.NaN(), false
}

// WriteCSV writes df with a header row. Missing values are empty cells.
func (df *DataFrame) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	names := df.Names()
	if err := cw.Write(names); err != nil {
		return ewrap.Wrap(err, "writing csv header")
	}
	record := make([]string, len(names))
	for i := 0; i < df.N; i++ {
		for j, name := range names {
			f := df.Columns[name]
			if f.IsMissing(i) {
				record[j] = ""
			} else {
				record[j] = f.String(i)
			}
		}
		if err := cw.Write(record); err != nil {
			return ewrap.Wrapf(err, "writing csv row %d", i)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return ewrap.Wrap(err, "writing csv")
	}
	return nil
}
