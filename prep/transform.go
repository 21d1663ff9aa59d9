package prep

import (
	"encoding/binary"
	"math"

	"github.com/vdobler/eda"
	"github.com/vdobler/eda/stat"
)

// Normalize rescales the numeric column col of df. MinMax maps the range
// of the column onto [0,1], ZScore subtracts the mean and divides by the
// sample standard deviation. A constant column yields missing values.
// The result column is always Float.
func Normalize(df *eda.DataFrame, col string, m NormMethod) (*eda.DataFrame, error) {
	if err := normMethods.check(m); err != nil {
		return nil, err
	}
	f, err := df.NumericColumn(col)
	if err != nil {
		return nil, err
	}

	var shift, scale float64
	switch m {
	case MinMax:
		lo, hi := stat.MinMax(f.Data)
		shift, scale = lo, hi-lo
	case ZScore:
		shift, scale = stat.Mean(f.Data), stat.StdDev(f.Data)
	}

	result := df.Copy()
	norm := eda.NewField(df.N, eda.Float, nil)
	for i, x := range f.Data {
		norm.Data[i] = (x - shift) / scale
	}
	if scale == 0 {
		eda.Logger().Warn("normalizing constant column", "column", col, "method", m.String())
	}
	if err := result.Set(col, norm); err != nil {
		return nil, err
	}
	return result, nil
}

// Dedupe removes duplicate rows of df. Two rows are duplicates if they
// agree in all the given columns, or in every column if none are given;
// missing values agree with each other. KeepFirst and KeepLast keep one
// row of each set of duplicates, KeepNone drops all of them. The kept rows
// retain their order.
func Dedupe(df *eda.DataFrame, keep Keep, cols ...string) (*eda.DataFrame, error) {
	if err := keeps.check(keep); err != nil {
		return nil, err
	}
	if len(cols) == 0 {
		cols = df.Names()
	}
	fields := make([]eda.Field, len(cols))
	for i, name := range cols {
		f, err := df.Column(name)
		if err != nil {
			return nil, err
		}
		fields[i] = f
	}

	keys := make([]string, df.N)
	count := make(map[string]int)
	buf := make([]byte, 0, 8*len(fields))
	for i := range keys {
		buf = buf[:0]
		for _, f := range fields {
			x := f.Data[i]
			switch {
			case math.IsNaN(x):
				x = math.NaN() // one bit pattern for all missing values
			case x == 0:
				x = 0 // -0 == 0
			}
			buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(x))
		}
		keys[i] = string(buf)
		count[keys[i]]++
	}

	seen := make(map[string]int)
	result := df.FilterFunc(func(i int) bool {
		k := keys[i]
		seen[k]++
		switch keep {
		case KeepFirst:
			return seen[k] == 1
		case KeepLast:
			return seen[k] == count[k]
		}
		return count[k] == 1
	})
	eda.Logger().Debug("removed duplicates", "keep", keep.String(), "removed", df.N-result.N)
	return result, nil
}

// Replace returns a copy of df where every value of col equal to one of
// old is replaced by with. Values are given as Go values (see
// eda.Field.Encode); nil stands for the missing value. Numbers are compared
// exactly, so a fractional old value never matches an Int cell, and a
// fractional with turns an Int column into a Float column.
func Replace(df *eda.DataFrame, col string, old []any, with any) (*eda.DataFrame, error) {
	f, err := df.Column(col)
	if err != nil {
		return nil, err
	}
	exact := f
	if exact.Type == eda.Int {
		exact.Type = eda.Float
	}

	to, err := exact.Encode(with)
	if err != nil {
		return nil, err
	}
	from := make([]float64, len(old))
	replaceMissing := false
	for i, v := range old {
		if from[i], err = exact.Encode(v); err != nil {
			return nil, err
		}
		replaceMissing = replaceMissing || math.IsNaN(from[i])
	}

	result := df.Copy()
	g := result.Columns[col]
	n := 0
	for i, x := range g.Data {
		if math.IsNaN(x) {
			if replaceMissing {
				g.Data[i] = to
				n++
			}
			continue
		}
		for _, y := range from {
			if x == y {
				g.Data[i] = to
				n++
				break
			}
		}
	}
	if g.Type == eda.Int && n > 0 && !math.IsNaN(to) && to != math.Trunc(to) {
		g.Type = eda.Float
	}
	result.Columns[col] = g
	eda.Logger().Debug("replaced values", "column", col, "count", n)
	return result, nil
}
