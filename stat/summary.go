package stat

import (
	"cmp"
	"math"
	"slices"

	"github.com/vdobler/eda"
)

// LabelField is the first field of summary frames. It holds the names of
// the analysed columns.
const LabelField = "column"

// summary is a frame with one row per analysed column. Its first field
// LabelField holds the column names.
type summary struct {
	df *eda.DataFrame
	n  int
}

func newSummary(name string, columns []string) summary {
	s := newRows(name, len(columns))
	names := eda.NewField(len(columns), eda.String, s.df.Pool)
	for i, c := range columns {
		names.Data[i] = float64(s.df.Pool.Add(c))
	}
	s.add(LabelField, names)
	return s
}

// newRows is a summary with n rows without the LabelField.
func newRows(name string, n int) summary {
	return summary{df: eda.NewDataFrame(name, nil), n: n}
}

// add appends f which must have one value per row of s.
func (s summary) add(name string, f eda.Field) {
	if err := s.df.Set(name, f); err != nil {
		panic(err)
	}
}

func (s summary) floats(name string, value func(i int) float64) {
	f := eda.NewField(s.n, eda.Float, nil)
	for i := range f.Data {
		f.Data[i] = value(i)
	}
	s.add(name, f)
}

func (s summary) ints(name string, value func(i int) int) {
	f := eda.NewField(s.n, eda.Int, nil)
	for i := range f.Data {
		f.Data[i] = float64(value(i))
	}
	s.add(name, f)
}

// CountNulls reports per column the number of missing values ("total")
// and their share of all rows in percent ("percent").
func CountNulls(df *eda.DataFrame) *eda.DataFrame {
	names := df.Names()
	s := newSummary("nulls of "+df.Name, names)
	s.ints("total", func(i int) int { return df.Columns[names[i]].Missing() })
	s.floats("percent", func(i int) float64 {
		if df.N == 0 {
			return math.NaN()
		}
		return 100 * float64(df.Columns[names[i]].Missing()) / float64(df.N)
	})
	return s.df
}

// Describe reports count, mean, median, std, min and max of every numeric
// column of df.
func Describe(df *eda.DataFrame) *eda.DataFrame {
	names := df.NumericNames()
	s := newSummary("description of "+df.Name, names)
	data := func(i int) []float64 { return df.Columns[names[i]].Data }

	s.ints("count", func(i int) int { return df.N - df.Columns[names[i]].Missing() })
	s.floats("mean", func(i int) float64 { return Mean(data(i)) })
	s.floats("median", func(i int) float64 { return Median(data(i)) })
	s.floats("std", func(i int) float64 { return StdDev(data(i)) })
	s.floats("min", func(i int) float64 { lo, _ := MinMax(data(i)); return lo })
	s.floats("max", func(i int) float64 { _, hi := MinMax(data(i)); return hi })
	return s.df
}

// Types reports the type of every column.
func Types(df *eda.DataFrame) *eda.DataFrame {
	names := df.Names()
	s := newSummary("types of "+df.Name, names)
	types := eda.NewField(len(names), eda.String, s.df.Pool)
	for i, name := range names {
		types.Data[i] = float64(s.df.Pool.Add(df.Columns[name].Type.String()))
	}
	s.add("type", types)
	return s.df
}

// CountUnique reports the number of distinct non-missing values of every
// column.
func CountUnique(df *eda.DataFrame) *eda.DataFrame {
	names := df.Names()
	s := newSummary("unique values of "+df.Name, names)
	s.ints("unique", func(i int) int { return len(df.Columns[names[i]].Levels()) })
	return s.df
}

// ConstantColumns returns the names of all columns with exactly one
// distinct non-missing value.
func ConstantColumns(df *eda.DataFrame) []string {
	var constant []string
	for _, name := range df.Names() {
		if len(df.Columns[name].Levels()) == 1 {
			constant = append(constant, name)
		}
	}
	return constant
}

// SkewnessByColumn reports the skewness of every numeric column, most
// right-skewed first. Columns with undefined skewness go last.
func SkewnessByColumn(df *eda.DataFrame) *eda.DataFrame {
	type skew struct {
		name string
		g1   float64
	}
	var skews []skew
	for _, name := range df.NumericNames() {
		skews = append(skews, skew{name, Skewness(df.Columns[name].Data)})
	}
	slices.SortStableFunc(skews, func(a, b skew) int {
		switch {
		case math.IsNaN(a.g1) && math.IsNaN(b.g1):
			return 0
		case math.IsNaN(a.g1):
			return 1
		case math.IsNaN(b.g1):
			return -1
		}
		return cmp.Compare(b.g1, a.g1)
	})

	names := make([]string, len(skews))
	for i, s := range skews {
		names[i] = s.name
	}
	s := newSummary("skewness of "+df.Name, names)
	s.floats("skewness", func(i int) float64 { return skews[i].g1 })
	return s.df
}

// CountCategories returns the most frequent values of col with their
// counts ("value", "count"), most frequent first. Ties keep the order of
// first appearance. A topN <= 0 returns all values.
func CountCategories(df *eda.DataFrame, col string, topN int) (*eda.DataFrame, error) {
	f, err := df.Column(col)
	if err != nil {
		return nil, err
	}

	counts := make(map[float64]int)
	var order []float64
	for _, x := range f.Data {
		if math.IsNaN(x) {
			continue
		}
		if counts[x] == 0 {
			order = append(order, x)
		}
		counts[x]++
	}
	slices.SortStableFunc(order, func(a, b float64) int {
		return cmp.Compare(counts[b], counts[a])
	})
	if topN > 0 && len(order) > topN {
		order = order[:topN]
	}

	result := eda.NewDataFrame("categories of "+col, df.Pool)
	values := eda.Field{Type: f.Type, Data: order, Pool: f.Pool}
	count := eda.NewField(len(order), eda.Int, nil)
	for i, x := range order {
		count.Data[i] = float64(counts[x])
	}
	if err := result.Set("value", values); err != nil {
		return nil, err
	}
	if err := result.Set("count", count); err != nil {
		return nil, err
	}
	return result, nil
}

// AnalyzeCategories reports the number of distinct categories of every
// String column.
func AnalyzeCategories(df *eda.DataFrame) *eda.DataFrame {
	names := df.NamesOfType(eda.String)
	s := newSummary("categories of "+df.Name, names)
	s.ints("categories", func(i int) int { return len(df.Columns[names[i]].Levels()) })
	return s.df
}
