package stat

import (
	"fmt"
	"slices"
	"strings"

	"github.com/hyp3rd/ewrap"

	"github.com/vdobler/eda"
)

// Stat is the interface of a statistical transform.
//
// A Stat takes a data frame and produces an other data frame, typically
// by summarizing each column of the input.
type Stat interface {
	// Name returns the name of this statistic.
	Name() string

	// Apply this statistic to data. The result is a new frame; data is
	// not modified.
	Apply(data *eda.DataFrame) (*eda.DataFrame, error)
}

// summaryStat adapts a parameterless summary function to Stat.
type summaryStat struct {
	name string
	fn   func(*eda.DataFrame) *eda.DataFrame
}

func (s summaryStat) Name() string { return s.name }

func (s summaryStat) Apply(data *eda.DataFrame) (*eda.DataFrame, error) {
	if data == nil {
		return nil, ewrap.Wrap(eda.ErrEmptyFrame, s.name)
	}
	return s.fn(data), nil
}

var summaries = []summaryStat{
	{"describe", Describe},
	{"nulls", CountNulls},
	{"types", Types},
	{"unique", CountUnique},
	{"skew", SkewnessByColumn},
	{"analyze-categories", AnalyzeCategories},
	{"constants", constantFrame},
}

func constantFrame(df *eda.DataFrame) *eda.DataFrame {
	return newSummary("constant columns of "+df.Name, ConstantColumns(df)).df
}

// Lookup returns the parameterless summary statistic called name.
func Lookup(name string) (Stat, error) {
	i := slices.IndexFunc(summaries, func(s summaryStat) bool { return s.name == name })
	if i < 0 {
		return nil, ewrap.Wrapf(eda.ErrInvalidOption, "statistic %q (allowed: %s)",
			name, strings.Join(SummaryNames(), ", "))
	}
	return summaries[i], nil
}

// SummaryNames lists the names known to Lookup.
func SummaryNames() []string {
	names := make([]string, len(summaries))
	for i, s := range summaries {
		names[i] = s.name
	}
	return names
}

// -------------------------------------------------------------------------
// StatOutliers

// StatOutliers counts the outliers per numeric column.
type StatOutliers struct {
	Method Method
	Factor float64 // DefaultFactor(Method) if zero
}

var _ Stat = StatOutliers{}

func (StatOutliers) Name() string { return "outliers" }

func (s StatOutliers) Apply(data *eda.DataFrame) (*eda.DataFrame, error) {
	factor := s.Factor
	if factor == 0 {
		factor = DefaultFactor(s.Method)
	}
	return OutliersPerColumn(data, s.Method, factor)
}

// -------------------------------------------------------------------------
// StatCorrelation

// StatCorrelation computes the correlation matrix of the numeric columns.
type StatCorrelation struct {
	Method CorrMethod
}

var _ Stat = StatCorrelation{}

func (StatCorrelation) Name() string { return "corr" }

func (s StatCorrelation) Apply(data *eda.DataFrame) (*eda.DataFrame, error) {
	return Correlation(data, s.Method)
}

// -------------------------------------------------------------------------
// StatBin

// StatBin bins the values of Column. The result has the fields x, lo, hi,
// count, density, ncount and ndensity with one row per bin.
type StatBin struct {
	Column  string
	Options BinOptions
}

var _ Stat = StatBin{}

func (StatBin) Name() string { return "bin" }

func (s StatBin) Apply(data *eda.DataFrame) (*eda.DataFrame, error) {
	f, err := data.NumericColumn(s.Column)
	if err != nil {
		return nil, err
	}
	bins := Bin(f.Data, &s.Options)

	n := len(bins)
	result := eda.NewDataFrame(fmt.Sprintf("%s binned by %s", data.Name, s.Column), data.Pool)
	x, lo, hi := eda.NewField(n, eda.Float, nil), eda.NewField(n, eda.Float, nil), eda.NewField(n, eda.Float, nil)
	count := eda.NewField(n, eda.Int, nil)
	density, ncount, ndensity := eda.NewField(n, eda.Float, nil), eda.NewField(n, eda.Float, nil), eda.NewField(n, eda.Float, nil)
	for i, b := range bins {
		x.Data[i], lo.Data[i], hi.Data[i] = b.X, b.Lo, b.Hi
		count.Data[i] = float64(b.Count)
		density.Data[i], ncount.Data[i], ndensity.Data[i] = b.Density, b.NCount, b.NDensity
	}
	for _, c := range []struct {
		name  string
		field eda.Field
	}{
		{"x", x}, {"lo", lo}, {"hi", hi}, {"count", count},
		{"density", density}, {"ncount", ncount}, {"ndensity", ndensity},
	} {
		if err := result.Set(c.name, c.field); err != nil {
			return nil, err
		}
	}
	return result, nil
}

// -------------------------------------------------------------------------
// StatBoxplot

// StatBoxplot computes the box plot components of Column, optionally
// grouped by the levels of GroupBy. The result has one row per group with
// the fields group (if grouped), n, min, low, q1, median, q3, high, max
// and outliers.
type StatBoxplot struct {
	Column  string
	GroupBy string
	Coef    float64
}

var _ Stat = StatBoxplot{}

func (StatBoxplot) Name() string { return "boxplot" }

// Boxes computes one BoxSummary per group. The levels of GroupBy are in
// increasing order; rows missing a group are ignored. Without GroupBy
// there is a single box and levels is nil.
func (s StatBoxplot) Boxes(data *eda.DataFrame) (boxes []BoxSummary, levels []float64, err error) {
	y, err := data.NumericColumn(s.Column)
	if err != nil {
		return nil, nil, err
	}

	groups := [][]float64{y.Data}
	if s.GroupBy != "" {
		group, err := data.Column(s.GroupBy)
		if err != nil {
			return nil, nil, err
		}
		levels = group.Levels().Elements()
		index := make(map[float64]int, len(levels))
		for i, level := range levels {
			index[level] = i
		}
		groups = make([][]float64, len(levels))
		for j, g := range group.Data {
			if i, ok := index[g]; ok {
				groups[i] = append(groups[i], y.Data[j])
			}
		}
	}

	boxes = make([]BoxSummary, len(groups))
	for i, g := range groups {
		boxes[i] = ComputeBox(g, s.Coef)
	}
	return boxes, levels, nil
}

func (s StatBoxplot) Apply(data *eda.DataFrame) (*eda.DataFrame, error) {
	boxes, levels, err := s.Boxes(data)
	if err != nil {
		return nil, err
	}

	sum := newRows("boxplot of "+s.Column, len(boxes))
	if s.GroupBy != "" {
		group := data.Columns[s.GroupBy]
		sum.add("group", eda.Field{Type: group.Type, Data: levels, Pool: group.Pool})
	}
	sum.ints("n", func(i int) int { return boxes[i].N })
	sum.floats("min", func(i int) float64 { return boxes[i].Min })
	sum.floats("low", func(i int) float64 { return boxes[i].Low })
	sum.floats("q1", func(i int) float64 { return boxes[i].Q1 })
	sum.floats("median", func(i int) float64 { return boxes[i].Median })
	sum.floats("q3", func(i int) float64 { return boxes[i].Q3 })
	sum.floats("high", func(i int) float64 { return boxes[i].High })
	sum.floats("max", func(i int) float64 { return boxes[i].Max })
	sum.ints("outliers", func(i int) int { return len(boxes[i].Outliers) })
	return sum.df, nil
}
