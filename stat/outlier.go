package stat

import (
	"fmt"
	"math"
	"strings"

	"github.com/hyp3rd/ewrap"

	"github.com/vdobler/eda"
)

// Method selects how the acceptance interval of the outlier classifier
// is computed.
type Method int

const (
	// StandardDeviation accepts mean ± factor*std.
	StandardDeviation Method = iota
	// InterquartileRange accepts [Q1 - factor*IQR, Q3 + factor*IQR].
	InterquartileRange
)

// MinOutlierValues is the number of non-missing values a column needs
// before any of its values can be an outlier.
const MinOutlierValues = 4

var methodNames = map[string]Method{
	"std":                 StandardDeviation,
	"standard-deviation":  StandardDeviation,
	"desvio_padrao":       StandardDeviation,
	"iqr":                 InterquartileRange,
	"interquartile-range": InterquartileRange,
}

func (m Method) String() string {
	switch m {
	case StandardDeviation:
		return "std"
	case InterquartileRange:
		return "iqr"
	}
	return fmt.Sprintf("Method(%d)", int(m))
}

// ParseMethod maps a method tag to a Method.
func ParseMethod(s string) (Method, error) {
	m, ok := methodNames[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return 0, ewrap.Wrapf(eda.ErrInvalidOption,
			"outlier method %q (allowed: std, standard-deviation, iqr, interquartile-range)", s)
	}
	return m, nil
}

// DefaultFactor is the factor used when the caller does not choose one:
// 2.7 for StandardDeviation and 1.5 for InterquartileRange.
func DefaultFactor(m Method) float64 {
	if m == InterquartileRange {
		return 1.5
	}
	return 2.7
}

func checkMethod(m Method, factor float64) error {
	if m != StandardDeviation && m != InterquartileRange {
		return ewrap.Wrapf(eda.ErrInvalidOption, "outlier method %s", m)
	}
	if math.IsNaN(factor) || math.IsInf(factor, 0) || factor <= 0 {
		return ewrap.Wrapf(eda.ErrInvalidOption, "outlier factor %g must be positive", factor)
	}
	return nil
}

// Bounds is the closed acceptance interval of a column. Values strictly
// outside are outliers.
type Bounds struct {
	Lower, Upper float64
}

// Valid reports whether b can classify values. Bounds of columns with
// too few values are NaN.
func (b Bounds) Valid() bool {
	return !math.IsNaN(b.Lower) && !math.IsNaN(b.Upper)
}

// Contains reports whether x lies inside b. Missing values and invalid
// bounds contain nothing.
func (b Bounds) Contains(x float64) bool {
	return x >= b.Lower && x <= b.Upper
}

// IsOutlier reports whether x lies strictly outside b. Missing values are
// never outliers and invalid bounds classify nothing.
func (b Bounds) IsOutlier(x float64) bool {
	return x < b.Lower || x > b.Upper
}

func (b Bounds) String() string {
	return fmt.Sprintf("[%g, %g]", b.Lower, b.Upper)
}

// ComputeBounds computes the acceptance interval of the non-missing values
// of data.
//
// Fewer than MinOutlierValues values give NaN bounds. If all values are
// identical the interval is exactly that value for both methods.
func ComputeBounds(data []float64, m Method, factor float64) (Bounds, error) {
	if err := checkMethod(m, factor); err != nil {
		return Bounds{}, err
	}

	s := sorted(data)
	if len(s) < MinOutlierValues {
		return Bounds{Lower: math.NaN(), Upper: math.NaN()}, nil
	}
	if s[0] == s[len(s)-1] {
		return Bounds{Lower: s[0], Upper: s[0]}, nil
	}

	switch m {
	case StandardDeviation:
		mean, std := Mean(s), StdDev(s)
		interval := factor * std
		return Bounds{Lower: mean - interval, Upper: mean + interval}, nil
	default:
		q1, q3 := quantileSorted(s, 0.25), quantileSorted(s, 0.75)
		iqr := q3 - q1
		return Bounds{Lower: q1 - factor*iqr, Upper: q3 + factor*iqr}, nil
	}
}

// ColumnBounds computes the bounds of the numeric column col of df.
func ColumnBounds(df *eda.DataFrame, col string, m Method, factor float64) (Bounds, error) {
	f, err := df.NumericColumn(col)
	if err != nil {
		return Bounds{}, err
	}
	return ComputeBounds(f.Data, m, factor)
}

// CountOutliers counts the values of data outside bounds computed from
// data itself.
func CountOutliers(data []float64, m Method, factor float64) (int, error) {
	b, err := ComputeBounds(data, m, factor)
	if err != nil {
		return 0, err
	}
	return b.count(data), nil
}

func (b Bounds) count(data []float64) int {
	n := 0
	for _, x := range data {
		if b.IsOutlier(x) {
			n++
		}
	}
	return n
}

// ExcludeOutliers returns a copy of df in which every outlier of col is
// replaced by the missing value. All other values and the row order are
// unchanged.
func ExcludeOutliers(df *eda.DataFrame, col string, m Method, factor float64) (*eda.DataFrame, error) {
	b, err := ColumnBounds(df, col, m, factor)
	if err != nil {
		return nil, err
	}

	result := df.Copy()
	f := result.Columns[col]
	excluded := 0
	for i, x := range f.Data {
		if b.IsOutlier(x) {
			f.Data[i] = math.NaN()
			excluded++
		}
	}
	eda.Logger().Debug("excluded outliers",
		"column", col, "method", m.String(), "factor", factor,
		"bounds", b.String(), "excluded", excluded)
	return result, nil
}

// IdentifyOutliers returns the rows of df whose value in col is an
// outlier, in their original order.
func IdentifyOutliers(df *eda.DataFrame, col string, m Method, factor float64) (*eda.DataFrame, error) {
	b, err := ColumnBounds(df, col, m, factor)
	if err != nil {
		return nil, err
	}
	data := df.Columns[col].Data
	return df.FilterFunc(func(i int) bool { return b.IsOutlier(data[i]) }), nil
}

// OutliersPerColumn counts the outliers of every numeric column of df.
// Each column is classified with its own bounds. The result has the
// columns "column", "outliers", "lower" and "upper".
func OutliersPerColumn(df *eda.DataFrame, m Method, factor float64) (*eda.DataFrame, error) {
	if err := checkMethod(m, factor); err != nil {
		return nil, err
	}

	names := df.NumericNames()
	sum := newSummary("outliers of "+df.Name, names)
	count := eda.NewField(len(names), eda.Int, nil)
	lower := eda.NewField(len(names), eda.Float, nil)
	upper := eda.NewField(len(names), eda.Float, nil)
	for i, name := range names {
		data := df.Columns[name].Data
		b, err := ComputeBounds(data, m, factor)
		if err != nil {
			return nil, err
		}
		count.Data[i] = float64(b.count(data))
		lower.Data[i], upper.Data[i] = b.Lower, b.Upper
	}
	sum.add("outliers", count)
	sum.add("lower", lower)
	sum.add("upper", upper)
	return sum.df, nil
}
