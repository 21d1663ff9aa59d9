package prep

import (
	"math"

	"github.com/hyp3rd/ewrap"

	"github.com/vdobler/eda"
	"github.com/vdobler/eda/stat"
)

// FillMissing replaces the missing values of every numeric column of df.
// FillMean, FillMedian and FillMode use the statistic of the column's
// present values; FillZero uses 0 and FillValue uses value. FillMode also
// fills String and Time columns with their most frequent value.
//
// An Int column filled with a fractional value becomes a Float column.
// Columns without present values stay missing for the statistical methods.
func FillMissing(df *eda.DataFrame, m FillMethod, value float64) (*eda.DataFrame, error) {
	if err := fillMethods.check(m); err != nil {
		return nil, err
	}
	if m == FillValue && math.IsNaN(value) {
		return nil, ewrap.Wrap(eda.ErrMissingValue, "fill method value needs a fill value")
	}

	result := df.Copy()
	for _, name := range result.Names() {
		f := result.Columns[name]
		if !f.Numeric() && m != FillMode {
			continue
		}
		missing := f.Missing()
		if missing == 0 {
			continue
		}

		var fill float64
		switch m {
		case FillMean:
			fill = stat.Mean(f.Data)
		case FillMedian:
			fill = stat.Median(f.Data)
		case FillMode:
			fill = stat.Mode(f.Data)
		case FillZero:
			fill = 0
		case FillValue:
			fill = value
		}
		if math.IsNaN(fill) {
			continue
		}

		if f.Type == eda.Int && fill != math.Trunc(fill) {
			f.Type = eda.Float
		}
		for i, x := range f.Data {
			if math.IsNaN(x) {
				f.Data[i] = fill
			}
		}
		result.Columns[name] = f
		eda.Logger().Debug("filled missing values",
			"column", name, "method", m.String(), "value", f.Format(fill), "count", missing)
	}
	return result, nil
}

// DropMissing returns the rows of df without missing values in the given
// columns, or in any column if none are given.
func DropMissing(df *eda.DataFrame, cols ...string) (*eda.DataFrame, error) {
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

	return df.FilterFunc(func(i int) bool {
		for _, f := range fields {
			if f.IsMissing(i) {
				return false
			}
		}
		return true
	}), nil
}
