package prep

import (
	"math"
	"strconv"
	"strings"

	"github.com/vdobler/eda"
)

// Convert returns a copy of df with column col converted to kind.
//
// Values that cannot be converted become missing and are counted in a
// warning log record:
//   - ToInt truncates numbers and parses strings as numbers; times become
//     Unix seconds.
//   - ToFloat parses strings; times become Unix seconds.
//   - ToString and ToCategory format every value.
//   - ToDatetime parses strings with eda.TimeLayouts and reads numbers as
//     Unix seconds.
func Convert(df *eda.DataFrame, col string, kind Kind) (*eda.DataFrame, error) {
	if err := kinds.check(kind); err != nil {
		return nil, err
	}
	f, err := df.Column(col)
	if err != nil {
		return nil, err
	}

	result := df.Copy()
	var conv eda.Field
	coerced := 0
	switch kind {
	case ToString, ToCategory:
		conv = eda.NewField(df.N, eda.String, result.Pool)
		for i, x := range f.Data {
			if !math.IsNaN(x) {
				conv.Data[i] = float64(result.Pool.Add(f.Format(x)))
			}
		}
	default:
		target := map[Kind]eda.FieldType{ToInt: eda.Int, ToFloat: eda.Float, ToDatetime: eda.Time}[kind]
		conv = eda.NewField(df.N, target, nil)
		for i, x := range f.Data {
			if math.IsNaN(x) {
				continue
			}
			y, ok := convertValue(f, x, target)
			if !ok {
				coerced++
				continue
			}
			conv.Data[i] = y
		}
	}

	if coerced > 0 {
		eda.Logger().Warn("values coerced to missing",
			"column", col, "type", kind.String(), "count", coerced)
	}
	if err := result.Set(col, conv); err != nil {
		return nil, err
	}
	return result, nil
}

// convertValue converts the present value x of f to the representation
// of type target.
func convertValue(f eda.Field, x float64, target eda.FieldType) (float64, bool) {
	if f.Type == eda.String {
		s := strings.TrimSpace(f.Format(x))
		if target == eda.Time {
			return eda.ParseValue(s, eda.Time)
		}
		y, err := strconv.ParseFloat(s, 64)
		if err != nil || math.IsNaN(y) {
			return 0, false
		}
		x = y
	}
	if target == eda.Int {
		if math.IsInf(x, 0) {
			return 0, false
		}
		return math.Trunc(x), true
	}
	return x, true
}
