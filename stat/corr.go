package stat

import (
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/hyp3rd/ewrap"
	gonumstat "gonum.org/v1/gonum/stat"

	"github.com/vdobler/eda"
)

// CorrMethod is a correlation coefficient.
type CorrMethod int

const (
	Pearson CorrMethod = iota
	Spearman
	Kendall
)

var corrNames = []string{"pearson", "spearman", "kendall"}

func (m CorrMethod) String() string {
	if m >= 0 && int(m) < len(corrNames) {
		return corrNames[m]
	}
	return fmt.Sprintf("CorrMethod(%d)", int(m))
}

// ParseCorrMethod maps "pearson", "spearman" or "kendall" to a CorrMethod.
func ParseCorrMethod(s string) (CorrMethod, error) {
	i := slices.Index(corrNames, strings.ToLower(strings.TrimSpace(s)))
	if i < 0 {
		return 0, ewrap.Wrapf(eda.ErrInvalidOption,
			"correlation method %q (allowed: %s)", s, strings.Join(corrNames, ", "))
	}
	return CorrMethod(i), nil
}

// Correlate computes the correlation coefficient of x and y over the rows
// where both are present. It is NaN for fewer than two such rows or if
// either variable is constant there.
func Correlate(x, y []float64, m CorrMethod) float64 {
	var xs, ys []float64
	for i := range x {
		if math.IsNaN(x[i]) || math.IsNaN(y[i]) {
			continue
		}
		xs = append(xs, x[i])
		ys = append(ys, y[i])
	}
	if len(xs) < 2 {
		return math.NaN()
	}

	switch m {
	case Spearman:
		return pearson(Ranks(xs), Ranks(ys))
	case Kendall:
		return kendallTauB(xs, ys)
	}
	return pearson(xs, ys)
}

func pearson(x, y []float64) float64 {
	if isConstant(x) || isConstant(y) {
		return math.NaN()
	}
	return gonumstat.Correlation(x, y, nil)
}

func isConstant(x []float64) bool {
	for _, v := range x[1:] {
		if v != x[0] {
			return false
		}
	}
	return true
}

// Ranks returns the rank of each value of x (1 is the smallest). Tied
// values get the average of their ranks.
func Ranks(x []float64) []float64 {
	idx := make([]int, len(x))
	for i := range idx {
		idx[i] = i
	}
	slices.SortStableFunc(idx, func(a, b int) int {
		switch {
		case x[a] < x[b]:
			return -1
		case x[a] > x[b]:
			return 1
		}
		return 0
	})

	ranks := make([]float64, len(x))
	for i := 0; i < len(idx); {
		j := i
		for j < len(idx) && x[idx[j]] == x[idx[i]] {
			j++
		}
		avg := float64(i+j+1) / 2 // mean of ranks i+1 .. j
		for k := i; k < j; k++ {
			ranks[idx[k]] = avg
		}
		i = j
	}
	return ranks
}

// kendallTauB is Kendall's tau-b which corrects for ties.
func kendallTauB(x, y []float64) float64 {
	n := len(x)
	var s, tiesX, tiesY float64
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			dx, dy := sign(x[i]-x[j]), sign(y[i]-y[j])
			if dx == 0 {
				tiesX++
			}
			if dy == 0 {
				tiesY++
			}
			s += dx * dy
		}
	}
	n0 := float64(n*(n-1)) / 2
	denom := math.Sqrt((n0 - tiesX) * (n0 - tiesY))
	if denom == 0 {
		return math.NaN()
	}
	return s / denom
}

func sign(x float64) float64 {
	switch {
	case x < 0:
		return -1
	case x > 0:
		return 1
	}
	return 0
}

// Correlation computes the correlation matrix of all numeric columns of
// df. The result has a LabelField followed by one Float field per numeric
// column, in column order. A numeric column named like the LabelField
// fails with ErrDuplicateColumn.
func Correlation(df *eda.DataFrame, m CorrMethod) (*eda.DataFrame, error) {
	if m < Pearson || m > Kendall {
		return nil, ewrap.Wrapf(eda.ErrInvalidOption, "correlation method %s", m)
	}
	for _, name := range df.Names() {
		if !df.Columns[name].Numeric() {
			eda.Logger().Debug("correlation skips column", "column", name,
				"type", df.Columns[name].Type.String())
		}
	}

	names := df.NumericNames()
	if slices.Contains(names, LabelField) {
		return nil, ewrap.Wrapf(eda.ErrDuplicateColumn,
			"numeric column %q clashes with the label field of the correlation matrix", LabelField)
	}
	s := newSummary(fmt.Sprintf("%s correlation of %s", m, df.Name), names)
	for _, b := range names {
		y := df.Columns[b].Data
		s.floats(b, func(i int) float64 {
			x := df.Columns[names[i]].Data
			r := Correlate(x, y, m)
			if names[i] == b && !math.IsNaN(r) {
				return 1
			}
			return r
		})
	}
	return s.df, nil
}
