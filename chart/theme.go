package chart

import "gonum.org/v1/plot/vg"

// Theme holds the default styles of the chart elements and the default
// figure sizes.
type Theme struct {
	PointStyle, LineStyle, BarStyle, BoxStyle, DensityStyle Style

	// Figure sizes by chart kind, in inches.
	Sizes map[string][2]float64
}

var DefaultTheme = Theme{
	PointStyle: Style{
		"size":  "3",
		"shape": "solid-circle",
		"color": "steelblue",
		"alpha": "0.7",
	},
	LineStyle: Style{
		"size":     "1",
		"linetype": "solid",
		"color":    "steelblue",
	},
	BarStyle: Style{
		"linetype": "solid",
		"size":     "0.5",
		"color":    "gray20",
		"fill":     "steelblue",
	},
	BoxStyle: Style{
		"size":  "0.5",
		"color": "gray20",
		"fill":  "steelblue",
		"shape": "diamond",
	},
	DensityStyle: Style{
		"size":     "1.2",
		"linetype": "solid",
		"color":    "darkred",
	},
	Sizes: map[string][2]float64{
		"histogram":    {8, 5},
		"distribution": {10, 5},
		"boxplot":      {8, 4},
		"bar":          {10, 5},
		"heatmap":      {10, 6},
		"scatter":      {8, 5},
		"line":         {10, 5},
		"pie":          {7, 7},
		"pair":         {2.5, 2.5}, // per panel
	},
}

// size returns the figure size of kind.
func (t Theme) size(kind string) (vg.Length, vg.Length) {
	s, ok := t.Sizes[kind]
	if !ok {
		s = [2]float64{8, 5}
	}
	return vg.Length(s[0]) * vg.Inch, vg.Length(s[1]) * vg.Inch
}
