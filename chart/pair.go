package chart

import (
	"fmt"

	"github.com/hyp3rd/ewrap"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"

	"github.com/vdobler/eda"
)

// Pairplot draws a grid of plots for every pair of the numeric columns
// cols, all numeric columns except hue if cols is empty. Diagonal cells
// show the kernel density estimate of the column, the others a scatter
// plot of the row column against the column column. A discrete hue column
// splits every cell by level.
func Pairplot(df *eda.DataFrame, cols []string, hue string) (*Figure, error) {
	if len(cols) == 0 {
		for _, name := range df.NumericNames() {
			if name != hue {
				cols = append(cols, name)
			}
		}
	}
	if len(cols) == 0 {
		return nil, ewrap.Wrapf(eda.ErrNotNumeric, "no numeric columns in %q", df.Name)
	}
	for _, col := range cols {
		if _, err := axisColumn(df, col, false); err != nil {
			return nil, err
		}
	}
	groups, levels, scale, err := hueGroups(df, hue)
	if err != nil {
		return nil, err
	}

	n := len(cols)
	grid := make([][]*plot.Plot, n)
	for i, row := range cols {
		grid[i] = make([]*plot.Plot, n)
		for j, col := range cols {
			p := plot.New()
			if i == n-1 {
				p.X.Label.Text = col
			}
			if j == 0 {
				p.Y.Label.Text = row
			}
			if i != j {
				if err := addScatter(p, df, col, row, hue, false); err != nil {
					eda.Logger().Debug("empty pair plot cell", "x", col, "y", row)
				}
				grid[i][j] = p
				continue
			}

			for k, g := range groups {
				sty := DefaultTheme.LineStyle
				if scale != nil && scale.Discrete {
					sty = MergeStyles(Style{"color": hexColor(scale, levels[k])}, sty)
				}
				line, err := densityLine(g.Columns[col].Values(), 1, sty)
				if err != nil {
					return nil, err
				}
				if line == nil {
					continue
				}
				p.Add(line)
				if i == 0 && scale != nil && scale.Discrete {
					p.Legend.Add(scale.Levels[k], line)
				}
			}
			p.Legend.Top = true
			grid[i][j] = p
		}
	}

	w, h := DefaultTheme.size("pair")
	return &Figure{Width: vg.Length(n) * w, Height: vg.Length(n) * h, Plots: grid}, nil
}

// hexColor formats the color of level x in scale for a Style.
func hexColor(scale *Scale, x float64) string {
	r, g, b, _ := scale.Color(x).RGBA()
	return fmt.Sprintf("#%02x%02x%02x", r>>8, g>>8, b>>8)
}
