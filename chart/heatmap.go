package chart

import (
	"image/color"
	"math"
	"strconv"

	"github.com/hyp3rd/ewrap"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/text"

	"github.com/vdobler/eda"
	"github.com/vdobler/eda/stat"
)

// matrixGrid exposes a square matrix as plotter.GridXYZ. Row 0 of the
// matrix is drawn at the top.
type matrixGrid [][]float64

func (m matrixGrid) Dims() (c, r int)   { return len(m), len(m) }
func (m matrixGrid) Z(c, r int) float64 { return m[len(m)-1-r][c] }
func (m matrixGrid) X(c int) float64    { return float64(c) }
func (m matrixGrid) Y(r int) float64    { return float64(r) }

// CorrelationHeatmap draws the correlation matrix of the numeric columns
// of df as a blue to red heatmap from -1 to 1, annotated with the
// coefficients.
func CorrelationHeatmap(df *eda.DataFrame, m stat.CorrMethod) (*Figure, error) {
	corr, err := stat.Correlation(df, m)
	if err != nil {
		return nil, err
	}
	names := df.NumericNames()
	n := len(names)
	if n == 0 {
		return nil, ewrap.Wrapf(eda.ErrNotNumeric, "no numeric columns in %q", df.Name)
	}

	matrix := make(matrixGrid, n)
	for i := range matrix {
		matrix[i] = make([]float64, n)
		for j, name := range names {
			matrix[i][j] = corr.Columns[name].Data[i]
		}
	}

	hm := plotter.NewHeatMap(matrix, moreland.SmoothBlueRed().Palette(255))
	hm.Min, hm.Max = -1, 1
	hm.NaN = color.White

	var labels plotter.XYLabels
	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			z := matrix.Z(c, r)
			label := ""
			if !math.IsNaN(z) {
				label = strconv.FormatFloat(z, 'f', 2, 64)
			}
			labels.XYs = append(labels.XYs, plotter.XY{X: float64(c), Y: float64(r)})
			labels.Labels = append(labels.Labels, label)
		}
	}
	annotations, err := plotter.NewLabels(labels)
	if err != nil {
		return nil, err
	}
	for i := range annotations.TextStyle {
		annotations.TextStyle[i].XAlign = text.XCenter
		annotations.TextStyle[i].YAlign = text.YCenter
	}

	p := plot.New()
	p.Title.Text = "Correlation matrix (" + m.String() + ")"
	p.Add(hm, annotations)

	reversed := make([]string, n)
	for i, name := range names {
		reversed[n-1-i] = name
	}
	p.X.Tick.Marker = categoryTicks(names)
	p.Y.Tick.Marker = categoryTicks(reversed)
	p.X.Tick.Label.Rotation = math.Pi / 4
	p.X.Tick.Label.XAlign = text.XRight
	p.X.Tick.Label.YAlign = text.YTop

	w, h := DefaultTheme.size("heatmap")
	return NewFigure(p, w, h), nil
}
