// Package chart draws the exploratory charts of data frames with
// gonum/plot: histograms, densities, box plots, bar and pie charts of
// categories, correlation heatmaps, scatter, line and pair plots.
//
// Every function returns a Figure which is rendered with Save or WriteTo.
// Charts never modify their input frame.
package chart

import (
	"math"
	"slices"
	"strconv"

	"github.com/hyp3rd/ewrap"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/vdobler/eda"
	"github.com/vdobler/eda/stat"
)

// DefaultBins is the number of histogram bins used if none are given.
const DefaultBins = 30

// newPlot sets up a plot with title, axis labels and a background grid.
func newPlot(title, xlabel, ylabel string) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xlabel
	p.Y.Label.Text = ylabel
	p.Add(plotter.NewGrid())
	return p
}

// newBarPlot is newPlot with horizontal grid lines only.
func newBarPlot(title, xlabel, ylabel string) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xlabel
	p.Y.Label.Text = ylabel
	grid := plotter.NewGrid()
	grid.Vertical.Color = nil
	p.Add(grid)
	return p
}

// numericValues returns the finite values of the numeric column col.
// Infinite values cannot be placed on an axis and are dropped.
func numericValues(df *eda.DataFrame, col string) ([]float64, error) {
	f, err := df.NumericColumn(col)
	if err != nil {
		return nil, err
	}
	vals := slices.DeleteFunc(f.Values(), func(x float64) bool { return math.IsInf(x, 0) })
	if dropped := len(f.Data) - f.Missing() - len(vals); dropped > 0 {
		eda.Logger().Warn("skipping infinite values", "column", col, "count", dropped)
	}
	if len(vals) == 0 {
		return nil, ewrap.Wrapf(eda.ErrEmptyFrame, "no values in column %q", col)
	}
	return vals, nil
}

// axisColumn returns col if it can be placed on a continuous axis.
func axisColumn(df *eda.DataFrame, col string, allowTime bool) (eda.Field, error) {
	f, err := df.Column(col)
	if err != nil {
		return f, err
	}
	if f.Numeric() || (allowTime && f.Type == eda.Time) {
		return f, nil
	}
	return f, ewrap.Wrapf(eda.ErrNotNumeric, "%q has type %s", col, f.Type)
}

// points collects the rows where both x and y are present.
func points(x, y []float64) plotter.XYs {
	xys := make(plotter.XYs, 0, len(x))
	for i := range x {
		if math.IsNaN(x[i]) || math.IsNaN(y[i]) {
			continue
		}
		xys = append(xys, plotter.XY{X: x[i], Y: y[i]})
	}
	return xys
}

// hueGroups partitions df by the levels of the hue column. Without a hue
// column df is the only group and the scale is nil.
func hueGroups(df *eda.DataFrame, hue string) ([]*eda.DataFrame, []float64, *Scale, error) {
	if hue == "" {
		return []*eda.DataFrame{df}, []float64{math.NaN()}, nil, nil
	}
	f, err := df.Column(hue)
	if err != nil {
		return nil, nil, nil, err
	}
	scale := NewScale(f)
	scale.Train(f)
	scale.Prepare()
	if !scale.Discrete {
		return []*eda.DataFrame{df}, []float64{math.NaN()}, scale, nil
	}
	return eda.Partition(df, hue, scale.Breaks), scale.Breaks, scale, nil
}

// histogram builds the bars of the numeric column col; density selects
// the density instead of the count as bar height.
func histogram(df *eda.DataFrame, col string, bins int, density bool) (*plotter.Histogram, float64, error) {
	if bins <= 0 {
		bins = DefaultBins
	}
	binned, err := stat.StatBin{Column: col, Options: stat.BinOptions{Bins: bins}}.Apply(df)
	if err != nil {
		return nil, 0, err
	}
	if binned.N == 0 {
		return nil, 0, ewrap.Wrapf(eda.ErrEmptyFrame, "no values in column %q", col)
	}
	lo, hi := binned.Columns["lo"].Data, binned.Columns["hi"].Data
	weights := binned.Columns["count"].Data
	if density {
		weights = binned.Columns["density"].Data
	}
	h := &plotter.Histogram{
		Bins:      make([]plotter.HistogramBin, binned.N),
		Width:     hi[0] - lo[0],
		FillColor: DefaultTheme.BarStyle.Color("fill"),
		LineStyle: DefaultTheme.BarStyle.LineStyle(),
	}
	for i := range h.Bins {
		h.Bins[i] = plotter.HistogramBin{Min: lo[i], Max: hi[i], Weight: weights[i]}
	}
	return h, h.Width, nil
}

// densityLine is the kernel density estimate of values multiplied by
// scale. It returns nil if no density can be estimated.
func densityLine(values []float64, scale float64, sty Style) (*plotter.Line, error) {
	xs, ys := stat.KDE(values, 200)
	if xs == nil {
		return nil, nil
	}
	xys := make(plotter.XYs, len(xs))
	for i := range xs {
		xys[i] = plotter.XY{X: xs[i], Y: scale * ys[i]}
	}
	line, err := plotter.NewLine(xys)
	if err != nil {
		return nil, err
	}
	line.LineStyle = sty.LineStyle()
	return line, nil
}

// Histogram shows the frequencies of the numeric column col in bins
// equally wide bins with a kernel density estimate scaled to the counts.
func Histogram(df *eda.DataFrame, col string, bins int) (*Figure, error) {
	values, err := numericValues(df, col)
	if err != nil {
		return nil, err
	}
	p := newPlot("Histogram of "+col, col, "Frequency")
	h, width, err := histogram(df, col, bins, false)
	if err != nil {
		return nil, err
	}
	p.Add(h)
	kde, err := densityLine(values, float64(len(values))*width, DefaultTheme.DensityStyle)
	if err != nil {
		return nil, err
	}
	if kde != nil {
		p.Add(kde)
	}
	w, ht := DefaultTheme.size("histogram")
	return NewFigure(p, w, ht), nil
}

// Distribution shows the density histogram of the numeric column col
// together with its kernel density estimate.
func Distribution(df *eda.DataFrame, col string, bins int) (*Figure, error) {
	values, err := numericValues(df, col)
	if err != nil {
		return nil, err
	}
	p := newPlot("Distribution of "+col, col, "Density")
	h, _, err := histogram(df, col, bins, true)
	if err != nil {
		return nil, err
	}
	p.Add(h)
	kde, err := densityLine(values, 1, DefaultTheme.DensityStyle)
	if err != nil {
		return nil, err
	}
	if kde != nil {
		p.Add(kde)
		p.Legend.Add("KDE", kde)
		p.Legend.Top = true
	}
	w, ht := DefaultTheme.size("distribution")
	return NewFigure(p, w, ht), nil
}

// Boxplot draws a horizontal box and whisker plot of the numeric column
// col. Whiskers reach to the most extreme values within 1.5 times the
// interquartile range from the quartiles; values beyond are drawn as
// points.
func Boxplot(df *eda.DataFrame, col string) (*Figure, error) {
	values, err := numericValues(df, col)
	if err != nil {
		return nil, err
	}
	p := newPlot("Boxplot of "+col, col, "")
	p.Add(geomBoxplot{
		Boxes:      []stat.BoxSummary{stat.ComputeBox(values, 1.5)},
		Width:      0.6,
		Horizontal: true,
		Style:      DefaultTheme.BoxStyle,
	})
	p.Y.Tick.Marker = categoryTicks{""}
	w, h := DefaultTheme.size("boxplot")
	return NewFigure(p, w, h), nil
}

// BoxplotBy draws one vertical box plot of the numeric column col per
// level of the discrete column by.
func BoxplotBy(df *eda.DataFrame, col, by string) (*Figure, error) {
	if by == "" {
		return Boxplot(df, col)
	}
	if _, err := numericValues(df, col); err != nil {
		return nil, err
	}
	_, _, scale, err := hueGroups(df, by)
	if err != nil {
		return nil, err
	}
	if !scale.Discrete {
		return nil, ewrap.Wrapf(eda.ErrInvalidOption, "grouping column %q is not discrete", by)
	}
	boxes, _, err := stat.StatBoxplot{Column: col, GroupBy: by, Coef: 1.5}.Boxes(df)
	if err != nil {
		return nil, err
	}

	p := newPlot("Boxplot of "+col+" by "+by, by, col)
	p.Add(geomBoxplot{Boxes: boxes, Width: 0.6, Style: DefaultTheme.BoxStyle})
	p.X.Tick.Marker = categoryTicks(scale.Levels)
	w, h := DefaultTheme.size("bar")
	return NewFigure(p, w, h), nil
}

// Bar shows the counts of the topN most frequent values of col, 10 if
// topN is not positive.
func Bar(df *eda.DataFrame, col string, topN int) (*Figure, error) {
	if topN <= 0 {
		topN = 10
	}
	counts, err := stat.CountCategories(df, col, topN)
	if err != nil {
		return nil, err
	}
	if counts.N == 0 {
		return nil, ewrap.Wrapf(eda.ErrEmptyFrame, "no values in column %q", col)
	}

	labels := make([]string, counts.N)
	values := make(plotter.Values, counts.N)
	for i := range labels {
		labels[i] = counts.Columns["value"].String(i)
		values[i] = counts.Columns["count"].Data[i]
	}

	w, h := DefaultTheme.size("bar")
	p := newBarPlot("Top "+strconv.Itoa(topN)+" categories in "+col, col, "Frequency")
	bars, err := plotter.NewBarChart(values, 0.6*w/vg.Length(counts.N+1))
	if err != nil {
		return nil, err
	}
	bars.Color = BuiltinColors["skyblue"]
	bars.LineStyle.Width = 0
	p.Add(bars)
	p.NominalX(labels...)
	p.X.Tick.Label.Rotation = math.Pi / 4
	p.X.Tick.Label.XAlign = text.XRight
	p.X.Tick.Label.YAlign = text.YTop
	return NewFigure(p, w, h), nil
}

// Pie shows the shares of the topN most frequent values of col, 5 if
// topN is not positive.
func Pie(df *eda.DataFrame, col string, topN int) (*Figure, error) {
	if topN <= 0 {
		topN = 5
	}
	counts, err := stat.CountCategories(df, col, topN)
	if err != nil {
		return nil, err
	}
	if counts.N == 0 {
		return nil, ewrap.Wrapf(eda.ErrEmptyFrame, "no values in column %q", col)
	}

	pie := geomPie{
		Values: slices.Clone(counts.Columns["count"].Data),
		Labels: make([]string, counts.N),
		Colors: Pastel,
		Line:   Style{"color": "white", "size": "1"}.LineStyle(),
	}
	for i := range pie.Labels {
		pie.Labels[i] = counts.Columns["value"].String(i)
	}

	p := plot.New()
	p.Title.Text = "Distribution of " + col
	p.Add(pie)
	p.HideAxes()
	w, h := DefaultTheme.size("pie")
	return NewFigure(p, w, h), nil
}

// Scatter plots the numeric column y against x. A hue column colors the
// points: one color and legend entry per level of a discrete column, a
// color ramp for a continuous one.
func Scatter(df *eda.DataFrame, x, y, hue string) (*Figure, error) {
	if _, err := axisColumn(df, x, false); err != nil {
		return nil, err
	}
	if _, err := axisColumn(df, y, false); err != nil {
		return nil, err
	}
	p := newPlot(x+" vs "+y, x, y)
	if err := addScatter(p, df, x, y, hue, true); err != nil {
		return nil, err
	}
	w, h := DefaultTheme.size("scatter")
	return NewFigure(p, w, h), nil
}

func addScatter(p *plot.Plot, df *eda.DataFrame, x, y, hue string, legend bool) error {
	groups, levels, scale, err := hueGroups(df, hue)
	if err != nil {
		return err
	}
	total := 0
	for i, g := range groups {
		xys := points(g.Columns[x].Data, g.Columns[y].Data)
		if len(xys) == 0 {
			continue
		}
		total += len(xys)
		sc, err := plotter.NewScatter(xys)
		if err != nil {
			return err
		}
		sc.GlyphStyle = DefaultTheme.PointStyle.GlyphStyle()
		switch {
		case scale == nil:
		case scale.Discrete:
			sc.GlyphStyle.Color = SetAlpha(scale.Color(levels[i]), 0.7)
			if legend {
				p.Legend.Add(scale.Levels[i], sc)
			}
		default:
			// Points with a missing hue value keep the default color.
			hues := make([]float64, 0, len(xys))
			xs, ys, hs := g.Columns[x].Data, g.Columns[y].Data, g.Columns[hue].Data
			for j := range xs {
				if !math.IsNaN(xs[j]) && !math.IsNaN(ys[j]) {
					hues = append(hues, hs[j])
				}
			}
			base := sc.GlyphStyle
			sc.GlyphStyleFunc = func(j int) draw.GlyphStyle {
				s := base
				if !math.IsNaN(hues[j]) {
					s.Color = SetAlpha(scale.Color(hues[j]), 0.7)
				}
				return s
			}
		}
		p.Add(sc)
	}
	if scale != nil && !scale.Discrete && legend {
		for j, b := range scale.Breaks {
			s := DefaultTheme.PointStyle.GlyphStyle()
			s.Color = scale.Color(b)
			p.Legend.Add(scale.Levels[j], swatch(s))
		}
	}
	if legend && scale != nil {
		p.Legend.Top = true
	}
	if total == 0 {
		return ewrap.Wrapf(eda.ErrEmptyFrame, "no complete rows for %q and %q", x, y)
	}
	return nil
}

// Line draws y against x, one line per level of group if group is not
// empty. Points are connected in order of x; values sharing the same x
// are averaged. Time columns are allowed on the x axis.
func Line(df *eda.DataFrame, x, y, group string) (*Figure, error) {
	xf, err := axisColumn(df, x, true)
	if err != nil {
		return nil, err
	}
	if _, err := axisColumn(df, y, false); err != nil {
		return nil, err
	}
	groups, levels, scale, err := hueGroups(df, group)
	if err != nil {
		return nil, err
	}

	p := newPlot("Trend of "+y+" over "+x, x, y)
	drawn := 0
	for i, g := range groups {
		xys := meanByX(points(g.Columns[x].Data, g.Columns[y].Data))
		if len(xys) == 0 {
			continue
		}
		line, err := plotter.NewLine(xys)
		if err != nil {
			return nil, err
		}
		line.LineStyle = DefaultTheme.LineStyle.LineStyle()
		if scale != nil && scale.Discrete {
			line.LineStyle.Color = scale.Color(levels[i])
			p.Legend.Add(scale.Levels[i], line)
		}
		p.Add(line)
		drawn++
	}
	if drawn == 0 {
		return nil, ewrap.Wrapf(eda.ErrEmptyFrame, "no complete rows for %q and %q", x, y)
	}
	if scale != nil && !scale.Discrete {
		eda.Logger().Warn("line chart ignores continuous group column", "column", group)
	}
	if xf.Type == eda.Time {
		p.X.Tick.Marker = plot.TimeTicks{Format: "2006-01-02"}
	}
	p.Legend.Top = true
	w, h := DefaultTheme.size("line")
	return NewFigure(p, w, h), nil
}

// meanByX sorts xys by X and replaces runs of equal X by their mean Y.
func meanByX(xys plotter.XYs) plotter.XYs {
	slices.SortStableFunc(xys, func(a, b plotter.XY) int {
		switch {
		case a.X < b.X:
			return -1
		case a.X > b.X:
			return 1
		}
		return 0
	})
	out := xys[:0]
	for i := 0; i < len(xys); {
		j, sum := i, 0.0
		for ; j < len(xys) && xys[j].X == xys[i].X; j++ {
			sum += xys[j].Y
		}
		out = append(out, plotter.XY{X: xys[i].X, Y: sum / float64(j-i)})
		i = j
	}
	return out
}
