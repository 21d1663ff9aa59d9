package chart

import (
	"bytes"
	"errors"
	"image/color"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/plot/plotter"

	"github.com/vdobler/eda"
	"github.com/vdobler/eda/stat"
)

var nan = math.NaN()

func measurement(t *testing.T) *eda.DataFrame {
	t.Helper()
	day := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	days := make([]time.Time, 12)
	for i := range days {
		days[i] = day.AddDate(0, 0, i/2)
	}
	df, err := eda.FromColumns("measurement",
		eda.FloatColumn("height", 160, 172, 181, 158, 190, 175, 168, 177, 185, 163, 171, 250),
		eda.FloatColumn("weight", 55, 70, 82, nan, 95, 72, 64, 75, 88, 58, 69, 99),
		eda.IntColumn("age", 23, 35, 41, 19, 52, 33, 28, 45, 38, 24, 31, 60),
		eda.StringColumn("group", "a", "b", "a", "c", "b", "a", "c", "b", "a", "", "c", "b"),
		eda.TimeColumn("day", days...))
	require.NoError(t, err)
	return df
}

// render saves fig as png into a temporary directory and checks that a
// non-empty file was written.
func render(t *testing.T, fig *Figure, name string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), name+".png")
	require.NoError(t, fig.Save(path))
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestString2Color(t *testing.T) {
	tests := []struct {
		s string
		c color.Color
	}{
		{"#1256ab", color.NRGBA{0x12, 0x56, 0xab, 0xff}},
		{"#1256abcd", color.NRGBA{0x12, 0x56, 0xab, 0xcd}},
		{"red", color.NRGBA{0xff, 0x00, 0x00, 0xff}},
		{"skyblue", color.NRGBA{0x87, 0xce, 0xeb, 0xff}},
		{"nonsens", color.NRGBA{0xaa, 0x66, 0x77, 0x7f}},
	}

	for i, tc := range tests {
		got := String2Color(tc.s)
		rg, gg, bg, ag := got.RGBA()
		rw, gw, bw, aw := tc.c.RGBA()
		if rg != rw || gg != gw || bg != bw || ag != aw {
			t.Errorf("%d %q: got %04X, %04X, %04X, %04X want %04X, %04X, %04X, %04X",
				i, tc.s, rg, gg, bg, ag, rw, gw, bw, aw)
		}
	}
}

func TestStyle(t *testing.T) {
	assert.Equal(t, 0.5, String2Float("50%", 0, 1))
	assert.Equal(t, 1.0, String2Float("7", 0, 1))
	assert.Equal(t, 0.5, String2Float("lots", 0, 1))

	merged := MergeStyles(Style{"color": "red"}, Style{"color": "blue", "size": "2"})
	assert.Equal(t, Style{"color": "red", "size": "2"}, merged)

	_, _, _, a := Style{"color": "red", "alpha": "0.5"}.Color("color").RGBA()
	assert.InDelta(t, 0x7f7f, a, 0x101)

	assert.Nil(t, String2LineType("solid").Dashes())
	assert.Len(t, String2LineType("dashed").Dashes(), 2)
	assert.Equal(t, CrossPoint, String2PointShape("cross"))
	assert.Equal(t, BlankPoint, String2PointShape("11"))
}

func TestScale(t *testing.T) {
	df := measurement(t)

	discrete := NewScale(df.Columns["group"])
	discrete.Train(df.Columns["group"])
	discrete.Prepare()
	assert.True(t, discrete.Discrete)
	assert.Equal(t, []string{"a", "b", "c"}, discrete.Levels)
	assert.Equal(t, 0.5, discrete.Pos(discrete.Breaks[1]))
	assert.NotEqual(t, discrete.Color(discrete.Breaks[0]), discrete.Color(discrete.Breaks[1]))

	continuous := NewScale(df.Columns["age"])
	continuous.Train(df.Columns["age"])
	continuous.Prepare()
	assert.False(t, continuous.Discrete)
	assert.Equal(t, 19.0, continuous.DomainMin)
	assert.Equal(t, 60.0, continuous.DomainMax)
	assert.Len(t, continuous.Breaks, 5)
	assert.InDelta(t, 0.5, continuous.Pos(39.5), 1e-12)

	ticks := categoryTicks{"x", "y", "z"}.Ticks(0.5, 2)
	require.Len(t, ticks, 2)
	assert.Equal(t, "y", ticks[0].Label)
}

func TestMeanByX(t *testing.T) {
	got := meanByX(plotter.XYs{{X: 2, Y: 1}, {X: 1, Y: 4}, {X: 2, Y: 3}, {X: 0, Y: 5}})
	assert.Equal(t, plotter.XYs{{X: 0, Y: 5}, {X: 1, Y: 4}, {X: 2, Y: 2}}, got)
}

func TestCharts(t *testing.T) {
	df := measurement(t)

	for _, tc := range []struct {
		name  string
		chart func() (*Figure, error)
	}{
		{"histogram", func() (*Figure, error) { return Histogram(df, "height", 0) }},
		{"distribution", func() (*Figure, error) { return Distribution(df, "weight", 8) }},
		{"boxplot", func() (*Figure, error) { return Boxplot(df, "height") }},
		{"boxplot-by", func() (*Figure, error) { return BoxplotBy(df, "weight", "group") }},
		{"bar", func() (*Figure, error) { return Bar(df, "group", 0) }},
		{"pie", func() (*Figure, error) { return Pie(df, "group", 2) }},
		{"heatmap", func() (*Figure, error) { return CorrelationHeatmap(df, stat.Spearman) }},
		{"scatter", func() (*Figure, error) { return Scatter(df, "height", "weight", "") }},
		{"scatter-hue", func() (*Figure, error) { return Scatter(df, "height", "weight", "group") }},
		{"scatter-ramp", func() (*Figure, error) { return Scatter(df, "height", "weight", "age") }},
		{"line", func() (*Figure, error) { return Line(df, "day", "weight", "") }},
		{"line-group", func() (*Figure, error) { return Line(df, "age", "height", "group") }},
		{"pairplot", func() (*Figure, error) { return Pairplot(df, nil, "group") }},
	} {
		t.Run(tc.name, func(t *testing.T) {
			fig, err := tc.chart()
			require.NoError(t, err)
			render(t, fig, tc.name)
		})
	}
}

func TestFigureSizes(t *testing.T) {
	df := measurement(t)

	fig, err := Pie(df, "group", 0)
	require.NoError(t, err)
	assert.Equal(t, fig.Width, fig.Height)

	fig, err = Pairplot(df, []string{"height", "age"}, "")
	require.NoError(t, err)
	require.Len(t, fig.Plots, 2)
	assert.Len(t, fig.Plots[1], 2)
	assert.Equal(t, "height", fig.Plots[1][0].X.Label.Text)
	assert.Equal(t, "age", fig.Plots[1][0].Y.Label.Text)

	var buf bytes.Buffer
	n, err := fig.WriteTo(&buf, "svg")
	require.NoError(t, err)
	assert.Equal(t, int64(buf.Len()), n)
	assert.Contains(t, buf.String(), "<svg")
}

func TestChartErrors(t *testing.T) {
	df := measurement(t)

	_, err := Histogram(df, "group", 10)
	assert.True(t, errors.Is(err, eda.ErrNotNumeric))
	_, err = Scatter(df, "height", "nope", "")
	assert.True(t, errors.Is(err, eda.ErrColumnNotFound))
	_, err = Line(df, "group", "height", "")
	assert.True(t, errors.Is(err, eda.ErrNotNumeric))
	_, err = BoxplotBy(df, "height", "weight")
	assert.True(t, errors.Is(err, eda.ErrInvalidOption))

	empty, err := eda.FromColumns("empty", eda.FloatColumn("x", nan, nan))
	require.NoError(t, err)
	_, err = Boxplot(empty, "x")
	assert.True(t, errors.Is(err, eda.ErrEmptyFrame))
	_, err = Pie(empty, "x", 3)
	assert.True(t, errors.Is(err, eda.ErrEmptyFrame))

	fig, err := Histogram(df, "height", 5)
	require.NoError(t, err)
	_, err = fig.WriteTo(&bytes.Buffer{}, "bmp")
	assert.True(t, errors.Is(err, eda.ErrInvalidOption))
	err = fig.Save(filepath.Join(t.TempDir(), "noext"))
	assert.True(t, errors.Is(err, eda.ErrInvalidOption))
}

func TestInfiniteValues(t *testing.T) {
	df, err := eda.FromColumns("inf",
		eda.FloatColumn("x", 1, 2, math.Inf(1), 3, math.Inf(-1), 2.5),
		eda.FloatColumn("y", math.Inf(1), nan, math.Inf(-1), nan, nan, nan))
	require.NoError(t, err)

	fig, err := Histogram(df, "x", 4)
	require.NoError(t, err)
	render(t, fig, "histogram")
	fig, err = Distribution(df, "x", 4)
	require.NoError(t, err)
	render(t, fig, "distribution")

	_, err = Histogram(df, "y", 4)
	assert.True(t, errors.Is(err, eda.ErrEmptyFrame))
}
