package chart

import (
	"fmt"
	"image/color"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/vdobler/eda/stat"
)

// -------------------------------------------------------------------------
// Geom Boxplot

// geomBoxplot draws one box and whisker plot per summary at the category
// positions 0, 1, 2, ...
type geomBoxplot struct {
	Boxes      []stat.BoxSummary
	Width      float64 // box width in category units
	Horizontal bool
	Style      Style
}

var (
	_ plot.Plotter    = geomBoxplot{}
	_ plot.DataRanger = geomBoxplot{}
)

func (b geomBoxplot) Plot(c draw.Canvas, plt *plot.Plot) {
	trX, trY := plt.Transforms(&c)
	line := b.Style.LineStyle()
	fill := b.Style.Color("fill")
	outlier := b.Style.GlyphStyle()
	outlier.Color = BuiltinColors["darkred"]

	wh := b.Width / 2
	for i, box := range b.Boxes {
		if box.N == 0 {
			continue
		}
		pos := float64(i)
		pt := func(v, offset float64) vg.Point {
			if b.Horizontal {
				return vg.Point{X: trX(v), Y: trY(pos + offset)}
			}
			return vg.Point{X: trX(pos + offset), Y: trY(v)}
		}

		rect := []vg.Point{pt(box.Q1, -wh), pt(box.Q3, -wh), pt(box.Q3, wh), pt(box.Q1, wh)}
		c.FillPolygon(fill, c.ClipPolygonXY(rect))
		c.StrokeLines(line, c.ClipLinesXY(append(rect, rect[0]))...)
		c.StrokeLines(line, c.ClipLinesXY(
			[]vg.Point{pt(box.Median, -wh), pt(box.Median, wh)},
			[]vg.Point{pt(box.Low, 0), pt(box.Q1, 0)},
			[]vg.Point{pt(box.Q3, 0), pt(box.High, 0)},
			[]vg.Point{pt(box.Low, -wh/2), pt(box.Low, wh/2)},
			[]vg.Point{pt(box.High, -wh/2), pt(box.High, wh/2)},
		)...)

		for _, y := range box.Outliers {
			if p := pt(y, 0); c.Contains(p) {
				c.DrawGlyph(outlier, p)
			}
		}
	}
}

func (b geomBoxplot) DataRange() (xmin, xmax, ymin, ymax float64) {
	lo, hi := math.Inf(+1), math.Inf(-1)
	for _, box := range b.Boxes {
		if box.N == 0 {
			continue
		}
		lo, hi = math.Min(lo, box.Min), math.Max(hi, box.Max)
	}
	if lo > hi {
		lo, hi = 0, 1
	}
	cmin, cmax := -0.5, float64(len(b.Boxes))-0.5
	if b.Horizontal {
		return lo, hi, cmin, cmax
	}
	return cmin, cmax, lo, hi
}

// -------------------------------------------------------------------------
// Geom Pie

// geomPie draws a pie chart filling the data area. Slices start at three
// o'clock and run counterclockwise.
type geomPie struct {
	Values []float64
	Labels []string
	Colors []color.Color
	Line   draw.LineStyle
}

var (
	_ plot.Plotter    = geomPie{}
	_ plot.DataRanger = geomPie{}
)

func (g geomPie) Plot(c draw.Canvas, plt *plot.Plot) {
	total := floats.Sum(g.Values)
	if total <= 0 {
		return
	}
	size := c.Rectangle.Size()
	r := 0.38 * math.Min(float64(size.X), float64(size.Y))
	center := vg.Point{X: (c.Min.X + c.Max.X) / 2, Y: (c.Min.Y + c.Max.Y) / 2}
	at := func(angle, dist float64) vg.Point {
		return vg.Point{
			X: center.X + vg.Length(dist*r*math.Cos(angle)),
			Y: center.Y + vg.Length(dist*r*math.Sin(angle)),
		}
	}

	sty := plt.X.Tick.Label
	sty.Rotation = 0
	sty.YAlign = text.YCenter

	start := 0.0
	for i, v := range g.Values {
		sweep := 2 * math.Pi * v / total
		var path vg.Path
		path.Move(center)
		path.Arc(center, vg.Length(r), start, sweep)
		path.Close()
		c.SetColor(g.Colors[i%len(g.Colors)])
		c.Fill(path)
		c.SetLineStyle(g.Line)
		c.Stroke(path)

		mid := start + sweep/2
		sty.XAlign = text.XCenter
		c.FillText(sty, at(mid, 0.6), fmt.Sprintf("%.1f%%", 100*v/total))
		sty.XAlign = text.XLeft
		if math.Cos(mid) < 0 {
			sty.XAlign = text.XRight
		}
		c.FillText(sty, at(mid, 1.1), g.Labels[i])
		start += sweep
	}
}

func (g geomPie) DataRange() (xmin, xmax, ymin, ymax float64) {
	return -1, 1, -1, 1
}

// -------------------------------------------------------------------------
// Legend swatch

// swatch is a legend thumbnail showing one glyph.
type swatch draw.GlyphStyle

func (s swatch) Thumbnail(c *draw.Canvas) {
	c.DrawGlyph(draw.GlyphStyle(s), c.Center())
}
