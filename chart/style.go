package chart

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/vdobler/eda"
)

// Style maps style keys like "color", "alpha" or "shape" to values.
type Style map[string]string

// MergeStyles merges styles, earlier styles take precedence.
func MergeStyles(styles ...Style) Style {
	merged := Style{}
	for i := len(styles) - 1; i >= 0; i-- {
		for k, v := range styles[i] {
			merged[k] = v
		}
	}
	return merged
}

// Float returns the numeric value of key clamped to [low,high].
// Values with a % suffix are percentages.
func (s Style) Float(key string, low, high float64) float64 {
	return String2Float(s[key], low, high)
}

// Color returns the color of key with the alpha of the style applied.
func (s Style) Color(key string) color.Color {
	c := String2Color(s[key])
	if _, ok := s["alpha"]; !ok {
		return c
	}
	return SetAlpha(c, s.Float("alpha", 0, 1))
}

// Length returns the value of key in points.
func (s Style) Length(key string) vg.Length {
	return vg.Length(s.Float(key, 0, 100)) * vg.Millimeter / 2
}

// LineStyle builds a gonum line style from the "color", "size" and
// "linetype" keys.
func (s Style) LineStyle() draw.LineStyle {
	return draw.LineStyle{
		Color:  s.Color("color"),
		Width:  s.Length("size"),
		Dashes: String2LineType(s["linetype"]).Dashes(),
	}
}

// GlyphStyle builds a gonum glyph style from the "color", "size" and
// "shape" keys.
func (s Style) GlyphStyle() draw.GlyphStyle {
	return draw.GlyphStyle{
		Color:  s.Color("color"),
		Radius: s.Length("size"),
		Shape:  String2PointShape(s["shape"]).Glyph(),
	}
}

// String2Float parses s as a number clamped to [low,high]. A % suffix
// divides by 100. Unparsable input yields the middle of the range.
func String2Float(s string, low, high float64) float64 {
	factor := 1.0
	if strings.HasSuffix(s, "%") {
		s = s[:len(s)-1]
		factor = 100
	}
	value, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		eda.Logger().Warn("cannot parse style value", "value", s, "error", err)
		return (low + high) / 2
	}
	value /= factor

	if value < low {
		return low
	} else if value > high {
		return high
	}
	return value
}

// SetAlpha returns c with opacity a in [0,1].
func SetAlpha(c color.Color, a float64) color.Color {
	r, g, b, _ := color.NRGBAModel.Convert(c).(color.NRGBA).RGBA()
	return color.NRGBA{uint8(r >> 8), uint8(g >> 8), uint8(b >> 8), uint8(a * 0xff)}
}

// -------------------------------------------------------------------------
// Points

type PointShape int

const (
	BlankPoint PointShape = iota
	CirclePoint
	SquarePoint
	DiamondPoint
	DeltaPoint
	SolidCirclePoint
	SolidSquarePoint
	SolidDiamondPoint
	SolidDeltaPoint
	CrossPoint
	PlusPoint
)

var pointShapes = map[string]PointShape{
	"circle":        CirclePoint,
	"square":        SquarePoint,
	"diamond":       DiamondPoint,
	"delta":         DeltaPoint,
	"solid-circle":  SolidCirclePoint,
	"solid-square":  SolidSquarePoint,
	"solid-diamond": SolidDiamondPoint,
	"solid-delta":   SolidDeltaPoint,
	"cross":         CrossPoint,
	"plus":          PlusPoint,
}

func String2PointShape(s string) PointShape {
	n, err := strconv.Atoi(s)
	if err == nil {
		return PointShape(n % (int(PlusPoint) + 1))
	}
	return pointShapes[s]
}

// Glyph returns the gonum glyph drawer of shape. BlankPoint draws nothing.
func (shape PointShape) Glyph() draw.GlyphDrawer {
	switch shape {
	case CirclePoint:
		return draw.RingGlyph{}
	case SquarePoint:
		return draw.SquareGlyph{}
	case DiamondPoint, SolidDiamondPoint:
		return diamondGlyph{solid: shape == SolidDiamondPoint}
	case DeltaPoint:
		return draw.TriangleGlyph{}
	case SolidCirclePoint:
		return draw.CircleGlyph{}
	case SolidSquarePoint:
		return draw.BoxGlyph{}
	case SolidDeltaPoint:
		return draw.PyramidGlyph{}
	case CrossPoint:
		return draw.CrossGlyph{}
	case PlusPoint:
		return draw.PlusGlyph{}
	}
	return blankGlyph{}
}

type blankGlyph struct{}

func (blankGlyph) DrawGlyph(*draw.Canvas, draw.GlyphStyle, vg.Point) {}

type diamondGlyph struct{ solid bool }

func (g diamondGlyph) DrawGlyph(c *draw.Canvas, sty draw.GlyphStyle, pt vg.Point) {
	r := sty.Radius
	var p vg.Path
	p.Move(vg.Point{X: pt.X, Y: pt.Y + r})
	p.Line(vg.Point{X: pt.X + r, Y: pt.Y})
	p.Line(vg.Point{X: pt.X, Y: pt.Y - r})
	p.Line(vg.Point{X: pt.X - r, Y: pt.Y})
	p.Close()
	c.SetColor(sty.Color)
	if g.solid {
		c.Fill(p)
		return
	}
	c.SetLineWidth(vg.Points(0.5))
	c.SetLineDash(nil, 0)
	c.Stroke(p)
}

// -------------------------------------------------------------------------
// Lines

type LineType int

const (
	BlankLine LineType = iota
	SolidLine
	DashedLine
	DottedLine
	DotDashLine
	LongdashLine
	TwodashLine
)

var lineTypes = map[string]LineType{
	"blank":    BlankLine,
	"solid":    SolidLine,
	"dashed":   DashedLine,
	"dotted":   DottedLine,
	"dotdash":  DotDashLine,
	"longdash": LongdashLine,
	"twodash":  TwodashLine,
}

func String2LineType(s string) LineType {
	n, err := strconv.Atoi(s)
	if err == nil {
		return LineType(n % (int(TwodashLine) + 1))
	}
	return lineTypes[s]
}

// Dashes returns the dash pattern of lt for a gonum line style.
func (lt LineType) Dashes() []vg.Length {
	pt := vg.Points
	switch lt {
	case DashedLine:
		return []vg.Length{pt(4), pt(4)}
	case DottedLine:
		return []vg.Length{pt(1), pt(3)}
	case DotDashLine:
		return []vg.Length{pt(1), pt(3), pt(4), pt(3)}
	case LongdashLine:
		return []vg.Length{pt(8), pt(4)}
	case TwodashLine:
		return []vg.Length{pt(2), pt(2), pt(6), pt(2)}
	}
	return nil
}

// -------------------------------------------------------------------------
// Colors

var BuiltinColors = map[string]color.RGBA{
	"red":       {0xff, 0x00, 0x00, 0xff},
	"green":     {0x00, 0xff, 0x00, 0xff},
	"blue":      {0x00, 0x00, 0xff, 0xff},
	"cyan":      {0x00, 0xff, 0xff, 0xff},
	"magenta":   {0xff, 0x00, 0xff, 0xff},
	"yellow":    {0xff, 0xff, 0x00, 0xff},
	"white":     {0xff, 0xff, 0xff, 0xff},
	"skyblue":   {0x87, 0xce, 0xeb, 0xff},
	"steelblue": {0x46, 0x82, 0xb4, 0xff},
	"darkred":   {0x8b, 0x00, 0x00, 0xff},
	"gray20":    {0x33, 0x33, 0x33, 0xff},
	"gray40":    {0x66, 0x66, 0x66, 0xff},
	"gray":      {0x7f, 0x7f, 0x7f, 0xff},
	"gray60":    {0x99, 0x99, 0x99, 0xff},
	"gray80":    {0xcc, 0xcc, 0xcc, 0xff},
	"black":     {0x00, 0x00, 0x00, 0xff},
}

// Pastel is a light qualitative palette for pie slices.
var Pastel = []color.Color{
	color.RGBA{0xa1, 0xc9, 0xf4, 0xff},
	color.RGBA{0xff, 0xb4, 0x82, 0xff},
	color.RGBA{0x8d, 0xe5, 0xa1, 0xff},
	color.RGBA{0xff, 0x9f, 0x9b, 0xff},
	color.RGBA{0xd0, 0xbb, 0xff, 0xff},
	color.RGBA{0xde, 0xbb, 0x9b, 0xff},
	color.RGBA{0xfa, 0xb0, 0xe4, 0xff},
	color.RGBA{0xcf, 0xcf, 0xcf, 0xff},
	color.RGBA{0xff, 0xfe, 0xa3, 0xff},
	color.RGBA{0xb9, 0xf2, 0xf0, 0xff},
}

// String2Color parses "#rrggbb", "#rrggbbaa" or a name of BuiltinColors.
func String2Color(s string) color.Color {
	if strings.HasPrefix(s, "#") && len(s) >= 7 {
		var r, g, b, a uint8
		fmt.Sscanf(s[1:3], "%2x", &r)
		fmt.Sscanf(s[3:5], "%2x", &g)
		fmt.Sscanf(s[5:7], "%2x", &b)
		a = 0xff
		if len(s) >= 9 {
			fmt.Sscanf(s[7:9], "%2x", &a)
		}
		return color.NRGBA{r, g, b, a}
	}
	if col, ok := BuiltinColors[s]; ok {
		return col
	}

	return color.NRGBA{0xaa, 0x66, 0x77, 0x7f}
}
