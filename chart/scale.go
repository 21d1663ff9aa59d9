package chart

import (
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotutil"

	"github.com/vdobler/eda"
)

// Scale maps the values of a field to colors. Discrete fields (Int and
// String) get one color per level, continuous fields a diverging color
// ramp over their range.
type Scale struct {
	Discrete bool

	DomainMin    float64
	DomainMax    float64
	DomainLevels eda.FloatSet

	// Set up by Prepare.
	Breaks []float64
	Levels []string

	Color func(x float64) color.Color // NaN maps to gray
	Pos   func(x float64) float64     // position in [0,1]

	field eda.Field
}

// NewScale sets up an untrained scale suitable for field.
func NewScale(field eda.Field) *Scale {
	return &Scale{
		Discrete:     field.Discrete(),
		DomainMin:    math.Inf(+1),
		DomainMax:    math.Inf(-1),
		DomainLevels: eda.NewFloatSet(),
		field:        field,
	}
}

// Train updates the domain of s with the data found in f.
func (s *Scale) Train(f eda.Field) {
	if s.Discrete {
		s.DomainLevels.Join(f.Levels())
		return
	}
	min, max, mini, maxi := f.MinMax()
	if mini != -1 && min < s.DomainMin {
		s.DomainMin = min
	}
	if maxi != -1 && max > s.DomainMax {
		s.DomainMax = max
	}
}

// Prepare initialises breaks, levels and the mapping functions after
// training.
func (s *Scale) Prepare() {
	if s.Discrete {
		s.prepareDiscrete()
	} else {
		s.prepareContinuous()
	}
}

func (s *Scale) prepareDiscrete() {
	s.Breaks = s.DomainLevels.Elements()
	s.Levels = make([]string, len(s.Breaks))
	index := make(map[float64]int, len(s.Breaks))
	for i, x := range s.Breaks {
		s.Levels[i] = s.field.Format(x)
		index[x] = i
	}
	n := math.Max(1, float64(len(s.Breaks)-1))
	s.Pos = func(x float64) float64 {
		i, ok := index[x]
		if !ok {
			return math.NaN()
		}
		return float64(i) / n
	}
	s.Color = func(x float64) color.Color {
		i, ok := index[x]
		if !ok {
			return BuiltinColors["gray"]
		}
		return plotutil.Color(i)
	}
}

func (s *Scale) prepareContinuous() {
	if s.DomainMin > s.DomainMax {
		s.DomainMin, s.DomainMax = 0, 1
	}
	fullRange := s.DomainMax - s.DomainMin
	expand := fullRange * 0.05
	if fullRange == 0 {
		expand = 0.5
	}
	min, max := s.DomainMin-expand, s.DomainMax+expand
	fullRange = max - min

	nb := 4
	s.Breaks = make([]float64, nb+1)
	s.Levels = make([]string, nb+1)
	for i := range s.Breaks {
		s.Breaks[i] = s.DomainMin + float64(i)*(s.DomainMax-s.DomainMin)/float64(nb)
		s.Levels[i] = s.field.Format(s.Breaks[i])
	}

	ramp := moreland.SmoothBlueRed()
	ramp.SetMin(min)
	ramp.SetMax(max)
	s.Pos = func(x float64) float64 {
		return (x - min) / fullRange
	}
	s.Color = func(x float64) color.Color {
		c, err := ramp.At(x)
		if err != nil {
			return BuiltinColors["gray"]
		}
		return c
	}
}

// categoryTicks labels integral axis positions 0..len(labels)-1.
type categoryTicks []string

func (t categoryTicks) Ticks(min, max float64) []plot.Tick {
	var ticks []plot.Tick
	for i, label := range t {
		if x := float64(i); x >= min && x <= max {
			ticks = append(ticks, plot.Tick{Value: x, Label: label})
		}
	}
	return ticks
}
