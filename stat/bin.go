package stat

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat/distuv"
)

// BinnedData is one bin of a histogram.
type BinnedData struct {
	Lo, Hi   float64 // bin edges; the last bin includes Hi
	X        float64 // bin center
	Count    int64
	Density  float64 // Count / (n * width)
	NCount   float64 // Count / max Count
	NDensity float64 // Density / max Density
}

// BinOptions control Bin. The zero value gives 30 bins.
type BinOptions struct {
	// Bins is the number of equally wide bins between min and max.
	Bins int

	// BinWidth overrides Bins if positive.
	BinWidth float64

	// Drop removes empty bins.
	Drop bool
}

// Bin groups the finite values of data into equally wide bins spanning
// their range and counts the values per bin. Missing and infinite values
// are skipped. A nil options will use the default BinOptions.
func Bin(data []float64, options *BinOptions) []BinnedData {
	var opts BinOptions
	if options != nil {
		opts = *options
	}
	vals := finite(data)
	if len(vals) == 0 {
		return nil
	}

	min, max := floats.Min(vals), floats.Max(vals)
	if min == max {
		min -= 0.5
		max += 0.5
	}

	numBins := opts.Bins
	if numBins <= 0 {
		numBins = 30
	}
	binWidth := (max - min) / float64(numBins)
	if opts.BinWidth > 0 {
		binWidth = opts.BinWidth
		numBins = int(math.Ceil((max - min) / binWidth))
		if numBins < 1 {
			numBins = 1
		}
	}

	counts := make([]int64, numBins)
	maxCount := int64(0)
	for _, x := range vals {
		bin := int((x - min) / binWidth)
		switch {
		case bin < 0:
			bin = 0
		case bin >= numBins:
			bin = numBins - 1
		}
		counts[bin]++
		if counts[bin] > maxCount {
			maxCount = counts[bin]
		}
	}

	n := float64(len(vals))
	maxDensity := float64(maxCount) / (n * binWidth)
	result := make([]BinnedData, 0, numBins)
	for bin, count := range counts {
		if count == 0 && opts.Drop {
			continue
		}
		lo := min + float64(bin)*binWidth
		density := float64(count) / (n * binWidth)
		result = append(result, BinnedData{
			Lo:       lo,
			Hi:       lo + binWidth,
			X:        lo + binWidth/2,
			Count:    count,
			Density:  density,
			NCount:   float64(count) / float64(maxCount),
			NDensity: density / maxDensity,
		})
	}
	return result
}

// Bandwidth is Scott's rule of thumb std * n^(-1/5) for the non-missing
// values of data.
func Bandwidth(data []float64) float64 {
	vals := present(data)
	return StdDev(vals) * math.Pow(float64(len(vals)), -0.2)
}

// KDE estimates the density of the non-missing values of data with a
// Gaussian kernel of Scott's bandwidth. The density is evaluated at n
// equally spaced points from min - 3bw to max + 3bw. It returns nil if the
// bandwidth is not positive, e.g. for constant data.
func KDE(data []float64, n int) (xs, ys []float64) {
	vals := present(data)
	bw := Bandwidth(vals)
	if n < 2 || math.IsNaN(bw) || bw <= 0 {
		return nil, nil
	}

	kernels := make([]distuv.Normal, len(vals))
	for i, v := range vals {
		kernels[i] = distuv.Normal{Mu: v, Sigma: bw}
	}

	lo, hi := floats.Min(vals)-3*bw, floats.Max(vals)+3*bw
	xs = make([]float64, n)
	floats.Span(xs, lo, hi)
	ys = make([]float64, n)
	for i, x := range xs {
		var sum float64
		for _, k := range kernels {
			sum += k.Prob(x)
		}
		ys[i] = sum / float64(len(vals))
	}
	return xs, ys
}

// BoxSummary are the components of a box and whisker plot.
type BoxSummary struct {
	Min, Max  float64
	Q1, Q3    float64
	Median    float64
	Low, High float64 // whisker ends: extreme values inside Bounds
	Bounds    Bounds  // Tukey fences
	Outliers  []float64
	N         int
}

// ComputeBox computes the box plot of the non-missing values of data. The
// whiskers end at the most extreme values inside the interquartile range
// fences with factor coef (1.5 if coef <= 0). Quartiles and fences are the
// ones of the InterquartileRange outlier method.
func ComputeBox(data []float64, coef float64) BoxSummary {
	if coef <= 0 {
		coef = 1.5
	}
	s := sorted(data)
	b := BoxSummary{N: len(s)}
	if len(s) == 0 {
		nan := math.NaN()
		b.Min, b.Max, b.Q1, b.Q3, b.Median, b.Low, b.High = nan, nan, nan, nan, nan, nan, nan
		b.Bounds = Bounds{Lower: nan, Upper: nan}
		return b
	}

	b.Min, b.Max = s[0], s[len(s)-1]
	b.Q1, b.Median, b.Q3 = quantileSorted(s, 0.25), quantileSorted(s, 0.5), quantileSorted(s, 0.75)
	iqr := b.Q3 - b.Q1
	b.Bounds = Bounds{Lower: b.Q1 - coef*iqr, Upper: b.Q3 + coef*iqr}

	b.Low, b.High = b.Max, b.Min
	for _, y := range s {
		if b.Bounds.IsOutlier(y) {
			b.Outliers = append(b.Outliers, y)
			continue
		}
		if y < b.Low {
			b.Low = y
		}
		if y > b.High {
			b.High = y
		}
	}
	return b
}
