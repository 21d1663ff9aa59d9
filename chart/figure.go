package chart

import (
	"bufio"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/hyp3rd/ewrap"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/vdobler/eda"
)

// Formats lists the output formats understood by WriteTo and Save.
var Formats = []string{"png", "svg", "pdf", "eps", "jpg", "jpeg", "tif", "tiff"}

// Figure is a grid of plots rendered together onto one canvas.
type Figure struct {
	Width, Height vg.Length
	Plots         [][]*plot.Plot
}

// NewFigure returns a figure holding the single plot p.
func NewFigure(p *plot.Plot, width, height vg.Length) *Figure {
	return &Figure{Width: width, Height: height, Plots: [][]*plot.Plot{{p}}}
}

// Plot returns the top left plot of f.
func (f *Figure) Plot() *plot.Plot {
	return f.Plots[0][0]
}

// WriteTo renders f in the given format (see Formats) to w.
func (f *Figure) WriteTo(w io.Writer, format string) (int64, error) {
	format = strings.ToLower(strings.TrimPrefix(format, "."))
	c, err := draw.NewFormattedCanvas(f.Width, f.Height, format)
	if err != nil {
		return 0, ewrap.Wrapf(eda.ErrInvalidOption, "image format %q (allowed: %s)",
			format, strings.Join(Formats, ", "))
	}
	dc := draw.New(c)

	if len(f.Plots) == 1 && len(f.Plots[0]) == 1 {
		f.Plot().Draw(dc)
	} else {
		tiles := draw.Tiles{
			Rows: len(f.Plots),
			Cols: len(f.Plots[0]),
			PadX: vg.Millimeter,
			PadY: vg.Millimeter,
		}
		canvases := plot.Align(f.Plots, tiles, dc)
		for i, row := range f.Plots {
			for j, p := range row {
				if p != nil {
					p.Draw(canvases[i][j])
				}
			}
		}
	}
	return c.WriteTo(w)
}

// Save renders f to the file path. The format is taken from the file
// extension.
func (f *Figure) Save(path string) (err error) {
	format := filepath.Ext(path)
	if format == "" {
		return ewrap.Wrapf(eda.ErrInvalidOption, "image file %q has no extension", path)
	}
	file, err := os.Create(path)
	if err != nil {
		return ewrap.Wrapf(err, "creating %s", path)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	buf := bufio.NewWriter(file)
	if _, err = f.WriteTo(buf, format); err != nil {
		return err
	}
	if err = buf.Flush(); err != nil {
		return err
	}
	eda.Logger().Debug("wrote chart", "file", path)
	return nil
}
