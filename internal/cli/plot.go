package cli

import (
	"github.com/spf13/cobra"
	"gonum.org/v1/plot/vg"

	"github.com/vdobler/eda"
	"github.com/vdobler/eda/chart"
)

// plotOptions are the flags of all plot subcommands.
type plotOptions struct {
	out           string
	width, height float64
	bins, top     int
	hue           string
	method        string
	cols          []string
}

// chartFunc draws a chart of df from the positional arguments after the
// file name.
type chartFunc func(cmd *cobra.Command, df *eda.DataFrame, args []string, opts *plotOptions) (*chart.Figure, error)

func newPlotCommand() *cobra.Command {
	opts := &plotOptions{}
	cmd := &cobra.Command{
		Use:   "plot",
		Short: "Draw charts into image files",
	}
	pf := cmd.PersistentFlags()
	pf.StringVar(&opts.out, "out", "", "image file, the extension selects the format (default: KIND.FORMAT)")
	pf.Float64Var(&opts.width, "width", 0, "image width in inches (default from config or chart kind)")
	pf.Float64Var(&opts.height, "height", 0, "image height in inches (default from config or chart kind)")

	sub := func(use, short string, nargs int, fn chartFunc) *cobra.Command {
		return &cobra.Command{
			Use:   use,
			Short: short,
			Args:  cobra.ExactArgs(nargs),
			RunE: func(cmd *cobra.Command, args []string) error {
				df, err := loadFrame(cmd, args[0])
				if err != nil {
					return err
				}
				fig, err := fn(cmd, df, args[1:], opts)
				if err != nil {
					return err
				}
				return saveFigure(cmd, fig, cmd.Name(), opts)
			},
		}
	}

	histogram := sub("histogram FILE COLUMN", "Histogram with density estimate", 2,
		func(cmd *cobra.Command, df *eda.DataFrame, args []string, o *plotOptions) (*chart.Figure, error) {
			return chart.Histogram(df, args[0], o.binCount(cmd))
		})
	histogram.Flags().IntVar(&opts.bins, "bins", 0, "number of bins (default from config)")

	distribution := sub("distribution FILE COLUMN", "Density histogram with density estimate", 2,
		func(cmd *cobra.Command, df *eda.DataFrame, args []string, o *plotOptions) (*chart.Figure, error) {
			return chart.Distribution(df, args[0], o.binCount(cmd))
		})
	distribution.Flags().IntVar(&opts.bins, "bins", 0, "number of bins (default from config)")

	boxplot := sub("boxplot FILE COLUMN", "Box and whisker plot", 2,
		func(_ *cobra.Command, df *eda.DataFrame, args []string, o *plotOptions) (*chart.Figure, error) {
			return chart.BoxplotBy(df, args[0], o.hue)
		})
	boxplot.Flags().StringVar(&opts.hue, "by", "", "one box per level of this column")

	bar := sub("bar FILE COLUMN", "Bar chart of the most frequent values", 2,
		func(cmd *cobra.Command, df *eda.DataFrame, args []string, o *plotOptions) (*chart.Figure, error) {
			return chart.Bar(df, args[0], o.topN(cmd))
		})
	bar.Flags().IntVar(&opts.top, "top", 0, "number of values (default from config)")

	pie := sub("pie FILE COLUMN", "Pie chart of the most frequent values", 2,
		func(_ *cobra.Command, df *eda.DataFrame, args []string, o *plotOptions) (*chart.Figure, error) {
			return chart.Pie(df, args[0], o.top)
		})
	pie.Flags().IntVar(&opts.top, "top", 0, "number of values (default 5)")

	heatmap := sub("heatmap FILE", "Correlation matrix heatmap", 1,
		func(cmd *cobra.Command, df *eda.DataFrame, _ []string, o *plotOptions) (*chart.Figure, error) {
			m, err := corrMethod(cmd, o.method)
			if err != nil {
				return nil, err
			}
			return chart.CorrelationHeatmap(df, m)
		})
	heatmap.Flags().StringVar(&opts.method, "method", "", "pearson, spearman or kendall (default from config)")

	scatter := sub("scatter FILE X Y", "Scatter plot of two numeric columns", 3,
		func(_ *cobra.Command, df *eda.DataFrame, args []string, o *plotOptions) (*chart.Figure, error) {
			return chart.Scatter(df, args[0], args[1], o.hue)
		})
	scatter.Flags().StringVar(&opts.hue, "hue", "", "color points by this column")

	line := sub("line FILE X Y", "Line chart of Y over X", 3,
		func(_ *cobra.Command, df *eda.DataFrame, args []string, o *plotOptions) (*chart.Figure, error) {
			return chart.Line(df, args[0], args[1], o.hue)
		})
	line.Flags().StringVar(&opts.hue, "group", "", "one line per level of this column")

	pair := sub("pairplot FILE", "Grid of pairwise scatter plots and densities", 1,
		func(_ *cobra.Command, df *eda.DataFrame, _ []string, o *plotOptions) (*chart.Figure, error) {
			return chart.Pairplot(df, o.cols, o.hue)
		})
	pair.Flags().StringSliceVar(&opts.cols, "cols", nil, "numeric columns (default: all)")
	pair.Flags().StringVar(&opts.hue, "hue", "", "color by this column")

	cmd.AddCommand(histogram, distribution, boxplot, bar, pie, heatmap, scatter, line, pair)
	return cmd
}

func (o *plotOptions) binCount(cmd *cobra.Command) int {
	if o.bins > 0 {
		return o.bins
	}
	return getConfig(cmd).Chart.Bins
}

func (o *plotOptions) topN(cmd *cobra.Command) int {
	if o.top > 0 {
		return o.top
	}
	return getConfig(cmd).Chart.TopN
}

// saveFigure applies the size options and writes fig to the output file.
func saveFigure(cmd *cobra.Command, fig *chart.Figure, kind string, o *plotOptions) error {
	cfg := getConfig(cmd)
	width, height := o.width, o.height
	if width == 0 {
		width = cfg.Chart.Width
	}
	if height == 0 {
		height = cfg.Chart.Height
	}
	if width > 0 {
		fig.Width = vg.Length(width) * vg.Inch
	}
	if height > 0 {
		fig.Height = vg.Length(height) * vg.Inch
	}

	out := o.out
	if out == "" {
		out = kind + "." + cfg.Chart.Format
	}
	if err := fig.Save(out); err != nil {
		return err
	}
	getRenderer(cmd).Message("wrote %s", out)
	return nil
}
