package cli

import (
	"github.com/spf13/cobra"

	"github.com/vdobler/eda"
	"github.com/vdobler/eda/internal/config"
	"github.com/vdobler/eda/stat"
)

var summaryHelp = map[string]string{
	"describe":           "Count, mean, median, standard deviation, min and max of numeric columns",
	"nulls":              "Number and percentage of missing values per column",
	"types":              "Type of every column",
	"unique":             "Number of distinct values per column",
	"skew":               "Skewness of numeric columns, most skewed first",
	"analyze-categories": "Number of categories of string columns",
	"constants":          "Columns holding a single value",
}

// summaryCommands makes one command per parameterless statistic.
func summaryCommands() []*cobra.Command {
	var cmds []*cobra.Command
	for _, name := range stat.SummaryNames() {
		cmds = append(cmds, &cobra.Command{
			Use:   name + " FILE",
			Short: summaryHelp[name],
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				s, err := stat.Lookup(name)
				if err != nil {
					return err
				}
				return applyStat(cmd, args[0], s)
			},
		})
	}
	return cmds
}

func applyStat(cmd *cobra.Command, path string, s stat.Stat) error {
	df, err := loadFrame(cmd, path)
	if err != nil {
		return err
	}
	result, err := s.Apply(df)
	if err != nil {
		return err
	}
	return getRenderer(cmd).Render(result)
}

func newCategoriesCommand() *cobra.Command {
	var top int
	cmd := &cobra.Command{
		Use:   "categories FILE COLUMN",
		Short: "Most frequent values of a column",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			df, err := loadFrame(cmd, args[0])
			if err != nil {
				return err
			}
			counts, err := stat.CountCategories(df, args[1], top)
			if err != nil {
				return err
			}
			return getRenderer(cmd).Render(counts)
		},
	}
	cmd.Flags().IntVar(&top, "top", 0, "show only the top N values (0: all)")
	return cmd
}

func newCorrCommand() *cobra.Command {
	var method string
	cmd := &cobra.Command{
		Use:   "corr FILE",
		Short: "Correlation matrix of numeric columns",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := corrMethod(cmd, method)
			if err != nil {
				return err
			}
			return applyStat(cmd, args[0], stat.StatCorrelation{Method: m})
		},
	}
	cmd.Flags().StringVar(&method, "method", "", "pearson, spearman or kendall (default from config)")
	return cmd
}

func corrMethod(cmd *cobra.Command, flag string) (stat.CorrMethod, error) {
	if flag == "" {
		flag = getConfig(cmd).Corr.Method
	}
	return stat.ParseCorrMethod(flag)
}

// outlierOptions are the flags shared by the outliers subcommands.
type outlierOptions struct {
	method string
	factor float64
}

func (o *outlierOptions) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&o.method, "method", "", "std or iqr (default from config)")
	cmd.Flags().Float64Var(&o.factor, "factor", 0, "multiple of std or IQR (default from config)")
}

// resolve fills unset options from cfg.
func (o *outlierOptions) resolve(cfg *config.Config) (stat.Method, float64, error) {
	name := o.method
	if name == "" {
		name = cfg.Outlier.Method
	}
	m, err := stat.ParseMethod(name)
	if err != nil {
		return m, 0, err
	}
	factor := o.factor
	if factor == 0 {
		factor = cfg.Outlier.StdFactor
		if m == stat.InterquartileRange {
			factor = cfg.Outlier.IQRFactor
		}
	}
	return m, factor, nil
}

func newOutliersCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "outliers",
		Short: "Detect outliers with standard deviation or interquartile range bounds",
	}

	var count outlierOptions
	countCmd := &cobra.Command{
		Use:   "count FILE",
		Short: "Outlier bounds and counts of every numeric column",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, factor, err := count.resolve(getConfig(cmd))
			if err != nil {
				return err
			}
			return applyStat(cmd, args[0], stat.StatOutliers{Method: m, Factor: factor})
		},
	}
	count.register(countCmd)

	var list outlierOptions
	listCmd := &cobra.Command{
		Use:   "list FILE COLUMN",
		Short: "Rows whose value in COLUMN is an outlier",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			rows, err := outlierRows(cmd, args, &list, stat.IdentifyOutliers)
			if err != nil {
				return err
			}
			return getRenderer(cmd).Render(rows)
		},
	}
	list.register(listCmd)

	var exclude outlierOptions
	var out string
	excludeCmd := &cobra.Command{
		Use:   "exclude FILE COLUMN",
		Short: "Write the data with outliers of COLUMN set to missing as CSV",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cleaned, err := outlierRows(cmd, args, &exclude, stat.ExcludeOutliers)
			if err != nil {
				return err
			}
			return writeFrame(cmd, cleaned, out)
		},
	}
	exclude.register(excludeCmd)
	excludeCmd.Flags().StringVar(&out, "out", "", "output CSV file (default: standard output)")

	cmd.AddCommand(countCmd, listCmd, excludeCmd)
	return cmd
}

type outlierFunc func(*eda.DataFrame, string, stat.Method, float64) (*eda.DataFrame, error)

func outlierRows(cmd *cobra.Command, args []string, opts *outlierOptions, fn outlierFunc) (*eda.DataFrame, error) {
	m, factor, err := opts.resolve(getConfig(cmd))
	if err != nil {
		return nil, err
	}
	df, err := loadFrame(cmd, args[0])
	if err != nil {
		return nil, err
	}
	return fn(df, args[1], m, factor)
}
