package cli

import (
	"math"
	"strconv"

	"github.com/hyp3rd/ewrap"
	"github.com/spf13/cobra"

	"github.com/vdobler/eda"
	"github.com/vdobler/eda/prep"
)

// transform builds a command that loads a frame, applies fn and writes
// the result as CSV.
func transform(use, short string, args cobra.PositionalArgs, fn func(*eda.DataFrame, []string) (*eda.DataFrame, error)) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  args,
		RunE: func(cmd *cobra.Command, args []string) error {
			df, err := loadFrame(cmd, args[0])
			if err != nil {
				return err
			}
			result, err := fn(df, args[1:])
			if err != nil {
				return err
			}
			return writeFrame(cmd, result, out)
		},
	}
	cmd.Flags().StringVar(&out, "out", "", "output CSV file (default: standard output)")
	return cmd
}

func newFillCommand() *cobra.Command {
	var method, value string
	cmd := transform("fill FILE", "Fill missing values of numeric columns", cobra.ExactArgs(1),
		func(df *eda.DataFrame, _ []string) (*eda.DataFrame, error) {
			m, err := prep.ParseFillMethod(method)
			if err != nil {
				return nil, err
			}
			v := math.NaN()
			if value != "" {
				if v, err = strconv.ParseFloat(value, 64); err != nil {
					return nil, ewrap.Wrapf(eda.ErrInvalidOption, "fill value %q is not a number", value)
				}
			}
			return prep.FillMissing(df, m, v)
		})
	cmd.Flags().StringVar(&method, "method", "mean", "one of mean, median, mode, zero, value")
	cmd.Flags().StringVar(&value, "value", "", "fill value for method value")
	return cmd
}

func newDropMissingCommand() *cobra.Command {
	var cols []string
	cmd := transform("dropna FILE", "Drop rows with missing values", cobra.ExactArgs(1),
		func(df *eda.DataFrame, _ []string) (*eda.DataFrame, error) {
			return prep.DropMissing(df, cols...)
		})
	cmd.Flags().StringSliceVar(&cols, "cols", nil, "only consider these columns")
	return cmd
}

func newDedupeCommand() *cobra.Command {
	var keep string
	var cols []string
	cmd := transform("dedupe FILE", "Remove duplicate rows", cobra.ExactArgs(1),
		func(df *eda.DataFrame, _ []string) (*eda.DataFrame, error) {
			k, err := prep.ParseKeep(keep)
			if err != nil {
				return nil, err
			}
			return prep.Dedupe(df, k, cols...)
		})
	cmd.Flags().StringVar(&keep, "keep", "first", "first, last or none")
	cmd.Flags().StringSliceVar(&cols, "cols", nil, "compare only these columns")
	return cmd
}

func newNormalizeCommand() *cobra.Command {
	var method string
	cmd := transform("normalize FILE COLUMN", "Rescale a numeric column", cobra.ExactArgs(2),
		func(df *eda.DataFrame, args []string) (*eda.DataFrame, error) {
			m, err := prep.ParseNormMethod(method)
			if err != nil {
				return nil, err
			}
			return prep.Normalize(df, args[0], m)
		})
	cmd.Flags().StringVar(&method, "method", "min_max", "min_max or z_score")
	return cmd
}

func newConvertCommand() *cobra.Command {
	return transform("convert FILE COLUMN KIND", "Convert a column to int, float, string, category or datetime", cobra.ExactArgs(3),
		func(df *eda.DataFrame, args []string) (*eda.DataFrame, error) {
			kind, err := prep.ParseKind(args[1])
			if err != nil {
				return nil, err
			}
			return prep.Convert(df, args[0], kind)
		})
}

func newReplaceCommand() *cobra.Command {
	var old []string
	var with string
	cmd := transform("replace FILE COLUMN", "Replace values of a column", cobra.ExactArgs(2),
		func(df *eda.DataFrame, args []string) (*eda.DataFrame, error) {
			f, err := df.Column(args[0])
			if err != nil {
				return nil, err
			}
			values := make([]any, len(old))
			for i, s := range old {
				if values[i], err = parseToken(f, s); err != nil {
					return nil, err
				}
			}
			to, err := parseToken(f, with)
			if err != nil {
				return nil, err
			}
			return prep.Replace(df, args[0], values, to)
		})
	cmd.Flags().StringSliceVar(&old, "old", nil, "values to replace (NA for missing)")
	cmd.Flags().StringVar(&with, "new", "", "replacement value (empty or NA for missing)")
	_ = cmd.MarkFlagRequired("old")
	return cmd
}

// parseToken turns a command line value into a Go value fitting field f.
// Missing tokens yield nil.
func parseToken(f eda.Field, s string) (any, error) {
	if eda.IsMissingToken(s) {
		return nil, nil
	}
	switch f.Type {
	case eda.String:
		return s, nil
	case eda.Time:
		t, ok := eda.ParseTime(s)
		if !ok {
			return nil, ewrap.Wrapf(eda.ErrUnsupportedType, "%q is not a time", s)
		}
		return t, nil
	}
	x, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, ewrap.Wrapf(eda.ErrNotNumeric, "%q", s)
	}
	return x, nil
}
