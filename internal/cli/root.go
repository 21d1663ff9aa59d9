// Package cli provides the command line interface of eda.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/hyp3rd/ewrap"
	"github.com/spf13/cobra"

	"github.com/vdobler/eda"
	"github.com/vdobler/eda/internal/cli/output"
	"github.com/vdobler/eda/internal/config"
)

// Version is set at build time.
var Version = "0.1.0"

type configKey struct{}

type rendererKey struct{}

// NewRootCmd creates the eda command with all subcommands.
func NewRootCmd() *cobra.Command {
	var cfgFile string

	root := &cobra.Command{
		Use:   "eda",
		Short: "Exploratory data analysis of CSV files",
		Long: `eda summarizes, cleans and charts tabular data read from CSV files.

Every command reads the CSV file given as first argument ("-" for standard
input). Further files with the same columns can be added with --append.`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "__complete" {
				return nil
			}
			cfg, err := config.Load(cfgFile, cmd.Root().PersistentFlags())
			if err != nil {
				return err
			}

			level := slog.LevelWarn
			if cfg.Verbose {
				level = slog.LevelDebug
			}
			eda.SetLogger(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})))
			if cfg.File != "" {
				eda.Logger().Debug("using config file", "file", cfg.File)
			}

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			ctx = context.WithValue(ctx, configKey{}, cfg)
			ctx = context.WithValue(ctx, rendererKey{}, output.NewRenderer(cmd.OutOrStdout(), output.Mode(cfg.Output)))
			cmd.SetContext(ctx)
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default: ./"+config.DefaultFile+")")
	flags.StringP("output", "o", "", "output format ("+strings.Join(config.Outputs, "|")+")")
	flags.BoolP("verbose", "v", false, "log debug messages")
	flags.StringSlice("append", nil, "further CSV files appended to the first one")

	_ = root.RegisterFlagCompletionFunc("output", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return config.Outputs, cobra.ShellCompDirectiveNoFileComp
	})

	root.AddCommand(summaryCommands()...)
	root.AddCommand(
		newCategoriesCommand(),
		newCorrCommand(),
		newOutliersCommand(),
		newFillCommand(),
		newDropMissingCommand(),
		newDedupeCommand(),
		newNormalizeCommand(),
		newConvertCommand(),
		newReplaceCommand(),
		newPlotCommand(),
		newVersionCommand(),
	)
	return root
}

// Execute runs the eda command.
func Execute() error {
	root := NewRootCmd()
	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "eda v%s\n", Version)
		},
	}
}

func getConfig(cmd *cobra.Command) *config.Config {
	if c, ok := cmd.Context().Value(configKey{}).(*config.Config); ok {
		return c
	}
	cfg, _ := config.Load("", nil)
	return cfg
}

func getRenderer(cmd *cobra.Command) *output.Renderer {
	if r, ok := cmd.Context().Value(rendererKey{}).(*output.Renderer); ok {
		return r
	}
	return output.NewRenderer(cmd.OutOrStdout(), output.Table)
}

// loadFrame reads the CSV file path and appends the files of --append.
func loadFrame(cmd *cobra.Command, path string) (*eda.DataFrame, error) {
	df, err := readCSV(cmd, path)
	if err != nil {
		return nil, err
	}
	more, _ := cmd.Flags().GetStringSlice("append")
	for _, p := range more {
		next, err := readCSV(cmd, p)
		if err != nil {
			return nil, err
		}
		if df, err = df.Append(next); err != nil {
			return nil, ewrap.Wrapf(err, "appending %s", p)
		}
	}
	eda.Logger().Debug("loaded data", "rows", df.N, "columns", len(df.Names()))
	return df, nil
}

func readCSV(cmd *cobra.Command, path string) (*eda.DataFrame, error) {
	var r io.Reader
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	if path == "-" {
		r, name = cmd.InOrStdin(), "stdin"
	} else {
		f, err := os.Open(path)
		if err != nil {
			return nil, ewrap.Wrapf(err, "opening %s", path)
		}
		defer f.Close()
		r = f
	}
	df, err := eda.ReadCSV(r, name)
	if err != nil {
		return nil, ewrap.Wrapf(err, "reading %s", path)
	}
	return df, nil
}

// writeFrame writes df as CSV to the file out, or to standard output if
// out is empty.
func writeFrame(cmd *cobra.Command, df *eda.DataFrame, out string) (err error) {
	if out == "" {
		return df.WriteCSV(cmd.OutOrStdout())
	}
	f, err := os.Create(out)
	if err != nil {
		return ewrap.Wrapf(err, "creating %s", out)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	if err := df.WriteCSV(f); err != nil {
		return err
	}
	eda.Logger().Info("wrote data", "file", out, "rows", df.N)
	return nil
}
