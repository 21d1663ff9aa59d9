// Package config loads the settings of the eda command.
//
// Values are layered, later layers winning: built-in defaults, the YAML
// config file (eda.yaml or --config), EDA_ environment variables and
// explicitly set command line flags.
package config

import (
	"os"
	"slices"
	"strings"

	"github.com/hyp3rd/ewrap"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"

	"github.com/vdobler/eda"
)

// DefaultFile is the config file looked up in the working directory.
const DefaultFile = "eda.yaml"

// EnvPrefix prefixes the environment variables, e.g. EDA_OUTLIER_STD_FACTOR.
const EnvPrefix = "EDA_"

// Output formats.
var Outputs = []string{"table", "markdown", "csv", "json"}

// Config holds all settings of the eda command.
type Config struct {
	Output  string        `koanf:"output"`
	Verbose bool          `koanf:"verbose"`
	Outlier OutlierConfig `koanf:"outlier"`
	Chart   ChartConfig   `koanf:"chart"`
	Corr    CorrConfig    `koanf:"corr"`

	// File is the config file that was read, if any.
	File string `koanf:"-"`
}

type OutlierConfig struct {
	Method    string  `koanf:"method"`
	StdFactor float64 `koanf:"std_factor"`
	IQRFactor float64 `koanf:"iqr_factor"`
}

// ChartConfig sets chart defaults. Zero sizes keep the size of the chart
// kind.
type ChartConfig struct {
	Width  float64 `koanf:"width"`  // inches
	Height float64 `koanf:"height"` // inches
	Format string  `koanf:"format"`
	Bins   int     `koanf:"bins"`
	TopN   int     `koanf:"top_n"`
}

type CorrConfig struct {
	Method string `koanf:"method"`
}

// Defaults are the built-in settings.
var Defaults = map[string]any{
	"output":             "table",
	"verbose":            false,
	"outlier.method":     "std",
	"outlier.std_factor": 2.7,
	"outlier.iqr_factor": 1.5,
	"chart.width":        0.0,
	"chart.height":       0.0,
	"chart.format":       "png",
	"chart.bins":         30,
	"chart.top_n":        10,
	"corr.method":        "pearson",
}

var sections = []string{"outlier", "chart", "corr"}

// envKey maps EDA_CHART_TOP_N to chart.top_n.
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	for _, section := range sections {
		if strings.HasPrefix(key, section+"_") {
			return section + "." + key[len(section)+1:]
		}
	}
	return key
}

// Load reads the configuration. cfgFile names the config file; if empty
// DefaultFile is used when it exists. Only flags of flags that were set
// explicitly override other layers; their names map to keys by replacing
// dashes with underscores and the first one with a dot for sectioned keys
// (--chart-top-n sets chart.top_n).
func Load(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(Defaults, "."), nil); err != nil {
		return nil, ewrap.Wrap(err, "loading defaults")
	}

	if cfgFile == "" {
		if _, err := os.Stat(DefaultFile); err == nil {
			cfgFile = DefaultFile
		}
	}
	if cfgFile != "" {
		if err := k.Load(file.Provider(cfgFile), yaml.Parser()); err != nil {
			return nil, ewrap.Wrapf(err, "reading config file %s", cfgFile)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, ewrap.Wrap(err, "loading environment")
	}

	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, any) {
			if !f.Changed || f.Name == "config" {
				return "", nil
			}
			return envKey(strings.ReplaceAll(f.Name, "-", "_")), posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, ewrap.Wrap(err, "loading flags")
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, ewrap.Wrap(err, "decoding config")
	}
	cfg.File = cfgFile
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks option values which can be checked without knowing the
// command.
func (c *Config) Validate() error {
	if !slices.Contains(Outputs, c.Output) {
		return ewrap.Wrapf(eda.ErrInvalidOption, "output %q (allowed: %s)",
			c.Output, strings.Join(Outputs, ", "))
	}
	if c.Outlier.StdFactor <= 0 || c.Outlier.IQRFactor <= 0 {
		return ewrap.Wrapf(eda.ErrInvalidOption, "outlier factors must be positive")
	}
	if c.Chart.Width < 0 || c.Chart.Height < 0 || c.Chart.Bins < 0 || c.Chart.TopN < 0 {
		return ewrap.Wrapf(eda.ErrInvalidOption, "chart sizes and counts must not be negative")
	}
	return nil
}
