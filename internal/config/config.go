// Package config contains the flowerfield CLI Config and the code to load it.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/voidshard/flowerfield"
)

// EnvPrefix is prepended to every environment variable we read, eg.
// FLOWERFIELD_WIDTH or FLOWERFIELD_FIELD_MAX_FLOWER_SIZE.
const EnvPrefix = "FLOWERFIELD"

type Config struct {
	// Canvas size in pixels.
	Width  int `mapstructure:"width"`
	Height int `mapstructure:"height"`
	// Seed for the random source, 0 picks one from the clock.
	Seed int64 `mapstructure:"seed"`

	// Output path. The extension chooses the format unless Format is set.
	Output string `mapstructure:"output"`
	// Format is one of "png" or "svg".
	Format string `mapstructure:"format"`

	// Field tweaks flower sizing, spacing & colouring.
	Field Field `mapstructure:"field"`
	// Sample configures the bare point sampler (sample command).
	Sample Sample `mapstructure:"sample"`
	// Log is a configuration for logging.
	Log Log `mapstructure:"log"`
}

// Field mirrors flowerfield.FieldConfig, zero values mean "use the default".
type Field struct {
	SafeZone      float64 `mapstructure:"safe_zone"`
	MinFlowerSize int     `mapstructure:"min_flower_size"`
	MaxFlowerSize int     `mapstructure:"max_flower_size"`
	SpacingMin    float64 `mapstructure:"spacing_min"`
	SpacingMax    float64 `mapstructure:"spacing_max"`
	MaxAttempts   int     `mapstructure:"max_attempts"`
	ColourGroup   int     `mapstructure:"colour_group"`
	PetalLayers   int     `mapstructure:"petal_layers"`
}

type Sample struct {
	MinDistance float64 `mapstructure:"min_distance"`
	Margin      float64 `mapstructure:"margin"`
	// Debug is a path to write a raster of the sampled points to.
	Debug string `mapstructure:"debug"`
}

type Log struct {
	// Level is one of trace, debug, info, warn, error, none.
	Level string `mapstructure:"level"`
	// File to log to instead of stdout.
	File string `mapstructure:"file"`
}

var defaults = map[string]any{
	"width":                 1920,
	"height":                1080,
	"seed":                  0,
	"output":                "flowerfield.png",
	"format":                "",
	"field.safe_zone":       150.0,
	"field.min_flower_size": 90,
	"field.max_flower_size": 200,
	"field.spacing_min":     2.3,
	"field.spacing_max":     3.0,
	"field.max_attempts":    30,
	"field.colour_group":    3,
	"field.petal_layers":    3,
	"sample.min_distance":   100.0,
	"sample.margin":         0.0,
	"sample.debug":          "",
	"log.level":             "info",
	"log.file":              "",
}

// DefinePersistentFlags adds flags shared by every command.
func DefinePersistentFlags(rootCmd *cobra.Command) {
	rootCmd.PersistentFlags().IntP("width", "", 1920, "canvas width in pixels")
	rootCmd.PersistentFlags().IntP("height", "", 1080, "canvas height in pixels")
	rootCmd.PersistentFlags().Int64P("seed", "s", 0, "random seed, 0 picks one from the clock")
	rootCmd.PersistentFlags().StringP("log.level", "", "info", "set the log level: trace, debug, info, warn, error or none")
	rootCmd.PersistentFlags().StringP("log.file", "", "", "optional log file - if not set logs go to STDOUT")
	rootCmd.PersistentFlags().IntP("field.max_attempts", "", 30, "candidates tried around a flower before it is retired")
}

// DefineRenderFlags adds flags for the render command.
func DefineRenderFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("output", "o", "flowerfield.png", "file to write")
	cmd.Flags().StringP("format", "f", "", "png or svg, guessed from the output extension if empty")
	cmd.Flags().Float64P("field.safe_zone", "", 150, "inset of the region the first flower is placed in")
	cmd.Flags().IntP("field.min_flower_size", "", 90, "smallest flower diameter")
	cmd.Flags().IntP("field.max_flower_size", "", 200, "largest flower diameter (exclusive)")
	cmd.Flags().Float64P("field.spacing_min", "", 2.3, "min flower spacing as a multiple of max flower size")
	cmd.Flags().Float64P("field.spacing_max", "", 3.0, "max flower spacing as a multiple of max flower size")
	cmd.Flags().IntP("field.colour_group", "", 3, "consecutive flowers sharing a colour pair")
	cmd.Flags().IntP("field.petal_layers", "", 3, "rings of petals per flower")
}

// DefineSampleFlags adds flags for the sample command.
func DefineSampleFlags(cmd *cobra.Command) {
	cmd.Flags().Float64P("sample.min_distance", "d", 100, "minimum distance between points")
	cmd.Flags().Float64P("sample.margin", "", 0, "inset of the region the first point is placed in")
	cmd.Flags().StringP("sample.debug", "", "", "write a png of the points to this path")
}

// Load builds a Config from (lowest to highest priority) defaults, the
// config file, FLOWERFIELD_* env vars & flags set on cmd.
func Load(cmd *cobra.Command, configFile string) (Config, error) {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if cmd != nil {
		for key := range defaults {
			flag := cmd.Flags().Lookup(key)
			if flag == nil {
				flag = cmd.InheritedFlags().Lookup(key)
			}
			if flag == nil {
				continue
			}
			_ = v.BindPFlag(key, flag)
		}
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
		err := v.ReadInConfig()
		if err != nil {
			var pathErr *os.PathError
			if !errors.As(err, &pathErr) {
				return Config{}, fmt.Errorf("error reading config file %s: %w", configFile, err)
			}
			return Config{}, fmt.Errorf("config file %s not found: %w", configFile, err)
		}
	}

	conf := Config{}
	err := v.Unmarshal(&conf)
	if err != nil {
		return Config{}, fmt.Errorf("error unmarshaling config: %w", err)
	}
	return conf, nil
}

// FieldConfig converts to the library config.
func (c Config) FieldConfig() *flowerfield.FieldConfig {
	cfg := flowerfield.DefaultConfig(c.Width, c.Height)
	cfg.Seed = c.Seed
	cfg.SafeZone = c.Field.SafeZone
	cfg.MinFlowerSize = c.Field.MinFlowerSize
	cfg.MaxFlowerSize = c.Field.MaxFlowerSize
	cfg.SpacingMin = c.Field.SpacingMin
	cfg.SpacingMax = c.Field.SpacingMax
	cfg.MaxAttempts = c.Field.MaxAttempts
	cfg.ColourGroup = c.Field.ColourGroup
	cfg.PetalLayers = c.Field.PetalLayers
	return cfg
}

// OutputFormat returns Format, or failing that the output file extension.
func (c Config) OutputFormat() (string, error) {
	format := strings.ToLower(c.Format)
	if format == "" {
		idx := strings.LastIndex(c.Output, ".")
		if idx >= 0 {
			format = strings.ToLower(c.Output[idx+1:])
		}
	}
	switch format {
	case "png", "svg":
		return format, nil
	}
	return "", fmt.Errorf("unknown output format %q for %s", format, c.Output)
}
