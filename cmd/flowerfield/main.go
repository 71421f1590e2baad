package main

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/voidshard/flowerfield"
	"github.com/voidshard/flowerfield/internal/config"
	"github.com/voidshard/flowerfield/internal/logging"
	"github.com/voidshard/flowerfield/internal/poisson"
)

func main() {
	if err := rootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCommand() *cobra.Command {
	var configFile string

	root := &cobra.Command{
		Use:           "flowerfield",
		Short:         "flowerfield",
		Long:          "flowerfield – paints a randomly scattered field of flowers",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&configFile, "config", "c", "", "path to config file (json, yaml or toml)")
	config.DefinePersistentFlags(root)

	render := &cobra.Command{
		Use:   "render",
		Short: "Render a field of flowers to png or svg",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, configFile, renderField)
		},
	}
	config.DefineRenderFlags(render)

	sample := &cobra.Command{
		Use:   "sample",
		Short: "Print Poisson-disk sampled points, one x,y pair per line",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, configFile, samplePoints)
		},
	}
	config.DefineSampleFlags(sample)

	root.AddCommand(render, sample)
	return root
}

// run loads config, sets up logging & calls fn, logging any error it returns
func run(cmd *cobra.Command, configFile string, fn func(config.Config) error) error {
	conf, err := config.Load(cmd, configFile)
	if err != nil {
		log.Error().Err(err).Msg("loading config")
		return err
	}

	closer, err := logging.Setup(conf.Log.Level, conf.Log.File)
	if err != nil {
		log.Error().Err(err).Msg("setting up logging")
		return err
	}
	defer closer()

	err = fn(conf)
	if err != nil {
		log.Error().Err(err).Str("command", cmd.Name()).Msg("failed")
	}
	return err
}

func renderField(conf config.Config) error {
	format, err := conf.OutputFormat()
	if err != nil {
		return err
	}

	start := time.Now()
	field, err := flowerfield.New(conf.FieldConfig())
	if err != nil {
		return err
	}
	log.Debug().
		Int64("seed", field.Seed).
		Float64("min_distance", field.MinDistance).
		Int("flowers", field.Stats.Flowers).
		Int("petals", field.Stats.Petals).
		Dur("elapsed", time.Since(start)).
		Msg("field built")

	switch format {
	case "svg":
		err = field.SaveSVG(conf.Output)
	default:
		err = field.SavePNG(conf.Output)
	}
	if err != nil {
		return err
	}

	log.Info().
		Int64("seed", field.Seed).
		Int("width", field.Width).
		Int("height", field.Height).
		Int("flowers", field.Stats.Flowers).
		Str("output", conf.Output).
		Msg("wrote flowerfield")
	return nil
}

func samplePoints(conf config.Config) error {
	seed := conf.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	pts, err := poisson.Sample(
		float64(conf.Width), float64(conf.Height),
		conf.Sample.MinDistance,
		conf.Field.MaxAttempts,
		conf.Sample.Margin,
		flowerfield.NewRandomSource(seed),
	)
	if err != nil {
		return err
	}

	for _, p := range pts {
		fmt.Printf("%.3f,%.3f\n", p.X, p.Y)
	}

	log.Info().Int64("seed", seed).Int("points", len(pts)).Float64("min_distance", conf.Sample.MinDistance).Msg("sampled")

	if conf.Sample.Debug != "" {
		err = poisson.DebugRenderTo(conf.Sample.Debug, float64(conf.Width), float64(conf.Height), conf.Sample.MinDistance, pts)
		if err != nil {
			return err
		}
		log.Info().Str("output", conf.Sample.Debug).Msg("wrote debug render")
	}
	return nil
}
