package main

import (
	"fmt"
	"os"
	"time"

	"github.com/nvr-ai/squarepad/config"
	"github.com/nvr-ai/squarepad/dataset"
	"github.com/nvr-ai/squarepad/images"
	"github.com/nvr-ai/squarepad/logging"
	"github.com/nvr-ai/squarepad/preprocess"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Version is overridden at build time with -ldflags "-X main.Version=...".
var Version = "dev"

// flagKeys maps command line flags to configuration keys.
var flagKeys = map[string]string{
	"input":         "input",
	"dataset":       "dataset",
	"size":          "size",
	"background":    "background",
	"filter":        "filter",
	"ext":           "extensions",
	"fail-fast":     "fail_fast",
	"progress":      "progress",
	"jpeg-quality":  "jpeg_quality",
	"webp-quality":  "webp_quality",
	"webp-lossless": "webp_lossless",
	"log-level":     "log_level",
	"log-format":    "log_format",
}

func newRootCmd() *cobra.Command {
	v := viper.New()
	var cfgFile string

	cmd := &cobra.Command{
		Use:           "squarepad",
		Short:         "Resize and pad a folder of images into a square dataset",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			workDir, err := os.Getwd()
			if err != nil {
				return errors.Wrap(err, "working directory")
			}
			config.SetDefaults(v, workDir)

			for flag, key := range flagKeys {
				if err := v.BindPFlag(key, cmd.Flags().Lookup(flag)); err != nil {
					return errors.Wrapf(err, "bind flag %s", flag)
				}
			}

			cfg, err := config.Load(v, cfgFile)
			if err != nil {
				return err
			}

			return run(cmd, cfg, time.Now())
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&cfgFile, "config", "c", "", "config file (yaml, toml or json)")
	flags.StringP("input", "i", "", "input folder (default <cwd>/input_images)")
	flags.StringP("dataset", "o", "", "dataset root folder (default <cwd>/dataset)")
	flags.IntP("size", "s", preprocess.DefaultTargetSize, "side length of the output square")
	flags.String("background", images.DefaultBackground.String(), "padding color as comma separated channel values")
	flags.String("filter", images.LanczosFilter.String(), "resample filter: nearest, bilinear, bicubic, mitchell, lanczos2, lanczos3")
	flags.StringSlice("ext", nil, "only process files with these extensions")
	flags.Bool("fail-fast", false, "abort the batch on the first failed image")
	flags.Bool("progress", false, "show a progress bar")
	flags.Int("jpeg-quality", images.DefaultJPEGQuality, "JPEG output quality (1-100)")
	flags.Float32("webp-quality", images.DefaultWebPQuality, "WebP output quality (0-100)")
	flags.Bool("webp-lossless", false, "encode WebP losslessly")
	flags.String("log-level", "info", "log level: debug, info, warn, error")
	flags.String("log-format", "console", "log format: console or json")

	cmd.AddCommand(newVersionCmd())
	return cmd
}

// run executes one batch. started names the output folder.
func run(cmd *cobra.Command, cfg *config.Config, started time.Time) error {
	logCfg := cfg.Logging()
	logCfg.Output = cmd.ErrOrStderr()
	logger, err := logging.New(logCfg)
	if err != nil {
		return errors.Wrapf(dataset.ErrConfig, "%v", err)
	}

	pc, err := cfg.Preprocess()
	if err != nil {
		return err
	}
	p, err := preprocess.NewPreprocessor(pc)
	if err != nil {
		return errors.Wrapf(dataset.ErrConfig, "%v", err)
	}

	opts := cfg.Batch(started)
	if cfg.Progress {
		opts.Progress = cmd.ErrOrStderr()
	}

	batch, err := dataset.NewBatch(opts, p, images.NewCodec(cfg.Codec()), logger)
	if err != nil {
		return err
	}

	report, err := batch.Run()
	if report != nil {
		fmt.Fprint(cmd.OutOrStdout(), report.Summary())
	}
	return err
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "squarepad %s\n", Version)
		},
	}
}
