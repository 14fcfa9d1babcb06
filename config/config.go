// Package config loads the squarepad settings from defaults, an optional
// config file, SQUAREPAD_* environment variables and command line flags.
package config

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/nvr-ai/squarepad/dataset"
	"github.com/nvr-ai/squarepad/images"
	"github.com/nvr-ai/squarepad/logging"
	"github.com/nvr-ai/squarepad/preprocess"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes the environment variables read by Load.
const EnvPrefix = "SQUAREPAD"

// Config is the full set of settings of a run.
type Config struct {
	Input        string   `mapstructure:"input"`
	Dataset      string   `mapstructure:"dataset"`
	Size         int      `mapstructure:"size"`
	Background   string   `mapstructure:"background"`
	Filter       string   `mapstructure:"filter"`
	Extensions   []string `mapstructure:"extensions"`
	FailFast     bool     `mapstructure:"fail_fast"`
	Progress     bool     `mapstructure:"progress"`
	JPEGQuality  int      `mapstructure:"jpeg_quality"`
	WebPQuality  float32  `mapstructure:"webp_quality"`
	WebPLossless bool     `mapstructure:"webp_lossless"`
	LogLevel     string   `mapstructure:"log_level"`
	LogFormat    string   `mapstructure:"log_format"`
}

// SetDefaults registers the default value of every key. Folders default to
// input_images and dataset under workDir.
func SetDefaults(v *viper.Viper, workDir string) {
	v.SetDefault("input", filepath.Join(workDir, "input_images"))
	v.SetDefault("dataset", filepath.Join(workDir, "dataset"))
	v.SetDefault("size", preprocess.DefaultTargetSize)
	v.SetDefault("background", images.DefaultBackground.String())
	v.SetDefault("filter", images.LanczosFilter.String())
	v.SetDefault("extensions", []string{})
	v.SetDefault("fail_fast", false)
	v.SetDefault("progress", false)
	v.SetDefault("jpeg_quality", images.DefaultJPEGQuality)
	v.SetDefault("webp_quality", images.DefaultWebPQuality)
	v.SetDefault("webp_lossless", false)
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "console")
}

// Load reads the configuration. An empty configFile means defaults,
// environment and flags only; a named file that cannot be read is an error.
func Load(v *viper.Viper, configFile string) (*Config, error) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(dataset.ErrConfig, "read config %s: %v", configFile, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrapf(dataset.ErrConfig, "parse config: %v", err)
	}
	return &cfg, nil
}

// Preprocess converts the transform settings.
func (c *Config) Preprocess() (preprocess.Config, error) {
	bg, err := images.ParseBackground(c.Background)
	if err != nil {
		return preprocess.Config{}, errors.Wrapf(dataset.ErrConfig, "background: %v", err)
	}
	filter, err := images.ParseResampleFilter(c.Filter)
	if err != nil {
		return preprocess.Config{}, errors.Wrapf(dataset.ErrConfig, "filter: %v", err)
	}

	pc := preprocess.Config{TargetSize: c.Size, Background: bg, Filter: filter}
	if err := pc.Validate(); err != nil {
		return preprocess.Config{}, errors.Wrapf(dataset.ErrConfig, "%v", err)
	}
	return pc, nil
}

// Codec converts the encoder settings.
func (c *Config) Codec() images.CodecOptions {
	return images.CodecOptions{
		JPEGQuality:  c.JPEGQuality,
		WebPQuality:  c.WebPQuality,
		WebPLossless: c.WebPLossless,
	}
}

// Batch converts the folder settings for a batch started at started.
func (c *Config) Batch(started time.Time) dataset.Options {
	return dataset.Options{
		InputDir:    c.Input,
		DatasetRoot: c.Dataset,
		Started:     started,
		Extensions:  c.Extensions,
		FailFast:    c.FailFast,
	}
}

// Logging converts the logger settings.
func (c *Config) Logging() logging.Config {
	return logging.Config{Level: c.LogLevel, Format: c.LogFormat}
}
