// SPDX-License-Identifier: EPL-2.0

package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config is the podsplice configuration file.
type Config struct {
	Merge   MergeConfig   `yaml:"merge"`
	Output  OutputConfig  `yaml:"output"`
	Logging LoggingConfig `yaml:"logging"`
	Metrics MetricsConfig `yaml:"metrics"`
}

// MergeConfig selects the strategy and its parameters.
type MergeConfig struct {
	Strategy         string  `yaml:"strategy"`
	CrossfadeSeconds float64 `yaml:"crossfade_seconds"`
	SilenceGapMs     int     `yaml:"silence_gap_ms"`
	Normalize        bool    `yaml:"normalize"`
	TargetPeak       float64 `yaml:"target_peak"`
	Policy           string  `yaml:"policy"`
	// TolerateTruncation overrides the strategy default when set.
	TolerateTruncation *bool         `yaml:"tolerate_truncation"`
	DecodeWorkers      int           `yaml:"decode_workers"`
	RawPCM             *RawPCMConfig `yaml:"raw_pcm"`
}

// RawPCMConfig is the layout assumed for clips without a WAV header.
type RawPCMConfig struct {
	SampleRate    int  `yaml:"sample_rate"`
	Channels      int  `yaml:"channels"`
	BitsPerSample int  `yaml:"bits_per_sample"`
	Float         bool `yaml:"float"`
}

type OutputConfig struct {
	Dir string `yaml:"dir"`
	// Encoding is used when the track is written to stdout.
	Encoding string `yaml:"encoding"`
	// Prefix of generated file names: <prefix>-<uuid>.wav.
	Prefix string `yaml:"prefix"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type MetricsConfig struct {
	// Textfile, when set, receives the collectors in Prometheus text format
	// after every run.
	Textfile string `yaml:"textfile"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Merge: MergeConfig{
			Strategy:         "crossfade",
			CrossfadeSeconds: 0.1,
			Policy:           "strict",
		},
		Output: OutputConfig{
			Dir:      ".",
			Encoding: "base64",
			Prefix:   "podcast",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load builds the configuration from the defaults, the YAML file at path
// (skipped when path is empty) and PODSPLICE_* environment variables, in that
// order, then validates it.
func Load(path string) (*Config, error) {
	cfg, err := Read(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Read returns the defaults overlaid with the YAML file at path. It neither
// looks at the environment nor validates.
func Read(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return cfg, nil
}

// LoadDotEnv loads .env style files into the process environment without
// overriding variables already set. Missing files are skipped.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if _, err := os.Stat(p); errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(p); err != nil {
			return fmt.Errorf("loading %s: %w", p, err)
		}
	}
	return nil
}
