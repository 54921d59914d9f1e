// SPDX-License-Identifier: EPL-2.0

package config

import (
	"fmt"
	"strconv"
)

// Environment overrides.
const (
	EnvStrategy      = "PODSPLICE_STRATEGY"
	EnvCrossfade     = "PODSPLICE_CROSSFADE_SECONDS"
	EnvGapMs         = "PODSPLICE_SILENCE_GAP_MS"
	EnvNormalize     = "PODSPLICE_NORMALIZE"
	EnvTargetPeak    = "PODSPLICE_TARGET_PEAK"
	EnvPolicy        = "PODSPLICE_POLICY"
	EnvTolerate      = "PODSPLICE_TOLERATE_TRUNCATION"
	EnvDecodeWorkers = "PODSPLICE_DECODE_WORKERS"
	EnvOutputDir     = "PODSPLICE_OUTPUT_DIR"
	EnvEncoding      = "PODSPLICE_ENCODING"
	EnvLogLevel      = "PODSPLICE_LOG_LEVEL"
	EnvLogFormat     = "PODSPLICE_LOG_FORMAT"
	EnvMetricsFile   = "PODSPLICE_METRICS_FILE"
)

// ApplyEnv overrides fields from the variables lookup reports as set.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok {
			*dst = v
		}
	}
	str(EnvStrategy, &c.Merge.Strategy)
	str(EnvPolicy, &c.Merge.Policy)
	str(EnvOutputDir, &c.Output.Dir)
	str(EnvEncoding, &c.Output.Encoding)
	str(EnvLogLevel, &c.Logging.Level)
	str(EnvLogFormat, &c.Logging.Format)
	str(EnvMetricsFile, &c.Metrics.Textfile)

	if v, ok := lookup(EnvCrossfade); ok {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return envError(EnvCrossfade, v, err)
		}
		c.Merge.CrossfadeSeconds = f
	}
	if v, ok := lookup(EnvTargetPeak); ok {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return envError(EnvTargetPeak, v, err)
		}
		c.Merge.TargetPeak = f
	}
	if v, ok := lookup(EnvGapMs); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return envError(EnvGapMs, v, err)
		}
		c.Merge.SilenceGapMs = n
	}
	if v, ok := lookup(EnvDecodeWorkers); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return envError(EnvDecodeWorkers, v, err)
		}
		c.Merge.DecodeWorkers = n
	}
	if v, ok := lookup(EnvNormalize); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return envError(EnvNormalize, v, err)
		}
		c.Merge.Normalize = b
	}
	if v, ok := lookup(EnvTolerate); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return envError(EnvTolerate, v, err)
		}
		c.Merge.TolerateTruncation = &b
	}
	return nil
}

func envError(key, value string, err error) error {
	return fmt.Errorf("%w: %s=%q: %w", ErrInvalidConfig, key, value, err)
}
