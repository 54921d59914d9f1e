// SPDX-License-Identifier: EPL-2.0

package config

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/ik5/podsplice/merge"
)

// Validate checks every section.
func (c *Config) Validate() error {
	if err := c.Merge.Validate(); err != nil {
		return fmt.Errorf("merge config: %w", err)
	}
	if err := c.Output.Validate(); err != nil {
		return fmt.Errorf("output config: %w", err)
	}
	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("logging config: %w", err)
	}
	return nil
}

func (m *MergeConfig) Validate() error {
	if _, err := merge.StrategyByName(m.Strategy); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if _, err := merge.ParsePolicy(m.Policy); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if m.CrossfadeSeconds < 0 {
		return fmt.Errorf("%w: crossfade_seconds must be >= 0, got %v", ErrInvalidConfig, m.CrossfadeSeconds)
	}
	if m.SilenceGapMs < 0 {
		return fmt.Errorf("%w: silence_gap_ms must be >= 0, got %d", ErrInvalidConfig, m.SilenceGapMs)
	}
	if m.TargetPeak < 0 || m.TargetPeak > 1 {
		return fmt.Errorf("%w: target_peak must be within [0, 1], got %v", ErrInvalidConfig, m.TargetPeak)
	}
	if m.DecodeWorkers < 0 {
		return fmt.Errorf("%w: decode_workers must be >= 0, got %d", ErrInvalidConfig, m.DecodeWorkers)
	}
	if m.RawPCM != nil {
		if err := m.RawPCM.Format().Format().Validate(); err != nil {
			return fmt.Errorf("%w: raw_pcm: %w", ErrInvalidConfig, err)
		}
	}
	return nil
}

func (o *OutputConfig) Validate() error {
	if _, err := merge.ParseEncoding(o.Encoding); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if strings.ContainsAny(o.Prefix, `/\`) {
		return fmt.Errorf("%w: prefix %q must not contain path separators", ErrInvalidConfig, o.Prefix)
	}
	return nil
}

func (l *LoggingConfig) Validate() error {
	if _, err := logrus.ParseLevel(l.Level); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	switch l.Format {
	case "text", "json":
		return nil
	default:
		return fmt.Errorf("%w: log format must be text or json, got %q", ErrInvalidConfig, l.Format)
	}
}
