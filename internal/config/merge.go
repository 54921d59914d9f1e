// SPDX-License-Identifier: EPL-2.0

package config

import (
	"github.com/ik5/podsplice/formats/wav"
	"github.com/ik5/podsplice/merge"
)

// Format is the merge fallback layout for the section.
func (r *RawPCMConfig) Format() merge.RawFormat {
	f := merge.RawFormat{
		SampleRate:    r.SampleRate,
		Channels:      r.Channels,
		BitsPerSample: r.BitsPerSample,
		Tag:           wav.PCM,
	}
	if r.Float {
		f.Tag = wav.IEEEFloat
	}
	return f
}

// Build returns the merge strategy and a merge.Config starting from that
// strategy's defaults.
func (m *MergeConfig) Build() (merge.Strategy, merge.Config, error) {
	s, err := merge.StrategyByName(m.Strategy)
	if err != nil {
		return nil, merge.Config{}, err
	}

	cfg := merge.DefaultConcatConfig()
	if _, ok := s.(merge.Crossfade); ok {
		cfg = merge.DefaultCrossfadeConfig()
	}

	if cfg.Policy, err = merge.ParsePolicy(m.Policy); err != nil {
		return nil, merge.Config{}, err
	}
	cfg.CrossfadeSeconds = m.CrossfadeSeconds
	cfg.SilenceGapMs = m.SilenceGapMs
	cfg.Normalize = m.Normalize
	cfg.TargetPeak = m.TargetPeak
	cfg.DecodeWorkers = m.DecodeWorkers
	if m.TolerateTruncation != nil {
		cfg.TolerateTruncation = *m.TolerateTruncation
	}
	if m.RawPCM != nil {
		raw := m.RawPCM.Format()
		cfg.RawPCMFallback = &raw
	}
	return s, cfg, nil
}
