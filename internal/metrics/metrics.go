// SPDX-License-Identifier: EPL-2.0

// Package metrics counts merges on a private Prometheus registry. The CLI is
// a short-lived process, so the registry is exported to a textfile for the
// node exporter instead of being scraped.
package metrics

import (
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/ik5/podsplice/formats/wav"
	"github.com/ik5/podsplice/merge"
)

// Outcome labels.
const (
	OutcomeOK       = "ok"
	OutcomeMismatch = "mismatch"
	OutcomeInvalid  = "invalid"
	OutcomeError    = "error"
)

type Metrics struct {
	registry *prometheus.Registry

	MergesTotal     *prometheus.CounterVec
	ClipsMerged     *prometheus.CounterVec
	OutputSeconds   *prometheus.HistogramVec
	MergeLatency    *prometheus.HistogramVec
	MismatchesTotal *prometheus.CounterVec
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),

		MergesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "podsplice_merges_total",
				Help: "Total number of merge calls",
			},
			[]string{"strategy", "outcome"},
		),
		ClipsMerged: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "podsplice_clips_merged_total",
				Help: "Total number of clips in successful merges",
			},
			[]string{"strategy"},
		),
		OutputSeconds: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "podsplice_output_seconds",
				Help:    "Duration of merged tracks",
				Buckets: prometheus.ExponentialBuckets(1, 2, 12), // 1 s to ~34 min
			},
			[]string{"strategy"},
		),
		MergeLatency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "podsplice_merge_duration_seconds",
				Help:    "Time taken by a merge, decoding included",
				Buckets: prometheus.ExponentialBuckets(0.001, 2, 14),
			},
			[]string{"strategy"},
		),
		MismatchesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "podsplice_format_mismatches_total",
				Help: "Format differences tolerated under the warn and coerce policies",
			},
			[]string{"field"},
		),
	}

	m.registry.MustRegister(
		m.MergesTotal,
		m.ClipsMerged,
		m.OutputSeconds,
		m.MergeLatency,
		m.MismatchesTotal,
	)
	return m
}

func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// ObserveMerge records one merge that started at start and ended with res and
// err.
func (m *Metrics) ObserveMerge(strategy string, start time.Time, res *merge.Result, err error) {
	m.MergeLatency.WithLabelValues(strategy).Observe(time.Since(start).Seconds())
	m.MergesTotal.WithLabelValues(strategy, Outcome(err)).Inc()
	if err != nil || res == nil {
		return
	}

	m.ClipsMerged.WithLabelValues(strategy).Add(float64(res.ClipCount))
	m.OutputSeconds.WithLabelValues(strategy).Observe(res.DurationSeconds)
	for _, w := range res.Warnings {
		m.MismatchesTotal.WithLabelValues(w.Field).Inc()
	}
}

// Outcome classifies a merge error for the outcome label.
func Outcome(err error) string {
	switch {
	case err == nil:
		return OutcomeOK
	case errors.Is(err, merge.ErrFormatMismatch):
		return OutcomeMismatch
	case errors.Is(err, merge.ErrInvalidInput),
		errors.Is(err, merge.ErrNotWavAndNoFallback),
		errors.Is(err, merge.ErrEmptyInput),
		errors.Is(err, wav.ErrNotWavFile),
		errors.Is(err, wav.ErrMissingChunk),
		errors.Is(err, wav.ErrTruncatedData),
		errors.Is(err, wav.ErrMalformedFmt),
		errors.Is(err, wav.ErrUnsupportedEncoding):
		return OutcomeInvalid
	default:
		return OutcomeError
	}
}

// WriteTextfile writes every collector to path in the Prometheus text format.
func (m *Metrics) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("writing metrics to %s: %w", path, err)
	}
	return nil
}
