// SPDX-License-Identifier: EPL-2.0

package merge

import (
	"bytes"
	"math"

	"github.com/sirupsen/logrus"

	"github.com/ik5/podsplice/formats/wav"
	"github.com/ik5/podsplice/postproc"
)

// Concat joins clip payloads byte for byte with an optional silence gap
// between neighbours. Any encoding is accepted as long as the batch passes
// the mismatch policy; the output keeps clip 0's tag and depth.
type Concat struct{}

func (Concat) Name() string { return "concat" }

func (Concat) Merge(clips []wav.Clip, cfg Config) (*Result, error) {
	if len(clips) == 0 {
		return nil, ErrEmptyInput
	}
	cfg, err := cfg.resolved()
	if err != nil {
		return nil, err
	}

	canonical, notes, clips, err := checkBatch(clips, cfg)
	if err != nil {
		return nil, err
	}

	payloads := make([][]byte, len(clips))
	for i, c := range clips {
		payloads[i] = c.Data
	}
	pcm := ConcatPCM(payloads, Silence(cfg.SilenceGapMs, canonical))

	if cfg.Normalize {
		target := cfg.targetPeak(ConcatTargetPeak)
		if !postproc.NormalizePCM(pcm, canonical, target) {
			cfg.Diagnostics.WithField("format", canonical.String()).
				Warn("normalization skipped: only 16-bit PCM and 32-bit float are supported")
		}
	}

	cfg.Diagnostics.WithFields(logrus.Fields{
		"clips":  len(clips),
		"bytes":  len(pcm),
		"gap_ms": cfg.SilenceGapMs,
	}).Debug("concat merge done")

	return newResult(canonical, pcm, len(clips), notes, cfg.Encoding), nil
}

// Silence is ms milliseconds of silence in format f: round(ms/1000 × rate)
// whole frames of zero bytes, or 0x80 for unsigned 8-bit PCM.
func Silence(ms int, f wav.Format) []byte {
	if ms <= 0 {
		return nil
	}

	frames := int(math.Round(float64(ms) / 1000 * float64(f.SampleRate())))
	out := make([]byte, frames*f.BlockAlign())
	if f.Tag() == wav.PCM && f.BitsPerSample() == 8 {
		for i := range out {
			out[i] = 0x80
		}
	}
	return out
}

// ConcatPCM joins payloads in order with silence between each adjacent pair,
// never before the first or after the last.
func ConcatPCM(payloads [][]byte, silence []byte) []byte {
	size := 0
	for _, p := range payloads {
		size += len(p)
	}
	if len(payloads) > 1 {
		size += (len(payloads) - 1) * len(silence)
	}

	var out bytes.Buffer
	out.Grow(size)
	for i, p := range payloads {
		if i > 0 {
			out.Write(silence)
		}
		out.Write(p)
	}
	return out.Bytes()
}
