// SPDX-License-Identifier: EPL-2.0

package merge

import (
	"fmt"
	"math"

	"github.com/sirupsen/logrus"

	"github.com/ik5/podsplice/audio"
	"github.com/ik5/podsplice/formats/wav"
	"github.com/ik5/podsplice/postproc"
)

// Crossfade splices clips with equal-power crossfades, then declicks the
// track edges and normalizes to CrossfadeTargetPeak. Input and output are
// 16-bit integer PCM.
type Crossfade struct{}

func (Crossfade) Name() string { return "crossfade" }

func (Crossfade) Merge(clips []wav.Clip, cfg Config) (*Result, error) {
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

	segments := make([]*audio.Buffer, len(clips))
	for i, c := range clips {
		if c.Format.Tag() != wav.PCM || c.Format.BitsPerSample() != 16 {
			return nil, fmt.Errorf("clip %d: %s: %w", i, c.Format, wav.ErrUnsupportedEncoding)
		}
		if segments[i], err = wav.DecodeSamples(c); err != nil {
			return nil, fmt.Errorf("clip %d: %w", i, err)
		}
	}

	merged, err := CrossfadeBuffers(segments, cfg.CrossfadeSeconds)
	if err != nil {
		return nil, err
	}

	postproc.EdgeFade(merged)
	target := cfg.targetPeak(CrossfadeTargetPeak)
	peak := postproc.Peak(merged)
	postproc.NormalizeGain(merged, target)

	out := wav.PCM16(canonical.SampleRate(), canonical.Channels())
	payload, err := wav.EncodeSamples(merged, out)
	if err != nil {
		return nil, err
	}

	cfg.Diagnostics.WithFields(logrus.Fields{
		"clips":     len(clips),
		"frames":    merged.Frames(),
		"crossfade": cfg.CrossfadeSeconds,
		"peak":      peak,
		"target":    target,
	}).Debug("crossfade merge done")

	return newResult(out, payload, len(clips), notes, cfg.Encoding), nil
}

// CrossfadeBuffers joins segments in order. Each junction overlaps by
// floor(seconds × rate) frames, limited to the length of both neighbours,
// and blends existing·cos(tπ/2) + incoming·sin(tπ/2) with t = j/overlap.
// The output has Σ frames − Σ overlaps frames at the rate of segments[0].
// A single segment is returned as an unchanged copy.
func CrossfadeBuffers(segments []*audio.Buffer, seconds float64) (*audio.Buffer, error) {
	if len(segments) == 0 {
		return nil, ErrEmptyInput
	}

	first := segments[0]
	channels := first.NumChannels()
	for i, s := range segments[1:] {
		if s.NumChannels() != channels {
			return nil, &MismatchError{Mismatch{
				Index: i + 1,
				Field: FieldChannels,
				Want:  channels,
				Got:   s.NumChannels(),
			}}
		}
	}

	base := 0
	if seconds > 0 {
		base = int(math.Floor(seconds * float64(first.SampleRate)))
	}

	overlaps := make([]int, len(segments))
	total := first.Frames()
	for i := 1; i < len(segments); i++ {
		overlaps[i] = min(base, segments[i-1].Frames(), segments[i].Frames())
		total += segments[i].Frames() - overlaps[i]
	}

	out := audio.NewBuffer(first.SampleRate, channels, total)
	for ch := range channels {
		copy(out.Channels[ch], first.Channels[ch])
	}

	offset := first.Frames()
	for i := 1; i < len(segments); i++ {
		cur := segments[i]
		overlap := overlaps[i]
		start := offset - overlap

		for j := range overlap {
			t := float64(j) / float64(overlap)
			fadeOut := float32(math.Cos(t * math.Pi / 2))
			fadeIn := float32(math.Sin(t * math.Pi / 2))
			for ch := range channels {
				existing := out.Channels[ch][start+j]
				incoming := cur.Channels[ch][j]
				out.Channels[ch][start+j] = existing*fadeOut + incoming*fadeIn
			}
		}

		for ch := range channels {
			copy(out.Channels[ch][offset:], cur.Channels[ch][overlap:])
		}
		offset += cur.Frames() - overlap
	}

	return out, nil
}
