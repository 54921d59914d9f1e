// SPDX-License-Identifier: EPL-2.0

package postproc

import (
	"encoding/binary"
	"math"

	"github.com/ik5/podsplice/audio"
	"github.com/ik5/podsplice/formats/wav"
	"github.com/ik5/podsplice/utils"
)

// EdgeFadeDuration is the declick window at each end of a merged track.
const EdgeFadeDuration = 0.008

// EdgeFadeFrames is the window EdgeFade uses at sampleRate.
func EdgeFadeFrames(sampleRate int) int {
	return max(1, int(math.Floor(float64(sampleRate)*EdgeFadeDuration)))
}

// EdgeFade ramps the first and last EdgeFadeFrames samples of every channel:
// head sample i is scaled by (i+1)/n and tail sample len-1-i by (i+1)/n, so the
// track rises from near zero and falls back to it. Windows longer than the
// channel are shortened to fit. Meant to be applied once.
func EdgeFade(buf *audio.Buffer) {
	window := EdgeFadeFrames(buf.SampleRate)

	for _, samples := range buf.Channels {
		n := min(window, len(samples))
		last := len(samples) - 1
		for i := range n {
			gain := float32(i+1) / float32(n)
			samples[i] *= gain
			samples[last-i] *= gain
		}
	}
}

// Peak is the largest absolute sample across all channels.
func Peak(buf *audio.Buffer) float32 {
	var peak float32
	for _, samples := range buf.Channels {
		for _, s := range samples {
			if s < 0 {
				s = -s
			}
			if s > peak {
				peak = s
			}
		}
	}
	return peak
}

// NormalizeGain scales buf so its peak becomes target. It only attenuates:
// silent buffers and buffers already at or below target are left untouched.
// All channels get the same gain.
func NormalizeGain(buf *audio.Buffer, target float64) {
	peak := Peak(buf)
	if peak == 0 {
		return
	}

	scale := target / float64(peak)
	if scale >= 1 {
		return
	}

	gain := float32(scale)
	for _, samples := range buf.Channels {
		for i := range samples {
			samples[i] *= gain
		}
	}
}

// NormalizePCM normalizes an interleaved payload in place. Only 16-bit
// integer and 32-bit float PCM are handled; for anything else data is left
// alone and false is returned. Like NormalizeGain it never amplifies.
func NormalizePCM(data []byte, f wav.Format, target float64) bool {
	switch {
	case f.Tag() == wav.PCM && f.BitsPerSample() == 16:
		normalizeInt16(data, target)
		return true
	case f.Tag() == wav.IEEEFloat && f.BitsPerSample() == 32:
		normalizeFloat32(data, target)
		return true
	default:
		return false
	}
}

func normalizeInt16(data []byte, target float64) {
	n := len(data) / 2

	var peak int
	for i := range n {
		v := int(int16(binary.LittleEndian.Uint16(data[i*2:])))
		if v < 0 {
			v = -v
		}
		peak = max(peak, v)
	}
	if peak == 0 {
		return
	}

	scale := target * math.MaxInt16 / float64(peak)
	if scale >= 1 {
		return
	}

	for i := range n {
		v := float64(int16(binary.LittleEndian.Uint16(data[i*2:])))
		nv := math.Max(math.MinInt16, math.Min(math.MaxInt16, math.Round(v*scale)))
		binary.LittleEndian.PutUint16(data[i*2:], uint16(int16(nv)))
	}
}

func normalizeFloat32(data []byte, target float64) {
	n := len(data) / 4

	var peak float64
	for i := range n {
		// NaN never compares greater, so it cannot poison the peak.
		if a := math.Abs(float64(utils.ReadFloat32LE(data[i*4:]))); a > peak {
			peak = a
		}
	}
	if peak == 0 {
		return
	}

	scale := target / peak
	if scale >= 1 {
		return
	}

	for i := range n {
		v := float64(utils.ReadFloat32LE(data[i*4:]))
		utils.PutFloat32LE(data[i*4:], float32(v*scale))
	}
}
