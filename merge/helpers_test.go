package merge

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ik5/podsplice/audio"
	"github.com/ik5/podsplice/formats/wav"
	"github.com/ik5/podsplice/internal/audiotest"
)

func sineWAV(rate, frames int) []byte {
	return audiotest.WAV16(rate, 1, audiotest.SineInt16(rate, frames, 440, 0.9))
}

func constWAV(rate, channels, frames int, v int16) []byte {
	samples := make([]int16, frames*channels)
	for i := range samples {
		samples[i] = v
	}
	return audiotest.WAV16(rate, channels, samples)
}

func mustClip(t *testing.T, b []byte) wav.Clip {
	t.Helper()
	c, err := wav.Decode(b, wav.Tolerate(true))
	require.NoError(t, err)
	return c
}

func b64(b []byte) string { return base64.StdEncoding.EncodeToString(b) }

func rampBuffer(rate, frames int, from, to float32) *audio.Buffer {
	buf := audio.NewBuffer(rate, 1, frames)
	for i := range frames {
		buf.Channels[0][i] = from + (to-from)*float32(i)/float32(max(1, frames-1))
	}
	return buf
}
