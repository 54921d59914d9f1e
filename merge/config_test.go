package merge

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ik5/podsplice/formats/wav"
)

func TestParsePolicy(t *testing.T) {
	t.Parallel()

	for in, want := range map[string]Policy{"": Strict, "STRICT": Strict, " warn ": Warn, "coerce": Coerce} {
		got, err := ParsePolicy(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParsePolicy("maybe")
	assert.ErrorIs(t, err, ErrUnknownPolicy)
}

func TestParseEncoding(t *testing.T) {
	t.Parallel()

	for in, want := range map[string]Encoding{"": EncodingBase64, "HEX": EncodingHex, "binary": EncodingBinary} {
		got, err := ParseEncoding(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseEncoding("utf-7")
	assert.ErrorIs(t, err, ErrUnknownEncoding)
}

func TestRawFormat(t *testing.T) {
	t.Parallel()

	assert.Equal(t, wav.PCM16(24000, 1), RawFormat{SampleRate: 24000, Channels: 1, BitsPerSample: 16}.Format())
	assert.Equal(t, wav.IEEEFloat, RawFormat{SampleRate: 48000, Channels: 2, BitsPerSample: 32}.Format().Tag())
	assert.Equal(t, wav.PCM, RawFormat{SampleRate: 48000, Channels: 2, BitsPerSample: 32, Tag: wav.PCM}.Format().Tag())
}

func TestConfig_Resolved(t *testing.T) {
	t.Parallel()

	cfg, err := Config{CrossfadeSeconds: math.NaN(), SilenceGapMs: -1}.resolved()
	require.NoError(t, err)
	assert.Zero(t, cfg.CrossfadeSeconds)
	assert.Zero(t, cfg.SilenceGapMs)
	assert.Equal(t, Strict, cfg.Policy)
	assert.Equal(t, EncodingBase64, cfg.Encoding)
	assert.Positive(t, cfg.DecodeWorkers)
	assert.NotNil(t, cfg.Diagnostics)

	cfg, err = Config{CrossfadeSeconds: -3}.resolved()
	require.NoError(t, err)
	assert.Zero(t, cfg.CrossfadeSeconds)

	assert.InDelta(t, 0.5, Config{TargetPeak: 0.5}.targetPeak(CrossfadeTargetPeak), 0)
	assert.InDelta(t, CrossfadeTargetPeak, Config{}.targetPeak(CrossfadeTargetPeak), 0)
}

func TestDefaults(t *testing.T) {
	t.Parallel()

	x := DefaultCrossfadeConfig()
	assert.InDelta(t, 0.1, x.CrossfadeSeconds, 0)
	assert.True(t, x.TolerateTruncation)
	assert.Equal(t, Strict, x.Policy)

	c := DefaultConcatConfig()
	assert.False(t, c.TolerateTruncation)
	assert.Zero(t, c.SilenceGapMs)
	assert.False(t, c.Normalize)
}
