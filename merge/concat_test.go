package merge

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ik5/podsplice/formats/wav"
	"github.com/ik5/podsplice/internal/audiotest"
)

func TestConcat_SilenceBetweenThreeClips(t *testing.T) {
	t.Parallel()

	clips := []wav.Clip{
		mustClip(t, constWAV(24000, 1, 1000, 1200)),
		mustClip(t, constWAV(24000, 1, 2000, -800)),
		mustClip(t, constWAV(24000, 1, 500, 300)),
	}
	cfg := DefaultConcatConfig()
	cfg.SilenceGapMs = 250

	res, err := Concat{}.Merge(clips, cfg)
	require.NoError(t, err)

	out, err := wav.Parse(res.WAV)
	require.NoError(t, err)
	samples := audiotest.Int16s(out.Data)
	require.Len(t, samples, 1000+6000+2000+6000+500)

	var runs []int
	run := 0
	for _, s := range samples {
		if s == 0 {
			run++
			continue
		}
		if run > 0 {
			runs = append(runs, run)
			run = 0
		}
	}
	assert.Equal(t, []int{6000, 6000}, runs)
	assert.Equal(t, int16(1200), samples[0])
	assert.Equal(t, int16(300), samples[len(samples)-1])
	assert.InDelta(t, 15500.0/24000, res.DurationSeconds, 1e-9)
}

func TestConcat_LengthLaw(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		frames []int
		gapMs  int
		want   int
	}{
		{"no gap", []int{10, 20, 30}, 0, 60},
		{"single clip ignores gap", []int{10}, 500, 10},
		{"two clips", []int{10, 10}, 10, 10 + 80 + 10},
		{"negative gap", []int{10, 10}, -20, 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			clips := make([]wav.Clip, len(tt.frames))
			for i, n := range tt.frames {
				clips[i] = mustClip(t, constWAV(8000, 1, n, 5))
			}
			cfg := DefaultConcatConfig()
			cfg.SilenceGapMs = tt.gapMs

			res, err := Concat{}.Merge(clips, cfg)
			require.NoError(t, err)
			assert.Equal(t, wav.HeaderSize+tt.want*2, res.Bytes())
		})
	}
}

func TestConcat_Normalize(t *testing.T) {
	t.Parallel()

	clips := []wav.Clip{
		mustClip(t, constWAV(8000, 1, 10, 32767)),
		mustClip(t, constWAV(8000, 1, 10, -16000)),
	}
	cfg := DefaultConcatConfig()
	cfg.Normalize = true

	res, err := Concat{}.Merge(clips, cfg)
	require.NoError(t, err)

	samples := audiotest.Int16s(res.WAV[wav.HeaderSize:])
	assert.Equal(t, int16(32112), samples[0])
	assert.Equal(t, int16(-15680), samples[10])

	// Clip payloads are not touched.
	assert.Equal(t, int16(32767), audiotest.Int16s(clips[0].Data)[0])
}

func TestConcat_NormalizeNeverAmplifies(t *testing.T) {
	t.Parallel()

	clip := mustClip(t, constWAV(8000, 1, 10, 1000))
	cfg := DefaultConcatConfig()
	cfg.Normalize = true

	res, err := Concat{}.Merge([]wav.Clip{clip}, cfg)
	require.NoError(t, err)
	assert.Equal(t, clip.Data, res.WAV[wav.HeaderSize:])
}

func TestConcat_KeepsEncoding(t *testing.T) {
	t.Parallel()

	f := wav.NewFormat(wav.PCM, 2, 8000, 24)
	clip := wav.Clip{Format: f, Data: bytes.Repeat([]byte{1, 2, 3}, 20)}
	cfg := DefaultConcatConfig()
	cfg.SilenceGapMs = 1

	res, err := Concat{}.Merge([]wav.Clip{clip, clip}, cfg)
	require.NoError(t, err)
	assert.Equal(t, f, res.Format)
	assert.Equal(t, wav.HeaderSize+60+8*6+60, res.Bytes())
}

func TestConcat_Policies(t *testing.T) {
	t.Parallel()

	clips := []wav.Clip{
		mustClip(t, constWAV(24000, 1, 100, 100)),
		mustClip(t, constWAV(16000, 1, 100, 100)),
	}

	t.Run("strict", func(t *testing.T) {
		t.Parallel()
		_, err := Concat{}.Merge(clips, DefaultConcatConfig())
		var mm *MismatchError
		require.ErrorAs(t, err, &mm)
		assert.Equal(t, 1, mm.Index)
		assert.Equal(t, FieldSampleRate, mm.Field)
	})

	t.Run("warn", func(t *testing.T) {
		t.Parallel()
		cfg := DefaultConcatConfig()
		cfg.Policy = Warn
		res, err := Concat{}.Merge(clips, cfg)
		require.NoError(t, err)
		assert.Equal(t, 24000, res.Format.SampleRate())
		assert.Len(t, res.Warnings, 1)
		assert.Equal(t, wav.HeaderSize+400, res.Bytes())
	})

	t.Run("coerce stereo to mono", func(t *testing.T) {
		t.Parallel()
		cfg := DefaultConcatConfig()
		cfg.Policy = Coerce
		res, err := Concat{}.Merge([]wav.Clip{
			mustClip(t, constWAV(24000, 1, 100, 500)),
			mustClip(t, constWAV(24000, 2, 100, 500)),
		}, cfg)
		require.NoError(t, err)
		assert.Equal(t, wav.PCM16(24000, 1), res.Format)
		assert.Equal(t, wav.HeaderSize+400, res.Bytes())
		assert.Equal(t, []Mismatch{{Index: 1, Field: FieldChannels, Want: 1, Got: 2}}, res.Warnings)
	})
}

func TestSilence(t *testing.T) {
	t.Parallel()

	assert.Len(t, Silence(250, wav.PCM16(24000, 1)), 12000)
	assert.Len(t, Silence(250, wav.PCM16(24000, 2)), 24000)
	assert.Nil(t, Silence(0, wav.PCM16(24000, 1)))
	assert.Nil(t, Silence(-5, wav.PCM16(24000, 1)))

	// 1 ms at 1500 Hz is 1.5 frames, rounded to 2.
	assert.Len(t, Silence(1, wav.PCM16(1500, 1)), 4)

	u8 := Silence(10, wav.NewFormat(wav.PCM, 1, 8000, 8))
	assert.Equal(t, bytes.Repeat([]byte{0x80}, 80), u8)
}

func TestConcatPCM(t *testing.T) {
	t.Parallel()

	got := ConcatPCM([][]byte{{1}, {2, 2}, {3}}, []byte{0, 0})
	assert.Equal(t, []byte{1, 0, 0, 2, 2, 0, 0, 3}, got)
	assert.Equal(t, []byte{9}, ConcatPCM([][]byte{{9}}, []byte{0}))
}
