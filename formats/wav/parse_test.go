package wav

import (
	"bytes"
	"errors"
	"testing"

	"github.com/ik5/podsplice/internal/audiotest"
)

func TestParse_RoundTrip(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		format Format
		frames int
	}{
		{"pcm16 mono", PCM16(24000, 1), 240},
		{"pcm16 stereo", PCM16(44100, 2), 441},
		{"pcm24 mono", NewFormat(PCM, 1, 48000, 24), 100},
		{"float32 stereo", NewFormat(IEEEFloat, 2, 48000, 32), 64},
		{"pcm8 mono", NewFormat(PCM, 1, 8000, 8), 81},
		{"empty", PCM16(16000, 1), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			payload := make([]byte, tt.frames*tt.format.BlockAlign())
			for i := range payload {
				payload[i] = byte(i * 7)
			}

			clip, err := Parse(Encode(tt.format, payload))
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			if clip.Format != tt.format {
				t.Errorf("Format = %v, want %v", clip.Format, tt.format)
			}
			if !bytes.Equal(clip.Data, payload) {
				t.Errorf("payload differs after round trip (%d vs %d bytes)", len(clip.Data), len(payload))
			}
		})
	}
}

func TestParse_NotWav(t *testing.T) {
	t.Parallel()

	tests := map[string][]byte{
		"text":      []byte("NOT A WAV FILE DATA"),
		"short":     []byte("RIFF"),
		"empty":     nil,
		"riff only": append([]byte("RIFF\x00\x00\x00\x00AVI "), make([]byte, 32)...),
	}

	for name, b := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			for _, fn := range []func([]byte, ...ParseOption) (Clip, error){Parse, Scan, Decode} {
				if _, err := fn(b); !errors.Is(err, ErrNotWavFile) {
					t.Errorf("error = %v, want ErrNotWavFile", err)
				}
			}
		})
	}
}

func TestParse_UnknownDataSize(t *testing.T) {
	t.Parallel()

	payload := audiotest.PCM16Bytes([]int16{1, 2, 3, 4, 5})
	b := audiotest.RIFF(
		audiotest.FmtChunk(1, 1, 24000, 16),
		audiotest.Chunk{ID: "data", Size: 0xFFFFFFFF, Body: payload},
	)

	clip, err := Parse(b)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if !bytes.Equal(clip.Data, payload) {
		t.Errorf("Data = %v, want the %d remaining bytes", clip.Data, len(payload))
	}
}

func TestParse_DataOverrun(t *testing.T) {
	t.Parallel()

	payload := audiotest.PCM16Bytes([]int16{10, 20, 30})
	b := audiotest.RIFF(
		audiotest.FmtChunk(1, 1, 24000, 16),
		audiotest.Chunk{ID: "data", Size: 1000, Body: payload},
	)

	if _, err := Parse(b); !errors.Is(err, ErrTruncatedData) {
		t.Errorf("Parse() error = %v, want ErrTruncatedData", err)
	}

	clip, err := Parse(b, Tolerate(true))
	if err != nil {
		t.Fatalf("Parse(Tolerate) error = %v", err)
	}
	if clip.Frames() != 3 {
		t.Errorf("Frames() = %d, want 3", clip.Frames())
	}
}

func TestParse_TruncatedTrailingChunk(t *testing.T) {
	t.Parallel()

	tail := audiotest.PCM16Bytes([]int16{7, 8, 9, 10})
	b := audiotest.RIFF(
		audiotest.FmtChunk(1, 1, 16000, 16),
		audiotest.Chunk{ID: "junk", Size: 500, Body: tail},
	)

	for _, tolerate := range []bool{false, true} {
		_, err := Parse(b, Tolerate(tolerate))
		var ce *ChunkError
		if !errors.As(err, &ce) {
			t.Fatalf("Parse(Tolerate(%v)) error = %v, want *ChunkError", tolerate, err)
		}
		if ce.Overrun != "junk" {
			t.Errorf("Overrun = %q, want %q", ce.Overrun, "junk")
		}
	}

	if _, err := Decode(b); !errors.Is(err, ErrMissingChunk) {
		t.Errorf("Decode() error = %v, want ErrMissingChunk", err)
	}

	clip, err := Decode(b, Tolerate(true))
	if err != nil {
		t.Fatalf("Decode(Tolerate) error = %v", err)
	}
	if !bytes.Equal(clip.Data, tail) {
		t.Errorf("salvaged %v, want %v", clip.Data, tail)
	}
}

func TestDecode_StrayBytesAfterFmt(t *testing.T) {
	t.Parallel()

	samples := []int16{1000, -1000, 2000, -2000}
	good := audiotest.WAV16(16000, 1, samples)
	// Two stray bytes between the fmt body and the data header.
	b := append([]byte{}, good[:36]...)
	b = append(b, 0, 0)
	b = append(b, good[36:]...)

	if _, err := Parse(b); !errors.Is(err, ErrMissingChunk) {
		t.Fatalf("Parse() error = %v, want ErrMissingChunk", err)
	}

	for _, tolerate := range []bool{false, true} {
		clip, err := Decode(b, Tolerate(tolerate))
		if err != nil {
			t.Fatalf("Decode(Tolerate(%v)) error = %v", tolerate, err)
		}
		if clip.Format != PCM16(16000, 1) {
			t.Errorf("Format = %v", clip.Format)
		}
		if !bytes.Equal(clip.Data, audiotest.PCM16Bytes(samples)) {
			t.Errorf("Decode(Tolerate(%v)) data = %v, want %v",
				tolerate, clip.Data, audiotest.PCM16Bytes(samples))
		}
	}
}

func TestParse_ExtraChunks(t *testing.T) {
	t.Parallel()

	payload := audiotest.PCM16Bytes([]int16{100, -100})
	b := audiotest.RIFF(
		audiotest.NewChunk("LIST", []byte("odd")), // padded to 4
		audiotest.FmtChunk(1, 1, 22050, 16),
		audiotest.NewChunk("fact", []byte{1, 0, 0, 0}),
		audiotest.NewChunk("data", payload),
	)

	clip, err := Parse(b)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if clip.Format != PCM16(22050, 1) {
		t.Errorf("Format = %v", clip.Format)
	}
	if !bytes.Equal(clip.Data, payload) {
		t.Errorf("Data = %v, want %v", clip.Data, payload)
	}
}

func TestParse_DataBeforeFmt(t *testing.T) {
	t.Parallel()

	payload := audiotest.PCM16Bytes([]int16{1, 2})
	b := audiotest.RIFF(
		audiotest.NewChunk("data", payload),
		audiotest.FmtChunk(1, 1, 8000, 16),
	)

	clip, err := Parse(b)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if !bytes.Equal(clip.Data, payload) {
		t.Errorf("Data = %v, want %v", clip.Data, payload)
	}
}

func TestParse_MissingChunk(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		b    []byte
		want []string
	}{
		{"no data", audiotest.RIFF(audiotest.FmtChunk(1, 1, 8000, 16)), []string{"data"}},
		{"no fmt", audiotest.RIFF(audiotest.NewChunk("data", []byte{0, 0})), []string{"fmt "}},
		{"nothing", audiotest.RIFF(), []string{"fmt ", "data"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			for name, fn := range map[string]func([]byte, ...ParseOption) (Clip, error){
				"Parse":  Parse,
				"Decode": Decode,
			} {
				_, err := fn(tt.b)
				var ce *ChunkError
				if !errors.As(err, &ce) {
					t.Fatalf("%s() error = %v, want *ChunkError", name, err)
				}
				if len(ce.Chunks) != len(tt.want) {
					t.Fatalf("%s() chunks = %q, want %q", name, ce.Chunks, tt.want)
				}
				for i := range tt.want {
					if ce.Chunks[i] != tt.want[i] {
						t.Errorf("%s() chunks = %q, want %q", name, ce.Chunks, tt.want)
					}
				}
			}
		})
	}
}

// misaligned shifts every chunk two bytes past where the walk expects it.
func misaligned(samples []int16) []byte {
	good := audiotest.WAV16(24000, 1, samples)
	b := append([]byte{}, good[:12]...)
	b = append(b, 0xAB, 0xCD)
	return append(b, good[12:]...)
}

func TestScan_MisalignedChunks(t *testing.T) {
	t.Parallel()

	samples := []int16{5, -5, 500, -500}
	b := misaligned(samples)

	if _, err := Parse(b); !errors.Is(err, ErrMissingChunk) {
		t.Fatalf("Parse() error = %v, want ErrMissingChunk", err)
	}

	clip, err := Scan(b)
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}
	if clip.Format != PCM16(24000, 1) {
		t.Errorf("Format = %v", clip.Format)
	}
	if !bytes.Equal(clip.Data, audiotest.PCM16Bytes(samples)) {
		t.Errorf("Data = %v", clip.Data)
	}

	decoded, err := Decode(b)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if !bytes.Equal(decoded.Data, clip.Data) {
		t.Error("Decode() and Scan() disagree")
	}
}

func TestScan_DataOverrun(t *testing.T) {
	t.Parallel()

	good := audiotest.RIFF(
		audiotest.FmtChunk(1, 1, 8000, 16),
		audiotest.Chunk{ID: "data", Size: 64, Body: []byte{1, 0, 2, 0}},
	)

	if _, err := Scan(good); !errors.Is(err, ErrTruncatedData) {
		t.Errorf("Scan() error = %v, want ErrTruncatedData", err)
	}
	clip, err := Scan(good, Tolerate(true))
	if err != nil {
		t.Fatalf("Scan(Tolerate) error = %v", err)
	}
	if clip.Frames() != 2 {
		t.Errorf("Frames() = %d, want 2", clip.Frames())
	}
}

func TestParse_MalformedFmt(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		fmt  audiotest.Chunk
	}{
		{"short body", audiotest.NewChunk("fmt ", make([]byte, 12))},
		{"zero channels", audiotest.FmtChunk(1, 0, 8000, 16)},
		{"zero rate", audiotest.FmtChunk(1, 1, 0, 16)},
		{"12 bit", audiotest.FmtChunk(1, 1, 8000, 12)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			b := audiotest.RIFF(tt.fmt, audiotest.NewChunk("data", []byte{0, 0}))
			if _, err := Parse(b); !errors.Is(err, ErrMalformedFmt) {
				t.Errorf("Parse() error = %v, want ErrMalformedFmt", err)
			}
		})
	}
}

func TestParse_TrimsPartialFrame(t *testing.T) {
	t.Parallel()

	b := audiotest.RIFF(
		audiotest.FmtChunk(1, 2, 8000, 16),
		audiotest.NewChunk("data", []byte{1, 2, 3, 4, 5, 6, 7}),
	)

	clip, err := Parse(b)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(clip.Data) != 4 {
		t.Errorf("len(Data) = %d, want 4", len(clip.Data))
	}
}

func TestIsWav(t *testing.T) {
	t.Parallel()

	if !IsWav(audiotest.WAV16(8000, 1, nil)) {
		t.Error("IsWav() = false for a WAV")
	}
	if IsWav([]byte("RIFF0000WAV")) {
		t.Error("IsWav() = true for an 11 byte buffer")
	}
}

func BenchmarkDecode(b *testing.B) {
	data := audiotest.WAV16(24000, 1, audiotest.SineInt16(24000, 24000, 440, 0.5))
	for b.Loop() {
		if _, err := Decode(data); err != nil {
			b.Fatal(err)
		}
	}
}
