package audio

import (
	"io"
	"math"
)

// mockSource generates a waveform on demand.
type mockSource struct {
	sampleRate int
	channels   int
	frames     int
	generated  int
	waveform   func(frame, channel int) float32
	closed     bool
}

func newMockSource(sampleRate, channels, frames int, waveform func(frame, channel int) float32) *mockSource {
	return &mockSource{
		sampleRate: sampleRate,
		channels:   channels,
		frames:     frames,
		waveform:   waveform,
	}
}

func newSilentSource(sampleRate, channels, frames int) *mockSource {
	return newMockSource(sampleRate, channels, frames, func(int, int) float32 { return 0 })
}

func newConstantSource(sampleRate, channels, frames int, value float32) *mockSource {
	return newMockSource(sampleRate, channels, frames, func(int, int) float32 { return value })
}

func newSineSource(sampleRate, channels, frames int, frequency float64) *mockSource {
	return newMockSource(sampleRate, channels, frames, func(frame, _ int) float32 {
		t := float64(frame) / float64(sampleRate)
		return float32(math.Sin(2 * math.Pi * frequency * t))
	})
}

func (m *mockSource) SampleRate() int { return m.sampleRate }
func (m *mockSource) Channels() int   { return m.channels }
func (m *mockSource) BufSize() int    { return 4096 }

func (m *mockSource) Close() error {
	m.closed = true
	return nil
}

func (m *mockSource) ReadSamples(dst []float32) (int, error) {
	if m.generated >= m.frames {
		return 0, io.EOF
	}

	n := min(len(dst)/m.channels, m.frames-m.generated)
	for f := range n {
		for ch := range m.channels {
			dst[f*m.channels+ch] = m.waveform(m.generated+f, ch)
		}
	}
	m.generated += n

	if m.generated >= m.frames {
		return n * m.channels, io.EOF
	}
	return n * m.channels, nil
}

// drain reads src to the end and returns every interleaved sample.
func drain(src Source, chunk int) ([]float32, error) {
	buf := make([]float32, chunk)
	var out []float32
	for {
		n, err := src.ReadSamples(buf)
		out = append(out, buf[:n]...)
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return out, err
		}
	}
}
