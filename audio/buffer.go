// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"fmt"
	"io"
)

// Buffer holds a whole clip as de-interleaved float samples, one slice per
// channel. All channel slices have the same length.
type Buffer struct {
	SampleRate int
	Channels   [][]float32
}

// NewBuffer allocates a zeroed buffer of frames frames per channel.
func NewBuffer(sampleRate, channels, frames int) *Buffer {
	b := &Buffer{
		SampleRate: sampleRate,
		Channels:   make([][]float32, channels),
	}
	for ch := range b.Channels {
		b.Channels[ch] = make([]float32, frames)
	}
	return b
}

// Frames returns the per-channel sample count.
func (b *Buffer) Frames() int {
	if b == nil || len(b.Channels) == 0 {
		return 0
	}
	return len(b.Channels[0])
}

func (b *Buffer) NumChannels() int {
	if b == nil {
		return 0
	}
	return len(b.Channels)
}

// Duration in seconds.
func (b *Buffer) Duration() float64 {
	if b.SampleRate <= 0 {
		return 0
	}
	return float64(b.Frames()) / float64(b.SampleRate)
}

// Source returns a streaming view of b, so whole buffers can be fed through
// the Resampler and mixers.
func (b *Buffer) Source() Source {
	return &bufferSource{buf: b}
}

type bufferSource struct {
	buf *Buffer
	pos int
}

func (s *bufferSource) SampleRate() int { return s.buf.SampleRate }
func (s *bufferSource) Channels() int   { return s.buf.NumChannels() }
func (s *bufferSource) BufSize() int    { return 4096 }
func (s *bufferSource) Close() error    { return nil }

func (s *bufferSource) ReadSamples(dst []float32) (int, error) {
	channels := s.buf.NumChannels()
	if channels == 0 {
		return 0, io.EOF
	}
	if len(dst)%channels != 0 {
		return 0, ErrInvalidDstSize
	}

	total := s.buf.Frames()
	if s.pos >= total {
		return 0, io.EOF
	}

	frames := min(len(dst)/channels, total-s.pos)
	for f := range frames {
		base := f * channels
		for ch := range channels {
			dst[base+ch] = s.buf.Channels[ch][s.pos+f]
		}
	}
	s.pos += frames

	if s.pos >= total {
		return frames * channels, io.EOF
	}
	return frames * channels, nil
}

// ReadAll drains src into a Buffer.
func ReadAll(src Source) (*Buffer, error) {
	channels := src.Channels()
	if channels < 1 {
		return nil, fmt.Errorf("source reports %d channels: %w", channels, ErrInvalidDstSize)
	}

	size := src.BufSize()
	if size < channels {
		size = 4096
	}
	size -= size % channels
	if size == 0 {
		size = channels
	}

	out := &Buffer{
		SampleRate: src.SampleRate(),
		Channels:   make([][]float32, channels),
	}
	tmp := make([]float32, size)

	for {
		n, err := src.ReadSamples(tmp)
		frames := n / channels
		for f := range frames {
			base := f * channels
			for ch := range channels {
				out.Channels[ch] = append(out.Channels[ch], tmp[base+ch])
			}
		}

		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w", err)
		}
	}

	for ch := range out.Channels {
		if out.Channels[ch] == nil {
			out.Channels[ch] = []float32{}
		}
	}
	return out, nil
}
