// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"fmt"
	"io"

	"github.com/ik5/podsplice/audio"
)

type clipSource struct {
	clip  Clip
	codec sampleCodec
	pos   int // byte offset into clip.Data
}

func (s *clipSource) SampleRate() int { return s.clip.Format.SampleRate() }
func (s *clipSource) Channels() int   { return s.clip.Format.Channels() }
func (s *clipSource) BufSize() int    { return 4096 }
func (s *clipSource) Close() error    { return nil }

func (s *clipSource) ReadSamples(dst []float32) (int, error) {
	channels := s.Channels()
	if len(dst)%channels != 0 {
		return 0, audio.ErrInvalidDstSize
	}

	align := s.clip.Format.BlockAlign()
	remaining := (len(s.clip.Data) - s.pos) / align
	if remaining == 0 {
		return 0, io.EOF
	}

	frames := min(len(dst)/channels, remaining)
	for f := range frames {
		frame := s.clip.Data[s.pos+f*align:]
		for ch := range channels {
			dst[f*channels+ch] = s.codec.read(frame[ch*s.codec.size:])
		}
	}
	s.pos += frames * align

	if frames == remaining {
		return frames * channels, io.EOF
	}
	return frames * channels, nil
}

// Decoder reads a whole WAV stream and exposes it as an audio.Source. Damaged
// headers are handled the way Decode does with truncation tolerated.
type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	clip, err := Decode(b, Tolerate(true))
	if err != nil {
		return nil, err
	}

	codec, err := codecFor(clip.Format)
	if err != nil {
		return nil, err
	}
	return &clipSource{clip: clip, codec: codec}, nil
}
