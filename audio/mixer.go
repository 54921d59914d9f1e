// SPDX-License-Identifier: EPL-2.0

package audio

import "fmt"

// MonoMixer folds a multi-channel source down to mono by averaging channels.
type MonoMixer struct {
	src Source
	tmp []float32
}

func NewMonoMixer(src Source) *MonoMixer {
	return &MonoMixer{
		src: src,
		tmp: make([]float32, 4096),
	}
}

func (m *MonoMixer) SampleRate() int { return m.src.SampleRate() }
func (m *MonoMixer) Channels() int   { return 1 }
func (m *MonoMixer) BufSize() int    { return m.src.BufSize() }

func (m *MonoMixer) Close() error {
	if err := m.src.Close(); err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}

func (m *MonoMixer) ReadSamples(dst []float32) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}

	channels := m.src.Channels()
	if channels == 1 {
		return m.src.ReadSamples(dst)
	}

	needed := len(dst) * channels
	if cap(m.tmp) < needed {
		m.tmp = make([]float32, max(needed, 8192))
	}
	m.tmp = m.tmp[:needed]

	n, err := m.src.ReadSamples(m.tmp)
	if n == 0 {
		return 0, err
	}
	frames := n / channels

	switch channels {
	case 2:
		for f := range frames {
			idx := f << 1
			dst[f] = (m.tmp[idx] + m.tmp[idx+1]) * 0.5
		}
	default:
		inv := float32(1.0) / float32(channels)
		for f := range frames {
			sum := float32(0)
			base := f * channels
			for c := range channels {
				sum += m.tmp[base+c]
			}
			dst[f] = sum * inv
		}
	}

	return frames, err
}

// Upmixer duplicates a mono source into every output channel.
type Upmixer struct {
	src      Source
	channels int
	tmp      []float32
}

func NewUpmixer(src Source, channels int) *Upmixer {
	return &Upmixer{
		src:      src,
		channels: channels,
		tmp:      make([]float32, 4096),
	}
}

func (u *Upmixer) SampleRate() int { return u.src.SampleRate() }
func (u *Upmixer) Channels() int   { return u.channels }
func (u *Upmixer) BufSize() int    { return u.src.BufSize() * u.channels }

func (u *Upmixer) Close() error {
	if err := u.src.Close(); err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}

func (u *Upmixer) ReadSamples(dst []float32) (int, error) {
	if len(dst)%u.channels != 0 {
		return 0, ErrInvalidDstSize
	}
	frames := len(dst) / u.channels
	if frames == 0 {
		return 0, nil
	}

	if cap(u.tmp) < frames {
		u.tmp = make([]float32, frames)
	}
	u.tmp = u.tmp[:frames]

	n, err := u.src.ReadSamples(u.tmp)
	for f := range n {
		base := f * u.channels
		for c := range u.channels {
			dst[base+c] = u.tmp[f]
		}
	}

	return n * u.channels, err
}
