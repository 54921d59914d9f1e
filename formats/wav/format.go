// SPDX-License-Identifier: EPL-2.0

package wav

import "fmt"

// Tag is the fmt chunk audio format code.
type Tag uint16

const (
	PCM       Tag = 1
	IEEEFloat Tag = 3
)

func (t Tag) String() string {
	switch t {
	case PCM:
		return "pcm"
	case IEEEFloat:
		return "float"
	default:
		return fmt.Sprintf("tag(%d)", uint16(t))
	}
}

// Format describes the sample layout of a clip. Block align and byte rate are
// always derived from the other fields, never stored. Format is comparable
// with ==.
type Format struct {
	tag        Tag
	channels   int
	sampleRate int
	bits       int
}

func NewFormat(tag Tag, channels, sampleRate, bitsPerSample int) Format {
	return Format{
		tag:        tag,
		channels:   channels,
		sampleRate: sampleRate,
		bits:       bitsPerSample,
	}
}

// PCM16 is the layout produced by the crossfade path.
func PCM16(sampleRate, channels int) Format {
	return NewFormat(PCM, channels, sampleRate, 16)
}

func (f Format) Tag() Tag           { return f.tag }
func (f Format) Channels() int      { return f.channels }
func (f Format) SampleRate() int    { return f.sampleRate }
func (f Format) BitsPerSample() int { return f.bits }

// BlockAlign is the size of one frame in bytes.
func (f Format) BlockAlign() int { return f.channels * (f.bits / 8) }

func (f Format) ByteRate() int { return f.sampleRate * f.BlockAlign() }

// Validate reports ErrMalformedFmt for layouts no frame can be built from.
func (f Format) Validate() error {
	switch {
	case f.channels < 1 || f.channels > 0xFFFF:
		return fmt.Errorf("%d channels: %w", f.channels, ErrMalformedFmt)
	case f.sampleRate < 1:
		return fmt.Errorf("sample rate %d: %w", f.sampleRate, ErrMalformedFmt)
	case f.bits < 8 || f.bits%8 != 0:
		return fmt.Errorf("%d bits per sample: %w", f.bits, ErrMalformedFmt)
	}
	return nil
}

func (f Format) String() string {
	return fmt.Sprintf("%s %d-bit %d Hz %dch", f.tag, f.bits, f.sampleRate, f.channels)
}

// Clip is a parsed WAV container. Data holds whole frames only and may alias
// the buffer it was parsed from.
type Clip struct {
	Format Format
	Data   []byte
}

func (c Clip) Frames() int {
	align := c.Format.BlockAlign()
	if align == 0 {
		return 0
	}
	return len(c.Data) / align
}

// Duration in seconds.
func (c Clip) Duration() float64 {
	rate := c.Format.ByteRate()
	if rate == 0 {
		return 0
	}
	return float64(len(c.Data)) / float64(rate)
}
