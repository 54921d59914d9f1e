// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"encoding/binary"
	"fmt"

	"github.com/ik5/podsplice/audio"
	"github.com/ik5/podsplice/utils"
)

type sampleCodec struct {
	size  int
	read  func(b []byte) float32
	write func(b []byte, x float32)
}

func codecFor(f Format) (sampleCodec, error) {
	switch {
	case f.Tag() == PCM && f.BitsPerSample() == 8:
		return sampleCodec{
			size:  1,
			read:  func(b []byte) float32 { return utils.Uint8ToFloat32(b[0]) },
			write: func(b []byte, x float32) { b[0] = utils.Float32ToUint8(x) },
		}, nil
	case f.Tag() == PCM && f.BitsPerSample() == 16:
		return sampleCodec{
			size: 2,
			read: func(b []byte) float32 {
				return utils.Int16ToFloat32(int16(binary.LittleEndian.Uint16(b)))
			},
			write: func(b []byte, x float32) {
				binary.LittleEndian.PutUint16(b, uint16(utils.Float32ToInt16(x)))
			},
		}, nil
	case f.Tag() == PCM && f.BitsPerSample() == 24:
		return sampleCodec{
			size:  3,
			read:  utils.Int24ToFloat32,
			write: utils.PutFloat32AsInt24,
		}, nil
	case f.Tag() == PCM && f.BitsPerSample() == 32:
		return sampleCodec{
			size: 4,
			read: func(b []byte) float32 {
				return utils.Int32ToFloat32(int32(binary.LittleEndian.Uint32(b)))
			},
			write: func(b []byte, x float32) {
				binary.LittleEndian.PutUint32(b, uint32(utils.Float32ToInt32(x)))
			},
		}, nil
	case f.Tag() == IEEEFloat && f.BitsPerSample() == 32:
		return sampleCodec{
			size:  4,
			read:  utils.ReadFloat32LE,
			write: func(b []byte, x float32) { utils.PutFloat32LE(b, utils.Clamp(x)) },
		}, nil
	}
	return sampleCodec{}, fmt.Errorf("%s: %w", f, ErrUnsupportedEncoding)
}

// Supported reports whether DecodeSamples and EncodeSamples handle f.
func Supported(f Format) bool {
	_, err := codecFor(f)
	return err == nil
}

// DecodeSamples converts the clip payload into de-interleaved float samples.
func DecodeSamples(c Clip) (*audio.Buffer, error) {
	codec, err := codecFor(c.Format)
	if err != nil {
		return nil, err
	}

	channels := c.Format.Channels()
	frames := c.Frames()
	buf := audio.NewBuffer(c.Format.SampleRate(), channels, frames)

	align := c.Format.BlockAlign()
	for i := range frames {
		frame := c.Data[i*align:]
		for ch := range channels {
			buf.Channels[ch][i] = codec.read(frame[ch*codec.size:])
		}
	}
	return buf, nil
}

// EncodeSamples interleaves buf into a PCM payload laid out as f. Samples are
// clamped to [-1, 1].
func EncodeSamples(buf *audio.Buffer, f Format) ([]byte, error) {
	codec, err := codecFor(f)
	if err != nil {
		return nil, err
	}
	if buf.NumChannels() != f.Channels() {
		return nil, fmt.Errorf("buffer has %d channels, format %s: %w",
			buf.NumChannels(), f, ErrUnsupportedEncoding)
	}

	channels := f.Channels()
	frames := buf.Frames()
	align := f.BlockAlign()
	out := make([]byte, frames*align)

	for i := range frames {
		frame := out[i*align:]
		for ch := range channels {
			codec.write(frame[ch*codec.size:], buf.Channels[ch][i])
		}
	}
	return out, nil
}
