// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"encoding/binary"
	"fmt"

	goaudio "github.com/go-audio/audio"
)

// IntBuffer exposes a signed integer PCM clip (16, 24 or 32 bit) as a
// go-audio IntBuffer, the representation go-audio/wav and go-audio/aiff
// decode into.
func (c Clip) IntBuffer() (*goaudio.IntBuffer, error) {
	f := c.Format
	if f.Tag() != PCM || f.BitsPerSample() < 16 {
		return nil, fmt.Errorf("%s: %w", f, ErrUnsupportedEncoding)
	}

	size := f.BitsPerSample() / 8
	samples := len(c.Data) / size
	data := make([]int, samples)

	for i := range samples {
		b := c.Data[i*size:]
		switch size {
		case 2:
			data[i] = int(int16(binary.LittleEndian.Uint16(b)))
		case 3:
			v := int32(uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16)
			if v&0x800000 != 0 {
				v |= ^0xFFFFFF
			}
			data[i] = int(v)
		case 4:
			data[i] = int(int32(binary.LittleEndian.Uint32(b)))
		default:
			return nil, fmt.Errorf("%s: %w", f, ErrUnsupportedEncoding)
		}
	}

	return &goaudio.IntBuffer{
		Format: &goaudio.Format{
			NumChannels: f.Channels(),
			SampleRate:  f.SampleRate(),
		},
		Data:           data,
		SourceBitDepth: f.BitsPerSample(),
	}, nil
}
