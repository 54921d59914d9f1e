// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"encoding/binary"
	"math"
)

// Chunk is one RIFF sub-chunk. Size is written as declared, which lets tests
// build headers that lie about their length.
type Chunk struct {
	ID   string
	Size uint32
	Body []byte
}

// NewChunk sizes the chunk from its body.
func NewChunk(id string, body []byte) Chunk {
	return Chunk{ID: id, Size: uint32(len(body)), Body: body}
}

// FmtChunk builds a 16-byte fmt body with consistent byte rate and block align.
func FmtChunk(tag, channels, sampleRate, bits int) Chunk {
	body := make([]byte, 16)
	align := channels * bits / 8
	binary.LittleEndian.PutUint16(body[0:2], uint16(tag))
	binary.LittleEndian.PutUint16(body[2:4], uint16(channels))
	binary.LittleEndian.PutUint32(body[4:8], uint32(sampleRate))
	binary.LittleEndian.PutUint32(body[8:12], uint32(sampleRate*align))
	binary.LittleEndian.PutUint16(body[12:14], uint16(align))
	binary.LittleEndian.PutUint16(body[14:16], uint16(bits))
	return NewChunk("fmt ", body)
}

// RIFF assembles a RIFF/WAVE buffer from chunks in order, padding odd bodies.
// The RIFF size field is computed from the result.
func RIFF(chunks ...Chunk) []byte {
	out := make([]byte, 12, 64)
	copy(out[0:4], "RIFF")
	copy(out[8:12], "WAVE")

	for _, c := range chunks {
		hdr := make([]byte, 8)
		copy(hdr[0:4], c.ID)
		binary.LittleEndian.PutUint32(hdr[4:8], c.Size)
		out = append(out, hdr...)
		out = append(out, c.Body...)
		if len(c.Body)%2 == 1 && uint32(len(c.Body)) == c.Size {
			out = append(out, 0)
		}
	}

	binary.LittleEndian.PutUint32(out[4:8], uint32(len(out)-8))
	return out
}

// WAV16 is a canonical mono or interleaved 16-bit PCM file.
func WAV16(sampleRate, channels int, samples []int16) []byte {
	return RIFF(FmtChunk(1, channels, sampleRate, 16), NewChunk("data", PCM16Bytes(samples)))
}

// PCM16Bytes serializes samples little-endian.
func PCM16Bytes(samples []int16) []byte {
	out := make([]byte, len(samples)*2)
	for i, s := range samples {
		binary.LittleEndian.PutUint16(out[i*2:], uint16(s))
	}
	return out
}

// Int16s reads little-endian 16-bit samples.
func Int16s(b []byte) []int16 {
	out := make([]int16, len(b)/2)
	for i := range out {
		out[i] = int16(binary.LittleEndian.Uint16(b[i*2:]))
	}
	return out
}

// SineInt16 is frames mono samples of a sine at amplitude (0..1 of full scale).
func SineInt16(sampleRate, frames int, frequency, amplitude float64) []int16 {
	out := make([]int16, frames)
	for i := range out {
		out[i] = int16(math.Round(Sine(i, sampleRate, frequency, amplitude) * 32767))
	}
	return out
}

// Float32Bytes serializes IEEE float samples little-endian.
func Float32Bytes(samples []float32) []byte {
	out := make([]byte, len(samples)*4)
	for i, s := range samples {
		binary.LittleEndian.PutUint32(out[i*4:], math.Float32bits(s))
	}
	return out
}
