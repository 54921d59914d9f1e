// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"encoding/binary"
	"fmt"
	"io"
)

// Encode builds the canonical 44-byte header for f (RIFF, WAVE, a 16-byte
// fmt chunk, data) followed by payload verbatim. Byte rate and block align
// are derived from f.
func Encode(f Format, payload []byte) []byte {
	out := make([]byte, HeaderSize+len(payload))
	putHeader(out[:HeaderSize], f, len(payload))
	copy(out[HeaderSize:], payload)
	return out
}

func putHeader(header []byte, f Format, dataSize int) {
	// RIFF header (12 bytes)
	copy(header[0:4], "RIFF")
	binary.LittleEndian.PutUint32(header[4:8], uint32(HeaderSize-8+dataSize))
	copy(header[8:12], "WAVE")

	// fmt chunk (24 bytes)
	copy(header[12:16], chunkFmt)
	binary.LittleEndian.PutUint32(header[16:20], fmtBodySize)
	binary.LittleEndian.PutUint16(header[20:22], uint16(f.Tag()))
	binary.LittleEndian.PutUint16(header[22:24], uint16(f.Channels()))
	binary.LittleEndian.PutUint32(header[24:28], uint32(f.SampleRate()))
	binary.LittleEndian.PutUint32(header[28:32], uint32(f.ByteRate()))
	binary.LittleEndian.PutUint16(header[32:34], uint16(f.BlockAlign()))
	binary.LittleEndian.PutUint16(header[34:36], uint16(f.BitsPerSample()))

	// data chunk header (8 bytes)
	copy(header[36:40], chunkData)
	binary.LittleEndian.PutUint32(header[40:44], uint32(dataSize))
}

// WriteWAV16 writes a mono 16-bit PCM WAV at sampleRate.
func WriteWAV16(w io.Writer, sampleRate int, samples []int16) error {
	payload := make([]byte, len(samples)*2)
	for i, s := range samples {
		binary.LittleEndian.PutUint16(payload[i*2:], uint16(s))
	}

	if _, err := w.Write(Encode(PCM16(sampleRate, 1), payload)); err != nil {
		return fmt.Errorf("write wav: %w", err)
	}
	return nil
}
