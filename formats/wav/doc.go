// SPDX-License-Identifier: EPL-2.0

// Package wav reads and writes RIFF/WAVE containers holding uncompressed PCM.
//
// # Parsing
//
// Decoding is two explicit phases. Parse walks the chunks in order
// (4-byte id, little-endian u32 size, payload, pad byte when the size is odd)
// looking for fmt and data. When it cannot find them it returns a *ChunkError
// wrapping ErrMissingChunk, and Scan searches the raw bytes for the "fmt " and
// "data" tokens instead. Decode runs both:
//
//	clip, err := wav.Decode(b, wav.Tolerate(true))
//	if errors.Is(err, wav.ErrNotWavFile) {
//	    // not RIFF/WAVE at all
//	}
//
// A data size of 0xFFFFFFFF, as written by streaming encoders, is always
// clamped to the bytes present. Other overruns are only accepted with
// Tolerate(true); otherwise they fail with ErrTruncatedData.
//
// # Formats
//
// Format is the (tag, channels, rate, bits) tuple. Block align and byte rate
// are methods, so an inconsistent header can never be written:
//
//	f := wav.PCM16(24000, 1)
//	fmt.Println(f.BlockAlign(), f.ByteRate()) // 2 48000
//
// # Samples
//
// DecodeSamples and EncodeSamples convert between a Clip payload and an
// audio.Buffer for 8-bit unsigned, 16/24/32-bit signed and 32-bit float PCM.
//
// # Writing
//
// Encode emits the canonical 44-byte header and the payload verbatim:
//
//	out := wav.Encode(clip.Format, clip.Data)
//
// WriteWAV16 is the shortcut for mono 16-bit samples.
package wav
