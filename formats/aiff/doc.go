// SPDX-License-Identifier: EPL-2.0

// Package aiff decodes uncompressed AIFF clips into an audio.Source using
// github.com/go-audio/aiff.
//
// Some TTS engines hand back AIFF rather than WAV. The merge CLI routes
// .aiff and .aif inputs through this decoder and re-encodes them as WAV at
// the file's own bit depth before merging:
//
//	registry := audio.NewRegistry()
//	registry.Register("aiff", aiff.Decoder{}, "aif")
//
//	dec, _, _ := registry.ForPath("line-03.aif")
//	src, err := dec.Decode(f)
//
// Supported depths are 8, 16, 24 and 32 bit. Samples are normalized to
// [-1, 1) by the full-scale value of the depth. AIFF-C compressed variants are
// not supported.
package aiff
