// SPDX-License-Identifier: EPL-2.0

package merge

import (
	"encoding/base64"
	"encoding/hex"
	"fmt"

	"github.com/ik5/podsplice/formats/wav"
)

// Result is a merged track.
type Result struct {
	// WAV is the complete file: canonical 44-byte header and payload.
	WAV       []byte
	Format    wav.Format
	ClipCount int
	// DurationSeconds is payload bytes / byte rate.
	DurationSeconds float64
	// Warnings holds the mismatches tolerated under Warn or Coerce.
	Warnings []Mismatch
	// Encoding is the text form requested in Config.
	Encoding Encoding
}

func newResult(f wav.Format, payload []byte, clips int, notes []Mismatch, enc Encoding) *Result {
	r := &Result{
		WAV:       wav.Encode(f, payload),
		Format:    f,
		ClipCount: clips,
		Warnings:  notes,
		Encoding:  enc,
	}
	if rate := f.ByteRate(); rate > 0 {
		r.DurationSeconds = float64(len(payload)) / float64(rate)
	}
	return r
}

// Bytes is the size of the encoded file.
func (r *Result) Bytes() int { return len(r.WAV) }

// Encoded renders the file as text.
func (r *Result) Encoded(enc Encoding) (string, error) {
	switch enc {
	case EncodingBase64, "":
		return base64.StdEncoding.EncodeToString(r.WAV), nil
	case EncodingHex:
		return hex.EncodeToString(r.WAV), nil
	case EncodingBinary:
		return encodeLatin1(r.WAV), nil
	default:
		return "", fmt.Errorf("%q: %w", enc, ErrUnknownEncoding)
	}
}

// Data renders the file in the encoding the merge was configured with.
func (r *Result) Data() (string, error) {
	return r.Encoded(r.Encoding)
}
