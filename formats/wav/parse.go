// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
)

const (
	riffHeaderSize  = 12
	chunkHeaderSize = 8
	fmtBodySize     = 16

	// HeaderSize is the length of the canonical header written by Encode.
	HeaderSize = riffHeaderSize + chunkHeaderSize + fmtBodySize + chunkHeaderSize

	// sizeUnknown is written by streaming encoders that never patch the
	// data size.
	sizeUnknown = 0xFFFFFFFF

	chunkFmt  = "fmt "
	chunkData = "data"
)

type parseOptions struct {
	tolerate bool
}

// ParseOption changes how Parse, Scan and Decode treat damaged input.
type ParseOption func(*parseOptions)

// Tolerate clamps a data chunk that claims more bytes than the buffer holds;
// without it that fails with ErrTruncatedData. In Decode it also salvages the
// bytes after a truncated trailing chunk as audio once the format is known and
// the scan finds no data chunk. A data size of 0xFFFFFFFF is clamped either
// way.
func Tolerate(on bool) ParseOption {
	return func(o *parseOptions) { o.tolerate = on }
}

func newParseOptions(opts []ParseOption) parseOptions {
	var o parseOptions
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// IsWav reports whether b starts with a RIFF/WAVE header.
func IsWav(b []byte) bool {
	return len(b) >= riffHeaderSize &&
		string(b[0:4]) == "RIFF" &&
		string(b[8:12]) == "WAVE"
}

// Parse walks the RIFF chunks of b in order. When the walk cannot find fmt
// or data it returns a *ChunkError; callers that want the byte scan fallback
// call Scan next, or use Decode which does both.
func Parse(b []byte, opts ...ParseOption) (Clip, error) {
	if !IsWav(b) {
		return Clip{}, ErrNotWavFile
	}
	o := newParseOptions(opts)

	var (
		format   Format
		data     []byte
		haveFmt  bool
		haveData bool
		overrun  string
		tail     *Clip
	)

	offset := riffHeaderSize
walk:
	for offset+chunkHeaderSize <= len(b) {
		id := string(b[offset : offset+4])
		size := binary.LittleEndian.Uint32(b[offset+4 : offset+8])
		start := offset + chunkHeaderSize
		avail := len(b) - start

		switch {
		case id == chunkData:
			n, err := dataLength(size, avail, o.tolerate)
			if err != nil {
				return Clip{}, err
			}
			data = b[start : start+n]
			haveData = true
			size = uint32(n)

		case uint64(size) > uint64(avail):
			// Either a truncated trailing chunk or a header the walk misread
			// after losing alignment. Only the scan can tell them apart.
			overrun = id
			if haveFmt && !haveData && o.tolerate && avail > 0 {
				salvage := newClip(format, b[start:])
				tail = &salvage
			}
			break walk

		case id == chunkFmt:
			f, err := parseFmt(b[start : start+int(size)])
			if err != nil {
				return Clip{}, err
			}
			format = f
			haveFmt = true
		}

		if haveFmt && haveData {
			break
		}
		offset = start + int(size) + int(size&1)
	}

	if err := missing(haveFmt, haveData); err != nil {
		if ce, ok := err.(*ChunkError); ok {
			ce.Overrun = overrun
			ce.salvage = tail
		}
		return Clip{}, err
	}
	return newClip(format, data), nil
}

// Scan searches b for the ASCII tokens "fmt " and "data" regardless of chunk
// alignment. data is looked for after the fmt body first, then anywhere past
// the RIFF header.
func Scan(b []byte, opts ...ParseOption) (Clip, error) {
	if !IsWav(b) {
		return Clip{}, ErrNotWavFile
	}
	o := newParseOptions(opts)

	fmtAt := indexFrom(b, chunkFmt, riffHeaderSize)
	haveFmt := fmtAt >= 0 && fmtAt+chunkHeaderSize+fmtBodySize <= len(b)

	searchFrom := riffHeaderSize
	if haveFmt {
		size := int(binary.LittleEndian.Uint32(b[fmtAt+4 : fmtAt+8]))
		searchFrom = min(fmtAt+chunkHeaderSize+max(size, fmtBodySize), len(b))
	}

	dataAt := indexFrom(b, chunkData, searchFrom)
	if dataAt < 0 && searchFrom != riffHeaderSize {
		dataAt = indexFrom(b, chunkData, riffHeaderSize)
	}
	haveData := dataAt >= 0 && dataAt+chunkHeaderSize <= len(b)

	if err := missing(haveFmt, haveData); err != nil {
		return Clip{}, err
	}

	body := fmtAt + chunkHeaderSize
	format, err := parseFmt(b[body : body+fmtBodySize])
	if err != nil {
		return Clip{}, err
	}

	start := dataAt + chunkHeaderSize
	n, err := dataLength(binary.LittleEndian.Uint32(b[dataAt+4:start]), len(b)-start, o.tolerate)
	if err != nil {
		return Clip{}, err
	}
	return newClip(format, b[start:start+n]), nil
}

// Decode is the two-phase parse: the chunk walk, then the byte scan when the
// walk reports a missing chunk. Under Tolerate, a walk that stopped at a
// truncated trailing chunk after fmt falls back to the bytes left after that
// chunk's header when the scan finds no data chunk either.
func Decode(b []byte, opts ...ParseOption) (Clip, error) {
	c, _, err := decode(b, opts)
	return c, err
}

// decode reports whether the result came from the byte scan.
func decode(b []byte, opts []ParseOption) (Clip, bool, error) {
	c, err := Parse(b, opts...)
	var walkErr *ChunkError
	if !errors.As(err, &walkErr) {
		return c, false, err
	}

	c, err = Scan(b, opts...)
	if err != nil && walkErr.salvage != nil && errors.Is(err, ErrMissingChunk) {
		return *walkErr.salvage, false, nil
	}
	return c, true, err
}

func parseFmt(body []byte) (Format, error) {
	if len(body) < fmtBodySize {
		return Format{}, fmt.Errorf("fmt body is %d bytes: %w", len(body), ErrMalformedFmt)
	}
	// Stored byte rate and block align (body[8:14]) are ignored.
	f := NewFormat(
		Tag(binary.LittleEndian.Uint16(body[0:2])),
		int(binary.LittleEndian.Uint16(body[2:4])),
		int(binary.LittleEndian.Uint32(body[4:8])),
		int(binary.LittleEndian.Uint16(body[14:16])),
	)
	if err := f.Validate(); err != nil {
		return Format{}, err
	}
	return f, nil
}

func dataLength(declared uint32, avail int, tolerate bool) (int, error) {
	switch {
	case declared == sizeUnknown:
		return avail, nil
	case uint64(declared) > uint64(avail):
		if !tolerate {
			return 0, fmt.Errorf("data chunk declares %d bytes, %d available: %w",
				declared, avail, ErrTruncatedData)
		}
		return avail, nil
	default:
		return int(declared), nil
	}
}

func missing(haveFmt, haveData bool) error {
	var chunks []string
	if !haveFmt {
		chunks = append(chunks, chunkFmt)
	}
	if !haveData {
		chunks = append(chunks, chunkData)
	}
	if len(chunks) == 0 {
		return nil
	}
	return &ChunkError{Chunks: chunks}
}

func newClip(f Format, data []byte) Clip {
	if align := f.BlockAlign(); align > 0 {
		data = data[:len(data)-len(data)%align]
	}
	return Clip{Format: f, Data: data}
}

func indexFrom(b []byte, token string, from int) int {
	if from >= len(b) {
		return -1
	}
	i := bytes.Index(b[from:], []byte(token))
	if i < 0 {
		return -1
	}
	return from + i
}
