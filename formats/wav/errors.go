// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotWavFile is returned when the buffer lacks RIFF at offset 0 or
	// WAVE at offset 8.
	ErrNotWavFile = errors.New("not a WAV file")
	// ErrMissingChunk is returned when fmt or data cannot be located.
	ErrMissingChunk = errors.New("missing WAV chunk")
	// ErrUnsupportedEncoding is returned for sample encodings the codec
	// cannot turn into float samples.
	ErrUnsupportedEncoding = errors.New("unsupported WAV encoding")
	// ErrTruncatedData is returned when a chunk runs past the end of the
	// buffer and truncation is not tolerated.
	ErrTruncatedData = errors.New("truncated WAV data")
	ErrMalformedFmt  = errors.New("malformed fmt chunk")
)

// ChunkError names the chunks that could not be found. It unwraps to
// ErrMissingChunk.
type ChunkError struct {
	Chunks []string
	// Overrun is the id of the chunk whose declared size ran past the end
	// of the buffer and stopped the walk, if any.
	Overrun string

	// salvage is the tail after the overrunning chunk header, kept under
	// Tolerate for Decode to use when the scan finds no data either.
	salvage *Clip
}

func (e *ChunkError) Error() string {
	names := make([]string, len(e.Chunks))
	for i, c := range e.Chunks {
		names[i] = strings.TrimSpace(c)
	}
	msg := ErrMissingChunk.Error() + ": " + strings.Join(names, ", ")
	if e.Overrun != "" {
		msg += fmt.Sprintf(" (walk stopped at overrunning chunk %q)", e.Overrun)
	}
	return msg
}

func (e *ChunkError) Unwrap() error { return ErrMissingChunk }
