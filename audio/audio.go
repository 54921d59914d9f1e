// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"io"
	"path/filepath"
	"slices"
	"strings"
	"sync"
)

// Source is a pull-based stream of interleaved float samples.
type Source interface {
	// SampleRate of the PCM stream in Hz.
	SampleRate() int
	// Channels count (1=mono, 2=stereo).
	Channels() int
	// ReadSamples fills dst with interleaved float32 samples in [-1,1].
	// Returns the number of float32 values written (not frames). When n == 0
	// with err == io.EOF, the stream is finished.
	ReadSamples(dst []float32) (n int, err error)

	BufSize() int

	// Close releases any resources.
	Close() error
}

// Decoder constructs a Source from an input reader.
type Decoder interface {
	Decode(r io.Reader) (Source, error)
}

// Registry maps clip format keys ("wav", "aiff") to decoders. It is safe for
// concurrent use.
type Registry struct {
	codecs  map[string]Decoder
	aliases map[string]string

	mtx *sync.Mutex
}

func NewRegistry() *Registry {
	return &Registry{
		codecs:  make(map[string]Decoder),
		aliases: make(map[string]string),
		mtx:     &sync.Mutex{},
	}
}

// Register adds d under format and under every extra alias
// (e.g. Register("aiff", d, "aif")).
func (r *Registry) Register(format string, d Decoder, aliases ...string) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	format = normalizeKey(format)
	r.codecs[format] = d
	for _, a := range aliases {
		r.aliases[normalizeKey(a)] = format
	}
}

func (r *Registry) Get(format string) (Decoder, bool) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	key := normalizeKey(format)
	if canonical, ok := r.aliases[key]; ok {
		key = canonical
	}
	d, ok := r.codecs[key]
	return d, ok
}

// ForPath picks a decoder from the file extension of path.
func (r *Registry) ForPath(path string) (Decoder, string, bool) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	d, ok := r.Get(ext)
	return d, normalizeKey(ext), ok
}

// Formats lists the registered format keys, sorted.
func (r *Registry) Formats() []string {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	keys := make([]string, 0, len(r.codecs))
	for k := range r.codecs {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

func normalizeKey(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
