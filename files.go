// SPDX-License-Identifier: EPL-2.0

package podsplice

import (
	"fmt"
	"os"

	"github.com/ik5/podsplice/audio"
	"github.com/ik5/podsplice/formats/aiff"
	"github.com/ik5/podsplice/formats/wav"
	"github.com/ik5/podsplice/merge"
)

// NewRegistry returns a registry with every clip format podsplice reads.
func NewRegistry() *audio.Registry {
	reg := audio.NewRegistry()
	reg.Register("wav", wav.Decoder{}, "wave")
	reg.Register("aiff", aiff.Decoder{}, "aif", "aifc")
	return reg
}

// passThrough lists extensions handed to the merge driver byte for byte:
// the tolerant WAV parser and the raw PCM fallback deal with them.
var passThrough = map[string]bool{
	"":     true,
	"wav":  true,
	"wave": true,
	"pcm":  true,
	"raw":  true,
}

// LoadFile reads the clip at path. Formats other than WAV are decoded through
// reg and re-encoded as PCM WAV at their own rate, channels and depth.
func LoadFile(reg *audio.Registry, path string) (merge.Input, error) {
	dec, ext, ok := reg.ForPath(path)
	if passThrough[ext] {
		b, err := os.ReadFile(path)
		if err != nil {
			return merge.Input{}, err
		}
		return merge.Bytes(b), nil
	}
	if !ok {
		return merge.Input{}, fmt.Errorf("%s: %w", path, ErrUnsupportedFormat)
	}

	f, err := os.Open(path)
	if err != nil {
		return merge.Input{}, err
	}
	defer f.Close()

	src, err := dec.Decode(f)
	if err != nil {
		return merge.Input{}, fmt.Errorf("%s: %w", path, err)
	}
	defer src.Close()

	clip, err := SourceClip(src, SourceFormat(src))
	if err != nil {
		return merge.Input{}, fmt.Errorf("%s: %w", path, err)
	}
	return merge.Bytes(wav.Encode(clip.Format, clip.Data)), nil
}

// MergeFiles loads paths in order and merges them with s.
func MergeFiles(s merge.Strategy, paths []string, cfg merge.Config) (*merge.Result, error) {
	reg := NewRegistry()

	inputs := make([]merge.Input, len(paths))
	for i, p := range paths {
		in, err := LoadFile(reg, p)
		if err != nil {
			return nil, fmt.Errorf("clip %d: %w", i, err)
		}
		inputs[i] = in
	}
	return merge.Merge(s, inputs, cfg)
}
