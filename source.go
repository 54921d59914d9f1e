// SPDX-License-Identifier: EPL-2.0

package podsplice

import (
	"fmt"

	"github.com/ik5/podsplice/audio"
	"github.com/ik5/podsplice/formats/wav"
)

// bitDepther is implemented by sources that know the depth they were stored
// at, such as AIFF.
type bitDepther interface {
	BitDepth() int
}

// SourceFormat is the PCM layout a source is converted to by default: its own
// rate and channels, and its stored depth when it reports one (16-bit
// otherwise).
func SourceFormat(src audio.Source) wav.Format {
	bits := 16
	if d, ok := src.(bitDepther); ok && d.BitDepth() > 0 {
		bits = d.BitDepth()
	}
	return wav.NewFormat(wav.PCM, src.Channels(), src.SampleRate(), bits)
}

// SourceClip drains src and renders it in format to, resampling and mapping
// channels on the way when needed.
func SourceClip(src audio.Source, to wav.Format) (wav.Clip, error) {
	if err := to.Validate(); err != nil {
		return wav.Clip{}, err
	}

	buf, err := audio.ReadAll(src)
	if err != nil {
		return wav.Clip{}, fmt.Errorf("reading source: %w", err)
	}
	buf, err = audio.Convert(buf, to.SampleRate(), to.Channels())
	if err != nil {
		return wav.Clip{}, err
	}

	payload, err := wav.EncodeSamples(buf, to)
	if err != nil {
		return wav.Clip{}, err
	}
	return wav.Clip{Format: to, Data: payload}, nil
}
