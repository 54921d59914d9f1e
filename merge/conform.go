// SPDX-License-Identifier: EPL-2.0

package merge

import (
	"github.com/ik5/podsplice/audio"
	"github.com/ik5/podsplice/formats/wav"
)

// Conform re-renders c in format to: sample rate through the cubic
// resampler, mono <-> stereo by averaging or duplication, tag and depth
// through the float sample codecs.
func Conform(c wav.Clip, to wav.Format) (wav.Clip, error) {
	if c.Format == to {
		return c, nil
	}

	buf, err := wav.DecodeSamples(c)
	if err != nil {
		return wav.Clip{}, err
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
