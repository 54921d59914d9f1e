// SPDX-License-Identifier: EPL-2.0

package audio

import "fmt"

// Convert rebuilds buf at the given sample rate and channel count. Channel
// mapping is limited to mono <-> stereo; the rate change goes through the
// cubic Resampler. A buffer already in the target shape is returned as is.
func Convert(buf *Buffer, sampleRate, channels int) (*Buffer, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("%d Hz: %w", sampleRate, ErrInvalidSampleRate)
	}
	if buf.SampleRate == sampleRate && buf.NumChannels() == channels {
		return buf, nil
	}

	src := buf.Source()

	from := buf.NumChannels()
	switch {
	case from == channels:
	case from == 2 && channels == 1:
		src = NewMonoMixer(src)
	case from == 1 && channels == 2:
		src = NewUpmixer(src, 2)
	default:
		return nil, fmt.Errorf("%d -> %d channels: %w", from, channels, ErrUnsupportedChannelMapping)
	}

	if src.SampleRate() != sampleRate {
		src = NewResampler(src, sampleRate)
	}

	out, err := ReadAll(src)
	if err != nil {
		return nil, fmt.Errorf("converting %d Hz/%dch to %d Hz/%dch: %w",
			buf.SampleRate, from, sampleRate, channels, err)
	}
	return out, nil
}
