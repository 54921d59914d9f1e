// SPDX-License-Identifier: EPL-2.0

package audio

import "errors"

var (
	ErrInvalidDstSize = errors.New("dst size must be multiple of channels")

	// ErrUnsupportedChannelMapping is returned when a conversion would need
	// channel mixing other than mono <-> stereo.
	ErrUnsupportedChannelMapping = errors.New("unsupported channel mapping")

	// ErrInvalidSampleRate is returned for a non-positive target rate.
	ErrInvalidSampleRate = errors.New("invalid sample rate")
)
