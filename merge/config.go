// SPDX-License-Identifier: EPL-2.0

package merge

import (
	"fmt"
	"io"
	"math"
	"runtime"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/ik5/podsplice/formats/wav"
)

const (
	DefaultCrossfadeSeconds = 0.1
	// CrossfadeTargetPeak is the normalization target of the crossfade path.
	CrossfadeTargetPeak = 0.92
	// ConcatTargetPeak is the normalization target of the concat path.
	ConcatTargetPeak = 0.98
)

// Policy decides what happens when clips disagree on format.
type Policy string

const (
	// Strict fails on the first difference.
	Strict Policy = "strict"
	// Warn keeps clip 0's format and reports the differences.
	Warn Policy = "warn"
	// Coerce converts every differing clip to clip 0's format.
	Coerce Policy = "coerce"
)

func ParsePolicy(s string) (Policy, error) {
	switch p := Policy(strings.ToLower(strings.TrimSpace(s))); p {
	case Strict, Warn, Coerce:
		return p, nil
	case "":
		return Strict, nil
	default:
		return "", fmt.Errorf("%q: %w", s, ErrUnknownPolicy)
	}
}

// Encoding is the text form of Result.Encoded and of encoded inputs.
type Encoding string

const (
	EncodingBase64 Encoding = "base64"
	EncodingHex    Encoding = "hex"
	// EncodingBinary maps every byte to the code point of the same value
	// (latin1).
	EncodingBinary Encoding = "binary"
)

func ParseEncoding(s string) (Encoding, error) {
	switch e := Encoding(strings.ToLower(strings.TrimSpace(s))); e {
	case EncodingBase64, EncodingHex, EncodingBinary:
		return e, nil
	case "":
		return EncodingBase64, nil
	default:
		return "", fmt.Errorf("%q: %w", s, ErrUnknownEncoding)
	}
}

// RawFormat describes headerless PCM input. Tag may be left zero: 32-bit
// input is then taken as IEEE float and everything else as integer PCM.
type RawFormat struct {
	SampleRate    int
	Channels      int
	BitsPerSample int
	Tag           wav.Tag
}

func (r RawFormat) Format() wav.Format {
	tag := r.Tag
	if tag == 0 {
		tag = wav.PCM
		if r.BitsPerSample == 32 {
			tag = wav.IEEEFloat
		}
	}
	return wav.NewFormat(tag, r.Channels, r.SampleRate, r.BitsPerSample)
}

// Config controls a single merge call. The zero value is usable: strict
// policy, base64 output, no crossfade, no gap.
type Config struct {
	// CrossfadeSeconds is the overlap at each junction of the crossfade
	// path. Negative values count as 0.
	CrossfadeSeconds float64
	// SilenceGapMs is the silence inserted between clips on the concat
	// path. Negative values count as 0.
	SilenceGapMs int
	// Normalize enables peak normalization on the concat path. The
	// crossfade path always normalizes.
	Normalize bool
	// TargetPeak overrides the path's normalization target when > 0.
	TargetPeak float64
	Policy     Policy
	Encoding   Encoding
	// TolerateTruncation clamps overlong data chunks and salvages
	// truncated trailing chunks instead of failing.
	TolerateTruncation bool
	// RawPCMFallback, when set, wraps inputs lacking a RIFF/WAVE header.
	RawPCMFallback *RawFormat
	// DecodeWorkers bounds parallel input decoding; <= 0 means NumCPU.
	DecodeWorkers int
	// Diagnostics receives decode and mismatch notes. nil discards them.
	Diagnostics logrus.FieldLogger
}

// DefaultCrossfadeConfig is the configuration of spliced dialogue: 100 ms
// crossfades over TTS output that may carry a streaming header.
func DefaultCrossfadeConfig() Config {
	return Config{
		CrossfadeSeconds:   DefaultCrossfadeSeconds,
		Policy:             Strict,
		Encoding:           EncodingBase64,
		TolerateTruncation: true,
	}
}

// DefaultConcatConfig is the configuration of clip assembly.
func DefaultConcatConfig() Config {
	return Config{
		Policy:   Strict,
		Encoding: EncodingBase64,
	}
}

var discard = func() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}()

// resolved fills defaults and validates enumerations.
func (c Config) resolved() (Config, error) {
	var err error
	if c.Policy, err = ParsePolicy(string(c.Policy)); err != nil {
		return c, err
	}
	if c.Encoding, err = ParseEncoding(string(c.Encoding)); err != nil {
		return c, err
	}
	if c.RawPCMFallback != nil {
		if err := c.RawPCMFallback.Format().Validate(); err != nil {
			return c, fmt.Errorf("%w: %w", ErrInvalidRawFormat, err)
		}
	}

	if math.IsNaN(c.CrossfadeSeconds) || c.CrossfadeSeconds < 0 {
		c.CrossfadeSeconds = 0
	}
	c.SilenceGapMs = max(0, c.SilenceGapMs)
	if c.DecodeWorkers <= 0 {
		c.DecodeWorkers = runtime.NumCPU()
	}
	if c.Diagnostics == nil {
		c.Diagnostics = discard
	}
	return c, nil
}

func (c Config) targetPeak(pathDefault float64) float64 {
	if c.TargetPeak > 0 {
		return c.TargetPeak
	}
	return pathDefault
}
