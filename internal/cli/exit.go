// SPDX-License-Identifier: EPL-2.0

package cli

import (
	"errors"
	"os"
	"strings"

	"github.com/ik5/podsplice"
	"github.com/ik5/podsplice/audio"
	"github.com/ik5/podsplice/formats/aiff"
	"github.com/ik5/podsplice/formats/wav"
	"github.com/ik5/podsplice/internal/config"
	"github.com/ik5/podsplice/merge"
)

// Exit codes.
const (
	ExitOK         = 0
	ExitGeneral    = 1
	ExitUsage      = 2
	ExitValidation = 4
	ExitMismatch   = 5
)

// ExitCode maps a command error to the process exit code.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK

	case isUsageError(err),
		errors.Is(err, config.ErrInvalidConfig),
		errors.Is(err, merge.ErrUnknownPolicy),
		errors.Is(err, merge.ErrUnknownEncoding),
		errors.Is(err, merge.ErrUnknownStrategy),
		errors.Is(err, merge.ErrInvalidRawFormat),
		errors.Is(err, ErrNoInputs),
		errors.Is(err, ErrRawFormatIncomplete),
		errors.Is(err, ErrOutputConflict):
		return ExitUsage

	case errors.Is(err, merge.ErrFormatMismatch):
		return ExitMismatch

	case errors.Is(err, merge.ErrEmptyInput),
		errors.Is(err, merge.ErrInvalidInput),
		errors.Is(err, merge.ErrNotWavAndNoFallback),
		errors.Is(err, wav.ErrNotWavFile),
		errors.Is(err, wav.ErrMissingChunk),
		errors.Is(err, wav.ErrUnsupportedEncoding),
		errors.Is(err, wav.ErrTruncatedData),
		errors.Is(err, wav.ErrMalformedFmt),
		errors.Is(err, aiff.ErrNotAiffFile),
		errors.Is(err, aiff.ErrUnsupportedBitDepth),
		errors.Is(err, aiff.ErrUnsupportedAiffLayout),
		errors.Is(err, audio.ErrUnsupportedChannelMapping),
		errors.Is(err, podsplice.ErrUnsupportedFormat),
		errors.Is(err, os.ErrNotExist),
		errors.Is(err, ErrVerifyFailed):
		return ExitValidation

	default:
		return ExitGeneral
	}
}

// cobraUsagePatterns are substrings of cobra's flag and argument errors,
// which are not typed.
var cobraUsagePatterns = []string{
	"unknown command",
	"unknown flag",
	"unknown shorthand",
	"flag needs an argument",
	"invalid argument",
	"accepts ",
	"requires at least",
	"requires at most",
}

func isUsageError(err error) bool {
	msg := err.Error()
	for _, p := range cobraUsagePatterns {
		if strings.Contains(msg, p) {
			return true
		}
	}
	return false
}
