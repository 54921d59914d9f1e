// SPDX-License-Identifier: EPL-2.0

package merge

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyInput is returned when there is nothing to merge.
	ErrEmptyInput = errors.New("no clips to merge")
	// ErrFormatMismatch is wrapped by *MismatchError.
	ErrFormatMismatch = errors.New("format mismatch")
	// ErrNotWavAndNoFallback is returned for an input without a RIFF/WAVE
	// header when Config.RawPCMFallback is unset.
	ErrNotWavAndNoFallback = errors.New("input is not a WAV and no raw PCM fallback format is set")
	// ErrInvalidInput is returned when encoded text cannot be decoded.
	ErrInvalidInput     = errors.New("invalid input encoding")
	ErrUnknownPolicy    = errors.New("unknown mismatch policy")
	ErrUnknownEncoding  = errors.New("unknown output encoding")
	ErrUnknownStrategy  = errors.New("unknown merge strategy")
	ErrInvalidRawFormat = errors.New("invalid raw PCM fallback format")
)

// MismatchError is the strict policy failure. It names the first clip whose
// format differs from clip 0 and the field that differs.
type MismatchError struct {
	Mismatch
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("%s: %s", ErrFormatMismatch, e.Mismatch)
}

func (e *MismatchError) Unwrap() error { return ErrFormatMismatch }
