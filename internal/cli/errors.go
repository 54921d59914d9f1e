// SPDX-License-Identifier: EPL-2.0

package cli

import "errors"

var (
	// ErrNoInputs is returned when neither files nor --stdin were given.
	ErrNoInputs = errors.New("no input clips: pass files or --stdin")
	// ErrRawFormatIncomplete is returned when only some --raw-* flags are set.
	ErrRawFormatIncomplete = errors.New("--raw-rate, --raw-channels and --raw-bits must be set together")
	// ErrOutputConflict is returned for --output combined with --output-dir.
	ErrOutputConflict = errors.New("--output and --output-dir are mutually exclusive")
	// ErrVerifyFailed is returned by inspect --verify when go-audio disagrees.
	ErrVerifyFailed = errors.New("verification against go-audio/wav failed")
)
