// SPDX-License-Identifier: EPL-2.0

package podsplice

import "errors"

// ErrUnsupportedFormat is returned for a file whose extension has no decoder.
var ErrUnsupportedFormat = errors.New("unsupported clip format")
