// SPDX-License-Identifier: EPL-2.0

// Package postproc finishes a merged track: an 8 ms edge fade against clicks
// at the very start and end, and peak normalization that only ever
// attenuates.
//
// EdgeFade and NormalizeGain work on the float audio.Buffer of the crossfade
// path. NormalizePCM works directly on the concatenated payload of the concat
// path, which never leaves its original encoding.
package postproc
