// SPDX-License-Identifier: EPL-2.0

// Package merge joins independently synthesized speech clips into one WAV
// track.
//
// Two strategies are provided. Crossfade overlaps neighbouring clips with an
// equal-power curve, declicks the track edges and normalizes the result; it
// works on 16-bit PCM. Concat appends clip payloads byte for byte with an
// optional silence gap and works on any PCM layout the batch agrees on.
//
// Before merging, every clip is compared with clip 0 under a Policy: Strict
// fails with a *MismatchError, Warn reports the differences and carries on,
// Coerce converts the differing clips.
//
// Inputs are resolved once at the boundary from bytes or text (base64, hex,
// data URLs) and decoded in parallel:
//
//	res, err := merge.Merge(merge.Crossfade{}, []merge.Input{
//		merge.Base64(host),
//		merge.Base64(guest),
//	}, merge.DefaultCrossfadeConfig())
//	if err != nil {
//		return err
//	}
//	out, _ := res.Encoded(merge.EncodingBase64)
package merge
