// SPDX-License-Identifier: EPL-2.0

package podsplice

import (
	"github.com/ik5/podsplice/merge"
)

// SpliceDialogue crossfades base64 WAV segments in speaking order and returns
// the merged 16-bit WAV as base64. Segments must share one format.
func SpliceDialogue(base64Segments []string, crossfadeSeconds float64) (string, error) {
	inputs := make([]merge.Input, len(base64Segments))
	for i, s := range base64Segments {
		inputs[i] = merge.Base64(s)
	}

	cfg := merge.DefaultCrossfadeConfig()
	cfg.CrossfadeSeconds = crossfadeSeconds

	res, err := merge.Merge(merge.Crossfade{}, inputs, cfg)
	if err != nil {
		return "", err
	}
	return res.Encoded(merge.EncodingBase64)
}

// ConcatClips appends WAV clips with silenceMs of silence between neighbours.
func ConcatClips(clips [][]byte, silenceMs int) (*merge.Result, error) {
	inputs := make([]merge.Input, len(clips))
	for i, c := range clips {
		inputs[i] = merge.Bytes(c)
	}

	cfg := merge.DefaultConcatConfig()
	cfg.SilenceGapMs = silenceMs

	return merge.Merge(merge.Concat{}, inputs, cfg)
}
