// SPDX-License-Identifier: EPL-2.0

// Package podsplice assembles podcast audio from independently synthesized
// speech clips.
//
// Most callers need one of two functions. SpliceDialogue takes the base64
// WAV clips of a dialogue, overlaps them with 100 ms equal-power crossfades
// and returns the finished track as base64:
//
//	track, err := podsplice.SpliceDialogue(lines, merge.DefaultCrossfadeSeconds)
//
// ConcatClips appends clips end to end with a silence gap:
//
//	res, err := podsplice.ConcatClips(clips, 250)
//	os.WriteFile("episode.wav", res.WAV, 0o644)
//
// MergeFiles does the same for files on disk. WAV is read as is; AIFF clips
// are decoded and converted to PCM WAV first.
//
// # Packages
//
//   - merge: strategies, mismatch policies, input decoding, results
//   - formats/wav: tolerant RIFF/WAVE parser, encoder and sample codecs
//   - formats/aiff: AIFF decoding
//   - postproc: edge fades and peak normalization
//   - audio: float buffers, resampling and channel mapping
//
// Clips are held in memory; a merge is a single synchronous call with no
// state kept between calls.
package podsplice
