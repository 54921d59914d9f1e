// SPDX-License-Identifier: EPL-2.0

package merge

import (
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/ik5/podsplice/formats/wav"
)

// RealtimeSampleRate is the rate of the 16-bit mono PCM streamed by the
// realtime voice API.
const RealtimeSampleRate = 24800

// wavBase64Prefix is what "RIFF" looks like in standard base64.
const wavBase64Prefix = "UklGR"

// WrapPCM16 puts a canonical header in front of 16-bit PCM.
func WrapPCM16(pcm []byte, sampleRate, channels int) []byte {
	return wav.Encode(wav.PCM16(sampleRate, channels), pcm)
}

// FinalizeBase64 turns the base64 chunks of a realtime session into a single
// base64 WAV. A joined result that already starts with a RIFF header is
// returned as is. Otherwise each chunk is decoded, the PCM concatenated and
// wrapped as 16-bit mono at sampleRate (RealtimeSampleRate when 0).
func FinalizeBase64(chunks []string, sampleRate int) (string, error) {
	if len(chunks) == 0 {
		return "", ErrEmptyInput
	}
	joined := strings.Join(chunks, "")
	if strings.HasPrefix(joined, wavBase64Prefix) {
		return joined, nil
	}
	if sampleRate <= 0 {
		sampleRate = RealtimeSampleRate
	}

	var pcm []byte
	for i, c := range chunks {
		b, err := decodeBase64(c)
		if err != nil {
			return "", fmt.Errorf("chunk %d: %w", i, err)
		}
		pcm = append(pcm, b...)
	}
	return base64.StdEncoding.EncodeToString(WrapPCM16(pcm, sampleRate, 1)), nil
}
