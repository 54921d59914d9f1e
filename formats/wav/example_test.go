// SPDX-License-Identifier: EPL-2.0

package wav_test

import (
	"encoding/binary"
	"fmt"

	"github.com/ik5/podsplice/formats/wav"
)

// Example_roundTrip encodes a payload and parses it back.
func Example_roundTrip() {
	payload := make([]byte, 2400) // 50 ms of 16-bit mono at 24 kHz
	out := wav.Encode(wav.PCM16(24000, 1), payload)

	clip, err := wav.Decode(out)
	if err != nil {
		fmt.Printf("Decode error: %v\n", err)
		return
	}

	fmt.Println(clip.Format)
	fmt.Printf("%d bytes, %d frames, %.3f s\n", len(out), clip.Frames(), clip.Duration())
	// Output:
	// pcm 16-bit 24000 Hz 1ch
	// 2444 bytes, 1200 frames, 0.050 s
}

// Example_unknownDataSize reads a header written by a streaming encoder that
// never filled in the data size.
func Example_unknownDataSize() {
	out := wav.Encode(wav.PCM16(16000, 1), make([]byte, 320))
	binary.LittleEndian.PutUint32(out[40:44], 0xFFFFFFFF)

	clip, err := wav.Decode(out)
	if err != nil {
		fmt.Printf("Decode error: %v\n", err)
		return
	}
	fmt.Printf("%d frames\n", clip.Frames())
	// Output:
	// 160 frames
}
