// SPDX-License-Identifier: EPL-2.0

package audio_test

import (
	"fmt"

	"github.com/ik5/podsplice/audio"
	"github.com/ik5/podsplice/internal/audiotest"
)

// Example_resampler converts a 44.1 kHz tone to 16 kHz.
func Example_resampler() {
	source := audiotest.NewSineSource(44100, 1, 44100, 440.0)
	resampler := audio.NewResampler(source, 16000)

	buf, err := audio.ReadAll(resampler)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	fmt.Printf("Output sample rate: %d Hz\n", buf.SampleRate)
	fmt.Printf("Duration: %.2f s\n", buf.Duration())
	// Output:
	// Output sample rate: 16000 Hz
	// Duration: 1.00 s
}

// Example_convert folds a stereo clip down to mono at a new rate.
func Example_convert() {
	stereo, _ := audio.ReadAll(audiotest.NewSineSource(48000, 2, 4800, 440.0))

	mono, err := audio.Convert(stereo, 24000, 1)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	fmt.Printf("%d Hz, %d channel(s)\n", mono.SampleRate, mono.NumChannels())
	// Output:
	// 24000 Hz, 1 channel(s)
}
