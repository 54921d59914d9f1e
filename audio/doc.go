// SPDX-License-Identifier: EPL-2.0

// Package audio provides the sample-level building blocks the merge engine
// works on.
//
// # Source Interface
//
// Source is a pull-based stream of interleaved float32 samples in [-1, 1]:
//
//	type Source interface {
//	    SampleRate() int
//	    Channels() int
//	    ReadSamples(dst []float32) (int, error)
//	    BufSize() int
//	    Close() error
//	}
//
// Decoders, the Resampler and the channel mixers all implement it, so they
// chain freely.
//
// # Buffers
//
// A Buffer holds a whole clip de-interleaved, one slice per channel. This is
// the shape crossfading and post-processing operate on:
//
//	buf, err := audio.ReadAll(src)
//	fmt.Println(buf.Frames(), buf.Duration())
//
// Buffer.Source turns a Buffer back into a stream.
//
// # Conversion
//
// Convert changes the rate and/or channel layout of a Buffer. Rate changes
// use cubic interpolation; channel mapping is mono <-> stereo only:
//
//	out, err := audio.Convert(buf, 24000, 1)
//
// # Format Registry
//
// The registry maps container names to decoders:
//
//	registry := audio.NewRegistry()
//	registry.Register("wav", wav.Decoder{})
//	registry.Register("aiff", aiff.Decoder{}, "aif")
//	decoder, ext, ok := registry.ForPath("intro.aif")
//
// # Error Handling
//
// ReadSamples returns io.EOF when the stream is finished. It may return the
// final samples together with io.EOF, so always consume n before checking err.
package audio
