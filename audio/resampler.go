// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"fmt"
	"io"
)

// Resampler streams from src to a target sample rate using cubic
// interpolation. Works on interleaved samples and preserves channel count.
// A one-pole low-pass filter is applied to the input when downsampling.
type Resampler struct {
	src      Source
	dstRate  int
	ratio    float64 // source frames per output frame
	channels int

	// Four-frame window: frames[0] = t-1, frames[1] = t0, frames[2] = t+1,
	// frames[3] = t+2. Missing frames at the edges are padded on read.
	frames   [4][]float32
	hasFrame [4]bool

	// Fractional read position between frames[1] and frames[2].
	pos float64

	primed bool
	srcEOF bool
	done   bool

	useFilter   bool
	filterAlpha float32
	filterState []float32
	filterReady bool
}

func NewResampler(src Source, dstRate int) *Resampler {
	channels := src.Channels()
	ratio := float64(src.SampleRate()) / float64(dstRate)

	r := &Resampler{
		src:         src,
		dstRate:     dstRate,
		ratio:       ratio,
		channels:    channels,
		useFilter:   ratio > 1.0,
		filterAlpha: 0.5,
		filterState: make([]float32, channels),
	}
	for i := range r.frames {
		r.frames[i] = make([]float32, channels)
	}

	return r
}

func (r *Resampler) SampleRate() int { return r.dstRate }
func (r *Resampler) Channels() int   { return r.channels }
func (r *Resampler) BufSize() int    { return r.src.BufSize() }

func (r *Resampler) Close() error {
	if err := r.src.Close(); err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}

// pull reads one source frame into slot.
func (r *Resampler) pull(slot int) error {
	r.hasFrame[slot] = false
	if r.srcEOF {
		return nil
	}

	for {
		n, err := r.src.ReadSamples(r.frames[slot])
		if n == r.channels {
			r.hasFrame[slot] = true
			r.filter(r.frames[slot])
		}

		if errors.Is(err, io.EOF) {
			r.srcEOF = true
			return nil
		}
		if err != nil {
			return fmt.Errorf("%w", err)
		}
		if r.hasFrame[slot] {
			return nil
		}
	}
}

func (r *Resampler) filter(frame []float32) {
	if !r.useFilter {
		return
	}
	if !r.filterReady {
		// Seed with the first frame to avoid a warm-up transient.
		copy(r.filterState, frame)
		r.filterReady = true
		return
	}
	for c := range frame {
		// y[n] = alpha * x[n] + (1-alpha) * y[n-1]
		frame[c] = r.filterAlpha*frame[c] + (1-r.filterAlpha)*r.filterState[c]
		r.filterState[c] = frame[c]
	}
}

// shift rotates the window by one frame and reads the next one into the end.
func (r *Resampler) shift() error {
	r.frames[0], r.frames[1], r.frames[2], r.frames[3] = r.frames[1], r.frames[2], r.frames[3], r.frames[0]
	r.hasFrame[0], r.hasFrame[1], r.hasFrame[2] = r.hasFrame[1], r.hasFrame[2], r.hasFrame[3]
	return r.pull(3)
}

func (r *Resampler) prime() error {
	r.primed = true
	if err := r.pull(1); err != nil {
		return err
	}
	if !r.hasFrame[1] {
		r.done = true
		return nil
	}
	copy(r.frames[0], r.frames[1])
	r.hasFrame[0] = true

	if err := r.pull(2); err != nil {
		return err
	}
	return r.pull(3)
}

// ReadSamples produces samples at the target rate. len(dst) must be a
// multiple of the channel count.
func (r *Resampler) ReadSamples(dst []float32) (int, error) {
	if len(dst)%r.channels != 0 {
		return 0, ErrInvalidDstSize
	}
	if !r.primed {
		if err := r.prime(); err != nil {
			return 0, err
		}
	}
	if r.done {
		return 0, io.EOF
	}

	written := 0
	framesNeeded := len(dst) / r.channels

	for written < framesNeeded {
		for r.pos >= 1.0 {
			r.pos -= 1.0
			if err := r.shift(); err != nil {
				return written * r.channels, err
			}
			if !r.hasFrame[1] {
				r.done = true
				if written == 0 {
					return 0, io.EOF
				}
				return written * r.channels, io.EOF
			}
		}

		alpha := float32(r.pos)
		for c := range r.channels {
			y1 := r.frames[1][c]
			y0 := y1
			if r.hasFrame[0] {
				y0 = r.frames[0][c]
			}
			y2 := y1
			if r.hasFrame[2] {
				y2 = r.frames[2][c]
			}
			y3 := y2
			if r.hasFrame[3] {
				y3 = r.frames[3][c]
			}

			dst[written*r.channels+c] = cubicInterpolate(y0, y1, y2, y3, alpha)
		}

		written++
		r.pos += r.ratio
	}

	return written * r.channels, nil
}

// cubicInterpolate is a Catmull-Rom spline through y0..y3 evaluated at x in
// [0, 1] between y1 and y2.
func cubicInterpolate(y0, y1, y2, y3, x float32) float32 {
	a0 := -0.5*y0 + 1.5*y1 - 1.5*y2 + 0.5*y3
	a1 := y0 - 2.5*y1 + 2*y2 - 0.5*y3
	a2 := -0.5*y0 + 0.5*y2
	a3 := y1

	return a0*x*x*x + a1*x*x + a2*x + a3
}
