// SPDX-License-Identifier: EPL-2.0

package merge

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/ik5/podsplice/formats/wav"
)

// Fields compared across a batch, in reporting order.
const (
	FieldTag        = "format tag"
	FieldChannels   = "channels"
	FieldSampleRate = "sample rate"
	FieldBits       = "bits per sample"
)

// Mismatch is one field of one clip disagreeing with clip 0.
type Mismatch struct {
	Index int
	Field string
	Want  int
	Got   int
}

func (m Mismatch) String() string {
	return fmt.Sprintf("clip %d: %s is %d, want %d", m.Index, m.Field, m.Got, m.Want)
}

func diff(index int, want, got wav.Format) []Mismatch {
	var out []Mismatch
	add := func(field string, w, g int) {
		if w != g {
			out = append(out, Mismatch{Index: index, Field: field, Want: w, Got: g})
		}
	}
	add(FieldTag, int(want.Tag()), int(got.Tag()))
	add(FieldChannels, want.Channels(), got.Channels())
	add(FieldSampleRate, want.SampleRate(), got.SampleRate())
	add(FieldBits, want.BitsPerSample(), got.BitsPerSample())
	return out
}

// CheckFormats compares every format against formats[0] and returns
// formats[0] as the canonical format. Under Strict the first difference is
// returned as a *MismatchError. Under Warn and Coerce every difference is
// returned as a note and the call succeeds.
func CheckFormats(formats []wav.Format, policy Policy) (wav.Format, []Mismatch, error) {
	if len(formats) == 0 {
		return wav.Format{}, nil, ErrEmptyInput
	}
	policy, err := ParsePolicy(string(policy))
	if err != nil {
		return wav.Format{}, nil, err
	}

	canonical := formats[0]
	var notes []Mismatch
	for i := 1; i < len(formats); i++ {
		d := diff(i, canonical, formats[i])
		if len(d) == 0 {
			continue
		}
		if policy == Strict {
			return wav.Format{}, nil, &MismatchError{Mismatch: d[0]}
		}
		notes = append(notes, d...)
	}
	return canonical, notes, nil
}

// checkBatch runs CheckFormats over clips, logs the notes and, under Coerce,
// converts every differing clip to the canonical format.
func checkBatch(clips []wav.Clip, cfg Config) (wav.Format, []Mismatch, []wav.Clip, error) {
	formats := make([]wav.Format, len(clips))
	for i, c := range clips {
		formats[i] = c.Format
	}

	canonical, notes, err := CheckFormats(formats, cfg.Policy)
	if err != nil {
		return wav.Format{}, nil, nil, err
	}
	for _, n := range notes {
		cfg.Diagnostics.WithFields(logrus.Fields{
			"clip":   n.Index,
			"field":  n.Field,
			"want":   n.Want,
			"got":    n.Got,
			"policy": string(cfg.Policy),
		}).Warn("format mismatch")
	}

	if cfg.Policy != Coerce || len(notes) == 0 {
		return canonical, notes, clips, nil
	}

	out := make([]wav.Clip, len(clips))
	for i, c := range clips {
		if c.Format == canonical {
			out[i] = c
			continue
		}
		converted, err := Conform(c, canonical)
		if err != nil {
			return wav.Format{}, nil, nil, fmt.Errorf("clip %d: %w", i, err)
		}
		cfg.Diagnostics.WithFields(logrus.Fields{
			"clip": i,
			"from": c.Format.String(),
			"to":   canonical.String(),
		}).Debug("clip converted")
		out[i] = converted
	}
	return canonical, notes, out, nil
}
