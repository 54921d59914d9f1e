// SPDX-License-Identifier: EPL-2.0

package merge

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/ik5/podsplice/formats/wav"
)

// Strategy turns a batch of decoded clips into one track.
type Strategy interface {
	Name() string
	Merge(clips []wav.Clip, cfg Config) (*Result, error)
}

// StrategyByName returns the strategy registered under name.
func StrategyByName(name string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "crossfade", "splice":
		return Crossfade{}, nil
	case "concat", "concatenate":
		return Concat{}, nil
	default:
		return nil, fmt.Errorf("%q: %w", name, ErrUnknownStrategy)
	}
}

// Merge resolves and decodes inputs, then hands them to s. Any failing input
// aborts the call.
func Merge(s Strategy, inputs []Input, cfg Config) (*Result, error) {
	if len(inputs) == 0 {
		return nil, ErrEmptyInput
	}
	cfg, err := cfg.resolved()
	if err != nil {
		return nil, err
	}

	clips, err := DecodeInputs(inputs, cfg)
	if err != nil {
		return nil, err
	}

	cfg.Diagnostics.WithFields(logrus.Fields{
		"strategy": s.Name(),
		"clips":    len(clips),
		"policy":   string(cfg.Policy),
	}).Debug("inputs decoded")

	return s.Merge(clips, cfg)
}

// DecodeInputs resolves and parses every input, up to cfg.DecodeWorkers at a
// time. The returned clips keep input order.
func DecodeInputs(inputs []Input, cfg Config) ([]wav.Clip, error) {
	if len(inputs) == 0 {
		return nil, ErrEmptyInput
	}
	cfg, err := cfg.resolved()
	if err != nil {
		return nil, err
	}

	clips := make([]wav.Clip, len(inputs))
	var g errgroup.Group
	g.SetLimit(cfg.DecodeWorkers)
	for i, in := range inputs {
		g.Go(func() error {
			c, err := decodeInput(in, cfg)
			if err != nil {
				return fmt.Errorf("clip %d: %w", i, err)
			}
			cfg.Diagnostics.WithFields(logrus.Fields{
				"clip":   i,
				"format": c.Format.String(),
				"frames": c.Frames(),
			}).Debug("clip decoded")
			clips[i] = c
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return clips, nil
}

func decodeInput(in Input, cfg Config) (wav.Clip, error) {
	b, err := in.Resolve()
	if err != nil {
		return wav.Clip{}, err
	}

	if !wav.IsWav(b) {
		if cfg.RawPCMFallback == nil {
			return wav.Clip{}, ErrNotWavAndNoFallback
		}
		f := cfg.RawPCMFallback.Format()
		cfg.Diagnostics.WithFields(logrus.Fields{
			"bytes":  len(b),
			"format": f.String(),
		}).Debug("wrapping headerless PCM")
		b = wav.Encode(f, b)
	}

	return wav.Decode(b, wav.Tolerate(cfg.TolerateTruncation))
}
