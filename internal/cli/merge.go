// SPDX-License-Identifier: EPL-2.0

package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ik5/podsplice"
	"github.com/ik5/podsplice/internal/config"
	"github.com/ik5/podsplice/internal/metrics"
	"github.com/ik5/podsplice/merge"
)

type mergeOptions struct {
	strategy    string
	crossfade   float64
	gapMs       int
	normalize   bool
	targetPeak  float64
	policy      string
	encoding    string
	stdin       bool
	rawRate     int
	rawChannels int
	rawBits     int
	rawFloat    bool
	tolerate    bool
	output      string
	outputDir   string
	metricsFile string
}

// MergeCmd builds "podsplice merge".
func MergeCmd(env *Env, global *globalOptions) *cobra.Command {
	var opts mergeOptions

	cmd := &cobra.Command{
		Use:   "merge [files...]",
		Short: "Merge clips into one WAV track",
		Long: `Merge clips, in the order given, into one WAV track.

The crossfade strategy overlaps neighbouring 16-bit clips with an equal-power
curve. The concat strategy appends clips with an optional silence gap.

WAV, AIFF and headerless PCM files are accepted. With --stdin every non-empty
line is one clip as base64, hex or a data URL.`,
		Example: `  podsplice merge host.wav guest.wav -o episode.wav
  podsplice merge --strategy concat --gap-ms 250 --normalize intro.wav *.wav
  cat clips.txt | podsplice merge --stdin -o - --encoding base64`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(env, global)
			if err != nil {
				return err
			}
			if err := applyMergeFlags(cmd, cfg, &opts); err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			return runMerge(env, cfg, &opts, global.verbose, args)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.strategy, "strategy", "crossfade", "Merge strategy: crossfade, concat")
	f.Float64Var(&opts.crossfade, "crossfade", merge.DefaultCrossfadeSeconds, "Crossfade length in seconds")
	f.IntVar(&opts.gapMs, "gap-ms", 0, "Silence between clips in milliseconds (concat)")
	f.BoolVar(&opts.normalize, "normalize", false, "Peak-normalize the track (concat)")
	f.Float64Var(&opts.targetPeak, "target-peak", 0, "Normalization target in (0, 1]; 0 uses the strategy default")
	f.StringVar(&opts.policy, "policy", "strict", "Format mismatch policy: strict, warn, coerce")
	f.StringVar(&opts.encoding, "encoding", "base64", "Encoding for --output -: base64, hex, or binary for raw WAV bytes")
	f.BoolVar(&opts.stdin, "stdin", false, "Read newline separated encoded clips from stdin")
	f.IntVar(&opts.rawRate, "raw-rate", 0, "Sample rate of headerless PCM clips")
	f.IntVar(&opts.rawChannels, "raw-channels", 0, "Channels of headerless PCM clips")
	f.IntVar(&opts.rawBits, "raw-bits", 0, "Bits per sample of headerless PCM clips")
	f.BoolVar(&opts.rawFloat, "raw-float", false, "Headerless PCM clips are IEEE float")
	f.BoolVar(&opts.tolerate, "tolerate-truncation", false, "Salvage clips whose data chunk runs past the end")
	f.StringVarP(&opts.output, "output", "o", "", `Output file; "-" writes the encoded track to stdout`)
	f.StringVar(&opts.outputDir, "output-dir", "", "Directory for a generated <prefix>-<uuid>.wav name")
	f.StringVar(&opts.metricsFile, "metrics-file", "", "Write Prometheus metrics to this file")

	return cmd
}

// applyMergeFlags lets flags the user actually set win over the file and the
// environment.
func applyMergeFlags(cmd *cobra.Command, cfg *config.Config, opts *mergeOptions) error {
	f := cmd.Flags()
	m := &cfg.Merge

	if f.Changed("strategy") {
		m.Strategy = opts.strategy
	}
	if f.Changed("crossfade") {
		m.CrossfadeSeconds = opts.crossfade
	}
	if f.Changed("gap-ms") {
		m.SilenceGapMs = opts.gapMs
	}
	if f.Changed("normalize") {
		m.Normalize = opts.normalize
	}
	if f.Changed("target-peak") {
		m.TargetPeak = opts.targetPeak
	}
	if f.Changed("policy") {
		m.Policy = opts.policy
	}
	if f.Changed("tolerate-truncation") {
		m.TolerateTruncation = &opts.tolerate
	}
	if f.Changed("encoding") {
		cfg.Output.Encoding = opts.encoding
	}
	if f.Changed("output-dir") {
		cfg.Output.Dir = opts.outputDir
	}
	if f.Changed("metrics-file") {
		cfg.Metrics.Textfile = opts.metricsFile
	}
	if opts.output != "" && f.Changed("output-dir") {
		return ErrOutputConflict
	}

	raw := []bool{f.Changed("raw-rate"), f.Changed("raw-channels"), f.Changed("raw-bits")}
	switch {
	case raw[0] && raw[1] && raw[2]:
		m.RawPCM = &config.RawPCMConfig{
			SampleRate:    opts.rawRate,
			Channels:      opts.rawChannels,
			BitsPerSample: opts.rawBits,
			Float:         opts.rawFloat,
		}
	case raw[0] || raw[1] || raw[2]:
		return ErrRawFormatIncomplete
	}
	return nil
}

func runMerge(env *Env, cfg *config.Config, opts *mergeOptions, verbose bool, args []string) error {
	logger := newLogger(cfg.Logging, verbose, env.Stderr)

	inputs, err := collectInputs(env, opts.stdin, args)
	if err != nil {
		return err
	}

	strategy, mcfg, err := cfg.Merge.Build()
	if err != nil {
		return err
	}
	mcfg.Diagnostics = logger
	if mcfg.Encoding, err = merge.ParseEncoding(cfg.Output.Encoding); err != nil {
		return err
	}

	m := metrics.New()
	start := env.Now()
	res, mergeErr := merge.Merge(strategy, inputs, mcfg)
	m.ObserveMerge(strategy.Name(), start, res, mergeErr)

	if cfg.Metrics.Textfile != "" {
		if err := m.WriteTextfile(cfg.Metrics.Textfile); err != nil {
			logger.WithError(err).Warn("metrics not written")
		}
	}
	if mergeErr != nil {
		return mergeErr
	}

	dest, err := writeResult(env, cfg.Output, opts.output, res)
	if err != nil {
		return err
	}

	logger.WithFields(logrus.Fields{
		"strategy": strategy.Name(),
		"clips":    res.ClipCount,
		"seconds":  fmt.Sprintf("%.3f", res.DurationSeconds),
		"format":   res.Format.String(),
		"output":   dest,
	}).Info("merged")
	return nil
}

func collectInputs(env *Env, useStdin bool, paths []string) ([]merge.Input, error) {
	var inputs []merge.Input

	if len(paths) > 0 {
		reg := podsplice.NewRegistry()
		for i, p := range paths {
			in, err := podsplice.LoadFile(reg, p)
			if err != nil {
				return nil, fmt.Errorf("clip %d: %w", i, err)
			}
			inputs = append(inputs, in)
		}
	}

	if useStdin {
		lines, err := readLines(env.Stdin)
		if err != nil {
			return nil, fmt.Errorf("reading stdin: %w", err)
		}
		for _, line := range lines {
			inputs = append(inputs, merge.Detect(line))
		}
	}

	if len(inputs) == 0 {
		return nil, ErrNoInputs
	}
	return inputs, nil
}

func readLines(r io.Reader) ([]string, error) {
	var lines []string
	sc := bufio.NewScanner(r)
	// Encoded clips are long single lines.
	sc.Buffer(make([]byte, 0, 64*1024), 256*1024*1024)
	for sc.Scan() {
		if line := strings.TrimSpace(sc.Text()); line != "" {
			lines = append(lines, line)
		}
	}
	return lines, sc.Err()
}

// writeResult stores the track and returns where it went.
func writeResult(env *Env, out config.OutputConfig, output string, res *merge.Result) (string, error) {
	if output == "-" && res.Encoding == merge.EncodingBinary {
		if _, err := env.Stdout.Write(res.WAV); err != nil {
			return "", fmt.Errorf("writing stdout: %w", err)
		}
		return "stdout", nil
	}
	if output == "-" {
		text, err := res.Data()
		if err != nil {
			return "", err
		}
		if _, err := fmt.Fprintln(env.Stdout, text); err != nil {
			return "", fmt.Errorf("writing stdout: %w", err)
		}
		return "stdout", nil
	}

	path := output
	if path == "" {
		if err := os.MkdirAll(out.Dir, 0o755); err != nil {
			return "", fmt.Errorf("creating %s: %w", out.Dir, err)
		}
		path = filepath.Join(out.Dir, fmt.Sprintf("%s-%s.wav", out.Prefix, env.NewID()))
	}

	if err := os.WriteFile(path, res.WAV, 0o644); err != nil {
		return "", fmt.Errorf("writing %s: %w", path, err)
	}
	fmt.Fprintln(env.Stdout, path)
	return path, nil
}
