package podsplice

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/ik5/podsplice/formats/wav"
	"github.com/ik5/podsplice/internal/audiotest"
	"github.com/ik5/podsplice/merge"
)

func writeFile(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestNewRegistry(t *testing.T) {
	t.Parallel()

	reg := NewRegistry()
	for _, key := range []string{"wav", "WAVE", "aiff", "aif"} {
		if _, ok := reg.Get(key); !ok {
			t.Errorf("Get(%q) not registered", key)
		}
	}
	if got := reg.Formats(); len(got) != 2 || got[0] != "aiff" || got[1] != "wav" {
		t.Errorf("Formats() = %v, want [aiff wav]", got)
	}
}

func TestMergeFiles_WavAndAiff(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	samples := make([]int, 800)
	for i := range samples {
		samples[i] = 1000
	}
	aiffPath := filepath.Join(dir, "guest.aiff")
	audiotest.WriteAIFF(t, aiffPath, 8000, 16, 1, samples)

	paths := []string{
		writeFile(t, dir, "host.wav", audiotest.WAV16(8000, 1, make([]int16, 400))),
		aiffPath,
	}

	cfg := merge.DefaultConcatConfig()
	cfg.SilenceGapMs = 100
	res, err := MergeFiles(merge.Concat{}, paths, cfg)
	if err != nil {
		t.Fatalf("MergeFiles() error = %v", err)
	}

	clip, err := wav.Parse(res.WAV)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if want := 400 + 800 + 800; clip.Frames() != want {
		t.Fatalf("got %d frames, want %d", clip.Frames(), want)
	}
	last := audiotest.Int16s(clip.Data)[clip.Frames()-1]
	if last < 999 || last > 1001 {
		t.Errorf("last sample = %d, want ~1000", last)
	}
}

func TestLoadFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	reg := NewRegistry()

	if _, err := LoadFile(reg, writeFile(t, dir, "clip.mp3", []byte("ID3"))); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("mp3: error = %v, want ErrUnsupportedFormat", err)
	}
	if _, err := LoadFile(reg, filepath.Join(dir, "missing.wav")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("missing: error = %v, want os.ErrNotExist", err)
	}

	raw := []byte{1, 2, 3, 4}
	in, err := LoadFile(reg, writeFile(t, dir, "clip.pcm", raw))
	if err != nil {
		t.Fatalf("pcm: error = %v", err)
	}
	got, _ := in.Resolve()
	if string(got) != string(raw) {
		t.Errorf("pcm bytes = %v, want %v", got, raw)
	}

	if _, err := LoadFile(reg, writeFile(t, dir, "bad.aiff", []byte("nope"))); err == nil {
		t.Error("bad aiff: expected an error")
	}
}

func TestMergeFiles_ReportsClipIndex(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	paths := []string{
		writeFile(t, dir, "a.wav", audiotest.WAV16(8000, 1, make([]int16, 10))),
		filepath.Join(dir, "gone.wav"),
	}
	_, err := MergeFiles(merge.Concat{}, paths, merge.DefaultConcatConfig())
	if err == nil || !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("error = %v, want os.ErrNotExist", err)
	}
	if got := err.Error(); len(got) < 6 || got[:6] != "clip 1" {
		t.Errorf("error = %q, want clip 1 prefix", got)
	}
}
