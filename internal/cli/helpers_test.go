package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type run struct {
	stdout, stderr *bytes.Buffer
	err            error
}

// execute runs the command tree with args, no process environment and a
// fixed output id.
func execute(t *testing.T, stdin string, env map[string]string, args ...string) run {
	t.Helper()

	var stdout, stderr bytes.Buffer
	e := NewEnv(
		WithStdin(strings.NewReader(stdin)),
		WithStdout(&stdout),
		WithStderr(&stderr),
		WithLookupEnv(func(k string) (string, bool) {
			v, ok := env[k]
			return v, ok
		}),
		WithNow(func() time.Time { return time.Unix(1700000000, 0) }),
		WithNewID(func() string { return "0000-test" }),
	)

	root := RootCmd(e, "test")
	root.SetArgs(args)
	err := root.Execute()
	return run{stdout: &stdout, stderr: &stderr, err: err}
}

func writeFile(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}
