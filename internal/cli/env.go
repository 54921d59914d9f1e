// SPDX-License-Identifier: EPL-2.0

package cli

import (
	"io"
	"os"
	"time"

	"github.com/google/uuid"
)

// Env holds what the commands take from the process, so tests can run them
// in isolation.
type Env struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	// LookupEnv feeds the PODSPLICE_* overrides.
	LookupEnv func(string) (string, bool)
	Now       func() time.Time
	// NewID names generated output files.
	NewID func() string
}

// EnvOption configures an Env.
type EnvOption func(*Env)

func WithStdin(r io.Reader) EnvOption  { return func(e *Env) { e.Stdin = r } }
func WithStdout(w io.Writer) EnvOption { return func(e *Env) { e.Stdout = w } }
func WithStderr(w io.Writer) EnvOption { return func(e *Env) { e.Stderr = w } }

func WithLookupEnv(fn func(string) (string, bool)) EnvOption {
	return func(e *Env) { e.LookupEnv = fn }
}

func WithNow(fn func() time.Time) EnvOption { return func(e *Env) { e.Now = fn } }
func WithNewID(fn func() string) EnvOption  { return func(e *Env) { e.NewID = fn } }

// DefaultEnv is the production environment.
func DefaultEnv() *Env {
	return &Env{
		Stdin:     os.Stdin,
		Stdout:    os.Stdout,
		Stderr:    os.Stderr,
		LookupEnv: os.LookupEnv,
		Now:       time.Now,
		NewID:     uuid.NewString,
	}
}

// NewEnv applies opts to DefaultEnv.
func NewEnv(opts ...EnvOption) *Env {
	env := DefaultEnv()
	for _, opt := range opts {
		opt(env)
	}
	return env
}
