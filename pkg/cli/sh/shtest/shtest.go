// Package shtest runs shell commands against an in-memory bus.
package shtest

import (
	"bytes"
	"io"
	"strings"

	"github.com/abiosoft/readline"

	"github.com/robotalks/ctrlm.go/pkg/bus/bustest"
	"github.com/robotalks/ctrlm.go/pkg/cli/sh"
	"github.com/robotalks/ctrlm.go/pkg/ctrlm"
	"github.com/robotalks/ctrlm.go/pkg/env"
)

// Env is a non-interactive shell on a Recorder.
type Env struct {
	Shell *sh.Shell
	Bus   *bustest.Recorder

	out bytes.Buffer
}

// New creates an Env targeting the default address, with peers attached at addrs.
func New(addrs ...byte) *Env {
	e := &Env{Bus: bustest.NewRecorder(addrs...)}
	e.Shell = sh.NewWithConfig(&env.Config{Addr: uint(ctrlm.DefaultAddr)}, &readline.Config{
		Stdin:  io.NopCloser(strings.NewReader("")),
		Stdout: &e.out,
	})
	e.Shell.WithBus(e.Bus)
	return e
}

// Run processes one command line and returns what it printed.
func (e *Env) Run(args ...string) (string, error) {
	e.out.Reset()
	err := e.Shell.Shell.Process(args...)
	return e.out.String(), err
}

// Close releases the shell.
func (e *Env) Close() {
	e.Shell.Shell.Close()
}
