// Package runnertest provides a recording runner.Runner for tests.
package runnertest

import (
	"context"
	"io"
	"strings"
	"sync"

	"github.com/barge-build/barge/internal/runner"
)

// Call is one recorded invocation. Stdin holds whatever the command was fed.
type Call struct {
	runner.Command
	Stdin string
}

// Fake records every command instead of running it. Handler, when set,
// decides the outcome; otherwise every command succeeds with no output.
type Fake struct {
	Handler func(c Call) (runner.Result, error)

	mu    sync.Mutex
	calls []Call
}

var _ runner.Runner = (*Fake)(nil)

func (f *Fake) Run(ctx context.Context, c runner.Command) (runner.Result, error) {
	call := Call{Command: c}
	if c.Stdin != nil {
		data, err := io.ReadAll(c.Stdin)
		if err != nil {
			return runner.Result{}, err
		}
		call.Stdin = string(data)
	}

	f.mu.Lock()
	f.calls = append(f.calls, call)
	f.mu.Unlock()

	if f.Handler == nil {
		return runner.Result{}, nil
	}
	res, err := f.Handler(call)
	if err == nil {
		if c.Stdout != nil && len(res.Stdout) > 0 {
			c.Stdout.Write(res.Stdout)
		}
		if c.Stderr != nil && len(res.Stderr) > 0 {
			c.Stderr.Write(res.Stderr)
		}
	}
	return res, err
}

// Calls returns the recorded invocations in order.
func (f *Fake) Calls() []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Call(nil), f.calls...)
}

// Names returns the executable of each recorded invocation.
func (f *Fake) Names() []string {
	var names []string
	for _, c := range f.Calls() {
		names = append(names, c.Name)
	}
	return names
}

// CallsTo returns the invocations of the named executable.
func (f *Fake) CallsTo(name string) []Call {
	var calls []Call
	for _, c := range f.Calls() {
		if c.Name == name {
			calls = append(calls, c)
		}
	}
	return calls
}

// Exit is a Result with the given exit status and stdout.
func Exit(code int, stdout string) runner.Result {
	return runner.Result{ExitCode: code, Stdout: []byte(stdout)}
}

// Missing is the error a runner reports for a binary that is not installed.
func Missing(name string) error {
	return &runner.InvocationError{Name: name, Err: errNotFound}
}

type notFound struct{}

func (notFound) Error() string { return "executable file not found in $PATH" }

var errNotFound error = notFound{}

// Line joins the arguments of c for easy comparison.
func (c Call) Line() string {
	return strings.Join(c.Command.Args, " ")
}
