// Copyright 2024 The barge Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package script runs user-supplied pre- and post-build steps.
//
// A step is a shell, Python or Perl script run under its interpreter, or a
// C or C++ source compiled on every invocation and then executed. All steps
// run in the project root with the variables of Context.Environ added to the
// inherited environment.
package script

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/barge-build/barge/internal/ctxlog"
	"github.com/barge-build/barge/internal/env"
	"github.com/barge-build/barge/internal/runner"
	"github.com/barge-build/barge/internal/toolchain"
)

// DefaultPython is the interpreter of Python steps without a shebang line.
const DefaultPython = "python3"

// StepFailedError reports a step that exited non-zero. Phase is "compile"
// for a C or C++ step that failed to build, "run" otherwise.
type StepFailedError struct {
	Path     string
	Role     Role
	Phase    string
	ExitCode int
}

func (e *StepFailedError) Error() string {
	if e.Phase == "compile" {
		return fmt.Sprintf("%s step %s failed to compile (exit status %d)", e.Role, e.Path, e.ExitCode)
	}
	return fmt.Sprintf("%s step %s failed (exit status %d)", e.Role, e.Path, e.ExitCode)
}

// Executor runs build steps.
type Executor struct {
	runner runner.Runner
	dir    string
	stdout io.Writer
	stderr io.Writer
	now    func() time.Time
}

// Option configures an Executor.
type Option func(*Executor)

// WithOutput sets where step output goes. By default it is discarded.
func WithOutput(stdout, stderr io.Writer) Option {
	return func(e *Executor) {
		e.stdout = stdout
		e.stderr = stderr
	}
}

// WithClock replaces time.Now for step timestamps.
func WithClock(now func() time.Time) Option {
	return func(e *Executor) {
		e.now = now
	}
}

// NewExecutor creates an Executor for the project rooted at dir.
func NewExecutor(run runner.Runner, dir string, opts ...Option) *Executor {
	e := &Executor{
		runner: run,
		dir:    dir,
		stdout: io.Discard,
		stderr: io.Discard,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// RunAll runs steps in order and stops at the first failure.
func (e *Executor) RunAll(ctx context.Context, steps []string, role Role, c *Context) error {
	for _, step := range steps {
		if err := e.Run(ctx, step, role, c); err != nil {
			return err
		}
	}
	return nil
}

// Run executes step, a path absolute or relative to the project root.
func (e *Executor) Run(ctx context.Context, step string, role Role, c *Context) error {
	kind, err := KindOf(step)
	if err != nil {
		return err
	}
	ctxlog.FromContext(ctx).Debug("running build step", "path", step, "role", role, "kind", kind)

	switch kind {
	case Shell:
		return e.exec(ctx, step, role, c, "bash", step)
	case Perl:
		return e.exec(ctx, step, role, c, "perl", step)
	case Python:
		return e.exec(ctx, step, role, c, "env", "-S", e.pythonFor(step), step)
	case CSource:
		tc := toolchain.Resolve(c.Settings.Toolset)
		return e.compileAndRun(ctx, step, role, c, tc.CC, c.Settings.CStandard)
	case CppSource:
		tc := toolchain.Resolve(c.Settings.Toolset)
		return e.compileAndRun(ctx, step, role, c, tc.CXX, c.Settings.CppStandard)
	}
	panic("script: unhandled kind " + kind.String())
}

func (e *Executor) exec(ctx context.Context, step string, role Role, c *Context, name string, args ...string) error {
	res, err := e.runner.Run(ctx, runner.Command{
		Name:   name,
		Args:   args,
		Dir:    e.dir,
		Env:    c.Environ(role, e.now()),
		Stdout: e.stdout,
		Stderr: e.stderr,
	})
	if err != nil {
		return err
	}
	if !res.Success() {
		return &StepFailedError{Path: step, Role: role, Phase: "run", ExitCode: res.ExitCode}
	}
	return nil
}

// compileAndRun builds the step into <target dir>/<role>/<name> and runs it.
// The binary is rebuilt on every invocation.
func (e *Executor) compileAndRun(ctx context.Context, step string, role Role, c *Context, compiler, std string) error {
	base := filepath.Base(step)
	out := path.Join(env.TargetDir(c.Target), role.String(), strings.TrimSuffix(base, filepath.Ext(base)))
	abs := filepath.Join(e.dir, filepath.FromSlash(out))

	if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
		return err
	}
	if err := os.Remove(abs); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}

	res, err := e.runner.Run(ctx, runner.Command{
		Name:   compiler,
		Args:   []string{"-std=" + std, step, "-o", out},
		Dir:    e.dir,
		Stdout: e.stdout,
		Stderr: e.stderr,
	})
	if err != nil {
		return err
	}
	if !res.Success() {
		return &StepFailedError{Path: step, Role: role, Phase: "compile", ExitCode: res.ExitCode}
	}
	return e.exec(ctx, step, role, c, abs)
}

// pythonFor returns the interpreter named by the step's shebang line, or
// DefaultPython. "#!/usr/bin/env python3.12" yields "python3.12".
func (e *Executor) pythonFor(step string) string {
	name := filepath.FromSlash(step)
	if !filepath.IsAbs(name) {
		name = filepath.Join(e.dir, name)
	}
	f, err := os.Open(name)
	if err != nil {
		return DefaultPython
	}
	defer f.Close()

	line, err := bufio.NewReader(f).ReadBytes('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return DefaultPython
	}
	return shebang(line)
}

func shebang(line []byte) string {
	rest, ok := bytes.CutPrefix(bytes.TrimSpace(line), []byte("#!"))
	if !ok {
		return DefaultPython
	}
	fields := strings.Fields(string(rest))
	if len(fields) == 0 {
		return DefaultPython
	}
	if filepath.Base(fields[0]) == "env" {
		fields = fields[1:]
		if len(fields) > 0 && fields[0] == "-S" {
			fields = fields[1:]
		}
	}
	if len(fields) == 0 {
		return DefaultPython
	}
	return strings.Join(fields, " ")
}
