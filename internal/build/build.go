// Copyright 2024 The barge Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package build synthesizes the build plan of a project and drives the
// external executor with it.
//
// One build moves through Resolving, Synthesizing and Executing and ends
// Succeeded or Failed. Pre-build steps run before synthesis so that sources
// they generate are discovered; post-build steps run only after the executor
// succeeded. A failed build is not retried.
package build

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/barge-build/barge/internal/ctxlog"
	"github.com/barge-build/barge/internal/env"
	"github.com/barge-build/barge/internal/output"
	"github.com/barge-build/barge/internal/project"
	"github.com/barge-build/barge/internal/runner"
	"github.com/barge-build/barge/internal/script"
	"github.com/barge-build/barge/internal/source"
	"github.com/barge-build/barge/internal/toolchain"
	"github.com/barge-build/barge/internal/vcs"
)

var (
	// ErrBuildFailed is returned when the executor exits non-zero.
	ErrBuildFailed = errors.New("build failed")
	// ErrAnalysisFailed is returned when static analysis exits non-zero.
	ErrAnalysisFailed = errors.New("static analysis failed")
	// ErrNotExecutable is returned by Run and Debug for library projects.
	ErrNotExecutable = errors.New("only executable projects can be run")
)

// State is the phase of a build invocation.
type State int

const (
	Resolving State = iota
	Synthesizing
	Executing
	Succeeded
	Failed
)

func (s State) String() string {
	switch s {
	case Resolving:
		return "resolving"
	case Synthesizing:
		return "synthesizing"
	case Executing:
		return "executing"
	case Succeeded:
		return "succeeded"
	case Failed:
		return "failed"
	}
	return "unknown"
}

// Builder builds one project.
type Builder struct {
	root     string
	settings project.Settings

	runner  runner.Runner
	tools   env.Tools
	vcs     vcs.VCS
	printer *output.Printer
	stdin   io.Reader
	stdout  io.Writer
	stderr  io.Writer
	noColor bool
	now     func() time.Time
	jobs    func() int
}

// Option configures a Builder.
type Option func(*Builder)

// WithRunner sets the runner every external tool is invoked through.
func WithRunner(r runner.Runner) Option {
	return func(b *Builder) {
		b.runner = r
	}
}

// WithTools overrides the external tool names.
func WithTools(t env.Tools) Option {
	return func(b *Builder) {
		b.tools = t
	}
}

// WithVCS sets the source of commit and branch metadata.
func WithVCS(v vcs.VCS) Option {
	return func(b *Builder) {
		b.vcs = v
	}
}

// WithPrinter sets where status lines go. Without one they are dropped.
func WithPrinter(p *output.Printer) Option {
	return func(b *Builder) {
		b.printer = p
		b.noColor = p != nil && p.NoColor
	}
}

// WithStdin sets the standard input of launched programs.
func WithStdin(r io.Reader) Option {
	return func(b *Builder) {
		b.stdin = r
	}
}

// WithOutput sets where the output of the executor, steps and launched
// programs goes. By default it is discarded.
func WithOutput(stdout, stderr io.Writer) Option {
	return func(b *Builder) {
		b.stdout = stdout
		b.stderr = stderr
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(b *Builder) {
		b.now = now
	}
}

// WithJobs fixes the executor job count instead of sizing it from the host.
func WithJobs(n int) Option {
	return func(b *Builder) {
		b.jobs = func() int { return n }
	}
}

// New creates a Builder for the project p rooted at root.
func New(root string, p *project.Project, opts ...Option) *Builder {
	b := &Builder{
		root:     root,
		settings: p.Settings(),
		runner:   runner.New(),
		tools:    env.LookupTools(),
		stdout:   io.Discard,
		stderr:   io.Discard,
		now:      time.Now,
		jobs:     hostJobs,
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.vcs == nil {
		b.vcs = vcs.NewGitVCS(vcs.WithGitPath(b.tools.Git), vcs.WithRunner(b.runner))
	}
	return b
}

// Settings returns the resolved descriptor.
func (b *Builder) Settings() project.Settings {
	return b.settings
}

// Build runs the pre-build steps, synthesizes the plan of target, hands it
// to the executor and runs the post-build steps.
func (b *Builder) Build(ctx context.Context, target project.Target) (err error) {
	b.printer.Info("Building project with %s configuration", target)
	start := b.now()
	defer func() {
		if err != nil {
			b.transition(ctx, Failed, target, "err", err)
			return
		}
		b.transition(ctx, Succeeded, target)
		b.printer.Success("Build finished in %.2f seconds", b.now().Sub(start).Seconds())
	}()

	b.transition(ctx, Resolving, target)
	makeOpts := b.makeOpts()
	info := b.vcs.Info(ctx, b.root)
	steps := script.NewExecutor(b.runner, b.root, script.WithOutput(b.stdout, b.stderr), script.WithClock(b.now))
	sc := &script.Context{
		Settings:   b.settings,
		Target:     target,
		Commit:     info.Commit,
		Branch:     info.Branch,
		BuildStart: start,
		NoColor:    b.noColor,
	}

	if err := steps.RunAll(ctx, b.settings.PreBuildSteps, script.PreBuild, sc); err != nil {
		return err
	}

	plan, err := b.Synthesize(ctx, target)
	if err != nil {
		return err
	}

	b.transition(ctx, Executing, target, "artifact", plan.Artifact, "make_opts", strings.Join(makeOpts, " "))
	res, err := b.make(ctx, plan.Text(), RuleAll, makeOpts...)
	if err != nil {
		return err
	}
	if !res.Success() {
		return fmt.Errorf("%w: %s exited with status %d", ErrBuildFailed, b.tools.Make, res.ExitCode)
	}

	return steps.RunAll(ctx, b.settings.PostBuildSteps, script.PostBuild, sc)
}

// Rebuild removes the artifacts of target and builds it again.
func (b *Builder) Rebuild(ctx context.Context, target project.Target) error {
	b.printer.Info("Removing relevant build artifacts")
	if err := os.RemoveAll(b.path(env.TargetDir(target))); err != nil {
		return err
	}
	return b.Build(ctx, target)
}

// Clean removes the artifacts of every target.
func (b *Builder) Clean() error {
	b.printer.Info("Removing build artifacts")
	return os.RemoveAll(b.path(env.BuildDir))
}

// Analyze runs the static analyzer over the C and C++ sources.
func (b *Builder) Analyze(ctx context.Context) error {
	b.printer.Info("Running static analysis on project")
	files, err := source.Discover(os.DirFS(b.root), env.SourceDir, source.CompiledOnly)
	if err != nil {
		return fmt.Errorf("discover sources: %w", err)
	}
	res, err := b.make(ctx, b.analysisPlan(files).String(), RuleAnalyze)
	if err != nil {
		return err
	}
	if !res.Success() {
		return fmt.Errorf("%w: %s exited with status %d", ErrAnalysisFailed, b.tools.Make, res.ExitCode)
	}
	return nil
}

// Run builds target and runs the executable with args. It returns the exit
// status of the program.
func (b *Builder) Run(ctx context.Context, target project.Target, args []string) (int, error) {
	program, err := b.buildExecutable(ctx, target)
	if err != nil {
		return 0, err
	}
	b.printer.Info("Running executable %s", program)
	return b.launch(ctx, b.path(program), args)
}

// Debug builds target and runs the executable with args under the debugger
// of the toolset.
func (b *Builder) Debug(ctx context.Context, target project.Target, args []string) (int, error) {
	program, err := b.buildExecutable(ctx, target)
	if err != nil {
		return 0, err
	}
	tc := toolchain.Resolve(b.settings.Toolset)
	b.printer.Info("Running executable %s in the debugger", program)
	return b.launch(ctx, tc.Debugger, tc.DebugArgs(program, args))
}

func (b *Builder) buildExecutable(ctx context.Context, target project.Target) (string, error) {
	if b.settings.Kind != project.Executable {
		return "", fmt.Errorf("%w: %s is a %s", ErrNotExecutable, b.settings.Name, b.settings.Kind)
	}
	if err := b.Build(ctx, target); err != nil {
		return "", err
	}
	return path.Join(env.TargetDir(target), ArtifactName(b.settings.Name, b.settings.Kind)), nil
}

func (b *Builder) launch(ctx context.Context, name string, args []string) (int, error) {
	res, err := b.runner.Run(ctx, runner.Command{
		Name:   name,
		Args:   args,
		Dir:    b.root,
		Stdin:  b.stdin,
		Stdout: b.stdout,
		Stderr: b.stderr,
	})
	if err != nil {
		return 0, err
	}
	return res.ExitCode, nil
}

// make pipes plan to the executor's standard input and asks for rule.
func (b *Builder) make(ctx context.Context, plan, rule string, opts ...string) (runner.Result, error) {
	args := append([]string{"-s", "-f", "-", rule}, opts...)
	return b.runner.Run(ctx, runner.Command{
		Name:   b.tools.Make,
		Args:   args,
		Dir:    b.root,
		Stdin:  strings.NewReader(plan),
		Stdout: b.stdout,
		Stderr: b.stderr,
	})
}

// makeOpts returns custom_makeopts when set, the job count otherwise.
func (b *Builder) makeOpts() []string {
	if b.settings.MakeOpts != nil {
		return b.settings.MakeOpts
	}
	return []string{fmt.Sprintf("-j%d", b.jobs())}
}

func (b *Builder) path(rel string) string {
	return filepath.Join(b.root, filepath.FromSlash(rel))
}

func (b *Builder) transition(ctx context.Context, s State, target project.Target, attrs ...any) {
	log := ctxlog.FromContext(ctx)
	args := append([]any{"state", s, "target", target, "project", b.settings.Name}, attrs...)
	if s == Failed {
		log.Error("build state", args...)
		return
	}
	log.Debug("build state", args...)
}
