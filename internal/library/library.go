// Package library expands external library dependencies into compiler and
// linker flags.
package library

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/barge-build/barge/internal/project"
	"github.com/barge-build/barge/internal/runner"
)

// Flags are the flag fragments contributed by a set of libraries.
type Flags struct {
	Compile string
	Link    string
}

// ResolutionError reports a library whose flags could not be queried.
type ResolutionError struct {
	Name string
	Err  error
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("resolve library %s: %v", e.Name, e.Err)
}

func (e *ResolutionError) Unwrap() error { return e.Err }

// Resolver queries package metadata through pkg-config.
type Resolver struct {
	runner    runner.Runner
	pkgConfig string
	cobConfig string
	dir       string
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithPkgConfig sets a custom pkg-config executable.
func WithPkgConfig(path string) Option {
	return func(r *Resolver) {
		r.pkgConfig = path
	}
}

// WithCobConfig sets a custom cob-config executable.
func WithCobConfig(path string) Option {
	return func(r *Resolver) {
		r.cobConfig = path
	}
}

// WithDir sets the directory queries run in.
func WithDir(dir string) Option {
	return func(r *Resolver) {
		r.dir = dir
	}
}

// NewResolver creates a Resolver running its queries through run.
func NewResolver(run runner.Runner, opts ...Option) *Resolver {
	r := &Resolver{runner: run, pkgConfig: "pkg-config", cobConfig: "cob-config"}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve concatenates the flags of libs in declaration order.
func (r *Resolver) Resolve(ctx context.Context, libs project.Libraries) (Flags, error) {
	var compile, link []string
	for _, lib := range libs {
		switch lib := lib.(type) {
		case project.PkgConfig:
			cflags, err := r.query(ctx, lib.Name, "--cflags")
			if err != nil {
				return Flags{}, err
			}
			ldflags, err := r.query(ctx, lib.Name, "--libs")
			if err != nil {
				return Flags{}, err
			}
			compile = append(compile, cflags)
			link = append(link, ldflags)
		case project.Manual:
			compile = append(compile, lib.CFlags)
			link = append(link, lib.LDFlags)
		default:
			panic(fmt.Sprintf("library: unexpected dependency %T", lib))
		}
	}
	return Flags{Compile: Join(compile...), Link: Join(link...)}, nil
}

// CobolLinkFlags returns the runtime link flags of the installed COBOL
// compiler.
func (r *Resolver) CobolLinkFlags(ctx context.Context) (string, error) {
	res, err := r.runner.Run(ctx, runner.Command{Name: r.cobConfig, Args: []string{"--libs"}, Dir: r.dir})
	if err != nil {
		return "", &ResolutionError{Name: "cobol runtime", Err: err}
	}
	if !res.Success() {
		return "", &ResolutionError{Name: "cobol runtime", Err: exitError(r.cobConfig, res)}
	}
	return strings.TrimSpace(string(res.Stdout)), nil
}

func (r *Resolver) query(ctx context.Context, name, mode string) (string, error) {
	res, err := r.runner.Run(ctx, runner.Command{Name: r.pkgConfig, Args: []string{name, mode}, Dir: r.dir})
	if err != nil {
		return "", &ResolutionError{Name: name, Err: err}
	}
	if !res.Success() {
		return "", &ResolutionError{Name: name, Err: exitError(r.pkgConfig, res)}
	}
	return strings.TrimSpace(string(res.Stdout)), nil
}

func exitError(tool string, res runner.Result) error {
	if msg := strings.TrimSpace(string(res.Stderr)); msg != "" {
		return errors.New(msg)
	}
	return fmt.Errorf("%s exited with status %d", tool, res.ExitCode)
}

// Join trims each fragment, drops empty ones and joins the rest with single
// spaces. Whitespace inside a fragment is kept verbatim.
func Join(fragments ...string) string {
	var parts []string
	for _, f := range fragments {
		if f = strings.TrimSpace(f); f != "" {
			parts = append(parts, f)
		}
	}
	return strings.Join(parts, " ")
}
