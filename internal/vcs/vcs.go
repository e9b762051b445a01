// Copyright 2024 The barge Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package vcs reads version control metadata of the project checkout.
package vcs

import (
	"context"
	"fmt"
	"strings"

	"github.com/barge-build/barge/internal/runner"
)

// Info is the checkout state exposed to build steps. Fields are empty when
// unavailable.
type Info struct {
	Commit string
	Branch string
}

// VCS defines the version control queries barge needs.
type VCS interface {
	// Info returns the current commit and branch. It never fails: missing
	// metadata leaves the fields empty.
	Info(ctx context.Context, dir string) Info

	// User returns "name <email>" of the configured user.
	User(ctx context.Context) (string, error)
}

// gitVCS implements VCS using git.
type gitVCS struct {
	git    string
	runner runner.Runner
}

// GitOption configures gitVCS.
type GitOption func(*gitVCS)

// WithGitPath sets a custom git executable path.
func WithGitPath(path string) GitOption {
	return func(g *gitVCS) {
		g.git = path
	}
}

// WithRunner sets the runner git is invoked through.
func WithRunner(r runner.Runner) GitOption {
	return func(g *gitVCS) {
		g.runner = r
	}
}

// NewGitVCS creates a new git VCS instance.
func NewGitVCS(opts ...GitOption) VCS {
	g := &gitVCS{git: "git", runner: runner.New()}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

func (g *gitVCS) Info(ctx context.Context, dir string) Info {
	var info Info
	if out, err := g.output(ctx, dir, "rev-parse", "HEAD"); err == nil {
		info.Commit = strings.TrimSpace(out)
	}
	if out, err := g.output(ctx, dir, "branch", "--show-current"); err == nil {
		info.Branch = strings.TrimSpace(out)
	}
	return info
}

func (g *gitVCS) User(ctx context.Context) (string, error) {
	name, err := g.output(ctx, "", "config", "--get", "user.name")
	if err != nil {
		return "", fmt.Errorf("git user.name: %w", err)
	}
	email, err := g.output(ctx, "", "config", "--get", "user.email")
	if err != nil {
		return "", fmt.Errorf("git user.email: %w", err)
	}
	return fmt.Sprintf("%s <%s>", strings.TrimSpace(name), strings.TrimSpace(email)), nil
}

func (g *gitVCS) output(ctx context.Context, dir string, args ...string) (string, error) {
	res, err := g.runner.Run(ctx, runner.Command{Name: g.git, Args: args, Dir: dir})
	if err != nil {
		return "", err
	}
	if !res.Success() {
		msg := strings.TrimSpace(string(res.Stderr))
		if msg != "" {
			return "", fmt.Errorf("%s", msg)
		}
		return "", fmt.Errorf("git %s: exit status %d", args[0], res.ExitCode)
	}
	return string(res.Stdout), nil
}
