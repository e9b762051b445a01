// Copyright 2024 The barge Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package vcs

import (
	"context"
	"testing"

	"github.com/barge-build/barge/internal/runner"
	"github.com/barge-build/barge/internal/runner/runnertest"
)

func TestGitVCS_Info(t *testing.T) {
	fake := &runnertest.Fake{Handler: func(c runnertest.Call) (runner.Result, error) {
		switch c.Line() {
		case "rev-parse HEAD":
			return runnertest.Exit(0, "0123456789abcdef0123456789abcdef01234567\n"), nil
		case "branch --show-current":
			return runnertest.Exit(0, "main\n"), nil
		}
		return runnertest.Exit(1, ""), nil
	}}
	vcs := NewGitVCS(WithRunner(fake), WithGitPath("/usr/bin/git"))

	info := vcs.Info(context.Background(), "/proj")
	if info.Commit != "0123456789abcdef0123456789abcdef01234567" || info.Branch != "main" {
		t.Errorf("Info() = %+v", info)
	}
	for _, c := range fake.Calls() {
		if c.Name != "/usr/bin/git" || c.Dir != "/proj" {
			t.Errorf("call = %+v", c.Command)
		}
	}
}

func TestGitVCS_InfoUnavailable(t *testing.T) {
	tests := []struct {
		name    string
		handler func(c runnertest.Call) (runner.Result, error)
	}{
		{"not a repository", func(c runnertest.Call) (runner.Result, error) {
			return runner.Result{ExitCode: 128, Stderr: []byte("fatal: not a git repository")}, nil
		}},
		{"git not installed", func(c runnertest.Call) (runner.Result, error) {
			return runner.Result{}, runnertest.Missing(c.Name)
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vcs := NewGitVCS(WithRunner(&runnertest.Fake{Handler: tt.handler}))
			if info := vcs.Info(context.Background(), ""); info != (Info{}) {
				t.Errorf("Info() = %+v, want empty", info)
			}
		})
	}
}

func TestGitVCS_User(t *testing.T) {
	fake := &runnertest.Fake{Handler: func(c runnertest.Call) (runner.Result, error) {
		switch c.Line() {
		case "config --get user.name":
			return runnertest.Exit(0, "Ada Lovelace\n"), nil
		case "config --get user.email":
			return runnertest.Exit(0, "ada@example.com\n"), nil
		}
		return runnertest.Exit(1, ""), nil
	}}
	got, err := NewGitVCS(WithRunner(fake)).User(context.Background())
	if err != nil || got != "Ada Lovelace <ada@example.com>" {
		t.Errorf("User() = %q, %v", got, err)
	}
}
