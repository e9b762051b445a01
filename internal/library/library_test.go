package library

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/barge-build/barge/internal/project"
	"github.com/barge-build/barge/internal/runner"
	"github.com/barge-build/barge/internal/runner/runnertest"
)

func pkgConfigFake(known map[string][2]string) *runnertest.Fake {
	return &runnertest.Fake{Handler: func(c runnertest.Call) (runner.Result, error) {
		flags, ok := known[c.Command.Args[0]]
		if !ok {
			return runner.Result{ExitCode: 1, Stderr: []byte("Package " + c.Command.Args[0] + " was not found")}, nil
		}
		if c.Command.Args[1] == "--cflags" {
			return runnertest.Exit(0, flags[0]+"\n"), nil
		}
		return runnertest.Exit(0, flags[1]+"\n"), nil
	}}
}

func TestResolveOrder(t *testing.T) {
	fake := pkgConfigFake(map[string][2]string{
		"A": {"-I/a", "-la"},
		"C": {"", "-lc"},
	})
	r := NewResolver(fake)

	got, err := r.Resolve(context.Background(), project.Libraries{
		project.PkgConfig{Name: "A"},
		project.Manual{CFlags: "  -Ib  ", LDFlags: "-lb "},
		project.PkgConfig{Name: "C"},
	})
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if want := "-I/a -Ib"; got.Compile != want {
		t.Errorf("Compile = %q, want %q", got.Compile, want)
	}
	if want := "-la -lb -lc"; got.Link != want {
		t.Errorf("Link = %q, want %q", got.Link, want)
	}
	if strings.Index(got.Link, "-la") > strings.Index(got.Link, "-lb") {
		t.Errorf("Link = %q, A must come before B", got.Link)
	}

	var lines []string
	for _, c := range fake.Calls() {
		lines = append(lines, c.Name+" "+c.Line())
	}
	want := "pkg-config A --cflags|pkg-config A --libs|pkg-config C --cflags|pkg-config C --libs"
	if strings.Join(lines, "|") != want {
		t.Errorf("calls = %q, want %q", lines, want)
	}
}

func TestResolveEmpty(t *testing.T) {
	got, err := NewResolver(&runnertest.Fake{}).Resolve(context.Background(), nil)
	if err != nil || got != (Flags{}) {
		t.Errorf("Resolve(nil) = %+v, %v", got, err)
	}
}

func TestResolveUnknownPackage(t *testing.T) {
	r := NewResolver(pkgConfigFake(nil))
	_, err := r.Resolve(context.Background(), project.Libraries{project.PkgConfig{Name: "nope"}})

	var rerr *ResolutionError
	if !errors.As(err, &rerr) {
		t.Fatalf("Resolve() error = %v, want *ResolutionError", err)
	}
	if rerr.Name != "nope" || !strings.Contains(err.Error(), "was not found") {
		t.Errorf("error = %v", err)
	}
}

func TestResolveMissingTool(t *testing.T) {
	fake := &runnertest.Fake{Handler: func(c runnertest.Call) (runner.Result, error) {
		return runner.Result{}, runnertest.Missing(c.Name)
	}}
	r := NewResolver(fake, WithPkgConfig("pkgconf"))
	_, err := r.Resolve(context.Background(), project.Libraries{project.PkgConfig{Name: "zlib"}})

	var rerr *ResolutionError
	var ierr *runner.InvocationError
	if !errors.As(err, &rerr) || !errors.As(err, &ierr) {
		t.Fatalf("Resolve() error = %v, want ResolutionError wrapping InvocationError", err)
	}
	if ierr.Name != "pkgconf" {
		t.Errorf("invoked %q, want pkgconf", ierr.Name)
	}
}

func TestCobolLinkFlags(t *testing.T) {
	fake := &runnertest.Fake{Handler: func(c runnertest.Call) (runner.Result, error) {
		return runnertest.Exit(0, " -lcob -lm\n"), nil
	}}
	got, err := NewResolver(fake).CobolLinkFlags(context.Background())
	if err != nil || got != "-lcob -lm" {
		t.Errorf("CobolLinkFlags() = %q, %v", got, err)
	}
}

func TestJoin(t *testing.T) {
	tests := []struct {
		in   []string
		want string
	}{
		{nil, ""},
		{[]string{"", "  "}, ""},
		{[]string{" -a ", "", "-b  -c"}, "-a -b  -c"},
	}
	for _, tt := range tests {
		if got := Join(tt.in...); got != tt.want {
			t.Errorf("Join(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
