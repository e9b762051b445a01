package deps

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/barge-build/barge/internal/ctxlog"
	"github.com/barge-build/barge/internal/project"
	"github.com/barge-build/barge/internal/runner"
	"github.com/barge-build/barge/internal/runner/runnertest"
)

// mm answers like "cc -MM -MT <obj> ... <src>".
func mm(c runnertest.Call) (runner.Result, error) {
	args := c.Command.Args
	obj, src := args[2], args[len(args)-1]
	return runnertest.Exit(0, obj+": "+src+" include/common.h\n"), nil
}

func TestExtract(t *testing.T) {
	fake := &runnertest.Fake{Handler: mm}
	e := New(fake, "clang++", "/proj")

	got := e.Extract(context.Background(), []string{"src/main.c", "src/net/io.c"}, project.Release)

	want := "build/release/obj/main.c.o: src/main.c include/common.h\n" +
		"build/release/obj/net/io.c.o: src/net/io.c include/common.h"
	if got.Fragment != want {
		t.Errorf("Fragment = %q, want %q", got.Fragment, want)
	}
	if got.Extracted != 2 || got.Failed != 0 {
		t.Errorf("Extracted, Failed = %d, %d", got.Extracted, got.Failed)
	}

	calls := fake.Calls()
	if len(calls) != 2 {
		t.Fatalf("got %d calls, want 2", len(calls))
	}
	if want := "-MM -MT build/release/obj/main.c.o -Iinclude -Isrc src/main.c"; calls[0].Line() != want {
		t.Errorf("args = %q, want %q", calls[0].Line(), want)
	}
	if calls[0].Dir != "/proj" || calls[0].Name != "clang++" {
		t.Errorf("call = %+v", calls[0].Command)
	}
}

func TestExtractWithoutTrailingNewline(t *testing.T) {
	fake := &runnertest.Fake{Handler: func(c runnertest.Call) (runner.Result, error) {
		args := c.Command.Args
		return runnertest.Exit(0, args[2]+": "+args[len(args)-1]), nil
	}}

	got := New(fake, "cc", "").Extract(context.Background(), []string{"src/a.c", "src/b.c"}, project.Debug)

	want := "build/debug/obj/a.c.o: src/a.c\nbuild/debug/obj/b.c.o: src/b.c"
	if got.Fragment != want {
		t.Errorf("Fragment = %q, want %q", got.Fragment, want)
	}
}

func TestExtractSkipsFailedFile(t *testing.T) {
	fake := &runnertest.Fake{Handler: func(c runnertest.Call) (runner.Result, error) {
		if strings.HasSuffix(c.Line(), "broken.c") {
			return runner.Result{ExitCode: 1, Stderr: []byte("fatal error: missing.h")}, nil
		}
		return mm(c)
	}}

	got := New(fake, "clang++", "").Extract(context.Background(), []string{"src/broken.c", "src/ok.c"}, project.Debug)
	if got.Fragment != "build/debug/obj/ok.c.o: src/ok.c include/common.h" {
		t.Errorf("Fragment = %q", got.Fragment)
	}
	if got.Extracted != 1 || got.Failed != 1 {
		t.Errorf("Extracted, Failed = %d, %d", got.Extracted, got.Failed)
	}
}

func TestExtractToolMissing(t *testing.T) {
	fake := &runnertest.Fake{Handler: func(c runnertest.Call) (runner.Result, error) {
		return runner.Result{}, runnertest.Missing(c.Name)
	}}
	var logs bytes.Buffer
	ctx := ctxlog.WithLogger(context.Background(), ctxlog.New(&logs, "warn"))

	got := New(fake, "clang++", "").Extract(ctx, []string{"src/a.c", "src/b.c"}, project.Debug)
	if got.Fragment != "" || got.Extracted != 0 || got.Failed != 2 {
		t.Errorf("Extract() = %+v", got)
	}
	if !strings.Contains(logs.String(), "dependency extraction unavailable") || !strings.Contains(logs.String(), "coverage=0") {
		t.Errorf("missing zero-coverage warning, logs = %q", logs.String())
	}
}

func TestExtractNoSources(t *testing.T) {
	fake := &runnertest.Fake{}
	got := New(fake, "clang++", "").Extract(context.Background(), nil, project.Debug)
	if got != (Result{}) || len(fake.Calls()) != 0 {
		t.Errorf("Extract(nil) = %+v with %d calls", got, len(fake.Calls()))
	}
}
