// Package deps derives header dependency rules for compiled sources by
// asking the preprocessor for make-compatible output.
package deps

import (
	"context"
	"strings"

	"github.com/barge-build/barge/internal/ctxlog"
	"github.com/barge-build/barge/internal/env"
	"github.com/barge-build/barge/internal/project"
	"github.com/barge-build/barge/internal/runner"
)

// Result is the dependency fragment for a set of sources.
type Result struct {
	// Fragment holds one make rule per source whose extraction succeeded.
	Fragment string
	// Extracted counts sources that produced a rule.
	Extracted int
	// Failed counts sources whose extraction failed; they rebuild only when
	// the source itself changes.
	Failed int
}

// Extractor runs the preprocessor dependency tool.
type Extractor struct {
	runner runner.Runner
	tool   string
	dir    string
}

// New creates an Extractor invoking tool (a compiler driver that accepts
// -MM and -MT) in dir.
func New(run runner.Runner, tool, dir string) *Extractor {
	return &Extractor{runner: run, tool: tool, dir: dir}
}

// Extract returns the dependency rules of sources, each retargeted to the
// object path of target. Failures are per file: a source whose extraction
// fails is skipped and counted, never returned as an error.
func (e *Extractor) Extract(ctx context.Context, sources []string, target project.Target) Result {
	log := ctxlog.FromContext(ctx)

	var (
		res      Result
		rules    []string
		spawnErr int
	)
	for _, src := range sources {
		out, err := e.runner.Run(ctx, runner.Command{
			Name: e.tool,
			Args: []string{"-MM", "-MT", env.ObjectPath(target, src), "-I" + env.IncludeDir, "-I" + env.SourceDir, src},
			Dir:  e.dir,
		})
		if err != nil {
			spawnErr++
			res.Failed++
			log.Debug("dependency extraction failed", "source", src, "err", err)
			continue
		}
		if !out.Success() {
			res.Failed++
			log.Debug("dependency extraction failed", "source", src, "status", out.ExitCode,
				"stderr", strings.TrimSpace(string(out.Stderr)))
			continue
		}
		if rule := strings.TrimRight(string(out.Stdout), " \t\r\n"); rule != "" {
			rules = append(rules, rule)
		}
		res.Extracted++
	}
	res.Fragment = strings.Join(rules, "\n")

	if len(sources) > 0 && spawnErr == len(sources) {
		log.Warn("dependency extraction unavailable, headers will not trigger rebuilds",
			"tool", e.tool, "coverage", 0, "sources", len(sources))
	}
	return res
}
