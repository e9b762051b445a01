package build

import (
	"context"
	"fmt"
	"os"
	"path"
	"strings"

	"github.com/barge-build/barge/internal/deps"
	"github.com/barge-build/barge/internal/env"
	"github.com/barge-build/barge/internal/flags"
	"github.com/barge-build/barge/internal/library"
	"github.com/barge-build/barge/internal/makefile"
	"github.com/barge-build/barge/internal/project"
	"github.com/barge-build/barge/internal/source"
	"github.com/barge-build/barge/internal/toolchain"
)

// Rule targets understood by the executor.
const (
	RuleAll     = "all"
	RuleAnalyze = "analyze"
)

// Plan is a synthesized build description.
type Plan struct {
	Target project.Target
	// Artifact is the path of the build output relative to the project root.
	Artifact string
	Flags    flags.Set
	Sources  source.Files
	// Deps reports how many compiled units got header dependency rules.
	Deps deps.Result
	File *makefile.File
}

// Text renders the plan.
func (p *Plan) Text() string {
	return p.File.String()
}

// ArtifactName is the file name of the artifact of a project called name.
func ArtifactName(name string, kind project.Kind) string {
	switch kind {
	case project.SharedLibrary:
		return "lib" + name + ".so"
	case project.StaticLibrary:
		return "lib" + name + ".a"
	}
	return name
}

func linkRecipe(kind project.Kind) string {
	switch kind {
	case project.SharedLibrary:
		return "$(LD) -shared $(OBJECTS) -o $@ $(LDFLAGS)"
	case project.StaticLibrary:
		return "$(AR) rcs $@ $(OBJECTS)"
	}
	return "$(LD) $(OBJECTS) -o $@ $(LDFLAGS)"
}

// compileRule describes how units of one language become objects.
type compileRule struct {
	lang   source.Language
	recipe string
}

var compileRules = []compileRule{
	{source.Assembly, "$(AS) -c $< -o $@"},
	{source.C, "$(CC) $(CFLAGS) -c $< -o $@"},
	{source.Cpp, "$(CXX) $(CXXFLAGS) -c $< -o $@"},
	{source.Fortran, "$(FC) $(FFLAGS) -J $(OBJ_DIR) -c $< -o $@"},
	{source.Cobol, "$(COBC) $(COBOLFLAGS) -c $< -o $@"},
}

// Synthesize resolves the project against the current source tree and
// returns the build plan of target. The result is deterministic for a given
// descriptor and tree.
func (b *Builder) Synthesize(ctx context.Context, target project.Target) (*Plan, error) {
	b.transition(ctx, Synthesizing, target)

	files, err := source.Discover(os.DirFS(b.root), env.SourceDir, source.All)
	if err != nil {
		return nil, fmt.Errorf("discover sources: %w", err)
	}
	sources := source.Files(files)

	resolver := library.NewResolver(b.runner,
		library.WithPkgConfig(b.tools.PkgConfig),
		library.WithCobConfig(b.tools.CobConfig),
		library.WithDir(b.root))
	libs, err := resolver.Resolve(ctx, b.settings.Libraries)
	if err != nil {
		return nil, err
	}
	var cobolLink string
	if sources.Has(source.Cobol) {
		if cobolLink, err = resolver.CobolLinkFlags(ctx); err != nil {
			return nil, err
		}
	}

	set := flags.Assemble(flags.Input{
		Settings:  b.settings,
		Target:    target,
		Libraries: libs,
		Sources:   sources,
		CobolLink: cobolLink,
	})

	tc := toolchain.Resolve(b.settings.Toolset)
	cDeps := deps.New(b.runner, tc.CC, b.root).Extract(ctx, sources.Compiled(source.C), target)
	cxxDeps := deps.New(b.runner, tc.CXX, b.root).Extract(ctx, sources.Compiled(source.Cpp), target)

	p := &Plan{
		Target:   target,
		Artifact: path.Join(env.TargetDir(target), ArtifactName(b.settings.Name, b.settings.Kind)),
		Flags:    set,
		Sources:  sources,
		Deps: deps.Result{
			Extracted: cDeps.Extracted + cxxDeps.Extracted,
			Failed:    cDeps.Failed + cxxDeps.Failed,
		},
	}
	p.File = b.render(p, tc, cDeps.Fragment, cxxDeps.Fragment)
	return p, nil
}

func (b *Builder) render(p *Plan, tc toolchain.Executables, depFragments ...string) *makefile.File {
	var objects []string
	for _, f := range p.Sources {
		if f.Role == source.CompiledUnit {
			objects = append(objects, env.ObjectPath(p.Target, f.Path))
		}
	}
	scripts := p.Sources.Paths(source.LinkerScript)

	mk := &makefile.File{}
	mk.Comment(fmt.Sprintf("%s %s, %s build. Generated by barge.", b.settings.Name, b.settings.Version, p.Target)).
		Blank().
		Set("TARGET", p.Target.String()).
		Set("BUILD_DIR", env.TargetDir(p.Target)).
		Set("OBJ_DIR", env.ObjDir(p.Target)).
		Blank().
		Set("AS", tc.Assembler).
		Set("CC", tc.CC).
		Set("CFLAGS", p.Flags.C).
		Set("CXX", tc.CXX).
		Set("CXXFLAGS", p.Flags.Cxx).
		Set("FC", tc.Fortran).
		Set("FFLAGS", p.Flags.Fortran).
		Set("COBC", tc.Cobol).
		Set("COBOLFLAGS", p.Flags.Cobol).
		Set("LD", tc.Linker).
		Set("LDFLAGS", p.Flags.Link).
		Set("AR", tc.Archiver).
		Blank().
		Set("OBJECTS", strings.Join(objects, " ")).
		Blank().
		Add(makefile.Phony{Targets: []string{RuleAll}}).
		Rule(makefile.Rule{Targets: []string{RuleAll}, Prereqs: []string{p.Artifact}}).
		Blank().
		Rule(makefile.Rule{
			Targets: []string{p.Artifact},
			Prereqs: append([]string{"$(OBJECTS)"}, scripts...),
			Recipe:  []string{"@mkdir -p $(@D)", "@" + linkRecipe(b.settings.Kind)},
		})

	for _, r := range compileRules {
		if !p.Sources.Has(r.lang) {
			continue
		}
		mk.Blank().Rule(makefile.Rule{
			Targets: []string{"$(OBJ_DIR)/%" + r.lang.Ext() + ".o"},
			Prereqs: []string{env.SourceDir + "/%" + r.lang.Ext()},
			Recipe:  []string{"@mkdir -p $(@D)", "@echo " + r.lang.String() + " $<", "@" + r.recipe},
		})
	}

	for _, frag := range depFragments {
		if frag != "" {
			mk.Blank().Add(makefile.Raw{Text: frag})
		}
	}
	return mk
}

// analysisPlan runs the analyzer over the C and C++ units with the project
// standards.
func (b *Builder) analysisPlan(sources source.Files) *makefile.File {
	var recipe []string
	if c := sources.Compiled(source.C); len(c) > 0 {
		recipe = append(recipe, fmt.Sprintf("@%s %s -- -std=%s -I%s -I%s",
			b.tools.Analyzer, strings.Join(c, " "), b.settings.CStandard, env.IncludeDir, env.SourceDir))
	}
	if cxx := sources.Compiled(source.Cpp); len(cxx) > 0 {
		recipe = append(recipe, fmt.Sprintf("@%s %s -- -std=%s -I%s -I%s",
			b.tools.Analyzer, strings.Join(cxx, " "), b.settings.CppStandard, env.IncludeDir, env.SourceDir))
	}

	mk := &makefile.File{}
	mk.Comment(fmt.Sprintf("%s static analysis. Generated by barge.", b.settings.Name)).
		Blank().
		Add(makefile.Phony{Targets: []string{RuleAnalyze}}).
		Rule(makefile.Rule{Targets: []string{RuleAnalyze}, Recipe: recipe})
	return mk
}
