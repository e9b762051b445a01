package flags

import (
	"strings"
	"testing"

	"github.com/barge-build/barge/internal/library"
	"github.com/barge-build/barge/internal/project"
	"github.com/barge-build/barge/internal/source"
)

func settings(kind project.Kind) project.Settings {
	return project.New("demo", kind).Settings()
}

func hasFlag(flags, flag string) bool {
	for _, f := range strings.Fields(flags) {
		if f == flag {
			return true
		}
	}
	return false
}

func TestAssembleOrder(t *testing.T) {
	s := settings(project.SharedLibrary)
	s.CustomCFlags = "-DCUSTOM"
	got := Assemble(Input{
		Settings:  s,
		Target:    project.Release,
		Libraries: library.Flags{Compile: "-I/lib/a", Link: "-la"},
	})

	want := "-std=c11 " + Warnings + " -I/lib/a -DNDEBUG -O2 -ffast-math -DCUSTOM -fPIC"
	if got.C != want {
		t.Errorf("C = %q\nwant %q", got.C, want)
	}
	if want := "-s -la"; got.Link != want {
		t.Errorf("Link = %q, want %q", got.Link, want)
	}
	if !strings.HasPrefix(got.Cxx, "-std=c++17 ") {
		t.Errorf("Cxx = %q", got.Cxx)
	}
	if got.Fortran != "-std=f2003 -fPIC" {
		t.Errorf("Fortran = %q", got.Fortran)
	}
	if got.Cobol != "-std=cobol2014" {
		t.Errorf("Cobol = %q", got.Cobol)
	}
}

func TestPIC(t *testing.T) {
	for _, kind := range []project.Kind{project.Executable, project.SharedLibrary, project.StaticLibrary} {
		for _, target := range []project.Target{project.Debug, project.Release} {
			got := Assemble(Input{Settings: settings(kind), Target: target})
			want := kind != project.Executable
			for lang, fl := range map[string]string{"c": got.C, "c++": got.Cxx, "fortran": got.Fortran} {
				if hasFlag(fl, PIC) != want {
					t.Errorf("%v/%v %s flags %q: PIC present = %v, want %v", kind, target, lang, fl, !want, want)
				}
			}
		}
	}
}

func TestTargetFlags(t *testing.T) {
	debug := Assemble(Input{Settings: settings(project.Executable), Target: project.Debug})
	release := Assemble(Input{Settings: settings(project.Executable), Target: project.Release})

	for _, fl := range []string{debug.C, debug.Cxx} {
		if !hasFlag(fl, "-Og") || !hasFlag(fl, "-g") {
			t.Errorf("debug flags %q lack -Og/-g", fl)
		}
		if hasFlag(fl, "-DNDEBUG") {
			t.Errorf("debug flags %q contain -DNDEBUG", fl)
		}
	}
	for _, fl := range []string{release.C, release.Cxx} {
		if !hasFlag(fl, "-DNDEBUG") {
			t.Errorf("release flags %q lack -DNDEBUG", fl)
		}
		if strings.Contains(fl, "-fsanitize") {
			t.Errorf("release flags %q contain sanitizer flags", fl)
		}
	}
}

func TestLinkExtras(t *testing.T) {
	sources := source.Files{
		{Path: "src/main.c", Role: source.CompiledUnit, Language: source.C},
		{Path: "src/num.f90", Role: source.CompiledUnit, Language: source.Fortran},
		{Path: "src/a.ld", Role: source.LinkerScript},
		{Path: "src/b.ld", Role: source.LinkerScript},
	}
	s := settings(project.Executable)
	s.CustomLDFlags = "-lm"

	got := Assemble(Input{
		Settings:  s,
		Target:    project.Debug,
		Libraries: library.Flags{Link: "-lz"},
		Sources:   sources,
		CobolLink: "-lcob",
	})
	if want := "-ggdb -lz -lm -lgfortran -lcob -T src/a.ld -T src/b.ld"; got.Link != want {
		t.Errorf("Link = %q, want %q", got.Link, want)
	}

	noFortran := Assemble(Input{Settings: s, Target: project.Debug, Sources: sources[:1]})
	if hasFlag(noFortran.Link, FortranRuntime) {
		t.Errorf("Link = %q, want no Fortran runtime", noFortran.Link)
	}
}
