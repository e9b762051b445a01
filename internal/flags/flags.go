// Package flags composes the per-language compiler flags and the linker
// flags of a build.
//
// Compile flags are assembled in declared order, later flags overriding
// earlier ones at the compiler's discretion:
//
//	-std=<standard> <warnings> <library flags> <target flags> <custom flags> [-fPIC]
//
// Link flags are
//
//	<target flags> <library flags> <custom flags> [-lgfortran] [cobol runtime] [-T <script>...]
package flags

import (
	"github.com/barge-build/barge/internal/library"
	"github.com/barge-build/barge/internal/project"
	"github.com/barge-build/barge/internal/source"
)

// Warnings is the warning baseline of C and C++ compiles, including the
// standard include paths.
const Warnings = "-Wall -Wextra -Wpedantic -Wshadow -Wconversion -Wdouble-promotion -Wformat=2 -Iinclude -Isrc"

// PIC is the position-independent-code flag added for library artifacts.
const PIC = "-fPIC"

// FortranRuntime is linked when the project has Fortran sources.
const FortranRuntime = "-lgfortran"

// Mode holds the flags a build target contributes.
type Mode struct {
	Compile string
	Link    string
}

// ModeOf returns the flag bundle of target.
func ModeOf(target project.Target) Mode {
	switch target {
	case project.Debug:
		return Mode{Compile: "-Og -g -fsanitize=undefined -fsanitize-trap", Link: "-ggdb"}
	case project.Release:
		return Mode{Compile: "-DNDEBUG -O2 -ffast-math", Link: "-s"}
	}
	panic("flags: unknown target " + target.String())
}

// Set is the assembled flags of one build.
type Set struct {
	C       string
	Cxx     string
	Fortran string
	Cobol   string
	Link    string
}

// Input is everything the flag assembler reads.
type Input struct {
	Settings  project.Settings
	Target    project.Target
	Libraries library.Flags
	// Sources is the full discovery result; it decides the Fortran runtime
	// and the linker scripts.
	Sources source.Files
	// CobolLink is the COBOL runtime link flags, empty without COBOL sources.
	CobolLink string
}

// Assemble composes the flag set. It is a pure function of in.
func Assemble(in Input) Set {
	s := in.Settings
	mode := ModeOf(in.Target)

	pic := ""
	if s.Kind != project.Executable {
		pic = PIC
	}

	fortranLink := ""
	if in.Sources.Has(source.Fortran) {
		fortranLink = FortranRuntime
	}
	var scripts []string
	for _, script := range in.Sources.Paths(source.LinkerScript) {
		scripts = append(scripts, "-T "+script)
	}

	link := []string{mode.Link, in.Libraries.Link, s.CustomLDFlags, fortranLink, in.CobolLink}
	return Set{
		C:       library.Join("-std="+s.CStandard, Warnings, in.Libraries.Compile, mode.Compile, s.CustomCFlags, pic),
		Cxx:     library.Join("-std="+s.CppStandard, Warnings, in.Libraries.Compile, mode.Compile, s.CustomCxxFlags, pic),
		Fortran: library.Join("-std="+s.FortranStandard, s.CustomFortranFlags, pic),
		Cobol:   library.Join("-std="+s.CobolStandard, s.CustomCobolFlags),
		Link:    library.Join(append(link, scripts...)...),
	}
}
