// Package toolchain maps a toolset to concrete executable names.
package toolchain

import "github.com/barge-build/barge/internal/project"

// Executables of one toolset.
type Executables struct {
	Assembler string
	CC        string
	CXX       string
	Fortran   string
	Cobol     string
	// Linker is the C++ driver so that mixed C and C++ objects link.
	Linker   string
	Archiver string
	Debugger string
}

var (
	gnu = Executables{
		Assembler: "gcc",
		CC:        "gcc",
		CXX:       "g++",
		Fortran:   "gfortran",
		Cobol:     "cobc",
		Linker:    "g++",
		Archiver:  "ar",
		Debugger:  "gdb",
	}
	llvm = Executables{
		Assembler: "clang",
		CC:        "clang",
		CXX:       "clang++",
		Fortran:   "gfortran",
		Cobol:     "cobc",
		Linker:    "clang++",
		Archiver:  "ar",
		Debugger:  "lldb",
	}
)

// Resolve returns the executables of toolset t.
func Resolve(t project.Toolset) Executables {
	switch t {
	case project.GNU:
		return gnu
	case project.LLVM:
		return llvm
	}
	panic("toolchain: unknown toolset " + t.String())
}

// DebugArgs returns the debugger command line that runs program with args.
func (e Executables) DebugArgs(program string, args []string) []string {
	if e.Debugger == gnu.Debugger {
		return append([]string{"--args", program}, args...)
	}
	return append([]string{program, "--"}, args...)
}
