package toolchain

import (
	"reflect"
	"testing"

	"github.com/barge-build/barge/internal/project"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		toolset           project.Toolset
		cc, cxx, debugger string
	}{
		{project.GNU, "gcc", "g++", "gdb"},
		{project.LLVM, "clang", "clang++", "lldb"},
	}
	for _, tt := range tests {
		t.Run(tt.toolset.String(), func(t *testing.T) {
			e := Resolve(tt.toolset)
			if e.CC != tt.cc || e.CXX != tt.cxx || e.Debugger != tt.debugger {
				t.Errorf("Resolve(%v) = %+v", tt.toolset, e)
			}
			if e.Fortran != "gfortran" {
				t.Errorf("Fortran = %q, want gfortran", e.Fortran)
			}
			if e.Linker != e.CXX {
				t.Errorf("Linker = %q, want the C++ driver %q", e.Linker, e.CXX)
			}
		})
	}
}

func TestDebugArgs(t *testing.T) {
	args := []string{"-v", "x"}
	if got, want := Resolve(project.GNU).DebugArgs("build/debug/demo", args), []string{"--args", "build/debug/demo", "-v", "x"}; !reflect.DeepEqual(got, want) {
		t.Errorf("gdb args = %q, want %q", got, want)
	}
	if got, want := Resolve(project.LLVM).DebugArgs("build/debug/demo", args), []string{"build/debug/demo", "--", "-v", "x"}; !reflect.DeepEqual(got, want) {
		t.Errorf("lldb args = %q, want %q", got, want)
	}
}
