package source

import (
	"reflect"
	"testing"
	"testing/fstest"
)

func tree() fstest.MapFS {
	return fstest.MapFS{
		"src/main.c":          {},
		"src/util/z.cpp":      {},
		"src/util/a.hpp":      {},
		"src/boot.s":          {},
		"src/num.f90":         {},
		"src/report.cob":      {},
		"src/include.h":       {},
		"src/layout.ld":       {},
		"src/README.md":       {},
		"src/main.cc":         {},
		"include/public.h":    {},
		"build/debug/obj/x.o": {},
	}
}

func paths(files []File) []string {
	var ps []string
	for _, f := range files {
		ps = append(ps, f.Path)
	}
	return ps
}

func TestDiscover(t *testing.T) {
	tests := []struct {
		mode Mode
		want []string
	}{
		{All, []string{
			"src/boot.s", "src/include.h", "src/layout.ld", "src/main.c",
			"src/num.f90", "src/report.cob", "src/util/a.hpp", "src/util/z.cpp",
		}},
		{CompiledOnly, []string{
			"src/boot.s", "src/main.c", "src/num.f90", "src/report.cob", "src/util/z.cpp",
		}},
		{LinkerScriptsOnly, []string{"src/layout.ld"}},
	}
	for _, tt := range tests {
		got, err := Discover(tree(), "src", tt.mode)
		if err != nil {
			t.Fatalf("Discover(%v) error = %v", tt.mode, err)
		}
		if !reflect.DeepEqual(paths(got), tt.want) {
			t.Errorf("Discover(%v) = %q, want %q", tt.mode, paths(got), tt.want)
		}
	}
}

func TestDiscoverMissingDir(t *testing.T) {
	got, err := Discover(fstest.MapFS{"README.md": {}}, "src", All)
	if err != nil || len(got) != 0 {
		t.Errorf("Discover() = %v, %v; want no files and no error", got, err)
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		role Role
		lang Language
		ok   bool
	}{
		{"src/a.c", CompiledUnit, C, true},
		{"src/a.cpp", CompiledUnit, Cpp, true},
		{"src/a.s", CompiledUnit, Assembly, true},
		{"src/a.f90", CompiledUnit, Fortran, true},
		{"src/a.cob", CompiledUnit, Cobol, true},
		{"src/a.h", Header, C, true},
		{"src/a.hpp", Header, Cpp, true},
		{"src/a.ld", LinkerScript, C, true},
		{"src/a.C", 0, 0, false},
		{"src/Makefile", 0, 0, false},
	}
	for _, tt := range tests {
		f, ok := Classify(tt.name)
		if ok != tt.ok {
			t.Errorf("Classify(%q) ok = %v, want %v", tt.name, ok, tt.ok)
			continue
		}
		if ok && (f.Role != tt.role || f.Language != tt.lang) {
			t.Errorf("Classify(%q) = %+v", tt.name, f)
		}
	}
}

func TestFiles(t *testing.T) {
	all, err := Discover(tree(), "src", All)
	if err != nil {
		t.Fatal(err)
	}
	files := Files(all)
	if !files.Has(Fortran) || !files.Has(Cobol) {
		t.Error("Has() missed a compiled language")
	}
	if got := files.Compiled(Cpp); !reflect.DeepEqual(got, []string{"src/util/z.cpp"}) {
		t.Errorf("Compiled(Cpp) = %q", got)
	}
	if got := files.Paths(LinkerScript); !reflect.DeepEqual(got, []string{"src/layout.ld"}) {
		t.Errorf("Paths(LinkerScript) = %q", got)
	}
	if Cpp.Ext() != ".cpp" || Fortran.Ext() != ".f90" {
		t.Errorf("Ext() = %q %q", Cpp.Ext(), Fortran.Ext())
	}
}
