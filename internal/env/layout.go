package env

import (
	"path"
	"strings"

	"github.com/barge-build/barge/internal/project"
)

// Project layout, relative to the project root. Paths use forward slashes:
// they end up in the build plan and in step environments.
//
//	src/                     sources, headers, linker scripts
//	include/                 public headers
//	build/<target>/          artifact
//	build/<target>/obj/      objects, mirroring src/
//	build/<target>/<role>/   compiled pre/post build steps
const (
	SourceDir  = "src"
	IncludeDir = "include"
	BuildDir   = "build"
)

// TargetDir is where the artifact of target is placed.
func TargetDir(target project.Target) string {
	return path.Join(BuildDir, target.String())
}

// ObjDir is where the objects of target are placed.
func ObjDir(target project.Target) string {
	return path.Join(TargetDir(target), "obj")
}

// ObjectPath maps a source path such as "src/net/io.c" to its object,
// "build/<target>/obj/net/io.c.o".
func ObjectPath(target project.Target, source string) string {
	rel := strings.TrimPrefix(source, SourceDir+"/")
	return path.Join(ObjDir(target), rel) + ".o"
}
