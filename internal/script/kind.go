package script

import (
	"fmt"
	"path/filepath"
)

// Kind is the language of a build step. The set is closed: KindOf is the
// only constructor and every switch over Kind covers all five.
type Kind int

const (
	Shell Kind = iota
	Python
	Perl
	CSource
	CppSource
)

func (k Kind) String() string {
	switch k {
	case Shell:
		return "shell"
	case Python:
		return "python"
	case Perl:
		return "perl"
	case CSource:
		return "c"
	case CppSource:
		return "c++"
	}
	return "unknown"
}

// UnsupportedKindError reports a step whose extension is not a known kind.
type UnsupportedKindError struct {
	Path string
}

func (e *UnsupportedKindError) Error() string {
	return fmt.Sprintf("unsupported build step %s: want .sh, .py, .pl, .c or .cpp", e.Path)
}

// KindOf dispatches on the extension of path.
func KindOf(path string) (Kind, error) {
	switch filepath.Ext(path) {
	case ".sh":
		return Shell, nil
	case ".py":
		return Python, nil
	case ".pl":
		return Perl, nil
	case ".c":
		return CSource, nil
	case ".cpp":
		return CppSource, nil
	}
	return 0, &UnsupportedKindError{Path: path}
}

// Role is when a step runs relative to the build.
type Role int

const (
	PreBuild Role = iota
	PostBuild
)

func (r Role) String() string {
	if r == PostBuild {
		return "postbuild"
	}
	return "prebuild"
}
