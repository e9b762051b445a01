package project

// Kind is the kind of artifact a project produces.
type Kind int

const (
	kindUnset Kind = iota
	Executable
	SharedLibrary
	StaticLibrary
)

var kindNames = map[Kind]string{
	Executable:    "executable",
	SharedLibrary: "shared_library",
	StaticLibrary: "static_library",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "unknown"
}

// ParseKind parses a descriptor token. Tokens are case-sensitive.
func ParseKind(s string) (Kind, error) {
	for k, name := range kindNames {
		if name == s {
			return k, nil
		}
	}
	return kindUnset, &InvalidValueError{
		What:  "project type",
		Value: s,
		Valid: []string{"executable", "shared_library", "static_library"},
	}
}

func (k Kind) MarshalText() ([]byte, error) {
	if _, ok := kindNames[k]; !ok {
		return nil, &InvalidValueError{What: "project type", Value: k.String()}
	}
	return []byte(k.String()), nil
}

func (k *Kind) UnmarshalText(text []byte) error {
	v, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = v
	return nil
}

// Toolset names a family of compiler, linker and debugger executables.
type Toolset int

const (
	LLVM Toolset = iota
	GNU
)

func (t Toolset) String() string {
	switch t {
	case GNU:
		return "gnu"
	case LLVM:
		return "llvm"
	}
	return "unknown"
}

// ParseToolset parses "gnu" or "llvm".
func ParseToolset(s string) (Toolset, error) {
	switch s {
	case "gnu":
		return GNU, nil
	case "llvm":
		return LLVM, nil
	}
	return LLVM, &InvalidValueError{What: "toolset", Value: s, Valid: []string{"gnu", "llvm"}}
}

func (t Toolset) MarshalText() ([]byte, error) {
	if t != GNU && t != LLVM {
		return nil, &InvalidValueError{What: "toolset", Value: t.String()}
	}
	return []byte(t.String()), nil
}

func (t *Toolset) UnmarshalText(text []byte) error {
	v, err := ParseToolset(string(text))
	if err != nil {
		return err
	}
	*t = v
	return nil
}

// Target selects the optimization and debugging flag bundle of a build.
type Target int

const (
	Debug Target = iota
	Release
)

func (t Target) String() string {
	if t == Release {
		return "release"
	}
	return "debug"
}

// ParseTarget parses "debug" or "release". Anything else, including a
// differently cased token, is an error rather than a fallback to Debug.
func ParseTarget(s string) (Target, error) {
	switch s {
	case "debug":
		return Debug, nil
	case "release":
		return Release, nil
	}
	return Debug, &InvalidValueError{What: "build target", Value: s, Valid: []string{"debug", "release"}}
}
