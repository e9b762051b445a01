package project

// Defaults for every optional descriptor field. Settings is the only
// consumer; nothing else in the tree should know these values.
const (
	DefaultCStandard       = "c11"
	DefaultCppStandard     = "c++17"
	DefaultFortranStandard = "f2003"
	DefaultCobolStandard   = "cobol2014"
	DefaultToolset         = LLVM
	DefaultFormatStyle     = "Google"
)

// Settings is a Project with every default applied.
type Settings struct {
	Name        string
	Version     string
	Authors     []string
	Description string
	Kind        Kind
	Toolset     Toolset

	CStandard       string
	CppStandard     string
	FortranStandard string
	CobolStandard   string

	Libraries Libraries

	CustomCFlags       string
	CustomCxxFlags     string
	CustomFortranFlags string
	CustomCobolFlags   string
	CustomLDFlags      string

	// MakeOpts is nil when the descriptor leaves executor options to the
	// job-count heuristic.
	MakeOpts []string

	FormatStyle    string
	PreBuildSteps  []string
	PostBuildSteps []string
}

// Settings resolves the optional fields of p against their defaults.
func (p *Project) Settings() Settings {
	s := Settings{
		Name:        p.Name,
		Version:     p.Version,
		Authors:     p.Authors,
		Description: p.Description,
		Kind:        p.Kind,
		Toolset:     DefaultToolset,

		CStandard:       or(p.CStandard, DefaultCStandard),
		CppStandard:     or(p.CppStandard, DefaultCppStandard),
		FortranStandard: or(p.FortranStandard, DefaultFortranStandard),
		CobolStandard:   or(p.CobolStandard, DefaultCobolStandard),

		Libraries: p.ExternalLibraries,

		CustomCFlags:       or(p.CustomCFlags, ""),
		CustomCxxFlags:     or(p.CustomCxxFlags, ""),
		CustomFortranFlags: or(p.CustomFortranFlags, ""),
		CustomCobolFlags:   or(p.CustomCobolFlags, ""),
		CustomLDFlags:      or(p.CustomLDFlags, ""),

		FormatStyle:    or(p.FormatStyle, DefaultFormatStyle),
		PreBuildSteps:  p.PreBuildSteps,
		PostBuildSteps: p.PostBuildSteps,
	}
	if p.Toolset != nil {
		s.Toolset = *p.Toolset
	}
	if p.CustomMakeOpts != nil {
		s.MakeOpts = splitFields(*p.CustomMakeOpts)
	}
	return s
}

func or(v *string, def string) string {
	if v != nil {
		return *v
	}
	return def
}
