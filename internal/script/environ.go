package script

import (
	"strings"
	"time"

	"github.com/barge-build/barge/internal/env"
	"github.com/barge-build/barge/internal/project"
)

// EnvVersion is bumped whenever a variable is renamed or removed.
const EnvVersion = "1"

// Context is what every step of one build shares.
type Context struct {
	Settings   project.Settings
	Target     project.Target
	Commit     string
	Branch     string
	BuildStart time.Time
	NoColor    bool
}

// Environ returns the variables injected into a step with role started at
// stepStart. Steps of every kind receive the same set.
func (c *Context) Environ(role Role, stepStart time.Time) map[string]string {
	s := c.Settings
	vars := map[string]string{
		"BARGE_ENV_VERSION":           EnvVersion,
		"BARGE_PROJECT_NAME":          s.Name,
		"BARGE_PROJECT_VERSION":       s.Version,
		"BARGE_PROJECT_AUTHORS":       strings.Join(s.Authors, ", "),
		"BARGE_PROJECT_DESCRIPTION":   s.Description,
		"BARGE_BUILD_TARGET":          c.Target.String(),
		"BARGE_OBJECTS_DIR":           env.ObjDir(c.Target),
		"BARGE_BINARY_DIR":            env.TargetDir(c.Target),
		"BARGE_BUILD_STEP_KIND":       role.String(),
		"BARGE_TOOLSET":               s.Toolset.String(),
		"BARGE_GIT_COMMIT":            strings.TrimSpace(c.Commit),
		"BARGE_GIT_BRANCH":            strings.TrimSpace(c.Branch),
		"BARGE_BUILD_START_TIMESTAMP": c.BuildStart.Format(time.RFC3339),
		"BARGE_STEP_START_TIMESTAMP":  stepStart.Format(time.RFC3339),
	}
	if c.NoColor {
		vars["NO_COLOR"] = "1"
	}
	return vars
}
