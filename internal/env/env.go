// Package env reads the process environment barge depends on.
package env

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	xenv "github.com/xyproto/env/v2"
)

// DotEnv is the optional per-project environment file.
const DotEnv = ".env"

// Tools names the external executables barge drives. Each can be overridden
// through the environment, e.g. BARGE_MAKE=gmake.
type Tools struct {
	Make      string
	PkgConfig string
	CobConfig string
	Git       string
	Analyzer  string
}

// LookupTools reads the tool overrides.
func LookupTools() Tools {
	return Tools{
		Make:      xenv.Str("BARGE_MAKE", "make"),
		PkgConfig: xenv.Str("BARGE_PKG_CONFIG", "pkg-config"),
		CobConfig: xenv.Str("BARGE_COB_CONFIG", "cob-config"),
		Git:       xenv.Str("BARGE_GIT", "git"),
		Analyzer:  xenv.Str("BARGE_ANALYZER", "clang-tidy"),
	}
}

// NoColor reports whether NO_COLOR asks for uncoloured output.
func NoColor() bool {
	return xenv.Str("NO_COLOR") != ""
}

// LogLevel is the slog level named by BARGE_LOG.
func LogLevel() string {
	return xenv.Str("BARGE_LOG", "warn")
}

// LoadDotEnv loads root/.env into the process environment and refreshes the
// lookups of this package. Variables that are already set win. A missing
// file is not an error.
func LoadDotEnv(root string) error {
	path := filepath.Join(root, DotEnv)
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return err
	}
	Reload()
	return nil
}

// Reload rereads the process environment. Lookups are served from a snapshot
// taken on first use, so call it after changing variables with os.Setenv.
func Reload() {
	xenv.Load()
}
