package internal

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/barge-build/barge/internal/ctxlog"
	"github.com/barge-build/barge/internal/env"
	"github.com/barge-build/barge/internal/project"
	"github.com/barge-build/barge/internal/vcs"
)

var (
	initType string
	initYAML bool
)

var initCmd = &cobra.Command{
	Use:   "init [name]",
	Short: "Initialize a new project descriptor",
	Long: `Initialize creates a barge.json file in the current directory. The git user,
when configured, is recorded as the author.`,
	Args: cobra.ExactArgs(1),
	RunE: runInit,
}

// newVCS is replaced in tests.
var newVCS = func() vcs.VCS {
	return vcs.NewGitVCS(vcs.WithGitPath(env.LookupTools().Git))
}

func init() {
	initCmd.Flags().StringVarP(&initType, "type", "t", "executable", "Project type: executable, shared-library or static-library")
	initCmd.Flags().BoolVar(&initYAML, "yaml", false, "Write barge.yaml instead of barge.json")
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	kind, err := parseKindFlag(initType)
	if err != nil {
		return err
	}

	name := project.JSONFile
	if initYAML {
		name = project.YAMLFile
	}
	for _, existing := range []string{project.JSONFile, project.YAMLFile} {
		if _, err := os.Stat(existing); err == nil {
			return fmt.Errorf("%s already exists", existing)
		}
	}

	var authors []string
	if user, err := newVCS().User(cmd.Context()); err == nil {
		authors = append(authors, user)
	} else {
		ctxlog.FromContext(cmd.Context()).Debug("no git user for authors", "err", err)
	}

	p := project.New(args[0], kind, authors...)
	if err := p.Save(filepath.Join(".", name)); err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}

	printer().Success("Initialized %s project %s", kind, args[0])
	return nil
}

// parseKindFlag accepts the descriptor tokens and their dashed and short
// spellings.
func parseKindFlag(s string) (project.Kind, error) {
	switch strings.ToLower(s) {
	case "exe", "bin":
		return project.Executable, nil
	case "shared-lib", "shared-library", "shared":
		return project.SharedLibrary, nil
	case "static-lib", "static-library", "static":
		return project.StaticLibrary, nil
	}
	return project.ParseKind(s)
}
