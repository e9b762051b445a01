package internal

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/barge-build/barge/internal/build"
	"github.com/barge-build/barge/internal/ctxlog"
	"github.com/barge-build/barge/internal/env"
	"github.com/barge-build/barge/internal/output"
	"github.com/barge-build/barge/internal/project"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "barge",
	Short: "barge is a build orchestrator for native projects",
	Long: `barge turns a project descriptor into a build plan for make and runs it,
together with the pre- and post-build steps the project declares.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := env.LogLevel()
		if verbose {
			level = "debug"
		}
		cmd.SetContext(ctxlog.WithLogger(cmd.Context(), ctxlog.New(os.Stderr, level)))
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}

// exitCodeError carries the exit status of a program launched by run or
// debug.
type exitCodeError struct {
	code int
}

func (e *exitCodeError) Error() string {
	return fmt.Sprintf("exit status %d", e.code)
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.ExecuteContext(context.Background())
	if err == nil {
		return
	}
	var exit *exitCodeError
	if errors.As(err, &exit) {
		os.Exit(exit.code)
	}
	printer().Error("%v", err)
	os.Exit(1)
}

func printer() *output.Printer {
	return output.New(env.NoColor())
}

// openProject loads the descriptor of the project containing the working
// directory, along with its .env file.
func openProject() (*build.Builder, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	path, err := project.Find(wd)
	if err != nil {
		return nil, err
	}
	root := filepath.Dir(path)
	if err := env.LoadDotEnv(root); err != nil {
		return nil, fmt.Errorf("load %s: %w", env.DotEnv, err)
	}
	p, err := project.Load(path)
	if err != nil {
		return nil, err
	}
	return build.New(root, p,
		build.WithPrinter(printer()),
		build.WithStdin(os.Stdin),
		build.WithOutput(os.Stdout, os.Stderr),
	), nil
}

// parseTarget reads the optional build target argument.
func parseTarget(args []string) (project.Target, error) {
	if len(args) == 0 {
		return project.Debug, nil
	}
	return project.ParseTarget(args[0])
}
