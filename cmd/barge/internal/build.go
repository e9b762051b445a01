package internal

import (
	"github.com/spf13/cobra"

	"github.com/barge-build/barge/internal/build"
	"github.com/barge-build/barge/internal/project"
)

var buildCmd = &cobra.Command{
	Use:   "build [debug|release]",
	Short: "Build the project",
	Long:  `Build runs the pre-build steps, builds the project for the target (debug by default) and runs the post-build steps.`,
	Args:  cobra.MaximumNArgs(1),
	RunE:  runBuild,
}

var rebuildCmd = &cobra.Command{
	Use:   "rebuild [debug|release]",
	Short: "Remove the artifacts of a target and build it again",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runRebuild,
}

var runCmd = &cobra.Command{
	Use:   "run [debug|release] [-- args...]",
	Short: "Build and run the project executable",
	RunE:  runRun,
}

var debugCmd = &cobra.Command{
	Use:   "debug [debug|release] [-- args...]",
	Short: "Build the project executable and run it in the debugger",
	RunE:  runDebug,
}

func init() {
	rootCmd.AddCommand(buildCmd, rebuildCmd, runCmd, debugCmd)
}

func runBuild(cmd *cobra.Command, args []string) error {
	return withTarget(args, func(b *build.Builder, target project.Target) error {
		return b.Build(cmd.Context(), target)
	})
}

func runRebuild(cmd *cobra.Command, args []string) error {
	return withTarget(args, func(b *build.Builder, target project.Target) error {
		return b.Rebuild(cmd.Context(), target)
	})
}

func runRun(cmd *cobra.Command, args []string) error {
	targetArgs, programArgs, err := splitProgramArgs(args, cmd.ArgsLenAtDash())
	if err != nil {
		return err
	}
	return withTarget(targetArgs, func(b *build.Builder, target project.Target) error {
		return exitCode(b.Run(cmd.Context(), target, programArgs))
	})
}

func runDebug(cmd *cobra.Command, args []string) error {
	targetArgs, programArgs, err := splitProgramArgs(args, cmd.ArgsLenAtDash())
	if err != nil {
		return err
	}
	return withTarget(targetArgs, func(b *build.Builder, target project.Target) error {
		return exitCode(b.Debug(cmd.Context(), target, programArgs))
	})
}

func withTarget(args []string, fn func(*build.Builder, project.Target) error) error {
	target, err := parseTarget(args)
	if err != nil {
		return err
	}
	b, err := openProject()
	if err != nil {
		return err
	}
	return fn(b, target)
}

func exitCode(code int, err error) error {
	if err != nil {
		return err
	}
	if code != 0 {
		return &exitCodeError{code: code}
	}
	return nil
}
