package internal

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/barge-build/barge/internal/build"
	"github.com/barge-build/barge/internal/project"
)

var planCmd = &cobra.Command{
	Use:   "plan [debug|release]",
	Short: "Print the build plan handed to make",
	Long:  `Plan synthesizes the build plan of the target (debug by default) and prints it without running it.`,
	Args:  cobra.MaximumNArgs(1),
	RunE:  runPlan,
}

func init() {
	rootCmd.AddCommand(planCmd)
}

func runPlan(cmd *cobra.Command, args []string) error {
	return withTarget(args, func(b *build.Builder, target project.Target) error {
		plan, err := b.Synthesize(cmd.Context(), target)
		if err != nil {
			return err
		}
		_, err = fmt.Fprint(cmd.OutOrStdout(), plan.Text())
		return err
	})
}
