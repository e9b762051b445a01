package internal

import "github.com/spf13/cobra"

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Run static analysis on the C and C++ sources",
	Args:  cobra.NoArgs,
	RunE:  runAnalyze,
}

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove the build artifacts of every target",
	Args:  cobra.NoArgs,
	RunE:  runClean,
}

func init() {
	rootCmd.AddCommand(analyzeCmd, cleanCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	b, err := openProject()
	if err != nil {
		return err
	}
	return b.Analyze(cmd.Context())
}

func runClean(cmd *cobra.Command, args []string) error {
	b, err := openProject()
	if err != nil {
		return err
	}
	return b.Clean()
}
