package cli

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "spanwatch",
	Short: "Trace event core for instrumented applications",
	Long:  "Classifies observed outbound calls into typed trace events, folds failures into serializer-safe payloads, and suppresses deny-listed destinations. This CLI inspects and dry-runs the core against recorded data.",
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
