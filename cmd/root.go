package cmd

import (
	"github.com/spf13/cobra"

	"github.com/user/a11y-audit/pkg/llm"
)

var rootCmd = &cobra.Command{
	Use:   "a11y-audit",
	Short: "Accessibility audit pipeline (axe-core scan + AI semantic review)",
	Long: `a11y-audit scans a page with axe-core, selects findings that need
human-level judgment, enriches them with DOM context, and reviews each one
with an AI model (or an offline stub), producing traceable artifacts.`,
}

var DebugMode bool

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&DebugMode, "debug", false, "Enable debug logging")
	cobra.OnInitialize(func() {
		llm.DebugEnabled = DebugMode
	})
}
