package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/user/a11y-audit/pkg/candidate"
	"github.com/user/a11y-audit/pkg/config"
	"github.com/user/a11y-audit/pkg/prompt"
	"github.com/user/a11y-audit/pkg/review"
	"github.com/user/a11y-audit/pkg/techniques"
)

var reviewCmd = &cobra.Command{
	Use:   "review [run-dir]",
	Short: "Review scan candidates with the AI model (or offline stub)",
	Long: `Review reads the candidates artifact from a previous scan, compiles a
prompt per candidate from the technique library, obtains a verdict for each
(live model when enabled and a key is configured, offline stub otherwise),
and writes the verdicts artifact next to the candidates.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runDir := args[0]

		cfg, err := config.LoadConfig()
		if err != nil {
			fmt.Printf("Error loading config: %v\n", err)
			return
		}

		opts := review.Options{
			Live:        cfg.UseLiveVerdicts,
			APIKey:      cfg.ResolveAPIKey(),
			Model:       cfg.Model,
			SkipNonWCAG: cfg.SkipNonWCAG,
		}
		if cmd.Flags().Changed("live") {
			opts.Live, _ = cmd.Flags().GetBool("live")
		}
		if cmd.Flags().Changed("skip-non-wcag") {
			opts.SkipNonWCAG, _ = cmd.Flags().GetBool("skip-non-wcag")
		}
		if cmd.Flags().Changed("model") {
			opts.Model, _ = cmd.Flags().GetString("model")
		}
		opts.Concurrency, _ = cmd.Flags().GetInt("concurrency")

		cands, err := candidate.ReadArtifact(runDir)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		techniquesDir, _ := cmd.Flags().GetString("techniques")
		lib := techniques.LoadLibrary(techniquesDir)
		if len(lib.Docs) == 0 {
			fmt.Printf("No technique documents found in %s; synthesizing guidance per candidate.\n", techniquesDir)
		}

		tpl := prompt.DefaultTemplate()
		if tplPath, _ := cmd.Flags().GetString("template"); tplPath != "" {
			data, err := os.ReadFile(tplPath)
			if err != nil {
				fmt.Printf("Error reading template: %v\n", err)
				return
			}
			tpl = string(data)
		}

		mode := "stub"
		if opts.Live && opts.APIKey != "" {
			mode = "live (" + opts.Model + ")"
		}
		fmt.Printf("Reviewing %d candidates [%s]...\n", len(cands), mode)

		res, err := review.Run(context.Background(), opts, cands, lib, tpl, runDir)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		fmt.Println("---------------------------------")
		fmt.Printf("Reviewed: %d  Skipped: %d\n", res.Reviewed, res.Skipped)
		fmt.Printf("Verdicts: %s\n", filepath.Join(runDir, review.VerdictsFile))
		fmt.Printf("Prompts:  %s\n", filepath.Join(runDir, "prompts"))
	},
}

func init() {
	reviewCmd.Flags().Bool("live", false, "Enable live model verdicts (overrides config)")
	reviewCmd.Flags().Bool("skip-non-wcag", false, "Skip candidates with no WCAG mapping (overrides config)")
	reviewCmd.Flags().StringP("model", "m", "", "Model name (overrides config)")
	reviewCmd.Flags().String("template", "", "Prompt template file (default: built-in)")
	reviewCmd.Flags().String("techniques", "techniques", "Technique library directory")
	reviewCmd.Flags().IntP("concurrency", "c", 0, "Concurrent verdict requests (default 4)")
	rootCmd.AddCommand(reviewCmd)
}
