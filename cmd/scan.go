package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/user/a11y-audit/pkg/axe"
	"github.com/user/a11y-audit/pkg/browser"
	"github.com/user/a11y-audit/pkg/candidate"
	"github.com/user/a11y-audit/pkg/config"
)

// runMetadata identifies one scan run inside its artifact directory.
type runMetadata struct {
	RunID     string    `json:"run_id"`
	PageURL   string    `json:"page_url"`
	ScannedAt time.Time `json:"scanned_at"`
}

var scanCmd = &cobra.Command{
	Use:   "scan [url]",
	Short: "Scan a page with axe-core and build the review candidate set",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		pageURL := args[0]

		cfg, err := config.LoadConfig()
		if err != nil {
			fmt.Printf("Error loading config: %v\n", err)
			return
		}

		outDir, _ := cmd.Flags().GetString("out")
		if outDir == "" {
			outDir = filepath.Join("out", runSlug(pageURL))
		}

		bcfg := browser.DefaultConfig()
		bcfg.NavigationTimeoutMs = cfg.NavigationTimeoutMs
		if cmd.Flags().Changed("timeout") {
			bcfg.NavigationTimeoutMs, _ = cmd.Flags().GetInt("timeout")
		}

		screenshotDir := filepath.Join(outDir, "screenshots")
		if err := os.MkdirAll(screenshotDir, 0755); err != nil {
			fmt.Printf("Error creating output dir: %v\n", err)
			return
		}

		ctx := context.Background()
		fmt.Printf("Launching browser...\n")
		session, err := browser.NewSession(ctx, bcfg)
		if err != nil {
			fmt.Printf("Error launching browser: %v\n", err)
			return
		}
		defer session.Close()

		fmt.Printf("Navigating to %s\n", pageURL)
		if err := session.Navigate(pageURL); err != nil {
			fmt.Printf("Error navigating: %v\n", err)
			return
		}
		if err := session.InjectAxe(ctx); err != nil {
			fmt.Printf("Error injecting scanner: %v\n", err)
			return
		}

		fmt.Println("Running axe-core scan...")
		result, raw, err := session.RunAxe(ctx)
		if err != nil {
			fmt.Printf("Error running scan: %v\n", err)
			return
		}

		meta := runMetadata{
			RunID:     uuid.NewString(),
			PageURL:   pageURL,
			ScannedAt: time.Now().UTC(),
		}
		if err := candidate.AtomicWriteJSON(filepath.Join(outDir, "metadata.json"), meta); err != nil {
			fmt.Printf("Error writing metadata: %v\n", err)
			return
		}

		var pretty bytes.Buffer
		if err := json.Indent(&pretty, raw, "", "  "); err != nil {
			pretty.Write(raw)
		}
		if err := os.WriteFile(filepath.Join(outDir, "axe_results.json"), pretty.Bytes(), 0644); err != nil {
			fmt.Printf("Error writing scan results: %v\n", err)
			return
		}

		findings := axe.Normalize(result)
		if err := axe.WriteNodeLog(filepath.Join(outDir, "axe_nodes.jsonl"), pageURL, findings); err != nil {
			fmt.Printf("Error writing node log: %v\n", err)
			return
		}

		cands := candidate.Select(pageURL, findings, session)
		candidate.Enrich(cands, session, screenshotDir, outDir)
		if err := candidate.WriteArtifact(outDir, cands); err != nil {
			fmt.Printf("Error writing candidates: %v\n", err)
			return
		}

		fmt.Println("---------------------------------")
		fmt.Printf("Scan complete. Run ID: %s\n", meta.RunID)
		fmt.Printf("Violations: %d  Incomplete: %d  Passes: %d\n",
			len(result.Violations), len(result.Incomplete), len(result.Passes))
		fmt.Printf("Review candidates: %d\n", len(cands))
		fmt.Printf("Artifacts written to %s\n", outDir)
		fmt.Printf("Next: a11y-audit review %s\n", outDir)
	},
}

// runSlug derives a filesystem-safe run directory name from a URL.
func runSlug(raw string) string {
	s := strings.TrimPrefix(raw, "https://")
	s = strings.TrimPrefix(s, "http://")
	s = strings.Trim(s, "/")
	if s == "" {
		s = "page"
	}
	return candidate.SanitizeFilename(s)
}

func init() {
	scanCmd.Flags().StringP("out", "o", "", "Output directory (default out/<url-slug>)")
	scanCmd.Flags().IntP("timeout", "t", 0, "Navigation timeout in milliseconds (overrides config)")
	rootCmd.AddCommand(scanCmd)
}
