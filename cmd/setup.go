package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/user/a11y-audit/pkg/config"
	"github.com/user/a11y-audit/pkg/llm"
	"github.com/user/a11y-audit/pkg/review"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Interactive setup wizard",
	Run: func(cmd *cobra.Command, args []string) {
		scanner := bufio.NewScanner(os.Stdin)
		fmt.Println("Welcome to a11y-audit Setup")
		fmt.Println("---------------------------------")

		// 1. Enter API Key
		fmt.Println("Step 1: Enter your Gemini API Key")
		fmt.Print("> ")
		scanner.Scan()
		apiKey := strings.TrimSpace(scanner.Text())
		if apiKey == "" {
			fmt.Println("API Key cannot be empty.")
			return
		}

		// 2. Fetch Models
		fmt.Println("\nStep 2: Validating key and fetching available models...")
		ctx := context.Background()

		client, err := llm.NewGemini(ctx, apiKey, "", review.SystemInstruction)
		if err != nil {
			fmt.Printf("Error initializing client: %v\n", err)
			return
		}
		defer client.Close()

		models, err := client.ListModels(ctx)
		var selectedModel string

		if err != nil {
			fmt.Printf("Warning: Could not fetch models from API: %v\n", err)
			fmt.Printf("Please enter model name manually (e.g., '%s'):\n", llm.DefaultModel)
			fmt.Print("> ")
			scanner.Scan()
			selectedModel = strings.TrimSpace(scanner.Text())
			if selectedModel == "" {
				selectedModel = llm.DefaultModel
			}
		} else {
			fmt.Printf("Successfully retrieved %d models.\n", len(models))
			for i, m := range models {
				fmt.Printf("%d. %s\n", i+1, m)
			}
			fmt.Print("Select Model (number) > ")
			scanner.Scan()
			selStr := strings.TrimSpace(scanner.Text())
			selIdx, err := strconv.Atoi(selStr)
			if err != nil || selIdx < 1 || selIdx > len(models) {
				fmt.Println("Invalid selection. Using first available model.")
				selectedModel = models[0]
			} else {
				selectedModel = models[selIdx-1]
			}
		}

		// 3. Save Configuration
		fmt.Println("\nStep 3: Saving Configuration...")
		cfg, err := config.LoadConfig()
		if err != nil {
			fmt.Printf("Error loading config: %v\n", err)
			return
		}

		cfg.APIKey = apiKey
		cfg.Model = selectedModel
		cfg.UseLiveVerdicts = true

		if err := config.SaveConfig(cfg); err != nil {
			fmt.Printf("Error saving config: %v\n", err)
			return
		}

		fmt.Println("---------------------------------")
		fmt.Println("Setup Complete!")
		fmt.Printf("Model: %s\n", selectedModel)
		fmt.Println("Live verdicts are enabled. Run 'a11y-audit scan <url>' to start.")
	},
}

func init() {
	configCmd.AddCommand(setupCmd)
}
