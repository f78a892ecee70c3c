package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/user/a11y-audit/pkg/config"
	"github.com/user/a11y-audit/pkg/llm"
	"github.com/user/a11y-audit/pkg/review"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration (API key, model, review behavior)",
}

var setKeyCmd = &cobra.Command{
	Use:   "set-key",
	Short: "Set the Gemini API key",
	Run: func(cmd *cobra.Command, args []string) {
		key, _ := cmd.Flags().GetString("key")
		if key == "" {
			fmt.Println("Error: --key is required")
			return
		}

		cfg, err := config.LoadConfig()
		if err != nil {
			fmt.Printf("Error loading config: %v\n", err)
			return
		}

		cfg.APIKey = key
		if err := config.SaveConfig(cfg); err != nil {
			fmt.Printf("Error saving config: %v\n", err)
			return
		}
		fmt.Println("API key saved.")
	},
}

var setModelCmd = &cobra.Command{
	Use:   "set-model",
	Short: "Set the active model",
	Run: func(cmd *cobra.Command, args []string) {
		model, _ := cmd.Flags().GetString("model")
		if model == "" {
			fmt.Println("Error: --model is required")
			return
		}

		cfg, err := config.LoadConfig()
		if err != nil {
			fmt.Printf("Error loading config: %v\n", err)
			return
		}

		cfg.Model = model
		if err := config.SaveConfig(cfg); err != nil {
			fmt.Printf("Error saving config: %v\n", err)
			return
		}
		fmt.Printf("Active model updated: %s\n", cfg.Model)
	},
}

var listModelsCmd = &cobra.Command{
	Use:   "list-models",
	Short: "List available models for the configured key",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.LoadConfig()
		if err != nil {
			fmt.Println("Error loading config:", err)
			return
		}

		apiKey := cfg.ResolveAPIKey()
		if apiKey == "" {
			fmt.Println("No API key configured. Run 'a11y-audit config set-key' or set GOOGLE_API_KEY.")
			return
		}

		fmt.Println("Fetching models...")
		ctx := context.Background()
		client, err := llm.NewGemini(ctx, apiKey, cfg.Model, review.SystemInstruction)
		if err != nil {
			fmt.Println("Error initializing client:", err)
			return
		}
		defer client.Close()

		models, err := client.ListModels(ctx)
		if err != nil {
			fmt.Println("Error fetching models:", err)
			return
		}

		fmt.Println("\nAvailable Models:")
		for _, m := range models {
			mark := " "
			if m == cfg.Model {
				mark = "*"
			}
			fmt.Printf("%s %s\n", mark, m)
		}
	},
}

func init() {
	setKeyCmd.Flags().StringP("key", "k", "", "API Key")
	setModelCmd.Flags().StringP("model", "m", "", "Model name")

	configCmd.AddCommand(setKeyCmd)
	configCmd.AddCommand(setModelCmd)
	configCmd.AddCommand(listModelsCmd)
	rootCmd.AddCommand(configCmd)
}
