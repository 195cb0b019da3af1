package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/agentlab/ideaforge/internal/agents"
	"github.com/agentlab/ideaforge/internal/config"
	"github.com/agentlab/ideaforge/internal/ui"
)

var validateCmd = &cobra.Command{
	Use:   "validate [idea.json]",
	Short: "Validate a single idea from a JSON file or stdin",
	Long: `Validate a single idea against market, competition, technical, and
financial criteria. The idea is read as a JSON object from the given file,
or from stdin when no file is named.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var raw []byte
		var err error
		if len(args) == 1 {
			raw, err = os.ReadFile(args[0])
		} else {
			raw, err = io.ReadAll(cmd.InOrStdin())
		}
		if err != nil {
			return fmt.Errorf("read idea: %w", err)
		}

		var idea map[string]any
		if err := json.Unmarshal(raw, &idea); err != nil {
			return fmt.Errorf("parse idea: %w", err)
		}

		cfg, err := config.Load()
		if err != nil {
			return err
		}
		validator := agents.NewValidator(cfg.LLM.NewGateway())

		result := validator.ValidateIdea(cmd.Context(), idea, "")
		if !result.Success {
			return fmt.Errorf("validation failed: %s", result.Error)
		}

		if results, ok := result.Data["validation_results"].(map[string]any); ok {
			fmt.Println(ui.RenderValidation(results))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
