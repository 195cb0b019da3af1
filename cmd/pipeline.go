package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/agentlab/ideaforge/internal/ui"
)

var (
	pipelineNum  int
	pipelineType string
)

var pipelineCmd = &cobra.Command{
	Use:   "pipeline [prompt]",
	Short: "Run the full idea pipeline: generate, validate, and draft a PRD",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		orch, _, err := newOrchestrator()
		if err != nil {
			return err
		}

		prompt := strings.Join(args, " ")
		result := orch.FullPipeline(cmd.Context(), prompt, pipelineNum, pipelineType, "")
		if !result.Success {
			return fmt.Errorf("pipeline failed: %s", result.Error)
		}

		sessionID, _ := result.Data["session_id"].(string)
		sess, _ := orch.Session(sessionID)

		fmt.Println(ui.RenderIdeas(sess.Ideas))

		for _, rec := range sess.Validations {
			if title, ok := rec.Idea["title"].(string); ok {
				fmt.Println(ui.StyleTitle.Render(title))
			}
			if results, ok := rec.Validation.Data["validation_results"].(map[string]any); ok {
				fmt.Println(ui.RenderValidation(results))
			} else if rec.Validation.Error != "" {
				fmt.Println(ui.StyleError.Render("Validation failed: " + rec.Validation.Error))
			}
		}

		if sess.PRD != nil {
			fmt.Println(ui.RenderPRDSummary(sess.PRD))
		}

		for _, step := range sess.Steps {
			if step.Status == "failed" {
				fmt.Println(ui.StyleError.Render(fmt.Sprintf("Step %d (%s) failed: %s", step.StepIndex, step.Task, step.Error)))
			}
		}

		if verbose {
			fmt.Println(ui.StyleSubtle.Render("Session: " + sessionID))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(pipelineCmd)

	pipelineCmd.Flags().IntVarP(&pipelineNum, "num", "n", 0, "number of ideas to generate")
	pipelineCmd.Flags().StringVarP(&pipelineType, "type", "t", "business", "idea type: creative, business, or product")
}
