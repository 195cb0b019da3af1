package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/agentlab/ideaforge/internal/ui"
)

var (
	ideasNum  int
	ideasType string
)

var ideasCmd = &cobra.Command{
	Use:   "ideas [prompt]",
	Short: "Generate ideas for a prompt",
	Long: `Generate ideas for a prompt using the idea coach.

The --type flag picks the coaching angle: creative, business, or product.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		orch, _, err := newOrchestrator()
		if err != nil {
			return err
		}

		prompt := strings.Join(args, " ")
		result := orch.GenerateIdeas(cmd.Context(), prompt, ideasNum, ideasType, "")
		if !result.Success {
			return fmt.Errorf("idea generation failed: %s", result.Error)
		}

		sessionID, _ := result.Data["session_id"].(string)
		sess, _ := orch.Session(sessionID)
		fmt.Println(ui.RenderIdeas(sess.Ideas))
		if verbose {
			fmt.Println(ui.StyleSubtle.Render("Session: " + sessionID))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(ideasCmd)

	ideasCmd.Flags().IntVarP(&ideasNum, "num", "n", 0, "number of ideas to generate")
	ideasCmd.Flags().StringVarP(&ideasType, "type", "t", "creative", "idea type: creative, business, or product")
}
