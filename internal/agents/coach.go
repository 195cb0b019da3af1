/*
Package agents contains the specialized IdeaForge agents: idea generation,
validation, and product-requirements drafting. Each fills a role-specific
prompt, calls the provider gateway, and best-effort parses the completion,
degrading to canned content when the model's output is unusable.
*/
package agents

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/agentlab/ideaforge/internal/agents/core"
	"github.com/agentlab/ideaforge/internal/llm"
	"github.com/agentlab/ideaforge/internal/utils"
)

// RoleCoach is the idea generation agent's role tag.
const RoleCoach = "idea_coach"

// DefaultNumIdeas is used when neither the task nor the config sets a count.
const DefaultNumIdeas = 5

// Coach generates ideas from a free-form prompt.
type Coach struct {
	core.BaseAgent
	numIdeas int
}

// NewCoach creates an idea generation agent. numIdeas is the per-task default;
// zero means DefaultNumIdeas.
func NewCoach(completer llm.Completer, numIdeas int) *Coach {
	if numIdeas <= 0 {
		numIdeas = DefaultNumIdeas
	}
	return &Coach{
		BaseAgent: core.NewBaseAgent(RoleCoach, completer),
		numIdeas:  numIdeas,
	}
}

// Execute generates ideas for the task's prompt. The task accepts "prompt",
// "num_ideas", "idea_type" (creative|business|product), and "provider".
func (c *Coach) Execute(ctx context.Context, task core.Task) core.Result {
	c.SetStatus(core.StatusProcessing, "Generating ideas for: "+task.String("prompt", "unknown"))
	start := time.Now()

	prompt := task.String("prompt", "")
	numIdeas := task.Int("num_ideas", c.numIdeas)
	ideaType := task.String("idea_type", ideaTypeCreative)

	tmpl, ok := ideaPrompts[ideaType]
	if !ok {
		tmpl = ideaPrompts[ideaTypeCreative]
		ideaType = ideaTypeCreative
	}
	rendered, err := renderPrompt(tmpl, map[string]any{
		"Prompt":   prompt,
		"NumIdeas": numIdeas,
	})
	if err != nil {
		return c.Fail(start, err)
	}

	response, err := c.Complete(ctx, rendered, task.String("provider", ""))
	if err != nil {
		return c.Fail(start, err)
	}

	ideas := parseIdeas(response, numIdeas)

	enriched := make([]map[string]any, 0, numIdeas)
	for i, idea := range ideas {
		if i >= numIdeas {
			break
		}
		e := map[string]any{
			"id":           fmt.Sprintf("idea_%d_%d", start.UnixMilli(), i),
			"generated_by": c.ID(),
			"timestamp":    time.Now().Format(time.RFC3339),
			"type":         ideaType,
		}
		for k, v := range idea {
			e[k] = v
		}
		enriched = append(enriched, e)
	}

	return c.Succeed(start, map[string]any{
		"ideas":           enriched,
		"generated_count": len(enriched),
	})
}

// GenerateIdeas is the convenience entry point for direct callers.
func (c *Coach) GenerateIdeas(ctx context.Context, prompt string, numIdeas int, ideaType string) core.Result {
	task := core.Task{
		"prompt":    prompt,
		"idea_type": ideaType,
	}
	if numIdeas > 0 {
		task["num_ideas"] = numIdeas
	}
	return c.Execute(ctx, task)
}

// parseIdeas attempts structured parsing of the completion, then falls back
// to line-based extraction.
func parseIdeas(response string, numIdeas int) []map[string]any {
	if ideas, err := utils.ExtractAndParseJSON[[]map[string]any](response); err == nil {
		return ideas
	}
	if idea, err := utils.ExtractAndParseJSON[map[string]any](response); err == nil {
		return []map[string]any{idea}
	}
	return extractIdeasFromText(response, numIdeas)
}

// extractIdeasFromText salvages ideas from a non-JSON completion by splitting
// on numbered sections and collecting "Key: value" lines. Gaps are padded
// with placeholder ideas so callers always get numIdeas entries.
func extractIdeasFromText(text string, numIdeas int) []map[string]any {
	var ideas []map[string]any
	current := map[string]any{}

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if containsIdeaNumber(line, numIdeas) && len(current) > 0 {
			ideas = append(ideas, current)
			current = map[string]any{}
		}

		if key, value, found := strings.Cut(line, ":"); found {
			key = strings.ReplaceAll(strings.ToLower(strings.TrimSpace(key)), " ", "_")
			current[key] = strings.TrimSpace(value)
		}
	}
	if len(current) > 0 {
		ideas = append(ideas, current)
	}

	for len(ideas) < numIdeas {
		ideas = append(ideas, map[string]any{
			"title":            fmt.Sprintf("Generated Idea %d", len(ideas)+1),
			"concept":          "Creative solution generated from input prompt",
			"innovation_level": 5,
		})
	}
	if len(ideas) > numIdeas {
		ideas = ideas[:numIdeas]
	}
	return ideas
}

// containsIdeaNumber reports whether the line mentions any ordinal up to
// numIdeas, the separator heuristic for numbered lists.
func containsIdeaNumber(line string, numIdeas int) bool {
	for i := 1; i <= numIdeas; i++ {
		if strings.Contains(line, fmt.Sprintf("%d", i)) {
			return true
		}
	}
	return false
}
