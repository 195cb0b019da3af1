// Package ui renders agent output for the terminal.
package ui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/agentlab/ideaforge/internal/agents/core"
	"github.com/agentlab/ideaforge/internal/utils"
)

// RenderIdeas formats generated ideas as numbered cards.
func RenderIdeas(ideas []map[string]any) string {
	if len(ideas) == 0 {
		return StyleSubtle.Render("No ideas generated.")
	}

	var b strings.Builder
	for i, idea := range ideas {
		title := stringField(idea, "title", fmt.Sprintf("Idea %d", i+1))
		var card strings.Builder
		card.WriteString(StyleTitle.Render(fmt.Sprintf("%d. %s", i+1, title)))
		if concept := stringField(idea, "concept", ""); concept != "" {
			card.WriteString("\n" + utils.Truncate(concept, 200))
		}
		if market := stringField(idea, "target_market", ""); market != "" {
			card.WriteString("\n" + StyleSubtle.Render("Target market: "+market))
		}
		b.WriteString(StyleIdeaBox.Render(card.String()))
		b.WriteString("\n")
	}
	return b.String()
}

// RenderValidation formats a validation_results mapping: overall score,
// per-dimension scores, and recommendations.
func RenderValidation(results map[string]any) string {
	var b strings.Builder

	overall := numField(results, "overall_score")
	b.WriteString(StyleSectionTitle.Render("Validation") + "\n")
	b.WriteString(fmt.Sprintf("Overall score: %s\n", scoreStyle(overall).Render(fmt.Sprintf("%.2f/10", overall))))

	dimensions := []struct{ key, label string }{
		{"market_analysis", "Market"},
		{"competitive_analysis", "Competition"},
		{"technical_feasibility", "Technical"},
		{"financial_analysis", "Financial"},
	}
	for _, d := range dimensions {
		analysis, ok := results[d.key].(map[string]any)
		if !ok {
			continue
		}
		line := fmt.Sprintf("  %-12s %.1f", d.label, numField(analysis, "score"))
		if fallback, _ := analysis["fallback"].(bool); fallback {
			line += " " + StyleWarning.Render("(fallback)")
		}
		b.WriteString(line + "\n")
	}

	if recs, ok := results["recommendations"].([]string); ok && len(recs) > 0 {
		b.WriteString(StyleSectionTitle.Render("Recommendations") + "\n")
		for _, rec := range recs {
			b.WriteString("  • " + rec + "\n")
		}
	}
	return b.String()
}

// RenderPRDSummary formats the headline facts of a PRD document.
func RenderPRDSummary(doc map[string]any) string {
	var b strings.Builder
	b.WriteString(StyleSectionTitle.Render("PRD") + "\n")
	b.WriteString(fmt.Sprintf("Product:  %s\n", StyleTitle.Render(stringField(doc, "product_name", "Unknown"))))
	b.WriteString(fmt.Sprintf("Document: %s (v%s)\n", stringField(doc, "document_id", "?"), stringField(doc, "version", "?")))

	if overview, ok := doc["product_overview"].(map[string]any); ok {
		ready, _ := overview["launch_readiness"].(bool)
		if ready {
			b.WriteString("Launch readiness: " + StyleSuccess.Render("ready") + "\n")
		} else {
			b.WriteString("Launch readiness: " + StyleWarning.Render("not yet") + "\n")
		}
	}
	return b.String()
}

// RenderAgentStatuses formats the status map from the orchestrator, agents
// sorted by name for stable output.
func RenderAgentStatuses(statuses map[string]any) string {
	names := make([]string, 0, len(statuses))
	for name := range statuses {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	b.WriteString(StyleSectionTitle.Render("Agents") + "\n")
	for _, name := range names {
		switch v := statuses[name].(type) {
		case core.StatusReport:
			line := fmt.Sprintf("  %-16s %s", name, statusStyle(v.Status).Render(v.Status))
			line += StyleSubtle.Render(fmt.Sprintf("  tasks=%d success=%.0f%%", v.Metrics.TasksCompleted, v.Metrics.SuccessRate*100))
			b.WriteString(line + "\n")
		default:
			b.WriteString(fmt.Sprintf("  %-16s %v\n", name, v))
		}
	}
	return b.String()
}

func statusStyle(status string) interface{ Render(...string) string } {
	switch status {
	case core.StatusError:
		return StyleError
	case core.StatusProcessing:
		return StyleWarning
	case core.StatusCompleted:
		return StyleSuccess
	default:
		return StyleSubtle
	}
}

func scoreStyle(score float64) interface{ Render(...string) string } {
	switch {
	case score >= 8:
		return StyleSuccess
	case score >= 6:
		return StyleWarning
	default:
		return StyleError
	}
}

func stringField(m map[string]any, key, def string) string {
	if v, ok := m[key].(string); ok && v != "" {
		return v
	}
	return def
}

func numField(m map[string]any, key string) float64 {
	switch v := m[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	default:
		return 0
	}
}
