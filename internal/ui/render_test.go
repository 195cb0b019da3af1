package ui

import (
	"strings"
	"testing"

	"github.com/agentlab/ideaforge/internal/agents/core"
)

func TestRenderIdeas(t *testing.T) {
	out := RenderIdeas([]map[string]any{
		{"title": "Smart Planner", "concept": "Plans things", "target_market": "Students"},
		{"concept": "Untitled concept"},
	})
	for _, want := range []string{"1. Smart Planner", "Plans things", "Target market: Students", "2. Idea 2"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q\n%s", want, out)
		}
	}
}

func TestRenderIdeas_Empty(t *testing.T) {
	if out := RenderIdeas(nil); !strings.Contains(out, "No ideas") {
		t.Errorf("output = %q", out)
	}
}

func TestRenderValidation(t *testing.T) {
	out := RenderValidation(map[string]any{
		"overall_score":   7.45,
		"market_analysis": map[string]any{"score": float64(8)},
		"financial_analysis": map[string]any{
			"score":    float64(6),
			"fallback": true,
		},
		"recommendations": []string{"Proceed with development - strong validation across all criteria"},
	})
	for _, want := range []string{"7.45/10", "Market", "(fallback)", "Proceed with development"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q\n%s", want, out)
		}
	}
}

func TestRenderPRDSummary(t *testing.T) {
	out := RenderPRDSummary(map[string]any{
		"product_name": "Smart Planner",
		"document_id":  "prd_123",
		"version":      "1.0",
		"product_overview": map[string]any{
			"launch_readiness": true,
		},
	})
	for _, want := range []string{"Smart Planner", "prd_123", "v1.0", "ready"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q\n%s", want, out)
		}
	}
}

func TestRenderAgentStatuses(t *testing.T) {
	out := RenderAgentStatuses(map[string]any{
		"idea_coach": core.StatusReport{
			AgentID: "idea_coach-abc12345",
			Status:  core.StatusCompleted,
			Metrics: core.Metrics{TasksCompleted: 3, SuccessRate: 1.0},
		},
		"active_sessions": 2,
	})
	for _, want := range []string{"idea_coach", "completed", "tasks=3", "active_sessions"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q\n%s", want, out)
		}
	}
}
