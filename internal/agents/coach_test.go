package agents

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/agentlab/ideaforge/internal/agents/core"
)

func TestCoach_Execute_ParsesJSONArray(t *testing.T) {
	completer := &scriptedCompleter{responses: []string{
		`[{"title": "Flashcard Coach", "concept": "Spaced repetition"}, {"title": "Note Buddy", "concept": "Shared notes"}]`,
	}}
	c := NewCoach(completer, 5)

	res := c.Execute(context.Background(), core.Task{
		"prompt":    "study tools for college students",
		"num_ideas": 2,
	})
	if !res.Success {
		t.Fatalf("result not successful: %s", res.Error)
	}

	ideas := res.Data["ideas"].([]map[string]any)
	if len(ideas) != 2 {
		t.Fatalf("len(ideas) = %d, want 2", len(ideas))
	}
	if res.Data["generated_count"] != 2 {
		t.Errorf("generated_count = %v, want 2", res.Data["generated_count"])
	}

	first := ideas[0]
	if first["title"] != "Flashcard Coach" {
		t.Errorf("title = %v", first["title"])
	}
	if !strings.HasPrefix(first["id"].(string), "idea_") {
		t.Errorf("id = %v, want idea_ prefix", first["id"])
	}
	if first["generated_by"] != c.ID() {
		t.Errorf("generated_by = %v, want %v", first["generated_by"], c.ID())
	}
	if first["type"] != "creative" {
		t.Errorf("type = %v, want creative", first["type"])
	}
}

func TestCoach_Execute_WrapsSingleObject(t *testing.T) {
	completer := &scriptedCompleter{responses: []string{
		`{"title": "Solo Idea", "concept": "Just one"}`,
	}}
	c := NewCoach(completer, 5)

	res := c.Execute(context.Background(), core.Task{"prompt": "x", "num_ideas": 1})
	if !res.Success {
		t.Fatalf("result not successful: %s", res.Error)
	}
	ideas := res.Data["ideas"].([]map[string]any)
	if len(ideas) != 1 || ideas[0]["title"] != "Solo Idea" {
		t.Errorf("ideas = %v", ideas)
	}
}

func TestCoach_Execute_TruncatesToRequestedCount(t *testing.T) {
	completer := &scriptedCompleter{responses: []string{
		`[{"title": "A"}, {"title": "B"}, {"title": "C"}, {"title": "D"}]`,
	}}
	c := NewCoach(completer, 5)

	res := c.Execute(context.Background(), core.Task{"prompt": "x", "num_ideas": 2})
	ideas := res.Data["ideas"].([]map[string]any)
	if len(ideas) != 2 {
		t.Errorf("len(ideas) = %d, want 2", len(ideas))
	}
}

func TestCoach_Execute_ProviderError(t *testing.T) {
	completer := &scriptedCompleter{err: errors.New("rate limited")}
	c := NewCoach(completer, 5)

	res := c.Execute(context.Background(), core.Task{"prompt": "x"})
	if res.Success {
		t.Fatal("expected failure envelope")
	}
	if res.Error != "rate limited" {
		t.Errorf("Error = %q", res.Error)
	}
	if c.StatusReport().Status != core.StatusError {
		t.Errorf("status = %q, want %q", c.StatusReport().Status, core.StatusError)
	}
}

func TestCoach_UsesDefaultNumIdeas(t *testing.T) {
	completer := &scriptedCompleter{responses: []string{"no structure at all"}}
	c := NewCoach(completer, 3)

	res := c.Execute(context.Background(), core.Task{"prompt": "x"})
	if !res.Success {
		t.Fatalf("result not successful: %s", res.Error)
	}
	ideas := res.Data["ideas"].([]map[string]any)
	if len(ideas) != 3 {
		t.Errorf("len(ideas) = %d, want 3 (configured default)", len(ideas))
	}
}

func TestExtractIdeasFromText(t *testing.T) {
	text := `Idea 1
Title: Smart Planner
Concept: An adaptive daily planner
Target Market: Busy professionals

Idea 2
Title: Focus Timer
Concept: A distraction-blocking timer`

	ideas := extractIdeasFromText(text, 2)
	if len(ideas) != 2 {
		t.Fatalf("len(ideas) = %d, want 2", len(ideas))
	}
	if ideas[0]["title"] != "Smart Planner" {
		t.Errorf("first title = %v", ideas[0]["title"])
	}
	if ideas[0]["target_market"] != "Busy professionals" {
		t.Errorf("target_market = %v", ideas[0]["target_market"])
	}
	if ideas[1]["title"] != "Focus Timer" {
		t.Errorf("second title = %v", ideas[1]["title"])
	}
}

func TestExtractIdeasFromText_PadsToCount(t *testing.T) {
	ideas := extractIdeasFromText("nothing usable here", 3)
	if len(ideas) != 3 {
		t.Fatalf("len(ideas) = %d, want 3", len(ideas))
	}
	for i, idea := range ideas {
		if idea["concept"] != "Creative solution generated from input prompt" {
			t.Errorf("idea %d missing placeholder concept: %v", i, idea)
		}
		if idea["innovation_level"] != 5 {
			t.Errorf("idea %d innovation_level = %v, want 5", i, idea["innovation_level"])
		}
	}
}
