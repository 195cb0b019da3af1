package orchestrator

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/agentlab/ideaforge/internal/agents/core"
)

// scriptedCompleter replays canned responses in order and errors once the
// script runs out.
type scriptedCompleter struct {
	responses []string
	calls     int
}

func (s *scriptedCompleter) Complete(ctx context.Context, prompt, provider string) (string, error) {
	if s.calls >= len(s.responses) {
		s.calls++
		return "", fmt.Errorf("provider unavailable")
	}
	response := s.responses[s.calls]
	s.calls++
	return response, nil
}

func coachResponse(titles ...string) string {
	ideas := make([]string, 0, len(titles))
	for _, title := range titles {
		ideas = append(ideas, fmt.Sprintf(`{"title": %q, "concept": "A concept for %s"}`, title, title))
	}
	return "[" + strings.Join(ideas, ", ") + "]"
}

// validationResponses returns the four per-dimension analyses for one idea,
// all carrying the same score.
func validationResponses(score int) []string {
	return []string{
		fmt.Sprintf(`{"score": %d, "analysis": "market"}`, score),
		fmt.Sprintf(`{"score": %d, "competitors": []}`, score),
		fmt.Sprintf(`{"score": %d, "complexity": "Low"}`, score),
		fmt.Sprintf(`{"score": %d, "revenue_potential": "High"}`, score),
	}
}

var prdResponses = []string{
	`{"vision": "A clear vision", "mission": "A mission"}`,
	`{"core_features": [{"feature": "Core", "priority": "P0"}]}`,
}

func TestOrchestrator_UnknownWorkflow(t *testing.T) {
	o := New(&scriptedCompleter{}, 5)

	result := o.Execute(context.Background(), core.Task{"workflow_type": "mystery"})
	if result.Success {
		t.Fatal("expected failure envelope for unknown workflow")
	}
	if !strings.Contains(result.Error, "unknown workflow type: mystery") {
		t.Errorf("error = %q, want unknown workflow type", result.Error)
	}
}

func TestOrchestrator_ValidationOnly_NoIdeas(t *testing.T) {
	o := New(&scriptedCompleter{}, 5)

	result := o.RunWorkflow(context.Background(), WorkflowValidationOnly, core.Task{})
	if !result.Success {
		t.Fatalf("workflow envelope = %+v, want success despite failed step", result)
	}

	steps, ok := result.Data["steps"].([]StepResult)
	if !ok || len(steps) != 1 {
		t.Fatalf("steps = %#v, want one step", result.Data["steps"])
	}
	if steps[0].Status != "failed" {
		t.Errorf("step status = %q, want failed", steps[0].Status)
	}
	if !strings.Contains(steps[0].Error, "no ideas available for validation") {
		t.Errorf("step error = %q", steps[0].Error)
	}

	sessionID, _ := result.Data["session_id"].(string)
	sess, ok := o.Session(sessionID)
	if !ok {
		t.Fatalf("session %q not stored", sessionID)
	}
	if sess.Stage != StageCompleted {
		t.Errorf("session stage = %q, want %q", sess.Stage, StageCompleted)
	}
}

func TestOrchestrator_PRDCreation_NoValidations(t *testing.T) {
	o := New(&scriptedCompleter{}, 5)

	result := o.RunWorkflow(context.Background(), WorkflowPRDCreation, core.Task{})
	if !result.Success {
		t.Fatalf("workflow envelope = %+v, want success", result)
	}
	steps := result.Data["steps"].([]StepResult)
	if steps[0].Status != "failed" {
		t.Errorf("step status = %q, want failed", steps[0].Status)
	}
	if !strings.Contains(steps[0].Error, "no validated ideas available for PRD creation") {
		t.Errorf("step error = %q", steps[0].Error)
	}
}

func TestOrchestrator_FullPipeline(t *testing.T) {
	responses := []string{coachResponse("Alpha", "Beta")}
	responses = append(responses, validationResponses(4)...) // Alpha scores 4.0
	responses = append(responses, validationResponses(9)...) // Beta scores 9.0
	responses = append(responses, prdResponses...)
	completer := &scriptedCompleter{responses: responses}

	o := New(completer, 5)
	result := o.FullPipeline(context.Background(), "reduce food waste", 2, "business", "")
	if !result.Success {
		t.Fatalf("pipeline failed: %s", result.Error)
	}
	if completer.calls != len(responses) {
		t.Errorf("completer calls = %d, want %d", completer.calls, len(responses))
	}

	steps := result.Data["steps"].([]StepResult)
	if len(steps) != 3 {
		t.Fatalf("steps = %d, want 3", len(steps))
	}
	for _, step := range steps {
		if step.Status != "completed" {
			t.Errorf("step %d (%s) status = %q", step.StepIndex, step.Agent, step.Status)
		}
	}

	sessionID := result.Data["session_id"].(string)
	sess, ok := o.Session(sessionID)
	if !ok {
		t.Fatal("session not stored")
	}
	if len(sess.Ideas) != 2 {
		t.Fatalf("session ideas = %d, want 2", len(sess.Ideas))
	}
	if len(sess.Validations) != 2 {
		t.Fatalf("session validations = %d, want 2", len(sess.Validations))
	}
	if got := overallScore(sess.Validations[1].Validation); got != 9.0 {
		t.Errorf("second validation overall = %v, want 9.0", got)
	}
	if sess.PRD == nil {
		t.Fatal("session PRD not recorded")
	}
	if name := sess.PRD["product_name"]; name != "Beta" {
		t.Errorf("PRD product_name = %v, want highest-scored idea Beta", name)
	}
}

func TestOrchestrator_FullPipeline_FirstMaxWinsOnTie(t *testing.T) {
	responses := []string{coachResponse("Alpha", "Beta")}
	responses = append(responses, validationResponses(7)...)
	responses = append(responses, validationResponses(7)...)
	responses = append(responses, prdResponses...)

	o := New(&scriptedCompleter{responses: responses}, 5)
	result := o.FullPipeline(context.Background(), "tie breaker", 2, "creative", "")
	if !result.Success {
		t.Fatalf("pipeline failed: %s", result.Error)
	}

	sess, _ := o.Session(result.Data["session_id"].(string))
	if name := sess.PRD["product_name"]; name != "Alpha" {
		t.Errorf("PRD product_name = %v, want first of tied ideas", name)
	}
}

func TestOrchestrator_ValidationCap(t *testing.T) {
	responses := []string{coachResponse("A", "B", "C", "D", "E")}
	for i := 0; i < MaxValidationsPerRun; i++ {
		responses = append(responses, validationResponses(7)...)
	}
	responses = append(responses, prdResponses...)
	completer := &scriptedCompleter{responses: responses}

	o := New(completer, 5)
	result := o.FullPipeline(context.Background(), "many ideas", 5, "creative", "")
	if !result.Success {
		t.Fatalf("pipeline failed: %s", result.Error)
	}

	sess, _ := o.Session(result.Data["session_id"].(string))
	if len(sess.Ideas) != 5 {
		t.Fatalf("session ideas = %d, want 5", len(sess.Ideas))
	}
	if len(sess.Validations) != MaxValidationsPerRun {
		t.Errorf("validations = %d, want cap of %d", len(sess.Validations), MaxValidationsPerRun)
	}
	if completer.calls != len(responses) {
		t.Errorf("completer calls = %d, want %d", completer.calls, len(responses))
	}
}

func TestOrchestrator_FullPipeline_ProviderErrors(t *testing.T) {
	// Only the coach call succeeds; every later provider call errors. The
	// workflow still runs to completion with degraded artifacts.
	o := New(&scriptedCompleter{responses: []string{coachResponse("Alpha")}}, 5)

	result := o.FullPipeline(context.Background(), "flaky provider", 1, "creative", "")
	if !result.Success {
		t.Fatalf("workflow envelope = %+v, want success", result)
	}

	sess, _ := o.Session(result.Data["session_id"].(string))
	if len(sess.Validations) != 1 {
		t.Fatalf("validations = %d, want 1", len(sess.Validations))
	}
	if sess.Validations[0].Validation.Success {
		t.Error("validation envelope should report failure")
	}
	if sess.PRD != nil {
		t.Error("PRD should not be recorded when the product manager fails")
	}

	steps := result.Data["steps"].([]StepResult)
	if steps[1].Status != "completed" {
		t.Errorf("validation step status = %q; agent failures are recorded inside results", steps[1].Status)
	}
	prdResult, ok := steps[2].Result.(core.Result)
	if !ok || prdResult.Success {
		t.Errorf("prd step result = %#v, want failure envelope", steps[2].Result)
	}
}

func TestOrchestrator_GenerateIdeas(t *testing.T) {
	o := New(&scriptedCompleter{responses: []string{coachResponse("Solo")}}, 5)

	result := o.GenerateIdeas(context.Background(), "one idea", 1, "product", "")
	if !result.Success {
		t.Fatalf("unexpected failure: %s", result.Error)
	}
	if got := result.Data["workflow_type"]; got != WorkflowIdeaGeneration {
		t.Errorf("workflow_type = %v", got)
	}
	steps := result.Data["steps"].([]StepResult)
	if len(steps) != 1 || steps[0].Agent != "idea_coach" {
		t.Fatalf("steps = %#v", steps)
	}
}

func TestOrchestrator_SessionsAndStatuses(t *testing.T) {
	o := New(&scriptedCompleter{responses: []string{coachResponse("One"), coachResponse("Two")}}, 5)

	o.GenerateIdeas(context.Background(), "first", 1, "creative", "")
	o.GenerateIdeas(context.Background(), "second", 1, "creative", "")

	if got := len(o.Sessions()); got != 2 {
		t.Errorf("sessions = %d, want 2", got)
	}

	statuses := o.AgentStatuses()
	if statuses["active_sessions"] != 2 {
		t.Errorf("active_sessions = %v, want 2", statuses["active_sessions"])
	}
	for _, key := range []string{"orchestrator", "idea_coach", "validator", "product_manager"} {
		report, ok := statuses[key].(core.StatusReport)
		if !ok {
			t.Fatalf("missing status report for %s", key)
		}
		if report.AgentID == "" {
			t.Errorf("empty agent id for %s", key)
		}
	}
}

func TestSessionStore_SnapshotIsolation(t *testing.T) {
	store := NewSessionStore()
	sess := newSession("s1", core.Task{"prompt": "x"})
	sess.Ideas = []map[string]any{{"title": "Original"}}
	store.Save(sess)

	sess.Ideas = append(sess.Ideas, map[string]any{"title": "Added later"})
	sess.Stage = StageCompleted

	got, ok := store.Get("s1")
	if !ok {
		t.Fatal("session missing")
	}
	if len(got.Ideas) != 1 {
		t.Errorf("snapshot ideas = %d, want 1", len(got.Ideas))
	}
	if got.Stage != StageInitialized {
		t.Errorf("snapshot stage = %q, want %q", got.Stage, StageInitialized)
	}
}
