package core

import (
	"context"
	"errors"
	"math"
	"strings"
	"testing"
	"time"
)

// stubCompleter returns a fixed response or error.
type stubCompleter struct {
	response string
	err      error
}

func (s *stubCompleter) Complete(ctx context.Context, prompt, provider string) (string, error) {
	return s.response, s.err
}

func TestNewBaseAgent_Identity(t *testing.T) {
	a := NewBaseAgent("validation", &stubCompleter{})

	if a.Role() != "validation" {
		t.Errorf("Role() = %q, want %q", a.Role(), "validation")
	}
	if !strings.HasPrefix(a.ID(), "validation-") {
		t.Errorf("ID() = %q, want validation- prefix", a.ID())
	}
	if got := len(strings.TrimPrefix(a.ID(), "validation-")); got != 8 {
		t.Errorf("ID suffix length = %d, want 8", got)
	}
	if a.StatusReport().Status != StatusInitialized {
		t.Errorf("initial status = %q, want %q", a.StatusReport().Status, StatusInitialized)
	}
}

func TestSetStatus(t *testing.T) {
	a := NewBaseAgent("coach", &stubCompleter{})

	a.SetStatus(StatusProcessing, "Generating ideas")
	rep := a.StatusReport()
	if rep.Status != StatusProcessing {
		t.Errorf("status = %q, want %q", rep.Status, StatusProcessing)
	}
	if rep.CurrentTask != "Generating ideas" {
		t.Errorf("current task = %q, want %q", rep.CurrentTask, "Generating ideas")
	}
}

func TestRecordOutcome_RunningMetrics(t *testing.T) {
	a := NewBaseAgent("coach", &stubCompleter{})

	a.RecordOutcome(true, 2*time.Second)
	a.RecordOutcome(true, 4*time.Second)
	a.RecordOutcome(false, 6*time.Second)

	m := a.StatusReport().Metrics
	if m.TasksCompleted != 3 {
		t.Errorf("TasksCompleted = %d, want 3", m.TasksCompleted)
	}
	if math.Abs(m.SuccessRate-2.0/3.0) > 1e-9 {
		t.Errorf("SuccessRate = %v, want %v", m.SuccessRate, 2.0/3.0)
	}
	if math.Abs(m.AvgResponseTime-4.0) > 1e-9 {
		t.Errorf("AvgResponseTime = %v, want 4.0", m.AvgResponseTime)
	}
}

func TestSucceedAndFail_Envelopes(t *testing.T) {
	a := NewBaseAgent("pm", &stubCompleter{})
	start := time.Now()

	res := a.Succeed(start, map[string]any{"prd_document": map[string]any{}})
	if !res.Success {
		t.Error("Succeed() envelope not marked success")
	}
	if res.AgentID != a.ID() {
		t.Errorf("AgentID = %q, want %q", res.AgentID, a.ID())
	}
	if a.StatusReport().Status != StatusCompleted {
		t.Errorf("status after Succeed = %q, want %q", a.StatusReport().Status, StatusCompleted)
	}

	res = a.Fail(start, errors.New("provider unreachable"))
	if res.Success {
		t.Error("Fail() envelope marked success")
	}
	if res.Error != "provider unreachable" {
		t.Errorf("Error = %q, want %q", res.Error, "provider unreachable")
	}
	if a.StatusReport().Status != StatusError {
		t.Errorf("status after Fail = %q, want %q", a.StatusReport().Status, StatusError)
	}
	if !strings.HasPrefix(a.StatusReport().CurrentTask, "Error: ") {
		t.Errorf("current task = %q, want Error: prefix", a.StatusReport().CurrentTask)
	}
}

func TestTask_PermissiveLookups(t *testing.T) {
	task := Task{
		"prompt":    "study tools",
		"num_ideas": float64(3), // JSON decoding produces float64
		"idea":      map[string]any{"title": "X"},
	}

	if got := task.String("prompt", ""); got != "study tools" {
		t.Errorf("String(prompt) = %q", got)
	}
	if got := task.String("missing", "fallback"); got != "fallback" {
		t.Errorf("String(missing) = %q, want fallback", got)
	}
	if got := task.Int("num_ideas", 5); got != 3 {
		t.Errorf("Int(num_ideas) = %d, want 3", got)
	}
	if got := task.Int("missing", 5); got != 5 {
		t.Errorf("Int(missing) = %d, want 5", got)
	}
	if m := task.Map("idea"); m == nil || m["title"] != "X" {
		t.Errorf("Map(idea) = %v", m)
	}
	if m := task.Map("missing"); m != nil {
		t.Errorf("Map(missing) = %v, want nil", m)
	}
}
