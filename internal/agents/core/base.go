package core

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/agentlab/ideaforge/internal/llm"
)

// BaseAgent provides identity, lifecycle status, running metrics, and gateway
// access shared by all agents. Status and metrics are guarded by a mutex so
// concurrent requests hitting the same agent instance stay consistent.
type BaseAgent struct {
	id        string
	role      string
	completer llm.Completer

	mu           sync.Mutex
	status       string
	currentTask  string
	metrics      Metrics
	lastActivity time.Time
}

// NewBaseAgent creates a BaseAgent with a role-prefixed random identifier.
func NewBaseAgent(role string, completer llm.Completer) BaseAgent {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return BaseAgent{
		id:           role + "-" + suffix,
		role:         role,
		completer:    completer,
		status:       StatusInitialized,
		lastActivity: time.Now(),
	}
}

// ID returns the agent identifier.
func (b *BaseAgent) ID() string { return b.id }

// Role returns the agent's role tag.
func (b *BaseAgent) Role() string { return b.role }

// Complete sends a prompt through the provider gateway.
func (b *BaseAgent) Complete(ctx context.Context, prompt, provider string) (string, error) {
	return b.completer.Complete(ctx, prompt, provider)
}

// SetStatus transitions the lifecycle status with an optional task label.
func (b *BaseAgent) SetStatus(status, currentTask string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.status = status
	b.currentTask = currentTask
	b.lastActivity = time.Now()
}

// RecordOutcome folds one task's outcome into the running metrics.
func (b *BaseAgent) RecordOutcome(success bool, elapsed time.Duration) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.metrics.TasksCompleted++
	n := float64(b.metrics.TasksCompleted)
	if success {
		b.metrics.SuccessRate = (b.metrics.SuccessRate*(n-1) + 1.0) / n
	} else {
		b.metrics.SuccessRate = (b.metrics.SuccessRate * (n - 1)) / n
	}
	b.metrics.AvgResponseTime = (b.metrics.AvgResponseTime*(n-1) + elapsed.Seconds()) / n
}

// StatusReport returns a snapshot of the agent's state.
func (b *BaseAgent) StatusReport() StatusReport {
	b.mu.Lock()
	defer b.mu.Unlock()
	return StatusReport{
		AgentID:      b.id,
		AgentType:    b.role,
		Status:       b.status,
		CurrentTask:  b.currentTask,
		Metrics:      b.metrics,
		LastActivity: b.lastActivity,
	}
}

// Succeed records a successful task and builds the success envelope.
func (b *BaseAgent) Succeed(start time.Time, data map[string]any) Result {
	elapsed := time.Since(start)
	b.RecordOutcome(true, elapsed)
	b.SetStatus(StatusCompleted, "")
	return Result{
		Success:        true,
		AgentID:        b.id,
		ProcessingTime: elapsed.Seconds(),
		Data:           data,
	}
}

// Fail records a failed task and builds the failure envelope. The error is
// stringified; callers must check Success, not rely on propagation.
func (b *BaseAgent) Fail(start time.Time, err error) Result {
	elapsed := time.Since(start)
	b.RecordOutcome(false, elapsed)
	b.SetStatus(StatusError, "Error: "+err.Error())
	return Result{
		Success:        false,
		Error:          err.Error(),
		AgentID:        b.id,
		ProcessingTime: elapsed.Seconds(),
	}
}
