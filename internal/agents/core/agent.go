/*
Package core provides the task contract and shared base for IdeaForge agents.
*/
package core

import (
	"context"
	"time"
)

// Task is the untyped input mapping every agent accepts. Lookups are
// permissive: missing or mistyped keys fall back to defaults rather than
// failing.
type Task map[string]any

// String returns the string under key, or def when absent or not a string.
func (t Task) String(key, def string) string {
	if v, ok := t[key].(string); ok {
		return v
	}
	return def
}

// Int returns the integer under key, tolerating JSON's float64 decoding.
func (t Task) Int(key string, def int) int {
	switch v := t[key].(type) {
	case int:
		return v
	case float64:
		return int(v)
	default:
		return def
	}
}

// Map returns the nested mapping under key, or nil when absent.
func (t Task) Map(key string) map[string]any {
	if v, ok := t[key].(map[string]any); ok {
		return v
	}
	return nil
}

// Result is the uniform envelope every agent returns. Failures are never
// propagated as Go errors across the agent boundary; callers check Success.
type Result struct {
	Success        bool           `json:"success"`
	Error          string         `json:"error,omitempty"`
	AgentID        string         `json:"agent_id"`
	ProcessingTime float64        `json:"processing_time"` // seconds
	Data           map[string]any `json:"data,omitempty"`
}

// Agent is the interface all specialized agents implement.
type Agent interface {
	ID() string
	Role() string
	Execute(ctx context.Context, task Task) Result
	StatusReport() StatusReport
}

// Agent lifecycle states.
const (
	StatusInitialized = "initialized"
	StatusProcessing  = "processing"
	StatusCompleted   = "completed"
	StatusError       = "error"
)

// Metrics holds an agent's running counters. SuccessRate and AvgResponseTime
// are running means over all completed tasks.
type Metrics struct {
	TasksCompleted  int     `json:"tasks_completed"`
	SuccessRate     float64 `json:"success_rate"`
	AvgResponseTime float64 `json:"avg_response_time"` // seconds
}

// StatusReport is a point-in-time snapshot of an agent's state.
type StatusReport struct {
	AgentID      string    `json:"agent_id"`
	AgentType    string    `json:"agent_type"`
	Status       string    `json:"status"`
	CurrentTask  string    `json:"current_task,omitempty"`
	Metrics      Metrics   `json:"performance_metrics"`
	LastActivity time.Time `json:"last_activity"`
}
