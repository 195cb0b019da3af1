package server

import (
	"time"
)

// IdeaRequest is the payload for /api/ideas.
type IdeaRequest struct {
	Prompt   string         `json:"prompt" validate:"required"`
	NumIdeas int            `json:"num_ideas" validate:"omitempty,gte=1,lte=20"`
	Context  map[string]any `json:"context"`
	Provider string         `json:"provider"`
}

// IdeaResponse is the response for /api/ideas.
type IdeaResponse struct {
	Ideas     []map[string]any `json:"ideas"`
	SessionID string           `json:"session_id"`
	Timestamp time.Time        `json:"timestamp"`
}

// ValidateRequest is the payload for /api/validate.
type ValidateRequest struct {
	Idea      map[string]any `json:"idea" validate:"required"`
	SessionID string         `json:"session_id"`
	Provider  string         `json:"provider"`
}

// PRDRequest is the payload for /api/prd.
type PRDRequest struct {
	Idea           map[string]any `json:"idea" validate:"required"`
	ValidationData map[string]any `json:"validation_data"`
	SessionID      string         `json:"session_id"`
	Provider       string         `json:"provider"`
}

// WorkflowRequest is the payload for /api/workflows.
type WorkflowRequest struct {
	WorkflowType string `json:"workflow_type" validate:"required"`
	Prompt       string `json:"prompt"`
	NumIdeas     int    `json:"num_ideas" validate:"omitempty,gte=1,lte=20"`
	IdeaType     string `json:"idea_type" validate:"omitempty,oneof=creative business product"`
	SessionID    string `json:"session_id"`
	Provider     string `json:"provider"`
}

// StatusResponse is the response for /api/status.
type StatusResponse struct {
	Status string         `json:"status"`
	Agents map[string]any `json:"agents"`
}
