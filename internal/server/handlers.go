package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/agentlab/ideaforge/internal/agents"
	"github.com/agentlab/ideaforge/internal/agents/core"
	"github.com/agentlab/ideaforge/internal/orchestrator"
)

// handleGenerateIdeas runs the idea-generation workflow and returns the
// generated ideas directly.
func (s *Server) handleGenerateIdeas(w http.ResponseWriter, r *http.Request) {
	var req IdeaRequest
	if !s.decode(w, r, &req) {
		return
	}

	ideaType := "creative"
	if v, ok := req.Context["idea_type"].(string); ok && v != "" {
		ideaType = v
	}

	result := s.orch.GenerateIdeas(r.Context(), req.Prompt, req.NumIdeas, ideaType, req.Provider)
	if !result.Success {
		http.Error(w, result.Error, http.StatusInternalServerError)
		return
	}

	sessionID, _ := result.Data["session_id"].(string)
	writeAPIJSON(w, IdeaResponse{
		Ideas:     unwrapIdeas(ideasFromWorkflow(result)),
		SessionID: sessionID,
		Timestamp: time.Now(),
	})
}

// handleValidateIdea validates a single idea outside any workflow and returns
// the raw agent envelope, success or not.
func (s *Server) handleValidateIdea(w http.ResponseWriter, r *http.Request) {
	var req ValidateRequest
	if !s.decode(w, r, &req) {
		return
	}

	task := core.Task{
		"idea":       req.Idea,
		"session_id": req.SessionID,
		"provider":   req.Provider,
	}
	writeAPIJSON(w, s.validator.Execute(r.Context(), task))
}

// handleCreatePRD drafts a PRD outside any workflow and returns the raw
// agent envelope.
func (s *Server) handleCreatePRD(w http.ResponseWriter, r *http.Request) {
	var req PRDRequest
	if !s.decode(w, r, &req) {
		return
	}

	task := core.Task{
		"idea":            req.Idea,
		"validation_data": req.ValidationData,
		"session_id":      req.SessionID,
		"provider":        req.Provider,
	}
	writeAPIJSON(w, s.pm.Execute(r.Context(), task))
}

// handleWorkflow runs any named workflow and returns the orchestrator
// envelope untouched.
func (s *Server) handleWorkflow(w http.ResponseWriter, r *http.Request) {
	var req WorkflowRequest
	if !s.decode(w, r, &req) {
		return
	}

	task := core.Task{
		"prompt":    req.Prompt,
		"idea_type": req.IdeaType,
		"provider":  req.Provider,
	}
	if req.NumIdeas > 0 {
		task["num_ideas"] = req.NumIdeas
	}
	if req.SessionID != "" {
		task["session_id"] = req.SessionID
	}

	writeAPIJSON(w, s.orch.RunWorkflow(r.Context(), req.WorkflowType, task))
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	writeAPIJSON(w, StatusResponse{
		Status: "running",
		Agents: s.orch.AgentStatuses(),
	})
}

func (s *Server) handleListSessions(w http.ResponseWriter, r *http.Request) {
	writeAPIJSON(w, s.orch.Sessions())
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	sess, ok := s.orch.Session(id)
	if !ok {
		http.Error(w, "session not found", http.StatusNotFound)
		return
	}
	writeAPIJSON(w, sess)
}

// decode parses and validates a JSON request body, writing a 400 and
// returning false when the payload is unusable.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return false
	}
	if err := s.validate.Struct(dst); err != nil {
		http.Error(w, fmt.Sprintf("invalid request: %v", err), http.StatusBadRequest)
		return false
	}
	return true
}

// ideasFromWorkflow pulls the idea coach's output out of a workflow envelope.
func ideasFromWorkflow(result core.Result) []map[string]any {
	steps, ok := result.Data["steps"].([]orchestrator.StepResult)
	if !ok {
		return nil
	}
	for _, step := range steps {
		if step.Agent != agents.RoleCoach {
			continue
		}
		if stepResult, ok := step.Result.(core.Result); ok {
			if ideas, ok := stepResult.Data["ideas"].([]map[string]any); ok {
				return ideas
			}
		}
	}
	return nil
}

// unwrapIdeas flattens one level of nesting some models produce: a single
// wrapper object whose "ideas", "business_ideas", or "product_ideas" field
// holds the real list.
func unwrapIdeas(ideas []map[string]any) []map[string]any {
	if len(ideas) == 0 {
		return []map[string]any{}
	}
	for _, key := range []string{"ideas", "business_ideas", "product_ideas"} {
		nested, ok := ideas[0][key]
		if !ok {
			continue
		}
		if unwrapped := toIdeaList(nested); unwrapped != nil {
			return unwrapped
		}
	}
	return ideas
}

func toIdeaList(v any) []map[string]any {
	switch list := v.(type) {
	case []map[string]any:
		return list
	case []any:
		out := make([]map[string]any, 0, len(list))
		for _, item := range list {
			if m, ok := item.(map[string]any); ok {
				out = append(out, m)
			}
		}
		if len(out) > 0 {
			return out
		}
	}
	return nil
}

func writeAPIJSON(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(data)
}
