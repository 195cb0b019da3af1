package orchestrator

import (
	"sync"
	"time"

	"github.com/agentlab/ideaforge/internal/agents/core"
)

// Session stages.
const (
	StageInitialized = "initialized"
	StageCompleted   = "completed"
)

// StepResult records one workflow step's outcome. Result carries whatever the
// step produced; failed steps carry an error message instead.
type StepResult struct {
	StepIndex int       `json:"step_index"`
	Agent     string    `json:"agent"`
	Task      string    `json:"task"`
	Status    string    `json:"status"` // "completed" or "failed"
	Result    any       `json:"result,omitempty"`
	Error     string    `json:"error,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// ValidationRecord pairs an idea with its validation envelope.
type ValidationRecord struct {
	Idea       map[string]any `json:"idea"`
	Validation core.Result    `json:"validation"`
}

// Interaction is a pending human-in-the-loop record. Nothing waits on it; the
// workflow records it and moves on.
type Interaction struct {
	Timestamp time.Time `json:"timestamp"`
	Step      string    `json:"step"`
	Status    string    `json:"status"`
}

// Session is the in-memory record of one workflow invocation: the original
// request, the ordered step history, and the artifacts accumulated so far.
// Sessions live only in process memory and are never evicted.
type Session struct {
	ID           string             `json:"session_id"`
	CreatedAt    time.Time          `json:"created_at"`
	UpdatedAt    time.Time          `json:"last_updated"`
	Request      core.Task          `json:"initial_request"`
	Stage        string             `json:"current_stage"`
	Steps        []StepResult       `json:"workflow_history"`
	Ideas        []map[string]any   `json:"ideas,omitempty"`
	Validations  []ValidationRecord `json:"validations,omitempty"`
	PRD          map[string]any     `json:"prd,omitempty"`
	Interactions []Interaction      `json:"human_interactions"`
}

func newSession(id string, request core.Task) *Session {
	now := time.Now()
	return &Session{
		ID:        id,
		CreatedAt: now,
		UpdatedAt: now,
		Request:   request,
		Stage:     StageInitialized,
	}
}

// SessionStore keeps all sessions for the process lifetime behind an RWMutex.
// Workflow execution mutates a private Session and publishes snapshots here,
// so concurrent readers never observe a half-written record.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]Session
}

// NewSessionStore creates an empty store.
func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: make(map[string]Session)}
}

// Save publishes a snapshot of the session, keyed by its ID.
func (s *SessionStore) Save(sess *Session) {
	snapshot := *sess
	snapshot.Steps = append([]StepResult(nil), sess.Steps...)
	snapshot.Ideas = append([]map[string]any(nil), sess.Ideas...)
	snapshot.Validations = append([]ValidationRecord(nil), sess.Validations...)
	snapshot.Interactions = append([]Interaction(nil), sess.Interactions...)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sess.ID] = snapshot
}

// Get returns the session with the given ID.
func (s *SessionStore) Get(id string) (Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[id]
	return sess, ok
}

// List returns all sessions. Unbounded and unpaginated.
func (s *SessionStore) List() []Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Session, 0, len(s.sessions))
	for _, sess := range s.sessions {
		out = append(out, sess)
	}
	return out
}

// Len returns the number of stored sessions.
func (s *SessionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
