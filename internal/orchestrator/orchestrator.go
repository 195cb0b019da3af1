package orchestrator

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/agentlab/ideaforge/internal/agents"
	"github.com/agentlab/ideaforge/internal/agents/core"
	"github.com/agentlab/ideaforge/internal/llm"
)

// RoleOrchestrator is the orchestrator's agent role.
const RoleOrchestrator = "orchestrator"

// MaxValidationsPerRun bounds LLM spend on the validation step.
const MaxValidationsPerRun = 3

// Workflow types accepted by Execute.
const (
	WorkflowFullPipeline   = "full_pipeline"
	WorkflowIdeaGeneration = "idea_generation"
	WorkflowValidationOnly = "validation_only"
	WorkflowPRDCreation    = "prd_creation"
)

// Step names an agent and the task it performs within a workflow.
type Step struct {
	Agent string `json:"agent"`
	Task  string `json:"task"`
}

// workflows is the fixed workflow table. There is no dynamic registration.
var workflows = map[string][]Step{
	WorkflowFullPipeline: {
		{Agent: agents.RoleCoach, Task: "generate_ideas"},
		{Agent: agents.RoleValidator, Task: "validate_ideas"},
		{Agent: agents.RoleProductManager, Task: "create_prd"},
	},
	WorkflowIdeaGeneration: {
		{Agent: agents.RoleCoach, Task: "generate_ideas"},
	},
	WorkflowValidationOnly: {
		{Agent: agents.RoleValidator, Task: "validate_ideas"},
	},
	WorkflowPRDCreation: {
		{Agent: agents.RoleProductManager, Task: "create_prd"},
	},
}

// Orchestrator coordinates the idea coach, validator, and product manager
// through fixed workflows, tracking each run as a session.
type Orchestrator struct {
	core.BaseAgent

	coach     *agents.Coach
	validator *agents.Validator
	pm        *agents.ProductManager
	sessions  *SessionStore
}

// New builds an orchestrator with a fresh agent team sharing one completer.
func New(completer llm.Completer, numIdeas int) *Orchestrator {
	return &Orchestrator{
		BaseAgent: core.NewBaseAgent(RoleOrchestrator, completer),
		coach:     agents.NewCoach(completer, numIdeas),
		validator: agents.NewValidator(completer),
		pm:        agents.NewProductManager(completer),
		sessions:  NewSessionStore(),
	}
}

// Execute runs the workflow named by the task's "workflow_type" (defaulting
// to the full pipeline). An unknown workflow type yields a failure envelope.
// Step failures are recorded in the session but do not abort the workflow,
// so the envelope reports success whenever the workflow itself ran.
func (o *Orchestrator) Execute(ctx context.Context, task core.Task) core.Result {
	o.SetStatus(core.StatusProcessing, "Orchestrating multi-agent workflow")
	start := time.Now()

	workflowType := task.String("workflow_type", WorkflowFullPipeline)
	sessionID := task.String("session_id", "")
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	session := newSession(sessionID, task)
	o.sessions.Save(session)

	steps, ok := workflows[workflowType]
	if !ok {
		return o.Fail(start, fmt.Errorf("unknown workflow type: %s", workflowType))
	}

	for i, step := range steps {
		stepResult := o.executeStep(ctx, step, task, session, i)
		session.Steps = append(session.Steps, stepResult)
		session.UpdatedAt = time.Now()

		if requiresHumanInput(stepResult.Result) {
			session.Interactions = append(session.Interactions, Interaction{
				Timestamp: time.Now(),
				Step:      step.Task,
				Status:    "pending",
			})
		}
		o.sessions.Save(session)
	}

	session.Stage = StageCompleted
	session.UpdatedAt = time.Now()
	o.sessions.Save(session)

	return o.Succeed(start, map[string]any{
		"session_id":    session.ID,
		"workflow_type": workflowType,
		"steps":         session.Steps,
	})
}

// executeStep dispatches one step to its agent. Missing prerequisites and
// unknown agents produce a failed step record; the workflow keeps going.
func (o *Orchestrator) executeStep(ctx context.Context, step Step, task core.Task, session *Session, index int) StepResult {
	record := StepResult{
		StepIndex: index,
		Agent:     step.Agent,
		Task:      step.Task,
		Timestamp: time.Now(),
	}

	result, err := o.runStep(ctx, step, task, session)
	if err != nil {
		record.Status = "failed"
		record.Error = err.Error()
		return record
	}
	record.Status = "completed"
	record.Result = result
	return record
}

func (o *Orchestrator) runStep(ctx context.Context, step Step, task core.Task, session *Session) (any, error) {
	switch step.Agent {
	case agents.RoleCoach:
		return o.ideaGenerationStep(ctx, task, session), nil
	case agents.RoleValidator:
		return o.validationStep(ctx, task, session)
	case agents.RoleProductManager:
		return o.prdStep(ctx, task, session)
	default:
		return nil, fmt.Errorf("unknown agent: %s", step.Agent)
	}
}

func (o *Orchestrator) ideaGenerationStep(ctx context.Context, task core.Task, session *Session) core.Result {
	coachTask := core.Task{
		"prompt":    task.String("prompt", ""),
		"idea_type": task.String("idea_type", ""),
		"provider":  task.String("provider", ""),
	}
	if n := task.Int("num_ideas", 0); n > 0 {
		coachTask["num_ideas"] = n
	}
	result := o.coach.Execute(ctx, coachTask)
	if ideas, ok := result.Data["ideas"].([]map[string]any); ok {
		session.Ideas = ideas
	}
	return result
}

func (o *Orchestrator) validationStep(ctx context.Context, task core.Task, session *Session) (map[string]any, error) {
	ideas := session.Ideas
	if len(ideas) == 0 {
		return nil, fmt.Errorf("no ideas available for validation")
	}
	if len(ideas) > MaxValidationsPerRun {
		ideas = ideas[:MaxValidationsPerRun]
	}

	provider := task.String("provider", "")
	records := make([]ValidationRecord, 0, len(ideas))
	for _, idea := range ideas {
		result := o.validator.Execute(ctx, core.Task{
			"idea":       idea,
			"session_id": session.ID,
			"provider":   provider,
		})
		records = append(records, ValidationRecord{Idea: idea, Validation: result})
	}
	session.Validations = records

	return map[string]any{
		"validated_ideas": records,
		"total_validated": len(records),
	}, nil
}

func (o *Orchestrator) prdStep(ctx context.Context, task core.Task, session *Session) (core.Result, error) {
	if len(session.Validations) == 0 {
		return core.Result{}, fmt.Errorf("no validated ideas available for PRD creation")
	}

	best := session.Validations[0]
	bestScore := overallScore(best.Validation)
	for _, rec := range session.Validations[1:] {
		if score := overallScore(rec.Validation); score > bestScore {
			best, bestScore = rec, score
		}
	}

	result := o.pm.Execute(ctx, core.Task{
		"idea":            best.Idea,
		"validation_data": validationResults(best.Validation),
		"session_id":      session.ID,
		"provider":        task.String("provider", ""),
	})
	if prd, ok := result.Data["prd_document"].(map[string]any); ok {
		session.PRD = prd
	}
	return result, nil
}

// RunWorkflow executes the named workflow for the given task.
func (o *Orchestrator) RunWorkflow(ctx context.Context, workflowType string, task core.Task) core.Result {
	if task == nil {
		task = core.Task{}
	}
	task["workflow_type"] = workflowType
	return o.Execute(ctx, task)
}

// FullPipeline runs idea generation, validation, and PRD creation end to end.
func (o *Orchestrator) FullPipeline(ctx context.Context, prompt string, numIdeas int, ideaType, provider string) core.Result {
	task := core.Task{
		"prompt":    prompt,
		"idea_type": ideaType,
		"provider":  provider,
	}
	if numIdeas > 0 {
		task["num_ideas"] = numIdeas
	}
	return o.RunWorkflow(ctx, WorkflowFullPipeline, task)
}

// GenerateIdeas runs the idea-generation workflow only.
func (o *Orchestrator) GenerateIdeas(ctx context.Context, prompt string, numIdeas int, ideaType, provider string) core.Result {
	task := core.Task{
		"prompt":    prompt,
		"idea_type": ideaType,
		"provider":  provider,
	}
	if numIdeas > 0 {
		task["num_ideas"] = numIdeas
	}
	return o.RunWorkflow(ctx, WorkflowIdeaGeneration, task)
}

// Session returns a stored session by ID.
func (o *Orchestrator) Session(id string) (Session, bool) {
	return o.sessions.Get(id)
}

// Sessions returns all stored sessions.
func (o *Orchestrator) Sessions() []Session {
	return o.sessions.List()
}

// AgentStatuses reports the live status of every agent in the team plus
// aggregate session counts.
func (o *Orchestrator) AgentStatuses() map[string]any {
	own := o.StatusReport()
	return map[string]any{
		"orchestrator":             own,
		"idea_coach":               o.coach.StatusReport(),
		"validator":                o.validator.StatusReport(),
		"product_manager":          o.pm.StatusReport(),
		"active_sessions":          o.sessions.Len(),
		"total_workflows_executed": own.Metrics.TasksCompleted,
	}
}

// overallScore digs the overall score out of a validation envelope. Failed or
// malformed validations score zero, which keeps them from winning selection.
func overallScore(result core.Result) float64 {
	vr, ok := result.Data["validation_results"].(map[string]any)
	if !ok {
		return 0
	}
	switch v := vr["overall_score"].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	default:
		return 0
	}
}

func validationResults(result core.Result) map[string]any {
	if vr, ok := result.Data["validation_results"].(map[string]any); ok {
		return vr
	}
	return map[string]any{}
}

// requiresHumanInput reports whether a step result asked to pause for a
// human. Agents signal it with a truthy "requires_human_input" data key.
func requiresHumanInput(stepResult any) bool {
	switch v := stepResult.(type) {
	case core.Result:
		flag, _ := v.Data["requires_human_input"].(bool)
		return flag
	case map[string]any:
		flag, _ := v["requires_human_input"].(bool)
		return flag
	default:
		return false
	}
}
