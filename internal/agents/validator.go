package agents

import (
	"context"
	"fmt"
	"math"
	"text/template"
	"time"

	"github.com/agentlab/ideaforge/internal/agents/core"
	"github.com/agentlab/ideaforge/internal/llm"
	"github.com/agentlab/ideaforge/internal/utils"
)

// RoleValidator is the validation agent's role tag.
const RoleValidator = "validation"

// ScoreWeights is the weighted-sum table for the overall validation score.
// The weights sum to 1.0; tests guard against silent changes.
var ScoreWeights = map[string]float64{
	"market":      0.30,
	"competition": 0.25,
	"technical":   0.25,
	"financial":   0.20,
}

// Recommendation strings are exact output contracts.
const (
	RecommendProceed         = "Strong idea with high potential - recommend proceeding to development"
	RecommendAddressConcerns = "Promising idea with some challenges - address key concerns before proceeding"
	RecommendPivot           = "Significant challenges identified - consider pivoting or major modifications"
	RecommendMarketResearch  = "Conduct additional market research to validate demand"
	RecommendTechnicalRisks  = "Assess technical risks and consider alternative implementation approaches"
	RecommendBusinessModel   = "Review business model and explore additional revenue streams"
)

// Validator scores an idea across four analytical dimensions.
type Validator struct {
	core.BaseAgent
}

// NewValidator creates a validation agent.
func NewValidator(completer llm.Completer) *Validator {
	return &Validator{BaseAgent: core.NewBaseAgent(RoleValidator, completer)}
}

// Execute validates the task's "idea" mapping. Provider failures surface as a
// failure envelope; parse failures degrade per-dimension to fallback content.
func (v *Validator) Execute(ctx context.Context, task core.Task) core.Result {
	v.SetStatus(core.StatusProcessing, "Validating idea")
	start := time.Now()

	idea := task.Map("idea")
	results, err := v.comprehensiveValidation(ctx, idea, task.String("provider", ""))
	if err != nil {
		return v.Fail(start, err)
	}

	return v.Succeed(start, map[string]any{
		"validation_results": results,
	})
}

// ValidateIdea is the convenience entry point for direct callers.
func (v *Validator) ValidateIdea(ctx context.Context, idea map[string]any, sessionID string) core.Result {
	return v.Execute(ctx, core.Task{
		"idea":       idea,
		"session_id": sessionID,
	})
}

func (v *Validator) comprehensiveValidation(ctx context.Context, idea map[string]any, provider string) (map[string]any, error) {
	market, err := v.analyze(ctx, marketPrompt, idea, provider, marketFallback)
	if err != nil {
		return nil, err
	}
	competition, err := v.analyze(ctx, competitionPrompt, idea, provider, competitionFallback)
	if err != nil {
		return nil, err
	}
	technical, err := v.analyze(ctx, feasibilityPrompt, idea, provider, feasibilityFallback)
	if err != nil {
		return nil, err
	}
	financial, err := v.analyze(ctx, financialPrompt, idea, provider, financialFallback)
	if err != nil {
		return nil, err
	}

	overall := Score(map[string]float64{
		"market":      scoreOf(market),
		"competition": scoreOf(competition),
		"technical":   scoreOf(technical),
		"financial":   scoreOf(financial),
	})

	return map[string]any{
		"overall_score":         overall,
		"market_analysis":       market,
		"competitive_analysis":  competition,
		"technical_feasibility": technical,
		"financial_analysis":    financial,
		"recommendations": Recommendations(overall, map[string]map[string]any{
			"market":      market,
			"competition": competition,
			"technical":   technical,
			"financial":   financial,
		}),
		"validation_timestamp": time.Now().Format(time.RFC3339),
	}, nil
}

// analyze runs one sub-analysis: render, call, parse, or fall back. fallback
// receives the raw response so narrative fields can carry it.
func (v *Validator) analyze(ctx context.Context, tmpl *template.Template, idea map[string]any, provider string, fallback func(response string) map[string]any) (map[string]any, error) {
	rendered, err := renderPrompt(tmpl, promptFields(idea))
	if err != nil {
		return nil, err
	}
	response, err := v.Complete(ctx, rendered, provider)
	if err != nil {
		return nil, err
	}
	parsed, err := utils.ExtractAndParseJSON[map[string]any](response)
	if err != nil {
		return fallback(response), nil
	}
	return parsed, nil
}

// Fallback structures carry neutral scores and placeholder narrative. The
// fallback marker makes silent quality degradation observable downstream.
func marketFallback(response string) map[string]any {
	return map[string]any{
		"score":        float64(5),
		"analysis":     response,
		"key_insights": []any{"Market analysis completed", "Further research recommended"},
		"fallback":     true,
	}
}

func competitionFallback(string) map[string]any {
	return map[string]any{
		"score":       float64(6),
		"competitors": []any{"Analysis in progress"},
		"advantages":  []any{"Unique approach identified"},
		"threats":     []any{"Competitive response expected"},
		"fallback":    true,
	}
}

func feasibilityFallback(string) map[string]any {
	return map[string]any{
		"score":      float64(7),
		"complexity": "Medium",
		"timeline":   "6-12 months",
		"risks":      []any{"Technical challenges manageable"},
		"fallback":   true,
	}
}

func financialFallback(string) map[string]any {
	return map[string]any{
		"score":             float64(6),
		"revenue_potential": "Moderate",
		"investment_needed": "Medium",
		"roi_timeline":      "2-3 years",
		"fallback":          true,
	}
}

// Score computes the weighted overall validation score, rounded to two
// decimals. Missing keys contribute zero; out-of-range inputs are not
// clamped. The function is a pure weighted sum and trusts its inputs.
func Score(scores map[string]float64) float64 {
	var weighted float64
	for key, weight := range ScoreWeights {
		weighted += scores[key] * weight
	}
	return math.Round(weighted*100) / 100
}

// Recommendations maps the overall score and per-dimension analyses onto the
// fixed decision table.
func Recommendations(overall float64, analyses map[string]map[string]any) []string {
	var recs []string

	switch {
	case overall >= 8:
		recs = append(recs, RecommendProceed)
	case overall >= 6:
		recs = append(recs, RecommendAddressConcerns)
	default:
		recs = append(recs, RecommendPivot)
	}

	if scoreOf(analyses["market"]) < 6 {
		recs = append(recs, RecommendMarketResearch)
	}
	if scoreOf(analyses["technical"]) < 6 {
		recs = append(recs, RecommendTechnicalRisks)
	}
	if scoreOf(analyses["financial"]) < 6 {
		recs = append(recs, RecommendBusinessModel)
	}
	return recs
}

// scoreOf reads the numeric "score" field from an analysis, tolerating the
// numeric types JSON decoding and fallback literals produce.
func scoreOf(analysis map[string]any) float64 {
	if analysis == nil {
		return 0
	}
	switch v := analysis["score"].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	default:
		return 0
	}
}

// promptFields resolves the idea fields all validation templates consume,
// with the documented defaults for missing values.
func promptFields(idea map[string]any) map[string]any {
	return map[string]any{
		"Title":           ideaField(idea, "title", "Unknown"),
		"Concept":         ideaField(idea, "concept", "No description"),
		"TargetMarket":    ideaField(idea, "target_market", "Unknown"),
		"TechnologyStack": ideaField(idea, "technology_stack", "Not specified"),
		"RevenueModel":    ideaField(idea, "revenue_model", "Not specified"),
		"StartupCosts":    ideaField(idea, "startup_costs", "Unknown"),
	}
}

// ideaField stringifies an idea field, defaulting when absent.
func ideaField(idea map[string]any, key, def string) string {
	v, ok := idea[key]
	if !ok || v == nil {
		return def
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}
