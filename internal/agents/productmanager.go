package agents

import (
	"context"
	"fmt"
	"time"

	"github.com/agentlab/ideaforge/internal/agents/core"
	"github.com/agentlab/ideaforge/internal/llm"
	"github.com/agentlab/ideaforge/internal/utils"
)

// RoleProductManager is the PRD agent's role tag.
const RoleProductManager = "product_manager"

// LaunchReadyScore is the overall validation score at or above which a
// product overview is marked launch-ready.
const LaunchReadyScore = 7

// ProductManager drafts a product requirements document from an idea and its
// validation data. Most sections are templated boilerplate; the executive
// summary and functional requirements are LLM-backed with fallbacks.
type ProductManager struct {
	core.BaseAgent
}

// NewProductManager creates a PRD agent.
func NewProductManager(completer llm.Completer) *ProductManager {
	return &ProductManager{BaseAgent: core.NewBaseAgent(RoleProductManager, completer)}
}

// Execute drafts a PRD for the task's "idea" and "validation_data" mappings.
func (p *ProductManager) Execute(ctx context.Context, task core.Task) core.Result {
	p.SetStatus(core.StatusProcessing, "Creating Product Requirements Document")
	start := time.Now()

	idea := task.Map("idea")
	validation := task.Map("validation_data")

	doc, err := p.createPRD(ctx, idea, validation, task.String("provider", ""))
	if err != nil {
		return p.Fail(start, err)
	}

	return p.Succeed(start, map[string]any{
		"prd_document": doc,
	})
}

// CreatePRD is the convenience entry point for direct callers.
func (p *ProductManager) CreatePRD(ctx context.Context, idea, validation map[string]any, sessionID string) core.Result {
	return p.Execute(ctx, core.Task{
		"idea":            idea,
		"validation_data": validation,
		"session_id":      sessionID,
	})
}

func (p *ProductManager) createPRD(ctx context.Context, idea, validation map[string]any, provider string) (map[string]any, error) {
	execSummary, err := p.executiveSummary(ctx, idea, validation, provider)
	if err != nil {
		return nil, err
	}
	functionalReqs, err := p.functionalRequirements(ctx, idea, provider)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	return map[string]any{
		"document_id":             fmt.Sprintf("prd_%d", now.UnixMilli()),
		"created_by":              p.ID(),
		"creation_date":           now.Format(time.RFC3339),
		"product_name":            ideaField(idea, "title", "New Product"),
		"version":                 "1.0",
		"executive_summary":       execSummary,
		"product_overview":        productOverview(idea, validation),
		"market_analysis":         marketAnalysisSection(idea, validation),
		"functional_requirements": functionalReqs,
		"technical_requirements":  technicalRequirements(idea),
		"ux_requirements":         uxRequirements(),
		"business_requirements":   businessRequirements(idea),
		"timeline":                projectTimeline(now),
		"success_metrics":         successMetrics(),
		"risk_assessment":         riskAssessment(),
		"appendices": map[string]any{
			"validation_data": validation,
			"original_idea":   idea,
		},
	}, nil
}

func (p *ProductManager) executiveSummary(ctx context.Context, idea, validation map[string]any, provider string) (map[string]any, error) {
	rendered, err := renderPrompt(execSummaryPrompt, map[string]any{
		"Title":        ideaField(idea, "title", "New Product"),
		"Concept":      ideaField(idea, "concept", "No description"),
		"OverallScore": validationField(validation, "overall_score"),
		"MarketScore":  marketScoreField(validation),
	})
	if err != nil {
		return nil, err
	}
	response, err := p.Complete(ctx, rendered, provider)
	if err != nil {
		return nil, err
	}
	parsed, err := utils.ExtractAndParseJSON[map[string]any](response)
	if err != nil {
		return map[string]any{
			"vision":             fmt.Sprintf("Revolutionary %s addressing market needs", ideaField(idea, "title", "product")),
			"mission":            "Deliver exceptional value to target users",
			"opportunity":        "Significant market opportunity identified",
			"value_propositions": []any{"Innovative solution", "Strong market fit", "Scalable approach"},
			"success_potential":  "High potential based on validation analysis",
			"fallback":           true,
		}, nil
	}
	return parsed, nil
}

func (p *ProductManager) functionalRequirements(ctx context.Context, idea map[string]any, provider string) (map[string]any, error) {
	rendered, err := renderPrompt(functionalReqPrompt, map[string]any{
		"Title":       ideaField(idea, "title", "Product"),
		"Concept":     ideaField(idea, "concept", "Description"),
		"KeyFeatures": ideaField(idea, "key_features", "[]"),
	})
	if err != nil {
		return nil, err
	}
	response, err := p.Complete(ctx, rendered, provider)
	if err != nil {
		return nil, err
	}
	parsed, err := utils.ExtractAndParseJSON[map[string]any](response)
	if err != nil {
		return map[string]any{
			"core_features": []any{
				map[string]any{"name": "Primary functionality", "priority": "Must-have", "description": "Core product capability"},
				map[string]any{"name": "User interface", "priority": "Must-have", "description": "Intuitive user experience"},
				map[string]any{"name": "Data management", "priority": "Must-have", "description": "Secure data handling"},
			},
			"enhanced_features": []any{
				map[string]any{"name": "Advanced analytics", "priority": "Should-have", "description": "Enhanced reporting"},
				map[string]any{"name": "Integration capabilities", "priority": "Should-have", "description": "Third-party connections"},
			},
			"future_features": []any{
				map[string]any{"name": "AI enhancements", "priority": "Could-have", "description": "Machine learning features"},
				map[string]any{"name": "Mobile optimization", "priority": "Could-have", "description": "Mobile-first experience"},
			},
			"fallback": true,
		}, nil
	}
	return parsed, nil
}

func productOverview(idea, validation map[string]any) map[string]any {
	overall := 0.0
	if v, ok := validation["overall_score"].(float64); ok {
		overall = v
	}
	return map[string]any{
		"product_name":        ideaField(idea, "title", "New Product"),
		"product_description": ideaField(idea, "concept", "Innovative solution"),
		"target_users":        ideaField(idea, "target_market", "Primary market users"),
		"core_problem":        "Identified user pain points",
		"solution_approach":   ideaField(idea, "unique_value_proposition", "Unique approach to solving problems"),
		"key_differentiators": []any{
			"Innovation-focused approach",
			"User-centric design",
			"Scalable architecture",
		},
		"product_category": "Technology/Software",
		"launch_readiness": overall >= LaunchReadyScore,
	}
}

func marketAnalysisSection(idea, validation map[string]any) map[string]any {
	marketSize := "Market size analysis pending"
	if ma, ok := validation["market_analysis"].(map[string]any); ok {
		if analysis, ok := ma["analysis"].(string); ok && analysis != "" {
			marketSize = analysis
		}
	}
	competitive, _ := validation["competitive_analysis"].(map[string]any)

	return map[string]any{
		"target_market": map[string]any{
			"primary":     ideaField(idea, "target_market", "Primary users"),
			"secondary":   "Adjacent market segments",
			"market_size": marketSize,
		},
		"competitive_landscape": competitive,
		"market_trends":         []any{"Growing demand", "Technology adoption", "User behavior shifts"},
		"go_to_market_strategy": map[string]any{
			"channels":         []any{"Direct sales", "Digital marketing", "Partnership"},
			"pricing_strategy": "Value-based pricing",
			"launch_approach":  "Phased rollout",
		},
	}
}

func technicalRequirements(idea map[string]any) map[string]any {
	backend := idea["technology_stack"]
	if backend == nil {
		backend = []any{"Go", "net/http"}
	}
	return map[string]any{
		"architecture": map[string]any{
			"system_type": "Web-based application",
			"deployment":  "Cloud-native",
			"scalability": "Horizontally scalable",
			"availability": "99.9% uptime target",
		},
		"technology_stack": map[string]any{
			"backend":        backend,
			"frontend":       []any{"React", "TypeScript"},
			"database":       []any{"PostgreSQL", "Redis"},
			"infrastructure": []any{"AWS", "Docker", "Kubernetes"},
		},
		"performance_requirements": map[string]any{
			"response_time":   "< 200ms for API calls",
			"throughput":      "1000+ concurrent users",
			"data_processing": "Real-time processing capability",
		},
		"security_requirements": []any{
			"Authentication and authorization",
			"Data encryption in transit and at rest",
			"GDPR compliance",
			"Regular security audits",
		},
		"integration_requirements": []any{
			"RESTful API design",
			"Webhook support",
			"Third-party service integration",
		},
	}
}

func uxRequirements() map[string]any {
	return map[string]any{
		"design_principles": []any{
			"User-centered design",
			"Accessibility compliance (WCAG 2.1)",
			"Mobile-responsive design",
			"Intuitive navigation",
		},
		"user_journey": map[string]any{
			"onboarding":    "Streamlined user onboarding process",
			"core_workflow": "Efficient task completion",
			"support":       "Contextual help and documentation",
		},
		"interface_requirements": map[string]any{
			"design_system":       "Consistent component library",
			"responsiveness":      "Mobile-first approach",
			"loading_performance": "Progressive loading",
			"error_handling":      "User-friendly error messages",
		},
		"usability_metrics": map[string]any{
			"task_completion_rate": "> 90%",
			"user_satisfaction":    "> 4.5/5",
			"learning_curve":       "< 30 minutes to proficiency",
		},
	}
}

func businessRequirements(idea map[string]any) map[string]any {
	return map[string]any{
		"business_objectives": []any{
			"Achieve product-market fit",
			"Generate sustainable revenue",
			"Build scalable user base",
			"Establish market presence",
		},
		"revenue_model": map[string]any{
			"primary":       ideaField(idea, "revenue_model", "Subscription-based"),
			"pricing_tiers": []any{"Basic", "Professional", "Enterprise"},
			"monetization":  "Freemium with premium features",
		},
		"success_criteria": map[string]any{
			"user_acquisition": "10,000+ users in first year",
			"revenue_target":   "$500K ARR by year 2",
			"market_share":     "5% of target market segment",
		},
		"compliance_requirements": []any{
			"Data privacy regulations",
			"Industry-specific compliance",
			"Accessibility standards",
			"Security certifications",
		},
	}
}

func projectTimeline(start time.Time) map[string]any {
	week := 7 * 24 * time.Hour
	phase := func(name, duration string, fromWeek, toWeek int, deliverables ...any) map[string]any {
		return map[string]any{
			"phase":        name,
			"duration":     duration,
			"start_date":   start.Add(time.Duration(fromWeek) * week).Format(time.RFC3339),
			"end_date":     start.Add(time.Duration(toWeek) * week).Format(time.RFC3339),
			"deliverables": deliverables,
		}
	}
	return map[string]any{
		"project_phases": []any{
			phase("Discovery & Planning", "4 weeks", 0, 4,
				"Requirements finalization", "Technical architecture", "Design system"),
			phase("MVP Development", "12 weeks", 4, 16,
				"Core features", "Basic UI", "Testing framework"),
			phase("Beta Testing", "4 weeks", 16, 20,
				"User feedback", "Performance optimization", "Bug fixes"),
			phase("Launch Preparation", "4 weeks", 20, 24,
				"Marketing materials", "Support documentation", "Launch strategy"),
		},
		"critical_milestones": []any{
			"Requirements sign-off",
			"MVP completion",
			"Beta user onboarding",
			"Public launch",
		},
		"estimated_timeline": "6 months to launch",
		"resource_allocation": map[string]any{
			"development":        "3-4 developers",
			"design":             "1-2 designers",
			"product_management": "1 product manager",
			"qa_testing":         "1-2 testers",
		},
	}
}

func successMetrics() map[string]any {
	return map[string]any{
		"key_metrics": map[string]any{
			"user_metrics": map[string]any{
				"daily_active_users":   "Target: 1,000+ DAU",
				"monthly_active_users": "Target: 10,000+ MAU",
				"user_retention":       "Target: 80% 30-day retention",
				"churn_rate":           "Target: < 5% monthly churn",
			},
			"business_metrics": map[string]any{
				"revenue":                   "Target: $50K MRR by month 12",
				"customer_acquisition_cost": "Target: < $100 CAC",
				"lifetime_value":            "Target: > $500 LTV",
				"conversion_rate":           "Target: > 10% trial to paid",
			},
			"product_metrics": map[string]any{
				"feature_adoption":  "Target: > 60% core feature usage",
				"user_satisfaction": "Target: > 4.5/5 rating",
				"support_tickets":   "Target: < 2% of users/month",
			},
		},
		"measurement_framework": map[string]any{
			"tracking_tools":      []any{"Google Analytics", "Mixpanel", "Customer surveys"},
			"reporting_frequency": "Weekly dashboards, monthly reviews",
			"success_reviews":     "Quarterly business reviews",
		},
	}
}

func riskAssessment() map[string]any {
	risk := func(name, probability, impact, mitigation string) map[string]any {
		return map[string]any{
			"risk":        name,
			"probability": probability,
			"impact":      impact,
			"mitigation":  mitigation,
		}
	}
	return map[string]any{
		"identified_risks": []any{
			risk("Market competition", "Medium", "High", "Focus on unique value proposition and rapid iteration"),
			risk("Technical complexity", "Medium", "Medium", "Phased development approach and technical prototyping"),
			risk("User adoption", "Medium", "High", "Extensive user research and beta testing program"),
			risk("Resource constraints", "Low", "Medium", "Flexible team scaling and priority management"),
		},
		"contingency_plans": []any{
			"Pivot strategy for market changes",
			"Alternative technical approaches",
			"Backup funding scenarios",
			"Timeline adjustment procedures",
		},
		"monitoring_strategy": "Monthly risk assessment reviews with mitigation updates",
	}
}

// validationField stringifies a validation field, defaulting to "N/A".
func validationField(validation map[string]any, key string) string {
	if v, ok := validation[key]; ok && v != nil {
		return fmt.Sprint(v)
	}
	return "N/A"
}

// marketScoreField digs the market sub-score out of validation data.
func marketScoreField(validation map[string]any) string {
	if ma, ok := validation["market_analysis"].(map[string]any); ok {
		if score, ok := ma["score"]; ok {
			return fmt.Sprint(score)
		}
	}
	return "N/A"
}
