package agents

import (
	"bytes"
	"fmt"
	"text/template"
)

// Idea generation templates, one per requested idea type. The template name
// doubles as the idea_type task value.
const (
	ideaTypeCreative = "creative"
	ideaTypeBusiness = "business"
	ideaTypeProduct  = "product"
)

var ideaPrompts = map[string]*template.Template{
	ideaTypeCreative: template.Must(template.New(ideaTypeCreative).Parse(`You are an expert idea generation coach. Generate {{.NumIdeas}} innovative and creative ideas based on the following prompt:

{{.Prompt}}

For each idea, provide:
1. Title: A catchy, memorable name
2. Concept: A clear 2-3 sentence description
3. Target Market: Who would use this
4. Unique Value Proposition: What makes it special
5. Innovation Level: Rate 1-10 (10 being most innovative)
6. Implementation Difficulty: Rate 1-10 (10 being most difficult)

Format your response as a JSON array of idea objects.`)),

	ideaTypeBusiness: template.Must(template.New(ideaTypeBusiness).Parse(`You are a business idea generation expert. Create {{.NumIdeas}} viable business ideas for:

{{.Prompt}}

Each idea should include:
1. Business Name: Professional, marketable name
2. Description: Clear business model description
3. Revenue Model: How it makes money
4. Market Size: Estimated target market
5. Competitive Advantage: Key differentiators
6. Startup Costs: Rough estimate (Low/Medium/High)
7. Scalability: Growth potential (1-10)

Return as JSON array of business idea objects.`)),

	ideaTypeProduct: template.Must(template.New(ideaTypeProduct).Parse(`As a product innovation specialist, develop {{.NumIdeas}} product ideas for:

{{.Prompt}}

For each product idea:
1. Product Name: Market-ready name
2. Description: Core functionality and features
3. Target Users: Primary user personas
4. Problem Solved: What pain point it addresses
5. Key Features: Top 3-5 features
6. Technology Stack: Required technologies
7. Development Timeline: Estimated timeframe
8. Market Readiness: How ready is the market (1-10)

Provide response as JSON array.`)),
}

// Validation sub-analysis templates. Each asks for a 1-10 score and a JSON
// shape the parser can pick up; a parse miss falls back to canned content.
var (
	marketPrompt = template.Must(template.New("market").Parse(`As a market research expert, analyze the market viability for this idea:

Idea: {{.Title}}
Description: {{.Concept}}
Target Market: {{.TargetMarket}}

Provide analysis on:
1. Market Size (TAM, SAM, SOM estimates)
2. Market Trends (growing/declining/stable)
3. Customer Pain Points addressed
4. Market Readiness (early/mainstream/late adopter)
5. Regulatory Environment
6. Market Entry Barriers

Rate the market viability from 1-10 and explain your reasoning.
Format as JSON with 'score', 'analysis', and 'key_insights' fields.`))

	competitionPrompt = template.Must(template.New("competition").Parse(`As a competitive intelligence analyst, analyze the competitive landscape for:

Idea: {{.Title}}
Description: {{.Concept}}

Analyze:
1. Direct Competitors (existing solutions)
2. Indirect Competitors (alternative approaches)
3. Competitive Advantages/Disadvantages
4. Market Saturation Level
5. Differentiation Opportunities
6. Competitive Response Likelihood

Rate competitive position from 1-10 (10 = strong competitive position).
Format as JSON with 'score', 'competitors', 'advantages', 'threats' fields.`))

	feasibilityPrompt = template.Must(template.New("feasibility").Parse(`As a technical feasibility expert, assess the feasibility of implementing:

Idea: {{.Title}}
Description: {{.Concept}}
Technology Stack: {{.TechnologyStack}}

Evaluate:
1. Technical Complexity (1-10)
2. Resource Requirements (team size, skills)
3. Technology Readiness Level
4. Development Timeline estimates
5. Scalability Challenges
6. Integration Requirements
7. Risk Factors

Rate overall feasibility from 1-10.
Format as JSON with 'score', 'complexity', 'timeline', 'risks' fields.`))

	financialPrompt = template.Must(template.New("financial").Parse(`As a financial analyst, evaluate the financial aspects of:

Idea: {{.Title}}
Description: {{.Concept}}
Revenue Model: {{.RevenueModel}}
Startup Costs: {{.StartupCosts}}

Analyze:
1. Revenue Potential (annual projections)
2. Startup Investment Required
3. Operating Costs Structure
4. Break-even Timeline
5. Profitability Potential
6. Funding Requirements
7. ROI Projections

Rate financial attractiveness from 1-10.
Format as JSON with 'score', 'revenue_potential', 'investment_needed', 'roi_timeline' fields.`))
)

// PRD section templates for the two LLM-backed sections.
var (
	execSummaryPrompt = template.Must(template.New("execsummary").Parse(`As a senior product manager, create an executive summary for this product:

Product: {{.Title}}
Description: {{.Concept}}
Validation Score: {{.OverallScore}}
Market Potential: {{.MarketScore}}

Create a compelling executive summary including:
1. Product Vision & Mission
2. Market Opportunity
3. Key Value Propositions
4. Success Potential
5. Resource Requirements Overview

Format as JSON with structured sections.`))

	functionalReqPrompt = template.Must(template.New("funcreq").Parse(`As a product manager, define functional requirements for:

Product: {{.Title}}
Description: {{.Concept}}
Key Features: {{.KeyFeatures}}

Create detailed functional requirements with:
1. Core Features (Must-have)
2. Enhanced Features (Should-have)
3. Future Features (Could-have)
4. User Stories for key features
5. Acceptance Criteria

Format as JSON with priority levels and user stories.`))
)

// renderPrompt executes a template against its data.
func renderPrompt(tmpl *template.Template, data any) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("execute template %s: %w", tmpl.Name(), err)
	}
	return buf.String(), nil
}
