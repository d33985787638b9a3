// Praedictus - Employee Attrition Prediction and Retention Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/praedictus

package retention

import (
	"math/rand"
	"strings"

	"github.com/tomtom215/praedictus/internal/dataset"
	"github.com/tomtom215/praedictus/internal/scoring"
)

// Attribute column names referenced by the rule table. Callers supply
// datasets using these literal names.
const (
	ColDepartment   = "Department"
	ColJobTitle     = "Job_Title"
	ColSalary       = "Monthly_Salary"
	ColSatisfaction = "Employee_Satisfaction_Score"
	ColOvertime     = "Overtime_Hours"
	ColPerformance  = "Performance_Score"
	ColPromotions   = "Promotions"
	ColTenure       = "Years_At_Company"
	ColTraining     = "Training_Hours"
	ColRemote       = "Remote_Work_Frequency"
)

// Rule thresholds.
const (
	lowSatisfactionBelow   = 3.0
	salaryPeerRatio        = 0.9
	highOvertimeAbove      = 15.0
	stagnationTenureAbove  = 2.0
	topPerformerAtLeast    = 4.0
	lowTrainingBelow       = 20.0
	lowRemoteBelow         = 50.0
	minimumRecommendations = 3
)

// Category tags a recommendation with its source rule family.
type Category string

const (
	CategoryRiskHeadline Category = "risk_headline"
	CategorySatisfaction Category = "satisfaction"
	CategoryCompensation Category = "compensation"
	CategoryWorkload     Category = "workload"
	CategoryCareerPath   Category = "career_path"
	CategoryTraining     Category = "training"
	CategoryFlexibility  Category = "flexibility"
	CategoryDepartment   Category = "department"
	CategoryGeneric      Category = "generic"
)

// Recommendation is a stateless retention action suggestion. Title,
// Description, and Action are stable keys resolved to display strings by
// the caller's translation layer; Params carries the values those strings
// interpolate.
type Recommendation struct {
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Action      string         `json:"action,omitempty"`
	Category    Category       `json:"category"`
	Params      map[string]any `json:"params,omitempty"`
}

// Request carries everything one recommendation pass needs. The engine
// never reaches outside it, so identical requests produce identical output.
type Request struct {
	// Record is one employee's attributes keyed by column name.
	Record map[string]dataset.Value

	// Tier is the employee's risk tier from scoring.
	Tier scoring.RiskTier

	// TopFeatures is the attribution ranking for this record. Attribute
	// rules whose source column appears here sort ahead of their
	// siblings, so the list leads with what drove the prediction.
	TopFeatures []string

	// Reference is the full training/reference dataset used for
	// department + job-title peer means. May be nil, in which case
	// peer-relative rules do not fire.
	Reference *dataset.Table

	// Seed drives the padding draw only; it never selects content for
	// rules with signal behind them.
	Seed int64
}

// rule is one (predicate, template) pair of the attribute family.
type rule struct {
	// column is the attribute driving the rule, matched against
	// TopFeatures for ordering.
	column string
	// applies evaluates the predicate and, when it fires, builds the
	// recommendation.
	applies func(ctx *ruleContext) (Recommendation, bool)
}

// ruleContext caches derived values shared by predicates.
type ruleContext struct {
	req      Request
	peerMean float64
	hasPeers bool
}

// Engine evaluates the declarative rule table. Safe for concurrent use.
type Engine struct {
	attributeRules []rule
	catalog        []Recommendation
}

// NewEngine creates an engine with the fixed rule table and generic
// catalog.
func NewEngine() *Engine {
	return &Engine{
		attributeRules: attributeRules(),
		catalog:        genericCatalog(),
	}
}

// Recommend produces the ranked, deduplicated recommendation list for one
// record. Deterministic given the request, including its seed: only the
// padding draw order depends on the seed.
func (e *Engine) Recommend(req Request) []Recommendation {
	ctx := &ruleContext{req: req}
	ctx.peerMean, ctx.hasPeers = peerMeanSalary(req.Reference, req.Record)

	out := make([]Recommendation, 0, minimumRecommendations)
	seen := make(map[string]struct{})
	add := func(rec Recommendation) {
		if _, dup := seen[rec.Title]; dup {
			return
		}
		seen[rec.Title] = struct{}{}
		out = append(out, rec)
	}

	// Risk tier always contributes exactly one headline.
	add(headline(req.Tier))

	// Attribute rules: each independently evaluated, at most one
	// recommendation apiece. Rules matching the attribution ranking go
	// first so the list leads with the prediction's drivers.
	var matched, rest []Recommendation
	for _, r := range e.attributeRules {
		rec, ok := r.applies(ctx)
		if !ok {
			continue
		}
		if featureListed(req.TopFeatures, r.column) {
			matched = append(matched, rec)
		} else {
			rest = append(rest, rec)
		}
	}
	for _, rec := range matched {
		add(rec)
	}
	for _, rec := range rest {
		add(rec)
	}

	// At most one department-family rule fires.
	if rec, ok := departmentRule(req.Record); ok {
		add(rec)
	}

	// Pad with generic suggestions, drawn without replacement.
	//nolint:gosec // G404: math/rand is fine for padding draw order (not security)
	rng := rand.New(rand.NewSource(req.Seed))
	candidates := make([]Recommendation, 0, len(e.catalog))
	for _, rec := range e.catalog {
		if _, dup := seen[rec.Title]; !dup {
			candidates = append(candidates, rec)
		}
	}
	for len(out) < minimumRecommendations && len(candidates) > 0 {
		i := rng.Intn(len(candidates))
		add(candidates[i])
		candidates = append(candidates[:i], candidates[i+1:]...)
	}

	return out
}

// headline returns the mandatory tier recommendation. Low risk carries no
// forced action.
func headline(tier scoring.RiskTier) Recommendation {
	switch tier {
	case scoring.RiskHigh:
		return Recommendation{
			Title:       "high_risk_intervention",
			Description: "elevated_resignation_risk",
			Action:      "schedule_retention_interview",
			Category:    CategoryRiskHeadline,
		}
	case scoring.RiskMedium:
		return Recommendation{
			Title:       "medium_risk_monitoring",
			Description: "moderate_resignation_risk",
			Action:      "schedule_preventive_checkin",
			Category:    CategoryRiskHeadline,
		}
	default:
		return Recommendation{
			Title:       "low_risk_development",
			Description: "continued_development_focus",
			Category:    CategoryRiskHeadline,
		}
	}
}

// attributeRules builds the fixed attribute-threshold rule table, in
// precedence order.
func attributeRules() []rule {
	return []rule{
		{
			column: ColSatisfaction,
			applies: func(ctx *ruleContext) (Recommendation, bool) {
				score, ok := numberAttr(ctx.req.Record, ColSatisfaction)
				if !ok || score >= lowSatisfactionBelow {
					return Recommendation{}, false
				}
				return Recommendation{
					Title:       "satisfaction_followup",
					Description: "satisfaction_below_threshold",
					Action:      "conduct_satisfaction_survey",
					Category:    CategorySatisfaction,
					Params:      map[string]any{"score": score},
				}, true
			},
		},
		{
			column: ColSalary,
			applies: func(ctx *ruleContext) (Recommendation, bool) {
				salary, ok := numberAttr(ctx.req.Record, ColSalary)
				if !ok || !ctx.hasPeers || salary >= ctx.peerMean*salaryPeerRatio {
					return Recommendation{}, false
				}
				return Recommendation{
					Title:       "compensation_review",
					Description: "salary_below_peer_mean",
					Action:      "schedule_salary_review",
					Category:    CategoryCompensation,
					Params:      map[string]any{"salary": salary, "peer_mean": ctx.peerMean},
				}, true
			},
		},
		{
			column: ColOvertime,
			applies: func(ctx *ruleContext) (Recommendation, bool) {
				overtime, ok := numberAttr(ctx.req.Record, ColOvertime)
				if !ok || overtime <= highOvertimeAbove {
					return Recommendation{}, false
				}
				return Recommendation{
					Title:       "work_life_balance",
					Description: "excessive_overtime",
					Action:      "rebalance_workload",
					Category:    CategoryWorkload,
					Params:      map[string]any{"overtime_hours": overtime},
				}, true
			},
		},
		{
			column: ColPromotions,
			applies: func(ctx *ruleContext) (Recommendation, bool) {
				tenure, okTenure := numberAttr(ctx.req.Record, ColTenure)
				performance, okPerf := numberAttr(ctx.req.Record, ColPerformance)
				promotions, okProm := numberAttr(ctx.req.Record, ColPromotions)
				if !okTenure || !okPerf || !okProm {
					return Recommendation{}, false
				}
				if tenure <= stagnationTenureAbove || performance < topPerformerAtLeast || promotions != 0 {
					return Recommendation{}, false
				}
				return Recommendation{
					Title:       "career_path_review",
					Description: "high_performer_without_promotion",
					Action:      "evaluate_promotion_readiness",
					Category:    CategoryCareerPath,
					Params:      map[string]any{"tenure_years": tenure, "performance_score": performance},
				}, true
			},
		},
		{
			column: ColTraining,
			applies: func(ctx *ruleContext) (Recommendation, bool) {
				hours, ok := numberAttr(ctx.req.Record, ColTraining)
				if !ok || hours >= lowTrainingBelow {
					return Recommendation{}, false
				}
				return Recommendation{
					Title:       "training_opportunities",
					Description: "training_hours_below_threshold",
					Action:      "expand_training_budget",
					Category:    CategoryTraining,
					Params:      map[string]any{"training_hours": hours},
				}, true
			},
		},
		{
			column: ColRemote,
			applies: func(ctx *ruleContext) (Recommendation, bool) {
				freq, ok := numberAttr(ctx.req.Record, ColRemote)
				if !ok || freq >= lowRemoteBelow {
					return Recommendation{}, false
				}
				return Recommendation{
					Title:       "flexible_work_options",
					Description: "low_remote_work_share",
					Action:      "offer_remote_days",
					Category:    CategoryFlexibility,
					Params:      map[string]any{"remote_frequency": freq},
				}, true
			},
		},
	}
}

// departmentFamilies maps department names (lowercased) to their family
// recommendation. At most one department rule fires per record.
var departmentFamilies = map[string]Recommendation{
	"it":              techRecommendation,
	"engineering":     techRecommendation,
	"technology":      techRecommendation,
	"sales":           salesRecommendation,
	"marketing":       salesRecommendation,
	"hr":              hrRecommendation,
	"human resources": hrRecommendation,
}

var techRecommendation = Recommendation{
	Title:       "tech_market_engagement",
	Description: "technology_market_competitiveness",
	Action:      "benchmark_tech_compensation",
	Category:    CategoryDepartment,
}

var salesRecommendation = Recommendation{
	Title:       "sales_incentive_review",
	Description: "incentive_structure_alignment",
	Action:      "review_commission_plan",
	Category:    CategoryDepartment,
}

var hrRecommendation = Recommendation{
	Title:       "hr_process_support",
	Description: "people_team_process_load",
	Action:      "review_process_tooling",
	Category:    CategoryDepartment,
}

func departmentRule(record map[string]dataset.Value) (Recommendation, bool) {
	dept, ok := textAttr(record, ColDepartment)
	if !ok {
		return Recommendation{}, false
	}
	rec, ok := departmentFamilies[strings.ToLower(dept)]
	return rec, ok
}

// peerMeanSalary computes the mean salary across reference records sharing
// the record's department and job title.
func peerMeanSalary(ref *dataset.Table, record map[string]dataset.Value) (mean float64, ok bool) {
	if ref == nil {
		return 0, false
	}
	dept, okDept := textAttr(record, ColDepartment)
	title, okTitle := textAttr(record, ColJobTitle)
	if !okDept || !okTitle {
		return 0, false
	}
	if !ref.HasColumn(ColDepartment) || !ref.HasColumn(ColJobTitle) || !ref.HasColumn(ColSalary) {
		return 0, false
	}

	var sum float64
	var n int
	for i := 0; i < ref.NumRows(); i++ {
		if d, _ := ref.Value(i, ColDepartment).Text(); d != dept {
			continue
		}
		if t, _ := ref.Value(i, ColJobTitle).Text(); t != title {
			continue
		}
		if s, okNum := ref.Value(i, ColSalary).Number(); okNum {
			sum += s
			n++
		}
	}
	if n == 0 {
		return 0, false
	}
	return sum / float64(n), true
}

// featureListed reports whether a column (or one of its one-hot features)
// appears in the attribution top-feature list.
func featureListed(topFeatures []string, column string) bool {
	for _, f := range topFeatures {
		if f == column || strings.HasPrefix(f, column+"=") {
			return true
		}
	}
	return false
}

func numberAttr(record map[string]dataset.Value, name string) (float64, bool) {
	v, ok := record[name]
	if !ok {
		return 0, false
	}
	return v.Number()
}

func textAttr(record map[string]dataset.Value, name string) (string, bool) {
	v, ok := record[name]
	if !ok {
		return "", false
	}
	return v.Text()
}
