// Praedictus - Employee Attrition Prediction and Retention Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/praedictus

package retention

import (
	"sort"

	"github.com/tomtom215/praedictus/internal/dataset"
	"github.com/tomtom215/praedictus/internal/scoring"
)

// DepartmentStats summarizes scored predictions for one department.
type DepartmentStats struct {
	Department      string  `json:"department"`
	TotalEmployees  int     `json:"total_employees"`
	HighRiskCount   int     `json:"high_risk_count"`
	HighRiskShare   float64 `json:"high_risk_share"`
	MeanProbability float64 `json:"mean_probability"`
	MeanTenureYears float64 `json:"mean_tenure_years"`
}

// DepartmentSummary aggregates predictions by department. Records whose id
// has no prediction, or with no department value, are skipped. Results are
// sorted by department name.
func DepartmentSummary(tbl *dataset.Table, preds []scoring.Prediction, idColumn string) []DepartmentStats {
	byID := make(map[string]scoring.Prediction, len(preds))
	for _, p := range preds {
		byID[p.RecordID] = p
	}

	type acc struct {
		total     int
		highRisk  int
		probSum   float64
		tenureSum float64
		tenureN   int
	}
	groups := make(map[string]*acc)

	for i := 0; i < tbl.NumRows(); i++ {
		dept, ok := tbl.Value(i, ColDepartment).Text()
		if !ok {
			continue
		}
		pred, ok := byID[tbl.Value(i, idColumn).Canonical()]
		if !ok {
			continue
		}

		g := groups[dept]
		if g == nil {
			g = &acc{}
			groups[dept] = g
		}
		g.total++
		g.probSum += pred.Probability
		if pred.Tier == scoring.RiskHigh {
			g.highRisk++
		}
		if tenure, ok := tbl.Value(i, ColTenure).Number(); ok {
			g.tenureSum += tenure
			g.tenureN++
		}
	}

	out := make([]DepartmentStats, 0, len(groups))
	for dept, g := range groups {
		stats := DepartmentStats{
			Department:      dept,
			TotalEmployees:  g.total,
			HighRiskCount:   g.highRisk,
			HighRiskShare:   float64(g.highRisk) / float64(g.total),
			MeanProbability: g.probSum / float64(g.total),
		}
		if g.tenureN > 0 {
			stats.MeanTenureYears = g.tenureSum / float64(g.tenureN)
		}
		out = append(out, stats)
	}
	sort.Slice(out, func(a, b int) bool { return out[a].Department < out[b].Department })
	return out
}
