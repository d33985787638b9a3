// Praedictus - Employee Attrition Prediction and Retention Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/praedictus

package retention

// genericCatalog returns the fixed padding catalog. Entries are drawn
// without replacement, in seeded random order, until the output reaches the
// minimum size or the catalog is exhausted.
func genericCatalog() []Recommendation {
	return []Recommendation{
		{
			Title:       "recognition_program",
			Description: "regular_recognition_touchpoints",
			Action:      "nominate_for_recognition",
			Category:    CategoryGeneric,
		},
		{
			Title:       "mentorship_pairing",
			Description: "peer_mentorship_support",
			Action:      "assign_mentor",
			Category:    CategoryGeneric,
		},
		{
			Title:       "skill_development_plan",
			Description: "individual_growth_plan",
			Action:      "create_development_plan",
			Category:    CategoryGeneric,
		},
		{
			Title:       "team_building",
			Description: "team_cohesion_activities",
			Action:      "organize_team_activity",
			Category:    CategoryGeneric,
		},
	}
}
