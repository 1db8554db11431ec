package analytics

import "github.com/mkalens/support-insights/internal/models"

// Tier splits the twelve criteria into the always-scored set and the set
// that may legitimately be absent on an interaction.
type Tier int

const (
	TierCore Tier = iota
	TierContextual
)

type criterion struct {
	name string
	tier Tier
	get  func(*models.CriterionScores) float64
	set  func(*models.CriterionScores, float64)
}

// criteria is the fixed table driving every per-criterion loop. Order is
// stable: the six core criteria first, then the six contextual ones.
var criteria = []criterion{
	{"tone_and_trust", TierCore,
		func(s *models.CriterionScores) float64 { return s.ToneAndTrust },
		func(s *models.CriterionScores, v float64) { s.ToneAndTrust = v }},
	{"grammar_language", TierCore,
		func(s *models.CriterionScores) float64 { return s.GrammarLanguage },
		func(s *models.CriterionScores, v float64) { s.GrammarLanguage = v }},
	{"professionalism_clarity", TierCore,
		func(s *models.CriterionScores) float64 { return s.ProfessionalismClarity },
		func(s *models.CriterionScores, v float64) { s.ProfessionalismClarity = v }},
	{"non_tech_clarity", TierCore,
		func(s *models.CriterionScores) float64 { return s.NonTechClarity },
		func(s *models.CriterionScores, v float64) { s.NonTechClarity = v }},
	{"empathy", TierCore,
		func(s *models.CriterionScores) float64 { return s.Empathy },
		func(s *models.CriterionScores, v float64) { s.Empathy = v }},
	{"responsiveness", TierCore,
		func(s *models.CriterionScores) float64 { return s.Responsiveness },
		func(s *models.CriterionScores, v float64) { s.Responsiveness = v }},
	{"client_alignment", TierContextual,
		func(s *models.CriterionScores) float64 { return s.ClientAlignment },
		func(s *models.CriterionScores, v float64) { s.ClientAlignment = v }},
	{"proactivity", TierContextual,
		func(s *models.CriterionScores) float64 { return s.Proactivity },
		func(s *models.CriterionScores, v float64) { s.Proactivity = v }},
	{"ownership_accountability", TierContextual,
		func(s *models.CriterionScores) float64 { return s.OwnershipAccountability },
		func(s *models.CriterionScores, v float64) { s.OwnershipAccountability = v }},
	{"enablement", TierContextual,
		func(s *models.CriterionScores) float64 { return s.Enablement },
		func(s *models.CriterionScores, v float64) { s.Enablement = v }},
	{"consistency", TierContextual,
		func(s *models.CriterionScores) float64 { return s.Consistency },
		func(s *models.CriterionScores, v float64) { s.Consistency = v }},
	{"risk_impact", TierContextual,
		func(s *models.CriterionScores) float64 { return s.RiskImpact },
		func(s *models.CriterionScores, v float64) { s.RiskImpact = v }},
}

const numCriteria = 12

// CriterionNames returns the twelve criterion names in table order.
func CriterionNames() []string {
	names := make([]string, len(criteria))
	for i, c := range criteria {
		names[i] = c.name
	}
	return names
}
