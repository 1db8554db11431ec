package analytics

import "github.com/mkalens/support-insights/internal/models"

// Weighting of the two criterion tiers when both carry data.
const (
	coreWeight       = 0.7
	contextualWeight = 0.3
)

// OverallScore collapses twelve criterion values into one weighted scalar.
// Each tier averages only its positive values. When no contextual criterion
// qualifies, the result is the core average alone; the contextual tier is
// excluded from the weighting, not treated as zero. The function is
// criterion-agnostic: it works identically on a single interaction's scores
// and on an employee's already-averaged scores.
func OverallScore(scores models.CriterionScores) float64 {
	var core, contextual meanAccumulator

	for _, c := range criteria {
		v := c.get(&scores)
		if !validScore(v) {
			continue
		}
		if c.tier == TierCore {
			core.observe(v)
		} else {
			contextual.observe(v)
		}
	}

	if contextual.count == 0 {
		return core.mean()
	}
	return coreWeight*core.mean() + contextualWeight*contextual.mean()
}
