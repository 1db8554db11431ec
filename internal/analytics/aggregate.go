package analytics

import (
	"math"
	"strings"

	"github.com/mkalens/support-insights/internal/models"
)

// Roster is the set of employee identities admitted into aggregation.
// An empty roster admits everyone; a populated one drops any interaction
// whose employee is not listed, before any aggregation runs.
type Roster map[string]struct{}

// NewRoster builds a roster from a list of names, ignoring blanks.
func NewRoster(names []string) Roster {
	r := make(Roster, len(names))
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n != "" {
			r[n] = struct{}{}
		}
	}
	return r
}

// Allows reports whether the employee passes the roster gate.
func (r Roster) Allows(employee string) bool {
	if len(r) == 0 {
		return true
	}
	_, ok := r[employee]
	return ok
}

// Filter returns the interactions whose employee passes the roster gate.
// The input slice is never mutated.
func (r Roster) Filter(interactions []models.Interaction) []models.Interaction {
	if len(r) == 0 {
		return interactions
	}
	out := make([]models.Interaction, 0, len(interactions))
	for _, in := range interactions {
		if r.Allows(in.Employee) {
			out = append(out, in)
		}
	}
	return out
}

// meanAccumulator is a streaming (count, sum) pair. The mean of zero
// observations is 0, never NaN.
type meanAccumulator struct {
	count int
	sum   float64
}

func (a *meanAccumulator) observe(v float64) {
	a.count++
	a.sum += v
}

func (a meanAccumulator) mean() float64 {
	if a.count == 0 {
		return 0
	}
	return a.sum / float64(a.count)
}

// validScore reports whether a criterion value participates in averaging.
// Zero means "not scored" and must not drag the mean down.
func validScore(v float64) bool {
	return !math.IsNaN(v) && v > 0
}

// employeeAccumulator carries the working state for one employee during a
// single pass. The per-criterion accumulators are indexed parallel to the
// criteria table and are discarded once the means are finalized.
type employeeAccumulator struct {
	stat     models.EmployeeStat
	criteria [numCriteria]meanAccumulator
}

// EmployeeStats folds a flat interaction list into one EmployeeStat per
// distinct employee, in order of first appearance. Each criterion mean is
// taken only over that criterion's valid observations, so an absent
// contextual score on one interaction does not bias the average. Every call
// allocates fresh accumulators; nothing persists between passes.
func EmployeeStats(interactions []models.Interaction, roster Roster) []models.EmployeeStat {
	filtered := roster.Filter(interactions)

	accs := make(map[string]*employeeAccumulator)
	var order []string

	for _, in := range filtered {
		acc, ok := accs[in.Employee]
		if !ok {
			acc = &employeeAccumulator{stat: models.EmployeeStat{Employee: in.Employee}}
			accs[in.Employee] = acc
			order = append(order, in.Employee)
		}

		acc.stat.TotalTickets++

		for i, c := range criteria {
			if v := c.get(&in.Scores); validScore(v) {
				acc.criteria[i].observe(v)
			}
		}

		tallySentiment(&acc.stat.Sentiment, in.Sentiment)
	}

	violations := ViolationsByEmployee(SLAEvents(filtered))

	out := make([]models.EmployeeStat, 0, len(order))
	for _, name := range order {
		acc := accs[name]
		for i, c := range criteria {
			c.set(&acc.stat.AvgScores, acc.criteria[i].mean())
		}
		acc.stat.SLAViolations = violations[name]
		out = append(out, acc.stat)
	}
	return out
}

// tallySentiment increments the bucket for a recognized label. Unknown
// labels are dropped, not counted anywhere.
func tallySentiment(d *models.SentimentDistribution, label string) {
	switch strings.ToLower(label) {
	case models.SentimentPositive:
		d.Positive++
	case models.SentimentNegative:
		d.Negative++
	case models.SentimentNeutral:
		d.Neutral++
	case models.SentimentMixed:
		d.Mixed++
	}
}
