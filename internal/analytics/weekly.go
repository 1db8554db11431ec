package analytics

import (
	"sort"
	"time"

	"github.com/mkalens/support-insights/internal/models"
)

// topPerformerLimit caps the ranked list inside a weekly bucket.
const topPerformerLimit = 5

// WeekOf truncates an instant to the Sunday 00:00 UTC opening its calendar
// week.
func WeekOf(t time.Time) time.Time {
	t = t.UTC()
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return day.AddDate(0, 0, -int(day.Weekday()))
}

// AvailableWeeks lists the distinct Sunday-aligned week starts present in
// the roster-filtered data, newest first.
func AvailableWeeks(interactions []models.Interaction, roster Roster) []time.Time {
	seen := make(map[time.Time]struct{})
	var weeks []time.Time
	for _, in := range roster.Filter(interactions) {
		w := WeekOf(in.CreatedAt)
		if _, ok := seen[w]; ok {
			continue
		}
		seen[w] = struct{}{}
		weeks = append(weeks, w)
	}
	sort.Slice(weeks, func(i, j int) bool { return weeks[i].After(weeks[j]) })
	return weeks
}

type employeeWeeklyAccumulator struct {
	detail  models.EmployeeWeekly
	tickets map[string]struct{}
	score   meanAccumulator
}

// WeeklyRollup buckets interactions into the calendar week opened by
// weekStart (normalized to its Sunday) and recomputes every aggregate over
// just that window. Membership is inclusive at both ends, compared as
// absolute instants. An empty window yields a fully zero-valued bucket.
func WeeklyRollup(interactions []models.Interaction, weekStart time.Time, roster Roster) models.WeeklyBucket {
	weekStart = WeekOf(weekStart)
	weekEnd := weekStart.AddDate(0, 0, 6)
	// End of Saturday: the next Sunday is exclusive.
	windowEnd := weekStart.AddDate(0, 0, 7)

	bucket := models.WeeklyBucket{WeekStart: weekStart, WeekEnd: weekEnd}

	var window []models.Interaction
	for _, in := range roster.Filter(interactions) {
		created := in.CreatedAt.UTC()
		if created.Before(weekStart) || !created.Before(windowEnd) {
			continue
		}
		window = append(window, in)
	}

	uniqueTickets := make(map[string]struct{})
	var bucketScore meanAccumulator
	var dailyScores [7]meanAccumulator
	dailyTickets := [7]map[string]struct{}{}
	for i := range dailyTickets {
		dailyTickets[i] = make(map[string]struct{})
	}

	perEmployee := make(map[string]*employeeWeeklyAccumulator)
	var order []string

	for _, in := range window {
		bucket.Interactions++
		uniqueTickets[in.TicketID] = struct{}{}
		tallySentiment(&bucket.Sentiment, in.Sentiment)

		// Group by calendar date, not weekday number, so an out-of-window
		// interaction can never alias into a slot.
		created := in.CreatedAt.UTC()
		day := time.Date(created.Year(), created.Month(), created.Day(), 0, 0, 0, 0, time.UTC)
		slot := int(day.Sub(weekStart).Hours() / 24)
		dailyTickets[slot][in.TicketID] = struct{}{}

		score := OverallScore(in.Scores)
		if score > 0 {
			bucketScore.observe(score)
			dailyScores[slot].observe(score)
		}

		acc, ok := perEmployee[in.Employee]
		if !ok {
			acc = &employeeWeeklyAccumulator{
				detail:  models.EmployeeWeekly{Employee: in.Employee},
				tickets: make(map[string]struct{}),
			}
			perEmployee[in.Employee] = acc
			order = append(order, in.Employee)
		}
		acc.detail.Interactions++
		acc.tickets[in.TicketID] = struct{}{}
		tallySentiment(&acc.detail.Sentiment, in.Sentiment)
		if score > 0 {
			acc.score.observe(score)
		}
	}

	events := SLAEvents(window)
	bucket.SLAViolations = CountViolations(events)
	violations := ViolationsByEmployee(events)

	bucket.UniqueTickets = len(uniqueTickets)
	bucket.AvgScore = bucketScore.mean()
	for i := range bucket.Daily {
		bucket.Daily[i] = models.DailyStat{
			UniqueTickets: len(dailyTickets[i]),
			AvgScore:      dailyScores[i].mean(),
		}
	}

	bucket.Employees = make([]models.EmployeeWeekly, 0, len(order))
	for _, name := range order {
		acc := perEmployee[name]
		acc.detail.UniqueTickets = len(acc.tickets)
		acc.detail.AvgScore = acc.score.mean()
		acc.detail.SLAViolations = violations[name]
		bucket.Employees = append(bucket.Employees, acc.detail)
	}

	bucket.TopPerformers = topPerformers(bucket.Employees)
	return bucket
}

// topPerformers ranks employees by mean overall score, descending, keeping
// the top five. Employees without a single valid score are left out of the
// ranking entirely rather than trailing it.
func topPerformers(details []models.EmployeeWeekly) []models.EmployeeWeekly {
	ranked := make([]models.EmployeeWeekly, 0, len(details))
	for _, d := range details {
		if d.AvgScore > 0 {
			ranked = append(ranked, d)
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].AvgScore > ranked[j].AvgScore })
	if len(ranked) > topPerformerLimit {
		ranked = ranked[:topPerformerLimit]
	}
	return ranked
}
