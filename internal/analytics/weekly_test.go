package analytics

import (
	"testing"
	"time"

	"github.com/mkalens/support-insights/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Sunday 2025-03-02 opens the week used throughout these tests.
var testWeekStart = time.Date(2025, 3, 2, 0, 0, 0, 0, time.UTC)

func weekInteraction(ticketID, employee string, at time.Time, tone float64) models.Interaction {
	return models.Interaction{
		TicketID:  ticketID,
		Employee:  employee,
		CreatedAt: at,
		Scores:    models.CriterionScores{ToneAndTrust: tone},
	}
}

func TestWeekOf(t *testing.T) {
	cases := []struct {
		name     string
		input    time.Time
		expected time.Time
	}{
		{
			name:     "mid-week truncates back to sunday",
			input:    time.Date(2025, 3, 5, 15, 30, 0, 0, time.UTC),
			expected: testWeekStart,
		},
		{
			name:     "sunday maps to itself",
			input:    time.Date(2025, 3, 2, 23, 59, 59, 0, time.UTC),
			expected: testWeekStart,
		},
		{
			name:     "saturday stays in the same week",
			input:    time.Date(2025, 3, 8, 0, 0, 1, 0, time.UTC),
			expected: testWeekStart,
		},
		{
			name:     "next sunday opens a new week",
			input:    time.Date(2025, 3, 9, 0, 0, 0, 0, time.UTC),
			expected: time.Date(2025, 3, 9, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, WeekOf(tc.input))
		})
	}
}

func TestWeeklyRollup(t *testing.T) {
	t.Run("membership is inclusive at both boundaries", func(t *testing.T) {
		atStart := weekInteraction("TKT-001", "Ada", testWeekStart, 8)
		lastSecond := weekInteraction("TKT-002", "Ada", time.Date(2025, 3, 8, 23, 59, 59, 0, time.UTC), 6)
		justOutside := weekInteraction("TKT-003", "Ada", time.Date(2025, 3, 9, 0, 0, 0, 0, time.UTC), 9)

		bucket := WeeklyRollup([]models.Interaction{atStart, lastSecond, justOutside}, testWeekStart, nil)

		assert.Equal(t, 2, bucket.Interactions)
		assert.Equal(t, 2, bucket.UniqueTickets)
	})

	t.Run("two interactions on one ticket count once as unique", func(t *testing.T) {
		day := testWeekStart.Add(26 * time.Hour)
		bucket := WeeklyRollup([]models.Interaction{
			weekInteraction("TKT-001", "Ada", day, 8),
			weekInteraction("TKT-001", "Grace", day, 6),
		}, testWeekStart, nil)

		assert.Equal(t, 2, bucket.Interactions)
		assert.Equal(t, 1, bucket.UniqueTickets)
		assert.Len(t, bucket.Employees, 2)
	})

	t.Run("average excludes interactions without a positive score", func(t *testing.T) {
		bucket := WeeklyRollup([]models.Interaction{
			weekInteraction("TKT-001", "Ada", testWeekStart, 8),
			weekInteraction("TKT-002", "Ada", testWeekStart, 0),
		}, testWeekStart, nil)

		assert.Equal(t, 8.0, bucket.AvgScore)
	})

	t.Run("daily breakdown groups by calendar date", func(t *testing.T) {
		bucket := WeeklyRollup([]models.Interaction{
			weekInteraction("TKT-001", "Ada", testWeekStart, 8),                  // Sunday
			weekInteraction("TKT-002", "Ada", testWeekStart.AddDate(0, 0, 3), 6), // Wednesday
			weekInteraction("TKT-003", "Ada", testWeekStart.AddDate(0, 0, 3), 4), // Wednesday
		}, testWeekStart, nil)

		assert.Equal(t, models.DailyStat{UniqueTickets: 1, AvgScore: 8}, bucket.Daily[0])
		assert.Equal(t, models.DailyStat{UniqueTickets: 2, AvgScore: 5}, bucket.Daily[3])
		assert.Equal(t, models.DailyStat{}, bucket.Daily[6])
	})

	t.Run("same weekday outside the window does not alias into a slot", func(t *testing.T) {
		nextWednesday := testWeekStart.AddDate(0, 0, 10)
		bucket := WeeklyRollup([]models.Interaction{
			weekInteraction("TKT-001", "Ada", nextWednesday, 8),
		}, testWeekStart, nil)

		assert.Equal(t, models.DailyStat{}, bucket.Daily[3])
		assert.Equal(t, 0, bucket.Interactions)
	})

	t.Run("top performers ranked descending with zero means excluded", func(t *testing.T) {
		day := testWeekStart.Add(time.Hour)
		bucket := WeeklyRollup([]models.Interaction{
			weekInteraction("TKT-001", "Ada", day, 6),
			weekInteraction("TKT-002", "Grace", day, 9),
			weekInteraction("TKT-003", "Edsger", day, 0),
		}, testWeekStart, nil)

		require.Len(t, bucket.TopPerformers, 2)
		assert.Equal(t, "Grace", bucket.TopPerformers[0].Employee)
		assert.Equal(t, "Ada", bucket.TopPerformers[1].Employee)
		assert.Len(t, bucket.Employees, 3, "unscored employee still appears in the detail list")
	})

	t.Run("top performers capped at five", func(t *testing.T) {
		day := testWeekStart.Add(time.Hour)
		var interactions []models.Interaction
		names := []string{"A", "B", "C", "D", "E", "F", "G"}
		for i, n := range names {
			interactions = append(interactions, weekInteraction("TKT-00"+n, n, day, float64(i+1)))
		}

		bucket := WeeklyRollup(interactions, testWeekStart, nil)

		require.Len(t, bucket.TopPerformers, 5)
		assert.Equal(t, "G", bucket.TopPerformers[0].Employee)
	})

	t.Run("sla violations deduplicated within the bucket", func(t *testing.T) {
		in := weekInteraction("TKT-001", "Ada", testWeekStart.Add(time.Hour), 8)
		in.ResponseTimes = []models.ResponseEntry{
			{ResponseBy: "Ada", ResponseTime: "45m", ResponseType: ResponseTypeEmployeeToClient},
			{ResponseBy: "Ada", ResponseTime: "45m", ResponseType: ResponseTypeEmployeeToClient},
		}

		bucket := WeeklyRollup([]models.Interaction{in}, testWeekStart, nil)

		assert.Equal(t, 1, bucket.SLAViolations)
		require.Len(t, bucket.Employees, 1)
		assert.Equal(t, 1, bucket.Employees[0].SLAViolations)
	})

	t.Run("roster gate excludes unlisted employees from every detail", func(t *testing.T) {
		in := weekInteraction("TKT-001", "Mallory", testWeekStart.Add(time.Hour), 8)
		in.ResponseTimes = []models.ResponseEntry{
			{ResponseBy: "Mallory", ResponseTime: "2h", ResponseType: ResponseTypeEmployeeToClient},
		}

		bucket := WeeklyRollup([]models.Interaction{in}, testWeekStart, NewRoster([]string{"Ada"}))

		assert.Equal(t, 0, bucket.Interactions)
		assert.Equal(t, 0, bucket.SLAViolations)
		assert.Empty(t, bucket.Employees)
	})

	t.Run("empty week yields a fully zero-valued bucket", func(t *testing.T) {
		bucket := WeeklyRollup(nil, testWeekStart, nil)

		assert.Equal(t, testWeekStart, bucket.WeekStart)
		assert.Equal(t, testWeekStart.AddDate(0, 0, 6), bucket.WeekEnd)
		assert.Equal(t, 0, bucket.Interactions)
		assert.Equal(t, 0.0, bucket.AvgScore)
		assert.Empty(t, bucket.Employees)
		assert.Empty(t, bucket.TopPerformers)
		for _, d := range bucket.Daily {
			assert.Equal(t, models.DailyStat{}, d)
		}
	})

	t.Run("mid-week target date normalizes to its sunday", func(t *testing.T) {
		bucket := WeeklyRollup([]models.Interaction{
			weekInteraction("TKT-001", "Ada", testWeekStart.Add(time.Hour), 8),
		}, testWeekStart.AddDate(0, 0, 4), nil)

		assert.Equal(t, testWeekStart, bucket.WeekStart)
		assert.Equal(t, 1, bucket.Interactions)
	})
}

func TestAvailableWeeks(t *testing.T) {
	t.Run("distinct week starts sorted descending", func(t *testing.T) {
		weeks := AvailableWeeks([]models.Interaction{
			weekInteraction("TKT-001", "Ada", testWeekStart.Add(time.Hour), 8),
			weekInteraction("TKT-002", "Ada", testWeekStart.AddDate(0, 0, 2), 7),
			weekInteraction("TKT-003", "Ada", testWeekStart.AddDate(0, 0, 9), 6),
		}, nil)

		require.Len(t, weeks, 2)
		assert.Equal(t, testWeekStart.AddDate(0, 0, 7), weeks[0])
		assert.Equal(t, testWeekStart, weeks[1])
	})

	t.Run("roster filter applies before listing", func(t *testing.T) {
		weeks := AvailableWeeks([]models.Interaction{
			weekInteraction("TKT-001", "Mallory", testWeekStart.Add(time.Hour), 8),
		}, NewRoster([]string{"Ada"}))

		assert.Empty(t, weeks)
	})

	t.Run("no interactions yields no weeks", func(t *testing.T) {
		assert.Empty(t, AvailableWeeks(nil, nil))
	})
}
