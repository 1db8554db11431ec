package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mkalens/support-insights/internal/analytics"
	"github.com/mkalens/support-insights/internal/models"
	"github.com/mkalens/support-insights/internal/service/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var testCreatedAt = time.Date(2025, 3, 4, 9, 30, 0, 0, time.UTC)

func sampleInteractions() []models.Interaction {
	return []models.Interaction{
		{
			TicketID:  "TKT-001",
			Employee:  "Ada Lovelace",
			CreatedAt: testCreatedAt,
			Sentiment: "positive",
			Scores:    models.CriterionScores{ToneAndTrust: 8, Empathy: 7, Proactivity: 6},
			ResponseTimes: []models.ResponseEntry{
				{ResponseBy: "Ada Lovelace", ResponseTime: "2h", ResponseType: analytics.ResponseTypeEmployeeToClient},
			},
		},
		{
			TicketID:  "TKT-002",
			Employee:  "Grace Hopper",
			CreatedAt: testCreatedAt.Add(24 * time.Hour),
			Sentiment: "neutral",
			Scores:    models.CriterionScores{ToneAndTrust: 9, GrammarLanguage: 8},
			ResponseTimes: []models.ResponseEntry{
				{ResponseBy: "Grace Hopper", ResponseTime: "15m", ResponseType: analytics.ResponseTypeEmployeeToClient},
			},
		},
	}
}

// TestNewInsightsService tests the constructor
func TestNewInsightsService(t *testing.T) {
	t.Run("valid parameters", func(t *testing.T) {
		mockRepo := &mocks.MockInteractionRepository{}
		logger := zap.NewNop()

		svc := NewInsightsService(mockRepo, nil, logger)

		assert.NotNil(t, svc)
		assert.Equal(t, mockRepo, svc.storage)
		assert.Equal(t, logger, svc.logger)
	})

	t.Run("nil storage panics", func(t *testing.T) {
		assert.Panics(t, func() {
			NewInsightsService(nil, nil, zap.NewNop())
		})
	})

	t.Run("nil logger gets default", func(t *testing.T) {
		svc := NewInsightsService(&mocks.MockInteractionRepository{}, nil, nil)

		assert.NotNil(t, svc.logger)
	})
}

func TestGetEmployeeStats(t *testing.T) {
	logger := zap.NewNop()
	ctx := context.Background()

	t.Run("successful aggregation", func(t *testing.T) {
		mockRepo := &mocks.MockInteractionRepository{
			FetchAllFunc: func(ctx context.Context) ([]models.Interaction, error) {
				return sampleInteractions(), nil
			},
		}

		svc := NewInsightsService(mockRepo, nil, logger)
		stats, err := svc.GetEmployeeStats(ctx)

		require.NoError(t, err)
		require.Len(t, stats, 2)
		assert.Equal(t, "Ada Lovelace", stats[0].Employee)
		assert.Equal(t, 8.0, stats[0].AvgScores.ToneAndTrust)
		assert.Equal(t, 1, stats[0].SLAViolations)
		assert.Equal(t, 0, stats[1].SLAViolations)
	})

	t.Run("roster filters the stream", func(t *testing.T) {
		mockRepo := &mocks.MockInteractionRepository{
			FetchAllFunc: func(ctx context.Context) ([]models.Interaction, error) {
				return sampleInteractions(), nil
			},
		}

		svc := NewInsightsService(mockRepo, analytics.NewRoster([]string{"Grace Hopper"}), logger)
		stats, err := svc.GetEmployeeStats(ctx)

		require.NoError(t, err)
		require.Len(t, stats, 1)
		assert.Equal(t, "Grace Hopper", stats[0].Employee)
	})

	t.Run("empty store yields empty stats", func(t *testing.T) {
		mockRepo := &mocks.MockInteractionRepository{
			FetchAllFunc: func(ctx context.Context) ([]models.Interaction, error) {
				return nil, nil
			},
		}

		svc := NewInsightsService(mockRepo, nil, logger)
		stats, err := svc.GetEmployeeStats(ctx)

		assert.NoError(t, err)
		assert.Empty(t, stats)
	})

	t.Run("storage failure", func(t *testing.T) {
		mockRepo := &mocks.MockInteractionRepository{
			FetchAllFunc: func(ctx context.Context) ([]models.Interaction, error) {
				return nil, errors.New("database connection failed")
			},
		}

		svc := NewInsightsService(mockRepo, nil, logger)
		stats, err := svc.GetEmployeeStats(ctx)

		assert.ErrorIs(t, err, ErrStorageFailure)
		assert.Contains(t, err.Error(), "database connection failed")
		assert.Nil(t, stats)
	})
}

func TestGetEmployeeStat(t *testing.T) {
	logger := zap.NewNop()
	ctx := context.Background()

	t.Run("round trip matches full aggregation", func(t *testing.T) {
		all := sampleInteractions()
		mockRepo := &mocks.MockInteractionRepository{
			FetchAllFunc: func(ctx context.Context) ([]models.Interaction, error) {
				return all, nil
			},
			FetchByEmployeeFunc: func(ctx context.Context, employee string) ([]models.Interaction, error) {
				var out []models.Interaction
				for _, in := range all {
					if in.Employee == employee {
						out = append(out, in)
					}
				}
				return out, nil
			},
		}

		svc := NewInsightsService(mockRepo, nil, logger)

		full, err := svc.GetEmployeeStats(ctx)
		require.NoError(t, err)

		single, err := svc.GetEmployeeStat(ctx, "Ada Lovelace")
		require.NoError(t, err)

		assert.Equal(t, full[0].AvgScores, single.AvgScores)
		assert.Equal(t, full[0].SLAViolations, single.SLAViolations)
		assert.Equal(t, full[0].TotalTickets, single.TotalTickets)
	})

	t.Run("unknown employee", func(t *testing.T) {
		mockRepo := &mocks.MockInteractionRepository{
			FetchByEmployeeFunc: func(ctx context.Context, employee string) ([]models.Interaction, error) {
				return nil, nil
			},
		}

		svc := NewInsightsService(mockRepo, nil, logger)
		_, err := svc.GetEmployeeStat(ctx, "Nobody")

		assert.ErrorIs(t, err, ErrEmployeeNotFound)
	})

	t.Run("roster-excluded employee", func(t *testing.T) {
		mockRepo := &mocks.MockInteractionRepository{
			FetchByEmployeeFunc: func(ctx context.Context, employee string) ([]models.Interaction, error) {
				return sampleInteractions()[:1], nil
			},
		}

		svc := NewInsightsService(mockRepo, analytics.NewRoster([]string{"Grace Hopper"}), logger)
		_, err := svc.GetEmployeeStat(ctx, "Ada Lovelace")

		assert.ErrorIs(t, err, ErrEmployeeNotFound)
	})

	t.Run("storage failure", func(t *testing.T) {
		mockRepo := &mocks.MockInteractionRepository{
			FetchByEmployeeFunc: func(ctx context.Context, employee string) ([]models.Interaction, error) {
				return nil, errors.New("query timeout")
			},
		}

		svc := NewInsightsService(mockRepo, nil, logger)
		_, err := svc.GetEmployeeStat(ctx, "Ada Lovelace")

		assert.ErrorIs(t, err, ErrStorageFailure)
	})
}

func TestGetSLAEvents(t *testing.T) {
	logger := zap.NewNop()
	ctx := context.Background()

	t.Run("events extracted from the stream", func(t *testing.T) {
		mockRepo := &mocks.MockInteractionRepository{
			FetchAllFunc: func(ctx context.Context) ([]models.Interaction, error) {
				return sampleInteractions(), nil
			},
		}

		svc := NewInsightsService(mockRepo, nil, logger)
		events, err := svc.GetSLAEvents(ctx)

		require.NoError(t, err)
		require.Len(t, events, 2)
		assert.True(t, events[0].IsViolation)
		assert.False(t, events[1].IsViolation)
	})

	t.Run("roster excludes unlisted responders' tickets", func(t *testing.T) {
		mockRepo := &mocks.MockInteractionRepository{
			FetchAllFunc: func(ctx context.Context) ([]models.Interaction, error) {
				return sampleInteractions(), nil
			},
		}

		svc := NewInsightsService(mockRepo, analytics.NewRoster([]string{"Grace Hopper"}), logger)
		events, err := svc.GetSLAEvents(ctx)

		require.NoError(t, err)
		require.Len(t, events, 1)
		assert.Equal(t, "Grace Hopper", events[0].Employee)
	})

	t.Run("storage failure", func(t *testing.T) {
		mockRepo := &mocks.MockInteractionRepository{
			FetchAllFunc: func(ctx context.Context) ([]models.Interaction, error) {
				return nil, errors.New("connection lost")
			},
		}

		svc := NewInsightsService(mockRepo, nil, logger)
		_, err := svc.GetSLAEvents(ctx)

		assert.ErrorIs(t, err, ErrStorageFailure)
	})
}

func TestGetWeeklyBucket(t *testing.T) {
	logger := zap.NewNop()
	ctx := context.Background()

	t.Run("bucket built for the containing week", func(t *testing.T) {
		mockRepo := &mocks.MockInteractionRepository{
			FetchAllFunc: func(ctx context.Context) ([]models.Interaction, error) {
				return sampleInteractions(), nil
			},
		}

		svc := NewInsightsService(mockRepo, nil, logger)
		bucket, err := svc.GetWeeklyBucket(ctx, testCreatedAt)

		require.NoError(t, err)
		assert.Equal(t, time.Date(2025, 3, 2, 0, 0, 0, 0, time.UTC), bucket.WeekStart)
		assert.Equal(t, 2, bucket.Interactions)
		assert.Equal(t, 1, bucket.SLAViolations)
	})

	t.Run("empty week is a zero bucket not an error", func(t *testing.T) {
		mockRepo := &mocks.MockInteractionRepository{
			FetchAllFunc: func(ctx context.Context) ([]models.Interaction, error) {
				return sampleInteractions(), nil
			},
		}

		svc := NewInsightsService(mockRepo, nil, logger)
		bucket, err := svc.GetWeeklyBucket(ctx, testCreatedAt.AddDate(1, 0, 0))

		require.NoError(t, err)
		assert.Equal(t, 0, bucket.Interactions)
		assert.Equal(t, 0.0, bucket.AvgScore)
	})

	t.Run("storage failure", func(t *testing.T) {
		mockRepo := &mocks.MockInteractionRepository{
			FetchAllFunc: func(ctx context.Context) ([]models.Interaction, error) {
				return nil, errors.New("db down")
			},
		}

		svc := NewInsightsService(mockRepo, nil, logger)
		_, err := svc.GetWeeklyBucket(ctx, testCreatedAt)

		assert.ErrorIs(t, err, ErrStorageFailure)
	})
}

func TestGetAvailableWeeks(t *testing.T) {
	logger := zap.NewNop()
	ctx := context.Background()

	mockRepo := &mocks.MockInteractionRepository{
		FetchAllFunc: func(ctx context.Context) ([]models.Interaction, error) {
			interactions := sampleInteractions()
			next := interactions[0]
			next.CreatedAt = testCreatedAt.AddDate(0, 0, 7)
			return append(interactions, next), nil
		},
	}

	svc := NewInsightsService(mockRepo, nil, logger)
	weeks, err := svc.GetAvailableWeeks(ctx)

	require.NoError(t, err)
	require.Len(t, weeks, 2)
	assert.True(t, weeks[0].After(weeks[1]), "weeks must be newest first")
}

func TestSearchInteractions(t *testing.T) {
	logger := zap.NewNop()
	ctx := context.Background()

	mockRepo := &mocks.MockInteractionRepository{
		FetchAllFunc: func(ctx context.Context) ([]models.Interaction, error) {
			return sampleInteractions(), nil
		},
	}

	svc := NewInsightsService(mockRepo, nil, logger)

	t.Run("matches by employee", func(t *testing.T) {
		out, err := svc.SearchInteractions(ctx, "grace")

		require.NoError(t, err)
		require.Len(t, out, 1)
		assert.Equal(t, "TKT-002", out[0].TicketID)
	})

	t.Run("empty query returns everything", func(t *testing.T) {
		out, err := svc.SearchInteractions(ctx, "")

		require.NoError(t, err)
		assert.Len(t, out, 2)
	})
}
