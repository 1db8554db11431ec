package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mkalens/support-insights/internal/analytics"
	"github.com/mkalens/support-insights/internal/models"
	"go.uber.org/zap"
)

const (
	dbTimeout = 2 * time.Second
)

var (
	ErrEmployeeNotFound = errors.New("employee not found")
	ErrStorageFailure   = errors.New("storage failure")
)

// InsightsService turns the raw interaction stream into the aggregates the
// dashboard consumes. Every call fetches a fresh snapshot and runs a pure
// aggregation pass over it with its own accumulators, so concurrent passes
// never share state.
type InsightsService struct {
	storage InteractionRepository
	roster  analytics.Roster
	logger  *zap.Logger
}

// NewInsightsService creates a new InsightsService instance. The roster is
// the configured employee allow-list; an empty roster admits everyone.
func NewInsightsService(storage InteractionRepository, roster analytics.Roster, logger *zap.Logger) *InsightsService {
	if storage == nil {
		panic("storage must not be nil")
	}
	if logger == nil {
		l, _ := zap.NewProduction()
		logger = l
	}
	return &InsightsService{
		storage: storage,
		roster:  roster,
		logger:  logger,
	}
}

func (s *InsightsService) fetchAll(ctx context.Context) ([]models.Interaction, error) {
	dbCtx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	interactions, err := s.storage.FetchAll(dbCtx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageFailure, err)
	}
	return interactions, nil
}

// GetEmployeeStats aggregates the full interaction stream into one stat per
// roster employee, in order of first appearance.
func (s *InsightsService) GetEmployeeStats(ctx context.Context) ([]models.EmployeeStat, error) {
	interactions, err := s.fetchAll(ctx)
	if err != nil {
		return nil, err
	}

	stats := analytics.EmployeeStats(interactions, s.roster)

	s.logger.Info("computed employee stats",
		zap.Int("interactions", len(interactions)),
		zap.Int("employees", len(stats)))

	return stats, nil
}

// GetEmployeeStat recomputes a single employee's aggregate from only that
// employee's interactions. The result matches the employee's entry in a
// full GetEmployeeStats pass.
func (s *InsightsService) GetEmployeeStat(ctx context.Context, employee string) (models.EmployeeStat, error) {
	dbCtx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	interactions, err := s.storage.FetchByEmployee(dbCtx, employee)
	if err != nil {
		return models.EmployeeStat{}, fmt.Errorf("%w: %v", ErrStorageFailure, err)
	}

	stats := analytics.EmployeeStats(interactions, s.roster)
	for _, stat := range stats {
		if stat.Employee == employee {
			return stat, nil
		}
	}
	return models.EmployeeStat{}, ErrEmployeeNotFound
}

// GetSLAEvents extracts the deduplicated SLA events from the full stream.
func (s *InsightsService) GetSLAEvents(ctx context.Context) ([]models.SLAInteraction, error) {
	interactions, err := s.fetchAll(ctx)
	if err != nil {
		return nil, err
	}

	events := analytics.SLAEvents(s.roster.Filter(interactions))

	s.logger.Info("computed sla events",
		zap.Int("events", len(events)),
		zap.Int("violations", analytics.CountViolations(events)))

	return events, nil
}

// GetWeeklyBucket rolls the stream up into the calendar week containing
// weekStart. A week with no interactions yields a zero-valued bucket, not
// an error.
func (s *InsightsService) GetWeeklyBucket(ctx context.Context, weekStart time.Time) (models.WeeklyBucket, error) {
	interactions, err := s.fetchAll(ctx)
	if err != nil {
		return models.WeeklyBucket{}, err
	}

	bucket := analytics.WeeklyRollup(interactions, weekStart, s.roster)

	s.logger.Info("computed weekly bucket",
		zap.Time("week_start", bucket.WeekStart),
		zap.Int("interactions", bucket.Interactions),
		zap.Int("sla_violations", bucket.SLAViolations))

	return bucket, nil
}

// GetAvailableWeeks lists the distinct week starts present in the stream,
// newest first.
func (s *InsightsService) GetAvailableWeeks(ctx context.Context) ([]time.Time, error) {
	interactions, err := s.fetchAll(ctx)
	if err != nil {
		return nil, err
	}
	return analytics.AvailableWeeks(interactions, s.roster), nil
}

// SearchInteractions filters the roster-admitted stream by a case-insensitive
// substring match on ticket ID or employee name.
func (s *InsightsService) SearchInteractions(ctx context.Context, query string) ([]models.Interaction, error) {
	interactions, err := s.fetchAll(ctx)
	if err != nil {
		return nil, err
	}
	return analytics.Search(s.roster.Filter(interactions), query), nil
}
