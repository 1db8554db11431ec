package mocks

import (
	"context"
	"errors"
	"time"

	"github.com/mkalens/support-insights/internal/models"
)

// MockInsightsService is a mock implementation of the InsightsService
// interface for testing the handler layer. It uses function-based mocking
// for flexibility.
type MockInsightsService struct {
	GetEmployeeStatsFunc   func(ctx context.Context) ([]models.EmployeeStat, error)
	GetEmployeeStatFunc    func(ctx context.Context, employee string) (models.EmployeeStat, error)
	GetSLAEventsFunc       func(ctx context.Context) ([]models.SLAInteraction, error)
	GetWeeklyBucketFunc    func(ctx context.Context, weekStart time.Time) (models.WeeklyBucket, error)
	GetAvailableWeeksFunc  func(ctx context.Context) ([]time.Time, error)
	SearchInteractionsFunc func(ctx context.Context, query string) ([]models.Interaction, error)
}

// GetEmployeeStats implements the InsightsService interface
func (m *MockInsightsService) GetEmployeeStats(ctx context.Context) ([]models.EmployeeStat, error) {
	if m.GetEmployeeStatsFunc != nil {
		return m.GetEmployeeStatsFunc(ctx)
	}
	return nil, errors.New("GetEmployeeStatsFunc not implemented")
}

// GetEmployeeStat implements the InsightsService interface
func (m *MockInsightsService) GetEmployeeStat(ctx context.Context, employee string) (models.EmployeeStat, error) {
	if m.GetEmployeeStatFunc != nil {
		return m.GetEmployeeStatFunc(ctx, employee)
	}
	return models.EmployeeStat{}, errors.New("GetEmployeeStatFunc not implemented")
}

// GetSLAEvents implements the InsightsService interface
func (m *MockInsightsService) GetSLAEvents(ctx context.Context) ([]models.SLAInteraction, error) {
	if m.GetSLAEventsFunc != nil {
		return m.GetSLAEventsFunc(ctx)
	}
	return nil, errors.New("GetSLAEventsFunc not implemented")
}

// GetWeeklyBucket implements the InsightsService interface
func (m *MockInsightsService) GetWeeklyBucket(ctx context.Context, weekStart time.Time) (models.WeeklyBucket, error) {
	if m.GetWeeklyBucketFunc != nil {
		return m.GetWeeklyBucketFunc(ctx, weekStart)
	}
	return models.WeeklyBucket{}, errors.New("GetWeeklyBucketFunc not implemented")
}

// GetAvailableWeeks implements the InsightsService interface
func (m *MockInsightsService) GetAvailableWeeks(ctx context.Context) ([]time.Time, error) {
	if m.GetAvailableWeeksFunc != nil {
		return m.GetAvailableWeeksFunc(ctx)
	}
	return nil, errors.New("GetAvailableWeeksFunc not implemented")
}

// SearchInteractions implements the InsightsService interface
func (m *MockInsightsService) SearchInteractions(ctx context.Context, query string) ([]models.Interaction, error) {
	if m.SearchInteractionsFunc != nil {
		return m.SearchInteractionsFunc(ctx, query)
	}
	return nil, errors.New("SearchInteractionsFunc not implemented")
}
