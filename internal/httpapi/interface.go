package httpapi

import (
	"context"
	"time"

	"github.com/mkalens/support-insights/internal/models"
)

// Cacher defines the interface for cache operations.
type Cacher interface {
	Close() error
	Get(ctx context.Context, key string, dest any) error
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
}

type InsightsService interface {
	GetEmployeeStats(ctx context.Context) ([]models.EmployeeStat, error)
	GetEmployeeStat(ctx context.Context, employee string) (models.EmployeeStat, error)
	GetSLAEvents(ctx context.Context) ([]models.SLAInteraction, error)
	GetWeeklyBucket(ctx context.Context, weekStart time.Time) (models.WeeklyBucket, error)
	GetAvailableWeeks(ctx context.Context) ([]time.Time, error)
	SearchInteractions(ctx context.Context, query string) ([]models.Interaction, error)
}
