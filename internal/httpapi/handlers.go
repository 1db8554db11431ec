package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/mkalens/support-insights/internal/export"
	"github.com/mkalens/support-insights/internal/models"
	"github.com/mkalens/support-insights/internal/service"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	defaultCacheDuration  = 10 * time.Minute
	defaultRequestTimeout = 10 * time.Second

	weekParamLayout = "2006-01-02"
)

type cacheKeyType string

const (
	cacheKeyEmployeeStats cacheKeyType = "http:employee_stats"
	cacheKeyEmployeeStat  cacheKeyType = "http:employee_stat"
	cacheKeySLAEvents     cacheKeyType = "http:sla_events"
	cacheKeyWeeks         cacheKeyType = "http:available_weeks"
	cacheKeyWeeklyBucket  cacheKeyType = "http:weekly_bucket"
)

type Handlers struct {
	insights InsightsService
	cache    Cacher
	logger   *zap.Logger
	sfGroup  singleflight.Group
	cacheTTL time.Duration
}

// NewHandlers initializes the HTTP handlers for the insights API.
func NewHandlers(insights InsightsService, cache Cacher, logger *zap.Logger, ttl time.Duration) *Handlers {
	if insights == nil {
		panic("nil InsightsService provided to NewHandlers")
	}
	if ttl <= 0 {
		ttl = defaultCacheDuration
	}
	return &Handlers{
		insights: insights,
		cache:    cache,
		logger:   logger.Named("http-handler"),
		cacheTTL: ttl,
	}
}

func cacheKey(prefix cacheKeyType, parts ...string) string {
	key := string(prefix)
	for _, p := range parts {
		key = fmt.Sprintf("%s:%s", key, p)
	}
	return key
}

func (h *Handlers) handleError(ctx context.Context, w http.ResponseWriter, op string, err error) {
	switch ctx.Err() {
	case context.Canceled:
		h.logger.Warn("request canceled", zap.String("op", op))
		writeError(w, 499, "request canceled", "CANCELED")
		return
	case context.DeadlineExceeded:
		h.logger.Warn("request timeout", zap.String("op", op))
		writeError(w, http.StatusGatewayTimeout, "request timed out", "TIMEOUT")
		return
	}

	switch {
	case errors.Is(err, service.ErrEmployeeNotFound):
		h.logger.Info("employee not found", zap.String("op", op))
		writeError(w, http.StatusNotFound, "employee not found", "NOT_FOUND")
	case errors.Is(err, service.ErrStorageFailure):
		h.logger.Error("storage failure", zap.String("op", op), zap.Error(err))
		writeError(w, http.StatusBadGateway, "ticket store unavailable", "STORAGE_FAILURE")
	default:
		h.logger.Error("unexpected error", zap.String("op", op), zap.Error(err))
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("%s failed", op), "INTERNAL")
	}
}

func parseWeekParam(r *http.Request) (time.Time, error) {
	raw := chi.URLParam(r, "weekStart")
	week, err := time.Parse(weekParamLayout, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid week start %q: expected YYYY-MM-DD", raw)
	}
	return week.UTC(), nil
}

// GetEmployeeStats serves GET /api/v1/employees/stats.
func (h *Handlers) GetEmployeeStats(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), defaultRequestTimeout)
	defer cancel()

	stats, err := FindAndCache(ctx, h.cache, &h.sfGroup, cacheKey(cacheKeyEmployeeStats), h.cacheTTL, h.logger,
		func(fetchCtx context.Context) ([]models.EmployeeStat, error) {
			return h.insights.GetEmployeeStats(fetchCtx)
		})
	if err != nil {
		h.handleError(ctx, w, "GetEmployeeStats", err)
		return
	}

	writeJSON(w, http.StatusOK, stats)
}

// GetEmployeeStat serves GET /api/v1/employees/{name}/stats.
func (h *Handlers) GetEmployeeStat(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if name == "" {
		writeError(w, http.StatusBadRequest, "employee name is required", "INVALID_ARGUMENT")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), defaultRequestTimeout)
	defer cancel()

	stat, err := FindAndCache(ctx, h.cache, &h.sfGroup, cacheKey(cacheKeyEmployeeStat, name), h.cacheTTL, h.logger,
		func(fetchCtx context.Context) (models.EmployeeStat, error) {
			return h.insights.GetEmployeeStat(fetchCtx, name)
		})
	if err != nil {
		h.handleError(ctx, w, "GetEmployeeStat", err)
		return
	}

	writeJSON(w, http.StatusOK, stat)
}

// GetSLAEvents serves GET /api/v1/sla/events.
func (h *Handlers) GetSLAEvents(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), defaultRequestTimeout)
	defer cancel()

	events, err := FindAndCache(ctx, h.cache, &h.sfGroup, cacheKey(cacheKeySLAEvents), h.cacheTTL, h.logger,
		func(fetchCtx context.Context) ([]models.SLAInteraction, error) {
			return h.insights.GetSLAEvents(fetchCtx)
		})
	if err != nil {
		h.handleError(ctx, w, "GetSLAEvents", err)
		return
	}

	writeJSON(w, http.StatusOK, events)
}

// ListWeeks serves GET /api/v1/weeks.
func (h *Handlers) ListWeeks(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), defaultRequestTimeout)
	defer cancel()

	weeks, err := FindAndCache(ctx, h.cache, &h.sfGroup, cacheKey(cacheKeyWeeks), h.cacheTTL, h.logger,
		func(fetchCtx context.Context) ([]time.Time, error) {
			return h.insights.GetAvailableWeeks(fetchCtx)
		})
	if err != nil {
		h.handleError(ctx, w, "ListWeeks", err)
		return
	}

	out := make([]string, len(weeks))
	for i, wk := range weeks {
		out[i] = wk.Format(weekParamLayout)
	}
	writeJSON(w, http.StatusOK, out)
}

// GetWeeklyBucket serves GET /api/v1/weeks/{weekStart}.
func (h *Handlers) GetWeeklyBucket(w http.ResponseWriter, r *http.Request) {
	week, err := parseWeekParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), "INVALID_ARGUMENT")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), defaultRequestTimeout)
	defer cancel()

	bucket, err := FindAndCache(ctx, h.cache, &h.sfGroup, cacheKey(cacheKeyWeeklyBucket, week.Format(weekParamLayout)), h.cacheTTL, h.logger,
		func(fetchCtx context.Context) (models.WeeklyBucket, error) {
			return h.insights.GetWeeklyBucket(fetchCtx, week)
		})
	if err != nil {
		h.handleError(ctx, w, "GetWeeklyBucket", err)
		return
	}

	writeJSON(w, http.StatusOK, bucket)
}

// ExportWeeklyBucket serves GET /api/v1/weeks/{weekStart}/export as an xlsx
// workbook. The export is rebuilt per request and bypasses the cache.
func (h *Handlers) ExportWeeklyBucket(w http.ResponseWriter, r *http.Request) {
	week, err := parseWeekParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), "INVALID_ARGUMENT")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), defaultRequestTimeout)
	defer cancel()

	bucket, err := h.insights.GetWeeklyBucket(ctx, week)
	if err != nil {
		h.handleError(ctx, w, "ExportWeeklyBucket", err)
		return
	}

	workbook, err := export.WeeklyWorkbook(bucket)
	if err != nil {
		h.handleError(ctx, w, "ExportWeeklyBucket", err)
		return
	}
	defer workbook.Close()

	filename := fmt.Sprintf("weekly-%s.xlsx", week.Format(weekParamLayout))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	if err := workbook.Write(w); err != nil {
		h.logger.Error("failed to stream workbook", zap.Error(err))
	}
}

// Search serves GET /api/v1/search?q=. Results are query-dependent and are
// not cached.
func (h *Handlers) Search(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), defaultRequestTimeout)
	defer cancel()

	results, err := h.insights.SearchInteractions(ctx, r.URL.Query().Get("q"))
	if err != nil {
		h.handleError(ctx, w, "Search", err)
		return
	}

	writeJSON(w, http.StatusOK, results)
}

// Health serves GET /healthz.
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
