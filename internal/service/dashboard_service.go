package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/sma-room-console/internal/models"
)

type dashboardRepository interface {
	Counts(ctx context.Context) (*models.DashboardCounts, error)
}

// DashboardService serves the aggregate counters, cached for a short TTL.
type DashboardService struct {
	repo     dashboardRepository
	cache    *CacheService
	cacheTTL time.Duration
	logger   *zap.Logger
}

// NewDashboardService constructs a DashboardService with sane defaults.
func NewDashboardService(repo dashboardRepository, cache *CacheService, cacheTTL time.Duration, logger *zap.Logger) *DashboardService {
	if cacheTTL <= 0 {
		cacheTTL = time.Minute
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardService{repo: repo, cache: cache, cacheTTL: cacheTTL, logger: logger}
}

// Counts returns the six counters and reports whether they came from cache.
func (s *DashboardService) Counts(ctx context.Context) (*models.DashboardCounts, bool, error) {
	var cached models.DashboardCounts
	if s.cache.Get(ctx, CacheKeyDashboard, &cached) {
		return &cached, true, nil
	}

	counts, err := s.repo.Counts(ctx)
	if err != nil {
		return nil, false, repoError(err, "dashboard", "load")
	}
	s.cache.Set(ctx, CacheKeyDashboard, counts, s.cacheTTL)
	return counts, false, nil
}
