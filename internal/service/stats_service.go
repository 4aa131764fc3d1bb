package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/campusdesk/helpdesk/internal/domain"
	"github.com/campusdesk/helpdesk/internal/repository"
	apperrors "github.com/campusdesk/helpdesk/pkg/util"
)

const adminStatsCacheKey = "helpdesk:stats:admin"

// StatsService serves read-only count projections over the ticket store.
// Admin-global counts are cached in Redis with a short TTL; the cache is
// best effort and any failure falls through to Postgres.
type StatsService struct {
	tickets  repository.TicketRepository
	cache    *redis.Client
	cacheTTL time.Duration
	logger   *zap.Logger
}

// NewStatsService constructs the service. cache may be nil to disable
// caching entirely.
func NewStatsService(tickets repository.TicketRepository, cache *redis.Client, cacheTTL time.Duration, logger *zap.Logger) *StatsService {
	return &StatsService{
		tickets:  tickets,
		cache:    cache,
		cacheTTL: cacheTTL,
		logger:   logger,
	}
}

// AdminStats returns global ticket counts by status.
func (s *StatsService) AdminStats(ctx context.Context) (domain.TicketStats, error) {
	if cached, ok := s.cachedStats(ctx); ok {
		return cached, nil
	}

	stats, err := s.tickets.CountByStatus(ctx, nil)
	if err != nil {
		return domain.TicketStats{}, apperrors.MapError(err)
	}

	s.storeStats(ctx, stats)
	return stats, nil
}

// UserStats returns status counts scoped to the caller's own tickets.
// Admin callers see the global counts, matching the dashboard cards.
func (s *StatsService) UserStats(ctx context.Context, caller Caller) (domain.TicketStats, error) {
	var scope *string
	if !caller.Role.IsAdmin() {
		scope = &caller.ID
	}
	stats, err := s.tickets.CountByStatus(ctx, scope)
	if err != nil {
		return domain.TicketStats{}, apperrors.MapError(err)
	}
	return stats, nil
}

func (s *StatsService) cachedStats(ctx context.Context) (domain.TicketStats, bool) {
	if s.cache == nil || s.cacheTTL <= 0 {
		return domain.TicketStats{}, false
	}
	raw, err := s.cache.Get(ctx, adminStatsCacheKey).Bytes()
	if err != nil {
		if err != redis.Nil {
			s.logger.Debug("stats cache read failed", zap.Error(err))
		}
		return domain.TicketStats{}, false
	}
	var stats domain.TicketStats
	if err := json.Unmarshal(raw, &stats); err != nil {
		return domain.TicketStats{}, false
	}
	return stats, true
}

func (s *StatsService) storeStats(ctx context.Context, stats domain.TicketStats) {
	if s.cache == nil || s.cacheTTL <= 0 {
		return
	}
	raw, err := json.Marshal(stats)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, adminStatsCacheKey, raw, s.cacheTTL).Err(); err != nil {
		s.logger.Debug("stats cache write failed", zap.Error(err))
	}
}
