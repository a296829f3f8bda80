package usecase

import (
	"context"
	"log"
	"time"

	"trademart/internal/repository"
)

const statsCacheKey = "trademart:matching_stats"

// StatsCache is the caching surface the stats usecase needs; the Redis
// adapter in infrastructure/cache implements it and degrades to a
// no-op when Redis is unreachable.
type StatsCache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
}

type StatsUsecase interface {
	MatchingStats(ctx context.Context) (repository.MatchStats, error)
}

type Stats struct {
	repo   repository.MatchStatsRepository
	cache  StatsCache
	ttl    time.Duration
	logger *log.Logger
}

func NewStatsUsecase(repo repository.MatchStatsRepository, cache StatsCache, ttl time.Duration, logger *log.Logger) *Stats {
	if logger == nil {
		logger = log.Default()
	}
	if ttl <= 0 {
		ttl = 60 * time.Second
	}
	return &Stats{repo: repo, cache: cache, ttl: ttl, logger: logger}
}

func (u *Stats) MatchingStats(ctx context.Context) (repository.MatchStats, error) {
	if u.cache != nil {
		var cached repository.MatchStats
		hit, err := u.cache.GetJSON(ctx, statsCacheKey, &cached)
		if err != nil {
			u.logger.Printf("[Stats] cache read failed: %v", err)
		}
		if hit {
			return cached, nil
		}
	}

	stats, err := u.repo.Collect(ctx)
	if err != nil {
		return repository.MatchStats{}, ErrInternal
	}

	if u.cache != nil {
		if err := u.cache.SetJSON(ctx, statsCacheKey, stats, u.ttl); err != nil {
			u.logger.Printf("[Stats] cache write failed: %v", err)
		}
	}
	return stats, nil
}
