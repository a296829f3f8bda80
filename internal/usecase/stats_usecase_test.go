package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"trademart/internal/repository"
)

type fakeStatsRepo struct {
	stats repository.MatchStats
	err   error
	calls int
}

func (f *fakeStatsRepo) Collect(context.Context) (repository.MatchStats, error) {
	f.calls++
	return f.stats, f.err
}

type fakeStatsCache struct {
	store map[string][]byte
	err   error
}

func newFakeStatsCache() *fakeStatsCache {
	return &fakeStatsCache{store: map[string][]byte{}}
}

func (f *fakeStatsCache) GetJSON(_ context.Context, key string, out any) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	b, ok := f.store[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, out)
}

func (f *fakeStatsCache) SetJSON(_ context.Context, key string, value any, _ time.Duration) error {
	if f.err != nil {
		return f.err
	}
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	f.store[key] = b
	return nil
}

func TestMatchingStatsCachesResult(t *testing.T) {
	repo := &fakeStatsRepo{stats: repository.MatchStats{
		MatchesToday:      12,
		SuccessfulLast30d: 40,
		AverageScore:      0.64,
		SuccessRate:       0.31,
		TopCategories:     []repository.CategoryCount{{Category: "manufacturing", Count: 25}},
	}}
	cache := newFakeStatsCache()
	u := NewStatsUsecase(repo, cache, time.Minute, nil)

	first, err := u.MatchingStats(context.Background())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	second, err := u.MatchingStats(context.Background())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	if repo.calls != 1 {
		t.Fatalf("expected one repository hit, got %d", repo.calls)
	}
	if first.MatchesToday != second.MatchesToday || second.MatchesToday != 12 {
		t.Fatalf("cached stats disagree: %+v vs %+v", first, second)
	}
}

func TestMatchingStatsCacheFailureFallsThrough(t *testing.T) {
	repo := &fakeStatsRepo{stats: repository.MatchStats{MatchesToday: 3}}
	u := NewStatsUsecase(repo, &fakeStatsCache{err: errors.New("redis down")}, time.Minute, nil)

	got, err := u.MatchingStats(context.Background())
	if err != nil {
		t.Fatalf("cache failure must not fail the request: %v", err)
	}
	if got.MatchesToday != 3 {
		t.Fatalf("expected repository stats, got %+v", got)
	}
}

func TestMatchingStatsRepoFailure(t *testing.T) {
	u := NewStatsUsecase(&fakeStatsRepo{err: errors.New("query failed")}, nil, time.Minute, nil)
	if _, err := u.MatchingStats(context.Background()); !errors.Is(err, ErrInternal) {
		t.Fatalf("expected ErrInternal, got %v", err)
	}
}
