package usecase

import (
	"context"
	"log"
	"sort"
	"time"

	"trademart/internal/config"
	"trademart/internal/domain/matching"
	"trademart/internal/metrics"
	"trademart/internal/pool"
	"trademart/internal/repository"

	"github.com/google/uuid"
)

type MatchDirection string

const (
	DirectionBuyerToSeller MatchDirection = "buyer_to_seller"
	DirectionSellerToBuyer MatchDirection = "seller_to_buyer"
)

// MatchFilters are the optional caller-supplied candidate filters.
// MaxPrice applies when matching offerings, MinBudget when matching
// requirements; the irrelevant one is ignored.
type MatchFilters struct {
	Location  string
	MaxPrice  *float64
	MinBudget *float64
}

type MatchParams struct {
	Direction MatchDirection
	EntityID  uuid.UUID
	Limit     int
	Filters   MatchFilters
}

type MatchOutput struct {
	Matches []matching.MatchResult
	Total   int
	Elapsed time.Duration
}

type MatchingUsecase interface {
	Match(ctx context.Context, p MatchParams) (MatchOutput, error)
}

type Matching struct {
	requirements repository.BuyerRequirementRepository
	offerings    repository.SellerOfferingRepository
	results      repository.MatchResultRepository
	engine       *matching.Engine
	workers      *pool.WorkerPool
	cfg          config.MatchingConfig
	metrics      *metrics.Metrics
	logger       *log.Logger

	// persisted signals completion of the best-effort write-back;
	// tests use it, production callers ignore it.
	persisted chan struct{}
}

func NewMatchingUsecase(
	requirements repository.BuyerRequirementRepository,
	offerings repository.SellerOfferingRepository,
	results repository.MatchResultRepository,
	engine *matching.Engine,
	cfg config.MatchingConfig,
	m *metrics.Metrics,
	logger *log.Logger,
) *Matching {
	if logger == nil {
		logger = log.Default()
	}
	workers := cfg.Workers
	if workers <= 0 {
		workers = 8
	}
	if cfg.CandidateLimit <= 0 {
		cfg.CandidateLimit = 100
	}
	if cfg.MinScore <= 0 {
		cfg.MinScore = 0.3
	}
	return &Matching{
		requirements: requirements,
		offerings:    offerings,
		results:      results,
		engine:       engine,
		workers:      pool.New(workers),
		cfg:          cfg,
		metrics:      m,
		logger:       logger,
	}
}

func (u *Matching) Match(ctx context.Context, p MatchParams) (MatchOutput, error) {
	if p.EntityID == uuid.Nil {
		return MatchOutput{}, ErrInvalidInput
	}

	start := time.Now()

	var (
		results    []matching.MatchResult
		candidates int
		err        error
	)
	switch p.Direction {
	case DirectionBuyerToSeller:
		results, candidates, err = u.matchSellers(ctx, p)
	case DirectionSellerToBuyer:
		results, candidates, err = u.matchBuyers(ctx, p)
	default:
		return MatchOutput{}, ErrInvalidMatchType
	}
	if err != nil {
		return MatchOutput{}, err
	}

	results = u.rank(results, p.Limit)
	elapsed := time.Since(start)
	u.metrics.RecordMatch(elapsed, candidates, len(results))
	u.persist(ctx, results)

	return MatchOutput{Matches: results, Total: len(results), Elapsed: elapsed}, nil
}

// matchSellers finds offerings for a buyer requirement.
func (u *Matching) matchSellers(ctx context.Context, p MatchParams) ([]matching.MatchResult, int, error) {
	req, err := u.requirements.FindActiveByID(ctx, p.EntityID)
	if err != nil {
		return nil, 0, ErrInternal
	}
	if req == nil {
		return nil, 0, ErrRequirementNotFound
	}

	offerings, err := u.offerings.FindCandidates(ctx, repository.OfferingCandidateFilter{
		Category: req.Category,
		Location: p.Filters.Location,
		MaxPrice: p.Filters.MaxPrice,
		Limit:    u.candidateLimit(),
	})
	if err != nil {
		return nil, 0, ErrInternal
	}

	scored := make([]matching.MatchResult, len(offerings))
	u.workers.Map(ctx, len(offerings), func(_ context.Context, i int) {
		scored[i] = u.scorePair(*req, offerings[i])
	})
	return scored, len(offerings), nil
}

// matchBuyers finds buyer requirements for a seller offering. The
// scoring pipeline is exactly the one matchSellers uses: the engine is
// always handed (requirement, offering), so direction cannot influence
// the score.
func (u *Matching) matchBuyers(ctx context.Context, p MatchParams) ([]matching.MatchResult, int, error) {
	off, err := u.offerings.FindActiveByID(ctx, p.EntityID)
	if err != nil {
		return nil, 0, ErrInternal
	}
	if off == nil {
		return nil, 0, ErrOfferingNotFound
	}

	requirements, err := u.requirements.FindCandidates(ctx, repository.RequirementCandidateFilter{
		Category:  off.Category,
		Location:  p.Filters.Location,
		MinBudget: p.Filters.MinBudget,
		Limit:     u.candidateLimit(),
	})
	if err != nil {
		return nil, 0, ErrInternal
	}

	scored := make([]matching.MatchResult, len(requirements))
	u.workers.Map(ctx, len(requirements), func(_ context.Context, i int) {
		scored[i] = u.scorePair(requirements[i], *off)
	})
	return scored, len(requirements), nil
}

// scorePair recovers from any per-candidate scoring failure: one bad
// candidate must never abort the whole request. A recovered candidate
// scores zero and falls below the threshold.
func (u *Matching) scorePair(req matching.BuyerRequirement, off matching.SellerOffering) (res matching.MatchResult) {
	defer func() {
		if r := recover(); r != nil {
			u.logger.Printf("[Matching] scoring pair %s/%s failed: %v", req.RequirementID, off.OfferingID, r)
			res = matching.MatchResult{}
		}
	}()
	return u.engine.Score(req, off)
}

// rank drops sub-threshold candidates, orders the rest by score with a
// deterministic tie-break, and truncates to the caller's limit.
func (u *Matching) rank(results []matching.MatchResult, limit int) []matching.MatchResult {
	kept := results[:0]
	for _, r := range results {
		if r.Score >= u.cfg.MinScore {
			kept = append(kept, r)
		}
	}

	sort.SliceStable(kept, func(i, j int) bool {
		if kept[i].Score != kept[j].Score {
			return kept[i].Score > kept[j].Score
		}
		return kept[i].MatchID.String() < kept[j].MatchID.String()
	})

	if limit <= 0 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}
	if len(kept) > limit {
		kept = kept[:limit]
	}
	return kept
}

// persist writes results back for analytics, detached from the request
// lifecycle. Failures are logged and swallowed: the match was already
// computed and returned.
func (u *Matching) persist(ctx context.Context, results []matching.MatchResult) {
	if len(results) == 0 {
		u.signalPersisted()
		return
	}
	go func() {
		writeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
		defer cancel()
		if err := u.results.InsertIgnore(writeCtx, results); err != nil {
			u.logger.Printf("[Matching] persisting %d match results failed: %v", len(results), err)
		}
		u.signalPersisted()
	}()
}

func (u *Matching) signalPersisted() {
	if u.persisted != nil {
		u.persisted <- struct{}{}
	}
}

func (u *Matching) candidateLimit() int {
	return u.cfg.CandidateLimit
}
