package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"trademart/internal/config"
	"trademart/internal/domain/matching"
	"trademart/internal/repository"

	"github.com/google/uuid"
)

func fp(v float64) *float64 { return &v }

type fakeRequirementRepo struct {
	byID       map[uuid.UUID]*matching.BuyerRequirement
	candidates []matching.BuyerRequirement
	err        error
}

func (f *fakeRequirementRepo) FindActiveByID(_ context.Context, id uuid.UUID) (*matching.BuyerRequirement, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.byID[id], nil
}

func (f *fakeRequirementRepo) FindCandidates(context.Context, repository.RequirementCandidateFilter) ([]matching.BuyerRequirement, error) {
	return f.candidates, f.err
}

func (f *fakeRequirementRepo) Insert(context.Context, matching.BuyerRequirement) error { return f.err }

func (f *fakeRequirementRepo) List(context.Context, repository.RequirementListFilter) ([]matching.BuyerRequirement, error) {
	return f.candidates, f.err
}

type fakeOfferingRepo struct {
	byID       map[uuid.UUID]*matching.SellerOffering
	candidates []matching.SellerOffering
	err        error
}

func (f *fakeOfferingRepo) FindActiveByID(_ context.Context, id uuid.UUID) (*matching.SellerOffering, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.byID[id], nil
}

func (f *fakeOfferingRepo) FindCandidates(context.Context, repository.OfferingCandidateFilter) ([]matching.SellerOffering, error) {
	return f.candidates, f.err
}

func (f *fakeOfferingRepo) Insert(context.Context, matching.SellerOffering) error { return f.err }

func (f *fakeOfferingRepo) List(context.Context, repository.OfferingListFilter) ([]matching.SellerOffering, error) {
	return f.candidates, f.err
}

type fakeResultRepo struct {
	err      error
	inserted [][]matching.MatchResult
}

func (f *fakeResultRepo) InsertIgnore(_ context.Context, results []matching.MatchResult) error {
	if f.err != nil {
		return f.err
	}
	f.inserted = append(f.inserted, results)
	return nil
}

func testRequirement() matching.BuyerRequirement {
	return matching.BuyerRequirement{
		RequirementID:          uuid.New(),
		BuyerID:                uuid.New(),
		Title:                  "Bulk steel fasteners",
		Description:            "Industrial grade steel fasteners for assembly lines",
		Category:               "manufacturing",
		BudgetMin:              fp(50000),
		BudgetMax:              fp(100000),
		Location:               "Pune",
		Quantity:               fp(500),
		Unit:                   "kg",
		CertificationsRequired: []string{"ISO9001"},
	}
}

func strongOffering() matching.SellerOffering {
	return matching.SellerOffering{
		OfferingID:     uuid.New(),
		SellerID:       uuid.New(),
		Title:          "Industrial steel fasteners",
		Description:    "Industrial grade steel fasteners in bulk for assembly lines",
		Category:       "manufacturing",
		PriceMin:       fp(60000),
		PriceMax:       fp(90000),
		Location:       "Pune",
		Capacity:       fp(600),
		Unit:           "kg",
		Certifications: []string{"ISO9001", "ISO14001"},
	}
}

func weakOffering() matching.SellerOffering {
	return matching.SellerOffering{
		OfferingID:  uuid.New(),
		SellerID:    uuid.New(),
		Title:       "Office catering",
		Description: "Daily lunch delivery for corporate offices",
		Category:    "catering",
		PriceMin:    fp(900000),
		PriceMax:    fp(950000),
		Location:    "Berlin",
		Capacity:    fp(10),
		Unit:        "meals",
	}
}

func newTestMatching(t *testing.T, reqs *fakeRequirementRepo, offs *fakeOfferingRepo, sink *fakeResultRepo) *Matching {
	t.Helper()
	engine, err := matching.NewEngine(matching.DefaultWeights())
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	u := NewMatchingUsecase(reqs, offs, sink, engine, config.MatchingConfig{
		CandidateLimit: 100,
		MinScore:       0.3,
		Workers:        4,
	}, nil, nil)
	u.persisted = make(chan struct{}, 1)
	return u
}

func waitPersisted(t *testing.T, u *Matching) {
	t.Helper()
	select {
	case <-u.persisted:
	case <-time.After(2 * time.Second):
		t.Fatal("persistence never completed")
	}
}

func TestMatchInvalidDirection(t *testing.T) {
	u := newTestMatching(t, &fakeRequirementRepo{}, &fakeOfferingRepo{}, &fakeResultRepo{})
	_, err := u.Match(context.Background(), MatchParams{Direction: "sideways", EntityID: uuid.New()})
	if !errors.Is(err, ErrInvalidMatchType) {
		t.Fatalf("expected ErrInvalidMatchType, got %v", err)
	}
}

func TestMatchMissingEntityID(t *testing.T) {
	u := newTestMatching(t, &fakeRequirementRepo{}, &fakeOfferingRepo{}, &fakeResultRepo{})
	_, err := u.Match(context.Background(), MatchParams{Direction: DirectionBuyerToSeller})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestMatchRequirementNotFound(t *testing.T) {
	u := newTestMatching(t, &fakeRequirementRepo{byID: map[uuid.UUID]*matching.BuyerRequirement{}}, &fakeOfferingRepo{}, &fakeResultRepo{})
	_, err := u.Match(context.Background(), MatchParams{Direction: DirectionBuyerToSeller, EntityID: uuid.New()})
	if !errors.Is(err, ErrRequirementNotFound) {
		t.Fatalf("expected ErrRequirementNotFound, got %v", err)
	}
}

func TestMatchOfferingNotFound(t *testing.T) {
	u := newTestMatching(t, &fakeRequirementRepo{}, &fakeOfferingRepo{byID: map[uuid.UUID]*matching.SellerOffering{}}, &fakeResultRepo{})
	_, err := u.Match(context.Background(), MatchParams{Direction: DirectionSellerToBuyer, EntityID: uuid.New()})
	if !errors.Is(err, ErrOfferingNotFound) {
		t.Fatalf("expected ErrOfferingNotFound, got %v", err)
	}
}

func TestMatchCandidateStoreFailure(t *testing.T) {
	req := testRequirement()
	reqs := &fakeRequirementRepo{byID: map[uuid.UUID]*matching.BuyerRequirement{req.RequirementID: &req}}
	offs := &fakeOfferingRepo{err: errors.New("connection refused")}

	u := newTestMatching(t, reqs, offs, &fakeResultRepo{})
	_, err := u.Match(context.Background(), MatchParams{Direction: DirectionBuyerToSeller, EntityID: req.RequirementID})
	if !errors.Is(err, ErrInternal) {
		t.Fatalf("expected ErrInternal, got %v", err)
	}
}

func TestMatchFiltersRanksAndTruncates(t *testing.T) {
	req := testRequirement()

	good := strongOffering()
	better := strongOffering()
	better.Title = req.Title
	better.Description = req.Description
	weak := weakOffering()

	reqs := &fakeRequirementRepo{byID: map[uuid.UUID]*matching.BuyerRequirement{req.RequirementID: &req}}
	offs := &fakeOfferingRepo{candidates: []matching.SellerOffering{weak, good, better}}
	sink := &fakeResultRepo{}
	u := newTestMatching(t, reqs, offs, sink)

	out, err := u.Match(context.Background(), MatchParams{
		Direction: DirectionBuyerToSeller,
		EntityID:  req.RequirementID,
		Limit:     10,
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	for _, m := range out.Matches {
		if m.Score < 0.3 {
			t.Fatalf("candidate with score %v below threshold must not appear", m.Score)
		}
		if m.OfferingID == weak.OfferingID {
			t.Fatal("weak candidate must be filtered out")
		}
	}
	if len(out.Matches) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(out.Matches))
	}
	if out.Total != len(out.Matches) {
		t.Fatalf("total %d disagrees with matches %d", out.Total, len(out.Matches))
	}
	for i := 1; i < len(out.Matches); i++ {
		if out.Matches[i].Score > out.Matches[i-1].Score {
			t.Fatal("matches must be sorted by descending score")
		}
	}
	if out.Matches[0].OfferingID != better.OfferingID {
		t.Fatal("the closest offering must rank first")
	}

	waitPersisted(t, u)
	if len(sink.inserted) != 1 {
		t.Fatalf("expected one persistence batch, got %d", len(sink.inserted))
	}
}

func TestMatchTruncatesToLimit(t *testing.T) {
	req := testRequirement()
	candidates := make([]matching.SellerOffering, 8)
	for i := range candidates {
		candidates[i] = strongOffering()
	}

	reqs := &fakeRequirementRepo{byID: map[uuid.UUID]*matching.BuyerRequirement{req.RequirementID: &req}}
	u := newTestMatching(t, reqs, &fakeOfferingRepo{candidates: candidates}, &fakeResultRepo{})

	out, err := u.Match(context.Background(), MatchParams{
		Direction: DirectionBuyerToSeller,
		EntityID:  req.RequirementID,
		Limit:     3,
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(out.Matches) != 3 {
		t.Fatalf("expected 3 matches after truncation, got %d", len(out.Matches))
	}
	waitPersisted(t, u)
}

func TestMatchScoreIgnoresDirection(t *testing.T) {
	req := testRequirement()
	off := strongOffering()

	reqs := &fakeRequirementRepo{
		byID:       map[uuid.UUID]*matching.BuyerRequirement{req.RequirementID: &req},
		candidates: []matching.BuyerRequirement{req},
	}
	offs := &fakeOfferingRepo{
		byID:       map[uuid.UUID]*matching.SellerOffering{off.OfferingID: &off},
		candidates: []matching.SellerOffering{off},
	}

	u := newTestMatching(t, reqs, offs, &fakeResultRepo{})
	fromBuyer, err := u.Match(context.Background(), MatchParams{Direction: DirectionBuyerToSeller, EntityID: req.RequirementID})
	if err != nil {
		t.Fatalf("buyer_to_seller: %v", err)
	}
	waitPersisted(t, u)

	u2 := newTestMatching(t, reqs, offs, &fakeResultRepo{})
	fromSeller, err := u2.Match(context.Background(), MatchParams{Direction: DirectionSellerToBuyer, EntityID: off.OfferingID})
	if err != nil {
		t.Fatalf("seller_to_buyer: %v", err)
	}
	waitPersisted(t, u2)

	if len(fromBuyer.Matches) != 1 || len(fromSeller.Matches) != 1 {
		t.Fatalf("expected one match on each side, got %d and %d", len(fromBuyer.Matches), len(fromSeller.Matches))
	}
	a, b := fromBuyer.Matches[0], fromSeller.Matches[0]
	if a.Score != b.Score {
		t.Fatalf("score depends on call direction: %v vs %v", a.Score, b.Score)
	}
	if a.Factors != b.Factors {
		t.Fatalf("factors depend on call direction: %+v vs %+v", a.Factors, b.Factors)
	}
	if a.MatchID != b.MatchID {
		t.Fatal("the same pair must produce the same match id from either side")
	}
}

func TestMatchPersistenceFailureIsSwallowed(t *testing.T) {
	req := testRequirement()
	reqs := &fakeRequirementRepo{byID: map[uuid.UUID]*matching.BuyerRequirement{req.RequirementID: &req}}
	offs := &fakeOfferingRepo{candidates: []matching.SellerOffering{strongOffering()}}
	sink := &fakeResultRepo{err: errors.New("storage down")}

	u := newTestMatching(t, reqs, offs, sink)
	out, err := u.Match(context.Background(), MatchParams{Direction: DirectionBuyerToSeller, EntityID: req.RequirementID})
	if err != nil {
		t.Fatalf("sink failure must not fail the request: %v", err)
	}
	if len(out.Matches) != 1 {
		t.Fatalf("expected the computed match to be returned, got %d", len(out.Matches))
	}
	waitPersisted(t, u)
}
