package usecase

import (
	"context"
	"strings"

	"trademart/internal/domain/matching"
	"trademart/internal/repository"

	"github.com/google/uuid"
)

// CatalogUsecase covers the marketplace CRUD side: creating and
// browsing the requirements and offerings the matcher runs over.
type CatalogUsecase interface {
	CreateRequirement(ctx context.Context, r matching.BuyerRequirement) (matching.BuyerRequirement, error)
	GetRequirement(ctx context.Context, id uuid.UUID) (*matching.BuyerRequirement, error)
	ListRequirements(ctx context.Context, f repository.RequirementListFilter) ([]matching.BuyerRequirement, error)

	CreateOffering(ctx context.Context, o matching.SellerOffering) (matching.SellerOffering, error)
	GetOffering(ctx context.Context, id uuid.UUID) (*matching.SellerOffering, error)
	ListOfferings(ctx context.Context, f repository.OfferingListFilter) ([]matching.SellerOffering, error)
}

type Catalog struct {
	requirements repository.BuyerRequirementRepository
	offerings    repository.SellerOfferingRepository
}

func NewCatalogUsecase(requirements repository.BuyerRequirementRepository, offerings repository.SellerOfferingRepository) *Catalog {
	return &Catalog{requirements: requirements, offerings: offerings}
}

func (u *Catalog) CreateRequirement(ctx context.Context, r matching.BuyerRequirement) (matching.BuyerRequirement, error) {
	if r.BuyerID == uuid.Nil ||
		strings.TrimSpace(r.Title) == "" ||
		strings.TrimSpace(r.Category) == "" ||
		strings.TrimSpace(r.Location) == "" {
		return matching.BuyerRequirement{}, ErrInvalidInput
	}
	if r.BudgetMin != nil && r.BudgetMax != nil && *r.BudgetMin > *r.BudgetMax {
		return matching.BuyerRequirement{}, ErrInvalidInput
	}

	if r.RequirementID == uuid.Nil {
		r.RequirementID = uuid.New()
	}
	if err := u.requirements.Insert(ctx, r); err != nil {
		return matching.BuyerRequirement{}, ErrInternal
	}
	return r, nil
}

func (u *Catalog) GetRequirement(ctx context.Context, id uuid.UUID) (*matching.BuyerRequirement, error) {
	if id == uuid.Nil {
		return nil, ErrRequirementNotFound
	}
	r, err := u.requirements.FindActiveByID(ctx, id)
	if err != nil {
		return nil, ErrInternal
	}
	if r == nil {
		return nil, ErrRequirementNotFound
	}
	return r, nil
}

func (u *Catalog) ListRequirements(ctx context.Context, f repository.RequirementListFilter) ([]matching.BuyerRequirement, error) {
	items, err := u.requirements.List(ctx, f)
	if err != nil {
		return nil, ErrInternal
	}
	return items, nil
}

func (u *Catalog) CreateOffering(ctx context.Context, o matching.SellerOffering) (matching.SellerOffering, error) {
	if o.SellerID == uuid.Nil ||
		strings.TrimSpace(o.Title) == "" ||
		strings.TrimSpace(o.Category) == "" ||
		strings.TrimSpace(o.Location) == "" {
		return matching.SellerOffering{}, ErrInvalidInput
	}
	if o.PriceMin != nil && o.PriceMax != nil && *o.PriceMin > *o.PriceMax {
		return matching.SellerOffering{}, ErrInvalidInput
	}
	if o.Rating != nil && (*o.Rating < 0 || *o.Rating > 5) {
		return matching.SellerOffering{}, ErrInvalidInput
	}

	if o.OfferingID == uuid.Nil {
		o.OfferingID = uuid.New()
	}
	if err := u.offerings.Insert(ctx, o); err != nil {
		return matching.SellerOffering{}, ErrInternal
	}
	return o, nil
}

func (u *Catalog) GetOffering(ctx context.Context, id uuid.UUID) (*matching.SellerOffering, error) {
	if id == uuid.Nil {
		return nil, ErrOfferingNotFound
	}
	o, err := u.offerings.FindActiveByID(ctx, id)
	if err != nil {
		return nil, ErrInternal
	}
	if o == nil {
		return nil, ErrOfferingNotFound
	}
	return o, nil
}

func (u *Catalog) ListOfferings(ctx context.Context, f repository.OfferingListFilter) ([]matching.SellerOffering, error) {
	items, err := u.offerings.List(ctx, f)
	if err != nil {
		return nil, ErrInternal
	}
	return items, nil
}
