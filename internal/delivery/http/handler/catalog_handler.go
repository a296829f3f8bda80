package handler

import (
	"errors"

	"trademart/internal/delivery/http/dto"
	"trademart/internal/delivery/http/middleware"
	"trademart/internal/domain/matching"
	"trademart/internal/pkg/response"
	"trademart/internal/repository"
	"trademart/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type CatalogHandler struct {
	uc usecase.CatalogUsecase
}

func NewCatalogHandler(uc usecase.CatalogUsecase) *CatalogHandler {
	return &CatalogHandler{uc: uc}
}

func (h *CatalogHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	reqs := r.Group("/requirements")
	reqs.Post("/", h.CreateRequirement)
	reqs.Get("/", h.ListRequirements)
	reqs.Get("/:id", h.GetRequirement)

	offs := r.Group("/offerings")
	offs.Post("/", h.CreateOffering)
	offs.Get("/", h.ListOfferings)
	offs.Get("/:id", h.GetOffering)
}

func (h *CatalogHandler) CreateRequirement(c fiber.Ctx) error {
	var req dto.CreateRequirementRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	created, err := h.uc.CreateRequirement(c.Context(), matching.BuyerRequirement{
		BuyerID:                req.BuyerID,
		Title:                  req.Title,
		Description:            req.Description,
		Category:               req.Category,
		Subcategory:            req.Subcategory,
		BudgetMin:              req.BudgetMin,
		BudgetMax:              req.BudgetMax,
		Location:               req.Location,
		PreferredLocations:     req.PreferredLocations,
		Quantity:               req.Quantity,
		Unit:                   req.Unit,
		QualityRequirements:    req.QualityRequirements,
		CertificationsRequired: req.CertificationsRequired,
		Tags:                   req.Tags,
	})
	if err != nil {
		return mapCatalogUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, "created", requirementResponse(created))
}

func (h *CatalogHandler) GetRequirement(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	r, err := h.uc.GetRequirement(c.Context(), id)
	if err != nil {
		return mapCatalogUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, requirementResponse(*r))
}

func (h *CatalogHandler) ListRequirements(c fiber.Ctx) error {
	items, err := h.uc.ListRequirements(c.Context(), repository.RequirementListFilter{
		Category: c.Query("category"),
		Limit:    fiber.Query[int](c, "limit"),
		Offset:   fiber.Query[int](c, "offset"),
	})
	if err != nil {
		return mapCatalogUsecaseError(err)
	}

	out := make([]dto.RequirementResponse, 0, len(items))
	for _, r := range items {
		out = append(out, requirementResponse(r))
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}

func (h *CatalogHandler) CreateOffering(c fiber.Ctx) error {
	var req dto.CreateOfferingRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	created, err := h.uc.CreateOffering(c.Context(), matching.SellerOffering{
		SellerID:         req.SellerID,
		Title:            req.Title,
		Description:      req.Description,
		Category:         req.Category,
		Subcategory:      req.Subcategory,
		PriceMin:         req.PriceMin,
		PriceMax:         req.PriceMax,
		Location:         req.Location,
		ServiceAreas:     req.ServiceAreas,
		Capacity:         req.Capacity,
		Unit:             req.Unit,
		Certifications:   req.Certifications,
		QualityStandards: req.QualityStandards,
		Tags:             req.Tags,
		Rating:           req.Rating,
	})
	if err != nil {
		return mapCatalogUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, "created", offeringResponse(created))
}

func (h *CatalogHandler) GetOffering(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	o, err := h.uc.GetOffering(c.Context(), id)
	if err != nil {
		return mapCatalogUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, offeringResponse(*o))
}

func (h *CatalogHandler) ListOfferings(c fiber.Ctx) error {
	items, err := h.uc.ListOfferings(c.Context(), repository.OfferingListFilter{
		Category: c.Query("category"),
		Limit:    fiber.Query[int](c, "limit"),
		Offset:   fiber.Query[int](c, "offset"),
	})
	if err != nil {
		return mapCatalogUsecaseError(err)
	}

	out := make([]dto.OfferingResponse, 0, len(items))
	for _, o := range items {
		out = append(out, offeringResponse(o))
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}

func requirementResponse(r matching.BuyerRequirement) dto.RequirementResponse {
	return dto.RequirementResponse{
		RequirementID:          r.RequirementID,
		BuyerID:                r.BuyerID,
		Title:                  r.Title,
		Description:            r.Description,
		Category:               r.Category,
		Subcategory:            r.Subcategory,
		BudgetMin:              r.BudgetMin,
		BudgetMax:              r.BudgetMax,
		Location:               r.Location,
		PreferredLocations:     r.PreferredLocations,
		Quantity:               r.Quantity,
		Unit:                   r.Unit,
		QualityRequirements:    r.QualityRequirements,
		CertificationsRequired: r.CertificationsRequired,
		Tags:                   r.Tags,
		CreatedAt:              r.CreatedAt,
	}
}

func offeringResponse(o matching.SellerOffering) dto.OfferingResponse {
	return dto.OfferingResponse{
		OfferingID:       o.OfferingID,
		SellerID:         o.SellerID,
		Title:            o.Title,
		Description:      o.Description,
		Category:         o.Category,
		Subcategory:      o.Subcategory,
		PriceMin:         o.PriceMin,
		PriceMax:         o.PriceMax,
		Location:         o.Location,
		ServiceAreas:     o.ServiceAreas,
		Capacity:         o.Capacity,
		Unit:             o.Unit,
		Certifications:   o.Certifications,
		QualityStandards: o.QualityStandards,
		Tags:             o.Tags,
		Rating:           o.Rating,
		CreatedAt:        o.CreatedAt,
	}
}

func mapCatalogUsecaseError(err error) error {
	switch {
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	case errors.Is(err, usecase.ErrRequirementNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Buyer requirement not found", nil, err)
	case errors.Is(err, usecase.ErrOfferingNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Seller offering not found", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
