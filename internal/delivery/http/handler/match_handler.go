package handler

import (
	"errors"

	"trademart/internal/delivery/http/dto"
	"trademart/internal/delivery/http/middleware"
	"trademart/internal/domain/matching"
	"trademart/internal/pkg/response"
	"trademart/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type MatchHandler struct {
	uc usecase.MatchingUsecase
}

func NewMatchHandler(uc usecase.MatchingUsecase) *MatchHandler {
	return &MatchHandler{uc: uc}
}

func (h *MatchHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Post("/match", h.Match)
}

func (h *MatchHandler) Match(c fiber.Ctx) error {
	var req dto.MatchRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	direction := usecase.MatchDirection(req.Type)
	if direction != usecase.DirectionBuyerToSeller && direction != usecase.DirectionSellerToBuyer {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid match type", nil, nil)
	}

	entityID, err := uuid.Parse(req.EntityID)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid entity id", nil, err)
	}

	params := usecase.MatchParams{
		Direction: direction,
		EntityID:  entityID,
		Limit:     req.Limit,
	}
	if req.Filters != nil {
		params.Filters = usecase.MatchFilters{
			Location:  req.Filters.Location,
			MaxPrice:  req.Filters.MaxPrice,
			MinBudget: req.Filters.MinBudget,
		}
	}

	out, err := h.uc.Match(c.Context(), params)
	if err != nil {
		return mapMatchingUsecaseError(err)
	}

	includeScores := true
	if req.IncludeScores != nil {
		includeScores = *req.IncludeScores
	}

	res := dto.MatchResponse{
		Matches:          make([]dto.MatchResultResponse, 0, len(out.Matches)),
		TotalMatches:     out.Total,
		ProcessingTimeMs: float64(out.Elapsed.Microseconds()) / 1000.0,
	}
	for _, m := range out.Matches {
		res.Matches = append(res.Matches, matchResultResponse(m, includeScores))
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, res)
}

func matchResultResponse(m matching.MatchResult, includeScores bool) dto.MatchResultResponse {
	out := dto.MatchResultResponse{
		MatchID:                     m.MatchID.String(),
		RequirementID:               m.RequirementID.String(),
		OfferingID:                  m.OfferingID.String(),
		MatchScore:                  m.Score,
		ConfidenceLevel:             string(m.Confidence),
		EstimatedSuccessProbability: m.SuccessProbability,
		MatchReasons:                m.Reasons,
		PotentialIssues:             m.Issues,
		CreatedAt:                   m.CreatedAt,
	}
	if includeScores {
		out.MatchFactors = &dto.MatchFactorsResponse{
			Category: m.Factors.Category,
			Text:     m.Factors.Text,
			Price:    m.Factors.Price,
			Location: m.Factors.Location,
			Quantity: m.Factors.Quantity,
			Quality:  m.Factors.Quality,
		}
	}
	return out
}

func mapMatchingUsecaseError(err error) error {
	switch {
	case errors.Is(err, usecase.ErrInvalidMatchType):
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid match type", nil, err)
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
