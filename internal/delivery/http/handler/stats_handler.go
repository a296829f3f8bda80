package handler

import (
	"trademart/internal/delivery/http/middleware"
	"trademart/internal/pkg/response"
	"trademart/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type StatsHandler struct {
	uc usecase.StatsUsecase
}

func NewStatsHandler(uc usecase.StatsUsecase) *StatsHandler {
	return &StatsHandler{uc: uc}
}

func (h *StatsHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/matching_stats", h.MatchingStats)
}

func (h *StatsHandler) MatchingStats(c fiber.Ctx) error {
	stats, err := h.uc.MatchingStats(c.Context())
	if err != nil {
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, stats)
}
