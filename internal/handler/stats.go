package handler

import (
	"github.com/gofiber/fiber/v3"
)

type StatsHandler struct {
	svc AccountAPI
}

func NewStatsHandler(svc AccountAPI) *StatsHandler {
	return &StatsHandler{svc: svc}
}

// GetStats handles GET /api/stats
func (h *StatsHandler) GetStats(c fiber.Ctx) error {
	stats, err := h.svc.GetStats(c.Context())
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(stats)
}
