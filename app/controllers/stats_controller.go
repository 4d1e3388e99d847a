package controllers

import (
	"net/http"

	"github.com/shashiranjanraj/plantnet/app/services"
	"github.com/shashiranjanraj/plantnet/pkg/logger"
	"github.com/shashiranjanraj/plantnet/pkg/response"
)

// StatsController serves the admin dashboard snapshot.
type StatsController struct {
	stats *services.StatsService
}

func NewStatsController(stats *services.StatsService) *StatsController {
	return &StatsController{stats: stats}
}

// Admin returns totals and the per-day chart series.
func (c *StatsController) Admin(w http.ResponseWriter, r *http.Request) {
	out, err := c.stats.Admin(r.Context())
	if err != nil {
		logger.WithCtx(r.Context()).Error("stats: admin", "error", err)
		response.Error(w, http.StatusInternalServerError, "could not compute stats")
		return
	}
	response.Success(w, out)
}
