package handlers

import (
	"net/http"

	"github.com/dicoslang/backoffice/internal/models"
	"github.com/dicoslang/backoffice/internal/services"
)

type StatsHandler struct {
	stats *services.StatsService
	wotd  *services.WordOfTheDay
}

func NewStatsHandler(stats *services.StatsService, wotd *services.WordOfTheDay) *StatsHandler {
	return &StatsHandler{stats: stats, wotd: wotd}
}

// Dashboard takes ?days= for the votes chart, 30 by default.
func (h *StatsHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := contextWithTimeout(r.Context(), requestTimeout)
	defer cancel()

	stats, err := h.stats.Dashboard(ctx, queryInt(r, "days", 30))
	if err != nil {
		writeServiceError(w, "Dashboard", err, "Failed to compute statistics")
		return
	}
	writeJSON(w, http.StatusOK, models.NewSuccessResponse(stats))
}

func (h *StatsHandler) WordOfTheDay(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := contextWithTimeout(r.Context(), requestTimeout)
	defer cancel()

	pick, err := h.wotd.Today(ctx)
	if err != nil {
		writeServiceError(w, "WordOfTheDay", err, "Failed to get word of the day")
		return
	}
	writeJSON(w, http.StatusOK, models.NewSuccessResponse(pick))
}

func (h *StatsHandler) RotateWordOfTheDay(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := contextWithTimeout(r.Context(), requestTimeout)
	defer cancel()

	pick, err := h.wotd.Rotate(ctx)
	if err != nil {
		writeServiceError(w, "RotateWordOfTheDay", err, "Failed to rotate word of the day")
		return
	}
	writeJSON(w, http.StatusOK, models.NewSuccessResponse(pick))
}
