package handlers

import (
	"net/http"
	"strconv"

	"github.com/tempio/commander-tracker/models"
	"github.com/tempio/commander-tracker/services"
	"github.com/tempio/commander-tracker/stats"
)

type StatsHandler struct {
	statsService services.StatsService
	defaultAlpha float64
}

func NewStatsHandler(statsService services.StatsService, defaultAlpha float64) *StatsHandler {
	return &StatsHandler{statsService: statsService, defaultAlpha: defaultAlpha}
}

func (h *StatsHandler) filtersFromQuery(r *http.Request) models.StatsFilters {
	filters := models.StatsFilters{
		Players:    queryList(r, "player"),
		Commanders: queryList(r, "commander"),
		Brackets:   make([]int, 0),
	}
	for _, raw := range queryList(r, "bracket") {
		if b, err := strconv.Atoi(raw); err == nil {
			filters.Brackets = append(filters.Brackets, b)
		}
	}
	return filters
}

// GetStatsHandler serves the stats.v1 document.
func (h *StatsHandler) GetStatsHandler(w http.ResponseWriter, r *http.Request) {
	alpha := stats.ClampAlpha(queryFloat(r, "alpha", h.defaultAlpha))

	payload, err := h.statsService.BuildPayload(r.Context(), alpha, h.filtersFromQuery(r))
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, payload, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *StatsHandler) GetPlayerTrendHandler(w http.ResponseWriter, r *http.Request) {
	player := r.URL.Query().Get("player")
	weighted := queryBool(r, "weighted")
	alpha := stats.ClampAlpha(queryFloat(r, "alpha", h.defaultAlpha))

	trend, err := h.statsService.PlayerTrend(r.Context(), player, weighted, alpha)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"player": player, "trend": trend}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
