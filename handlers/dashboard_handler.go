package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tempio/commander-tracker/charts"
	"github.com/tempio/commander-tracker/services"
)

type DashboardHandler struct {
	dashboardService services.DashboardService
}

func NewDashboardHandler(dashboardService services.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

func dashboardParamsFromQuery(r *http.Request) services.DashboardParams {
	return services.DashboardParams{
		MinPlayerGames:    queryInt(r, "min_pg", 0),
		MinPairGames:      queryInt(r, "min_pair", 0),
		MinCommanderGames: queryInt(r, "min_cmd", 0),
		TopPlayers:        queryInt(r, "top_players", 0),
		TopPairs:          queryInt(r, "top_pairs", 0),
		TopCommanders:     queryInt(r, "top_cmd", 0),
		Alpha:             queryFloatPtr(r, "alpha"),
	}
}

func (h *DashboardHandler) GetClassicHandler(w http.ResponseWriter, r *http.Request) {
	payload, err := h.dashboardService.Classic(r.Context(), dashboardParamsFromQuery(r))
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, payload, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *DashboardHandler) GetBracketHandler(w http.ResponseWriter, r *http.Request) {
	payload, err := h.dashboardService.Bracket(r.Context(), dashboardParamsFromQuery(r))
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, payload, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *DashboardHandler) GetPlayerHandler(w http.ResponseWriter, r *http.Request) {
	player := chi.URLParam(r, "player")

	payload, err := h.dashboardService.Player(r.Context(), player, dashboardParamsFromQuery(r))
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, payload, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// HTML variants render the go-echarts pages directly.

func (h *DashboardHandler) GetClassicPageHandler(w http.ResponseWriter, r *http.Request) {
	payload, err := h.dashboardService.Classic(r.Context(), dashboardParamsFromQuery(r))
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := charts.RenderDashboard(w, payload); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *DashboardHandler) GetBracketPageHandler(w http.ResponseWriter, r *http.Request) {
	payload, err := h.dashboardService.Bracket(r.Context(), dashboardParamsFromQuery(r))
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := charts.RenderDashboard(w, payload); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *DashboardHandler) GetPlayerPageHandler(w http.ResponseWriter, r *http.Request) {
	player := chi.URLParam(r, "player")

	payload, err := h.dashboardService.Player(r.Context(), player, dashboardParamsFromQuery(r))
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := charts.RenderPlayerDashboard(w, payload); err != nil {
		serverErrorResponse(w, r, err)
	}
}
