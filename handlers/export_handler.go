package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/tempio/commander-tracker/models"
	"github.com/tempio/commander-tracker/services"
)

type ExportHandler struct {
	exportService services.ExportService
	defaultAlpha  float64
}

func NewExportHandler(exportService services.ExportService, defaultAlpha float64) *ExportHandler {
	return &ExportHandler{exportService: exportService, defaultAlpha: defaultAlpha}
}

func (h *ExportHandler) GetStatsJSONHandler(w http.ResponseWriter, r *http.Request) {
	alpha := queryFloat(r, "alpha", h.defaultAlpha)

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

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="stats.json"`)
	if err := h.exportService.WriteStatsJSON(r.Context(), w, alpha, filters); err != nil {
		mapServiceErrorToHTTP(w, r, err)
	}
}

func (h *ExportHandler) GetGamesCSVHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="games.csv"`)
	if err := h.exportService.WriteGamesCSV(r.Context(), w); err != nil {
		mapServiceErrorToHTTP(w, r, err)
	}
}

func (h *ExportHandler) PublishSnapshotHandler(w http.ResponseWriter, r *http.Request) {
	alpha := queryFloat(r, "alpha", h.defaultAlpha)

	manifest, err := h.exportService.PublishSnapshot(r.Context(), alpha)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"snapshot": manifest}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *ExportHandler) DeleteSnapshotHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.exportService.DeleteSnapshot(r.Context(), id); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
