package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tempio/commander-tracker/services"
)

type BracketHandler struct {
	bracketService services.BracketService
}

func NewBracketHandler(bracketService services.BracketService) *BracketHandler {
	return &BracketHandler{bracketService: bracketService}
}

func (h *BracketHandler) ListSummariesHandler(w http.ResponseWriter, r *http.Request) {
	summaries, err := h.bracketService.ListSummaries(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"commanders": summaries}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *BracketHandler) GetSummaryHandler(w http.ResponseWriter, r *http.Request) {
	commander := chi.URLParam(r, "commander")

	summary, err := h.bracketService.CommanderSummary(r.Context(), commander)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"summary": summary}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

type setBracketRequest struct {
	Commander string `json:"commander"`
	Bracket   *int   `json:"bracket"`
}

// SetBracketHandler bulk-assigns a bracket to every recorded entry of
// the commander. A null bracket clears it.
func (h *BracketHandler) SetBracketHandler(w http.ResponseWriter, r *http.Request) {
	var req setBracketRequest
	if err := readJSON(w, r, &req); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	affected, err := h.bracketService.SetCommanderBracket(r.Context(), req.Commander, req.Bracket)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"commander": req.Commander, "entries_updated": affected}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
