package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/tempio/commander-tracker/ingest"
	"github.com/tempio/commander-tracker/models"
	"github.com/tempio/commander-tracker/services"
)

type GameHandler struct {
	gameService services.GameService
}

func NewGameHandler(gameService services.GameService) *GameHandler {
	return &GameHandler{gameService: gameService}
}

type gameEntryRequest struct {
	Player    string `json:"player"`
	Commander string `json:"commander"`
	Bracket   *int   `json:"bracket"`
}

// gameRequest accepts either a structured entries array or a raw
// lineup text ("Player - Commander - Bracket" per line). When both are
// present the structured form wins.
type gameRequest struct {
	PlayedAt     *time.Time         `json:"played_at"`
	Notes        *string            `json:"notes"`
	WinnerPlayer *string            `json:"winner_player"`
	Entries      []gameEntryRequest `json:"entries"`
	Lineup       *string            `json:"lineup"`
}

func (req gameRequest) toInput() (services.RecordGameInput, error) {
	input := services.RecordGameInput{
		PlayedAt:     req.PlayedAt,
		Notes:        req.Notes,
		WinnerPlayer: req.WinnerPlayer,
	}

	if len(req.Entries) > 0 {
		for _, e := range req.Entries {
			input.Entries = append(input.Entries, models.GameEntry{
				Player:    e.Player,
				Commander: e.Commander,
				Bracket:   e.Bracket,
			})
		}
		return input, nil
	}

	if req.Lineup != nil {
		parsed, err := ingest.ParseLineup(*req.Lineup)
		if err != nil {
			return input, err
		}
		for _, p := range parsed {
			input.Entries = append(input.Entries, models.GameEntry{
				Player:    p.Player,
				Commander: p.Commander,
				Bracket:   p.Bracket,
			})
		}
	}
	return input, nil
}

func (h *GameHandler) CreateGameHandler(w http.ResponseWriter, r *http.Request) {
	var req gameRequest
	if err := readJSON(w, r, &req); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	input, err := req.toInput()
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	game, err := h.gameService.Record(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"game": game}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *GameHandler) GetGameHandler(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "gameID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	game, err := h.gameService.GetByID(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"game": game}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *GameHandler) ListRecentGamesHandler(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", 20)

	games, err := h.gameService.ListRecent(r.Context(), limit)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"games": games}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *GameHandler) UpdateGameHandler(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "gameID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var req gameRequest
	if err := readJSON(w, r, &req); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	input, err := req.toInput()
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	game, err := h.gameService.Update(r.Context(), id, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"game": game}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *GameHandler) DeleteGameHandler(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "gameID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.gameService.Delete(r.Context(), id); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *GameHandler) ListPlayersHandler(w http.ResponseWriter, r *http.Request) {
	players, err := h.gameService.DistinctPlayers(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"players": players}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *GameHandler) ListCommandersHandler(w http.ResponseWriter, r *http.Request) {
	commanders, err := h.gameService.DistinctCommanders(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"commanders": commanders}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ParseLineupHandler validates a lineup text without recording
// anything, for form previews.
func (h *GameHandler) ParseLineupHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Lineup string `json:"lineup"`
	}
	if err := readJSON(w, r, &req); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	parsed, err := ingest.ParseLineup(req.Lineup)
	if err != nil {
		if errors.Is(err, ingest.ErrNoEntries) || errors.Is(err, ingest.ErrInvalidLine) || errors.Is(err, ingest.ErrInvalidBracket) {
			badRequestResponse(w, r, err)
			return
		}
		serverErrorResponse(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"entries": parsed}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
