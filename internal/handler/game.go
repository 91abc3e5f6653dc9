package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/actuallystonmai/game-recommender/internal/domain"
	"github.com/go-chi/chi/v5"
)

// GET /games/{gameID}
func (h *Handler) GetGame(w http.ResponseWriter, r *http.Request) {
	gameID := chi.URLParam(r, "gameID")
	if gameID == "" {
		writeError(w, http.StatusBadRequest, "invalid_parameter", "Invalid game id parameter")
		return
	}

	game, err := h.service.GameByID(gameID)
	if err != nil {
		if errors.Is(err, domain.ErrGameNotFound) {
			writeError(w, http.StatusNotFound, "game_not_found",
				fmt.Sprintf("Game with ID %s does not exist", gameID))
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", "An unexpected error occurred")
		return
	}

	writeJSON(w, http.StatusOK, GameResponse{
		GameID:          game.ID,
		Name:            game.Name,
		URL:             game.URL,
		Description:     game.Description,
		Price:           game.Price,
		PopularityScore: game.PopularityScore,
		PopularTags:     game.Tags.Items(),
		GameDetails:     game.Details.Items(),
		Genres:          game.Genres.Items(),
		MatureContent:   game.Content.Items(),
	})
}
