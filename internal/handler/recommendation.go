package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/actuallystonmai/game-recommender/internal/domain"
	"github.com/actuallystonmai/game-recommender/internal/service"
)

type recommendationRequest struct {
	SteamID  string `json:"steam_id"`
	Answers  []bool `json:"answers"`
	DontCare []int  `json:"dont_care"`
}

// POST /recommendations
func (h *Handler) GetRecommendations(w http.ResponseWriter, r *http.Request) {
	var body recommendationRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_body", "Request body must be valid JSON")
		return
	}

	if len(body.Answers) != domain.NumGenreFlags {
		writeError(w, http.StatusBadRequest, "invalid_parameter", "Exactly 9 genre answers are required")
		return
	}
	for _, idx := range body.DontCare {
		if idx < 0 || idx >= domain.NumGenreFlags {
			writeError(w, http.StatusBadRequest, "invalid_parameter", "Don't-care indices must be in [0, 9)")
			return
		}
	}

	var answers domain.GenreFlags
	copy(answers[:], body.Answers)

	result, err := h.service.Recommend(r.Context(), service.Request{
		SteamID:  body.SteamID,
		Answers:  answers,
		DontCare: body.DontCare,
	})
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			writeError(w, http.StatusServiceUnavailable, "request_timeout",
				"Request timed out, please try again")
			return
		}
		code, msg := service.CategorizeError(err)
		writeError(w, http.StatusInternalServerError, code, msg)
		return
	}

	resp := RecommendationResponse{
		SteamID:         body.SteamID,
		Recommendations: result.Recommendations,
		Metadata: domain.RecommendationMeta{
			CacheHit:    result.CacheHit,
			Degraded:    result.Degraded,
			GeneratedAt: time.Now().UTC().Format(time.RFC3339),
			TotalCount:  len(result.Recommendations),
		},
	}

	writeJSON(w, http.StatusOK, resp)
}
