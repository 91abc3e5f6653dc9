package handler

import "github.com/actuallystonmai/game-recommender/internal/domain"

type RecommendationResponse struct {
	SteamID         string                    `json:"steam_id,omitempty"`
	Recommendations []domain.ScoredGame       `json:"recommendations"`
	Metadata        domain.RecommendationMeta `json:"metadata"`
}

type GameResponse struct {
	GameID          string   `json:"game_id"`
	Name            string   `json:"name"`
	URL             string   `json:"url"`
	Description     string   `json:"description"`
	Price           float64  `json:"price"`
	PopularityScore float64  `json:"popularity_score"`
	PopularTags     []string `json:"popular_tags"`
	GameDetails     []string `json:"game_details"`
	Genres          []string `json:"genres"`
	MatureContent   []string `json:"mature_content"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}
