package domain

type ScoredGame struct {
	GameID          string  `json:"game_id"`
	Name            string  `json:"name"`
	Description     string  `json:"description"`
	Price           float64 `json:"price"`
	PopularityScore float64 `json:"popularity_score"`
	Score           float64 `json:"score"`
}

type RecommendationMeta struct {
	CacheHit    bool   `json:"cache_hit"`
	Degraded    bool   `json:"degraded"`
	GeneratedAt string `json:"generated_at"`
	TotalCount  int    `json:"total_count"`
}

type RecommendationResult struct {
	Recommendations []ScoredGame
	CacheHit        bool
	Degraded        bool
}
