package domain

// Number of genre questions; also the depth of the classification tree
// and the size of a recommendation result.
const NumGenreFlags = 9

// GenreFlags is a fixed fingerprint of boolean genre answers, one per
// recognized genre: action, adventure, strategy, rpg, simulation, casual,
// indie, sports (incl. racing), single-player.
type GenreFlags [NumGenreFlags]bool

// Normalized mature-content categories.
const (
	ContentViolence  = "violence"
	ContentAddiction = "addiction"
	ContentHorror    = "horror"
	ContentSex       = "sex"
	ContentGeneral   = "general"
	ContentOther     = "other"
)

type Game struct {
	URL         string    `json:"url"`
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Tags        StringSet `json:"popular_tags"`
	Details     StringSet `json:"game_details"`
	Genres      StringSet `json:"genre"`
	Description string    `json:"description"`
	Content     StringSet `json:"mature_content"`
	Price       float64   `json:"price"`

	// Set once at ingestion, never recomputed at query time.
	PopularityScore float64    `json:"popularity_score"`
	GenreFlags      GenreFlags `json:"genre_flags"`

	// The one mutable field: reset to 0 between sessions, written only
	// by the scoring engine.
	RecommendationScore float64 `json:"recommendation_score"`
}

// Catalog owns every Game, keyed by id. The tree and graph hold only id
// references into it.
type Catalog map[string]*Game
