package ingest

import "github.com/actuallystonmai/game-recommender/internal/domain"

// Games with a pairwise similarity above this threshold become graph
// neighbours.
const SimilarityThreshold = 2.0

func jaccard(a, b domain.StringSet) float64 {
	if a.Len() == 0 || b.Len() == 0 {
		return 0.0
	}
	return float64(a.IntersectionLen(b)) / float64(a.UnionLen(b))
}

// ComputeSimilarity scores how alike two distinct games are: the sum of the
// Jaccard indices of their tags, details, and genres, plus a mature-content
// term. The content term is deliberately NOT a Jaccard ratio: when both
// games carry content flags it is max(0.5, |intersection|), so a single
// shared flag already contributes a full point. Downstream edge weights and
// fixtures depend on this exact formula.
func ComputeSimilarity(game1, game2 *domain.Game) float64 {
	w1 := jaccard(game1.Tags, game2.Tags)
	w2 := jaccard(game1.Details, game2.Details)
	w3 := jaccard(game1.Genres, game2.Genres)

	w4 := 0.0
	if game1.Content.Len() > 0 && game2.Content.Len() > 0 {
		w4 = float64(game1.Content.IntersectionLen(game2.Content))
		if w4 < 0.5 {
			w4 = 0.5
		}
	}

	return w1 + w2 + w3 + w4
}
