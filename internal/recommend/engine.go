package recommend

import (
	"fmt"
	"math/rand"
	"sort"

	"github.com/actuallystonmai/game-recommender/internal/domain"
	"github.com/actuallystonmai/game-recommender/internal/index"
)

const (
	// MinCandidates is the guaranteed minimum candidate-set size after a
	// tree expansion, and the size of a final recommendation list.
	MinCandidates = 9

	// Every reachable flag combination has been tried after this many
	// cumulative flips, so the expansion loop gives up here.
	maxFlips = 1 << domain.NumGenreFlags

	exactMatchBonus   = 5.0
	dontCareFlipBonus = 5.0
	randomFlipBonus   = 2.5
	playtimeDivisor   = 1000.0
)

// Engine accumulates recommendation scores onto catalog entries across the
// three scoring passes of a session. Passes may run in any order but each
// re-adds its contribution, so callers reset between sessions. Sessions are
// single-threaded; the engine does no locking of its own.
type Engine struct {
	rng *rand.Rand
}

func NewEngine(rng *rand.Rand) *Engine {
	return &Engine{rng: rng}
}

// Reset zeroes every game's recommendation score, starting a fresh session.
func (e *Engine) Reset(catalog domain.Catalog) {
	for _, game := range catalog {
		game.RecommendationScore = 0
	}
}

// RankByPopularity sorts the given games ascending by popularity and adds
// i/n to the i-th game's score (1-indexed), so the most popular of the
// bunch gains a full point and the least popular gains 1/n.
func (e *Engine) RankByPopularity(catalog domain.Catalog, gameIDs []string) error {
	if len(gameIDs) == 0 {
		return domain.ErrEmptyRanking
	}
	ranked := make([]string, len(gameIDs))
	copy(ranked, gameIDs)
	sort.SliceStable(ranked, func(i, j int) bool {
		return catalog[ranked[i]].PopularityScore < catalog[ranked[j]].PopularityScore
	})
	n := float64(len(ranked))
	for i, id := range ranked {
		catalog[id].RecommendationScore += float64(i+1) / n
	}
	return nil
}

// ExpandViaGraph credits games similar to what the account already plays.
// Each played game's neighbours gain its edge weight plus playtime/1000,
// and join the candidate set; played games themselves are never
// recommended and are evicted from the candidates. Played ids missing from
// the catalog are ignored.
func (e *Engine) ExpandViaGraph(catalog domain.Catalog, graph *index.WeightedGraph,
	played map[string]int, candidates domain.StringSet) error {

	owned := make(map[string]int, len(played))
	for id, minutes := range played {
		if _, ok := catalog[id]; ok {
			owned[id] = minutes
		}
	}

	for id, minutes := range owned {
		delete(candidates, id)
		neighbours, err := graph.Neighbours(id)
		if err != nil {
			return fmt.Errorf("expand played game %s: %w", id, err)
		}
		for neighbour, weight := range neighbours {
			if _, ok := owned[neighbour]; ok {
				continue
			}
			catalog[neighbour].RecommendationScore += weight + float64(minutes)/playtimeDivisor
			candidates.Add(neighbour)
		}
	}
	return nil
}

// ExpandViaTree matches the user's genre answers against the tree. Exact
// matches gain 5 points. If fewer than MinCandidates games are found, one
// answer at a time is flipped and the lookup retried: don't-care indices
// first (consumed last-to-first, bonus 5/(k+1) on the k-th flip), then
// random indices (bonus 2.5/(k+1)). Only ids not already in the candidate
// set receive the flip bonus; every returned id joins the set. Flips
// accumulate, so the loop walks ever further from the original answers
// until the set is large enough — or every combination has been tried, in
// which case the catalog is too small to honor the guarantee.
func (e *Engine) ExpandViaTree(catalog domain.Catalog, tree *index.DecisionTree,
	answers domain.GenreFlags, dontCare []int, candidates domain.StringSet) error {

	for id := range tree.Lookup(answers) {
		catalog[id].RecommendationScore += exactMatchBonus
		candidates.Add(id)
	}

	remaining := make([]int, len(dontCare))
	copy(remaining, dontCare)

	for flips := 0; candidates.Len() < MinCandidates; flips++ {
		if flips >= maxFlips {
			return domain.ErrCatalogTooSmall
		}

		var idx int
		var bonus float64
		if len(remaining) > 0 {
			idx = remaining[len(remaining)-1]
			remaining = remaining[:len(remaining)-1]
			bonus = dontCareFlipBonus / float64(flips+1)
		} else {
			idx = e.rng.Intn(domain.NumGenreFlags)
			bonus = randomFlipBonus / float64(flips+1)
		}

		answers[idx] = !answers[idx]
		for id := range tree.Lookup(answers) {
			if !candidates.Has(id) {
				catalog[id].RecommendationScore += bonus
			}
			candidates.Add(id)
		}
	}
	return nil
}

// TopN returns the n highest-scoring candidates, best first. Ties break on
// id so results are stable.
func (e *Engine) TopN(catalog domain.Catalog, candidates domain.StringSet, n int) []string {
	ids := make([]string, 0, candidates.Len())
	for id := range candidates {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		si, sj := catalog[ids[i]].RecommendationScore, catalog[ids[j]].RecommendationScore
		if si != sj {
			return si > sj
		}
		return ids[i] < ids[j]
	})
	if len(ids) > n {
		ids = ids[:n]
	}
	return ids
}
