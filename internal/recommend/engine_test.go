package recommend

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"testing"

	"github.com/actuallystonmai/game-recommender/internal/domain"
	"github.com/actuallystonmai/game-recommender/internal/index"
)

func newEngine() *Engine {
	return NewEngine(rand.New(rand.NewSource(42)))
}

func newCatalog(popularity map[string]float64) domain.Catalog {
	catalog := make(domain.Catalog, len(popularity))
	for id, score := range popularity {
		catalog[id] = &domain.Game{ID: id, Name: "Game " + id, PopularityScore: score}
	}
	return catalog
}

func TestRankByPopularity(t *testing.T) {
	engine := newEngine()
	catalog := newCatalog(map[string]float64{"a": 10, "b": 50, "c": 30})

	if err := engine.RankByPopularity(catalog, []string{"a", "b", "c"}); err != nil {
		t.Fatalf("RankByPopularity failed: %v", err)
	}

	// Ascending popularity order a, c, b with contributions 1/3, 2/3, 1.
	cases := map[string]float64{"a": 1.0 / 3, "c": 2.0 / 3, "b": 1.0}
	for id, want := range cases {
		if got := catalog[id].RecommendationScore; math.Abs(got-want) > 1e-9 {
			t.Errorf("game %s: expected score %f, got %f", id, want, got)
		}
	}
}

func TestRankByPopularityEmptyInput(t *testing.T) {
	engine := newEngine()
	catalog := newCatalog(map[string]float64{"a": 10})

	err := engine.RankByPopularity(catalog, nil)
	if !errors.Is(err, domain.ErrEmptyRanking) {
		t.Errorf("expected ErrEmptyRanking, got %v", err)
	}
}

func TestExpandViaGraphScoresNeighbours(t *testing.T) {
	engine := newEngine()
	catalog := newCatalog(map[string]float64{"p1": 1, "n1": 1, "n2": 1})
	graph := index.NewWeightedGraph()
	for id := range catalog {
		graph.AddVertex(id)
	}
	graph.AddEdge("p1", "n1", 2.5)
	graph.AddEdge("p1", "n2", 3.0)

	candidates := domain.NewStringSet()
	played := map[string]int{"p1": 100}
	if err := engine.ExpandViaGraph(catalog, graph, played, candidates); err != nil {
		t.Fatalf("ExpandViaGraph failed: %v", err)
	}

	// Each neighbour earns edge weight + playtime/1000.
	if got := catalog["n1"].RecommendationScore; math.Abs(got-2.6) > 1e-9 {
		t.Errorf("expected n1 score 2.6, got %f", got)
	}
	if got := catalog["n2"].RecommendationScore; math.Abs(got-3.1) > 1e-9 {
		t.Errorf("expected n2 score 3.1, got %f", got)
	}
	if !candidates.Has("n1") || !candidates.Has("n2") {
		t.Errorf("neighbours missing from candidates: %v", candidates.Items())
	}
}

func TestExpandViaGraphExcludesPlayed(t *testing.T) {
	engine := newEngine()
	catalog := newCatalog(map[string]float64{"p1": 1, "p2": 1, "n1": 1})
	graph := index.NewWeightedGraph()
	for id := range catalog {
		graph.AddVertex(id)
	}
	// p1's neighbours include another played game.
	graph.AddEdge("p1", "p2", 2.8)
	graph.AddEdge("p1", "n1", 2.5)

	// A played game sitting in the candidate set beforehand must be evicted.
	candidates := domain.NewStringSet("p1")
	played := map[string]int{"p1": 50, "p2": 10}
	if err := engine.ExpandViaGraph(catalog, graph, played, candidates); err != nil {
		t.Fatalf("ExpandViaGraph failed: %v", err)
	}

	for id := range played {
		if candidates.Has(id) {
			t.Errorf("played game %s should never be a candidate", id)
		}
	}
	if catalog["p2"].RecommendationScore != 0 {
		t.Errorf("played game p2 should not be scored, got %f", catalog["p2"].RecommendationScore)
	}
	if !candidates.Has("n1") {
		t.Error("unplayed neighbour n1 should be a candidate")
	}
}

func TestExpandViaGraphIgnoresUnknownPlayed(t *testing.T) {
	engine := newEngine()
	catalog := newCatalog(map[string]float64{"p1": 1})
	graph := index.NewWeightedGraph()
	graph.AddVertex("p1")

	candidates := domain.NewStringSet()
	played := map[string]int{"p1": 10, "not-in-catalog": 999}
	if err := engine.ExpandViaGraph(catalog, graph, played, candidates); err != nil {
		t.Fatalf("expected unknown played ids to be ignored, got %v", err)
	}
}

// Builds a catalog laid out along the deterministic don't-care flip chain:
// g0 matches the all-false answers, and gk sits exactly where the k-th flip
// of a full don't-care list [0..8] lands (indices are consumed last-first,
// so flip k toggles answer 9-k and the top k answers are true).
func chainFixture() (domain.Catalog, *index.DecisionTree) {
	catalog := make(domain.Catalog)
	tree := index.NewDecisionTree()
	for k := 0; k <= domain.NumGenreFlags; k++ {
		var flags domain.GenreFlags
		for bit := domain.NumGenreFlags - k; bit < domain.NumGenreFlags; bit++ {
			flags[bit] = true
		}
		id := fmt.Sprintf("g%d", k)
		catalog[id] = &domain.Game{ID: id}
		tree.Insert(flags, id)
	}
	return catalog, tree
}

func TestExpandViaTreeMinimumYield(t *testing.T) {
	engine := newEngine()
	catalog, tree := chainFixture()

	candidates := domain.NewStringSet()
	answers := domain.GenreFlags{} // matches g0 exactly
	dontCare := []int{0, 1, 2, 3, 4, 5, 6, 7, 8}
	if err := engine.ExpandViaTree(catalog, tree, answers, dontCare, candidates); err != nil {
		t.Fatalf("ExpandViaTree failed: %v", err)
	}

	if candidates.Len() < MinCandidates {
		t.Errorf("expected at least %d candidates, got %d", MinCandidates, candidates.Len())
	}

	// The exact match earns 5; the k-th don't-care flip earns 5/(k+1) for
	// the game it uncovers.
	if got := catalog["g0"].RecommendationScore; got != 5.0 {
		t.Errorf("exact match should earn 5 points, got %f", got)
	}
	for k := 1; k <= 8; k++ {
		id := fmt.Sprintf("g%d", k)
		want := 5.0 / float64(k)
		if got := catalog[id].RecommendationScore; math.Abs(got-want) > 1e-9 {
			t.Errorf("%s: expected flip bonus %f, got %f", id, want, got)
		}
	}

	// The loop stops as soon as the guarantee is met, so the ninth flip
	// never happens.
	if candidates.Has("g9") {
		t.Error("expansion should stop once the candidate set reaches the minimum")
	}
}

func TestExpandViaTreeCatalogTooSmall(t *testing.T) {
	engine := newEngine()

	catalog := make(domain.Catalog)
	tree := index.NewDecisionTree()
	for _, id := range []string{"a", "b", "c"} {
		catalog[id] = &domain.Game{ID: id}
	}
	tree.Insert(domain.GenreFlags{}, "a")
	tree.Insert(domain.GenreFlags{true}, "b")
	tree.Insert(domain.GenreFlags{false, true}, "c")

	candidates := domain.NewStringSet()
	err := engine.ExpandViaTree(catalog, tree, domain.GenreFlags{}, nil, candidates)
	if !errors.Is(err, domain.ErrCatalogTooSmall) {
		t.Errorf("expected ErrCatalogTooSmall for a 3-game catalog, got %v", err)
	}
}

func TestResetZeroesScores(t *testing.T) {
	engine := newEngine()
	catalog := newCatalog(map[string]float64{"a": 10, "b": 20})
	catalog["a"].RecommendationScore = 7.5
	catalog["b"].RecommendationScore = 0.25

	engine.Reset(catalog)

	for id, game := range catalog {
		if game.RecommendationScore != 0 {
			t.Errorf("game %s score not reset: %f", id, game.RecommendationScore)
		}
	}
}

func TestTopNOrderingAndTruncation(t *testing.T) {
	engine := newEngine()
	catalog := newCatalog(map[string]float64{"a": 1, "b": 1, "c": 1})
	catalog["a"].RecommendationScore = 1.0
	catalog["b"].RecommendationScore = 3.0
	catalog["c"].RecommendationScore = 2.0

	top := engine.TopN(catalog, domain.NewStringSet("a", "b", "c"), 2)
	if len(top) != 2 || top[0] != "b" || top[1] != "c" {
		t.Errorf("expected [b c], got %v", top)
	}
}

// Full graph-then-popularity session over a 12-game catalog: three played
// games with playtimes 100/200/50 minutes, each with two neighbours at
// weights 2.5 and 3.0.
func TestGraphAndPopularityScenario(t *testing.T) {
	engine := newEngine()
	catalog := newCatalog(map[string]float64{
		"p1": 500, "p2": 600, "p3": 700,
		"n1": 10, "n2": 20, "n3": 30, "n4": 60, "n5": 40, "n6": 50,
		"x1": 5, "x2": 15, "x3": 25,
	})
	graph := index.NewWeightedGraph()
	for id := range catalog {
		graph.AddVertex(id)
	}
	graph.AddEdge("p1", "n1", 2.5)
	graph.AddEdge("p1", "n2", 3.0)
	graph.AddEdge("p2", "n3", 2.5)
	graph.AddEdge("p2", "n4", 3.0)
	graph.AddEdge("p3", "n5", 2.5)
	graph.AddEdge("p3", "n6", 3.0)

	played := map[string]int{"p1": 100, "p2": 200, "p3": 50}
	candidates := domain.NewStringSet()

	if err := engine.ExpandViaGraph(catalog, graph, played, candidates); err != nil {
		t.Fatalf("ExpandViaGraph failed: %v", err)
	}
	if err := engine.RankByPopularity(catalog, candidates.Items()); err != nil {
		t.Fatalf("RankByPopularity failed: %v", err)
	}

	// n4: 3.0 + 200/1000 from the graph pass, + 6/6 as the most popular
	// candidate = 4.2, the highest total.
	top := engine.TopN(catalog, candidates, MinCandidates)
	if top[0] != "n4" {
		t.Errorf("expected n4 on top, got %v", top)
	}
	if got := catalog["n4"].RecommendationScore; math.Abs(got-4.2) > 1e-9 {
		t.Errorf("expected n4 score 4.2, got %f", got)
	}
}
