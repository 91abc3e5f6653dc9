package dataset

import (
	"fmt"
	"sort"

	"github.com/actuallystonmai/game-recommender/internal/domain"
	"github.com/actuallystonmai/game-recommender/internal/index"
)

// EncodeCatalog renders the whole catalog and its adjacency as compact
// records, ordered by game id.
func EncodeCatalog(catalog domain.Catalog, graph *index.WeightedGraph) ([][]string, error) {
	ids := make([]string, 0, len(catalog))
	for id := range catalog {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	records := make([][]string, 0, len(ids))
	for _, id := range ids {
		neighbours, err := graph.Neighbours(id)
		if err != nil {
			return nil, fmt.Errorf("encode game %s: %w", id, err)
		}
		records = append(records, EncodeGame(catalog[id], neighbours))
	}
	return records, nil
}

// Assemble is the fast load path: it rebuilds the catalog, classification
// tree, and similarity graph from compact records, with all scores and
// flags precomputed. Edges are replayed from the persisted adjacency; a
// neighbour id not yet in the catalog is skipped, which is harmless for a
// self-consistent dataset since the reverse edge restores it.
func Assemble(records [][]string) (domain.Catalog, *index.DecisionTree, *index.WeightedGraph, error) {
	catalog := make(domain.Catalog)
	tree := index.NewDecisionTree()
	graph := index.NewWeightedGraph()

	for _, record := range records {
		game, neighbours, err := DecodeGame(record)
		if err != nil {
			return nil, nil, nil, err
		}
		catalog[game.ID] = game
		tree.Insert(game.GenreFlags, game.ID)
		graph.AddVertex(game.ID)
		for _, n := range neighbours {
			if _, ok := catalog[n.GameID]; !ok {
				continue
			}
			if err := graph.AddEdge(game.ID, n.GameID, n.Score); err != nil {
				return nil, nil, nil, err
			}
		}
	}

	return catalog, tree, graph, nil
}
