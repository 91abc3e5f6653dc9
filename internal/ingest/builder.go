package ingest

import (
	"context"
	"log"

	"golang.org/x/sync/errgroup"

	"github.com/actuallystonmai/game-recommender/internal/domain"
	"github.com/actuallystonmai/game-recommender/internal/index"
)

// Builder runs the wide-schema cleaning pipeline: it admits tidy rows,
// derives catalog entries, and links similar games into a weighted graph.
type Builder struct {
	classifier *ContentClassifier
	workers    int
}

func NewBuilder(workers int) *Builder {
	if workers < 1 {
		workers = 1
	}
	return &Builder{
		classifier: NewContentClassifier(),
		workers:    workers,
	}
}

type edge struct {
	game1, game2 string
	weight       float64
}

// Build consumes raw wide-schema rows (header excluded) and returns the
// catalog plus the similarity graph. Untidy rows are dropped silently.
//
// The all-pairs similarity pass dominates the cost at O(n^2) comparisons.
// Comparisons are independent once every game is parsed, so they are fanned
// out across workers; edge insertion stays single-threaded because each
// edge mutates both endpoints' adjacency.
func (b *Builder) Build(ctx context.Context, rows [][]string) (domain.Catalog, *index.WeightedGraph, error) {
	catalog := make(domain.Catalog)
	graph := index.NewWeightedGraph()

	var admitted []*domain.Game
	dropped := 0
	for _, row := range rows {
		if !CheckTidiness(row) {
			dropped++
			continue
		}
		game := ParseGame(row, b.classifier)
		catalog[game.ID] = game
		graph.AddVertex(game.ID)
		admitted = append(admitted, game)
	}
	log.Printf("[ingest] admitted %d games, dropped %d untidy rows", len(admitted), dropped)

	edgeLists := make([][]edge, b.workers)
	group, ctx := errgroup.WithContext(ctx)
	for w := 0; w < b.workers; w++ {
		w := w
		group.Go(func() error {
			var edges []edge
			for i := w; i < len(admitted); i += b.workers {
				if err := ctx.Err(); err != nil {
					return err
				}
				for j := 0; j < i; j++ {
					// A duplicate raw row re-admits an id; comparing the
					// copies would score ~3.0 and write a self-loop.
					if admitted[j].ID == admitted[i].ID {
						continue
					}
					weight := ComputeSimilarity(admitted[i], admitted[j])
					if weight > SimilarityThreshold {
						edges = append(edges, edge{admitted[i].ID, admitted[j].ID, weight})
					}
				}
			}
			edgeLists[w] = edges
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, nil, err
	}

	edgeCount := 0
	for _, edges := range edgeLists {
		for _, e := range edges {
			if err := graph.AddEdge(e.game1, e.game2, e.weight); err != nil {
				return nil, nil, err
			}
			edgeCount++
		}
	}
	log.Printf("[ingest] graph built with %d edges", edgeCount)

	return catalog, graph, nil
}
