package index

import (
	"fmt"

	"github.com/actuallystonmai/game-recommender/internal/domain"
)

// WeightedGraph links similar games. Vertices are game ids; adjacency is
// stored as id-to-weight maps on both endpoints, so every edge is symmetric
// by construction. The graph itself does not enforce the similarity
// threshold; callers filter before adding edges.
type WeightedGraph struct {
	vertices map[string]map[string]float64
}

func NewWeightedGraph() *WeightedGraph {
	return &WeightedGraph{vertices: make(map[string]map[string]float64)}
}

// AddVertex registers a game with no edges. Adding an id twice is a no-op,
// preserving any edges already attached.
func (g *WeightedGraph) AddVertex(gameID string) {
	if _, ok := g.vertices[gameID]; !ok {
		g.vertices[gameID] = make(map[string]float64)
	}
}

func (g *WeightedGraph) HasVertex(gameID string) bool {
	_, ok := g.vertices[gameID]
	return ok
}

// AddEdge sets the weight between two registered games in both directions.
func (g *WeightedGraph) AddEdge(gameID1, gameID2 string, weight float64) error {
	v1, ok := g.vertices[gameID1]
	if !ok {
		return fmt.Errorf("add edge %s-%s: %w", gameID1, gameID2, domain.ErrVertexNotFound)
	}
	v2, ok := g.vertices[gameID2]
	if !ok {
		return fmt.Errorf("add edge %s-%s: %w", gameID1, gameID2, domain.ErrVertexNotFound)
	}
	v1[gameID2] = weight
	v2[gameID1] = weight
	return nil
}

// Neighbours returns the adjacent game ids and their similarity scores as a
// copy, so callers cannot mutate the graph's internal adjacency.
func (g *WeightedGraph) Neighbours(gameID string) (map[string]float64, error) {
	adjacency, ok := g.vertices[gameID]
	if !ok {
		return nil, fmt.Errorf("neighbours of %s: %w", gameID, domain.ErrVertexNotFound)
	}
	neighbours := make(map[string]float64, len(adjacency))
	for id, weight := range adjacency {
		neighbours[id] = weight
	}
	return neighbours, nil
}
