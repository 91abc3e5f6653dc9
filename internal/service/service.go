package service

import (
	"context"
	"errors"
	"log"
	"math"
	"strings"
	"sync"

	"github.com/actuallystonmai/game-recommender/internal/cache"
	"github.com/actuallystonmai/game-recommender/internal/domain"
	"github.com/actuallystonmai/game-recommender/internal/index"
	"github.com/actuallystonmai/game-recommender/internal/recommend"
	"github.com/actuallystonmai/game-recommender/internal/steam"
)

type Service struct {
	catalog domain.Catalog
	tree    *index.DecisionTree
	graph   *index.WeightedGraph
	engine  *recommend.Engine
	cache   *cache.Cache
	steam   *steam.Client

	// Scoring mutates the shared per-game accumulator, so sessions must
	// not interleave.
	mu sync.Mutex
}

func NewService(catalog domain.Catalog, tree *index.DecisionTree, graph *index.WeightedGraph,
	engine *recommend.Engine, cache *cache.Cache, steamClient *steam.Client) *Service {
	return &Service{
		catalog: catalog,
		tree:    tree,
		graph:   graph,
		engine:  engine,
		cache:   cache,
		steam:   steamClient,
	}
}

type Request struct {
	SteamID  string
	Answers  domain.GenreFlags
	DontCare []int
}

// fingerprint encodes the answer vector and don't-care positions so equal
// questionnaires share a cache entry.
func (r Request) fingerprint() string {
	var b strings.Builder
	for _, answer := range r.Answers {
		if answer {
			b.WriteByte('1')
		} else {
			b.WriteByte('0')
		}
	}
	for _, idx := range r.DontCare {
		b.WriteByte('-')
		b.WriteByte('0' + byte(idx))
	}
	return b.String()
}

// Recommend runs one scoring session: exact and relaxed tree matches, graph
// expansion from the account's library, and a popularity ranking over the
// resulting candidates, returning the top games. A Steam fetch failure
// degrades the session to tree-and-popularity scoring; it never aborts it.
func (s *Service) Recommend(ctx context.Context, req Request) (*domain.RecommendationResult, error) {
	fingerprint := req.fingerprint()

	cached, found, err := s.cache.Get(ctx, req.SteamID, fingerprint)
	if err != nil {
		log.Printf("[service] cache get error for account %q: %v", req.SteamID, err)
	}
	if found {
		return &domain.RecommendationResult{
			Recommendations: cached,
			CacheHit:        true,
		}, nil
	}

	// The Steam call happens outside the session lock; only scoring needs
	// to be serialized.
	degraded := false
	played, err := s.steam.OwnedGames(ctx, req.SteamID)
	if err != nil {
		log.Printf("[service] owned-games fetch failed for account %q: %v", req.SteamID, err)
		degraded = true
		played = map[string]int{}
	}

	recs, err := s.score(req, played)
	if err != nil {
		return nil, err
	}

	if !degraded {
		if cacheErr := s.cache.Set(ctx, req.SteamID, fingerprint, recs); cacheErr != nil {
			log.Printf("[service] cache set error for account %q: %v", req.SteamID, cacheErr)
		}
	}

	return &domain.RecommendationResult{
		Recommendations: recs,
		Degraded:        degraded,
	}, nil
}

func (s *Service) score(req Request, played map[string]int) ([]domain.ScoredGame, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.engine.Reset(s.catalog)
	candidates := domain.NewStringSet()

	if err := s.engine.ExpandViaTree(s.catalog, s.tree, req.Answers, req.DontCare, candidates); err != nil {
		return nil, err
	}
	if err := s.engine.ExpandViaGraph(s.catalog, s.graph, played, candidates); err != nil {
		return nil, err
	}
	if err := s.engine.RankByPopularity(s.catalog, candidates.Items()); err != nil {
		return nil, err
	}

	top := s.engine.TopN(s.catalog, candidates, recommend.MinCandidates)
	recs := make([]domain.ScoredGame, 0, len(top))
	for _, id := range top {
		game := s.catalog[id]
		recs = append(recs, domain.ScoredGame{
			GameID:          game.ID,
			Name:            game.Name,
			Description:     game.Description,
			Price:           game.Price,
			PopularityScore: game.PopularityScore,
			Score:           math.Round(game.RecommendationScore*1000) / 1000, // 3 decimal places
		})
	}
	return recs, nil
}

// GameByID returns a catalog entry for the detail endpoint.
func (s *Service) GameByID(gameID string) (*domain.Game, error) {
	game, ok := s.catalog[gameID]
	if !ok {
		return nil, domain.ErrGameNotFound
	}
	return game, nil
}

// CategorizeError maps a scoring error to a response code and message.
func CategorizeError(err error) (string, string) {
	if errors.Is(err, domain.ErrCatalogTooSmall) {
		return "catalog_too_small", "the catalog cannot supply enough candidates"
	}
	if errors.Is(err, domain.ErrGameNotFound) {
		return "game_not_found", "game not found"
	}
	if steam.IsUnavailable(err) {
		return "steam_unavailable", "the Steam library service failed to respond"
	}
	return "internal_error", "an unexpected error occurred"
}
