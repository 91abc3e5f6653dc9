package dataset

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/actuallystonmai/game-recommender/internal/domain"
)

// Field positions in a compact dataset record.
const (
	fieldURL = iota
	fieldID
	fieldName
	fieldPopularTags
	fieldGameDetails
	fieldGenre
	fieldDescription
	fieldMatureContent
	fieldPrice
	fieldPopularityScore
	fieldGenreBools
	fieldNeighbours
	fieldSimilarityScores

	recordLen
)

// Header is the first row of a compact dataset file.
var Header = []string{
	"url", "id_num", "name", "popular_tags", "game_details", "genre",
	"game_description", "mature_content", "price", "popularity_score",
	"genre_bools", "neighbours", "similarity_scores",
}

// Neighbour pairs a neighbouring game id with its similarity score.
type Neighbour struct {
	GameID string
	Score  float64
}

func decodeSet(field string) domain.StringSet {
	if field == "" {
		return domain.NewStringSet()
	}
	return domain.NewStringSet(strings.Split(field, ",")...)
}

func encodeSet(set domain.StringSet) string {
	return strings.Join(set.Items(), ",")
}

// formatFloat renders floats the way the original dataset tooling wrote
// them: integral values keep a trailing ".0", so files stay byte-compatible
// with previously written datasets.
func formatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// DecodeGame parses one compact record into a catalog entry plus its
// persisted neighbour list.
func DecodeGame(record []string) (*domain.Game, []Neighbour, error) {
	if len(record) != recordLen {
		return nil, nil, fmt.Errorf("compact record has %d fields, want %d", len(record), recordLen)
	}

	price, err := strconv.ParseFloat(record[fieldPrice], 64)
	if err != nil {
		return nil, nil, fmt.Errorf("parse price for game %s: %w", record[fieldID], err)
	}
	popularity, err := strconv.ParseFloat(record[fieldPopularityScore], 64)
	if err != nil {
		return nil, nil, fmt.Errorf("parse popularity for game %s: %w", record[fieldID], err)
	}

	bools := strings.Split(record[fieldGenreBools], ",")
	if len(bools) != domain.NumGenreFlags {
		return nil, nil, fmt.Errorf("game %s has %d genre bools, want %d",
			record[fieldID], len(bools), domain.NumGenreFlags)
	}
	var flags domain.GenreFlags
	for i, b := range bools {
		flags[i] = b == "True"
	}

	game := &domain.Game{
		URL:             record[fieldURL],
		ID:              record[fieldID],
		Name:            record[fieldName],
		Tags:            decodeSet(record[fieldPopularTags]),
		Details:         decodeSet(record[fieldGameDetails]),
		Genres:          decodeSet(record[fieldGenre]),
		Description:     record[fieldDescription],
		Content:         decodeSet(record[fieldMatureContent]),
		Price:           price,
		PopularityScore: popularity,
		GenreFlags:      flags,
	}

	neighbours, err := decodeNeighbours(record[fieldNeighbours], record[fieldSimilarityScores], game.ID)
	if err != nil {
		return nil, nil, err
	}
	return game, neighbours, nil
}

// Neighbour ids are semicolon-joined while every other list field is
// comma-joined. Historical quirk of the format, kept for compatibility.
func decodeNeighbours(idField, scoreField, gameID string) ([]Neighbour, error) {
	if idField == "" {
		return nil, nil
	}
	ids := strings.Split(idField, ";")
	scores := strings.Split(scoreField, ",")
	if len(ids) != len(scores) {
		return nil, fmt.Errorf("game %s has %d neighbours but %d similarity scores",
			gameID, len(ids), len(scores))
	}
	neighbours := make([]Neighbour, 0, len(ids))
	for i, id := range ids {
		score, err := strconv.ParseFloat(scores[i], 64)
		if err != nil {
			return nil, fmt.Errorf("parse similarity score for game %s: %w", gameID, err)
		}
		neighbours = append(neighbours, Neighbour{GameID: id, Score: score})
	}
	return neighbours, nil
}

// EncodeGame renders a catalog entry and its adjacency as one compact
// record. Similarity scores are rounded to 4 decimal places; neighbours are
// sorted by id so output is deterministic.
func EncodeGame(game *domain.Game, neighbours map[string]float64) []string {
	ids := make([]string, 0, len(neighbours))
	for id := range neighbours {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	scores := make([]string, 0, len(ids))
	for _, id := range ids {
		rounded := math.Round(neighbours[id]*10000) / 10000
		scores = append(scores, formatFloat(rounded))
	}

	bools := make([]string, domain.NumGenreFlags)
	for i, flag := range game.GenreFlags {
		if flag {
			bools[i] = "True"
		} else {
			bools[i] = "False"
		}
	}

	record := make([]string, recordLen)
	record[fieldURL] = game.URL
	record[fieldID] = game.ID
	record[fieldName] = game.Name
	record[fieldPopularTags] = encodeSet(game.Tags)
	record[fieldGameDetails] = encodeSet(game.Details)
	record[fieldGenre] = encodeSet(game.Genres)
	record[fieldDescription] = game.Description
	record[fieldMatureContent] = encodeSet(game.Content)
	record[fieldPrice] = formatFloat(game.Price)
	record[fieldPopularityScore] = formatFloat(game.PopularityScore)
	record[fieldGenreBools] = strings.Join(bools, ",")
	record[fieldNeighbours] = strings.Join(ids, ";")
	record[fieldSimilarityScores] = strings.Join(scores, ",")
	return record
}
