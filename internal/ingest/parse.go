package ingest

import (
	"strconv"
	"strings"

	"github.com/actuallystonmai/game-recommender/internal/domain"
)

// Column positions in the raw wide-schema dataset.
const (
	colURL           = 0
	colName          = 2
	colReviews       = 5
	colPopularTags   = 9
	colGameDetails   = 10
	colGenre         = 13
	colDescription   = 14
	colMatureContent = 15
	colOriginalPrice = 18
	colDiscountPrice = 19

	wideRowLen = 20

	// A store URL shorter than this cannot carry a game id.
	minURLLen = 46
)

func missing(field string) bool {
	return field == "" || field == "NaN"
}

// CheckTidiness reports whether a raw row is complete enough to ingest: a
// plausible URL, a name, a reviews field with a percentage, popular tags,
// game details, and a genre. Untidy rows are dropped, not errors.
func CheckTidiness(row []string) bool {
	if len(row) < wideRowLen {
		return false
	}
	if len(row[colURL]) < minURLLen {
		return false
	}
	if missing(row[colName]) {
		return false
	}
	if missing(row[colReviews]) || !strings.Contains(row[colReviews], "%") {
		return false
	}
	if missing(row[colPopularTags]) || missing(row[colGameDetails]) || missing(row[colGenre]) {
		return false
	}
	return true
}

// ExtractID returns the game id embedded in a store URL: the first maximal
// run of digits that is followed by a '/'. Tidy rows always contain one.
func ExtractID(url string) string {
	var id strings.Builder
	for i := 0; i < len(url); i++ {
		if url[i] >= '0' && url[i] <= '9' {
			id.WriteByte(url[i])
		} else if url[i] == '/' && id.Len() > 0 {
			break
		}
	}
	return id.String()
}

// ParseReviews extracts the positive-review percentage and total review
// count from the reviews text, e.g.
// "Very Positive,(15,156),- 88% of the 15,156 user reviews are positive.".
// The percentage is the two characters before '%'; the count starts nine
// characters after '%' and runs for at most seven, accumulating digits and
// stopping at the first space.
func ParseReviews(info string) (percentage, total int) {
	idx := strings.IndexByte(info, '%')
	if idx < 2 {
		return 0, 0
	}
	percentage, _ = strconv.Atoi(strings.TrimSpace(info[idx-2 : idx]))
	for i := idx + 9; i < idx+16 && i < len(info); i++ {
		if info[i] == ' ' {
			break
		}
		if info[i] >= '0' && info[i] <= '9' {
			total = total*10 + int(info[i]-'0')
		}
	}
	return percentage, total
}

// ParsePrice reads the first dollar-prefixed price column; a game with no
// parseable price is free.
func ParsePrice(original, discounted string) float64 {
	for _, field := range []string{original, discounted} {
		i := strings.IndexByte(field, '$')
		if i < 0 {
			continue
		}
		price, err := strconv.ParseFloat(strings.TrimSpace(field[i+1:]), 64)
		if err == nil {
			return price
		}
	}
	return 0.0
}

// DeriveGenreFlags computes the nine-question genre fingerprint from the
// genre and game-details labels.
func DeriveGenreFlags(genres, details domain.StringSet) domain.GenreFlags {
	var flags domain.GenreFlags
	for genre := range genres {
		switch genre {
		case "Action":
			flags[0] = true
		case "Adventure":
			flags[1] = true
		case "Strategy":
			flags[2] = true
		case "RPG":
			flags[3] = true
		case "Simulation":
			flags[4] = true
		case "Casual":
			flags[5] = true
		case "Indie":
			flags[6] = true
		case "Racing", "Sports":
			flags[7] = true
		}
	}
	if details.Has("Single-player") {
		flags[8] = true
	}
	return flags
}

func splitSet(field string) domain.StringSet {
	return domain.NewStringSet(strings.Split(field, ",")...)
}

// ParseGame builds a catalog entry from a tidy wide-schema row.
func ParseGame(row []string, classifier *ContentClassifier) *domain.Game {
	game := &domain.Game{
		URL:         row[colURL],
		ID:          ExtractID(row[colURL]),
		Name:        row[colName],
		Tags:        splitSet(row[colPopularTags]),
		Details:     splitSet(row[colGameDetails]),
		Genres:      splitSet(row[colGenre]),
		Description: row[colDescription],
		Content:     domain.NewStringSet(),
		Price:       ParsePrice(row[colOriginalPrice], row[colDiscountPrice]),
	}

	if !missing(row[colMatureContent]) {
		game.Content = classifier.Classify(row[colMatureContent])
	}

	percentage, total := ParseReviews(row[colReviews])
	game.PopularityScore = float64(percentage) * float64(total) / 100
	game.GenreFlags = DeriveGenreFlags(game.Genres, game.Details)

	return game
}
