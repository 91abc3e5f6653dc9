package ingest

import (
	"math"
	"testing"

	"github.com/actuallystonmai/game-recommender/internal/domain"
)

func tidyRow() []string {
	row := make([]string, 20)
	row[colURL] = "https://store.steampowered.com/app/477160/Human_Fall_Flat/"
	row[colName] = "Human: Fall Flat"
	row[colReviews] = "Very Positive,(132,919),- 91% of the 132,919 user reviews for this game are positive."
	row[colPopularTags] = "Funny,Co-op,Puzzle"
	row[colGameDetails] = "Single-player,Multi-player"
	row[colGenre] = "Adventure,Indie"
	row[colDescription] = "A hilarious physics platformer."
	row[colMatureContent] = ""
	row[colOriginalPrice] = "$14.99"
	return row
}

func TestCheckTidiness(t *testing.T) {
	if !CheckTidiness(tidyRow()) {
		t.Fatal("expected sample row to be tidy")
	}

	spoil := func(col int, value string) []string {
		row := tidyRow()
		row[col] = value
		return row
	}

	cases := map[string][]string{
		"short url":         spoil(colURL, "https://example.com/"),
		"missing name":      spoil(colName, ""),
		"NaN name":          spoil(colName, "NaN"),
		"reviews without %": spoil(colReviews, "Very Positive of the 132,919 user reviews"),
		"missing reviews":   spoil(colReviews, ""),
		"missing tags":      spoil(colPopularTags, "NaN"),
		"missing details":   spoil(colGameDetails, ""),
		"missing genre":     spoil(colGenre, ""),
		"truncated row":     tidyRow()[:10],
	}
	for name, row := range cases {
		if CheckTidiness(row) {
			t.Errorf("%s: expected row to be rejected", name)
		}
	}
}

func TestExtractID(t *testing.T) {
	cases := map[string]string{
		"https://store.steampowered.com/app/477160/Human_Fall_Flat/": "477160",
		"https://store.steampowered.com/app/730/CSGO/":               "730",
	}
	for url, want := range cases {
		if got := ExtractID(url); got != want {
			t.Errorf("ExtractID(%q) = %q, want %q", url, got, want)
		}
	}
}

func TestParseReviews(t *testing.T) {
	pct, total := ParseReviews("Very Positive,(132,919),- 91% of the 132,919 user reviews for this game are positive.")
	if pct != 91 {
		t.Errorf("expected percentage 91, got %d", pct)
	}
	if total != 132919 {
		t.Errorf("expected total 132919, got %d", total)
	}

	// The count window is seven characters wide, so an eight-character
	// figure like 3,589,421 loses its tail. Long-standing format quirk.
	_, total = ParseReviews("Very Positive,(3,589,421),- 87% of the 3,589,421 user reviews for this game are positive.")
	if total != 35894 {
		t.Errorf("expected truncated total 35894, got %d", total)
	}

	// Count shorter than the window stops at the first space.
	pct, total = ParseReviews("Positive,(500),- 80% of the 500 user reviews for this game are positive.")
	if pct != 80 || total != 500 {
		t.Errorf("expected (80, 500), got (%d, %d)", pct, total)
	}
}

func TestParsePrice(t *testing.T) {
	if price := ParsePrice("$14.99", ""); price != 14.99 {
		t.Errorf("expected 14.99, got %f", price)
	}
	if price := ParsePrice("", "$9.99"); price != 9.99 {
		t.Errorf("expected discount fallback 9.99, got %f", price)
	}
	if price := ParsePrice("", ""); price != 0 {
		t.Errorf("expected free game, got %f", price)
	}
}

func TestClassify(t *testing.T) {
	classifier := NewContentClassifier()

	flags := classifier.Classify("This Game may contain content not appropriate for all ages, " +
		"or may not be appropriate for viewing at work: Frequent Violence or Gore, Intense Horror")
	if !flags.Has(domain.ContentViolence) || !flags.Has(domain.ContentHorror) {
		t.Errorf("expected violence and horror, got %v", flags.Items())
	}

	flags = classifier.Classify("This Game may contain content not appropriate for all ages, " +
		"or may not be appropriate for viewing at work: nothing remarkable here")
	if flags.Len() != 1 || !flags.Has(domain.ContentOther) {
		t.Errorf("expected {other} for an unmatched description, got %v", flags.Items())
	}

	// Keywords inside the boilerplate prefix are skipped.
	flags = classifier.Classify("violence violence violence violence violence violence " +
		"violence violence violence violence harmless text")
	if !flags.Has(domain.ContentOther) {
		t.Errorf("expected tokens before the offset to be ignored, got %v", flags.Items())
	}
}

func TestDeriveGenreFlags(t *testing.T) {
	flags := DeriveGenreFlags(
		domain.NewStringSet("Action", "RPG", "Racing"),
		domain.NewStringSet("Single-player", "Stats"),
	)
	want := domain.GenreFlags{true, false, false, true, false, false, false, true, true}
	if flags != want {
		t.Errorf("expected %v, got %v", want, flags)
	}

	// Sports maps to the same flag as Racing.
	flags = DeriveGenreFlags(domain.NewStringSet("Sports"), domain.NewStringSet())
	if !flags[7] {
		t.Error("expected Sports to set flag 7")
	}
}

func TestParseGame(t *testing.T) {
	game := ParseGame(tidyRow(), NewContentClassifier())

	if game.ID != "477160" {
		t.Errorf("expected id 477160, got %s", game.ID)
	}
	if game.Name != "Human: Fall Flat" {
		t.Errorf("unexpected name %q", game.Name)
	}
	if game.Price != 14.99 {
		t.Errorf("expected price 14.99, got %f", game.Price)
	}

	// 91% of 132,919 reviews.
	wantPopularity := 91.0 * 132919.0 / 100.0
	if math.Abs(game.PopularityScore-wantPopularity) > 1e-9 {
		t.Errorf("expected popularity %f, got %f", wantPopularity, game.PopularityScore)
	}

	if game.Content.Len() != 0 {
		t.Errorf("expected no content flags for an empty mature field, got %v", game.Content.Items())
	}

	want := domain.GenreFlags{false, true, false, false, false, false, true, false, true}
	if game.GenreFlags != want {
		t.Errorf("expected genre flags %v, got %v", want, game.GenreFlags)
	}
	if game.RecommendationScore != 0 {
		t.Errorf("fresh game should have zero recommendation score, got %f", game.RecommendationScore)
	}
}
