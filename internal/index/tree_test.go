package index

import (
	"testing"

	"github.com/actuallystonmai/game-recommender/internal/domain"
)

func TestInsertLookupRoundTrip(t *testing.T) {
	tree := NewDecisionTree()

	games := map[string]domain.GenreFlags{
		"100": {true, false, false, true, false, false, false, false, true},
		"200": {false, true, false, false, false, false, true, false, true},
		"300": {false, false, false, false, false, false, false, false, false},
	}
	for id, flags := range games {
		tree.Insert(flags, id)
	}

	for id, flags := range games {
		found := tree.Lookup(flags)
		if !found.Has(id) {
			t.Errorf("lookup with game %s's own flags did not return it, got %v", id, found.Items())
		}
	}
}

func TestLookupSharedLeaf(t *testing.T) {
	tree := NewDecisionTree()
	flags := domain.GenreFlags{true, true, false, false, false, false, false, false, true}

	tree.Insert(flags, "100")
	tree.Insert(flags, "200")

	found := tree.Lookup(flags)
	if found.Len() != 2 || !found.Has("100") || !found.Has("200") {
		t.Errorf("expected both games under the shared leaf, got %v", found.Items())
	}
}

func TestLookupMissingBranch(t *testing.T) {
	tree := NewDecisionTree()
	tree.Insert(domain.GenreFlags{true, false, false, false, false, false, false, false, false}, "100")

	// Flips the first answer into an unexplored branch.
	found := tree.Lookup(domain.GenreFlags{false, false, false, false, false, false, false, false, false})
	if found.Len() != 0 {
		t.Errorf("expected empty set for an unexplored path, got %v", found.Items())
	}
}

func TestLookupReturnsCopy(t *testing.T) {
	tree := NewDecisionTree()
	flags := domain.GenreFlags{false, false, true, false, false, false, false, false, false}
	tree.Insert(flags, "100")

	first := tree.Lookup(flags)
	first.Add("999")

	second := tree.Lookup(flags)
	if second.Has("999") {
		t.Error("mutating a lookup result leaked into the tree")
	}
}
