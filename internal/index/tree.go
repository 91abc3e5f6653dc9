package index

import "github.com/actuallystonmai/game-recommender/internal/domain"

// DecisionTree classifies games by their genre-flag fingerprint. Each level
// branches on one of the nine flags; a full path ends in the set of game ids
// sharing exactly that flag combination. Branches are created lazily on
// insert, so an unexplored answer combination simply has no path.
type DecisionTree struct {
	root *treeNode
}

// A node is either internal (children keyed by the next flag's value) or
// terminal (holding game ids). The two cases never mix: terminals only
// appear at depth 9.
type treeNode struct {
	children [2]*treeNode
	games    domain.StringSet
}

func NewDecisionTree() *DecisionTree {
	return &DecisionTree{root: &treeNode{}}
}

func childIndex(flag bool) int {
	if flag {
		return 1
	}
	return 0
}

// Insert descends by the game's genre flags, creating missing branches, and
// adds the id to the terminal set. Callers insert each id exactly once.
func (t *DecisionTree) Insert(flags domain.GenreFlags, gameID string) {
	node := t.root
	for _, flag := range flags {
		i := childIndex(flag)
		if node.children[i] == nil {
			node.children[i] = &treeNode{}
		}
		node = node.children[i]
	}
	if node.games == nil {
		node.games = domain.NewStringSet()
	}
	node.games.Add(gameID)
}

// Lookup returns the ids stored under the given answer path. A missing
// branch at any depth short-circuits to an empty set. The returned set is a
// copy; mutating it does not affect the tree.
func (t *DecisionTree) Lookup(answers domain.GenreFlags) domain.StringSet {
	node := t.root
	for _, answer := range answers {
		node = node.children[childIndex(answer)]
		if node == nil {
			return domain.NewStringSet()
		}
	}
	found := make(domain.StringSet, len(node.games))
	for id := range node.games {
		found.Add(id)
	}
	return found
}
