package domain

import "sort"

// StringSet is an unordered, duplicate-free collection of labels (tags,
// details, genres, content categories).
type StringSet map[string]struct{}

func NewStringSet(items ...string) StringSet {
	s := make(StringSet, len(items))
	for _, item := range items {
		s[item] = struct{}{}
	}
	return s
}

func (s StringSet) Add(item string) {
	s[item] = struct{}{}
}

func (s StringSet) Has(item string) bool {
	_, ok := s[item]
	return ok
}

func (s StringSet) Len() int {
	return len(s)
}

// Items returns the set's contents as a sorted slice.
func (s StringSet) Items() []string {
	items := make([]string, 0, len(s))
	for item := range s {
		items = append(items, item)
	}
	sort.Strings(items)
	return items
}

// IntersectionLen returns the number of items present in both sets.
func (s StringSet) IntersectionLen(other StringSet) int {
	small, large := s, other
	if len(large) < len(small) {
		small, large = large, small
	}
	count := 0
	for item := range small {
		if large.Has(item) {
			count++
		}
	}
	return count
}

// UnionLen returns the number of distinct items across both sets.
func (s StringSet) UnionLen(other StringSet) int {
	return len(s) + len(other) - s.IntersectionLen(other)
}
