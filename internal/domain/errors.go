package domain

import "errors"

var (
	ErrGameNotFound    = errors.New("game not found")
	ErrVertexNotFound  = errors.New("vertex not found in graph")
	ErrEmptyRanking    = errors.New("cannot rank an empty game list")
	ErrCatalogTooSmall = errors.New("catalog cannot supply the minimum number of candidates")
)
