package search

import (
	"context"
	"log/slog"

	"github.com/shikano35/kuhi-api-mcp-server/internal/resource"
	"github.com/shikano35/kuhi-api-mcp-server/pkg/types"
)

// DefaultLimit is the result count used when a caller does not specify one.
const DefaultLimit = 10

// Searcher implements free-text monument search on top of the resource
// accessor.
type Searcher struct {
	accessor *resource.Accessor
	logger   *slog.Logger
}

// NewSearcher creates a new searcher.
func NewSearcher(accessor *resource.Accessor, logger *slog.Logger) *Searcher {
	if logger == nil {
		logger = slog.Default()
	}

	return &Searcher{
		accessor: accessor,
		logger:   logger,
	}
}

// Monuments searches for monuments matching free text. Poem matches rank
// first: each extracted term queries the poems endpoint, and the monuments
// referenced by matching poems' inscriptions are collected. When that
// yields fewer than limit results, monuments whose inscription text
// contains each term fill the remainder. Results merge deduplicated by id
// in first-seen order; an entirely empty merge falls back to an unfiltered
// page rather than returning nothing.
func (s *Searcher) Monuments(ctx context.Context, text string, limit int) ([]types.Monument, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}

	terms := ExtractTerms(text)
	if len(terms) == 0 {
		return s.fallback(ctx, limit)
	}

	merged := []types.Monument{}
	seen := make(map[int64]struct{})

	for _, term := range terms {
		if len(merged) >= limit {
			break
		}

		poems, err := s.accessor.Poems(ctx, types.PoemOptions{Query: term, Limit: limit})
		if err != nil {
			return nil, err
		}

		for _, poem := range poems {
			if len(merged) >= limit {
				break
			}
			if poem.MonumentID == nil {
				continue
			}
			if _, dup := seen[*poem.MonumentID]; dup {
				continue
			}

			monument, err := s.accessor.Monument(ctx, *poem.MonumentID)
			if err != nil {
				return nil, err
			}

			seen[monument.ID] = struct{}{}
			merged = append(merged, *monument)
		}
	}

	if len(merged) < limit {
		for _, term := range terms {
			if len(merged) >= limit {
				break
			}

			monuments, err := s.accessor.Monuments(ctx, types.MonumentOptions{
				InscriptionContains: term,
				Limit:               limit,
			})
			if err != nil {
				return nil, err
			}

			for _, m := range monuments {
				if _, dup := seen[m.ID]; dup {
					continue
				}
				seen[m.ID] = struct{}{}
				merged = append(merged, m)
			}
		}
	}

	if len(merged) == 0 {
		return s.fallback(ctx, limit)
	}

	if len(merged) > limit {
		merged = merged[:limit]
	}

	return merged, nil
}

// fallback returns an unfiltered page of monuments.
func (s *Searcher) fallback(ctx context.Context, limit int) ([]types.Monument, error) {
	s.logger.Debug("text search matched nothing, returning unfiltered page", "limit", limit)
	return s.accessor.Monuments(ctx, types.MonumentOptions{Limit: limit})
}
