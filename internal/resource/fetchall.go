package resource

import (
	"context"
	"time"

	"github.com/shikano35/kuhi-api-mcp-server/pkg/types"
)

// Pagination aggregation
const (
	// FetchAllBatchSize is the page size used by the aggregators.
	FetchAllBatchSize = 100

	// FetchAllMaxOffset guards termination against an upstream that never
	// returns a short page.
	FetchAllMaxOffset = 100000

	// FetchAllDelay throttles between page requests.
	FetchAllDelay = 100 * time.Millisecond
)

// pageFunc fetches one page of entities at the given offset.
type pageFunc[T any] func(ctx context.Context, limit, offset int) ([]T, error)

// fetchAll aggregates every page from page into a duplicate-free slice in
// first-seen order, keyed by entity id. Aggregation stops on a batch shorter
// than the requested size (covers the empty batch), on reaching max results
// (0 means uncapped), or at the hard offset guard. A fetch error
// mid-aggregation propagates and discards partial results.
func fetchAll[T any](ctx context.Context, delay time.Duration, max int, page pageFunc[T], id func(T) int64) ([]T, error) {
	all := []T{}
	seen := make(map[int64]struct{})

	for offset := 0; offset < FetchAllMaxOffset; offset += FetchAllBatchSize {
		if offset > 0 && delay > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(delay):
			}
		}

		batch, err := page(ctx, FetchAllBatchSize, offset)
		if err != nil {
			return nil, err
		}

		for _, item := range batch {
			key := id(item)
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			all = append(all, item)

			if max > 0 && len(all) >= max {
				return all, nil
			}
		}

		if len(batch) < FetchAllBatchSize {
			break
		}
	}

	return all, nil
}

// AllMonuments aggregates every monument matching opts across pages. max
// caps the result count; 0 means unlimited. Pagination fields in opts are
// overridden per page.
func (a *Accessor) AllMonuments(ctx context.Context, opts types.MonumentOptions, max int) ([]types.Monument, error) {
	return fetchAll(ctx, a.batchDelay, max, func(ctx context.Context, limit, offset int) ([]types.Monument, error) {
		pageOpts := opts
		pageOpts.Limit = limit
		pageOpts.Offset = offset
		return a.Monuments(ctx, pageOpts)
	}, func(m types.Monument) int64 { return m.ID })
}

// AllPoets aggregates every poet matching opts across pages.
func (a *Accessor) AllPoets(ctx context.Context, opts types.PoetOptions, max int) ([]types.Poet, error) {
	return fetchAll(ctx, a.batchDelay, max, func(ctx context.Context, limit, offset int) ([]types.Poet, error) {
		pageOpts := opts
		pageOpts.Limit = limit
		pageOpts.Offset = offset
		return a.Poets(ctx, pageOpts)
	}, func(p types.Poet) int64 { return p.ID })
}

// AllLocations aggregates every location matching opts across pages.
func (a *Accessor) AllLocations(ctx context.Context, opts types.LocationOptions, max int) ([]types.Location, error) {
	return fetchAll(ctx, a.batchDelay, max, func(ctx context.Context, limit, offset int) ([]types.Location, error) {
		pageOpts := opts
		pageOpts.Limit = limit
		pageOpts.Offset = offset
		return a.Locations(ctx, pageOpts)
	}, func(l types.Location) int64 { return l.ID })
}

// AllSources aggregates every source matching opts across pages.
func (a *Accessor) AllSources(ctx context.Context, opts types.SourceOptions, max int) ([]types.Source, error) {
	return fetchAll(ctx, a.batchDelay, max, func(ctx context.Context, limit, offset int) ([]types.Source, error) {
		pageOpts := opts
		pageOpts.Limit = limit
		pageOpts.Offset = offset
		return a.Sources(ctx, pageOpts)
	}, func(s types.Source) int64 { return s.ID })
}

// AllPoems aggregates every poem matching opts across pages.
func (a *Accessor) AllPoems(ctx context.Context, opts types.PoemOptions, max int) ([]types.Poem, error) {
	return fetchAll(ctx, a.batchDelay, max, func(ctx context.Context, limit, offset int) ([]types.Poem, error) {
		pageOpts := opts
		pageOpts.Limit = limit
		pageOpts.Offset = offset
		return a.Poems(ctx, pageOpts)
	}, func(p types.Poem) int64 { return p.ID })
}
