package stats

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/shikano35/kuhi-api-mcp-server/internal/resource"
	"github.com/shikano35/kuhi-api-mcp-server/pkg/types"
)

// Statistics is an aggregate view of the upstream dataset.
type Statistics struct {
	// Entity counts
	MonumentCount int
	PoetCount     int
	LocationCount int
	SourceCount   int
	PoemCount     int

	// Breakdowns
	MonumentsByPrefecture map[string]int
	MonumentsByPoet       map[string]int
	PoemsBySeason         map[string]int

	// Collection metadata
	Elapsed time.Duration
}

// Collector computes dataset statistics through the accessor's full
// pagination aggregators.
type Collector struct {
	accessor *resource.Accessor
	logger   *slog.Logger
}

// NewCollector creates a statistics collector.
func NewCollector(accessor *resource.Accessor, logger *slog.Logger) *Collector {
	if logger == nil {
		logger = slog.Default()
	}

	return &Collector{
		accessor: accessor,
		logger:   logger,
	}
}

// Collect fetches every entity type concurrently and aggregates counts.
// Any aggregation failure fails the whole collection.
func (c *Collector) Collect(ctx context.Context) (*Statistics, error) {
	start := time.Now()

	var (
		monuments []types.Monument
		poets     []types.Poet
		locations []types.Location
		sources   []types.Source
		poems     []types.Poem
	)

	// Use errgroup for concurrent collection with error propagation
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		monuments, err = c.accessor.AllMonuments(gctx, types.MonumentOptions{}, 0)
		return err
	})
	g.Go(func() error {
		var err error
		poets, err = c.accessor.AllPoets(gctx, types.PoetOptions{}, 0)
		return err
	})
	g.Go(func() error {
		var err error
		locations, err = c.accessor.AllLocations(gctx, types.LocationOptions{}, 0)
		return err
	})
	g.Go(func() error {
		var err error
		sources, err = c.accessor.AllSources(gctx, types.SourceOptions{}, 0)
		return err
	})
	g.Go(func() error {
		var err error
		poems, err = c.accessor.AllPoems(gctx, types.PoemOptions{}, 0)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	s := &Statistics{
		MonumentCount:         len(monuments),
		PoetCount:             len(poets),
		LocationCount:         len(locations),
		SourceCount:           len(sources),
		PoemCount:             len(poems),
		MonumentsByPrefecture: make(map[string]int),
		MonumentsByPoet:       make(map[string]int),
		PoemsBySeason:         make(map[string]int),
	}

	for i := range monuments {
		if loc := monuments[i].PrimaryLocation(); loc != nil && loc.Prefecture != nil {
			s.MonumentsByPrefecture[*loc.Prefecture]++
		}
		for _, poet := range monuments[i].Poets {
			s.MonumentsByPoet[poet.Name]++
		}
	}

	for i := range poems {
		if poems[i].Season != nil {
			s.PoemsBySeason[string(*poems[i].Season)]++
		}
	}

	s.Elapsed = time.Since(start)
	c.logger.Debug("statistics collected",
		"monuments", s.MonumentCount, "poets", s.PoetCount, "elapsed", s.Elapsed)

	return s, nil
}
