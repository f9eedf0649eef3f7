package resource

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/shikano35/kuhi-api-mcp-server/internal/cache"
	"github.com/shikano35/kuhi-api-mcp-server/internal/fetch"
	"github.com/shikano35/kuhi-api-mcp-server/internal/metrics"
	"github.com/shikano35/kuhi-api-mcp-server/pkg/types"
)

// DefaultBaseURL is the production haiku-monument API.
const DefaultBaseURL = "https://api.kuhi.jp"

// Endpoint names keyed into validation metrics
const (
	EndpointMonuments    = "monuments"
	EndpointPoets        = "poets"
	EndpointLocations    = "locations"
	EndpointSources      = "sources"
	EndpointPoems        = "poems"
	EndpointInscriptions = "inscriptions"
)

// Config holds Accessor construction parameters.
type Config struct {
	BaseURL    string
	Client     *fetch.Client
	Cache      *cache.Cache
	Metrics    *metrics.Metrics
	Retry      fetch.RetryConfig
	BatchDelay time.Duration
	Logger     *slog.Logger
}

// Accessor composes the fetch client, response cache, validator, and
// metrics into per-entity fetch operations. All dependencies are injected;
// there is no package-level state.
type Accessor struct {
	client     *fetch.Client
	cache      *cache.Cache
	metrics    *metrics.Metrics
	baseURL    string
	retry      fetch.RetryConfig
	batchDelay time.Duration
	logger     *slog.Logger
	group      singleflight.Group
}

// New creates a resource accessor.
func New(cfg Config) *Accessor {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Retry.MaxAttempts == 0 {
		cfg.Retry = fetch.DefaultRetryConfig()
	}
	if cfg.BatchDelay == 0 {
		cfg.BatchDelay = FetchAllDelay
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	return &Accessor{
		client:     cfg.Client,
		cache:      cfg.Cache,
		metrics:    cfg.Metrics,
		baseURL:    cfg.BaseURL,
		retry:      cfg.Retry,
		batchDelay: cfg.BatchDelay,
		logger:     cfg.Logger,
	}
}

// Monuments fetches monument records matching opts.
func (a *Accessor) Monuments(ctx context.Context, opts types.MonumentOptions) ([]types.Monument, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	body, err := a.fetchJSON(ctx, "/monuments", opts.Values())
	if err != nil {
		return nil, err
	}

	items, _, err := decodeList(a, EndpointMonuments, body, (*types.Monument).Validate, types.NormalizeMonument)
	return items, err
}

// Monument fetches one monument by id with its full embedded detail.
func (a *Accessor) Monument(ctx context.Context, id int64) (*types.Monument, error) {
	if id <= 0 {
		return nil, types.NewDomainValidationError("id", types.ErrInvalidMonumentID.Error())
	}

	body, err := a.fetchJSON(ctx, fmt.Sprintf("/monuments/%d", id), nil)
	if err != nil {
		return nil, err
	}

	item, _, err := decodeOne(a, EndpointMonuments, body, (*types.Monument).Validate, types.NormalizeMonument)
	return item, err
}

// Poets fetches poet records matching opts.
func (a *Accessor) Poets(ctx context.Context, opts types.PoetOptions) ([]types.Poet, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	body, err := a.fetchJSON(ctx, "/poets", opts.Values())
	if err != nil {
		return nil, err
	}

	items, _, err := decodeList(a, EndpointPoets, body, (*types.Poet).Validate, types.NormalizePoet)
	return items, err
}

// Poet fetches one poet by id.
func (a *Accessor) Poet(ctx context.Context, id int64) (*types.Poet, error) {
	if id <= 0 {
		return nil, types.NewDomainValidationError("id", types.ErrInvalidPoetID.Error())
	}

	body, err := a.fetchJSON(ctx, fmt.Sprintf("/poets/%d", id), nil)
	if err != nil {
		return nil, err
	}

	item, _, err := decodeOne(a, EndpointPoets, body, (*types.Poet).Validate, types.NormalizePoet)
	return item, err
}

// PoetMonuments fetches the monuments attributed to one poet.
func (a *Accessor) PoetMonuments(ctx context.Context, poetID int64) ([]types.Monument, error) {
	if poetID <= 0 {
		return nil, types.NewDomainValidationError("poet_id", types.ErrInvalidPoetID.Error())
	}

	body, err := a.fetchJSON(ctx, fmt.Sprintf("/poets/%d/monuments", poetID), nil)
	if err != nil {
		return nil, err
	}

	items, _, err := decodeList(a, EndpointMonuments, body, (*types.Monument).Validate, types.NormalizeMonument)
	return items, err
}

// Locations fetches location records matching opts.
func (a *Accessor) Locations(ctx context.Context, opts types.LocationOptions) ([]types.Location, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	body, err := a.fetchJSON(ctx, "/locations", opts.Values())
	if err != nil {
		return nil, err
	}

	items, _, err := decodeList(a, EndpointLocations, body, (*types.Location).Validate, types.NormalizeLocation)
	return items, err
}

// Sources fetches bibliographic source records matching opts.
func (a *Accessor) Sources(ctx context.Context, opts types.SourceOptions) ([]types.Source, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	body, err := a.fetchJSON(ctx, "/sources", opts.Values())
	if err != nil {
		return nil, err
	}

	items, _, err := decodeList(a, EndpointSources, body, (*types.Source).Validate, types.NormalizeSource)
	return items, err
}

// Poems fetches poem records matching opts.
func (a *Accessor) Poems(ctx context.Context, opts types.PoemOptions) ([]types.Poem, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	body, err := a.fetchJSON(ctx, "/poems", opts.Values())
	if err != nil {
		return nil, err
	}

	items, _, err := decodeList(a, EndpointPoems, body, (*types.Poem).Validate, types.NormalizePoem)
	return items, err
}

// Inscriptions fetches inscription records matching opts.
func (a *Accessor) Inscriptions(ctx context.Context, opts types.InscriptionOptions) ([]types.Inscription, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	body, err := a.fetchJSON(ctx, "/inscriptions", opts.Values())
	if err != nil {
		return nil, err
	}

	items, _, err := decodeList(a, EndpointInscriptions, body, (*types.Inscription).Validate, types.NormalizeInscription)
	return items, err
}

// fetchJSON returns the response body for path+params, from cache when a
// fresh entry exists. Concurrent misses on the same key collapse into one
// upstream request. The body is cached only after passing the JSON syntax
// check; structural validation happens downstream and never blocks caching.
func (a *Accessor) fetchJSON(ctx context.Context, path string, params url.Values) ([]byte, error) {
	key := cache.Key(path, params)
	if body, ok := a.cache.Get(key); ok {
		a.logger.Debug("cache hit", "path", path)
		return body, nil
	}

	v, err, _ := a.group.Do(key, func() (interface{}, error) {
		// A concurrent flight may have stored the entry after our miss.
		if body, ok := a.cache.Get(key); ok {
			return body, nil
		}

		body, err := a.client.GetWithRetry(ctx, a.retry, a.requestURL(path, params))
		if err != nil {
			return nil, err
		}

		if err := checkSyntax(path, body); err != nil {
			return nil, err
		}

		a.cache.Put(key, body)
		return body, nil
	})
	if err != nil {
		return nil, err
	}

	return v.([]byte), nil
}

// requestURL builds the canonical request URL. Encode sorts parameter
// names, matching the canonical form the cache key hashes.
func (a *Accessor) requestURL(path string, params url.Values) string {
	u := a.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}
	return u
}
