package resource

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shikano35/kuhi-api-mcp-server/internal/cache"
	"github.com/shikano35/kuhi-api-mcp-server/internal/fetch"
	"github.com/shikano35/kuhi-api-mcp-server/internal/metrics"
	"github.com/shikano35/kuhi-api-mcp-server/pkg/types"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newTestAccessor wires an accessor to an httptest upstream with fast retry
// and throttle settings.
func newTestAccessor(t *testing.T, handler http.Handler) (*Accessor, *metrics.Metrics) {
	t.Helper()

	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)

	m := metrics.New()
	a := New(Config{
		BaseURL: ts.URL,
		Client: fetch.NewClient(fetch.Config{
			Timeout:           2 * time.Second,
			RequestsPerSecond: 1000,
			Logger:            discardLogger(),
		}),
		Cache:      cache.New(cache.Config{Logger: discardLogger()}),
		Metrics:    m,
		Retry:      fetch.RetryConfig{MaxAttempts: 1},
		BatchDelay: time.Millisecond,
		Logger:     discardLogger(),
	})
	return a, m
}

func TestAccessorMonuments(t *testing.T) {
	var gotPath, gotQuery string
	a, _ := newTestAccessor(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		w.Write([]byte(`[
			{"id": 1, "canonical_name": "芭蕉句碑", "inscriptions": null},
			{"id": 2, "canonical_name": "蕪村句碑"}
		]`))
	}))

	monuments, err := a.Monuments(context.Background(), types.MonumentOptions{Limit: 10, Prefecture: "三重県"})
	require.NoError(t, err)
	require.Len(t, monuments, 2)

	assert.Equal(t, int64(1), monuments[0].ID)
	assert.Equal(t, "芭蕉句碑", monuments[0].CanonicalName)
	assert.NotNil(t, monuments[0].Inscriptions, "normalization replaces null collections")
	assert.NotNil(t, monuments[1].Locations)

	assert.Equal(t, "/monuments", gotPath)
	assert.Contains(t, gotQuery, "limit=10")
	assert.Contains(t, gotQuery, "prefecture=")
}

func TestAccessorMonumentByID(t *testing.T) {
	a, _ := newTestAccessor(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/monuments/5", r.URL.Path)
		w.Write([]byte(`{"id": 5, "canonical_name": "一茶句碑"}`))
	}))

	m, err := a.Monument(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, int64(5), m.ID)
	assert.Equal(t, "一茶句碑", m.CanonicalName)
}

func TestAccessorMonumentNotFound(t *testing.T) {
	a, _ := newTestAccessor(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error": "not found"}`))
	}))

	_, err := a.Monument(context.Background(), 999)
	var statusErr *fetch.StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusNotFound, statusErr.StatusCode)
}

func TestAccessorRejectsInvalidInputBeforeNetwork(t *testing.T) {
	var calls atomic.Int64
	a, _ := newTestAccessor(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Write([]byte(`[]`))
	}))

	var dve *types.DomainValidationError

	_, err := a.Monument(context.Background(), 0)
	require.ErrorAs(t, err, &dve)

	_, err = a.Monuments(context.Background(), types.MonumentOptions{Limit: -1})
	require.ErrorAs(t, err, &dve)

	_, err = a.PoetMonuments(context.Background(), -3)
	require.ErrorAs(t, err, &dve)

	_, err = a.Poems(context.Background(), types.PoemOptions{Season: types.Season("bogus")})
	require.ErrorAs(t, err, &dve)

	assert.Zero(t, calls.Load(), "invalid input must not reach the upstream")
}

func TestAccessorPoetMonumentsPath(t *testing.T) {
	a, _ := newTestAccessor(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/poets/7/monuments", r.URL.Path)
		w.Write([]byte(`[{"id": 3, "canonical_name": "句碑"}]`))
	}))

	monuments, err := a.PoetMonuments(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, monuments, 1)
	assert.Equal(t, int64(3), monuments[0].ID)
}

func TestAccessorCachesResponses(t *testing.T) {
	var calls atomic.Int64
	a, _ := newTestAccessor(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Write([]byte(`[{"id": 1, "canonical_name": "句碑"}]`))
	}))

	opts := types.MonumentOptions{Prefecture: "愛知県"}
	_, err := a.Monuments(context.Background(), opts)
	require.NoError(t, err)
	_, err = a.Monuments(context.Background(), opts)
	require.NoError(t, err)

	assert.Equal(t, int64(1), calls.Load(), "the second identical request is served from cache")

	_, err = a.Monuments(context.Background(), types.MonumentOptions{Prefecture: "長野県"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), calls.Load(), "different parameters miss the cache")
}

func TestAccessorDoesNotCacheMalformedBodies(t *testing.T) {
	var calls atomic.Int64
	a, _ := newTestAccessor(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Write([]byte(`{not json`))
	}))

	_, err := a.Monuments(context.Background(), types.MonumentOptions{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, types.ErrMalformedJSON), "got %v", err)

	_, err = a.Monuments(context.Background(), types.MonumentOptions{})
	require.Error(t, err)
	assert.Equal(t, int64(2), calls.Load(), "a rejected body must not poison the cache")
}

func TestAccessorCollapsesConcurrentFetches(t *testing.T) {
	var calls atomic.Int64
	a, _ := newTestAccessor(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		time.Sleep(50 * time.Millisecond)
		w.Write([]byte(`[{"id": 1, "canonical_name": "句碑"}]`))
	}))

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			monuments, err := a.Monuments(context.Background(), types.MonumentOptions{})
			assert.NoError(t, err)
			assert.Len(t, monuments, 1)
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(1), calls.Load(), "concurrent identical requests collapse into one flight")
}

func TestAccessorPoetsAndEntityEndpoints(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/poets", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"id": 1, "name": "松尾芭蕉", "biography": ""}]`))
	})
	mux.HandleFunc("/locations", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"id": 1, "prefecture": "三重県", "latitude": 34.7, "longitude": 136.5}]`))
	})
	mux.HandleFunc("/sources", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"id": 1, "title": "俳諧紀行"}]`))
	})
	mux.HandleFunc("/poems", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"id": 1, "text": "古池や蛙飛び込む水の音", "season": "春"}]`))
	})
	a, _ := newTestAccessor(t, mux)

	ctx := context.Background()

	poets, err := a.Poets(ctx, types.PoetOptions{})
	require.NoError(t, err)
	require.Len(t, poets, 1)
	assert.Equal(t, "松尾芭蕉", poets[0].Name)
	assert.Nil(t, poets[0].Biography, "empty optional collapses to nil")

	locations, err := a.Locations(ctx, types.LocationOptions{})
	require.NoError(t, err)
	require.Len(t, locations, 1)
	assert.True(t, locations[0].HasCoordinates())

	sources, err := a.Sources(ctx, types.SourceOptions{})
	require.NoError(t, err)
	require.Len(t, sources, 1)

	poems, err := a.Poems(ctx, types.PoemOptions{})
	require.NoError(t, err)
	require.Len(t, poems, 1)
	require.NotNil(t, poems[0].Season)
	assert.Equal(t, types.SeasonSpring, *poems[0].Season)
}
