package stats

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shikano35/kuhi-api-mcp-server/internal/cache"
	"github.com/shikano35/kuhi-api-mcp-server/internal/fetch"
	"github.com/shikano35/kuhi-api-mcp-server/internal/metrics"
	"github.com/shikano35/kuhi-api-mcp-server/internal/resource"
)

func newTestCollector(t *testing.T, handler http.Handler) *Collector {
	t.Helper()

	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	accessor := resource.New(resource.Config{
		BaseURL: ts.URL,
		Client: fetch.NewClient(fetch.Config{
			Timeout:           2 * time.Second,
			RequestsPerSecond: 1000,
			Logger:            logger,
		}),
		Cache:      cache.New(cache.Config{Logger: logger}),
		Metrics:    metrics.New(),
		Retry:      fetch.RetryConfig{MaxAttempts: 1},
		BatchDelay: time.Millisecond,
		Logger:     logger,
	})

	return NewCollector(accessor, logger)
}

func TestCollect(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/monuments", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[
			{"id": 1, "canonical_name": "芭蕉句碑",
			 "locations": [{"id": 1, "prefecture": "三重県"}],
			 "poets": [{"id": 1, "name": "松尾芭蕉"}]},
			{"id": 2, "canonical_name": "続芭蕉句碑",
			 "locations": [{"id": 2, "prefecture": "三重県"}],
			 "poets": [{"id": 1, "name": "松尾芭蕉"}]},
			{"id": 3, "canonical_name": "蕪村句碑",
			 "locations": [{"id": 3, "prefecture": "京都府"}],
			 "poets": [{"id": 2, "name": "与謝蕪村"}]}
		]`))
	})
	mux.HandleFunc("/poets", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"id": 1, "name": "松尾芭蕉"}, {"id": 2, "name": "与謝蕪村"}]`))
	})
	mux.HandleFunc("/locations", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"id": 1}, {"id": 2}, {"id": 3}]`))
	})
	mux.HandleFunc("/sources", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"id": 1, "title": "俳諧紀行"}]`))
	})
	mux.HandleFunc("/poems", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[
			{"id": 1, "text": "古池や蛙飛び込む水の音", "season": "春"},
			{"id": 2, "text": "閑さや岩にしみ入る蝉の声", "season": "夏"},
			{"id": 3, "text": "菜の花や月は東に日は西に", "season": "春"},
			{"id": 4, "text": "季語なしの句"}
		]`))
	})

	c := newTestCollector(t, mux)

	s, err := c.Collect(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3, s.MonumentCount)
	assert.Equal(t, 2, s.PoetCount)
	assert.Equal(t, 3, s.LocationCount)
	assert.Equal(t, 1, s.SourceCount)
	assert.Equal(t, 4, s.PoemCount)

	assert.Equal(t, map[string]int{"三重県": 2, "京都府": 1}, s.MonumentsByPrefecture)
	assert.Equal(t, map[string]int{"松尾芭蕉": 2, "与謝蕪村": 1}, s.MonumentsByPoet)
	assert.Equal(t, map[string]int{"春": 2, "夏": 1}, s.PoemsBySeason, "poems without a season are uncounted")

	assert.Greater(t, s.Elapsed, time.Duration(0))
}

func TestCollectPropagatesFailure(t *testing.T) {
	mux := http.NewServeMux()
	empty := func(w http.ResponseWriter, r *http.Request) { w.Write([]byte(`[]`)) }
	mux.HandleFunc("/monuments", empty)
	mux.HandleFunc("/poets", empty)
	mux.HandleFunc("/locations", empty)
	mux.HandleFunc("/sources", empty)
	mux.HandleFunc("/poems", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	c := newTestCollector(t, mux)

	_, err := c.Collect(context.Background())
	require.Error(t, err)

	var statusErr *fetch.StatusError
	assert.ErrorAs(t, err, &statusErr)
}

func TestCollectEmptyDataset(t *testing.T) {
	mux := http.NewServeMux()
	empty := func(w http.ResponseWriter, r *http.Request) { w.Write([]byte(`[]`)) }
	mux.HandleFunc("/monuments", empty)
	mux.HandleFunc("/poets", empty)
	mux.HandleFunc("/locations", empty)
	mux.HandleFunc("/sources", empty)
	mux.HandleFunc("/poems", empty)

	c := newTestCollector(t, mux)

	s, err := c.Collect(context.Background())
	require.NoError(t, err)

	assert.Zero(t, s.MonumentCount)
	assert.NotNil(t, s.MonumentsByPrefecture)
	assert.Empty(t, s.MonumentsByPrefecture)
	assert.NotNil(t, s.PoemsBySeason)
}
