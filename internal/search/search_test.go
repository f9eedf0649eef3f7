package search

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

func newTestSearcher(t *testing.T, handler http.Handler) *Searcher {
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
		Cache:   cache.New(cache.Config{Logger: logger}),
		Metrics: metrics.New(),
		Retry:   fetch.RetryConfig{MaxAttempts: 1},
		Logger:  logger,
	})

	return NewSearcher(accessor, logger)
}

func TestSearcherPoemMatchesRankFirst(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/poems", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("q") == "古池や" {
			w.Write([]byte(`[{"id": 1, "text": "古池や蛙飛び込む水の音", "monument_id": 10}]`))
			return
		}
		w.Write([]byte(`[]`))
	})
	mux.HandleFunc("/monuments/10", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id": 10, "canonical_name": "芭蕉古池句碑"}`))
	})
	mux.HandleFunc("/monuments", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("inscription_contains") == "古池や" {
			w.Write([]byte(`[
				{"id": 10, "canonical_name": "芭蕉古池句碑"},
				{"id": 11, "canonical_name": "別の古池句碑"}
			]`))
			return
		}
		w.Write([]byte(`[]`))
	})

	s := newTestSearcher(t, mux)

	results, err := s.Monuments(context.Background(), "古池や", 5)
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, int64(10), results[0].ID, "the poem-matched monument ranks first")
	assert.Equal(t, int64(11), results[1].ID, "inscription matches fill the remainder")
}

func TestSearcherSkipsPoemsWithoutMonument(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/poems", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[
			{"id": 1, "text": "海山のうた", "monument_id": null},
			{"id": 2, "text": "海山の句", "monument_id": 20}
		]`))
	})
	mux.HandleFunc("/monuments/20", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id": 20, "canonical_name": "海山句碑"}`))
	})
	mux.HandleFunc("/monuments", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	})

	s := newTestSearcher(t, mux)

	results, err := s.Monuments(context.Background(), "海山", 5)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, int64(20), results[0].ID)
}

func TestSearcherLimitStopsEarly(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/poems", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[
			{"id": 1, "text": "句一", "monument_id": 31},
			{"id": 2, "text": "句二", "monument_id": 32},
			{"id": 3, "text": "句三", "monument_id": 33}
		]`))
	})
	for _, id := range []string{"31", "32", "33"} {
		mux.HandleFunc("/monuments/"+id, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"id": ` + id + `, "canonical_name": "句碑` + id + `"}`))
		})
	}
	mux.HandleFunc("/monuments", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	})

	s := newTestSearcher(t, mux)

	results, err := s.Monuments(context.Background(), "句", 2)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, int64(31), results[0].ID)
	assert.Equal(t, int64(32), results[1].ID)
}

func TestSearcherFallsBackToUnfilteredPage(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/poems", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	})
	mux.HandleFunc("/monuments", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("inscription_contains") != "" {
			w.Write([]byte(`[]`))
			return
		}
		w.Write([]byte(`[
			{"id": 1, "canonical_name": "第一句碑"},
			{"id": 2, "canonical_name": "第二句碑"}
		]`))
	})

	s := newTestSearcher(t, mux)

	results, err := s.Monuments(context.Background(), "マッチしない検索語", 5)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, int64(1), results[0].ID)
}

func TestSearcherBlankTextFallsBack(t *testing.T) {
	var sawFilter bool
	mux := http.NewServeMux()
	mux.HandleFunc("/monuments", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("inscription_contains") != "" || r.URL.Query().Get("q") != "" {
			sawFilter = true
		}
		w.Write([]byte(`[{"id": 1, "canonical_name": "句碑"}]`))
	})

	s := newTestSearcher(t, mux)

	results, err := s.Monuments(context.Background(), "   ", 3)
	require.NoError(t, err)
	assert.Len(t, results, 1)
	assert.False(t, sawFilter, "blank text goes straight to the unfiltered page")
}

func TestSearcherPropagatesUpstreamError(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/poems", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	s := newTestSearcher(t, mux)

	_, err := s.Monuments(context.Background(), "古池", 5)
	require.Error(t, err)

	var statusErr *fetch.StatusError
	assert.ErrorAs(t, err, &statusErr)
}

func TestSearcherDefaultLimit(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/poems", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "10", r.URL.Query().Get("limit"))
		w.Write([]byte(`[]`))
	})
	mux.HandleFunc("/monuments", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	})

	s := newTestSearcher(t, mux)

	_, err := s.Monuments(context.Background(), "句碑", 0)
	require.NoError(t, err)
}
