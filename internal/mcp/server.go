package mcp

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/mark3labs/mcp-go/server"

	"github.com/shikano35/kuhi-api-mcp-server/internal/cache"
	"github.com/shikano35/kuhi-api-mcp-server/internal/config"
	"github.com/shikano35/kuhi-api-mcp-server/internal/fetch"
	"github.com/shikano35/kuhi-api-mcp-server/internal/metrics"
	"github.com/shikano35/kuhi-api-mcp-server/internal/resource"
	"github.com/shikano35/kuhi-api-mcp-server/internal/search"
	"github.com/shikano35/kuhi-api-mcp-server/internal/stats"
)

const (
	// ServerName is the MCP server name
	ServerName = "kuhi-api-mcp-server"
	// ServerVersion is the current server version
	ServerVersion = "1.0.0"
)

// httpShutdownTimeout bounds graceful shutdown of the HTTP transport.
const httpShutdownTimeout = 5 * time.Second

// serverInstructions is surfaced to MCP clients at initialization.
const serverInstructions = `This server exposes the kuhi.jp haiku monument database.
Monuments (kuhi) are stone markers inscribed with haiku; each carries
inscriptions, poems, poets, locations, and bibliographic sources. Use
search_monuments for general queries, search_monuments_near for geographic
lookups, search_monuments_by_text for haiku fragments or kigo, and
get_statistics for corpus-wide aggregates. Data is fetched live from the
upstream API and cached briefly in process.`

// Server wraps the MCP server with application dependencies
type Server struct {
	mcp       *server.MCPServer
	accessor  *resource.Accessor
	searcher  *search.Searcher
	collector *stats.Collector
	cache     *cache.Cache
	metrics   *metrics.Metrics
	checker   *metrics.Checker
	baseURL   string
	httpAddr  string
	logger    *slog.Logger
}

// NewServer creates a new MCP server instance wired to the upstream API
// named by cfg.
func NewServer(cfg *config.Config, logger *slog.Logger) (*Server, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if logger == nil {
		logger = slog.Default()
	}

	client := fetch.NewClient(fetch.Config{
		Timeout:           cfg.RequestTimeout,
		RequestsPerSecond: cfg.RequestsPerSecond,
		UserAgent:         fmt.Sprintf("kuhi-mcp/%s", ServerVersion),
		Logger:            logger.With("component", "fetch"),
	})

	responseCache := cache.New(cache.Config{
		TTL:      cfg.Cache.TTL,
		MaxBytes: cfg.Cache.MaxBytes,
		Logger:   logger.With("component", "cache"),
	})

	m := metrics.New()

	retry := fetch.DefaultRetryConfig()
	if cfg.Retry.MaxAttempts > 0 {
		retry.MaxAttempts = cfg.Retry.MaxAttempts
	}
	if cfg.Retry.BaseDelay > 0 {
		retry.BaseDelay = cfg.Retry.BaseDelay
	}
	if cfg.Retry.MaxDelay > 0 {
		retry.MaxDelay = cfg.Retry.MaxDelay
	}

	accessor := resource.New(resource.Config{
		BaseURL: cfg.BaseURL,
		Client:  client,
		Cache:   responseCache,
		Metrics: m,
		Retry:   retry,
		Logger:  logger.With("component", "resource"),
	})

	mcpServer := server.NewMCPServer(
		ServerName,
		ServerVersion,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
		server.WithInstructions(serverInstructions),
	)

	s := &Server{
		mcp:       mcpServer,
		accessor:  accessor,
		searcher:  search.NewSearcher(accessor, logger.With("component", "search")),
		collector: stats.NewCollector(accessor, logger.With("component", "stats")),
		cache:     responseCache,
		metrics:   m,
		checker:   metrics.NewChecker(m, cfg.Health.Interval, logger.With("component", "health")),
		baseURL:   cfg.BaseURL,
		httpAddr:  cfg.HTTPAddr,
		logger:    logger,
	}

	// Register tools
	if err := s.registerTools(); err != nil {
		return nil, fmt.Errorf("failed to register tools: %w", err)
	}

	return s, nil
}

// Serve starts the MCP server and blocks until shutdown. The transport is
// stdio unless an HTTP listen address is configured. The periodic health
// checker runs until ctx is cancelled.
func (s *Server) Serve(ctx context.Context) error {
	go s.checker.Run(ctx)

	if s.httpAddr != "" {
		return s.serveHTTP(ctx)
	}

	return server.ServeStdio(s.mcp)
}

func (s *Server) serveHTTP(ctx context.Context) error {
	httpServer := server.NewStreamableHTTPServer(s.mcp)

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), httpShutdownTimeout)
		defer cancel()
		_ = httpServer.Shutdown(shutdownCtx)
	}()

	s.logger.Info("serving MCP over streamable HTTP", "addr", s.httpAddr)
	if err := httpServer.Start(s.httpAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// registerTools registers all MCP tools
func (s *Server) registerTools() error {
	// Monument search and retrieval
	s.mcp.AddTool(searchMonumentsTool(), s.handleSearchMonuments)
	s.mcp.AddTool(getMonumentTool(), s.handleGetMonument)
	s.mcp.AddTool(searchMonumentsByPoetTool(), s.handleSearchMonumentsByPoet)
	s.mcp.AddTool(searchMonumentsNearTool(), s.handleSearchMonumentsNear)
	s.mcp.AddTool(searchMonumentsByTextTool(), s.handleSearchMonumentsByText)

	// Related entities
	s.mcp.AddTool(listPoetsTool(), s.handleListPoets)
	s.mcp.AddTool(getPoetTool(), s.handleGetPoet)
	s.mcp.AddTool(listLocationsTool(), s.handleListLocations)
	s.mcp.AddTool(listSourcesTool(), s.handleListSources)
	s.mcp.AddTool(getPoemsBySeasonTool(), s.handleGetPoemsBySeason)

	// Aggregation and export
	s.mcp.AddTool(getStatisticsTool(), s.handleGetStatistics)
	s.mcp.AddTool(compareMonumentsTool(), s.handleCompareMonuments)
	s.mcp.AddTool(exportGeoJSONTool(), s.handleExportGeoJSON)

	// Server status
	s.mcp.AddTool(getStatusTool(), s.handleGetStatus)

	return nil
}
