package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/shikano35/kuhi-api-mcp-server/internal/export"
	"github.com/shikano35/kuhi-api-mcp-server/internal/fetch"
	"github.com/shikano35/kuhi-api-mcp-server/internal/geo"
	"github.com/shikano35/kuhi-api-mcp-server/internal/search"
	"github.com/shikano35/kuhi-api-mcp-server/pkg/types"
)

// MCP error codes
const (
	ErrorCodeInvalidParams = -32602 // Invalid method parameters
	ErrorCodeInternalError = -32603 // Internal JSON-RPC error
)

// Page bounds shared by the list and search tools.
const (
	defaultPageLimit = 10
	maxPageLimit     = 100
)

// Bound on filter-driven GeoJSON exports.
const maxExportResults = 1000

// Bound on poets aggregated for an exact-name lookup.
const maxPoetMatches = 1000

// handleSearchMonuments handles the search_monuments tool invocation
func (s *Server) handleSearchMonuments(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, _ := request.Params.Arguments.(map[string]interface{})

	limit, offset, err := pageParams(args)
	if err != nil {
		return nil, err
	}

	opts := types.MonumentOptions{
		Limit:               limit,
		Offset:              offset,
		Query:               getStringDefault(args, "query", ""),
		TitleContains:       getStringDefault(args, "title_contains", ""),
		InscriptionContains: getStringDefault(args, "inscription_contains", ""),
		Prefecture:          getStringDefault(args, "prefecture", ""),
		Region:              getStringDefault(args, "region", ""),
		Ordering:            getStringDefault(args, "ordering", ""),
	}

	monuments, err := s.accessor.Monuments(ctx, opts)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("fetching monuments: %v", err)), nil
	}

	response := map[string]interface{}{
		"count":     len(monuments),
		"monuments": monumentSummaries(monuments),
	}

	return mcp.NewToolResultText(formatJSON(response)), nil
}

// handleGetMonument handles the get_monument tool invocation
func (s *Server) handleGetMonument(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid arguments", nil)
	}

	id := int64(getIntDefault(args, "id", 0))
	if id <= 0 {
		return nil, newMCPError(ErrorCodeInvalidParams, "id parameter is required and must be positive", map[string]interface{}{
			"param": "id",
		})
	}

	monument, err := s.accessor.Monument(ctx, id)
	if notFound(err) {
		return mcp.NewToolResultError(fmt.Sprintf("monument %d not found", id)), nil
	}
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("fetching monument %d: %v", id, err)), nil
	}

	return mcp.NewToolResultText(formatJSON(map[string]interface{}{
		"monument": monument,
	})), nil
}

// handleSearchMonumentsByPoet handles the search_monuments_by_poet tool invocation
func (s *Server) handleSearchMonumentsByPoet(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid arguments", nil)
	}

	name := strings.TrimSpace(getStringDefault(args, "poet_name", ""))
	if name == "" {
		return nil, newMCPError(ErrorCodeInvalidParams, "poet_name parameter is required", map[string]interface{}{
			"param":  "poet_name",
			"reason": "missing or empty",
		})
	}

	limit := getIntDefault(args, "limit", defaultPageLimit)
	if limit < 1 || limit > maxPageLimit {
		return nil, newMCPError(ErrorCodeInvalidParams, "limit must be between 1 and 100", map[string]interface{}{
			"param": "limit",
			"value": limit,
		})
	}

	// Aggregate across pages so an exact name pushed past the first page
	// by containment matches is still found.
	poets, err := s.accessor.AllPoets(ctx, types.PoetOptions{NameContains: name}, maxPoetMatches)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("fetching poets: %v", err)), nil
	}

	// The upstream filter matches by containment; the tool promises an
	// exact name match.
	var matched []types.Poet
	for _, p := range poets {
		if p.Name == name {
			matched = append(matched, p)
		}
	}

	seen := make(map[int64]struct{})
	monuments := []types.Monument{}
	for _, p := range matched {
		ms, err := s.accessor.PoetMonuments(ctx, p.ID)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("fetching monuments for poet %d: %v", p.ID, err)), nil
		}
		for _, m := range ms {
			if _, dup := seen[m.ID]; dup {
				continue
			}
			seen[m.ID] = struct{}{}
			monuments = append(monuments, m)
		}
	}

	if len(monuments) > limit {
		monuments = monuments[:limit]
	}

	response := map[string]interface{}{
		"poet_name":     name,
		"matched_poets": poetRefs(matched),
		"count":         len(monuments),
		"monuments":     monumentSummaries(monuments),
	}

	return mcp.NewToolResultText(formatJSON(response)), nil
}

// handleSearchMonumentsNear handles the search_monuments_near tool invocation
func (s *Server) handleSearchMonumentsNear(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, _ := request.Params.Arguments.(map[string]interface{})

	// Caller-supplied radius and coordinates are rejected before any
	// upstream fetch.
	radius := getFloatDefault(args, "radius_meters", geo.DefaultRadiusMeters)
	if err := geo.ValidateRadius(radius); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	maxResults := getIntDefault(args, "max_results", geo.DefaultMaxResults)
	if maxResults < 1 || maxResults > maxPageLimit {
		return nil, newMCPError(ErrorCodeInvalidParams, "max_results must be between 1 and 100", map[string]interface{}{
			"param": "max_results",
			"value": maxResults,
		})
	}

	var (
		center        geo.Point
		resolvedPlace string
	)

	lat, latOK := args["latitude"].(float64)
	lon, lonOK := args["longitude"].(float64)
	place := strings.TrimSpace(getStringDefault(args, "place", ""))

	switch {
	case latOK && lonOK:
		center = geo.Point{Latitude: lat, Longitude: lon}
		if err := center.Validate(); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
	case place != "":
		locations, err := s.accessor.AllLocations(ctx, types.LocationOptions{}, 0)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("fetching locations: %v", err)), nil
		}
		loc, ok := geo.ResolvePlace(locations, place)
		if !ok {
			return mcp.NewToolResultError(fmt.Sprintf("could not resolve place %q to a coordinate", place)), nil
		}
		center = geo.Point{Latitude: *loc.Latitude, Longitude: *loc.Longitude}
		resolvedPlace = describeLocation(loc)
	default:
		return nil, newMCPError(ErrorCodeInvalidParams, "either latitude+longitude or place is required", map[string]interface{}{
			"params": []string{"latitude", "longitude", "place"},
		})
	}

	monuments, err := s.accessor.AllMonuments(ctx, types.MonumentOptions{}, 0)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("fetching monuments: %v", err)), nil
	}

	nearest, err := geo.Nearest(monuments, center, radius, maxResults)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	results := make([]map[string]interface{}, 0, len(nearest))
	for i := range nearest {
		entry := monumentSummary(&nearest[i].Monument)
		entry["distance_meters"] = math.Round(nearest[i].Meters*10) / 10
		results = append(results, entry)
	}

	response := map[string]interface{}{
		"center": map[string]interface{}{
			"latitude":  center.Latitude,
			"longitude": center.Longitude,
		},
		"radius_meters": radius,
		"count":         len(results),
		"monuments":     results,
	}
	if resolvedPlace != "" {
		response["resolved_place"] = resolvedPlace
	}

	return mcp.NewToolResultText(formatJSON(response)), nil
}

// handleSearchMonumentsByText handles the search_monuments_by_text tool invocation
func (s *Server) handleSearchMonumentsByText(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid arguments", nil)
	}

	text, ok := args["text"].(string)
	if !ok || strings.TrimSpace(text) == "" {
		return nil, newMCPError(ErrorCodeInvalidParams, "text parameter is required and cannot be empty", map[string]interface{}{
			"param":  "text",
			"reason": "missing or empty",
		})
	}

	limit := getIntDefault(args, "limit", search.DefaultLimit)
	if limit < 1 || limit > maxPageLimit {
		return nil, newMCPError(ErrorCodeInvalidParams, "limit must be between 1 and 100", map[string]interface{}{
			"param": "limit",
			"value": limit,
		})
	}

	monuments, err := s.searcher.Monuments(ctx, text, limit)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("searching monuments: %v", err)), nil
	}

	response := map[string]interface{}{
		"text":      text,
		"terms":     search.ExtractTerms(text),
		"count":     len(monuments),
		"monuments": monumentSummaries(monuments),
	}

	return mcp.NewToolResultText(formatJSON(response)), nil
}

// handleListPoets handles the list_poets tool invocation
func (s *Server) handleListPoets(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, _ := request.Params.Arguments.(map[string]interface{})

	limit, offset, err := pageParams(args)
	if err != nil {
		return nil, err
	}

	opts := types.PoetOptions{
		Limit:             limit,
		Offset:            offset,
		Query:             getStringDefault(args, "query", ""),
		NameContains:      getStringDefault(args, "name_contains", ""),
		BiographyContains: getStringDefault(args, "biography_contains", ""),
		Ordering:          getStringDefault(args, "ordering", ""),
	}

	poets, err := s.accessor.Poets(ctx, opts)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("fetching poets: %v", err)), nil
	}

	response := map[string]interface{}{
		"count": len(poets),
		"poets": poets,
	}

	return mcp.NewToolResultText(formatJSON(response)), nil
}

// handleGetPoet handles the get_poet tool invocation
func (s *Server) handleGetPoet(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid arguments", nil)
	}

	id := int64(getIntDefault(args, "id", 0))
	if id <= 0 {
		return nil, newMCPError(ErrorCodeInvalidParams, "id parameter is required and must be positive", map[string]interface{}{
			"param": "id",
		})
	}

	includeMonuments := getBoolDefault(args, "include_monuments", true)

	poet, err := s.accessor.Poet(ctx, id)
	if notFound(err) {
		return mcp.NewToolResultError(fmt.Sprintf("poet %d not found", id)), nil
	}
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("fetching poet %d: %v", id, err)), nil
	}

	response := map[string]interface{}{
		"poet": poet,
	}

	if includeMonuments {
		monuments, err := s.accessor.PoetMonuments(ctx, id)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("fetching monuments for poet %d: %v", id, err)), nil
		}
		response["monument_count"] = len(monuments)
		response["monuments"] = monumentSummaries(monuments)
	}

	return mcp.NewToolResultText(formatJSON(response)), nil
}

// handleListLocations handles the list_locations tool invocation
func (s *Server) handleListLocations(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, _ := request.Params.Arguments.(map[string]interface{})

	limit, offset, err := pageParams(args)
	if err != nil {
		return nil, err
	}

	opts := types.LocationOptions{
		Limit:                limit,
		Offset:               offset,
		Prefecture:           getStringDefault(args, "prefecture", ""),
		Region:               getStringDefault(args, "region", ""),
		MunicipalityContains: getStringDefault(args, "municipality_contains", ""),
		Ordering:             getStringDefault(args, "ordering", ""),
	}

	locations, err := s.accessor.Locations(ctx, opts)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("fetching locations: %v", err)), nil
	}

	response := map[string]interface{}{
		"count":     len(locations),
		"locations": locations,
	}

	return mcp.NewToolResultText(formatJSON(response)), nil
}

// handleListSources handles the list_sources tool invocation
func (s *Server) handleListSources(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, _ := request.Params.Arguments.(map[string]interface{})

	limit, offset, err := pageParams(args)
	if err != nil {
		return nil, err
	}

	opts := types.SourceOptions{
		Limit:         limit,
		Offset:        offset,
		TitleContains: getStringDefault(args, "title_contains", ""),
		Ordering:      getStringDefault(args, "ordering", ""),
	}

	sources, err := s.accessor.Sources(ctx, opts)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("fetching sources: %v", err)), nil
	}

	response := map[string]interface{}{
		"count":   len(sources),
		"sources": sources,
	}

	return mcp.NewToolResultText(formatJSON(response)), nil
}

// handleGetPoemsBySeason handles the get_poems_by_season tool invocation
func (s *Server) handleGetPoemsBySeason(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid arguments", nil)
	}

	seasonArg, ok := args["season"].(string)
	if !ok || seasonArg == "" {
		return nil, newMCPError(ErrorCodeInvalidParams, "season parameter is required", map[string]interface{}{
			"param":  "season",
			"reason": "missing or empty",
		})
	}

	season, ok := parseSeason(seasonArg)
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid season", map[string]interface{}{
			"param":   "season",
			"value":   seasonArg,
			"allowed": []string{"spring", "summer", "autumn", "winter", "春", "夏", "秋", "冬"},
		})
	}

	limit, offset, err := pageParams(args)
	if err != nil {
		return nil, err
	}

	opts := types.PoemOptions{
		Limit:        limit,
		Offset:       offset,
		Season:       season,
		KigoContains: getStringDefault(args, "kigo_contains", ""),
	}

	poems, err := s.accessor.Poems(ctx, opts)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("fetching poems: %v", err)), nil
	}

	response := map[string]interface{}{
		"season": string(season),
		"count":  len(poems),
		"poems":  poems,
	}

	return mcp.NewToolResultText(formatJSON(response)), nil
}

// handleGetStatistics handles the get_statistics tool invocation
func (s *Server) handleGetStatistics(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	collected, err := s.collector.Collect(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("collecting statistics: %v", err)), nil
	}

	response := map[string]interface{}{
		"monument_count":          collected.MonumentCount,
		"poet_count":              collected.PoetCount,
		"location_count":          collected.LocationCount,
		"source_count":            collected.SourceCount,
		"poem_count":              collected.PoemCount,
		"monuments_by_prefecture": collected.MonumentsByPrefecture,
		"monuments_by_poet":       collected.MonumentsByPoet,
		"poems_by_season":         collected.PoemsBySeason,
		"elapsed_ms":              collected.Elapsed.Milliseconds(),
		"cache":                   cacheStatsMap(s.cache.Stats()),
		"requests":                requestMetricsMap(s.metrics.Snapshot()),
	}

	return mcp.NewToolResultText(formatJSON(response)), nil
}

// handleCompareMonuments handles the compare_monuments tool invocation
func (s *Server) handleCompareMonuments(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid arguments", nil)
	}

	ids, ok := int64List(args, "ids")
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "ids parameter is required and must be an array of monument ids", map[string]interface{}{
			"param": "ids",
		})
	}

	if len(ids) < 2 || len(ids) > 5 {
		return nil, newMCPError(ErrorCodeInvalidParams, "ids must contain between 2 and 5 monument ids", map[string]interface{}{
			"param": "ids",
			"count": len(ids),
		})
	}

	items := make([]map[string]interface{}, 0, len(ids))
	for _, id := range ids {
		monument, err := s.accessor.Monument(ctx, id)
		if notFound(err) {
			items = append(items, map[string]interface{}{
				"id":    id,
				"found": false,
			})
			continue
		}
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("fetching monument %d: %v", id, err)), nil
		}

		items = append(items, map[string]interface{}{
			"id":       id,
			"found":    true,
			"monument": monument,
		})
	}

	response := map[string]interface{}{
		"count":     len(items),
		"monuments": items,
	}

	return mcp.NewToolResultText(formatJSON(response)), nil
}

// handleExportGeoJSON handles the export_geojson tool invocation
func (s *Server) handleExportGeoJSON(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, _ := request.Params.Arguments.(map[string]interface{})

	var monuments []types.Monument
	strict := false

	if ids, ok := int64List(args, "ids"); ok && len(ids) > 0 {
		// Explicitly requested ids: missing coordinates must surface, not
		// silently vanish from the collection.
		strict = true
		for _, id := range ids {
			monument, err := s.accessor.Monument(ctx, id)
			if notFound(err) {
				return mcp.NewToolResultError(fmt.Sprintf("monument %d not found", id)), nil
			}
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("fetching monument %d: %v", id, err)), nil
			}
			monuments = append(monuments, *monument)
		}
	} else {
		maxResults := getIntDefault(args, "max_results", 100)
		if maxResults < 1 || maxResults > maxExportResults {
			return nil, newMCPError(ErrorCodeInvalidParams, "max_results must be between 1 and 1000", map[string]interface{}{
				"param": "max_results",
				"value": maxResults,
			})
		}

		opts := types.MonumentOptions{
			Prefecture: getStringDefault(args, "prefecture", ""),
			Region:     getStringDefault(args, "region", ""),
		}

		var err error
		monuments, err = s.accessor.AllMonuments(ctx, opts, maxResults)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("fetching monuments: %v", err)), nil
		}
	}

	fc, err := export.FeatureCollection(monuments, strict)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	data, err := json.MarshalIndent(fc, "", "  ")
	if err != nil {
		return nil, newMCPError(ErrorCodeInternalError, "encoding feature collection", map[string]interface{}{
			"error": err.Error(),
		})
	}

	return mcp.NewToolResultText(string(data)), nil
}

// handleGetStatus handles the get_status tool invocation
func (s *Server) handleGetStatus(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	transport := "stdio"
	if s.httpAddr != "" {
		transport = "http"
	}

	response := map[string]interface{}{
		"server": map[string]interface{}{
			"name":    ServerName,
			"version": ServerVersion,
		},
		"upstream_base_url": s.baseURL,
		"transport":         transport,
		"health":            string(s.checker.Evaluate()),
		"cache":             cacheStatsMap(s.cache.Stats()),
		"requests":          requestMetricsMap(s.metrics.Snapshot()),
	}

	return mcp.NewToolResultText(formatJSON(response)), nil
}

// Helper functions

// newMCPError creates a properly formatted MCP error
func newMCPError(code int, message string, data interface{}) error {
	// MCP errors are returned as regular errors, the framework handles encoding
	return &MCPError{
		Code:    code,
		Message: message,
		Data:    data,
	}
}

// MCPError represents an MCP protocol error
type MCPError struct {
	Code    int
	Message string
	Data    interface{}
}

func (e *MCPError) Error() string {
	return fmt.Sprintf("MCP error %d: %s", e.Code, e.Message)
}

// pageParams extracts the limit/offset pagination arguments shared by the
// list and search tools, with bounds checks.
func pageParams(args map[string]interface{}) (limit, offset int, err error) {
	limit = getIntDefault(args, "limit", defaultPageLimit)
	if limit < 1 || limit > maxPageLimit {
		return 0, 0, newMCPError(ErrorCodeInvalidParams, "limit must be between 1 and 100", map[string]interface{}{
			"param": "limit",
			"value": limit,
		})
	}

	offset = getIntDefault(args, "offset", 0)
	if offset < 0 {
		return 0, 0, newMCPError(ErrorCodeInvalidParams, "offset must not be negative", map[string]interface{}{
			"param": "offset",
			"value": offset,
		})
	}

	return limit, offset, nil
}

// parseSeason maps English and Japanese season names onto the poem season
// enumeration.
func parseSeason(s string) (types.Season, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "spring", "春":
		return types.SeasonSpring, true
	case "summer", "夏":
		return types.SeasonSummer, true
	case "autumn", "fall", "秋":
		return types.SeasonAutumn, true
	case "winter", "冬":
		return types.SeasonWinter, true
	}
	return "", false
}

// int64List extracts an array argument of ids
func int64List(args map[string]interface{}, key string) ([]int64, bool) {
	raw, ok := args[key].([]interface{})
	if !ok {
		return nil, false
	}

	ids := make([]int64, 0, len(raw))
	for _, v := range raw {
		f, ok := v.(float64)
		if !ok {
			return nil, false
		}
		ids = append(ids, int64(f))
	}
	return ids, true
}

// notFound reports whether err is an upstream 404 response
func notFound(err error) bool {
	var statusErr *fetch.StatusError
	return errors.As(err, &statusErr) && statusErr.StatusCode == http.StatusNotFound
}

// getBoolDefault extracts a boolean parameter with a default value
func getBoolDefault(args map[string]interface{}, key string, defaultValue bool) bool {
	if val, ok := args[key].(bool); ok {
		return val
	}
	return defaultValue
}

// getIntDefault extracts an integer parameter with a default value
func getIntDefault(args map[string]interface{}, key string, defaultValue int) int {
	if val, ok := args[key].(float64); ok {
		return int(val)
	}
	if val, ok := args[key].(int); ok {
		return val
	}
	return defaultValue
}

// getFloatDefault extracts a numeric parameter with a default value
func getFloatDefault(args map[string]interface{}, key string, defaultValue float64) float64 {
	if val, ok := args[key].(float64); ok {
		return val
	}
	return defaultValue
}

// getStringDefault extracts a string parameter with a default value
func getStringDefault(args map[string]interface{}, key string, defaultValue string) string {
	if val, ok := args[key].(string); ok {
		return val
	}
	return defaultValue
}
