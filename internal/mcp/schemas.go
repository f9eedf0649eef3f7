package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
)

// searchMonumentsTool returns the tool definition for search_monuments
func searchMonumentsTool() mcp.Tool {
	return mcp.Tool{
		Name:        "search_monuments",
		Description: "Search haiku monuments (kuhi) with free-text and field filters",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"query": map[string]interface{}{
					"type":        "string",
					"description": "Free-text query matched across monument records",
				},
				"title_contains": map[string]interface{}{
					"type":        "string",
					"description": "Substring filter on the monument's canonical name",
				},
				"inscription_contains": map[string]interface{}{
					"type":        "string",
					"description": "Substring filter on inscription text",
				},
				"prefecture": map[string]interface{}{
					"type":        "string",
					"description": "Prefecture name (e.g. 三重県)",
				},
				"region": map[string]interface{}{
					"type":        "string",
					"description": "Region name (e.g. 東海)",
				},
				"ordering": map[string]interface{}{
					"type":        "string",
					"description": "Upstream ordering key (e.g. -established_date)",
				},
				"limit": map[string]interface{}{
					"type":        "integer",
					"description": "Maximum number of results to return (1-100)",
					"default":     10,
					"minimum":     1,
					"maximum":     100,
				},
				"offset": map[string]interface{}{
					"type":        "integer",
					"description": "Number of results to skip for pagination",
					"default":     0,
					"minimum":     0,
				},
			},
		},
	}
}

// getMonumentTool returns the tool definition for get_monument
func getMonumentTool() mcp.Tool {
	return mcp.Tool{
		Name:        "get_monument",
		Description: "Fetch one haiku monument by id with its full embedded detail (inscriptions, poems, poets, locations, sources)",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"id": map[string]interface{}{
					"type":        "integer",
					"description": "Monument id",
					"minimum":     1,
				},
			},
			Required: []string{"id"},
		},
	}
}

// searchMonumentsByPoetTool returns the tool definition for search_monuments_by_poet
func searchMonumentsByPoetTool() mcp.Tool {
	return mcp.Tool{
		Name:        "search_monuments_by_poet",
		Description: "Find monuments attributed to a poet by exact display name (e.g. 松尾芭蕉)",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"poet_name": map[string]interface{}{
					"type":        "string",
					"description": "Exact poet display name",
				},
				"limit": map[string]interface{}{
					"type":        "integer",
					"description": "Maximum number of monuments to return (1-100)",
					"default":     10,
					"minimum":     1,
					"maximum":     100,
				},
			},
			Required: []string{"poet_name"},
		},
	}
}

// searchMonumentsNearTool returns the tool definition for search_monuments_near
func searchMonumentsNearTool() mcp.Tool {
	return mcp.Tool{
		Name:        "search_monuments_near",
		Description: "Find monuments within a radius of a coordinate or a named place, sorted by distance",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"latitude": map[string]interface{}{
					"type":        "number",
					"description": "Center latitude in decimal degrees (-90 to 90)",
					"minimum":     -90,
					"maximum":     90,
				},
				"longitude": map[string]interface{}{
					"type":        "number",
					"description": "Center longitude in decimal degrees (-180 to 180)",
					"minimum":     -180,
					"maximum":     180,
				},
				"place": map[string]interface{}{
					"type":        "string",
					"description": "Place name resolved against known monument locations; used when latitude/longitude are omitted",
				},
				"radius_meters": map[string]interface{}{
					"type":        "number",
					"description": "Search radius in meters",
					"default":     1000,
				},
				"max_results": map[string]interface{}{
					"type":        "integer",
					"description": "Maximum number of monuments to return (1-100)",
					"default":     10,
					"minimum":     1,
					"maximum":     100,
				},
			},
		},
	}
}

// searchMonumentsByTextTool returns the tool definition for search_monuments_by_text
func searchMonumentsByTextTool() mcp.Tool {
	return mcp.Tool{
		Name:        "search_monuments_by_text",
		Description: "Search monuments by free text, matching poem text and inscription text with extracted terms",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"text": map[string]interface{}{
					"type":        "string",
					"description": "Free text to search for (haiku fragment, kigo, place, poet)",
				},
				"limit": map[string]interface{}{
					"type":        "integer",
					"description": "Maximum number of monuments to return (1-100)",
					"default":     10,
					"minimum":     1,
					"maximum":     100,
				},
			},
			Required: []string{"text"},
		},
	}
}

// listPoetsTool returns the tool definition for list_poets
func listPoetsTool() mcp.Tool {
	return mcp.Tool{
		Name:        "list_poets",
		Description: "List haiku poets with optional name and biography filters",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"query": map[string]interface{}{
					"type":        "string",
					"description": "Free-text query matched across poet records",
				},
				"name_contains": map[string]interface{}{
					"type":        "string",
					"description": "Substring filter on the poet's display name",
				},
				"biography_contains": map[string]interface{}{
					"type":        "string",
					"description": "Substring filter on the poet's biography",
				},
				"ordering": map[string]interface{}{
					"type":        "string",
					"description": "Upstream ordering key (e.g. name)",
				},
				"limit": map[string]interface{}{
					"type":        "integer",
					"description": "Maximum number of poets to return (1-100)",
					"default":     10,
					"minimum":     1,
					"maximum":     100,
				},
				"offset": map[string]interface{}{
					"type":        "integer",
					"description": "Number of results to skip for pagination",
					"default":     0,
					"minimum":     0,
				},
			},
		},
	}
}

// getPoetTool returns the tool definition for get_poet
func getPoetTool() mcp.Tool {
	return mcp.Tool{
		Name:        "get_poet",
		Description: "Fetch one poet by id, with the monuments bearing their poems",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"id": map[string]interface{}{
					"type":        "integer",
					"description": "Poet id",
					"minimum":     1,
				},
				"include_monuments": map[string]interface{}{
					"type":        "boolean",
					"description": "If true, include the poet's monuments in the response",
					"default":     true,
				},
			},
			Required: []string{"id"},
		},
	}
}

// listLocationsTool returns the tool definition for list_locations
func listLocationsTool() mcp.Tool {
	return mcp.Tool{
		Name:        "list_locations",
		Description: "List monument locations with optional administrative-area filters",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"prefecture": map[string]interface{}{
					"type":        "string",
					"description": "Prefecture name (e.g. 三重県)",
				},
				"region": map[string]interface{}{
					"type":        "string",
					"description": "Region name (e.g. 東海)",
				},
				"municipality_contains": map[string]interface{}{
					"type":        "string",
					"description": "Substring filter on the municipality name",
				},
				"ordering": map[string]interface{}{
					"type":        "string",
					"description": "Upstream ordering key",
				},
				"limit": map[string]interface{}{
					"type":        "integer",
					"description": "Maximum number of locations to return (1-100)",
					"default":     10,
					"minimum":     1,
					"maximum":     100,
				},
				"offset": map[string]interface{}{
					"type":        "integer",
					"description": "Number of results to skip for pagination",
					"default":     0,
					"minimum":     0,
				},
			},
		},
	}
}

// listSourcesTool returns the tool definition for list_sources
func listSourcesTool() mcp.Tool {
	return mcp.Tool{
		Name:        "list_sources",
		Description: "List bibliographic sources documenting the monuments",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"title_contains": map[string]interface{}{
					"type":        "string",
					"description": "Substring filter on the source title",
				},
				"ordering": map[string]interface{}{
					"type":        "string",
					"description": "Upstream ordering key",
				},
				"limit": map[string]interface{}{
					"type":        "integer",
					"description": "Maximum number of sources to return (1-100)",
					"default":     10,
					"minimum":     1,
					"maximum":     100,
				},
				"offset": map[string]interface{}{
					"type":        "integer",
					"description": "Number of results to skip for pagination",
					"default":     0,
					"minimum":     0,
				},
			},
		},
	}
}

// getPoemsBySeasonTool returns the tool definition for get_poems_by_season
func getPoemsBySeasonTool() mcp.Tool {
	return mcp.Tool{
		Name:        "get_poems_by_season",
		Description: "List haiku poems tagged with a season, optionally filtered by kigo (season word)",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"season": map[string]interface{}{
					"type":        "string",
					"description": "Season tag, English or Japanese",
					"enum":        []string{"spring", "summer", "autumn", "winter", "春", "夏", "秋", "冬"},
				},
				"kigo_contains": map[string]interface{}{
					"type":        "string",
					"description": "Substring filter on the poem's kigo",
				},
				"limit": map[string]interface{}{
					"type":        "integer",
					"description": "Maximum number of poems to return (1-100)",
					"default":     10,
					"minimum":     1,
					"maximum":     100,
				},
				"offset": map[string]interface{}{
					"type":        "integer",
					"description": "Number of results to skip for pagination",
					"default":     0,
					"minimum":     0,
				},
			},
			Required: []string{"season"},
		},
	}
}

// getStatisticsTool returns the tool definition for get_statistics
func getStatisticsTool() mcp.Tool {
	return mcp.Tool{
		Name:        "get_statistics",
		Description: "Aggregate corpus statistics: entity counts plus monuments per prefecture, per poet, and poems per season",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}
}

// compareMonumentsTool returns the tool definition for compare_monuments
func compareMonumentsTool() mcp.Tool {
	return mcp.Tool{
		Name:        "compare_monuments",
		Description: "Fetch 2 to 5 monuments side by side; a missing monument is reported per item, not as a failure",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"ids": map[string]interface{}{
					"type":        "array",
					"description": "Monument ids to compare (2-5)",
					"items": map[string]interface{}{
						"type":    "integer",
						"minimum": 1,
					},
					"minItems": 2,
					"maxItems": 5,
				},
			},
			Required: []string{"ids"},
		},
	}
}

// exportGeoJSONTool returns the tool definition for export_geojson
func exportGeoJSONTool() mcp.Tool {
	return mcp.Tool{
		Name:        "export_geojson",
		Description: "Export monuments as a GeoJSON FeatureCollection of Point features, by explicit ids or by area filter",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"ids": map[string]interface{}{
					"type":        "array",
					"description": "Explicit monument ids to export; a requested monument whose location records carry no coordinates fails the export",
					"items": map[string]interface{}{
						"type":    "integer",
						"minimum": 1,
					},
				},
				"prefecture": map[string]interface{}{
					"type":        "string",
					"description": "Prefecture filter, used when ids are omitted",
				},
				"region": map[string]interface{}{
					"type":        "string",
					"description": "Region filter, used when ids are omitted",
				},
				"max_results": map[string]interface{}{
					"type":        "integer",
					"description": "Maximum number of monuments to export in filter mode (1-1000)",
					"default":     100,
					"minimum":     1,
					"maximum":     1000,
				},
			},
		},
	}
}

// getStatusTool returns the tool definition for get_status
func getStatusTool() mcp.Tool {
	return mcp.Tool{
		Name:        "get_status",
		Description: "Report server version, upstream base URL, cache statistics, request metrics, and health",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}
}
