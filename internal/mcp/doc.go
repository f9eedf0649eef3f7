// Package mcp implements the Model Context Protocol (MCP) server exposing
// the kuhi.jp haiku monument API as agent-callable tools.
//
// The server registers fourteen tools:
//   - search_monuments: free-text and field-filtered monument search
//   - get_monument: one monument by id with full embedded detail
//   - search_monuments_by_poet: monuments attributed to an exactly-named poet
//   - search_monuments_near: radius search around a coordinate or place name
//   - search_monuments_by_text: term-extraction search over poems and inscriptions
//   - list_poets, get_poet, list_locations, list_sources: entity listings
//   - get_poems_by_season: poems filtered by the season enumeration
//   - get_statistics: corpus-wide aggregate counts
//   - compare_monuments: 2-5 monuments side by side with per-item found flags
//   - export_geojson: GeoJSON FeatureCollection of monument coordinates
//   - get_status: server version, cache statistics, request metrics, health
//
// # Protocol Overview
//
// MCP is a JSON-RPC 2.0 protocol, served over stdio by default:
//
//	Client → Server: {"method": "tools/call", "params": {...}}
//	Server → Client: {"result": {...}}
//
// When an HTTP listen address is configured the same server is exposed over
// the Streamable HTTP transport instead.
//
// # Example: search_monuments_near
//
//	Request:
//	{
//	  "name": "search_monuments_near",
//	  "arguments": {
//	    "latitude": 34.967,
//	    "longitude": 136.626,
//	    "radius_meters": 2000,
//	    "max_results": 5
//	  }
//	}
//
//	Response (text content, JSON-formatted):
//	{
//	  "center": {"latitude": 34.967, "longitude": 136.626},
//	  "radius_meters": 2000,
//	  "count": 1,
//	  "monuments": [
//	    {
//	      "id": 12,
//	      "name": "芭蕉翁生誕地句碑",
//	      "prefecture": "三重県",
//	      "poets": ["松尾芭蕉"],
//	      "distance_meters": 412.7
//	    }
//	  ]
//	}
//
// # MCP Client Configuration
//
// Configure in an MCP client's settings:
//
//	{
//	  "mcpServers": {
//	    "kuhi": {
//	      "command": "/usr/local/bin/kuhi-mcp",
//	      "env": {
//	        "KUHI_API_BASE_URL": "https://api.kuhi.jp"
//	      }
//	    }
//	  }
//	}
//
// # Error Handling
//
// Malformed arguments (missing required parameters, out-of-range limits)
// are rejected as JSON-RPC errors:
//   - -32602: Invalid params
//   - -32603: Internal error
//
// Domain failures (upstream unreachable, monument not found, unresolvable
// place name) never become protocol errors: handlers return an error-flagged
// text result so that the agent sees a readable message and the call chain
// stays alive.
//
// # Logging
//
// All logging goes to stderr; stdout is reserved for the MCP protocol.
package mcp
