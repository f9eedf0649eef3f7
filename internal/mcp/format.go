package mcp

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/shikano35/kuhi-api-mcp-server/internal/cache"
	"github.com/shikano35/kuhi-api-mcp-server/internal/metrics"
	"github.com/shikano35/kuhi-api-mcp-server/pkg/types"
)

// summaryExcerptRunes bounds the inscription excerpt carried in list results.
const summaryExcerptRunes = 120

// formatJSON formats a map as indented JSON
func formatJSON(data map[string]interface{}) string {
	bytes, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Sprintf("%v", data)
	}
	return string(bytes)
}

// monumentSummary flattens a monument into the compact shape used by list
// and search results. The full record stays available via get_monument.
func monumentSummary(m *types.Monument) map[string]interface{} {
	summary := map[string]interface{}{
		"id":   m.ID,
		"name": m.CanonicalName,
	}

	if m.MonumentType != nil {
		summary["monument_type"] = *m.MonumentType
	}
	if m.EstablishedDate != nil {
		summary["established_date"] = *m.EstablishedDate
	}

	if loc := m.PrimaryLocation(); loc != nil {
		if loc.Prefecture != nil {
			summary["prefecture"] = *loc.Prefecture
		}
		if loc.Municipality != nil {
			summary["municipality"] = *loc.Municipality
		}
	}
	if lat, lon, ok := m.Coordinate(); ok {
		summary["latitude"] = lat
		summary["longitude"] = lon
	}

	if names := poetNames(m.Poets); len(names) > 0 {
		summary["poets"] = names
	}

	if len(m.Inscriptions) > 0 {
		summary["inscription"] = excerpt(m.Inscriptions[0].OriginalText, summaryExcerptRunes)
	}

	return summary
}

func monumentSummaries(monuments []types.Monument) []map[string]interface{} {
	summaries := make([]map[string]interface{}, 0, len(monuments))
	for i := range monuments {
		summaries = append(summaries, monumentSummary(&monuments[i]))
	}
	return summaries
}

func poetNames(poets []types.Poet) []string {
	names := make([]string, 0, len(poets))
	for _, p := range poets {
		names = append(names, p.Name)
	}
	return names
}

// poetRefs flattens poets to id/name pairs
func poetRefs(poets []types.Poet) []map[string]interface{} {
	refs := make([]map[string]interface{}, 0, len(poets))
	for _, p := range poets {
		refs = append(refs, map[string]interface{}{
			"id":   p.ID,
			"name": p.Name,
		})
	}
	return refs
}

// describeLocation renders a location's administrative hierarchy for
// display, broadest part first.
func describeLocation(loc *types.Location) string {
	parts := []string{}
	for _, p := range []*string{loc.Prefecture, loc.Municipality, loc.PlaceName} {
		if p != nil && *p != "" {
			parts = append(parts, *p)
		}
	}
	return strings.Join(parts, " ")
}

// cacheStatsMap renders cache statistics for tool output
func cacheStatsMap(s cache.Stats) map[string]interface{} {
	return map[string]interface{}{
		"entries":   s.Entries,
		"bytes":     s.Bytes,
		"max_bytes": s.MaxBytes,
		"hits":      s.Hits,
		"misses":    s.Misses,
		"evictions": s.Evictions,
		"expired":   s.Expired,
		"hit_rate":  fmt.Sprintf("%.2f", s.HitRate()),
	}
}

// requestMetricsMap renders the validation metrics snapshot for tool output
func requestMetricsMap(snap metrics.Snapshot) map[string]interface{} {
	out := map[string]interface{}{
		"total":                snap.TotalRequests,
		"validation_failures":  snap.Failures,
		"failures_by_endpoint": snap.ByEndpoint,
	}
	if !snap.LastFailure.IsZero() {
		out["last_failure"] = snap.LastFailure.Format(time.RFC3339)
	}
	return out
}

// excerpt truncates s to at most limit runes, appending an ellipsis when
// shortened.
func excerpt(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}
