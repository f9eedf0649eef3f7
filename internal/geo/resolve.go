package geo

import (
	"strings"

	"github.com/shikano35/kuhi-api-mcp-server/pkg/types"
)

// Place resolution scoring weights. Heuristic defaults rather than values
// derived from a labeled dataset; a place-name match alone outranks every
// combination of the weaker matches.
const (
	scorePlaceName    = 8
	scoreAddress      = 4
	scoreMunicipality = 2
	scorePrefecture   = 1
)

// ResolvePlace finds the location best matching a free-text place name by
// substring-overlap scoring: place-name containment ranks above address,
// municipality, then prefecture substrings. Only locations carrying a
// complete coordinate pair are considered, since the result serves as a
// search center. The boolean reports whether any candidate scored above
// zero.
func ResolvePlace(locations []types.Location, query string) (*types.Location, bool) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, false
	}

	best := -1
	bestScore := 0
	for i := range locations {
		if !locations[i].HasCoordinates() {
			continue
		}

		score := placeScore(&locations[i], query)
		if score > bestScore {
			best = i
			bestScore = score
		}
	}

	if best < 0 {
		return nil, false
	}

	return &locations[best], true
}

func placeScore(l *types.Location, query string) int {
	score := 0

	if l.PlaceName != nil && containsEitherWay(*l.PlaceName, query) {
		score += scorePlaceName
	}

	if l.Address != nil && strings.Contains(*l.Address, query) {
		score += scoreAddress
	}

	if l.Municipality != nil && strings.Contains(*l.Municipality, query) {
		score += scoreMunicipality
	}

	if l.Prefecture != nil && strings.Contains(*l.Prefecture, query) {
		score += scorePrefecture
	}

	return score
}

// containsEitherWay reports containment in either direction: the query may
// name the place exactly or embed it, as in "中尊寺の句碑" naming "中尊寺".
func containsEitherWay(field, query string) bool {
	return strings.Contains(field, query) || strings.Contains(query, field)
}
