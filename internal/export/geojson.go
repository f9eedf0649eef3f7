package export

import (
	"fmt"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/shikano35/kuhi-api-mcp-server/pkg/types"
)

const inscriptionExcerptRunes = 80

// MissingCoordinateError reports a strict-mode export of a monument whose
// location records exist but none carries a usable coordinate pair.
type MissingCoordinateError struct {
	MonumentID int64
	Name       string
}

func (e *MissingCoordinateError) Error() string {
	return fmt.Sprintf("monument %d (%s) has locations but no coordinates", e.MonumentID, e.Name)
}

// FeatureCollection converts monuments into a GeoJSON FeatureCollection of
// Point features. Monuments without a usable coordinate pair are excluded.
// In strict mode, used when the caller requested specific monuments, a
// monument whose location records exist but hold no coordinates fails
// loudly instead of being silently skipped. A monument with no location
// records at all is excluded in either mode, since no coordinate was ever
// promised for it.
func FeatureCollection(monuments []types.Monument, strict bool) (*geojson.FeatureCollection, error) {
	fc := geojson.NewFeatureCollection()

	for i := range monuments {
		m := &monuments[i]

		lat, lon, ok := m.Coordinate()
		if !ok {
			if strict && len(m.Locations) > 0 {
				return nil, &MissingCoordinateError{MonumentID: m.ID, Name: m.CanonicalName}
			}
			continue
		}

		feature := geojson.NewFeature(orb.Point{lon, lat})
		feature.ID = m.ID
		feature.Properties = properties(m)
		fc.Append(feature)
	}

	return fc, nil
}

func properties(m *types.Monument) geojson.Properties {
	props := geojson.Properties{
		"id":   m.ID,
		"name": m.CanonicalName,
	}

	if loc := m.PrimaryLocation(); loc != nil {
		if loc.Prefecture != nil {
			props["prefecture"] = *loc.Prefecture
		}
		if loc.Region != nil {
			props["region"] = *loc.Region
		}
	}

	if len(m.Poets) > 0 {
		names := make([]string, 0, len(m.Poets))
		for _, poet := range m.Poets {
			names = append(names, poet.Name)
		}
		props["poets"] = strings.Join(names, ", ")
	}

	if len(m.Inscriptions) > 0 && m.Inscriptions[0].OriginalText != "" {
		props["inscription"] = excerpt(m.Inscriptions[0].OriginalText, inscriptionExcerptRunes)
	}

	return props
}

// excerpt truncates s to at most max runes.
func excerpt(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}
