package geo

import (
	"sort"

	"github.com/shikano35/kuhi-api-mcp-server/pkg/types"
)

// Search defaults
const (
	DefaultRadiusMeters = 1000.0
	DefaultMaxResults   = 10
)

// Point is a latitude/longitude pair in degrees.
type Point struct {
	Latitude  float64
	Longitude float64
}

// Validate rejects coordinates outside their valid ranges.
func (p Point) Validate() error {
	if p.Latitude < -90 || p.Latitude > 90 {
		return types.NewDomainValidationError("latitude", types.ErrLatitudeOutOfRange.Error())
	}

	if p.Longitude < -180 || p.Longitude > 180 {
		return types.NewDomainValidationError("longitude", types.ErrLongitudeOutOfRange.Error())
	}

	return nil
}

// ValidateRadius rejects a non-positive search radius.
func ValidateRadius(radius float64) error {
	if radius <= 0 {
		return types.NewDomainValidationError("radius_meters", "must be positive")
	}
	return nil
}

// MonumentDistance pairs a monument with its distance from a search center.
type MonumentDistance struct {
	Monument types.Monument
	Meters   float64
}

// Nearest returns the monuments lying within radius meters of center,
// sorted ascending by distance and truncated to max results. Distance is
// measured from each monument's first location carrying a complete
// coordinate pair; monuments with no such location are skipped. A
// non-positive max selects the default.
func Nearest(monuments []types.Monument, center Point, radius float64, max int) ([]MonumentDistance, error) {
	if err := center.Validate(); err != nil {
		return nil, err
	}

	if err := ValidateRadius(radius); err != nil {
		return nil, err
	}

	if max <= 0 {
		max = DefaultMaxResults
	}

	results := []MonumentDistance{}
	for i := range monuments {
		lat, lon, ok := monuments[i].Coordinate()
		if !ok {
			continue
		}

		d := Haversine(center.Latitude, center.Longitude, lat, lon)
		if d <= radius {
			results = append(results, MonumentDistance{Monument: monuments[i], Meters: d})
		}
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].Meters < results[j].Meters
	})

	if len(results) > max {
		results = results[:max]
	}

	return results, nil
}
