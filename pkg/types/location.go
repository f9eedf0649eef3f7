package types

// Location represents the physical placement of a monument. Latitude and
// longitude are independently nullable: a location may carry a name and
// address but no geocoordinate.
type Location struct {
	// Identification
	ID int64 `json:"id"`

	// Administrative hierarchy (all optional)
	Region       *string `json:"region"`
	Prefecture   *string `json:"prefecture"`
	Municipality *string `json:"municipality"`
	Address      *string `json:"address"`
	PlaceName    *string `json:"place_name"`

	// Geocoordinate
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

// Validate checks that the location satisfies the upstream contract.
func (l *Location) Validate() error {
	if l.ID <= 0 {
		return ErrInvalidLocationID
	}

	if l.Latitude != nil && (*l.Latitude < -90 || *l.Latitude > 90) {
		return ErrLatitudeOutOfRange
	}

	if l.Longitude != nil && (*l.Longitude < -180 || *l.Longitude > 180) {
		return ErrLongitudeOutOfRange
	}

	return nil
}

// HasCoordinates reports whether the location carries a complete coordinate
// pair.
func (l *Location) HasCoordinates() bool {
	return l.Latitude != nil && l.Longitude != nil
}

// NormalizeLocation canonicalizes a freshly decoded location in place.
func NormalizeLocation(l *Location) {
	l.Region = nilIfEmpty(l.Region)
	l.Prefecture = nilIfEmpty(l.Prefecture)
	l.Municipality = nilIfEmpty(l.Municipality)
	l.Address = nilIfEmpty(l.Address)
	l.PlaceName = nilIfEmpty(l.PlaceName)
}
