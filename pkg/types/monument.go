package types

// Monument represents a haiku monument (kuhi) record from the upstream API.
// Embedded collections are never nil after normalization: a null value, a
// missing key, and an empty array in the upstream payload are all equivalent
// to "no data available".
type Monument struct {
	// Identification
	ID            int64   `json:"id"`
	CanonicalName string  `json:"canonical_name"`
	CanonicalURI  *string `json:"canonical_uri"`

	// Physical attributes (unknown upstream values arrive as null)
	MonumentType *string `json:"monument_type"`
	Material     *string `json:"material"`

	// Lifecycle metadata
	EstablishedDate *string `json:"established_date"`
	Commentary      *string `json:"commentary"`

	// Embedded collections
	Inscriptions []Inscription `json:"inscriptions"`
	Locations    []Location    `json:"locations"`
	Poets        []Poet        `json:"poets"`
	Sources      []Source      `json:"sources"`
	Events       []Event       `json:"events"`
	Media        []Media       `json:"media"`
}

// Event represents a recorded event in a monument's history, such as its
// erection or a restoration.
type Event struct {
	ID         int64   `json:"id"`
	MonumentID int64   `json:"monument_id"`
	EventType  *string `json:"event_type"`
	Interval   *string `json:"interval"`
	Actor      *string `json:"actor"`
	Source     *string `json:"source"`
}

// Media represents a photograph or other media record attached to a monument.
type Media struct {
	ID           int64   `json:"id"`
	MonumentID   int64   `json:"monument_id"`
	MediaType    *string `json:"media_type"`
	URL          string  `json:"url"`
	CapturedAt   *string `json:"captured_at"`
	Photographer *string `json:"photographer"`
}

// Validate checks that the monument satisfies the upstream contract.
func (m *Monument) Validate() error {
	if m.ID <= 0 {
		return ErrInvalidMonumentID
	}

	if m.CanonicalName == "" {
		return ErrMissingCanonicalName
	}

	return nil
}

// PrimaryLocation returns the monument's first location record, or nil when
// the monument has none.
func (m *Monument) PrimaryLocation() *Location {
	if len(m.Locations) == 0 {
		return nil
	}
	return &m.Locations[0]
}

// Coordinate returns the first location carrying a complete coordinate pair.
// The boolean reports whether any such location exists.
func (m *Monument) Coordinate() (lat, lon float64, ok bool) {
	for i := range m.Locations {
		if m.Locations[i].HasCoordinates() {
			return *m.Locations[i].Latitude, *m.Locations[i].Longitude, true
		}
	}
	return 0, 0, false
}

// NormalizeMonument canonicalizes a freshly decoded monument in place.
// All embedded collections become non-nil and their elements are normalized
// recursively; empty-string optionals collapse to nil.
func NormalizeMonument(m *Monument) {
	m.CanonicalURI = nilIfEmpty(m.CanonicalURI)
	m.MonumentType = nilIfEmpty(m.MonumentType)
	m.Material = nilIfEmpty(m.Material)
	m.EstablishedDate = nilIfEmpty(m.EstablishedDate)
	m.Commentary = nilIfEmpty(m.Commentary)

	if m.Inscriptions == nil {
		m.Inscriptions = []Inscription{}
	}
	for i := range m.Inscriptions {
		NormalizeInscription(&m.Inscriptions[i])
	}

	if m.Locations == nil {
		m.Locations = []Location{}
	}
	for i := range m.Locations {
		NormalizeLocation(&m.Locations[i])
	}

	if m.Poets == nil {
		m.Poets = []Poet{}
	}
	for i := range m.Poets {
		NormalizePoet(&m.Poets[i])
	}

	if m.Sources == nil {
		m.Sources = []Source{}
	}
	for i := range m.Sources {
		NormalizeSource(&m.Sources[i])
	}

	if m.Events == nil {
		m.Events = []Event{}
	}

	if m.Media == nil {
		m.Media = []Media{}
	}
}
