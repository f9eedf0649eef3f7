package types

// Poet represents a haiku poet attributed to one or more monuments.
type Poet struct {
	// Identification
	ID   int64  `json:"id"`
	Name string `json:"name"`

	// Biography (all optional upstream)
	NameKana  *string `json:"name_kana"`
	Biography *string `json:"biography"`
	BirthYear *int    `json:"birth_year"`
	DeathYear *int    `json:"death_year"`

	// Links
	LinkURL  *string `json:"link_url"`
	ImageURL *string `json:"image_url"`
}

// Validate checks that the poet satisfies the upstream contract.
func (p *Poet) Validate() error {
	if p.ID <= 0 {
		return ErrInvalidPoetID
	}

	if p.Name == "" {
		return ErrMissingPoetName
	}

	return nil
}

// NormalizePoet canonicalizes a freshly decoded poet in place. Optional
// fields the upstream sends as empty strings collapse to nil, the single
// "absent" representation.
func NormalizePoet(p *Poet) {
	p.NameKana = nilIfEmpty(p.NameKana)
	p.Biography = nilIfEmpty(p.Biography)
	p.LinkURL = nilIfEmpty(p.LinkURL)
	p.ImageURL = nilIfEmpty(p.ImageURL)
}

// nilIfEmpty collapses a pointer to the empty string into nil so optional
// text fields have exactly one absent representation.
func nilIfEmpty(s *string) *string {
	if s != nil && *s == "" {
		return nil
	}
	return s
}
