package types

// Source represents a bibliographic citation backing a monument record.
type Source struct {
	// Identification
	ID    int64  `json:"id"`
	Title string `json:"title"`

	// Citation metadata (all optional)
	Author      *string `json:"author"`
	Publisher   *string `json:"publisher"`
	SourceYear  *int    `json:"source_year"`
	URL         *string `json:"url"`
	Description *string `json:"description"`
}

// Validate checks that the source satisfies the upstream contract.
func (s *Source) Validate() error {
	if s.ID <= 0 {
		return ErrInvalidSourceID
	}

	if s.Title == "" {
		return ErrMissingSourceTitle
	}

	return nil
}

// NormalizeSource canonicalizes a freshly decoded source in place.
func NormalizeSource(s *Source) {
	s.Author = nilIfEmpty(s.Author)
	s.Publisher = nilIfEmpty(s.Publisher)
	s.URL = nilIfEmpty(s.URL)
	s.Description = nilIfEmpty(s.Description)
}
