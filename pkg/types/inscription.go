package types

// DefaultSide is the inscription side assumed when the upstream record
// omits one.
const DefaultSide = "front"

// Inscription represents the carved text on one face of a monument.
type Inscription struct {
	// Identification
	ID         int64 `json:"id"`
	MonumentID int64 `json:"monument_id"`

	// Content
	Side            string  `json:"side"`
	OriginalText    string  `json:"original_text"`
	Transliteration *string `json:"transliteration"`
	Reading         *string `json:"reading"`
	Language        *string `json:"language"`
	Notes           *string `json:"notes"`

	// Embedded collection
	Poems []Poem `json:"poems"`
}

// Validate checks that the inscription satisfies the upstream contract.
func (i *Inscription) Validate() error {
	if i.ID <= 0 {
		return ErrInvalidInscriptionID
	}

	return nil
}

// NormalizeInscription canonicalizes a freshly decoded inscription in place:
// an absent side becomes DefaultSide and the embedded poem collection becomes
// non-nil with each poem normalized.
func NormalizeInscription(i *Inscription) {
	if i.Side == "" {
		i.Side = DefaultSide
	}

	i.Transliteration = nilIfEmpty(i.Transliteration)
	i.Reading = nilIfEmpty(i.Reading)
	i.Language = nilIfEmpty(i.Language)
	i.Notes = nilIfEmpty(i.Notes)

	if i.Poems == nil {
		i.Poems = []Poem{}
	}
	for p := range i.Poems {
		NormalizePoem(&i.Poems[p])
	}
}
