package types

// Season represents the seasonal classification of a haiku, in the source
// language of the upstream data.
type Season string

const (
	SeasonSpring Season = "春"
	SeasonSummer Season = "夏"
	SeasonAutumn Season = "秋"
	SeasonWinter Season = "冬"
)

// Valid reports whether the season is one of the four recognized values.
func (s Season) Valid() bool {
	switch s {
	case SeasonSpring, SeasonSummer, SeasonAutumn, SeasonWinter:
		return true
	default:
		return false
	}
}

// Seasons lists the recognized season values in calendar order.
func Seasons() []Season {
	return []Season{SeasonSpring, SeasonSummer, SeasonAutumn, SeasonWinter}
}

// Poem represents a haiku text associated with an inscription.
type Poem struct {
	// Identification
	ID int64 `json:"id"`

	// Content
	Text           string  `json:"text"`
	NormalizedText *string `json:"normalized_text"`

	// Seasonal tagging
	Kigo   *string `json:"kigo"`
	Season *Season `json:"season"`

	// Back-reference to the monument whose inscription bears this poem
	MonumentID *int64 `json:"monument_id"`
}

// Validate checks that the poem satisfies the upstream contract.
func (p *Poem) Validate() error {
	if p.ID <= 0 {
		return ErrInvalidPoemID
	}

	if p.Text == "" {
		return ErrEmptyPoemText
	}

	if p.Season != nil && !p.Season.Valid() {
		return ErrInvalidSeason
	}

	return nil
}

// NormalizePoem canonicalizes a freshly decoded poem in place. A season value
// outside the recognized enumeration is cleared so callers see a single
// "absent" representation.
func NormalizePoem(p *Poem) {
	if p.Season != nil && !p.Season.Valid() {
		p.Season = nil
	}
}
