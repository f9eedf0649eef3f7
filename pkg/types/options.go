package types

import (
	"net/url"
	"strconv"
)

// MonumentOptions holds the recognized query filters for the monuments
// endpoints. Zero values are omitted from the query string.
type MonumentOptions struct {
	// Pagination
	Limit  int
	Offset int

	// Free text
	Query string

	// Field-contains filters
	TitleContains       string
	InscriptionContains string

	// Administrative filters
	Prefecture string
	Region     string

	Ordering string
}

// Validate rejects caller-supplied values the upstream would misinterpret.
func (o MonumentOptions) Validate() error {
	return validatePage(o.Limit, o.Offset)
}

// Values converts the options to query parameters. All values are coerced to
// strings; empty and zero values are omitted.
func (o MonumentOptions) Values() url.Values {
	v := url.Values{}
	setIntParam(v, "limit", o.Limit)
	setIntParam(v, "offset", o.Offset)
	setStringParam(v, "q", o.Query)
	setStringParam(v, "title_contains", o.TitleContains)
	setStringParam(v, "inscription_contains", o.InscriptionContains)
	setStringParam(v, "prefecture", o.Prefecture)
	setStringParam(v, "region", o.Region)
	setStringParam(v, "ordering", o.Ordering)
	return v
}

// PoetOptions holds the recognized query filters for the poets endpoints.
type PoetOptions struct {
	Limit  int
	Offset int

	Query             string
	NameContains      string
	BiographyContains string

	Ordering string
}

// Validate rejects caller-supplied values the upstream would misinterpret.
func (o PoetOptions) Validate() error {
	return validatePage(o.Limit, o.Offset)
}

// Values converts the options to query parameters.
func (o PoetOptions) Values() url.Values {
	v := url.Values{}
	setIntParam(v, "limit", o.Limit)
	setIntParam(v, "offset", o.Offset)
	setStringParam(v, "q", o.Query)
	setStringParam(v, "name_contains", o.NameContains)
	setStringParam(v, "biography_contains", o.BiographyContains)
	setStringParam(v, "ordering", o.Ordering)
	return v
}

// LocationOptions holds the recognized query filters for the locations
// endpoint.
type LocationOptions struct {
	Limit  int
	Offset int

	Prefecture           string
	Region               string
	MunicipalityContains string

	Ordering string
}

// Validate rejects caller-supplied values the upstream would misinterpret.
func (o LocationOptions) Validate() error {
	return validatePage(o.Limit, o.Offset)
}

// Values converts the options to query parameters.
func (o LocationOptions) Values() url.Values {
	v := url.Values{}
	setIntParam(v, "limit", o.Limit)
	setIntParam(v, "offset", o.Offset)
	setStringParam(v, "prefecture", o.Prefecture)
	setStringParam(v, "region", o.Region)
	setStringParam(v, "municipality_contains", o.MunicipalityContains)
	setStringParam(v, "ordering", o.Ordering)
	return v
}

// SourceOptions holds the recognized query filters for the sources endpoint.
type SourceOptions struct {
	Limit  int
	Offset int

	TitleContains string

	Ordering string
}

// Validate rejects caller-supplied values the upstream would misinterpret.
func (o SourceOptions) Validate() error {
	return validatePage(o.Limit, o.Offset)
}

// Values converts the options to query parameters.
func (o SourceOptions) Values() url.Values {
	v := url.Values{}
	setIntParam(v, "limit", o.Limit)
	setIntParam(v, "offset", o.Offset)
	setStringParam(v, "title_contains", o.TitleContains)
	setStringParam(v, "ordering", o.Ordering)
	return v
}

// PoemOptions holds the recognized query filters for the poems endpoint.
type PoemOptions struct {
	Limit  int
	Offset int

	Query        string
	Season       Season
	KigoContains string

	Ordering string
}

// Validate rejects caller-supplied values the upstream would misinterpret.
func (o PoemOptions) Validate() error {
	if err := validatePage(o.Limit, o.Offset); err != nil {
		return err
	}

	if o.Season != "" && !o.Season.Valid() {
		return NewDomainValidationError("season", ErrInvalidSeason.Error())
	}

	return nil
}

// Values converts the options to query parameters.
func (o PoemOptions) Values() url.Values {
	v := url.Values{}
	setIntParam(v, "limit", o.Limit)
	setIntParam(v, "offset", o.Offset)
	setStringParam(v, "q", o.Query)
	setStringParam(v, "season", string(o.Season))
	setStringParam(v, "kigo_contains", o.KigoContains)
	setStringParam(v, "ordering", o.Ordering)
	return v
}

// InscriptionOptions holds the recognized query filters for the inscriptions
// endpoint.
type InscriptionOptions struct {
	Limit  int
	Offset int

	Ordering string
}

// Validate rejects caller-supplied values the upstream would misinterpret.
func (o InscriptionOptions) Validate() error {
	return validatePage(o.Limit, o.Offset)
}

// Values converts the options to query parameters.
func (o InscriptionOptions) Values() url.Values {
	v := url.Values{}
	setIntParam(v, "limit", o.Limit)
	setIntParam(v, "offset", o.Offset)
	setStringParam(v, "ordering", o.Ordering)
	return v
}

func validatePage(limit, offset int) error {
	if limit < 0 {
		return NewDomainValidationError("limit", "must not be negative")
	}

	if offset < 0 {
		return NewDomainValidationError("offset", "must not be negative")
	}

	return nil
}

func setIntParam(v url.Values, key string, value int) {
	if value > 0 {
		v.Set(key, strconv.Itoa(value))
	}
}

func setStringParam(v url.Values, key, value string) {
	if value != "" {
		v.Set(key, value)
	}
}
