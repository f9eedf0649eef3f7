package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMonumentOptionsValues(t *testing.T) {
	t.Run("zero options produce no params", func(t *testing.T) {
		v := MonumentOptions{}.Values()
		assert.Empty(t, v.Encode())
	})

	t.Run("all fields use the upstream keys", func(t *testing.T) {
		v := MonumentOptions{
			Limit:               20,
			Offset:              40,
			Query:               "芭蕉",
			TitleContains:       "句碑",
			InscriptionContains: "古池",
			Prefecture:          "三重県",
			Region:              "東海",
			Ordering:            "-created_at",
		}.Values()

		assert.Equal(t, "20", v.Get("limit"))
		assert.Equal(t, "40", v.Get("offset"))
		assert.Equal(t, "芭蕉", v.Get("q"))
		assert.Equal(t, "句碑", v.Get("title_contains"))
		assert.Equal(t, "古池", v.Get("inscription_contains"))
		assert.Equal(t, "三重県", v.Get("prefecture"))
		assert.Equal(t, "東海", v.Get("region"))
		assert.Equal(t, "-created_at", v.Get("ordering"))
	})

	t.Run("partial options omit the rest", func(t *testing.T) {
		v := MonumentOptions{Limit: 10, Prefecture: "愛知県"}.Values()

		assert.Equal(t, "10", v.Get("limit"))
		assert.Equal(t, "愛知県", v.Get("prefecture"))
		assert.False(t, v.Has("offset"))
		assert.False(t, v.Has("q"))
		assert.False(t, v.Has("ordering"))
	})
}

func TestPoetOptionsValues(t *testing.T) {
	v := PoetOptions{
		Limit:             5,
		Query:             "蕪村",
		NameContains:      "与謝",
		BiographyContains: "江戸",
		Ordering:          "name",
	}.Values()

	assert.Equal(t, "5", v.Get("limit"))
	assert.Equal(t, "蕪村", v.Get("q"))
	assert.Equal(t, "与謝", v.Get("name_contains"))
	assert.Equal(t, "江戸", v.Get("biography_contains"))
	assert.Equal(t, "name", v.Get("ordering"))
	assert.False(t, v.Has("offset"))
}

func TestLocationOptionsValues(t *testing.T) {
	v := LocationOptions{
		Prefecture:           "長野県",
		Region:               "中部",
		MunicipalityContains: "松本",
	}.Values()

	assert.Equal(t, "長野県", v.Get("prefecture"))
	assert.Equal(t, "中部", v.Get("region"))
	assert.Equal(t, "松本", v.Get("municipality_contains"))
}

func TestPoemOptionsValues(t *testing.T) {
	v := PoemOptions{Season: SeasonAutumn, KigoContains: "月"}.Values()

	assert.Equal(t, string(SeasonAutumn), v.Get("season"))
	assert.Equal(t, "月", v.Get("kigo_contains"))
	assert.False(t, v.Has("q"))
}

func TestOptionsValidatePage(t *testing.T) {
	tests := []struct {
		name      string
		limit     int
		offset    int
		wantField string
	}{
		{"both zero", 0, 0, ""},
		{"positive", 50, 100, ""},
		{"negative limit", -1, 0, "limit"},
		{"negative offset", 0, -10, "offset"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := MonumentOptions{Limit: tt.limit, Offset: tt.offset}.Validate()
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}

			var dve *DomainValidationError
			require.ErrorAs(t, err, &dve)
			assert.Equal(t, tt.wantField, dve.Field)
		})
	}
}

func TestPoemOptionsValidateSeason(t *testing.T) {
	assert.NoError(t, PoemOptions{}.Validate())
	assert.NoError(t, PoemOptions{Season: SeasonWinter}.Validate())

	err := PoemOptions{Season: Season("spring")}.Validate()
	var dve *DomainValidationError
	require.ErrorAs(t, err, &dve)
	assert.Equal(t, "season", dve.Field)
}
