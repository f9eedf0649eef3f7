package export

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shikano35/kuhi-api-mcp-server/pkg/types"
)

func strPtr(s string) *string { return &s }
func fPtr(f float64) *float64 { return &f }

func testMonument() types.Monument {
	return types.Monument{
		ID:            1,
		CanonicalName: "芭蕉古池句碑",
		Locations: []types.Location{
			{
				ID:         1,
				Prefecture: strPtr("三重県"),
				Region:     strPtr("東海"),
				Latitude:   fPtr(34.77),
				Longitude:  fPtr(136.13),
			},
		},
		Poets: []types.Poet{
			{ID: 1, Name: "松尾芭蕉"},
		},
		Inscriptions: []types.Inscription{
			{ID: 1, Side: "front", OriginalText: "古池や蛙飛び込む水の音"},
		},
	}
}

func TestFeatureCollection(t *testing.T) {
	fc, err := FeatureCollection([]types.Monument{testMonument()}, false)
	require.NoError(t, err)
	require.Len(t, fc.Features, 1)

	f := fc.Features[0]
	assert.Equal(t, int64(1), f.ID)

	point, ok := f.Geometry.(orb.Point)
	require.True(t, ok)
	assert.Equal(t, 136.13, point.Lon(), "GeoJSON positions are longitude first")
	assert.Equal(t, 34.77, point.Lat())

	assert.Equal(t, "芭蕉古池句碑", f.Properties["name"])
	assert.Equal(t, "三重県", f.Properties["prefecture"])
	assert.Equal(t, "東海", f.Properties["region"])
	assert.Equal(t, "松尾芭蕉", f.Properties["poets"])
	assert.Equal(t, "古池や蛙飛び込む水の音", f.Properties["inscription"])
}

func TestFeatureCollectionMarshalsAsGeoJSON(t *testing.T) {
	fc, err := FeatureCollection([]types.Monument{testMonument()}, false)
	require.NoError(t, err)

	raw, err := json.Marshal(fc)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, "FeatureCollection", decoded["type"])

	features, ok := decoded["features"].([]interface{})
	require.True(t, ok)
	require.Len(t, features, 1)

	feature := features[0].(map[string]interface{})
	geometry := feature["geometry"].(map[string]interface{})
	assert.Equal(t, "Point", geometry["type"])

	coords := geometry["coordinates"].([]interface{})
	assert.Equal(t, 136.13, coords[0])
	assert.Equal(t, 34.77, coords[1])
}

func TestFeatureCollectionSkipsCoordinateless(t *testing.T) {
	monuments := []types.Monument{
		testMonument(),
		{ID: 2, CanonicalName: "座標なし句碑"},
		{
			ID:            3,
			CanonicalName: "住所のみ句碑",
			Locations: []types.Location{
				{ID: 3, Prefecture: strPtr("京都府")},
			},
		},
	}

	fc, err := FeatureCollection(monuments, false)
	require.NoError(t, err)
	require.Len(t, fc.Features, 1, "lenient mode drops monuments without coordinates")
	assert.Equal(t, int64(1), fc.Features[0].ID)
}

func TestFeatureCollectionStrictMode(t *testing.T) {
	withLocationNoCoords := types.Monument{
		ID:            3,
		CanonicalName: "住所のみ句碑",
		Locations: []types.Location{
			{ID: 3, Prefecture: strPtr("京都府")},
		},
	}

	_, err := FeatureCollection([]types.Monument{testMonument(), withLocationNoCoords}, true)

	var missing *MissingCoordinateError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, int64(3), missing.MonumentID)
	assert.Contains(t, err.Error(), "住所のみ句碑")
}

func TestFeatureCollectionStrictModeAllowsNoLocations(t *testing.T) {
	// A monument with no location records promised no coordinate; strict mode
	// still just skips it.
	noLocations := types.Monument{ID: 2, CanonicalName: "座標なし句碑"}

	fc, err := FeatureCollection([]types.Monument{testMonument(), noLocations}, true)
	require.NoError(t, err)
	assert.Len(t, fc.Features, 1)
}

func TestFeatureCollectionEmptyInput(t *testing.T) {
	fc, err := FeatureCollection(nil, false)
	require.NoError(t, err)
	assert.NotNil(t, fc.Features)
	assert.Empty(t, fc.Features)
}

func TestFeatureCollectionOmitsAbsentProperties(t *testing.T) {
	m := types.Monument{
		ID:            5,
		CanonicalName: "簡素な句碑",
		Locations: []types.Location{
			{ID: 5, Latitude: fPtr(35.0), Longitude: fPtr(135.0)},
		},
	}

	fc, err := FeatureCollection([]types.Monument{m}, false)
	require.NoError(t, err)
	require.Len(t, fc.Features, 1)

	props := fc.Features[0].Properties
	assert.NotContains(t, props, "prefecture")
	assert.NotContains(t, props, "poets")
	assert.NotContains(t, props, "inscription")
}

func TestExcerptTruncatesLongInscription(t *testing.T) {
	long := strings.Repeat("古", 100)
	m := testMonument()
	m.Inscriptions[0].OriginalText = long

	fc, err := FeatureCollection([]types.Monument{m}, false)
	require.NoError(t, err)

	got, ok := fc.Features[0].Properties["inscription"].(string)
	require.True(t, ok)
	assert.True(t, strings.HasSuffix(got, "..."))
	assert.Equal(t, inscriptionExcerptRunes, len([]rune(strings.TrimSuffix(got, "..."))))
}
