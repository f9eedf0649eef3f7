package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shikano35/kuhi-api-mcp-server/pkg/types"
)

func locWith(id int64, mutate func(*types.Location)) types.Location {
	lat, lon := 35.0, 136.0
	l := types.Location{ID: id, Latitude: &lat, Longitude: &lon}
	mutate(&l)
	return l
}

func TestResolvePlacePlaceNameOutranksAddress(t *testing.T) {
	locations := []types.Location{
		locWith(1, func(l *types.Location) { l.Address = strPtr("平泉町中尊寺境内") }),
		locWith(2, func(l *types.Location) { l.PlaceName = strPtr("中尊寺") }),
	}

	loc, ok := ResolvePlace(locations, "中尊寺")
	require.True(t, ok)
	assert.Equal(t, int64(2), loc.ID)
}

func TestResolvePlaceEitherWayContainment(t *testing.T) {
	locations := []types.Location{
		locWith(1, func(l *types.Location) { l.PlaceName = strPtr("中尊寺") }),
	}

	// The query embeds the place name rather than matching it exactly.
	loc, ok := ResolvePlace(locations, "中尊寺の句碑")
	require.True(t, ok)
	assert.Equal(t, int64(1), loc.ID)
}

func TestResolvePlaceAddressOutranksWeakerFields(t *testing.T) {
	locations := []types.Location{
		// Municipality and prefecture together still score below one address hit.
		locWith(1, func(l *types.Location) {
			l.Municipality = strPtr("松島町")
			l.Prefecture = strPtr("松島県")
		}),
		locWith(2, func(l *types.Location) { l.Address = strPtr("宮城県松島海岸") }),
	}

	loc, ok := ResolvePlace(locations, "松島")
	require.True(t, ok)
	assert.Equal(t, int64(2), loc.ID)
}

func TestResolvePlacePrefectureAloneResolves(t *testing.T) {
	locations := []types.Location{
		locWith(1, func(l *types.Location) { l.Prefecture = strPtr("宮城県") }),
		locWith(2, func(l *types.Location) { l.Prefecture = strPtr("岩手県") }),
	}

	loc, ok := ResolvePlace(locations, "宮城")
	require.True(t, ok)
	assert.Equal(t, int64(1), loc.ID)
}

func TestResolvePlaceRequiresCoordinates(t *testing.T) {
	noCoords := types.Location{ID: 1, PlaceName: strPtr("中尊寺")}

	_, ok := ResolvePlace([]types.Location{noCoords}, "中尊寺")
	assert.False(t, ok, "a location without coordinates cannot serve as a search center")
}

func TestResolvePlaceUnresolved(t *testing.T) {
	locations := []types.Location{
		locWith(1, func(l *types.Location) { l.PlaceName = strPtr("中尊寺") }),
	}

	_, ok := ResolvePlace(locations, "存在しない場所xyz")
	assert.False(t, ok)

	_, ok = ResolvePlace(locations, "")
	assert.False(t, ok)

	_, ok = ResolvePlace(locations, "   ")
	assert.False(t, ok)

	_, ok = ResolvePlace(nil, "中尊寺")
	assert.False(t, ok)
}

func strPtr(s string) *string { return &s }
