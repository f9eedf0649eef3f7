// Package export derives GeoJSON views from monument records. A monument
// contributes one Point feature positioned at its first location carrying a
// complete coordinate pair; properties carry the monument's identity, its
// administrative placement, poet names, and an inscription excerpt.
package export
