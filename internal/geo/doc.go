// Package geo implements great-circle proximity search over monument
// locations and best-effort resolution of free-text place names to
// coordinates.
//
// Distances use the haversine formula with a mean Earth radius of
// 6,371,000 m. Proximity results are sorted ascending by distance from the
// search center, so callers can rely on the first result being the nearest.
package geo
