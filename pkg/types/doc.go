// Package types provides shared domain types for the kuhi MCP server.
//
// This package defines the entity records received from the haiku-monument
// API (monuments, inscriptions, poems, poets, locations, sources), their
// normalization functions, the recognized query options per endpoint, and the
// domain error taxonomy shared across components.
//
// # Entities
//
// Monument is the aggregate record. Its embedded collections are guaranteed
// non-nil after normalization:
//
//	monument := &types.Monument{
//	    ID:            42,
//	    CanonicalName: "芭蕉句碑（中尊寺）",
//	}
//	types.NormalizeMonument(monument)
//	len(monument.Inscriptions) // 0, never a nil-slice panic risk
//
// Optional scalar fields use pointers so an unknown upstream value (null) is
// distinguishable from a legitimate zero:
//
//	if monument.Material != nil {
//	    fmt.Println(*monument.Material)
//	}
//
// # Normalization
//
// The upstream API is inconsistent about absence: a field may be null,
// missing entirely, or an empty array. Each entity has a normalization
// function (NormalizeMonument, NormalizePoet, ...) applied exactly once at
// the deserialization boundary that canonicalizes all three to one
// representation: empty non-nil slices for collections, nil for optional
// scalars, "front" for an absent inscription side, nil for a season value
// outside the recognized enumeration.
//
// # Query Options
//
// Each list endpoint has an options struct naming its recognized filters.
// Values() converts an options struct to query parameters, coercing values to
// strings and omitting empties; Validate() rejects caller input (negative
// pagination, unknown season) before any network call:
//
//	opts := types.MonumentOptions{Query: "芭蕉", Limit: 20}
//	if err := opts.Validate(); err != nil { ... }
//	params := opts.Values() // q=芭蕉&limit=20
//
// # Validation
//
// Entity Validate() methods check the upstream contract (positive IDs,
// required names, coordinate ranges). A failed entity validation is not fatal
// to a fetch; the resource accessor records it and degrades gracefully.
package types
