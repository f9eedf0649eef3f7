// Package resource composes the fetch client, response cache, schema
// validation, and metrics into typed per-entity access to the upstream
// haiku-monument API.
//
// # Pipeline
//
// Every fetch follows the same path:
//
//	options validate -> canonical URL -> cache key -> cache get
//	    -> (miss) retry-wrapped GET -> JSON syntax check -> cache put
//	    -> decode -> entity validate -> normalize -> return
//
// The cache stores raw response bytes after the syntax check, so both the
// hit and miss paths decode identically and every call counts toward
// validation metrics.
//
// # Graceful Degradation
//
// Structural validation failures never fail a fetch. When the upstream
// returns a shape mismatch (wrong field type, envelope-wrapped list) or an
// entity violating its contract (missing required name), the accessor
// records the failure against the endpoint, logs a warning, and returns the
// best-effort decode. Only transport failures and JSON syntax failures
// escalate.
//
// # Aggregation
//
// The All* methods page through an endpoint with a fixed batch size,
// deduplicate by entity id in first-seen order, throttle between pages, and
// terminate on a short batch, an optional result cap, or a hard offset
// guard:
//
//	monuments, err := accessor.AllMonuments(ctx, types.MonumentOptions{
//	    Prefecture: "岩手県",
//	}, 0)
//
// A fetch error mid-aggregation propagates; partial pages are discarded.
//
// # Concurrency
//
// Accessor methods are safe for concurrent use. Concurrent cache misses on
// the same request signature collapse into a single upstream call.
package resource
