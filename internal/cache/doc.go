// Package cache provides the bounded in-process response cache shared by
// every tool invocation.
//
// # Keys
//
// A cache key is the SHA-256 hash of the request path plus its query
// parameters serialized in lexicographic name order, so parameter order
// never splits logically identical requests across entries:
//
//	cache.Key("/monuments", url.Values{"q": {"芭蕉"}, "limit": {"10"}})
//	// equals
//	cache.Key("/monuments", url.Values{"limit": {"10"}, "q": {"芭蕉"}})
//
// # Expiry and Eviction
//
// Entries expire by absolute age (creation time, 300s default) and are
// removed lazily on the Get that finds them stale; there is no background
// sweep. Total size is bounded by a byte budget (50 MiB default); inserts
// over budget evict least-recently-used entries first. A single payload
// larger than a tenth of the budget is never cached at all.
//
// Put refreshes an entry's creation and last-access times; Get refreshes
// last-access only.
//
// # Concurrency
//
// All operations are safe for concurrent use. The cache stores and returns
// copies of payload bytes, so neither callers nor the cache can corrupt one
// another through shared slices.
package cache
