// Package metrics tracks schema-validation outcomes for the upstream API.
//
// The upstream's response shape is outside this system's control, so
// structural validation failures are recorded here rather than surfaced to
// callers: total request count, failure count, last-failure time, and
// per-endpoint failure counts. A background Checker reads the counters
// periodically and logs when validation health degrades; the same
// evaluation backs the get_status tool.
package metrics
