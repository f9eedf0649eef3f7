// Package stats aggregates dataset-wide statistics from the upstream API:
// entity counts plus breakdowns of monuments by prefecture and poet and
// poems by season. Collection pages through every entity type concurrently
// and is therefore the most expensive operation the server offers; results
// benefit heavily from the response cache.
package stats
