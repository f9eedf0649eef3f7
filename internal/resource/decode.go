package resource

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/shikano35/kuhi-api-mcp-server/pkg/types"
)

// checkSyntax enforces the hard decoding contract: a body must be non-empty
// and syntactically valid JSON. Everything softer degrades downstream.
func checkSyntax(path string, body []byte) error {
	if len(bytes.TrimSpace(body)) == 0 {
		return fmt.Errorf("%w: empty body from %s", types.ErrMalformedJSON, path)
	}
	if !json.Valid(body) {
		return fmt.Errorf("%w: unparsable body from %s", types.ErrMalformedJSON, path)
	}
	return nil
}

// decodeList decodes a JSON array body into entities, validating and
// normalizing each element. Structural mismatches degrade gracefully: the
// best-effort data is returned, the endpoint's failure counter increments
// once, and a warning is logged. The degraded flag reports that branch; the
// error return fires only for the hard JsonParse class.
func decodeList[T any](a *Accessor, endpoint string, body []byte, validate func(*T) error, normalize func(*T)) ([]T, bool, error) {
	a.metrics.RecordRequest()

	var firstErr error

	var items []T
	if err := json.Unmarshal(body, &items); err != nil {
		var typeErr *json.UnmarshalTypeError
		if !errors.As(err, &typeErr) {
			return nil, false, fmt.Errorf("%w: %s: %v", types.ErrMalformedJSON, endpoint, err)
		}

		firstErr = err

		// A wrapped payload ({"monuments": [...]}) still salvages; mismatched
		// element fields are already zeroed by the decoder.
		if len(items) == 0 {
			if unwrapped, ok := unwrapList[T](body); ok {
				items = unwrapped
			}
		}
	}

	for i := range items {
		if err := validate(&items[i]); err != nil && firstErr == nil {
			firstErr = err
		}
		normalize(&items[i])
	}

	if items == nil {
		items = []T{}
	}

	if firstErr != nil {
		a.metrics.RecordFailure(endpoint)
		a.logger.Warn("schema validation failed, returning best-effort data",
			"endpoint", endpoint, "error", firstErr.Error())
		return items, true, nil
	}

	return items, false, nil
}

// decodeOne decodes a JSON object body into a single entity with the same
// degradation policy as decodeList.
func decodeOne[T any](a *Accessor, endpoint string, body []byte, validate func(*T) error, normalize func(*T)) (*T, bool, error) {
	a.metrics.RecordRequest()

	var firstErr error

	var item T
	if err := json.Unmarshal(body, &item); err != nil {
		var typeErr *json.UnmarshalTypeError
		if !errors.As(err, &typeErr) {
			return nil, false, fmt.Errorf("%w: %s: %v", types.ErrMalformedJSON, endpoint, err)
		}
		firstErr = err
	}

	if err := validate(&item); err != nil && firstErr == nil {
		firstErr = err
	}
	normalize(&item)

	if firstErr != nil {
		a.metrics.RecordFailure(endpoint)
		a.logger.Warn("schema validation failed, returning best-effort data",
			"endpoint", endpoint, "error", firstErr.Error())
		return &item, true, nil
	}

	return &item, false, nil
}

// unwrapList salvages a list wrapped in an envelope object by taking the
// first member that decodes as the expected array, preferring a non-empty
// one.
func unwrapList[T any](body []byte) ([]T, bool) {
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, false
	}

	var fallback []T
	found := false
	for _, raw := range envelope {
		var items []T
		if err := json.Unmarshal(raw, &items); err != nil {
			continue
		}
		if len(items) > 0 {
			return items, true
		}
		fallback = items
		found = true
	}

	return fallback, found
}
