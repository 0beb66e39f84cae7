package indexer

import (
	"encoding/json"

	"github.com/openaudio/discovery-indexer/internal/domain"
)

// parseMetadata unpacks an event's metadata payload into its top-level
// fields. A nil payload yields a nil map; invalid JSON is a malformed-payload
// failure.
func parseMetadata(raw json.RawMessage) (map[string]json.RawMessage, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, &domain.MalformedPayloadError{Reason: "invalid metadata json", Cause: err}
	}
	return fields, nil
}

// stringField extracts a string field from the payload. The second return is
// false when the field is absent; a present field of the wrong type is a
// malformed-payload failure.
func stringField(fields map[string]json.RawMessage, key string) (string, bool, error) {
	raw, ok := fields[key]
	if !ok {
		return "", false, nil
	}
	var v string
	if err := json.Unmarshal(raw, &v); err != nil {
		return "", false, &domain.MalformedPayloadError{Reason: "field " + key + " is not a string", Cause: err}
	}
	return v, true, nil
}

func boolField(fields map[string]json.RawMessage, key string) (bool, bool, error) {
	raw, ok := fields[key]
	if !ok {
		return false, false, nil
	}
	var v bool
	if err := json.Unmarshal(raw, &v); err != nil {
		return false, false, &domain.MalformedPayloadError{Reason: "field " + key + " is not a boolean", Cause: err}
	}
	return v, true, nil
}

func int32Field(fields map[string]json.RawMessage, key string) (int32, bool, error) {
	raw, ok := fields[key]
	if !ok {
		return 0, false, nil
	}
	var v int32
	if err := json.Unmarshal(raw, &v); err != nil {
		return 0, false, &domain.MalformedPayloadError{Reason: "field " + key + " is not an integer", Cause: err}
	}
	return v, true, nil
}

// nullableInt32Field extracts a field that may be an integer or an explicit
// null. The second return reports presence; a JSON null yields a nil pointer.
func nullableInt32Field(fields map[string]json.RawMessage, key string) (*int32, bool, error) {
	raw, ok := fields[key]
	if !ok {
		return nil, false, nil
	}
	var v *int32
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, false, &domain.MalformedPayloadError{Reason: "field " + key + " is not an integer or null", Cause: err}
	}
	return v, true, nil
}

// jsonField extracts a field as its raw JSON document.
func jsonField(fields map[string]json.RawMessage, key string) (json.RawMessage, bool) {
	raw, ok := fields[key]
	return raw, ok
}
