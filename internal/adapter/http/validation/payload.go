package validation

import (
	"bytes"
	"encoding/json"
	"errors"
)

var ErrInvalidPayload = errors.New("invalid payload")

func hasJSONField(raw map[string]json.RawMessage, field string) bool {
	_, ok := raw[field]
	return ok
}

func hasAnyJSONField(raw map[string]json.RawMessage, fields ...string) bool {
	for _, field := range fields {
		if hasJSONField(raw, field) {
			return true
		}
	}
	return false
}

func isJSONNull(value json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(value), []byte("null"))
}

// presentButNull reports a key sent explicitly as null.
func presentButNull(raw map[string]json.RawMessage, field string) bool {
	value, ok := raw[field]
	return ok && isJSONNull(value)
}
