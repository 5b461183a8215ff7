package jsonserde

import (
	"github.com/goccy/go-json"
)

// validatePayload checks the encoded JSON document against the resolved
// schema. A failing document never reaches the wire.
func validatePayload(subject string, schema *Schema, document []byte) error {
	var v interface{}
	if err := json.Unmarshal(document, &v); err != nil {
		return &ValidationError{Subject: subject, Err: err}
	}

	if err := schema.compiled.Validate(v); err != nil {
		return &ValidationError{Subject: subject, Err: err}
	}

	return nil
}
