/**
 * Copyright 2020 TryFix Engineering.
 * All rights reserved.
 * Authors:
 *    Gayan Yapa (gmbyapa@gmail.com)
 */

package jsonserde

import (
	"github.com/santhosh-tekuri/jsonschema/v5"
	"github.com/tryfix/errors"
)

// Schema is a parsed JSON schema tied to a message type. It carries the raw
// schema text transmitted to the registry and the compiled form used for
// payload validation and backward compatibility checks.
type Schema struct {
	raw      string
	compiled *jsonschema.Schema
}

// ParseSchema compiles the given JSON schema text
func ParseSchema(text string) (*Schema, error) {
	compiled, err := jsonschema.CompileString(`schema.json`, text)
	if err != nil {
		return nil, errors.WithPrevious(err, `schema compile failed`)
	}

	return &Schema{
		raw:      text,
		compiled: compiled,
	}, nil
}

// Render returns the schema text in the form transmitted to the registry
func (s *Schema) Render() string {
	return s.raw
}
