/**
 * Copyright 2020 TryFix Engineering.
 * All rights reserved.
 * Authors:
 *    Gayan Yapa (gmbyapa@gmail.com)
 */

package jsonserde

import (
	"github.com/goccy/go-json"
	"github.com/tryfix/errors"
)

// Marshaller is the document encoder capability of the serializer
type Marshaller interface {
	Init() error
	Marshall(v interface{}) ([]byte, error)
}

// JSONMarshaller encodes message values as JSON documents. This is the
// default Marshaller.
type JSONMarshaller struct{}

func NewJSONMarshaller() Marshaller {
	return &JSONMarshaller{}
}

func (s *JSONMarshaller) Init() error {
	return nil
}

func (s *JSONMarshaller) Marshall(v interface{}) ([]byte, error) {
	byt, err := json.Marshal(v)
	if err != nil {
		return nil, errors.WithPrevious(err, `json marshal failed`)
	}

	return byt, nil
}
