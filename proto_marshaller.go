/**
 * Copyright 2020 TryFix Engineering.
 * All rights reserved.
 * Authors:
 *    Gayan Yapa (gmbyapa@gmail.com)
 */

package jsonserde

import (
	"github.com/tryfix/errors"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/anypb"
)

// ProtoMarshaller encodes proto.Message values wrapped in an anypb envelope.
// Payload validation does not apply to Protobuf documents.
type ProtoMarshaller struct{}

func NewProtoMarshaller() Marshaller {
	return &ProtoMarshaller{}
}

func (s *ProtoMarshaller) Init() error {
	return nil
}

func (s *ProtoMarshaller) Marshall(v interface{}) ([]byte, error) {
	msg, ok := v.(proto.Message)
	if !ok {
		return nil, errors.New(`value is not a proto.Message`)
	}

	anyPB, err := anypb.New(msg)
	if err != nil {
		return nil, errors.WithPrevious(err, "failed to add message into anypb")
	}

	value, err := proto.Marshal(anyPB)
	if err != nil {
		return nil, errors.WithPrevious(err, "failed to marshal message into anypb")
	}

	return value, nil
}
