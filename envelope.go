/**
 * Copyright 2020 TryFix Engineering.
 * All rights reserved.
 * Authors:
 *    Gayan Yapa (gmbyapa@gmail.com)
 */

package jsonserde

import (
	"encoding/binary"
)

// encodePrefix builds the framing header, a zero magic byte followed by the
// schema id as a big endian int32
func encodePrefix(id int32) []byte {
	byt := make([]byte, 5)
	binary.BigEndian.PutUint32(byt[1:], uint32(id))
	return byt
}

// newEnvelope frames an encoded document for the wire
//
//	╔════════════════════╤════════════════════╤══════════════════╗
//	║ magic byte(1 byte) │ schema id(4 bytes) │ encoded document ║
//	╚════════════════════╧════════════════════╧══════════════════╝
func newEnvelope(id int32, document []byte) []byte {
	return append(encodePrefix(id), document...)
}
