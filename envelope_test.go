package jsonserde

import (
	"bytes"
	"encoding/binary"
	"testing"
)

func TestEncodePrefix(t *testing.T) {
	byt := encodePrefix(7)
	if !bytes.Equal(byt, []byte{0x00, 0x00, 0x00, 0x00, 0x07}) {
		t.Errorf(`have %x`, byt)
	}

	byt = encodePrefix(0x01020304)
	if !bytes.Equal(byt, []byte{0x00, 0x01, 0x02, 0x03, 0x04}) {
		t.Errorf(`have %x`, byt)
	}
}

func TestNewEnvelope(t *testing.T) {
	document := []byte(`{"field1":1}`)
	byt := newEnvelope(42, document)

	if len(byt) != 5+len(document) {
		t.Fatalf(`need %d bytes, have %d`, 5+len(document), len(byt))
	}

	if byt[0] != 0x00 {
		t.Errorf(`need magic byte 0x00, have %x`, byt[0])
	}

	if id := binary.BigEndian.Uint32(byt[1:5]); id != 42 {
		t.Errorf(`need schema id 42, have %d`, id)
	}

	if !bytes.Equal(byt[5:], document) {
		t.Errorf(`need the document untouched, have %s`, byt[5:])
	}
}

func TestNewEnvelope_EmptyDocument(t *testing.T) {
	byt := newEnvelope(1, nil)
	if !bytes.Equal(byt, []byte{0x00, 0x00, 0x00, 0x00, 0x01}) {
		t.Errorf(`have %x`, byt)
	}
}
