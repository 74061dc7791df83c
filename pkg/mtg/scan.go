package mtg

import (
	"bytes"

	"github.com/fox-one/msgpack"
)

// RawMessage trailing raw bytes in an encoded memo
type RawMessage []byte

// EncodeMsgpack implement msgpack.CustomEncoder
func (m RawMessage) EncodeMsgpack(enc *msgpack.Encoder) error {
	return enc.EncodeString(string(m))
}

// DecodeMsgpack implement msgpack.CustomDecoder
func (m *RawMessage) DecodeMsgpack(dec *msgpack.Decoder) error {
	s, err := dec.DecodeString()
	if err != nil {
		return err
	}

	*m = RawMessage(s)
	return nil
}

// Encode packs the values into one compact memo body.
func Encode(values ...interface{}) ([]byte, error) {
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)

	for _, v := range values {
		if err := enc.Encode(v); err != nil {
			return nil, err
		}
	}

	return buf.Bytes(), nil
}

// Scan unpacks values from the body in order, returning the unread remainder.
func Scan(body []byte, dest ...interface{}) ([]byte, error) {
	r := bytes.NewReader(body)
	dec := msgpack.NewDecoder(r)

	for _, d := range dest {
		if err := dec.Decode(d); err != nil {
			return nil, err
		}
	}

	return body[len(body)-r.Len():], nil
}
