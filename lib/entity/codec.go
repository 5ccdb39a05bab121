package entity

import (
	"bytes"

	"github.com/ethereum/go-ethereum/rlp"
)

// Encode returns the rlp form of an entity. The layout is fixed by the
// field order of the struct.
func Encode(v interface{}) ([]byte, error) {
	return rlp.EncodeToBytes(v)
}

// Decode reads one entity from the start of `b`. Account buffers only grow,
// so anything after the encoded entity is ignored.
func Decode(b []byte, v interface{}) error {
	return rlp.NewStream(bytes.NewReader(b), uint64(len(b))).Decode(v)
}
