package common

import (
	"bytes"

	"github.com/stellar/go/strkey"

	"boscoin.io/votebook/lib/errors"
)

const KeyLength = 32

// Key is the raw 32 byte public key which identifies an account. Its text
// form is the stellar account address.
type Key [KeyLength]byte

func (k Key) Address() string {
	s, err := strkey.Encode(strkey.VersionByteAccountID, k[:])
	if err != nil {
		panic(err)
	}
	return s
}

func (k Key) String() string {
	return k.Address()
}

func (k Key) IsZero() bool {
	return k == Key{}
}

func (k Key) Equal(o Key) bool {
	return bytes.Equal(k[:], o[:])
}

func (k Key) MarshalText() ([]byte, error) {
	return []byte(k.Address()), nil
}

func (k *Key) UnmarshalText(b []byte) error {
	parsed, err := ParseKey(string(b))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

func ParseKey(address string) (k Key, err error) {
	var raw []byte
	if raw, err = strkey.Decode(strkey.VersionByteAccountID, address); err != nil {
		err = errors.BadPublicAddress.Clone().SetData("address", address)
		return
	}
	if len(raw) != KeyLength {
		err = errors.BadPublicAddress.Clone().SetData("address", address)
		return
	}
	copy(k[:], raw)
	return
}

func MustParseKey(address string) Key {
	k, err := ParseKey(address)
	if err != nil {
		panic(err)
	}
	return k
}
