package entity

import (
	"encoding/json"

	"boscoin.io/votebook/lib/common"
)

// The optional types are encoded as a list holding zero or one element, so
// an absent value never collides with a present zero value.

type OptionalBytes [][]byte

func SomeBytes(b []byte) OptionalBytes {
	if b == nil {
		b = []byte{}
	}
	return OptionalBytes{b}
}

func (o OptionalBytes) Get() ([]byte, bool) {
	if len(o) < 1 {
		return nil, false
	}
	return o[0], true
}

func (o OptionalBytes) IsSome() bool {
	return len(o) > 0
}

func (o OptionalBytes) MarshalJSON() ([]byte, error) {
	v, ok := o.Get()
	if !ok {
		return []byte("null"), nil
	}
	return json.Marshal(v)
}

func (o *OptionalBytes) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*o = nil
		return nil
	}
	var v []byte
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*o = SomeBytes(v)
	return nil
}

type OptionalUint64 []uint64

func SomeUint64(v uint64) OptionalUint64 {
	return OptionalUint64{v}
}

func (o OptionalUint64) Get() (uint64, bool) {
	if len(o) < 1 {
		return 0, false
	}
	return o[0], true
}

func (o OptionalUint64) IsSome() bool {
	return len(o) > 0
}

func (o OptionalUint64) MarshalJSON() ([]byte, error) {
	v, ok := o.Get()
	if !ok {
		return []byte("null"), nil
	}
	return json.Marshal(v)
}

func (o *OptionalUint64) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*o = nil
		return nil
	}
	var v uint64
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*o = SomeUint64(v)
	return nil
}

type OptionalKey []common.Key

func SomeKey(k common.Key) OptionalKey {
	return OptionalKey{k}
}

func (o OptionalKey) Get() (common.Key, bool) {
	if len(o) < 1 {
		return common.Key{}, false
	}
	return o[0], true
}

func (o OptionalKey) IsSome() bool {
	return len(o) > 0
}

func (o OptionalKey) MarshalJSON() ([]byte, error) {
	v, ok := o.Get()
	if !ok {
		return []byte("null"), nil
	}
	return json.Marshal(v)
}

func (o *OptionalKey) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*o = nil
		return nil
	}
	var v common.Key
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*o = SomeKey(v)
	return nil
}
