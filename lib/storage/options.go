package storage

import (
	"net/url"
	"strconv"
)

// ListOptions tells GetIterator in which direction to walk, from which key
// and how many records to give. The record under the cursor is skipped and a
// zero limit gives every record under the prefix.
type ListOptions interface {
	Reverse() bool
	SetReverse(bool) ListOptions
	Cursor() []byte
	SetCursor([]byte) ListOptions
	Limit() uint64
	SetLimit(uint64) ListOptions
	URLValues() url.Values
}

type DefaultListOptions struct {
	reverse bool
	cursor  []byte
	limit   uint64
}

func NewDefaultListOptions(reverse bool, cursor []byte, limit uint64) *DefaultListOptions {
	o := &DefaultListOptions{}
	o.SetReverse(reverse).SetCursor(cursor).SetLimit(limit)
	return o
}

func (o DefaultListOptions) Reverse() bool {
	return o.reverse
}

func (o *DefaultListOptions) SetReverse(r bool) ListOptions {
	o.reverse = r
	return o
}

func (o DefaultListOptions) Cursor() []byte {
	return o.cursor
}

// SetCursor keeps its own copy, the iterator outlives the request buffer.
func (o *DefaultListOptions) SetCursor(c []byte) ListOptions {
	if len(c) < 1 {
		o.cursor = nil
		return o
	}
	o.cursor = copyBytes(c)
	return o
}

func (o DefaultListOptions) Limit() uint64 {
	return o.limit
}

func (o *DefaultListOptions) SetLimit(l uint64) ListOptions {
	o.limit = l
	return o
}

// URLValues gives the query the history page links carry.
func (o DefaultListOptions) URLValues() url.Values {
	v := url.Values{
		"reverse": []string{strconv.FormatBool(o.reverse)},
	}

	if len(o.cursor) > 0 {
		v.Set("cursor", string(o.cursor))
	}
	if o.limit > 0 {
		v.Set("limit", strconv.FormatUint(o.limit, 10))
	}

	return v
}
