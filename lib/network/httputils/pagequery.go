package httputils

import (
	"fmt"
	"net/http"
	"strconv"

	"boscoin.io/votebook/lib/errors"
	"boscoin.io/votebook/lib/node/runner/api/resource"
	"boscoin.io/votebook/lib/storage"
)

const DefaultMaxLimit uint64 = 100

type PageQuery struct {
	request  *http.Request
	options  *storage.DefaultListOptions
	maxLimit uint64
}

// NewPageQuery reads `cursor`, `limit` and `reverse` from the query string.
// `limit` is capped to `maxLimit`.
func NewPageQuery(r *http.Request, maxLimit uint64) (*PageQuery, error) {
	if maxLimit < 1 {
		maxLimit = DefaultMaxLimit
	}

	p := &PageQuery{
		request:  r,
		options:  storage.NewDefaultListOptions(false, nil, maxLimit),
		maxLimit: maxLimit,
	}
	err := p.parseRequest()
	return p, err
}

func (p *PageQuery) Limit() uint64 {
	return p.options.Limit()
}

func (p *PageQuery) Reverse() bool {
	return p.options.Reverse()
}

func (p *PageQuery) Cursor() []byte {
	return p.options.Cursor()
}

func (p *PageQuery) SelfLink() string {
	return p.request.URL.String()
}

func (p *PageQuery) PrevLink(cursor []byte) string {
	return p.link(cursor, !p.Reverse())
}

func (p *PageQuery) NextLink(cursor []byte) string {
	return p.link(cursor, p.Reverse())
}

func (p *PageQuery) ListOptions() storage.ListOptions {
	return storage.NewDefaultListOptions(p.Reverse(), p.Cursor(), p.Limit())
}

func (p *PageQuery) ResourceList(rs []resource.Resource, firstCursor, lastCursor []byte) *resource.ResourceList {
	return resource.NewResourceList(rs, p.SelfLink(), p.NextLink(lastCursor), p.PrevLink(firstCursor))
}

func (p *PageQuery) parseRequest() error {
	q := p.request.URL.Query()
	if r := q.Get("reverse"); r != "" {
		reverse, err := strconv.ParseBool(r)
		if err != nil {
			return errors.InvalidInstructionData.Clone().SetData("reverse", r)
		}
		p.options.SetReverse(reverse)
	}

	if c := q.Get("cursor"); c != "" {
		p.options.SetCursor([]byte(c))
	}

	if l := q.Get("limit"); l != "" {
		limit, err := strconv.ParseUint(l, 10, 64)
		if err != nil || limit < 1 {
			return errors.InvalidInstructionData.Clone().SetData("limit", l)
		}
		if limit > p.maxLimit {
			limit = p.maxLimit
		}
		p.options.SetLimit(limit)
	}

	return nil
}

func (p *PageQuery) link(cursor []byte, reverse bool) string {
	options := p.ListOptions().SetReverse(reverse).SetCursor(cursor)
	return fmt.Sprintf("%s?%s", p.request.URL.Path, options.URLValues().Encode())
}
