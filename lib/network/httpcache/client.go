package httpcache

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/pkg/errors"

	"boscoin.io/votebook/lib/network/httputils"
)

// Client caches the successful responses of the wrapped handlers. Entries
// are dropped by `Purge` when the resource behind them changes.
type Client struct {
	adapter Adapter
	ttl     time.Duration
	methods map[string]bool
}

type ClientOption func(c *Client) error

func NewClient(opts ...ClientOption) (*Client, error) {
	c := &Client{
		methods: map[string]bool{"GET": true},
	}

	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}

	if c.adapter == nil {
		return nil, errors.New("cache client adapter is nil")
	}

	return c, nil
}

func WithAdapter(a Adapter) ClientOption {
	return func(c *Client) error {
		c.adapter = a
		return nil
	}
}

func WithExpire(ttl time.Duration) ClientOption {
	return func(c *Client) error {
		c.ttl = ttl
		return nil
	}
}

func (c *Client) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ok := c.handleCache(next, w, r); !ok {
			next.ServeHTTP(w, r)
		}
	})
}

func (c *Client) WrapHandlerFunc(handlerFunc http.HandlerFunc) http.HandlerFunc {
	return c.Middleware(handlerFunc).ServeHTTP
}

// Purge drops the cached responses of `paths`.
func (c *Client) Purge(paths ...string) {
	for _, p := range paths {
		c.adapter.Remove(p)
	}
}

func (c *Client) handleCache(next http.Handler, w http.ResponseWriter, r *http.Request) bool {
	if !c.methods[r.Method] || httputils.IsEventStream(r) {
		return false
	}

	key := cacheKey(r.URL)
	if resp, ok := c.adapter.Get(key); ok {
		if !resp.IsExpired(time.Now()) {
			writeResponse(w, resp.StatusCode, resp.Header, resp.Value)
			log.Debug("return cache", "url", key)
			return true
		}
		c.adapter.Remove(key)
	}

	rec := httptest.NewRecorder()
	next.ServeHTTP(rec, r)

	result := rec.Result()
	value := rec.Body.Bytes()
	if result.StatusCode < 400 {
		resp := &Response{
			Value:      value,
			StatusCode: result.StatusCode,
			Header:     result.Header,
			Expiration: expiration(c.ttl),
		}
		c.adapter.Set(key, resp, resp.Expiration)
		log.Debug("page cached", "url", key, "code", result.StatusCode)
	}

	writeResponse(w, result.StatusCode, result.Header, value)
	return true
}

func writeResponse(w http.ResponseWriter, code int, header http.Header, value []byte) {
	for k, v := range header {
		w.Header().Set(k, strings.Join(v, ","))
	}
	w.WriteHeader(code)
	w.Write(value)
}

func expiration(ttl time.Duration) time.Time {
	if ttl == 0 {
		return time.Time{}
	}
	return time.Now().Add(ttl)
}

// cacheKey is the path followed by the sorted query.
func cacheKey(u *url.URL) string {
	params := u.Query()
	if len(params) < 1 {
		return u.Path
	}

	for _, p := range params {
		sort.Strings(p)
	}
	return u.Path + "?" + params.Encode()
}
