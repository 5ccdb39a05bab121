package httpcache

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/pkg/errors"
)

const (
	AdapterNameMemory = "memory"
	AdapterNameRedis  = "redis"
)

// NewAdapter makes the adapter named by `uri`: "memory", or
// "redis://host:port[,host:port...]" for a redis ring.
func NewAdapter(uri string, size int) (Adapter, error) {
	if uri == "" || uri == AdapterNameMemory {
		return NewMemCacheAdapter(size)
	}

	parsed, err := url.Parse(uri)
	if err != nil {
		return nil, errors.Wrap(err, "bad cache adapter")
	}
	if parsed.Scheme != AdapterNameRedis {
		return nil, errors.Errorf("unknown cache adapter: %q", parsed.Scheme)
	}
	if parsed.Host == "" {
		return nil, errors.New("redis cache adapter needs at least one host")
	}

	addrs := map[string]string{}
	for i, host := range strings.Split(parsed.Host, ",") {
		addrs[fmt.Sprintf("shard%d", i)] = host
	}

	opt := &RedisRingOptions{Addrs: addrs}
	if password, ok := parsed.User.Password(); ok {
		opt.Password = password
	}

	return NewRedisCacheAdapter(opt), nil
}
