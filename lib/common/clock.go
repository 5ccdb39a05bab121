package common

import (
	"sync"
	"time"

	"github.com/beevik/ntp"
)

// Clock supplies the logical timestamp, in unix seconds, that every
// operation is evaluated against. Implementations must never go backwards.
type Clock interface {
	Now() uint64
}

type SystemClock struct {
	sync.Mutex
	last uint64
}

func (c *SystemClock) Now() uint64 {
	c.Lock()
	defer c.Unlock()

	now := uint64(time.Now().Unix())
	if now < c.last {
		return c.last
	}
	c.last = now
	return now
}

// FixedClock only moves when it is told to.
type FixedClock struct {
	sync.RWMutex
	now uint64
}

func NewFixedClock(now uint64) *FixedClock {
	return &FixedClock{now: now}
}

func (c *FixedClock) Now() uint64 {
	c.RLock()
	defer c.RUnlock()
	return c.now
}

func (c *FixedClock) Set(now uint64) {
	c.Lock()
	defer c.Unlock()
	if now > c.now {
		c.now = now
	}
}

func (c *FixedClock) Add(seconds uint64) {
	c.Lock()
	defer c.Unlock()
	c.now += seconds
}

//
// NTPClock is the system clock corrected by the offset reported by a NTP
// server. `Sync` should be called periodically; when the server can not be
// reached the previous offset is kept.
//
type NTPClock struct {
	sync.RWMutex

	server string
	offset time.Duration
	last   uint64
	query  func(string) (time.Duration, error)
}

func NewNTPClock(server string) *NTPClock {
	return &NTPClock{
		server: server,
		query: func(host string) (time.Duration, error) {
			response, err := ntp.Query(host)
			if err != nil {
				return 0, err
			}
			return response.ClockOffset, nil
		},
	}
}

func (c *NTPClock) Sync() error {
	offset, err := c.query(c.server)
	if err != nil {
		log.Error("failed to query ntp server", "server", c.server, "error", err)
		return err
	}

	c.Lock()
	c.offset = offset
	c.Unlock()

	log.Debug("clock offset updated", "server", c.server, "offset", offset)
	return nil
}

func (c *NTPClock) Offset() time.Duration {
	c.RLock()
	defer c.RUnlock()
	return c.offset
}

func (c *NTPClock) Now() uint64 {
	c.Lock()
	defer c.Unlock()

	now := uint64(time.Now().Add(c.offset).Unix())
	if now < c.last {
		return c.last
	}
	c.last = now
	return now
}

// Start syncs the clock every `interval` until `stop` is closed.
func (c *NTPClock) Start(interval time.Duration, stop <-chan struct{}) {
	c.Sync()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			c.Sync()
		case <-stop:
			return
		}
	}
}
