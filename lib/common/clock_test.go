package common

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestFixedClock(t *testing.T) {
	c := NewFixedClock(1000)
	require.Equal(t, uint64(1000), c.Now())

	c.Add(50)
	require.Equal(t, uint64(1050), c.Now())

	c.Set(2000)
	require.Equal(t, uint64(2000), c.Now())

	// never goes backwards
	c.Set(10)
	require.Equal(t, uint64(2000), c.Now())
}

func TestSystemClockMonotonic(t *testing.T) {
	c := &SystemClock{}
	first := c.Now()
	require.True(t, first > 0)
	require.True(t, c.Now() >= first)
}

func TestNTPClockOffset(t *testing.T) {
	c := NewNTPClock("test")
	c.query = func(string) (time.Duration, error) {
		return time.Hour, nil
	}
	require.NoError(t, c.Sync())
	require.Equal(t, time.Hour, c.Offset())

	expected := uint64(time.Now().Add(time.Hour).Unix())
	now := c.Now()
	require.True(t, now >= expected)
	require.True(t, now <= expected+1)
}

func TestNTPClockKeepsOffsetOnFailure(t *testing.T) {
	c := NewNTPClock("test")
	c.query = func(string) (time.Duration, error) {
		return time.Hour, nil
	}
	require.NoError(t, c.Sync())

	c.query = func(string) (time.Duration, error) {
		return 0, errors.New("unreachable")
	}
	require.Error(t, c.Sync())
	require.Equal(t, time.Hour, c.Offset())
}

func TestNTPClockNeverGoesBackwards(t *testing.T) {
	c := NewNTPClock("test")
	c.query = func(string) (time.Duration, error) {
		return time.Hour, nil
	}
	require.NoError(t, c.Sync())
	ahead := c.Now()

	c.query = func(string) (time.Duration, error) {
		return -time.Hour, nil
	}
	require.NoError(t, c.Sync())
	require.Equal(t, ahead, c.Now())
}
