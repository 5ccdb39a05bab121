package common

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewConfig(t *testing.T) {
	c := NewConfig([]byte("net"))
	require.Equal(t, []byte("net"), c.NetworkID)
	require.Equal(t, 100, c.MaxTitleLength)
	require.Equal(t, 1000, c.MaxDescriptionLength)
	require.Equal(t, 20, c.MaxOptions)
	require.Equal(t, uint8(100), c.MaxEarlyVoterBonus)
	require.Equal(t, 8192, c.VoterBitmapBytes*8)
}
