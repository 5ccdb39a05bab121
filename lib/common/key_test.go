package common

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"boscoin.io/votebook/lib/errors"
)

func TestKeyAddressRoundTrip(t *testing.T) {
	var k Key
	for i := range k {
		k[i] = byte(i)
	}

	address := k.Address()
	require.Equal(t, byte('G'), address[0])

	parsed, err := ParseKey(address)
	require.NoError(t, err)
	require.Equal(t, k, parsed)
	require.True(t, k.Equal(parsed))
	require.False(t, k.IsZero())
	require.True(t, Key{}.IsZero())
}

func TestKeyJSON(t *testing.T) {
	var k Key
	k[0] = 7

	b, err := json.Marshal(k)
	require.NoError(t, err)
	require.Equal(t, `"`+k.Address()+`"`, string(b))

	var decoded Key
	require.NoError(t, json.Unmarshal(b, &decoded))
	require.Equal(t, k, decoded)
}

func TestParseBadKey(t *testing.T) {
	_, err := ParseKey("not-an-address")
	require.Error(t, err)
	require.True(t, errors.Is(err, errors.BadPublicAddress))
}
