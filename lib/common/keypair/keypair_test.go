package keypair

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSignature(t *testing.T) {
	kp := Random()
	networkID := []byte("votebook-unittest")

	signature, err := MakeSignature(kp, networkID, "hash")
	require.NoError(t, err)

	verifier, err := FromKey(Key(kp))
	require.NoError(t, err)
	require.NoError(t, VerifySignature(verifier, networkID, "hash", signature))

	require.Error(t, VerifySignature(verifier, networkID, "other", signature))
	require.Error(t, VerifySignature(verifier, []byte("other-network"), "hash", signature))
}

func TestKey(t *testing.T) {
	kp := Random()
	require.Equal(t, kp.Address(), Key(kp).Address())
}
