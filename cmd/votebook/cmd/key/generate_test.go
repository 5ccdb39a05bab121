package key

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGenerateKP(t *testing.T) {
	random, err := generateKP("", false)
	require.NoError(t, err)

	parsed, err := generateKP(random.Seed(), true)
	require.NoError(t, err)
	require.Equal(t, random.Address(), parsed.Address())

	_, err = generateKP(random.Address(), true)
	require.Error(t, err)

	a, err := generateKP("some passphrase", false)
	require.NoError(t, err)
	b, err := generateKP("some passphrase", false)
	require.NoError(t, err)
	require.Equal(t, a.Seed(), b.Seed())
}

func TestEncoders(t *testing.T) {
	kp, err := generateKP("", false)
	require.NoError(t, err)

	passphrase := "pass"
	v := keyPair{Seed: kp.Seed(), Address: kp.Address(), Passphrase: &passphrase}

	var b bytes.Buffer
	require.NoError(t, encoders["oneline"](v, &b))
	require.Equal(t, kp.Seed()+" "+kp.Address()+"\n", b.String())

	b.Reset()
	require.NoError(t, encoders["default"](v, &b))
	require.Contains(t, b.String(), "Public Address: "+kp.Address())
	require.Contains(t, b.String(), `Passphrase: "pass"`)

	b.Reset()
	require.NoError(t, encoders["yaml"](v, &b))
	require.Contains(t, b.String(), "address: "+kp.Address())
}
