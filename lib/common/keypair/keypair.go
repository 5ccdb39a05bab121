//
// Encapsulate Stellar's keypair package
//
// Provides additional wrapper and convenience functions,
// suited for usage within votebook
//
package keypair

import (
	stellar "github.com/stellar/go/keypair"

	"boscoin.io/votebook/lib/common"
)

// Aliases to stellar types
type Full = stellar.Full
type KP = stellar.KP

// Aliases to stellar functions
var Parse = stellar.Parse
var RandomCanFail = stellar.Random

// MakeSignature signs the hash of a request under the given network id.
func MakeSignature(kp KP, networkID []byte, hash string) ([]byte, error) {
	return kp.Sign(signedMessage(networkID, hash))
}

func VerifySignature(kp KP, networkID []byte, hash string, signature []byte) error {
	return kp.Verify(signedMessage(networkID, hash), signature)
}

func signedMessage(networkID []byte, hash string) []byte {
	message := make([]byte, 0, len(networkID)+len(hash))
	message = append(message, networkID...)
	return append(message, hash...)
}

// Key returns the account key the keypair controls.
func Key(kp KP) common.Key {
	return common.MustParseKey(kp.Address())
}

// FromKey returns the verify only keypair for an account key.
func FromKey(k common.Key) (KP, error) {
	return stellar.Parse(k.Address())
}
