package entity

import (
	"boscoin.io/votebook/lib/common"
)

// TokenBalance is the last reported balance of `Owner` in `Token`. Updates
// overwrite it.
type TokenBalance struct {
	Owner       common.Key `json:"owner"`
	Token       common.Key `json:"token"`
	Amount      uint64     `json:"amount"`
	LastUpdated uint64     `json:"last_updated"`
}

func (t *TokenBalance) Serialize() ([]byte, error) {
	return Encode(t)
}

func (t *TokenBalance) Deserialize(b []byte) error {
	return Decode(b, t)
}
