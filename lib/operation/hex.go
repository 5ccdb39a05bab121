package operation

import (
	"encoding/hex"
)

// HexBytes is shown as a hex string in json, the way bitcoin transactions
// are usually passed around.
type HexBytes []byte

func (h HexBytes) MarshalText() ([]byte, error) {
	return []byte(hex.EncodeToString(h)), nil
}

func (h *HexBytes) UnmarshalText(b []byte) error {
	decoded, err := hex.DecodeString(string(b))
	if err != nil {
		return err
	}
	*h = decoded
	return nil
}
