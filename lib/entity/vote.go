package entity

import (
	"boscoin.io/votebook/lib/common"
)

// Vote is the ballot of one voter in one poll. A revote overwrites it in
// place.
type Vote struct {
	PollID        uint64        `json:"poll_id"`
	Voter         common.Key    `json:"voter"`
	OptionIndex   uint8         `json:"option_index"`
	Timestamp     uint64        `json:"timestamp"`
	Weight        uint64        `json:"weight"`
	DelegatedTo   OptionalKey   `json:"delegated_to"`
	EncryptedData OptionalBytes `json:"encrypted_data"`
	ZkProof       OptionalBytes `json:"zk_proof"`
	Nonce         OptionalBytes `json:"nonce"`
}

func (v *Vote) Serialize() ([]byte, error) {
	return Encode(v)
}

func (v *Vote) Deserialize(b []byte) error {
	return Decode(b, v)
}

func (v *Vote) BelongsTo(pollID uint64, voter common.Key) bool {
	return v.PollID == pollID && v.Voter == voter
}
