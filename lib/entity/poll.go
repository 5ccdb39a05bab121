package entity

import (
	"boscoin.io/votebook/lib/common"
)

type Poll struct {
	ID              uint64        `json:"id"`
	Creator         common.Key    `json:"creator"`
	Title           string        `json:"title"`
	Description     string        `json:"description"`
	Options         []string      `json:"options"`
	StartTime       uint64        `json:"start_time"`
	EndTime         uint64        `json:"end_time"`
	IsPrivate       bool          `json:"is_private"`
	AllowRevote     bool          `json:"allow_revote"`
	IsActive        bool          `json:"is_active"`
	IsWeighted      bool          `json:"is_weighted"`
	AllowDelegation bool          `json:"allow_delegation"`
	IsEncrypted     bool          `json:"is_encrypted"`
	DecryptionKey   OptionalBytes `json:"decryption_key"`
	WeightToken     OptionalKey   `json:"weight_token"`
	EarlyVoterBonus uint8         `json:"early_voter_bonus"`
}

// MakeID derives the id of a poll or a delegation from the current time and
// the first byte of the key which creates it.
func MakeID(now uint64, k common.Key) uint64 {
	return now + uint64(k[0])
}

func (p *Poll) Serialize() ([]byte, error) {
	return Encode(p)
}

func (p *Poll) Deserialize(b []byte) error {
	return Decode(b, p)
}

func (p *Poll) HasStarted(now uint64) bool {
	return now >= p.StartTime
}

func (p *Poll) HasEnded(now uint64) bool {
	return now > p.EndTime
}

func (p *Poll) IsValidOption(index uint8) bool {
	return int(index) < len(p.Options)
}

// Deactivate marks the poll closed. A closed poll never opens again.
func (p *Poll) Deactivate() {
	p.IsActive = false
}
