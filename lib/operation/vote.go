package operation

import (
	"boscoin.io/votebook/lib/common"
	"boscoin.io/votebook/lib/entity"
)

// CastVote
// Accounts:
//  0. `[signer]` voter
//  1. `[writable]` vote
//  2. `[writable]` poll
//  3. `[writable]` vote count
//  4. `[writable]` voter registry
//  5. `[]` delegation, optional; an empty account means no delegation
//  6. `[]` token balance, optional
type CastVote struct {
	PollID        uint64                `json:"poll_id"`
	OptionIndex   uint8                 `json:"option_index"`
	Weight        entity.OptionalUint64 `json:"weight"`
	EncryptedData entity.OptionalBytes  `json:"encrypted_data"`
	ZkProof       entity.OptionalBytes  `json:"zk_proof"`
	Nonce         entity.OptionalBytes  `json:"nonce"`
	FeeTx         HexBytes              `json:"fee_tx"`
}

func (o CastVote) IsWellFormed(common.Config) error {
	return nil
}

func (o CastVote) HasFee() bool {
	return true
}

func (o CastVote) GetFeeTx() []byte {
	return o.FeeTx
}

// ChangeVote
// Accounts:
//  0. `[signer]` voter
//  1. `[writable]` vote
//  2. `[writable]` poll
//  3. `[writable]` vote count
type ChangeVote struct {
	PollID           uint64               `json:"poll_id"`
	NewOptionIndex   uint8                `json:"new_option_index"`
	NewEncryptedData entity.OptionalBytes `json:"new_encrypted_data"`
	NewZkProof       entity.OptionalBytes `json:"new_zk_proof"`
	NewNonce         entity.OptionalBytes `json:"new_nonce"`
	FeeTx            HexBytes             `json:"fee_tx"`
}

func (o ChangeVote) IsWellFormed(common.Config) error {
	return nil
}

func (o ChangeVote) HasFee() bool {
	return true
}

func (o ChangeVote) GetFeeTx() []byte {
	return o.FeeTx
}
