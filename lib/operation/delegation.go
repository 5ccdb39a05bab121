package operation

import (
	"boscoin.io/votebook/lib/common"
	"boscoin.io/votebook/lib/entity"
)

// DelegateVote
// Accounts:
//  0. `[signer]` delegator
//  1. `[writable]` delegation
//  2. `[]` delegate
type DelegateVote struct {
	PollID     entity.OptionalUint64 `json:"poll_id"`
	Expiration entity.OptionalUint64 `json:"expiration"`
	FeeTx      HexBytes              `json:"fee_tx"`
}

func (o DelegateVote) IsWellFormed(common.Config) error {
	return nil
}

func (o DelegateVote) HasFee() bool {
	return true
}

func (o DelegateVote) GetFeeTx() []byte {
	return o.FeeTx
}

// RevokeDelegation
// Accounts:
//  0. `[signer]` delegator
//  1. `[writable]` delegation
type RevokeDelegation struct {
	DelegationID uint64   `json:"delegation_id"`
	FeeTx        HexBytes `json:"fee_tx"`
}

func (o RevokeDelegation) IsWellFormed(common.Config) error {
	return nil
}

func (o RevokeDelegation) HasFee() bool {
	return true
}

func (o RevokeDelegation) GetFeeTx() []byte {
	return o.FeeTx
}

// UpdateTokenBalance
// Accounts:
//  0. `[signer]` owner
//  1. `[writable]` token balance
//  2. `[]` token
type UpdateTokenBalance struct {
	Token  common.Key `json:"token"`
	Amount uint64     `json:"amount"`
	FeeTx  HexBytes   `json:"fee_tx"`
}

func (o UpdateTokenBalance) IsWellFormed(common.Config) error {
	return nil
}

func (o UpdateTokenBalance) HasFee() bool {
	return true
}

func (o UpdateTokenBalance) GetFeeTx() []byte {
	return o.FeeTx
}
