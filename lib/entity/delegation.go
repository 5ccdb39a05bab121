package entity

import (
	"boscoin.io/votebook/lib/common"
	"boscoin.io/votebook/lib/errors"
)

type Delegation struct {
	ID         uint64         `json:"id"`
	Delegator  common.Key     `json:"delegator"`
	Delegate   common.Key     `json:"delegate"`
	PollID     OptionalUint64 `json:"poll_id"`
	Expiration OptionalUint64 `json:"expiration"`
	IsActive   bool           `json:"is_active"`
}

func (d *Delegation) Serialize() ([]byte, error) {
	return Encode(d)
}

func (d *Delegation) Deserialize(b []byte) error {
	return Decode(b, d)
}

func (d *Delegation) IsExpired(now uint64) bool {
	expiration, ok := d.Expiration.Get()
	return ok && now > expiration
}

// CheckUsable verifies `voter` may cast a ballot in `pollID` through this
// delegation at `now`.
func (d *Delegation) CheckUsable(pollID uint64, voter common.Key, now uint64) error {
	if d.Delegator != voter {
		return errors.InvalidDelegation.Clone().SetData("reason", "not delegator")
	}
	if !d.IsActive {
		return errors.InvalidDelegation.Clone().SetData("reason", "revoked")
	}
	if scoped, ok := d.PollID.Get(); ok && scoped != pollID {
		return errors.InvalidDelegation.Clone().SetData("reason", "other poll")
	}
	if d.IsExpired(now) {
		return errors.DelegationExpired.Clone().SetData("delegation", d.ID)
	}

	return nil
}
