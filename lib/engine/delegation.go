package engine

import (
	"boscoin.io/votebook/lib/account"
	"boscoin.io/votebook/lib/entity"
	"boscoin.io/votebook/lib/errors"
	"boscoin.io/votebook/lib/operation"
)

func (e *Engine) delegateVote(body operation.DelegateVote, accounts []*account.Account, now uint64, result *Result) error {
	if err := account.CheckAccountsLength(accounts, 3); err != nil {
		return err
	}
	delegator, delegationAccount, delegate := accounts[0], accounts[1], accounts[2]
	if err := delegator.CheckSigner(); err != nil {
		return err
	}
	if err := checkWritable(delegationAccount); err != nil {
		return err
	}

	if expiration, ok := body.Expiration.Get(); ok && expiration <= now {
		return errors.InvalidPollParameters.Clone().SetData("reason", "expiration already passed")
	}

	// a revoked delegation account may be used again
	if !delegationAccount.IsEmpty() {
		var existing entity.Delegation
		if err := existing.Deserialize(delegationAccount.Data); err != nil {
			return invalidAccountData(delegationAccount, "not a delegation")
		}
		if existing.IsActive {
			return errors.DelegationAlreadyExists.Clone().SetData("delegation", existing.ID)
		}
	}

	delegation := &entity.Delegation{
		ID:         entity.MakeID(now, delegator.Key),
		Delegator:  delegator.Key,
		Delegate:   delegate.Key,
		PollID:     body.PollID,
		Expiration: body.Expiration,
		IsActive:   true,
	}
	if err := store(delegationAccount, delegation); err != nil {
		return err
	}

	result.ID = delegation.ID

	log.Debug("vote delegated", "delegation", delegation.ID, "delegator", delegator.Key, "delegate", delegate.Key)

	return nil
}

func (e *Engine) revokeDelegation(body operation.RevokeDelegation, accounts []*account.Account, result *Result) error {
	if err := account.CheckAccountsLength(accounts, 2); err != nil {
		return err
	}
	delegator, delegationAccount := accounts[0], accounts[1]
	if err := delegator.CheckSigner(); err != nil {
		return err
	}
	if err := checkWritable(delegationAccount); err != nil {
		return err
	}

	var delegation entity.Delegation
	if delegationAccount.IsEmpty() || delegation.Deserialize(delegationAccount.Data) != nil {
		return errors.DelegationNotFound.Clone().SetData("delegation", body.DelegationID)
	}
	if delegation.ID != body.DelegationID {
		return errors.DelegationNotFound.Clone().SetData("delegation", body.DelegationID)
	}
	if delegation.Delegator != delegator.Key {
		return errors.NotDelegator
	}
	if !delegation.IsActive {
		return errors.InvalidDelegation.Clone().SetData("reason", "already revoked")
	}

	delegation.IsActive = false
	if err := store(delegationAccount, &delegation); err != nil {
		return err
	}

	result.ID = delegation.ID

	return nil
}
