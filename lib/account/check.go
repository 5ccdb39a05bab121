package account

import (
	"boscoin.io/votebook/lib/errors"
)

func CheckAccountsLength(accounts []*Account, required int) error {
	if len(accounts) < required {
		return errors.NotEnoughAccountKeys.Clone().
			SetData("required", required).
			SetData("given", len(accounts))
	}
	return nil
}

func (a *Account) CheckSigner() error {
	if !a.IsSigner {
		return errors.MissingRequiredSignature.Clone().SetData("account", a.Key.Address())
	}
	return nil
}

func (a *Account) CheckWritable() error {
	if !a.IsWritable {
		return errors.AccountNotWritable.Clone().SetData("account", a.Key.Address())
	}
	return nil
}
