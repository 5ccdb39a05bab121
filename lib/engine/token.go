package engine

import (
	"boscoin.io/votebook/lib/account"
	"boscoin.io/votebook/lib/entity"
	"boscoin.io/votebook/lib/errors"
	"boscoin.io/votebook/lib/operation"
)

// updateTokenBalance overwrites the balance snapshot of the owner. The
// amount is reported by the owner and is not checked against the token.
func (e *Engine) updateTokenBalance(body operation.UpdateTokenBalance, accounts []*account.Account, now uint64, result *Result) error {
	if err := account.CheckAccountsLength(accounts, 3); err != nil {
		return err
	}
	owner, balanceAccount, token := accounts[0], accounts[1], accounts[2]
	if err := owner.CheckSigner(); err != nil {
		return err
	}
	if err := checkWritable(balanceAccount); err != nil {
		return err
	}
	if token.Key != body.Token {
		return errors.InvalidToken.Clone().SetData("token", token.Key.Address())
	}

	if !balanceAccount.IsEmpty() {
		var previous entity.TokenBalance
		if err := previous.Deserialize(balanceAccount.Data); err != nil {
			return invalidAccountData(balanceAccount, "not a token balance")
		}
		if previous.Owner != owner.Key {
			return invalidAccountData(balanceAccount, "token balance of another owner")
		}
	}

	balance := &entity.TokenBalance{
		Owner:       owner.Key,
		Token:       body.Token,
		Amount:      body.Amount,
		LastUpdated: now,
	}
	if err := store(balanceAccount, balance); err != nil {
		return err
	}

	log.Debug("token balance updated", "owner", owner.Key, "token", body.Token, "amount", body.Amount)

	return nil
}
