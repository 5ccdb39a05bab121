package node

import (
	"boscoin.io/votebook/lib/account"
	"boscoin.io/votebook/lib/common"
	"boscoin.io/votebook/lib/engine"
	"boscoin.io/votebook/lib/entity"
	"boscoin.io/votebook/lib/errors"
	"boscoin.io/votebook/lib/storage"
)

// LoadAccounts reads the accounts of a request in order and sets their
// flags. Accounts which were never written come back empty.
func LoadAccounts(st *storage.LevelDBBackend, metas []AccountMeta, signer string) ([]*account.Account, error) {
	accounts := make([]*account.Account, 0, len(metas))
	for _, meta := range metas {
		key, err := common.ParseKey(meta.Address)
		if err != nil {
			return nil, err
		}

		a, err := account.GetAccount(st, key)
		if err != nil {
			return nil, err
		}
		a.IsSigner = meta.Address == signer
		a.IsWritable = meta.Writable

		accounts = append(accounts, a)
	}

	return accounts, nil
}

func GetAccountByAddress(st *storage.LevelDBBackend, address string) (*account.Account, error) {
	key, err := common.ParseKey(address)
	if err != nil {
		return nil, err
	}

	found, err := account.ExistAccount(st, key)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, errors.StorageRecordDoesNotExist.Clone().SetData("address", address)
	}

	return account.GetAccount(st, key)
}

func GetPoll(st *storage.LevelDBBackend, address string) (*entity.Poll, error) {
	a, err := GetAccountByAddress(st, address)
	if err != nil {
		return nil, err
	}

	var poll entity.Poll
	if err = poll.Deserialize(a.Data); err != nil {
		return nil, errors.PollDoesNotExist.Clone().SetData("address", address)
	}

	return &poll, nil
}

// GetResults reports the results of the poll stored at `address`.
func GetResults(st *storage.LevelDBBackend, e *engine.Engine, address string) (*entity.Results, error) {
	poll, err := GetPoll(st, address)
	if err != nil {
		return nil, err
	}

	accounts, err := GetPollAccounts(st, address)
	if err != nil {
		return nil, err
	}

	pollAccount, err := GetAccountByAddress(st, accounts.Poll)
	if err != nil {
		return nil, err
	}
	countAccount, err := GetAccountByAddress(st, accounts.Count)
	if err != nil {
		return nil, err
	}

	return e.GetResults(poll.ID, pollAccount, countAccount)
}
