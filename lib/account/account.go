package account

import (
	"fmt"

	"boscoin.io/votebook/lib/common"
	"boscoin.io/votebook/lib/errors"
	"boscoin.io/votebook/lib/storage"
)

// Account is a keyed byte buffer handed to an operation. The buffer only
// grows; data that does not fit and can not be resized is rejected instead
// of being truncated.
//
// models
//  * 'address'
// 	- 'ac-address-<Account.Key.Address()>': raw `Account.Data`
const AccountPrefixAddress string = "ac-address-"

type Account struct {
	Key        common.Key
	Data       []byte
	IsSigner   bool
	IsWritable bool
	Resizable  bool
}

func NewAccount(key common.Key, data []byte, isSigner, isWritable bool) *Account {
	return &Account{
		Key:        key,
		Data:       data,
		IsSigner:   isSigner,
		IsWritable: isWritable,
		Resizable:  true,
	}
}

func (a *Account) String() string {
	return fmt.Sprintf(
		"Account{%s signer=%t writable=%t len=%d}",
		a.Key.Address(), a.IsSigner, a.IsWritable, len(a.Data),
	)
}

// IsEmpty reports whether the buffer holds nothing; a zero-filled buffer
// counts as empty.
func (a *Account) IsEmpty() bool {
	for _, b := range a.Data {
		if b != 0 {
			return false
		}
	}
	return true
}

// Realloc grows the buffer to `size` bytes. It never shrinks.
func (a *Account) Realloc(size int) error {
	if size <= len(a.Data) {
		return nil
	}
	if !a.Resizable {
		return errors.AccountDataTooSmall.Clone().
			SetData("account", a.Key.Address()).
			SetData("required", size).
			SetData("available", len(a.Data))
	}

	data := make([]byte, size)
	copy(data, a.Data)
	a.Data = data

	return nil
}

// Store writes `b` at the start of the buffer, growing it when needed and
// zeroing whatever was left after it.
func (a *Account) Store(b []byte) error {
	if !a.IsWritable {
		return errors.AccountNotWritable.Clone().SetData("account", a.Key.Address())
	}
	if err := a.Realloc(len(b)); err != nil {
		return err
	}

	n := copy(a.Data, b)
	for i := n; i < len(a.Data); i++ {
		a.Data[i] = 0
	}

	return nil
}

func (a *Account) Clone() *Account {
	n := *a
	n.Data = make([]byte, len(a.Data))
	copy(n.Data, a.Data)
	return &n
}

func GetAccountKey(address string) string {
	return fmt.Sprintf("%s%s", AccountPrefixAddress, address)
}

func (a *Account) Save(st *storage.LevelDBBackend) error {
	return st.PutRaw(GetAccountKey(a.Key.Address()), a.Data)
}

// SaveAccounts writes the buffers of `accounts` in one batch.
func SaveAccounts(st *storage.LevelDBBackend, accounts ...*Account) error {
	if len(accounts) < 1 {
		return nil
	}

	items := make([]storage.Item, len(accounts))
	for i, a := range accounts {
		items[i] = storage.Item{Key: GetAccountKey(a.Key.Address()), Value: a.Data}
	}

	return st.Sets(items...)
}

func ExistAccount(st *storage.LevelDBBackend, key common.Key) (bool, error) {
	return st.Has(GetAccountKey(key.Address()))
}

//
// GetAccount loads the buffer stored for `key`. An account which was never
// written is returned with an empty buffer.
//
func GetAccount(st *storage.LevelDBBackend, key common.Key) (*Account, error) {
	data, err := st.GetRaw(GetAccountKey(key.Address()))
	if err != nil {
		if !errors.Is(err, errors.StorageRecordDoesNotExist) {
			return nil, err
		}
		data = []byte{}
	}

	return NewAccount(key, data, false, false), nil
}
