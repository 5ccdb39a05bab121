package resource

import (
	"encoding/hex"

	"github.com/nvellon/hal"

	"boscoin.io/votebook/lib/account"
)

type Account struct {
	a *account.Account
}

func NewAccount(a *account.Account) *Account {
	return &Account{a: a}
}

func (a Account) GetMap() hal.Entry {
	return hal.Entry{
		"address": a.a.Key.Address(),
		"size":    len(a.a.Data),
		"data":    hex.EncodeToString(a.a.Data),
	}
}

func (a Account) Resource() *hal.Resource {
	return hal.NewResource(a, a.LinkSelf())
}

func (a Account) LinkSelf() string {
	return replaceID(URLAccounts, a.a.Key.Address())
}
