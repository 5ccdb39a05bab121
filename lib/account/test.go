package account

import (
	"boscoin.io/votebook/lib/common"
	"boscoin.io/votebook/lib/common/keypair"
)

func TestMakeKey() common.Key {
	return keypair.Key(keypair.Random())
}

// TestMakeAccount returns an empty, resizable account with a random key.
func TestMakeAccount(isSigner, isWritable bool) *Account {
	return NewAccount(TestMakeKey(), []byte{}, isSigner, isWritable)
}
