// Package fee binds the fee transaction a caller supplies to the accounts
// an operation changed.
package fee

import (
	"bytes"
	"encoding/hex"
	"fmt"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/txscript"
	"github.com/btcsuite/btcd/wire"

	"boscoin.io/votebook/lib/account"
	"boscoin.io/votebook/lib/common"
	"boscoin.io/votebook/lib/errors"
)

const BindingTxVersion int32 = 2

type InputToSign struct {
	Index  uint32     `json:"index"`
	Signer common.Key `json:"signer"`
}

// Binding is the transaction which spends the fee input and commits to the
// new content of every writable account.
type Binding struct {
	Tx           *wire.MsgTx
	InputsToSign []InputToSign
}

func (b *Binding) Serialize() ([]byte, error) {
	var buf bytes.Buffer
	if err := b.Tx.Serialize(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (b *Binding) TxHash() string {
	return b.Tx.TxHash().String()
}

func (b *Binding) String() string {
	s, _ := b.Serialize()
	return hex.EncodeToString(s)
}

// ParseFeeTransaction decodes a serialized bitcoin transaction. Bytes left
// after the transaction make it invalid. A transaction without inputs looks
// like the segwit marker, so the legacy encoding is tried when the witness
// one fails.
func ParseFeeTransaction(raw []byte) (*wire.MsgTx, error) {
	decoders := []func(*wire.MsgTx, *bytes.Reader) error{
		func(tx *wire.MsgTx, r *bytes.Reader) error { return tx.Deserialize(r) },
		func(tx *wire.MsgTx, r *bytes.Reader) error { return tx.DeserializeNoWitness(r) },
	}

	var err error
	for _, decode := range decoders {
		r := bytes.NewReader(raw)
		tx := &wire.MsgTx{}
		if err = decode(tx, r); err != nil {
			continue
		}
		if r.Len() > 0 {
			err = fmt.Errorf("%d trailing bytes", r.Len())
			continue
		}
		return tx, nil
	}

	return nil, errors.InvalidFeeTransaction.Clone().SetData("error", err.Error())
}

// Commitment is the hash of the account key followed by its data.
func Commitment(a *account.Account) []byte {
	b := make([]byte, 0, len(a.Key)+len(a.Data))
	b = append(b, a.Key[:]...)
	b = append(b, a.Data...)
	return chainhash.HashB(b)
}

//
// Bind builds the binding transaction for the accounts of one operation.
// The first account always signs the fee input.
//
func Bind(accounts []*account.Account, raw []byte) (*Binding, error) {
	if len(accounts) < 1 {
		return nil, errors.NotEnoughAccountKeys
	}

	feeTx, err := ParseFeeTransaction(raw)
	if err != nil {
		return nil, err
	}
	if len(feeTx.TxIn) < 1 {
		return nil, errors.InsufficientFees.Clone().SetData("error", "fee transaction has no input")
	}

	tx := wire.NewMsgTx(BindingTxVersion)
	tx.LockTime = 0

	in := feeTx.TxIn[0]
	tx.AddTxIn(wire.NewTxIn(&in.PreviousOutPoint, in.SignatureScript, in.Witness))
	tx.TxIn[0].Sequence = in.Sequence

	for _, a := range accounts {
		if !a.IsWritable {
			continue
		}

		script, err := txscript.NullDataScript(Commitment(a))
		if err != nil {
			return nil, errors.InvalidFeeTransaction.Clone().SetData("error", err.Error())
		}
		tx.AddTxOut(wire.NewTxOut(0, script))
	}

	return &Binding{
		Tx: tx,
		InputsToSign: []InputToSign{
			{Index: 0, Signer: accounts[0].Key},
		},
	}, nil
}
