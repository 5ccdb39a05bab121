package fee

import (
	"bytes"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
)

// MakeTestFeeTransaction returns a serialized transaction with one input
// and one output.
func MakeTestFeeTransaction() []byte {
	tx := wire.NewMsgTx(wire.TxVersion)

	prev := wire.NewOutPoint(&chainhash.Hash{1, 2, 3}, 0)
	tx.AddTxIn(wire.NewTxIn(prev, []byte{0x51}, nil))
	tx.AddTxOut(wire.NewTxOut(1000, []byte{0x51}))

	var buf bytes.Buffer
	if err := tx.Serialize(&buf); err != nil {
		panic(err)
	}
	return buf.Bytes()
}

// MakeTestFeeTransactionWithoutInput returns a serialized transaction which
// spends nothing.
func MakeTestFeeTransactionWithoutInput() []byte {
	tx := wire.NewMsgTx(wire.TxVersion)
	tx.AddTxOut(wire.NewTxOut(1000, []byte{0x51}))

	var buf bytes.Buffer
	if err := tx.SerializeNoWitness(&buf); err != nil {
		panic(err)
	}
	return buf.Bytes()
}
