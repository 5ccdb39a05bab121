package runner

import (
	"boscoin.io/votebook/lib/common"
	"boscoin.io/votebook/lib/common/keypair"
	"boscoin.io/votebook/lib/node"
	"boscoin.io/votebook/lib/operation"
	"boscoin.io/votebook/lib/storage"
)

func MakeTestRunner(now uint64) (*Runner, *common.FixedClock) {
	clock := common.NewFixedClock(now)
	r := NewRunner(storage.MustNewTestMemoryLevelDBBackend(), common.NewTestConfig(), clock)
	r.Start()

	return r, clock
}

// NewTestRequest makes a request signed by `kp`.
func NewTestRequest(r *Runner, kp *keypair.Full, body operation.Body, metas ...node.AccountMeta) *node.Request {
	req := node.NewRequest(operation.MustNewOperation(body), metas...)
	if err := req.Sign(kp, r.Config().NetworkID); err != nil {
		panic(err)
	}
	return req
}

func Signer(kp *keypair.Full) node.AccountMeta {
	return node.AccountMeta{Address: kp.Address()}
}

func Writable(address string) node.AccountMeta {
	return node.AccountMeta{Address: address, Writable: true}
}

func ReadOnly(address string) node.AccountMeta {
	return node.AccountMeta{Address: address}
}
