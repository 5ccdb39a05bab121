package runner

import (
	"encoding/hex"
	"sync"
	"time"

	logging "github.com/inconshreveable/log15"

	"boscoin.io/votebook/lib/account"
	"boscoin.io/votebook/lib/common"
	"boscoin.io/votebook/lib/common/observer"
	"boscoin.io/votebook/lib/engine"
	"boscoin.io/votebook/lib/fee"
	"boscoin.io/votebook/lib/metrics"
	"boscoin.io/votebook/lib/node"
	"boscoin.io/votebook/lib/operation"
	"boscoin.io/votebook/lib/storage"
)

//
// Runner admits one request at a time: it loads the accounts, runs the
// engine and commits the changed accounts with the history record in one
// storage transaction.
//
type Runner struct {
	sync.Mutex

	storage *storage.LevelDBBackend
	engine  *engine.Engine
	config  common.Config
	state   node.State
	started time.Time
	log     logging.Logger
}

func NewRunner(st *storage.LevelDBBackend, config common.Config, clock common.Clock) *Runner {
	return &Runner{
		storage: st,
		engine:  engine.NewEngine(config, clock),
		config:  config,
		state:   node.NodeInitState,
		log:     log.New(logging.Ctx{"network-id": string(config.NetworkID)}),
	}
}

func (r *Runner) Storage() *storage.LevelDBBackend {
	return r.storage
}

func (r *Runner) Engine() *engine.Engine {
	return r.engine
}

func (r *Runner) Config() common.Config {
	return r.config
}

func (r *Runner) State() node.State {
	r.Lock()
	defer r.Unlock()

	return r.state
}

func (r *Runner) setState(state node.State) {
	r.Lock()
	defer r.Unlock()

	r.log.Debug("state changed", "from", r.state, "to", state)
	r.state = state
}

func (r *Runner) Start() {
	r.setState(node.StateBOOTING)
	r.started = time.Now()
	metrics.SetVersion()
	r.setState(node.StateRUNNING)
}

func (r *Runner) Stop() {
	r.setState(node.StateTERMINATING)
}

func (r *Runner) NodeInfo() node.NodeInfo {
	return node.NewNodeInfo(r.config, common.FormatISO8601(r.started), r.State(), r.engine.Clock().Now())
}

// Submit executes a signed request. Nothing is stored when it fails.
func (r *Runner) Submit(req *node.Request) (receipt *node.Receipt, err error) {
	started := time.Now()
	defer func() {
		metrics.Engine.AddOperation(string(req.B.Operation.H.Type), err, time.Since(started))
	}()

	if err = req.IsWellFormed(r.config); err != nil {
		r.log.Debug("request is not well formed", "hash", req.GetHash(), "error", err)
		return
	}

	if receipt, err = r.submit(req); err != nil {
		r.log.Debug("failed to submit request", "hash", req.GetHash(), "error", err)
		return
	}

	if receipt.History != nil {
		TriggerEvent(receipt.History)
		countMetrics(receipt.History)
	}

	return
}

func (r *Runner) submit(req *node.Request) (receipt *node.Receipt, err error) {
	r.Lock()
	defer r.Unlock()

	var ts *storage.LevelDBBackend
	if ts, err = r.storage.OpenTransaction(); err != nil {
		return
	}
	defer func() {
		if err != nil {
			ts.Discard()
		}
	}()

	var accounts []*account.Account
	if accounts, err = node.LoadAccounts(ts, req.B.Accounts, req.Signer); err != nil {
		return
	}

	var result *engine.Result
	if result, err = r.engine.Execute(req.B.Operation, accounts); err != nil {
		return
	}

	receipt = &node.Receipt{
		Hash:    req.GetHash(),
		Results: result.Results,
	}

	if result.Binding == nil {
		err = ts.Discard()
		return
	}

	var history *node.History
	if history, err = makeHistory(req, result); err != nil {
		return
	}

	var writable []*account.Account
	for _, a := range accounts {
		if a.IsWritable {
			writable = append(writable, a)
		}
	}
	if err = account.SaveAccounts(ts, writable...); err != nil {
		return
	}

	if req.B.Operation.H.Type == operation.TypeCreatePoll {
		pollAccounts := node.PollAccounts{
			Poll:     accounts[1].Key.Address(),
			Count:    accounts[2].Key.Address(),
			Registry: accounts[3].Key.Address(),
		}
		if err = pollAccounts.Save(ts); err != nil {
			return
		}
	}

	if err = history.Save(ts); err != nil {
		return
	}
	if err = ts.Commit(); err != nil {
		return
	}

	receipt.History = history
	r.log.Debug(
		"operation committed",
		"type", history.Type,
		"hash", history.Hash,
		"binding", history.BindingTxHash,
		"accounts", len(history.Accounts),
	)

	return
}

func makeHistory(req *node.Request, result *engine.Result) (*node.History, error) {
	history := node.NewHistory(req, time.Now())
	history.Time = result.Time
	history.TargetID = result.ID
	if result.Poll != nil {
		history.Poll = result.Poll.Address()
	}

	if payable, ok := req.B.Operation.B.(operation.Payable); ok {
		feeTx, err := fee.ParseFeeTransaction(payable.GetFeeTx())
		if err != nil {
			return nil, err
		}
		history.FeeTxHash = feeTx.TxHash().String()
	}

	binding, err := result.Binding.Serialize()
	if err != nil {
		return nil, err
	}
	history.Binding = hex.EncodeToString(binding)
	history.BindingTxHash = result.Binding.TxHash()

	return history, nil
}

func countMetrics(h *node.History) {
	switch h.Type {
	case operation.TypeCreatePoll:
		metrics.Engine.AddPoll()
	case operation.TypeCastVote, operation.TypeChangeVote:
		metrics.Engine.AddVote()
	}
}

// TriggerEvent lets the observers know about a committed operation.
func TriggerEvent(h *node.History) {
	var (
		t     = observer.OperationObserver.Trigger
		event = observer.NewEvent
	)

	t(event(observer.ResourceOperation, observer.ConditionAll, "").String(), h)
	t(event(observer.ResourceOperation, observer.ConditionType, string(h.Type)).String(), h)

	if len(h.Poll) < 1 {
		return
	}

	observer.PollObserver.Trigger(event(observer.ResourcePoll, observer.ConditionAll, "").String(), h)
	observer.PollObserver.Trigger(event(observer.ResourcePoll, observer.ConditionAddress, h.Poll).String(), h)
}
