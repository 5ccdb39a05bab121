// Package engine applies operations to the accounts they name. Nothing is
// persisted here: the engine only changes the account buffers it was given,
// and only when the whole operation, fee binding included, succeeded.
package engine

import (
	"boscoin.io/votebook/lib/account"
	"boscoin.io/votebook/lib/common"
	"boscoin.io/votebook/lib/entity"
	"boscoin.io/votebook/lib/errors"
	"boscoin.io/votebook/lib/fee"
	"boscoin.io/votebook/lib/operation"
)

type Engine struct {
	config common.Config
	clock  common.Clock
}

func NewEngine(config common.Config, clock common.Clock) *Engine {
	return &Engine{config: config, clock: clock}
}

func (e *Engine) Config() common.Config {
	return e.config
}

func (e *Engine) Clock() common.Clock {
	return e.clock
}

// Result describes what a successful operation did.
type Result struct {
	Type operation.OperationType
	Time uint64

	// ID is the id of the poll or the delegation the operation created or
	// changed.
	ID uint64

	// Poll is the poll account, when the operation concerns a poll.
	Poll *common.Key

	// Binding is nil for read only operations.
	Binding *fee.Binding

	// Results is only set by `GetResults`.
	Results *entity.Results
}

//
// Execute runs one operation against `accounts`, in the order the operation
// expects them. On error the accounts are left untouched; on success their
// buffers hold the new state and the returned `Result` carries the fee
// binding which commits to it.
//
func (e *Engine) Execute(op operation.Operation, accounts []*account.Account) (*Result, error) {
	now := e.clock.Now()

	working := make([]*account.Account, len(accounts))
	for i, a := range accounts {
		working[i] = a.Clone()
	}

	result := &Result{Type: op.H.Type, Time: now}
	if err := e.executeOperation(op, working, now, result); err != nil {
		log.Debug("operation failed", "type", op.H.Type, "error", err)
		return nil, err
	}

	if op.HasFee() {
		payable, ok := op.B.(operation.Payable)
		if !ok {
			return nil, errors.UnknownOperationType
		}

		binding, err := fee.Bind(working, payable.GetFeeTx())
		if err != nil {
			log.Debug("failed to bind fee", "type", op.H.Type, "error", err)
			return nil, err
		}
		result.Binding = binding
	}

	for i, a := range working {
		accounts[i].Data = a.Data
	}

	log.Debug("operation executed", "type", op.H.Type, "id", result.ID, "now", now)

	return result, nil
}

func (e *Engine) executeOperation(op operation.Operation, accounts []*account.Account, now uint64, result *Result) (err error) {
	switch op.H.Type {
	case operation.TypeCreatePoll:
		pop, ok := op.B.(operation.CreatePoll)
		if !ok {
			return errors.UnknownOperationType
		}
		return e.createPoll(pop, accounts, now, result)
	case operation.TypeCancelPoll:
		pop, ok := op.B.(operation.CancelPoll)
		if !ok {
			return errors.UnknownOperationType
		}
		return e.cancelPoll(pop, accounts, now, result)
	case operation.TypeCastVote:
		pop, ok := op.B.(operation.CastVote)
		if !ok {
			return errors.UnknownOperationType
		}
		return e.castVote(pop, accounts, now, result)
	case operation.TypeChangeVote:
		pop, ok := op.B.(operation.ChangeVote)
		if !ok {
			return errors.UnknownOperationType
		}
		return e.changeVote(pop, accounts, now, result)
	case operation.TypeClosePoll:
		pop, ok := op.B.(operation.ClosePoll)
		if !ok {
			return errors.UnknownOperationType
		}
		return e.closePoll(pop, accounts, now, result)
	case operation.TypeGetResults:
		pop, ok := op.B.(operation.GetResults)
		if !ok {
			return errors.UnknownOperationType
		}
		return e.getResults(pop, accounts, result)
	case operation.TypeDecryptResults:
		pop, ok := op.B.(operation.DecryptResults)
		if !ok {
			return errors.UnknownOperationType
		}
		return e.decryptResults(pop, accounts, now, result)
	case operation.TypeDelegateVote:
		pop, ok := op.B.(operation.DelegateVote)
		if !ok {
			return errors.UnknownOperationType
		}
		return e.delegateVote(pop, accounts, now, result)
	case operation.TypeRevokeDelegation:
		pop, ok := op.B.(operation.RevokeDelegation)
		if !ok {
			return errors.UnknownOperationType
		}
		return e.revokeDelegation(pop, accounts, result)
	case operation.TypeUpdateTokenBalance:
		pop, ok := op.B.(operation.UpdateTokenBalance)
		if !ok {
			return errors.UnknownOperationType
		}
		return e.updateTokenBalance(pop, accounts, now, result)
	default:
		err = errors.UnknownOperationType.Clone().SetData("type", op.H.Type)
		return
	}
}

// GetResults is the read only path used by the API; it needs neither a fee
// nor signers.
func (e *Engine) GetResults(pollID uint64, pollAccount, voteCountAccount *account.Account) (*entity.Results, error) {
	result := &Result{}
	err := e.getResults(
		operation.GetResults{PollID: pollID},
		[]*account.Account{pollAccount, voteCountAccount},
		result,
	)
	if err != nil {
		return nil, err
	}
	return result.Results, nil
}
