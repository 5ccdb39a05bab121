package engine

import (
	"boscoin.io/votebook/lib/account"
	"boscoin.io/votebook/lib/common"
	"boscoin.io/votebook/lib/fee"
	"boscoin.io/votebook/lib/operation"
)

func MakeTestEngine(now uint64) (*Engine, *common.FixedClock) {
	clock := common.NewFixedClock(now)
	return NewEngine(common.NewTestConfig(), clock), clock
}

// TestPoll holds the accounts of a poll created by `CreateTestPoll`.
type TestPoll struct {
	ID       uint64
	Creator  *account.Account
	Poll     *account.Account
	Count    *account.Account
	Registry *account.Account
}

func CreateTestPoll(e *Engine, body operation.CreatePoll, extra ...*account.Account) (*TestPoll, error) {
	p := &TestPoll{
		Creator:  account.TestMakeAccount(true, false),
		Poll:     account.TestMakeAccount(false, true),
		Count:    account.TestMakeAccount(false, true),
		Registry: account.TestMakeAccount(false, true),
	}

	accounts := append([]*account.Account{p.Creator, p.Poll, p.Count, p.Registry}, extra...)
	result, err := e.Execute(operation.MustNewOperation(body), accounts)
	if err != nil {
		return nil, err
	}
	p.ID = result.ID

	return p, nil
}

// VoteAccounts returns the accounts `CastVote` expects, without the
// optional ones.
func (p *TestPoll) VoteAccounts(voter, vote *account.Account) []*account.Account {
	return []*account.Account{voter, vote, p.Poll, p.Count, p.Registry}
}

// CastTestVote casts a plain ballot for `option` with a new voter and a new
// vote account.
func (p *TestPoll) CastTestVote(e *Engine, option uint8) (voter, vote *account.Account, err error) {
	voter = account.TestMakeAccount(true, false)
	vote = account.TestMakeAccount(false, true)

	body := operation.MakeTestCastVote(p.ID, option, fee.MakeTestFeeTransaction())
	_, err = e.Execute(operation.MustNewOperation(body), p.VoteAccounts(voter, vote))
	return
}
