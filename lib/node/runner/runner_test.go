package runner

import (
	"bytes"
	"encoding/json"
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"boscoin.io/votebook/lib/account"
	"boscoin.io/votebook/lib/common/keypair"
	"boscoin.io/votebook/lib/common/observer"
	"boscoin.io/votebook/lib/errors"
	"boscoin.io/votebook/lib/fee"
	"boscoin.io/votebook/lib/node"
	"boscoin.io/votebook/lib/operation"
	"boscoin.io/votebook/lib/storage"
)

const (
	testNow   uint64 = 100
	testStart uint64 = 200
	testEnd   uint64 = 1000
)

type testPoll struct {
	creator  *keypair.Full
	poll     string
	count    string
	registry string
	id       uint64
}

func newTestPoll() *testPoll {
	return &testPoll{
		creator:  keypair.Random(),
		poll:     account.TestMakeKey().Address(),
		count:    account.TestMakeKey().Address(),
		registry: account.TestMakeKey().Address(),
	}
}

func (p *testPoll) createRequest(r *Runner) *node.Request {
	body := operation.MakeTestCreatePoll(testStart, testEnd, fee.MakeTestFeeTransaction())
	return NewTestRequest(r, p.creator, body, Signer(p.creator), Writable(p.poll), Writable(p.count), Writable(p.registry))
}

func (p *testPoll) voteRequest(r *Runner, voter *keypair.Full, vote string, option uint8) *node.Request {
	body := operation.MakeTestCastVote(p.id, option, fee.MakeTestFeeTransaction())
	return NewTestRequest(r, voter, body, Signer(voter), Writable(vote), Writable(p.poll), Writable(p.count), Writable(p.registry))
}

func createTestPoll(t *testing.T, r *Runner) *testPoll {
	p := newTestPoll()
	receipt, err := r.Submit(p.createRequest(r))
	require.NoError(t, err)
	p.id = receipt.History.TargetID
	return p
}

func countHistories(st *storage.LevelDBBackend) (n int) {
	iterFunc, closeFunc := node.GetHistories(st, nil)
	defer closeFunc()
	for {
		if _, hasNext, _ := iterFunc(); !hasNext {
			return
		}
		n++
	}
}

func TestRunnerCreatePoll(t *testing.T) {
	r, _ := MakeTestRunner(testNow)
	defer r.Storage().Close()

	p := newTestPoll()
	req := p.createRequest(r)

	receipt, err := r.Submit(req)
	require.NoError(t, err)
	require.Equal(t, req.GetHash(), receipt.Hash)
	require.Nil(t, receipt.Results)

	h := receipt.History
	require.NotNil(t, h)
	require.Equal(t, operation.TypeCreatePoll, h.Type)
	require.Equal(t, p.creator.Address(), h.Signer)
	require.Equal(t, p.poll, h.Poll)
	require.Equal(t, testNow, h.Time)
	require.Equal(t, []string{p.poll, p.count, p.registry}, h.Accounts)
	require.NotEmpty(t, h.FeeTxHash)
	require.NotEmpty(t, h.BindingTxHash)
	require.NotEmpty(t, h.Binding)

	poll, err := node.GetPoll(r.Storage(), p.poll)
	require.NoError(t, err)
	require.Equal(t, h.TargetID, poll.ID)
	require.Equal(t, p.creator.Address(), poll.Creator.Address())

	pa, err := node.GetPollAccounts(r.Storage(), p.poll)
	require.NoError(t, err)
	require.Equal(t, node.PollAccounts{Poll: p.poll, Count: p.count, Registry: p.registry}, pa)

	stored, err := node.GetHistory(r.Storage(), h.Order)
	require.NoError(t, err)
	require.Equal(t, *h, stored)

	// the same accounts can not hold a second poll
	_, err = r.Submit(p.createRequest(r))
	require.True(t, errors.Is(err, errors.PollAlreadyExists), err)
	require.Equal(t, 1, countHistories(r.Storage()))
}

func TestRunnerCastVote(t *testing.T) {
	r, clock := MakeTestRunner(testNow)
	defer r.Storage().Close()

	p := createTestPoll(t, r)

	voter := keypair.Random()
	{ // too early
		_, err := r.Submit(p.voteRequest(r, voter, account.TestMakeKey().Address(), 0))
		require.True(t, errors.Is(err, errors.PollNotStarted), err)
	}

	clock.Set(testStart)

	vote := account.TestMakeKey().Address()
	receipt, err := r.Submit(p.voteRequest(r, voter, vote, 1))
	require.NoError(t, err)
	require.Equal(t, operation.TypeCastVote, receipt.History.Type)
	require.Equal(t, p.poll, receipt.History.Poll)

	results, err := node.GetResults(r.Storage(), r.Engine(), p.poll)
	require.NoError(t, err)
	require.Equal(t, uint64(1), results.TotalVoters)
	require.Equal(t, uint64(1), results.Options[1].Count)

	{ // the vote account holds the ballot
		a, err := node.GetAccountByAddress(r.Storage(), vote)
		require.NoError(t, err)
		require.False(t, a.IsEmpty())
	}

	{ // second ballot of the same voter is rejected and nothing is stored
		another := account.TestMakeKey().Address()
		_, err := r.Submit(p.voteRequest(r, voter, another, 2))
		require.True(t, errors.Is(err, errors.AlreadyVoted), err)

		_, err = node.GetAccountByAddress(r.Storage(), another)
		require.True(t, errors.Is(err, errors.StorageRecordDoesNotExist), err)
		require.Equal(t, 2, countHistories(r.Storage()))
	}

	{ // poll history
		iterFunc, closeFunc := node.GetHistoriesByPoll(r.Storage(), p.poll, storage.NewDefaultListOptions(true, nil, 0))
		defer closeFunc()

		var types []operation.OperationType
		for {
			h, hasNext, _ := iterFunc()
			if !hasNext {
				break
			}
			types = append(types, h.Type)
		}
		require.Equal(t, []operation.OperationType{operation.TypeCastVote, operation.TypeCreatePoll}, types)
	}
}

func TestRunnerReadOnlyOperation(t *testing.T) {
	r, clock := MakeTestRunner(testNow)
	defer r.Storage().Close()

	p := createTestPoll(t, r)
	clock.Set(testStart)

	_, err := r.Submit(p.voteRequest(r, keypair.Random(), account.TestMakeKey().Address(), 0))
	require.NoError(t, err)

	reader := keypair.Random()
	req := NewTestRequest(r, reader, operation.GetResults{PollID: p.id}, ReadOnly(p.poll), ReadOnly(p.count), Signer(reader))

	receipt, err := r.Submit(req)
	require.NoError(t, err)
	require.Nil(t, receipt.History)
	require.NotNil(t, receipt.Results)
	require.Equal(t, uint64(1), receipt.Results.TotalVoters)
	require.Equal(t, 2, countHistories(r.Storage()))
}

func TestRunnerRejectsBadRequests(t *testing.T) {
	r, _ := MakeTestRunner(testNow)
	defer r.Storage().Close()

	p := newTestPoll()

	{ // body changed after signing
		req := p.createRequest(r)
		req.B.Accounts[3].Writable = false

		_, err := r.Submit(req)
		require.True(t, errors.Is(err, errors.InvalidSignature), err)
	}

	{ // signer is not one of the accounts
		body := operation.MakeTestCreatePoll(testStart, testEnd, fee.MakeTestFeeTransaction())
		req := NewTestRequest(r, p.creator, body, Writable(p.poll), Writable(p.count), Writable(p.registry))

		_, err := r.Submit(req)
		require.True(t, errors.Is(err, errors.MissingRequiredSignature), err)
	}

	{ // duplicated account
		body := operation.MakeTestCreatePoll(testStart, testEnd, fee.MakeTestFeeTransaction())
		req := NewTestRequest(r, p.creator, body, Signer(p.creator), Writable(p.poll), Writable(p.poll), Writable(p.registry))

		_, err := r.Submit(req)
		require.True(t, errors.Is(err, errors.InvalidInstructionData), err)
	}

	{ // poll account not writable
		body := operation.MakeTestCreatePoll(testStart, testEnd, fee.MakeTestFeeTransaction())
		req := NewTestRequest(r, p.creator, body, Signer(p.creator), ReadOnly(p.poll), Writable(p.count), Writable(p.registry))

		_, err := r.Submit(req)
		require.True(t, errors.Is(err, errors.AccountNotWritable), err)
	}

	{ // read only operation asking for writable accounts
		reader := keypair.Random()
		req := NewTestRequest(r, reader, operation.GetResults{PollID: p.id}, Writable(p.poll), Writable(p.count), Signer(reader))

		receipt, err := r.Submit(req)
		require.True(t, errors.Is(err, errors.AccountNotWritable), err)
		require.Nil(t, receipt)
	}

	require.Equal(t, 0, countHistories(r.Storage()))
	_, err := node.GetAccountByAddress(r.Storage(), p.poll)
	require.True(t, errors.Is(err, errors.StorageRecordDoesNotExist), err)
}

func TestRunnerTriggersEvents(t *testing.T) {
	r, _ := MakeTestRunner(testNow)
	defer r.Storage().Close()

	p := newTestPoll()

	var operations, polls []*node.History
	onOperation := func(args ...interface{}) {
		operations = append(operations, args[0].(*node.History))
	}
	onPoll := func(args ...interface{}) {
		polls = append(polls, args[0].(*node.History))
	}

	opEvent := observer.NewEvent(observer.ResourceOperation, observer.ConditionType, string(operation.TypeCreatePoll)).String()
	pollEvent := observer.NewEvent(observer.ResourcePoll, observer.ConditionAddress, p.poll).String()

	observer.OperationObserver.On(opEvent, onOperation)
	defer observer.OperationObserver.Off(opEvent, onOperation)
	observer.PollObserver.On(pollEvent, onPoll)
	defer observer.PollObserver.Off(pollEvent, onPoll)

	receipt, err := r.Submit(p.createRequest(r))
	require.NoError(t, err)

	require.Len(t, operations, 1)
	require.Equal(t, receipt.History.Order, operations[0].Order)
	require.Len(t, polls, 1)
	require.Equal(t, p.poll, polls[0].Poll)
}

func TestRunnerState(t *testing.T) {
	r, _ := MakeTestRunner(testNow)
	defer r.Storage().Close()

	require.Equal(t, node.StateRUNNING, r.State())

	info := r.NodeInfo()
	require.Equal(t, node.StateRUNNING, info.Node.State)
	require.Equal(t, testNow, info.Node.Time)
	require.Equal(t, r.Config().RateLimitAPI, info.Policy.RateLimitRuleAPI)

	r.Stop()
	require.Equal(t, node.StateTERMINATING, r.State())
}

func TestRunnerHandler(t *testing.T) {
	r, clock := MakeTestRunner(testNow)
	defer r.Storage().Close()

	var accessLog bytes.Buffer
	handler, err := r.Handler(WithAccessLog(&accessLog))
	require.NoError(t, err)

	ts := httptest.NewServer(handler)
	defer ts.Close()

	p := newTestPoll()
	{ // create a poll over http
		body, err := p.createRequest(r).Serialize()
		require.NoError(t, err)

		resp, err := http.Post(ts.URL+"/api/v1/operations", "application/json", bytes.NewReader(body))
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		var recv map[string]interface{}
		b, err := ioutil.ReadAll(resp.Body)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(b, &recv))
		p.id = uint64(recv["history"].(map[string]interface{})["target_id"].(float64))
	}

	clock.Set(testStart)
	{ // vote
		body, err := p.voteRequest(r, keypair.Random(), account.TestMakeKey().Address(), 2).Serialize()
		require.NoError(t, err)

		resp, err := http.Post(ts.URL+"/api/v1/operations", "application/json", bytes.NewReader(body))
		require.NoError(t, err)
		resp.Body.Close()
		require.Equal(t, http.StatusCreated, resp.StatusCode)
	}

	{ // results
		resp, err := http.Get(ts.URL + "/api/v1/polls/" + p.poll + "/results")
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)
		require.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))

		var recv map[string]interface{}
		b, err := ioutil.ReadAll(resp.Body)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(b, &recv))
		require.Equal(t, float64(1), recv["total_voters"])
	}

	{ // metrics
		resp, err := http.Get(ts.URL + UrlPathPrefixMetric)
		require.NoError(t, err)
		resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)
	}

	require.True(t, strings.Contains(accessLog.String(), "POST /api/v1/operations"))
}
