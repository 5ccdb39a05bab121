package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"boscoin.io/votebook/lib/account"
	"boscoin.io/votebook/lib/common/keypair"
	"boscoin.io/votebook/lib/fee"
	"boscoin.io/votebook/lib/node"
	"boscoin.io/votebook/lib/node/runner"
	"boscoin.io/votebook/lib/operation"
)

func prepareClient(t *testing.T) (*Client, *runner.Runner, func()) {
	r, _ := runner.MakeTestRunner(100)

	handler, err := r.Handler()
	require.NoError(t, err)
	ts := httptest.NewServer(handler)

	c, err := NewClient(ts.URL, 5*time.Second, nil)
	require.NoError(t, err)

	return c, r, func() {
		c.Close()
		ts.Close()
		r.Storage().Close()
	}
}

func TestQueries(t *testing.T) {
	require.Equal(t, "", Queries{}.toQueryString())
	require.Equal(
		t,
		"?limit=3&reverse=true",
		Queries{{Key: QueryLimit, Value: "3"}, {Key: QueryReverse, Value: "true"}}.toQueryString(),
	)
}

func TestClientNodeInfo(t *testing.T) {
	c, _, closeFunc := prepareClient(t)
	defer closeFunc()

	info, err := c.NodeInfo()
	require.NoError(t, err)
	require.Equal(t, node.StateRUNNING, info.Node.State)
	require.Equal(t, uint64(100), info.Node.Time)
}

func TestClientSubmitAndLoad(t *testing.T) {
	c, r, closeFunc := prepareClient(t)
	defer closeFunc()

	creator := keypair.Random()
	poll := account.TestMakeKey().Address()
	count := account.TestMakeKey().Address()
	registry := account.TestMakeKey().Address()

	body := operation.MakeTestCreatePoll(200, 1000, fee.MakeTestFeeTransaction())
	req := runner.NewTestRequest(
		r, creator, body,
		runner.Signer(creator), runner.Writable(poll), runner.Writable(count), runner.Writable(registry),
	)

	receipt, err := c.Submit(req)
	require.NoError(t, err)
	require.True(t, receipt.Committed)
	require.Equal(t, req.GetHash(), receipt.Hash)
	require.NotNil(t, receipt.History)
	require.Equal(t, poll, receipt.History.Poll)

	loaded, err := c.LoadPoll(poll)
	require.NoError(t, err)
	require.Equal(t, body.Title, loaded.Title)
	require.Equal(t, creator.Address(), loaded.Creator)

	results, err := c.LoadResults(poll)
	require.NoError(t, err)
	require.True(t, results.Available)
	require.Equal(t, uint64(0), results.TotalVoters)
	require.Len(t, results.Options, 3)

	a, err := c.LoadAccount(count)
	require.NoError(t, err)
	require.Equal(t, count, a.Address)
	require.True(t, a.Size > 0)

	history, err := c.LoadHistory(receipt.History.Order)
	require.NoError(t, err)
	require.Equal(t, receipt.History.Hash, history.Hash)

	page, err := c.LoadHistories(Q{Key: QueryLimit, Value: "10"})
	require.NoError(t, err)
	require.Len(t, page.Embedded.Records, 1)

	page, err = c.LoadHistoriesByPoll(poll)
	require.NoError(t, err)
	require.Len(t, page.Embedded.Records, 1)
	require.Equal(t, string(operation.TypeCreatePoll), page.Embedded.Records[0].Type)

	{ // the same poll again
		_, err := c.Submit(req)
		require.Error(t, err)

		e, ok := err.(Error)
		require.True(t, ok)
		require.Equal(t, http.StatusConflict, e.Problem.Status)
	}
}

func TestClientProblem(t *testing.T) {
	c, _, closeFunc := prepareClient(t)
	defer closeFunc()

	_, err := c.LoadPoll(account.TestMakeKey().Address())
	require.Error(t, err)

	e, ok := err.(Error)
	require.True(t, ok)
	require.Equal(t, http.StatusNotFound, e.Problem.Status)
	require.Contains(t, e.Error(), "404")
}

func TestClientStreamHistories(t *testing.T) {
	c, r, closeFunc := prepareClient(t)
	defer closeFunc()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	received := make(chan History, 100)
	done := make(chan error)
	go func() {
		done <- c.StreamHistories(ctx, string(operation.TypeCreatePoll), func(h History) {
			received <- h
		})
	}()

	// polls are created until the stream has subscribed and reports one
	var polls = map[string]bool{}
	var h History
	for i := 0; i < 50 && len(h.Poll) < 1; i++ {
		creator := keypair.Random()
		poll := account.TestMakeKey().Address()
		req := runner.NewTestRequest(
			r, creator, operation.MakeTestCreatePoll(200, 1000, fee.MakeTestFeeTransaction()),
			runner.Signer(creator),
			runner.Writable(poll),
			runner.Writable(account.TestMakeKey().Address()),
			runner.Writable(account.TestMakeKey().Address()),
		)
		_, err := r.Submit(req)
		require.NoError(t, err)
		polls[poll] = true

		select {
		case h = <-received:
		case <-time.After(100 * time.Millisecond):
		}
	}

	require.True(t, polls[h.Poll])
	require.Equal(t, string(operation.TypeCreatePoll), h.Type)

	cancel()
	require.NoError(t, <-done)
}
