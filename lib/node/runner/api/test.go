package api

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"boscoin.io/votebook/lib/common"
	"boscoin.io/votebook/lib/engine"
	"boscoin.io/votebook/lib/fee"
	"boscoin.io/votebook/lib/network/httpcache"
	"boscoin.io/votebook/lib/node"
	"boscoin.io/votebook/lib/operation"
	"boscoin.io/votebook/lib/storage"
)

const (
	testNow   uint64 = 100
	testStart uint64 = 200
	testEnd   uint64 = 1000
)

type testServer struct {
	ts      *httptest.Server
	api     *NetworkHandlerAPI
	storage *storage.LevelDBBackend
	engine  *engine.Engine
	clock   *common.FixedClock
}

func (s *testServer) Close() {
	s.ts.Close()
	s.storage.Close()
}

func (s *testServer) url(pattern, id string) string {
	return s.ts.URL + strings.Replace(s.api.HandlerURLPattern(pattern), "{id}", id, -1)
}

func prepareAPIServer(submit SubmitFunc) *testServer {
	st := storage.MustNewTestMemoryLevelDBBackend()
	e, clock := engine.MakeTestEngine(testNow)

	nodeInfo := func() node.NodeInfo {
		return node.NewNodeInfo(e.Config(), common.NowISO8601(), node.StateRUNNING, clock.Now())
	}

	adapter, err := httpcache.NewMemCacheAdapter(100)
	if err != nil {
		panic(err)
	}
	cache, err := httpcache.NewClient(httpcache.WithAdapter(adapter))
	if err != nil {
		panic(err)
	}

	api := NewNetworkHandlerAPI(st, e, submit, nodeInfo, "/api")
	api.SetCache(cache)

	router := mux.NewRouter()
	api.Route(router)

	return &testServer{
		ts:      httptest.NewServer(router),
		api:     api,
		storage: st,
		engine:  e,
		clock:   clock,
	}
}

// prepareTestPoll stores a started poll with `votes[i]` ballots for the
// option `i`.
func prepareTestPoll(s *testServer, votes ...int) (*engine.TestPoll, error) {
	body := operation.MakeTestCreatePoll(testStart, testEnd, fee.MakeTestFeeTransaction())
	p, err := engine.CreateTestPoll(s.engine, body)
	if err != nil {
		return nil, err
	}
	s.clock.Set(testStart)

	for option, n := range votes {
		for i := 0; i < n; i++ {
			if _, _, err := p.CastTestVote(s.engine, uint8(option)); err != nil {
				return nil, err
			}
		}
	}

	if err := savePoll(s.storage, p); err != nil {
		return nil, err
	}

	return p, nil
}

func savePoll(st *storage.LevelDBBackend, p *engine.TestPoll) error {
	for _, a := range []interface{ Save(*storage.LevelDBBackend) error }{p.Poll, p.Count, p.Registry} {
		if err := a.Save(st); err != nil {
			return err
		}
	}

	pa := node.PollAccounts{
		Poll:     p.Poll.Key.Address(),
		Count:    p.Count.Key.Address(),
		Registry: p.Registry.Key.Address(),
	}
	return pa.Save(st)
}

// saveTestHistories stores `n` cast vote records of `p`, committed one
// nanosecond after the other.
func saveTestHistories(st *storage.LevelDBBackend, p *engine.TestPoll, n int) ([]*node.History, error) {
	var histories []*node.History
	for i := 0; i < n; i++ {
		op := operation.MustNewOperation(operation.MakeTestCastVote(p.ID, 0, fee.MakeTestFeeTransaction()))
		req := node.NewRequest(op, node.AccountMeta{Address: p.Poll.Key.Address(), Writable: true})

		h := node.NewHistory(req, time.Unix(0, int64(i+1)))
		h.Poll = p.Poll.Key.Address()
		if err := h.Save(st); err != nil {
			return nil, err
		}
		histories = append(histories, h)
	}

	return histories, nil
}

func request(url string, streaming bool) (*http.Response, error) {
	req, err := http.NewRequest("GET", url, nil)
	if err != nil {
		return nil, err
	}
	if streaming {
		req.Header.Set("Accept", "text/event-stream")
	}
	return http.DefaultClient.Do(req)
}

func post(url string, body io.Reader) (*http.Response, error) {
	return http.Post(url, "application/json", body)
}
