package api

import (
	"bufio"
	"bytes"
	"encoding/json"
	"io/ioutil"
	"net/http"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"boscoin.io/votebook/lib/account"
	"boscoin.io/votebook/lib/common/observer"
	"boscoin.io/votebook/lib/errors"
	"boscoin.io/votebook/lib/fee"
	"boscoin.io/votebook/lib/network/httputils"
	"boscoin.io/votebook/lib/node"
	"boscoin.io/votebook/lib/node/runner/api/resource"
	"boscoin.io/votebook/lib/operation"
)

func noSubmit(*node.Request) (*node.Receipt, error) {
	return nil, errors.UnknownOperationType
}

func readJSON(t *testing.T, resp *http.Response) map[string]interface{} {
	defer resp.Body.Close()

	b, err := ioutil.ReadAll(resp.Body)
	require.NoError(t, err)

	recv := map[string]interface{}{}
	require.NoError(t, json.Unmarshal(b, &recv), string(b))
	return recv
}

func readLine(t *testing.T, reader *bufio.Reader) map[string]interface{} {
	var line []byte
	for len(line) < 1 {
		b, err := reader.ReadBytes('\n')
		require.NoError(t, err)
		line = bytes.TrimSpace(b)
	}

	recv := map[string]interface{}{}
	require.NoError(t, json.Unmarshal(line, &recv), string(line))
	return recv
}

func requireProblem(t *testing.T, resp *http.Response, expected *errors.Error) {
	require.Equal(t, httputils.StatusCode(expected), resp.StatusCode)

	recv := readJSON(t, resp)
	require.True(t, strings.HasSuffix(recv["type"].(string), "/"+strconvCode(expected)), recv["type"])
}

func strconvCode(e *errors.Error) string {
	return strconv.FormatUint(uint64(e.Code), 10)
}

func TestGetNodeInfoHandler(t *testing.T) {
	s := prepareAPIServer(noSubmit)
	defer s.Close()

	resp, err := request(s.ts.URL+s.api.HandlerURLPattern(GetNodeInfoPattern), false)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	defer resp.Body.Close()
	b, err := ioutil.ReadAll(resp.Body)
	require.NoError(t, err)

	info, err := node.NewNodeInfoFromJSON(b)
	require.NoError(t, err)
	require.Equal(t, node.StateRUNNING, info.Node.State)
	require.Equal(t, testNow, info.Node.Time)
	require.Equal(t, string(s.engine.Config().NetworkID), info.Policy.NetworkID)
}

func TestGetAccountHandler(t *testing.T) {
	s := prepareAPIServer(noSubmit)
	defer s.Close()

	a := account.TestMakeAccount(false, true)
	require.NoError(t, a.Store([]byte{0x01, 0x02}))
	require.NoError(t, a.Save(s.storage))

	{
		resp, err := request(s.url(GetAccountHandlerPattern, a.Key.Address()), false)
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		require.Equal(t, "application/hal+json", resp.Header.Get("Content-Type"))

		recv := readJSON(t, resp)
		require.Equal(t, a.Key.Address(), recv["address"])
		require.Equal(t, "0102", recv["data"])
	}

	{ // unknown address
		resp, err := request(s.url(GetAccountHandlerPattern, account.TestMakeKey().Address()), false)
		require.NoError(t, err)
		requireProblem(t, resp, errors.StorageRecordDoesNotExist)
	}

	{ // bad address
		resp, err := request(s.url(GetAccountHandlerPattern, "not-an-address"), false)
		require.NoError(t, err)
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
		resp.Body.Close()
	}
}

func TestGetPollHandler(t *testing.T) {
	s := prepareAPIServer(noSubmit)
	defer s.Close()

	p, err := prepareTestPoll(s)
	require.NoError(t, err)

	{
		resp, err := request(s.url(GetPollHandlerPattern, p.Poll.Key.Address()), false)
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		recv := readJSON(t, resp)
		require.Equal(t, float64(p.ID), recv["id"])
		require.Equal(t, p.Creator.Key.Address(), recv["creator"])
		require.Equal(t, true, recv["is_active"])
	}

	{ // an account which does not hold a poll
		resp, err := request(s.url(GetPollHandlerPattern, p.Registry.Key.Address()), false)
		require.NoError(t, err)
		requireProblem(t, resp, errors.PollDoesNotExist)
	}
}

func TestGetPollResultsHandler(t *testing.T) {
	s := prepareAPIServer(noSubmit)
	defer s.Close()

	p, err := prepareTestPoll(s, 3, 1)
	require.NoError(t, err)

	resp, err := request(s.url(GetPollResultsHandlerPattern, p.Poll.Key.Address()), false)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	recv := readJSON(t, resp)
	require.Equal(t, true, recv["available"])
	require.Equal(t, float64(4), recv["total_voters"])

	options := recv["options"].([]interface{})
	require.Len(t, options, 3)
	require.Equal(t, float64(3), options[0].(map[string]interface{})["count"])
	require.Equal(t, float64(75), options[0].(map[string]interface{})["percentage"])
	require.Equal(t, float64(25), options[1].(map[string]interface{})["percentage"])
	require.Equal(t, float64(0), options[2].(map[string]interface{})["count"])
}

func TestGetPollResultsHandlerCache(t *testing.T) {
	s := prepareAPIServer(noSubmit)
	defer s.Close()

	p, err := prepareTestPoll(s, 1)
	require.NoError(t, err)

	url := s.url(GetPollResultsHandlerPattern, p.Poll.Key.Address())
	total := func() float64 {
		resp, err := request(url, false)
		require.NoError(t, err)
		return readJSON(t, resp)["total_voters"].(float64)
	}

	require.Equal(t, float64(1), total())

	// a vote stored behind the back of the api is not seen until the poll
	// is purged
	_, _, err = p.CastTestVote(s.engine, 1)
	require.NoError(t, err)
	require.NoError(t, p.Count.Save(s.storage))
	require.Equal(t, float64(1), total())

	s.api.purgePoll(p.Poll.Key.Address())
	require.Equal(t, float64(2), total())
}

func TestGetPollResultsStream(t *testing.T) {
	s := prepareAPIServer(noSubmit)
	defer s.Close()

	p, err := prepareTestPoll(s, 1)
	require.NoError(t, err)

	resp, err := request(s.url(GetPollResultsHandlerPattern, p.Poll.Key.Address()), true)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, DefaultContentType, resp.Header.Get("Content-Type"))

	reader := bufio.NewReader(resp.Body)
	require.Equal(t, float64(1), readLine(t, reader)["total_voters"])

	_, _, err = p.CastTestVote(s.engine, 2)
	require.NoError(t, err)
	require.NoError(t, p.Count.Save(s.storage))

	h := &node.History{Type: operation.TypeCastVote, Poll: p.Poll.Key.Address()}
	event := observer.NewEvent(observer.ResourcePoll, observer.ConditionAddress, h.Poll).String()
	observer.PollObserver.Trigger(event, h)

	recv := readLine(t, reader)
	require.Equal(t, float64(2), recv["total_voters"])
	require.Equal(t, float64(1), recv["options"].([]interface{})[2].(map[string]interface{})["count"])
}

func TestGetHistoriesHandler(t *testing.T) {
	s := prepareAPIServer(noSubmit)
	defer s.Close()

	p, err := prepareTestPoll(s)
	require.NoError(t, err)
	histories, err := saveTestHistories(s.storage, p, 5)
	require.NoError(t, err)

	records := func(recv map[string]interface{}) []interface{} {
		return recv["_embedded"].(map[string]interface{})["records"].([]interface{})
	}

	var next string
	{ // first page, newest first
		resp, err := request(s.url(GetHistoriesHandlerPattern, "")+"?limit=3&reverse=true", false)
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		recv := readJSON(t, resp)
		rs := records(recv)
		require.Len(t, rs, 3)
		require.Equal(t, histories[4].Order, rs[0].(map[string]interface{})["order"])
		require.Equal(t, histories[2].Order, rs[2].(map[string]interface{})["order"])

		next = recv["_links"].(map[string]interface{})["next"].(map[string]interface{})["href"].(string)
	}

	{ // next page
		resp, err := request(s.ts.URL+next, false)
		require.NoError(t, err)

		rs := records(readJSON(t, resp))
		require.Len(t, rs, 2)
		require.Equal(t, histories[1].Order, rs[0].(map[string]interface{})["order"])
		require.Equal(t, histories[0].Order, rs[1].(map[string]interface{})["order"])
	}

	{ // by poll
		resp, err := request(s.url(GetPollHistoryHandlerPattern, p.Poll.Key.Address()), false)
		require.NoError(t, err)
		require.Len(t, records(readJSON(t, resp)), 5)
	}

	{ // single record
		resp, err := request(s.url(GetHistoryHandlerPattern, histories[1].Order), false)
		require.NoError(t, err)
		recv := readJSON(t, resp)
		require.Equal(t, histories[1].Hash, recv["hash"])
		require.Equal(t, histories[1].Order, recv["order"])
		require.NotContains(t, recv, "id")

		// the self link resolves to the same record
		self := recv["_links"].(map[string]interface{})["self"].(map[string]interface{})["href"].(string)
		require.Equal(t, strings.Replace(resource.URLHistory, "{id}", histories[1].Order, -1), self)

		resp, err = request(s.url(GetHistoryHandlerPattern, "unknown"), false)
		require.NoError(t, err)
		requireProblem(t, resp, errors.StorageRecordDoesNotExist)
	}

	{ // bad page query
		resp, err := request(s.url(GetHistoriesHandlerPattern, "")+"?limit=zero", false)
		require.NoError(t, err)
		requireProblem(t, resp, errors.InvalidInstructionData)
	}
}

func TestGetHistoriesStream(t *testing.T) {
	s := prepareAPIServer(noSubmit)
	defer s.Close()

	resp, err := request(s.url(GetHistoriesHandlerPattern, "")+"?type=cast-vote", true)
	require.NoError(t, err)
	defer resp.Body.Close()

	h := &node.History{Order: "order", Type: operation.TypeCastVote}
	event := observer.NewEvent(observer.ResourceOperation, observer.ConditionType, string(h.Type)).String()
	observer.OperationObserver.Trigger(event, h)

	recv := readLine(t, bufio.NewReader(resp.Body))
	require.Equal(t, "order", recv["order"])
	require.Equal(t, string(operation.TypeCastVote), recv["type"])

	{ // unknown type
		resp, err := request(s.url(GetHistoriesHandlerPattern, "")+"?type=vote", true)
		require.NoError(t, err)
		requireProblem(t, resp, errors.UnknownOperationType)
	}
}

func TestPostOperationHandler(t *testing.T) {
	var submitted *node.Request
	var receipt *node.Receipt
	var submitErr error

	s := prepareAPIServer(func(r *node.Request) (*node.Receipt, error) {
		submitted = r
		return receipt, submitErr
	})
	defer s.Close()

	op := operation.MustNewOperation(operation.MakeTestCastVote(7, 1, fee.MakeTestFeeTransaction()))
	req := node.NewRequest(op, node.AccountMeta{Address: account.TestMakeKey().Address(), Writable: true})
	body, err := req.Serialize()
	require.NoError(t, err)

	url := s.url(PostOperationPattern, "")

	{ // committed
		receipt = &node.Receipt{Hash: req.GetHash(), History: &node.History{Order: "o", Type: operation.TypeCastVote}}
		resp, err := post(url, bytes.NewReader(body))
		require.NoError(t, err)
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		recv := readJSON(t, resp)
		require.Equal(t, req.GetHash(), recv["hash"])
		require.Equal(t, true, recv["committed"])
		require.Equal(t, req.GetHash(), submitted.GetHash())
	}

	{ // read only
		receipt = &node.Receipt{Hash: req.GetHash()}
		resp, err := post(url, bytes.NewReader(body))
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		require.Equal(t, false, readJSON(t, resp)["committed"])
	}

	{ // rejected by the engine
		submitErr = errors.PollEnded
		resp, err := post(url, bytes.NewReader(body))
		require.NoError(t, err)
		requireProblem(t, resp, errors.PollEnded)
	}

	{ // broken body
		resp, err := post(url, strings.NewReader("{"))
		require.NoError(t, err)
		requireProblem(t, resp, errors.InvalidInstructionData)
	}
}
