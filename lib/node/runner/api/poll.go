package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"boscoin.io/votebook/lib/common/observer"
	"boscoin.io/votebook/lib/network/httputils"
	"boscoin.io/votebook/lib/node"
	"boscoin.io/votebook/lib/node/runner/api/resource"
)

func (api NetworkHandlerAPI) GetPollHandler(w http.ResponseWriter, r *http.Request) {
	address := mux.Vars(r)["id"]

	poll, err := node.GetPoll(api.storage, address)
	if err != nil {
		httputils.WriteJSONError(w, err)
		return
	}

	httputils.MustWriteJSON(w, http.StatusOK, resource.NewPoll(address, poll))
}

// GetPollResultsHandler reports the tally of a poll. With
// `Accept: text/event-stream` the results are written again every time an
// operation touches the poll.
func (api NetworkHandlerAPI) GetPollResultsHandler(w http.ResponseWriter, r *http.Request) {
	address := mux.Vars(r)["id"]

	readFunc := func() (*resource.Results, error) {
		results, err := node.GetResults(api.storage, api.engine, address)
		if err != nil {
			return nil, err
		}
		return resource.NewResults(address, results), nil
	}

	if httputils.IsEventStream(r) {
		renderFunc := func(args ...interface{}) ([]byte, error) {
			payload, err := readFunc()
			if err != nil {
				return nil, err
			}
			return RenderJSONFunc(nil, payload)
		}

		event := observer.NewEvent(observer.ResourcePoll, observer.ConditionAddress, address).String()
		es := NewEventStream(w, r, renderFunc, DefaultContentType)
		run := es.Start(observer.PollObserver, event)
		es.Render(nil)
		run()
		return
	}

	payload, err := readFunc()
	if err != nil {
		httputils.WriteJSONError(w, err)
		return
	}

	httputils.MustWriteJSON(w, http.StatusOK, payload)
}
