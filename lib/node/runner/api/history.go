package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"boscoin.io/votebook/lib/common"
	"boscoin.io/votebook/lib/common/observer"
	"boscoin.io/votebook/lib/errors"
	"boscoin.io/votebook/lib/network/httputils"
	"boscoin.io/votebook/lib/node"
	"boscoin.io/votebook/lib/node/runner/api/resource"
	"boscoin.io/votebook/lib/operation"
	"boscoin.io/votebook/lib/storage"
)

type historiesFunc func(storage.ListOptions) (func() (node.History, bool, []byte), func())

func (api NetworkHandlerAPI) GetHistoryHandler(w http.ResponseWriter, r *http.Request) {
	order := mux.Vars(r)["id"]

	found, err := api.storage.Has(node.GetHistoryKey(order))
	if err != nil {
		httputils.WriteJSONError(w, err)
		return
	}
	if !found {
		httputils.WriteJSONError(w, errors.StorageRecordDoesNotExist.Clone().SetData("history", order))
		return
	}

	h, err := node.GetHistory(api.storage, order)
	if err != nil {
		httputils.WriteJSONError(w, err)
		return
	}

	httputils.MustWriteJSON(w, http.StatusOK, resource.NewHistory(&h))
}

// GetHistoriesHandler lists the committed operations. With
// `Accept: text/event-stream` the operations committed from now on are
// streamed; `type` narrows them to one operation type.
func (api NetworkHandlerAPI) GetHistoriesHandler(w http.ResponseWriter, r *http.Request) {
	if httputils.IsEventStream(r) {
		event := observer.NewEvent(observer.ResourceOperation, observer.ConditionAll, "")
		if ty := common.GetUrlQuery(r.URL.Query(), "type", ""); len(ty) > 0 {
			if !operation.IsValidOperationType(ty) {
				httputils.WriteJSONError(w, errors.UnknownOperationType.Clone().SetData("type", ty))
				return
			}
			event = observer.NewEvent(observer.ResourceOperation, observer.ConditionType, ty)
		}

		es := NewEventStream(w, r, renderHistory, DefaultContentType)
		es.Run(observer.OperationObserver, event.String())
		return
	}

	api.writeHistories(w, r, func(options storage.ListOptions) (func() (node.History, bool, []byte), func()) {
		return node.GetHistories(api.storage, options)
	})
}

func (api NetworkHandlerAPI) GetHistoriesByPollHandler(w http.ResponseWriter, r *http.Request) {
	address := mux.Vars(r)["id"]

	if _, err := node.GetPoll(api.storage, address); err != nil {
		httputils.WriteJSONError(w, err)
		return
	}

	api.writeHistories(w, r, func(options storage.ListOptions) (func() (node.History, bool, []byte), func()) {
		return node.GetHistoriesByPoll(api.storage, address, options)
	})
}

func (api NetworkHandlerAPI) writeHistories(w http.ResponseWriter, r *http.Request, get historiesFunc) {
	p, err := httputils.NewPageQuery(r, api.historyLimit)
	if err != nil {
		httputils.WriteJSONError(w, err)
		return
	}

	var (
		rs                      []resource.Resource
		firstCursor, lastCursor []byte
	)

	iterFunc, closeFunc := get(p.ListOptions())
	for {
		h, hasNext, cursor := iterFunc()
		if !hasNext {
			break
		}
		if firstCursor == nil {
			firstCursor = cursor
		}
		lastCursor = cursor

		history := h
		rs = append(rs, resource.NewHistory(&history))
	}
	closeFunc()

	httputils.MustWriteJSON(w, http.StatusOK, p.ResourceList(rs, firstCursor, lastCursor))
}

func renderHistory(args ...interface{}) ([]byte, error) {
	if len(args) > 1 {
		if h, ok := args[1].(*node.History); ok {
			return RenderJSONFunc(nil, resource.NewHistory(h))
		}
	}
	return RenderJSONFunc(args...)
}
