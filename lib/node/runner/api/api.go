package api

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"boscoin.io/votebook/lib/engine"
	"boscoin.io/votebook/lib/network/httpcache"
	"boscoin.io/votebook/lib/node"
	"boscoin.io/votebook/lib/storage"
)

const APIVersionV1 = "v1"

// API Endpoint patterns
const (
	GetNodeInfoPattern           = "/"
	PostOperationPattern         = "/operations"
	GetAccountHandlerPattern     = "/accounts/{id}"
	GetPollHandlerPattern        = "/polls/{id}"
	GetPollResultsHandlerPattern = "/polls/{id}/results"
	GetPollHistoryHandlerPattern = "/polls/{id}/history"
	GetHistoriesHandlerPattern   = "/history"
	GetHistoryHandlerPattern     = "/history/{id}"
)

// SubmitFunc executes a request and commits what it changed.
type SubmitFunc func(*node.Request) (*node.Receipt, error)

type NetworkHandlerAPI struct {
	storage      *storage.LevelDBBackend
	engine       *engine.Engine
	submit       SubmitFunc
	nodeInfo     func() node.NodeInfo
	cache        *httpcache.Client
	urlPrefix    string
	version      string
	historyLimit uint64
}

func NewNetworkHandlerAPI(st *storage.LevelDBBackend, e *engine.Engine, submit SubmitFunc, nodeInfo func() node.NodeInfo, urlPrefix string) *NetworkHandlerAPI {
	return &NetworkHandlerAPI{
		storage:      st,
		engine:       e,
		submit:       submit,
		nodeInfo:     nodeInfo,
		urlPrefix:    urlPrefix,
		version:      APIVersionV1,
		historyLimit: uint64(e.Config().HistoryLimit),
	}
}

// SetCache makes the poll and results handlers answer from `c` until an
// operation changes the poll.
func (api *NetworkHandlerAPI) SetCache(c *httpcache.Client) {
	api.cache = c
}

func (api NetworkHandlerAPI) HandlerURLPattern(pattern string) string {
	return fmt.Sprintf("%s/%s%s", api.urlPrefix, api.version, pattern)
}

func (api NetworkHandlerAPI) cached(h http.HandlerFunc) http.HandlerFunc {
	if api.cache == nil {
		return h
	}
	return api.cache.WrapHandlerFunc(h)
}

func (api NetworkHandlerAPI) purgePoll(address string) {
	if api.cache == nil || len(address) < 1 {
		return
	}

	api.cache.Purge(
		strings.Replace(api.HandlerURLPattern(GetPollHandlerPattern), "{id}", address, -1),
		strings.Replace(api.HandlerURLPattern(GetPollResultsHandlerPattern), "{id}", address, -1),
	)
}

// Route registers every handler on `router`.
func (api *NetworkHandlerAPI) Route(router *mux.Router) {
	router.HandleFunc(api.HandlerURLPattern(GetNodeInfoPattern), api.GetNodeInfoHandler).Methods("GET")
	router.HandleFunc(api.HandlerURLPattern(PostOperationPattern), api.PostOperationHandler).Methods("POST")
	router.HandleFunc(api.HandlerURLPattern(GetAccountHandlerPattern), api.GetAccountHandler).Methods("GET")
	router.HandleFunc(api.HandlerURLPattern(GetPollHandlerPattern), api.cached(api.GetPollHandler)).Methods("GET")
	router.HandleFunc(api.HandlerURLPattern(GetPollResultsHandlerPattern), api.cached(api.GetPollResultsHandler)).Methods("GET")
	router.HandleFunc(api.HandlerURLPattern(GetPollHistoryHandlerPattern), api.GetHistoriesByPollHandler).Methods("GET")
	router.HandleFunc(api.HandlerURLPattern(GetHistoriesHandlerPattern), api.GetHistoriesHandler).Methods("GET")
	router.HandleFunc(api.HandlerURLPattern(GetHistoryHandlerPattern), api.GetHistoryHandler).Methods("GET")
}
