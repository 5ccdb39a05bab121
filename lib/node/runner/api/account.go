package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"boscoin.io/votebook/lib/network/httputils"
	"boscoin.io/votebook/lib/node"
	"boscoin.io/votebook/lib/node/runner/api/resource"
)

func (api NetworkHandlerAPI) GetAccountHandler(w http.ResponseWriter, r *http.Request) {
	address := mux.Vars(r)["id"]

	a, err := node.GetAccountByAddress(api.storage, address)
	if err != nil {
		httputils.WriteJSONError(w, err)
		return
	}

	httputils.MustWriteJSON(w, http.StatusOK, resource.NewAccount(a))
}
