package api

import (
	"net/http"

	"boscoin.io/votebook/lib/network/httputils"
)

func (api NetworkHandlerAPI) GetNodeInfoHandler(w http.ResponseWriter, r *http.Request) {
	httputils.MustWriteJSON(w, http.StatusOK, api.nodeInfo())
}
