package api

import (
	"io/ioutil"
	"net/http"

	"boscoin.io/votebook/lib/errors"
	"boscoin.io/votebook/lib/network/httputils"
	"boscoin.io/votebook/lib/node"
	"boscoin.io/votebook/lib/node/runner/api/resource"
)

// MaxRequestBodySize caps the body of a posted operation.
const MaxRequestBodySize int64 = 1 << 20

func (api NetworkHandlerAPI) PostOperationHandler(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	body, err := ioutil.ReadAll(http.MaxBytesReader(w, r.Body, MaxRequestBodySize))
	if err != nil {
		httputils.WriteJSONError(w, errors.InvalidInstructionData.Clone().SetData("error", err.Error()))
		return
	}

	req, err := node.NewRequestFromJSON(body)
	if err != nil {
		httputils.WriteJSONError(w, err)
		return
	}

	receipt, err := api.submit(req)
	if err != nil {
		httputils.WriteJSONError(w, err)
		return
	}

	status := http.StatusOK
	if receipt.History != nil {
		api.purgePoll(receipt.History.Poll)
		status = http.StatusCreated
	}

	httputils.MustWriteJSON(w, status, resource.NewReceipt(receipt))
}
