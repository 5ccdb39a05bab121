package httputils

import (
	"net/http"

	"boscoin.io/votebook/lib/errors"
)

// IsEventStream checks request header accept is text/event-stream
func IsEventStream(r *http.Request) bool {
	return r.Header.Get("Accept") == "text/event-stream"
}

var ErrorsToStatus = map[uint]int{
	errors.NotEnoughAccountKeys.Code:     http.StatusBadRequest,
	errors.MissingRequiredSignature.Code: http.StatusUnauthorized,
	errors.InvalidAccountData.Code:       http.StatusBadRequest,
	errors.InvalidInstructionData.Code:   http.StatusBadRequest,
	errors.AccountDataTooSmall.Code:      http.StatusBadRequest,
	errors.AccountNotWritable.Code:       http.StatusBadRequest,
	errors.UnknownOperationType.Code:     http.StatusBadRequest,
	errors.InvalidSignature.Code:         http.StatusUnauthorized,
	errors.BadPublicAddress.Code:         http.StatusBadRequest,

	errors.StorageRecordDoesNotExist.Code:  http.StatusNotFound,
	errors.StorageRecordAlreadyExists.Code: http.StatusConflict,
	errors.StorageCoreError.Code:           http.StatusInternalServerError,

	errors.PollDoesNotExist.Code:     http.StatusNotFound,
	errors.DelegationNotFound.Code:   http.StatusNotFound,
	errors.TokenBalanceNotFound.Code: http.StatusNotFound,
	errors.NotPollCreator.Code:       http.StatusForbidden,
	errors.NotDelegator.Code:         http.StatusForbidden,
	errors.PollAlreadyExists.Code:    http.StatusConflict,
	errors.AlreadyVoted.Code:         http.StatusConflict,
	errors.InsufficientFees.Code:     http.StatusPaymentRequired,
}

// StatusCode maps an error to the http status it is reported with. The
// voting errors which are not listed are client errors.
func StatusCode(err error) int {
	e, ok := err.(*errors.Error)
	if !ok {
		return http.StatusInternalServerError
	}

	if status, found := ErrorsToStatus[e.Code]; found {
		return status
	}
	if e.Code >= 1000 {
		return http.StatusBadRequest
	}

	return http.StatusInternalServerError
}
