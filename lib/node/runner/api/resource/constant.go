package resource

const (
	APIVersionV1 = "/v1"
	APIPrefix    = "/api"

	URLAccounts    = APIPrefix + APIVersionV1 + "/accounts/{id}"
	URLPolls       = APIPrefix + APIVersionV1 + "/polls/{id}"
	URLPollResults = APIPrefix + APIVersionV1 + "/polls/{id}/results"
	URLPollHistory = APIPrefix + APIVersionV1 + "/polls/{id}/history"
	URLHistory     = APIPrefix + APIVersionV1 + "/history/{id}"
	URLHistories   = APIPrefix + APIVersionV1 + "/history"
	URLOperations  = APIPrefix + APIVersionV1 + "/operations"
)
