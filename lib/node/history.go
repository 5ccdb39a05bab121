package node

import (
	"encoding/json"
	"fmt"
	"time"

	"boscoin.io/votebook/lib/common"
	"boscoin.io/votebook/lib/operation"
	"boscoin.io/votebook/lib/storage"
)

// History is the record of one committed operation.
//
// models
//  * 'all'
// 	- 'oh-all-<History.Order>': History
//  * 'by poll'
// 	- 'oh-poll-<History.Poll>-<History.Order>': History
const (
	HistoryPrefixAll  string = "oh-all-"
	HistoryPrefixPoll string = "oh-poll-"
)

type History struct {
	Order         string                  `json:"order"`
	Hash          string                  `json:"hash"`
	Type          operation.OperationType `json:"type"`
	Signer        string                  `json:"signer"`
	Poll          string                  `json:"poll,omitempty"`
	TargetID      uint64                  `json:"target_id"`
	Accounts      []string                `json:"accounts"`
	FeeTxHash     string                  `json:"fee_tx_hash"`
	BindingTxHash string                  `json:"binding_tx_hash"`
	Binding       string                  `json:"binding"`
	Time          uint64                  `json:"time"`
	Committed     string                  `json:"committed"`
}

// NewHistory makes a history record for `r`. `Order` identifies the record
// and makes the records sort in the order they were committed.
func NewHistory(r *Request, committed time.Time) *History {
	id := common.GetUniqueIDFromUUID()

	var writable []string
	for _, meta := range r.B.Accounts {
		if meta.Writable {
			writable = append(writable, meta.Address)
		}
	}

	return &History{
		Order:     fmt.Sprintf("%020d-%s", committed.UnixNano(), id),
		Hash:      r.GetHash(),
		Type:      r.B.Operation.H.Type,
		Signer:    r.Signer,
		Accounts:  writable,
		Committed: common.FormatISO8601(committed),
	}
}

func (h History) Serialize() ([]byte, error) {
	return json.Marshal(h)
}

func (h History) String() string {
	encoded, _ := common.JSONMarshalIndent(h)
	return string(encoded)
}

func GetHistoryKey(order string) string {
	return fmt.Sprintf("%s%s", HistoryPrefixAll, order)
}

func GetHistoryPollPrefix(poll string) string {
	return fmt.Sprintf("%s%s-", HistoryPrefixPoll, poll)
}

func GetHistoryPollKey(poll, order string) string {
	return fmt.Sprintf("%s%s", GetHistoryPollPrefix(poll), order)
}

func (h *History) Save(st *storage.LevelDBBackend) (err error) {
	if err = st.New(GetHistoryKey(h.Order), h); err != nil {
		return
	}
	if len(h.Poll) > 0 {
		if err = st.New(GetHistoryPollKey(h.Poll, h.Order), h); err != nil {
			return
		}
	}

	return
}

func GetHistory(st *storage.LevelDBBackend, order string) (h History, err error) {
	err = st.Get(GetHistoryKey(order), &h)
	return
}

func getHistories(st *storage.LevelDBBackend, prefix string, options storage.ListOptions) (func() (History, bool, []byte), func()) {
	iterFunc, closeFunc := st.GetIterator(prefix, options)

	return (func() (History, bool, []byte) {
			item, hasNext := iterFunc()
			if !hasNext {
				return History{}, false, item.Key
			}

			var h History
			if err := json.Unmarshal(item.Value, &h); err != nil {
				log.Error("failed to decode history", "key", string(item.Key), "error", err)
				return History{}, false, item.Key
			}

			return h, hasNext, item.Key
		}), (func() {
			closeFunc()
		})
}

// GetHistories iterates every history record; pass a reverse option to get
// the newest first.
func GetHistories(st *storage.LevelDBBackend, options storage.ListOptions) (func() (History, bool, []byte), func()) {
	return getHistories(st, HistoryPrefixAll, options)
}

func GetHistoriesByPoll(st *storage.LevelDBBackend, poll string, options storage.ListOptions) (func() (History, bool, []byte), func()) {
	return getHistories(st, GetHistoryPollPrefix(poll), options)
}
