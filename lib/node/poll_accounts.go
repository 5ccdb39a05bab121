package node

import (
	"fmt"

	"boscoin.io/votebook/lib/storage"
)

const PollAccountsPrefix string = "pa-"

// PollAccounts remembers which accounts were created together with a poll,
// so the tally of a poll can be found from the poll address alone.
type PollAccounts struct {
	Poll     string `json:"poll"`
	Count    string `json:"count"`
	Registry string `json:"registry"`
}

func GetPollAccountsKey(poll string) string {
	return fmt.Sprintf("%s%s", PollAccountsPrefix, poll)
}

func (p PollAccounts) Save(st *storage.LevelDBBackend) error {
	return st.New(GetPollAccountsKey(p.Poll), p)
}

func GetPollAccounts(st *storage.LevelDBBackend, poll string) (p PollAccounts, err error) {
	err = st.Get(GetPollAccountsKey(poll), &p)
	return
}
