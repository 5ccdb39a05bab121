package client

import (
	"encoding/json"
	"fmt"

	"boscoin.io/votebook/lib/entity"
)

type Problem struct {
	Type     string                     `json:"type"`
	Title    string                     `json:"title"`
	Status   int                        `json:"status"`
	Detail   string                     `json:"detail,omitempty"`
	Instance string                     `json:"instance,omitempty"`
	Extras   map[string]json.RawMessage `json:"extras,omitempty"`
}

// Error is returned when the node answered with a problem.
type Error struct {
	Problem Problem
}

func (e Error) Error() string {
	if len(e.Problem.Detail) > 0 {
		return fmt.Sprintf("%d %s: %s", e.Problem.Status, e.Problem.Title, e.Problem.Detail)
	}
	return fmt.Sprintf("%d %s", e.Problem.Status, e.Problem.Title)
}

type Link struct {
	Href      string `json:"href"`
	Templated bool   `json:"templated,omitempty"`
}

type Account struct {
	Links struct {
		Self Link `json:"self"`
	} `json:"_links"`

	Address string `json:"address"`
	Size    int    `json:"size"`
	Data    string `json:"data"`
}

type Poll struct {
	Links struct {
		Self    Link `json:"self"`
		Results Link `json:"results"`
		History Link `json:"history"`
	} `json:"_links"`

	Address         string   `json:"address"`
	ID              uint64   `json:"id"`
	Creator         string   `json:"creator"`
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	Options         []string `json:"options"`
	StartTime       uint64   `json:"start_time"`
	EndTime         uint64   `json:"end_time"`
	IsPrivate       bool     `json:"is_private"`
	AllowRevote     bool     `json:"allow_revote"`
	IsActive        bool     `json:"is_active"`
	IsWeighted      bool     `json:"is_weighted"`
	AllowDelegation bool     `json:"allow_delegation"`
	IsEncrypted     bool     `json:"is_encrypted"`
	EarlyVoterBonus uint8    `json:"early_voter_bonus"`
}

type Results struct {
	Links struct {
		Self Link `json:"self"`
		Poll Link `json:"poll"`
	} `json:"_links"`

	PollID      uint64                `json:"poll_id"`
	Title       string                `json:"title"`
	Available   bool                  `json:"available"`
	Options     []entity.OptionResult `json:"options,omitempty"`
	TotalVoters uint64                `json:"total_voters"`
	IsActive    bool                  `json:"is_active"`
	IsFinalized bool                  `json:"is_finalized"`
}

type History struct {
	Links struct {
		Self   Link `json:"self"`
		Signer Link `json:"signer"`
		Poll   Link `json:"poll"`
	} `json:"_links"`

	Order         string   `json:"order"`
	Hash          string   `json:"hash"`
	Type          string   `json:"type"`
	Signer        string   `json:"signer"`
	Poll          string   `json:"poll"`
	TargetID      uint64   `json:"target_id"`
	Accounts      []string `json:"accounts"`
	FeeTxHash     string   `json:"fee_tx_hash"`
	BindingTxHash string   `json:"binding_tx_hash"`
	Binding       string   `json:"binding"`
	Time          uint64   `json:"time"`
	Committed     string   `json:"committed"`
}

type HistoriesPage struct {
	Links struct {
		Self Link `json:"self"`
		Next Link `json:"next"`
		Prev Link `json:"prev"`
	} `json:"_links"`
	Embedded struct {
		Records []History `json:"records"`
	} `json:"_embedded"`
}

type Receipt struct {
	Links struct {
		Self    Link `json:"self"`
		History Link `json:"history"`
	} `json:"_links"`

	Hash      string          `json:"hash"`
	Committed bool            `json:"committed"`
	History   *History        `json:"history,omitempty"`
	Results   *entity.Results `json:"results,omitempty"`
}
