package operation

import (
	"boscoin.io/votebook/lib/common"
	"boscoin.io/votebook/lib/entity"
	"boscoin.io/votebook/lib/errors"
)

// CreatePoll
// Accounts:
//  0. `[signer]` creator
//  1. `[writable]` poll
//  2. `[writable]` vote count
//  3. `[writable]` voter registry
//  4. `[]` weight token, only when the poll is weighted
type CreatePoll struct {
	Title           string             `json:"title"`
	Description     string             `json:"description"`
	Options         []string           `json:"options"`
	StartTime       uint64             `json:"start_time"`
	EndTime         uint64             `json:"end_time"`
	IsPrivate       bool               `json:"is_private"`
	AllowRevote     bool               `json:"allow_revote"`
	IsWeighted      bool               `json:"is_weighted"`
	AllowDelegation bool               `json:"allow_delegation"`
	IsEncrypted     bool               `json:"is_encrypted"`
	WeightToken     entity.OptionalKey `json:"weight_token"`
	EarlyVoterBonus uint8              `json:"early_voter_bonus"`
	FeeTx           HexBytes           `json:"fee_tx"`
}

func invalidPollParameters(reason string) error {
	return errors.InvalidPollParameters.Clone().SetData("reason", reason)
}

// IsWellFormed checks the bounds of the poll parameters. The time window
// against the current time is checked when the poll is created.
func (o CreatePoll) IsWellFormed(config common.Config) error {
	if len(o.Title) < 1 || len(o.Title) > config.MaxTitleLength {
		return invalidPollParameters("title length")
	}
	if len(o.Description) > config.MaxDescriptionLength {
		return invalidPollParameters("description length")
	}
	if len(o.Options) < config.MinOptions || len(o.Options) > config.MaxOptions {
		return invalidPollParameters("number of options")
	}
	for _, option := range o.Options {
		if len(option) < 1 || len(option) > config.MaxOptionLength {
			return invalidPollParameters("option length")
		}
	}
	if o.StartTime >= o.EndTime {
		return invalidPollParameters("start time must be before end time")
	}
	if o.IsWeighted && !o.WeightToken.IsSome() {
		return invalidPollParameters("weighted poll without weight token")
	}
	if o.EarlyVoterBonus > config.MaxEarlyVoterBonus {
		return invalidPollParameters("early voter bonus")
	}

	return nil
}

func (o CreatePoll) HasFee() bool {
	return true
}

func (o CreatePoll) GetFeeTx() []byte {
	return o.FeeTx
}

// CancelPoll
// Accounts:
//  0. `[signer]` creator
//  1. `[writable]` poll
type CancelPoll struct {
	PollID uint64   `json:"poll_id"`
	FeeTx  HexBytes `json:"fee_tx"`
}

func (o CancelPoll) IsWellFormed(common.Config) error {
	return nil
}

func (o CancelPoll) HasFee() bool {
	return true
}

func (o CancelPoll) GetFeeTx() []byte {
	return o.FeeTx
}

// ClosePoll
// Accounts:
//  0. `[signer]` caller; anyone after the end time, the creator at any time
//  1. `[writable]` poll
//  2. `[writable]` vote count
type ClosePoll struct {
	PollID uint64   `json:"poll_id"`
	FeeTx  HexBytes `json:"fee_tx"`
}

func (o ClosePoll) IsWellFormed(common.Config) error {
	return nil
}

func (o ClosePoll) HasFee() bool {
	return true
}

func (o ClosePoll) GetFeeTx() []byte {
	return o.FeeTx
}

// GetResults
// Accounts:
//  0. `[]` poll
//  1. `[]` vote count
type GetResults struct {
	PollID uint64 `json:"poll_id"`
}

func (o GetResults) IsWellFormed(common.Config) error {
	return nil
}

func (o GetResults) HasFee() bool {
	return false
}

// DecryptResults
// Accounts:
//  0. `[signer]` creator
//  1. `[writable]` poll
//  2. `[writable]` vote count
//  3.. `[writable]` votes
type DecryptResults struct {
	PollID        uint64   `json:"poll_id"`
	DecryptionKey HexBytes `json:"decryption_key"`
	FeeTx         HexBytes `json:"fee_tx"`
}

func (o DecryptResults) IsWellFormed(common.Config) error {
	return nil
}

func (o DecryptResults) HasFee() bool {
	return true
}

func (o DecryptResults) GetFeeTx() []byte {
	return o.FeeTx
}
