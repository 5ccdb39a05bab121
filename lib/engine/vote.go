package engine

import (
	"boscoin.io/votebook/lib/account"
	"boscoin.io/votebook/lib/common"
	"boscoin.io/votebook/lib/entity"
	"boscoin.io/votebook/lib/errors"
	"boscoin.io/votebook/lib/operation"
	"boscoin.io/votebook/lib/weight"
)

const (
	castVoteDelegationIndex   = 5
	castVoteTokenBalanceIndex = 6
)

// CastVoteChecker carries the state loaded while a ballot is checked; the
// later steps depend on what the former ones decoded.
type CastVoteChecker struct {
	common.DefaultChecker

	Body     operation.CastVote
	Accounts []*account.Account
	Now      uint64

	Poll       *entity.Poll
	Count      *entity.VoteCount
	Registry   *entity.VoterRegistry
	Previous   *entity.Vote
	Delegation *entity.Delegation
	Balance    *entity.TokenBalance
	Weight     uint64
}

func (c *CastVoteChecker) voter() *account.Account {
	return c.Accounts[0]
}

func CheckCastVoteAccounts(c common.Checker, args ...interface{}) error {
	checker := c.(*CastVoteChecker)

	if err := account.CheckAccountsLength(checker.Accounts, 5); err != nil {
		return err
	}
	if err := checker.voter().CheckSigner(); err != nil {
		return err
	}

	return checkWritable(checker.Accounts[1:5]...)
}

func CheckCastVotePoll(c common.Checker, args ...interface{}) (err error) {
	checker := c.(*CastVoteChecker)

	if checker.Poll, err = loadPoll(checker.Accounts[2], checker.Body.PollID); err != nil {
		return
	}
	if err = checkVotingWindow(checker.Poll, checker.Now); err != nil {
		return
	}
	if !checker.Poll.IsValidOption(checker.Body.OptionIndex) {
		return errors.InvalidOptionIndex.Clone().SetData("option", checker.Body.OptionIndex)
	}

	return
}

func CheckCastVoteRegistry(c common.Checker, args ...interface{}) (err error) {
	checker := c.(*CastVoteChecker)

	if checker.Count, err = loadVoteCount(checker.Accounts[3], checker.Poll.ID); err != nil {
		return
	}
	if checker.Registry, err = loadVoterRegistry(checker.Accounts[4], checker.Poll.ID); err != nil {
		return
	}
	if checker.Registry.Contains(checker.voter().Key) && !checker.Poll.AllowRevote {
		return errors.AlreadyVoted.Clone().SetData("voter", checker.voter().Key.Address())
	}

	return
}

// CheckCastVotePrevious loads the ballot a registered voter cast before; a
// new voter must hand over an unused vote account.
func CheckCastVotePrevious(c common.Checker, args ...interface{}) (err error) {
	checker := c.(*CastVoteChecker)
	voteAccount := checker.Accounts[1]

	if !checker.Registry.Contains(checker.voter().Key) {
		if !voteAccount.IsEmpty() {
			return invalidAccountData(voteAccount, "vote account already used")
		}
		return
	}

	if checker.Previous, err = loadVote(voteAccount); err != nil {
		return
	}
	if !checker.Previous.BelongsTo(checker.Poll.ID, checker.voter().Key) {
		return invalidAccountData(voteAccount, "vote of another voter or poll")
	}

	return
}

func CheckCastVoteDelegation(c common.Checker, args ...interface{}) error {
	checker := c.(*CastVoteChecker)

	a := optionalAccount(checker.Accounts, castVoteDelegationIndex)
	if a == nil {
		return nil
	}
	if !checker.Poll.AllowDelegation {
		return errors.InvalidDelegation.Clone().SetData("reason", "poll does not allow delegation")
	}

	var delegation entity.Delegation
	if err := delegation.Deserialize(a.Data); err != nil {
		return invalidAccountData(a, "not a delegation")
	}
	if err := delegation.CheckUsable(checker.Poll.ID, checker.voter().Key, checker.Now); err != nil {
		return err
	}
	checker.Delegation = &delegation

	return nil
}

func CheckCastVotePrivacy(c common.Checker, args ...interface{}) error {
	checker := c.(*CastVoteChecker)
	return checkPrivacy(checker.Poll, checker.Body.EncryptedData, checker.Body.ZkProof, checker.Body.Nonce)
}

func CheckCastVoteWeight(c common.Checker, args ...interface{}) (err error) {
	checker := c.(*CastVoteChecker)

	if a := optionalAccount(checker.Accounts, castVoteTokenBalanceIndex); a != nil {
		var balance entity.TokenBalance
		if err = balance.Deserialize(a.Data); err != nil {
			return errors.TokenBalanceNotFound.Clone().SetData("account", a.Key.Address())
		}
		checker.Balance = &balance
	}

	checker.Weight, err = weight.Resolve(
		checker.Poll,
		checker.voter().Key,
		checker.Balance,
		checker.Body.Weight,
		checker.Now,
	)

	return
}

var CastVoteCheckerFuncs = []common.CheckerFunc{
	CheckCastVoteAccounts,
	CheckCastVotePoll,
	CheckCastVoteRegistry,
	CheckCastVotePrevious,
	CheckCastVoteDelegation,
	CheckCastVotePrivacy,
	CheckCastVoteWeight,
}

func (e *Engine) castVote(body operation.CastVote, accounts []*account.Account, now uint64, result *Result) error {
	checker := &CastVoteChecker{
		DefaultChecker: common.DefaultChecker{Funcs: CastVoteCheckerFuncs},
		Body:           body,
		Accounts:       accounts,
		Now:            now,
	}
	if err := common.RunChecker(checker, deferFunc("cast-vote")); err != nil {
		return err
	}

	voter := accounts[0].Key
	poll, count, registry := checker.Poll, checker.Count, checker.Registry

	if previous := checker.Previous; previous != nil {
		err := count.MoveVote(previous.OptionIndex, previous.Weight, body.OptionIndex, checker.Weight, now)
		if err != nil {
			return err
		}
	} else {
		if err := count.AddVote(body.OptionIndex, checker.Weight, now); err != nil {
			return err
		}
		registry.Add(voter)
	}

	vote := &entity.Vote{
		PollID:        poll.ID,
		Voter:         voter,
		OptionIndex:   body.OptionIndex,
		Timestamp:     now,
		Weight:        checker.Weight,
		EncryptedData: body.EncryptedData,
		ZkProof:       body.ZkProof,
		Nonce:         body.Nonce,
	}
	if checker.Delegation != nil {
		vote.DelegatedTo = entity.SomeKey(checker.Delegation.Delegate)
	}

	if err := store(accounts[1], vote); err != nil {
		return err
	}
	if err := store(accounts[3], count); err != nil {
		return err
	}
	if err := store(accounts[4], registry); err != nil {
		return err
	}

	result.ID = poll.ID
	result.Poll = &accounts[2].Key

	log.Debug(
		"vote cast",
		"poll", poll.ID,
		"voter", voter,
		"option", body.OptionIndex,
		"weight", checker.Weight,
		"revote", checker.Previous != nil,
	)

	return nil
}

func (e *Engine) changeVote(body operation.ChangeVote, accounts []*account.Account, now uint64, result *Result) error {
	if err := account.CheckAccountsLength(accounts, 4); err != nil {
		return err
	}
	voter, voteAccount, pollAccount, countAccount := accounts[0], accounts[1], accounts[2], accounts[3]
	if err := voter.CheckSigner(); err != nil {
		return err
	}
	if err := checkWritable(voteAccount, pollAccount, countAccount); err != nil {
		return err
	}

	poll, err := loadPoll(pollAccount, body.PollID)
	if err != nil {
		return err
	}
	if !poll.IsActive {
		return errors.PollNotActive.Clone().SetData("poll", poll.ID)
	}
	if !poll.AllowRevote {
		return errors.RevotingNotAllowed.Clone().SetData("poll", poll.ID)
	}
	if err = checkVotingWindow(poll, now); err != nil {
		return err
	}
	if !poll.IsValidOption(body.NewOptionIndex) {
		return errors.InvalidOptionIndex.Clone().SetData("option", body.NewOptionIndex)
	}

	vote, err := loadVote(voteAccount)
	if err != nil {
		return err
	}
	if !vote.BelongsTo(poll.ID, voter.Key) {
		return invalidAccountData(voteAccount, "vote of another voter or poll")
	}
	if err = checkPrivacy(poll, body.NewEncryptedData, body.NewZkProof, body.NewNonce); err != nil {
		return err
	}

	count, err := loadVoteCount(countAccount, poll.ID)
	if err != nil {
		return err
	}
	if err = count.MoveVote(vote.OptionIndex, vote.Weight, body.NewOptionIndex, vote.Weight, now); err != nil {
		return err
	}

	vote.OptionIndex = body.NewOptionIndex
	vote.Timestamp = now
	vote.EncryptedData = body.NewEncryptedData
	vote.ZkProof = body.NewZkProof
	vote.Nonce = body.NewNonce

	if err = store(voteAccount, vote); err != nil {
		return err
	}
	if err = store(countAccount, count); err != nil {
		return err
	}

	result.ID = poll.ID
	result.Poll = &pollAccount.Key

	return nil
}
