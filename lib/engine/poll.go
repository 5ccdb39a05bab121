package engine

import (
	"boscoin.io/votebook/lib/account"
	"boscoin.io/votebook/lib/common"
	"boscoin.io/votebook/lib/entity"
	"boscoin.io/votebook/lib/errors"
	"boscoin.io/votebook/lib/operation"
)

type CreatePollChecker struct {
	common.DefaultChecker

	Config   common.Config
	Body     operation.CreatePoll
	Accounts []*account.Account
	Now      uint64
}

func (c *CreatePollChecker) needsToken() bool {
	return c.Body.IsWeighted && c.Body.WeightToken.IsSome()
}

func CheckCreatePollAccounts(c common.Checker, args ...interface{}) error {
	checker := c.(*CreatePollChecker)

	required := 4
	if checker.needsToken() {
		required = 5
	}
	if err := account.CheckAccountsLength(checker.Accounts, required); err != nil {
		return err
	}
	if err := checker.Accounts[0].CheckSigner(); err != nil {
		return err
	}

	return checkWritable(checker.Accounts[1], checker.Accounts[2], checker.Accounts[3])
}

func CheckCreatePollParameters(c common.Checker, args ...interface{}) error {
	checker := c.(*CreatePollChecker)
	return checker.Body.IsWellFormed(checker.Config)
}

func CheckCreatePollEndTime(c common.Checker, args ...interface{}) error {
	checker := c.(*CreatePollChecker)
	if checker.Body.EndTime <= checker.Now {
		return errors.InvalidPollParameters.Clone().SetData("reason", "end time already passed")
	}
	return nil
}

func CheckCreatePollNotExists(c common.Checker, args ...interface{}) error {
	checker := c.(*CreatePollChecker)
	if !checker.Accounts[1].IsEmpty() {
		return errors.PollAlreadyExists.Clone().SetData("account", checker.Accounts[1].Key.Address())
	}
	return nil
}

func CheckCreatePollWeightToken(c common.Checker, args ...interface{}) error {
	checker := c.(*CreatePollChecker)
	if !checker.needsToken() {
		return nil
	}

	token, _ := checker.Body.WeightToken.Get()
	if checker.Accounts[4].Key != token {
		return errors.InvalidToken.Clone().SetData("token", checker.Accounts[4].Key.Address())
	}
	return nil
}

var CreatePollCheckerFuncs = []common.CheckerFunc{
	CheckCreatePollAccounts,
	CheckCreatePollParameters,
	CheckCreatePollEndTime,
	CheckCreatePollNotExists,
	CheckCreatePollWeightToken,
}

func (e *Engine) createPoll(body operation.CreatePoll, accounts []*account.Account, now uint64, result *Result) error {
	checker := &CreatePollChecker{
		DefaultChecker: common.DefaultChecker{Funcs: CreatePollCheckerFuncs},
		Config:         e.config,
		Body:           body,
		Accounts:       accounts,
		Now:            now,
	}
	if err := common.RunChecker(checker, deferFunc("create-poll")); err != nil {
		return err
	}

	creator := accounts[0].Key
	id := entity.MakeID(now, creator)

	poll := &entity.Poll{
		ID:              id,
		Creator:         creator,
		Title:           body.Title,
		Description:     body.Description,
		Options:         body.Options,
		StartTime:       body.StartTime,
		EndTime:         body.EndTime,
		IsPrivate:       body.IsPrivate,
		AllowRevote:     body.AllowRevote,
		IsActive:        true,
		IsWeighted:      body.IsWeighted,
		AllowDelegation: body.AllowDelegation,
		IsEncrypted:     body.IsEncrypted,
		WeightToken:     body.WeightToken,
		EarlyVoterBonus: body.EarlyVoterBonus,
	}

	if err := store(accounts[1], poll); err != nil {
		return err
	}
	if err := store(accounts[2], entity.NewVoteCount(id, len(body.Options), now)); err != nil {
		return err
	}
	if err := store(accounts[3], entity.NewVoterRegistry(id, e.config.VoterBitmapBytes)); err != nil {
		return err
	}

	result.ID = id
	result.Poll = &accounts[1].Key

	log.Debug("poll created", "poll", id, "creator", creator, "options", len(body.Options))

	return nil
}

func (e *Engine) cancelPoll(body operation.CancelPoll, accounts []*account.Account, now uint64, result *Result) error {
	if err := account.CheckAccountsLength(accounts, 2); err != nil {
		return err
	}
	creator, pollAccount := accounts[0], accounts[1]
	if err := creator.CheckSigner(); err != nil {
		return err
	}
	if err := checkWritable(pollAccount); err != nil {
		return err
	}

	poll, err := loadPoll(pollAccount, body.PollID)
	if err != nil {
		return err
	}
	if poll.Creator != creator.Key {
		return errors.NotPollCreator
	}
	if !poll.IsActive {
		return errors.PollNotActive.Clone().SetData("poll", poll.ID)
	}
	if poll.HasStarted(now) {
		return errors.PollAlreadyStarted.Clone().SetData("poll", poll.ID)
	}

	poll.Deactivate()
	if err := store(pollAccount, poll); err != nil {
		return err
	}

	result.ID = poll.ID
	result.Poll = &pollAccount.Key

	return nil
}

func (e *Engine) closePoll(body operation.ClosePoll, accounts []*account.Account, now uint64, result *Result) error {
	if err := account.CheckAccountsLength(accounts, 3); err != nil {
		return err
	}
	caller, pollAccount, countAccount := accounts[0], accounts[1], accounts[2]
	if err := caller.CheckSigner(); err != nil {
		return err
	}
	if err := checkWritable(pollAccount, countAccount); err != nil {
		return err
	}

	poll, err := loadPoll(pollAccount, body.PollID)
	if err != nil {
		return err
	}
	if !poll.IsActive {
		return errors.PollNotActive.Clone().SetData("poll", poll.ID)
	}
	if !poll.HasEnded(now) && poll.Creator != caller.Key {
		return errors.NotPollCreator
	}

	poll.Deactivate()

	// encrypted polls are finalized by DecryptResults
	if !poll.IsEncrypted {
		count, err := loadVoteCount(countAccount, poll.ID)
		if err != nil {
			return err
		}
		if err = count.Finalize(now); err != nil {
			return err
		}
		if err = store(countAccount, count); err != nil {
			return err
		}
	}

	if err := store(pollAccount, poll); err != nil {
		return err
	}

	result.ID = poll.ID
	result.Poll = &pollAccount.Key

	log.Debug("poll closed", "poll", poll.ID, "by", caller.Key, "finalized", !poll.IsEncrypted)

	return nil
}
