package engine

import (
	"boscoin.io/votebook/lib/account"
	"boscoin.io/votebook/lib/entity"
	"boscoin.io/votebook/lib/errors"
	"boscoin.io/votebook/lib/operation"
)

func (e *Engine) getResults(body operation.GetResults, accounts []*account.Account, result *Result) error {
	if err := account.CheckAccountsLength(accounts, 2); err != nil {
		return err
	}

	poll, err := loadPoll(accounts[0], body.PollID)
	if err != nil {
		return err
	}
	count, err := loadVoteCount(accounts[1], poll.ID)
	if err != nil {
		return err
	}

	result.ID = poll.ID
	result.Poll = &accounts[0].Key
	result.Results = entity.NewResults(poll, count)

	return nil
}

//
// decryptResults reveals the key of an encrypted poll and finalizes its
// count. A poll which is still active is closed on the way, once its end
// time passed. Tallying the encrypted ballots against the key is left to
// whoever holds the plaintext.
//
func (e *Engine) decryptResults(body operation.DecryptResults, accounts []*account.Account, now uint64, result *Result) error {
	if err := account.CheckAccountsLength(accounts, 3); err != nil {
		return err
	}
	creator, pollAccount, countAccount := accounts[0], accounts[1], accounts[2]
	if err := creator.CheckSigner(); err != nil {
		return err
	}
	if err := checkWritable(pollAccount, countAccount); err != nil {
		return err
	}

	poll, err := loadPoll(pollAccount, body.PollID)
	if err != nil {
		return err
	}
	if !poll.IsEncrypted {
		return errors.PollNotEncrypted.Clone().SetData("poll", poll.ID)
	}
	if poll.Creator != creator.Key {
		return errors.NotPollCreator
	}
	if len(body.DecryptionKey) < 1 {
		return errors.InvalidDecryptionKey
	}

	if poll.IsActive {
		if !poll.HasEnded(now) {
			return errors.PollStillActive.Clone().SetData("poll", poll.ID)
		}
		poll.Deactivate()
	}

	count, err := loadVoteCount(countAccount, poll.ID)
	if err != nil {
		return err
	}
	if count.IsFinalized {
		return errors.ResultsAlreadyFinalized.Clone().SetData("poll", poll.ID)
	}

	votes := accounts[3:]
	for _, a := range votes {
		if err = a.CheckWritable(); err != nil {
			return err
		}
		vote, err := loadVote(a)
		if err != nil {
			return err
		}
		if vote.PollID != poll.ID {
			return invalidAccountData(a, "vote of another poll")
		}
	}

	if err = count.Finalize(now); err != nil {
		return err
	}
	poll.DecryptionKey = entity.SomeBytes(body.DecryptionKey)

	if err = store(pollAccount, poll); err != nil {
		return err
	}
	if err = store(countAccount, count); err != nil {
		return err
	}

	result.ID = poll.ID
	result.Poll = &pollAccount.Key

	log.Debug("results decrypted", "poll", poll.ID, "votes", len(votes))

	return nil
}
