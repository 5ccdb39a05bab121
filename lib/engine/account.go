package engine

import (
	"boscoin.io/votebook/lib/account"
	"boscoin.io/votebook/lib/entity"
	"boscoin.io/votebook/lib/errors"
)

type serializable interface {
	Serialize() ([]byte, error)
}

func checkWritable(accounts ...*account.Account) error {
	for _, a := range accounts {
		if err := a.CheckWritable(); err != nil {
			return err
		}
	}
	return nil
}

func store(a *account.Account, v serializable) error {
	b, err := v.Serialize()
	if err != nil {
		return errors.InvalidAccountData.Clone().SetData("error", err.Error())
	}
	return a.Store(b)
}

func invalidAccountData(a *account.Account, reason string) error {
	return errors.InvalidAccountData.Clone().
		SetData("account", a.Key.Address()).
		SetData("reason", reason)
}

func loadPoll(a *account.Account, pollID uint64) (*entity.Poll, error) {
	if a.IsEmpty() {
		return nil, errors.PollDoesNotExist.Clone().SetData("poll", pollID)
	}

	var poll entity.Poll
	if err := poll.Deserialize(a.Data); err != nil {
		return nil, invalidAccountData(a, "not a poll")
	}
	if poll.ID != pollID {
		return nil, errors.PollDoesNotExist.Clone().SetData("poll", pollID)
	}

	return &poll, nil
}

func loadVoteCount(a *account.Account, pollID uint64) (*entity.VoteCount, error) {
	var count entity.VoteCount
	if err := count.Deserialize(a.Data); err != nil {
		return nil, invalidAccountData(a, "not a vote count")
	}
	if count.PollID != pollID {
		return nil, invalidAccountData(a, "vote count of another poll")
	}

	return &count, nil
}

func loadVoterRegistry(a *account.Account, pollID uint64) (*entity.VoterRegistry, error) {
	var registry entity.VoterRegistry
	if err := registry.Deserialize(a.Data); err != nil {
		return nil, invalidAccountData(a, "not a voter registry")
	}
	if registry.PollID != pollID {
		return nil, invalidAccountData(a, "voter registry of another poll")
	}

	return &registry, nil
}

func loadVote(a *account.Account) (*entity.Vote, error) {
	var vote entity.Vote
	if err := vote.Deserialize(a.Data); err != nil {
		return nil, invalidAccountData(a, "not a vote")
	}

	return &vote, nil
}

// optionalAccount returns the account at `index` unless it is missing or
// empty; an empty account stands for an optional account which is not used.
func optionalAccount(accounts []*account.Account, index int) *account.Account {
	if len(accounts) <= index || accounts[index].IsEmpty() {
		return nil
	}
	return accounts[index]
}

func checkPrivacy(poll *entity.Poll, encryptedData, zkProof, nonce entity.OptionalBytes) error {
	if poll.IsPrivate {
		if proof, ok := zkProof.Get(); !ok || len(proof) < 1 {
			return errors.InvalidZkProof
		}
	}

	if poll.IsEncrypted {
		if !encryptedData.IsSome() {
			return errors.InvalidEncryption
		}
		if !nonce.IsSome() {
			return errors.MissingNonce
		}
	}

	return nil
}

func checkVotingWindow(poll *entity.Poll, now uint64) error {
	if !poll.IsActive {
		return errors.PollNotActive.Clone().SetData("poll", poll.ID)
	}
	if !poll.HasStarted(now) {
		return errors.PollNotStarted.Clone().SetData("poll", poll.ID)
	}
	if poll.HasEnded(now) {
		return errors.PollEnded.Clone().SetData("poll", poll.ID)
	}
	return nil
}
