package operation

import (
	"boscoin.io/votebook/lib/common"
	"boscoin.io/votebook/lib/entity"
)

// MakeTestCreatePoll returns a plain three option poll running from `start`
// to `end`.
func MakeTestCreatePoll(start, end uint64, feeTx []byte) CreatePoll {
	return CreatePoll{
		Title:       "Which option?",
		Description: "test poll",
		Options:     []string{"first", "second", "third"},
		StartTime:   start,
		EndTime:     end,
		FeeTx:       feeTx,
	}
}

func MakeTestWeightedCreatePoll(start, end uint64, token common.Key, bonus uint8, feeTx []byte) CreatePoll {
	o := MakeTestCreatePoll(start, end, feeTx)
	o.IsWeighted = true
	o.WeightToken = entity.SomeKey(token)
	o.EarlyVoterBonus = bonus
	return o
}

func MakeTestCastVote(pollID uint64, option uint8, feeTx []byte) CastVote {
	return CastVote{
		PollID:      pollID,
		OptionIndex: option,
		FeeTx:       feeTx,
	}
}
