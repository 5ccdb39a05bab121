// Package weight resolves how much a ballot counts for.
package weight

import (
	"math"
	"math/big"

	"boscoin.io/votebook/lib/common"
	"boscoin.io/votebook/lib/entity"
	"boscoin.io/votebook/lib/errors"
)

// DefaultWeight is the weight of a ballot in an unweighted poll.
const DefaultWeight uint64 = 1

var maxUint64 = new(big.Int).SetUint64(math.MaxUint64)

//
// Multiplier returns the early voter bonus multiplier at `now` as an exact
// fraction:
//
//   1 + (bonus / 100) * (1 - elapsed / duration)
//
// `elapsed` never goes below 0 nor beyond `duration`. Without a bonus or
// with an empty time window the multiplier is 1.
//
func Multiplier(poll *entity.Poll, now uint64) *big.Rat {
	one := big.NewRat(1, 1)

	var duration uint64
	if poll.EndTime > poll.StartTime {
		duration = poll.EndTime - poll.StartTime
	}
	if poll.EarlyVoterBonus == 0 || duration == 0 {
		return one
	}

	var elapsed uint64
	if now > poll.StartTime {
		elapsed = now - poll.StartTime
	}
	if elapsed > duration {
		elapsed = duration
	}

	// remaining / duration
	remaining := new(big.Rat).SetFrac(
		new(big.Int).SetUint64(duration-elapsed),
		new(big.Int).SetUint64(duration),
	)
	bonus := big.NewRat(int64(poll.EarlyVoterBonus), 100)

	return one.Add(one, bonus.Mul(bonus, remaining))
}

// Apply returns ceil(amount * multiplier), saturating at the largest uint64.
func Apply(amount uint64, multiplier *big.Rat) uint64 {
	product := new(big.Rat).Mul(new(big.Rat).SetInt(new(big.Int).SetUint64(amount)), multiplier)

	q, r := new(big.Int).QuoRem(product.Num(), product.Denom(), new(big.Int))
	if r.Sign() > 0 {
		q.Add(q, big.NewInt(1))
	}
	if q.Cmp(maxUint64) > 0 {
		return math.MaxUint64
	}

	return q.Uint64()
}

//
// Resolve returns the weight of the ballot `voter` casts in `poll` at
// `now`.
//
// Params:
//   balance = the decoded token balance of the voter, nil when none was supplied
//   asserted = the weight the caller asked for, used by weighted polls
//              when no balance was supplied
//
func Resolve(poll *entity.Poll, voter common.Key, balance *entity.TokenBalance, asserted entity.OptionalUint64, now uint64) (uint64, error) {
	if !poll.IsWeighted {
		return DefaultWeight, nil
	}

	if balance == nil {
		if w, ok := asserted.Get(); ok {
			return w, nil
		}
		return DefaultWeight, nil
	}

	if balance.Owner != voter {
		return 0, errors.InvalidAccountData.Clone().SetData("reason", "token balance owner is not the voter")
	}
	if token, ok := poll.WeightToken.Get(); ok && balance.Token != token {
		return 0, errors.InvalidToken.Clone().SetData("token", balance.Token.Address())
	}

	return Apply(balance.Amount, Multiplier(poll, now)), nil
}
