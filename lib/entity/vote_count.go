package entity

import (
	"math"

	"boscoin.io/votebook/lib/errors"
)

type VoteCount struct {
	PollID      uint64   `json:"poll_id"`
	Counts      []uint64 `json:"counts"`
	TotalVoters uint64   `json:"total_voters"`
	LastUpdated uint64   `json:"last_updated"`
	IsFinalized bool     `json:"is_finalized"`
}

func NewVoteCount(pollID uint64, options int, now uint64) *VoteCount {
	return &VoteCount{
		PollID:      pollID,
		Counts:      make([]uint64, options),
		LastUpdated: now,
	}
}

func (c *VoteCount) Serialize() ([]byte, error) {
	return Encode(c)
}

func (c *VoteCount) Deserialize(b []byte) error {
	return Decode(b, c)
}

func saturatingAdd(a, b uint64) uint64 {
	if a > math.MaxUint64-b {
		return math.MaxUint64
	}
	return a + b
}

func saturatingSub(a, b uint64) uint64 {
	if b > a {
		return 0
	}
	return a - b
}

func (c *VoteCount) checkMutable() error {
	if c.IsFinalized {
		return errors.ResultsAlreadyFinalized.Clone().SetData("poll", c.PollID)
	}
	return nil
}

func (c *VoteCount) checkOption(index uint8) error {
	if int(index) >= len(c.Counts) {
		return errors.InvalidOptionIndex.Clone().SetData("option", index)
	}
	return nil
}

// AddVote counts the first ballot of a new voter.
func (c *VoteCount) AddVote(option uint8, weight uint64, now uint64) error {
	if err := c.checkMutable(); err != nil {
		return err
	}
	if err := c.checkOption(option); err != nil {
		return err
	}

	c.TotalVoters = saturatingAdd(c.TotalVoters, 1)
	c.Counts[option] = saturatingAdd(c.Counts[option], weight)
	c.LastUpdated = now

	return nil
}

// MoveVote takes `oldWeight` off the old option and puts `newWeight` on the
// new one. The number of voters does not change.
func (c *VoteCount) MoveVote(oldOption uint8, oldWeight uint64, newOption uint8, newWeight uint64, now uint64) error {
	if err := c.checkMutable(); err != nil {
		return err
	}
	if err := c.checkOption(newOption); err != nil {
		return err
	}

	if int(oldOption) < len(c.Counts) {
		c.Counts[oldOption] = saturatingSub(c.Counts[oldOption], oldWeight)
	}
	c.Counts[newOption] = saturatingAdd(c.Counts[newOption], newWeight)
	c.LastUpdated = now

	return nil
}

func (c *VoteCount) Finalize(now uint64) error {
	if err := c.checkMutable(); err != nil {
		return err
	}

	c.IsFinalized = true
	c.LastUpdated = now

	return nil
}

func (c *VoteCount) Sum() (sum uint64) {
	for _, n := range c.Counts {
		sum = saturatingAdd(sum, n)
	}
	return
}
