package resource

import (
	"github.com/nvellon/hal"

	"boscoin.io/votebook/lib/entity"
)

type Poll struct {
	address string
	p       *entity.Poll
}

func NewPoll(address string, p *entity.Poll) *Poll {
	return &Poll{address: address, p: p}
}

func (p Poll) GetMap() hal.Entry {
	return hal.Entry{
		"address":           p.address,
		"id":                p.p.ID,
		"creator":           p.p.Creator.Address(),
		"title":             p.p.Title,
		"description":       p.p.Description,
		"options":           p.p.Options,
		"start_time":        p.p.StartTime,
		"end_time":          p.p.EndTime,
		"is_private":        p.p.IsPrivate,
		"allow_revote":      p.p.AllowRevote,
		"is_active":         p.p.IsActive,
		"is_weighted":       p.p.IsWeighted,
		"allow_delegation":  p.p.AllowDelegation,
		"is_encrypted":      p.p.IsEncrypted,
		"weight_token":      p.p.WeightToken,
		"early_voter_bonus": p.p.EarlyVoterBonus,
	}
}

func (p Poll) Resource() *hal.Resource {
	r := hal.NewResource(p, p.LinkSelf())
	r.AddLink("results", hal.NewLink(replaceID(URLPollResults, p.address)))
	r.AddLink("history", hal.NewLink(replaceID(URLPollHistory, p.address)+"{?cursor,limit,reverse}", hal.LinkAttr{"templated": true}))
	return r
}

func (p Poll) LinkSelf() string {
	return replaceID(URLPolls, p.address)
}

type Results struct {
	address string
	r       *entity.Results
}

func NewResults(address string, r *entity.Results) *Results {
	return &Results{address: address, r: r}
}

func (r Results) GetMap() hal.Entry {
	e := hal.Entry{
		"poll_id":      r.r.PollID,
		"title":        r.r.Title,
		"available":    r.r.Available,
		"total_voters": r.r.TotalVoters,
		"is_active":    r.r.IsActive,
		"is_finalized": r.r.IsFinalized,
	}
	if r.r.Available {
		e["options"] = r.r.Options
	}

	return e
}

func (r Results) Resource() *hal.Resource {
	res := hal.NewResource(r, r.LinkSelf())
	res.AddLink("poll", hal.NewLink(replaceID(URLPolls, r.address)))
	return res
}

func (r Results) LinkSelf() string {
	return replaceID(URLPollResults, r.address)
}
