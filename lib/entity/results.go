package entity

type OptionResult struct {
	Index      int     `json:"index"`
	Option     string  `json:"option"`
	Count      uint64  `json:"count"`
	Percentage float64 `json:"percentage"`
}

// Results is the read only report of a poll. When `Available` is false the
// poll is encrypted and not finalized yet, and nothing else but the status
// is filled.
type Results struct {
	PollID      uint64         `json:"poll_id"`
	Title       string         `json:"title"`
	Available   bool           `json:"available"`
	Options     []OptionResult `json:"options,omitempty"`
	TotalVoters uint64         `json:"total_voters"`
	IsActive    bool           `json:"is_active"`
	IsFinalized bool           `json:"is_finalized"`
}

func NewResults(poll *Poll, count *VoteCount) *Results {
	r := &Results{
		PollID:      poll.ID,
		Title:       poll.Title,
		IsActive:    poll.IsActive,
		IsFinalized: count.IsFinalized,
	}

	if poll.IsEncrypted && !count.IsFinalized {
		return r
	}

	r.Available = true
	r.TotalVoters = count.TotalVoters
	for i, option := range poll.Options {
		var n uint64
		if i < len(count.Counts) {
			n = count.Counts[i]
		}

		var percentage float64
		if count.TotalVoters > 0 {
			percentage = float64(n) / float64(count.TotalVoters) * 100
		}

		r.Options = append(r.Options, OptionResult{
			Index:      i,
			Option:     option,
			Count:      n,
			Percentage: percentage,
		})
	}

	return r
}

func (r *Results) Status() string {
	if r.IsActive {
		return "active"
	}
	return "closed"
}
