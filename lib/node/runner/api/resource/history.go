package resource

import (
	"github.com/nvellon/hal"

	"boscoin.io/votebook/lib/node"
)

type History struct {
	h *node.History
}

func NewHistory(h *node.History) *History {
	return &History{h: h}
}

func (h History) GetMap() hal.Entry {
	return hal.Entry{
		"order":           h.h.Order,
		"hash":            h.h.Hash,
		"type":            h.h.Type,
		"signer":          h.h.Signer,
		"poll":            h.h.Poll,
		"target_id":       h.h.TargetID,
		"accounts":        h.h.Accounts,
		"fee_tx_hash":     h.h.FeeTxHash,
		"binding_tx_hash": h.h.BindingTxHash,
		"binding":         h.h.Binding,
		"time":            h.h.Time,
		"committed":       h.h.Committed,
	}
}

func (h History) Resource() *hal.Resource {
	r := hal.NewResource(h, h.LinkSelf())
	r.AddLink("signer", hal.NewLink(replaceID(URLAccounts, h.h.Signer)))
	if len(h.h.Poll) > 0 {
		r.AddLink("poll", hal.NewLink(replaceID(URLPolls, h.h.Poll)))
	}
	return r
}

func (h History) LinkSelf() string {
	return replaceID(URLHistory, h.h.Order)
}

// Receipt is the answer to a posted operation.
type Receipt struct {
	r *node.Receipt
}

func NewReceipt(r *node.Receipt) *Receipt {
	return &Receipt{r: r}
}

func (r Receipt) GetMap() hal.Entry {
	e := hal.Entry{
		"hash":      r.r.Hash,
		"committed": r.r.History != nil,
	}
	if r.r.History != nil {
		e["history"] = NewHistory(r.r.History).GetMap()
	}
	if r.r.Results != nil {
		e["results"] = r.r.Results
	}

	return e
}

func (r Receipt) Resource() *hal.Resource {
	res := hal.NewResource(r, r.LinkSelf())
	if r.r.History != nil {
		res.AddLink("history", hal.NewLink(replaceID(URLHistory, r.r.History.Order)))
	}
	return res
}

func (r Receipt) LinkSelf() string {
	return URLOperations
}
