package observer

import (
	"github.com/GianlucaGuarini/go-observable"
)

// PollObserver is triggered with the history record after an operation has
// changed a poll or its tally.
var PollObserver = observable.New()

// OperationObserver is triggered with the history record of every committed
// operation.
var OperationObserver = observable.New()

const (
	ResourcePoll      = "poll"
	ResourceOperation = "op"
	ConditionAll      = "*"
	ConditionAddress  = "address"
	ConditionType     = "type"
)

type Event struct {
	Resource  string `json:"resource"`
	Condition string `json:"condition"`
	Id        string `json:"id"`
}

func NewEvent(resource, condition, id string) Event {
	return Event{
		Resource:  resource,
		Condition: condition,
		Id:        id,
	}
}

func (e Event) String() string {
	toStr := e.Resource + "-"
	if e.Condition == ConditionAll {
		toStr += e.Condition
	} else {
		toStr += e.Condition + "="
		toStr += e.Id
	}
	return toStr
}
