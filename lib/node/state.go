package node

import (
	"fmt"
)

type State uint

const (
	StateNONE State = iota
	StateBOOTING
	StateRUNNING
	StateTERMINATING
)

var NodeInitState = StateNONE

func (s State) String() string {
	switch s {
	case 0:
		return "NONE"
	case 1:
		return "BOOTING"
	case 2:
		return "RUNNING"
	case 3:
		return "TERMINATING"
	}

	return ""
}

func (s State) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf("\"%s\"", s.String())), nil
}

func (s *State) UnmarshalJSON(b []byte) (err error) {
	if len(b) < 2 {
		return fmt.Errorf("invalid state: %q", b)
	}

	var c int
	switch string(b[1 : len(b)-1]) {
	case "NONE":
		c = 0
	case "BOOTING":
		c = 1
	case "RUNNING":
		c = 2
	case "TERMINATING":
		c = 3
	}

	*s = State(c)

	return
}
