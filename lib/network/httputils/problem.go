package httputils

import (
	"encoding/json"
	"fmt"
	"net/http"

	"boscoin.io/votebook/lib/errors"
)

const ProblemTypePrefix = "https://votebook.boscoin.io/problems/"

// Problem is the body of every error response, see RFC 7807.
type Problem struct {
	Type     string                 `json:"type"`
	Title    string                 `json:"title"`
	Status   int                    `json:"status,omitempty"`
	Detail   string                 `json:"detail,omitempty"`
	Instance string                 `json:"instance,omitempty"`
	Extras   map[string]interface{} `json:"extras,omitempty"`
}

func NewStatusProblem(status int) Problem {
	return Problem{Type: "about:blank", Title: http.StatusText(status), Status: status}
}

func NewDetailedStatusProblem(status int, detail string) Problem {
	p := NewStatusProblem(status)
	p.Detail = detail
	return p
}

// NewErrorProblem makes a problem out of `err`. The code of an
// `*errors.Error` ends the problem type.
func NewErrorProblem(err error, status int) Problem {
	e, ok := err.(*errors.Error)
	if !ok {
		p := NewStatusProblem(status)
		p.Title = err.Error()
		return p
	}

	p := Problem{
		Type:   fmt.Sprintf("%s%d", ProblemTypePrefix, e.Code),
		Title:  e.Message,
		Status: status,
	}
	if len(e.Data) > 0 {
		p.Extras = e.Data
	}

	return p
}

func (p Problem) SetInstance(instance string) Problem {
	p.Instance = instance
	return p
}

func (p Problem) Serialize() ([]byte, error) {
	return json.Marshal(p)
}
