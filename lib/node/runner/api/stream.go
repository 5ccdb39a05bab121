package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/GianlucaGuarini/go-observable"

	"boscoin.io/votebook/lib/network/httputils"
)

// DefaultContentType is "application/json"
const DefaultContentType = "application/json"

// EventStream handles chunked responses of a observable trigger
//
// renderFunc uses on observable.On() and Render function
type EventStream struct {
	contentType string
	renderFunc  RenderFunc
	request     *http.Request
	writer      http.ResponseWriter
	flusher     http.Flusher
	err         error
	rendered    bool
	stop        chan struct{}
	stopOnce    sync.Once
}

// RenderFunc gets the event name first and the triggered values after it.
type RenderFunc func(args ...interface{}) ([]byte, error)

var RenderJSONFunc = func(args ...interface{}) ([]byte, error) {
	if len(args) <= 1 {
		return nil, fmt.Errorf("render: value is empty")
	}
	v := args[1]
	if v == nil {
		return nil, nil
	}

	if h, ok := v.(httputils.HALResource); ok {
		return json.Marshal(h.Resource())
	}
	return json.Marshal(v)
}

// NewDefaultEventStream returns *EventStream with RenderJSONFunc and DefaultContentType
func NewDefaultEventStream(w http.ResponseWriter, r *http.Request) *EventStream {
	return NewEventStream(w, r, RenderJSONFunc, DefaultContentType)
}

// NewEventStream makes *EventStream and checks http.Flusher by type assertion.
func NewEventStream(w http.ResponseWriter, r *http.Request, renderFunc RenderFunc, ct string) *EventStream {
	es := &EventStream{
		request:     r,
		writer:      w,
		renderFunc:  renderFunc,
		contentType: ct,
		stop:        make(chan struct{}),
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		es.err = fmt.Errorf("http: can't do chunked response")
	} else {
		es.flusher = flusher
	}

	return es
}

// Render make a chunked response by using RenderFunc and flush it.
func (s *EventStream) Render(args ...interface{}) {
	if s.err != nil {
		return
	}

	renderArgs := append([]interface{}{"pre"}, args...)

	var bs []byte
	if payload, err := s.renderFunc(renderArgs...); err != nil {
		bs = s.errMessage(err)
	} else {
		bs = payload
	}

	s.setContentType()
	fmt.Fprintf(s.writer, "%s\n", bs)
	s.flusher.Flush()
}

// Run start observing events.
//
// Simple use case:
//
// 	event := observer.NewEvent(observer.ResourcePoll, observer.ConditionAddress, address).String()
// 	es := NewDefaultEventStream(w, r)
// 	es.Render(results)
// 	es.Run(observer.PollObserver, event)
func (s *EventStream) Run(ob *observable.Observable, events ...string) {
	s.Start(ob, events...)()
}

// Start prepares for observing events and returns run func.
//
// In most case, Use Run instead of Start
func (s *EventStream) Start(ob *observable.Observable, events ...string) func() {
	if s.err != nil {
		return func() {}
	}

	event := strings.Join(events, " ")
	msg := make(chan []byte)

	onFunc := func(args ...interface{}) {
		var (
			payload []byte
			err     error
		)

		as := append([]interface{}{event}, args...)
		if payload, err = s.renderFunc(as...); err != nil {
			payload = s.errMessage(err)
		}

		select {
		case msg <- payload:
		case <-s.stop:
		}
	}
	ob.On(event, onFunc)

	return func() {
		defer ob.Off(event, onFunc)

		s.setContentType()
		s.flusher.Flush()

		for {
			select {
			case payload := <-msg:
				fmt.Fprintf(s.writer, "%s\n", payload)
				s.flusher.Flush()
			case <-s.request.Context().Done():
				s.Stop()
				return
			case <-s.stop:
				return
			}
		}
	}
}

// Stop ends a running stream.
func (s *EventStream) Stop() {
	s.stopOnce.Do(func() {
		close(s.stop)
	})
}

func (s *EventStream) setContentType() {
	if s.rendered {
		return
	}
	s.writer.Header().Set("Content-Type", s.contentType)
	s.rendered = true
}

func (s *EventStream) errMessage(err error) []byte {
	p := httputils.NewErrorProblem(err, httputils.StatusCode(err))
	b, err := json.Marshal(p)
	if err != nil {
		b = []byte{}
	}
	return b
}
