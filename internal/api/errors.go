package api

import (
	"errors"
	"fmt"
)

// ErrRequest matches every *RequestError via errors.Is.
var ErrRequest = errors.New("request failed")

// RequestError is the single failure kind the client reports: the request
// could not be sent, came back non-2xx, or had an unreadable body.
type RequestError struct {
	Method string
	Path   string
	Status int // 0 when no response arrived
	Err    error
}

func (e *RequestError) Error() string {
	msg := fmt.Sprintf("%s %s", e.Method, e.Path)
	if e.Status != 0 {
		msg += fmt.Sprintf(": status %d", e.Status)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return "request failed: " + msg
}

func (e *RequestError) Unwrap() error { return e.Err }

func (e *RequestError) Is(target error) bool { return target == ErrRequest }
