package planner

import (
	"errors"
	"fmt"
)

// ErrorKind classifies why a generation attempt did not yield a generated plan.
type ErrorKind string

const (
	KindTransport  ErrorKind = "transport"
	KindSchema     ErrorKind = "schema"
	KindParse      ErrorKind = "parse"
	KindDerivation ErrorKind = "derivation"
)

// ErrNoJSONObject means the completion had no {...} span at all.
var ErrNoJSONObject = errors.New("could not find valid JSON in response")

const (
	opPlan = "generate meal plan"
	opChat = "get chat reply"
)

var errNoWeekdays = errors.New("JSON object contains no weekday entries")

// DecodeError is a JSON-looking completion that failed strict decoding.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return e.Err.Error()
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// TransportError wraps a failed model invocation.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	op := e.Op
	if op == "" {
		op = opPlan
	}
	return fmt.Sprintf("Failed to %s: %v", op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// GenerationError is the diagnostic attached to a result.
type GenerationError struct {
	Kind        ErrorKind `json:"kind"`
	Message     string    `json:"message"`
	RawResponse string    `json:"raw_response,omitempty"`
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}
