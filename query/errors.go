package query

import (
	"errors"
	"fmt"
)

// Kind classifies an error for the caller.
type Kind uint8

const (
	KindValidation Kind = iota + 1
	KindNotFound
	KindStorage
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not found"
	case KindStorage:
		return "storage"
	}
	return "unknown"
}

// Error is the error type returned by the builders and by the controllers
// when they talk to the store.
type Error struct {
	Kind  Kind
	Field string // set for validation errors on a single input
	Msg   string
	Err   error
}

func (e *Error) Error() string {
	msg := e.Msg
	if e.Field != "" {
		msg = e.Field + ": " + msg
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// Invalid reports malformed input. field may be empty when the problem is
// not tied to one input.
func Invalid(field, msg string) error {
	return &Error{Kind: KindValidation, Field: field, Msg: msg}
}

// NotFound reports that the lookup key matched nothing.
func NotFound(what string) error {
	return &Error{Kind: KindNotFound, Msg: what + " not found"}
}

// Storage wraps a failure from the document store.
func Storage(op string, err error) error {
	return &Error{Kind: KindStorage, Msg: op, Err: err}
}

// KindOf returns the kind of err. Errors that did not come from this
// package are treated as storage errors; nil has kind 0.
func KindOf(err error) Kind {
	if err == nil {
		return 0
	}
	var qe *Error
	if errors.As(err, &qe) {
		return qe.Kind
	}
	return KindStorage
}
