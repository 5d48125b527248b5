// Package errors carries the HTTP status of a failure along with its
// message and cause, from the API clients up to the CLI.
package errors

import (
	"fmt"
)

type Error interface {
	error

	Code() int
	Message() string
	Cause() error
}

// DefaultCode is the status of an error built without one: 500, Internal
// Server Error.
var DefaultCode = 500

// coded is the Error built by New. Foreign causes are kept untouched so
// that the standard errors.Is and errors.As still see them.
type coded struct {
	status int
	msg    string
	cause  error

	// explicit is set once WithCode ran. Until then the status follows
	// the cause.
	explicit bool
}

func (e *coded) Error() string {
	if e.cause == nil {
		return e.msg
	}
	return fmt.Sprintf("%s: %v", e.msg, e.cause)
}

func (e *coded) Code() int       { return e.status }
func (e *coded) Message() string { return e.msg }
func (e *coded) Cause() error    { return e.cause }
func (e *coded) Unwrap() error   { return e.cause }

type ErrorEnricher func(error) error

// WithCode sets the status of err. A foreign err is converted, keeping its
// message.
func WithCode(code int) ErrorEnricher {
	return func(err error) error {
		if err == nil {
			return nil
		}

		e, ok := err.(*coded)
		if !ok {
			e = &coded{msg: err.Error()}
		}
		e.status = code
		e.explicit = true
		return e
	}
}

// WithCause attaches cause to err. The status of cause is forwarded unless
// a code was set explicitly.
func WithCause(cause error) ErrorEnricher {
	return func(err error) error {
		if err == nil {
			return nil
		}

		e, ok := err.(*coded)
		if !ok {
			e = &coded{msg: err.Error(), status: DefaultCode}
		}
		e.cause = cause
		if cause != nil && !e.explicit {
			e.status = Code(cause)
		}
		return e
	}
}

func New(msg string, fs ...ErrorEnricher) error {
	var err error = &coded{msg: msg, status: DefaultCode}
	for _, f := range fs {
		err = f(err)
	}
	return err
}

// Wrap prefixes err with msg and keeps its code. A nil err gives nil.
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return New(msg, WithCause(err))
}
