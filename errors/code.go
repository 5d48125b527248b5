package errors

import (
	"net/http"
)

func BadRequest() ErrorEnricher   { return WithCode(http.StatusBadRequest) }
func Unauthorized() ErrorEnricher { return WithCode(http.StatusUnauthorized) }
func Forbidden() ErrorEnricher    { return WithCode(http.StatusForbidden) }
func NotFound() ErrorEnricher     { return WithCode(http.StatusNotFound) }
func Conflict() ErrorEnricher     { return WithCode(http.StatusConflict) }

// Code returns the HTTP code carried by err: 0 for nil, DefaultCode for
// errors that do not come from this package.
func Code(err error) int {
	if err == nil {
		return 0
	}
	if err, ok := err.(Error); ok {
		return err.Code()
	}
	return DefaultCode
}

// Kind is the coarse category the dashboard shows a distinct message for.
type Kind int

const (
	KindNone Kind = iota
	KindUnauthorized
	KindPermissionDenied
	KindNotFound
	KindServer
	KindInvalid
	KindGeneric
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindUnauthorized:
		return "unauthorized"
	case KindPermissionDenied:
		return "permission denied"
	case KindNotFound:
		return "not found"
	case KindServer:
		return "server error"
	case KindInvalid:
		return "invalid"
	}
	return "failure"
}

// KindOf classifies err from its code. Errors foreign to this package are
// generic failures, not server errors.
func KindOf(err error) Kind {
	if err == nil {
		return KindNone
	}
	e, ok := err.(Error)
	if !ok {
		return KindGeneric
	}
	return KindOfCode(e.Code())
}

func KindOfCode(code int) Kind {
	switch {
	case code == http.StatusUnauthorized:
		return KindUnauthorized
	case code == http.StatusForbidden:
		return KindPermissionDenied
	case code == http.StatusNotFound:
		return KindNotFound
	case code >= 500:
		return KindServer
	case code == http.StatusBadRequest, code == http.StatusUnprocessableEntity, code == http.StatusConflict:
		return KindInvalid
	}
	return KindGeneric
}

func IsUnauthorized(err error) bool { return KindOf(err) == KindUnauthorized }
func IsForbidden(err error) bool    { return KindOf(err) == KindPermissionDenied }
func IsNotFound(err error) bool     { return KindOf(err) == KindNotFound }
func IsServer(err error) bool       { return KindOf(err) == KindServer }

// Message returns the message of err without its causes.
func Message(err error) string {
	if err == nil {
		return ""
	}
	if e, ok := err.(Error); ok {
		return e.Message()
	}
	return err.Error()
}
