package hooks

import (
	"fmt"
	"io"

	"github.com/bobinette/fileshelf/errors"
	"github.com/bobinette/fileshelf/log"
)

// Notifier receives the errors of write hooks.
type Notifier interface {
	Notify(op string, err error)
}

type NotifierFunc func(op string, err error)

func (f NotifierFunc) Notify(op string, err error) {
	f(op, err)
}

// Describe turns err into the message shown to the user.
func Describe(err error) string {
	msg := errors.Message(err)
	switch errors.KindOf(err) {
	case errors.KindUnauthorized:
		return "not logged in or session expired: " + msg
	case errors.KindPermissionDenied:
		return "permission denied: " + msg
	case errors.KindNotFound:
		return "not found: " + msg
	case errors.KindServer:
		return "server error: " + msg
	}
	return msg
}

type logNotifier struct {
	logger log.Logger
	w      io.Writer
}

// LogNotifier logs the errors and prints their description to w.
func LogNotifier(logger log.Logger, w io.Writer) Notifier {
	return logNotifier{logger: logger, w: w}
}

func (n logNotifier) Notify(op string, err error) {
	n.logger.WithField("op", op).WithField("kind", errors.KindOf(err).String()).Debugf("mutation failed: %v", err)
	if n.w != nil {
		fmt.Fprintf(n.w, "%s: %s\n", op, Describe(err))
	}
}
