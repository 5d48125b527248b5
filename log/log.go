// Package log is the logging interface used across fileshelf, backed by
// logrus.
package log

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

type Logger interface {
	Print(...interface{})
	Printf(string, ...interface{})
	Debug(...interface{})
	Debugf(string, ...interface{})
	Warnf(string, ...interface{})
	Error(...interface{})
	Errorf(string, ...interface{})
	Fatal(...interface{})
	Fatalf(string, ...interface{})

	WithField(key string, value interface{}) Logger
}

// entry gets every method but WithField from logrus.
type entry struct {
	*logrus.Entry
}

func (e entry) WithField(key string, value interface{}) Logger {
	return entry{e.Entry.WithField(key, value)}
}

// New creates a logger for env: JSON at info level in prod, text at debug
// level anywhere else. Logs go to stderr so that command output stays clean.
func New(env string) Logger {
	return NewWithOutput(env, "", os.Stderr)
}

// NewWithOutput is New with an explicit level, "" keeping the env default,
// and output. An unknown level is ignored.
func NewWithOutput(env, level string, w io.Writer) Logger {
	l := logrus.New()
	l.SetOutput(w)

	switch env {
	case "prod":
		l.SetFormatter(&logrus.JSONFormatter{})
		l.SetLevel(logrus.InfoLevel)
	default:
		l.SetFormatter(&logrus.TextFormatter{DisableTimestamp: env == "test"})
		l.SetLevel(logrus.DebugLevel)
	}

	if lvl, err := logrus.ParseLevel(strings.ToLower(level)); level != "" && err == nil {
		l.SetLevel(lvl)
	}

	return entry{l.WithField("env", env)}
}

// Discard returns a logger writing nowhere, for tests.
func Discard() Logger {
	return NewWithOutput("test", "error", io.Discard)
}
