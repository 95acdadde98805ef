package logging

import (
	"fmt"
	"io"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Stacktrace is the log field under which a stack trace is recorded.
const Stacktrace = "stacktrace"

// CommandLineFormatter prints bare messages, for commands whose output is
// meant to be read (or piped) rather than shipped to a log collector.
type CommandLineFormatter struct{}

func (f *CommandLineFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	return []byte(fmt.Sprintf("%s\n", entry.Message)), nil
}

// NullLogger discards everything written to it. Handed to code under test
// that insists on a logger.
var NullLogger = &logrus.Logger{
	Out:       io.Discard,
	Formatter: new(logrus.TextFormatter),
	Hooks:     make(logrus.LevelHooks),
	Level:     logrus.PanicLevel,
}

// RunIDHook stamps every log entry with the run id, so logs from overlapping
// runs shipped to the same collector can be told apart.
type RunIDHook struct {
	RunID string
}

func (h RunIDHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

func (h RunIDHook) Fire(entry *logrus.Entry) error {
	entry.Data["run_id"] = h.RunID
	return nil
}

// Unexported but considered part of the stable interface of pkg/errors.
type stackTracer interface {
	StackTrace() errors.StackTrace
}

// Unexported but considered part of the stable interface of pkg/errors.
type causer interface {
	Cause() error
}

// WithStacktrace returns a logrus.Entry with the error attached as a field
// and, if the error carries one, its stack trace as well.
func WithStacktrace(logger *logrus.Entry, err error) *logrus.Entry {
	logger = logger.WithError(err)
	if stack := ExtractStack(err); stack != nil {
		logger = logger.WithField(Stacktrace, stack)
	}
	return logger
}

// ExtractStack walks the cause chain of err and returns the first stack
// trace recorded by pkg/errors, or nil if there is none.
func ExtractStack(err error) errors.StackTrace {
	for err != nil {
		if stackErr, ok := err.(stackTracer); ok {
			return stackErr.StackTrace()
		}
		causeErr, ok := err.(causer)
		if !ok {
			return nil
		}
		err = causeErr.Cause()
	}
	return nil
}
