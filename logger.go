package hfsm

import (
	"log/slog"

	"github.com/kairoslabs/hfsm/embedded"
)

// slogLogger adapts the three-method Logger sink onto log/slog, mirroring
// the teacher's direct slog.Error(...) calls at construction-time failures.
type slogLogger struct {
	logger *slog.Logger
}

func (l slogLogger) Log(msg string, args ...any) {
	l.logger.Info(msg, args...)
}

func (l slogLogger) Warn(msg string, args ...any) {
	l.logger.Warn(msg, args...)
}

func (l slogLogger) Error(msg string, args ...any) {
	l.logger.Error(msg, args...)
}

var defaultLogger embedded.Logger = slogLogger{logger: slog.Default()}

// SetLogger replaces the process-wide default logger used by engines
// constructed without an explicit WithLogger option.
func SetLogger(l embedded.Logger) {
	if l == nil {
		return
	}
	defaultLogger = l
}
