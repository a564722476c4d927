package logger

import (
	"github.com/sirupsen/logrus"

	"bstviz"
)

// Logrus wraps a logrus.Logger to implement bstviz.Logger.
type Logrus struct {
	logger *logrus.Logger
}

// NewLogrus creates a bstviz.Logger from a logrus.Logger.
func NewLogrus(logger *logrus.Logger) bstviz.Logger {
	return &Logrus{logger: logger}
}

func (l *Logrus) entry(args []any) *logrus.Entry {
	return l.logger.WithFields(logrus.Fields(fields(args)))
}

func (l *Logrus) Debug(msg string, args ...any) { l.entry(args).Debug(msg) }
func (l *Logrus) Info(msg string, args ...any)  { l.entry(args).Info(msg) }
func (l *Logrus) Warn(msg string, args ...any)  { l.entry(args).Warn(msg) }
func (l *Logrus) Error(msg string, args ...any) { l.entry(args).Error(msg) }
