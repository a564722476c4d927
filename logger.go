package bstviz

// Logger is the subset of *slog.Logger the tree writes to, so a
// *slog.Logger can be passed to WithLogger as is. Adapters for zap, logrus
// and zerolog live in package logger.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// DiscardLogger drops every record. It is the default.
type DiscardLogger struct{}

func (DiscardLogger) Debug(string, ...any) {}
func (DiscardLogger) Info(string, ...any)  {}
func (DiscardLogger) Warn(string, ...any)  {}
func (DiscardLogger) Error(string, ...any) {}
