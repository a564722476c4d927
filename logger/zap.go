package logger

import (
	"go.uber.org/zap"

	"bstviz"
)

// Zap wraps a zap.Logger to implement bstviz.Logger.
type Zap struct {
	sugar *zap.SugaredLogger
}

// NewZap creates a bstviz.Logger from a zap.Logger.
func NewZap(logger *zap.Logger) bstviz.Logger {
	return &Zap{sugar: logger.Sugar()}
}

func (z *Zap) Debug(msg string, args ...any) { z.sugar.Debugw(msg, args...) }
func (z *Zap) Info(msg string, args ...any)  { z.sugar.Infow(msg, args...) }
func (z *Zap) Warn(msg string, args ...any)  { z.sugar.Warnw(msg, args...) }
func (z *Zap) Error(msg string, args ...any) { z.sugar.Errorw(msg, args...) }
