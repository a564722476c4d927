package logger

import (
	"github.com/rs/zerolog"

	"bstviz"
)

// Zerolog wraps a zerolog.Logger to implement bstviz.Logger.
type Zerolog struct {
	logger zerolog.Logger
}

// NewZerolog creates a bstviz.Logger from a zerolog.Logger.
func NewZerolog(logger zerolog.Logger) bstviz.Logger {
	return &Zerolog{logger: logger}
}

func (z *Zerolog) Debug(msg string, args ...any) { z.logger.Debug().Fields(fields(args)).Msg(msg) }
func (z *Zerolog) Info(msg string, args ...any)  { z.logger.Info().Fields(fields(args)).Msg(msg) }
func (z *Zerolog) Warn(msg string, args ...any)  { z.logger.Warn().Fields(fields(args)).Msg(msg) }
func (z *Zerolog) Error(msg string, args ...any) { z.logger.Error().Fields(fields(args)).Msg(msg) }
