package commands

import (
	"io"

	"github.com/rs/zerolog"

	"github.com/weevils-io/weevils-go/pkg/weevils"
)

// Logger writes client logs through zerolog.
type Logger struct {
	logger zerolog.Logger
}

var _ weevils.Logger = (*Logger)(nil)

// NewLogger creates a human-readable logger writing to out. Debug messages
// are dropped unless debug is set.
func NewLogger(out io.Writer, debug bool) *Logger {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}

	logger := zerolog.New(zerolog.ConsoleWriter{Out: out, NoColor: true}).
		Level(level).
		With().
		Timestamp().
		Logger()

	return &Logger{logger: logger}
}

func (l *Logger) Debug(msg string, fields map[string]interface{}) {
	l.logger.Debug().Fields(fields).Msg(msg)
}

func (l *Logger) Info(msg string, fields map[string]interface{}) {
	l.logger.Info().Fields(fields).Msg(msg)
}

func (l *Logger) Warn(msg string, fields map[string]interface{}) {
	l.logger.Warn().Fields(fields).Msg(msg)
}

func (l *Logger) Error(msg string, fields map[string]interface{}) {
	l.logger.Error().Fields(fields).Msg(msg)
}
