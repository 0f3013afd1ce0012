package logger

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

// Logger is the structured logging contract. Handlers, services and
// repositories depend on this interface only.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, err error)
	Fatal(msg string, err error)
}

// Config selects the output format and the minimum level.
type Config struct {
	Env   string // development: readable console output, anything else: JSON
	Level string // debug, info, warn, error
	Out   io.Writer
}

// ZeroLogger implements Logger on top of zerolog.
type ZeroLogger struct {
	zl zerolog.Logger
}

// NewLogger builds the application logger. It is called from the entrypoints.
func NewLogger(cfg Config) *ZeroLogger {
	var w io.Writer = cfg.Out
	if w == nil {
		w = os.Stderr
	}
	if cfg.Env == "development" {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: "15:04:05"}
	}

	zl := zerolog.New(w).Level(parseLevel(cfg.Level)).With().Timestamp().Logger()
	return &ZeroLogger{zl: zl}
}

// Nop discards everything. Tests and the quiet console use it.
func Nop() *ZeroLogger {
	return &ZeroLogger{zl: zerolog.Nop()}
}

func parseLevel(s string) zerolog.Level {
	switch s {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

func (l *ZeroLogger) Debug(msg string, fields map[string]interface{}) {
	l.zl.Debug().Fields(fields).Msg(msg)
}

func (l *ZeroLogger) Info(msg string, fields map[string]interface{}) {
	l.zl.Info().Fields(fields).Msg(msg)
}

func (l *ZeroLogger) Warn(msg string, fields map[string]interface{}) {
	l.zl.Warn().Fields(fields).Msg(msg)
}

func (l *ZeroLogger) Error(msg string, err error) {
	l.zl.Error().Err(err).Msg(msg)
}

// Fatal logs and exits the process.
func (l *ZeroLogger) Fatal(msg string, err error) {
	l.zl.Fatal().Err(err).Msg(msg)
}
