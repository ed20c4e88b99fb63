package logger

import (
	"sync"

	"go.uber.org/zap"
)

// Logger provides structured logging with levels

type Logger struct {
	MinLevel LogLevel
	mu       sync.Mutex
	base     *zap.SugaredLogger
}

// LogLevel represents the severity of a log message
type LogLevel int

const (
	LevelDebug LogLevel = iota
	LevelInfo
	LevelWarn
	LevelError
)

// New returns a logger writing console-encoded zap entries to stderr.
func New(level LogLevel) *Logger {
	return &Logger{MinLevel: level, base: newZap()}
}

// Nop returns a logger that discards everything.
func Nop() *Logger {
	return &Logger{MinLevel: LevelDebug, base: zap.NewNop().Sugar()}
}

// ParseLevel maps debug/info/warn/error to a LogLevel, defaulting to info.
func ParseLevel(s string) LogLevel {
	switch s {
	case "debug":
		return LevelDebug
	case "warn":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}
