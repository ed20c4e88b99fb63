package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func observed(level LogLevel) (*Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return &Logger{MinLevel: level, base: zap.New(core).Sugar()}, logs
}

func TestLevels(t *testing.T) {
	l, logs := observed(LevelWarn)

	l.Debug("Loader", "dropped")
	l.Info("Loader", "dropped")
	l.Warn("Loader", "kept %d", 1)
	l.Error("Loader", "kept %d", 2)

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, "kept 1", entries[0].Message)
	assert.Equal(t, zapcore.ErrorLevel, entries[1].Level)
	assert.Equal(t, "Loader", entries[0].ContextMap()["component"])

	l.SetLogLevel(LevelDebug)
	l.Debug("", "now visible")
	assert.Equal(t, 3, logs.Len())
	assert.NotContains(t, logs.All()[2].ContextMap(), "component")
}

func TestWith(t *testing.T) {
	l, logs := observed(LevelInfo)

	child := l.With("run", "abc")
	child.Info("Loader", "started")

	require.Equal(t, 1, logs.Len())
	fields := logs.All()[0].ContextMap()
	assert.Equal(t, "abc", fields["run"])
	assert.Equal(t, "Loader", fields["component"])
	assert.Equal(t, LevelInfo, child.MinLevel)
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, LevelDebug, ParseLevel("debug"))
	assert.Equal(t, LevelWarn, ParseLevel("warn"))
	assert.Equal(t, LevelError, ParseLevel("error"))
	assert.Equal(t, LevelInfo, ParseLevel("verbose"))
}
